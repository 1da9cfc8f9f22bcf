package core

import (
	"bytes"
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// SignatureEncoding selects how the signature segment is rendered.
type SignatureEncoding int

const (
	Base64URL SignatureEncoding = iota
	Base16
	Base32
)

var (
	base64URL = base64.RawURLEncoding.Strict()
	base32Std = base32.StdEncoding.WithPadding(base32.NoPadding)
)

func (e SignatureEncoding) String() string {
	switch e {
	case Base64URL:
		return "base64url"
	case Base16:
		return "base16"
	case Base32:
		return "base32"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// Valid reports whether e is a known encoding.
func (e SignatureEncoding) Valid() bool {
	return e >= Base64URL && e <= Base32
}

// ParseSignatureEncoding maps a name produced by String back to its encoding.
// The empty string selects Base64URL.
func ParseSignatureEncoding(name string) (SignatureEncoding, error) {
	switch name {
	case "", "base64url":
		return Base64URL, nil
	case "base16":
		return Base16, nil
	case "base32":
		return Base32, nil
	default:
		return 0, fmt.Errorf("unknown signature encoding %q", name)
	}
}

// EncodeSegment marshals v to JSON and base64url encodes it without padding.
func EncodeSegment(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal segment: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeSegment base64url decodes a header or payload segment and parses it
// as a JSON object. Numbers are kept as json.Number.
func DecodeSegment(segment string) (map[string]any, error) {
	if len(segment) == 0 {
		return nil, fmt.Errorf("empty segment")
	}

	if !isValidBase64URL(segment) {
		return nil, fmt.Errorf("invalid base64url characters in segment")
	}

	data, err := base64URL.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64url: %w", err)
	}

	obj, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return obj, nil
}

// EncodeSignature renders signature bytes with the given encoding.
func EncodeSignature(enc SignatureEncoding, sig []byte) string {
	switch enc {
	case Base16:
		return hex.EncodeToString(sig)
	case Base32:
		return base32Std.EncodeToString(sig)
	default:
		return base64.RawURLEncoding.EncodeToString(sig)
	}
}

// DecodeSignature reverses EncodeSignature. An empty segment yields an empty
// signature.
func DecodeSignature(enc SignatureEncoding, segment string) ([]byte, error) {
	if segment == "" {
		return []byte{}, nil
	}

	var (
		sig []byte
		err error
	)
	switch enc {
	case Base64URL:
		if !isValidBase64URL(segment) {
			return nil, fmt.Errorf("invalid base64url characters in signature")
		}
		sig, err = base64URL.DecodeString(segment)
	case Base16:
		if !isValidBase16(segment) {
			return nil, fmt.Errorf("invalid base16 characters in signature")
		}
		sig, err = hex.DecodeString(segment)
	case Base32:
		if !isValidBase32(segment) {
			return nil, fmt.Errorf("invalid base32 characters in signature")
		}
		sig, err = base32Std.DecodeString(segment)
	default:
		return nil, fmt.Errorf("unknown signature encoding %s", enc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s signature: %w", enc, err)
	}
	// Unused trailing bits must be zero so each signature has one spelling.
	if EncodeSignature(enc, sig) != segment {
		return nil, fmt.Errorf("non-canonical %s signature", enc)
	}
	return sig, nil
}

// isValidBase16 accepts lowercase hex digits only.
func isValidBase16(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

// isValidBase32 accepts the RFC 4648 alphabet without padding.
func isValidBase32(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'A' && c <= 'Z') || (c >= '2' && c <= '7')) {
			return false
		}
	}
	return true
}

// isValidBase64URL checks if string contains only valid base64url characters
func isValidBase64URL(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '-' || c == '_') {
			return false
		}
	}
	return true
}

var errNotObject = errors.New("top level value is not a JSON object")

// decodeObject parses a single JSON object, rejecting duplicate member names
// and trailing data.
func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	obj := make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		if _, dup := obj[key]; dup {
			return nil, fmt.Errorf("duplicate member %q", key)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		obj[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON object")
	}
	return obj, nil
}
