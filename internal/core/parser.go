package core

import (
	"errors"
	"fmt"
)

var (
	errEmptyToken         = errors.New("empty token")
	errTokenTooLarge      = fmt.Errorf("token too large: maximum %d characters allowed", MaxTokenLength)
	errInvalidTokenFormat = errors.New("invalid token format: wrong number of segments")
)

// SignFunc signs the UTF-8 bytes of "header.payload".
type SignFunc func(signingInput []byte) ([]byte, error)

// split3 splits s into exactly three parts around sep.
func split3(s string, sep byte) (string, string, string, bool) {
	first, second := -1, -1

	for i := 0; i < len(s); i++ {
		if s[i] != sep {
			continue
		}
		switch {
		case first == -1:
			first = i
		case second == -1:
			second = i
		default:
			return "", "", "", false
		}
	}

	if first == -1 || second == -1 {
		return "", "", "", false
	}

	return s[:first], s[first+1 : second], s[second+1:], true
}

// Parse splits and decodes a compact token. The signature segment is decoded
// with enc; the header must declare the same encoding.
func Parse(token string, enc SignatureEncoding) (*Parts, error) {
	if len(token) == 0 {
		return nil, errEmptyToken
	}
	if len(token) > MaxTokenLength {
		return nil, errTokenTooLarge
	}

	part1, part2, part3, ok := split3(token, '.')
	if !ok {
		return nil, errInvalidTokenFormat
	}

	header, err := DecodeSegment(part1)
	if err != nil {
		return nil, fmt.Errorf("failed to decode header: %w", err)
	}

	payload, err := DecodeSegment(part2)
	if err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	if err := checkDeclaredEncoding(header, enc); err != nil {
		return nil, err
	}

	sig, err := DecodeSignature(enc, part3)
	if err != nil {
		return nil, err
	}

	return &Parts{
		Header:           header,
		Payload:          payload,
		Signature:        sig,
		SignedContent:    token[:len(part1)+1+len(part2)],
		HeaderSegment:    part1,
		PayloadSegment:   part2,
		SignatureSegment: part3,
		Raw:              token,
	}, nil
}

func checkDeclaredEncoding(header map[string]any, enc SignatureEncoding) error {
	declared := Base64URL
	if raw, ok := header[SignatureEncodingHeader]; ok {
		name, isString := raw.(string)
		if !isString {
			return fmt.Errorf("header parameter %q must be a string", SignatureEncodingHeader)
		}
		parsed, err := ParseSignatureEncoding(name)
		if err != nil {
			return err
		}
		declared = parsed
	}
	if declared != enc {
		return fmt.Errorf("signature is %s encoded, expected %s", declared, enc)
	}
	return nil
}

// SignedString encodes header and claims, signs the signing input and joins
// the three segments.
func SignedString(header map[string]any, claims any, sign SignFunc, enc SignatureEncoding) (string, error) {
	if enc != Base64URL {
		header[SignatureEncodingHeader] = enc.String()
	}

	headerSegment, err := EncodeSegment(header)
	if err != nil {
		return "", fmt.Errorf("failed to encode header: %w", err)
	}

	claimsSegment, err := EncodeSegment(claims)
	if err != nil {
		return "", fmt.Errorf("failed to encode claims: %w", err)
	}

	signingInput := make([]byte, 0, len(headerSegment)+1+len(claimsSegment))
	signingInput = append(signingInput, headerSegment...)
	signingInput = append(signingInput, '.')
	signingInput = append(signingInput, claimsSegment...)

	signature, err := sign(signingInput)
	if err != nil {
		return "", err
	}

	sigSegment := EncodeSignature(enc, signature)

	tokenBuf := make([]byte, 0, len(signingInput)+1+len(sigSegment))
	tokenBuf = append(tokenBuf, signingInput...)
	tokenBuf = append(tokenBuf, '.')
	tokenBuf = append(tokenBuf, sigSegment...)

	return string(tokenBuf), nil
}
