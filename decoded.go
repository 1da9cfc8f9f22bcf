package jwtkit

import (
	"slices"
	"time"

	"github.com/cybergodev/jwtkit/internal/core"
)

// DecodedToken is the immutable result of decoding a compact token.
type DecodedToken struct {
	header  map[string]any
	payload map[string]any
	parts   *core.Parts
}

// Decode parses token without verifying its signature or claims.
func Decode(token string) (*DecodedToken, error) {
	return DecodeEncoded(token, Base64URL)
}

// DecodeEncoded is Decode for tokens whose signature segment uses enc.
func DecodeEncoded(token string, enc Encoding) (*DecodedToken, error) {
	if !enc.valid() {
		return nil, illegalArgument("encoding", "unknown encoding %s", enc)
	}
	parts, err := core.Parse(token, core.SignatureEncoding(enc))
	if err != nil {
		return nil, decodeError("malformed token", err)
	}

	if alg, ok := parts.Header[HeaderAlgorithm].(string); !ok || alg == "" {
		return nil, decodeError("the header parameter 'alg' must be a non-empty string", nil)
	}
	if err := coerceRegistered(parts.Payload); err != nil {
		return nil, err
	}

	return &DecodedToken{header: parts.Header, payload: parts.Payload, parts: parts}, nil
}

// coerceRegistered normalises time claims to int64 seconds and aud to a
// string or []string.
func coerceRegistered(payload map[string]any) error {
	for _, name := range []string{ClaimExpiresAt, ClaimNotBefore, ClaimIssuedAt} {
		raw, ok := payload[name]
		if !ok || raw == nil {
			continue
		}
		seconds, ok := numericDate(raw)
		if !ok {
			return decodeError("the claim '"+name+"' must be a numeric date", nil)
		}
		payload[name] = seconds
	}

	switch aud := payload[ClaimAudience].(type) {
	case nil, string:
	case []any:
		values := make([]string, len(aud))
		for i, v := range aud {
			s, ok := v.(string)
			if !ok {
				return decodeError("the claim 'aud' must be a string or an array of strings", nil)
			}
			values[i] = s
		}
		payload[ClaimAudience] = values
	default:
		return decodeError("the claim 'aud' must be a string or an array of strings", nil)
	}

	for _, name := range []string{ClaimIssuer, ClaimSubject, ClaimJWTID} {
		if raw, ok := payload[name]; ok && raw != nil {
			if _, isString := raw.(string); !isString {
				return decodeError("the claim '"+name+"' must be a string", nil)
			}
		}
	}
	return nil
}

func (t *DecodedToken) headerString(name string) string {
	s, _ := t.header[name].(string)
	return s
}

func (t *DecodedToken) payloadString(name string) string {
	s, _ := t.payload[name].(string)
	return s
}

func (t *DecodedToken) payloadDate(name string) time.Time {
	d, _ := t.Claim(name).AsDate()
	return d
}

func (t *DecodedToken) Algorithm() string   { return t.headerString(HeaderAlgorithm) }
func (t *DecodedToken) Type() string        { return t.headerString(HeaderType) }
func (t *DecodedToken) ContentType() string { return t.headerString(HeaderContentType) }
func (t *DecodedToken) KeyID() string       { return t.headerString(HeaderKeyID) }

func (t *DecodedToken) Issuer() string  { return t.payloadString(ClaimIssuer) }
func (t *DecodedToken) Subject() string { return t.payloadString(ClaimSubject) }
func (t *DecodedToken) ID() string      { return t.payloadString(ClaimJWTID) }

// Audience returns aud as a list whether it was encoded as a string or an
// array.
func (t *DecodedToken) Audience() []string {
	switch aud := t.payload[ClaimAudience].(type) {
	case string:
		return []string{aud}
	case []string:
		return slices.Clone(aud)
	default:
		return nil
	}
}

// ExpiresAt, NotBefore and IssuedAt return the zero time when absent.
func (t *DecodedToken) ExpiresAt() time.Time { return t.payloadDate(ClaimExpiresAt) }
func (t *DecodedToken) NotBefore() time.Time { return t.payloadDate(ClaimNotBefore) }
func (t *DecodedToken) IssuedAt() time.Time  { return t.payloadDate(ClaimIssuedAt) }

func (t *DecodedToken) Header() Claims                { return Claims{values: t.header} }
func (t *DecodedToken) HeaderClaim(name string) Claim { return t.Header().Get(name) }
func (t *DecodedToken) Claims() Claims                { return Claims{values: t.payload} }
func (t *DecodedToken) Claim(name string) Claim       { return t.Claims().Get(name) }

// Signature returns a copy of the raw signature bytes.
func (t *DecodedToken) Signature() []byte { return slices.Clone(t.parts.Signature) }

// SignedContent is "header.payload" exactly as transmitted.
func (t *DecodedToken) SignedContent() string { return t.parts.SignedContent }

func (t *DecodedToken) Token() string            { return t.parts.Raw }
func (t *DecodedToken) HeaderSegment() string    { return t.parts.HeaderSegment }
func (t *DecodedToken) PayloadSegment() string   { return t.parts.PayloadSegment }
func (t *DecodedToken) SignatureSegment() string { return t.parts.SignatureSegment }
