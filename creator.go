package jwtkit

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/cybergodev/jwtkit/internal/core"
)

// Creator assembles the header and payload of a new token. Invalid arguments
// are collected and reported by Sign, so calls can be chained.
type Creator struct {
	header    map[string]any
	payload   map[string]any
	allowNone bool
	errs      []error
}

// NewCreator returns an empty Creator with header typ "JWT".
func NewCreator() *Creator {
	return &Creator{
		header:  map[string]any{HeaderType: "JWT"},
		payload: make(map[string]any),
	}
}

func (c *Creator) fail(err error) *Creator {
	c.errs = append(c.errs, err)
	return c
}

// WithHeader merges claims into the header. "alg" is always taken from the
// signing algorithm.
func (c *Creator) WithHeader(claims map[string]any) *Creator {
	for name, value := range claims {
		if name == HeaderAlgorithm {
			continue
		}
		v, err := headerValue(name, value)
		if err != nil {
			return c.fail(err)
		}
		c.header[name] = v
	}
	return c
}

// WithKeyID sets the "kid" header. Without it, the algorithm's signing key id
// is used.
func (c *Creator) WithKeyID(keyID string) *Creator {
	c.header[HeaderKeyID] = keyID
	return c
}

// WithIssuer sets iss to a string, or to an array when more than one issuer
// is given.
func (c *Creator) WithIssuer(issuer ...string) *Creator {
	return c.withStrings(ClaimIssuer, issuer)
}

func (c *Creator) WithSubject(subject string) *Creator {
	c.payload[ClaimSubject] = subject
	return c
}

// WithAudience sets aud to a string, or to an array when more than one
// audience is given.
func (c *Creator) WithAudience(audience ...string) *Creator {
	return c.withStrings(ClaimAudience, audience)
}

func (c *Creator) WithExpiresAt(t time.Time) *Creator { return c.withDate(ClaimExpiresAt, t) }
func (c *Creator) WithNotBefore(t time.Time) *Creator { return c.withDate(ClaimNotBefore, t) }
func (c *Creator) WithIssuedAt(t time.Time) *Creator  { return c.withDate(ClaimIssuedAt, t) }

func (c *Creator) WithJWTID(id string) *Creator {
	c.payload[ClaimJWTID] = id
	return c
}

// WithRandomJWTID sets jti to a random UUID.
func (c *Creator) WithRandomJWTID() *Creator {
	c.payload[ClaimJWTID] = uuid.NewString()
	return c
}

// WithClaim sets a payload claim. value may be a string, bool, integer,
// float, time.Time (encoded as seconds) or a slice of those.
func (c *Creator) WithClaim(name string, value any) *Creator {
	if name == "" {
		return c.fail(illegalArgument("claim", "the custom claim's name can't be empty"))
	}
	v, err := claimValue(value)
	if err != nil {
		return c.fail(illegalArgument(name, "%v", err))
	}
	c.payload[name] = v
	return c
}

// AllowNone permits signing with the "none" algorithm.
func (c *Creator) AllowNone(allow bool) *Creator {
	c.allowNone = allow
	return c
}

// Has reports whether the payload claim has been set.
func (c *Creator) Has(name string) bool {
	_, ok := c.payload[name]
	return ok
}

// Err returns the argument errors collected so far.
func (c *Creator) Err() error {
	return errors.Join(c.errs...)
}

// Sign encodes and signs the token with a base64url signature.
func (c *Creator) Sign(alg Algorithm) (string, error) {
	return c.SignEncoded(alg, Base64URL)
}

// SignEncoded encodes and signs the token, writing the signature segment with
// enc. Non-default encodings are recorded in the signed header.
func (c *Creator) SignEncoded(alg Algorithm, enc Encoding) (string, error) {
	if err := c.Err(); err != nil {
		return "", err
	}
	if alg == nil {
		return "", illegalArgument("algorithm", "the algorithm cannot be nil")
	}
	if !enc.valid() {
		return "", illegalArgument("encoding", "unknown encoding %s", enc)
	}
	if alg.Name() == noneName && !c.allowNone {
		return "", ErrNoneAlgorithmNotAllowed
	}

	header := maps.Clone(c.header)
	header[HeaderAlgorithm] = alg.Name()
	if _, ok := header[HeaderKeyID]; !ok {
		if kid := alg.SigningKeyID(); kid != "" {
			header[HeaderKeyID] = kid
		}
	}

	token, err := core.SignedString(header, c.payload, alg.Sign, core.SignatureEncoding(enc))
	if err != nil {
		var genErr *SignatureGenerationError
		if errors.As(err, &genErr) {
			return "", err
		}
		return "", &SignatureGenerationError{Algorithm: alg.Description(), Err: err}
	}
	return token, nil
}

func (c *Creator) withStrings(name string, values []string) *Creator {
	switch len(values) {
	case 0:
		return c.fail(illegalArgument(name, "at least one value is required"))
	case 1:
		c.payload[name] = values[0]
	default:
		c.payload[name] = slices.Clone(values)
	}
	return c
}

func (c *Creator) withDate(name string, t time.Time) *Creator {
	if t.IsZero() {
		return c.fail(illegalArgument(name, "the date can't be zero"))
	}
	c.payload[name] = t.Unix()
	return c
}

func headerValue(name string, value any) (any, error) {
	if name == "" {
		return nil, illegalArgument("header", "the header claim's name can't be empty")
	}
	switch v := value.(type) {
	case map[string]any:
		return maps.Clone(v), nil
	default:
		out, err := claimValue(value)
		if err != nil {
			return nil, illegalArgument(name, "%v", err)
		}
		return out, nil
	}
}

// claimValue normalises a Go value to the form written to the payload.
func claimValue(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, errors.New("the custom claim's value can't be null")
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v, nil
	case float32:
		return claimValue(float64(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("the custom claim's value %v isn't a finite number", v)
		}
		return v, nil
	case time.Time:
		return v.Unix(), nil
	case NumericDate:
		return v.Unix(), nil
	case []string:
		return slices.Clone(v), nil
	case []int:
		return slices.Clone(v), nil
	case []int64:
		return slices.Clone(v), nil
	case []float64:
		return slices.Clone(v), nil
	case []bool:
		return slices.Clone(v), nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			normalised, err := claimValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = normalised
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported claim type %T", value)
	}
}
