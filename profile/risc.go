package profile

import (
	"time"

	"github.com/cybergodev/jwtkit"
)

// RiscVerification verifies security event tokens.
type RiscVerification struct {
	UnimplementedVerification
	*jwtkit.Verification
}

func RequireRisc(alg jwtkit.Algorithm) *RiscVerification {
	return &RiscVerification{Verification: jwtkit.Require(alg)}
}

// VerifierForRisc requires jti and an accepted issuer, and an accepted
// audience when one is given. The not-before window has its own leeway.
func (r *RiscVerification) VerifierForRisc(e RiscExpectations) (*jwtkit.Verification, error) {
	v := r.Verification.
		WithJWTID(e.JWTID).
		WithIssuer(e.Issuers...).
		AcceptIssuedAt(e.IssuedAtLeeway)

	if len(e.Audience) > 0 {
		v.WithAudience(e.Audience...)
	}
	if e.NotBeforeLeeway >= 0 {
		v.AcceptNotBefore(e.NotBeforeLeeway)
	}
	if e.ExpiresAtLeeway >= 0 {
		v.AcceptExpiresAt(e.ExpiresAtLeeway)
	}

	if err := v.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// RiscCreator builds security event tokens. jti, iss, sub and iat are
// required; a random jti is generated when none is set.
type RiscCreator struct {
	creator
}

func NewRiscCreator() *RiscCreator {
	r := &RiscCreator{newCreator(stdJWTID, stdIssuer, stdSubject, stdIssuedAt)}
	r.c.WithRandomJWTID()
	return r
}

func (r *RiscCreator) WithJWTID(id string) *RiscCreator {
	r.c.WithJWTID(id)
	return r
}

func (r *RiscCreator) WithIssuer(issuer ...string) *RiscCreator {
	r.c.WithIssuer(issuer...)
	return r
}

func (r *RiscCreator) WithSubject(subject string) *RiscCreator {
	r.c.WithSubject(subject)
	return r
}

func (r *RiscCreator) WithAudience(audience ...string) *RiscCreator {
	r.c.WithAudience(audience...)
	return r
}

func (r *RiscCreator) WithIssuedAt(t time.Time) *RiscCreator {
	r.c.WithIssuedAt(t)
	return r
}

func (r *RiscCreator) WithExpiresAt(t time.Time) *RiscCreator {
	r.c.WithExpiresAt(t)
	return r
}

func (r *RiscCreator) WithNotBefore(t time.Time) *RiscCreator {
	r.c.WithNotBefore(t)
	return r
}

// WithEvents sets the "events" claim.
func (r *RiscCreator) WithEvents(events ...string) *RiscCreator {
	r.c.WithClaim("events", events)
	return r
}

func (r *RiscCreator) WithClaim(name string, value any) *RiscCreator {
	r.c.WithClaim(name, value)
	return r
}

func (r *RiscCreator) AllowNone(allow bool) *RiscCreator {
	r.c.AllowNone(allow)
	return r
}

func (r *RiscCreator) Sign(alg jwtkit.Algorithm) (string, error) {
	return r.sign(alg, jwtkit.Base64URL)
}

func (r *RiscCreator) SignEncoded(alg jwtkit.Algorithm, enc jwtkit.Encoding) (string, error) {
	return r.sign(alg, enc)
}
