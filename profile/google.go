package profile

import (
	"time"

	"github.com/cybergodev/jwtkit"
)

// GoogleVerification verifies Google style ID tokens.
type GoogleVerification struct {
	UnimplementedVerification
	*jwtkit.Verification
}

// RequireGoogle starts a Google profile verification for alg.
func RequireGoogle(alg jwtkit.Algorithm) *GoogleVerification {
	return &GoogleVerification{Verification: jwtkit.Require(alg)}
}

// VerifierForGoogle requires picture, email, name, an accepted issuer and
// audience, with the given exp and iat leeways.
func (g *GoogleVerification) VerifierForGoogle(e GoogleExpectations) (*jwtkit.Verification, error) {
	v := g.Verification.
		RequireClaim(ClaimPicture, e.Picture).
		RequireClaim(ClaimEmail, e.Email).
		WithIssuer(e.Issuers...).
		WithAudience(e.Audience...).
		RequireClaim(ClaimName, e.Name).
		AcceptExpiresAt(e.ExpiresAtLeeway).
		AcceptIssuedAt(e.IssuedAtLeeway)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// ExtendedVerification is the Google profile plus a not-before window.
type ExtendedVerification struct {
	*GoogleVerification
}

func RequireExtended(alg jwtkit.Algorithm) *ExtendedVerification {
	return &ExtendedVerification{GoogleVerification: RequireGoogle(alg)}
}

func (x *ExtendedVerification) VerifierForExtended(e ExtendedExpectations) (*jwtkit.Verification, error) {
	v, err := x.VerifierForGoogle(e.GoogleExpectations)
	if err != nil {
		return nil, err
	}
	v.AcceptNotBefore(e.NotBeforeLeeway)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// GoogleCreator builds Google style ID tokens. Sign fails until picture,
// email, iss, sub, aud, exp, iat and name are set.
type GoogleCreator struct {
	creator
}

func NewGoogleCreator() *GoogleCreator {
	return &GoogleCreator{newCreator(
		stdPicture, stdEmail, stdIssuer, stdSubject, stdAudience, stdExpiresAt, stdIssuedAt, stdName,
	)}
}

func (g *GoogleCreator) WithPicture(picture string) *GoogleCreator {
	g.c.WithClaim(ClaimPicture, picture)
	return g
}

func (g *GoogleCreator) WithEmail(email string) *GoogleCreator {
	g.c.WithClaim(ClaimEmail, email)
	return g
}

func (g *GoogleCreator) WithName(name string) *GoogleCreator {
	g.c.WithClaim(ClaimName, name)
	return g
}

func (g *GoogleCreator) WithIssuer(issuer ...string) *GoogleCreator {
	g.c.WithIssuer(issuer...)
	return g
}

func (g *GoogleCreator) WithSubject(subject string) *GoogleCreator {
	g.c.WithSubject(subject)
	return g
}

func (g *GoogleCreator) WithAudience(audience ...string) *GoogleCreator {
	g.c.WithAudience(audience...)
	return g
}

func (g *GoogleCreator) WithExpiresAt(t time.Time) *GoogleCreator {
	g.c.WithExpiresAt(t)
	return g
}

func (g *GoogleCreator) WithIssuedAt(t time.Time) *GoogleCreator {
	g.c.WithIssuedAt(t)
	return g
}

// WithClaim sets a non-standard claim.
func (g *GoogleCreator) WithClaim(name string, value any) *GoogleCreator {
	g.c.WithClaim(name, value)
	return g
}

func (g *GoogleCreator) WithHeader(header map[string]any) *GoogleCreator {
	g.c.WithHeader(header)
	return g
}

func (g *GoogleCreator) AllowNone(allow bool) *GoogleCreator {
	g.c.AllowNone(allow)
	return g
}

func (g *GoogleCreator) Sign(alg jwtkit.Algorithm) (string, error) {
	return g.sign(alg, jwtkit.Base64URL)
}

func (g *GoogleCreator) SignEncoded(alg jwtkit.Algorithm, enc jwtkit.Encoding) (string, error) {
	return g.sign(alg, enc)
}

// ExtendedCreator is GoogleCreator with a required nbf.
type ExtendedCreator struct {
	creator
}

func NewExtendedCreator() *ExtendedCreator {
	return &ExtendedCreator{newCreator(
		stdPicture, stdEmail, stdIssuer, stdSubject, stdAudience, stdExpiresAt, stdIssuedAt, stdNotBefore, stdName,
	)}
}

func (x *ExtendedCreator) WithPicture(picture string) *ExtendedCreator {
	x.c.WithClaim(ClaimPicture, picture)
	return x
}

func (x *ExtendedCreator) WithEmail(email string) *ExtendedCreator {
	x.c.WithClaim(ClaimEmail, email)
	return x
}

func (x *ExtendedCreator) WithName(name string) *ExtendedCreator {
	x.c.WithClaim(ClaimName, name)
	return x
}

func (x *ExtendedCreator) WithIssuer(issuer ...string) *ExtendedCreator {
	x.c.WithIssuer(issuer...)
	return x
}

func (x *ExtendedCreator) WithSubject(subject string) *ExtendedCreator {
	x.c.WithSubject(subject)
	return x
}

func (x *ExtendedCreator) WithAudience(audience ...string) *ExtendedCreator {
	x.c.WithAudience(audience...)
	return x
}

func (x *ExtendedCreator) WithExpiresAt(t time.Time) *ExtendedCreator {
	x.c.WithExpiresAt(t)
	return x
}

func (x *ExtendedCreator) WithIssuedAt(t time.Time) *ExtendedCreator {
	x.c.WithIssuedAt(t)
	return x
}

func (x *ExtendedCreator) WithNotBefore(t time.Time) *ExtendedCreator {
	x.c.WithNotBefore(t)
	return x
}

func (x *ExtendedCreator) WithClaim(name string, value any) *ExtendedCreator {
	x.c.WithClaim(name, value)
	return x
}

func (x *ExtendedCreator) AllowNone(allow bool) *ExtendedCreator {
	x.c.AllowNone(allow)
	return x
}

func (x *ExtendedCreator) Sign(alg jwtkit.Algorithm) (string, error) {
	return x.sign(alg, jwtkit.Base64URL)
}

func (x *ExtendedCreator) SignEncoded(alg jwtkit.Algorithm, enc jwtkit.Encoding) (string, error) {
	return x.sign(alg, enc)
}
