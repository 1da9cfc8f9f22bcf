package profile

import (
	"time"

	"github.com/cybergodev/jwtkit"
)

// FacebookVerification verifies tokens carrying userId and appId.
type FacebookVerification struct {
	UnimplementedVerification
	*jwtkit.Verification
}

func RequireFacebook(alg jwtkit.Algorithm) *FacebookVerification {
	return &FacebookVerification{Verification: jwtkit.Require(alg)}
}

func (f *FacebookVerification) VerifierForFacebook(e FacebookExpectations) (*jwtkit.Verification, error) {
	v := f.Verification.
		RequireClaim(ClaimUserID, e.UserID).
		RequireClaim(ClaimAppID, e.AppID)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// FacebookCreator builds tokens with userId, appId, exp and iat.
type FacebookCreator struct {
	creator
}

func NewFacebookCreator() *FacebookCreator {
	return &FacebookCreator{newCreator(stdUserID, stdAppID, stdExpiresAt, stdIssuedAt)}
}

func (f *FacebookCreator) WithUserID(userID string) *FacebookCreator {
	f.c.WithClaim(ClaimUserID, userID)
	return f
}

func (f *FacebookCreator) WithAppID(appID string) *FacebookCreator {
	f.c.WithClaim(ClaimAppID, appID)
	return f
}

func (f *FacebookCreator) WithExpiresAt(t time.Time) *FacebookCreator {
	f.c.WithExpiresAt(t)
	return f
}

func (f *FacebookCreator) WithIssuedAt(t time.Time) *FacebookCreator {
	f.c.WithIssuedAt(t)
	return f
}

func (f *FacebookCreator) WithClaim(name string, value any) *FacebookCreator {
	f.c.WithClaim(name, value)
	return f
}

func (f *FacebookCreator) AllowNone(allow bool) *FacebookCreator {
	f.c.AllowNone(allow)
	return f
}

func (f *FacebookCreator) Sign(alg jwtkit.Algorithm) (string, error) {
	return f.sign(alg, jwtkit.Base64URL)
}

func (f *FacebookCreator) SignEncoded(alg jwtkit.Algorithm, enc jwtkit.Encoding) (string, error) {
	return f.sign(alg, enc)
}
