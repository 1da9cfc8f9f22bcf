package profile

import "github.com/cybergodev/jwtkit"

// standardClaim is a claim a profile creator requires before signing.
type standardClaim struct {
	name  string
	label string
}

// creator is the shared state behind the profile creators.
type creator struct {
	c        *jwtkit.Creator
	required []standardClaim
}

func newCreator(required ...standardClaim) creator {
	return creator{c: jwtkit.NewCreator(), required: required}
}

func (b creator) sign(alg jwtkit.Algorithm, enc jwtkit.Encoding) (string, error) {
	if err := b.c.Err(); err != nil {
		return "", err
	}
	for _, claim := range b.required {
		if !b.c.Has(claim.name) {
			return "", &jwtkit.IllegalArgumentError{
				Argument: "standard claim",
				Message:  claim.label + " has not been set",
			}
		}
	}
	return b.c.SignEncoded(alg, enc)
}

var (
	stdPicture   = standardClaim{ClaimPicture, "Picture"}
	stdEmail     = standardClaim{ClaimEmail, "Email"}
	stdName      = standardClaim{ClaimName, "Name"}
	stdIssuer    = standardClaim{jwtkit.ClaimIssuer, "Issuer"}
	stdSubject   = standardClaim{jwtkit.ClaimSubject, "Subject"}
	stdAudience  = standardClaim{jwtkit.ClaimAudience, "Audience"}
	stdExpiresAt = standardClaim{jwtkit.ClaimExpiresAt, "Exp"}
	stdIssuedAt  = standardClaim{jwtkit.ClaimIssuedAt, "Iat"}
	stdNotBefore = standardClaim{jwtkit.ClaimNotBefore, "Nbf"}
	stdJWTID     = standardClaim{jwtkit.ClaimJWTID, "Jti"}
	stdUserID    = standardClaim{ClaimUserID, "UserId"}
	stdAppID     = standardClaim{ClaimAppID, "AppId"}
)
