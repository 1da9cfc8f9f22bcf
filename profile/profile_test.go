package profile

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cybergodev/jwtkit"
)

var (
	now = time.Unix(1700000000, 0)
	exp = now.Add(time.Hour)
	iat = now.Add(-time.Minute)
)

func hmac(t *testing.T) *jwtkit.HMACAlgorithm {
	t.Helper()
	alg, err := jwtkit.HMAC256([]byte("secret"))
	if err != nil {
		t.Fatalf("Failed to create algorithm: %v", err)
	}
	return alg
}

func googleCreator() *GoogleCreator {
	return NewGoogleCreator().
		WithPicture("picture").
		WithEmail("email").
		WithIssuer("issuer").
		WithSubject("subject").
		WithAudience("audience").
		WithExpiresAt(exp).
		WithIssuedAt(iat).
		WithName("name")
}

var googleExpectations = GoogleExpectations{
	Picture:         "picture",
	Email:           "email",
	Issuers:         []string{"issuer"},
	Audience:        []string{"audience"},
	Name:            "name",
	ExpiresAtLeeway: time.Second,
	IssuedAtLeeway:  time.Second,
}

func verify(t *testing.T, v *jwtkit.Verification, token string) (*jwtkit.DecodedToken, error) {
	t.Helper()
	verifier, err := v.BuildWithClock(jwtkit.FixedClock(now))
	if err != nil {
		t.Fatalf("Failed to build verifier: %v", err)
	}
	return verifier.Verify(token)
}

// ============================================================================
// GOOGLE
// ============================================================================

func TestGoogleRoundTrip(t *testing.T) {
	alg := hmac(t)

	for _, enc := range []jwtkit.Encoding{jwtkit.Base64URL, jwtkit.Base16, jwtkit.Base32} {
		t.Run(enc.String(), func(t *testing.T) {
			token, err := googleCreator().WithClaim("nonStandardClaim", 9.99).SignEncoded(alg, enc)
			if err != nil {
				t.Fatalf("Failed to sign: %v", err)
			}

			v, err := RequireGoogle(alg).VerifierForGoogle(googleExpectations)
			if err != nil {
				t.Fatalf("Failed to configure verification: %v", err)
			}
			decoded, err := verify(t, v.WithEncoding(enc), token)
			if err != nil {
				t.Fatalf("Failed to verify: %v", err)
			}

			claims := decoded.Claims()
			for name, want := range map[string]string{
				"picture": "picture", "email": "email", "iss": "issuer",
				"sub": "subject", "aud": "audience", "name": "name",
			} {
				if got, _ := claims.Get(name).AsString(); got != want {
					t.Errorf("Claim %s: expected %q, got %q", name, want, got)
				}
			}
			if got, _ := claims.Get("exp").AsDate(); !got.Equal(exp) {
				t.Errorf("Expected exp %v, got %v", exp, got)
			}
			if got, _ := claims.Get("nonStandardClaim").AsFloat64(); got != 9.99 {
				t.Errorf("Expected non-standard claim 9.99, got %v", got)
			}
		})
	}
}

func TestGoogleMissingStandardClaim(t *testing.T) {
	_, err := NewGoogleCreator().
		WithEmail("email").
		WithIssuer("issuer").
		WithSubject("subject").
		WithAudience("audience").
		WithExpiresAt(exp).
		WithIssuedAt(iat).
		WithName("name").
		Sign(hmac(t))

	if !errors.Is(err, jwtkit.ErrIllegalArgument) {
		t.Fatalf("Expected ErrIllegalArgument, got %v", err)
	}
	if err.Error() != "standard claim: Picture has not been set" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestGoogleClaimMismatch(t *testing.T) {
	alg := hmac(t)

	tests := []struct {
		name    string
		creator *GoogleCreator
		claim   string
		message string
	}{
		{"issuer", googleCreator().WithIssuer("invalid"), "iss", "value doesn't match the required one"},
		{"audience", googleCreator().WithAudience("invalid"), "aud", "value doesn't contain the required audience"},
		{"picture", googleCreator().WithPicture("invalid"), "picture", "value doesn't match the required one"},
		{"email", googleCreator().WithEmail("invalid"), "email", "value doesn't match the required one"},
		{"name", googleCreator().WithName("invalid"), "name", "value doesn't match the required one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.creator.Sign(alg)
			if err != nil {
				t.Fatalf("Failed to sign: %v", err)
			}
			v, err := RequireGoogle(alg).VerifierForGoogle(googleExpectations)
			if err != nil {
				t.Fatalf("Failed to configure verification: %v", err)
			}

			_, err = verify(t, v, token)
			var claimErr *jwtkit.InvalidClaimError
			if !errors.As(err, &claimErr) || claimErr.Claim != tt.claim {
				t.Fatalf("Expected InvalidClaimError for %s, got %v", tt.claim, err)
			}
			want := "the claim '" + tt.claim + "' " + tt.message
			if err.Error() != want {
				t.Errorf("Expected %q, got %q", want, err.Error())
			}
		})
	}
}

func TestGoogleExpired(t *testing.T) {
	alg := hmac(t)
	token, err := googleCreator().WithExpiresAt(now.Add(-2 * time.Second)).Sign(alg)
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}

	v, err := RequireGoogle(alg).VerifierForGoogle(googleExpectations)
	if err != nil {
		t.Fatalf("Failed to configure verification: %v", err)
	}
	if _, err := verify(t, v, token); !errors.Is(err, jwtkit.ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}

func TestGoogleNoneAlgorithm(t *testing.T) {
	if _, err := googleCreator().Sign(jwtkit.None()); !errors.Is(err, jwtkit.ErrNoneAlgorithmNotAllowed) {
		t.Errorf("Expected none to be refused, got %v", err)
	}

	token, err := googleCreator().AllowNone(true).Sign(jwtkit.None())
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}

	v, err := RequireGoogle(jwtkit.None()).VerifierForGoogle(googleExpectations)
	if err != nil {
		t.Fatalf("Failed to configure verification: %v", err)
	}
	if _, err := verify(t, v, token); !errors.Is(err, jwtkit.ErrSecurity) {
		t.Errorf("Expected ErrSecurity without AllowNone, got %v", err)
	}
	if _, err := verify(t, v.AllowNone(true), token); err != nil {
		t.Errorf("Expected none token to verify when allowed, got %v", err)
	}
}

func TestGoogleInvalidExpectations(t *testing.T) {
	e := googleExpectations
	e.Issuers = nil
	if _, err := RequireGoogle(hmac(t)).VerifierForGoogle(e); !errors.Is(err, jwtkit.ErrIllegalArgument) {
		t.Errorf("Expected ErrIllegalArgument for no issuers, got %v", err)
	}

	e = googleExpectations
	e.IssuedAtLeeway = -time.Second
	if _, err := RequireGoogle(hmac(t)).VerifierForGoogle(e); !errors.Is(err, jwtkit.ErrIllegalArgument) {
		t.Errorf("Expected ErrIllegalArgument for negative leeway, got %v", err)
	}
}

// ============================================================================
// EXTENDED
// ============================================================================

func TestExtendedNotBefore(t *testing.T) {
	alg := hmac(t)
	token, err := NewExtendedCreator().
		WithPicture("picture").
		WithEmail("email").
		WithIssuer("issuer").
		WithSubject("subject").
		WithAudience("audience").
		WithExpiresAt(exp).
		WithIssuedAt(iat).
		WithNotBefore(now.Add(5 * time.Second)).
		WithName("name").
		Sign(alg)
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}

	strict, err := RequireExtended(alg).VerifierForExtended(ExtendedExpectations{GoogleExpectations: googleExpectations})
	if err != nil {
		t.Fatalf("Failed to configure verification: %v", err)
	}
	if _, err := verify(t, strict, token); !errors.Is(err, jwtkit.ErrInvalidClaim) || !strings.Contains(err.Error(), "nbf") {
		t.Errorf("Expected nbf failure, got %v", err)
	}

	lenient, err := RequireExtended(alg).VerifierForExtended(ExtendedExpectations{
		GoogleExpectations: googleExpectations,
		NotBeforeLeeway:    5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to configure verification: %v", err)
	}
	if _, err := verify(t, lenient, token); err != nil {
		t.Errorf("Expected success with nbf leeway, got %v", err)
	}

	if _, err := RequireExtended(alg).VerifierForGoogle(googleExpectations); err != nil {
		t.Errorf("Expected extended profile to support the Google factory, got %v", err)
	}
}

func TestExtendedMissingNotBefore(t *testing.T) {
	_, err := NewExtendedCreator().
		WithPicture("picture").
		WithEmail("email").
		WithIssuer("issuer").
		WithSubject("subject").
		WithAudience("audience").
		WithExpiresAt(exp).
		WithIssuedAt(iat).
		WithName("name").
		Sign(hmac(t))
	if err == nil || err.Error() != "standard claim: Nbf has not been set" {
		t.Errorf("Expected Nbf to be required, got %v", err)
	}
}

// ============================================================================
// FACEBOOK
// ============================================================================

func TestFacebookRoundTrip(t *testing.T) {
	alg := hmac(t)
	token, err := NewFacebookCreator().
		WithUserID("userId").
		WithAppID("appId").
		WithExpiresAt(exp).
		WithIssuedAt(iat).
		Sign(alg)
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}

	v, err := RequireFacebook(alg).VerifierForFacebook(FacebookExpectations{UserID: "userId", AppID: "appId"})
	if err != nil {
		t.Fatalf("Failed to configure verification: %v", err)
	}
	decoded, err := verify(t, v, token)
	if err != nil {
		t.Fatalf("Failed to verify: %v", err)
	}
	if got, _ := decoded.Claim(ClaimUserID).AsString(); got != "userId" {
		t.Errorf("Expected userId claim, got %q", got)
	}

	other, err := RequireFacebook(alg).VerifierForFacebook(FacebookExpectations{UserID: "someone", AppID: "appId"})
	if err != nil {
		t.Fatalf("Failed to configure verification: %v", err)
	}
	if _, err := verify(t, other, token); !errors.Is(err, jwtkit.ErrInvalidClaim) || !strings.Contains(err.Error(), "userId") {
		t.Errorf("Expected userId mismatch, got %v", err)
	}
}

func TestFacebookMissingUserID(t *testing.T) {
	alg := hmac(t)
	_, err := NewFacebookCreator().WithAppID("appId").WithExpiresAt(exp).WithIssuedAt(iat).Sign(alg)
	if !errors.Is(err, jwtkit.ErrIllegalArgument) || !strings.Contains(err.Error(), "UserId") {
		t.Errorf("Expected missing UserId, got %v", err)
	}

	token, err := jwtkit.NewCreator().WithClaim(ClaimAppID, "appId").Sign(alg)
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}
	v, err := RequireFacebook(alg).VerifierForFacebook(FacebookExpectations{UserID: "userId", AppID: "appId"})
	if err != nil {
		t.Fatalf("Failed to configure verification: %v", err)
	}
	_, err = verify(t, v, token)
	if !errors.Is(err, jwtkit.ErrInvalidClaim) || !strings.Contains(err.Error(), "userId") {
		t.Errorf("Expected missing userId claim, got %v", err)
	}
}

// ============================================================================
// RISC
// ============================================================================

func riscExpectations() RiscExpectations {
	return RiscExpectations{
		JWTID:           "jti",
		Issuers:         []string{"issuer"},
		IssuedAtLeeway:  time.Second,
		ExpiresAtLeeway: -1,
		NotBeforeLeeway: -1,
	}
}

func TestRiscRoundTrip(t *testing.T) {
	alg := hmac(t)
	token, err := NewRiscCreator().
		WithJWTID("jti").
		WithIssuer("issuer").
		WithSubject("subject").
		WithIssuedAt(iat).
		WithEvents("https://schemas.openid.net/secevent/risc/event-type/account-disabled").
		Sign(alg)
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}

	v, err := RequireRisc(alg).VerifierForRisc(riscExpectations())
	if err != nil {
		t.Fatalf("Failed to configure verification: %v", err)
	}
	decoded, err := verify(t, v, token)
	if err != nil {
		t.Fatalf("Failed to verify: %v", err)
	}
	if decoded.ID() != "jti" {
		t.Errorf("Expected jti, got %q", decoded.ID())
	}
	if events, _ := decoded.Claim("events").AsStrings(); len(events) != 1 {
		t.Errorf("Expected one event, got %v", events)
	}
}

func TestRiscRandomJWTID(t *testing.T) {
	alg := hmac(t)
	token, err := NewRiscCreator().WithIssuer("issuer").WithSubject("subject").WithIssuedAt(iat).Sign(alg)
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}
	decoded, err := jwtkit.Decode(token)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if decoded.ID() == "" {
		t.Error("Expected a generated jti")
	}
}

func TestRiscWindows(t *testing.T) {
	alg := hmac(t)
	token, err := NewRiscCreator().
		WithJWTID("jti").
		WithIssuer("issuer").
		WithSubject("subject").
		WithAudience("aud").
		WithIssuedAt(iat).
		WithExpiresAt(now.Add(-3 * time.Second)).
		WithNotBefore(now.Add(3 * time.Second)).
		Sign(alg)
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}

	tests := []struct {
		name    string
		modify  func(*RiscExpectations)
		wantErr error
	}{
		{"unregistered windows use the default leeway", func(e *RiscExpectations) {}, jwtkit.ErrTokenExpired},
		{"exp leeway", func(e *RiscExpectations) { e.ExpiresAtLeeway = 5 * time.Second }, jwtkit.ErrInvalidClaim},
		{"both leeways", func(e *RiscExpectations) {
			e.ExpiresAtLeeway = 5 * time.Second
			e.NotBeforeLeeway = 5 * time.Second
		}, nil},
		{"nbf leeway independent of iat", func(e *RiscExpectations) {
			e.ExpiresAtLeeway = 5 * time.Second
			e.IssuedAtLeeway = time.Hour
			e.NotBeforeLeeway = 0
		}, jwtkit.ErrInvalidClaim},
		{"audience", func(e *RiscExpectations) {
			e.ExpiresAtLeeway = 5 * time.Second
			e.NotBeforeLeeway = 5 * time.Second
			e.Audience = []string{"other"}
		}, jwtkit.ErrInvalidClaim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := riscExpectations()
			tt.modify(&e)
			v, err := RequireRisc(alg).VerifierForRisc(e)
			if err != nil {
				t.Fatalf("Failed to configure verification: %v", err)
			}
			_, err = verify(t, v, token)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Expected success, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRiscMissingStandardClaims(t *testing.T) {
	_, err := NewRiscCreator().WithIssuer("issuer").WithIssuedAt(iat).Sign(hmac(t))
	if err == nil || err.Error() != "standard claim: Subject has not been set" {
		t.Errorf("Expected missing Subject, got %v", err)
	}
}

// ============================================================================
// UNSUPPORTED FACTORIES
// ============================================================================

func TestUnsupportedFactories(t *testing.T) {
	alg := hmac(t)

	tests := []struct {
		name string
		call func() (*jwtkit.Verification, error)
	}{
		{"google as facebook", func() (*jwtkit.Verification, error) {
			return RequireGoogle(alg).VerifierForFacebook(FacebookExpectations{})
		}},
		{"google as extended", func() (*jwtkit.Verification, error) {
			return RequireGoogle(alg).VerifierForExtended(ExtendedExpectations{})
		}},
		{"facebook as risc", func() (*jwtkit.Verification, error) {
			return RequireFacebook(alg).VerifierForRisc(RiscExpectations{})
		}},
		{"risc as google", func() (*jwtkit.Verification, error) {
			return RequireRisc(alg).VerifierForGoogle(GoogleExpectations{})
		}},
		{"extended as risc", func() (*jwtkit.Verification, error) {
			return RequireExtended(alg).VerifierForRisc(RiscExpectations{})
		}},
		{"unimplemented", func() (*jwtkit.Verification, error) {
			return UnimplementedVerification{}.VerifierForGoogle(GoogleExpectations{})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.call()
			if v != nil {
				t.Error("Expected no verification")
			}
			if !errors.Is(err, jwtkit.ErrUnsupportedOperation) {
				t.Fatalf("Expected ErrUnsupportedOperation, got %v", err)
			}
			if !strings.Contains(err.Error(), "you shouldn't be calling this method") {
				t.Errorf("Unexpected message %q", err.Error())
			}
		})
	}

	var _ Verification = RequireGoogle(alg)
	var _ Verification = RequireExtended(alg)
	var _ Verification = RequireFacebook(alg)
	var _ Verification = RequireRisc(alg)
}
