package signing

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"strings"
	"testing"
)

var signingInput = []byte("eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiJ0ZXN0In0")

type keyPair struct {
	private any
	public  any
}

func generateKeys(t *testing.T) map[string]keyPair {
	t.Helper()

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	p256, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate P-256 key: %v", err)
	}
	p384, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate P-384 key: %v", err)
	}
	p521, err := ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate P-521 key: %v", err)
	}
	edPub, edPriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate Ed25519 key: %v", err)
	}

	secret := []byte("secret")
	rsaPair := keyPair{rsaKey, &rsaKey.PublicKey}
	return map[string]keyPair{
		"HS256": {secret, secret},
		"HS384": {secret, secret},
		"HS512": {secret, secret},
		"RS256": rsaPair,
		"RS384": rsaPair,
		"RS512": rsaPair,
		"PS256": rsaPair,
		"PS384": rsaPair,
		"PS512": rsaPair,
		"ES256": {p256, &p256.PublicKey},
		"ES384": {p384, &p384.PublicKey},
		"ES512": {p521, &p521.PublicKey},
		"EdDSA": {edPriv, edPub},
	}
}

func TestGetMethod(t *testing.T) {
	tests := []struct {
		alg     string
		wantErr string
	}{
		{"HS256", ""},
		{"RS384", ""},
		{"PS512", ""},
		{"ES256", ""},
		{"EdDSA", ""},
		{"hs256", "unsupported signing method"},
		{"none", "not secure"},
		{"HS224", "not secure"},
		{"", "not secure"},
		{"XX999", "unsupported signing method"},
	}

	for _, tt := range tests {
		t.Run(tt.alg, func(t *testing.T) {
			method, err := GetMethod(tt.alg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("GetMethod(%q) error = %v", tt.alg, err)
				}
				if method.Alg() != tt.alg {
					t.Errorf("Alg() = %q, want %q", method.Alg(), tt.alg)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("GetMethod(%q) error = %v, want containing %q", tt.alg, err, tt.wantErr)
			}
		})
	}
}

func TestMethodHash(t *testing.T) {
	tests := []struct {
		alg  string
		want crypto.Hash
	}{
		{"HS256", crypto.SHA256},
		{"HS384", crypto.SHA384},
		{"HS512", crypto.SHA512},
		{"RS256", crypto.SHA256},
		{"PS384", crypto.SHA384},
		{"ES512", crypto.SHA512},
	}

	for _, tt := range tests {
		t.Run(tt.alg, func(t *testing.T) {
			method, _ := GetMethod(tt.alg)
			if method.Hash() != tt.want {
				t.Errorf("Hash() = %v, want %v", method.Hash(), tt.want)
			}
		})
	}
}

func TestSignAndVerify(t *testing.T) {
	keys := generateKeys(t)

	for alg, pair := range keys {
		t.Run(alg, func(t *testing.T) {
			method, err := GetMethod(alg)
			if err != nil {
				t.Fatalf("GetMethod failed: %v", err)
			}

			signature, err := method.Sign(signingInput, pair.private)
			if err != nil {
				t.Fatalf("Sign failed: %v", err)
			}
			if len(signature) == 0 {
				t.Fatal("Sign returned empty signature")
			}

			if err := method.Verify(signingInput, signature, pair.public); err != nil {
				t.Errorf("Verify failed: %v", err)
			}

			tampered := append([]byte(nil), signature...)
			tampered[len(tampered)/2] ^= 0x01
			if err := method.Verify(signingInput, tampered, pair.public); !errors.Is(err, ErrSignatureInvalid) {
				t.Errorf("Verify(tampered) error = %v, want ErrSignatureInvalid", err)
			}

			if err := method.Verify([]byte("other.content"), signature, pair.public); !errors.Is(err, ErrSignatureInvalid) {
				t.Errorf("Verify(other content) error = %v, want ErrSignatureInvalid", err)
			}
		})
	}
}

func TestSignInvalidKeys(t *testing.T) {
	keys := generateKeys(t)

	tests := []struct {
		alg string
		key any
	}{
		{"HS256", "string-key"},
		{"HS256", []byte{}},
		{"RS256", (*rsa.PrivateKey)(nil)},
		{"RS256", &rsa.PrivateKey{}},
		{"RS256", keys["RS256"].public},
		{"PS256", nil},
		{"ES256", (*ecdsa.PrivateKey)(nil)},
		{"ES256", keys["ES384"].private},
		{"EdDSA", ed25519.PrivateKey(nil)},
		{"EdDSA", keys["RS256"].private},
	}

	for _, tt := range tests {
		t.Run(tt.alg, func(t *testing.T) {
			method, _ := GetMethod(tt.alg)
			if _, err := method.Sign(signingInput, tt.key); err == nil {
				t.Errorf("Sign(%T) expected error, got nil", tt.key)
			}
		})
	}
}

func TestVerifyInvalidKeys(t *testing.T) {
	keys := generateKeys(t)

	tests := []struct {
		alg string
		key any
	}{
		{"HS256", "string-key"},
		{"RS256", (*rsa.PublicKey)(nil)},
		{"RS256", &rsa.PublicKey{}},
		{"RS256", keys["RS256"].private},
		{"ES256", (*ecdsa.PublicKey)(nil)},
		{"ES256", &ecdsa.PublicKey{}},
		{"EdDSA", ed25519.PublicKey([]byte("short"))},
	}

	for _, tt := range tests {
		t.Run(tt.alg, func(t *testing.T) {
			method, _ := GetMethod(tt.alg)
			signature, err := method.Sign(signingInput, keys[tt.alg].private)
			if err != nil {
				t.Fatalf("Sign failed: %v", err)
			}
			if err := method.Verify(signingInput, signature, tt.key); !errors.Is(err, ErrInvalidKey) {
				t.Errorf("Verify(%T) error = %v, want ErrInvalidKey", tt.key, err)
			}
		})
	}
}

func TestHMACVerifyWrongKey(t *testing.T) {
	method, _ := GetMethod("HS256")
	signature, err := method.Sign(signingInput, []byte("secret"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if err := method.Verify(signingInput, signature, []byte("other-secret")); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Verify(wrong key) error = %v, want ErrSignatureInvalid", err)
	}
	if err := method.Verify(signingInput, signature[:10], []byte("secret")); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Verify(truncated) error = %v, want ErrSignatureInvalid", err)
	}
}

func TestHMACKnownVector(t *testing.T) {
	// RFC 4231 test case 2.
	method, _ := GetMethod("HS256")
	signature, err := method.Sign([]byte("what do ya want for nothing?"), []byte("Jefe"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	const want = "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"
	const hexChars = "0123456789abcdef"
	got := make([]byte, 0, len(signature)*2)
	for _, b := range signature {
		got = append(got, hexChars[b>>4], hexChars[b&0x0f])
	}
	if string(got) != want {
		t.Errorf("HS256 = %s, want %s", got, want)
	}
}
