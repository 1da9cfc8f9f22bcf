package signing

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// asymmetricMethod adapts a golang-jwt signing method to Method, rejecting
// nil or zero-value keys before they reach the primitive.
type asymmetricMethod struct {
	impl         gojwt.SigningMethod
	hash         crypto.Hash
	checkPrivate func(key any) error
	checkPublic  func(key any) error
}

func (m *asymmetricMethod) Alg() string {
	return m.impl.Alg()
}

func (m *asymmetricMethod) Hash() crypto.Hash {
	return m.hash
}

func (m *asymmetricMethod) Sign(signingInput []byte, key any) (sig []byte, err error) {
	if err := m.checkPrivate(key); err != nil {
		return nil, err
	}
	if m.hash != 0 && !m.hash.Available() {
		return nil, fmt.Errorf("%w: %v", ErrHashUnavailable, m.hash)
	}

	defer guard(&err)
	return m.impl.Sign(string(signingInput), key)
}

func (m *asymmetricMethod) Verify(signingInput, signature []byte, key any) (err error) {
	if err := m.checkPublic(key); err != nil {
		return err
	}
	if m.hash != 0 && !m.hash.Available() {
		return fmt.Errorf("%w: %v", ErrHashUnavailable, m.hash)
	}

	defer guard(&err)
	if err := m.impl.Verify(string(signingInput), signature, key); err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	return nil
}

func rsaPrivate(key any) error {
	if k, ok := key.(*rsa.PrivateKey); !ok || k == nil || k.N == nil {
		return fmt.Errorf("%w: expected *rsa.PrivateKey, got %T", ErrInvalidKey, key)
	}
	return nil
}

func rsaPublic(key any) error {
	if k, ok := key.(*rsa.PublicKey); !ok || k == nil || k.N == nil {
		return fmt.Errorf("%w: expected *rsa.PublicKey, got %T", ErrInvalidKey, key)
	}
	return nil
}

func ecdsaPrivate(key any) error {
	if k, ok := key.(*ecdsa.PrivateKey); !ok || k == nil || k.Curve == nil || k.D == nil {
		return fmt.Errorf("%w: expected *ecdsa.PrivateKey, got %T", ErrInvalidKey, key)
	}
	return nil
}

func ecdsaPublic(key any) error {
	if k, ok := key.(*ecdsa.PublicKey); !ok || k == nil || k.Curve == nil || k.X == nil {
		return fmt.Errorf("%w: expected *ecdsa.PublicKey, got %T", ErrInvalidKey, key)
	}
	return nil
}

func ed25519Private(key any) error {
	if k, ok := key.(ed25519.PrivateKey); !ok || len(k) != ed25519.PrivateKeySize {
		return fmt.Errorf("%w: expected ed25519.PrivateKey, got %T", ErrInvalidKey, key)
	}
	return nil
}

func ed25519Public(key any) error {
	if k, ok := key.(ed25519.PublicKey); !ok || len(k) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: expected ed25519.PublicKey, got %T", ErrInvalidKey, key)
	}
	return nil
}

var (
	rsaRS256 = &asymmetricMethod{gojwt.SigningMethodRS256, crypto.SHA256, rsaPrivate, rsaPublic}
	rsaRS384 = &asymmetricMethod{gojwt.SigningMethodRS384, crypto.SHA384, rsaPrivate, rsaPublic}
	rsaRS512 = &asymmetricMethod{gojwt.SigningMethodRS512, crypto.SHA512, rsaPrivate, rsaPublic}

	rsaPS256 = &asymmetricMethod{gojwt.SigningMethodPS256, crypto.SHA256, rsaPrivate, rsaPublic}
	rsaPS384 = &asymmetricMethod{gojwt.SigningMethodPS384, crypto.SHA384, rsaPrivate, rsaPublic}
	rsaPS512 = &asymmetricMethod{gojwt.SigningMethodPS512, crypto.SHA512, rsaPrivate, rsaPublic}

	ecdsaES256 = &asymmetricMethod{gojwt.SigningMethodES256, crypto.SHA256, ecdsaPrivate, ecdsaPublic}
	ecdsaES384 = &asymmetricMethod{gojwt.SigningMethodES384, crypto.SHA384, ecdsaPrivate, ecdsaPublic}
	ecdsaES512 = &asymmetricMethod{gojwt.SigningMethodES512, crypto.SHA512, ecdsaPrivate, ecdsaPublic}

	eddsaEd25519 = &asymmetricMethod{gojwt.SigningMethodEdDSA, 0, ed25519Private, ed25519Public}
)
