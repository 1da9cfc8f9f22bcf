package signing

import (
	"crypto"
	"crypto/hmac"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"fmt"

	"github.com/cybergodev/jwtkit/internal/security"
)

type hmacSigningMethod struct {
	Name     string
	HashFunc crypto.Hash
}

func hmacKey(key any) ([]byte, error) {
	k, ok := key.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: HMAC key must be []byte, got %T", ErrInvalidKey, key)
	}
	if len(k) == 0 {
		return nil, fmt.Errorf("%w: empty HMAC secret", ErrInvalidKey)
	}
	return k, nil
}

func (h *hmacSigningMethod) Verify(signingInput, signature []byte, key any) error {
	keyBytes, err := hmacKey(key)
	if err != nil {
		return err
	}

	if !h.HashFunc.Available() {
		return fmt.Errorf("%w: %v", ErrHashUnavailable, h.HashFunc)
	}

	hasher := hmac.New(h.HashFunc.New, keyBytes)
	hasher.Write(signingInput)
	expected := hasher.Sum(nil)
	defer security.ZeroBytes(expected)

	if !security.SecureCompare(signature, expected) {
		return ErrSignatureInvalid
	}

	return nil
}

func (h *hmacSigningMethod) Sign(signingInput []byte, key any) ([]byte, error) {
	keyBytes, err := hmacKey(key)
	if err != nil {
		return nil, err
	}

	if !h.HashFunc.Available() {
		return nil, fmt.Errorf("%w: %v", ErrHashUnavailable, h.HashFunc)
	}

	hasher := hmac.New(h.HashFunc.New, keyBytes)
	hasher.Write(signingInput)
	return hasher.Sum(nil), nil
}

func (h *hmacSigningMethod) Alg() string {
	return h.Name
}

func (h *hmacSigningMethod) Hash() crypto.Hash {
	return h.HashFunc
}

var (
	hmacHS256 = &hmacSigningMethod{"HS256", crypto.SHA256}
	hmacHS384 = &hmacSigningMethod{"HS384", crypto.SHA384}
	hmacHS512 = &hmacSigningMethod{"HS512", crypto.SHA512}
)
