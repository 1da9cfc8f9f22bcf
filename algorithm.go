package jwtkit

import (
	"github.com/cybergodev/jwtkit/internal/security"
	"github.com/cybergodev/jwtkit/internal/signing"
)

// Algorithm signs and verifies the "header.payload" bytes of a token.
//
// The set of implementations is closed: HMACAlgorithm, RSAAlgorithm,
// ECDSAAlgorithm, EdDSAAlgorithm and NoneAlgorithm. Algorithms are safe for
// concurrent use; apart from HMACAlgorithm.Destroy they never change.
type Algorithm interface {
	// Name is the value written to and expected in the "alg" header.
	Name() string

	// Description names the underlying primitive, e.g. "SHA256withRSA".
	Description() string

	// SigningKeyID returns the id of the key Sign uses, or "".
	SigningKeyID() string

	// Sign returns the raw signature over content.
	Sign(content []byte) ([]byte, error)

	// Verify checks signature over content. keyID selects the public key for
	// algorithms backed by a key provider and is ignored otherwise.
	Verify(keyID string, content, signature []byte) error

	algorithm()
}

const noneName = "none"

// HMACAlgorithm is a shared-secret algorithm (HS256, HS384, HS512).
type HMACAlgorithm struct {
	method      signing.Method
	description string
	secret      *security.SecureBytes
}

// HMAC256 returns an HS256 algorithm keyed by secret.
func HMAC256(secret []byte) (*HMACAlgorithm, error) {
	return newHMAC("HS256", "HmacSHA256", secret)
}

// HMAC384 returns an HS384 algorithm keyed by secret.
func HMAC384(secret []byte) (*HMACAlgorithm, error) {
	return newHMAC("HS384", "HmacSHA384", secret)
}

// HMAC512 returns an HS512 algorithm keyed by secret.
func HMAC512(secret []byte) (*HMACAlgorithm, error) {
	return newHMAC("HS512", "HmacSHA512", secret)
}

func newHMAC(name, description string, secret []byte) (*HMACAlgorithm, error) {
	if len(secret) == 0 {
		return nil, illegalArgument("secret", "the secret cannot be empty")
	}
	method, err := signing.GetMethod(name)
	if err != nil {
		return nil, illegalArgument("algorithm", "%v", err)
	}
	return &HMACAlgorithm{
		method:      method,
		description: description,
		secret:      security.NewSecureBytesFromSlice(secret),
	}, nil
}

func (a *HMACAlgorithm) Name() string        { return a.method.Alg() }
func (a *HMACAlgorithm) Description() string { return a.description }
func (a *HMACAlgorithm) SigningKeyID() string { return "" }
func (a *HMACAlgorithm) algorithm()          {}

func (a *HMACAlgorithm) Sign(content []byte) ([]byte, error) {
	var sig []byte
	err := a.secret.Use(func(secret []byte) (err error) {
		sig, err = a.method.Sign(content, secret)
		return err
	})
	if err != nil {
		return nil, &SignatureGenerationError{Algorithm: a.description, Err: err}
	}
	return sig, nil
}

func (a *HMACAlgorithm) Verify(_ string, content, signature []byte) error {
	err := a.secret.Use(func(secret []byte) error {
		return a.method.Verify(content, signature, secret)
	})
	if err != nil {
		return &SignatureVerificationError{Algorithm: a.description, Err: err}
	}
	return nil
}

// Destroy zeroes the secret once in-flight Sign and Verify calls return.
// Sign and Verify fail afterwards.
func (a *HMACAlgorithm) Destroy() {
	a.secret.Destroy()
}

func (a *HMACAlgorithm) String() string { return a.Name() }

// NoneAlgorithm produces unsigned tokens. Verifiers reject it unless
// explicitly allowed.
type NoneAlgorithm struct{}

// None returns the "none" algorithm.
func None() NoneAlgorithm { return NoneAlgorithm{} }

func (NoneAlgorithm) Name() string         { return noneName }
func (NoneAlgorithm) Description() string  { return noneName }
func (NoneAlgorithm) SigningKeyID() string { return "" }
func (NoneAlgorithm) algorithm()           {}

func (NoneAlgorithm) Sign([]byte) ([]byte, error) { return []byte{}, nil }

// Verify accepts only an empty signature.
func (NoneAlgorithm) Verify(_ string, _, signature []byte) error {
	if len(signature) != 0 {
		return &SignatureVerificationError{Algorithm: noneName, Err: signing.ErrSignatureInvalid}
	}
	return nil
}

func (NoneAlgorithm) String() string { return noneName }
