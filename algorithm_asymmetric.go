package jwtkit

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"fmt"

	"github.com/cybergodev/jwtkit/internal/signing"
)

var errNoKeys = illegalArgument("keys", "both provided keys cannot be nil")

// keyPairAlgorithm is the shared implementation of the public-key variants.
// Keys are always resolved through the provider so that rotation does not
// require a new Algorithm.
type keyPairAlgorithm[Pub, Priv any] struct {
	method      signing.Method
	description string
	provider    KeyProvider[Pub, Priv]
}

func newKeyPair[Pub, Priv any](name, description string, provider KeyProvider[Pub, Priv]) (keyPairAlgorithm[Pub, Priv], error) {
	if provider == nil {
		return keyPairAlgorithm[Pub, Priv]{}, illegalArgument("provider", "the key provider cannot be nil")
	}
	method, err := signing.GetMethod(name)
	if err != nil {
		return keyPairAlgorithm[Pub, Priv]{}, illegalArgument("algorithm", "%v", err)
	}
	return keyPairAlgorithm[Pub, Priv]{method: method, description: description, provider: provider}, nil
}

func (a *keyPairAlgorithm[Pub, Priv]) Name() string        { return a.method.Alg() }
func (a *keyPairAlgorithm[Pub, Priv]) Description() string { return a.description }
func (a *keyPairAlgorithm[Pub, Priv]) algorithm()          {}

func (a *keyPairAlgorithm[Pub, Priv]) SigningKeyID() string {
	return a.provider.PrivateKeyID()
}

func (a *keyPairAlgorithm[Pub, Priv]) Sign(content []byte) ([]byte, error) {
	key, err := a.provider.PrivateKey()
	if err != nil {
		return nil, &SignatureGenerationError{Algorithm: a.description, Err: err}
	}
	sig, err := a.method.Sign(content, key)
	if err != nil {
		return nil, &SignatureGenerationError{Algorithm: a.description, Err: err}
	}
	return sig, nil
}

func (a *keyPairAlgorithm[Pub, Priv]) Verify(keyID string, content, signature []byte) error {
	key, err := a.provider.PublicKeyByID(keyID)
	if err != nil {
		return &SignatureVerificationError{Algorithm: a.description, Err: err}
	}
	if err := a.method.Verify(content, signature, key); err != nil {
		return &SignatureVerificationError{Algorithm: a.description, Err: err}
	}
	return nil
}

func (a *keyPairAlgorithm[Pub, Priv]) String() string { return a.Name() }

// RSAAlgorithm is an RSA PKCS#1 v1.5 (RS*) or RSA-PSS (PS*) algorithm.
type RSAAlgorithm struct {
	keyPairAlgorithm[*rsa.PublicKey, *rsa.PrivateKey]
}

// ECDSAAlgorithm is an ECDSA algorithm (ES256 on P-256, ES384 on P-384,
// ES512 on P-521).
type ECDSAAlgorithm struct {
	keyPairAlgorithm[*ecdsa.PublicKey, *ecdsa.PrivateKey]
}

// EdDSAAlgorithm is the Ed25519 EdDSA algorithm.
type EdDSAAlgorithm struct {
	keyPairAlgorithm[ed25519.PublicKey, ed25519.PrivateKey]
}

func newRSA(name, description string, provider RSAKeyProvider) (*RSAAlgorithm, error) {
	base, err := newKeyPair(name, description, provider)
	if err != nil {
		return nil, err
	}
	return &RSAAlgorithm{base}, nil
}

func newECDSA(name, description string, provider ECDSAKeyProvider) (*ECDSAAlgorithm, error) {
	base, err := newKeyPair(name, description, provider)
	if err != nil {
		return nil, err
	}
	return &ECDSAAlgorithm{base}, nil
}

// RSA256 returns an RS256 algorithm. Either key may be nil when the
// algorithm is only used to verify or only used to sign.
func RSA256(publicKey *rsa.PublicKey, privateKey *rsa.PrivateKey) (*RSAAlgorithm, error) {
	if publicKey == nil && privateKey == nil {
		return nil, errNoKeys
	}
	return RSA256WithProvider(StaticRSAKeys(publicKey, privateKey))
}

// RSA384 returns an RS384 algorithm.
func RSA384(publicKey *rsa.PublicKey, privateKey *rsa.PrivateKey) (*RSAAlgorithm, error) {
	if publicKey == nil && privateKey == nil {
		return nil, errNoKeys
	}
	return RSA384WithProvider(StaticRSAKeys(publicKey, privateKey))
}

// RSA512 returns an RS512 algorithm.
func RSA512(publicKey *rsa.PublicKey, privateKey *rsa.PrivateKey) (*RSAAlgorithm, error) {
	if publicKey == nil && privateKey == nil {
		return nil, errNoKeys
	}
	return RSA512WithProvider(StaticRSAKeys(publicKey, privateKey))
}

func RSA256WithProvider(provider RSAKeyProvider) (*RSAAlgorithm, error) {
	return newRSA("RS256", "SHA256withRSA", provider)
}

func RSA384WithProvider(provider RSAKeyProvider) (*RSAAlgorithm, error) {
	return newRSA("RS384", "SHA384withRSA", provider)
}

func RSA512WithProvider(provider RSAKeyProvider) (*RSAAlgorithm, error) {
	return newRSA("RS512", "SHA512withRSA", provider)
}

// PSS256 returns a PS256 (RSASSA-PSS with SHA-256) algorithm.
func PSS256(publicKey *rsa.PublicKey, privateKey *rsa.PrivateKey) (*RSAAlgorithm, error) {
	if publicKey == nil && privateKey == nil {
		return nil, errNoKeys
	}
	return PSS256WithProvider(StaticRSAKeys(publicKey, privateKey))
}

// PSS384 returns a PS384 algorithm.
func PSS384(publicKey *rsa.PublicKey, privateKey *rsa.PrivateKey) (*RSAAlgorithm, error) {
	if publicKey == nil && privateKey == nil {
		return nil, errNoKeys
	}
	return PSS384WithProvider(StaticRSAKeys(publicKey, privateKey))
}

// PSS512 returns a PS512 algorithm.
func PSS512(publicKey *rsa.PublicKey, privateKey *rsa.PrivateKey) (*RSAAlgorithm, error) {
	if publicKey == nil && privateKey == nil {
		return nil, errNoKeys
	}
	return PSS512WithProvider(StaticRSAKeys(publicKey, privateKey))
}

func PSS256WithProvider(provider RSAKeyProvider) (*RSAAlgorithm, error) {
	return newRSA("PS256", "SHA256withRSAandMGF1", provider)
}

func PSS384WithProvider(provider RSAKeyProvider) (*RSAAlgorithm, error) {
	return newRSA("PS384", "SHA384withRSAandMGF1", provider)
}

func PSS512WithProvider(provider RSAKeyProvider) (*RSAAlgorithm, error) {
	return newRSA("PS512", "SHA512withRSAandMGF1", provider)
}

// ECDSA256 returns an ES256 algorithm.
func ECDSA256(publicKey *ecdsa.PublicKey, privateKey *ecdsa.PrivateKey) (*ECDSAAlgorithm, error) {
	if publicKey == nil && privateKey == nil {
		return nil, errNoKeys
	}
	return ECDSA256WithProvider(StaticECDSAKeys(publicKey, privateKey))
}

// ECDSA384 returns an ES384 algorithm.
func ECDSA384(publicKey *ecdsa.PublicKey, privateKey *ecdsa.PrivateKey) (*ECDSAAlgorithm, error) {
	if publicKey == nil && privateKey == nil {
		return nil, errNoKeys
	}
	return ECDSA384WithProvider(StaticECDSAKeys(publicKey, privateKey))
}

// ECDSA512 returns an ES512 algorithm.
func ECDSA512(publicKey *ecdsa.PublicKey, privateKey *ecdsa.PrivateKey) (*ECDSAAlgorithm, error) {
	if publicKey == nil && privateKey == nil {
		return nil, errNoKeys
	}
	return ECDSA512WithProvider(StaticECDSAKeys(publicKey, privateKey))
}

func ECDSA256WithProvider(provider ECDSAKeyProvider) (*ECDSAAlgorithm, error) {
	return newECDSA("ES256", "SHA256withECDSA", provider)
}

func ECDSA384WithProvider(provider ECDSAKeyProvider) (*ECDSAAlgorithm, error) {
	return newECDSA("ES384", "SHA384withECDSA", provider)
}

func ECDSA512WithProvider(provider ECDSAKeyProvider) (*ECDSAAlgorithm, error) {
	return newECDSA("ES512", "SHA512withECDSA", provider)
}

// Ed25519 returns an EdDSA algorithm over Ed25519 keys.
func Ed25519(publicKey ed25519.PublicKey, privateKey ed25519.PrivateKey) (*EdDSAAlgorithm, error) {
	if publicKey == nil && privateKey == nil {
		return nil, errNoKeys
	}
	return Ed25519WithProvider(StaticEdDSAKeys(publicKey, privateKey))
}

func Ed25519WithProvider(provider EdDSAKeyProvider) (*EdDSAAlgorithm, error) {
	base, err := newKeyPair("EdDSA", "Ed25519", provider)
	if err != nil {
		return nil, err
	}
	return &EdDSAAlgorithm{base}, nil
}

// AlgorithmFor returns the algorithm registered under name keyed by the given
// material: []byte for HS*, an RSAKeyProvider for RS* and PS*, an
// ECDSAKeyProvider for ES*, an EdDSAKeyProvider for EdDSA and nil for none.
func AlgorithmFor(name string, keys any) (Algorithm, error) {
	switch name {
	case "HS256", "HS384", "HS512":
		secret, ok := keys.([]byte)
		if !ok {
			return nil, illegalArgument("keys", "%s requires a []byte secret, got %T", name, keys)
		}
		return newHMAC(name, "Hmac"+shaName(name), secret)
	case "RS256", "RS384", "RS512", "PS256", "PS384", "PS512":
		provider, ok := keys.(RSAKeyProvider)
		if !ok {
			return nil, illegalArgument("keys", "%s requires an RSAKeyProvider, got %T", name, keys)
		}
		description := shaName(name) + "withRSA"
		if name[0] == 'P' {
			description += "andMGF1"
		}
		return newRSA(name, description, provider)
	case "ES256", "ES384", "ES512":
		provider, ok := keys.(ECDSAKeyProvider)
		if !ok {
			return nil, illegalArgument("keys", "%s requires an ECDSAKeyProvider, got %T", name, keys)
		}
		return newECDSA(name, shaName(name)+"withECDSA", provider)
	case "EdDSA":
		provider, ok := keys.(EdDSAKeyProvider)
		if !ok {
			return nil, illegalArgument("keys", "EdDSA requires an EdDSAKeyProvider, got %T", keys)
		}
		return Ed25519WithProvider(provider)
	case noneName:
		return None(), nil
	default:
		return nil, illegalArgument("algorithm", "unsupported algorithm %q", name)
	}
}

func shaName(name string) string {
	return fmt.Sprintf("SHA%s", name[2:])
}
