package jwtkit

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"maps"
)

// ErrKeyNotFound is returned by KeySet when no public key has the requested id.
var ErrKeyNotFound = errors.New("no public key registered for key id")

// KeyProvider supplies key material to the public-key algorithms.
//
// PublicKeyByID receives the "kid" header of the token being verified ("" when
// absent). Implementations may block but must be safe for concurrent use.
type KeyProvider[Pub, Priv any] interface {
	PublicKeyByID(keyID string) (Pub, error)
	PrivateKey() (Priv, error)
	PrivateKeyID() string
}

type (
	RSAKeyProvider   = KeyProvider[*rsa.PublicKey, *rsa.PrivateKey]
	ECDSAKeyProvider = KeyProvider[*ecdsa.PublicKey, *ecdsa.PrivateKey]
	EdDSAKeyProvider = KeyProvider[ed25519.PublicKey, ed25519.PrivateKey]
)

// StaticKeys is a provider holding a single key pair. The key id is ignored on
// lookup. Either key may be the zero value.
type StaticKeys[Pub, Priv any] struct {
	Public  Pub
	Private Priv
	KeyID   string
}

func (s StaticKeys[Pub, Priv]) PublicKeyByID(string) (Pub, error) { return s.Public, nil }
func (s StaticKeys[Pub, Priv]) PrivateKey() (Priv, error)         { return s.Private, nil }
func (s StaticKeys[Pub, Priv]) PrivateKeyID() string              { return s.KeyID }

// StaticRSAKeys returns a StaticKeys provider for an RSA pair.
func StaticRSAKeys(publicKey *rsa.PublicKey, privateKey *rsa.PrivateKey) RSAKeyProvider {
	return StaticKeys[*rsa.PublicKey, *rsa.PrivateKey]{Public: publicKey, Private: privateKey}
}

// StaticECDSAKeys returns a StaticKeys provider for an ECDSA pair.
func StaticECDSAKeys(publicKey *ecdsa.PublicKey, privateKey *ecdsa.PrivateKey) ECDSAKeyProvider {
	return StaticKeys[*ecdsa.PublicKey, *ecdsa.PrivateKey]{Public: publicKey, Private: privateKey}
}

// StaticEdDSAKeys returns a StaticKeys provider for an Ed25519 pair.
func StaticEdDSAKeys(publicKey ed25519.PublicKey, privateKey ed25519.PrivateKey) EdDSAKeyProvider {
	return StaticKeys[ed25519.PublicKey, ed25519.PrivateKey]{Public: publicKey, Private: privateKey}
}

// KeySet is an immutable provider for key rotation: tokens are signed with one
// current key and verified against any registered public key by "kid".
type KeySet[Pub, Priv any] struct {
	signingID  string
	signingKey Priv
	public     map[string]Pub
}

// NewKeySet copies publicKeys; later changes to the map are not observed.
func NewKeySet[Pub, Priv any](signingKeyID string, signingKey Priv, publicKeys map[string]Pub) *KeySet[Pub, Priv] {
	return &KeySet[Pub, Priv]{
		signingID:  signingKeyID,
		signingKey: signingKey,
		public:     maps.Clone(publicKeys),
	}
}

func (k *KeySet[Pub, Priv]) PublicKeyByID(keyID string) (Pub, error) {
	key, ok := k.public[keyID]
	if !ok {
		var zero Pub
		return zero, ErrKeyNotFound
	}
	return key, nil
}

func (k *KeySet[Pub, Priv]) PrivateKey() (Priv, error) { return k.signingKey, nil }
func (k *KeySet[Pub, Priv]) PrivateKeyID() string      { return k.signingID }

// Len returns the number of registered public keys.
func (k *KeySet[Pub, Priv]) Len() int { return len(k.public) }
