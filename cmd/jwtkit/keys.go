package main

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/cybergodev/jwtkit"
	"github.com/cybergodev/jwtkit/internal/security"
)

// keyOptions selects the algorithm and the key material it is built from.
type keyOptions struct {
	alg       string
	secret    string
	keyFile   string
	keyID     string
	allowNone bool
}

func (o *keyOptions) secretBytes() ([]byte, error) {
	secret := o.secret
	if secret == "" {
		secret = viper.GetString(SecretKey)
	}
	if secret == "" {
		return nil, fmt.Errorf("%s requires a secret, provide via --secret or JWTKIT_SECRET", o.alg)
	}
	if reason := security.WeakSecretReason([]byte(secret)); reason != "" {
		log.Warn().Str("reason", reason).Msg("HMAC secret is weak")
	}
	return []byte(secret), nil
}

func (o *keyOptions) readKey() ([]byte, error) {
	if o.keyFile == "" {
		return nil, fmt.Errorf("%s requires a PEM key, provide via --key", o.alg)
	}
	data, err := os.ReadFile(o.keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return data, nil
}

// algorithm builds the configured algorithm. Signing loads a private key,
// verification a public key.
func (o *keyOptions) algorithm(signing bool) (jwtkit.Algorithm, error) {
	name := o.alg
	switch {
	case name == "none":
		if !o.allowNone {
			return nil, jwtkit.ErrNoneAlgorithmNotAllowed
		}
		return jwtkit.None(), nil
	case strings.HasPrefix(name, "HS"):
		secret, err := o.secretBytes()
		if err != nil {
			return nil, err
		}
		return jwtkit.AlgorithmFor(name, secret)
	}

	data, err := o.readKey()
	if err != nil {
		return nil, err
	}

	var keys any
	switch {
	case strings.HasPrefix(name, "RS"), strings.HasPrefix(name, "PS"):
		keys, err = rsaKeys(data, signing, o.keyID)
	case strings.HasPrefix(name, "ES"):
		keys, err = ecdsaKeys(data, signing, o.keyID)
	case name == "EdDSA":
		keys, err = edKeys(data, signing, o.keyID)
	default:
		return nil, fmt.Errorf("unsupported algorithm %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s key: %w", name, err)
	}
	return jwtkit.AlgorithmFor(name, keys)
}

func rsaKeys(data []byte, signing bool, keyID string) (jwtkit.RSAKeyProvider, error) {
	if signing {
		key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
		if err != nil {
			return nil, err
		}
		return jwtkit.StaticKeys[*rsa.PublicKey, *rsa.PrivateKey]{Public: &key.PublicKey, Private: key, KeyID: keyID}, nil
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(data)
	if err != nil {
		return nil, err
	}
	return jwtkit.StaticRSAKeys(key, nil), nil
}

func ecdsaKeys(data []byte, signing bool, keyID string) (jwtkit.ECDSAKeyProvider, error) {
	if signing {
		key, err := jwt.ParseECPrivateKeyFromPEM(data)
		if err != nil {
			return nil, err
		}
		return jwtkit.StaticKeys[*ecdsa.PublicKey, *ecdsa.PrivateKey]{Public: &key.PublicKey, Private: key, KeyID: keyID}, nil
	}
	key, err := jwt.ParseECPublicKeyFromPEM(data)
	if err != nil {
		return nil, err
	}
	return jwtkit.StaticECDSAKeys(key, nil), nil
}

func edKeys(data []byte, signing bool, keyID string) (jwtkit.EdDSAKeyProvider, error) {
	if signing {
		parsed, err := jwt.ParseEdPrivateKeyFromPEM(data)
		if err != nil {
			return nil, err
		}
		key, ok := parsed.(ed25519.PrivateKey)
		if !ok {
			return nil, errors.New("not an Ed25519 private key")
		}
		return jwtkit.StaticKeys[ed25519.PublicKey, ed25519.PrivateKey]{
			Public:  key.Public().(ed25519.PublicKey),
			Private: key,
			KeyID:   keyID,
		}, nil
	}
	parsed, err := jwt.ParseEdPublicKeyFromPEM(data)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("not an Ed25519 public key")
	}
	return jwtkit.StaticEdDSAKeys(key, nil), nil
}
