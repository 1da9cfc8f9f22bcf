package signing

import (
	"crypto"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidKey reports missing key material or key material of the wrong type.
	ErrInvalidKey = errors.New("invalid key")

	// ErrSignatureInvalid reports a signature that does not match the content.
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrHashUnavailable reports a hash function not linked into the binary.
	ErrHashUnavailable = errors.New("hash function not available")
)

// Method is a signing primitive over raw bytes.
type Method interface {
	Alg() string
	Hash() crypto.Hash
	Sign(signingInput []byte, key any) ([]byte, error)
	Verify(signingInput, signature []byte, key any) error
}

var methods = map[string]Method{
	"HS256": hmacHS256,
	"HS384": hmacHS384,
	"HS512": hmacHS512,
	"RS256": rsaRS256,
	"RS384": rsaRS384,
	"RS512": rsaRS512,
	"PS256": rsaPS256,
	"PS384": rsaPS384,
	"PS512": rsaPS512,
	"ES256": ecdsaES256,
	"ES384": ecdsaES384,
	"ES512": ecdsaES512,
	"EdDSA": eddsaEd25519,
}

// GetMethod returns the signing method registered under alg. Names are case
// sensitive.
func GetMethod(alg string) (Method, error) {
	if m, ok := methods[alg]; ok {
		return m, nil
	}
	if isInsecureAlgorithm(alg) {
		return nil, fmt.Errorf("algorithm %q is not secure", alg)
	}
	return nil, fmt.Errorf("unsupported signing method: %s", alg)
}

var insecureAlgorithms = map[string]struct{}{
	"":      {},
	"NONE":  {},
	"NULL":  {},
	"PLAIN": {},
	"HS1":   {},
	"RS1":   {},
	"ES1":   {},
	"HS224": {},
	"RS224": {},
	"ES224": {},
}

func isInsecureAlgorithm(alg string) bool {
	_, exists := insecureAlgorithms[strings.ToUpper(strings.TrimSpace(alg))]
	return exists
}

// guard converts a panic raised by a primitive on malformed key material into
// ErrInvalidKey.
func guard(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrInvalidKey, r)
	}
}
