package jwtkit

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/cybergodev/jwtkit/internal/security"
)

// Verifier checks compact tokens against a fixed Algorithm and set of claim
// requirements. It is immutable and safe for concurrent use.
type Verifier struct {
	alg        Algorithm
	predicates []predicate
	allowNone  bool
	encoding   Encoding
	clock      Clock
	logger     zerolog.Logger
}

// Verify decodes token, checks its algorithm and signature, then evaluates
// every registered requirement at the clock's current instant. Checks run in
// that order and the first failure is returned.
func (v *Verifier) Verify(token string) (*DecodedToken, error) {
	decoded, err := DecodeEncoded(token, v.encoding)
	if err != nil {
		return nil, v.reject("decode", err)
	}

	if declared := decoded.Algorithm(); declared != v.alg.Name() {
		return nil, v.reject("algorithm", &AlgorithmMismatchError{Expected: v.alg.Name(), Actual: declared})
	}

	if v.alg.Name() == noneName && !v.allowNone {
		return nil, v.reject("policy", ErrNoneAlgorithmNotAllowed)
	}

	if err := v.alg.Verify(decoded.KeyID(), []byte(decoded.SignedContent()), decoded.parts.Signature); err != nil {
		security.SecureRandomDelay()
		var sigErr *SignatureVerificationError
		if !errors.As(err, &sigErr) {
			err = &SignatureVerificationError{Algorithm: v.alg.Description(), Err: err}
		}
		return nil, v.reject("signature", err)
	}

	now := v.clock.Now().Unix()
	claims := decoded.Claims()
	for _, p := range v.predicates {
		if err := p.check(claims, now); err != nil {
			return nil, v.reject("claims", err)
		}
	}
	return decoded, nil
}

// Algorithm returns the algorithm tokens must be signed with.
func (v *Verifier) Algorithm() Algorithm { return v.alg }

func (v *Verifier) reject(stage string, err error) error {
	event := v.logger.Debug().Str("stage", stage).Str("alg", v.alg.Name())
	var claimErr *InvalidClaimError
	if errors.As(err, &claimErr) {
		event = event.Str("claim", claimErr.Claim)
	}
	if stage != "signature" {
		event = event.Err(err)
	}
	event.Msg("token rejected")
	return err
}
