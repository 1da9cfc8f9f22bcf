package jwtkit

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds. Every error returned by this package matches exactly one of
// these through errors.Is, except ErrNoneAlgorithmNotAllowed which also
// matches ErrSecurity.
var (
	ErrDecode                  = errors.New("token decode failed")
	ErrAlgorithmMismatch       = errors.New("algorithm mismatch")
	ErrSecurity                = errors.New("security policy violation")
	ErrNoneAlgorithmNotAllowed = fmt.Errorf("%w: none algorithm isn't allowed", ErrSecurity)
	ErrSignatureGeneration     = errors.New("signature generation failed")
	ErrSignatureVerification   = errors.New("signature verification failed")
	ErrClaimConversion         = errors.New("claim conversion failed")
	ErrInvalidClaim            = errors.New("invalid claim")
	ErrTokenExpired            = errors.New("token expired")
	ErrIllegalArgument         = errors.New("illegal argument")
	ErrUnsupportedOperation    = errors.New("unsupported operation")
)

// DecodeError reports a malformed compact token, segment or JSON document.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode token: %s: %v", e.Reason, e.Err)
	}
	return "decode token: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// AlgorithmMismatchError reports a header algorithm different from the one
// the verifier is bound to.
type AlgorithmMismatchError struct {
	Expected string
	Actual   string
}

func (e *AlgorithmMismatchError) Error() string {
	return fmt.Sprintf("the provided algorithm %q doesn't match the one defined in the token header (%q)", e.Expected, e.Actual)
}

func (e *AlgorithmMismatchError) Is(target error) bool { return target == ErrAlgorithmMismatch }

// SignatureGenerationError wraps the failure of a signing primitive.
type SignatureGenerationError struct {
	Algorithm string
	Err       error
}

func (e *SignatureGenerationError) Error() string {
	return fmt.Sprintf("token signature couldn't be generated using algorithm %s: %v", e.Algorithm, e.Err)
}

func (e *SignatureGenerationError) Unwrap() error { return e.Err }

func (e *SignatureGenerationError) Is(target error) bool { return target == ErrSignatureGeneration }

// SignatureVerificationError reports an invalid signature. The message is the
// same whether the key or the signature was at fault; the cause is only
// reachable through Unwrap.
type SignatureVerificationError struct {
	Algorithm string
	Err       error
}

func (e *SignatureVerificationError) Error() string {
	return "token signature is invalid when verified using algorithm " + e.Algorithm
}

func (e *SignatureVerificationError) Unwrap() error { return e.Err }

func (e *SignatureVerificationError) Is(target error) bool { return target == ErrSignatureVerification }

// ClaimConversionError reports a claim whose JSON type doesn't fit the
// requested Go shape.
type ClaimConversionError struct {
	Want string
	Got  string
	Err  error
}

func (e *ClaimConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("claim of type %s can't be converted to %s: %v", e.Got, e.Want, e.Err)
	}
	return fmt.Sprintf("claim of type %s can't be converted to %s", e.Got, e.Want)
}

func (e *ClaimConversionError) Unwrap() error { return e.Err }

func (e *ClaimConversionError) Is(target error) bool { return target == ErrClaimConversion }

// InvalidClaimError reports a registered claim requirement that did not hold.
type InvalidClaimError struct {
	Claim   string
	Message string
}

func (e *InvalidClaimError) Error() string {
	return fmt.Sprintf("the claim '%s' %s", e.Claim, e.Message)
}

func (e *InvalidClaimError) Is(target error) bool { return target == ErrInvalidClaim }

// TokenExpiredError reports a token whose exp, plus leeway, lies in the past.
type TokenExpiredError struct {
	ExpiresAt time.Time
}

func (e *TokenExpiredError) Error() string {
	return "the token has expired on " + e.ExpiresAt.UTC().Format(time.RFC3339)
}

func (e *TokenExpiredError) Is(target error) bool { return target == ErrTokenExpired }

// IllegalArgumentError reports misuse of a builder.
type IllegalArgumentError struct {
	Argument string
	Message  string
}

func (e *IllegalArgumentError) Error() string {
	if e.Argument == "" {
		return e.Message
	}
	return e.Argument + ": " + e.Message
}

func (e *IllegalArgumentError) Is(target error) bool { return target == ErrIllegalArgument }

func illegalArgument(argument, format string, args ...any) error {
	return &IllegalArgumentError{Argument: argument, Message: fmt.Sprintf(format, args...)}
}

func decodeError(reason string, err error) error {
	return &DecodeError{Reason: reason, Err: err}
}

// UnsupportedOperationError reports a call that is not meaningful for the
// receiver, such as a profile factory for another profile.
type UnsupportedOperationError struct {
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return e.Operation + ": you shouldn't be calling this method"
}

func (e *UnsupportedOperationError) Is(target error) bool { return target == ErrUnsupportedOperation }
