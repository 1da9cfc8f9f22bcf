// Package profile layers provider specific claim vocabularies over jwtkit.
//
// Each profile has a creator that refuses to sign until its standard claims
// are set, and a verification whose VerifierForX factory registers the
// profile's requirements on the shared jwtkit.Verification. Factories for
// other profiles return jwtkit.ErrUnsupportedOperation.
package profile

import (
	"time"

	"github.com/cybergodev/jwtkit"
)

// Verification is implemented by every profile verification.
type Verification interface {
	VerifierForGoogle(GoogleExpectations) (*jwtkit.Verification, error)
	VerifierForExtended(ExtendedExpectations) (*jwtkit.Verification, error)
	VerifierForFacebook(FacebookExpectations) (*jwtkit.Verification, error)
	VerifierForRisc(RiscExpectations) (*jwtkit.Verification, error)
}

// UnimplementedVerification answers every factory with an
// UnsupportedOperationError. Profiles embed it and override their own.
type UnimplementedVerification struct{}

func (UnimplementedVerification) VerifierForGoogle(GoogleExpectations) (*jwtkit.Verification, error) {
	return nil, &jwtkit.UnsupportedOperationError{Operation: "VerifierForGoogle"}
}

func (UnimplementedVerification) VerifierForExtended(ExtendedExpectations) (*jwtkit.Verification, error) {
	return nil, &jwtkit.UnsupportedOperationError{Operation: "VerifierForExtended"}
}

func (UnimplementedVerification) VerifierForFacebook(FacebookExpectations) (*jwtkit.Verification, error) {
	return nil, &jwtkit.UnsupportedOperationError{Operation: "VerifierForFacebook"}
}

func (UnimplementedVerification) VerifierForRisc(RiscExpectations) (*jwtkit.Verification, error) {
	return nil, &jwtkit.UnsupportedOperationError{Operation: "VerifierForRisc"}
}

// GoogleExpectations are the values a Google style ID token must carry.
type GoogleExpectations struct {
	Picture  string
	Email    string
	Issuers  []string
	Audience []string
	Name     string

	ExpiresAtLeeway time.Duration
	IssuedAtLeeway  time.Duration
}

// ExtendedExpectations adds a not-before window to the Google profile.
type ExtendedExpectations struct {
	GoogleExpectations
	NotBeforeLeeway time.Duration
}

type FacebookExpectations struct {
	UserID string
	AppID  string
}

// RiscExpectations describe a security event token. Audience is optional.
// A negative ExpiresAtLeeway or NotBeforeLeeway leaves that window at the
// verification's default leeway.
type RiscExpectations struct {
	JWTID    string
	Issuers  []string
	Audience []string

	IssuedAtLeeway  time.Duration
	ExpiresAtLeeway time.Duration
	NotBeforeLeeway time.Duration
}

// Profile claim names.
const (
	ClaimPicture = "picture"
	ClaimEmail   = "email"
	ClaimName    = "name"
	ClaimUserID  = "userId"
	ClaimAppID   = "appId"
)
