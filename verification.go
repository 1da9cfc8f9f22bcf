package jwtkit

import (
	"errors"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// Verification collects the requirements a Verifier enforces. It is mutable
// until Build; the Verifier it produces is not affected by later calls.
//
// Registering a requirement for a claim replaces any earlier requirement on
// the same claim. Argument errors are collected and returned by Build.
type Verification struct {
	alg        Algorithm
	predicates []predicate
	leeway     int64
	windows    map[string]int64
	allowNone  bool
	encoding   Encoding
	logger     zerolog.Logger
	errs       []error
}

// Require starts a Verification for tokens signed with alg.
func Require(alg Algorithm) *Verification {
	v := &Verification{
		windows: make(map[string]int64),
		logger:  zerolog.Nop(),
	}
	if alg == nil {
		v.errs = append(v.errs, illegalArgument("algorithm", "the algorithm cannot be nil"))
	}
	v.alg = alg
	return v
}

func (v *Verification) fail(err error) *Verification {
	v.errs = append(v.errs, err)
	return v
}

func (v *Verification) register(p predicate) *Verification {
	if i := slices.IndexFunc(v.predicates, func(e predicate) bool { return e.claim == p.claim }); i >= 0 {
		v.predicates[i] = p
		return v
	}
	v.predicates = append(v.predicates, p)
	return v
}

// RequireClaim requires the claim to equal value. When value is a slice, the
// claim must contain every element of it.
func (v *Verification) RequireClaim(name string, value any) *Verification {
	if name == "" {
		return v.fail(illegalArgument("claim", "the custom claim's name can't be empty"))
	}
	expected, list, err := expectedValues(value)
	if err != nil {
		return v.fail(illegalArgument(name, "%v", err))
	}
	return v.register(predicate{claim: name, kind: predicateEqual, expected: expected, list: list})
}

// WithClaimPresence requires the claim to be set to a non-null value.
func (v *Verification) WithClaimPresence(name string) *Verification {
	if name == "" {
		return v.fail(illegalArgument("claim", "the custom claim's name can't be empty"))
	}
	return v.register(predicate{claim: name, kind: predicatePresent})
}

// WithIssuer accepts a token whose iss is one of issuers.
func (v *Verification) WithIssuer(issuers ...string) *Verification {
	return v.oneOf(ClaimIssuer, issuers)
}

// WithAudience accepts a token with at least one aud value in audience.
func (v *Verification) WithAudience(audience ...string) *Verification {
	return v.oneOf(ClaimAudience, audience)
}

func (v *Verification) WithSubject(subject string) *Verification {
	return v.RequireClaim(ClaimSubject, subject)
}

func (v *Verification) WithJWTID(id string) *Verification {
	return v.RequireClaim(ClaimJWTID, id)
}

func (v *Verification) oneOf(name string, accepted []string) *Verification {
	if len(accepted) == 0 {
		return v.fail(illegalArgument(name, "at least one accepted value is required"))
	}
	expected := make([]any, len(accepted))
	for i, s := range accepted {
		expected[i] = s
	}
	return v.register(predicate{claim: name, kind: predicateOneOf, expected: expected})
}

// AcceptLeeway sets the leeway used for every time claim without its own.
func (v *Verification) AcceptLeeway(leeway time.Duration) *Verification {
	seconds, err := leewaySeconds(leeway)
	if err != nil {
		return v.fail(err)
	}
	v.leeway = seconds
	return v
}

// AcceptIssuedAt sets the leeway applied to iat.
func (v *Verification) AcceptIssuedAt(leeway time.Duration) *Verification {
	return v.window(ClaimIssuedAt, leeway)
}

// AcceptExpiresAt sets the leeway applied to exp.
func (v *Verification) AcceptExpiresAt(leeway time.Duration) *Verification {
	return v.window(ClaimExpiresAt, leeway)
}

// AcceptNotBefore sets the leeway applied to nbf.
func (v *Verification) AcceptNotBefore(leeway time.Duration) *Verification {
	return v.window(ClaimNotBefore, leeway)
}

func (v *Verification) window(name string, leeway time.Duration) *Verification {
	seconds, err := leewaySeconds(leeway)
	if err != nil {
		return v.fail(err)
	}
	v.windows[name] = seconds
	return v
}

// leewaySeconds truncates to whole seconds.
func leewaySeconds(leeway time.Duration) (int64, error) {
	if leeway < 0 {
		return 0, illegalArgument("leeway", "leeway value can't be negative")
	}
	return int64(leeway / time.Second), nil
}

// AllowNone permits tokens declaring the "none" algorithm. The Verification
// must also have been started with None().
func (v *Verification) AllowNone(allow bool) *Verification {
	v.allowNone = allow
	return v
}

// WithEncoding selects the signature segment encoding tokens are expected in.
func (v *Verification) WithEncoding(enc Encoding) *Verification {
	if !enc.valid() {
		return v.fail(illegalArgument("encoding", "unknown encoding %s", enc))
	}
	v.encoding = enc
	return v
}

// WithLogger sets the logger receiving a debug event per rejected token.
func (v *Verification) WithLogger(logger zerolog.Logger) *Verification {
	v.logger = logger
	return v
}

// Err returns the argument errors collected so far.
func (v *Verification) Err() error {
	return errors.Join(v.errs...)
}

// Build returns a Verifier reading the wall clock.
func (v *Verification) Build() (*Verifier, error) {
	return v.BuildWithClock(SystemClock{})
}

// BuildWithClock returns a Verifier that evaluates time claims at clock.Now().
func (v *Verification) BuildWithClock(clock Clock) (*Verifier, error) {
	err := v.Err()
	if clock == nil {
		err = errors.Join(err, illegalArgument("clock", "the clock cannot be nil"))
	}
	if err != nil {
		return nil, err
	}

	predicates := make([]predicate, 0, len(v.predicates)+3)
	for _, p := range v.predicates {
		if p.claim == ClaimExpiresAt || p.claim == ClaimIssuedAt || p.claim == ClaimNotBefore {
			if p.kind == predicatePresent {
				continue
			}
		}
		predicates = append(predicates, p)
	}
	for _, name := range []string{ClaimExpiresAt, ClaimIssuedAt, ClaimNotBefore} {
		leeway, ok := v.windows[name]
		if !ok {
			leeway = v.leeway
		}
		kind := predicateNotBefore
		if name == ClaimExpiresAt {
			kind = predicateExpiresAt
		}
		predicates = append(predicates, predicate{
			claim:    name,
			kind:     kind,
			leeway:   leeway,
			required: v.requiresPresence(name),
		})
	}

	return &Verifier{
		alg:        v.alg,
		predicates: predicates,
		allowNone:  v.allowNone,
		encoding:   v.encoding,
		clock:      clock,
		logger:     v.logger,
	}, nil
}

func (v *Verification) requiresPresence(name string) bool {
	return slices.ContainsFunc(v.predicates, func(p predicate) bool {
		return p.claim == name && p.kind == predicatePresent
	})
}
