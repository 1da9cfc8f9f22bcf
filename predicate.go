package jwtkit

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"time"
)

type predicateKind int

const (
	// predicateEqual: the claim equals a scalar, or contains every element of
	// a list.
	predicateEqual predicateKind = iota
	// predicateOneOf: some value of the claim is in the accepted set.
	predicateOneOf
	// predicatePresent: the claim is set and not null.
	predicatePresent
	// predicateExpiresAt: now <= claim + leeway.
	predicateExpiresAt
	// predicateNotBefore: now >= claim - leeway. Used for iat and nbf.
	predicateNotBefore
)

// predicate is one registered requirement on a payload claim.
type predicate struct {
	claim    string
	kind     predicateKind
	expected []any
	list     bool
	leeway   int64
	required bool
}

func (p predicate) check(claims Claims, now int64) error {
	c := claims.Get(p.claim)

	switch p.kind {
	case predicatePresent:
		if c.empty() {
			return &InvalidClaimError{Claim: p.claim, Message: "is not set"}
		}
		return nil

	case predicateExpiresAt, predicateNotBefore:
		if c.empty() {
			if p.required {
				return &InvalidClaimError{Claim: p.claim, Message: "is not set"}
			}
			return nil
		}
		seconds, ok := numericDate(c.Raw())
		if !ok {
			return &InvalidClaimError{Claim: p.claim, Message: "is not a numeric date"}
		}
		if p.kind == predicateExpiresAt {
			if now > saturatingAdd(seconds, p.leeway) {
				return &TokenExpiredError{ExpiresAt: time.Unix(seconds, 0).UTC()}
			}
			return nil
		}
		if now < saturatingAdd(seconds, -p.leeway) {
			return &InvalidClaimError{
				Claim:   p.claim,
				Message: "is in the future: the token can't be used before " + time.Unix(seconds, 0).UTC().Format(time.RFC3339),
			}
		}
		return nil
	}

	if c.empty() {
		return &InvalidClaimError{Claim: p.claim, Message: "is not set"}
	}
	actual := actualValues(c.Raw())

	switch {
	case p.kind == predicateOneOf:
		for _, a := range actual {
			if containsValue(p.expected, a) {
				return nil
			}
		}
		if p.claim == ClaimAudience {
			return &InvalidClaimError{Claim: p.claim, Message: "value doesn't contain the required audience"}
		}
	case p.list:
		if containsAll(actual, p.expected) {
			return nil
		}
	default:
		if _, isList := listValues(c.Raw()); !isList && valuesEqual(p.expected[0], actual[0]) {
			return nil
		}
	}
	return &InvalidClaimError{Claim: p.claim, Message: "value doesn't match the required one"}
}

func saturatingAdd(a, b int64) int64 {
	sum := a + b
	if b > 0 && sum < a {
		return math.MaxInt64
	}
	if b < 0 && sum > a {
		return math.MinInt64
	}
	return sum
}

func listValues(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// actualValues treats a scalar claim as a one element list.
func actualValues(v any) []any {
	if l, ok := listValues(v); ok {
		return l
	}
	return []any{v}
}

// containsValue reports whether the decoded value v matches one of the
// expected values in set.
func containsValue(set []any, v any) bool {
	return slices.ContainsFunc(set, func(e any) bool { return valuesEqual(e, v) })
}

func containsAll(actual, expected []any) bool {
	for _, e := range expected {
		if !slices.ContainsFunc(actual, func(a any) bool { return valuesEqual(e, a) }) {
			return false
		}
	}
	return true
}

// valuesEqual compares a normalised expected value with a decoded claim
// value. Numbers compare by value regardless of JSON spelling.
func valuesEqual(expected, actual any) bool {
	switch e := expected.(type) {
	case string:
		a, ok := actual.(string)
		return ok && a == e
	case bool:
		a, ok := actual.(bool)
		return ok && a == e
	case int64:
		switch a := actual.(type) {
		case int64:
			return a == e
		case json.Number:
			if i, err := a.Int64(); err == nil {
				return i == e
			}
			f, err := a.Float64()
			return err == nil && f == float64(e)
		}
		return false
	case float64:
		switch a := actual.(type) {
		case int64:
			return float64(a) == e
		case json.Number:
			f, err := a.Float64()
			return err == nil && f == e
		}
		return false
	default:
		return false
	}
}

// expectedValues normalises a RequireClaim argument to scalars of type
// string, bool, int64 or float64. list reports whether value was a slice.
func expectedValues(value any) (values []any, list bool, err error) {
	if value == nil {
		return nil, false, fmt.Errorf("the expected value can't be null")
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if rv.Len() == 0 {
			return nil, true, fmt.Errorf("the expected list can't be empty")
		}
		values = make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			v, err := expectedScalar(rv.Index(i).Interface())
			if err != nil {
				return nil, true, err
			}
			values[i] = v
		}
		return values, true, nil
	}

	v, err := expectedScalar(value)
	if err != nil {
		return nil, false, err
	}
	return []any{v}, false, nil
}

func expectedScalar(value any) (any, error) {
	switch v := value.(type) {
	case string, bool, int64:
		return v, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, fmt.Errorf("the expected value %d overflows int64", v)
		}
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("the expected value %d overflows int64", v)
		}
		return int64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case time.Time:
		return v.Unix(), nil
	case NumericDate:
		return v.Unix(), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported expected value type %T", value)
	}
}
