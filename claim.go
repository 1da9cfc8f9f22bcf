package jwtkit

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Registered claim and header names.
const (
	ClaimIssuer    = "iss"
	ClaimSubject   = "sub"
	ClaimAudience  = "aud"
	ClaimExpiresAt = "exp"
	ClaimNotBefore = "nbf"
	ClaimIssuedAt  = "iat"
	ClaimJWTID     = "jti"

	HeaderAlgorithm   = "alg"
	HeaderType        = "typ"
	HeaderContentType = "cty"
	HeaderKeyID       = "kid"
)

// Claim is a read-only view of one header or payload value. The zero Claim
// is missing: conversions on it return zero values without error.
type Claim struct {
	value   any
	present bool
}

func newClaim(value any) Claim {
	return Claim{value: value, present: true}
}

// IsMissing reports whether the claim was absent from the token.
func (c Claim) IsMissing() bool { return !c.present }

// IsNull reports whether the claim was present with a JSON null value.
func (c Claim) IsNull() bool { return c.present && c.value == nil }

// Raw returns the decoded value: string, bool, json.Number, int64 (time
// claims), []any, []string (aud), map[string]any or nil. Arrays and objects
// are copied.
func (c Claim) Raw() any { return cloneValue(c.value) }

func (c Claim) empty() bool { return !c.present || c.value == nil }

func (c Claim) conversionError(want string, err error) error {
	return &ClaimConversionError{Want: want, Got: jsonType(c.value), Err: err}
}

func (c Claim) AsString() (string, error) {
	if c.empty() {
		return "", nil
	}
	s, ok := c.value.(string)
	if !ok {
		return "", c.conversionError("string", nil)
	}
	return s, nil
}

func (c Claim) AsBool() (bool, error) {
	if c.empty() {
		return false, nil
	}
	b, ok := c.value.(bool)
	if !ok {
		return false, c.conversionError("bool", nil)
	}
	return b, nil
}

// AsInt64 accepts integral JSON numbers.
func (c Claim) AsInt64() (int64, error) {
	if c.empty() {
		return 0, nil
	}
	switch v := c.value.(type) {
	case int64:
		return v, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, c.conversionError("int64", err)
		}
		return n, nil
	default:
		return 0, c.conversionError("int64", nil)
	}
}

func (c Claim) AsInt() (int, error) {
	n, err := c.AsInt64()
	if err != nil {
		return 0, &ClaimConversionError{Want: "int", Got: jsonType(c.value), Err: err}
	}
	if n < math.MinInt || n > math.MaxInt {
		return 0, c.conversionError("int", fmt.Errorf("value %d overflows int", n))
	}
	return int(n), nil
}

func (c Claim) AsFloat64() (float64, error) {
	if c.empty() {
		return 0, nil
	}
	switch v := c.value.(type) {
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, c.conversionError("float64", err)
		}
		return f, nil
	default:
		return 0, c.conversionError("float64", nil)
	}
}

// AsDate reads the value as seconds since the Unix epoch. A missing claim
// yields the zero time.
func (c Claim) AsDate() (time.Time, error) {
	if c.empty() {
		return time.Time{}, nil
	}
	seconds, ok := numericDate(c.value)
	if !ok {
		return time.Time{}, c.conversionError("date", nil)
	}
	return time.Unix(seconds, 0).UTC(), nil
}

// AsList returns a copy of a JSON array value. Scalars are not promoted.
func (c Claim) AsList() ([]any, error) {
	if c.empty() {
		return nil, nil
	}
	switch v := c.value.(type) {
	case []any:
		return cloneValue(v).([]any), nil
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	default:
		return nil, c.conversionError("list", nil)
	}
}

// AsStrings returns an array of strings.
func (c Claim) AsStrings() ([]string, error) {
	return ListOf[string](c)
}

// AsMap returns a copy of a JSON object value.
func (c Claim) AsMap() (map[string]any, error) {
	if c.empty() {
		return nil, nil
	}
	m, ok := c.value.(map[string]any)
	if !ok {
		return nil, c.conversionError("object", nil)
	}
	return cloneValue(m).(map[string]any), nil
}

// As decodes the value into target, a non-nil pointer, matching struct fields
// by their json tag names.
func (c Claim) As(target any) error {
	if c.empty() {
		return nil
	}
	if err := decodeInto(c.value, target); err != nil {
		return c.conversionError(fmt.Sprintf("%T", target), err)
	}
	return nil
}

// ListOf converts an array claim element by element. T must be one of
// string, bool, int, int64, float64, time.Time or any.
func ListOf[T any](c Claim) ([]T, error) {
	items, err := c.AsList()
	if err != nil || items == nil {
		return nil, err
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if item == nil {
			out = append(out, *new(T))
			continue
		}

		elem := newClaim(item)
		var (
			v   any
			err error
		)
		switch any(*new(T)).(type) {
		case string:
			v, err = elem.AsString()
		case bool:
			v, err = elem.AsBool()
		case int:
			v, err = elem.AsInt()
		case int64:
			v, err = elem.AsInt64()
		case float64:
			v, err = elem.AsFloat64()
		case time.Time:
			v, err = elem.AsDate()
		default:
			v = item
		}
		if err != nil {
			return nil, &ClaimConversionError{Want: fmt.Sprintf("[]%T", *new(T)), Got: jsonType(c.value), Err: err}
		}
		t, ok := v.(T)
		if !ok {
			return nil, &ClaimConversionError{Want: fmt.Sprintf("[]%T", *new(T)), Got: jsonType(c.value)}
		}
		out = append(out, t)
	}
	return out, nil
}

// Claims is a read-only view of a header or payload.
type Claims struct {
	values map[string]any
}

// Get returns the named claim, or a missing Claim.
func (c Claims) Get(name string) Claim {
	v, ok := c.values[name]
	if !ok {
		return Claim{}
	}
	return newClaim(v)
}

func (c Claims) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

func (c Claims) Len() int { return len(c.values) }

// Names returns the claim names in lexical order.
func (c Claims) Names() []string {
	names := make([]string, 0, len(c.values))
	for name := range c.values {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Map returns a copy of the claims.
func (c Claims) Map() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = cloneValue(v)
	}
	return out
}

// Decode maps all claims onto target using json tag names.
func (c Claims) Decode(target any) error {
	if err := decodeInto(c.values, target); err != nil {
		return &ClaimConversionError{Want: fmt.Sprintf("%T", target), Got: "object", Err: err}
	}
	return nil
}

// cloneValue copies decoded arrays and objects recursively. Scalars are
// returned as is.
func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return slices.Clone(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

var timeType = reflect.TypeOf(time.Time{})

// numberToTime lets mapstructure fill time.Time fields from numeric dates.
func numberToTime(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	if seconds, ok := numericDate(data); ok {
		return time.Unix(seconds, 0).UTC(), nil
	}
	return data, nil
}

func decodeInto(input, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(numberToTime),
		Result:     target,
		TagName:    "json",
		Squash:     true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(cloneValue(input))
}

// numericDate reads whole seconds from a decoded JSON number. Fractions are
// truncated.
func numericDate(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		// float64(math.MaxInt64) rounds up to 2^63, which int64 can't hold.
		if err != nil || math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, int64, float64:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
