package jwtkit

import (
	"fmt"
	"time"
)

// Clock supplies the instant a Verifier evaluates time claims against.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// maxNumericDate is 9999-12-31T23:59:59Z.
const maxNumericDate = 253402300799

// NumericDate is a JSON numeric date: whole seconds since the Unix epoch.
type NumericDate struct {
	time.Time
}

// NewNumericDate truncates t to whole seconds.
func NewNumericDate(t time.Time) NumericDate {
	return NumericDate{Time: time.Unix(t.Unix(), 0).UTC()}
}

// MarshalJSON writes the date as an integer, or null for the zero time.
func (date NumericDate) MarshalJSON() ([]byte, error) {
	if date.Time.IsZero() {
		return []byte("null"), nil
	}
	return fmt.Appendf(nil, "%d", date.Unix()), nil
}

// UnmarshalJSON accepts an integer number of seconds or null.
func (date *NumericDate) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "" || s == "null" {
		date.Time = time.Time{}
		return nil
	}

	var unix int64
	if _, err := fmt.Sscanf(s, "%d", &unix); err != nil {
		return fmt.Errorf("invalid numeric date: %s", s)
	}
	if unix < 0 || unix > maxNumericDate {
		return fmt.Errorf("invalid unix timestamp: %d", unix)
	}
	date.Time = time.Unix(unix, 0).UTC()
	return nil
}
