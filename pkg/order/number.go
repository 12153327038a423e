package order

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is an integer field value that may also hold the NaN sentinel
// produced when form input cannot be read as a number. The zero value is 0.
type Number struct {
	v   int64
	nan bool
}

// Int returns a Number holding v.
func Int(v int64) Number { return Number{v: v} }

// NaN returns the not-a-number sentinel.
func NaN() Number { return Number{nan: true} }

// IsNaN reports whether n is the not-a-number sentinel.
func (n Number) IsNaN() bool { return n.nan }

// Int64 returns the integer value, 0 for NaN.
func (n Number) Int64() int64 {
	if n.nan {
		return 0
	}
	return n.v
}

func (n Number) String() string {
	if n.nan {
		return "NaN"
	}
	return strconv.FormatInt(n.v, 10)
}

// ParseNumber reads the leading integer of s the way HTML form handlers
// traditionally do: leading whitespace is skipped, an optional sign is
// accepted and the longest run of digits is used. Input with no digits, or
// digits beyond the int64 range, yields NaN.
func ParseNumber(s string) Number {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return NaN()
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return NaN()
	}
	return Int(v)
}

// MarshalJSON writes NaN as null, the way browsers serialize it.
func (n Number) MarshalJSON() ([]byte, error) {
	if n.nan {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, n.v, 10), nil
}

// UnmarshalJSON reads null as NaN and truncates fractional values.
func (n *Number) UnmarshalJSON(data []byte) error {
	var f *float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f == nil || math.IsNaN(*f) || *f >= math.MaxInt64 || *f < math.MinInt64 {
		*n = NaN()
		return nil
	}
	*n = Int(int64(*f))
	return nil
}
