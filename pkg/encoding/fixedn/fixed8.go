// Package fixedn implements the fixed-point decimal type used for asset
// amounts: a signed 64-bit integer scaled by 10^8, with exact (never
// rounding) arithmetic.
package fixedn

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Decimals is the number of fractional digits Fixed8 represents.
const Decimals = 8

// Fixed8Precision is 10^8, the scale factor between an integer amount and
// its Fixed8 representation.
const Fixed8Precision = 100000000

// Fixed8 represents a fixed-point number with a precision of 10^-8.
type Fixed8 int64

// String implements the Stringer interface.
func (f Fixed8) String() string {
	buf := new(strings.Builder)
	val := int64(f)
	if val < 0 {
		buf.WriteRune('-')
		val = -val
	}
	str := strconv.FormatInt(val/Fixed8Precision, 10)
	buf.WriteString(str)
	val %= Fixed8Precision
	if val > 0 {
		buf.WriteRune('.')
		str = strconv.FormatInt(val, 10)
		for i := len(str); i < Decimals; i++ {
			buf.WriteRune('0')
		}
		buf.WriteString(strings.TrimRight(str, "0"))
	}
	return buf.String()
}

// Value returns the original value representing Fixed8.
func (f Fixed8) Value() int64 {
	return int64(f)
}

// Float returns the Fixed8 value as a float64 approximation. Only used for
// human-readable output; never for on-chain arithmetic.
func (f Fixed8) Float() float64 {
	return float64(f) / Fixed8Precision
}

// Add adds two Fixed8 values. Overflow is a programmer error in this
// domain (amounts are bounds-checked before arithmetic), so it panics
// rather than silently wrapping.
func (f Fixed8) Add(g Fixed8) Fixed8 {
	r := f + g
	if (g > 0 && r < f) || (g < 0 && r > f) {
		panic(fmt.Sprintf("Fixed8 overflow: %d + %d", f, g))
	}
	return r
}

// Sub subtracts g from f with the same overflow behavior as Add.
func (f Fixed8) Sub(g Fixed8) Fixed8 {
	return f.Add(-g)
}

// LessThan reports whether f < g.
func (f Fixed8) LessThan(g Fixed8) bool {
	return f < g
}

// Equal reports whether f == g.
func (f Fixed8) Equal(g Fixed8) bool {
	return f == g
}

// GreaterThan reports whether f > g.
func (f Fixed8) GreaterThan(g Fixed8) bool {
	return f > g
}

// Fixed8FromInt64 returns a new Fixed8 from the given int64 whole-unit
// value.
func Fixed8FromInt64(val int64) Fixed8 {
	if val > math.MaxInt64/Fixed8Precision || val < math.MinInt64/Fixed8Precision {
		panic(fmt.Sprintf("value %d does not fit into Fixed8", val))
	}
	return Fixed8(val * Fixed8Precision)
}

// Fixed8FromFloat returns a new Fixed8 from the given float64 value,
// rounding to the nearest representable amount. Kept strictly for parsing
// human-entered decimal strings, never for consensus-relevant arithmetic.
func Fixed8FromFloat(val float64) Fixed8 {
	return Fixed8(int64(math.Round(val * Fixed8Precision)))
}

// Fixed8FromString returns a new Fixed8 from the given decimal string.
func Fixed8FromString(s string) (Fixed8, error) {
	parts := strings.SplitN(s, ".", 2)
	neg := false
	intPart := parts[0]
	if strings.HasPrefix(intPart, "-") {
		neg = true
		intPart = intPart[1:]
	}
	ip, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid Fixed8 string %q: %w", s, err)
	}

	var frac int64
	if len(parts) == 2 {
		fracStr := parts[1]
		if len(fracStr) > Decimals {
			return 0, fmt.Errorf("invalid Fixed8 string %q: too many decimal digits", s)
		}
		for len(fracStr) < Decimals {
			fracStr += "0"
		}
		frac, err = strconv.ParseInt(fracStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid Fixed8 string %q: %w", s, err)
		}
	}

	val := ip*Fixed8Precision + frac
	if neg {
		val = -val
	}
	return Fixed8(val), nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f Fixed8) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *Fixed8) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	val, err := Fixed8FromString(s)
	if err != nil {
		return err
	}
	*f = val
	return nil
}
