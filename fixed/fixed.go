// Package fixed provides the signed fixed-point scalar used for every world
// coordinate in the simulation.
package fixed

import (
	"math"
	"math/bits"
	"strconv"
)

// Fixed is a signed number with FracBits fractional bits stored in an int64.
// Addition, subtraction, comparison and scaling by plain integers use the
// native operators; products and quotients of two Fixed values must go
// through Mul, Div or MulDiv.
type Fixed int64

// Q47.16 layout
const (
	FracBits       = 16
	One      Fixed = 1 << FracBits
	Half     Fixed = One >> 1
	fracMask Fixed = One - 1
)

// MinValue doubles as "negative infinity" when seeding maximization scans.
const (
	MinValue Fixed = math.MinInt64
	MaxValue Fixed = math.MaxInt64
)

// --- Construction ---

func FromInt(i int) Fixed       { return Fixed(int64(i) << FracBits) }
func FromBits(b int64) Fixed    { return Fixed(b) }
func FromFloat(f float64) Fixed { return Fixed(math.Round(f * float64(One))) }

// FromRatio returns num/den without going through floating point.
func FromRatio(num, den int) Fixed {
	if den == 0 {
		return 0
	}
	return FromInt(num).Div(FromInt(den))
}

// --- Conversion ---

func (f Fixed) Bits() int64      { return int64(f) }
func (f Fixed) Float64() float64 { return float64(f) / float64(One) }

// Floor returns the largest integer not greater than f.
func (f Fixed) Floor() int { return int(int64(f) >> FracBits) }

// Round returns the nearest integer, halves rounding up.
func (f Fixed) Round() int { return int((int64(f) + int64(Half)) >> FracBits) }

// Frac returns the fractional part, always in [0, 1).
func (f Fixed) Frac() Fixed { return f & fracMask }

// Cell converts a coordinate to a grid index for cells of size 1<<shift.
// Negative coordinates floor towards negative cells.
func (f Fixed) Cell(shift uint) int {
	return int(int64(f) >> (FracBits + shift))
}

func (f Fixed) String() string {
	return strconv.FormatFloat(f.Float64(), 'f', -1, 64)
}

// --- Arithmetic ---

// Abs returns |f|. MinValue has no positive counterpart and is returned as is.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Sign returns -1, 0 or 1
func (f Fixed) Sign() int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	}
	return 0
}

// Mul returns f*g, truncated toward zero and saturated on overflow.
func (f Fixed) Mul(g Fixed) Fixed {
	if f == 0 || g == 0 {
		return 0
	}
	negative := (f < 0) != (g < 0)
	hi, lo := bits.Mul64(magnitude(f), magnitude(g))
	// Q.16 * Q.16 = Q.32, drop 16 bits
	if hi>>FracBits != 0 {
		return saturate(negative, math.MaxUint64)
	}
	return saturate(negative, hi<<(64-FracBits)|lo>>FracBits)
}

// Div returns f/g, truncated toward zero. Division by zero yields zero and an
// out-of-range quotient saturates.
func (f Fixed) Div(g Fixed) Fixed {
	if g == 0 || f == 0 {
		return 0
	}
	negative := (f < 0) != (g < 0)
	ua, ub := magnitude(f), magnitude(g)

	// f << FracBits as a 128-bit value
	hi := ua >> (64 - FracBits)
	lo := ua << FracBits
	if hi >= ub {
		return saturate(negative, math.MaxUint64)
	}
	quo, _ := bits.Div64(hi, lo, ub)
	return saturate(negative, quo)
}

// MulDiv computes a*b/c with a 128-bit intermediate, so scaling a value by a
// ratio loses no precision to an intermediate quotient.
func MulDiv(a, b, c Fixed) Fixed {
	if c == 0 || a == 0 || b == 0 {
		return 0
	}
	negative := ((a < 0) != (b < 0)) != (c < 0)
	hi, lo := bits.Mul64(magnitude(a), magnitude(b))
	uc := magnitude(c)
	if hi >= uc {
		return saturate(negative, math.MaxUint64)
	}
	quo, _ := bits.Div64(hi, lo, uc)
	return saturate(negative, quo)
}

// Sqrt returns the square root, or zero for non-positive input.
func (f Fixed) Sqrt() Fixed {
	if f <= 0 {
		return 0
	}
	u := uint64(f)
	if u >= 1<<(64-FracBits) {
		// Too large to shift into 64 bits; float precision is plenty here
		return FromFloat(math.Sqrt(f.Float64()))
	}
	return Fixed(isqrt(u << FracBits))
}

func Min(a, b Fixed) Fixed {
	if a < b {
		return a
	}
	return b
}

func Max(a, b Fixed) Fixed {
	if a > b {
		return a
	}
	return b
}

// Clamp limits f to [lo, hi]. When lo > hi, lo wins.
func Clamp(f, lo, hi Fixed) Fixed {
	if f > hi {
		f = hi
	}
	if f < lo {
		f = lo
	}
	return f
}

// magnitude returns |f| as an unsigned value; valid for MinValue too.
func magnitude(f Fixed) uint64 {
	if f < 0 {
		return uint64(-f)
	}
	return uint64(f)
}

func saturate(negative bool, mag uint64) Fixed {
	if negative {
		if mag >= 1<<63 {
			return MinValue
		}
		return -Fixed(mag)
	}
	if mag > math.MaxInt64 {
		return MaxValue
	}
	return Fixed(mag)
}

func isqrt(n uint64) uint64 {
	x := uint64(math.Sqrt(float64(n)))
	if x > 1<<32-1 {
		x = 1<<32 - 1
	}
	for x > 0 && x*x > n {
		x--
	}
	for x < 1<<32-1 && (x+1)*(x+1) <= n {
		x++
	}
	return x
}
