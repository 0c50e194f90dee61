// Copyright (c) 2026 rangebar-go Authors
//
// FixedPoint is an exact signed decimal with an implicit scale of 1e8
// (eight fractional digits). It backs every price and volume in the
// rangebar engine so that bar-close decisions never depend on
// floating-point rounding.

package fixedpoint

import (
	"fmt"
	"math"
	"math/bits"
)

// Scale is the implicit decimal scale: one FixedPoint unit is 1/Scale.
const Scale int64 = 100_000_000

// FractionalDigits is the number of decimal digits represented by Scale.
const FractionalDigits = 8

// FixedPoint is a signed fixed-scale decimal stored as scaled integer units.
// The zero value is 0.
type FixedPoint struct {
	scaled int64
}

// Zero is the additive identity.
var Zero = FixedPoint{}

// FromIntegerScaled builds a FixedPoint directly from its scaled
// representation. The caller is trusted to have already scaled by 1e8.
func FromIntegerScaled(scaled int64) FixedPoint {
	return FixedPoint{scaled: scaled}
}

// ScaledInt64 returns the underlying scaled integer (n such that the value
// is n/Scale).
func (f FixedPoint) ScaledInt64() int64 {
	return f.scaled
}

// IsZero reports whether f represents exactly zero.
func (f FixedPoint) IsZero() bool {
	return f.scaled == 0
}

// Sign returns -1, 0 or 1.
func (f FixedPoint) Sign() int {
	switch {
	case f.scaled < 0:
		return -1
	case f.scaled > 0:
		return 1
	default:
		return 0
	}
}

// Cmp compares f to g, returning -1, 0 or 1.
func (f FixedPoint) Cmp(g FixedPoint) int {
	switch {
	case f.scaled < g.scaled:
		return -1
	case f.scaled > g.scaled:
		return 1
	default:
		return 0
	}
}

// Equal reports whether f and g represent the same rational value.
func (f FixedPoint) Equal(g FixedPoint) bool {
	return f.scaled == g.scaled
}

// Max returns the greater of f and g.
func Max(f, g FixedPoint) FixedPoint {
	if f.Cmp(g) >= 0 {
		return f
	}
	return g
}

// Min returns the lesser of f and g.
func Min(f, g FixedPoint) FixedPoint {
	if f.Cmp(g) <= 0 {
		return f
	}
	return g
}

// Add returns f+g, failing with ErrOverflow if the sum cannot be
// represented in 64 bits. Addition never saturates: an overflowing
// accumulation is always surfaced to the caller.
func (f FixedPoint) Add(g FixedPoint) (FixedPoint, error) {
	sum := f.scaled + g.scaled
	// Two's-complement overflow check: overflow happened iff both operands
	// share a sign and the result's sign differs from theirs.
	if (f.scaled > 0 && g.scaled > 0 && sum <= 0) || (f.scaled < 0 && g.scaled < 0 && sum >= 0) {
		return FixedPoint{}, fmt.Errorf("fixedpoint: add %s + %s: %w", f.Format(), g.Format(), ErrOverflow)
	}
	return FixedPoint{scaled: sum}, nil
}

// Sub returns f-g, failing with ErrOverflow on 64-bit overflow.
func (f FixedPoint) Sub(g FixedPoint) (FixedPoint, error) {
	diff := f.scaled - g.scaled
	if (f.scaled >= 0 && g.scaled < 0 && diff < 0) || (f.scaled < 0 && g.scaled > 0 && diff >= 0) {
		return FixedPoint{}, fmt.Errorf("fixedpoint: sub %s - %s: %w", f.Format(), g.Format(), ErrOverflow)
	}
	return FixedPoint{scaled: diff}, nil
}

// MulByBps computes value*bps/10_000 using a 128-bit intermediate product,
// truncating toward zero. It is how threshold offsets are derived from an
// open price without ever representing theta as a float.
func (f FixedPoint) MulByBps(bps uint32) (FixedPoint, error) {
	quo, err := mulQuoTrunc(f.scaled, int64(bps), 10_000)
	if err != nil {
		return FixedPoint{}, fmt.Errorf("fixedpoint: %s * %d bps: %w", f.Format(), bps, err)
	}
	return FixedPoint{scaled: quo}, nil
}

// MulTrunc returns f*g, truncated toward zero back to Scale-1e8 units via a
// 128-bit intermediate product. It is the general price*volume multiply
// used to derive turnover; MulByBps is the specialized bps-ratio form of
// the same primitive.
func (f FixedPoint) MulTrunc(g FixedPoint) (FixedPoint, error) {
	quo, err := mulQuoTrunc(f.scaled, g.scaled, Scale)
	if err != nil {
		return FixedPoint{}, fmt.Errorf("fixedpoint: %s * %s: %w", f.Format(), g.Format(), err)
	}
	return FixedPoint{scaled: quo}, nil
}

// mulQuoTrunc computes trunc(value*num/den) for den > 0, using a 128-bit
// intermediate product so that value*num never silently wraps around in
// 64 bits. It returns ErrOverflow if the final quotient does not fit in an
// int64.
func mulQuoTrunc(value, num, den int64) (int64, error) {
	if den <= 0 {
		return 0, fmt.Errorf("mulQuoTrunc: non-positive denominator %d", den)
	}
	sign := int64(1)
	if (value < 0) != (num < 0) {
		sign = -1
	}
	av := absUint64(value)
	an := absUint64(num)

	hi, lo := bits.Mul64(av, an)
	if hi >= uint64(den) {
		// Quotient would not fit in 64 bits.
		return 0, ErrOverflow
	}
	quo, _ := bits.Div64(hi, lo, uint64(den))

	const maxPos = uint64(1)<<63 - 1 // math.MaxInt64
	const maxNeg = uint64(1) << 63   // |math.MinInt64|
	if sign < 0 {
		if quo > maxNeg {
			return 0, ErrOverflow
		}
		return -int64(quo), nil
	}
	if quo > maxPos {
		return 0, ErrOverflow
	}
	return int64(quo), nil
}

func absUint64(v int64) uint64 {
	if v == math.MinInt64 {
		// -v overflows int64 for MinInt64; its magnitude is exactly 1<<63.
		return uint64(1) << 63
	}
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}
