// Copyright (c) 2026 rangebar-go Authors

package fixedpoint

import (
	"strconv"
	"strings"
)

// Format renders f as a canonical decimal string: no scientific notation,
// up to FractionalDigits fractional digits with trailing zeros trimmed,
// and "0" for zero. Parse(f.Format()) always reproduces f exactly.
func (f FixedPoint) Format() string {
	if f.scaled == 0 {
		return "0"
	}

	neg := f.scaled < 0
	magnitude := absUint64(f.scaled)
	intPart := magnitude / uint64(Scale)
	fracPart := magnitude % uint64(Scale)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatUint(intPart, 10))

	if fracPart != 0 {
		frac := strconv.FormatUint(fracPart, 10)
		// Left-pad to FractionalDigits, then trim trailing zeros.
		if pad := FractionalDigits - len(frac); pad > 0 {
			frac = strings.Repeat("0", pad) + frac
		}
		frac = strings.TrimRight(frac, "0")
		if frac != "" {
			b.WriteByte('.')
			b.WriteString(frac)
		}
	}
	return b.String()
}

// String implements fmt.Stringer via Format.
func (f FixedPoint) String() string {
	return f.Format()
}
