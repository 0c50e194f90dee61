// Copyright (c) 2026 rangebar-go Authors

package fixedpoint

import "fmt"

var (
	// ErrEmptyInput is returned by Parse for an empty string.
	ErrEmptyInput = fmt.Errorf("fixedpoint: empty input")
	// ErrIllegalCharacter is returned by Parse when the text contains a
	// character that is not a sign, digit or decimal point, or when an
	// exponent or embedded whitespace is present.
	ErrIllegalCharacter = fmt.Errorf("fixedpoint: illegal character")
	// ErrTooManyFractionalDigits is returned by Parse when the text has
	// more than FractionalDigits digits after the decimal point. Truncating
	// silently is forbidden by the spec; this is always surfaced.
	ErrTooManyFractionalDigits = fmt.Errorf("fixedpoint: too many fractional digits")
	// ErrOverflow is returned by Add, Sub, MulByBps and Parse when a result
	// does not fit in a 64-bit scaled integer.
	ErrOverflow = fmt.Errorf("fixedpoint: overflow")
)
