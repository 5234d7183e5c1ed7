// Package intparse converts bounded ASCII decimal slices into
// arbitrary-precision signed integers, enforcing Bencodex's canonical-form
// rules: optional single leading '-', at least one digit, no leading zero
// except for the singleton "0", and no "-0".
package intparse

import "math/big"

// ErrKind classifies why Parse rejected its input.
type ErrKind uint8

const (
	// ErrNone indicates success; Parse and ParseNonNegative return it
	// alongside a valid result.
	ErrNone ErrKind = iota
	// ErrEmpty means the slice had no digits at all.
	ErrEmpty
	// ErrBareSign means the slice was exactly "-" with no digits.
	ErrBareSign
	// ErrLeadingZero means the digits had a leading zero (and were not
	// exactly "0").
	ErrLeadingZero
	// ErrNegativeZero means the slice was exactly "-0".
	ErrNegativeZero
	// ErrNonDigit means a byte outside '0'-'9' appeared where a digit was
	// required.
	ErrNonDigit
	// ErrOverflow means the value exceeds the caller's configured digit
	// limit or the platform int range.
	ErrOverflow
)

// Parse converts b, a bounded ASCII decimal slice, to an arbitrary-precision
// signed integer. On success it returns (n, ErrNone). On failure it returns
// (nil, kind) describing which canonical-form rule was violated.
func Parse(b []byte) (*big.Int, ErrKind) {
	if len(b) == 0 {
		return nil, ErrEmpty
	}

	negative := false
	digits := b
	if b[0] == '-' {
		negative = true
		digits = b[1:]
		if len(digits) == 0 {
			return nil, ErrBareSign
		}
	}

	for _, c := range digits {
		if c < '0' || c > '9' {
			return nil, ErrNonDigit
		}
	}

	if len(digits) > 1 && digits[0] == '0' {
		return nil, ErrLeadingZero
	}

	if negative && len(digits) == 1 && digits[0] == '0' {
		return nil, ErrNegativeZero
	}

	n := new(big.Int)
	n.SetString(string(digits), 10)
	if negative {
		n.Neg(n)
	}
	return n, ErrNone
}

// ParseNonNegative parses an unsigned length prefix: digits only, no sign,
// same no-leading-zero rule as Parse. It returns -1 if the value does not
// fit in an int (overflow) or violates canonical form; maxDigits bounds the
// number of digits accepted before reporting overflow, per the caller's
// configured resource limit.
func ParseNonNegative(b []byte, maxDigits int) (int, ErrKind) {
	if len(b) == 0 {
		return -1, ErrEmpty
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return -1, ErrNonDigit
		}
	}
	if len(b) > 1 && b[0] == '0' {
		return -1, ErrLeadingZero
	}
	if len(b) > maxDigits {
		return -1, ErrOverflow
	}

	n := 0
	for _, c := range b {
		d := int(c - '0')
		if n > (int(^uint(0)>>1)-d)/10 {
			return -1, ErrOverflow
		}
		n = n*10 + d
	}
	return n, ErrNone
}
