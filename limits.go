package bencodex

import "math"

// Limits bounds resource consumption during decode. The zero value is not
// valid for use; call DefaultLimits to get limits that never reject a
// structurally valid canonical input, or construct one explicitly to guard
// against adversarial input.
type Limits struct {
	// MaxIntegerDigits bounds the number of ASCII digits accepted in an
	// integer body or a length prefix.
	MaxIntegerDigits int
	// MaxStringLength bounds the declared length of a ByteString or
	// TextString payload.
	MaxStringLength int
	// MaxDepth bounds List/Dictionary nesting depth.
	MaxDepth int
}

// DefaultLimits returns limits wide enough that they never reject any
// otherwise-valid canonical input; Decode and DecodeSIMD use these.
func DefaultLimits() Limits {
	return Limits{
		MaxIntegerDigits: math.MaxInt32,
		MaxStringLength:  math.MaxInt32,
		MaxDepth:         math.MaxInt32,
	}
}
