package simd

// Vector is a lane-width window of input bytes together with the lane count
// actually in use (16 or 32 on the vectorized backends; the scalar fallback
// scans byte by byte and builds no Vector). Lane width drives both chunk
// size and backend dispatch.
//
// The per-lane operations below (loadUnaligned, cmpEqByte, or, movemask)
// are expressed as plain Go loops rather than real vector instructions:
// this package has no assembly backing it, so there is nothing for
// build-tag-selected AVX2/SSE4.2/NEON entry points to call into. Keeping
// the same lane-width dispatch shape while scalarizing the lane arithmetic
// means a future assembly backend can be dropped in without changing the
// call sites.
type Vector struct {
	lanes [32]byte
	n     int
}

// loadUnaligned loads width bytes starting at offset, zero-padding past the
// end of data. width must be at most 32, the size of the lane array; the
// vectorized backends pass 16 or 32.
func loadUnaligned(data []byte, offset, width int) Vector {
	var v Vector
	v.n = width
	for i := 0; i < width; i++ {
		if offset+i < len(data) {
			v.lanes[i] = data[offset+i]
		}
	}
	return v
}

// cmpEqByte returns a mask vector with lane i set to 0xFF where v's lane i
// equals b, else 0x00.
func cmpEqByte(v Vector, b byte) Vector {
	var r Vector
	r.n = v.n
	for i := 0; i < v.n; i++ {
		if v.lanes[i] == b {
			r.lanes[i] = 0xFF
		}
	}
	return r
}

// cmpInRangeByte returns a mask vector with lane i set to 0xFF where v's
// lane i falls in [lo, hi], else 0x00. A dedicated range predicate lets
// callers classify a byte range, such as ASCII digits, without a separate
// equality comparison per member of the range.
func cmpInRangeByte(v Vector, lo, hi byte) Vector {
	var r Vector
	r.n = v.n
	for i := 0; i < v.n; i++ {
		if v.lanes[i] >= lo && v.lanes[i] <= hi {
			r.lanes[i] = 0xFF
		}
	}
	return r
}

// or returns the bitwise OR of two equal-width mask vectors.
func or(a, b Vector) Vector {
	var r Vector
	r.n = a.n
	for i := 0; i < a.n; i++ {
		r.lanes[i] = a.lanes[i] | b.lanes[i]
	}
	return r
}

// movemask extracts the most-significant bit of each lane into the
// corresponding bit of the result; bit i is set iff lane i's MSB is set.
func movemask(v Vector) uint32 {
	var m uint32
	for i := 0; i < v.n; i++ {
		if v.lanes[i]&0x80 != 0 {
			m |= 1 << uint(i)
		}
	}
	return m
}
