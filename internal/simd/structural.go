package simd

import "math/bits"

// Index produces the ordered, strictly ascending sequence of absolute byte
// offsets of every byte in the Bencodex structural alphabet
// S = {n,t,f,i,l,d,u,:,e,0-9}. It is a superset: offsets
// inside ByteString/TextString payloads are included too, since Stage 1 has
// no way to know payload boundaries yet — Stage 2's advancePastPayload and
// findNextStructural primitives are what make that safe to consume.
func Index(data []byte) []uint32 {
	return IndexForBackend(data, SelectedBackend())
}

// IndexForBackend runs Stage 1 using an explicitly chosen backend instead of
// the process-wide dispatched one. Production code has no reason to call
// this directly; it exists so tests and benchmarks can verify backend
// parity on a single machine regardless of which instruction sets that
// machine's CPU actually supports.
func IndexForBackend(data []byte, backend Backend) []uint32 {
	width := backend.LaneWidth()
	indices := make([]uint32, 0, len(data)/4+8)

	if width <= 1 {
		return indexScalar(data, indices)
	}

	chunks := len(data) / width
	for c := 0; c < chunks; c++ {
		offset := c * width
		v := loadUnaligned(data, offset, width)
		bits32 := movemask(classify(v))
		for bits32 != 0 {
			bit := bits.TrailingZeros32(bits32)
			indices = append(indices, uint32(offset+bit))
			bits32 &= bits32 - 1
		}
	}

	tailStart := chunks * width
	for i := tailStart; i < len(data); i++ {
		if isStructural(data[i]) {
			indices = append(indices, uint32(i))
		}
	}

	return indices
}

// classify computes the OR-reduction of equality masks for every member of
// the structural alphabet, with digits handled via a single in-range
// predicate rather than ten separate equality comparisons.
func classify(v Vector) Vector {
	mask := cmpEqByte(v, 'n')
	mask = or(mask, cmpEqByte(v, 't'))
	mask = or(mask, cmpEqByte(v, 'f'))
	mask = or(mask, cmpEqByte(v, 'i'))
	mask = or(mask, cmpEqByte(v, 'l'))
	mask = or(mask, cmpEqByte(v, 'd'))
	mask = or(mask, cmpEqByte(v, 'u'))
	mask = or(mask, cmpEqByte(v, ':'))
	mask = or(mask, cmpEqByte(v, 'e'))
	mask = or(mask, cmpInRangeByte(v, '0', '9'))
	return mask
}

func indexScalar(data []byte, indices []uint32) []uint32 {
	for i, c := range data {
		if isStructural(c) {
			indices = append(indices, uint32(i))
		}
	}
	return indices
}

func isStructural(c byte) bool {
	switch c {
	case 'n', 't', 'f', 'i', 'l', 'd', 'u', ':', 'e':
		return true
	}
	return c >= '0' && c <= '9'
}
