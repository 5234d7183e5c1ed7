package bencodex

import (
	"sync"
	"unicode/utf8"

	"github.com/bencodex/bencodex-go/internal/intparse"
	"github.com/bencodex/bencodex-go/internal/simd"
)

// DecodeSIMD parses data like Decode, using the two-stage pipeline: a
// vectorized Stage 1 structural scan (internal/simd.Index) builds an index
// of candidate delimiter positions, and Stage 2 below consumes that index
// to extract values. DecodeSIMD rejects exactly the same inputs Decode does
// and returns the same ErrorKind for any given invalid input; byte offsets
// reported between the two paths may differ.
func DecodeSIMD(data []byte) (Value, error) {
	return DecodeSIMDWithLimits(data, DefaultLimits())
}

// DecodeSIMDWithLimits parses data like DecodeSIMD, applying the given
// resource limits during the walk.
func DecodeSIMDWithLimits(data []byte, limits Limits) (Value, error) {
	d := simdDecoderPool.Get().(*simdDecoder)
	defer func() {
		d.data = nil
		d.structural = nil
		simdDecoderPool.Put(d)
	}()

	d.data = data
	d.structural = simd.Index(data)
	d.structIdx = 0
	d.pos = 0
	d.limits = limits

	v, err := d.decodeValue(0)
	if err != nil {
		return Value{}, err
	}
	if d.pos != len(data) {
		return Value{}, newDecodeError(TrailingBytes, d.pos)
	}
	return v, nil
}

var simdDecoderPool = sync.Pool{
	New: func() interface{} { return &simdDecoder{} },
}

// simdDecoder is Stage 2: it walks input guided by the structural index
// produced by Stage 1, rather than scanning every byte.
type simdDecoder struct {
	data       []byte
	structural []uint32
	structIdx  int
	pos        int
	limits     Limits
}

// advancePastPayload sets pos += l, then advances structIdx past every
// structural-index entry whose offset is now < pos. This is what makes the
// structural index safe to consume in the presence of embedded payload
// bytes that happen to collide with the structural alphabet.
func (d *simdDecoder) advancePastPayload(l int) {
	d.pos += l
	for d.structIdx < len(d.structural) && int(d.structural[d.structIdx]) < d.pos {
		d.structIdx++
	}
}

// findNextStructural advances structIdx until it points at an entry whose
// offset is >= pos AND whose referenced byte equals b, returning that
// offset. The byte-equality check is mandatory: the structural index is a
// superset and may contain positions inside string payloads.
func (d *simdDecoder) findNextStructural(b byte) (int, bool) {
	for d.structIdx < len(d.structural) {
		off := int(d.structural[d.structIdx])
		if off < d.pos || d.data[off] != b {
			d.structIdx++
			continue
		}
		return off, true
	}
	return 0, false
}

func (d *simdDecoder) decodeValue(depth int) (Value, error) {
	if depth > d.limits.MaxDepth {
		return Value{}, newDecodeError(MaxDepthExceeded, d.pos)
	}
	if d.pos >= len(d.data) {
		return Value{}, newDecodeError(UnexpectedEndOfInput, d.pos)
	}

	switch c := d.data[d.pos]; {
	case c == 'n':
		d.advancePastPayload(1)
		return Null(), nil
	case c == 't':
		d.advancePastPayload(1)
		return Bool(true), nil
	case c == 'f':
		d.advancePastPayload(1)
		return Bool(false), nil
	case c == 'i':
		return d.decodeInteger()
	case c == 'u':
		return d.decodeText()
	case c >= '0' && c <= '9':
		return d.decodeBytes()
	case c == 'l':
		return d.decodeList(depth)
	case c == 'd':
		return d.decodeDict(depth)
	default:
		return Value{}, newDecodeError(UnexpectedByte, d.pos)
	}
}

func (d *simdDecoder) decodeInteger() (Value, error) {
	start := d.pos
	d.advancePastPayload(1) // skip 'i'

	bodyStart := d.pos
	eOff, ok := d.findNextStructural('e')
	if !ok {
		return Value{}, newDecodeError(UnexpectedEndOfInput, d.pos)
	}
	body := d.data[bodyStart:eOff]
	d.advancePastPayload(eOff - d.pos + 1) // consume body and 'e'

	if len(body) > d.limits.MaxIntegerDigits {
		return Value{}, newDecodeError(InvalidInteger, start)
	}
	n, kind := intparse.Parse(body)
	if kind != intparse.ErrNone {
		return Value{}, newDecodeError(InvalidInteger, start)
	}
	return Int(n), nil
}

func (d *simdDecoder) decodeLengthPrefix() (int, error) {
	start := d.pos
	colonOff, ok := d.findNextStructural(':')
	if !ok {
		return 0, newDecodeError(UnexpectedEndOfInput, d.pos)
	}
	digits := d.data[start:colonOff]
	d.advancePastPayload(colonOff - d.pos + 1) // consume digits and ':'

	n, kind := intparse.ParseNonNegative(digits, d.limits.MaxIntegerDigits)
	if kind != intparse.ErrNone {
		return 0, newDecodeError(InvalidLengthPrefix, start)
	}
	return n, nil
}

func (d *simdDecoder) decodeBytes() (Value, error) {
	start := d.pos
	n, err := d.decodeLengthPrefix()
	if err != nil {
		return Value{}, err
	}
	if n > d.limits.MaxStringLength {
		return Value{}, newDecodeError(InvalidLengthPrefix, start)
	}
	if d.pos+n > len(d.data) {
		return Value{}, newDecodeError(UnexpectedEndOfInput, d.pos)
	}
	payload := d.data[d.pos : d.pos+n]
	d.advancePastPayload(n)
	return Bytes(payload), nil
}

func (d *simdDecoder) decodeText() (Value, error) {
	start := d.pos
	d.advancePastPayload(1) // skip 'u'

	n, err := d.decodeLengthPrefix()
	if err != nil {
		return Value{}, err
	}
	if n > d.limits.MaxStringLength {
		return Value{}, newDecodeError(InvalidLengthPrefix, start)
	}
	if d.pos+n > len(d.data) {
		return Value{}, newDecodeError(UnexpectedEndOfInput, d.pos)
	}
	payload := d.data[d.pos : d.pos+n]
	d.advancePastPayload(n)

	if !utf8.Valid(payload) {
		return Value{}, newDecodeError(InvalidUtf8, start)
	}
	return Text(string(payload)), nil
}

func (d *simdDecoder) decodeList(depth int) (Value, error) {
	d.advancePastPayload(1) // skip 'l'

	var items []Value
	for {
		if d.pos >= len(d.data) {
			return Value{}, newDecodeError(UnexpectedEndOfInput, d.pos)
		}
		if d.data[d.pos] == 'e' {
			d.advancePastPayload(1)
			break
		}
		v, err := d.decodeValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
	return Value{kind: KindList, list: items}, nil
}

func (d *simdDecoder) decodeDict(depth int) (Value, error) {
	d.advancePastPayload(1) // skip 'd'

	var entries []KV
	for {
		if d.pos >= len(d.data) {
			return Value{}, newDecodeError(UnexpectedEndOfInput, d.pos)
		}
		if d.data[d.pos] == 'e' {
			d.advancePastPayload(1)
			break
		}

		keyStart := d.pos
		c := d.data[d.pos]
		if c != 'u' && !(c >= '0' && c <= '9') {
			return Value{}, newDecodeError(InvalidDictionaryKey, d.pos)
		}
		key, err := d.decodeValue(depth + 1)
		if err != nil {
			return Value{}, err
		}

		if len(entries) > 0 {
			if compareKeyValues(entries[len(entries)-1].Key, key) >= 0 {
				return Value{}, newDecodeError(OutOfOrderKeys, keyStart)
			}
		}

		value, err := d.decodeValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, KV{Key: key, Value: value})
	}
	return Value{kind: KindDict, dict: entries}, nil
}
