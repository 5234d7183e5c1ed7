package bencodex

import (
	"unicode/utf8"

	"github.com/bencodex/bencodex-go/internal/intparse"
)

// Decode parses data as a canonical Bencodex value, using DefaultLimits.
// Decoding is complete only when the entire input is consumed; trailing
// bytes produce a TrailingBytes error.
func Decode(data []byte) (Value, error) {
	return DecodeWithLimits(data, DefaultLimits())
}

// DecodeWithLimits parses data like Decode, applying the given resource
// limits during the walk.
func DecodeWithLimits(data []byte, limits Limits) (Value, error) {
	d := &scalarDecoder{data: data, limits: limits}
	v, err := d.decodeValue(0)
	if err != nil {
		return Value{}, err
	}
	if d.pos != len(data) {
		return Value{}, newDecodeError(TrailingBytes, d.pos)
	}
	return v, nil
}

type scalarDecoder struct {
	data   []byte
	pos    int
	limits Limits
}

func (d *scalarDecoder) decodeValue(depth int) (Value, error) {
	if depth > d.limits.MaxDepth {
		return Value{}, newDecodeError(MaxDepthExceeded, d.pos)
	}
	if d.pos >= len(d.data) {
		return Value{}, newDecodeError(UnexpectedEndOfInput, d.pos)
	}

	switch c := d.data[d.pos]; {
	case c == 'n':
		d.pos++
		return Null(), nil
	case c == 't':
		d.pos++
		return Bool(true), nil
	case c == 'f':
		d.pos++
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

func (d *scalarDecoder) decodeInteger() (Value, error) {
	start := d.pos
	d.pos++ // skip 'i'

	bodyStart := d.pos
	for d.pos < len(d.data) && d.data[d.pos] != 'e' {
		d.pos++
	}
	if d.pos >= len(d.data) {
		return Value{}, newDecodeError(UnexpectedEndOfInput, d.pos)
	}
	body := d.data[bodyStart:d.pos]
	d.pos++ // skip 'e'

	if len(body) > d.limits.MaxIntegerDigits {
		return Value{}, newDecodeError(InvalidInteger, start)
	}

	n, kind := intparse.Parse(body)
	if kind != intparse.ErrNone {
		return Value{}, newDecodeError(InvalidInteger, start)
	}
	return Int(n), nil
}

// decodeLengthPrefix reads digits up to and including the ':' delimiter,
// returning the parsed length and leaving d.pos just past ':'.
func (d *scalarDecoder) decodeLengthPrefix() (int, error) {
	start := d.pos
	for d.pos < len(d.data) && d.data[d.pos] != ':' {
		d.pos++
	}
	if d.pos >= len(d.data) {
		return 0, newDecodeError(UnexpectedEndOfInput, d.pos)
	}
	digits := d.data[start:d.pos]
	d.pos++ // skip ':'

	n, kind := intparse.ParseNonNegative(digits, d.limits.MaxIntegerDigits)
	if kind != intparse.ErrNone {
		return 0, newDecodeError(InvalidLengthPrefix, start)
	}
	return n, nil
}

func (d *scalarDecoder) decodeBytes() (Value, error) {
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
	d.pos += n
	return Bytes(payload), nil
}

func (d *scalarDecoder) decodeText() (Value, error) {
	start := d.pos
	d.pos++ // skip 'u'

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
	d.pos += n

	if !utf8.Valid(payload) {
		return Value{}, newDecodeError(InvalidUtf8, start)
	}
	return Text(string(payload)), nil
}

func (d *scalarDecoder) decodeList(depth int) (Value, error) {
	d.pos++ // skip 'l'

	var items []Value
	for {
		if d.pos >= len(d.data) {
			return Value{}, newDecodeError(UnexpectedEndOfInput, d.pos)
		}
		if d.data[d.pos] == 'e' {
			d.pos++
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

func (d *scalarDecoder) decodeDict(depth int) (Value, error) {
	d.pos++ // skip 'd'

	var entries []KV
	for {
		if d.pos >= len(d.data) {
			return Value{}, newDecodeError(UnexpectedEndOfInput, d.pos)
		}
		if d.data[d.pos] == 'e' {
			d.pos++
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
