package bencodex

import (
	"io"
	"strconv"
	"sync"
)

type scalarEncoder struct {
	buf []byte
}

var encoderPool = sync.Pool{
	New: func() interface{} {
		return &scalarEncoder{buf: make([]byte, 0, 4096)}
	},
}

func newScalarEncoder() *scalarEncoder {
	e := encoderPool.Get().(*scalarEncoder)
	e.buf = e.buf[:0]
	return e
}

func (e *scalarEncoder) release() {
	if cap(e.buf) > 64*1024 {
		e.buf = make([]byte, 0, 4096)
	}
	encoderPool.Put(e)
}

// Encode returns the canonical Bencodex byte form of v. No value kind has a
// failing encoding, so the returned error is always nil.
func Encode(v Value) ([]byte, error) {
	e := newScalarEncoder()
	defer e.release()

	if err := e.encode(v); err != nil {
		return nil, err
	}

	out := make([]byte, len(e.buf))
	copy(out, e.buf)
	return out, nil
}

// EncodeTo writes the canonical Bencodex byte form of v to w. It fails only
// if w's Write fails; that failure is returned verbatim.
func EncodeTo(w io.Writer, v Value) error {
	e := newScalarEncoder()
	defer e.release()

	if err := e.encode(v); err != nil {
		return err
	}

	_, err := w.Write(e.buf)
	return err
}

func (e *scalarEncoder) encode(v Value) error {
	switch v.kind {
	case KindNull:
		e.buf = append(e.buf, 'n')
	case KindBool:
		if v.b {
			e.buf = append(e.buf, 't')
		} else {
			e.buf = append(e.buf, 'f')
		}
	case KindInt:
		e.buf = append(e.buf, 'i')
		e.buf = append(e.buf, v.i.String()...)
		e.buf = append(e.buf, 'e')
	case KindBytes:
		e.buf = strconv.AppendInt(e.buf, int64(len(v.bytes)), 10)
		e.buf = append(e.buf, ':')
		e.buf = append(e.buf, v.bytes...)
	case KindText:
		e.buf = append(e.buf, 'u')
		e.buf = strconv.AppendInt(e.buf, int64(len(v.text)), 10)
		e.buf = append(e.buf, ':')
		e.buf = append(e.buf, v.text...)
	case KindList:
		e.buf = append(e.buf, 'l')
		for _, item := range v.list {
			if err := e.encode(item); err != nil {
				return err
			}
		}
		e.buf = append(e.buf, 'e')
	case KindDict:
		e.buf = append(e.buf, 'd')
		for _, kv := range v.dict {
			if err := e.encode(kv.Key); err != nil {
				return err
			}
			if err := e.encode(kv.Value); err != nil {
				return err
			}
		}
		e.buf = append(e.buf, 'e')
	}
	return nil
}
