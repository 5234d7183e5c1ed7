// Package bencodex implements Bencodex, a canonical binary serialization
// format for a small, fixed set of value kinds: null, boolean, integer,
// byte string, text string, list, and dictionary.
package bencodex

import (
	"bytes"
	"math/big"
)

// Kind discriminates the seven Bencodex value kinds. Values are a closed
// tagged union; there is no inheritance or open extension.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindBytes
	KindText
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindBytes:
		return "bytes"
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	default:
		return "unknown"
	}
}

// KV is a single dictionary entry used when constructing a Dict value.
type KV struct {
	Key   Value
	Value Value
}

// Value is a Bencodex value: exactly one kind, with exactly one payload
// field populated. Values are tree-shaped and carry no interior mutability;
// once constructed a Value is safe to share across goroutines.
type Value struct {
	kind  Kind
	b     bool
	i     *big.Int
	bytes []byte
	text  string
	list  []Value
	dict  []KV // sorted by canonical key order
}

// Null returns the Bencodex null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a Bencodex boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns a Bencodex integer value wrapping an arbitrary-precision
// signed integer. The caller retains ownership of n's underlying storage;
// Int does not copy n.
func Int(n *big.Int) Value { return Value{kind: KindInt, i: n} }

// IntFromInt64 is a convenience constructor for small integers.
func IntFromInt64(n int64) Value { return Value{kind: KindInt, i: big.NewInt(n)} }

// Bytes returns a Bencodex byte string value. The slice is not copied.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// Text returns a Bencodex text string value. The caller must supply
// well-formed UTF-8; Encode does not validate it on the way out, only
// Decode validates incoming bytes.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// List returns a Bencodex list value containing the given children in order.
func List(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Dict returns a Bencodex dictionary value. Entries are sorted into
// canonical key order at construction time so every Value built
// through this constructor already encodes canonically. Dict panics if two
// entries have equal keys or if any key is not ByteString/TextString kind,
// since such a dictionary could never be a valid Bencodex value.
func Dict(entries ...KV) Value {
	cp := make([]KV, len(entries))
	copy(cp, entries)
	for _, e := range cp {
		if e.Key.kind != KindBytes && e.Key.kind != KindText {
			panic("bencodex: dictionary key must be ByteString or TextString")
		}
	}
	sortKV(cp)
	for i := 1; i < len(cp); i++ {
		if compareKeyValues(cp[i-1].Key, cp[i].Key) == 0 {
			panic("bencodex: duplicate dictionary key")
		}
	}
	return Value{kind: KindDict, dict: cp}
}

// Kind returns the value's kind tag.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the payload of a KindBool value.
func (v Value) AsBool() bool { return v.b }

// AsInt returns the payload of a KindInt value.
func (v Value) AsInt() *big.Int { return v.i }

// AsBytes returns the payload of a KindBytes value.
func (v Value) AsBytes() []byte { return v.bytes }

// AsText returns the payload of a KindText value.
func (v Value) AsText() string { return v.text }

// AsList returns the children of a KindList value.
func (v Value) AsList() []Value { return v.list }

// AsDict returns the entries of a KindDict value in canonical key order.
func (v Value) AsDict() []KV { return v.dict }

// Get looks up a dictionary entry by a ByteString or TextString key,
// returning the zero Value and false if absent. v must be a KindDict value.
func (v Value) Get(key Value) (Value, bool) {
	for _, e := range v.dict {
		if compareKeyValues(e.Key, key) == 0 {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Equal reports whether a and b are structurally identical Bencodex values.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i.Cmp(b.i) == 0
	case KindBytes:
		return bytes.Equal(a.bytes, b.bytes)
	case KindText:
		return a.text == b.text
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(a.dict) != len(b.dict) {
			return false
		}
		for i := range a.dict {
			if compareKeyValues(a.dict[i].Key, b.dict[i].Key) != 0 {
				return false
			}
			if !Equal(a.dict[i].Value, b.dict[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

func sortKV(entries []KV) {
	// Simple insertion sort: dictionaries in practice carry few keys, and
	// this keeps the canonical-order comparator as the single source of
	// truth without pulling in sort.Slice's reflection overhead.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && compareKeyValues(entries[j-1].Key, entries[j].Key) > 0; j-- {
			entries[j-1], entries[j] = entries[j], entries[j-1]
		}
	}
}
