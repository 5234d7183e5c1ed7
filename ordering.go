package bencodex

import "bytes"

// CompareKeys implements the canonical dictionary-key order: all ByteString
// keys precede all TextString keys, and within a kind keys
// compare as unsigned byte sequences (shorter is smaller on a common
// prefix). a and b must both be KindBytes or KindText values.
func CompareKeys(a, b Value) int {
	return compareKeyValues(a, b)
}

func compareKeyValues(a, b Value) int {
	aBytes, aIsText := keyBytes(a)
	bBytes, bIsText := keyBytes(b)

	if aIsText != bIsText {
		// ByteString (false) sorts before TextString (true).
		if aIsText {
			return 1
		}
		return -1
	}

	return bytes.Compare(aBytes, bBytes)
}

// keyBytes returns the raw bytes used for comparison and ordering: a
// ByteString's own bytes, or a TextString's UTF-8 encoding.
func keyBytes(v Value) (b []byte, isText bool) {
	switch v.kind {
	case KindText:
		return []byte(v.text), true
	case KindBytes:
		return v.bytes, false
	default:
		panic("bencodex: dictionary key must be ByteString or TextString")
	}
}
