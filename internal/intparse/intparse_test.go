package intparse

import (
	"math/big"
	"testing"
)

func TestParseValid(t *testing.T) {
	cases := map[string]int64{
		"0":    0,
		"1":    1,
		"42":   42,
		"-1":   -1,
		"-42":  -42,
		"9999": 9999,
	}
	for s, want := range cases {
		n, kind := Parse([]byte(s))
		if kind != ErrNone {
			t.Errorf("Parse(%q) kind = %v, want ErrNone", s, kind)
			continue
		}
		if n.Cmp(big.NewInt(want)) != 0 {
			t.Errorf("Parse(%q) = %v, want %d", s, n, want)
		}
	}
}

func TestParseBigValue(t *testing.T) {
	s := "123456789012345678901234567890"
	n, kind := Parse([]byte(s))
	if kind != ErrNone {
		t.Fatalf("kind = %v, want ErrNone", kind)
	}
	want, _ := new(big.Int).SetString(s, 10)
	if n.Cmp(want) != 0 {
		t.Errorf("Parse(%q) = %v, want %v", s, n, want)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]ErrKind{
		"":     ErrEmpty,
		"-":    ErrBareSign,
		"01":   ErrLeadingZero,
		"00":   ErrLeadingZero,
		"-0":   ErrNegativeZero,
		"1a":   ErrNonDigit,
		"a1":   ErrNonDigit,
		"1-2":  ErrNonDigit,
		"- 1":  ErrNonDigit,
		"1 ":   ErrNonDigit,
	}
	for s, want := range cases {
		_, kind := Parse([]byte(s))
		if kind != want {
			t.Errorf("Parse(%q) kind = %v, want %v", s, kind, want)
		}
	}
}

func TestParseNonNegativeValid(t *testing.T) {
	n, kind := ParseNonNegative([]byte("123"), 10)
	if kind != ErrNone || n != 123 {
		t.Fatalf("got (%d, %v), want (123, ErrNone)", n, kind)
	}

	n, kind = ParseNonNegative([]byte("0"), 10)
	if kind != ErrNone || n != 0 {
		t.Fatalf("got (%d, %v), want (0, ErrNone)", n, kind)
	}
}

func TestParseNonNegativeRejects(t *testing.T) {
	if _, kind := ParseNonNegative([]byte(""), 10); kind != ErrEmpty {
		t.Errorf("empty: kind = %v, want ErrEmpty", kind)
	}
	if _, kind := ParseNonNegative([]byte("01"), 10); kind != ErrLeadingZero {
		t.Errorf("leading zero: kind = %v, want ErrLeadingZero", kind)
	}
	if _, kind := ParseNonNegative([]byte("1a"), 10); kind != ErrNonDigit {
		t.Errorf("non-digit: kind = %v, want ErrNonDigit", kind)
	}
	if _, kind := ParseNonNegative([]byte("12345"), 3); kind != ErrOverflow {
		t.Errorf("digit limit: kind = %v, want ErrOverflow", kind)
	}
	if _, kind := ParseNonNegative([]byte("99999999999999999999"), 30); kind != ErrOverflow {
		t.Errorf("int overflow: kind = %v, want ErrOverflow", kind)
	}
}
