package bencodex

import (
	"math/big"
	"testing"
)

func TestValueConstructorsAndAccessors(t *testing.T) {
	if Null().Kind() != KindNull {
		t.Errorf("Null().Kind() = %v, want KindNull", Null().Kind())
	}
	if !Bool(true).AsBool() {
		t.Error("Bool(true).AsBool() = false")
	}
	if IntFromInt64(42).AsInt().Cmp(big.NewInt(42)) != 0 {
		t.Error("IntFromInt64(42).AsInt() != 42")
	}
	if string(Bytes([]byte("hi")).AsBytes()) != "hi" {
		t.Error("Bytes round-trip failed")
	}
	if Text("hi").AsText() != "hi" {
		t.Error("Text round-trip failed")
	}
	list := List(IntFromInt64(1), IntFromInt64(2))
	if len(list.AsList()) != 2 {
		t.Errorf("List has %d items, want 2", len(list.AsList()))
	}
}

func TestDictSortsKeysCanonically(t *testing.T) {
	d := Dict(
		KV{Key: Text("b"), Value: IntFromInt64(2)},
		KV{Key: Bytes([]byte("a")), Value: IntFromInt64(1)},
		KV{Key: Text("a"), Value: IntFromInt64(3)},
	)
	entries := d.AsDict()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// ByteString "a" sorts before any TextString.
	if entries[0].Key.Kind() != KindBytes {
		t.Errorf("entries[0] kind = %v, want KindBytes", entries[0].Key.Kind())
	}
	if entries[1].Key.Kind() != KindText || entries[1].Key.AsText() != "a" {
		t.Errorf("entries[1] = %v %q, want TextString \"a\"", entries[1].Key.Kind(), entries[1].Key.AsText())
	}
	if entries[2].Key.AsText() != "b" {
		t.Errorf("entries[2] = %q, want \"b\"", entries[2].Key.AsText())
	}
}

func TestDictPanicsOnDuplicateKey(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Dict did not panic on duplicate key")
		}
	}()
	Dict(
		KV{Key: Text("a"), Value: IntFromInt64(1)},
		KV{Key: Text("a"), Value: IntFromInt64(2)},
	)
}

func TestDictPanicsOnNonStringKey(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Dict did not panic on non-string key")
		}
	}()
	Dict(KV{Key: IntFromInt64(1), Value: Null()})
}

func TestDictGet(t *testing.T) {
	d := Dict(KV{Key: Text("x"), Value: IntFromInt64(9)})
	v, ok := d.Get(Text("x"))
	if !ok || v.AsInt().Int64() != 9 {
		t.Fatalf("Get(\"x\") = (%v, %v), want (9, true)", v, ok)
	}
	if _, ok := d.Get(Text("y")); ok {
		t.Fatal("Get(\"y\") found a nonexistent key")
	}
}

func TestEqual(t *testing.T) {
	a := List(IntFromInt64(1), Text("x"), Dict(KV{Key: Text("k"), Value: Bool(true)}))
	b := List(IntFromInt64(1), Text("x"), Dict(KV{Key: Text("k"), Value: Bool(true)}))
	c := List(IntFromInt64(1), Text("x"), Dict(KV{Key: Text("k"), Value: Bool(false)}))

	if !Equal(a, b) {
		t.Error("Equal(a, b) = false, want true")
	}
	if Equal(a, c) {
		t.Error("Equal(a, c) = true, want false")
	}
	if Equal(Null(), Bool(false)) {
		t.Error("Equal across kinds should be false")
	}
}

func TestCompareKeysOrdering(t *testing.T) {
	if CompareKeys(Bytes([]byte("z")), Text("a")) >= 0 {
		t.Error("ByteString should sort before TextString regardless of content")
	}
	if CompareKeys(Bytes([]byte("a")), Bytes([]byte("b"))) >= 0 {
		t.Error("a should sort before b")
	}
	if CompareKeys(Bytes([]byte("ab")), Bytes([]byte("a"))) <= 0 {
		t.Error("longer string with common prefix should sort after shorter")
	}
	if CompareKeys(Text("a"), Text("a")) != 0 {
		t.Error("identical keys should compare equal")
	}
}
