package simd

import "testing"

func TestLoadUnalignedZeroPads(t *testing.T) {
	data := []byte("ab")
	v := loadUnaligned(data, 0, 16)
	if v.n != 16 {
		t.Fatalf("n = %d, want 16", v.n)
	}
	if v.lanes[0] != 'a' || v.lanes[1] != 'b' {
		t.Fatalf("lanes[0:2] = %v, want a,b", v.lanes[:2])
	}
	for i := 2; i < 16; i++ {
		if v.lanes[i] != 0 {
			t.Fatalf("lane %d = %d, want 0 (zero pad)", i, v.lanes[i])
		}
	}
}

func TestCmpEqByte(t *testing.T) {
	v := loadUnaligned([]byte("aabab"), 0, 8)
	mask := cmpEqByte(v, 'a')
	want := []byte{0xFF, 0xFF, 0, 0xFF, 0, 0, 0, 0}
	for i, w := range want {
		if mask.lanes[i] != w {
			t.Errorf("lane %d = %#x, want %#x", i, mask.lanes[i], w)
		}
	}
}

func TestCmpInRangeByte(t *testing.T) {
	v := loadUnaligned([]byte("0a5z9"), 0, 8)
	mask := cmpInRangeByte(v, '0', '9')
	want := []byte{0xFF, 0, 0xFF, 0, 0xFF, 0, 0, 0}
	for i, w := range want {
		if mask.lanes[i] != w {
			t.Errorf("lane %d = %#x, want %#x", i, mask.lanes[i], w)
		}
	}
}

func TestOr(t *testing.T) {
	a := cmpEqByte(loadUnaligned([]byte("ab"), 0, 4), 'a')
	b := cmpEqByte(loadUnaligned([]byte("ab"), 0, 4), 'b')
	r := or(a, b)
	if r.lanes[0] != 0xFF || r.lanes[1] != 0xFF || r.lanes[2] != 0 || r.lanes[3] != 0 {
		t.Fatalf("or result = %v, want [ff ff 00 00]", r.lanes[:4])
	}
}

func TestMovemask(t *testing.T) {
	v := loadUnaligned([]byte("a a a"), 0, 8)
	mask := cmpEqByte(v, 'a')
	got := movemask(mask)
	want := uint32(1<<0 | 1<<2 | 1<<4)
	if got != want {
		t.Fatalf("movemask = %#b, want %#b", got, want)
	}
}

func TestBackendLaneWidth(t *testing.T) {
	cases := map[Backend]int{
		BackendScalar: 1,
		BackendSSE42:  16,
		BackendAVX2:   32,
		BackendNEON:   16,
	}
	for backend, want := range cases {
		if got := backend.LaneWidth(); got != want {
			t.Errorf("%v.LaneWidth() = %d, want %d", backend, got, want)
		}
	}
}

func TestSelectedBackendIdempotent(t *testing.T) {
	first := SelectedBackend()
	for i := 0; i < 5; i++ {
		if got := SelectedBackend(); got != first {
			t.Fatalf("SelectedBackend() changed across calls: %v then %v", first, got)
		}
	}
}
