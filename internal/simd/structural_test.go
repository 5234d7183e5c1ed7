package simd

import (
	"bytes"
	"math/rand"
	"testing"
)

// naiveIndex recomputes the structural index with a direct byte scan,
// independent of the chunked Vector primitives, as an oracle.
func naiveIndex(data []byte) []uint32 {
	var out []uint32
	for i, c := range data {
		if isStructural(c) {
			out = append(out, uint32(i))
		}
	}
	return out
}

func TestIndexCompleteness(t *testing.T) {
	cases := []string{
		"",
		"n",
		"i123e",
		"3:abc",
		"u5:hello",
		"li1ei2ei3ee",
		"du1:au1:1u1:bu1:2e",
		"3:e:e", // payload bytes that collide with the structural alphabet
		string(bytes.Repeat([]byte("a"), 100)) + "i5e",
	}

	for _, backend := range []Backend{BackendScalar, BackendSSE42, BackendAVX2, BackendNEON} {
		for _, c := range cases {
			got := IndexForBackend([]byte(c), backend)
			want := naiveIndex([]byte(c))
			if !equalUint32(got, want) {
				t.Errorf("backend %v, input %q: got %v, want %v", backend, c, got, want)
			}
			for i := 1; i < len(got); i++ {
				if got[i] <= got[i-1] {
					t.Errorf("backend %v, input %q: indices not strictly ascending: %v", backend, c, got)
				}
			}
		}
	}
}

func TestIndexBackendParity(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	alphabet := []byte("ntfildue:0123456789abcXYZ ")

	for trial := 0; trial < 50; trial++ {
		n := r.Intn(200)
		data := make([]byte, n)
		for i := range data {
			data[i] = alphabet[r.Intn(len(alphabet))]
		}

		var reference []uint32
		for i, backend := range []Backend{BackendScalar, BackendSSE42, BackendAVX2, BackendNEON} {
			got := IndexForBackend(data, backend)
			if i == 0 {
				reference = got
				continue
			}
			if !equalUint32(got, reference) {
				t.Fatalf("trial %d: backend %v diverged from scalar reference on %q: got %v, want %v",
					trial, backend, data, got, reference)
			}
		}
	}
}

func equalUint32(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
