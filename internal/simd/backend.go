package simd

import "sync"

// Backend identifies a concrete vector-primitive implementation. Selection
// is runtime CPU dispatch on x86_64 (AVX2 preferred over SSE4.2), fixed to
// NEON on arm64, and scalar fallback elsewhere.
type Backend uint8

const (
	BackendScalar Backend = iota
	BackendSSE42
	BackendAVX2
	BackendNEON
)

func (b Backend) String() string {
	switch b {
	case BackendAVX2:
		return "avx2"
	case BackendSSE42:
		return "sse42"
	case BackendNEON:
		return "neon"
	default:
		return "scalar"
	}
}

// LaneWidth returns the backend's vector width W in bytes.
func (b Backend) LaneWidth() int {
	switch b {
	case BackendAVX2:
		return 32
	case BackendSSE42, BackendNEON:
		return 16
	default:
		return 1
	}
}

var (
	dispatchOnce     sync.Once
	dispatchedResult Backend
)

// SelectedBackend returns the process-wide dispatched backend, detecting it
// exactly once (idempotent, safe for concurrent first use).
func SelectedBackend() Backend {
	dispatchOnce.Do(func() {
		dispatchedResult = detectBackend()
	})
	return dispatchedResult
}
