//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func detectBackend() Backend {
	switch {
	case cpu.X86.HasAVX2:
		return BackendAVX2
	case cpu.X86.HasSSE42:
		return BackendSSE42
	default:
		return BackendScalar
	}
}
