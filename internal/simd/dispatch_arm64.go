//go:build arm64

package simd

func detectBackend() Backend {
	return BackendNEON
}
