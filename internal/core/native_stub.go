//go:build !voicevox || !cgo

package core

// NewNative reports ErrNativeUnavailable when the cgo binding is not compiled in.
func NewNative() (Engine, error) {
	return nil, ErrNativeUnavailable
}
