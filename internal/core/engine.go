// Package core is the boundary to the VOICEVOX synthesis engine.
//
// The engine keeps process-global state: one initialize, any number of
// synthesis calls, one finalize. Engine models those entry points; Runtime
// owns the single process-wide instance and hands out leases.
package core

import "errors"

// ErrNativeUnavailable is returned by NewNative when the binary was built
// without the voicevox build tag or without cgo.
var ErrNativeUnavailable = errors.New("voicevox: native core not compiled in (build with -tags voicevox and cgo enabled)")

// Engine is the engine's C entry points expressed as a Go interface.
type Engine interface {
	// Initialize loads the dictionary and models. The code is returned verbatim.
	Initialize(opts InitializeOptions) ResultCode

	// TTS synthesizes text with the given speaker and returns a WAV buffer
	// owned by the caller. The buffer is nil unless the code is ResultOK.
	TTS(text string, speakerID uint32, opts TTSOptions) ([]byte, ResultCode)

	// Finalize releases the engine's global state.
	Finalize()
}

// Unavailable stands in for an engine that could not be loaded.
type Unavailable struct{}

func (Unavailable) Initialize(InitializeOptions) ResultCode { return ResultEngineUnavailable }

func (Unavailable) TTS(string, uint32, TTSOptions) ([]byte, ResultCode) {
	return nil, ResultEngineUnavailable
}

func (Unavailable) Finalize() {}
