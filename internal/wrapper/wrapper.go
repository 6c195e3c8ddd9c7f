// Package wrapper is the caller-facing side of the shim: one owned facade,
// plain integer statuses and wide-string entry points for managed runtimes.
package wrapper

import (
	"sync"

	"github.com/lukasbauer/voxbridge/internal/core"
	"github.com/lukasbauer/voxbridge/internal/textenc"
	"github.com/lukasbauer/voxbridge/internal/voicevox"
)

// Wrapper owns exactly one facade for its lifetime.
type Wrapper struct {
	mu     sync.Mutex
	facade *voicevox.Facade
}

// New creates a wrapper whose facade uses the dictionary at dict.
func New(dict string, opts ...voicevox.Option) *Wrapper {
	return &Wrapper{facade: voicevox.New(dict, opts...)}
}

// NewWide is New for a UTF-16 dictionary path.
func NewWide(dict []uint16, opts ...voicevox.Option) (*Wrapper, error) {
	s, err := textenc.WideToUTF8(dict)
	if err != nil {
		return nil, err
	}
	return New(s, opts...), nil
}

// Initialize forwards to the facade and returns the raw status.
func (w *Wrapper) Initialize() int {
	f := w.current()
	if f == nil {
		return int(core.ResultReleased)
	}
	return int(f.Initialize())
}

// GenerateVoice forwards words to the facade and returns the raw status.
func (w *Wrapper) GenerateVoice(words string) int {
	f := w.current()
	if f == nil {
		return int(core.ResultReleased)
	}
	return int(f.GenerateVoice(words))
}

// GenerateVoiceWide is GenerateVoice for UTF-16 input.
func (w *Wrapper) GenerateVoiceWide(words []uint16) int {
	s, err := textenc.WideToUTF8(words)
	if err != nil {
		return int(core.ResultInvalidUTF8InputError)
	}
	return w.GenerateVoice(s)
}

// Facade exposes the owned facade, or nil once closed.
func (w *Wrapper) Facade() *voicevox.Facade {
	return w.current()
}

// Close releases the facade once; later calls do nothing.
func (w *Wrapper) Close() error {
	w.mu.Lock()
	f := w.facade
	w.facade = nil
	w.mu.Unlock()

	if f == nil {
		return nil
	}
	return f.Close()
}

func (w *Wrapper) current() *voicevox.Facade {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.facade
}
