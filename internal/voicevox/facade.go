// Package voicevox is the facade between callers and the synthesis engine.
//
// A Facade resolves the dictionary directory and the output file relative to
// the executable, initializes the engine through a core.Lease and writes every
// successful synthesis to speech.wav, overwriting the previous one.
package voicevox

import (
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lukasbauer/voxbridge/internal/core"
	"github.com/lukasbauer/voxbridge/internal/eventlog"
	"github.com/lukasbauer/voxbridge/internal/textenc"
)

const (
	// OutputFileName is written next to the executable on every successful synthesis.
	OutputFileName = "speech.wav"

	// DefaultDictionary is the OpenJTalk dictionary directory shipped with the core.
	DefaultDictionary = "open_jtalk_dic_utf_8-1.11"

	// SpeakerID is fixed; speaker selection is not exposed.
	SpeakerID uint32 = 0
)

// Facade owns one lease on the process runtime.
type Facade struct {
	mu sync.Mutex // serializes synthesis with the output write

	id       string
	dict     string
	baseDir  string
	lease    *core.Lease
	logger   *log.Logger
	events   *eventlog.Logger
	accel    core.AccelerationMode
	threads  uint16
	writeOut func(path string, data []byte) error
}

// Option configures a Facade.
type Option func(*Facade)

// WithRuntime leases from rt instead of the process default.
func WithRuntime(rt *core.Runtime) Option {
	return func(f *Facade) { f.lease = rt.Acquire() }
}

// WithBaseDir replaces the executable directory for path resolution.
func WithBaseDir(dir string) Option {
	return func(f *Facade) { f.baseDir = dir }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(f *Facade) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithEventLog records lifecycle and synthesis events.
func WithEventLog(el *eventlog.Logger) Option {
	return func(f *Facade) { f.events = el }
}

// WithAccelerationMode selects the inference device.
func WithAccelerationMode(m core.AccelerationMode) Option {
	return func(f *Facade) { f.accel = m }
}

// WithCPUThreads sets the engine's CPU thread count (0 lets it decide).
func WithCPUThreads(n uint16) Option {
	return func(f *Facade) { f.threads = n }
}

// New creates a facade for the dictionary at dictPath, resolved against the
// executable directory when relative. Without WithRuntime it leases the
// process default runtime; if the native core is not compiled in, Initialize
// returns core.ResultEngineUnavailable.
func New(dictPath string, opts ...Option) *Facade {
	f := &Facade{
		id:       uuid.NewString(),
		dict:     dictPath,
		logger:   log.New(io.Discard, "", 0),
		writeOut: writeFile,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.lease == nil {
		rt, err := core.Default()
		if err != nil {
			f.logger.Printf("voicevox: %v", err)
			rt = core.NewRuntime(core.Unavailable{})
		}
		f.lease = rt.Acquire()
	}
	return f
}

// ID identifies this facade in the event log.
func (f *Facade) ID() string { return f.id }

// Initialize loads the engine with the dictionary and all models. The engine
// result is returned unchanged; there is no retry.
func (f *Facade) Initialize() core.ResultCode {
	opts := core.DefaultInitializeOptions()
	opts.AccelerationMode = f.accel
	opts.CPUNumThreads = f.threads
	opts.OpenJTalkDictDir = f.DictionaryPath()
	opts.LoadAllModels = true

	code := f.lease.Initialize(opts)
	if code != core.ResultOK {
		f.logger.Printf("voicevox: initialize failed: %s (dict=%s)", code, opts.OpenJTalkDictDir)
		f.events.LogAsync(f.id, eventlog.EventEngineInitializeFailed, map[string]any{
			"result": code.String(),
			"code":   int32(code),
			"dict":   opts.OpenJTalkDictDir,
		})
		return code
	}

	f.logger.Printf("voicevox: engine initialized (dict=%s)", opts.OpenJTalkDictDir)
	f.events.LogAsync(f.id, eventlog.EventEngineInitialized, map[string]any{
		"dict":         opts.OpenJTalkDictDir,
		"acceleration": f.accel.String(),
		"cpu_threads":  f.threads,
	})
	return code
}

// GenerateVoice synthesizes text and writes it to OutputWavePath.
func (f *Facade) GenerateVoice(text string) core.ResultCode {
	_, code := f.Synthesize(text)
	return code
}

// Synthesize is GenerateVoice that also returns the WAV bytes. On a non-OK
// code nothing is written and the buffer is nil. A failed file write does not
// change the code.
func (f *Facade) Synthesize(text string) ([]byte, core.ResultCode) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !textenc.ValidUTF8(text) {
		return nil, f.failed(core.ResultInvalidUTF8InputError, text)
	}

	wav, code := f.lease.TTS(text, SpeakerID, core.DefaultTTSOptions())
	if code != core.ResultOK {
		return nil, f.failed(code, text)
	}

	out := f.OutputWavePath()
	if err := f.writeOut(out, wav); err != nil {
		f.logger.Printf("voicevox: write %s: %v", out, err)
		f.events.LogAsync(f.id, eventlog.EventOutputWriteFailed, map[string]any{
			"path":  out,
			"error": err.Error(),
		})
	} else {
		f.events.LogAsync(f.id, eventlog.EventSpeechGenerated, map[string]any{
			"text_length": utf8.RuneCountInString(text),
			"bytes":       len(wav),
			"path":        out,
		})
	}
	return wav, code
}

func (f *Facade) failed(code core.ResultCode, text string) core.ResultCode {
	f.logger.Printf("voicevox: tts failed: %s", code)
	f.events.LogAsync(f.id, eventlog.EventSpeechFailed, map[string]any{
		"result":      code.String(),
		"code":        int32(code),
		"text_length": utf8.RuneCountInString(text),
	})
	return code
}

// Initialized reports whether the shared engine is initialized.
func (f *Facade) Initialized() bool {
	return !f.lease.Released() && f.lease.Runtime().Initialized()
}

// Close releases the lease. The engine is finalized when no lease remains.
// Calling Close again has no effect.
func (f *Facade) Close() error {
	if f.lease.Released() {
		return nil
	}
	event := releaseEvent(f.lease.Release())

	// Synchronous so the event lands before the caller closes the pool.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := f.events.Log(ctx, f.id, event, nil); err != nil {
		f.logger.Printf("voicevox: log release: %v", err)
	}
	return nil
}

func releaseEvent(finalized bool) eventlog.EventType {
	if finalized {
		return eventlog.EventEngineReleased
	}
	return eventlog.EventLeaseReleased
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
