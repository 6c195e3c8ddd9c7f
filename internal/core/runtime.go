package core

import (
	"sync"
)

// Runtime owns the process-wide engine. Engine calls are serialized under mu
// and the engine is finalized once, when the last lease is released.
type Runtime struct {
	mu          sync.Mutex
	engine      Engine
	initialized bool
	leases      int
	finalized   int // number of Finalize calls, for diagnostics
}

// NewRuntime wraps e. Callers normally use Default instead; a second Runtime
// over the native engine would share its global state.
func NewRuntime(e Engine) *Runtime {
	return &Runtime{engine: e}
}

var (
	defaultOnce    sync.Once
	defaultRuntime *Runtime
	defaultErr     error
)

// Default returns the process-wide runtime over the native engine.
func Default() (*Runtime, error) {
	defaultOnce.Do(func() {
		e, err := NewNative()
		if err != nil {
			defaultErr = err
			return
		}
		defaultRuntime = NewRuntime(e)
	})
	return defaultRuntime, defaultErr
}

// Acquire hands out a new lease on the runtime.
func (r *Runtime) Acquire() *Lease {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leases++
	return &Lease{rt: r}
}

// Initialized reports whether the engine is currently initialized.
func (r *Runtime) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized
}

// Leases returns the number of unreleased leases.
func (r *Runtime) Leases() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leases
}

// Finalizations returns how many times the engine has been finalized.
func (r *Runtime) Finalizations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finalized
}

// Lease is one holder's claim on the runtime. A released lease rejects every
// call with ResultReleased.
type Lease struct {
	rt       *Runtime
	released bool // guarded by rt.mu
}

// Initialize initializes the engine unless it already is.
func (l *Lease) Initialize(opts InitializeOptions) ResultCode {
	r := l.rt
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.released {
		return ResultReleased
	}
	if r.initialized {
		return ResultAlreadyInitialized
	}
	code := r.engine.Initialize(opts)
	if code == ResultOK {
		r.initialized = true
	}
	return code
}

// TTS runs one synthesis on the shared engine.
func (l *Lease) TTS(text string, speakerID uint32, opts TTSOptions) ([]byte, ResultCode) {
	r := l.rt
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.released {
		return nil, ResultReleased
	}
	if !r.initialized {
		return nil, ResultNotInitialized
	}
	return r.engine.TTS(text, speakerID, opts)
}

// Runtime returns the runtime the lease belongs to.
func (l *Lease) Runtime() *Runtime { return l.rt }

// Released reports whether Release has been called.
func (l *Lease) Released() bool {
	l.rt.mu.Lock()
	defer l.rt.mu.Unlock()
	return l.released
}

// Release gives the lease back and reports whether it finalized the engine.
// Safe to call more than once.
func (l *Lease) Release() (finalized bool) {
	r := l.rt
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.released {
		return false
	}
	l.released = true
	r.leases--
	if r.leases == 0 && r.initialized {
		r.engine.Finalize()
		r.initialized = false
		r.finalized++
		return true
	}
	return false
}
