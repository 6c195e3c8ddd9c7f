// Package coretest provides a scriptable core.Engine for tests.
package coretest

import (
	"sync"

	"github.com/lukasbauer/voxbridge/internal/core"
)

// TTSCall records one TTS invocation.
type TTSCall struct {
	Text      string
	SpeakerID uint32
	Options   core.TTSOptions
}

// Engine is an in-memory core.Engine. Zero value returns ResultOK from
// Initialize and an empty WAV from TTS.
type Engine struct {
	mu sync.Mutex

	// InitResult is returned by Initialize.
	InitResult core.ResultCode
	// Outputs are returned by successive TTS calls; the last one repeats.
	Outputs [][]byte
	// TTSResult is returned by TTS; non-OK returns no buffer.
	TTSResult core.ResultCode

	InitCalls []core.InitializeOptions
	TTSCalls  []TTSCall
	Finalizes int
}

func (e *Engine) Initialize(opts core.InitializeOptions) core.ResultCode {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.InitCalls = append(e.InitCalls, opts)
	return e.InitResult
}

func (e *Engine) TTS(text string, speakerID uint32, opts core.TTSOptions) ([]byte, core.ResultCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.TTSCalls = append(e.TTSCalls, TTSCall{Text: text, SpeakerID: speakerID, Options: opts})
	if e.TTSResult != core.ResultOK {
		return nil, e.TTSResult
	}
	if len(e.Outputs) == 0 {
		return []byte{}, core.ResultOK
	}
	i := len(e.TTSCalls) - 1
	if i >= len(e.Outputs) {
		i = len(e.Outputs) - 1
	}
	out := make([]byte, len(e.Outputs[i]))
	copy(out, e.Outputs[i])
	return out, core.ResultOK
}

func (e *Engine) Finalize() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Finalizes++
}

// SetTTSResult changes the TTS result under the lock.
func (e *Engine) SetTTSResult(code core.ResultCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.TTSResult = code
}

// TTSCount returns the number of TTS calls so far.
func (e *Engine) TTSCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.TTSCalls)
}

// InitCount returns the number of Initialize calls so far.
func (e *Engine) InitCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.InitCalls)
}

// FinalizeCount returns the number of Finalize calls so far.
func (e *Engine) FinalizeCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Finalizes
}
