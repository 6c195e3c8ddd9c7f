package main

import (
	"io"
	"log"
	"os"
	"sync"
	"unsafe"

	"github.com/lukasbauer/voxbridge/internal/app"
	"github.com/lukasbauer/voxbridge/internal/core"
	"github.com/lukasbauer/voxbridge/internal/voicevox"
	"github.com/lukasbauer/voxbridge/internal/wrapper"
)

var (
	handles = wrapper.NewHandles()

	setupOnce sync.Once
	baseOpts  []voicevox.Option
)

// options builds the facade options once from the environment. Every wrapper
// leases the same runtime.
func options() []voicevox.Option {
	setupOnce.Do(func() {
		cfg := app.LoadConfigFromEnv()

		logger := log.New(io.Discard, "", 0)
		if cfg.LogLevel == "debug" {
			logger = log.New(os.Stderr, "libvoicevoxwrap: ", log.LstdFlags)
		}

		rt, err := app.NewRuntime(cfg, logger)
		if err != nil {
			logger.Printf("engine: %v", err)
			rt = core.NewRuntime(core.Unavailable{})
		}
		accel, err := core.ParseAccelerationMode(cfg.Acceleration)
		if err != nil {
			logger.Printf("%v, using auto", err)
		}

		baseOpts = []voicevox.Option{
			voicevox.WithRuntime(rt),
			voicevox.WithLogger(logger),
			voicevox.WithAccelerationMode(accel),
			voicevox.WithCPUThreads(uint16(cfg.CPUThreads)),
		}
		if cfg.OutputDir != "" {
			baseOpts = append(baseOpts, voicevox.WithBaseDir(cfg.OutputDir))
		}
	})
	return baseOpts
}

func newWrapper(dict []uint16, opts ...voicevox.Option) uintptr {
	w, err := wrapper.NewWide(dict, opts...)
	if err != nil {
		return 0
	}
	return handles.Put(w)
}

func initialize(h uintptr) int {
	w := handles.Get(h)
	if w == nil {
		return int(core.ResultReleased)
	}
	return w.Initialize()
}

func generateVoice(h uintptr, words []uint16) int {
	w := handles.Get(h)
	if w == nil {
		return int(core.ResultReleased)
	}
	return w.GenerateVoiceWide(words)
}

func deleteWrapper(h uintptr) {
	handles.Delete(h)
}

// wideString copies the NUL-terminated UTF-16 string at p.
func wideString(p *uint16) []uint16 {
	if p == nil {
		return nil
	}
	n := 0
	for ptr := unsafe.Pointer(p); *(*uint16)(ptr) != 0; n++ {
		ptr = unsafe.Add(ptr, 2)
	}
	out := make([]uint16, n)
	copy(out, unsafe.Slice(p, n))
	return out
}
