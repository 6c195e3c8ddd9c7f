// Package tts talks to a running VOICEVOX engine over HTTP. The Engine here
// implements core.Engine so the facade can use it in place of the native core.
package tts

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lukasbauer/voxbridge/internal/core"
)

// DefaultEngineURL is where the VOICEVOX engine listens out of the box.
const DefaultEngineURL = "http://127.0.0.1:50021"

// Config holds configuration for the HTTP engine.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *log.Logger

	// HTTPClient is shared with other callers; nil uses a private client.
	HTTPClient *http.Client
}

// Engine implements core.Engine against the VOICEVOX engine API.
type Engine struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *log.Logger

	mu          sync.Mutex
	initialized bool
}

// NewEngine creates an HTTP engine client.
func NewEngine(cfg Config) *Engine {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultEngineURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Engine{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Initialize checks the engine is reachable and warms up the default speaker.
// The dictionary and acceleration settings belong to the engine process and
// are ignored here.
func (e *Engine) Initialize(opts core.InitializeOptions) core.ResultCode {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	version, err := e.Version(ctx)
	if err != nil {
		e.logger.Printf("tts: engine unreachable: %v", err)
		return core.ResultLoadModelError
	}
	if err := e.InitializeSpeaker(ctx, 0); err != nil {
		e.logger.Printf("tts: initialize speaker: %v", err)
		return core.ResultLoadModelError
	}
	e.logger.Printf("tts: engine %s ready at %s (load_all_models=%v ignored)", version, e.baseURL, opts.LoadAllModels)

	e.mu.Lock()
	e.initialized = true
	e.mu.Unlock()
	return core.ResultOK
}

// TTS runs audio_query then synthesis for text.
func (e *Engine) TTS(text string, speakerID uint32, opts core.TTSOptions) ([]byte, core.ResultCode) {
	e.mu.Lock()
	ready := e.initialized
	e.mu.Unlock()
	if !ready {
		return nil, core.ResultUninitializedStatusError
	}
	if opts.Kana {
		return nil, core.ResultParseKanaError
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	query, err := e.AudioQuery(ctx, text, speakerID)
	if err != nil {
		e.logger.Printf("tts: audio_query: %v", err)
		if speakerRejected(err) {
			return nil, core.ResultInvalidSpeakerIDError
		}
		return nil, core.ResultExtractFullContextLabelError
	}

	wav, err := e.Synthesis(ctx, query, speakerID, opts.EnableInterrogativeUpspeak)
	if err != nil {
		e.logger.Printf("tts: synthesis: %v", err)
		return nil, core.ResultInferenceError
	}
	return wav, core.ResultOK
}

// Finalize drops the initialized state and idle connections.
func (e *Engine) Finalize() {
	e.mu.Lock()
	e.initialized = false
	e.mu.Unlock()
	e.httpClient.CloseIdleConnections()
}
