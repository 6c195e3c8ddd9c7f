package httpapi

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/lukasbauer/voxbridge/internal/core"
	"github.com/lukasbauer/voxbridge/internal/eventlog"
)

type RouterConfig struct {
	// JWT Authentication. Empty secret leaves /api open.
	JWTSecret string
	JWTExpiry time.Duration

	// MaxTextBytes caps the text accepted per synthesis request.
	MaxTextBytes int64
}

const defaultMaxTextBytes = 64 * 1024

// Speaker is the part of the voicevox facade the HTTP layer drives.
type Speaker interface {
	ID() string
	Initialized() bool
	Synthesize(text string) ([]byte, core.ResultCode)
	DictionaryPath() string
	OutputWavePath() string
}

type Router struct {
	cfg      RouterConfig
	logger   *log.Logger
	speaker  Speaker
	eventLog *eventlog.Logger
	requests *RequestRegistry
	mux      *http.ServeMux
}

func NewRouter(cfg RouterConfig, logger *log.Logger, sp Speaker, eventLog *eventlog.Logger, requests *RequestRegistry) http.Handler {
	if cfg.MaxTextBytes <= 0 {
		cfg.MaxTextBytes = defaultMaxTextBytes
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if requests == nil {
		requests = NewRequestRegistry()
	}

	r := &Router{
		cfg:      cfg,
		logger:   logger,
		speaker:  sp,
		eventLog: eventLog,
		requests: requests,
		mux:      http.NewServeMux(),
	}

	r.routes()
	return withSentryRecovery(withCORS(r.mux))
}

func (r *Router) routes() {
	// Health check
	r.mux.HandleFunc("GET /healthz", r.handleHealthz)
	r.mux.HandleFunc("GET /readyz", r.handleReadyz)

	// Protected API endpoints
	r.mux.HandleFunc("GET /api/status", r.withAuth(r.handleStatus))
	r.mux.HandleFunc("POST /api/speech", r.withAuth(r.handleSpeech))
	r.mux.HandleFunc("GET /api/speech/ws", r.withAuth(r.handleSpeechWS))
	r.mux.HandleFunc("GET /api/events", r.withAuth(r.handleListEvents))
}

func (r *Router) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReadyz fails once the server starts draining so load balancers stop
// routing new synthesis requests here.
func (r *Router) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	if r.requests.IsDraining() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("draining"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func withSentryRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				hub := sentry.CurrentHub().Clone()
				hub.Scope().SetRequest(req)
				hub.RecoverWithContext(req.Context(), err)
				hub.Flush(2 * time.Second)
				http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, req)
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		w.Header().Set("Access-Control-Expose-Headers", resultHeader)
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// captureError sends an error to Sentry with request context
func captureError(req *http.Request, err error, msg string) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(req)
		scope.SetExtra("message", msg)
		sentry.CaptureException(err)
	})
}
