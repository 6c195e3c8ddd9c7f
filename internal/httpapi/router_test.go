package httpapi

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lukasbauer/voxbridge/internal/core"
	"github.com/lukasbauer/voxbridge/internal/core/coretest"
	"github.com/lukasbauer/voxbridge/internal/voicevox"
)

var testWAV = []byte("RIFF\x24\x00\x00\x00WAVEfmt ")

// newTestRouter returns a router over an initialized facade backed by a fake
// engine writing into a temp dir.
func newTestRouter(t *testing.T, cfg RouterConfig, rr *RequestRegistry) (http.Handler, *coretest.Engine, *voicevox.Facade) {
	t.Helper()
	eng := &coretest.Engine{Outputs: [][]byte{testWAV}}
	f := voicevox.New(voicevox.DefaultDictionary,
		voicevox.WithRuntime(core.NewRuntime(eng)),
		voicevox.WithBaseDir(t.TempDir()),
	)
	t.Cleanup(func() { _ = f.Close() })
	if code := f.Initialize(); code != core.ResultOK {
		t.Fatalf("Initialize() = %v", code)
	}
	return NewRouter(cfg, log.New(io.Discard, "", 0), f, nil, rr), eng, f
}

func newSpeechRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/speech", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealthz(t *testing.T) {
	h, _, _ := newTestRouter(t, RouterConfig{}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "ok")
	}
}

func TestCORSPreflight(t *testing.T) {
	h, eng, _ := newTestRouter(t, RouterConfig{JWTSecret: "secret"}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/speech", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Expose-Headers"); got != resultHeader {
		t.Errorf("Expose-Headers = %q, want %q", got, resultHeader)
	}
	if eng.TTSCount() != 0 {
		t.Error("preflight must not reach the engine")
	}
}

type panicSpeaker struct{ Speaker }

func (panicSpeaker) Synthesize(string) ([]byte, core.ResultCode) { panic("boom") }

func TestSentryRecovery(t *testing.T) {
	_, _, f := newTestRouter(t, RouterConfig{}, nil)
	h := NewRouter(RouterConfig{}, nil, panicSpeaker{f}, nil, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, newSpeechRequest(`{"text":"x"}`))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
