package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/lukasbauer/voxbridge/internal/core"
)

// resultHeader carries the engine result name on speech responses.
const resultHeader = "X-Voicevox-Result"

type speechRequest struct {
	Text string `json:"text"`
}

type resultResponse struct {
	Code   int32  `json:"code"`
	Result string `json:"result"`
}

func newResultResponse(code core.ResultCode) resultResponse {
	return resultResponse{Code: int32(code), Result: code.String()}
}

func (r *Router) handleStatus(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":      r.speaker.ID(),
		"initialized":     r.speaker.Initialized(),
		"dictionary":      r.speaker.DictionaryPath(),
		"output":          r.speaker.OutputWavePath(),
		"active_requests": r.requests.ActiveCount(),
		"draining":        r.requests.IsDraining(),
		"subject":         getSubject(req.Context()),
	})
}

// handleSpeech synthesizes the posted text, writes speech.wav and returns the
// WAV bytes. Non-OK engine results are returned as 422 with the code.
func (r *Router) handleSpeech(w http.ResponseWriter, req *http.Request) {
	if !r.requests.Add() {
		http.Error(w, `{"error": "server is shutting down"}`, http.StatusServiceUnavailable)
		return
	}
	defer r.requests.Done()

	req.Body = http.MaxBytesReader(w, req.Body, r.cfg.MaxTextBytes)
	var body speechRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, `{"error": "text too large"}`, http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		http.Error(w, `{"error": "text is required"}`, http.StatusBadRequest)
		return
	}

	wav, code := r.speaker.Synthesize(body.Text)
	w.Header().Set(resultHeader, code.String())
	if code != core.ResultOK {
		r.logger.Printf("speech: synthesis failed: %s", code)
		writeJSON(w, http.StatusUnprocessableEntity, newResultResponse(code))
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(wav)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(wav); err != nil {
		r.logger.Printf("speech: write response: %v", err)
	}
}

// handleListEvents returns this session's recent synthesis events.
func (r *Router) handleListEvents(w http.ResponseWriter, req *http.Request) {
	if !r.eventLog.Enabled() {
		http.Error(w, `{"error": "event log not configured"}`, http.StatusServiceUnavailable)
		return
	}

	limit := 0
	if v := req.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, `{"error": "invalid limit"}`, http.StatusBadRequest)
			return
		}
		limit = n
	}

	events, err := r.eventLog.List(req.Context(), r.speaker.ID(), limit)
	if err != nil {
		r.logger.Printf("events: list failed: %v", err)
		captureError(req, err, "events: list failed")
		http.Error(w, `{"error": "failed to list events"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": r.speaker.ID(),
		"events":     events,
	})
}
