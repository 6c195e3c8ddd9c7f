package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// StatusError is returned for non-2xx engine responses.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("VOICEVOX engine %s: %d - %s", e.Endpoint, e.StatusCode, e.Body)
}

// speakerRejected reports whether err is a 422 whose detail points at the
// speaker or style, as opposed to another validation failure such as the text.
func speakerRejected(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnprocessableEntity {
		return false
	}
	body := strings.ToLower(se.Body)
	return strings.Contains(body, "speaker") || strings.Contains(body, "style")
}

// Version returns the engine version string.
func (e *Engine) Version(ctx context.Context) (string, error) {
	body, err := e.do(ctx, http.MethodGet, "/version", nil, nil)
	if err != nil {
		return "", err
	}
	var v string
	if err := json.Unmarshal(body, &v); err != nil {
		return "", fmt.Errorf("failed to decode version: %w", err)
	}
	return v, nil
}

// InitializeSpeaker loads the model for speaker ahead of the first synthesis.
func (e *Engine) InitializeSpeaker(ctx context.Context, speaker uint32) error {
	q := url.Values{}
	q.Set("speaker", strconv.FormatUint(uint64(speaker), 10))
	q.Set("skip_reinit", "true")
	_, err := e.do(ctx, http.MethodPost, "/initialize_speaker", q, nil)
	return err
}

// AudioQuery returns the engine's audio query JSON for text.
func (e *Engine) AudioQuery(ctx context.Context, text string, speaker uint32) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("text", text)
	q.Set("speaker", strconv.FormatUint(uint64(speaker), 10))
	body, err := e.do(ctx, http.MethodPost, "/audio_query", q, nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("audio_query returned invalid JSON")
	}
	return json.RawMessage(body), nil
}

// Synthesis renders an audio query to WAV bytes.
func (e *Engine) Synthesis(ctx context.Context, query json.RawMessage, speaker uint32, upspeak bool) ([]byte, error) {
	q := url.Values{}
	q.Set("speaker", strconv.FormatUint(uint64(speaker), 10))
	q.Set("enable_interrogative_upspeak", strconv.FormatBool(upspeak))
	return e.do(ctx, http.MethodPost, "/synthesis", q, query)
}

func (e *Engine) do(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, error) {
	u := e.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Endpoint: path, StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}
