package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lukasbauer/voxbridge/internal/core"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 10 * time.Second

type wsError struct {
	Error string `json:"error"`
}

// handleSpeechWS reads text frames and answers each with a binary WAV frame,
// or a JSON result frame when synthesis fails. Only a synthesis in progress
// holds a registry slot; an idle session is hung up as soon as draining starts.
func (r *Router) handleSpeechWS(w http.ResponseWriter, req *http.Request) {
	if r.requests.IsDraining() {
		http.Error(w, `{"error": "server is shutting down"}`, http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Printf("speech_ws: upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(r.cfg.MaxTextBytes)

	sessionDone := make(chan struct{})
	defer close(sessionDone)
	go r.hangUpOnDrain(conn, sessionDone)

	r.logger.Printf("speech_ws: connection established")

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			switch {
			case r.requests.IsDraining():
				r.logger.Printf("speech_ws: closed for shutdown")
			case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
				r.logger.Printf("speech_ws: connection closed")
			default:
				r.logger.Printf("speech_ws: read error: %v", err)
			}
			return
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))

		if msgType != websocket.TextMessage {
			if err := conn.WriteJSON(wsError{Error: "expected text message"}); err != nil {
				return
			}
			continue
		}

		if !r.requests.Add() {
			r.logger.Printf("speech_ws: dropping message, server is shutting down")
			return
		}
		wav, code := r.speaker.Synthesize(string(msg))
		r.requests.Done()

		if code != core.ResultOK {
			err = conn.WriteJSON(newResultResponse(code))
		} else {
			err = conn.WriteMessage(websocket.BinaryMessage, wav)
		}
		if err != nil {
			r.logger.Printf("speech_ws: write error: %v", err)
			return
		}
	}
}

// hangUpOnDrain sends a going-away close frame once draining starts and
// unblocks the pending read. A synthesis already running still finishes; its
// reply is written before the next read fails.
func (r *Router) hangUpOnDrain(conn *websocket.Conn, sessionDone <-chan struct{}) {
	select {
	case <-r.requests.Draining():
	case <-sessionDone:
		return
	}
	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server is shutting down"), deadline)
	_ = conn.SetReadDeadline(time.Now())
}
