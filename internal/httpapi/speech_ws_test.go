package httpapi

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lukasbauer/voxbridge/internal/core"
)

func dialSpeechWS(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/speech/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestSpeechWS_RoundTrip(t *testing.T) {
	h, eng, _ := newTestRouter(t, RouterConfig{}, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dialSpeechWS(t, srv, "")

	for i := 0; i < 2; i++ {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("こんにちは")); err != nil {
			t.Fatalf("write: %v", err)
		}
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if msgType != websocket.BinaryMessage {
			t.Fatalf("message type = %d, want binary", msgType)
		}
		if !bytes.Equal(msg, testWAV) {
			t.Errorf("wav = %q, want %q", msg, testWAV)
		}
	}
	if eng.TTSCount() != 2 {
		t.Errorf("TTS calls = %d, want 2", eng.TTSCount())
	}
}

func TestSpeechWS_EngineFailure(t *testing.T) {
	h, eng, _ := newTestRouter(t, RouterConfig{}, nil)
	eng.SetTTSResult(core.ResultInvalidSpeakerIDError)
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dialSpeechWS(t, srv, "")
	if err := conn.WriteMessage(websocket.TextMessage, []byte("テスト")); err != nil {
		t.Fatalf("write: %v", err)
	}

	var res resultResponse
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("read: %v", err)
	}
	if res.Code != int32(core.ResultInvalidSpeakerIDError) || res.Result != "VOICEVOX_RESULT_INVALID_SPEAKER_ID_ERROR" {
		t.Errorf("result = %+v", res)
	}
}

func TestSpeechWS_RejectsBinaryInput(t *testing.T) {
	h, eng, _ := newTestRouter(t, RouterConfig{}, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dialSpeechWS(t, srv, "")
	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{0x01}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var res wsError
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("read: %v", err)
	}
	if res.Error != "expected text message" {
		t.Errorf("error = %q", res.Error)
	}
	if eng.TTSCount() != 0 {
		t.Error("binary input should not reach the engine")
	}
}

func TestSpeechWS_RequiresToken(t *testing.T) {
	h, _, _ := newTestRouter(t, RouterConfig{JWTSecret: testSecret}, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/speech/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial without token should fail")
	}
	if resp == nil || resp.StatusCode != 401 {
		t.Errorf("response = %v, want 401", resp)
	}

	token, _, err := GenerateToken(testSecret, "ws", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	conn := dialSpeechWS(t, srv, "?access_token="+token)
	if err := conn.WriteMessage(websocket.TextMessage, []byte("ok")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("read: %v", err)
	}
}

func TestSpeechWS_IdleSessionDoesNotBlockDrain(t *testing.T) {
	rr := NewRequestRegistry()
	h, eng, _ := newTestRouter(t, RouterConfig{}, rr)
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dialSpeechWS(t, srv, "")
	if err := conn.WriteMessage(websocket.TextMessage, []byte("こんにちは")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("read: %v", err)
	}
	if rr.ActiveCount() != 0 {
		t.Errorf("ActiveCount() = %d with an idle session, want 0", rr.ActiveCount())
	}

	rr.StartDraining()

	drained := make(chan struct{})
	go func() {
		rr.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() still blocked by an idle websocket session")
	}

	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("read after drain = %v, want going-away close", err)
	}
	if eng.TTSCount() != 1 {
		t.Errorf("TTS calls = %d, want 1", eng.TTSCount())
	}
}

func TestSpeechWS_RejectsDuringDrain(t *testing.T) {
	rr := NewRequestRegistry()
	h, _, _ := newTestRouter(t, RouterConfig{}, rr)
	srv := httptest.NewServer(h)
	defer srv.Close()
	rr.StartDraining()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/speech/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial during drain should fail")
	}
	if resp == nil || resp.StatusCode != 503 {
		t.Errorf("response = %v, want 503", resp)
	}
}
