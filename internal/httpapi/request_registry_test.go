package httpapi

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestRequestRegistry_AddAndDone(t *testing.T) {
	rr := NewRequestRegistry()

	if rr.ActiveCount() != 0 {
		t.Errorf("ActiveCount() = %d, want 0", rr.ActiveCount())
	}

	if !rr.Add() {
		t.Error("Add() should return true when not draining")
	}
	if !rr.Add() {
		t.Error("Add() should return true when not draining")
	}
	if rr.ActiveCount() != 2 {
		t.Errorf("ActiveCount() = %d, want 2", rr.ActiveCount())
	}

	rr.Done()
	rr.Done()
	if rr.ActiveCount() != 0 {
		t.Errorf("ActiveCount() = %d, want 0 after all Done()", rr.ActiveCount())
	}
}

func TestRequestRegistry_Draining(t *testing.T) {
	rr := NewRequestRegistry()

	if rr.IsDraining() {
		t.Error("IsDraining() should be false initially")
	}
	if !rr.Add() {
		t.Error("Add() should succeed before draining")
	}

	rr.StartDraining()

	if !rr.IsDraining() {
		t.Error("IsDraining() should be true after StartDraining()")
	}
	if rr.Add() {
		t.Error("Add() should return false when draining")
	}
	if rr.ActiveCount() != 1 {
		t.Errorf("ActiveCount() = %d, want 1", rr.ActiveCount())
	}

	rr.Done()
	if rr.ActiveCount() != 0 {
		t.Errorf("ActiveCount() = %d, want 0", rr.ActiveCount())
	}
}

func TestRequestRegistry_WaitBlocksUntilDone(t *testing.T) {
	rr := NewRequestRegistry()

	rr.Add()
	rr.Add()

	done := make(chan struct{})
	go func() {
		rr.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Error("Wait() should block while requests are active")
	default:
	}

	rr.Done()

	select {
	case <-done:
		t.Error("Wait() should block while requests are active")
	default:
	}

	rr.Done()
	<-done
}

func TestRequestRegistry_DrainDuringConcurrentAdds(t *testing.T) {
	rr := NewRequestRegistry()
	const n = 100

	var wg sync.WaitGroup
	var accepted, rejected int64
	var mu sync.Mutex

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if rr.Add() {
				mu.Lock()
				accepted++
				mu.Unlock()
				defer rr.Done()
			} else {
				mu.Lock()
				rejected++
				mu.Unlock()
			}
		}()

		if i == n/2 {
			rr.StartDraining()
		}
	}

	wg.Wait()

	if accepted+rejected != n {
		t.Errorf("accepted(%d) + rejected(%d) != %d", accepted, rejected, n)
	}
	if rejected == 0 {
		t.Error("expected some requests to be rejected after draining started")
	}
	if rr.ActiveCount() != 0 {
		t.Errorf("ActiveCount() = %d, want 0", rr.ActiveCount())
	}
}

func TestReadyzEndpoint(t *testing.T) {
	rr := NewRequestRegistry()
	h, _, _ := newTestRouter(t, RouterConfig{}, rr)

	t.Run("returns 200 when not draining", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if body := rec.Body.String(); body != "ok" {
			t.Errorf("body = %q, want %q", body, "ok")
		}
	})

	t.Run("returns 503 when draining", func(t *testing.T) {
		rr.StartDraining()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
		if body := rec.Body.String(); body != "draining" {
			t.Errorf("body = %q, want %q", body, "draining")
		}
	})
}

func TestSpeechRejectsDuringDrain(t *testing.T) {
	rr := NewRequestRegistry()
	h, eng, _ := newTestRouter(t, RouterConfig{}, rr)
	rr.StartDraining()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, newSpeechRequest(`{"text":"こんにちは"}`))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if eng.TTSCount() != 0 {
		t.Errorf("engine called %d times during drain", eng.TTSCount())
	}
}

func TestRequestRegistry_DrainingChannel(t *testing.T) {
	rr := NewRequestRegistry()

	select {
	case <-rr.Draining():
		t.Fatal("Draining() closed before StartDraining()")
	default:
	}

	rr.StartDraining()
	rr.StartDraining()

	select {
	case <-rr.Draining():
	default:
		t.Fatal("Draining() not closed after StartDraining()")
	}
}
