package jobs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakePurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
	n       int64
	err     error
	called  chan struct{}
}

func newFakePurger() *fakePurger {
	return &fakePurger{called: make(chan struct{}, 16)}
}

func (f *fakePurger) Purge(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	f.cutoffs = append(f.cutoffs, cutoff)
	f.mu.Unlock()
	select {
	case f.called <- struct{}{}:
	default:
	}
	return f.n, f.err
}

func (f *fakePurger) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func waitCall(t *testing.T, f *fakePurger) {
	t.Helper()
	select {
	case <-f.called:
	case <-time.After(2 * time.Second):
		t.Fatal("Purge was not called")
	}
}

func TestNewEventRetentionJob_Defaults(t *testing.T) {
	j := NewEventRetentionJob(newFakePurger(), nil, 0, 0)
	if j.retention != 30*24*time.Hour {
		t.Errorf("retention = %v, want 720h", j.retention)
	}
	if j.interval != time.Hour {
		t.Errorf("interval = %v, want 1h", j.interval)
	}
}

func TestEventRetentionJob_PurgesOnStart(t *testing.T) {
	f := newFakePurger()
	f.n = 3
	var buf bytes.Buffer
	j := NewEventRetentionJob(f, log.New(&buf, "", 0), 48*time.Hour, time.Hour)
	fixed := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return fixed }

	j.Start()
	waitCall(t, f)
	j.Stop()

	f.mu.Lock()
	cutoff := f.cutoffs[0]
	f.mu.Unlock()
	if want := fixed.Add(-48 * time.Hour); !cutoff.Equal(want) {
		t.Errorf("cutoff = %v, want %v", cutoff, want)
	}
	if !strings.Contains(buf.String(), "deleted 3 events") {
		t.Errorf("log = %q, want deletion count", buf.String())
	}
}

func TestEventRetentionJob_RunsOnInterval(t *testing.T) {
	f := newFakePurger()
	j := NewEventRetentionJob(f, nil, time.Hour, 10*time.Millisecond)

	j.Start()
	waitCall(t, f)
	waitCall(t, f)
	j.Stop()

	if f.calls() < 2 {
		t.Errorf("Purge called %d times, want at least 2", f.calls())
	}
}

func TestEventRetentionJob_ErrorIsLogged(t *testing.T) {
	f := newFakePurger()
	f.err = errors.New("db down")
	var buf bytes.Buffer
	j := NewEventRetentionJob(f, log.New(&buf, "", 0), time.Hour, time.Hour)

	j.Start()
	waitCall(t, f)
	j.Stop()
	j.Stop()

	if !strings.Contains(buf.String(), "purge failed: db down") {
		t.Errorf("log = %q", buf.String())
	}
}
