package httpapi

import (
	"sync"
	"sync/atomic"
)

// RequestRegistry counts synthesis work in progress so shutdown can wait for
// it. Once draining starts, Add refuses new work and the Draining channel is
// closed so long-lived sessions can hang up.
type RequestRegistry struct {
	mu       sync.Mutex // orders Add against StartDraining
	draining chan struct{}
	wg       sync.WaitGroup
	active   atomic.Int64
}

func NewRequestRegistry() *RequestRegistry {
	return &RequestRegistry{draining: make(chan struct{})}
}

// Add reserves a slot for one unit of work. It returns false once draining.
func (rr *RequestRegistry) Add() bool {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	if rr.isDrainingLocked() {
		return false
	}
	rr.wg.Add(1)
	rr.active.Add(1)
	return true
}

// Done releases a slot taken by a successful Add.
func (rr *RequestRegistry) Done() {
	rr.active.Add(-1)
	rr.wg.Done()
}

// StartDraining refuses further work and wakes everything waiting on
// Draining. Repeated calls are no-ops.
func (rr *RequestRegistry) StartDraining() {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	if !rr.isDrainingLocked() {
		close(rr.draining)
	}
}

// Draining is closed when StartDraining is called.
func (rr *RequestRegistry) Draining() <-chan struct{} {
	return rr.draining
}

func (rr *RequestRegistry) IsDraining() bool {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return rr.isDrainingLocked()
}

func (rr *RequestRegistry) isDrainingLocked() bool {
	select {
	case <-rr.draining:
		return true
	default:
		return false
	}
}

// ActiveCount returns the number of slots currently held.
func (rr *RequestRegistry) ActiveCount() int64 {
	return rr.active.Load()
}

// Wait blocks until every held slot is released.
func (rr *RequestRegistry) Wait() {
	rr.wg.Wait()
}
