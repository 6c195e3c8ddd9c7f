package wrapper

import (
	"sync"
)

// Handles maps opaque integer handles to wrappers for callers that cannot
// hold Go pointers. Handle 0 is never issued.
type Handles struct {
	mu   sync.Mutex
	next uintptr
	m    map[uintptr]*Wrapper
}

// NewHandles creates an empty handle table.
func NewHandles() *Handles {
	return &Handles{m: make(map[uintptr]*Wrapper)}
}

// Put registers w and returns its handle.
func (h *Handles) Put(w *Wrapper) uintptr {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.m[h.next] = w
	return h.next
}

// Get returns the wrapper for handle, or nil.
func (h *Handles) Get(handle uintptr) *Wrapper {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.m[handle]
}

// Delete removes and closes the wrapper. Unknown or already deleted handles
// are ignored.
func (h *Handles) Delete(handle uintptr) {
	h.mu.Lock()
	w, ok := h.m[handle]
	delete(h.m, handle)
	h.mu.Unlock()

	if ok {
		_ = w.Close()
	}
}

// Len returns the number of live handles.
func (h *Handles) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.m)
}
