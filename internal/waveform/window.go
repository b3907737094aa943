package waveform

import "sync"

// DefaultCapacity holds roughly the most recent 0.1s of audio at 16kHz.
const DefaultCapacity = 2048

// Window is a thread-safe sliding window over the most recent amplitude
// samples. When full, the oldest samples are dropped so an append never
// blocks the audio callback for longer than a short copy.
//
// Window is a display approximation only; the full-resolution capture
// buffer is kept elsewhere and is never trimmed.
type Window struct {
	mu       sync.Mutex
	samples  []float32
	capacity int
}

// NewWindow creates a Window holding at most capacity samples.
func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Window{
		samples:  make([]float32, 0, capacity),
		capacity: capacity,
	}
}

// Append adds samples, evicting the oldest once capacity is exceeded.
func (w *Window) Append(samples []float32) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.samples = append(w.samples, samples...)
	if excess := len(w.samples) - w.capacity; excess > 0 {
		w.samples = append(w.samples[:0], w.samples[excess:]...)
	}
}

// Snapshot returns a copy of the current window contents.
func (w *Window) Snapshot() []float32 {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]float32, len(w.samples))
	copy(out, w.samples)
	return out
}

// Len returns the number of samples currently held.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.samples)
}

// Clear discards all samples, keeping the capacity.
func (w *Window) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.samples = w.samples[:0]
}

// Capacity returns the fixed window capacity.
func (w *Window) Capacity() int {
	return w.capacity
}
