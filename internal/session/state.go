package session

import (
	"sync"
	"sync/atomic"

	"github.com/tbit-io/whisper-paste/internal/waveform"
)

// Status is the session phase. Exactly one value at any instant, visible
// to every goroutine that polls it.
type Status int32

const (
	Idle Status = iota
	Recording
	Transcribing
	Result
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Transcribing:
		return "transcribing"
	case Result:
		return "result"
	default:
		return "unknown"
	}
}

// State is the process-wide session state shared between the controller,
// its per-session goroutines, and external display consumers. It exposes
// only narrow operations, never raw fields, so the single-active-session
// and bounded-waveform invariants are enforced here rather than by caller
// discipline.
//
// Status and the stop-request flag are atomics: the polling loops check
// them every few tens of milliseconds and must never contend on a mutex.
// The waveform snapshot and last result are mutex-guarded, with locks held
// only for the duration of a copy.
type State struct {
	status        atomic.Int32
	stopRequested atomic.Bool

	window *waveform.Window

	mu         sync.Mutex
	lastResult string
}

// NewState creates the shared state. One per process; it is never
// destroyed mid-run.
func NewState() *State {
	return &State{
		window: waveform.NewWindow(waveform.DefaultCapacity),
	}
}

func (s *State) Status() Status {
	return Status(s.status.Load())
}

func (s *State) setStatus(status Status) {
	s.status.Store(int32(status))
}

// beginRecording atomically moves Idle or Result to Recording. A plain
// read-then-store here would let two toggles arriving in the same tick
// start two sessions; compare-and-swap closes that.
func (s *State) beginRecording() bool {
	if s.status.CompareAndSwap(int32(Idle), int32(Recording)) {
		return true
	}
	return s.status.CompareAndSwap(int32(Result), int32(Recording))
}

// RequestStop asks the active recording session to stop. It is safe to
// call from any goroutine, including external UI consumers.
func (s *State) RequestStop() {
	s.stopRequested.Store(true)
}

func (s *State) StopRequested() bool {
	return s.stopRequested.Load()
}

func (s *State) clearStopRequest() {
	s.stopRequested.Store(false)
}

// ReplaceWaveform swaps the display window contents with a fresh snapshot.
func (s *State) ReplaceWaveform(samples []float32) {
	s.window.Clear()
	s.window.Append(samples)
}

// Waveform returns a copy of the current display window.
func (s *State) Waveform() []float32 {
	return s.window.Snapshot()
}

// SetResult stores the last transcription result text.
func (s *State) SetResult(text string) {
	s.mu.Lock()
	s.lastResult = text
	s.mu.Unlock()
}

// LastResult returns the most recent transcription result.
func (s *State) LastResult() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}
