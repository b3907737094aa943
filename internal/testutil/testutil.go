package testutil

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tbit-io/whisper-paste/internal/waveform"
)

// WaitForCondition waits for a condition to be true or fails the test.
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

// MockRecorder implements session.Recorder for testing.
type MockRecorder struct {
	Samples []float32 // returned from Record
	Err     error     // returned instead, if set
	Feed    []float32 // appended to the sink before returning, if set

	// BlockUntilStop makes Record behave like real capture: it returns
	// only once the stop flag is observed set.
	BlockUntilStop bool

	calls atomic.Int32
}

func (m *MockRecorder) Record(stop *atomic.Bool, sink *waveform.Window) ([]float32, error) {
	m.calls.Add(1)

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Feed != nil && sink != nil {
		sink.Append(m.Feed)
	}
	if m.BlockUntilStop {
		for !stop.Load() {
			time.Sleep(2 * time.Millisecond)
		}
	}
	return m.Samples, nil
}

func (m *MockRecorder) Calls() int {
	return int(m.calls.Load())
}

// MockTranscriber implements transcriber.Transcriber for testing.
type MockTranscriber struct {
	Text string
	Err  error

	// Release, if non-nil, blocks each Transcribe call until the channel
	// is closed, to hold the controller in the transcribing phase.
	Release chan struct{}

	mu       sync.Mutex
	requests [][]byte
}

func (m *MockTranscriber) Transcribe(ctx context.Context, wavData []byte) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, wavData)
	m.mu.Unlock()

	if m.Release != nil {
		select {
		case <-m.Release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// Requests returns a copy of the WAV payloads received so far.
func (m *MockTranscriber) Requests() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.requests))
	copy(out, m.requests)
	return out
}

// MockPaster implements paste.Paster for testing.
type MockPaster struct {
	Err error

	mu    sync.Mutex
	texts []string
}

func (m *MockPaster) Paste(ctx context.Context, text string) error {
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()
	return m.Err
}

// Pasted returns a copy of the texts pasted so far.
func (m *MockPaster) Pasted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.texts))
	copy(out, m.texts)
	return out
}

// MockNotifier implements notify.Notifier for testing.
type MockNotifier struct {
	mu     sync.Mutex
	errors []string
}

func (m *MockNotifier) RecordingChanged(on bool) {}
func (m *MockNotifier) Result(text string)       {}

func (m *MockNotifier) Error(msg string) {
	m.mu.Lock()
	m.errors = append(m.errors, msg)
	m.mu.Unlock()
}

func (m *MockNotifier) Errors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.errors))
	copy(out, m.errors)
	return out
}
