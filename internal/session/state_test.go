package session

import (
	"sync"
	"testing"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Idle, "idle"},
		{Recording, "recording"},
		{Transcribing, "transcribing"},
		{Result, "result"},
		{Status(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStateInitiallyIdle(t *testing.T) {
	s := NewState()

	if s.Status() != Idle {
		t.Errorf("Status = %v, want Idle", s.Status())
	}
	if s.StopRequested() {
		t.Error("StopRequested = true on fresh state")
	}
	if s.LastResult() != "" {
		t.Errorf("LastResult = %q, want empty", s.LastResult())
	}
}

func TestBeginRecordingFromIdle(t *testing.T) {
	s := NewState()

	if !s.beginRecording() {
		t.Fatal("beginRecording() from Idle = false, want true")
	}
	if s.Status() != Recording {
		t.Errorf("Status = %v, want Recording", s.Status())
	}
}

func TestBeginRecordingFromResult(t *testing.T) {
	s := NewState()
	s.setStatus(Result)

	if !s.beginRecording() {
		t.Fatal("beginRecording() from Result = false, want true")
	}
	if s.Status() != Recording {
		t.Errorf("Status = %v, want Recording", s.Status())
	}
}

func TestBeginRecordingRefusedWhileBusy(t *testing.T) {
	for _, status := range []Status{Recording, Transcribing} {
		s := NewState()
		s.setStatus(status)

		if s.beginRecording() {
			t.Errorf("beginRecording() from %v = true, want false", status)
		}
		if s.Status() != status {
			t.Errorf("Status changed from %v to %v", status, s.Status())
		}
	}
}

func TestBeginRecordingRaceStartsOneSession(t *testing.T) {
	s := NewState()

	var wg sync.WaitGroup
	var started sync.Map
	wins := 0
	var mu sync.Mutex

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if s.beginRecording() {
				started.Store(i, true)
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("beginRecording() won by %d goroutines, want exactly 1", wins)
	}
}

func TestStopRequestRoundTrip(t *testing.T) {
	s := NewState()

	s.RequestStop()
	if !s.StopRequested() {
		t.Error("StopRequested = false after RequestStop")
	}

	s.clearStopRequest()
	if s.StopRequested() {
		t.Error("StopRequested = true after clear")
	}
}

func TestWaveformReplace(t *testing.T) {
	s := NewState()

	s.ReplaceWaveform([]float32{1, 2, 3})
	if got := s.Waveform(); len(got) != 3 || got[0] != 1 {
		t.Errorf("Waveform = %v, want [1 2 3]", got)
	}

	// Replace, not append.
	s.ReplaceWaveform([]float32{9})
	if got := s.Waveform(); len(got) != 1 || got[0] != 9 {
		t.Errorf("Waveform = %v, want [9]", got)
	}

	s.ReplaceWaveform(nil)
	if got := s.Waveform(); len(got) != 0 {
		t.Errorf("Waveform = %v, want empty", got)
	}
}

func TestResultRoundTrip(t *testing.T) {
	s := NewState()

	s.SetResult("hello world")
	if got := s.LastResult(); got != "hello world" {
		t.Errorf("LastResult = %q, want %q", got, "hello world")
	}
}
