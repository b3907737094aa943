package waveform

import (
	"sync"
	"testing"
)

func TestWindowAppendWithinCapacity(t *testing.T) {
	w := NewWindow(8)
	w.Append([]float32{1, 2, 3})

	got := w.Snapshot()
	if len(got) != 3 {
		t.Fatalf("Len = %d, want 3", len(got))
	}
	if got[0] != 1 || got[2] != 3 {
		t.Errorf("Snapshot = %v, want [1 2 3]", got)
	}
}

func TestWindowEvictsOldest(t *testing.T) {
	w := NewWindow(4)
	w.Append([]float32{1, 2, 3})
	w.Append([]float32{4, 5, 6})

	got := w.Snapshot()
	if len(got) != 4 {
		t.Fatalf("Len = %d, want 4", len(got))
	}
	want := []float32{3, 4, 5, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Snapshot[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWindowNeverExceedsCapacity(t *testing.T) {
	w := NewWindow(16)
	for i := 0; i < 1000; i++ {
		w.Append([]float32{float32(i), float32(i), float32(i)})
		if w.Len() > 16 {
			t.Fatalf("Len = %d after append #%d, capacity is 16", w.Len(), i)
		}
	}
}

func TestWindowOversizedAppend(t *testing.T) {
	w := NewWindow(4)
	big := make([]float32, 100)
	for i := range big {
		big[i] = float32(i)
	}
	w.Append(big)

	got := w.Snapshot()
	if len(got) != 4 {
		t.Fatalf("Len = %d, want 4", len(got))
	}
	if got[0] != 96 || got[3] != 99 {
		t.Errorf("Snapshot = %v, want the 4 most recent samples [96 97 98 99]", got)
	}
}

func TestWindowClear(t *testing.T) {
	w := NewWindow(8)
	w.Append([]float32{1, 2, 3})
	w.Clear()

	if w.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", w.Len())
	}
	if w.Capacity() != 8 {
		t.Errorf("Capacity = %d after Clear, want 8", w.Capacity())
	}
}

func TestWindowDefaultCapacity(t *testing.T) {
	w := NewWindow(0)
	if w.Capacity() != DefaultCapacity {
		t.Errorf("Capacity = %d, want %d", w.Capacity(), DefaultCapacity)
	}
}

func TestWindowConcurrentAppendSnapshot(t *testing.T) {
	w := NewWindow(64)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				w.Append([]float32{0.5, -0.5})
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 500; j++ {
			_ = w.Snapshot()
		}
	}()
	wg.Wait()

	if w.Len() > 64 {
		t.Errorf("Len = %d, want <= 64", w.Len())
	}
}
