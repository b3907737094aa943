package hotkey

import (
	"context"
	"log"
	"sync"
	"time"
)

type Config struct {
	// Keys is the toggle combination, two modifiers plus a letter,
	// e.g. ["ctrl", "shift", "r"].
	Keys []string

	// PollInterval is how often global keyboard state is sampled.
	PollInterval time.Duration

	// Debounce is the minimum gap between accepted toggles. It absorbs
	// key auto-repeat and double-triggers from one physical press.
	Debounce time.Duration
}

func DefaultConfig() Config {
	return Config{
		Keys:         []string{"ctrl", "shift", "r"},
		PollInterval: 30 * time.Millisecond,
		Debounce:     500 * time.Millisecond,
	}
}

// Monitor polls global keyboard state and reports debounced toggle edges.
// A toggle fires only on a fresh press of the full combination; holding
// it emits nothing further, and releasing it re-arms without emitting.
type Monitor struct {
	config  Config
	pressed func() bool
	source  *keyState
	toggles chan struct{}
	wg      sync.WaitGroup
}

// NewMonitor creates a Monitor backed by the global keyboard hook.
func NewMonitor(config Config) (*Monitor, error) {
	if len(config.Keys) == 0 {
		config.Keys = DefaultConfig().Keys
	}
	source, err := newKeyState(config.Keys)
	if err != nil {
		return nil, err
	}

	m := newMonitorWithSource(config, source.comboHeld)
	m.source = source
	return m, nil
}

// newMonitorWithSource is the test seam: pressed reports whether the full
// combination is currently held.
func newMonitorWithSource(config Config, pressed func() bool) *Monitor {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultConfig().PollInterval
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultConfig().Debounce
	}
	return &Monitor{
		config:  config,
		pressed: pressed,
		toggles: make(chan struct{}, 1),
	}
}

// Toggles returns the channel of debounced toggle events.
func (m *Monitor) Toggles() <-chan struct{} {
	return m.toggles
}

// Run starts the keyboard hook (if any) and the poll loop. It returns
// immediately; the loops exit when ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	if m.source != nil {
		m.source.run(ctx)
	}

	m.wg.Add(1)
	go m.poll(ctx)

	log.Printf("hotkey: watching %v (poll %v, debounce %v)",
		m.config.Keys, m.config.PollInterval, m.config.Debounce)
}

// Wait blocks until the poll loop has exited.
func (m *Monitor) Wait() {
	m.wg.Wait()
}

// poll is the only loop that decides toggles. It never does I/O, never
// takes a lock held across I/O, and never blocks sending an event, so
// hotkey responsiveness is independent of everything downstream.
func (m *Monitor) poll(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.PollInterval)
	defer ticker.Stop()

	var held bool
	var lastToggle time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			down := m.pressed()
			switch {
			case down && !held && time.Since(lastToggle) >= m.config.Debounce:
				held = true
				lastToggle = time.Now()
				select {
				case m.toggles <- struct{}{}:
				default:
				}
			case !down:
				held = false
			}
		}
	}
}
