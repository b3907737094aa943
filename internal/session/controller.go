package session

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tbit-io/whisper-paste/internal/audio"
	"github.com/tbit-io/whisper-paste/internal/notify"
	"github.com/tbit-io/whisper-paste/internal/paste"
	"github.com/tbit-io/whisper-paste/internal/transcriber"
	"github.com/tbit-io/whisper-paste/internal/waveform"
)

// Recorder captures microphone audio until the stop flag is set and
// returns the samples at audio.TargetSampleRate. Implemented by
// audio.Recorder; mocked in tests.
type Recorder interface {
	Record(stop *atomic.Bool, sink *waveform.Window) ([]float32, error)
}

type Config struct {
	// BroadcastInterval is how often the live waveform is copied into the
	// shared state for display consumers.
	BroadcastInterval time.Duration

	// StopPollInterval is how often the shared stop-request flag is
	// forwarded to the capture-local stop flag.
	StopPollInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		BroadcastInterval: 50 * time.Millisecond,
		StopPollInterval:  30 * time.Millisecond,
	}
}

// Controller owns the session state machine. Toggle events drive it
// through Idle -> Recording -> Transcribing -> Result; every error path
// recovers to Idle. Only one session is ever active.
type Controller struct {
	state       *State
	config      Config
	recorder    Recorder
	transcriber transcriber.Transcriber
	paster      paste.Paster
	notifier    notify.Notifier

	wg sync.WaitGroup
}

func NewController(state *State, r Recorder, t transcriber.Transcriber, p paste.Paster, n notify.Notifier, config Config) *Controller {
	if n == nil {
		n = notify.Nop{}
	}
	if config.BroadcastInterval <= 0 {
		config.BroadcastInterval = DefaultConfig().BroadcastInterval
	}
	if config.StopPollInterval <= 0 {
		config.StopPollInterval = DefaultConfig().StopPollInterval
	}
	return &Controller{
		state:       state,
		config:      config,
		recorder:    r,
		transcriber: t,
		paster:      p,
		notifier:    n,
	}
}

func (c *Controller) State() *State {
	return c.state
}

// Toggle handles one debounced hotkey edge. It never blocks: all capture,
// network, and paste work runs on spawned goroutines so the hotkey poll
// loop stays responsive regardless of network latency.
func (c *Controller) Toggle() {
	switch c.state.Status() {
	case Recording:
		log.Printf("session: stop requested")
		c.state.RequestStop()
		go c.notifier.RecordingChanged(false)

	case Transcribing:
		// A session is mid-flight; the toggle is dropped, not queued.
		log.Printf("session: toggle ignored while transcribing")

	default:
		// Idle and Result both arm a fresh recording. beginRecording is a
		// compare-and-swap, so two toggles racing here start one session.
		if !c.state.beginRecording() {
			return
		}
		c.state.clearStopRequest()
		c.state.ReplaceWaveform(nil)

		log.Printf("session: recording started")
		c.wg.Add(1)
		go c.runSession()
		go c.notifier.RecordingChanged(true)
	}
}

// Wait blocks until any in-flight session has finished. Used on daemon
// shutdown and in tests.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) runSession() {
	defer c.wg.Done()

	// The capture primitive watches its own stop flag, not the shared
	// state: the stop watcher bridges the two so audio.Recorder stays
	// reusable with no knowledge of session state.
	var stop atomic.Bool
	sink := waveform.NewWindow(waveform.DefaultCapacity)

	var watchers sync.WaitGroup
	watchers.Add(2)
	go c.broadcastWaveform(&watchers, sink)
	go c.watchStop(&watchers, &stop)

	samples, err := c.recorder.Record(&stop, sink)
	if err != nil {
		log.Printf("session: recording error: %v", err)
		c.state.setStatus(Idle)
		watchers.Wait()
		c.notifier.Error("recording failed: " + err.Error())
		return
	}

	if len(samples) == 0 {
		log.Printf("session: no audio captured")
		c.state.setStatus(Idle)
		watchers.Wait()
		return
	}

	c.state.setStatus(Transcribing)
	watchers.Wait()

	log.Printf("session: transcribing %.1fs of audio", float64(len(samples))/float64(audio.TargetSampleRate))
	text, err := c.transcriber.Transcribe(context.Background(), audio.EncodeWAV(samples))
	if err != nil {
		log.Printf("session: transcription error: %v", err)
		c.state.setStatus(Idle)
		c.notifier.Error("transcription failed: " + err.Error())
		return
	}

	if text == "" {
		log.Printf("session: no speech detected")
		c.state.setStatus(Idle)
		return
	}

	c.state.SetResult(text)
	if err := c.paster.Paste(context.Background(), text); err != nil {
		// The text stays on the clipboard and in LastResult, so a failed
		// keystroke degrades delivery without losing the result.
		log.Printf("session: paste error: %v", err)
		c.notifier.Error("paste failed: " + err.Error())
	}
	c.state.setStatus(Result)
	c.notifier.Result(text)
}

// broadcastWaveform copies the capture-local waveform sink into the shared
// display window while recording, so display consumers never contend with
// the audio callback's lock on the sink itself.
func (c *Controller) broadcastWaveform(wg *sync.WaitGroup, sink *waveform.Window) {
	defer wg.Done()

	for c.state.Status() == Recording {
		c.state.ReplaceWaveform(sink.Snapshot())
		time.Sleep(c.config.BroadcastInterval)
	}
	// One final copy so the display holds the tail of the recording.
	c.state.ReplaceWaveform(sink.Snapshot())
}

// watchStop forwards the shared stop request to the capture-local flag.
func (c *Controller) watchStop(wg *sync.WaitGroup, stop *atomic.Bool) {
	defer wg.Done()

	for c.state.Status() == Recording {
		if c.state.StopRequested() {
			stop.Store(true)
			return
		}
		time.Sleep(c.config.StopPollInterval)
	}
	// The session ended some other way; release the capture loop too.
	stop.Store(true)
}
