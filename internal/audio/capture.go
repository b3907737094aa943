package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/tbit-io/whisper-paste/internal/waveform"
)

// Config controls capture behavior.
type Config struct {
	// StopPollInterval is how often Record checks the stop flag.
	StopPollInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		StopPollInterval: 50 * time.Millisecond,
	}
}

// Recorder captures microphone audio. It is a reusable primitive: the only
// signal it knows about is the caller-supplied stop flag, nothing else.
type Recorder struct {
	config Config
}

func NewRecorder(config Config) *Recorder {
	if config.StopPollInterval <= 0 {
		config.StopPollInterval = DefaultConfig().StopPollInterval
	}
	return &Recorder{config: config}
}

func NewDefaultRecorder() *Recorder { return NewRecorder(DefaultConfig()) }

// Record opens the default input device at its own native sample rate and
// channel count, streams until stop is observed set, and returns the
// captured audio resampled to TargetSampleRate mono.
//
// The device is never forced to a specific configuration; forcing 16kHz
// mono fails outright on plenty of hardware. Multi-channel input is mixed
// down by averaging. If sink is non-nil the mono samples are also fed to
// it from the audio callback for live display.
//
// An empty capture is not an error: the caller gets an empty slice. All
// failures are reported before any audio has been accumulated.
func (r *Recorder) Record(stop *atomic.Bool, sink *waveform.Window) ([]float32, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize audio backend: %w", err)
	}
	defer portaudio.Terminate()

	dev, err := portaudio.DefaultInputDevice()
	if err != nil {
		return nil, fmt.Errorf("no input device found: %w", err)
	}

	channels := dev.MaxInputChannels
	if channels < 1 {
		return nil, fmt.Errorf("device %q has no input channels", dev.Name)
	}
	nativeRate := int(dev.DefaultSampleRate)
	if nativeRate <= 0 {
		return nil, fmt.Errorf("device %q reports invalid sample rate %v", dev.Name, dev.DefaultSampleRate)
	}

	// Full-resolution buffer. Guarded because the audio callback appends
	// from its own thread while Record reads after stop.
	var mu sync.Mutex
	var samples []float32

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: channels,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      dev.DefaultSampleRate,
		FramesPerBuffer: portaudio.FramesPerBufferUnspecified,
	}

	stream, err := portaudio.OpenStream(params, func(in []float32) {
		mono := mixToMono(in, channels)

		mu.Lock()
		samples = append(samples, mono...)
		mu.Unlock()

		// Must not block here beyond a short-held lock: stalls in the
		// callback cause audio underruns.
		if sink != nil {
			sink.Append(mono)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("open input stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("start input stream: %w", err)
	}

	log.Printf("audio: recording from %q (%d Hz, %d ch)", dev.Name, nativeRate, channels)

	for !stop.Load() {
		time.Sleep(r.config.StopPollInterval)
	}

	// Release the device before resampling or any network work so no two
	// streams are ever open at once.
	if err := stream.Stop(); err != nil {
		log.Printf("audio: stop stream: %v", err)
	}
	if err := stream.Close(); err != nil {
		log.Printf("audio: close stream: %v", err)
	}

	mu.Lock()
	raw := samples
	samples = nil
	mu.Unlock()

	if nativeRate != TargetSampleRate {
		raw = Resample(raw, nativeRate, TargetSampleRate)
	}
	return raw, nil
}

// mixToMono averages interleaved channels into mono samples. The returned
// slice is always a fresh allocation; portaudio reuses the callback buffer.
func mixToMono(in []float32, channels int) []float32 {
	if channels <= 1 {
		out := make([]float32, len(in))
		copy(out, in)
		return out
	}

	frames := len(in) / channels
	out := make([]float32, 0, frames)
	for f := 0; f < frames; f++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += in[f*channels+c]
		}
		out = append(out, sum/float32(channels))
	}
	return out
}
