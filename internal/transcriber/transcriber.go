package transcriber

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Transcriber turns a WAV recording into text. Implementations make a
// single blocking call per recording; there is no retry and no streaming.
type Transcriber interface {
	Transcribe(ctx context.Context, wavData []byte) (string, error)
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // override for tests; empty means the OpenAI default
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Model:   "whisper-1",
		Timeout: 60 * time.Second,
	}
}

// New creates a Transcriber for the OpenAI audio-transcriptions endpoint.
func New(config Config) (Transcriber, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key required")
	}
	if config.Model == "" {
		config.Model = DefaultConfig().Model
	}
	return NewOpenAI(config), nil
}

func NewDefaultTranscriber() (Transcriber, error) {
	config := DefaultConfig()
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.APIKey = apiKey
	}
	return New(config)
}
