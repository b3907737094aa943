package transcriber

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAI transcribes WAV audio via the OpenAI audio-transcriptions
// endpoint: a multipart POST with a model field and a file field, bearer
// API key.
type OpenAI struct {
	client *openai.Client
	config Config
}

func NewOpenAI(config Config) *OpenAI {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

// Transcribe sends the WAV bytes and returns the recognized text, trimmed.
// Empty input returns empty text without a network call. Empty text is a
// valid result, not an error.
func (o *OpenAI) Transcribe(ctx context.Context, wavData []byte) (string, error) {
	if len(wavData) == 0 {
		return "", nil
	}

	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	req := openai.AudioRequest{
		Model:    o.config.Model,
		Reader:   bytes.NewReader(wavData),
		FilePath: "audio.wav",
	}

	start := time.Now()
	resp, err := o.client.CreateTranscription(ctx, req)
	duration := time.Since(start)

	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("transcription API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("transcription request: %w", err)
	}

	log.Printf("transcriber: transcribed %d bytes in %v: %q", len(wavData), duration, resp.Text)
	return strings.TrimSpace(resp.Text), nil
}
