package paste

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
)

// Paster delivers text into the focused application. The mechanism is
// platform-specific and opaque to callers.
type Paster interface {
	Paste(ctx context.Context, text string) error
}

type Config struct {
	// ClipboardDelay is how long to wait between setting the clipboard
	// and sending the paste keystroke, so the clipboard owner change has
	// settled before the target application reads it.
	ClipboardDelay time.Duration

	// KeystrokeTimeout bounds the synthetic keystroke helper command.
	KeystrokeTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		ClipboardDelay:   100 * time.Millisecond,
		KeystrokeTimeout: 5 * time.Second,
	}
}

type paster struct {
	config Config
}

func New(config Config) Paster {
	if config.ClipboardDelay <= 0 {
		config.ClipboardDelay = DefaultConfig().ClipboardDelay
	}
	if config.KeystrokeTimeout <= 0 {
		config.KeystrokeTimeout = DefaultConfig().KeystrokeTimeout
	}
	return &paster{config: config}
}

func NewDefaultPaster() Paster { return New(DefaultConfig()) }

// Copy puts text on the clipboard without sending a paste keystroke.
func Copy(text string) error {
	if text == "" {
		return fmt.Errorf("cannot copy empty text")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("set clipboard: %w", err)
	}
	return nil
}

// Paste copies text to the clipboard and triggers the platform paste
// keystroke. A keystroke failure still leaves the text on the clipboard,
// so callers treat it as degraded delivery rather than a lost result.
func (p *paster) Paste(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("cannot paste empty text")
	}

	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("set clipboard: %w", err)
	}

	time.Sleep(p.config.ClipboardDelay)

	if err := sendPasteKeystroke(ctx, p.config.KeystrokeTimeout); err != nil {
		return fmt.Errorf("paste keystroke: %w", err)
	}
	return nil
}
