package daemon

import (
	"context"
	"log"

	"github.com/tbit-io/whisper-paste/internal/config"
	"github.com/tbit-io/whisper-paste/internal/notify"
	"github.com/tbit-io/whisper-paste/internal/paste"
	"github.com/tbit-io/whisper-paste/internal/transcriber"
)

// The reloading adapters resolve their configuration from the manager on
// every use, so edits to the config file apply to the next session
// without a daemon restart.

type reloadingTranscriber struct {
	manager *config.Manager
}

func (r *reloadingTranscriber) Transcribe(ctx context.Context, wavData []byte) (string, error) {
	t, err := transcriber.New(r.manager.GetConfig().ToTranscriberConfig())
	if err != nil {
		return "", err
	}
	return t.Transcribe(ctx, wavData)
}

type reloadingPaster struct {
	manager *config.Manager
}

func (r *reloadingPaster) Paste(ctx context.Context, text string) error {
	cfg := r.manager.GetConfig()
	if !cfg.Paste.Enabled {
		log.Printf("paste: disabled, copying to clipboard only")
		return paste.Copy(text)
	}
	return paste.New(cfg.ToPasteConfig()).Paste(ctx, text)
}

type reloadingNotifier struct {
	manager *config.Manager
}

func (r *reloadingNotifier) resolve() notify.Notifier {
	cfg := r.manager.GetConfig()
	if !cfg.Notifications.Enabled {
		return notify.Nop{}
	}
	return notify.ForType(cfg.Notifications.Type)
}

func (r *reloadingNotifier) RecordingChanged(on bool) { r.resolve().RecordingChanged(on) }
func (r *reloadingNotifier) Result(text string)       { r.resolve().Result(text) }
func (r *reloadingNotifier) Error(msg string)         { r.resolve().Error(msg) }
