package paste

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// sendPasteKeystroke synthesizes Cmd+V via System Events. osascript is
// safe to call from any goroutine, unlike the CoreGraphics event APIs.
func sendPasteKeystroke(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "osascript", "-e",
		`tell application "System Events" to keystroke "v" using command down`)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}
