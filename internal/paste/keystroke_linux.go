package paste

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// sendPasteKeystroke synthesizes Ctrl+V. xdotool covers X11; ydotool is
// the Wayland fallback (its key syntax takes raw keycodes: 29=ctrl, 47=v).
func sendPasteKeystroke(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := exec.LookPath("xdotool"); err == nil {
		if err := exec.CommandContext(ctx, "xdotool", "key", "ctrl+v").Run(); err == nil {
			return nil
		}
	}

	if _, err := exec.LookPath("ydotool"); err == nil {
		cmd := exec.CommandContext(ctx, "ydotool", "key", "29:1", "47:1", "47:0", "29:0")
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("ydotool failed: %w", err)
		}
		return nil
	}

	return fmt.Errorf("no keystroke tool found: install xdotool (X11) or ydotool (Wayland)")
}
