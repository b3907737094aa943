//go:build !linux && !darwin

package paste

import (
	"context"
	"fmt"
	"time"
)

func sendPasteKeystroke(ctx context.Context, timeout time.Duration) error {
	return fmt.Errorf("paste keystroke not supported on this platform; text is on the clipboard")
}
