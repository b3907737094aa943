package notify

import (
	"fmt"
	"log"
	"os/exec"
	"strings"
)

func sendDesktop(msg string, critical bool) {
	title := "whisper-paste"
	if critical {
		title = "whisper-paste error"
	}
	// Escape double quotes for the AppleScript string literal.
	escaped := strings.ReplaceAll(msg, `"`, `\"`)
	script := fmt.Sprintf("display notification %q with title %q", escaped, title)

	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		log.Printf("notify: osascript failed: %v", err)
	}
}
