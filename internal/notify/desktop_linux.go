package notify

import (
	"log"
	"os/exec"
)

func sendDesktop(msg string, critical bool) {
	args := []string{"-a", "whisper-paste"}
	if critical {
		args = append(args, "-u", "critical")
	}
	args = append(args, msg)

	if err := exec.Command("notify-send", args...).Run(); err != nil {
		log.Printf("notify: notify-send failed: %v", err)
	}
}
