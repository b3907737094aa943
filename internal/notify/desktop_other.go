//go:build !linux && !darwin

package notify

import "log"

func sendDesktop(msg string, critical bool) {
	log.Printf("notify: %s", msg)
}
