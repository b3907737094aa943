package notify

import "log"

type Notifier interface {
	RecordingChanged(on bool)
	Result(text string)
	Error(msg string)
}

// Desktop sends desktop notifications via the platform helper.
type Desktop struct{}

func (Desktop) RecordingChanged(on bool) {
	if on {
		sendDesktop("Recording started", false)
	} else {
		sendDesktop("Recording stopped", false)
	}
}

func (Desktop) Result(text string) {
	sendDesktop("Pasted: "+truncate(text, 80), false)
}

func (Desktop) Error(msg string) {
	sendDesktop(msg, true)
}

// Log writes notifications to the daemon log instead of the desktop.
type Log struct{}

func (Log) RecordingChanged(on bool) {
	state := "stopped"
	if on {
		state = "started"
	}
	log.Printf("notify: recording %s", state)
}

func (Log) Result(text string) {
	log.Printf("notify: result %q", text)
}

func (Log) Error(msg string) {
	log.Printf("notify: error: %s", msg)
}

// Nop is a Notifier that does absolutely nothing.
// Useful in unit tests or headless builds.
type Nop struct{}

func (Nop) RecordingChanged(on bool) {}
func (Nop) Result(text string)       {}
func (Nop) Error(msg string)         {}

// ForType returns the notifier matching a config type string.
func ForType(kind string) Notifier {
	switch kind {
	case "desktop":
		return Desktop{}
	case "log":
		return Log{}
	default:
		return Nop{}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
