package deps

import (
	"os/exec"
	"runtime"
	"strings"
)

// Status represents the installation status of a helper binary
type Status struct {
	Installed bool
	Path      string
	Version   string
}

// Tool describes one external binary the daemon may shell out to.
type Tool struct {
	Name        string
	Purpose     string
	Required    bool
	versionArgs []string
}

// Check looks the tool up in PATH and captures its version banner when
// the tool reports one.
func (t Tool) Check() Status {
	path, err := exec.LookPath(t.Name)
	if err != nil {
		return Status{Installed: false}
	}

	status := Status{
		Installed: true,
		Path:      path,
	}

	if len(t.versionArgs) == 0 {
		return status
	}

	output, err := exec.Command(path, t.versionArgs...).Output()
	if err == nil {
		lines := strings.Split(string(output), "\n")
		if len(lines) > 0 {
			status.Version = strings.TrimSpace(lines[0])
		}
	}

	return status
}

// Tools returns the helper binaries relevant on the current platform.
// At least one paste helper must be present on Linux; the rest are
// optional niceties.
func Tools() []Tool {
	switch runtime.GOOS {
	case "darwin":
		return []Tool{
			{Name: "osascript", Purpose: "paste keystroke and notifications", Required: true},
		}
	case "linux":
		return []Tool{
			{Name: "xdotool", Purpose: "paste keystroke (X11)", versionArgs: []string{"--version"}},
			{Name: "ydotool", Purpose: "paste keystroke (Wayland)", versionArgs: []string{"--version"}},
			{Name: "notify-send", Purpose: "desktop notifications", versionArgs: []string{"--version"}},
		}
	default:
		return nil
	}
}

// CheckPasteHelper reports whether any paste keystroke helper is
// available on this platform.
func CheckPasteHelper() bool {
	switch runtime.GOOS {
	case "darwin":
		_, err := exec.LookPath("osascript")
		return err == nil
	case "linux":
		for _, name := range []string{"xdotool", "ydotool"} {
			if _, err := exec.LookPath(name); err == nil {
				return true
			}
		}
		return false
	default:
		return false
	}
}
