package bus

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
)

const SockName = "control.sock"
const PidName = "whisper-paste.pid"
const ProtoVer = "0.1"

// ~/.cache/whisper-paste/control.sock
func getSockPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "whisper-paste", SockName), nil
}

// ~/.cache/whisper-paste/whisper-paste.pid
func getPidPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "whisper-paste", PidName), nil
}

type socketManager struct {
	path string
}

func (s *socketManager) listen() (net.Listener, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return nil, err
	}
	_ = os.Remove(s.path) // stale socket from last run
	return net.Listen("unix", s.path)
}

func (s *socketManager) dial() (net.Conn, error) {
	return net.Dial("unix", s.path)
}

type pidManager struct {
	path string
}

func (p *pidManager) create() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(p.path, []byte(strconv.Itoa(os.Getpid())), 0o600)
}

func (p *pidManager) remove() error {
	return os.Remove(p.path)
}

// checkExisting errors if another daemon holds the pid file. Stale and
// malformed pid files are removed.
func (p *pidManager) checkExisting() error {
	pidData, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil // no existing daemon
	}
	if err != nil {
		return err
	}

	pid, err := strconv.Atoi(string(pidData))
	if err != nil {
		_ = os.Remove(p.path)
		return nil
	}

	if !p.isProcessAlive(pid) {
		_ = os.Remove(p.path)
		return nil
	}

	return fmt.Errorf("daemon already running with PID %d", pid)
}

func (p *pidManager) isProcessAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

func newSocketManager() (*socketManager, error) {
	path, err := getSockPath()
	if err != nil {
		return nil, err
	}
	return &socketManager{path: path}, nil
}

func newPidManager() (*pidManager, error) {
	path, err := getPidPath()
	if err != nil {
		return nil, err
	}
	return &pidManager{path: path}, nil
}

func SockPath() (string, error) {
	return getSockPath()
}

func Listen() (net.Listener, error) {
	sm, err := newSocketManager()
	if err != nil {
		return nil, err
	}
	return sm.listen()
}

func Dial() (net.Conn, error) {
	sm, err := newSocketManager()
	if err != nil {
		return nil, err
	}
	return sm.dial()
}

// SendCommand writes a single-byte command and returns the daemon's
// one-line response.
func SendCommand(cmd byte) (string, error) {
	c, err := Dial()
	if err != nil {
		return "", err
	}
	defer c.Close()

	if _, err := c.Write([]byte{cmd, '\n'}); err != nil {
		return "", err
	}

	return bufio.NewReader(c).ReadString('\n')
}

func CheckExistingDaemon() error {
	pm, err := newPidManager()
	if err != nil {
		return err
	}
	return pm.checkExisting()
}

func CreatePidFile() error {
	pm, err := newPidManager()
	if err != nil {
		return err
	}
	return pm.create()
}

func RemovePidFile() error {
	pm, err := newPidManager()
	if err != nil {
		return err
	}
	return pm.remove()
}
