// Package pid guards against two daemons serving from the same host with a
// PID file.
package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"codeberg.org/mutker/procmon/internal/errors"
)

const fileName = "procmon.pid"

// DefaultPath is the PID file location used when none is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), fileName)
}

// Write records the current process ID at path. It fails with
// ErrAlreadyRunning when the file names a live process other than this one.
// Stale or unreadable files are replaced.
func Write(path string) error {
	errFactory := errors.New()
	self := os.Getpid()

	if running, ok := readPID(path); ok && running != self && alive(running) {
		return errFactory.WithData(ErrAlreadyRunning, running)
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(self)), 0o600); err != nil {
		return errFactory.Wrap(ErrPIDFile, err)
	}

	return nil
}

// Remove deletes the PID file if it belongs to this process.
func Remove(path string) error {
	owner, ok := readPID(path)
	if !ok || owner != os.Getpid() {
		return nil
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.New().Wrap(ErrPIDFile, err)
	}

	return nil
}

func readPID(path string) (int, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || pid <= 0 {
		return 0, false
	}

	return pid, true
}

func alive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
