package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DirStatus reports what CheckDirStatus found.
type DirStatus struct {
	Exists   bool
	Writable bool
	Error    error
}

// FileExists reports whether path can be stat'ed.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dirPath and its parents.
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// AbsPath returns path made absolute, or "unknown" for an empty path.
func AbsPath(path string) string {
	if path == "" {
		return "unknown"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// ExecutableDir returns the directory holding the running binary.
func ExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// CheckDirStatus creates dirPath if needed and probes it for writes.
func CheckDirStatus(dirPath string) DirStatus {
	var status DirStatus
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		status.Error = err
		log.Warnf("Cannot create directory %s: %v", dirPath, err)
		return status
	}
	status.Exists = true
	status.Writable = canWrite(dirPath)
	return status
}

func canWrite(dirPath string) bool {
	f, err := os.CreateTemp(dirPath, ".write_test*")
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dirPath, err)
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
