package platform

import (
	"os"
	"runtime"
)

// ExecMode is the mode given to generated helper scripts.
const ExecMode os.FileMode = 0o755

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// MakeExecutable marks a script as runnable by everyone and writable by the owner.
func MakeExecutable(path string) error {
	return Chmod(path, ExecMode)
}

// IsExecutable reports whether any execute bit is set on path.
// Always true on Windows.
func IsExecutable(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if runtime.GOOS == "windows" {
		return true, nil
	}
	return info.Mode().Perm()&0o111 != 0, nil
}
