package profile

import (
	"os"
	"path/filepath"
	"strings"
)

// BaseDir returns ~/.funnel.
func BaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".funnel")
}

// Dir returns the profile-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "profiles", name)
}

// AddrPath returns the file holding the daemon's listen address for a profile.
func AddrPath(name string) string {
	return filepath.Join(Dir(name), "daemon.addr")
}

// LockPath returns the lock file path for a profile.
func LockPath(name string) string {
	return filepath.Join(Dir(name), "LOCK")
}

// DBPath returns the lead database path for a profile.
func DBPath(name string) string {
	return filepath.Join(Dir(name), "funnel.db")
}

// LogDir returns the log directory for a profile.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// DaemonLogPath returns the daemon log file path.
func DaemonLogPath(name string) string {
	return filepath.Join(LogDir(name), "funneld.log")
}

// TUILogPath returns the board UI log file path.
func TUILogPath(name string) string {
	return filepath.Join(LogDir(name), "funnel.log")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// EnsureDir creates the profile directory tree with proper permissions.
func EnsureDir(name string) error {
	dirs := []string{
		Dir(name),
		LogDir(name),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}

// WriteAddr records the daemon's listen address so clients can find it.
func WriteAddr(name, addr string) error {
	return os.WriteFile(AddrPath(name), []byte(addr+"\n"), 0600)
}

// ReadAddr returns the recorded daemon address, or empty if none.
func ReadAddr(name string) string {
	data, err := os.ReadFile(AddrPath(name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
