package profile

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	valid := []string{"main", "work", "side-gig", "kunde_2", "a"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "Main", "has space", "über", "a/b", strings.Repeat("x", 65)}
	for _, name := range invalid {
		if err := ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q) = nil, want error", name)
		}
	}
}

func TestResolvePrecedence(t *testing.T) {
	// Flag override always wins.
	if got := Resolve("override"); got != "override" {
		t.Errorf("Resolve(override) = %q, want override", got)
	}
}

func TestPathsUnderProfileDir(t *testing.T) {
	dir := Dir("main")
	for name, path := range map[string]string{
		"db":   DBPath("main"),
		"lock": LockPath("main"),
		"addr": AddrPath("main"),
		"log":  DaemonLogPath("main"),
	} {
		if !strings.HasPrefix(path, dir) {
			t.Errorf("%s path %q not under profile dir %q", name, path, dir)
		}
	}
}
