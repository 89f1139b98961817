package lead

import "testing"

func TestStatusLabels(t *testing.T) {
	tests := []struct {
		status Status
		label  string
	}{
		{StatusNew, "Neu"},
		{StatusActivated, "Aktiviert"},
		{StatusResearched, "Recherchiert"},
		{StatusLetter, "Anschreiben erstellt"},
		{StatusContacted, "Angeschrieben"},
		{StatusReplied, "Antwort erhalten"},
	}
	for _, tt := range tests {
		if got := tt.status.Label(); got != tt.label {
			t.Errorf("Label(%s) = %q, want %q", tt.status, got, tt.label)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses() {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("in_bearbeitung").Valid() {
		t.Error("unknown status should be invalid")
	}
	if Status("").Valid() {
		t.Error("empty status should be invalid")
	}
}

func TestLetterGating(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusNew, false},
		{StatusActivated, false},
		{StatusResearched, true},
		{StatusLetter, true},
		{StatusContacted, true},
		{StatusReplied, true},
	}
	for _, tt := range tests {
		l := &Lead{Status: tt.status}
		if got := l.CanGenerateLetter(); got != tt.want {
			t.Errorf("CanGenerateLetter(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestActivateGating(t *testing.T) {
	for _, s := range Statuses() {
		l := &Lead{Status: s}
		want := s == StatusNew
		if got := l.CanActivate(); got != want {
			t.Errorf("CanActivate(%s) = %v, want %v", s, got, want)
		}
	}
}
