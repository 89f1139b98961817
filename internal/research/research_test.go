package research

import (
	"context"
	"strings"
	"testing"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
)

func TestSimulatorDeterministic(t *testing.T) {
	sim := NewSimulator()

	a, err := sim.Research(context.Background(), "Müller & Söhne GmbH", "KI Consultant", "Berlin")
	if err != nil {
		t.Fatalf("research: %v", err)
	}
	b, err := sim.Research(context.Background(), "Müller & Söhne GmbH", "", "")
	if err != nil {
		t.Fatalf("research: %v", err)
	}
	if *a != *b {
		t.Errorf("same company produced different results:\n%+v\n%+v", a, b)
	}

	if a.CompanyWebsite != "https://www.mueller-soehne-gmbh.de" {
		t.Errorf("website = %q", a.CompanyWebsite)
	}
	if a.CompanyEmail != "info@mueller-soehne-gmbh.de" {
		t.Errorf("email = %q", a.CompanyEmail)
	}
	if a.ContactName == "" || a.ContactRole == "" {
		t.Errorf("missing contact: %+v", a)
	}
	if !strings.HasPrefix(a.ContactLinkedIn, "https://linkedin.com/in/") {
		t.Errorf("linkedin = %q", a.ContactLinkedIn)
	}
}

func TestSimulatorEmptyCompany(t *testing.T) {
	sim := NewSimulator()
	res, err := sim.Research(context.Background(), "  ", "", "")
	if err != nil {
		t.Fatalf("research: %v", err)
	}
	if *res != (Result{}) {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestParseResearchReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  Result
	}{
		{
			name: "plain JSON",
			reply: `{"firmen_website": "https://acme.de", "firmen_adresse": "Hauptstraße 1, 10115 Berlin",
				"firmen_email": "info@acme.de", "ansprechpartner_name": "Max Mustermann",
				"ansprechpartner_rolle": "CTO", "ansprechpartner_linkedin": "https://linkedin.com/in/max"}`,
			want: Result{
				CompanyWebsite:  "https://acme.de",
				CompanyAddress:  "Hauptstraße 1, 10115 Berlin",
				CompanyEmail:    "info@acme.de",
				ContactName:     "Max Mustermann",
				ContactRole:     "CTO",
				ContactLinkedIn: "https://linkedin.com/in/max",
			},
		},
		{
			name:  "JSON wrapped in prose",
			reply: "Hier sind die Daten:\n```json\n{\"firmen_website\": \"https://acme.de\"}\n```\nViel Erfolg!",
			want:  Result{CompanyWebsite: "https://acme.de"},
		},
		{
			name: "placeholders scrubbed",
			reply: `{"firmen_website": "NICHT_GEFUNDEN", "firmen_adresse": null,
				"firmen_email": "", "ansprechpartner_name": "Nicht gefunden",
				"ansprechpartner_rolle": "CEO (NICHT_GEFUNDEN bei LinkedIn)", "ansprechpartner_linkedin": "null"}`,
			want: Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResearchReply(tt.reply)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if *got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseResearchReplyNoJSON(t *testing.T) {
	if _, err := ParseResearchReply("Leider konnte ich nichts finden."); err == nil {
		t.Error("expected error for reply without JSON object")
	}
}

func TestComposeLetter(t *testing.T) {
	l := &lead.Lead{
		Title:       "KI Consultant (m/w/d)",
		Source:      "StepStone",
		CompanyName: "Acme GmbH",
		ContactName: "Julia Brandt",
	}

	got := ComposeLetter(l, LetterSender{Name: "Martin Weber", Company: "Weber Consulting"})

	for _, want := range []string{
		"Sehr geehrte/r Julia Brandt,",
		`Stellenanzeige "KI Consultant (m/w/d)" auf StepStone`,
		"dass ich Acme GmbH bei der erfolgreichen Implementierung",
		"Mit freundlichen Grüßen\nMartin Weber\nWeber Consulting",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("letter missing %q:\n%s", want, got)
		}
	}
}

func TestComposeLetterFallbacks(t *testing.T) {
	l := &lead.Lead{Title: "Data Engineer", Source: "StepStone"}

	got := ComposeLetter(l, LetterSender{})

	for _, want := range []string{
		"Sehr geehrte/r Damen und Herren,",
		"dass ich Ihr Unternehmen bei",
		"[Ihr Name]",
		"[Ihre Firma]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("letter missing %q:\n%s", want, got)
		}
	}
}
