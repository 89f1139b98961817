package model

import (
	"fmt"
	"strings"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
)

// LeadColumns are the board table headers, aligned with LeadRow.
var LeadColumns = []string{"", "ID", "Titel", "Firma", "Keywords", "Status", "Aktualisiert"}

// LeadRow renders one board table row. The first cell is the bulk-selection
// marker.
func (b *Board) LeadRow(l *lead.Lead) []string {
	marker := " "
	if b.IsSelected(l.ID) {
		marker = "✓"
	}
	updated := ""
	if !l.UpdatedAt.IsZero() {
		updated = l.UpdatedAt.Format("02.01. 15:04")
	}
	return []string{
		marker,
		fmt.Sprintf("%d", l.ID),
		clip(l.Title, 48),
		clip(orDash(l.CompanyName), 24),
		keywordTag(l.Keywords, 4),
		l.Status.Label(),
		updated,
	}
}

// PostingColumns are the import table headers, aligned with PostingRow.
var PostingColumns = []string{"", "Titel", "Firma", "Ort", "Keywords"}

// PostingRow renders one search-result row. The first cell is the
// import-pick marker.
func (b *Board) PostingRow(index int, p *lead.Posting) []string {
	marker := " "
	if b.IsPicked(index) {
		marker = "✓"
	}
	return []string{
		marker,
		clip(p.Title, 52),
		clip(orDash(p.CompanyName), 24),
		clip(orDash(p.Location), 18),
		keywordTag(p.Keywords, 3),
	}
}

// LeadDetail renders the expanded detail text for one lead.
func LeadDetail(l *lead.Lead) string {
	var sb strings.Builder
	section := func(title string) {
		fmt.Fprintf(&sb, "\n%s\n%s\n", title, strings.Repeat("─", len([]rune(title))))
	}
	field := func(name, value string) {
		fmt.Fprintf(&sb, "  %-16s %s\n", name+":", orDash(value))
	}

	fmt.Fprintf(&sb, "%s\n", l.Title)
	fmt.Fprintf(&sb, "Status: %s\n", l.Status.Label())

	section("Stellenanzeige")
	field("Quelle", l.Source)
	field("URL", l.SourceURL)
	field("Keywords", strings.Join(l.Keywords, ", "))
	if l.Preview != "" {
		fmt.Fprintf(&sb, "\n  %s\n", l.Preview)
	}

	section("Firma")
	field("Name", l.CompanyName)
	field("Website", l.CompanyWebsite)
	field("Adresse", l.CompanyAddress)
	field("E-Mail", l.CompanyEmail)

	section("Ansprechpartner")
	field("Name", l.ContactName)
	field("Rolle", l.ContactRole)
	field("LinkedIn", l.ContactLinkedIn)
	field("Gefunden über", l.ContactSource)

	if l.HasLetter() {
		section("Anschreiben")
		fmt.Fprintf(&sb, "%s\n", l.Letter)
	}

	section("Verlauf")
	if !l.CreatedAt.IsZero() {
		field("Erstellt", l.CreatedAt.Format("02.01.2006 15:04"))
	}
	if !l.UpdatedAt.IsZero() {
		field("Aktualisiert", l.UpdatedAt.Format("02.01.2006 15:04"))
	}
	return sb.String()
}

// keywordTag joins at most max keywords; anything beyond is dropped
// without an overflow indicator.
func keywordTag(keywords []string, max int) string {
	if len(keywords) > max {
		keywords = keywords[:max]
	}
	return strings.Join(keywords, ", ")
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "–"
	}
	return s
}
