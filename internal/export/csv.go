// Package export renders leads as semicolon-delimited CSV, the layout
// German spreadsheet tools expect.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
)

var header = []string{
	"ID", "Titel", "Quelle", "URL", "Keywords", "Status",
	"Firmenname", "Website", "Adresse", "E-Mail",
	"Ansprechpartner", "Rolle", "LinkedIn",
	"Anschreiben", "Erstellt am", "Aktualisiert am",
}

// WriteCSV streams all leads to w with a header row.
func WriteCSV(w io.Writer, leads []lead.Lead) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range leads {
		if err := cw.Write(row(&leads[i])); err != nil {
			return fmt.Errorf("write lead %d: %w", leads[i].ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(l *lead.Lead) []string {
	return []string{
		strconv.FormatInt(l.ID, 10),
		l.Title,
		l.Source,
		l.SourceURL,
		strings.Join(l.Keywords, ","),
		string(l.Status),
		l.CompanyName,
		l.CompanyWebsite,
		l.CompanyAddress,
		l.CompanyEmail,
		l.ContactName,
		l.ContactRole,
		l.ContactLinkedIn,
		l.Letter,
		formatTime(l.CreatedAt),
		formatTime(l.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// Filename returns the download name for an export taken at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("leads_export_%s.csv", t.Format("20060102_150405"))
}
