package research

import (
	"fmt"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
)

// LetterSender identifies the person signing a cover letter. Empty fields
// fall back to fill-in placeholders so the draft stays editable.
type LetterSender struct {
	Name    string
	Company string
}

// ComposeLetter renders the German cover letter draft for a lead. The caller
// is responsible for checking the lead's workflow stage first.
func ComposeLetter(l *lead.Lead, sender LetterSender) string {
	salutation := l.ContactName
	if salutation == "" {
		salutation = "Damen und Herren"
	}
	company := l.CompanyName
	if company == "" {
		company = "Ihr Unternehmen"
	}
	name := sender.Name
	if name == "" {
		name = "[Ihr Name]"
	}
	firm := sender.Company
	if firm == "" {
		firm = "[Ihre Firma]"
	}

	return fmt.Sprintf(`Sehr geehrte/r %s,

mit großem Interesse habe ich Ihre Stellenanzeige "%s" auf %s gelesen.

Als Experte im Bereich KI und digitale Transformation bin ich überzeugt, dass ich %s bei der erfolgreichen Implementierung von KI-Lösungen unterstützen kann.

Besonders angesprochen hat mich:
- Der Fokus auf innovative KI-Technologien
- Die Möglichkeit, an zukunftsweisenden Projekten mitzuarbeiten
- Die Vision Ihres Unternehmens im Bereich digitaler Innovation

Ich würde mich sehr freuen, in einem persönlichen Gespräch zu erläutern, wie ich %s mit meiner Expertise unterstützen kann.

Mit freundlichen Grüßen
%s
%s
`, salutation, l.Title, l.Source, company, company, name, firm)
}
