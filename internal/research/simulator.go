package research

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// Simulator produces plausible research results without touching the
// network. Output is deterministic per company name, so repeated research
// on the same lead yields the same contact.
type Simulator struct{}

// NewSimulator returns the no-network research backend.
func NewSimulator() *Simulator {
	return &Simulator{}
}

var simContacts = []struct {
	name string
	role string
}{
	{"Julia Brandt", "Head of HR"},
	{"Thomas Keller", "Geschäftsführer"},
	{"Anna Schuster", "Head of Learning & Development"},
	{"Michael Vogt", "CTO"},
	{"Sabine Richter", "Leiterin Personalentwicklung"},
}

var simCities = []string{
	"10115 Berlin", "20095 Hamburg", "80331 München", "50667 Köln", "60311 Frankfurt am Main",
}

// Research derives company and contact data from the company name.
func (s *Simulator) Research(_ context.Context, companyName, _, _ string) (*Result, error) {
	if strings.TrimSpace(companyName) == "" {
		return &Result{}, nil
	}

	slug := slugify(companyName)
	h := fnv.New32a()
	_, _ = h.Write([]byte(slug))
	sum := h.Sum32()

	contact := simContacts[int(sum)%len(simContacts)]
	city := simCities[int(sum>>8)%len(simCities)]

	return &Result{
		CompanyWebsite:  fmt.Sprintf("https://www.%s.de", slug),
		CompanyAddress:  fmt.Sprintf("Hauptstraße %d, %s", 1+int(sum)%99, city),
		CompanyEmail:    fmt.Sprintf("info@%s.de", slug),
		ContactName:     contact.name,
		ContactRole:     contact.role,
		ContactLinkedIn: fmt.Sprintf("https://linkedin.com/in/%s", slugify(contact.name)),
	}, nil
}

// slugify lowercases, transliterates German umlauts and strips everything
// that is not a letter or digit, joining words with hyphens.
func slugify(s string) string {
	replacer := strings.NewReplacer(
		"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
		"Ä", "ae", "Ö", "oe", "Ü", "ue",
	)
	s = replacer.Replace(strings.ToLower(s))

	var b strings.Builder
	lastHyphen := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
