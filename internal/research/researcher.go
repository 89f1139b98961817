// Package research enriches leads with company and contact data.
//
// Two backends exist: a deterministic simulator (default, no network) and a
// Perplexity-backed client used when an API key is configured.
package research

import "context"

// Result holds whatever company and contact data a backend could find.
// Empty fields mean "not found" and must not overwrite existing lead data.
type Result struct {
	CompanyWebsite  string `json:"firmen_website"`
	CompanyAddress  string `json:"firmen_adresse"`
	CompanyEmail    string `json:"firmen_email"`
	ContactName     string `json:"ansprechpartner_name"`
	ContactRole     string `json:"ansprechpartner_rolle"`
	ContactLinkedIn string `json:"ansprechpartner_linkedin"`
}

// Researcher finds company and contact data for a job posting.
type Researcher interface {
	Research(ctx context.Context, companyName, jobTitle, location string) (*Result, error)
}
