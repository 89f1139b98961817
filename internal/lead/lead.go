package lead

import "time"

// Lead is one tracked job-posting opportunity with company and contact data.
// JSON field names follow the wire format of the original tracker.
type Lead struct {
	ID int64 `json:"id"`

	// Job posting data.
	Title     string   `json:"titel"`
	Source    string   `json:"quelle"`
	SourceURL string   `json:"quelle_url"`
	Keywords  []string `json:"keywords"`
	Preview   string   `json:"textvorschau"`
	FullText  string   `json:"volltext"`

	// Company data, filled by research.
	CompanyName    string `json:"firmenname"`
	CompanyWebsite string `json:"firmen_website"`
	CompanyAddress string `json:"firmen_adresse"`
	CompanyEmail   string `json:"firmen_email"`

	// Contact person, filled by research.
	ContactName     string `json:"ansprechpartner_name"`
	ContactRole     string `json:"ansprechpartner_rolle"`
	ContactLinkedIn string `json:"ansprechpartner_linkedin"`
	ContactSource   string `json:"ansprechpartner_quelle"`

	// Generated cover letter.
	Letter string `json:"anschreiben"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"erstellt_am"`
	UpdatedAt time.Time `json:"aktualisiert_am"`
}

// CanActivate reports whether the activation action applies.
// Only fresh leads can be activated.
func (l *Lead) CanActivate() bool {
	return l.Status == StatusNew
}

// CanGenerateLetter reports whether a cover letter may be generated
// or edited. Requires research to have happened first.
func (l *Lead) CanGenerateLetter() bool {
	return l.Status.AtLeast(StatusResearched)
}

// HasLetter reports whether a cover letter draft exists.
func (l *Lead) HasLetter() bool {
	return l.Letter != ""
}

// Posting is a single external job-board search hit, not yet imported.
type Posting struct {
	Title       string   `json:"titel"`
	CompanyName string   `json:"firmenname,omitempty"`
	Location    string   `json:"standort,omitempty"`
	Source      string   `json:"quelle"`
	SourceURL   string   `json:"quelle_url"`
	Preview     string   `json:"textvorschau,omitempty"`
	PostedAt    string   `json:"veroeffentlicht,omitempty"`
	Keywords    []string `json:"keywords"`
}

// Stats aggregates lead counts per workflow status.
type Stats struct {
	Total      int `json:"total"`
	New        int `json:"neu"`
	Activated  int `json:"aktiviert"`
	Researched int `json:"recherchiert"`
	Letter     int `json:"anschreiben_erstellt"`
	Contacted  int `json:"angeschrieben"`
	Replied    int `json:"antwort_erhalten"`

	// Letters combines all stages at or past letter creation.
	Letters int `json:"anschreiben"`
}
