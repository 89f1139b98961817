package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
)

const leadColumns = `id, titel, quelle, quelle_url, keywords, textvorschau, volltext,
	firmenname, firmen_website, firmen_adresse, firmen_email,
	ansprechpartner_name, ansprechpartner_rolle, ansprechpartner_linkedin, ansprechpartner_quelle,
	anschreiben, status, erstellt_am, aktualisiert_am`

// InsertLead stores a new lead and returns it with the assigned id.
func (db *DB) InsertLead(l *lead.Lead) (*lead.Lead, error) {
	now := time.Now().UTC()
	if l.Source == "" {
		l.Source = "StepStone"
	}
	if l.Status == "" {
		l.Status = lead.StatusNew
	}
	res, err := db.Exec(`
		INSERT INTO leads (titel, quelle, quelle_url, keywords, textvorschau, volltext,
			firmenname, firmen_website, firmen_adresse, firmen_email,
			ansprechpartner_name, ansprechpartner_rolle, ansprechpartner_linkedin, ansprechpartner_quelle,
			anschreiben, status, erstellt_am, aktualisiert_am)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Title, l.Source, l.SourceURL, joinKeywords(l.Keywords), l.Preview, l.FullText,
		l.CompanyName, l.CompanyWebsite, l.CompanyAddress, l.CompanyEmail,
		l.ContactName, l.ContactRole, l.ContactLinkedIn, l.ContactSource,
		l.Letter, string(l.Status), now, now)
	if err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return db.GetLead(id)
}

// ListLeads returns leads newest first, optionally filtered by status and
// by a keyword substring match.
func (db *DB) ListLeads(status lead.Status, keyword string) ([]lead.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads`
	var conds []string
	var args []any
	if status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(status))
	}
	if keyword != "" {
		conds = append(conds, "keywords LIKE ?")
		args = append(args, "%"+keyword+"%")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY erstellt_am DESC, id DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	leads := []lead.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	return leads, rows.Err()
}

// GetLead returns a single lead by id, or nil if it does not exist.
func (db *DB) GetLead(id int64) (*lead.Lead, error) {
	row := db.QueryRow(`SELECT `+leadColumns+` FROM leads WHERE id = ?`, id)
	l, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// LeadUpdate carries a partial update. Nil fields are left untouched.
type LeadUpdate struct {
	Title           *string
	SourceURL       *string
	Keywords        *[]string
	Preview         *string
	FullText        *string
	CompanyName     *string
	CompanyWebsite  *string
	CompanyAddress  *string
	CompanyEmail    *string
	ContactName     *string
	ContactRole     *string
	ContactLinkedIn *string
	ContactSource   *string
	Letter          *string
	Status          *lead.Status
}

// UpdateLead applies the non-nil fields of u to the lead and bumps
// aktualisiert_am. Returns the updated lead, or nil if it does not exist.
func (db *DB) UpdateLead(id int64, u *LeadUpdate) (*lead.Lead, error) {
	sets := []string{"aktualisiert_am = ?"}
	args := []any{time.Now().UTC()}

	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if u.Title != nil {
		add("titel", *u.Title)
	}
	if u.SourceURL != nil {
		add("quelle_url", *u.SourceURL)
	}
	if u.Keywords != nil {
		add("keywords", joinKeywords(*u.Keywords))
	}
	if u.Preview != nil {
		add("textvorschau", *u.Preview)
	}
	if u.FullText != nil {
		add("volltext", *u.FullText)
	}
	if u.CompanyName != nil {
		add("firmenname", *u.CompanyName)
	}
	if u.CompanyWebsite != nil {
		add("firmen_website", *u.CompanyWebsite)
	}
	if u.CompanyAddress != nil {
		add("firmen_adresse", *u.CompanyAddress)
	}
	if u.CompanyEmail != nil {
		add("firmen_email", *u.CompanyEmail)
	}
	if u.ContactName != nil {
		add("ansprechpartner_name", *u.ContactName)
	}
	if u.ContactRole != nil {
		add("ansprechpartner_rolle", *u.ContactRole)
	}
	if u.ContactLinkedIn != nil {
		add("ansprechpartner_linkedin", *u.ContactLinkedIn)
	}
	if u.ContactSource != nil {
		add("ansprechpartner_quelle", *u.ContactSource)
	}
	if u.Letter != nil {
		add("anschreiben", *u.Letter)
	}
	if u.Status != nil {
		add("status", string(*u.Status))
	}

	args = append(args, id)
	res, err := db.Exec(`UPDATE leads SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update lead: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return db.GetLead(id)
}

// UpdateStatus sets a new workflow status for the lead.
func (db *DB) UpdateStatus(id int64, s lead.Status) (*lead.Lead, error) {
	return db.UpdateLead(id, &LeadUpdate{Status: &s})
}

// DeleteLead removes a lead. Reports whether a row existed.
func (db *DB) DeleteLead(id int64) (bool, error) {
	res, err := db.Exec(`DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ExistsBySourceURL reports whether a lead with this posting URL exists.
// Used to skip duplicates during import.
func (db *DB) ExistsBySourceURL(url string) (bool, error) {
	if url == "" {
		return false, nil
	}
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM leads WHERE quelle_url = ?`, url).Scan(&n)
	return n > 0, err
}

// Stats returns aggregate lead counts per workflow status.
func (db *DB) Stats() (*lead.Stats, error) {
	rows, err := db.Query(`SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var s lead.Stats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		s.Total += count
		switch lead.Status(status) {
		case lead.StatusNew:
			s.New = count
		case lead.StatusActivated:
			s.Activated = count
		case lead.StatusResearched:
			s.Researched = count
		case lead.StatusLetter:
			s.Letter = count
		case lead.StatusContacted:
			s.Contacted = count
		case lead.StatusReplied:
			s.Replied = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.Letters = s.Letter + s.Contacted + s.Replied
	return &s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(row scanner) (*lead.Lead, error) {
	var l lead.Lead
	var keywords, status string
	err := row.Scan(&l.ID, &l.Title, &l.Source, &l.SourceURL, &keywords, &l.Preview, &l.FullText,
		&l.CompanyName, &l.CompanyWebsite, &l.CompanyAddress, &l.CompanyEmail,
		&l.ContactName, &l.ContactRole, &l.ContactLinkedIn, &l.ContactSource,
		&l.Letter, &status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.Keywords = splitKeywords(keywords)
	l.Status = lead.Status(status)
	return &l, nil
}

func joinKeywords(kw []string) string {
	return strings.Join(kw, ",")
}

func splitKeywords(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
