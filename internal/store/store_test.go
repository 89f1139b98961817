package store

import (
	"path/filepath"
	"testing"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIdempotent(t *testing.T) {
	db := testDB(t)

	// testDB already ran Migrate, so run it again to check idempotency.
	result, err := db.Migrate()
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed {
		t.Error("second Migrate() should report Changed=false")
	}
	if result.Version != 2 {
		t.Errorf("version = %d, want 2 (init + research columns)", result.Version)
	}
}

func TestInsertAndGet(t *testing.T) {
	db := testDB(t)

	l, err := db.InsertLead(&lead.Lead{
		Title:       "KI-Trainer (m/w/d)",
		SourceURL:   "https://example.org/job/1",
		Keywords:    []string{"KI", "Copilot"},
		CompanyName: "Acme GmbH",
	})
	if err != nil {
		t.Fatal(err)
	}
	if l.ID == 0 {
		t.Error("expected assigned id")
	}
	if l.Status != lead.StatusNew {
		t.Errorf("status = %q, want neu", l.Status)
	}
	if l.Source != "StepStone" {
		t.Errorf("quelle = %q, want StepStone default", l.Source)
	}
	if len(l.Keywords) != 2 || l.Keywords[0] != "KI" {
		t.Errorf("keywords = %v, want [KI Copilot]", l.Keywords)
	}
	if l.CreatedAt.IsZero() || l.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	got, err := db.GetLead(l.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Title != "KI-Trainer (m/w/d)" {
		t.Errorf("GetLead = %+v", got)
	}

	missing, err := db.GetLead(9999)
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Error("expected nil for missing lead")
	}
}

func TestListFilters(t *testing.T) {
	db := testDB(t)

	seed := []lead.Lead{
		{Title: "A", Keywords: []string{"KI", "GenAI"}, Status: lead.StatusNew},
		{Title: "B", Keywords: []string{"Cloud"}, Status: lead.StatusActivated},
		{Title: "C", Keywords: []string{"KI"}, Status: lead.StatusActivated},
	}
	for i := range seed {
		if _, err := db.InsertLead(&seed[i]); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		status  lead.Status
		keyword string
		want    int
	}{
		{"all", "", "", 3},
		{"by status", lead.StatusActivated, "", 2},
		{"by keyword", "", "KI", 2},
		{"status and keyword", lead.StatusActivated, "KI", 1},
		{"no match", lead.StatusReplied, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leads, err := db.ListLeads(tt.status, tt.keyword)
			if err != nil {
				t.Fatal(err)
			}
			if len(leads) != tt.want {
				t.Errorf("got %d leads, want %d", len(leads), tt.want)
			}
		})
	}
}

func TestListOrderNewestFirst(t *testing.T) {
	db := testDB(t)

	first, _ := db.InsertLead(&lead.Lead{Title: "older"})
	second, _ := db.InsertLead(&lead.Lead{Title: "newer"})

	leads, err := db.ListLeads("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(leads) != 2 {
		t.Fatalf("got %d leads, want 2", len(leads))
	}
	if leads[0].ID != second.ID || leads[1].ID != first.ID {
		t.Errorf("order = [%d %d], want [%d %d]", leads[0].ID, leads[1].ID, second.ID, first.ID)
	}
}

func TestUpdateLeadPartial(t *testing.T) {
	db := testDB(t)

	l, _ := db.InsertLead(&lead.Lead{Title: "T", CompanyName: "Acme"})

	website := "https://acme.example"
	status := lead.StatusResearched
	updated, err := db.UpdateLead(l.ID, &LeadUpdate{
		CompanyWebsite: &website,
		Status:         &status,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.CompanyWebsite != website {
		t.Errorf("website = %q, want %q", updated.CompanyWebsite, website)
	}
	if updated.Status != lead.StatusResearched {
		t.Errorf("status = %q, want recherchiert", updated.Status)
	}
	// Untouched fields survive.
	if updated.Title != "T" || updated.CompanyName != "Acme" {
		t.Errorf("partial update clobbered fields: %+v", updated)
	}
	if !updated.UpdatedAt.After(l.UpdatedAt) && !updated.UpdatedAt.Equal(l.UpdatedAt) {
		t.Error("aktualisiert_am not bumped")
	}

	// Updating a missing lead reports nil.
	gone, err := db.UpdateLead(9999, &LeadUpdate{CompanyWebsite: &website})
	if err != nil {
		t.Fatal(err)
	}
	if gone != nil {
		t.Error("expected nil for missing lead")
	}
}

func TestDeleteLead(t *testing.T) {
	db := testDB(t)

	l, _ := db.InsertLead(&lead.Lead{Title: "X"})

	ok, err := db.DeleteLead(l.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected delete to report existing row")
	}

	ok, err = db.DeleteLead(l.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("second delete should report no row")
	}
}

func TestExistsBySourceURL(t *testing.T) {
	db := testDB(t)

	if _, err := db.InsertLead(&lead.Lead{Title: "X", SourceURL: "https://example.org/1"}); err != nil {
		t.Fatal(err)
	}

	exists, err := db.ExistsBySourceURL("https://example.org/1")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("expected existing URL to be found")
	}

	exists, err = db.ExistsBySourceURL("https://example.org/other")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("unexpected match for unknown URL")
	}

	// Empty URLs never count as duplicates.
	if _, err := db.InsertLead(&lead.Lead{Title: "Y"}); err != nil {
		t.Fatal(err)
	}
	exists, err = db.ExistsBySourceURL("")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("empty URL must not match")
	}
}

func TestStats(t *testing.T) {
	db := testDB(t)

	statuses := []lead.Status{
		lead.StatusNew, lead.StatusNew,
		lead.StatusActivated,
		lead.StatusResearched,
		lead.StatusLetter,
		lead.StatusContacted,
		lead.StatusReplied,
	}
	for i, s := range statuses {
		if _, err := db.InsertLead(&lead.Lead{Title: "L", SourceURL: "", Status: s, Keywords: []string{"k"}}); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	s, err := db.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if s.Total != 7 {
		t.Errorf("total = %d, want 7", s.Total)
	}
	if s.New != 2 || s.Activated != 1 || s.Researched != 1 {
		t.Errorf("counts = %+v", s)
	}
	// Combined letter bucket spans letter_drafted..replied.
	if s.Letters != 3 {
		t.Errorf("anschreiben = %d, want 3", s.Letters)
	}
}

func TestSeedDemoSkipsExisting(t *testing.T) {
	db := testDB(t)

	n, err := db.SeedDemo()
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatal("expected demo leads to be created")
	}

	again, err := db.SeedDemo()
	if err != nil {
		t.Fatal(err)
	}
	if again != 0 {
		t.Errorf("second seed created %d leads, want 0", again)
	}

	leads, _ := db.ListLeads("", "")
	if len(leads) != n {
		t.Errorf("got %d leads, want %d", len(leads), n)
	}
}
