package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Martin212038201938/FunnyFunnel/internal/bus"
	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
	"github.com/Martin212038201938/FunnyFunnel/internal/research"
	"github.com/Martin212038201938/FunnyFunnel/internal/stepstone"
	"github.com/Martin212038201938/FunnyFunnel/internal/store"
)

type fakeSearcher struct {
	postings []lead.Posting
	err      error
	got      stepstone.SearchParams
}

func (f *fakeSearcher) Search(_ context.Context, p stepstone.SearchParams) ([]lead.Posting, error) {
	f.got = p
	return f.postings, f.err
}

type testEnv struct {
	router   *gin.Engine
	db       *store.DB
	bus      *bus.Bus
	searcher *fakeSearcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.Open(filepath.Join(t.TempDir(), "funnel.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	b := bus.New()
	searcher := &fakeSearcher{}
	srv := New(Params{
		DB:         db,
		Bus:        b,
		Researcher: research.NewSimulator(),
		Searcher:   searcher,
		Log:        zap.NewNop(),
		Sender:     research.LetterSender{Name: "Martin Weber", Company: "Weber Consulting"},
	})
	return &testEnv{router: srv.Router(), db: db, bus: b, searcher: searcher}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeLead(t *testing.T, w *httptest.ResponseRecorder) lead.Lead {
	t.Helper()
	var l lead.Lead
	if err := json.Unmarshal(w.Body.Bytes(), &l); err != nil {
		t.Fatalf("decode lead: %v (body %s)", err, w.Body.String())
	}
	return l
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp["error"]
}

func (e *testEnv) createLead(t *testing.T, body gin.H) lead.Lead {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/leads", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", w.Code, w.Body.String())
	}
	return decodeLead(t, w)
}

func TestCreateAndGetLead(t *testing.T) {
	e := newTestEnv(t)

	events, cancel := e.bus.Subscribe("lead.", 4)
	defer cancel()

	created := e.createLead(t, gin.H{
		"titel":      "KI Consultant (m/w/d)",
		"quelle_url": "https://example.org/job/1",
		"keywords":   []string{"KI", "LLM"},
		"firmenname": "Acme GmbH",
	})
	if created.ID == 0 || created.Status != lead.StatusNew || created.Source != "StepStone" {
		t.Errorf("created = %+v", created)
	}

	select {
	case evt := <-events:
		if evt.Kind != bus.KindLeadCreated {
			t.Errorf("event kind = %q", evt.Kind)
		}
	default:
		t.Error("no lead.created event published")
	}

	w := e.do(t, http.MethodGet, "/api/leads/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: status %d", w.Code)
	}
	got := decodeLead(t, w)
	if got.Title != "KI Consultant (m/w/d)" || len(got.Keywords) != 2 {
		t.Errorf("got = %+v", got)
	}
}

func TestCreateLeadRequiresTitle(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, http.MethodPost, "/api/leads", gin.H{"firmenname": "Acme"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Titel ist erforderlich" {
		t.Errorf("error = %q", msg)
	}
}

func TestGetLeadNotFound(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, http.MethodGet, "/api/leads/99", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Lead nicht gefunden" {
		t.Errorf("error = %q", msg)
	}
}

func TestActivateLead(t *testing.T) {
	e := newTestEnv(t)
	e.createLead(t, gin.H{"titel": "Data Engineer"})

	w := e.do(t, http.MethodPost, "/api/leads/1/activate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("activate: status %d body %s", w.Code, w.Body.String())
	}
	if got := decodeLead(t, w); got.Status != lead.StatusActivated {
		t.Errorf("status = %q", got.Status)
	}

	w = e.do(t, http.MethodPost, "/api/leads/1/activate", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second activate: status %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Lead ist bereits aktiviert" {
		t.Errorf("error = %q", msg)
	}
}

func TestResearchThenGenerateLetter(t *testing.T) {
	e := newTestEnv(t)
	e.createLead(t, gin.H{"titel": "KI Consultant", "firmenname": "Acme GmbH"})

	// Letter generation is gated on prior research.
	w := e.do(t, http.MethodPost, "/api/leads/1/generate-letter", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("premature letter: status %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Lead muss zuerst recherchiert werden" {
		t.Errorf("error = %q", msg)
	}

	w = e.do(t, http.MethodPost, "/api/leads/1/research", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("research: status %d body %s", w.Code, w.Body.String())
	}
	researched := decodeLead(t, w)
	if researched.Status != lead.StatusResearched {
		t.Errorf("status = %q", researched.Status)
	}
	if researched.CompanyWebsite == "" || researched.ContactName == "" {
		t.Errorf("research fields missing: %+v", researched)
	}
	if researched.ContactSource != "LinkedIn (via Recherche)" {
		t.Errorf("contact source = %q", researched.ContactSource)
	}

	w = e.do(t, http.MethodPost, "/api/leads/1/generate-letter", gin.H{"absender_name": "Max Muster"})
	if w.Code != http.StatusOK {
		t.Fatalf("letter: status %d body %s", w.Code, w.Body.String())
	}
	lettered := decodeLead(t, w)
	if lettered.Status != lead.StatusLetter {
		t.Errorf("status = %q", lettered.Status)
	}
	if !strings.Contains(lettered.Letter, "Sehr geehrte/r") {
		t.Errorf("letter = %q", lettered.Letter)
	}
	if !strings.Contains(lettered.Letter, "Max Muster") || !strings.Contains(lettered.Letter, "Weber Consulting") {
		t.Errorf("sender override not applied:\n%s", lettered.Letter)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	e := newTestEnv(t)
	e.createLead(t, gin.H{"titel": "Data Engineer"})

	w := e.do(t, http.MethodPut, "/api/leads/1/status", gin.H{"status": "erledigt"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Ungültiger Status" {
		t.Errorf("error = %q", msg)
	}

	w = e.do(t, http.MethodPut, "/api/leads/1/status", gin.H{"status": "angeschrieben"})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	if got := decodeLead(t, w); got.Status != lead.StatusContacted {
		t.Errorf("status = %q", got.Status)
	}
}

func TestUpdateLeadPartial(t *testing.T) {
	e := newTestEnv(t)
	e.createLead(t, gin.H{"titel": "Data Engineer", "firmenname": "Acme GmbH"})

	w := e.do(t, http.MethodPut, "/api/leads/1", gin.H{"anschreiben": "Hallo"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status %d body %s", w.Code, w.Body.String())
	}
	got := decodeLead(t, w)
	if got.Letter != "Hallo" {
		t.Errorf("letter = %q", got.Letter)
	}
	if got.CompanyName != "Acme GmbH" || got.Title != "Data Engineer" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestDeleteLead(t *testing.T) {
	e := newTestEnv(t)
	e.createLead(t, gin.H{"titel": "Data Engineer"})

	w := e.do(t, http.MethodDelete, "/api/leads/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["message"] != "Lead gelöscht" {
		t.Errorf("message = %q", resp["message"])
	}

	if w = e.do(t, http.MethodDelete, "/api/leads/1", nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete: status %d", w.Code)
	}
}

func TestExportCSV(t *testing.T) {
	e := newTestEnv(t)
	e.createLead(t, gin.H{"titel": "KI Consultant"})

	w := e.do(t, http.MethodGet, "/api/leads/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: status %d", w.Code)
	}
	disp := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disp, "attachment; filename=leads_export_") || !strings.HasSuffix(disp, ".csv") {
		t.Errorf("disposition = %q", disp)
	}
	if !strings.HasPrefix(w.Body.String(), "ID;Titel;Quelle") {
		t.Errorf("body = %q", w.Body.String()[:40])
	}
	if !strings.Contains(w.Body.String(), "KI Consultant") {
		t.Error("lead row missing")
	}
}

func TestStats(t *testing.T) {
	e := newTestEnv(t)
	e.createLead(t, gin.H{"titel": "A"})
	e.createLead(t, gin.H{"titel": "B"})

	w := e.do(t, http.MethodGet, "/api/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: status %d", w.Code)
	}
	var stats lead.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Total != 2 || stats.New != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestSearchDefaultsAndLimit(t *testing.T) {
	e := newTestEnv(t)
	for i := 0; i < 12; i++ {
		e.searcher.postings = append(e.searcher.postings, lead.Posting{
			Title:     "Job",
			SourceURL: "https://example.org/" + strings.Repeat("x", i+1),
		})
	}

	w := e.do(t, http.MethodPost, "/api/stepstone/search", gin.H{})
	if w.Code != http.StatusOK {
		t.Fatalf("search: status %d body %s", w.Code, w.Body.String())
	}

	if e.searcher.got.Keywords != "KI AI GenAI Copilot" {
		t.Errorf("default keywords = %q", e.searcher.got.Keywords)
	}
	if e.searcher.got.Radius != 30 || e.searcher.got.MaxPages != 1 {
		t.Errorf("defaults = %+v", e.searcher.got)
	}

	var resp struct {
		Success bool           `json:"success"`
		Count   int            `json:"count"`
		Jobs    []lead.Posting `json:"jobs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Count != 10 || len(resp.Jobs) != 10 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestImportSkipsDuplicates(t *testing.T) {
	e := newTestEnv(t)
	e.createLead(t, gin.H{"titel": "Vorhanden", "quelle_url": "https://example.org/dup"})

	w := e.do(t, http.MethodPost, "/api/stepstone/import", gin.H{
		"jobs": []gin.H{
			{"titel": "Neu", "quelle_url": "https://example.org/new", "quelle": "StepStone"},
			{"titel": "Doppelt", "quelle_url": "https://example.org/dup", "quelle": "StepStone"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("import: status %d body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success  bool   `json:"success"`
		Imported int    `json:"imported"`
		Skipped  int    `json:"skipped"`
		Message  string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Imported != 1 || resp.Skipped != 1 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Message != "1 Leads importiert, 1 übersprungen (bereits vorhanden)" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestImportEmpty(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, http.MethodPost, "/api/stepstone/import", gin.H{"jobs": []gin.H{}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Keine Jobs zum Importieren" {
		t.Errorf("error = %q", msg)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/api/status-options", nil)
	var statuses []lead.Status
	if err := json.Unmarshal(w.Body.Bytes(), &statuses); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(statuses) != 6 || statuses[0] != lead.StatusNew {
		t.Errorf("statuses = %v", statuses)
	}

	w = e.do(t, http.MethodGet, "/api/stepstone/regions", nil)
	var regions map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &regions); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if regions["bayern"] != "Bayern" {
		t.Errorf("regions = %v", regions)
	}

	w = e.do(t, http.MethodGet, "/api/stepstone/keywords", nil)
	var keywords []string
	if err := json.Unmarshal(w.Body.Bytes(), &keywords); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(keywords) == 0 || keywords[0] != "KI" {
		t.Errorf("keywords = %v", keywords)
	}
}

func TestSeedDemo(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/seed-demo", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("seed: status %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Created int `json:"created"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Created == 0 {
		t.Error("no demo leads created")
	}

	// Idempotent: demo leads are keyed by source URL.
	w = e.do(t, http.MethodPost, "/api/seed-demo", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Created != 0 {
		t.Errorf("second seed created %d", resp.Created)
	}
}

func TestHealthz(t *testing.T) {
	e := newTestEnv(t)
	if w := e.do(t, http.MethodGet, "/healthz", nil); w.Code != http.StatusOK {
		t.Errorf("status %d", w.Code)
	}
}
