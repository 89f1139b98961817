package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(strings.TrimPrefix(srv.URL, "http://"))
}

func TestListLeadsQuery(t *testing.T) {
	var gotQuery string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `[{"id": 1, "titel": "KI Consultant", "status": "neu"}]`)
	}))

	leads, err := c.ListLeads(context.Background(), lead.StatusNew, "KI")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotQuery != "keyword=KI&status=neu" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(leads) != 1 || leads[0].Title != "KI Consultant" {
		t.Errorf("leads = %+v", leads)
	}
}

func TestErrorDecoding(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": "Lead ist bereits aktiviert"}`)
	}))

	_, err := c.ActivateLead(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "Lead ist bereits aktiviert" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if err.Error() != "Lead ist bereits aktiviert" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestSaveLetterBody(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		fmt.Fprint(w, `{"id": 7, "anschreiben": "Hallo"}`)
	}))

	l, err := c.SaveLetter(context.Background(), 7, "Hallo")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/leads/7" {
		t.Errorf("%s %s", gotMethod, gotPath)
	}
	if gotBody != `{"anschreiben":"Hallo","status":"anschreiben_erstellt"}` {
		t.Errorf("body = %q", gotBody)
	}
	if l.Letter != "Hallo" {
		t.Errorf("letter = %q", l.Letter)
	}
}

func TestExportFilename(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", "attachment; filename=leads_export_20260314_093005.csv")
		fmt.Fprint(w, "ID;Titel\n")
	}))

	name, data, err := c.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "leads_export_20260314_093005.csv" {
		t.Errorf("name = %q", name)
	}
	if string(data) != "ID;Titel\n" {
		t.Errorf("data = %q", data)
	}
}

func TestExportFilenameFallback(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ID;Titel\n")
	}))

	name, _, err := c.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "leads_export.csv" {
		t.Errorf("name = %q", name)
	}
}

func TestImportPostings(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"imported": 2, "skipped": 1, "message": "2 Leads importiert, 1 übersprungen (bereits vorhanden)"}`)
	}))

	summary, err := c.ImportPostings(context.Background(), []lead.Posting{{Title: "A"}, {Title: "B"}, {Title: "C"}})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Imported != 2 || summary.Skipped != 1 {
		t.Errorf("summary = %+v", summary)
	}
}
