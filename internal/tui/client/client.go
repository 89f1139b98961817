// Package client talks to the profile daemon's REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
)

const fallbackExportName = "leads_export.csv"

// Client wraps HTTP access to the daemon.
type Client struct {
	hc      *http.Client
	baseURL string
}

// New creates a client for the daemon listening on addr (host:port).
func New(addr string) *Client {
	return &Client{
		hc:      &http.Client{Timeout: 30 * time.Second},
		baseURL: "http://" + addr,
	}
}

// APIError is a non-2xx response decoded from the daemon's error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("daemon returned status %d", e.StatusCode)
}

// Health probes the daemon.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// ListLeads fetches leads, optionally filtered by status and keyword.
func (c *Client) ListLeads(ctx context.Context, status lead.Status, keyword string) ([]lead.Lead, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	path := "/api/leads"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var leads []lead.Lead
	if err := c.do(ctx, http.MethodGet, path, nil, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// GetLead fetches one lead.
func (c *Client) GetLead(ctx context.Context, id int64) (*lead.Lead, error) {
	var l lead.Lead
	if err := c.do(ctx, http.MethodGet, leadPath(id), nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// ActivateLead moves a fresh lead into the activated stage.
func (c *Client) ActivateLead(ctx context.Context, id int64) (*lead.Lead, error) {
	var l lead.Lead
	if err := c.do(ctx, http.MethodPost, leadPath(id)+"/activate", nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// ResearchLead triggers company research for a lead.
func (c *Client) ResearchLead(ctx context.Context, id int64) (*lead.Lead, error) {
	var l lead.Lead
	if err := c.do(ctx, http.MethodPost, leadPath(id)+"/research", nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// GenerateLetter asks the daemon to draft a cover letter.
func (c *Client) GenerateLetter(ctx context.Context, id int64) (*lead.Lead, error) {
	var l lead.Lead
	if err := c.do(ctx, http.MethodPost, leadPath(id)+"/generate-letter", struct{}{}, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// SaveLetter stores an edited cover letter text and moves the lead to
// the letter-created stage.
func (c *Client) SaveLetter(ctx context.Context, id int64, text string) (*lead.Lead, error) {
	body := map[string]string{
		"anschreiben": text,
		"status":      string(lead.StatusLetter),
	}
	var l lead.Lead
	if err := c.do(ctx, http.MethodPut, leadPath(id), body, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateStatus sets a lead's workflow status.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status lead.Status) (*lead.Lead, error) {
	body := map[string]lead.Status{"status": status}
	var l lead.Lead
	if err := c.do(ctx, http.MethodPut, leadPath(id)+"/status", body, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// DeleteLead removes a lead.
func (c *Client) DeleteLead(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, leadPath(id), nil, nil)
}

// GetStats fetches per-status lead counts.
func (c *Client) GetStats(ctx context.Context) (*lead.Stats, error) {
	var s lead.Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SeedDemo creates the built-in demo leads.
func (c *Client) SeedDemo(ctx context.Context) (int, string, error) {
	var resp struct {
		Created int    `json:"created"`
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/seed-demo", nil, &resp); err != nil {
		return 0, "", err
	}
	return resp.Created, resp.Message, nil
}

// SearchOptions parameterize a job board search.
type SearchOptions struct {
	Keywords    string `json:"keywords,omitempty"`
	Location    string `json:"location,omitempty"`
	Radius      int    `json:"radius,omitempty"`
	AgeDays     int    `json:"date_filter,omitempty"`
	TitleFilter string `json:"job_title_filter,omitempty"`
	MaxPages    int    `json:"max_pages,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

// SearchPostings runs a StepStone search through the daemon.
func (c *Client) SearchPostings(ctx context.Context, opts SearchOptions) ([]lead.Posting, error) {
	var resp struct {
		Success bool           `json:"success"`
		Count   int            `json:"count"`
		Jobs    []lead.Posting `json:"jobs"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/stepstone/search", opts, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

// ImportSummary reports the outcome of a posting import.
type ImportSummary struct {
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Message  string `json:"message"`
}

// ImportPostings imports search hits as new leads.
func (c *Client) ImportPostings(ctx context.Context, postings []lead.Posting) (*ImportSummary, error) {
	body := map[string][]lead.Posting{"jobs": postings}
	var summary ImportSummary
	if err := c.do(ctx, http.MethodPost, "/api/stepstone/import", body, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// StatusOptions lists the valid workflow statuses.
func (c *Client) StatusOptions(ctx context.Context) ([]lead.Status, error) {
	var statuses []lead.Status
	if err := c.do(ctx, http.MethodGet, "/api/status-options", nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// Export downloads the CSV export. The filename comes from the
// Content-Disposition header, with a generic fallback.
func (c *Client) Export(ctx context.Context) (filename string, data []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/leads/export", nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, decodeError(resp)
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}

	filename = fallbackExportName
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		if name := params["filename"]; name != "" {
			filename = name
		}
	}
	return filename, data, nil
}

func leadPath(id int64) string {
	return "/api/leads/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("daemon request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error
	}
	return apiErr
}
