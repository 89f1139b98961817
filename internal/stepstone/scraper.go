// Package stepstone scrapes job postings from stepstone.de search pages.
package stepstone

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
)

const (
	defaultBaseURL = "https://www.stepstone.de"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MaxPages caps how many result pages a single search may fetch.
	MaxPages = 3
)

// SearchParams describe one search run. Zero Radius omits the radius
// parameter, AgeDays filters by posting age in days (1, 3, 7, 14, 30).
type SearchParams struct {
	Keywords    string
	Location    string
	Radius      int
	MaxPages    int
	AgeDays     int
	TitleFilter string
}

// Scraper fetches and parses StepStone search result pages.
type Scraper struct {
	hc      *http.Client
	limiter *rate.Limiter
	baseURL string
	log     *zap.Logger
}

// New builds a scraper that paces page fetches to one request per second.
func New(log *zap.Logger) *Scraper {
	return &Scraper{
		hc:      &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		baseURL: defaultBaseURL,
		log:     log,
	}
}

// Search walks result pages until MaxPages, an empty page or a fetch error,
// then deduplicates postings by URL. A fetch error after the first page is
// not fatal; the postings gathered so far are returned.
func (s *Scraper) Search(ctx context.Context, p SearchParams) ([]lead.Posting, error) {
	pages := p.MaxPages
	if pages < 1 {
		pages = 1
	}
	if pages > MaxPages {
		pages = MaxPages
	}

	var all []lead.Posting
	for page := 1; page <= pages; page++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		url := buildSearchURL(s.baseURL, p.Keywords, p.Location, p.Radius, page, p.AgeDays)
		postings, err := s.fetchPage(ctx, url)
		if err != nil {
			s.log.Warn("search page fetch failed", zap.Int("page", page), zap.Error(err))
			if page == 1 {
				return nil, err
			}
			break
		}
		if len(postings) == 0 {
			break
		}

		if p.TitleFilter != "" {
			filter := strings.ToLower(p.TitleFilter)
			kept := postings[:0]
			for _, post := range postings {
				if strings.Contains(strings.ToLower(post.Title), filter) {
					kept = append(kept, post)
				}
			}
			postings = kept
		}
		all = append(all, postings...)
	}

	return dedupeByURL(all), nil
}

func dedupeByURL(postings []lead.Posting) []lead.Posting {
	seen := make(map[string]struct{}, len(postings))
	unique := make([]lead.Posting, 0, len(postings))
	for _, p := range postings {
		if _, ok := seen[p.SourceURL]; ok {
			continue
		}
		seen[p.SourceURL] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}

func (s *Scraper) fetchPage(ctx context.Context, url string) ([]lead.Posting, error) {
	body, err := s.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return s.parseSearchResults(body)
}

func (s *Scraper) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en-US;q=0.8,en;q=0.7")

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stepstone get: %w", err)
	}
	if res.StatusCode >= 400 {
		res.Body.Close()
		return nil, fmt.Errorf("stepstone status %d", res.StatusCode)
	}
	return res.Body, nil
}

// parseSearchResults extracts postings from a search results page. StepStone
// has shipped several markups for job cards, so selectors are tried in order
// with a bare link fallback.
func (s *Scraper) parseSearchResults(r io.Reader) ([]lead.Posting, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}

	cards := doc.Find(`article[data-testid="job-item"]`)
	if cards.Length() == 0 {
		cards = doc.Find("article.job-element")
	}
	if cards.Length() == 0 {
		cards = doc.Find(`[data-at="job-item"]`)
	}
	if cards.Length() == 0 {
		cards = doc.Find(`a[href*="/stellenangebote--"]`)
	}

	var postings []lead.Posting
	cards.Each(func(_ int, card *goquery.Selection) {
		if p, ok := s.extractPosting(card); ok {
			postings = append(postings, p)
		}
	})
	return postings, nil
}

func (s *Scraper) extractPosting(card *goquery.Selection) (lead.Posting, bool) {
	p := lead.Posting{Source: "StepStone"}

	isLink := goquery.NodeName(card) == "a"

	if title := cleanText(card.Find(`h2, h3, [data-at="job-item-title"], .job-element-title`).First()); title != "" {
		p.Title = title
	} else if isLink {
		p.Title = strings.TrimSpace(card.Text())
	}
	if p.Title == "" {
		return lead.Posting{}, false
	}

	p.CompanyName = cleanText(card.Find(`[data-at="job-item-company-name"], .job-element-company, [data-testid="company-name"]`).First())
	p.Location = cleanText(card.Find(`[data-at="job-item-location"], .job-element-location, [data-testid="job-item-location"]`).First())

	link := card.Find(`a[href*="/stellenangebote"]`).First()
	href, ok := link.Attr("href")
	if !ok && isLink {
		href, ok = card.Attr("href")
	}
	if !ok || href == "" {
		return lead.Posting{}, false
	}
	p.SourceURL = s.resolveURL(href)

	if snippet := cleanText(card.Find(`[data-at="job-item-snippet"], .job-element-snippet, [data-testid="job-item-snippet"]`).First()); snippet != "" {
		p.Preview = truncate(snippet, 500)
	}
	p.PostedAt = cleanText(card.Find(`[data-at="job-item-date"], .job-element-date, time`).First())
	p.Keywords = ExtractKeywords(p.Title)

	return p, true
}

// JobDetails holds the extra fields fetched from a single posting page.
type JobDetails struct {
	FullText       string
	CompanyWebsite string
	Keywords       []string
}

// FetchDetails loads one posting page and extracts the full description and
// any externally linked company website.
func (s *Scraper) FetchDetails(ctx context.Context, url string) (*JobDetails, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	body, err := s.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return parseJobDetails(body)
}

func parseJobDetails(r io.Reader) (*JobDetails, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse details: %w", err)
	}

	d := &JobDetails{}
	d.FullText = cleanText(doc.Find(`[data-at="job-ad-content"], .job-ad-content, [data-testid="job-ad-content"], .listing-content`).First())

	companyInfo := doc.Find(`[data-at="company-info"], .company-info, [data-testid="company-info"]`).First()
	companyInfo.Find(`a[href*="http"]`).EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		if href != "" && !strings.Contains(href, "stepstone") {
			d.CompanyWebsite = href
			return false
		}
		return true
	})

	if d.FullText != "" {
		d.Keywords = ExtractKeywords(d.FullText)
	}
	return d, nil
}

func (s *Scraper) resolveURL(href string) string {
	switch {
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "/"):
		return s.baseURL + href
	default:
		return s.baseURL + "/" + href
	}
}

func cleanText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
