package stepstone

import (
	"net/url"
	"strconv"
	"strings"
)

// buildSearchURL assembles a search URL. Keywords and location go into the
// path, radius, page and age into the query string. Page 1 and zero values
// are omitted.
func buildSearchURL(base, keywords, location string, radius, page, ageDays int) string {
	parts := []string{base + "/jobs"}
	if keywords != "" {
		parts = append(parts, url.QueryEscape(keywords))
	}
	if location != "" {
		parts = append(parts, "in-"+url.QueryEscape(location))
	}
	u := strings.Join(parts, "/")

	q := url.Values{}
	if radius > 0 {
		q.Set("radius", strconv.Itoa(radius))
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if ageDays > 0 {
		q.Set("age", strconv.Itoa(ageDays))
	}
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}
