package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/jobloom/jobloom/internal/fetch"
)

// JSONLD extracts schema.org JobPosting structured data embedded in the page.
// It is domain-agnostic: any site may carry the markup, so CanExtract is
// always true and failure is just an empty outcome.
type JSONLD struct {
	Fetcher *fetch.Client
}

func (j *JSONLD) CanExtract(string) bool { return true }

func (j *JSONLD) Extract(ctx context.Context, url string) Outcome {
	body, _, err := j.Fetcher.Get(ctx, url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("jsonld page fetch failed")
		return emptyOutcome(PathJSONLD, warnFor(err))
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return emptyOutcome(PathJSONLD, warnFor(err))
	}

	posting := findJobPosting(doc)
	if posting == nil {
		return emptyOutcome(PathJSONLD, "No JobPosting JSON-LD found")
	}

	// JSON-LD descriptions are usually plain text already.
	description := jsonString(posting, "description")
	out := Outcome{
		DescriptionHTML: description,
		DescriptionText: strings.TrimSpace(description),
		Title:           jsonString(posting, "title"),
		CompanyName:     hiringOrganization(posting),
		Location:        jobLocation(posting),
		EmploymentType:  jsonString(posting, "employmentType"),
		ApplyURL:        url,
		ProviderPayload: posting,
		Path:            PathJSONLD,
	}
	return out
}

// findJobPosting scans every ld+json script for the first object (or first
// array element) typed JobPosting. Malformed blocks are skipped, not fatal.
func findJobPosting(doc *goquery.Document) map[string]any {
	var posting map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		if p := jobPostingIn(data); p != nil {
			posting = p
			return false
		}
		return true
	})
	return posting
}

func jobPostingIn(data any) map[string]any {
	switch v := data.(type) {
	case map[string]any:
		if v["@type"] == "JobPosting" {
			return v
		}
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok && m["@type"] == "JobPosting" {
				return m
			}
		}
	}
	return nil
}

func jsonString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// hiringOrganization handles both the object form {"name": "..."} and the
// bare-string form some sites emit.
func hiringOrganization(posting map[string]any) string {
	switch org := posting["hiringOrganization"].(type) {
	case map[string]any:
		return jsonString(org, "name")
	case string:
		return org
	case nil:
		return ""
	default:
		return fmt.Sprint(org)
	}
}

// jobLocation joins the address parts that are present as
// "locality, region, country".
func jobLocation(posting map[string]any) string {
	loc, ok := posting["jobLocation"].(map[string]any)
	if !ok {
		return ""
	}
	addr, ok := loc["address"].(map[string]any)
	if !ok {
		return ""
	}
	var parts []string
	for _, key := range []string{"addressLocality", "addressRegion", "addressCountry"} {
		if v := jsonString(addr, key); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
