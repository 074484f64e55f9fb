package ingest

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"

	"github.com/jobloom/jobloom/internal/extract"
	"github.com/jobloom/jobloom/internal/fetch"
)

// descriptionSanitizer keeps only the tags worth preserving inside a job
// description; everything else is stripped with its text retained.
var descriptionSanitizer = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "strong", "em", "b", "i",
		"ul", "ol", "li", "h1", "h2", "h3", "h4", "h5", "h6", "div", "span")
	return p
}()

// Readability extracts the main content of an arbitrary page with boilerplate
// heuristics. It is the broadest of the non-rendering strategies and runs
// after the structured-data attempts.
type Readability struct {
	Fetcher *fetch.Client
}

func (r *Readability) CanExtract(string) bool { return true }

func (r *Readability) Extract(ctx context.Context, pageURL string) Outcome {
	body, _, err := r.Fetcher.Get(ctx, pageURL)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("readability page fetch failed")
		return emptyOutcome(PathReadability, warnFor(err))
	}

	// Plain-text path: heuristic boilerplate removal over the whole page.
	page := extract.FromHTML(body)

	// HTML path: locate the main-content container and sanitize it.
	var sanitizedHTML, applyURL string
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
		doc.Find("script, style, noscript").Remove()
		if raw, err := goquery.OuterHtml(mainContent(doc)); err == nil {
			sanitizedHTML = strings.TrimSpace(descriptionSanitizer.Sanitize(raw))
		}
		applyURL = findApplyLink(doc, pageURL)
	}

	text := page.Text
	if text == "" {
		text = strings.TrimSpace(htmlToText(sanitizedHTML))
	}
	if text == "" {
		return emptyOutcome(PathReadability, "Could not extract content from page")
	}
	if applyURL == "" {
		applyURL = pageURL
	}
	return Outcome{
		DescriptionHTML: sanitizedHTML,
		DescriptionText: text,
		Title:           page.Title,
		CompanyName:     page.SiteName,
		ApplyURL:        applyURL,
		Path:            PathReadability,
	}
}

// mainContent picks the page's content container: <main>, else <article>,
// else the <div> with the most text, else <body>.
func mainContent(doc *goquery.Document) *goquery.Selection {
	if s := doc.Find("main").First(); s.Length() > 0 {
		return s
	}
	if s := doc.Find("article").First(); s.Length() > 0 {
		return s
	}
	var best *goquery.Selection
	bestLen := 200
	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		if l := len(strings.TrimSpace(s.Text())); l > bestLen {
			best, bestLen = s, l
		}
	})
	if best != nil {
		return best
	}
	return doc.Find("body").First()
}

// findApplyLink returns the href of the first anchor whose visible text
// mentions "apply", resolved against the page URL when relative.
func findApplyLink(doc *goquery.Document, pageURL string) string {
	var href string
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(a.Text()), "apply") {
			return true
		}
		h, ok := a.Attr("href")
		if !ok || strings.TrimSpace(h) == "" {
			return true
		}
		href = strings.TrimSpace(h)
		return false
	})
	if href == "" {
		return ""
	}
	return resolveURL(pageURL, href)
}

func resolveURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
