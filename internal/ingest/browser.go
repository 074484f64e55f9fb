package ingest

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/jobloom/jobloom/internal/extract"
)

const (
	browserNavTimeout = 30 * time.Second
	// browserSettle stands in for a network-idle wait: the renderer only
	// waits for document-ready, and SPA job boards keep fetching content
	// after that, so this fixed delay carries the quiescence duty before the
	// DOM is read.
	browserSettle = 2 * time.Second
)

// renderedPage is what one browser session hands back: the rendered DOM, the
// JobPosting JSON-LD found in it (JSON text, empty if none) and the first
// apply-labeled link.
type renderedPage struct {
	HTML     string
	JSONLD   string
	ApplyURL string
}

// session is one rendering browser session. Close must be safe to call on
// every exit path; leaking a session leaks an OS process.
type session interface {
	Render(ctx context.Context, url string) (renderedPage, error)
	Close() error
}

// Browser renders JavaScript-heavy pages in headless Chrome as the pipeline's
// last resort. It is only consulted after every cheaper strategy returned
// empty, and only when enabled by configuration.
type Browser struct {
	Enabled  bool
	Headless bool

	// newSession overrides the chromedp launcher in tests.
	newSession func(ctx context.Context, headless bool) (session, error)
}

func (b *Browser) CanExtract(string) bool { return b.Enabled }

func (b *Browser) Extract(ctx context.Context, url string) Outcome {
	if !b.Enabled {
		return emptyOutcome(PathBrowser, "Browser rendering not enabled")
	}
	launch := b.newSession
	if launch == nil {
		launch = newChromeSession
	}
	sess, err := launch(ctx, b.Headless)
	if err != nil {
		log.Warn().Err(err).Msg("browser launch failed")
		return emptyOutcome(PathBrowser, warnFor(err))
	}
	defer sess.Close()

	page, err := sess.Render(ctx, url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("browser render failed")
		return emptyOutcome(PathBrowser, warnFor(err))
	}
	return outcomeFromRendered(page, url)
}

// outcomeFromRendered normalizes a rendered page. JSON-LD found in the
// rendered DOM takes precedence for title/company/description; otherwise the
// extracted text of the rendered main content is used. The HTML variant is
// the rendered main-content container, sanitized, never the whole document.
func outcomeFromRendered(page renderedPage, url string) Outcome {
	rendered := extract.FromHTML([]byte(page.HTML))

	applyURL := page.ApplyURL
	if applyURL == "" {
		applyURL = url
	}

	out := Outcome{
		DescriptionHTML: sanitizedMainHTML(page.HTML),
		DescriptionText: rendered.Text,
		Title:           rendered.Title,
		CompanyName:     rendered.SiteName,
		ApplyURL:        applyURL,
		Path:            PathBrowser,
	}

	if page.JSONLD != "" {
		var data any
		if err := json.Unmarshal([]byte(page.JSONLD), &data); err == nil {
			if posting := jobPostingIn(data); posting != nil {
				if t := jsonString(posting, "title"); t != "" {
					out.Title = t
				}
				if c := hiringOrganization(posting); c != "" {
					out.CompanyName = c
				}
				if d := strings.TrimSpace(jsonString(posting, "description")); d != "" {
					out.DescriptionText = d
				}
				out.ProviderPayload = map[string]any{"json_ld": posting}
			}
		}
	}

	if out.DescriptionText == "" {
		return emptyOutcome(PathBrowser, "Could not extract content even with browser rendering")
	}
	return out
}

// sanitizedMainHTML reduces a rendered document to its main-content
// container with scripts and styles dropped, through the same allow-list
// sanitizer the readability strategy uses.
func sanitizedMainHTML(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	raw, err := goquery.OuterHtml(mainContent(doc))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(descriptionSanitizer.Sanitize(raw))
}
