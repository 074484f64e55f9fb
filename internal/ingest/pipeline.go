package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jobloom/jobloom/internal/fetch"
)

// Status is the caller-facing classification of how an ingestion concluded.
type Status string

const (
	StatusSuccess Status = "success"
	// StatusNeedsRender is part of the status vocabulary for API
	// compatibility but is never produced: the render path runs in-process
	// via the browser strategy.
	StatusNeedsRender Status = "needs_render"
	// StatusNeedsExtension means every strategy came up empty and the caller
	// should capture the page out of band (browser extension).
	StatusNeedsExtension Status = "needs_extension_extraction"
)

// Pipeline drives the ordered strategy chain. It knows nothing about the
// concrete strategies beyond the Strategy interface; the order of the slice
// is the fallback priority and is load-bearing.
type Pipeline struct {
	Strategies []Strategy
	// Browser is the last-resort strategy, only consulted after every
	// entry in Strategies produced an empty outcome. Nil disables it.
	Browser Strategy
}

// NewPipeline assembles the documented strategy order: provider APIs first
// (Greenhouse, Lever, Ashby, SmartRecruiters), then JSON-LD structured data,
// then readability heuristics, with the browser renderer as last resort.
func NewPipeline(fetcher *fetch.Client, smartRecruitersKey string, browser *Browser) *Pipeline {
	return &Pipeline{
		Strategies: []Strategy{
			&Greenhouse{},
			&Lever{},
			&Ashby{},
			&SmartRecruiters{APIKey: smartRecruitersKey},
			&JSONLD{Fetcher: fetcher},
			&Readability{Fetcher: fetcher},
		},
		Browser: browser,
	}
}

// Run tries strategies in order and returns the first outcome with usable
// description text. Strategies run strictly sequentially: a later strategy is
// only worth its network cost if the earlier one failed, and speculative
// concurrent calls would burn the rate-limited APIs the chain exists to
// conserve. Exhaustion is not an error; it yields a terminal outcome tagged
// "failed" and StatusNeedsExtension.
func (p *Pipeline) Run(ctx context.Context, url string) (Outcome, Status) {
	for _, s := range p.Strategies {
		if !s.CanExtract(url) {
			continue
		}
		out := p.attempt(ctx, s, url)
		if !out.Empty() {
			return out, StatusSuccess
		}
		log.Debug().Str("url", url).Str("path", out.Path).Strs("warnings", out.Warnings).
			Msg("strategy produced no content, falling through")
	}

	if p.Browser != nil && p.Browser.CanExtract(url) {
		out := p.attempt(ctx, p.Browser, url)
		if !out.Empty() {
			return out, StatusSuccess
		}
	}

	return Outcome{
		Path:     PathFailed,
		Warnings: []string{"Could not extract job posting. Please use extension extraction."},
	}, StatusNeedsExtension
}

// attempt guards against strategies that violate the never-panic contract so
// one bad strategy cannot abort the chain.
func (p *Pipeline) attempt(ctx context.Context, s Strategy, url string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("url", url).Interface("panic", r).Msg("strategy panicked")
			out = emptyOutcome(PathFailed, fmt.Sprintf("Extraction error: %v", r))
		}
	}()
	return s.Extract(ctx, url)
}
