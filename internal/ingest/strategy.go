package ingest

import "context"

// Strategy is one self-contained way of turning a URL into an Outcome.
//
// CanExtract must be cheap, synchronous and must never panic; it answers
// whether the strategy is worth attempting for this URL at all. Extract does
// the network work and must absorb every failure into the returned Outcome's
// Warnings rather than returning an error: the pipeline only ever inspects
// DescriptionText to decide whether to continue.
type Strategy interface {
	CanExtract(url string) bool
	Extract(ctx context.Context, url string) Outcome
}

// Extraction path tags. These end up in stored records and status reporting,
// so they are stable identifiers, not display strings.
const (
	PathGreenhouse              = "greenhouse_api"
	PathLever                   = "lever_api"
	PathAshby                   = "ashby_api"
	PathSmartRecruiters         = "smartrecruiters_api"
	PathSmartRecruitersFallback = "smartrecruiters_jsonld_fallback"
	PathJSONLD                  = "jsonld"
	PathReadability             = "readability"
	PathBrowser                 = "browser"
	PathFailed                  = "failed"
)
