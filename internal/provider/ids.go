package provider

import "regexp"

// ID extraction is a partial function over URLs: a URL that looks like a
// provider's but does not carry the expected path shape yields ok=false,
// which callers treat as "provider API unusable, fall through".

var (
	greenhouseIDRe      = regexp.MustCompile(`(?i)greenhouse\.io/([^/]+)/jobs/(\d+)`)
	leverIDRe           = regexp.MustCompile(`(?i)jobs\.lever\.co/([^/]+)/([^/]+)`)
	ashbyIDRe           = regexp.MustCompile(`(?i)jobs\.ashbyhq\.com/([^/]+)/([^/]+)`)
	smartRecruitersIDRe = regexp.MustCompile(`(?i)jobs\.smartrecruiters\.com/([^/]+)/([^/]+)`)
)

// GreenhouseID identifies one posting on a Greenhouse job board.
type GreenhouseID struct {
	Board string
	JobID string
}

// GreenhouseIDs parses the board slug and numeric job ID out of a Greenhouse URL.
func GreenhouseIDs(rawURL string) (GreenhouseID, bool) {
	m := greenhouseIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return GreenhouseID{}, false
	}
	return GreenhouseID{Board: m[1], JobID: m[2]}, true
}

// LeverID identifies one posting on a Lever account.
type LeverID struct {
	Account   string
	PostingID string
}

func LeverIDs(rawURL string) (LeverID, bool) {
	m := leverIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return LeverID{}, false
	}
	return LeverID{Account: m[1], PostingID: m[2]}, true
}

// AshbyID identifies one posting on an Ashby job board.
type AshbyID struct {
	Company string
	JobID   string
}

func AshbyIDs(rawURL string) (AshbyID, bool) {
	m := ashbyIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return AshbyID{}, false
	}
	return AshbyID{Company: m[1], JobID: m[2]}, true
}

// SmartRecruitersID identifies one posting for a SmartRecruiters company.
type SmartRecruitersID struct {
	Company   string
	PostingID string
}

func SmartRecruitersIDs(rawURL string) (SmartRecruitersID, bool) {
	m := smartRecruitersIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return SmartRecruitersID{}, false
	}
	return SmartRecruitersID{Company: m[1], PostingID: m[2]}, true
}
