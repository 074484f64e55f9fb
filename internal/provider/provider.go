// Package provider classifies job-posting URLs into the applicant-tracking
// system hosting them and parses the identifiers provider APIs need.
// Everything here is a pure function over the URL string; no I/O.
package provider

import (
	"net/url"
	"regexp"
)

// Kind names the ATS platform behind a job-posting URL.
type Kind string

const (
	Greenhouse      Kind = "GREENHOUSE"
	Lever           Kind = "LEVER"
	Ashby           Kind = "ASHBY"
	SmartRecruiters Kind = "SMARTRECRUITERS"
	Workday         Kind = "WORKDAY"
	OracleCX        Kind = "ORACLE_CX"
	Avature         Kind = "AVATURE"
	SuccessFactors  Kind = "SUCCESSFACTORS"
	Taleo           Kind = "TALEO"
	ICIMS           Kind = "ICIMS"
	Phenom          Kind = "PHENOM"
	Unknown         Kind = "UNKNOWN"
)

// providerPatterns is matched in order against host+path; the first hit wins.
// The order is part of the contract: hostnames are unique in practice, but
// first-match-wins keeps detection deterministic if patterns ever overlap.
var providerPatterns = []struct {
	kind    Kind
	pattern *regexp.Regexp
}{
	{Greenhouse, regexp.MustCompile(`(?i)greenhouse\.io.*jobs`)},
	{Lever, regexp.MustCompile(`(?i)lever\.co`)},
	{Ashby, regexp.MustCompile(`(?i)ashbyhq\.com`)},
	{SmartRecruiters, regexp.MustCompile(`(?i)smartrecruiters\.com`)},
	{Workday, regexp.MustCompile(`(?i)\.wd\d+\.myworkdayjobs\.com`)},
	{OracleCX, regexp.MustCompile(`(?i)\.fa.*\.oraclecloud\.com.*CandidateExperience`)},
	{Avature, regexp.MustCompile(`(?i)\.avature\.net`)},
	{SuccessFactors, regexp.MustCompile(`(?i)successfactors\.com`)},
	{Taleo, regexp.MustCompile(`(?i)taleo\.net`)},
	{ICIMS, regexp.MustCompile(`(?i)icims\.com`)},
	{Phenom, regexp.MustCompile(`(?i)phenompeople\.com`)},
}

// Detect classifies a URL. It never fails: any URL that cannot be parsed or
// matches no known pattern is Unknown.
func Detect(rawURL string) Kind {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Unknown
	}
	hostPath := u.Host + u.Path
	for _, p := range providerPatterns {
		if p.pattern.MatchString(hostPath) {
			return p.kind
		}
	}
	return Unknown
}
