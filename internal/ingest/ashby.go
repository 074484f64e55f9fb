package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jobloom/jobloom/internal/provider"
)

const ashbyAPIBase = "https://api.ashbyhq.com"

// Ashby extracts postings through the public Ashby job-board API. The API
// returns the whole board, so the posting is located by ID in the list.
type Ashby struct {
	BaseURL string
	Client  *http.Client
}

func (a *Ashby) CanExtract(url string) bool {
	return provider.Detect(url) == provider.Ashby
}

type ashbyBoard struct {
	JobPostings []json.RawMessage `json:"jobPostings"`
}

type ashbyPosting struct {
	ID               string `json:"id"`
	PublicJobID      string `json:"publicJobId"`
	Title            string `json:"title"`
	DescriptionHTML  string `json:"descriptionHtml"`
	DescriptionPlain string `json:"descriptionPlain"`
	LocationName     string `json:"locationName"`
	EmploymentType   string `json:"employmentType"`
	PublishedAtURL   string `json:"publishedAtUrl"`
}

func (a *Ashby) Extract(ctx context.Context, url string) Outcome {
	ids, ok := provider.AshbyIDs(url)
	if !ok {
		return emptyOutcome(PathAshby, "Could not parse Ashby URL")
	}

	base := a.BaseURL
	if base == "" {
		base = ashbyAPIBase
	}
	// The board name is usually the company slug from the posting URL.
	apiURL := fmt.Sprintf("%s/posting-api/job-board/%s?includeCompensation=true", base, ids.Company)

	body, err := getJSON(ctx, apiHTTPClient(a.Client), apiURL, nil)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("ashby api fetch failed")
		return emptyOutcome(PathAshby, warnFor(err))
	}

	var board ashbyBoard
	if err := json.Unmarshal(body, &board); err != nil {
		return emptyOutcome(PathAshby, warnFor(err))
	}

	var posting *ashbyPosting
	var payload map[string]any
	for _, raw := range board.JobPostings {
		var p ashbyPosting
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		if p.ID == ids.JobID || p.PublicJobID == ids.JobID {
			posting = &p
			// Keep the matched posting verbatim for audit.
			_ = json.Unmarshal(raw, &payload)
			break
		}
	}
	if posting == nil {
		return emptyOutcome(PathAshby, "Job posting not found in API response")
	}

	description := posting.DescriptionPlain
	if description == "" {
		description = htmlToText(posting.DescriptionHTML)
	}
	applyURL := posting.PublishedAtURL
	if applyURL == "" {
		applyURL = url
	}
	return Outcome{
		DescriptionHTML: posting.DescriptionHTML,
		DescriptionText: description,
		Title:           posting.Title,
		CompanyName:     ids.Company,
		Location:        posting.LocationName,
		EmploymentType:  posting.EmploymentType,
		ApplyURL:        applyURL,
		ProviderPayload: payload,
		Path:            PathAshby,
	}
}
