package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jobloom/jobloom/internal/provider"
)

const smartRecruitersAPIBase = "https://api.smartrecruiters.com"

// SmartRecruiters extracts postings through the authenticated SmartRecruiters
// API when a token is configured. Without one it returns an empty outcome
// tagged for fallback: the JSON-LD strategy is next in the pipeline order and
// handles the public page instead. The hand-off is positional on purpose; a
// strategy never calls another strategy.
type SmartRecruiters struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func (s *SmartRecruiters) CanExtract(url string) bool {
	return provider.Detect(url) == provider.SmartRecruiters
}

type smartRecruitersPosting struct {
	Name     string `json:"name"`
	ApplyURL string `json:"applyUrl"`
	URL      string `json:"url"`
	Location *struct {
		City string `json:"city"`
	} `json:"location"`
	TypeOfEmployment *struct {
		Label string `json:"label"`
	} `json:"typeOfEmployment"`
	JobAd struct {
		Sections struct {
			JobDescription struct {
				Text string `json:"text"`
			} `json:"jobDescription"`
		} `json:"sections"`
	} `json:"jobAd"`
}

func (s *SmartRecruiters) Extract(ctx context.Context, url string) Outcome {
	ids, ok := provider.SmartRecruitersIDs(url)
	if !ok {
		return emptyOutcome(PathSmartRecruiters, "Could not parse SmartRecruiters URL")
	}
	if s.APIKey == "" {
		return emptyOutcome(PathSmartRecruitersFallback,
			"No API key configured, falling back to JSON-LD extraction")
	}

	base := s.BaseURL
	if base == "" {
		base = smartRecruitersAPIBase
	}
	apiURL := fmt.Sprintf("%s/v1/companies/%s/postings/%s", base, ids.Company, ids.PostingID)
	header := http.Header{"X-SmartToken": []string{s.APIKey}}

	body, err := getJSON(ctx, apiHTTPClient(s.Client), apiURL, header)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("smartrecruiters api fetch failed")
		return emptyOutcome(PathSmartRecruiters, warnFor(err))
	}

	var posting smartRecruitersPosting
	if err := json.Unmarshal(body, &posting); err != nil {
		return emptyOutcome(PathSmartRecruiters, warnFor(err))
	}
	var payload map[string]any
	_ = json.Unmarshal(body, &payload)

	descriptionHTML := posting.JobAd.Sections.JobDescription.Text
	out := Outcome{
		DescriptionHTML: descriptionHTML,
		DescriptionText: htmlToText(descriptionHTML),
		Title:           posting.Name,
		CompanyName:     ids.Company,
		ProviderPayload: payload,
		Path:            PathSmartRecruiters,
	}
	if posting.Location != nil {
		out.Location = posting.Location.City
	}
	if posting.TypeOfEmployment != nil {
		out.EmploymentType = posting.TypeOfEmployment.Label
	}
	switch {
	case posting.ApplyURL != "":
		out.ApplyURL = posting.ApplyURL
	case posting.URL != "":
		out.ApplyURL = posting.URL
	default:
		out.ApplyURL = url
	}
	return out
}
