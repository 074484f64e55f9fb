package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jobloom/jobloom/internal/provider"
)

const leverAPIBase = "https://api.lever.co"

// Lever extracts postings through the public Lever postings API.
type Lever struct {
	BaseURL string
	Client  *http.Client
}

func (l *Lever) CanExtract(url string) bool {
	return provider.Detect(url) == provider.Lever
}

// leverPosting mirrors the fields we consume from the postings API. Lever's
// descriptionPlain is already plain text, so no tag stripping is needed when
// it is present.
type leverPosting struct {
	Text             string `json:"text"`
	Description      string `json:"description"`
	DescriptionPlain string `json:"descriptionPlain"`
	HostedURL        string `json:"hostedUrl"`
	ApplyURL         string `json:"applyUrl"`
	Categories       *struct {
		Location   string `json:"location"`
		Commitment string `json:"commitment"`
	} `json:"categories"`
}

func (l *Lever) Extract(ctx context.Context, url string) Outcome {
	ids, ok := provider.LeverIDs(url)
	if !ok {
		return emptyOutcome(PathLever, "Could not parse Lever URL")
	}

	base := l.BaseURL
	if base == "" {
		base = leverAPIBase
	}
	apiURL := fmt.Sprintf("%s/v0/postings/%s/%s", base, ids.Account, ids.PostingID)

	body, err := getJSON(ctx, apiHTTPClient(l.Client), apiURL, nil)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("lever api fetch failed")
		return emptyOutcome(PathLever, warnFor(err))
	}

	var posting leverPosting
	if err := json.Unmarshal(body, &posting); err != nil {
		return emptyOutcome(PathLever, warnFor(err))
	}
	var payload map[string]any
	_ = json.Unmarshal(body, &payload)

	description := posting.DescriptionPlain
	if description == "" {
		description = htmlToText(posting.Description)
	}

	out := Outcome{
		DescriptionHTML: posting.Description,
		DescriptionText: description,
		Title:           posting.Text,
		CompanyName:     ids.Account,
		ProviderPayload: payload,
		Path:            PathLever,
	}
	if posting.Categories != nil {
		out.Location = posting.Categories.Location
		out.EmploymentType = posting.Categories.Commitment
	}
	switch {
	case posting.HostedURL != "":
		out.ApplyURL = posting.HostedURL
	case posting.ApplyURL != "":
		out.ApplyURL = posting.ApplyURL
	default:
		out.ApplyURL = fmt.Sprintf("https://jobs.lever.co/%s/%s", ids.Account, ids.PostingID)
	}
	return out
}
