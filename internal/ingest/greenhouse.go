package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jobloom/jobloom/internal/provider"
)

const greenhouseAPIBase = "https://boards-api.greenhouse.io"

// Greenhouse extracts postings through the public Greenhouse job-board API,
// including the application questions the board exposes.
type Greenhouse struct {
	// BaseURL overrides the API host, for tests. Empty means production.
	BaseURL string
	Client  *http.Client
}

func (g *Greenhouse) CanExtract(url string) bool {
	return provider.Detect(url) == provider.Greenhouse
}

// greenhouseJob mirrors the fields we consume from the job-board API.
type greenhouseJob struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	AbsoluteURL string `json:"absolute_url"`
	Location    *struct {
		Name string `json:"name"`
	} `json:"location"`
	Departments []struct {
		Name string `json:"name"`
	} `json:"departments"`
	Questions []greenhouseQuestion `json:"questions"`
}

type greenhouseQuestion struct {
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Type     string `json:"type"`
	Options  []struct {
		ID    json.Number `json:"id"`
		Label string      `json:"label"`
	} `json:"options"`
}

// greenhouseFieldTypes maps the API's question types onto the form-schema
// enumeration. Anything unlisted becomes FieldUnknown.
var greenhouseFieldTypes = map[string]FieldType{
	"short_text":    FieldText,
	"long_text":     FieldTextarea,
	"email":         FieldEmail,
	"phone":         FieldTel,
	"url":           FieldURL,
	"multi_select":  FieldSelect,
	"single_select": FieldSelect,
	"date":          FieldDate,
	"file":          FieldFile,
}

func (g *Greenhouse) Extract(ctx context.Context, url string) Outcome {
	ids, ok := provider.GreenhouseIDs(url)
	if !ok {
		return emptyOutcome(PathGreenhouse, "Could not parse Greenhouse URL")
	}

	base := g.BaseURL
	if base == "" {
		base = greenhouseAPIBase
	}
	apiURL := fmt.Sprintf("%s/v1/boards/%s/jobs/%s?questions=true", base, ids.Board, ids.JobID)

	body, err := getJSON(ctx, apiHTTPClient(g.Client), apiURL, nil)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("greenhouse api fetch failed")
		return emptyOutcome(PathGreenhouse, warnFor(err))
	}

	var job greenhouseJob
	if err := json.Unmarshal(body, &job); err != nil {
		return emptyOutcome(PathGreenhouse, warnFor(err))
	}
	var payload map[string]any
	_ = json.Unmarshal(body, &payload)

	out := Outcome{
		DescriptionHTML: job.Content,
		DescriptionText: htmlToText(job.Content),
		Title:           job.Title,
		ProviderPayload: payload,
		Path:            PathGreenhouse,
	}
	if len(job.Departments) > 0 {
		out.CompanyName = job.Departments[0].Name
	}
	if job.Location != nil {
		out.Location = job.Location.Name
	}
	out.ApplyURL = fmt.Sprintf("https://boards.greenhouse.io/%s/jobs/%s", ids.Board, ids.JobID)
	if job.AbsoluteURL != "" {
		out.ApplyURL = job.AbsoluteURL
	}
	for idx, q := range job.Questions {
		out.FormSchema = append(out.FormSchema, parseGreenhouseQuestion(q, idx))
	}
	return out
}

func parseGreenhouseQuestion(q greenhouseQuestion, idx int) ApplicationField {
	fieldType, ok := greenhouseFieldTypes[q.Type]
	if !ok {
		fieldType = FieldUnknown
	}
	label := q.Label
	if label == "" {
		label = fmt.Sprintf("Question %d", idx+1)
	}
	field := ApplicationField{
		Key:        fmt.Sprintf("question_%d", idx),
		Label:      label,
		Type:       fieldType,
		Required:   q.Required,
		SourceHint: "greenhouse_questions",
	}
	if fieldType == FieldSelect || fieldType == FieldRadio {
		for _, opt := range q.Options {
			field.Options = append(field.Options, SelectOption{
				Value: opt.ID.String(),
				Label: opt.Label,
			})
		}
	}
	return field
}
