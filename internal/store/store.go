// Package store persists normalized job-posting records keyed uniquely by
// source URL. The interface is the boundary contract; the file-backed
// implementation is a dependency-free default suitable for the CLI and tests.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jobloom/jobloom/internal/ingest"
	"github.com/jobloom/jobloom/internal/provider"
)

// ErrNotFound is returned by Get when no record exists for the URL.
var ErrNotFound = errors.New("record not found")

// RawExtraction is the audit envelope kept alongside the normalized fields:
// the upstream payload verbatim, the strategy that won, and the warnings
// accumulated on the way.
type RawExtraction struct {
	ProviderPayload map[string]any `json:"provider_payload,omitempty"`
	ExtractionPath  string         `json:"extraction_path"`
	FetchedAt       time.Time      `json:"fetched_at"`
	Warnings        []string       `json:"warnings,omitempty"`
}

// Record is one ingested job posting. SourceURL is the unique key;
// re-ingesting the same URL returns the existing record.
type Record struct {
	SourceURL       string                    `json:"source_url"`
	Provider        provider.Kind             `json:"provider"`
	CompanyName     string                    `json:"company_name,omitempty"`
	Title           string                    `json:"title,omitempty"`
	Location        string                    `json:"location,omitempty"`
	EmploymentType  string                    `json:"employment_type,omitempty"`
	ApplyURL        string                    `json:"apply_url,omitempty"`
	DescriptionHTML string                    `json:"description_html,omitempty"`
	DescriptionText string                    `json:"description_text"`
	FormSchema      []ingest.ApplicationField `json:"application_form_schema,omitempty"`
	Raw             RawExtraction             `json:"raw"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// Store persists records keyed by source URL.
type Store interface {
	Get(ctx context.Context, sourceURL string) (*Record, error)
	Put(ctx context.Context, rec *Record) error
}

// FromOutcome builds a record from a pipeline outcome. The apply URL falls
// back to the source URL when no strategy found an explicit link.
func FromOutcome(sourceURL string, kind provider.Kind, out ingest.Outcome) *Record {
	applyURL := out.ApplyURL
	if applyURL == "" {
		applyURL = sourceURL
	}
	now := time.Now().UTC()
	return &Record{
		SourceURL:       sourceURL,
		Provider:        kind,
		CompanyName:     out.CompanyName,
		Title:           out.Title,
		Location:        out.Location,
		EmploymentType:  out.EmploymentType,
		ApplyURL:        applyURL,
		DescriptionHTML: out.DescriptionHTML,
		DescriptionText: out.DescriptionText,
		FormSchema:      out.FormSchema,
		Raw: RawExtraction{
			ProviderPayload: out.ProviderPayload,
			ExtractionPath:  out.Path,
			FetchedAt:       now,
			Warnings:        out.Warnings,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
