package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLever_Extract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v0/postings/acme/abc-123" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"text": "Platform Engineer",
			"description": "<div><p>Build the platform.</p></div>",
			"descriptionPlain": "Build the platform.",
			"hostedUrl": "https://jobs.lever.co/acme/abc-123",
			"categories": {"location": "Berlin", "commitment": "Full-time"}
		}`))
	}))
	defer srv.Close()

	l := &Lever{BaseURL: srv.URL}
	out := l.Extract(context.Background(), "https://jobs.lever.co/acme/abc-123")

	if out.DescriptionText != "Build the platform." {
		t.Fatalf("description = %q", out.DescriptionText)
	}
	if out.Title != "Platform Engineer" {
		t.Fatalf("title = %q", out.Title)
	}
	if out.CompanyName != "acme" {
		t.Fatalf("company = %q", out.CompanyName)
	}
	if out.Location != "Berlin" || out.EmploymentType != "Full-time" {
		t.Fatalf("location/type = %q/%q", out.Location, out.EmploymentType)
	}
	if out.ApplyURL != "https://jobs.lever.co/acme/abc-123" {
		t.Fatalf("apply url = %q", out.ApplyURL)
	}
	if out.Path != PathLever {
		t.Fatalf("path = %q", out.Path)
	}
}

func TestLever_FallsBackToStrippedDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "T", "description": "<p>HTML &amp; only</p>"}`))
	}))
	defer srv.Close()

	l := &Lever{BaseURL: srv.URL}
	out := l.Extract(context.Background(), "https://jobs.lever.co/acme/x")

	if out.DescriptionText != "HTML & only" {
		t.Fatalf("description = %q", out.DescriptionText)
	}
	// No hostedUrl or applyUrl in the payload: synthesize the canonical one.
	if out.ApplyURL != "https://jobs.lever.co/acme/x" {
		t.Fatalf("apply url = %q", out.ApplyURL)
	}
}

func TestLever_HTTPErrorBecomesWarning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	defer srv.Close()

	l := &Lever{BaseURL: srv.URL}
	out := l.Extract(context.Background(), "https://jobs.lever.co/acme/x")
	if !out.Empty() {
		t.Fatal("expected empty outcome")
	}
	if len(out.Warnings) != 1 || out.Warnings[0] != "HTTP error: 418" {
		t.Fatalf("warnings = %v", out.Warnings)
	}
}

func TestLever_UnparseableURL(t *testing.T) {
	l := &Lever{}
	out := l.Extract(context.Background(), "https://lever.co/pricing")
	if !out.Empty() || len(out.Warnings) != 1 {
		t.Fatalf("expected single-warning empty outcome, got %+v", out)
	}
}
