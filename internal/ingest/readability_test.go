package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReadability_ExtractsMainContent(t *testing.T) {
	srv := pageServer(t, `<!doctype html><html>
		<head>
			<title>Backend Engineer | Acme</title>
			<meta property="og:site_name" content="Acme">
		</head>
		<body>
			<nav><a href="/">Home</a></nav>
			<main>
				<h1>Backend Engineer</h1>
				<p>You will design ingestion pipelines and <strong>own</strong> them in production.</p>
				<a href="/apply/123">Apply now</a>
			</main>
			<footer>Acme Inc</footer>
		</body></html>`)
	defer srv.Close()

	r := &Readability{Fetcher: testFetcher()}
	out := r.Extract(context.Background(), srv.URL)

	if out.Empty() {
		t.Fatalf("expected content, warnings=%v", out.Warnings)
	}
	if !strings.Contains(out.DescriptionText, "ingestion pipelines") {
		t.Fatalf("description = %q", out.DescriptionText)
	}
	if out.Title != "Backend Engineer | Acme" {
		t.Fatalf("title = %q", out.Title)
	}
	if out.CompanyName != "Acme" {
		t.Fatalf("company = %q", out.CompanyName)
	}
	if out.ApplyURL != srv.URL+"/apply/123" {
		t.Fatalf("apply url = %q", out.ApplyURL)
	}
	if out.Path != PathReadability {
		t.Fatalf("path = %q", out.Path)
	}
}

func TestReadability_SanitizesHTML(t *testing.T) {
	srv := pageServer(t, `<html><head><title>T</title></head><body><main>
		<script>alert(1)</script>
		<p onclick="steal()">A description long enough to count as content.</p>
		<table><tr><td>tabular</td></tr></table>
	</main></body></html>`)
	defer srv.Close()

	r := &Readability{Fetcher: testFetcher()}
	out := r.Extract(context.Background(), srv.URL)

	if strings.Contains(out.DescriptionHTML, "<script") {
		t.Fatalf("script survived sanitization: %q", out.DescriptionHTML)
	}
	if strings.Contains(out.DescriptionHTML, "onclick") {
		t.Fatalf("event handler survived sanitization: %q", out.DescriptionHTML)
	}
	if strings.Contains(out.DescriptionHTML, "<table") {
		t.Fatalf("disallowed tag survived: %q", out.DescriptionHTML)
	}
	// Text inside stripped tags is retained.
	if !strings.Contains(out.DescriptionHTML, "tabular") {
		t.Fatalf("stripped tag lost its text: %q", out.DescriptionHTML)
	}
	if !strings.Contains(out.DescriptionHTML, "<p>") {
		t.Fatalf("allowed tag missing: %q", out.DescriptionHTML)
	}
}

func TestReadability_AbsoluteApplyLinkKept(t *testing.T) {
	srv := pageServer(t, `<html><head><title>T</title></head><body><main>
		<p>Sufficiently long description text for the extraction heuristics.</p>
		<a href="https://apply.example.com/form">APPLY HERE</a>
	</main></body></html>`)
	defer srv.Close()

	r := &Readability{Fetcher: testFetcher()}
	out := r.Extract(context.Background(), srv.URL)
	if out.ApplyURL != "https://apply.example.com/form" {
		t.Fatalf("apply url = %q", out.ApplyURL)
	}
}

func TestReadability_NoApplyLinkDefaultsToSource(t *testing.T) {
	srv := pageServer(t, `<html><head><title>T</title></head><body><main>
		<p>Description with no application link anywhere on the page.</p>
	</main></body></html>`)
	defer srv.Close()

	r := &Readability{Fetcher: testFetcher()}
	out := r.Extract(context.Background(), srv.URL)
	if out.ApplyURL != srv.URL {
		t.Fatalf("apply url = %q, want source url", out.ApplyURL)
	}
}

func TestReadability_EmptyPage(t *testing.T) {
	srv := pageServer(t, `<html><head><title></title></head><body></body></html>`)
	defer srv.Close()

	r := &Readability{Fetcher: testFetcher()}
	out := r.Extract(context.Background(), srv.URL)
	if !out.Empty() {
		t.Fatalf("expected empty outcome, got %q", out.DescriptionText)
	}
	if len(out.Warnings) != 1 || out.Warnings[0] != "Could not extract content from page" {
		t.Fatalf("warnings = %v", out.Warnings)
	}
}

func TestReadability_HTTPErrorBecomesWarning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	r := &Readability{Fetcher: testFetcher()}
	out := r.Extract(context.Background(), srv.URL)
	if !out.Empty() || out.Warnings[0] != "HTTP error: 410" {
		t.Fatalf("got %+v", out)
	}
}
