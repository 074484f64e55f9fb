package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jobloom/jobloom/internal/ingest"
)

const jsonLDPage = `<!doctype html><html><head>
<script type="application/ld+json">
{"@type":"JobPosting","title":"Site Reliability Engineer",
 "description":"Keep the lights on.",
 "hiringOrganization":{"@type":"Organization","name":"Glowco"}}
</script>
</head><body><p>placeholder</p></body></html>`

func newTestService(t *testing.T, storeDir string) *Service {
	t.Helper()
	svc, err := New(Config{
		UserAgent:   "jobloom-test/1.0",
		HTTPTimeout: 5 * time.Second,
		StoreDir:    storeDir,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestIngest_JSONLDPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(jsonLDPage))
	}))
	defer srv.Close()

	svc := newTestService(t, t.TempDir())
	rec, status, err := svc.Ingest(context.Background(), srv.URL+"/careers/sre")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if status != ingest.StatusSuccess {
		t.Fatalf("status = %q", status)
	}
	if rec.Title != "Site Reliability Engineer" || rec.CompanyName != "Glowco" {
		t.Fatalf("record = %+v", rec)
	}
	if rec.Raw.ExtractionPath != ingest.PathJSONLD {
		t.Fatalf("path = %q", rec.Raw.ExtractionPath)
	}
}

func TestIngest_SecondCallIsLookup(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(jsonLDPage))
	}))
	defer srv.Close()

	svc := newTestService(t, t.TempDir())
	url := srv.URL + "/careers/sre"

	first, status, err := svc.Ingest(context.Background(), url)
	if err != nil || status != ingest.StatusSuccess {
		t.Fatalf("first ingest: status=%q err=%v", status, err)
	}
	fetched := atomic.LoadInt64(&hits)
	if fetched == 0 {
		t.Fatal("first ingest should have fetched the page")
	}

	second, status, err := svc.Ingest(context.Background(), url)
	if err != nil || status != ingest.StatusSuccess {
		t.Fatalf("second ingest: status=%q err=%v", status, err)
	}
	if atomic.LoadInt64(&hits) != fetched {
		t.Fatal("second ingest should not reach the network")
	}
	if second.SourceURL != first.SourceURL || second.Title != first.Title ||
		!second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("second record differs: %+v vs %+v", second, first)
	}
}

func TestIngest_ExhaustionNeedsExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<!doctype html><html><body></body></html>`))
	}))
	defer srv.Close()

	svc := newTestService(t, t.TempDir())
	rec, status, err := svc.Ingest(context.Background(), srv.URL+"/jobs/blank")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if status != ingest.StatusNeedsExtension {
		t.Fatalf("status = %q", status)
	}
	if rec.Raw.ExtractionPath != ingest.PathFailed {
		t.Fatalf("path = %q", rec.Raw.ExtractionPath)
	}
	if len(rec.Raw.Warnings) == 0 {
		t.Fatal("expected accumulated warnings on failure")
	}

	// Failed ingests are not persisted: a retry extracts again.
	if _, err := svc.records.Get(context.Background(), srv.URL+"/jobs/blank"); err == nil {
		t.Fatal("failed ingest should not be stored")
	}
}
