package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPageCache_SaveAndLoadRoundTrip(t *testing.T) {
	c := &PageCache{Dir: t.TempDir()}
	ctx := context.Background()
	url := "https://example.com/jobs/123"
	body := []byte("<html><body>posting</body></html>")

	if err := c.Save(ctx, url, "text/html", `"etag-1"`, "Mon, 02 Jan 2006 15:04:05 GMT", body); err != nil {
		t.Fatalf("save: %v", err)
	}
	meta, err := c.LoadMeta(ctx, url)
	if err != nil {
		t.Fatalf("load meta: %v", err)
	}
	if meta.ETag != `"etag-1"` || meta.ContentType != "text/html" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	got, err := c.LoadBody(ctx, url)
	if err != nil {
		t.Fatalf("load body: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("body mismatch: %q", got)
	}
}

func TestPageCache_MissingEntry(t *testing.T) {
	c := &PageCache{Dir: t.TempDir()}
	if _, err := c.LoadMeta(context.Background(), "https://example.com/absent"); err == nil {
		t.Fatal("expected error for missing meta")
	}
}

func TestPurgeByAge_RemovesOnlyExpired(t *testing.T) {
	dir := t.TempDir()
	c := &PageCache{Dir: dir}
	ctx := context.Background()

	if err := c.Save(ctx, "https://example.com/fresh", "text/html", "", "", []byte("a")); err != nil {
		t.Fatalf("save fresh: %v", err)
	}
	if err := c.Save(ctx, "https://example.com/stale", "text/html", "", "", []byte("b")); err != nil {
		t.Fatalf("save stale: %v", err)
	}
	// Backdate the stale entry's meta.
	staleKey := (&PageCache{Dir: dir}).key("https://example.com/stale")
	metaPath := filepath.Join(dir, staleKey+".meta.json")
	b, err := os.ReadFile(metaPath)
	if err != nil {
		t.Fatalf("read meta: %v", err)
	}
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		t.Fatalf("unmarshal meta: %v", err)
	}
	e.SavedAt = time.Now().UTC().Add(-48 * time.Hour)
	nb, _ := json.Marshal(e)
	if err := os.WriteFile(metaPath, nb, 0o644); err != nil {
		t.Fatalf("write meta: %v", err)
	}

	removed, err := PurgeByAge(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := c.LoadBody(ctx, "https://example.com/fresh"); err != nil {
		t.Fatalf("fresh entry should survive: %v", err)
	}
	if _, err := c.LoadBody(ctx, "https://example.com/stale"); err == nil {
		t.Fatal("stale entry should be gone")
	}
}

func TestClear_RecreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := &PageCache{Dir: dir}
	if err := c.Save(context.Background(), "https://example.com/x", "text/html", "", "", []byte("x")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := Clear(dir); err != nil {
		t.Fatalf("clear: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("dir should exist after clear: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dir should be empty, has %d entries", len(entries))
	}
}
