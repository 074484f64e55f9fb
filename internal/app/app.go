package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jobloom/jobloom/internal/cache"
	"github.com/jobloom/jobloom/internal/fetch"
	"github.com/jobloom/jobloom/internal/ingest"
	"github.com/jobloom/jobloom/internal/provider"
	"github.com/jobloom/jobloom/internal/store"
)

// Service wires the fetcher, the extraction pipeline and the record store
// behind a single Ingest entry point.
type Service struct {
	cfg      Config
	pipeline *ingest.Pipeline
	records  store.Store
}

// New builds a Service from configuration. Cache invalidation controls are
// applied once at startup.
func New(cfg Config) (*Service, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = "jobloom/1.0 (+https://github.com/jobloom/jobloom)"
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}

	var pageCache *cache.PageCache
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.Clear(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed; continuing")
			}
		}
		if cfg.CacheMaxAge > 0 {
			if n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge); err != nil {
				log.Warn().Err(err).Msg("cache purge failed; continuing")
			} else if n > 0 {
				log.Debug().Int("purged", n).Msg("expired cache entries removed")
			}
		}
		pageCache = &cache.PageCache{Dir: cfg.CacheDir}
	}

	fetcher := &fetch.Client{
		HTTPClient:        &http.Client{Timeout: cfg.HTTPTimeout},
		UserAgent:         cfg.UserAgent,
		PerRequestTimeout: cfg.HTTPTimeout,
		Cache:             pageCache,
	}

	browser := &ingest.Browser{Enabled: cfg.BrowserEnabled, Headless: cfg.BrowserHeadless}

	var records store.Store
	if cfg.StoreDir != "" {
		records = &store.FileStore{Dir: cfg.StoreDir}
	}

	return &Service{
		cfg:      cfg,
		pipeline: ingest.NewPipeline(fetcher, cfg.SmartRecruitersAPIKey, browser),
		records:  records,
	}, nil
}

// Ingest runs the extraction pipeline for one job posting URL and returns the
// stored record plus the ingestion status.
//
// Ingestion is idempotent on the source URL: if a record already exists it is
// returned as-is and no strategies run.
func (s *Service) Ingest(ctx context.Context, sourceURL string) (*store.Record, ingest.Status, error) {
	if s.records != nil {
		existing, err := s.records.Get(ctx, sourceURL)
		switch {
		case err == nil:
			log.Debug().Str("url", sourceURL).Msg("record exists; skipping extraction")
			return existing, ingest.StatusSuccess, nil
		case !errors.Is(err, store.ErrNotFound):
			return nil, "", err
		}
	}

	kind := provider.Detect(sourceURL)
	log.Info().Str("url", sourceURL).Str("provider", string(kind)).Msg("ingesting")

	out, status := s.pipeline.Run(ctx, sourceURL)
	rec := store.FromOutcome(sourceURL, kind, out)

	if s.records != nil && status == ingest.StatusSuccess {
		if err := s.records.Put(ctx, rec); err != nil {
			return nil, "", err
		}
	}
	log.Info().
		Str("url", sourceURL).
		Str("path", out.Path).
		Str("status", string(status)).
		Int("warnings", len(out.Warnings)).
		Msg("ingest finished")
	return rec, status, nil
}
