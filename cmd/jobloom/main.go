package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jobloom/jobloom/internal/app"
	"github.com/jobloom/jobloom/internal/ingest"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load .env before flag parsing so env-backed flag defaults see it.
	_ = app.LoadDotenv(".env")

	var (
		configPath      string
		userAgent       string
		httpTimeout     time.Duration
		cacheDir        string
		cacheMaxAge     time.Duration
		cacheClear      bool
		storeDir        string
		srKey           string
		browserEnable   bool
		browserHeadless bool
		verbose         bool
	)

	flag.StringVar(&configPath, "config", os.Getenv("JOBLOOM_CONFIG"), "Path to YAML or JSON config file (optional)")
	flag.StringVar(&userAgent, "ua", "jobloom/1.0 (+https://github.com/jobloom/jobloom)", "User-Agent for outbound requests")
	flag.DurationVar(&httpTimeout, "http.timeout", 30*time.Second, "Per-request HTTP timeout")
	flag.StringVar(&cacheDir, "cache.dir", ".jobloom-cache", "Page cache directory path")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
	flag.BoolVar(&cacheClear, "cache.clear", false, "Clear cache directory before run")
	flag.StringVar(&storeDir, "store.dir", ".jobloom-store", "Record store directory path")
	flag.StringVar(&srKey, "smartrecruiters.key", os.Getenv("SMARTRECRUITERS_KEY"), "SmartRecruiters API key (optional)")
	flag.BoolVar(&browserEnable, "browser", false, "Enable headless-browser fallback rendering")
	flag.BoolVar(&browserHeadless, "browser.headless", true, "Run the fallback browser headless")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: jobloom [flags] <job-posting-url>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	sourceURL := flag.Arg(0)

	cfg := app.Config{
		UserAgent:             userAgent,
		HTTPTimeout:           httpTimeout,
		CacheDir:              cacheDir,
		CacheMaxAge:           cacheMaxAge,
		CacheClear:            cacheClear,
		StoreDir:              storeDir,
		SmartRecruitersAPIKey: srKey,
		BrowserEnabled:        browserEnable,
		BrowserHeadless:       browserHeadless,
		Verbose:               verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file load failed")
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if err := run(cfg, sourceURL); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(cfg app.Config, sourceURL string) error {
	ctx := context.Background()

	svc, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init service: %w", err)
	}

	rec, status, err := svc.Ingest(ctx, sourceURL)
	if err != nil {
		return err
	}

	out := struct {
		Status string `json:"status"`
		Record any    `json:"record"`
	}{Status: string(status), Record: rec}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	if status != ingest.StatusSuccess {
		// Nonzero exit so scripts can detect that manual extraction is needed.
		os.Exit(3)
	}
	return nil
}
