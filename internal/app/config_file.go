package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested sections
// improve readability and map naturally to flags/env.
type FileConfig struct {
	UserAgent string `yaml:"userAgent" json:"userAgent"`

	HTTP struct {
		Timeout time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"http" json:"http"`

	Cache struct {
		Dir    string        `yaml:"dir" json:"dir"`
		MaxAge time.Duration `yaml:"maxAge" json:"maxAge"`
		Clear  bool          `yaml:"clear" json:"clear"`
	} `yaml:"cache" json:"cache"`

	Store struct {
		Dir string `yaml:"dir" json:"dir"`
	} `yaml:"store" json:"store"`

	SmartRecruiters struct {
		Key string `yaml:"key" json:"key"`
	} `yaml:"smartrecruiters" json:"smartrecruiters"`

	Browser struct {
		Enable   bool  `yaml:"enable" json:"enable"`
		Headless *bool `yaml:"headless" json:"headless"`
	} `yaml:"browser" json:"browser"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset or still at their flag defaults. Flags should already
// have been parsed; this lets file config supply defaults while preserving
// explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	const (
		userAgentDefault   = "jobloom/1.0 (+https://github.com/jobloom/jobloom)"
		httpTimeoutDefault = 30 * time.Second
		cacheDirDefault    = ".jobloom-cache"
		storeDirDefault    = ".jobloom-store"
	)

	if (cfg.UserAgent == "" || cfg.UserAgent == userAgentDefault) && fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}
	if (cfg.HTTPTimeout == 0 || cfg.HTTPTimeout == httpTimeoutDefault) && fc.HTTP.Timeout > 0 {
		cfg.HTTPTimeout = fc.HTTP.Timeout
	}
	if (cfg.CacheDir == "" || cfg.CacheDir == cacheDirDefault) && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = fc.Cache.MaxAge
	}
	if !cfg.CacheClear && fc.Cache.Clear {
		cfg.CacheClear = true
	}
	if (cfg.StoreDir == "" || cfg.StoreDir == storeDirDefault) && fc.Store.Dir != "" {
		cfg.StoreDir = fc.Store.Dir
	}
	if cfg.SmartRecruitersAPIKey == "" && fc.SmartRecruiters.Key != "" {
		cfg.SmartRecruitersAPIKey = fc.SmartRecruiters.Key
	}
	if !cfg.BrowserEnabled && fc.Browser.Enable {
		cfg.BrowserEnabled = true
	}
	if fc.Browser.Headless != nil {
		cfg.BrowserHeadless = *fc.Browser.Headless
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
