package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON document per record under sha256(source_url).json.
type FileStore struct {
	Dir string
}

func (s *FileStore) ensureDir() error {
	if s == nil || s.Dir == "" {
		return errors.New("store dir not configured")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s *FileStore) path(sourceURL string) string {
	h := sha256.Sum256([]byte(sourceURL))
	return filepath.Join(s.Dir, hex.EncodeToString(h[:])+".json")
}

func (s *FileStore) Get(_ context.Context, sourceURL string) (*Record, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path(sourceURL))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}

func (s *FileStore) Put(_ context.Context, rec *Record) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	// Write via rename so readers never see a partial document.
	path := s.path(rec.SourceURL)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return os.Rename(tmp, path)
}
