package app

import (
	"bufio"
	"errors"
	"os"
	"strings"
)

// LoadDotenv reads one KEY=VALUE-per-line file into the process environment
// before flag parsing, so env-backed flag defaults pick the values up. A
// missing file is fine; blank lines, comments and lines without '=' are
// skipped. Single or double quotes around a value are stripped.
func LoadDotenv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if !ok || key == "" {
			continue
		}
		if len(val) >= 2 && val[0] == val[len(val)-1] && (val[0] == '"' || val[0] == '\'') {
			val = val[1 : len(val)-1]
		}
		_ = os.Setenv(key, val)
	}
	return scanner.Err()
}
