package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jobloom/jobloom/internal/fetch"
)

// apiTimeout bounds every provider-API call.
const apiTimeout = 30 * time.Second

// getJSON fetches a provider API endpoint and returns the raw body. Non-2xx
// responses become a fetch.StatusError so callers can put the status code in
// the outcome warning.
func getJSON(ctx context.Context, hc *http.Client, rawURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &fetch.StatusError{Code: resp.StatusCode}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}

func apiHTTPClient(hc *http.Client) *http.Client {
	if hc != nil {
		return hc
	}
	return &http.Client{Timeout: apiTimeout}
}

// warnFor renders a strategy-internal error as an outcome warning. HTTP
// status failures keep the code visible for troubleshooting.
func warnFor(err error) string {
	var se *fetch.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("HTTP error: %d", se.Code)
	}
	return fmt.Sprintf("Extraction error: %v", err)
}
