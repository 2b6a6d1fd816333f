// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads a remote payload and checks that it is plausibly
// an image before anything is written to disk.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrTooSmall reports a payload below the minimum image size.
var ErrTooSmall = errors.New("downloaded file is too small, likely not an image")

// StatusError reports a non-2xx final response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Get fetches url with the given User-Agent and returns the whole body.
// Redirects are resolved by the client; the status check applies to the
// final response.
func Get(ctx context.Context, client *http.Client, url, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: resp.Request.URL.String(), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// Validate rejects payloads shorter than minBytes.
func Validate(payload []byte, minBytes int) error {
	if len(payload) < minBytes {
		return fmt.Errorf("%w (%d bytes, want at least %d)", ErrTooSmall, len(payload), minBytes)
	}
	return nil
}
