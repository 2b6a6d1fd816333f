// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client used for downloads.
package httputil

import (
	"net/http"

	"github.com/pdiddy/photo-fetch/pkg/types"
)

// maxRedirects matches the net/http default; attachment URLs redirect once
// or twice to signed storage URLs.
const maxRedirects = 10

// NewClient returns a client that applies cfg.Timeout to the whole request,
// follows redirects, and sets cfg.UserAgent on every outgoing request,
// redirect hops included.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &userAgentTransport{base: http.DefaultTransport, userAgent: cfg.UserAgent},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

// RoundTrip clones the request before touching headers, as required by the
// http.RoundTripper contract.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent == "" || req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}
