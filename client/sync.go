// Package client implements the browser-side half of the site: a content
// store with write-through local persistence, a best-effort remote sync
// client, the admin capability gate, and the chat relay. It mirrors the
// contract the atelier server exposes under /api, and keeps working — local
// only — when no server is reachable.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// SameOriginSentinel marks a deployment where the API base is the page's own
// origin handled elsewhere; the sync client treats it like "no remote" and
// never issues a request.
const SameOriginSentinel = "/api"

// fetchTimeout bounds every remote attempt. There is exactly one attempt
// per call: no retry, no backoff.
const fetchTimeout = 3 * time.Second

// Sync is the best-effort bridge to an optional remote backend. Every
// failure mode — missing configuration, timeout, non-2xx status, transport
// error, undecodable body — resolves to absent (nil, false). Callers treat
// absent as "use the local fallback", never as an error to surface.
type Sync struct {
	baseURL string
	client  *http.Client
}

// NewSync creates a Sync against baseURL. An empty baseURL or the
// same-origin sentinel disables remote calls entirely.
func NewSync(baseURL string) *Sync {
	return &Sync{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// Enabled reports whether a remote endpoint is configured.
func (s *Sync) Enabled() bool {
	return s.baseURL != "" && s.baseURL != strings.TrimRight(SameOriginSentinel, "/")
}

// Fetch issues a single bounded request and returns the parsed JSON body,
// or absent. A nil body means no request payload; method defaults to GET.
func (s *Sync) Fetch(ctx context.Context, method, path string, body interface{}) (json.RawMessage, bool) {
	if !s.Enabled() {
		return nil, false
	}
	if method == "" {
		method = http.MethodGet
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, false
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, false
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		// 204s and empty bodies still count as success for mirrored writes.
		return nil, true
	}
	return raw, true
}
