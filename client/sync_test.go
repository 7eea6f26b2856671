package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSyncDisabled(t *testing.T) {
	for _, base := range []string{"", SameOriginSentinel, "/api/"} {
		s := NewSync(base)
		if s.Enabled() {
			t.Errorf("NewSync(%q).Enabled() = true, want false", base)
		}
		if raw, ok := s.Fetch(context.Background(), http.MethodGet, "/posts", nil); ok || raw != nil {
			t.Errorf("Fetch with base %q should be absent, got (%s, %v)", base, raw, ok)
		}
	}
}

func TestSyncEnabled(t *testing.T) {
	if !NewSync("https://api.example.com").Enabled() {
		t.Error("configured base URL should enable sync")
	}
}

func TestSyncFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts" {
			t.Errorf("path = %s, want /posts", r.URL.Path)
		}
		w.Write([]byte(`[{"id":"1"}]`))
	}))
	defer srv.Close()

	raw, ok := NewSync(srv.URL).Fetch(context.Background(), http.MethodGet, "/posts", nil)
	if !ok {
		t.Fatal("Fetch should succeed")
	}
	if string(raw) != `[{"id":"1"}]` {
		t.Errorf("raw = %s", raw)
	}
}

func TestSyncFetchNonOKIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, ok := NewSync(srv.URL).Fetch(context.Background(), http.MethodGet, "/posts", nil); ok {
		t.Error("non-2xx response should be absent")
	}
}

func TestSyncFetchUnreachableIsAbsent(t *testing.T) {
	// A server that is immediately closed leaves a port nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, ok := NewSync(url).Fetch(context.Background(), http.MethodGet, "/posts", nil); ok {
		t.Error("unreachable backend should be absent")
	}
}

func TestSyncFetchEmptyBodyStillSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	raw, ok := NewSync(srv.URL).Fetch(context.Background(), http.MethodDelete, "/posts/x", nil)
	if !ok {
		t.Error("204 with empty body should count as success")
	}
	if raw != nil {
		t.Errorf("raw = %s, want nil", raw)
	}
}

func TestSyncFetchTimeoutIsAbsent(t *testing.T) {
	if testing.Short() {
		t.Skip("waits out the full fetch timeout")
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(fetchTimeout + time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	start := time.Now()
	if _, ok := NewSync(srv.URL).Fetch(context.Background(), http.MethodGet, "/posts", nil); ok {
		t.Error("timed-out request should be absent")
	}
	if elapsed := time.Since(start); elapsed > fetchTimeout+time.Second {
		t.Errorf("Fetch took %v, should give up at the %v timeout", elapsed, fetchTimeout)
	}
}
