package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/heatcal/pkg/cache"
	"github.com/matzehuels/heatcal/pkg/errors"
)

func newTestClient(t *testing.T, c cache.Cache) *Client {
	t.Helper()
	return NewClient(c, "test", time.Hour, map[string]string{"Accept": "application/json"},
		WithRetry(3, time.Millisecond))
}

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept header = %q", got)
		}
		w.Write([]byte(`{"message":"hello"}`))
	}))
	defer srv.Close()

	var resp struct {
		Message string `json:"message"`
	}
	if err := newTestClient(t, nil).Get(context.Background(), srv.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientGetBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{`))
	}))
	defer srv.Close()

	var v map[string]any
	err := newTestClient(t, nil).Get(context.Background(), srv.URL, &v)
	if !errors.Is(err, errors.ErrCodeInvalidSource) {
		t.Errorf("Get() error = %v, want %s", err, errors.ErrCodeInvalidSource)
	}
}

func TestClientFetchCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("body"))
	}))
	defer srv.Close()

	fc, _ := cache.NewFileCache(t.TempDir())
	c := newTestClient(t, fc)
	ctx := context.Background()

	for range 3 {
		data, err := c.Fetch(ctx, srv.URL, false)
		if err != nil || string(data) != "body" {
			t.Fatalf("Fetch() = %q, %v", data, err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}

	if _, err := c.Fetch(ctx, srv.URL, true); err != nil {
		t.Fatalf("Fetch(refresh) error: %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("refresh should bypass the cache, hits = %d", hits.Load())
	}
}

func TestClientFetchRetries5xx(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	data, err := newTestClient(t, nil).Fetch(context.Background(), srv.URL, false)
	if err != nil || string(data) != "ok" {
		t.Fatalf("Fetch() = %q, %v", data, err)
	}
	if hits.Load() != 3 {
		t.Errorf("attempts = %d, want 3", hits.Load())
	}
}

func TestClientFetchErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode errors.Code
		wantHits int32
	}{
		{"not found", http.StatusNotFound, errors.ErrCodeSourceNotFound, 1},
		{"forbidden", http.StatusForbidden, errors.ErrCodeNetwork, 1},
		{"server error", http.StatusInternalServerError, errors.ErrCodeNetwork, 3},
		{"rate limited", http.StatusTooManyRequests, errors.ErrCodeRateLimited, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestClient(t, nil).Fetch(context.Background(), srv.URL, false)
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("error code = %v (%v), want %v", got, err, tt.wantCode)
			}
			if hits.Load() != tt.wantHits {
				t.Errorf("attempts = %d, want %d", hits.Load(), tt.wantHits)
			}
		})
	}
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := newTestClient(t, nil).Fetch(ctx, srv.URL, false)
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("Fetch() error = %v, want %s", err, errors.ErrCodeTimeout)
	}
}
