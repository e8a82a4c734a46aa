package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/heatcal/pkg/calendar"
	"github.com/matzehuels/heatcal/pkg/errors"
	"github.com/matzehuels/heatcal/pkg/observability"
	"github.com/matzehuels/heatcal/pkg/pipeline"
)

func testServer(t *testing.T, loader pipeline.Loader) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	logger := log.New(io.Discard)
	reg := prometheus.NewRegistry()
	srv := &server{
		runner: pipeline.NewRunner(loader, &calendar.Config{
			Title:   "Steps",
			Domain:  [2]float64{0, 10},
			Palette: []string{"#eee", "#333"},
		}, logger),
		logger:   logger,
		gatherer: reg,
		year:     func() int { return 2024 },
		title:    "Steps",
	}
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts, reg
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestServeRoutes(t *testing.T) {
	ts, _ := testServer(t, nil)

	tests := []struct {
		name        string
		path        string
		status      int
		contentType string
		contains    []string
	}{
		{"page", "/years/2024", http.StatusOK, "text/html", []string{"<title>Steps 2024</title>", "<svg", `href="/years/2023"`}},
		{"svg", "/years/2024.svg", http.StatusOK, "image/svg+xml", []string{`href="/years/2023"`, `href="/years/2025"`, ">2024<"}},
		{"json", "/years/1999.json", http.StatusOK, "application/json", []string{`"years"`, "1999"}},
		{"not a year", "/years/abc", http.StatusBadRequest, "text/plain", []string{"not a year"}},
		{"bad format", "/years/2024.gif", http.StatusBadRequest, "text/plain", []string{"gif"}},
		{"year out of range", "/years/10000.svg", http.StatusBadRequest, "text/plain", nil},
		{"health", "/healthz", http.StatusOK, "text/plain", []string{"ok"}},
		{"unknown", "/nope", http.StatusNotFound, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d (body %q)", resp.StatusCode, tt.status, body)
			}
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			for _, want := range tt.contains {
				if !strings.Contains(body, want) {
					t.Errorf("body lacks %q", want)
				}
			}
		})
	}
}

func TestServeRedirectsToSelectedYear(t *testing.T) {
	ts, _ := testServer(t, nil)
	resp, _ := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/years/2024" {
		t.Errorf("Location = %q, want /years/2024", loc)
	}
}

func TestServeLoadErrors(t *testing.T) {
	tests := []struct {
		code   errors.Code
		status int
	}{
		{errors.ErrCodeNetwork, http.StatusBadGateway},
		{errors.ErrCodeSourceNotFound, http.StatusNotFound},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			loader := pipeline.LoaderFunc(func(context.Context, int) ([]calendar.Source, error) {
				return nil, errors.New(tt.code, "dataset unavailable")
			})
			ts, _ := testServer(t, loader)
			resp, body := get(t, ts.URL+"/years/2024.svg")
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if !strings.Contains(body, "dataset unavailable") {
				t.Errorf("body = %q, want the error message", body)
			}
		})
	}
}

func TestServeMetrics(t *testing.T) {
	ts, reg := testServer(t, nil)
	prom := observability.NewPrometheus(reg)
	observability.SetPipelineHooks(prom)
	t.Cleanup(observability.Reset)

	if resp, _ := get(t, ts.URL+"/years/2024.svg"); resp.StatusCode != http.StatusOK {
		t.Fatalf("render status = %d", resp.StatusCode)
	}
	resp, body := get(t, ts.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "heatcal_") {
		t.Errorf("metrics lack heatcal series:\n%s", body)
	}
}

func TestRenderPageEscapesTitle(t *testing.T) {
	page, err := renderPage("<b>Steps</b>", 2024, []byte("<svg></svg>"))
	if err != nil {
		t.Fatalf("renderPage() error: %v", err)
	}
	s := string(page)
	if !strings.Contains(s, "&lt;b&gt;Steps&lt;/b&gt; 2024") {
		t.Errorf("title not escaped: %s", s)
	}
	if !strings.Contains(s, "<svg></svg>") {
		t.Errorf("svg was escaped: %s", s)
	}
}

func TestDisplayAddr(t *testing.T) {
	if got := displayAddr(":8080"); got != "localhost:8080" {
		t.Errorf("displayAddr(:8080) = %q", got)
	}
	if got := displayAddr("0.0.0.0:9000"); got != "0.0.0.0:9000" {
		t.Errorf("displayAddr(0.0.0.0:9000) = %q", got)
	}
}

func TestServerShutsDownOnCancel(t *testing.T) {
	c, _ := testCLI(t, "[cache]\nbackend = \"none\"\n")
	t.Cleanup(observability.Reset)
	ctx, cancel := context.WithCancel(withLogger(context.Background(), c.Logger))

	done := make(chan error, 1)
	go func() { done <- c.runServe(ctx, &serveOpts{addr: "127.0.0.1:0"}) }()
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runServe() error: %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("runServe() did not return after cancel")
	}
}
