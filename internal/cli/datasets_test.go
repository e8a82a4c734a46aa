package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/heatcal/pkg/calendar"
	"github.com/matzehuels/heatcal/pkg/config"
	"github.com/matzehuels/heatcal/pkg/source"
)

func TestDatasetTable(t *testing.T) {
	specs := []config.Dataset{
		{Name: "runs", Kind: config.KindFile, Path: "/data/runs.csv"},
		{Name: "steps", Kind: config.KindRedis, Key: "heatcal:steps"},
		{Name: "sleep", Kind: config.KindHTTP, URL: "https://example.com/{year}.json"},
	}
	runs := source.Series{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC): 3,
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC): 4.5,
	}
	other := calendar.SourceFunc(func(time.Time) (float64, bool) { return 0, false })

	out := datasetTable(specs, []calendar.Source{runs, other})
	for _, want := range []string{"Dataset", "runs", "/data/runs.csv", "heatcal:steps", "https://example.com/{year}.json", "7.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("table lacks %q:\n%s", want, out)
		}
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) < 5 {
		t.Errorf("table has %d lines, want header and three rows:\n%s", len(lines), out)
	}
}

func TestDatasetLocation(t *testing.T) {
	tests := []struct {
		d    config.Dataset
		want string
	}{
		{config.Dataset{Kind: config.KindFile, Path: "a.csv"}, "a.csv"},
		{config.Dataset{Kind: config.KindRedis, Key: "k"}, "k"},
		{config.Dataset{Kind: config.KindMongo, Series: "s"}, "s"},
		{config.Dataset{Kind: config.KindHTTP, URL: "http://x"}, "http://x"},
	}
	for _, tt := range tests {
		if got := datasetLocation(tt.d); got != tt.want {
			t.Errorf("datasetLocation(%s) = %q, want %q", tt.d.Kind, got, tt.want)
		}
	}
}

func TestDatasetsCommand(t *testing.T) {
	c, dir := testCLI(t, `year = 2024

[cache]
backend = "none"

[[dataset]]
name = "runs"
path = "runs.json"
`)
	data := `{"values": {"2024-03-01": 2, "2024-03-02": 5}}`
	if err := os.WriteFile(filepath.Join(dir, "runs.json"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out := captureStdout(t)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", c.configPath, "datasets"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("datasets error: %v", err)
	}
	for _, want := range []string{"Datasets for 2024", "runs", "runs.json", "7"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}
