package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/heatcal/pkg/cache"
)

// testCLI returns a CLI reading the config file written to a temp dir.
func testCLI(t *testing.T, toml string) (*CLI, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "heatcal.toml")
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(io.Discard, LogInfo)
	c.configPath = path
	return c, dir
}

func TestCacheDirFromConfig(t *testing.T) {
	c, dir := testCLI(t, "[cache]\ndir = \"cache\"\n")

	got, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(dir, "cache"); got != want {
		t.Errorf("cacheDir() = %q, want %q", got, want)
	}
}

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c, _ := testCLI(t, "title = \"Steps\"\n")

	got, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	want, err := cache.DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir() error: %v", err)
	}
	if got != want {
		t.Errorf("cacheDir() = %q, want %q", got, want)
	}
	if filepath.Base(got) != appName {
		t.Errorf("cacheDir() = %q, want it to end in %q", got, appName)
	}
}

func TestCacheDirBadConfig(t *testing.T) {
	c, _ := testCLI(t, "palette = []\n")
	if _, err := c.cacheDir(); err == nil {
		t.Error("cacheDir() with an invalid config should fail")
	}
}

func TestCacheClearCommand(t *testing.T) {
	c, dir := testCLI(t, "[cache]\ndir = \"cache\"\n")

	fc, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	root := c.RootCommand()
	root.SetArgs([]string{"--config", c.configPath, "cache", "clear"})
	root.SetOut(io.Discard)
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if _, ok, _ := fc.Get(ctx, k); ok {
			t.Errorf("entry %q survived cache clear", k)
		}
	}
}

func TestCacheInfoCommand(t *testing.T) {
	c, dir := testCLI(t, "[cache]\ndir = \"cache\"\n")
	fc, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	_ = fc.Set(context.Background(), "series:runs:2024", []byte("2024-01-01,3\n"), 0)
	out := captureStdout(t)

	root := c.RootCommand()
	root.SetArgs([]string{"--config", c.configPath, "cache", "info"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache info error: %v", err)
	}
	for _, want := range []string{"1 entry", fc.Dir(), " B on disk"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output %q missing %q", out.String(), want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
