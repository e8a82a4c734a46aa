package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatcal/pkg/cache"
	"github.com/matzehuels/heatcal/pkg/config"
)

// cacheCommand groups the file cache subcommands. The redis backend expires
// its own keys and has no equivalent here.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the dataset cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := c.cacheDir()
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, dir)
				return nil
			},
		},
		&cobra.Command{
			Use:   "info",
			Short: "Show how many entries the cache holds",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, args []string) error { return c.withFileCache(showUsage) },
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached dataset response",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, args []string) error { return c.withFileCache(clearCache) },
		},
	)
	return cmd
}

// cacheDir resolves the file cache directory of the loaded configuration.
func (c *CLI) cacheDir() (string, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.Cache.Backend != config.CacheFile {
		printWarning("Cache backend is %q, showing the file cache anyway", cfg.Cache.Backend)
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

func (c *CLI) withFileCache(fn func(*cache.FileCache) error) error {
	dir, err := c.cacheDir()
	if err != nil {
		return err
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	return fn(fc)
}

func showUsage(fc *cache.FileCache) error {
	n, size, err := fc.Usage()
	if err != nil {
		return err
	}
	printInfo("%s in %s", plural(n, "entry", "entries"), fc.Dir())
	if n > 0 {
		printDetail("%s on disk", formatBytes(size))
	}
	return nil
}

func clearCache(fc *cache.FileCache) error {
	n, err := fc.Clear()
	if err != nil {
		return err
	}
	if n == 0 {
		printInfo("Cache is empty")
		return nil
	}
	printSuccess("Cleared %s", plural(n, "entry", "entries"))
	printDetail("Directory: %s", fc.Dir())
	return nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
