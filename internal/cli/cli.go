package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/heatcal/pkg/buildinfo"
	"github.com/matzehuels/heatcal/pkg/config"
	"github.com/matzehuels/heatcal/pkg/pipeline"
	"github.com/matzehuels/heatcal/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for default file names and display.
	appName = "heatcal"

	// defaultConfigFile is read from the working directory when --config is
	// not given. A missing default file is not an error.
	defaultConfigFile = "heatcal.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	now        func() time.Time
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		configPath: defaultConfigFile,
		now:        time.Now,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "heatcal draws year-by-year calendar heatmaps",
		Long:          `heatcal aggregates daily values from files, Redis, MongoDB and HTTP endpoints and draws them as a calendar heatmap, one strip per year, with navigation between years.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", defaultConfigFile, "configuration file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	_ = root.MarkPersistentFlagFilename("config", "toml")

	root.AddCommand(
		c.renderCommand(),
		c.serveCommand(),
		c.browseCommand(),
		c.datasetsCommand(),
		c.cacheCommand(),
	)

	return root
}

// =============================================================================
// Config and Runner Factory
// =============================================================================

// loadConfig reads the --config file. Without a config file in the working
// directory the defaults apply, which render an empty calendar.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath == defaultConfigFile {
		if _, err := os.Stat(c.configPath); os.IsNotExist(err) {
			cfg := config.Defaults()
			return &cfg, nil
		}
	}
	return config.Load(c.configPath)
}

// overrides holds the flags every calendar command shares.
type overrides struct {
	year    int
	title   string
	refresh bool
}

func (o *overrides) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.year, "year", "y", 0, "year to show (default: config year or current year)")
	cmd.Flags().StringVar(&o.title, "title", "", "chart title (overrides config)")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass cached HTTP dataset responses")
	_ = cmd.RegisterFlagCompletionFunc("year", completeYears(time.Now))
}

// apply writes flag values over cfg.
func (o *overrides) apply(cfg *config.Config) error {
	if o.title != "" {
		cfg.Title = o.title
	}
	if o.year != 0 {
		cfg.Year = o.year
	}
	return cfg.Validate()
}

// openRunner opens the configured datasets and returns a runner over them.
// The caller closes the returned set.
func (c *CLI) openRunner(ctx context.Context, cfg *config.Config, refresh bool) (*pipeline.Runner, *source.Set, error) {
	logger := loggerFromContext(ctx)
	set, err := source.Open(ctx, cfg, source.WithLogger(logger), source.WithRefresh(refresh))
	if err != nil {
		return nil, nil, err
	}
	return pipeline.NewRunner(set, cfg.Calendar(), logger), set, nil
}
