package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/heatcal/pkg/calendar"
	"github.com/matzehuels/heatcal/pkg/config"
	"github.com/matzehuels/heatcal/pkg/source"
)

// datasetsCommand creates the datasets command, which loads one year of
// every configured dataset and prints a summary table.
func (c *CLI) datasetsCommand() *cobra.Command {
	var opts overrides

	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Summarize the configured datasets for a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDatasets(cmd.Context(), &opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func (c *CLI) runDatasets(ctx context.Context, opts *overrides) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := opts.apply(cfg); err != nil {
		return err
	}
	if len(cfg.Datasets) == 0 {
		printWarning("No datasets configured in %s", c.configPath)
		return nil
	}

	set, err := source.Open(ctx, cfg, source.WithLogger(loggerFromContext(ctx)), source.WithRefresh(opts.refresh))
	if err != nil {
		return err
	}
	defer set.Close()

	year := cfg.SelectedYear(c.now())
	sources, err := set.Load(ctx, year)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, StyleTitle.Render(fmt.Sprintf("Datasets for %d", year)))
	fmt.Fprintln(stdout, datasetTable(cfg.Datasets, sources))
	return nil
}

// datasetTable renders one row per dataset. specs and sources are in the
// same order.
func datasetTable(specs []config.Dataset, sources []calendar.Source) string {
	rows := make([][]string, 0, len(specs))
	for i, d := range specs {
		days, total := "—", "—"
		if i < len(sources) {
			if s, ok := sources[i].(source.Series); ok {
				days = fmt.Sprint(len(s))
				total = strconv.FormatFloat(seriesTotal(s), 'f', -1, 64)
			}
		}
		rows = append(rows, []string{d.Name, d.Kind, datasetLocation(d), days, total})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("Dataset", "Kind", "Location", "Days", "Total").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorAccent)
			case col >= 3:
				return lipgloss.NewStyle().Foreground(colorBright).Align(lipgloss.Right)
			default:
				return lipgloss.NewStyle().Foreground(colorMuted)
			}
		}).
		Render()
}

func datasetLocation(d config.Dataset) string {
	switch d.Kind {
	case config.KindRedis:
		return d.Key
	case config.KindMongo:
		return d.Series
	case config.KindHTTP:
		return d.URL
	default:
		return d.Path
	}
}

func seriesTotal(s source.Series) float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}
