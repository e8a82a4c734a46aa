package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatcal/pkg/pipeline"
)

// Shell completion scripts come from cobra's default "completion" command;
// the functions here complete flag values.

// completeFormats completes the comma-separated --format list, offering
// only formats not already chosen.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, _ := splitLast(toComplete)
	var out []string
	for _, f := range pipeline.Formats {
		if !strings.Contains(","+done, ","+f+",") {
			out = append(out, done+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
}

// splitLast splits "svg,pn" into "svg," and "pn".
func splitLast(s string) (string, string) {
	i := strings.LastIndex(s, ",")
	return s[:i+1], s[i+1:]
}

const completedYears = 5

// completeYears offers the current year and the ones before it.
func completeYears(now func() time.Time) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		year := now().Year()
		out := make([]string, 0, completedYears)
		for y := year; y > year-completedYears; y-- {
			if s := strconv.Itoa(y); strings.HasPrefix(s, toComplete) {
				out = append(out, s)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
