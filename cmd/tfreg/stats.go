// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsCmd shows catalog-wide statistics.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show registry statistics",
	Long:  "Show the total module count, per-provider breakdown, and the most downloaded modules.",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, _ []string) error {
	reg, _, closer, err := openRegistry(cmd)
	if err != nil {
		return fail(cmd, err)
	}
	defer closer()

	stats, err := reg.Stats(cmd.Context())
	if err != nil {
		return fail(cmd, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render("Registry Statistics"))
	fmt.Fprintf(out, "Total modules: %d\n\n", stats.TotalModules)

	fmt.Fprintln(out, HeaderStyle.Render("By provider:"))
	for _, pc := range stats.ByProvider {
		fmt.Fprintf(out, "  %-12s %d\n", pc.Provider, pc.Count)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, HeaderStyle.Render("Most downloaded:"))
	for _, de := range stats.MostDownloaded {
		fmt.Fprintf(out, "  %s (%s) — %d downloads\n",
			ModuleStyle.Render(de.Name), de.Provider, de.Downloads)
	}
	return nil
}
