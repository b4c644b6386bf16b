// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/blackroad/tfregistry/pkg/registry"
)

// searchCmd finds modules by substring match.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search modules by name, description, or tags",
	Long: `Find modules whose name, description, provider, resource type, or
tags contain the query, case-insensitively.

Examples:
  tfreg search bucket
  tfreg search kubernetes`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	reg, _, closer, err := openRegistry(cmd)
	if err != nil {
		return fail(cmd, err)
	}
	defer closer()

	modules, err := reg.Search(cmd.Context(), args[0])
	if err != nil {
		return fail(cmd, err)
	}
	if len(modules) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), WarningStyle.Render("No modules found for '"+args[0]+"'"))
		return nil
	}

	rows := lo.Map(modules, func(m *registry.Module, _ int) []string {
		return []string{m.Name, m.Provider, truncate(m.Description, 80)}
	})
	fmt.Fprintln(cmd.OutOrStdout(), TitleStyle.Render("Search: "+args[0]))
	fmt.Fprint(cmd.OutOrStdout(), renderColumns([]string{"NAME", "PROVIDER", "DESCRIPTION"}, rows))
	return nil
}
