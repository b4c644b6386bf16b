// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/blackroad/tfregistry/pkg/registry"
)

var (
	listProvider string
	listResource string
)

// listCmd lists the registered modules as a table.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered modules",
	Long: `List the registered modules, most downloaded first.

Examples:
  tfreg list
  tfreg list --provider aws
  tfreg list --resource aws_instance`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listProvider, "provider", "p", "", "filter by provider")
	listCmd.Flags().StringVarP(&listResource, "resource", "r", "", "filter by resource type")
}

func runList(cmd *cobra.Command, _ []string) error {
	reg, _, closer, err := openRegistry(cmd)
	if err != nil {
		return fail(cmd, err)
	}
	defer closer()

	modules, err := reg.List(cmd.Context(), listProvider, listResource)
	if err != nil {
		return fail(cmd, err)
	}
	if len(modules) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("no modules registered"))
		return nil
	}

	rows := lo.Map(modules, func(m *registry.Module, _ int) []string {
		return []string{
			m.Name, m.Provider, m.ResourceType, m.Version,
			strconv.FormatInt(m.DownloadCount, 10), truncate(m.Description, 60),
		}
	})
	fmt.Fprintln(cmd.OutOrStdout(), TitleStyle.Render("Terraform Module Registry"))
	fmt.Fprint(cmd.OutOrStdout(), renderColumns(
		[]string{"NAME", "PROVIDER", "RESOURCE TYPE", "VERSION", "DOWNLOADS", "DESCRIPTION"}, rows))
	return nil
}
