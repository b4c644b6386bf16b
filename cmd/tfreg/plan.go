// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var planVars []string

// planCmd renders a module and prints a plan-style preview of its resources.
var planCmd = &cobra.Command{
	Use:   "plan <module>",
	Short: "Export a plan-style preview for a module",
	Long: `Render a module and format a human-readable preview of the resource
blocks that would be created, followed by the full rendered HCL.

Examples:
  tfreg plan aws_vpc --var name=core
  tfreg plan kubernetes_service --var name=web --var selector_app=web`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringArrayVar(&planVars, "var", nil, "variable value (key=value, repeatable)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	values, err := parseVarFlags(planVars)
	if err != nil {
		return fail(cmd, err)
	}

	reg, _, closer, err := openRegistry(cmd)
	if err != nil {
		return fail(cmd, err)
	}
	defer closer()

	plan, err := reg.ExportPlan(cmd.Context(), args[0], values)
	if err != nil {
		return fail(cmd, renderErrorContext(err, args[0]))
	}
	fmt.Fprintln(cmd.OutOrStdout(), plan)
	return nil
}
