// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackroad/tfregistry/internal/issue"
	"github.com/blackroad/tfregistry/pkg/registry"
)

// validateCmd structurally validates an HCL template file.
var validateCmd = &cobra.Command{
	Use:   "validate <template-file>",
	Short: "Validate an HCL template file",
	Long: `Run the structural checks over a template file: delimiter balance,
block presence, resource labels, and interpolation shapes. Warnings never
fail validation; the command exits non-zero only when errors are found.

Examples:
  tfreg validate ./main.tf`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	template, err := os.ReadFile(args[0])
	if err != nil {
		return fail(cmd, issue.WrapWithContext(err, "read template file", args[0]))
	}

	result := registry.Validate(string(template))
	out := cmd.OutOrStdout()
	if result.Valid {
		fmt.Fprintln(out, SuccessStyle.Render("HCL is valid"))
	} else {
		fmt.Fprintln(out, ErrorStyle.Render("HCL validation failed"))
	}
	for _, e := range result.Errors {
		fmt.Fprintln(out, "  "+ErrorStyle.Render("ERROR:")+" "+e)
	}
	for _, w := range result.Warnings {
		fmt.Fprintln(out, "  "+WarningStyle.Render("WARN:")+"  "+w)
	}

	if !result.Valid {
		cmd.SilenceUsage = true
		return fmt.Errorf("template %s failed validation", args[0])
	}
	return nil
}
