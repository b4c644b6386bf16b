// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackroad/tfregistry/internal/issue"
	"github.com/blackroad/tfregistry/pkg/registry"
)

var (
	generateVars []string
	generateOut  string
)

// generateCmd renders a module's template with caller-supplied variables.
var generateCmd = &cobra.Command{
	Use:   "generate <module>",
	Short: "Generate Terraform HCL for a module",
	Long: `Render a module's HCL template. Variable defaults are merged with
--var overrides; every required variable without a default must be supplied.

Examples:
  tfreg generate aws_vpc --var name=core
  tfreg generate aws_ec2_instance --var name=web --var ami_id=ami-123 -o main.tf`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringArrayVar(&generateVars, "var", nil, "variable value (key=value, repeatable)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "write rendered HCL to a file instead of stdout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	values, err := parseVarFlags(generateVars)
	if err != nil {
		return fail(cmd, err)
	}

	reg, _, closer, err := openRegistry(cmd)
	if err != nil {
		return fail(cmd, err)
	}
	defer closer()

	rendered, err := reg.Render(cmd.Context(), args[0], values)
	if err != nil {
		return fail(cmd, renderErrorContext(err, args[0]))
	}

	if generateOut != "" {
		if err := os.WriteFile(generateOut, []byte(rendered), 0o644); err != nil {
			return fail(cmd, issue.WrapWithContext(err, "write rendered HCL", generateOut))
		}
		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Written to "+generateOut))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

// renderErrorContext attaches remediation hints to render failures.
func renderErrorContext(err error, ref string) error {
	ctx := issue.NewErrorContext().
		WithOperation("render module").
		WithResource(ref).
		Wrap(err)

	var missing *registry.MissingVariablesError
	if errors.As(err, &missing) {
		for _, name := range missing.Names {
			ctx.WithSuggestion("Pass --var " + name + "=<value>")
		}
	}
	var notFound *registry.NotFoundError
	if errors.As(err, &notFound) {
		ctx.WithSuggestion("Run 'tfreg list' to see registered modules")
	}
	return ctx.Build()
}
