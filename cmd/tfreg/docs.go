// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackroad/tfregistry/internal/issue"
)

// docsCmd renders a module's markdown documentation.
var docsCmd = &cobra.Command{
	Use:   "docs <module>",
	Short: "Generate markdown documentation for a module",
	Long: `Generate and render the markdown documentation of a module: variable
and output tables, the HCL template, examples, tags, and metadata.

Examples:
  tfreg docs aws_ec2_instance`,
	Args: cobra.ExactArgs(1),
	RunE: runDocs,
}

func runDocs(cmd *cobra.Command, args []string) error {
	reg, cfg, closer, err := openRegistry(cmd)
	if err != nil {
		return fail(cmd, err)
	}
	defer closer()

	md, err := reg.GenerateDocs(cmd.Context(), args[0])
	if err != nil {
		return fail(cmd, issue.NewErrorContext().
			WithOperation("generate docs").
			WithResource(args[0]).
			WithSuggestion("Run 'tfreg list' to see registered modules").
			Wrap(err).
			Build())
	}
	fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(md, cfg.GlamourTheme))
	return nil
}
