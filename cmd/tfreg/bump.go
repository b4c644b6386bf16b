// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackroad/tfregistry/internal/issue"
	"github.com/blackroad/tfregistry/pkg/registry"
)

// bumpCmd increments a module's semantic version.
var bumpCmd = &cobra.Command{
	Use:   "bump <module> [major|minor|patch]",
	Short: "Bump a module's semantic version",
	Long: `Increment one component of a module's version, zeroing everything
less significant. The part defaults to patch.

Examples:
  tfreg bump my_vpc          1.2.3 -> 1.2.4
  tfreg bump my_vpc minor    1.2.3 -> 1.3.0
  tfreg bump my_vpc major    1.2.3 -> 2.0.0`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBump,
}

func runBump(cmd *cobra.Command, args []string) error {
	part := registry.BumpPatch
	if len(args) == 2 {
		part = registry.BumpPart(args[1])
	}

	reg, _, closer, err := openRegistry(cmd)
	if err != nil {
		return fail(cmd, err)
	}
	defer closer()

	next, err := reg.BumpVersion(cmd.Context(), args[0], part)
	if err != nil {
		return fail(cmd, issue.WrapWithContext(err, "bump module version", args[0]))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now v%s\n",
		SuccessStyle.Render("Bumped"), ModuleStyle.Render(args[0]), next)
	return nil
}
