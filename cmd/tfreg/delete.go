// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd removes a module from the registry.
var deleteCmd = &cobra.Command{
	Use:   "delete <module>",
	Short: "Delete a module by name or ID",
	Long: `Delete a module. Deleting an unknown reference is not an error; the
command reports that nothing matched.

Examples:
  tfreg delete my_vpc`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	reg, _, closer, err := openRegistry(cmd)
	if err != nil {
		return fail(cmd, err)
	}
	defer closer()

	removed, err := reg.Delete(cmd.Context(), args[0])
	if err != nil {
		return fail(cmd, err)
	}
	if removed {
		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Deleted ")+ModuleStyle.Render(args[0]))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), WarningStyle.Render("No module matched '"+args[0]+"'"))
	}
	return nil
}
