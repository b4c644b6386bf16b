// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackroad/tfregistry/internal/issue"
	"github.com/blackroad/tfregistry/pkg/registry"
)

var (
	registerDescription string
	registerVersion     string
	registerTags        []string
)

// registerCmd registers a new module from an HCL template file.
var registerCmd = &cobra.Command{
	Use:   "register <name> <provider> <resource-type> <template-file>",
	Short: "Register a new module from an HCL template file",
	Long: `Register a new module. The template is structurally validated before
anything is persisted, and the module name must be unique.

Examples:
  tfreg register my_vpc aws aws_vpc ./vpc.tf
  tfreg register my_vpc aws aws_vpc ./vpc.tf -d "Team VPC" -V 0.1.0 -t networking`,
	Args: cobra.ExactArgs(4),
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVarP(&registerDescription, "description", "d", "", "module description")
	registerCmd.Flags().StringVarP(&registerVersion, "module-version", "V", registry.DefaultVersion, "initial semantic version")
	registerCmd.Flags().StringSliceVarP(&registerTags, "tag", "t", nil, "tags (repeatable)")
}

func runRegister(cmd *cobra.Command, args []string) error {
	name, provider, resourceType, templateFile := args[0], args[1], args[2], args[3]

	template, err := os.ReadFile(templateFile)
	if err != nil {
		return fail(cmd, issue.WrapWithContext(err, "read template file", templateFile))
	}

	reg, _, closer, err := openRegistry(cmd)
	if err != nil {
		return fail(cmd, err)
	}
	defer closer()

	m, err := reg.Register(cmd.Context(), registry.RegisterRequest{
		Name:         name,
		Provider:     provider,
		ResourceType: resourceType,
		Description:  registerDescription,
		Version:      registerVersion,
		HCLTemplate:  string(template),
		Tags:         registerTags,
	})
	if err != nil {
		return fail(cmd, issue.NewErrorContext().
			WithOperation("register module").
			WithResource(name).
			WithSuggestion("Run 'tfreg validate "+templateFile+"' to see all template problems").
			Wrap(err).
			Build())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n",
		SuccessStyle.Render("Registered"), ModuleStyle.Render(m.Name), m.ID)
	return nil
}
