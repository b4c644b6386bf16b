// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// GenerateDocs produces markdown documentation for a module: metadata header,
// variable and output tables, the raw template, examples, and tags. Sensitive
// fields are marked in the tables; sensitivity has no other effect anywhere.
func (r *Registry) GenerateDocs(ctx context.Context, ref string) (string, error) {
	m, err := r.store.Get(ctx, ref)
	if err != nil {
		return "", err
	}

	lines := []string{
		"# " + m.Name,
		"",
		fmt.Sprintf("> **Provider:** `%s` | **Resource:** `%s` | **Version:** `%s`", m.Provider, m.ResourceType, m.Version),
		"",
		m.Description,
		"",
		"## Variables",
		"",
		"| Name | Type | Required | Sensitive | Default | Description |",
		"| ---- | ---- | :------: | :-------: | ------- | ----------- |",
	}
	lines = append(lines, lo.Map(m.Variables, func(v Variable, _ int) string {
		def := "—"
		if !v.Default.IsNull() {
			def = fmt.Sprintf("`%s`", v.Default.Text())
		}
		return fmt.Sprintf("| `%s` | `%s` | %s | %s | %s | %s |",
			v.Name, v.Type, yesNo(v.Required), lockMark(v.Sensitive), def, v.Description)
	})...)

	lines = append(lines,
		"",
		"## Outputs",
		"",
		"| Name | Sensitive | Description |",
		"| ---- | :-------: | ----------- |",
	)
	lines = append(lines, lo.Map(m.Outputs, func(o Output, _ int) string {
		return fmt.Sprintf("| `%s` | %s | %s |", o.Name, lockMark(o.Sensitive), o.Description)
	})...)

	lines = append(lines, "", "## HCL Template", "", "```hcl", m.HCLTemplate, "```", "")

	if len(m.Examples) > 0 {
		lines = append(lines, "## Examples", "")
		for _, ex := range m.Examples {
			lines = append(lines, "### "+ex.Title, "", ex.Description, "", "```hcl", ex.HCLCode, "```", "")
		}
	}
	if len(m.Tags) > 0 {
		tagged := lo.Map(m.Tags, func(t string, _ int) string { return "`" + t + "`" })
		lines = append(lines, "## Tags", "", strings.Join(tagged, ", "), "")
	}

	lines = append(lines,
		"## Metadata",
		"",
		fmt.Sprintf("- **ID:** `%s`", m.ID),
		fmt.Sprintf("- **Created:** %s", m.CreatedAt.Format("2006-01-02T15:04:05Z07:00")),
		fmt.Sprintf("- **Downloads:** %d", m.DownloadCount),
	)
	return strings.Join(lines, "\n"), nil
}

func yesNo(b bool) string {
	if b {
		return "✅"
	}
	return "❌"
}

func lockMark(b bool) string {
	if b {
		return "🔒"
	}
	return "—"
}
