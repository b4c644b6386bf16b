// SPDX-License-Identifier: MPL-2.0

package registry_test

import (
	"context"
	"strings"
	"testing"

	"github.com/blackroad/tfregistry/pkg/registry"
)

func TestGenerateDocs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := newTestRegistry(t)

	created, err := reg.Register(ctx, registry.RegisterRequest{
		Name:         "documented",
		Provider:     "aws",
		ResourceType: "aws_db_instance",
		Version:      "1.4.2",
		Description:  "A database module.",
		HCLTemplate:  `resource "aws_db_instance" "${var.identifier}" { identifier = "${var.identifier}" }`,
		Variables: []registry.Variable{
			{Name: "identifier", Type: "string", Description: "Instance identifier", Required: true},
			{Name: "password", Type: "string", Description: "Master password", Required: true, Sensitive: true},
			{Name: "engine", Type: "string", Description: "Engine", Default: registry.String("postgres")},
		},
		Outputs: []registry.Output{
			{Name: "endpoint", Description: "RDS endpoint", ValueExpression: "aws_db_instance.x.endpoint", Sensitive: true},
		},
		Examples: []registry.Example{
			{Title: "Basic", Description: "Minimal setup.", HCLCode: `module "db" { source = "blackroad/documented" }`},
		},
		Tags: []string{"aws", "database"},
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	docs, err := reg.GenerateDocs(ctx, "documented")
	if err != nil {
		t.Fatalf("GenerateDocs() error = %v", err)
	}

	for _, want := range []string{
		"# documented",
		"**Provider:** `aws`",
		"**Version:** `1.4.2`",
		"## Variables",
		"| `identifier` | `string` | ✅ | — | — | Instance identifier |",
		"| `password` | `string` | ✅ | 🔒 | — | Master password |",
		"| `engine` | `string` | ❌ | — | `postgres` | Engine |",
		"## Outputs",
		"| `endpoint` | 🔒 | RDS endpoint |",
		"## HCL Template",
		"```hcl",
		"## Examples",
		"### Basic",
		"## Tags",
		"`aws`, `database`",
		"## Metadata",
		"- **ID:** `" + created.ID + "`",
	} {
		if !strings.Contains(docs, want) {
			t.Errorf("docs missing %q", want)
		}
	}
}

func TestGenerateDocs_OmitsEmptySections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := newTestRegistry(t)

	_, err := reg.Register(ctx, registry.RegisterRequest{
		Name: "bare", Provider: "null", ResourceType: "null_resource",
		HCLTemplate: `resource "null_resource" "x" { }`,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	docs, err := reg.GenerateDocs(ctx, "bare")
	if err != nil {
		t.Fatalf("GenerateDocs() error = %v", err)
	}
	if strings.Contains(docs, "## Examples") {
		t.Error("docs contain Examples section for module without examples")
	}
	if strings.Contains(docs, "## Tags") {
		t.Error("docs contain Tags section for module without tags")
	}
}
