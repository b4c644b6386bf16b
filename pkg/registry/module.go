// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"fmt"
	"strings"
	"time"

	goversion "github.com/hashicorp/go-version"
)

// Providers is the fixed set of providers a module may target.
var Providers = map[string]bool{
	"aws":        true,
	"gcp":        true,
	"azure":      true,
	"kubernetes": true,
	"helm":       true,
	"null":       true,
}

// VariableTypes is the fixed set of accepted variable type expressions,
// including the parameterized collection variants.
var VariableTypes = map[string]bool{
	"string":       true,
	"number":       true,
	"bool":         true,
	"list":         true,
	"map":          true,
	"object":       true,
	"list(string)": true,
	"list(number)": true,
	"map(string)":  true,
	"map(any)":     true,
	"any":          true,
}

// Variable is a typed input declared by a module template. A variable with a
// non-null Default is effectively optional; Required is tracked independently
// so a caller can force an input even when a default exists. Sensitive only
// affects documentation rendering, never substitution.
type Variable struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     Value  `json:"default"`
	Required    bool   `json:"required"`
	Sensitive   bool   `json:"sensitive"`
}

// ToHCL renders the variable as an HCL variable declaration block.
func (v Variable) ToHCL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "variable %q {\n", v.Name)
	fmt.Fprintf(&b, "  type        = %s\n", v.Type)
	if v.Description != "" {
		fmt.Fprintf(&b, "  description = %q\n", v.Description)
	}
	if !v.Default.IsNull() {
		fmt.Fprintf(&b, "  default     = %s\n", quoteForHCL(v.Default))
	}
	if v.Sensitive {
		b.WriteString("  sensitive   = true\n")
	}
	b.WriteString("}")
	return b.String()
}

// Output is a value a module exposes after apply. ValueExpression is an
// opaque template-language expression; the registry never evaluates it.
type Output struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	ValueExpression string `json:"value_expression"`
	Sensitive       bool   `json:"sensitive"`
}

// ToHCL renders the output as an HCL output declaration block.
func (o Output) ToHCL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "output %q {\n", o.Name)
	if o.Description != "" {
		fmt.Fprintf(&b, "  description = %q\n", o.Description)
	}
	fmt.Fprintf(&b, "  value       = %s\n", o.ValueExpression)
	if o.Sensitive {
		b.WriteString("  sensitive   = true\n")
	}
	b.WriteString("}")
	return b.String()
}

// Example is a documentary usage snippet attached to a module. Examples are
// never processed by the rendering engine.
type Example struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	HCLCode     string `json:"hcl_code"`
}

// Module is a named, versioned template bundle: raw template text with
// ${var.<name>} placeholders plus the variable/output schema describing it.
//
// Modules are created by registration and mutated only by download-count
// increments and explicit version bumps; template and schema content is
// immutable once registered.
type Module struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Provider      string     `json:"provider"`
	ResourceType  string     `json:"resource_type"`
	Version       string     `json:"version"`
	Description   string     `json:"description"`
	HCLTemplate   string     `json:"hcl_template"`
	Variables     []Variable `json:"variables"`
	Outputs       []Output   `json:"outputs"`
	Examples      []Example  `json:"examples"`
	Tags          []string   `json:"tags"`
	CreatedAt     time.Time  `json:"created_at"`
	DownloadCount int64      `json:"download_count"`
}

// BumpPart selects which component of a semantic version to increment.
type BumpPart string

const (
	BumpMajor BumpPart = "major"
	BumpMinor BumpPart = "minor"
	BumpPatch BumpPart = "patch"
)

// bumpVersion parses a major.minor.patch version string, increments the
// selected component, and zeroes everything less significant.
func bumpVersion(current string, part BumpPart) (string, error) {
	v, err := goversion.NewVersion(current)
	if err != nil {
		return "", fmt.Errorf("parse version %q: %w", current, err)
	}
	segs := v.Segments()
	if len(segs) < 3 {
		return "", fmt.Errorf("version %q is not a major.minor.patch triple", current)
	}
	major, minor, patch := segs[0], segs[1], segs[2]
	switch part {
	case BumpMajor:
		major++
		minor, patch = 0, 0
	case BumpMinor:
		minor++
		patch = 0
	case BumpPatch, "":
		patch++
	default:
		return "", fmt.Errorf("unknown version part %q (want major, minor, or patch)", part)
	}
	return fmt.Sprintf("%d.%d.%d", major, minor, patch), nil
}
