// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationResult is the outcome of a structural template check. Valid is
// true iff Errors is empty; warnings are informational and never affect
// validity.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// String renders the result in a stable, human-readable form used by
// InvalidTemplateError details and the CLI.
func (r ValidationResult) String() string {
	lines := []string{fmt.Sprintf("Valid: %t", r.Valid)}
	for _, e := range r.Errors {
		lines = append(lines, "  ERROR: "+e)
	}
	for _, w := range r.Warnings {
		lines = append(lines, "  WARN:  "+w)
	}
	return strings.Join(lines, "\n")
}

var (
	// blockPattern recognizes a top-level declaration keyword followed by a
	// quoted label, e.g. `resource "aws_instance"`.
	blockPattern = regexp.MustCompile(`\b(resource|data|module|locals|provider|terraform)\s+"[\w-]+"`)

	// interpPattern captures every ${...} interpolation token.
	interpPattern = regexp.MustCompile(`\$\{([^}]+)\}`)
)

// interpNamespaces are the reference prefixes an interpolation is expected to
// start with; anything else is flagged as suspicious.
var interpNamespaces = []string{"var.", "local.", "module.", "data.", "each.", "path.", "terraform."}

// Validate runs the heuristic structural checks over raw template text. It is
// deliberately not a grammar parser: it counts delimiters and matches line
// and token shapes, accepting any syntactically reasonable template and
// rejecting only clearly malformed structure. Registration validates
// automatically; this function is also usable standalone.
func Validate(template string) ValidationResult {
	var errs, warns []string

	if strings.Count(template, "{") != strings.Count(template, "}") {
		errs = append(errs, "unbalanced curly braces { }")
	}
	if strings.Count(template, "[") != strings.Count(template, "]") {
		errs = append(errs, "unbalanced square brackets [ ]")
	}
	if strings.Count(template, "(") != strings.Count(template, ")") {
		errs = append(errs, "unbalanced parentheses ( )")
	}

	if !blockPattern.MatchString(template) {
		warns = append(warns, "no resource/data/module block found — is this intentional?")
	}

	for _, line := range strings.Split(template, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "resource") {
			continue
		}
		if len(strings.Fields(trimmed)) < 3 {
			errs = append(errs, fmt.Sprintf("resource block missing labels: '%s'", trimmed))
		}
	}

	for _, m := range interpPattern.FindAllStringSubmatch(template, -1) {
		if !hasKnownNamespace(m[1]) {
			warns = append(warns, "suspicious interpolation (not var/local/module/data): "+m[0])
		}
	}

	if strings.Contains(template, "$${") {
		warns = append(warns, "found $${ — use $${ only for literal dollar sign escape")
	}

	if strings.TrimSpace(template) == "" {
		errs = append(errs, "HCL template is empty")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}

func hasKnownNamespace(expr string) bool {
	for _, ns := range interpNamespaces {
		if strings.HasPrefix(expr, ns) {
			return true
		}
	}
	return false
}
