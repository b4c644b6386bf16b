// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNameExists is reported when registration collides with an existing
// module name. The storage layer maps its uniqueness-constraint violation to
// this sentinel so concurrent registrations cannot race past an
// application-level check.
var ErrNameExists = errors.New("module name already registered")

// NotFoundError is returned when a module reference (ID or name) resolves to
// no record. Delete never returns it; a miss there is a boolean result.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("module not found: %q", e.Ref)
}

// InvalidProviderError is returned when registration names a provider outside
// the fixed enumeration. Nothing is persisted.
type InvalidProviderError struct {
	Provider string
}

func (e *InvalidProviderError) Error() string {
	valid := make([]string, 0, len(Providers))
	for p := range Providers {
		valid = append(valid, p)
	}
	sort.Strings(valid)
	return fmt.Sprintf("unknown provider %q (valid: %s)", e.Provider, strings.Join(valid, ", "))
}

// InvalidTemplateError is returned when a template fails structural
// validation at registration time. Result carries the full error list so the
// caller can report every problem at once.
type InvalidTemplateError struct {
	Result ValidationResult
}

func (e *InvalidTemplateError) Error() string {
	return "invalid HCL template:\n" + e.Result.String()
}

// MissingVariablesError is returned by Render and ExportPlan when required
// variables have neither a default nor a supplied value. Names lists every
// missing variable, not just the first, so one round trip fixes them all.
type MissingVariablesError struct {
	Module string
	Names  []string
}

func (e *MissingVariablesError) Error() string {
	return fmt.Sprintf("missing required variables for %q: %s", e.Module, strings.Join(e.Names, ", "))
}
