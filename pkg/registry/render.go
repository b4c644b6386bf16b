// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"fmt"
	"maps"
	"strings"
)

// Render resolves a module by reference, merges variable defaults with the
// caller-supplied values, and substitutes every ${var.<name>} placeholder in
// the template with the merged value's textual form.
//
// Required variables with neither a default nor a supplied value fail the
// whole render with a MissingVariablesError naming all of them. Supplied
// values always win over defaults; no type coercion against the declared
// variable type is performed. Placeholders for variables that end up with no
// value at all pass through verbatim.
//
// On success the module's download counter is incremented atomically in
// storage; rendering is the sole trigger for that counter.
func (r *Registry) Render(ctx context.Context, ref string, values map[string]Value) (string, error) {
	m, err := r.store.Get(ctx, ref)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, v := range m.Variables {
		if !v.Required || !v.Default.IsNull() {
			continue
		}
		if _, ok := values[v.Name]; !ok {
			missing = append(missing, v.Name)
		}
	}
	if len(missing) > 0 {
		return "", &MissingVariablesError{Module: m.Name, Names: missing}
	}

	merged := make(map[string]Value, len(m.Variables)+len(values))
	for _, v := range m.Variables {
		if !v.Default.IsNull() {
			merged[v.Name] = v.Default
		}
	}
	maps.Copy(merged, values)

	rendered := m.HCLTemplate
	for name, val := range merged {
		rendered = strings.ReplaceAll(rendered, "${var."+name+"}", val.Text())
	}

	if err := r.store.IncrementDownloads(ctx, m.ID); err != nil {
		return "", fmt.Errorf("record download of %q: %w", m.Name, err)
	}
	return rendered, nil
}
