// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/blackroad/tfregistry/pkg/registry"
)

// parseVarFlags converts repeated --var key=value flags into a substitution
// value table. Values arrive as strings; the engine performs no type
// coercion against the declared variable type.
func parseVarFlags(flags []string) (map[string]registry.Value, error) {
	values := make(map[string]registry.Value, len(flags))
	for _, kv := range flags {
		key, val, found := strings.Cut(kv, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --var %q (want key=value)", kv)
		}
		values[key] = registry.String(val)
	}
	return values, nil
}
