package dbx

import (
	"fmt"
	"strings"
)

// BuildUpdateClause turns a sparse field map into a parameterized SET list.
//
// Only keys listed in allowed are considered, and they are emitted in
// allowed order with placeholders starting at $1. A key present with a nil
// value is kept and binds NULL; an absent key is skipped. When no allowed
// key is present the clause is empty and values is empty too, which callers
// must treat as a no-op update.
func BuildUpdateClause(allowed []string, input map[string]any) (string, []any) {
	parts := make([]string, 0, len(allowed))
	values := make([]any, 0, len(allowed))

	for _, field := range allowed {
		v, ok := input[field]
		if !ok {
			continue
		}
		values = append(values, v)
		parts = append(parts, fmt.Sprintf("%s = $%d", field, len(values)))
	}

	return strings.Join(parts, ", "), values
}
