package dbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUpdateClause(t *testing.T) {
	allowed := []string{"name", "email", "notes"}

	tests := []struct {
		name       string
		allowed    []string
		input      map[string]any
		wantClause string
		wantValues []any
	}{
		{
			name:       "single field",
			allowed:    allowed,
			input:      map[string]any{"name": "Alice"},
			wantClause: "name = $1",
			wantValues: []any{"Alice"},
		},
		{
			name:       "allow-list order wins over input order",
			allowed:    allowed,
			input:      map[string]any{"email": "a@b.com", "name": "Alice"},
			wantClause: "name = $1, email = $2",
			wantValues: []any{"Alice", "a@b.com"},
		},
		{
			name:       "explicit nil is kept",
			allowed:    allowed,
			input:      map[string]any{"notes": nil},
			wantClause: "notes = $1",
			wantValues: []any{nil},
		},
		{
			name:       "unknown fields ignored",
			allowed:    allowed,
			input:      map[string]any{"name": "Alice", "user_id": "someone-else"},
			wantClause: "name = $1",
			wantValues: []any{"Alice"},
		},
		{
			name:       "numeric values",
			allowed:    []string{"count", "label"},
			input:      map[string]any{"count": 42, "label": "x"},
			wantClause: "count = $1, label = $2",
			wantValues: []any{42, "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, values := BuildUpdateClause(tt.allowed, tt.input)
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantValues, values)
		})
	}
}

func TestBuildUpdateClause_NoEligibleFields(t *testing.T) {
	clause, values := BuildUpdateClause([]string{"name"}, map[string]any{})
	assert.Empty(t, clause)
	assert.Empty(t, values)

	clause, values = BuildUpdateClause([]string{"name"}, nil)
	assert.Empty(t, clause)
	assert.Empty(t, values)
}
