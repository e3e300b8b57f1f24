package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	body, err := fs.ReadFile(Migrations, files[0])
	require.NoError(t, err)

	sql := string(body)
	assert.True(t, strings.HasPrefix(sql, "-- +goose Up"))
	assert.Contains(t, sql, "-- +goose Down")
	for _, table := range []string{"users", "sessions", "jobs", "recruiting_firms", "recruiters"} {
		assert.Contains(t, sql, "CREATE TABLE "+table+" (")
	}
	assert.Contains(t, sql, "ON DELETE SET NULL")
}
