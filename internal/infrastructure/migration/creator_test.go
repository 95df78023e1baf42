package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase preserved", "create_leases", "create_leases"},
		{"uppercase lowered", "CreateLeases", "createleases"},
		{"spaces collapsed", "add payment  types", "add_payment_types"},
		{"dashes converted", "add-arrears-view", "add_arrears_view"},
		{"special chars dropped", "fix (again)!", "fix_again"},
		{"trailing separator trimmed", "add_index_", "add_index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Create Lease Agreements", "lease agreements table")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.Contains(t, mf.UpPath, "create_lease_agreements.up.sql")
	assert.Contains(t, mf.DownPath, "create_lease_agreements.down.sql")

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(up), "lease agreements table"))

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(down), "Rollback"))
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory is empty", func(t *testing.T) {
		migrations, err := ListMigrations("/nonexistent/migrations")
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("lists up migrations only", func(t *testing.T) {
		dir := t.TempDir()
		_, err := CreateMigration(dir, "first", "")
		require.NoError(t, err)

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		require.Len(t, migrations, 1)
		assert.Contains(t, migrations[0], "first")
	})
}
