package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFileName(t *testing.T) {
	dir := filepath.Join("..", "..", "internal", "adapters", "repository", "postgres", "migrations")

	name, err := migrationFileName(dir, "create_ballots.up")
	require.NoError(t, err)
	assert.Equal(t, "000001_create_ballots.up.sql", name)

	name, err = migrationFileName(dir, "create_ballots.down")
	require.NoError(t, err)
	assert.Equal(t, "000001_create_ballots.down.sql", name)

	_, err = migrationFileName(dir, "create_polls.up")
	assert.Error(t, err)
}

func TestMigrationFileContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000002_add_index.up.sql"), []byte("SELECT 1;"), 0o644))

	content, err := migrationFileContent(dir, "add_index.up")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", string(content))
}
