package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRun_Usage(t *testing.T) {
	log := zap.NewNop()

	assert.ErrorIs(t, run(log, "sideways", nil, t.TempDir(), false), errUsage)
	assert.ErrorIs(t, run(log, "step", nil, t.TempDir(), false), errUsage)
	assert.ErrorIs(t, run(log, "goto", nil, t.TempDir(), false), errUsage)
	assert.ErrorIs(t, run(log, "create", nil, t.TempDir(), false), errUsage)
}

func TestRun_CreateAndList(t *testing.T) {
	dir := t.TempDir()
	log := zap.NewNop()

	require.NoError(t, run(log, "create", []string{"add gift cards", "Gift card balances"}, dir, false))
	require.NoError(t, run(log, "create", []string{"add_wishlists"}, dir, false))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	ups, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	require.NoError(t, err)
	assert.Len(t, ups, 2)

	require.NoError(t, run(log, "list", nil, dir, false))
}

func TestMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, dir, migrationsDir(dir))

	abs, err := filepath.Abs("relative/migrations")
	require.NoError(t, err)
	assert.Equal(t, abs, migrationsDir("relative/migrations"))
}
