package project_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/upscalingqc/internal/project"
	"github.com/agentstation/upscalingqc/internal/project/snapshot"
	"github.com/agentstation/upscalingqc/internal/project/sqlite"
	"github.com/agentstation/upscalingqc/pkg/errors"
)

func TestIsSQLite(t *testing.T) {
	for path, want := range map[string]bool{
		"project.db":      true,
		"project.SQLite":  true,
		"project.sqlite3": true,
		"project.yaml":    false,
		"project.json":    false,
		"project":         false,
	} {
		assert.Equal(t, want, project.IsSQLite(path), path)
	}
}

func TestOpenAndConvert(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(src, []byte("grids:\n  Geogrid:\n    blocked_wells:\n      BW:\n        wells: [W1]\n"), 0o644))

	host, err := project.Open(ctx, src)
	require.NoError(t, err)
	assert.IsType(t, &snapshot.Project{}, host)
	require.NoError(t, host.Close())

	dst := filepath.Join(dir, "project.db")
	require.NoError(t, project.Convert(ctx, src, dst))

	host, err = project.Open(ctx, dst)
	require.NoError(t, err)
	defer func() { _ = host.Close() }()
	assert.IsType(t, &sqlite.Store{}, host)

	names, err := host.BlockedWellNames(ctx, "Geogrid", "BW")
	require.NoError(t, err)
	assert.Equal(t, []string{"W1"}, names)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := project.Open(context.Background(), "")
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
