package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/upscalingqc/internal/project/snapshot"
	"github.com/agentstation/upscalingqc/internal/project/sqlite"
	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/sources"
	"github.com/agentstation/upscalingqc/pkg/table"
)

const doc = `
grids:
  Geogrid:
    blocked_wells:
      BW:
        logs:
          - {WELL: W2, ZONE: 1, PORO: 0.21}
          - {WELL: W1, ZONE: 2, PORO: 0.11}
      EMPTY:
        wells: []
    cells:
      - {ZONE: 1, PORO: 0.19}
wells:
  Drilled trajectory:
    log:
      - {WELL: W1, ZONE: 1, PORO: 0.2}
      - {WELL: W2, ZONE: 2, PORO: 0.1}
`

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	ctx := context.Background()

	d, err := snapshot.Parse([]byte(doc))
	require.NoError(t, err)

	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "project.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Import(ctx, d))
	return store
}

func TestBlockedWells(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	ok, err := store.HasBlockedWellSet(ctx, "Geogrid", "BW")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.HasBlockedWellSet(ctx, "Geogrid", "EMPTY")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.HasBlockedWellSet(ctx, "Geogrid", "Missing")
	require.NoError(t, err)
	assert.False(t, ok)

	names, err := store.BlockedWellNames(ctx, "Geogrid", "BW")
	require.NoError(t, err)
	assert.Equal(t, []string{"W1", "W2"}, names)

	names, err = store.BlockedWellNames(ctx, "Geogrid", "EMPTY")
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = store.BlockedWellNames(ctx, "Geogrid", "Missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestExtract(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	zone := sources.NewMapping(sources.FieldEntry{ID: "ZONE", Config: sources.FieldConfig{Codes: sources.Codes{
		{Key: "1", Value: "Upper"}, {Key: "2", Value: "Lower"},
	}}})
	well := sources.NewWellSource(sources.NewList("PORO"), zone)
	well.Wells.Names = []string{"W2"}

	got, err := store.Extract(ctx, well)
	require.NoError(t, err)
	assert.Equal(t, []string{"WELL", "ZONE", "PORO"}, got.Columns)
	assert.Equal(t, []table.Row{{"WELL": "W2", "ZONE": "Lower", "PORO": "0.1"}}, got.Rows)

	bw := &sources.BlockedWellSource{
		Context: sources.Context{Properties: sources.NewList("PORO"), Selectors: sources.NewList("ZONE")},
		Wells:   sources.BlockedWellRef{Grid: "Geogrid", BWName: "BW"},
	}
	got, err = store.Extract(ctx, bw)
	require.NoError(t, err)
	assert.Equal(t, []table.Row{
		{"WELL": "W2", "ZONE": "1", "PORO": "0.21"},
		{"WELL": "W1", "ZONE": "2", "PORO": "0.11"},
	}, got.Rows)

	grid := &sources.GridSource{
		Context: sources.Context{Properties: sources.NewList("PORO"), Selectors: sources.NewList("ZONE")},
		Grid:    "Geogrid",
	}
	got, err = store.Extract(ctx, grid)
	require.NoError(t, err)
	assert.Equal(t, []table.Row{{"ZONE": "1", "PORO": "0.19"}}, got.Rows)
}

func TestExtractNotFound(t *testing.T) {
	store := openStore(t)
	well := sources.NewWellSource(sources.NewList("PORO"), sources.NewList("ZONE"))
	well.Wells.Trajectory = "Planned trajectory"

	_, err := store.Extract(context.Background(), well)
	assert.True(t, errors.IsNotFound(err))
}

func TestImportIdempotent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	d, err := snapshot.Parse([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, store.Import(ctx, d))

	names, err := store.BlockedWellNames(ctx, "Geogrid", "BW")
	require.NoError(t, err)
	assert.Equal(t, []string{"W1", "W2"}, names)
}

func TestImportReplacesCoveredGroups(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "project.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	larger, err := snapshot.Parse([]byte(`
grids:
  Geogrid:
    blocked_wells:
      BW:
        wells: [W1, W2, W3]
        logs:
          - {WELL: W1, ZONE: 1, PORO: 0.5, PERM: 10}
          - {WELL: W2, ZONE: 1, PORO: 0.2, PERM: 20}
          - {WELL: W3, ZONE: 2, PORO: 0.3, PERM: 30}
    cells:
      - {ZONE: 1, PORO: 0.19}
  Finegrid:
    cells:
      - {ZONE: 1, PORO: 0.4}
`))
	require.NoError(t, err)
	require.NoError(t, store.Import(ctx, larger))

	smaller, err := snapshot.Parse([]byte(`
grids:
  Geogrid:
    blocked_wells:
      BW:
        wells: [W1]
        logs:
          - {WELL: W1, ZONE: 1, PORO: 0.6}
    cells:
      - {ZONE: 1, PORO: 0.19}
`))
	require.NoError(t, err)
	require.NoError(t, store.Import(ctx, smaller))

	names, err := store.BlockedWellNames(ctx, "Geogrid", "BW")
	require.NoError(t, err)
	assert.Equal(t, []string{"W1"}, names)

	bw := &sources.BlockedWellSource{
		Context: sources.Context{Properties: sources.NewList("PORO"), Selectors: sources.NewList("ZONE")},
		Wells:   sources.BlockedWellRef{Grid: "Geogrid", BWName: "BW"},
	}
	got, err := store.Extract(ctx, bw)
	require.NoError(t, err)
	assert.Equal(t, []table.Row{{"WELL": "W1", "ZONE": "1", "PORO": "0.6"}}, got.Rows)

	// PERM is gone from the replaced group
	bw.Properties = sources.NewList("PERM")
	got, err = store.Extract(ctx, bw)
	require.NoError(t, err)
	assert.NotContains(t, got.Columns, "PERM")

	// groups the second document does not mention are kept
	fine := &sources.GridSource{
		Context: sources.Context{Properties: sources.NewList("PORO"), Selectors: sources.NewList("ZONE")},
		Grid:    "Finegrid",
	}
	got, err = store.Extract(ctx, fine)
	require.NoError(t, err)
	assert.Equal(t, []table.Row{{"ZONE": "1", "PORO": "0.4"}}, got.Rows)
}
