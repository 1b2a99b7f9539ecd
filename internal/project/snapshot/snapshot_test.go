package snapshot_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/upscalingqc/internal/project/snapshot"
	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/sources"
	"github.com/agentstation/upscalingqc/pkg/table"
)

const doc = `
grids:
  Geogrid:
    blocked_wells:
      BW:
        wells: [W2, W1]
        logs:
          - {WELL: W1, ZONE: 1, PORO: 0.21}
          - {WELL: W3, ZONE: 2, PORO: 0.11}
      BW2:
        logs:
          - {WELL: W3, ZONE: 1, PORO: 0.2}
          - {WELL: W1, ZONE: 1, PORO: 0.2}
    cells:
      - {ZONE: 1, PORO: 0.19}
      - {ZONE: 2, PORO: 0.12}
wells:
  Drilled trajectory:
    log:
      - {WELL: W1, ZONE: 1, PORO: 0.2}
      - {WELL: W2, ZONE: 2, PORO: 0.1}
`

func openProject(t *testing.T) *snapshot.Project {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	p, err := snapshot.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func zoneCodes() sources.Fields {
	return sources.NewMapping(sources.FieldEntry{ID: "ZONE", Config: sources.FieldConfig{Codes: sources.Codes{
		{Key: "1", Value: "Upper"}, {Key: "2", Value: "Lower"},
	}}})
}

func TestBlockedWellNames(t *testing.T) {
	p := openProject(t)
	ctx := context.Background()

	names, err := p.BlockedWellNames(ctx, "Geogrid", "BW")
	require.NoError(t, err)
	assert.Equal(t, []string{"W2", "W1"}, names)

	names, err = p.BlockedWellNames(ctx, "Geogrid", "BW2")
	require.NoError(t, err)
	assert.Equal(t, []string{"W1", "W3"}, names, "derived from logs")

	_, err = p.BlockedWellNames(ctx, "Geogrid", "Missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestHasBlockedWellSet(t *testing.T) {
	p := openProject(t)
	ctx := context.Background()

	tests := []struct {
		grid, bw string
		want     bool
	}{
		{"Geogrid", "BW", true},
		{"Geogrid", "BW3", false},
		{"Other", "BW", false},
	}
	for _, tt := range tests {
		ok, err := p.HasBlockedWellSet(ctx, tt.grid, tt.bw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "%s/%s", tt.grid, tt.bw)
	}
}

func TestExtract(t *testing.T) {
	p := openProject(t)
	ctx := context.Background()

	well := sources.NewWellSource(sources.NewList("PORO"), zoneCodes())
	well.Wells.Names = []string{"W1"}
	got, err := p.Extract(ctx, well)
	require.NoError(t, err)
	assert.Equal(t, []table.Row{{"WELL": "W1", "ZONE": "Upper", "PORO": "0.2"}}, got.Rows)

	bw := &sources.BlockedWellSource{
		Context: sources.Context{Properties: sources.NewList("PORO"), Selectors: sources.NewList("ZONE")},
		Wells:   sources.BlockedWellRef{Grid: "Geogrid", BWName: "BW", Names: []string{"W1", "W2"}},
	}
	got, err = p.Extract(ctx, bw)
	require.NoError(t, err)
	assert.Equal(t, []string{"WELL", "ZONE", "PORO"}, got.Columns)
	assert.Equal(t, []table.Row{{"WELL": "W1", "ZONE": "1", "PORO": "0.21"}}, got.Rows)

	grid := &sources.GridSource{
		Context: sources.Context{Properties: sources.NewList("PORO"), Selectors: zoneCodes()},
		Grid:    "Geogrid",
	}
	got, err = p.Extract(ctx, grid)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, "Lower", got.Rows[1]["ZONE"])
}

func TestExtractNotFound(t *testing.T) {
	p := openProject(t)
	well := sources.NewWellSource(sources.NewList("PORO"), sources.NewList("ZONE"))
	well.Wells.Logrun = "log2"

	_, err := p.Extract(context.Background(), well)
	assert.True(t, errors.IsNotFound(err))
}

func TestParseJSON(t *testing.T) {
	d, err := snapshot.Parse([]byte(`{"grids": {"G": {"blocked_wells": {"BW": {"wells": ["A"]}}}}, "wells": {}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, d.Grids["G"].BlockedWells["BW"].Wells)
}

func TestParseUnknownField(t *testing.T) {
	_, err := snapshot.Parse([]byte("grids: {}\nwellz: {}\n"))
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}
