package sources_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/sources"
)

const fullPayload = `
wells:
  - properties: [PORO, PERM]
    selectors:
      ZONE:
        codes:
          2: Lower
          1: Upper
      FACIES: Facies
    wells:
      names: [W1, W2]
      logrun: log
      trajectory: Drilled trajectory
  - properties: [PERM, PORO]
    selectors: [ZONE, FACIES]
    wells:
      logrun: log2
blockedwells:
  - properties: [PORO, PERM]
    selectors: [FACIES, ZONE]
    wells:
      grid: Geogrid
      bwname: BW
grid:
  - properties: [PORO, PERM]
    selectors: [ZONE, FACIES]
    grid: Geogrid
`

func TestParse(t *testing.T) {
	cfg, err := sources.Parse([]byte(fullPayload))
	require.NoError(t, err)

	require.Len(t, cfg.Wells, 2)
	require.Len(t, cfg.BlockedWells, 1)
	require.Len(t, cfg.Grids, 1)

	first := cfg.Wells[0]
	assert.Equal(t, []string{"PORO", "PERM"}, first.Properties.IDs())
	assert.Equal(t, sources.KeyedMapping, first.Selectors.Kind())
	assert.Equal(t, []string{"ZONE", "FACIES"}, first.Selectors.IDs())
	assert.Equal(t, []string{"W1", "W2"}, first.Wells.Names)
	assert.Equal(t, "log", first.Wells.Logrun)
	assert.Equal(t, "Drilled trajectory", first.Wells.Trajectory)

	zone, ok := first.Selectors.Config("ZONE")
	require.True(t, ok)
	assert.Equal(t, sources.Codes{{Key: "2", Value: "Lower"}, {Key: "1", Value: "Upper"}}, zone.Codes)

	facies, ok := first.Selectors.Config("FACIES")
	require.True(t, ok)
	assert.Equal(t, "Facies", facies.Name)
	assert.False(t, facies.HasCodes())

	second := cfg.Wells[1]
	assert.Equal(t, "log2", second.Wells.Logrun)
	assert.Equal(t, "Drilled trajectory", second.Wells.Trajectory, "default trajectory")
	assert.Empty(t, second.Wells.Names)

	bw := cfg.BlockedWells[0]
	assert.Equal(t, "Geogrid", bw.Wells.Grid)
	assert.Equal(t, "BW", bw.Wells.BWName)
	assert.Equal(t, "BW <- Geogrid", bw.Label())

	assert.Equal(t, "Geogrid", cfg.Grids[0].Grid)
}

func TestParseJSON(t *testing.T) {
	payload := `{"wells": [{"properties": ["PORO"], "selectors": {"ZONE": {"codes": {"0": "A", "1": "B"}}}}], "grid": [], "blockedwells": []}`

	cfg, err := sources.Parse([]byte(payload))
	require.NoError(t, err)
	require.Len(t, cfg.Wells, 1)
	assert.Equal(t, "log", cfg.Wells[0].Wells.Logrun)
	assert.Equal(t, "Drilled trajectory", cfg.Wells[0].Wells.Trajectory)

	zone, ok := cfg.Wells[0].Selectors.Config("ZONE")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, zone.Codes.Values())
}

func TestParseNumericWellNames(t *testing.T) {
	payload := `
wells:
  - properties: [PORO]
    selectors: [ZONE]
    wells:
      names: [1234, "31/2-1"]
grid: []
blockedwells: []
`
	cfg, err := sources.Parse([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, []string{"1234", "31/2-1"}, cfg.Wells[0].Wells.Names)
}

func TestParseShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		path    string
	}{
		{
			name:    "missing top-level key",
			payload: "wells: [{properties: [A], selectors: [B]}]\ngrid: []\n",
			path:    "blockedwells",
		},
		{
			name:    "unknown top-level key",
			payload: "wells: [{properties: [A], selectors: [B]}]\ngrid: []\nblockedwells: []\nextra: 1\n",
			path:    "",
		},
		{
			name:    "no well source",
			payload: "wells: []\ngrid: []\nblockedwells: []\n",
			path:    "wells",
		},
		{
			name:    "missing properties",
			payload: "wells: [{selectors: [B]}]\ngrid: []\nblockedwells: []\n",
			path:    "wells[0].properties",
		},
		{
			name:    "unknown well ref field",
			payload: "wells: [{properties: [A], selectors: [B], wells: {trajectry: x}}]\ngrid: []\nblockedwells: []\n",
			path:    "wells[0].wells",
		},
		{
			name:    "properties is a scalar",
			payload: "wells: [{properties: PORO, selectors: [B]}]\ngrid: []\nblockedwells: []\n",
			path:    "wells[0].properties",
		},
		{
			name:    "missing bwname",
			payload: "wells: [{properties: [A], selectors: [B]}]\ngrid: []\nblockedwells: [{properties: [A], selectors: [B], wells: {grid: G}}]\n",
			path:    "blockedwells[0].wells.bwname",
		},
		{
			name:    "missing grid name",
			payload: "wells: [{properties: [A], selectors: [B]}]\ngrid: [{properties: [A], selectors: [B]}]\nblockedwells: []\n",
			path:    "grid[0].grid",
		},
		{
			name:    "empty grid name",
			payload: "wells: [{properties: [A], selectors: [B]}]\ngrid: [{properties: [A], selectors: [B], grid: ''}]\nblockedwells: []\n",
			path:    "grid[0].grid",
		},
		{
			name:    "unknown field config key",
			payload: "wells: [{properties: [A], selectors: {ZONE: {order: [1]}}}]\ngrid: []\nblockedwells: []\n",
			path:    "wells[0].selectors.ZONE",
		},
		{
			name:    "codes is a list",
			payload: "wells: [{properties: [A], selectors: {ZONE: {codes: [a, b]}}}]\ngrid: []\nblockedwells: []\n",
			path:    "wells[0].selectors.ZONE.codes",
		},
		{
			name:    "top level is a list",
			payload: "- a\n- b\n",
			path:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sources.Parse([]byte(tt.payload))
			require.Error(t, err)

			var shape *errors.ConfigShapeError
			require.ErrorAs(t, err, &shape)
			assert.Equal(t, tt.path, shape.Path)
			assert.True(t, errors.IsConfigShape(err))
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := sources.Parse([]byte("wells: [unclosed"))
	require.Error(t, err)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseEmpty(t *testing.T) {
	_, err := sources.Parse(nil)
	assert.True(t, errors.IsConfigShape(err))
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullPayload), 0o644))

	cfg, err := sources.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Sources(), 4)

	_, err = sources.ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestConfigSources(t *testing.T) {
	cfg, err := sources.Parse([]byte(fullPayload))
	require.NoError(t, err)

	var refs []string
	for _, e := range cfg.Sources() {
		refs = append(refs, e.Ref())
	}
	assert.Equal(t, []string{"wells[0]", "wells[1]", "blockedwells[0]", "grid[0]"}, refs)
	assert.Len(t, cfg.WellScoped(), 3)

	first, ok := cfg.FirstWellSource()
	assert.True(t, ok)
	assert.Same(t, cfg.Wells[0], first)
}
