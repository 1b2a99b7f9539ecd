package table_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/table"
)

func TestAppendAddsColumns(t *testing.T) {
	tbl := table.New("WELL")
	tbl.Append(table.Row{"WELL": "W1", "PORO": "0.2", "PERM": "100"})
	tbl.Append(table.Row{"WELL": "W2", "ZONE": "Upper"})

	assert.Equal(t, []string{"WELL", "PERM", "PORO", "ZONE"}, tbl.Columns)
	assert.Equal(t, 2, tbl.Len())
}

func TestTag(t *testing.T) {
	tbl := table.New("WELL", "name")
	tbl.Append(table.Row{"WELL": "W1", "name": "stale"})
	tbl.Append(table.Row{"WELL": "W2"})

	tbl.Tag("name", "BW")
	tbl.Tag("grid", "Geogrid")

	assert.Equal(t, []string{"WELL", "name", "grid"}, tbl.Columns)
	for _, row := range tbl.Rows {
		assert.Equal(t, "BW", row["name"])
		assert.Equal(t, "Geogrid", row["grid"])
	}
}

func TestProject(t *testing.T) {
	tbl := table.New("WELL", "PORO", "PERM", "X")
	tbl.Append(table.Row{"WELL": "W1", "PORO": "0.2", "PERM": "100", "X": "1"})

	got := tbl.Project("WELL", "PERM", "MISSING")
	assert.Equal(t, []string{"WELL", "PERM"}, got.Columns)
	assert.Equal(t, table.Row{"WELL": "W1", "PERM": "100"}, got.Rows[0])
}

func TestConcat(t *testing.T) {
	a := table.New("WELL", "PORO", "logrun")
	a.Append(table.Row{"WELL": "W1", "PORO": "0.1", "logrun": "log"})
	b := table.New("WELL", "PERM", "logrun")
	b.Append(table.Row{"WELL": "W1", "PERM": "5", "logrun": "log2"})

	got := table.Concat(a, nil, b)
	assert.Equal(t, []string{"WELL", "PORO", "logrun", "PERM"}, got.Columns)
	require.Equal(t, 2, got.Len())

	var buf bytes.Buffer
	require.NoError(t, got.WriteCSV(&buf))
	assert.Equal(t, "WELL,PORO,logrun,PERM\nW1,0.1,log,\nW1,,log2,5\n", buf.String())
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, table.Concat().WriteCSV(&buf))
	assert.Empty(t, buf.String())
}

func TestReadCSV(t *testing.T) {
	tbl := table.New("WELL", "ZONE")
	tbl.Append(table.Row{"WELL": "W1", "ZONE": "Upper, top"})

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))

	got, err := table.ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, tbl, got)
}

func TestContract(t *testing.T) {
	tbl := table.New("WELL", "PORO", "ZONE")

	tests := []struct {
		name     string
		required []string
		missing  []string
	}{
		{name: "satisfied", required: []string{"WELL", "PORO"}},
		{name: "one missing", required: []string{"WELL", "PERM"}, missing: []string{"PERM"}},
		{name: "all missing", required: []string{"A", "B"}, missing: []string{"A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := table.Contract{Kind: "wells", Source: "log (Drilled trajectory)", Required: tt.required}
			err := c.Check(tbl)
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsSchemaDrift(err))
			var drift *errors.SchemaDriftError
			require.ErrorAs(t, err, &drift)
			assert.Equal(t, tt.missing, drift.Missing)
			assert.Equal(t, "wells", drift.Kind)
		})
	}
}
