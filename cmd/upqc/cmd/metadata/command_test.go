package metadata_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metadatacmd "github.com/agentstation/upscalingqc/cmd/upqc/cmd/metadata"
	"github.com/agentstation/upscalingqc/internal/cmd/application"
	"github.com/agentstation/upscalingqc/internal/project/snapshot"
	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/logging"
	"github.com/agentstation/upscalingqc/pkg/metadata"
	"github.com/agentstation/upscalingqc/pkg/project"
)

func execute(t *testing.T, format string, args ...string) (string, string, error) {
	t.Helper()
	snap, err := snapshot.Open("../testdata/snapshot.yaml")
	require.NoError(t, err)
	app := &application.Mock{
		HostFunc:         func(context.Context) (project.Host, error) { return snap, nil },
		OutputFormatFunc: func() string { return format },
	}

	var stdout, stderr bytes.Buffer
	cmd := metadatacmd.NewCommand(app)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestMetadataJSON(t *testing.T) {
	logging.DisableLoggingForTest(t)

	stdout, _, err := execute(t, "json", "--qc", "../testdata/qc.yaml")
	require.NoError(t, err)

	var rec metadata.Record
	require.NoError(t, json.Unmarshal([]byte(stdout), &rec))
	assert.Equal(t, []string{"PORO"}, rec.Properties)
	assert.Equal(t, []string{"ZONE"}, rec.Selectors)
	assert.Equal(t, []string{"W1", "W2"}, rec.WellNames)
	require.Len(t, rec.RawLogNames, 1)
	assert.Equal(t, "Wells", rec.RawLogNames[0].DisplayName)
	require.Len(t, rec.BWNames, 1)
	assert.Equal(t, "Blocked wells", rec.BWNames[0].DisplayName)
	require.Len(t, rec.GridNames, 1)
	assert.Equal(t, "Grid", rec.GridNames[0].DisplayName)

	zone, ok := rec.SelectorValuesSorted.Get("ZONE")
	require.True(t, ok)
	assert.Equal(t, []string{"Upper", "Lower"}, zone)
}

func TestMetadataYAML(t *testing.T) {
	logging.DisableLoggingForTest(t)

	stdout, _, err := execute(t, "yaml", "--qc", "../testdata/qc.yaml")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, []any{"W1", "W2"}, doc["well_names"])
	assert.Contains(t, doc, "selector_values_sorted")
}

func TestMetadataTable(t *testing.T) {
	logging.DisableLoggingForTest(t)

	stdout, stderr, err := execute(t, "table", "--qc", "../testdata/qc.yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ZONE: Upper, Lower")
	assert.Contains(t, stdout, "Geogrid: Grid")
	assert.Empty(t, stderr)
}

func TestMetadataNoCodingWarning(t *testing.T) {
	logging.DisableLoggingForTest(t)

	stdout, stderr, err := execute(t, "table", "--qc", "../testdata/qc_no_coding.yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ZONE: ")
	assert.Contains(t, stderr, "no coding for ZONE")
}

func TestMetadataInconsistent(t *testing.T) {
	logging.DisableLoggingForTest(t)

	stdout, _, err := execute(t, "json", "--qc", "../testdata/qc_property_mismatch.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsInconsistent(err))
	assert.Empty(t, stdout)
}

func TestTableData(t *testing.T) {
	rec := &metadata.Record{
		Properties: []string{"PORO", "PERM"},
		Selectors:  []string{"ZONE"},
		WellNames:  []string{"W1"},
		RawLogNames: []metadata.WellEntry{
			{Logrun: "log", Trajectory: "Drilled trajectory", DisplayName: "Wells_log"},
			{Logrun: "log2", Trajectory: "Drilled trajectory", DisplayName: "Wells_log2"},
		},
		BWNames:   []metadata.BlockedWellEntry{{Name: "BW", Grid: "Geogrid", DisplayName: "Blocked wells"}},
		GridNames: []metadata.GridEntry{{Name: "Geogrid", DisplayName: "Grid"}},
		SelectorValuesSorted: metadata.SelectorValues{
			{Selector: "ZONE", Values: []string{}},
		},
	}

	data := metadatacmd.TableData(rec)
	assert.Equal(t, []string{"Field", "Value"}, data.Headers)
	assert.Equal(t, [][]string{
		{"Properties", "PORO, PERM"},
		{"Selectors", "ZONE"},
		{"Well Names", "W1"},
		{"Raw Logs", "log (Drilled trajectory): Wells_log"},
		{"Raw Logs", "log2 (Drilled trajectory): Wells_log2"},
		{"Blocked Wells", "BW <- Geogrid: Blocked wells"},
		{"Grids", "Geogrid: Grid"},
		{"Selector Values", "ZONE: "},
	}, data.Rows)
}
