package validate_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/upscalingqc/cmd/upqc/cmd/validate"
	"github.com/agentstation/upscalingqc/internal/cmd/application"
	"github.com/agentstation/upscalingqc/internal/project/snapshot"
	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/logging"
	"github.com/agentstation/upscalingqc/pkg/project"
	"github.com/agentstation/upscalingqc/pkg/reconcile"
)

func newMock(t *testing.T, format string) *application.Mock {
	t.Helper()
	snap, err := snapshot.Open("../testdata/snapshot.yaml")
	require.NoError(t, err)
	return &application.Mock{
		HostFunc:         func(context.Context) (project.Host, error) { return snap, nil },
		OutputFormatFunc: func() string { return format },
	}
}

func execute(t *testing.T, app *application.Mock, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := validate.NewCommand(app)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestValidateConsistent(t *testing.T) {
	logging.DisableLoggingForTest(t)

	stdout, _, err := execute(t, newMock(t, "json"), "--qc", "../testdata/qc.yaml")
	require.NoError(t, err)

	var res validate.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.True(t, res.Valid)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, []string{"W1", "W2"}, res.WellNames)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Checks, len(reconcile.Checks()))
	for _, o := range res.Checks {
		assert.Equal(t, reconcile.StatusPassed, o.Status, o.Check)
	}
}

func TestValidatePropertyMismatch(t *testing.T) {
	logging.DisableLoggingForTest(t)

	stdout, _, err := execute(t, newMock(t, "json"), "--qc", "../testdata/qc_property_mismatch.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsInconsistent(err))

	var res validate.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.False(t, res.Valid)
	assert.Empty(t, res.WellNames)

	statuses := make(map[reconcile.Check]reconcile.Status)
	for _, o := range res.Checks {
		statuses[o.Check] = o.Status
	}
	assert.Equal(t, reconcile.StatusPassed, statuses[reconcile.CheckBlockedWellSet])
	assert.Equal(t, reconcile.StatusFailed, statuses[reconcile.CheckPropertySet])
	assert.Equal(t, reconcile.StatusSkipped, statuses[reconcile.CheckWellSet])
}

func TestValidateTable(t *testing.T) {
	logging.DisableLoggingForTest(t)

	stdout, stderr, err := execute(t, newMock(t, "table"), "--qc", "../testdata/qc.yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "blocked_well_sets")
	assert.Contains(t, stdout, "Wells (2): W1, W2")
	assert.Empty(t, stderr)
}

func TestValidateErrors(t *testing.T) {
	logging.DisableLoggingForTest(t)

	tests := []struct {
		name  string
		app   *application.Mock
		args  []string
		check func(t *testing.T, err error)
	}{
		{
			name: "missing qc flag",
			app:  newMock(t, "json"),
			args: nil,
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "qc")
			},
		},
		{
			name: "missing qc file",
			app:  newMock(t, "json"),
			args: []string{"--qc", "../testdata/missing.yaml"},
			check: func(t *testing.T, err error) {
				var ioErr *errors.IOError
				assert.ErrorAs(t, err, &ioErr)
			},
		},
		{
			name: "invalid format",
			app:  newMock(t, "xml"),
			args: []string{"--qc", "../testdata/qc.yaml"},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "invalid format")
			},
		},
		{
			name: "no project",
			app:  &application.Mock{OutputFormatFunc: func() string { return "json" }},
			args: []string{"--qc", "../testdata/qc.yaml"},
			check: func(t *testing.T, err error) {
				var cfgErr *errors.ConfigError
				assert.ErrorAs(t, err, &cfgErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.app, tt.args...)
			require.Error(t, err)
			tt.check(t, err)
			assert.Empty(t, stdout)
		})
	}
}
