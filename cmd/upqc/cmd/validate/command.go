// Package validate provides the validate command: reconcile a QC
// configuration against the host project without extracting any table.
package validate

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/upscalingqc/cmd/application"
	"github.com/agentstation/upscalingqc/internal/cmd/alerts"
	"github.com/agentstation/upscalingqc/internal/cmd/cmdutil"
	"github.com/agentstation/upscalingqc/internal/cmd/emoji"
	"github.com/agentstation/upscalingqc/internal/cmd/output"
	"github.com/agentstation/upscalingqc/internal/cmd/qc"
	"github.com/agentstation/upscalingqc/pkg/reconcile"
)

// Result is the structured output of the validate command.
type Result struct {
	RunID     string              `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Valid     bool                `json:"valid" yaml:"valid"`
	Checks    []reconcile.Outcome `json:"checks" yaml:"checks"`
	WellNames []string            `json:"well_names" yaml:"well_names"`
	Warnings  []string            `json:"warnings" yaml:"warnings"`
}

// NewCommand creates the validate command.
func NewCommand(app application.Application) *cobra.Command {
	var flags *cmdutil.QCFlags

	cmd := &cobra.Command{
		Use:     "validate",
		GroupID: "core",
		Short:   "Check that the QC sources agree with each other",
		Long: `Validate reconciles a QC configuration against the host project.

The checks run in order and stop at the first failure:
  grids              blocked well grids equal grid source grids
  blocked_well_sets  every blocked well set exists in its grid
  properties         all sources expose the same properties
  selectors          all sources expose the same selectors
  wells              all well and blocked well sources report on the same wells

No table is extracted. The command exits non-zero on any failed check.`,
		Example: `  upqc validate --qc upscaling_qc.yaml --project snapshot.yaml
  upqc validate --qc upscaling_qc.yaml --project snapshot.db -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	flags = cmdutil.AddQCFlags(cmd)

	return cmd
}

func run(cmd *cobra.Command, app application.Application, flags *cmdutil.QCFlags) error {
	format, err := output.Resolve(app.OutputFormat())
	if err != nil {
		return err
	}

	result, runErr := qc.Load(cmd.Context(), app, flags.Path)
	outcomes, ok := reconcile.Report(runErr)
	if !ok {
		return runErr
	}

	res := Result{
		Valid:     runErr == nil,
		Checks:    outcomes,
		WellNames: []string{},
		Warnings:  []string{},
	}
	if result != nil {
		res.RunID = result.RunID()
		res.WellNames = result.WellNames()
		res.Warnings = result.Warnings()
	}

	if err := output.Render(cmd.OutOrStdout(), format, res, tableData(res)); err != nil {
		return err
	}
	if format.IsTable() {
		if err := printSummary(cmd.OutOrStdout(), cmd.ErrOrStderr(), res); err != nil {
			return err
		}
	}

	if runErr != nil {
		app.Logger().Debug().Err(runErr).Msg("validation failed")
	}
	return runErr
}

func tableData(res Result) *output.Data {
	data := &output.Data{
		Headers:         []string{"Check", "Status", "Detail"},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignLeft, output.AlignLeft},
	}
	for _, o := range res.Checks {
		data.Rows = append(data.Rows, []string{
			o.Check.String(),
			statusSymbol(o.Status) + " " + string(o.Status),
			o.Detail,
		})
	}
	return data
}

func statusSymbol(s reconcile.Status) string {
	switch s {
	case reconcile.StatusPassed:
		return emoji.Success
	case reconcile.StatusFailed:
		return emoji.Error
	default:
		return emoji.Skipped
	}
}

func printSummary(stdout, stderr io.Writer, res Result) error {
	if res.Valid {
		if _, err := fmt.Fprintf(stdout, "\nWells (%d): %s\n", len(res.WellNames), strings.Join(res.WellNames, ", ")); err != nil {
			return err
		}
	}
	return alerts.WriteAll(alerts.NewTextWriter(stderr), alerts.Warnings(res.Warnings))
}
