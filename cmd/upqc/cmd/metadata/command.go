// Package metadata provides the metadata command: print the metadata record
// a QC run would export.
package metadata

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/upscalingqc/cmd/application"
	"github.com/agentstation/upscalingqc/internal/cmd/alerts"
	"github.com/agentstation/upscalingqc/internal/cmd/cmdutil"
	"github.com/agentstation/upscalingqc/internal/cmd/output"
	"github.com/agentstation/upscalingqc/internal/cmd/qc"
	"github.com/agentstation/upscalingqc/pkg/metadata"
)

// NewCommand creates the metadata command.
func NewCommand(app application.Application) *cobra.Command {
	var flags *cmdutil.QCFlags

	cmd := &cobra.Command{
		Use:     "metadata",
		GroupID: "core",
		Short:   "Print the metadata record of a QC run",
		Long: `Metadata reconciles a QC configuration against the host project and prints
the record that export writes to metadata.json: the canonical properties and
selectors, the resolved wells, the display names of every source and the
ordered values of coded selectors.`,
		Example: `  upqc metadata --qc upscaling_qc.yaml --project snapshot.yaml
  upqc metadata --qc upscaling_qc.yaml --project snapshot.yaml -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			run, err := qc.Load(cmd.Context(), app, flags.Path)
			if err != nil {
				return err
			}

			rec := run.Metadata()
			if err := output.Render(cmd.OutOrStdout(), format, rec, TableData(rec)); err != nil {
				return err
			}
			if format.IsTable() {
				return alerts.WriteAll(alerts.NewTextWriter(cmd.ErrOrStderr()), alerts.Warnings(run.Warnings()))
			}
			return nil
		},
	}

	flags = cmdutil.AddQCFlags(cmd)

	return cmd
}

// TableData renders a record as a key-value table.
func TableData(rec *metadata.Record) *output.Data {
	data := &output.Data{
		Headers: []string{"Field", "Value"},
	}
	add := func(field string, values ...string) {
		data.Rows = append(data.Rows, []string{field, strings.Join(values, ", ")})
	}

	add("Properties", rec.Properties...)
	add("Selectors", rec.Selectors...)
	add("Well Names", rec.WellNames...)
	for _, w := range rec.RawLogNames {
		add("Raw Logs", fmt.Sprintf("%s (%s): %s", w.Logrun, w.Trajectory, w.DisplayName))
	}
	for _, bw := range rec.BWNames {
		add("Blocked Wells", fmt.Sprintf("%s <- %s: %s", bw.Name, bw.Grid, bw.DisplayName))
	}
	for _, g := range rec.GridNames {
		add("Grids", fmt.Sprintf("%s: %s", g.Name, g.DisplayName))
	}
	for _, o := range rec.SelectorValuesSorted {
		add("Selector Values", fmt.Sprintf("%s: %s", o.Selector, strings.Join(o.Values, ", ")))
	}
	return data
}
