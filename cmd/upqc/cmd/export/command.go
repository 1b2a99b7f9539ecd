// Package export provides the export command: run the full QC and write the
// tables and the metadata record.
package export

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/upscalingqc/cmd/application"
	"github.com/agentstation/upscalingqc/internal/cmd/alerts"
	"github.com/agentstation/upscalingqc/internal/cmd/cmdutil"
	"github.com/agentstation/upscalingqc/internal/cmd/output"
	"github.com/agentstation/upscalingqc/internal/cmd/qc"
	"github.com/agentstation/upscalingqc/pkg/constants"
	"github.com/agentstation/upscalingqc/pkg/export"
	"github.com/agentstation/upscalingqc/pkg/sources"
)

// NewCommand creates the export command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		qcFlags     *cmdutil.QCFlags
		exportFlags *cmdutil.ExportFlags
	)

	cmd := &cobra.Command{
		Use:     "export",
		GroupID: "core",
		Short:   "Extract every source and write the QC tables",
		Long: `Export reconciles a QC configuration against the host project, extracts the
table of every source and writes the output folder:

  well.csv       raw well logs, tagged with logrun and trajectory
  bw.csv         blocked well logs, tagged with grid and name
  grid.csv       grid properties, tagged with name
  metadata.json  the metadata record

Either all four files are written or none is. The parent of the destination
folder must exist.`,
		Example: `  upqc export --qc upscaling_qc.yaml --project snapshot.yaml
  upqc export --qc upscaling_qc.yaml --project snapshot.db --out ./qc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			run, err := qc.Load(ctx, app, qcFlags.Path)
			if err != nil {
				return err
			}

			result, err := run.Export(ctx, exportFlags.Out)
			if err != nil {
				return err
			}

			if err := output.Render(cmd.OutOrStdout(), format, result, TableData(result)); err != nil {
				return err
			}
			if !format.IsTable() {
				return nil
			}

			notes := alerts.Warnings(run.Warnings())
			notes = append(notes, alerts.NewSuccess("Exported to "+result.Dir))
			return alerts.WriteAll(alerts.NewTextWriter(cmd.ErrOrStderr()), notes)
		},
	}

	qcFlags = cmdutil.AddQCFlags(cmd)
	exportFlags = cmdutil.AddExportFlags(cmd)

	return cmd
}

// fileKinds maps table files to the source kind whose rows they hold.
var fileKinds = map[string]sources.Kind{
	constants.WellsFile:        sources.KindWells,
	constants.BlockedWellsFile: sources.KindBlockedWells,
	constants.GridFile:         sources.KindGrid,
}

// TableData renders an export result as one row per written file.
func TableData(result *export.Result) *output.Data {
	data := &output.Data{
		Headers:         []string{"File", "Rows"},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignRight},
	}
	for _, path := range result.Files {
		rows := ""
		if kind, ok := fileKinds[filepath.Base(path)]; ok {
			rows = strconv.Itoa(result.Rows[kind])
		}
		data.Rows = append(data.Rows, []string{path, rows})
	}
	return data
}
