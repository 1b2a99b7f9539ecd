// Package cmdutil provides shared flags for upqc commands.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// QCFlags holds the flags of commands that run a QC configuration.
type QCFlags struct {
	Path string
}

// AddQCFlags adds the --qc flag to a command and marks it required.
func AddQCFlags(cmd *cobra.Command) *QCFlags {
	flags := &QCFlags{}

	cmd.Flags().StringVar(&flags.Path, "qc", "",
		"QC configuration file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("qc")

	return flags
}

// ExportFlags holds export-specific flags.
type ExportFlags struct {
	Out string
}

// AddExportFlags adds export-specific flags to a command.
func AddExportFlags(cmd *cobra.Command) *ExportFlags {
	flags := &ExportFlags{}

	cmd.Flags().StringVar(&flags.Out, "out", "",
		"Destination folder (defaults to the configured output folder)")

	return flags
}
