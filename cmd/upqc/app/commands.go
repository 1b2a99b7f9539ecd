package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/upscalingqc/cmd/upqc/cmd/convert"
	"github.com/agentstation/upscalingqc/cmd/upqc/cmd/export"
	"github.com/agentstation/upscalingqc/cmd/upqc/cmd/metadata"
	"github.com/agentstation/upscalingqc/cmd/upqc/cmd/validate"
)

// NewValidateCommand creates the validate command with app dependencies.
func (a *App) NewValidateCommand() *cobra.Command {
	return validate.NewCommand(a)
}

// NewMetadataCommand creates the metadata command with app dependencies.
func (a *App) NewMetadataCommand() *cobra.Command {
	return metadata.NewCommand(a)
}

// NewExportCommand creates the export command with app dependencies.
func (a *App) NewExportCommand() *cobra.Command {
	return export.NewCommand(a)
}

// NewConvertCommand creates the convert command with app dependencies.
func (a *App) NewConvertCommand() *cobra.Command {
	return convert.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("upqc %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
