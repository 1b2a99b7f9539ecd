// Package convert provides the convert command: import a YAML or JSON
// project snapshot into a SQLite file.
package convert

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/upscalingqc/cmd/application"
	"github.com/agentstation/upscalingqc/internal/cmd/alerts"
	internalproject "github.com/agentstation/upscalingqc/internal/project"
)

// NewCommand creates the convert command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert <snapshot> <database>",
		GroupID: "management",
		Short:   "Convert a project snapshot to SQLite",
		Long: `Convert imports a YAML or JSON project snapshot into a SQLite database, which
the other commands accept as --project. The database must end in .db,
.sqlite or .sqlite3.`,
		Example: `  upqc convert snapshot.yaml snapshot.db`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			if !internalproject.IsSQLite(dst) {
				return fmt.Errorf("destination %s is not a SQLite file name (.db, .sqlite, .sqlite3)", dst)
			}

			if err := internalproject.Convert(cmd.Context(), src, dst); err != nil {
				return err
			}
			app.Logger().Debug().Str("src", src).Str("dst", dst).Msg("converted project snapshot")

			return alerts.NewTextWriter(cmd.ErrOrStderr()).
				WriteAlert(alerts.NewSuccess(fmt.Sprintf("Converted %s to %s", src, dst)))
		},
	}

	return cmd
}
