// Package completion provides the completion command: shell completion
// scripts for upqc.
package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type shell struct {
	name  string
	setup string
	gen   func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name:  "bash",
		setup: "source <(upqc completion bash)",
		gen:   func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	},
	{
		name:  "zsh",
		setup: `upqc completion zsh > "${fpath[1]}/_upqc"`,
		gen:   func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	},
	{
		name:  "fish",
		setup: "upqc completion fish | source",
		gen:   func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	},
	{
		name:  "powershell",
		setup: "upqc completion powershell | Out-String | Invoke-Expression",
		gen:   func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
	},
}

// NewCommand creates the completion command with one subcommand per shell.
// It replaces the default completion command cobra would add.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "completion",
		GroupID: "management",
		Short:   "Generate shell completion scripts",
		Long: `Completion writes the autocompletion script for the given shell to stdout.
Run "upqc completion <shell> --help" for how to load it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	for _, sh := range shells {
		cmd.AddCommand(newShellCommand(sh))
	}

	return cmd
}

func newShellCommand(sh shell) *cobra.Command {
	return &cobra.Command{
		Use:   sh.name,
		Short: fmt.Sprintf("Generate %s completion script", sh.name),
		Long: fmt.Sprintf(`Generate the autocompletion script for %s.

To load completions in your current shell session:

  %s`, sh.name, sh.setup),
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sh.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// FormatValues completes the --format flag.
func FormatValues(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"table\taligned columns",
		"json\tindented JSON",
		"yaml\tYAML",
	}, cobra.ShellCompDirectiveNoFileComp
}

// SnapshotFiles completes a project snapshot path.
func SnapshotFiles(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"yaml", "yml", "json", "db", "sqlite", "sqlite3"}, cobra.ShellCompDirectiveFilterFileExt
}
