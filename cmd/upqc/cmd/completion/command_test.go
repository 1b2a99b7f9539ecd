package completion

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "upqc"}
	root.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})
	root.AddCommand(NewCommand())
	return root
}

func TestShellScripts(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{shell: "bash", want: "upqc"},
		{shell: "zsh", want: "#compdef upqc"},
		{shell: "fish", want: "upqc"},
		{shell: "powershell", want: "upqc"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			root := newRoot()
			var stdout bytes.Buffer
			root.SetOut(&stdout)
			root.SetArgs([]string{"completion", tt.shell})

			require.NoError(t, root.Execute())
			assert.Contains(t, stdout.String(), tt.want)
		})
	}
}

func TestFormatValues(t *testing.T) {
	values, directive := FormatValues(nil, nil, "")
	assert.Len(t, values, 3)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestSnapshotFiles(t *testing.T) {
	exts, directive := SnapshotFiles(nil, nil, "")
	assert.Contains(t, exts, "db")
	assert.Contains(t, exts, "yaml")
	assert.Equal(t, cobra.ShellCompDirectiveFilterFileExt, directive)
}
