package cmd

import (
	"github.com/mj1618/grabtext/internal/engine"
	"github.com/mj1618/grabtext/internal/output"
	"github.com/spf13/cobra"
)

var cursorCmd = &cobra.Command{
	Use:   "cursor",
	Short: "Print the mouse cursor position",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()
		defer closeEngine(eng)
		if !eng.Enabled() {
			return engine.ErrDisabled
		}
		return output.Print(eng.Cursor())
	},
}

func init() {
	rootCmd.AddCommand(cursorCmd)
}
