package cmd

import (
	"github.com/mj1618/grabtext/internal/model"
	"github.com/mj1618/grabtext/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List on-screen windows front-to-back",
	Long:  "List top-level windows in stacking order, front-most first, with their handle, owning PID and title.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Int("pid", 0, "Filter windows by PID")
}

func runList(cmd *cobra.Command, args []string) error {
	eng := newEngine()
	defer closeEngine(eng)

	windows, err := eng.Windows()
	if err != nil {
		return err
	}

	pid, _ := cmd.Flags().GetInt("pid")
	return output.Print(filterWindows(windows, pid))
}

func filterWindows(windows []model.Window, pid int) []model.Window {
	out := []model.Window{}
	for _, w := range windows {
		if pid != 0 && w.PID != pid {
			continue
		}
		out = append(out, w)
	}
	return out
}
