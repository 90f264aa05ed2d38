package cmd

import (
	"fmt"

	"github.com/mj1618/grabtext/internal/engine"
	"github.com/mj1618/grabtext/internal/highlight"
	"github.com/mj1618/grabtext/internal/model"
	"github.com/mj1618/grabtext/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var grabCmd = &cobra.Command{
	Use:   "grab",
	Short: "Print the text under the mouse cursor",
	Long: `Resolve the text at the mouse cursor, or at --x/--y, and print it with the
bounding rectangle of the element it came from.

Examples:
  grabtext grab
  grabtext grab --copy
  grabtext grab --x 640 --y 400 --snapshot hit.png`,
	RunE: runGrab,
}

func init() {
	rootCmd.AddCommand(grabCmd)
	grabCmd.Flags().Int("x", 0, "X coordinate (requires --y)")
	grabCmd.Flags().Int("y", 0, "Y coordinate (requires --x)")
	grabCmd.Flags().Bool("copy", false, "Copy the text to the clipboard")
	grabCmd.Flags().String("snapshot", "", "Write a PNG of the element with its rectangle highlighted")
	grabCmd.Flags().Int("max-length", -1, "Truncate text to N characters (0 = no limit, default from config)")
	grabCmd.MarkFlagsRequiredTogether("x", "y")
}

// grabOptions selects what happens to a resolution besides printing it.
type grabOptions struct {
	point    *model.Point
	copy     bool
	snapshot string
}

func runGrab(cmd *cobra.Command, args []string) error {
	if n, _ := cmd.Flags().GetInt("max-length"); n >= 0 {
		cfg.MaxTextLength = n
	}

	var opts grabOptions
	if cmd.Flags().Changed("x") {
		x, _ := cmd.Flags().GetInt("x")
		y, _ := cmd.Flags().GetInt("y")
		opts.point = &model.Point{X: x, Y: y}
	}
	opts.copy, _ = cmd.Flags().GetBool("copy")
	opts.snapshot, _ = cmd.Flags().GetString("snapshot")

	eng := newEngine()
	defer closeEngine(eng)

	result, err := grab(eng, opts)
	if perr := output.Print(result); perr != nil {
		return perr
	}
	return err
}

// grab resolves, then copies and snapshots as requested. The result is
// always filled in, even when a follow-up step fails.
func grab(eng *engine.Engine, opts grabOptions) (output.GrabResult, error) {
	var p model.Point
	var res model.ResolvedText
	if opts.point != nil {
		p = *opts.point
		res = eng.Resolve(p)
	} else {
		p, res = eng.ResolveAtCursor()
	}
	result := output.NewGrabResult("grab", p, res)
	if res.IsEmpty() {
		return result, nil
	}

	if opts.copy {
		if err := copyText(eng, res.Text); err != nil {
			return result, err
		}
		result.Copied = true
	}

	if opts.snapshot != "" {
		img, err := highlight.Snapshot(eng, res, cfg.Snapshot.Padding)
		if err != nil {
			return result, err
		}
		if err := highlight.WritePNG(opts.snapshot, img); err != nil {
			return result, err
		}
		result.Image = opts.snapshot
	}
	return result, nil
}

func copyText(eng *engine.Engine, text string) error {
	clip, err := eng.Clipboard()
	if err != nil {
		return err
	}
	if err := clip.SetText(text); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	logger.Debug("copied to clipboard", zap.Int("length", len(text)))
	return nil
}
