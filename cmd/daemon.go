package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/grabtext/internal/engine"
	"github.com/mj1618/grabtext/internal/hotkeys"
	"github.com/mj1618/grabtext/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run in the background and grab text on global hotkeys",
	Long: `Register the configured global hotkeys and act on the text under the
mouse cursor each time one is pressed:

  hotkeys.copy    copy the text to the clipboard (default ctrl+alt+c)
  hotkeys.print   print the grab result to stdout (default ctrl+alt+p)

Runs until interrupted.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	eng := newEngine()
	defer closeEngine(eng)
	if !eng.Enabled() {
		return engine.ErrDisabled
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return hotkeys.NewListener(logger).Run(ctx, daemonBindings(eng))
}

func daemonBindings(eng *engine.Engine) []hotkeys.Binding {
	return []hotkeys.Binding{
		{
			Name:  "copy",
			Combo: cfg.Hotkeys.Copy,
			Fire: func() {
				p, res := eng.ResolveAtCursor()
				if res.IsEmpty() {
					logger.Info("no text under cursor", zap.Stringer("point", p))
					return
				}
				if err := copyText(eng, res.Text); err != nil {
					logger.Warn("copy failed", zap.Error(err))
				}
			},
		},
		{
			Name:  "print",
			Combo: cfg.Hotkeys.Print,
			Fire: func() {
				p, res := eng.ResolveAtCursor()
				if err := output.Print(output.NewGrabResult("print", p, res)); err != nil {
					logger.Warn("print failed", zap.Error(err))
				}
			},
		},
	}
}
