package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/grabtext/internal/config"
	"github.com/mj1618/grabtext/internal/engine"
	"github.com/mj1618/grabtext/internal/logging"
	"github.com/mj1618/grabtext/internal/output"
	"github.com/mj1618/grabtext/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "grabtext",
	Short: "Grab the text under the mouse cursor",
	Long: `grabtext reads the text an application renders at the mouse cursor through
the operating system's accessibility layer, and hands it to the clipboard,
stdout or an AI agent.`,
	SilenceUsage: true,
}

// Settings resolved by the root command before any subcommand runs.
var (
	cfg    = config.DefaultConfig()
	logger = logging.Nop()
)

func Execute() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/grabtext/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log accessibility queries and resolution details")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path, _ := rootCmd.PersistentFlags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded

		if debug, _ := rootCmd.PersistentFlags().GetBool("debug"); debug {
			cfg.Log.Debug = true
		}
		logger = logging.New(cfg.Log.Debug)

		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}
}

// newEngine binds the platform provider. An unsupported platform is
// reported on stderr once; the engine is returned disabled.
func newEngine() *engine.Engine {
	eng, _ := engine.New(engine.Options{
		MaxTextLength: cfg.MaxTextLength,
		MaxDepth:      cfg.MaxDepth,
		OnStartupError: func(err error) {
			fmt.Fprintln(os.Stderr, err)
		},
	}, logger)
	return eng
}

func closeEngine(eng *engine.Engine) {
	if err := eng.Close(); err != nil {
		logger.Warn("closing platform provider", zap.Error(err))
	}
}
