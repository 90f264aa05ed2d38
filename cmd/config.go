package cmd

import (
	"fmt"

	"github.com/mj1618/grabtext/internal/config"
	"github.com/mj1618/grabtext/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the configuration after file and environment overrides",
	RunE: func(cmd *cobra.Command, args []string) error {
		if output.OutputFormat == output.FormatJSON {
			return output.Print(cfg)
		}
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = output.Writer.Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := rootCmd.PersistentFlags().GetString("config")
		if path == "" {
			p, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			path = p
		}
		_, err := fmt.Fprintln(output.Writer, path)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPrintCmd, configPathCmd)
}
