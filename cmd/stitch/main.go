package main

import (
	"os"

	"github.com/spf13/cobra"

	"stitch/internal/logutil"
)

var release = "dev"

var cfg Config

var rootCmd = &cobra.Command{
	Use:   "stitch",
	Short: "Merge Android startup traces into one profile",
	Long: `stitch combines a sampled-stack capture (simpleperf, imported with
samply) and a Gecko profiler marker capture of the same application
startup into a single profile any Gecko-profiler-compatible viewer can
open.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		cfg, err = loadConfig(configPath)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.LogLevel = lvl
		}
		logutil.ConfigureLogger(cfg.LogLevel)
		return nil
	},
}

func main() {
	rootCmd.Version = release

	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().String("config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace|debug|info|warn|error)")

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
