// Package main is the cvgen command line: it runs the generation pipeline,
// renders structured documents and sweeps the output directory without the
// HTTP server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"cv-generator/internal/bootstrap"
	"cv-generator/internal/config"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cvgen",
	Short: "Generate tailored CVs and cover letters from a job posting",
	Long: `cvgen drives the same pipeline as the HTTP server from the shell.
Settings come from .env, an optional --config file and the environment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = c.LogLevel
		}
		cfg = c
		logger = bootstrap.NewLogger(os.Stderr, level, false)
		slog.SetDefault(logger)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of cvgen",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cvgen %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (default: LOG_LEVEL)")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
