package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-layers/framework/app"
	"github.com/km-arc/go-layers/framework/config"
)

var (
	verbose  bool
	defsFile string
	envFile  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "layerctl",
	Short: "Inspect and serve layered value stacks",
	Long: `layerctl builds a layer stack from the environment and a YAML definitions
file, then resolves values from it, lists its layers, or serves it over HTTP.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&defsFile, "file", "f", "", "Layer definitions file (overrides LAYERS_FILE)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Environment file to load")
}

// boot loads the configuration, applies the flags and boots the application.
func boot() (*app.Application, error) {
	cfg := config.Load(envFile)
	if defsFile != "" {
		cfg.Layers.File = defsFile
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	a := app.NewWithConfig(cfg)
	if err := a.Boot(); err != nil {
		return nil, fmt.Errorf("boot: %w", err)
	}
	return a, nil
}
