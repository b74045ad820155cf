// Package main provides the CLI entrypoint for auto-assigner.
//
// auto-assigner loads a YAML project fixture into an in-memory editor host
// and drives the auto-assignment engine over it:
//   - resolve: fill every tagged field in the active scope
//   - validate: report tagged fields that are still unassigned
//   - refresh: clear and re-resolve the owners on one game object
//   - watch: re-run resolution whenever the fixture file changes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	configPath string
	dump       bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "auto-assigner",
	Short: "Resolve auto-tagged component and asset references",
	Long: `auto-assigner fills struct fields tagged with auto:"..." from the
hierarchy under their owner or from the project asset index.

A tag value on a component field names a child path to search under;
on an asset field it names a folder under the asset root.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			return nil
		}

		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error

		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (YAML)")
	rootCmd.PersistentFlags().BoolVar(&dump, "dump", false, "Dump the raw pass report")

	validateCmd.Flags().BoolVar(&resolveFirst, "resolve", false, "Run a resolution pass before validating")
	refreshCmd.Flags().StringVar(&ownerPath, "owner", "", "Path of the game object whose owners are refreshed (required)")
	_ = refreshCmd.MarkFlagRequired("owner")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
