// Root command for the sampleatlas CLI.
package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-genomics/sampleatlas/internal/logging"
	"github.com/mesh-genomics/sampleatlas/internal/paths"
	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagLogFile   string
	flagVerbose   bool
	flagJSON      bool
)

// cfg holds the configuration loaded from config.yaml, with flag overrides
// applied per command. log is the shared structured logger. Both are set by
// PersistentPreRunE before any subcommand runs.
var (
	cfg types.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sampleatlas",
	Short: "Reconcile sequencing-sample metadata and classify disease state",
	Long: `Sampleatlas merges per-registry sample metadata exports into one wide
table, assigns each sample a disease-state category with a deterministic
rule cascade, and partitions runs by category for downstream retrieval.`,
	SilenceUsage:      true,
	PersistentPreRunE: initRun,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "append structured JSON logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit machine-readable JSON on stdout")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(partitionCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(runCmd)
}

// initRun loads config.yaml and constructs the logger.
func initRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return err
	}
	cfg, err = loadConfig(configDir)
	if err != nil {
		return err
	}

	log, err = logging.New(flagVerbose, flagLogFile)
	return err
}
