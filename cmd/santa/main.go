package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"secretsanta/internal/config"
)

var (
	// Global flags
	configPath string
	verbose    bool
	seedFlag   int64

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "santa",
	Short: "santa - Secret Santa assignment generator",
	Long: `santa assigns Secret Santa pairs among a configured participant list,
honoring forbidden pairs and an optional no-reciprocity rule, then emits
shareable reveal links (CSV rows plus optional QR codes).

Links decode entirely client-side on the reveal page, so pairings stay
private: nothing is printed to the terminal and no server is involved.

Run without arguments to generate assignments from the config file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
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
	RunE: runGenerate,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Int64Var(&seedFlag, "seed", 0, "random seed (0 = seed from config or current time)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configured file and folds in the --seed flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if seedFlag != 0 {
		cfg.Matcher.Seed = seedFlag
	}
	return cfg, nil
}
