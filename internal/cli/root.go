// Package cli provides the datagen command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "datagen",
	Short: "Generate labeled Enigma ciphertext datasets for ML cryptanalysis",
	Long: `datagen synthesizes German military-style radio messages, encrypts
them through an external Enigma simulator, and writes one labeled CSV row
per message: plaintext, ciphertext, rotor position, and the statistical
features (entropy, index of coincidence, kappa, bigrams, letter shifts)
that cryptanalysis models train on.

The simulator is treated as a black box. It must accept
  enigma --encrypt <PLAINTEXT> --position <XYZ>
and print the ciphertext to stdout. By default it is looked up one
directory above this executable; use --enigma to point elsewhere.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("enigma", "", "Path to the Enigma simulator binary")
}

// newLogger builds the process logger.
func newLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

// resolveConfig loads the YAML config named by --config (or the defaults)
// and layers explicitly set flags on top.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}

	applyOverrides(cfg, cmd)
	return cfg, nil
}

// applyOverrides copies every flag the user set explicitly into the config.
func applyOverrides(cfg *config.Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("enigma") {
		cfg.Oracle.Binary, _ = flags.GetString("enigma")
	}
	if flags.Changed("count") {
		cfg.Generation.Count, _ = flags.GetInt("count")
	}
	if flags.Changed("length") {
		cfg.Generation.MaxLength, _ = flags.GetInt("length")
	}
	if flags.Changed("batch-size") {
		cfg.Generation.BatchSize, _ = flags.GetInt("batch-size")
	}
	if flags.Changed("max-attempts") {
		cfg.Generation.MaxAttempts, _ = flags.GetInt("max-attempts")
	}
	if flags.Changed("seed") {
		cfg.Generation.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("output") {
		cfg.Output.Path, _ = flags.GetString("output")
	}
	if flags.Changed("store") {
		cfg.Store.DSN, _ = flags.GetString("store")
	}
	if flags.Changed("status-addr") {
		cfg.Server.Addr, _ = flags.GetString("status-addr")
	}

	// Test mode trumps --count: a handful of samples to check the wiring.
	if testMode, _ := flags.GetBool("test"); testMode {
		cfg.Generation.Count = 5
	}
}
