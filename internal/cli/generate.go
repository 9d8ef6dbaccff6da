package cli

import (
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/api"
	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/dataset"
	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/enigma"
	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/message"
	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/pipeline"
	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/rotor"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a labeled training dataset",
	Long: `Generate runs the full pipeline: synthesize plaintext, sample a rotor
position, encrypt through the simulator, extract features, and append
batches of rows to the output CSV until the requested count is reached.

Failed attempts (short plaintext, simulator errors, timeouts, length
mismatches) are discarded and resampled; by default the loop retries
until the quota is filled.

Examples:
  datagen generate --test                        # 5 samples, quick check
  datagen generate --count 10000 --seed 1939     # reproducible full run
  datagen generate --store data/dataset.db       # also keep a SQLite copy
  datagen generate --status-addr :8080           # live progress endpoint`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntP("count", "n", 0, "Number of samples to generate")
	generateCmd.Flags().StringP("output", "o", "", "Output CSV path")
	generateCmd.Flags().Int("length", 0, "Maximum plaintext length")
	generateCmd.Flags().Bool("test", false, "Test mode: generate only 5 samples")
	generateCmd.Flags().Int("batch-size", 0, "Rows buffered before each append")
	generateCmd.Flags().Int64("seed", 0, "Random seed (0 = time-seeded)")
	generateCmd.Flags().String("store", "", "Relational store DSN (SQLite path or PostgreSQL URL)")
	generateCmd.Flags().String("status-addr", "", "Serve live run status on this address (e.g. :8080)")
	generateCmd.Flags().Int("max-attempts", 0, "Abort after this many oracle attempts (0 = unlimited)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	seed := cfg.Generation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Randomness seeded", zap.Int64("seed", seed))
	rng := rand.New(rand.NewSource(seed))

	synth := message.NewSynthesizer(rng)
	sampler := rotor.NewSampler(rng)
	oracle := enigma.NewClient(enigma.Config{
		BinaryPath: cfg.Oracle.Binary,
		Timeout:    time.Duration(cfg.Oracle.TimeoutSeconds) * time.Second,
	}, logger)
	writer := dataset.NewWriter(cfg.Output.Path, logger)

	var store *dataset.Store
	if cfg.Store.DSN != "" {
		store, err = dataset.OpenStore(cfg.Store.DSN, logger)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	driver := pipeline.NewDriver(pipeline.Config{
		Count:       cfg.Generation.Count,
		MaxLength:   cfg.Generation.MaxLength,
		BatchSize:   cfg.Generation.BatchSize,
		MaxAttempts: cfg.Generation.MaxAttempts,
	}, synth, sampler, oracle, writer, store, logger)

	if cfg.Server.Addr != "" {
		server := api.NewServer(driver.Stats(), logger)
		go func() {
			if err := server.Start(cfg.Server.Addr); err != nil {
				logger.Error("Status server stopped", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err = driver.Run(ctx)
	return err
}
