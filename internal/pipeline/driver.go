// Package pipeline runs the generation loop: synthesize, encrypt, extract,
// persist, until the requested number of samples exists.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/dataset"
	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/enigma"
	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/features"
	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/message"
	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/models"
	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/rotor"
)

// ErrAttemptLimit is returned when the optional oracle attempt cap runs out
// before the quota is filled.
var ErrAttemptLimit = errors.New("oracle unavailable: attempt limit reached")

// Oracle is the single capability the driver needs from the cipher side.
// The subprocess client satisfies it; tests substitute in-process fakes.
type Oracle interface {
	Encrypt(ctx context.Context, plaintext string, setting rotor.Setting) (string, error)
}

// Synthesizer produces raw plaintext drafts by category.
type Synthesizer interface {
	DrawCategory() models.Category
	Synthesize(category models.Category) string
}

// PositionSampler draws rotor settings.
type PositionSampler interface {
	Sample() rotor.Setting
}

// progressInterval controls how often the driver logs generation progress.
const progressInterval = 100

// Config for a generation run.
type Config struct {
	Count       int // samples to generate
	MaxLength   int // plaintext truncation length
	BatchSize   int // rows buffered before each append
	MaxAttempts int // oracle invocations allowed; 0 means unbounded
}

// Driver owns the generation loop. Failed attempts are discarded and
// resampled; only the output file and the in-memory batch hold state.
type Driver struct {
	cfg     Config
	synth   Synthesizer
	sampler PositionSampler
	oracle  Oracle
	writer  *dataset.Writer
	store   *dataset.Store // optional, nil disables the relational sink
	stats   *Stats
	logger  *zap.Logger
}

// NewDriver wires a generation run. store may be nil.
func NewDriver(
	cfg Config,
	synth Synthesizer,
	sampler PositionSampler,
	oracle Oracle,
	writer *dataset.Writer,
	store *dataset.Store,
	logger *zap.Logger,
) *Driver {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1000
	}
	return &Driver{
		cfg:     cfg,
		synth:   synth,
		sampler: sampler,
		oracle:  oracle,
		writer:  writer,
		store:   store,
		stats:   NewStats(cfg.Count),
		logger:  logger,
	}
}

// Stats exposes the live counters, for the status server.
func (d *Driver) Stats() *Stats {
	return d.stats
}

// Run generates samples until the quota is reached. It returns the final run
// record; the error is non-nil when the run aborted before filling the
// quota (I/O failure, context cancellation, attempt limit).
func (d *Driver) Run(ctx context.Context) (models.Run, error) {
	runID := uuid.New().String()
	d.stats.start(runID)

	d.logger.Info("Generation run starting",
		zap.String("run_id", runID),
		zap.Int("count", d.cfg.Count),
		zap.Int("max_length", d.cfg.MaxLength),
		zap.Int("batch_size", d.cfg.BatchSize))

	if err := d.writer.Open(); err != nil {
		d.stats.finish(statusAborted)
		return d.stats.Snapshot(), fmt.Errorf("failed to open dataset: %w", err)
	}
	if d.store != nil {
		if err := d.store.CreateRun(&models.Run{
			ID:        runID,
			Status:    statusNames[statusRunning],
			Requested: d.cfg.Count,
			StartedAt: d.stats.startedAt,
		}); err != nil {
			d.stats.finish(statusAborted)
			return d.stats.Snapshot(), fmt.Errorf("failed to record run: %w", err)
		}
	}

	batch := make([]models.Sample, 0, d.cfg.BatchSize)
	persisted := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := d.writer.AppendBatch(batch); err != nil {
			return fmt.Errorf("failed to append batch: %w", err)
		}
		if d.store != nil {
			if err := d.store.InsertSamples(runID, persisted, batch); err != nil {
				return fmt.Errorf("failed to store batch: %w", err)
			}
		}
		persisted += len(batch)
		batch = batch[:0]
		d.syncRun()
		return nil
	}

	abort := func(cause error) (models.Run, error) {
		if err := flush(); err != nil {
			d.logger.Error("Failed to flush partial batch during abort", zap.Error(err))
		}
		d.stats.finish(statusAborted)
		d.syncRun()
		return d.stats.Snapshot(), cause
	}

	for d.stats.generated.Load() < int64(d.cfg.Count) {
		if err := ctx.Err(); err != nil {
			return abort(fmt.Errorf("generation interrupted: %w", err))
		}

		// Synthesis failures do not consume oracle attempts.
		category := d.synth.DrawCategory()
		plaintext := message.Normalize(d.synth.Synthesize(category), d.cfg.MaxLength)
		if len(plaintext) < message.MinLength {
			d.stats.shortPlaintexts.Add(1)
			continue
		}

		setting := d.sampler.Sample()

		if d.cfg.MaxAttempts > 0 && d.stats.attempts.Load() >= int64(d.cfg.MaxAttempts) {
			return abort(fmt.Errorf("%w after %d attempts", ErrAttemptLimit, d.stats.attempts.Load()))
		}
		d.stats.attempts.Add(1)

		ciphertext, err := d.oracle.Encrypt(ctx, plaintext, setting)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return abort(fmt.Errorf("generation interrupted: %w", err))
			}
			d.countOracleFailure(err)
			continue
		}

		if len(ciphertext) != len(plaintext) {
			d.stats.lengthMismatches.Add(1)
			d.logger.Warn("Oracle length contract violated, sample discarded",
				zap.Int("plaintext_length", len(plaintext)),
				zap.Int("ciphertext_length", len(ciphertext)),
				zap.String("position", setting.String()))
			continue
		}

		batch = append(batch, buildSample(category, plaintext, ciphertext, setting))
		generated := d.stats.generated.Add(1)

		if generated%progressInterval == 0 {
			d.logger.Info("Generation progress",
				zap.Int64("generated", generated),
				zap.Int("requested", d.cfg.Count),
				zap.Int64("attempts", d.stats.attempts.Load()))
		}

		if len(batch) >= d.cfg.BatchSize {
			if err := flush(); err != nil {
				d.stats.finish(statusAborted)
				d.syncRun()
				return d.stats.Snapshot(), err
			}
		}
	}

	if err := flush(); err != nil {
		d.stats.finish(statusAborted)
		d.syncRun()
		return d.stats.Snapshot(), err
	}

	d.stats.finish(statusCompleted)
	d.syncRun()

	run := d.stats.Snapshot()
	d.logger.Info("Generation run completed",
		zap.String("run_id", run.ID),
		zap.Int("generated", run.Generated),
		zap.Int("attempts", run.Attempts),
		zap.Int("short_plaintexts", run.ShortPlaintexts),
		zap.Int("oracle_errors", run.OracleErrors),
		zap.Int("oracle_timeouts", run.OracleTimeouts),
		zap.Int("length_mismatches", run.LengthMismatches),
		zap.String("output", d.writer.Path()))
	return run, nil
}

func (d *Driver) countOracleFailure(err error) {
	var oErr *enigma.OracleError
	if errors.As(err, &oErr) && oErr.Kind == enigma.FailureTimeout {
		d.stats.oracleTimeouts.Add(1)
		return
	}
	d.stats.oracleErrors.Add(1)
}

// syncRun mirrors the counters into the relational store, when configured.
func (d *Driver) syncRun() {
	if d.store == nil {
		return
	}
	run := d.stats.Snapshot()
	if err := d.store.UpdateRun(&run); err != nil {
		d.logger.Warn("Failed to update run record", zap.Error(err))
	}
}

func buildSample(category models.Category, plaintext, ciphertext string, setting rotor.Setting) models.Sample {
	ex := features.Extract(plaintext, ciphertext)
	return models.Sample{
		Plaintext:                  plaintext,
		Ciphertext:                 ciphertext,
		RotorLeft:                  string(setting.Left),
		RotorMiddle:                string(setting.Middle),
		RotorRight:                 string(setting.Right),
		FullPosition:               setting.String(),
		MessageType:                category,
		PlaintextLength:            len(plaintext),
		CiphertextLength:           len(ciphertext),
		Entropy:                    ex.Entropy,
		IndexOfCoincidence:         ex.IndexOfCoincidence,
		Kappa1:                     ex.Kappa1,
		MostCommonPlaintextLetter:  ex.MostCommonPlaintextLetter,
		MostCommonCiphertextLetter: ex.MostCommonCiphertextLetter,
		MostCommonBigram:           ex.MostCommonBigram,
		Top3Bigrams:                ex.Top3Bigrams,
		SelfEncryptions:            ex.SelfEncryptions,
		AvgShift:                   ex.AvgShift,
		FirstLetterShift:           ex.FirstLetterShift,
		LastLetterShift:            ex.LastLetterShift,
		RepeatedLetters:            ex.RepeatedLetters,
		FirstLetter:                ex.FirstLetter,
		LastLetter:                 ex.LastLetter,
	}
}
