package dataset

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // CGo-free SQLite driver

	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func init() {
	// modernc registers as "sqlite", which sqlx's bindvar table does not
	// know out of the box.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Store keeps samples and run metadata in a relational database. The DSN
// picks the engine: a postgres:// URL connects to PostgreSQL, anything else
// is treated as a SQLite file path.
type Store struct {
	db     *sqlx.DB
	driver string
	logger *zap.Logger
}

// OpenStore connects to the database behind dsn and applies any pending
// schema migrations.
func OpenStore(dsn string, logger *zap.Logger) (*Store, error) {
	driver := driverFor(dsn)

	if driver == "sqlite" {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create store directory: %w", err)
			}
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", driver, err)
	}

	s := &Store{db: db, driver: driver, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	logger.Info("Sample store initialized", zap.String("driver", driver))
	return s, nil
}

func driverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

func (s *Store) migrate() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	var drv database.Driver
	switch s.driver {
	case "postgres":
		drv, err = migratepg.WithInstance(s.db.DB, &migratepg.Config{})
	default:
		drv, err = migratesqlite.WithInstance(s.db.DB, &migratesqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to prepare %s migrations: %w", s.driver, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "enigma_dataset", drv)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// sampleRow pairs a sample with its run identity for persistence.
type sampleRow struct {
	models.Sample
	RunID string `db:"run_id"`
	Seq   int    `db:"seq"`
}

const insertSampleQuery = `
	INSERT INTO samples (
		run_id, seq, plaintext, ciphertext,
		rotor_left, rotor_middle, rotor_right, full_position, message_type,
		plaintext_length, ciphertext_length,
		entropy, index_of_coincidence, kappa_1,
		most_common_plaintext_letter, most_common_ciphertext_letter,
		most_common_bigram, top_3_bigrams,
		self_encryptions, avg_shift, first_letter_shift, last_letter_shift,
		repeated_letters, first_letter, last_letter
	) VALUES (
		:run_id, :seq, :plaintext, :ciphertext,
		:rotor_left, :rotor_middle, :rotor_right, :full_position, :message_type,
		:plaintext_length, :ciphertext_length,
		:entropy, :index_of_coincidence, :kappa_1,
		:most_common_plaintext_letter, :most_common_ciphertext_letter,
		:most_common_bigram, :top_3_bigrams,
		:self_encryptions, :avg_shift, :first_letter_shift, :last_letter_shift,
		:repeated_letters, :first_letter, :last_letter
	)`

// InsertSamples writes a batch inside one transaction. startSeq is the
// zero-based ordinal of the first sample within the run, so sequence numbers
// stay contiguous across batches.
func (s *Store) InsertSamples(runID string, startSeq int, samples []models.Sample) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for i, sample := range samples {
		row := sampleRow{Sample: sample, RunID: runID, Seq: startSeq + i}
		if _, err := tx.NamedExec(insertSampleQuery, row); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert sample %d: %w", startSeq+i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}

	s.logger.Debug("Batch stored",
		zap.String("run_id", runID),
		zap.Int("rows", len(samples)))
	return nil
}

const sampleColumns = `plaintext, ciphertext,
	rotor_left, rotor_middle, rotor_right, full_position, message_type,
	plaintext_length, ciphertext_length,
	entropy, index_of_coincidence, kappa_1,
	most_common_plaintext_letter, most_common_ciphertext_letter,
	most_common_bigram, top_3_bigrams,
	self_encryptions, avg_shift, first_letter_shift, last_letter_shift,
	repeated_letters, first_letter, last_letter`

// SamplesByRun returns a run's samples in generation order.
func (s *Store) SamplesByRun(runID string) ([]models.Sample, error) {
	query := s.db.Rebind(
		"SELECT " + sampleColumns + " FROM samples WHERE run_id = ? ORDER BY seq")

	var samples []models.Sample
	if err := s.db.Select(&samples, query, runID); err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	return samples, nil
}

// CountSamples returns how many samples a run has persisted.
func (s *Store) CountSamples(runID string) (int, error) {
	query := s.db.Rebind("SELECT COUNT(*) FROM samples WHERE run_id = ?")

	var count int
	if err := s.db.Get(&count, query, runID); err != nil {
		return 0, fmt.Errorf("failed to count samples: %w", err)
	}
	return count, nil
}

// CreateRun records a new run in "running" state.
func (s *Store) CreateRun(run *models.Run) error {
	query := `
		INSERT INTO runs (
			id, status, requested, generated, attempts,
			short_plaintexts, oracle_errors, oracle_timeouts, length_mismatches,
			started_at, completed_at
		) VALUES (
			:id, :status, :requested, :generated, :attempts,
			:short_plaintexts, :oracle_errors, :oracle_timeouts, :length_mismatches,
			:started_at, :completed_at
		)`

	if _, err := s.db.NamedExec(query, run); err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// UpdateRun persists the run's current counters and status.
func (s *Store) UpdateRun(run *models.Run) error {
	query := `
		UPDATE runs SET
			status = :status,
			generated = :generated,
			attempts = :attempts,
			short_plaintexts = :short_plaintexts,
			oracle_errors = :oracle_errors,
			oracle_timeouts = :oracle_timeouts,
			length_mismatches = :length_mismatches,
			completed_at = :completed_at
		WHERE id = :id`

	if _, err := s.db.NamedExec(query, run); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// GetRun fetches a run by id.
func (s *Store) GetRun(id string) (*models.Run, error) {
	query := s.db.Rebind(`
		SELECT id, status, requested, generated, attempts,
			short_plaintexts, oracle_errors, oracle_timeouts, length_mismatches,
			started_at, completed_at
		FROM runs WHERE id = ?`)

	var run models.Run
	if err := s.db.Get(&run, query, id); err != nil {
		return nil, fmt.Errorf("failed to fetch run: %w", err)
	}
	return &run, nil
}
