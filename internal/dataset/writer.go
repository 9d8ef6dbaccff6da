// Package dataset persists sample records: always to a CSV file, optionally
// to a relational store selected by DSN.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/models"
)

// Header is the fixed CSV column order. Consumers key on these names, so the
// order never changes.
var Header = []string{
	"plaintext",
	"ciphertext",
	"rotor_left",
	"rotor_middle",
	"rotor_right",
	"full_position",
	"message_type",
	"plaintext_length",
	"ciphertext_length",
	"entropy",
	"index_of_coincidence",
	"kappa_1",
	"most_common_plaintext_letter",
	"most_common_ciphertext_letter",
	"most_common_bigram",
	"top_3_bigrams",
	"self_encryptions",
	"avg_shift",
	"first_letter_shift",
	"last_letter_shift",
	"repeated_letters",
	"first_letter",
	"last_letter",
}

// Writer appends sample batches to a CSV file. The file is opened, flushed
// and closed around every batch so partial progress survives a crash.
type Writer struct {
	path   string
	logger *zap.Logger
}

// NewWriter creates a writer targeting path. Nothing touches the filesystem
// until Open.
func NewWriter(path string, logger *zap.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Path returns the output file location.
func (w *Writer) Path() string {
	return w.path
}

// Open creates the output file, its parent directories included, and writes
// the header row. An existing file at the path is truncated.
func (w *Writer) Open() error {
	if dir := filepath.Dir(w.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(Header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush header: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	w.logger.Info("Dataset file created", zap.String("path", w.path))
	return nil
}

// AppendBatch writes the samples in order, then flushes and closes the file.
// An empty batch is a no-op.
func (w *Writer) AppendBatch(samples []models.Sample) error {
	if len(samples) == 0 {
		return nil
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file for append: %w", err)
	}

	cw := csv.NewWriter(f)
	for _, s := range samples {
		if err := cw.Write(row(s)); err != nil {
			f.Close()
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush batch: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	w.logger.Debug("Batch appended",
		zap.Int("rows", len(samples)),
		zap.String("path", w.path))
	return nil
}

// row renders a sample in Header order. Floats use the shortest decimal form
// that parses back to the same value.
func row(s models.Sample) []string {
	return []string{
		s.Plaintext,
		s.Ciphertext,
		s.RotorLeft,
		s.RotorMiddle,
		s.RotorRight,
		s.FullPosition,
		string(s.MessageType),
		strconv.Itoa(s.PlaintextLength),
		strconv.Itoa(s.CiphertextLength),
		formatFloat(s.Entropy),
		formatFloat(s.IndexOfCoincidence),
		formatFloat(s.Kappa1),
		s.MostCommonPlaintextLetter,
		s.MostCommonCiphertextLetter,
		s.MostCommonBigram,
		s.Top3Bigrams,
		strconv.Itoa(s.SelfEncryptions),
		formatFloat(s.AvgShift),
		strconv.Itoa(s.FirstLetterShift),
		strconv.Itoa(s.LastLetterShift),
		strconv.Itoa(s.RepeatedLetters),
		s.FirstLetter,
		s.LastLetter,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
