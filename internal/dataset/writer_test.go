package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/models"
)

func makeSample(n int) models.Sample {
	return models.Sample{
		Plaintext:                  "WETTERKURZSIGNAL",
		Ciphertext:                 "QWERTZUIOPASDFGH",
		RotorLeft:                  "A",
		RotorMiddle:                "X",
		RotorRight:                 "Q",
		FullPosition:               "AXQ",
		MessageType:                models.Weather,
		PlaintextLength:            16,
		CiphertextLength:           16,
		Entropy:                    3.875,
		IndexOfCoincidence:         1.0 / 3.0,
		Kappa1:                     0.0625,
		MostCommonPlaintextLetter:  "E",
		MostCommonCiphertextLetter: "Q",
		MostCommonBigram:           "QW",
		Top3Bigrams:                "QW,WE,ER",
		SelfEncryptions:            0,
		AvgShift:                   13.5,
		FirstLetterShift:           n,
		LastLetterShift:            25,
		RepeatedLetters:            1,
		FirstLetter:                "Q",
		LastLetter:                 "H",
	}
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestOpenCreatesParentDirsAndHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.csv")
	w := NewWriter(path, zap.NewNop())

	require.NoError(t, w.Open())

	records := readAll(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, Header, records[0])
}

func TestOpenTruncatesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewWriter(path, zap.NewNop())

	require.NoError(t, w.Open())
	require.NoError(t, w.AppendBatch([]models.Sample{makeSample(1)}))
	require.NoError(t, w.Open())

	records := readAll(t, path)
	assert.Len(t, records, 1, "reopen should leave only the header")
}

func TestAppendBatchRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewWriter(path, zap.NewNop())
	require.NoError(t, w.Open())

	sample := makeSample(3)
	require.NoError(t, w.AppendBatch([]models.Sample{sample}))

	records := readAll(t, path)
	require.Len(t, records, 2)
	row := records[1]
	require.Len(t, row, len(Header))

	assert.Equal(t, sample.Plaintext, row[0])
	assert.Equal(t, sample.Ciphertext, row[1])
	assert.Equal(t, "A", row[2])
	assert.Equal(t, "X", row[3])
	assert.Equal(t, "Q", row[4])
	assert.Equal(t, "AXQ", row[5])
	assert.Equal(t, "WEATHER", row[6])

	ptLen, err := strconv.Atoi(row[7])
	require.NoError(t, err)
	assert.Equal(t, sample.PlaintextLength, ptLen)

	// Floats must parse back to the exact values that were written.
	entropy, err := strconv.ParseFloat(row[9], 64)
	require.NoError(t, err)
	assert.Equal(t, sample.Entropy, entropy)

	ic, err := strconv.ParseFloat(row[10], 64)
	require.NoError(t, err)
	assert.Equal(t, sample.IndexOfCoincidence, ic)

	kappa, err := strconv.ParseFloat(row[11], 64)
	require.NoError(t, err)
	assert.Equal(t, sample.Kappa1, kappa)

	assert.Equal(t, "QW,WE,ER", row[15])

	avgShift, err := strconv.ParseFloat(row[17], 64)
	require.NoError(t, err)
	assert.Equal(t, sample.AvgShift, avgShift)

	assert.Equal(t, "Q", row[21])
	assert.Equal(t, "H", row[len(Header)-1])
}

func TestAppendBatchesAccumulateInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewWriter(path, zap.NewNop())
	require.NoError(t, w.Open())

	require.NoError(t, w.AppendBatch([]models.Sample{makeSample(1), makeSample(2)}))
	require.NoError(t, w.AppendBatch([]models.Sample{makeSample(3)}))

	records := readAll(t, path)
	require.Len(t, records, 4)

	// first_letter_shift column carries the per-sample marker.
	idx := -1
	for i, name := range Header {
		if name == "first_letter_shift" {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx)
	assert.Equal(t, "1", records[1][idx])
	assert.Equal(t, "2", records[2][idx])
	assert.Equal(t, "3", records[3][idx])
}

func TestAppendEmptyBatchIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewWriter(path, zap.NewNop())
	require.NoError(t, w.Open())

	require.NoError(t, w.AppendBatch(nil))

	records := readAll(t, path)
	assert.Len(t, records, 1)
}

func TestAppendBatchFailsWithoutOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	w := NewWriter(path, zap.NewNop())

	err := w.AppendBatch([]models.Sample{makeSample(1)})
	assert.Error(t, err)
}

func TestDegradedFieldsStayEmptyOrZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewWriter(path, zap.NewNop())
	require.NoError(t, w.Open())

	require.NoError(t, w.AppendBatch([]models.Sample{{
		Plaintext:    "A",
		Ciphertext:   "B",
		RotorLeft:    "A",
		RotorMiddle:  "A",
		RotorRight:   "A",
		FullPosition: "AAA",
		MessageType:  models.Military,
	}}))

	records := readAll(t, path)
	require.Len(t, records, 2)
	row := records[1]

	for i, name := range Header {
		switch name {
		case "most_common_bigram", "top_3_bigrams":
			assert.Equal(t, "", row[i])
		case "entropy", "avg_shift":
			assert.Equal(t, "0", row[i])
		}
	}
}
