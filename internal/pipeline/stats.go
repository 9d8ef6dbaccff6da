package pipeline

import (
	"sync/atomic"
	"time"

	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/models"
)

// Run states, in lifecycle order.
const (
	statusPending int32 = iota
	statusRunning
	statusCompleted
	statusAborted
)

var statusNames = []string{"pending", "running", "completed", "aborted"}

// Stats tracks live run counters. The driver is the only writer; the status
// server reads snapshots concurrently, so all counters are atomic.
type Stats struct {
	runID     string
	requested int
	startedAt time.Time

	status           atomic.Int32
	generated        atomic.Int64
	attempts         atomic.Int64
	shortPlaintexts  atomic.Int64
	oracleErrors     atomic.Int64
	oracleTimeouts   atomic.Int64
	lengthMismatches atomic.Int64
	completedAt      atomic.Pointer[time.Time]
}

// NewStats creates counters for a run of the given quota.
func NewStats(requested int) *Stats {
	return &Stats{requested: requested}
}

func (s *Stats) start(runID string) {
	s.runID = runID
	s.startedAt = time.Now().UTC()
	s.status.Store(statusRunning)
}

func (s *Stats) finish(status int32) {
	now := time.Now().UTC()
	s.completedAt.Store(&now)
	s.status.Store(status)
}

// Snapshot renders the counters as a run record. runID and startedAt are
// written once in start before the running status is published, so they are
// only read here after that status has been observed.
func (s *Stats) Snapshot() models.Run {
	status := s.status.Load()

	run := models.Run{
		Status:           statusNames[status],
		Requested:        s.requested,
		Generated:        int(s.generated.Load()),
		Attempts:         int(s.attempts.Load()),
		ShortPlaintexts:  int(s.shortPlaintexts.Load()),
		OracleErrors:     int(s.oracleErrors.Load()),
		OracleTimeouts:   int(s.oracleTimeouts.Load()),
		LengthMismatches: int(s.lengthMismatches.Load()),
		CompletedAt:      s.completedAt.Load(),
	}
	if status != statusPending {
		run.ID = s.runID
		run.StartedAt = s.startedAt
	}
	return run
}
