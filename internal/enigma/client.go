// Package enigma drives the external cipher simulator. The simulator is a
// black box: one executable, one invocation per encryption, ciphertext on
// stdout. Anything that satisfies the same contract can stand in for it.
package enigma

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/rotor"
)

// DefaultTimeout bounds a single simulator invocation. A healthy simulator
// answers in milliseconds; ten seconds means something is wedged.
const DefaultTimeout = 10 * time.Second

// FailureKind classifies why an oracle invocation produced no ciphertext.
type FailureKind int

const (
	// FailureProcess means the simulator ran and exited nonzero.
	FailureProcess FailureKind = iota
	// FailureTimeout means the invocation exceeded the deadline and the
	// process was killed.
	FailureTimeout
	// FailureUnexpected means the process could not be started at all,
	// typically a missing or non-executable binary.
	FailureUnexpected
)

func (k FailureKind) String() string {
	switch k {
	case FailureProcess:
		return "process_error"
	case FailureTimeout:
		return "timeout"
	default:
		return "unexpected"
	}
}

// OracleError reports a failed oracle invocation. Stderr is populated for
// process failures when the simulator wrote anything there.
type OracleError struct {
	Kind   FailureKind
	Stderr string
	Err    error
}

func (e *OracleError) Error() string {
	msg := fmt.Sprintf("enigma oracle %s", e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += " (stderr: " + e.Stderr + ")"
	}
	return msg
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// Config for the oracle client.
type Config struct {
	BinaryPath string        // Default: DefaultBinaryPath()
	Timeout    time.Duration // Default: DefaultTimeout
}

// Client invokes the simulator executable once per encryption. No retries
// and no caching happen here; the caller owns that policy.
type Client struct {
	path    string
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates an oracle client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BinaryPath == "" {
		cfg.BinaryPath = DefaultBinaryPath()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	logger.Info("Enigma oracle configured",
		zap.String("binary", cfg.BinaryPath),
		zap.Duration("timeout", cfg.Timeout))

	return &Client{
		path:    cfg.BinaryPath,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// DefaultBinaryPath is the conventional simulator location: an "enigma"
// binary one directory above this tool's own executable.
func DefaultBinaryPath() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Join("..", "enigma")
	}
	return filepath.Join(filepath.Dir(exe), "..", "enigma")
}

// Path returns the configured simulator path.
func (c *Client) Path() string {
	return c.path
}

// Encrypt runs one simulator invocation and returns the trimmed stdout as
// ciphertext. A context cancellation from the caller is passed through
// unchanged; every oracle-side failure comes back as an *OracleError.
func (c *Client) Encrypt(ctx context.Context, plaintext string, setting rotor.Setting) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, c.path, "--encrypt", plaintext, "--position", setting.String())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return strings.TrimSpace(stdout.String()), nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		c.logger.Warn("Oracle invocation timed out, process killed",
			zap.Duration("timeout", c.timeout),
			zap.String("position", setting.String()))
		return "", &OracleError{Kind: FailureTimeout, Err: runCtx.Err()}
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return "", ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		trimmed := strings.TrimSpace(stderr.String())
		c.logger.Warn("Oracle process failed",
			zap.Int("exit_code", exitErr.ExitCode()),
			zap.String("stderr", trimmed))
		return "", &OracleError{Kind: FailureProcess, Stderr: trimmed, Err: err}
	}

	c.logger.Warn("Oracle could not be started",
		zap.String("binary", c.path),
		zap.Error(err))
	return "", &OracleError{Kind: FailureUnexpected, Err: err}
}
