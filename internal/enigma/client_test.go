package enigma

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/rotor"
)

// writeFakeOracle drops a shell script standing in for the simulator binary.
func writeFakeOracle(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake oracle scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "enigma")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func testSetting() rotor.Setting {
	return rotor.Setting{Left: 'A', Middle: 'X', Right: 'Q'}
}

func TestEncryptTrimsStdout(t *testing.T) {
	path := writeFakeOracle(t, `printf '  QWERTZUIOP  \n'`)
	client := NewClient(Config{BinaryPath: path}, zap.NewNop())

	ciphertext, err := client.Encrypt(context.Background(), "WETTERBERIC", testSetting())
	require.NoError(t, err)
	assert.Equal(t, "QWERTZUIOP", ciphertext)
}

func TestEncryptPassesArguments(t *testing.T) {
	// Echo back the argument values so the invocation contract is visible.
	path := writeFakeOracle(t, `printf '%s|%s|%s|%s\n' "$1" "$2" "$3" "$4"`)
	client := NewClient(Config{BinaryPath: path}, zap.NewNop())

	out, err := client.Encrypt(context.Background(), "ANGRIFF", testSetting())
	require.NoError(t, err)
	assert.Equal(t, "--encrypt|ANGRIFF|--position|AXQ", out)
}

func TestEncryptNonzeroExitIsProcessError(t *testing.T) {
	path := writeFakeOracle(t, "echo 'rotor jam' >&2\nexit 3")
	client := NewClient(Config{BinaryPath: path}, zap.NewNop())

	_, err := client.Encrypt(context.Background(), "ANGRIFF", testSetting())
	require.Error(t, err)

	var oErr *OracleError
	require.ErrorAs(t, err, &oErr)
	assert.Equal(t, FailureProcess, oErr.Kind)
	assert.Equal(t, "rotor jam", oErr.Stderr)
	assert.Contains(t, oErr.Error(), "process_error")
}

func TestEncryptTimeoutKillsProcess(t *testing.T) {
	// exec so the kill signal reaches the sleep itself, not a parent shell.
	path := writeFakeOracle(t, "exec sleep 30")
	client := NewClient(Config{BinaryPath: path, Timeout: 150 * time.Millisecond}, zap.NewNop())

	start := time.Now()
	_, err := client.Encrypt(context.Background(), "ANGRIFF", testSetting())
	elapsed := time.Since(start)

	var oErr *OracleError
	require.ErrorAs(t, err, &oErr)
	assert.Equal(t, FailureTimeout, oErr.Kind)
	// The attempt must end within roughly one timeout interval, not after
	// the child would have finished on its own.
	assert.Less(t, elapsed, 5*time.Second)
}

func TestEncryptMissingBinaryIsUnexpected(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-enigma")
	client := NewClient(Config{BinaryPath: missing}, zap.NewNop())

	_, err := client.Encrypt(context.Background(), "ANGRIFF", testSetting())

	var oErr *OracleError
	require.ErrorAs(t, err, &oErr)
	assert.Equal(t, FailureUnexpected, oErr.Kind)
}

func TestEncryptCanceledContextPassesThrough(t *testing.T) {
	path := writeFakeOracle(t, "exec sleep 30")
	client := NewClient(Config{BinaryPath: path, Timeout: time.Minute}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := client.Encrypt(ctx, "ANGRIFF", testSetting())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	var oErr *OracleError
	assert.False(t, errors.As(err, &oErr), "cancellation is not an oracle failure")
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{}, zap.NewNop())
	assert.Equal(t, DefaultTimeout, client.timeout)
	assert.NotEmpty(t, client.path)
}

func TestFailureKindString(t *testing.T) {
	assert.Equal(t, "process_error", FailureProcess.String())
	assert.Equal(t, "timeout", FailureTimeout.String())
	assert.Equal(t, "unexpected", FailureUnexpected.String())
}
