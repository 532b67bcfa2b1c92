package tailscale

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shellCLI drives CLI with /bin/sh so the exec plumbing can be checked
// without a tailscale install.
func shellCLI(t *testing.T) *CLI {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not found on PATH")
	}
	return NewCLI(sh)
}

func TestNewCLI_DefaultBinary(t *testing.T) {
	assert.Equal(t, DefaultBinary, NewCLI("").Binary)
	assert.Equal(t, "/opt/bin/tailscale", NewCLI("/opt/bin/tailscale").Binary)
}

func TestCLI_RunSuccess(t *testing.T) {
	cli := shellCLI(t)

	out, err := cli.Run(context.Background(), "-c", "printf hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out.Stdout))
	assert.Equal(t, 0, out.ExitCode)
}

func TestCLI_RunNonZeroExit(t *testing.T) {
	cli := shellCLI(t)

	out, err := cli.Run(context.Background(), "-c", "echo 'disk full' >&2; exit 3")
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, out.ExitCode)
	assert.Equal(t, "disk full", out.Diagnostic())
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestCLI_RunCancelled(t *testing.T) {
	cli := shellCLI(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := cli.Run(ctx, "-c", "sleep 5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestCLI_RunMissingBinary(t *testing.T) {
	cli := NewCLI("/nonexistent/tailscale-binary")

	_, err := cli.Run(context.Background(), "status")
	require.Error(t, err)

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}
