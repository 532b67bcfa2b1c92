package tailscale_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rescp17/taildropMenu/pkg/tailscale"
	"github.com/rescp17/taildropMenu/pkg/tailscale/tailscaletest"
)

func TestArgs(t *testing.T) {
	assert.Equal(t, []string{"status", "--json"}, tailscale.StatusArgs())
	assert.Equal(t, []string{"file", "cp", "/tmp/a.txt", "desktop.ts.net:"}, tailscale.FileCopyArgs("/tmp/a.txt", "desktop.ts.net"))
	assert.Equal(t, []string{"file", "get", "/home/u/Downloads"}, tailscale.FileGetArgs("/home/u/Downloads"))
}

func TestClient_Status(t *testing.T) {
	runner := tailscaletest.NewRunner(func(ctx context.Context, args []string) (tailscale.Output, error) {
		return tailscaletest.Succeed(`{"Self":{"UserID":3},"Peer":{}}`)
	})
	client := tailscale.NewClient(runner)

	status, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), status.SelfUserID())
	assert.Equal(t, [][]string{{"status", "--json"}}, runner.Calls())
}

func TestClient_StatusEmptyOutput(t *testing.T) {
	client := tailscale.NewClient(tailscaletest.NewRunner(nil))

	_, err := client.Status(context.Background())
	assert.Error(t, err)
}

func TestClient_StatusCommandFailure(t *testing.T) {
	runner := tailscaletest.NewRunner(func(ctx context.Context, args []string) (tailscale.Output, error) {
		return tailscaletest.Fail(args, 1, "failed to connect to local tailscaled")
	})
	client := tailscale.NewClient(runner)

	_, err := client.Status(context.Background())
	require.Error(t, err)

	var exitErr *tailscale.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Output.ExitCode)
	assert.Contains(t, err.Error(), "failed to connect to local tailscaled")
}

func TestOutput_Diagnostic(t *testing.T) {
	assert.Equal(t, "disk full", tailscale.Output{Stderr: []byte(" disk full\n"), Stdout: []byte("ignored")}.Diagnostic())
	assert.Equal(t, "moved 2 files", tailscale.Output{Stdout: []byte("moved 2 files\n")}.Diagnostic())
	assert.Empty(t, tailscale.Output{}.Diagnostic())
}
