package tailscale

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultBinary is looked up on PATH when no explicit binary is configured.
const DefaultBinary = "tailscale"

// killWaitDelay bounds how long Run waits for output pipes after the process
// was killed, in case it left children holding them open.
const killWaitDelay = time.Second

// Output holds everything a finished invocation wrote.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Diagnostic returns the most useful human-readable text the command produced,
// preferring stderr over stdout.
func (o Output) Diagnostic() string {
	if s := strings.TrimSpace(string(o.Stderr)); s != "" {
		return s
	}
	return strings.TrimSpace(string(o.Stdout))
}

// Runner executes the tailscale CLI with the given arguments and blocks until it exits.
type Runner interface {
	Run(ctx context.Context, args ...string) (Output, error)
}

// ExitError is returned when the command ran but exited with a non-zero status.
type ExitError struct {
	Args   []string
	Output Output
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("tailscale %s: exit status %d", strings.Join(e.Args, " "), e.Output.ExitCode)
	if diag := e.Output.Diagnostic(); diag != "" {
		msg += ": " + diag
	}
	return msg
}

// CLI runs a real tailscale binary as a subprocess.
type CLI struct {
	Binary string
}

// NewCLI creates a CLI runner. An empty binary falls back to DefaultBinary.
func NewCLI(binary string) *CLI {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CLI{Binary: binary}
}

// Run starts the binary and waits for it. Cancelling ctx kills the process.
func (c *CLI) Run(ctx context.Context, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, c.Binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = killWaitDelay

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return out, fmt.Errorf("%s %s interrupted: %w", c.Binary, firstArg(args), ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, &ExitError{Args: args, Output: out}
	}
	return out, fmt.Errorf("failed to run %s: %w", c.Binary, err)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
