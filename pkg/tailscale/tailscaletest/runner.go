// Package tailscaletest provides a scripted tailscale.Runner for tests.
package tailscaletest

import (
	"context"
	"slices"
	"sync"

	"github.com/rescp17/taildropMenu/pkg/tailscale"
)

// HandlerFunc answers a single invocation.
type HandlerFunc func(ctx context.Context, args []string) (tailscale.Output, error)

// Runner records every invocation and delegates the answer to a HandlerFunc.
type Runner struct {
	mu      sync.Mutex
	calls   [][]string
	handler HandlerFunc
}

func NewRunner(handler HandlerFunc) *Runner {
	return &Runner{handler: handler}
}

func (r *Runner) Run(ctx context.Context, args ...string) (tailscale.Output, error) {
	r.mu.Lock()
	r.calls = append(r.calls, slices.Clone(args))
	r.mu.Unlock()
	if r.handler == nil {
		return tailscale.Output{}, nil
	}
	return r.handler(ctx, args)
}

// Calls returns a copy of the argument lists seen so far, in order.
func (r *Runner) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = slices.Clone(c)
	}
	return out
}

// Succeed answers with exit status 0 and the given stdout.
func Succeed(stdout string) (tailscale.Output, error) {
	return tailscale.Output{Stdout: []byte(stdout)}, nil
}

// Fail answers the way tailscale.CLI does for a non-zero exit.
func Fail(args []string, code int, stderr string) (tailscale.Output, error) {
	out := tailscale.Output{Stderr: []byte(stderr), ExitCode: code}
	return out, &tailscale.ExitError{Args: slices.Clone(args), Output: out}
}

// Blocking answers only once release is closed or ctx is cancelled, which
// mimics a long-running transfer that can be killed.
func Blocking(ctx context.Context, release <-chan struct{}, stdout string) (tailscale.Output, error) {
	select {
	case <-release:
		return Succeed(stdout)
	case <-ctx.Done():
		return tailscale.Output{ExitCode: -1}, ctx.Err()
	}
}
