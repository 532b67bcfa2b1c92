package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rescp17/taildropMenu/pkg/concurrency"
	"github.com/rescp17/taildropMenu/pkg/notify"
	"github.com/rescp17/taildropMenu/pkg/tailscale"
)

type activeJob struct {
	job     Job
	cancel  context.CancelFunc
	results *concurrency.Mailbox[Result]
	done    chan struct{}
}

// Coordinator runs at most one transfer at a time. Submit starts the job on
// its own goroutine; the host loop calls Poll, which never blocks, until it
// returns false. Each job produces exactly one notification.
type Coordinator struct {
	client   *tailscale.Client
	notifier notify.Notifier
	config   *Config

	mu     sync.Mutex
	active *activeJob
}

// NewCoordinator creates an idle coordinator. A nil notifier drops results,
// a nil config means DefaultConfig.
func NewCoordinator(client *tailscale.Client, notifier notify.Notifier, config *Config) *Coordinator {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if config == nil {
		config = DefaultConfig()
	}
	return &Coordinator{client: client, notifier: notifier, config: config}
}

// PollInterval is how often the host should call Poll while it returns true.
func (c *Coordinator) PollInterval() time.Duration {
	return c.config.PollInterval
}

// Submit starts job. A running receive is replaced by a new receive; any
// other combination with a running job is refused with a *RejectedError.
func (c *Coordinator) Submit(job Job) error {
	if job == nil {
		return &ValidationError{Reason: "no job"}
	}
	if send, ok := job.(*SendJob); ok {
		switch {
		case len(send.Files) == 0:
			return &ValidationError{Reason: "selection contains no regular files", Err: ErrNoFiles}
		case send.Device.DNSName == "":
			return &ValidationError{Reason: "no target device"}
		}
	}

	c.mu.Lock()
	var previous <-chan struct{}
	if current := c.active; current != nil {
		if current.job.Kind() != KindReceive || job.Kind() != KindReceive {
			c.mu.Unlock()
			return c.reject(current.job, job)
		}
		slog.Info("Replacing running receive", "old_job", current.job.JobID(), "new_job", job.JobID())
		current.cancel()
		previous = current.done
		c.active = nil
	}
	c.start(job, previous)
	c.mu.Unlock()
	return nil
}

// start must be called with mu held. The worker does not run its command
// until previous, if any, is closed.
func (c *Coordinator) start(job Job, previous <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	active := &activeJob{
		job:     job,
		cancel:  cancel,
		results: concurrency.NewMailbox[Result](),
		done:    make(chan struct{}),
	}
	c.active = active
	slog.Info("Transfer started", "job", job.JobID(), "kind", job.Kind())
	go c.run(ctx, active, previous)
}

func (c *Coordinator) run(ctx context.Context, active *activeJob, previous <-chan struct{}) {
	defer close(active.done)
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Transfer worker panicked", "job", active.job.JobID(), "panic", r)
			err := fmt.Errorf("worker panic: %v", r)
			_ = active.results.Post(failure(active.job, "Taildrop failed", err.Error(), err))
		}
	}()

	if previous != nil {
		select {
		case <-previous:
		case <-ctx.Done():
			slog.Debug("Transfer cancelled before it started", "job", active.job.JobID())
			return
		}
	}

	var (
		result Result
		post   bool
	)
	switch job := active.job.(type) {
	case *SendJob:
		result, post = sendFiles(ctx, c.client, job)
	case *ReceiveJob:
		result, post = receiveFiles(ctx, c.client, job)
	}

	if ctx.Err() != nil {
		slog.Debug("Transfer cancelled", "job", active.job.JobID())
		return
	}
	if post {
		if err := active.results.Post(result); err != nil {
			slog.Warn("Dropping extra transfer result", "job", active.job.JobID(), "error", err)
		}
	}
}

func (c *Coordinator) reject(active, requested Job) error {
	err := &RejectedError{Active: active.Kind(), Requested: requested.Kind()}
	slog.Warn("Transfer request rejected", "active_job", active.JobID(), "error", err)
	if c.config.NotifyRejections {
		n := notify.Notification{
			Type:    notify.TypeRejected,
			Title:   "Taildrop busy",
			Message: fmt.Sprintf("A %s is already running.", active.Kind()),
			Error:   true,
		}
		if nerr := c.notifier.Notify(context.Background(), n); nerr != nil {
			slog.Warn("Failed to deliver notification", "error", nerr)
		}
	}
	return err
}

// Poll checks the running job without blocking. When the job has finished
// its result is delivered, the coordinator becomes idle and Poll returns
// false. It returns true while the job is still running.
func (c *Coordinator) Poll() bool {
	c.mu.Lock()
	active := c.active
	if active == nil {
		c.mu.Unlock()
		return false
	}

	result, ok := active.results.TryTake()
	if !ok {
		select {
		case <-active.done:
			// the worker may have posted right before exiting
			if result, ok = active.results.TryTake(); !ok {
				result = implicitResult(active.job)
			}
		default:
			c.mu.Unlock()
			return true
		}
	}
	c.active = nil
	c.mu.Unlock()

	active.cancel()
	c.deliver(result)
	return false
}

func (c *Coordinator) deliver(result Result) {
	if result.OK {
		slog.Info("Transfer finished", "job", result.JobID, "kind", result.Kind, "message", result.Message)
	} else {
		slog.Warn("Transfer failed", "job", result.JobID, "kind", result.Kind, "error", result.Err)
	}
	if err := c.notifier.Notify(context.Background(), result.Notification()); err != nil {
		slog.Warn("Failed to deliver notification", "job", result.JobID, "error", err)
	}
}

// State reports what the coordinator is busy with.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return StateIdle
	}
	return stateFor(c.active.job.Kind())
}

// Active returns the running job, if any.
func (c *Coordinator) Active() (Job, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil, false
	}
	return c.active.job, true
}

// Close kills an in-flight receive without notifying. A running send is
// left alone and still reported by Poll.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil || c.active.job.Kind() != KindReceive {
		return
	}
	slog.Info("Cancelling receive on shutdown", "job", c.active.job.JobID())
	c.active.cancel()
	c.active = nil
}
