package transfer

import (
	"github.com/rescp17/taildropMenu/pkg/notify"
)

// State is what the coordinator is doing right now.
type State int

const (
	StateIdle State = iota
	StateSending
	StateReceiving
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateReceiving:
		return "receiving"
	default:
		return "unknown"
	}
}

func stateFor(k Kind) State {
	if k == KindReceive {
		return StateReceiving
	}
	return StateSending
}

// Result is the terminal outcome of one job. Exactly one is delivered per job.
type Result struct {
	JobID   string
	Kind    Kind
	OK      bool
	Title   string
	Message string
	Err     error
}

// Notification renders the result for a notify.Notifier.
func (r Result) Notification() notify.Notification {
	return notify.Notification{
		Type:    notify.TypeTransferResult,
		Title:   r.Title,
		Message: r.Message,
		Error:   !r.OK,
		Data: map[string]any{
			"jobId": r.JobID,
			"kind":  r.Kind.String(),
		},
	}
}

func success(job Job, title, message string) Result {
	return Result{JobID: job.JobID(), Kind: job.Kind(), OK: true, Title: title, Message: message}
}

func failure(job Job, title, message string, err error) Result {
	return Result{JobID: job.JobID(), Kind: job.Kind(), Title: title, Message: message, Err: err}
}
