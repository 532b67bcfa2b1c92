package notify

import (
	"context"
	"errors"
	"log/slog"
)

// Notification types carried in Notification.Type.
const (
	TypeTransferResult = "transfer_result"
	TypeDirectoryError = "directory_error"
	TypeRejected       = "transfer_rejected"
	TypeInvalidRequest = "invalid_request"
)

// Notification is a titled message with an error/ok flag.
type Notification struct {
	Type    string         `json:"type,omitempty"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Error   bool           `json:"error"`
	Data    map[string]any `json:"data,omitempty"`
}

// Notifier displays notifications. Implementations are called from the host
// loop and must return quickly.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, n Notification) error

func (f Func) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// Multi delivers to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Log writes notifications to the default slog logger.
type Log struct{}

func (Log) Notify(ctx context.Context, n Notification) error {
	if n.Error {
		slog.WarnContext(ctx, n.Title, "message", n.Message, "type", n.Type)
	} else {
		slog.InfoContext(ctx, n.Title, "message", n.Message, "type", n.Type)
	}
	return nil
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(context.Context, Notification) error { return nil }
