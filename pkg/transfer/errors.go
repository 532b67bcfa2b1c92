package transfer

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is matched by every RejectedError.
	ErrBusy = errors.New("a transfer is already running")
	// ErrNoFiles means a send selection resolved to nothing sendable.
	ErrNoFiles = errors.New("no files to send")
)

// ValidationError is returned when a request cannot be turned into a job.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return "invalid transfer request: " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TransferError describes a failed tailscale file command. File is empty for receives.
type TransferError struct {
	File       string
	Diagnostic string
	Err        error
}

func (e *TransferError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("could not receive files: %s", e.Diagnostic)
	}
	return fmt.Sprintf("could not send %s: %s", e.File, e.Diagnostic)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// RejectedError is returned by Submit when the running job cannot be replaced.
type RejectedError struct {
	Active    Kind
	Requested Kind
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("cannot start %s: a %s is still running", e.Requested, e.Active)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrBusy
}
