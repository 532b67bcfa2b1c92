package transfer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rescp17/taildropMenu/pkg/tailscale"
)

const (
	sendTitle          = "Taildrop Send"
	sendFailedTitle    = "Taildrop Send failed"
	receiveTitle       = "Taildrop Receive"
	receiveFailedTitle = "Taildrop Receive failed"
)

// sendFiles copies the files one after another and stops at the first
// failure. The bool is false when there is nothing to post.
func sendFiles(ctx context.Context, client *tailscale.Client, job *SendJob) (Result, bool) {
	for i, file := range job.Files {
		slog.Debug("Sending file", "job", job.ID, "file", file.Path, "device", job.Device.DNSName, "index", i)
		out, err := client.FileCopy(ctx, file.Path, job.Device.DNSName)
		if ctx.Err() != nil {
			return Result{}, false
		}
		if err != nil {
			terr := &TransferError{File: file.Name, Diagnostic: diagnostic(out, err), Err: err}
			slog.Error("Send failed", "job", job.ID, "file", file.Path, "error", err)
			return failure(job, sendFailedTitle, fmt.Sprintf("Could not send %s: %s", terr.File, terr.Diagnostic), terr), true
		}
	}

	count := len(job.Files)
	noun := "files"
	if count == 1 {
		noun = "file"
	}
	return success(job, sendTitle, fmt.Sprintf("%d %s sent to %s", count, noun, job.Device.DisplayName())), true
}

// receiveFiles runs one `file get`. A clean exit without output posts nothing
// and leaves the generic message to the poller.
func receiveFiles(ctx context.Context, client *tailscale.Client, job *ReceiveJob) (Result, bool) {
	out, err := client.FileGet(ctx, job.Dir)
	if ctx.Err() != nil {
		return Result{}, false
	}
	if err != nil {
		terr := &TransferError{Diagnostic: diagnostic(out, err), Err: err}
		slog.Error("Receive failed", "job", job.ID, "dir", job.Dir, "error", err)
		return failure(job, receiveFailedTitle, terr.Diagnostic, terr), true
	}
	if msg := out.Diagnostic(); msg != "" {
		return success(job, receiveTitle, msg), true
	}
	return Result{}, false
}

// implicitResult stands in for a worker that exited without posting.
func implicitResult(job Job) Result {
	switch j := job.(type) {
	case *ReceiveJob:
		return success(job, receiveTitle, fmt.Sprintf("Files received in %s", j.Dir))
	case *SendJob:
		return success(job, sendTitle, fmt.Sprintf("Files sent to %s", j.Device.DisplayName()))
	default:
		return success(job, "Taildrop", "Transfer finished")
	}
}

func diagnostic(out tailscale.Output, err error) string {
	if diag := out.Diagnostic(); diag != "" {
		return diag
	}
	return err.Error()
}
