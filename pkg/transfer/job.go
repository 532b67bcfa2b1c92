package transfer

import (
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/rescp17/taildropMenu/internal/util"
	"github.com/rescp17/taildropMenu/pkg/discovery"
	"github.com/rescp17/taildropMenu/pkg/fileInfo"
)

// Kind tells send and receive jobs apart.
type Kind int

const (
	KindSend Kind = iota
	KindReceive
)

func (k Kind) String() string {
	switch k {
	case KindSend:
		return "send"
	case KindReceive:
		return "receive"
	default:
		return "unknown"
	}
}

// Job is a unit of work for the Coordinator. The only implementations are
// *SendJob and *ReceiveJob.
type Job interface {
	JobID() string
	Kind() Kind
	isJob()
}

// SendJob copies Files, in order, to Device.
type SendJob struct {
	ID     string
	Files  []fileInfo.FileNode
	Device discovery.Device
}

func (j *SendJob) JobID() string { return j.ID }
func (j *SendJob) Kind() Kind    { return KindSend }
func (*SendJob) isJob()          {}

// ReceiveJob moves waiting Taildrop files into Dir.
type ReceiveJob struct {
	ID  string
	Dir string
}

func (j *ReceiveJob) JobID() string { return j.ID }
func (j *ReceiveJob) Kind() Kind    { return KindReceive }
func (*ReceiveJob) isJob()          {}

// BuildSend resolves a file-manager selection into a SendJob. Only file://
// locators are used; anything else is dropped. Selected directories
// contribute the regular files directly inside them (one level, name order).
func BuildSend(uris []string, device discovery.Device) (*SendJob, error) {
	if device.DNSName == "" {
		return nil, &ValidationError{Reason: "no target device"}
	}

	paths := make([]string, 0, len(uris))
	for _, uri := range uris {
		path, ok := util.FileURIToPath(uri)
		if !ok {
			slog.Debug("Ignoring non-local selection", "uri", uri)
			continue
		}
		paths = append(paths, path)
	}

	files := fileInfo.Resolve(paths)
	if len(files) == 0 {
		return nil, &ValidationError{Reason: "selection contains no regular files", Err: ErrNoFiles}
	}
	return &SendJob{ID: uuid.NewString(), Files: files, Device: device}, nil
}

// BuildReceive accepts either a file:// locator or a plain path. The
// directory is not checked here; tailscale reports a missing one itself.
func BuildReceive(locator string) (*ReceiveJob, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, &ValidationError{Reason: "no target directory"}
	}
	if filepath.IsAbs(locator) {
		return &ReceiveJob{ID: uuid.NewString(), Dir: locator}, nil
	}
	if u, err := url.Parse(locator); err == nil && u.Scheme != "" {
		dir, ok := util.FileURIToPath(locator)
		if !ok {
			return nil, &ValidationError{Reason: "not a local directory: " + locator}
		}
		return &ReceiveJob{ID: uuid.NewString(), Dir: dir}, nil
	}
	return &ReceiveJob{ID: uuid.NewString(), Dir: locator}, nil
}
