package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/rescp17/taildropMenu/pkg/tailscale"
)

// DirectoryError reports that the peer list could not be built. It covers a
// missing binary, a non-zero exit and unparseable output alike.
type DirectoryError struct {
	Op  string
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("device directory %s: %v", e.Op, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// Refresher produces a fresh device list.
type Refresher interface {
	Refresh(ctx context.Context) ([]Device, error)
}

// Directory lists the Taildrop targets of the current user.
type Directory struct {
	client      *tailscale.Client
	hideOffline bool
}

// NewDirectory creates a Directory. With hideOffline set, unreachable peers
// are left out instead of being reported with Online=false.
func NewDirectory(client *tailscale.Client, hideOffline bool) *Directory {
	return &Directory{client: client, hideOffline: hideOffline}
}

// Refresh queries tailscale synchronously and rebuilds the whole list. The
// call is short but blocking; it is not meant to run as background work.
func (d *Directory) Refresh(ctx context.Context) ([]Device, error) {
	status, err := d.client.Status(ctx)
	if err != nil {
		return nil, &DirectoryError{Op: "status", Err: err}
	}
	devices, err := OwnedDevices(status, d.hideOffline)
	if err != nil {
		return nil, &DirectoryError{Op: "parse", Err: err}
	}
	slog.Debug("Device directory refreshed", "owner", status.SelfLoginName(), "device_count", len(devices))
	return devices, nil
}

// OwnedDevices keeps the peers owned by the status' own user, sorted by DNS name.
// Tagged nodes belong to tags rather than to a person, and shared nodes to
// another user, so both are excluded.
func OwnedDevices(status *tailscale.Status, hideOffline bool) ([]Device, error) {
	self := status.SelfUserID()
	devices := make([]Device, 0, len(status.Peer))

	for key, peer := range status.Peer {
		if peer == nil {
			continue
		}
		if peer.UserID == nil {
			return nil, fmt.Errorf("peer %s: %w", key, tailscale.ErrMissingUserID)
		}
		if *peer.UserID != self || len(peer.Tags) > 0 {
			continue
		}
		dnsName := strings.TrimSuffix(peer.DNSName, ".")
		if dnsName == "" {
			slog.Debug("Skipping peer without DNS name", "peer", key)
			continue
		}
		if hideOffline && !peer.Online {
			continue
		}
		devices = append(devices, Device{DNSName: dnsName, Online: peer.Online})
	}

	sort.Slice(devices, func(i, j int) bool {
		return devices[i].DNSName < devices[j].DNSName
	})
	return devices, nil
}
