// Package extension is the file-manager side of taildropmenu: it turns the
// device directory into context menu items and hands activations to the
// transfer coordinator.
package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rescp17/taildropMenu/pkg/discovery"
	"github.com/rescp17/taildropMenu/pkg/notify"
	"github.com/rescp17/taildropMenu/pkg/transfer"
)

var ErrUnknownDevice = errors.New("unknown device")

type Options struct {
	ShowDNSName bool
	// NotifyDirectoryErrors surfaces device listing failures to the user.
	// They are always logged.
	NotifyDirectoryErrors bool
}

// Session is created once per host process and owns everything the menus need.
type Session struct {
	devices     *discovery.CachedDirectory
	coordinator *transfer.Coordinator
	notifier    notify.Notifier
	opts        Options
}

func NewSession(devices *discovery.CachedDirectory, coordinator *transfer.Coordinator, notifier notify.Notifier, opts Options) *Session {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Session{
		devices:     devices,
		coordinator: coordinator,
		notifier:    notifier,
		opts:        opts,
	}
}

// Devices lists the current user's peers. On failure the error is logged,
// optionally notified, and returned.
func (s *Session) Devices(ctx context.Context) ([]discovery.Device, error) {
	devices, err := s.devices.Devices(ctx)
	if err != nil {
		s.directoryFailed(ctx, err)
		return nil, err
	}
	return devices, nil
}

// RefreshDevices bypasses the snapshot cache.
func (s *Session) RefreshDevices(ctx context.Context) ([]discovery.Device, error) {
	devices, err := s.devices.Refresh(ctx)
	if err != nil {
		s.directoryFailed(ctx, err)
		return nil, err
	}
	return devices, nil
}

// FindDevice matches name against full DNS names first, then display names.
func (s *Session) FindDevice(ctx context.Context, name string) (discovery.Device, error) {
	devices, err := s.Devices(ctx)
	if err != nil {
		return discovery.Device{}, err
	}
	name = strings.TrimSuffix(name, ".")
	for _, d := range devices {
		if strings.EqualFold(d.DNSName, name) {
			return d, nil
		}
	}
	for _, d := range devices {
		if strings.EqualFold(d.DisplayName(), name) {
			return d, nil
		}
	}
	return discovery.Device{}, fmt.Errorf("%w: %s", ErrUnknownDevice, name)
}

// FileItems builds the "Taildrop Send" entry for a selection of file URIs.
// A directory failure yields the entry with an empty submenu.
func (s *Session) FileItems(ctx context.Context, uris []string) []MenuItem {
	devices, err := s.Devices(ctx)
	if err != nil {
		devices = nil
	}

	submenu := make([]MenuItem, 0, len(devices))
	for i, device := range devices {
		submenu = append(submenu, MenuItem{
			Name:      fmt.Sprintf("%s%d", deviceItemPrefix, i),
			Label:     device.Label(s.opts.ShowDNSName),
			Tip:       fmt.Sprintf(deviceItemTipFmt, device.DNSName),
			Sensitive: device.Online,
			Activate: func() error {
				return s.Send(uris, device)
			},
		})
	}

	return []MenuItem{{
		Name:      sendItemName,
		Label:     sendItemLabel,
		Tip:       sendItemTip,
		Sensitive: s.coordinator.State() == transfer.StateIdle,
		Submenu:   submenu,
	}}
}

// BackgroundItems builds the "Taildrop Receive" entry for the folder being viewed.
func (s *Session) BackgroundItems(_ context.Context, dirURI string) []MenuItem {
	return []MenuItem{{
		Name:      receiveItemName,
		Label:     receiveItemLabel,
		Tip:       receiveItemTip,
		Sensitive: s.coordinator.State() != transfer.StateSending,
		Activate: func() error {
			return s.Receive(dirURI)
		},
	}}
}

// Send starts sending the selection to device.
func (s *Session) Send(uris []string, device discovery.Device) error {
	job, err := transfer.BuildSend(uris, device)
	if err != nil {
		s.invalidRequest(err)
		return err
	}
	return s.coordinator.Submit(job)
}

// Receive starts moving waiting files into the directory named by locator.
func (s *Session) Receive(locator string) error {
	job, err := transfer.BuildReceive(locator)
	if err != nil {
		s.invalidRequest(err)
		return err
	}
	return s.coordinator.Submit(job)
}

// Poll forwards to the coordinator; see transfer.Coordinator.Poll.
func (s *Session) Poll() bool {
	return s.coordinator.Poll()
}

func (s *Session) State() transfer.State {
	return s.coordinator.State()
}

func (s *Session) PollInterval() time.Duration {
	return s.coordinator.PollInterval()
}

// Wait polls on a ticker until the running job has been reported. Hosts
// without their own event loop use it instead of a UI tick.
func (s *Session) Wait(ctx context.Context) error {
	if !s.coordinator.Poll() {
		return nil
	}
	ticker := time.NewTicker(s.coordinator.PollInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !s.coordinator.Poll() {
				return nil
			}
		}
	}
}

func (s *Session) Close() {
	s.coordinator.Close()
}

func (s *Session) directoryFailed(ctx context.Context, err error) {
	slog.Warn("Could not list Taildrop devices", "error", err)
	if !s.opts.NotifyDirectoryErrors {
		return
	}
	n := notify.Notification{
		Type:    notify.TypeDirectoryError,
		Title:   "Taildrop devices unavailable",
		Message: err.Error(),
		Error:   true,
	}
	if nerr := s.notifier.Notify(ctx, n); nerr != nil {
		slog.Warn("Failed to deliver notification", "error", nerr)
	}
}

func (s *Session) invalidRequest(err error) {
	slog.Warn("Ignoring transfer request", "error", err)
	title := "Nothing to send"
	var verr *transfer.ValidationError
	if errors.As(err, &verr) && !errors.Is(err, transfer.ErrNoFiles) {
		title = "Taildrop request invalid"
	}
	n := notify.Notification{
		Type:    notify.TypeInvalidRequest,
		Title:   title,
		Message: err.Error(),
		Error:   true,
	}
	if nerr := s.notifier.Notify(context.Background(), n); nerr != nil {
		slog.Warn("Failed to deliver notification", "error", nerr)
	}
}
