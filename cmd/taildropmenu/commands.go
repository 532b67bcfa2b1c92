package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/bytedance/sonic"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rescp17/taildropMenu/internal/config"
	"github.com/rescp17/taildropMenu/internal/logging"
	"github.com/rescp17/taildropMenu/internal/util"
	"github.com/rescp17/taildropMenu/pkg/discovery"
	"github.com/rescp17/taildropMenu/pkg/extension"
	"github.com/rescp17/taildropMenu/pkg/notify"
	"github.com/rescp17/taildropMenu/pkg/tailscale"
	"github.com/rescp17/taildropMenu/pkg/transfer"
	"github.com/rescp17/taildropMenu/pkg/ui"
)

const appName = "Taildrop"

func newDevicesCmd(cfg *config.Config, flags *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List your devices that can receive Taildrop files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := logging.Setup(os.Stderr, flags.logLevel); err != nil {
				return err
			}
			session := newSession(*cfg, notify.Nop{})
			devices, err := session.RefreshDevices(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeDevicesJSON(cmd.OutOrStdout(), devices)
			}
			writeDevicesTable(cmd.OutOrStdout(), devices, cfg.ShowDNSName)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the list as JSON")
	return cmd
}

func newSendCmd(cfg *config.Config, flags *globalFlags) *cobra.Command {
	var target string
	var noTUI bool
	cmd := &cobra.Command{
		Use:   "send [files...]",
		Short: "Send files to one of your devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			uris, err := toURIs(args)
			if err != nil {
				return err
			}
			if noTUI || (target != "" && len(uris) > 0) {
				if target == "" {
					return errors.New("--to is required without the TUI")
				}
				return runHeadless(cmd, *cfg, flags.logLevel, func(ctx context.Context, session *extension.Session) error {
					device, err := session.FindDevice(ctx, target)
					if err != nil {
						return err
					}
					if !device.Online {
						slog.Warn("Device is offline, tailscale will fail", "device", device.DNSName)
					}
					return session.Send(uris, device)
				})
			}
			return runTUI(*cfg, *flags, ui.Sender, ui.Options{URIs: uris})
		},
	}
	cmd.Flags().StringVar(&target, "to", "", "Target device (machine or DNS name)")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Run without the terminal UI")
	return cmd
}

func newReceiveCmd(cfg *config.Config, flags *globalFlags) *cobra.Command {
	var noTUI bool
	cmd := &cobra.Command{
		Use:   "receive [dir]",
		Short: "Move files waiting in the Taildrop inbox into a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if !strings.Contains(dir, "://") {
				exists, isDir, err := util.CheckDirectory(dir)
				if err != nil {
					return err
				}
				if !exists || !isDir {
					return fmt.Errorf("not a directory: %s", dir)
				}
				uri, err := util.PathToFileURI(dir)
				if err != nil {
					return err
				}
				dir = uri
			}
			if noTUI {
				return runHeadless(cmd, *cfg, flags.logLevel, func(ctx context.Context, session *extension.Session) error {
					return session.Receive(dir)
				})
			}
			return runTUI(*cfg, *flags, ui.Receiver, ui.Options{Dir: dir})
		},
	}
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Run without the terminal UI")
	return cmd
}

func newSession(cfg config.Config, notifier notify.Notifier) *extension.Session {
	client := tailscale.NewClient(tailscale.NewCLI(cfg.TailscaleBinary))
	directory := discovery.NewDirectory(client, cfg.HideOffline)
	devices := discovery.NewCachedDirectory(directory, cfg.DeviceCacheTTL)
	coordinator := transfer.NewCoordinator(client, notifier, cfg.Transfer())
	return extension.NewSession(devices, coordinator, notifier, extension.Options{
		ShowDNSName:           cfg.ShowDNSName,
		NotifyDirectoryErrors: cfg.NotifyDirectoryErrors,
	})
}

func configuredNotifier(cfg config.Config) notify.Notifier {
	switch cfg.Notifier {
	case config.NotifierDesktop:
		return notify.NewDesktop(appName)
	case config.NotifierSocket:
		return notify.NewSocket(cfg.NotifySocket)
	case config.NotifierLog:
		return notify.Log{}
	default:
		return notify.Nop{}
	}
}

// flushNotifier lets background socket deliveries finish before exit.
func flushNotifier(n notify.Notifier) {
	if sock, ok := n.(*notify.Socket); ok {
		sock.Wait()
	}
}

// runTUI logs to a file so the log does not draw over the interface.
func runTUI(cfg config.Config, flags globalFlags, mode ui.Mode, opts ui.Options) error {
	f, err := logging.OpenFile(flags.logFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close log file", "error", err)
		}
	}()
	if _, err := logging.Setup(f, flags.logLevel); err != nil {
		return err
	}

	results := notify.NewChannel(16)
	configured := configuredNotifier(cfg)
	defer flushNotifier(configured)
	session := newSession(cfg, notify.Multi{results, configured})
	defer session.Close()

	p := tea.NewProgram(ui.InitialModel(mode, session, results, opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}

// runHeadless starts one job and polls it to completion. An interrupt kills
// a running receive; the process exits non-zero when the job failed.
func runHeadless(cmd *cobra.Command, cfg config.Config, logLevel string, start func(context.Context, *extension.Session) error) error {
	if _, err := logging.Setup(os.Stderr, logLevel); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		mu      sync.Mutex
		outcome *notify.Notification
	)
	record := notify.Func(func(_ context.Context, n notify.Notification) error {
		if n.Type == notify.TypeTransferResult {
			mu.Lock()
			outcome = &n
			mu.Unlock()
		}
		return nil
	})
	configured := configuredNotifier(cfg)
	defer flushNotifier(configured)
	session := newSession(cfg, notify.Multi{record, notify.Log{}, configured})

	if err := start(ctx, session); err != nil {
		return err
	}

	finished := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(finished)
		return session.Wait(gctx)
	})
	g.Go(func() error {
		select {
		case <-finished:
			return nil
		case <-gctx.Done():
			session.Close()
			return gctx.Err()
		}
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("interrupted: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if outcome == nil {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), outcome.Message)
	if outcome.Error {
		return errors.New(outcome.Title)
	}
	return nil
}

// toURIs accepts plain paths and file:// URIs alike.
func toURIs(args []string) ([]string, error) {
	uris := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.Contains(arg, "://") {
			uris = append(uris, arg)
			continue
		}
		uri, err := util.PathToFileURI(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", arg, err)
		}
		uris = append(uris, uri)
	}
	return uris, nil
}

func writeDevicesJSON(w io.Writer, devices []discovery.Device) error {
	type entry struct {
		Name    string `json:"name"`
		DNSName string `json:"dns_name"`
		Online  bool   `json:"online"`
	}
	entries := make([]entry, 0, len(devices))
	for _, d := range devices {
		entries = append(entries, entry{Name: d.DisplayName(), DNSName: d.DNSName, Online: d.Online})
	}
	data, err := sonic.ConfigStd.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode devices: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

var deviceColumns = []util.Column{
	{Title: "NAME", Width: 32},
	{Title: "STATUS", Width: 8},
}

func writeDevicesTable(w io.Writer, devices []discovery.Device, showDNSName bool) {
	if len(devices) == 0 {
		fmt.Fprintln(w, "No Taildrop devices found.")
		return
	}
	fmt.Fprintln(w, util.Header(deviceColumns))
	for _, d := range devices {
		status := "online"
		if !d.Online {
			status = "offline"
		}
		fmt.Fprintln(w, util.Line(deviceColumns, d.Label(showDNSName), status))
	}
}
