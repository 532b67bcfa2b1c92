package extension_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rescp17/taildropMenu/internal/util"
	"github.com/rescp17/taildropMenu/pkg/discovery"
	"github.com/rescp17/taildropMenu/pkg/extension"
	"github.com/rescp17/taildropMenu/pkg/notify"
	"github.com/rescp17/taildropMenu/pkg/tailscale"
	"github.com/rescp17/taildropMenu/pkg/tailscale/tailscaletest"
	"github.com/rescp17/taildropMenu/pkg/transfer"
)

const statusJSON = `{
  "Self": {"UserID": 1, "DNSName": "me.tail1234.ts.net."},
  "Peer": {
    "nodekey:a": {"UserID": 1, "DNSName": "desktop.tail1234.ts.net.", "Online": true},
    "nodekey:b": {"UserID": 1, "DNSName": "attic.tail1234.ts.net.", "Online": false},
    "nodekey:c": {"UserID": 2, "DNSName": "friend.tail1234.ts.net.", "Online": true}
  },
  "User": {"1": {"ID": 1, "LoginName": "u@example.com"}}
}`

type recorder struct {
	mu   sync.Mutex
	seen []notify.Notification
}

func (r *recorder) Notify(_ context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
	return nil
}

func (r *recorder) all() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.seen...)
}

func newSession(t *testing.T, handler tailscaletest.HandlerFunc, opts extension.Options) (*extension.Session, *tailscaletest.Runner, *recorder) {
	t.Helper()
	runner := tailscaletest.NewRunner(handler)
	client := tailscale.NewClient(runner)
	rec := &recorder{}
	devices := discovery.NewCachedDirectory(discovery.NewDirectory(client, false), 0)
	coordinator := transfer.NewCoordinator(client, rec, &transfer.Config{PollInterval: 5 * time.Millisecond})
	return extension.NewSession(devices, coordinator, rec, opts), runner, rec
}

func answer(release <-chan struct{}) tailscaletest.HandlerFunc {
	return func(ctx context.Context, args []string) (tailscale.Output, error) {
		if args[0] == "status" {
			return tailscaletest.Succeed(statusJSON)
		}
		if release != nil {
			return tailscaletest.Blocking(ctx, release, "")
		}
		return tailscaletest.Succeed("")
	}
}

func tempFileURI(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	uri, err := util.PathToFileURI(path)
	require.NoError(t, err)
	return uri
}

func TestFileItems(t *testing.T) {
	s, _, _ := newSession(t, answer(nil), extension.Options{})

	items := s.FileItems(context.Background(), []string{"file:///tmp/a.txt"})
	require.Len(t, items, 1)

	send := items[0]
	assert.Equal(t, "TaildropExtension::Devices", send.Name)
	assert.Equal(t, "Taildrop Send", send.Label)
	assert.True(t, send.Sensitive)
	require.Len(t, send.Submenu, 2)

	attic, desktop := send.Submenu[0], send.Submenu[1]
	assert.Equal(t, "TaildropExtension::Device0", attic.Name)
	assert.Equal(t, "attic", attic.Label)
	assert.False(t, attic.Sensitive)
	assert.Equal(t, "TaildropExtension::Device1", desktop.Name)
	assert.Equal(t, "desktop", desktop.Label)
	assert.Equal(t, "Send selected files to desktop.tail1234.ts.net.", desktop.Tip)
	assert.True(t, desktop.Sensitive)
}

func TestFileItems_ShowDNSName(t *testing.T) {
	s, _, _ := newSession(t, answer(nil), extension.Options{ShowDNSName: true})

	items := s.FileItems(context.Background(), nil)
	item, ok := extension.Find(items, "TaildropExtension::Device1")
	require.True(t, ok)
	assert.Equal(t, "desktop.tail1234.ts.net", item.Label)
}

func TestFileItems_ActivateSends(t *testing.T) {
	s, runner, rec := newSession(t, answer(nil), extension.Options{})
	uri := tempFileURI(t, "report.pdf")

	items := s.FileItems(context.Background(), []string{uri})
	item, ok := extension.Find(items, "TaildropExtension::Device1")
	require.True(t, ok)
	require.NoError(t, item.Activate())

	require.NoError(t, s.Wait(context.Background()))

	calls := runner.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "cp", calls[1][1])
	assert.Equal(t, "desktop.tail1234.ts.net:", calls[1][3])

	got := rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, "1 file sent to desktop", got[0].Message)
}

func TestFileItems_InsensitiveWhileBusy(t *testing.T) {
	release := make(chan struct{})
	s, _, _ := newSession(t, answer(release), extension.Options{})
	defer close(release)

	require.NoError(t, s.Receive("file:///tmp"))

	items := s.FileItems(context.Background(), nil)
	assert.False(t, items[0].Sensitive)

	background := s.BackgroundItems(context.Background(), "file:///tmp")
	assert.True(t, background[0].Sensitive, "a receive may replace a receive")
}

func TestBackgroundItems_InsensitiveWhileSending(t *testing.T) {
	release := make(chan struct{})
	s, _, _ := newSession(t, answer(release), extension.Options{})
	defer close(release)

	require.NoError(t, s.Send([]string{tempFileURI(t, "a.txt")}, discovery.Device{DNSName: "desktop.tail1234.ts.net", Online: true}))

	items := s.BackgroundItems(context.Background(), "file:///tmp")
	require.Len(t, items, 1)
	assert.Equal(t, "TaildropExtension::Receive", items[0].Name)
	assert.Equal(t, "Receive files here.", items[0].Tip)
	assert.False(t, items[0].Sensitive)
}

func TestBackgroundItems_ActivateReceives(t *testing.T) {
	s, runner, rec := newSession(t, answer(nil), extension.Options{})

	items := s.BackgroundItems(context.Background(), "file:///home/u/Downloads")
	require.NoError(t, items[0].Activate())
	require.NoError(t, s.Wait(context.Background()))

	assert.Equal(t, [][]string{{"file", "get", "/home/u/Downloads"}}, runner.Calls())
	got := rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, "Files received in /home/u/Downloads", got[0].Message)
}

func TestDirectoryErrors(t *testing.T) {
	failing := func(ctx context.Context, args []string) (tailscale.Output, error) {
		return tailscaletest.Fail(args, 1, "tailscaled is not running")
	}

	t.Run("logged only by default", func(t *testing.T) {
		s, _, rec := newSession(t, failing, extension.Options{})

		items := s.FileItems(context.Background(), nil)
		require.Len(t, items, 1)
		assert.Empty(t, items[0].Submenu)
		assert.Empty(t, rec.all())
	})

	t.Run("notified when enabled", func(t *testing.T) {
		s, _, rec := newSession(t, failing, extension.Options{NotifyDirectoryErrors: true})

		items := s.FileItems(context.Background(), nil)
		assert.Empty(t, items[0].Submenu)

		got := rec.all()
		require.Len(t, got, 1)
		assert.Equal(t, notify.TypeDirectoryError, got[0].Type)
		assert.Contains(t, got[0].Message, "tailscaled is not running")
	})
}

func TestSend_NothingToSend(t *testing.T) {
	s, runner, rec := newSession(t, answer(nil), extension.Options{})

	err := s.Send([]string{"smb://nas/share/a.txt"}, discovery.Device{DNSName: "desktop.tail1234.ts.net"})
	assert.ErrorIs(t, err, transfer.ErrNoFiles)

	got := rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, notify.TypeInvalidRequest, got[0].Type)
	assert.Equal(t, "Nothing to send", got[0].Title)
	assert.Empty(t, runner.Calls())
	assert.Equal(t, transfer.StateIdle, s.State())
}

func TestFindDevice(t *testing.T) {
	s, _, _ := newSession(t, answer(nil), extension.Options{})

	d, err := s.FindDevice(context.Background(), "desktop")
	require.NoError(t, err)
	assert.Equal(t, "desktop.tail1234.ts.net", d.DNSName)

	d, err = s.FindDevice(context.Background(), "attic.tail1234.ts.net.")
	require.NoError(t, err)
	assert.False(t, d.Online)

	_, err = s.FindDevice(context.Background(), "friend")
	assert.ErrorIs(t, err, extension.ErrUnknownDevice)
}

func TestWait_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	s, _, _ := newSession(t, answer(release), extension.Options{})
	defer close(release)

	require.NoError(t, s.Receive("/tmp"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Wait(ctx), context.DeadlineExceeded)

	s.Close()
	assert.Equal(t, transfer.StateIdle, s.State())
}
