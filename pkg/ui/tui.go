package ui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	appevents "github.com/rescp17/taildropMenu/internal/app_events"
	receiverEvent "github.com/rescp17/taildropMenu/internal/app_events/receiver"
	senderEvent "github.com/rescp17/taildropMenu/internal/app_events/sender"
	"github.com/rescp17/taildropMenu/pkg/extension"
	"github.com/rescp17/taildropMenu/pkg/notify"
)

// Mode selects the screen the TUI starts with.
type Mode int

const (
	None Mode = iota
	Sender
	Receiver
)

// pollTickMsg drives Session.Poll from the bubbletea loop.
type pollTickMsg struct{}

// Options seeds the first screen.
type Options struct {
	// URIs is the send selection. When empty the file picker opens first.
	URIs []string
	// Dir is the receive target, a path or file:// URI.
	Dir string
}

type model struct {
	mode     Mode
	session  *extension.Session
	results  *notify.Channel
	polling  bool
	sender   senderModel
	receiver receiverModel
	status   string
	err      error
}

// InitialModel builds the TUI. results must be the channel the session's
// notifier writes to.
func InitialModel(m Mode, session *extension.Session, results *notify.Channel, opts Options) model {
	initial := model{
		mode:    m,
		session: session,
		results: results,
	}
	switch m {
	case Sender:
		initial.sender = initSenderModel(opts.URIs)
	case Receiver:
		initial.receiver = initReceiverModel(opts.Dir)
	}
	return initial
}

func (m model) Init() tea.Cmd {
	switch m.mode {
	case Sender:
		return tea.Batch(m.initSender(), m.listenForAppMessages())
	case Receiver:
		return tea.Batch(m.initReceiver(), m.listenForAppMessages())
	default:
		return nil
	}
}

func (m model) View() string {
	var s string
	switch m.mode {
	case Sender:
		s += m.senderView()
	case Receiver:
		s += m.receiverView()
	default:
		return ""
	}
	if m.status != "" {
		s += "\n" + m.status
	}
	s += "\nPress ctrl + c to quit"
	return s
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			cmd := m.dispatch(appevents.QuitEvent{})
			return m, cmd
		}
	case pollTickMsg:
		cmd := m.pollTick()
		return m, cmd
	}

	switch m.mode {
	case Sender:
		return m.updateSender(msg)
	case Receiver:
		return m.updateReceiver(msg)
	}
	return m, nil
}

// listenForAppMessages waits for the next notification addressed to the UI.
func (m *model) listenForAppMessages() tea.Cmd {
	results := m.results
	return func() tea.Msg {
		return appevents.NotificationMsg{Notification: <-results.C()}
	}
}

// startPolling arms the poll tick unless it is already running.
func (m *model) startPolling() tea.Cmd {
	if m.polling {
		return nil
	}
	m.polling = true
	return m.tick()
}

func (m *model) tick() tea.Cmd {
	return tea.Tick(m.session.PollInterval(), func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// pollTick re-arms the tick only while the session still has a job running.
func (m *model) pollTick() tea.Cmd {
	if m.session.Poll() {
		return m.tick()
	}
	m.polling = false
	return nil
}

// dispatch runs a UI request against the session. Anything that may touch
// the disk or the tailscale CLI runs as a command, off the update loop.
func (m *model) dispatch(event appevents.AppEvent) tea.Cmd {
	session := m.session
	switch ev := event.(type) {
	case appevents.QuitEvent:
		session.Close()
		return tea.Quit
	case senderEvent.RefreshDevicesEvent:
		uris := m.sender.uris
		return func() tea.Msg {
			if _, err := session.RefreshDevices(context.Background()); err != nil {
				slog.Debug("Device refresh failed", "error", err)
			}
			return senderEvent.MenuLoadedMsg{Menu: session.FileItems(context.Background(), uris)[0]}
		}
	case senderEvent.DeviceActivatedEvent:
		return func() tea.Msg {
			return senderEvent.SendStartedMsg{Device: ev.Item.Label, Err: ev.Item.Activate()}
		}
	case receiverEvent.ChangeDirectoryEvent:
		return func() tea.Msg {
			item := session.BackgroundItems(context.Background(), ev.Dir)[0]
			return receiverEvent.ReceiveStartedMsg{Dir: ev.Dir, Err: item.Activate()}
		}
	default:
		slog.Warn("Unhandled app event", "event", event)
		return nil
	}
}
