package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	appevents "github.com/rescp17/taildropMenu/internal/app_events"
	receiverEvent "github.com/rescp17/taildropMenu/internal/app_events/receiver"
	"github.com/rescp17/taildropMenu/internal/style"
	"github.com/rescp17/taildropMenu/pkg/notify"
)

// receiverState defines the different states of the receiver UI
type receiverState int

const (
	startingReceive receiverState = iota
	receivingFiles
	editingDirectory
	receiveComplete
	receiveFailed
)

type receiverModel struct {
	state     receiverState
	spinner   spinner.Model
	input     textinput.Model
	dir       string
	result    notify.Notification
	lastError error
}

func initReceiverModel(dir string) receiverModel {
	ti := textinput.New()
	ti.Placeholder = "directory to receive into"
	ti.CharLimit = 256
	ti.Width = 60

	return receiverModel{
		spinner: style.NewSpinner(),
		input:   ti,
		dir:     dir,
		state:   startingReceive,
	}
}

func (m *model) initReceiver() tea.Cmd {
	return tea.Batch(
		m.receiver.spinner.Tick,
		m.dispatch(receiverEvent.ChangeDirectoryEvent{Dir: m.receiver.dir}),
	)
}

func (m model) receiverView() string {
	switch m.receiver.state {
	case startingReceive:
		return fmt.Sprintf("\n %s Starting Taildrop receive into %s...", m.receiver.spinner.View(), style.FileStyle.Render(m.receiver.dir))
	case receivingFiles:
		return fmt.Sprintf("\n %s Receiving files into %s...\n%s",
			m.receiver.spinner.View(), style.FileStyle.Render(m.receiver.dir),
			style.HelpStyle.Render(helpLine(DefaultKeyMap.ChangeDir)))
	case editingDirectory:
		return fmt.Sprintf("\nReceive into:\n%s\n%s\n%s",
			m.receiver.input.View(),
			style.DisabledStyle.Render("The running receive is replaced."),
			style.HelpStyle.Render(helpLine(DefaultKeyMap.Again, DefaultKeyMap.Back)))
	case receiveComplete:
		return fmt.Sprintf("\n%s\n%s\n\nPress Enter to receive again, q to quit.",
			style.SuccessStyle.Render(m.receiver.result.Title), m.receiver.result.Message)
	case receiveFailed:
		return fmt.Sprintf("\nAn error occurred: %v\n\nPress Enter to try again, q to quit.", style.ErrorStyle.Render(m.receiverError()))
	default:
		return "Internal error: unknown receiver state"
	}
}

func (m model) receiverError() string {
	if m.receiver.lastError != nil {
		return m.receiver.lastError.Error()
	}
	return m.receiver.result.Message
}

func (m *model) updateReceiver(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case receiverEvent.ReceiveStartedMsg:
		if msg.Err != nil {
			slog.Warn("Receive was not started", "dir", msg.Dir, "error", msg.Err)
			m.receiver.lastError = msg.Err
			m.receiver.state = receiveFailed
			return m, nil
		}
		m.receiver.dir = msg.Dir
		m.receiver.lastError = nil
		m.receiver.state = receivingFiles
		return m, tea.Batch(m.startPolling(), m.receiver.spinner.Tick)
	case appevents.NotificationMsg:
		if msg.IsTransferResult() && m.receiver.state != receiveComplete && m.receiver.state != receiveFailed {
			m.receiver.result = msg.Notification
			m.receiver.lastError = nil
			m.receiver.state = receiveComplete
			if msg.Notification.Error {
				m.receiver.state = receiveFailed
			}
		} else {
			m.status = renderNotification(msg.Notification)
		}
		return m, m.listenForAppMessages()
	case tea.KeyMsg:
		if cmd, handled := m.handleReceiverKey(msg); handled {
			return m, cmd
		}
	}

	if m.receiver.state == editingDirectory {
		var cmd tea.Cmd
		m.receiver.input, cmd = m.receiver.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.receiver.state == startingReceive || m.receiver.state == receivingFiles {
		var spinCmd tea.Cmd
		m.receiver.spinner, spinCmd = m.receiver.spinner.Update(msg)
		cmds = append(cmds, spinCmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *model) handleReceiverKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch m.receiver.state {
	case receivingFiles:
		if key.Matches(msg, DefaultKeyMap.ChangeDir) {
			m.receiver.state = editingDirectory
			m.receiver.input.SetValue(m.receiver.dir)
			m.receiver.input.CursorEnd()
			return m.receiver.input.Focus(), true
		}
		if key.Matches(msg, DefaultKeyMap.Quit) {
			return m.dispatch(appevents.QuitEvent{}), true
		}
	case editingDirectory:
		switch {
		case key.Matches(msg, DefaultKeyMap.Again):
			dir := strings.TrimSpace(m.receiver.input.Value())
			m.receiver.input.Blur()
			if dir == "" {
				m.receiver.state = receivingFiles
				return nil, true
			}
			m.receiver.state = startingReceive
			m.receiver.dir = dir
			return tea.Batch(m.receiver.spinner.Tick, m.dispatch(receiverEvent.ChangeDirectoryEvent{Dir: dir})), true
		case key.Matches(msg, DefaultKeyMap.Back):
			m.receiver.input.Blur()
			m.receiver.state = receivingFiles
			return nil, true
		}
	case receiveComplete, receiveFailed:
		switch {
		case key.Matches(msg, DefaultKeyMap.Again):
			m.receiver.state = startingReceive
			m.status = ""
			return tea.Batch(m.receiver.spinner.Tick, m.dispatch(receiverEvent.ChangeDirectoryEvent{Dir: m.receiver.dir})), true
		case key.Matches(msg, DefaultKeyMap.Quit), key.Matches(msg, DefaultKeyMap.Back):
			return m.dispatch(appevents.QuitEvent{}), true
		}
	}
	return nil, false
}
