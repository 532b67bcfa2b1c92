package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	appevents "github.com/rescp17/taildropMenu/internal/app_events"
	senderEvent "github.com/rescp17/taildropMenu/internal/app_events/sender"
	"github.com/rescp17/taildropMenu/internal/style"
	"github.com/rescp17/taildropMenu/pkg/extension"
	"github.com/rescp17/taildropMenu/pkg/multiFilePicker"
	"github.com/rescp17/taildropMenu/pkg/notify"
)

// senderState defines the different states of the sender UI.
type senderState int

const (
	pickingFiles senderState = iota
	loadingDevices
	selectingDevice
	sendingFiles
	transferComplete
	transferFailed
)

type senderModel struct {
	state   senderState
	spinner spinner.Model
	table   table.Model
	fp      multiFilePicker.Model
	uris    []string
	picked  bool // selection came from the picker
	menu    extension.MenuItem
	device  string
	result  notify.Notification
}

var columns = []table.Column{
	{Title: "Index", Width: 6},
	{Title: "Device", Width: 24},
	{Title: "Status", Width: 10},
	{Title: "Action", Width: 52},
}

func initSenderModel(uris []string) senderModel {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(0),
	)
	t.SetStyles(style.NewTableStyles())

	m := senderModel{
		spinner: style.NewSpinner(),
		table:   t,
		uris:    uris,
		state:   loadingDevices,
	}
	if len(uris) == 0 {
		m.state = pickingFiles
		m.picked = true
		m.fp = multiFilePicker.InitialModel()
	}
	return m
}

func (m *model) initSender() tea.Cmd {
	if m.sender.state == pickingFiles {
		return m.sender.fp.Init()
	}
	return tea.Batch(m.sender.spinner.Tick, m.loadMenu())
}

// loadMenu builds the "Taildrop Send" entry for the current selection.
func (m *model) loadMenu() tea.Cmd {
	session, uris := m.session, m.sender.uris
	return func() tea.Msg {
		return senderEvent.MenuLoadedMsg{Menu: session.FileItems(context.Background(), uris)[0]}
	}
}

func (m *model) updateDeviceTable(menu extension.MenuItem) {
	m.sender.menu = menu
	rows := make([]table.Row, 0, len(menu.Submenu))
	for index, item := range menu.Submenu {
		status := "online"
		if !item.Sensitive {
			status = "offline"
		}
		rows = append(rows, table.Row{strconv.Itoa(index), item.Label, status, item.Tip})
	}
	m.sender.table.SetRows(rows)
	m.sender.table.SetHeight(len(rows) + 1)
	m.sender.table.SetCursor(0)
}

func (m *model) updateSender(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, processed := m.handleSenderAppEvent(msg); processed {
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.sender.state {
	case pickingFiles:
		cmd = m.updatePickingFilesState(msg)
	case selectingDevice:
		cmd = m.updateSelectingDeviceState(msg)
	case transferComplete, transferFailed:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, DefaultKeyMap.Again):
				if m.sender.picked {
					m.sender = initSenderModel(nil)
					m.status = ""
					return m, m.initSender()
				}
				return m, m.dispatch(appevents.QuitEvent{})
			case key.Matches(keyMsg, DefaultKeyMap.Quit), key.Matches(keyMsg, DefaultKeyMap.Back):
				return m, m.dispatch(appevents.QuitEvent{})
			}
		}
	}

	var spinCmd tea.Cmd
	if m.sender.state == loadingDevices || m.sender.state == sendingFiles {
		m.sender.spinner, spinCmd = m.sender.spinner.Update(msg)
	}
	return m, tea.Batch(cmd, spinCmd)
}

func (m *model) handleSenderAppEvent(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case senderEvent.MenuLoadedMsg:
		slog.Info("Device menu loaded", "device_count", len(msg.Menu.Submenu), "sensitive", msg.Menu.Sensitive)
		m.updateDeviceTable(msg.Menu)
		m.sender.state = selectingDevice
		if !msg.Menu.Sensitive {
			m.status = style.ErrorStyle.Render("A transfer is already running.")
		}
		return nil, true
	case senderEvent.SendStartedMsg:
		if msg.Err != nil {
			slog.Warn("Send was not started", "device", msg.Device, "error", msg.Err)
			m.status = style.ErrorStyle.Render(msg.Err.Error())
			m.sender.state = selectingDevice
			return nil, true
		}
		m.status = ""
		m.sender.device = msg.Device
		m.sender.state = sendingFiles
		return tea.Batch(m.startPolling(), m.sender.spinner.Tick), true
	case appevents.NotificationMsg:
		if msg.IsTransferResult() && m.sender.state == sendingFiles {
			m.sender.result = msg.Notification
			m.sender.state = transferComplete
			if msg.Notification.Error {
				m.sender.state = transferFailed
			}
		} else {
			m.status = renderNotification(msg.Notification)
		}
		return m.listenForAppMessages(), true
	}
	return nil, false
}

func (m *model) updatePickingFilesState(msg tea.Msg) tea.Cmd {
	if selected, ok := msg.(multiFilePicker.SelectedMsg); ok {
		slog.Info("Files picked", "count", len(selected.URIs))
		m.sender.uris = selected.URIs
		m.sender.state = loadingDevices
		return tea.Batch(m.sender.spinner.Tick, m.loadMenu())
	}
	newFpModel, cmd := m.sender.fp.Update(msg)
	m.sender.fp = newFpModel.(multiFilePicker.Model)
	return cmd
}

// updateSelectingDeviceState handles UI events for the selectingDevice state.
func (m *model) updateSelectingDeviceState(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Refresh):
		m.sender.state = loadingDevices
		return tea.Batch(m.sender.spinner.Tick, m.dispatch(senderEvent.RefreshDevicesEvent{}))
	case key.Matches(keyMsg, DefaultKeyMap.Select):
		devices := m.sender.menu.Submenu
		index := m.sender.table.Cursor()
		if index < 0 || index >= len(devices) {
			return nil
		}
		item := devices[index]
		switch {
		case !m.sender.menu.Sensitive:
			m.status = style.ErrorStyle.Render("A transfer is already running.")
			return nil
		case !item.Sensitive:
			m.status = style.ErrorStyle.Render(fmt.Sprintf("%s is offline.", item.Label))
			return nil
		}
		return m.dispatch(senderEvent.DeviceActivatedEvent{Item: item})
	case key.Matches(keyMsg, DefaultKeyMap.Quit), key.Matches(keyMsg, DefaultKeyMap.Back):
		return m.dispatch(appevents.QuitEvent{})
	}
	var cmd tea.Cmd
	m.sender.table, cmd = m.sender.table.Update(msg)
	return cmd
}

func (m *model) senderView() string {
	switch m.sender.state {
	case pickingFiles:
		return m.sender.fp.View()
	case loadingDevices:
		return fmt.Sprintf("\n%s Listing Taildrop devices...", m.sender.spinner.View())
	case selectingDevice:
		if len(m.sender.menu.Submenu) == 0 {
			return "\nNo Taildrop devices found.\n" + style.HelpStyle.Render(helpLine(DefaultKeyMap.Refresh, DefaultKeyMap.Quit))
		}
		s := fmt.Sprintf("\n%s  %d selected item(s)\n", style.TitleStyle.Render(m.sender.menu.Label), len(m.sender.uris))
		s += style.BaseStyle.Render(m.sender.table.View()) + "\n"
		s += style.HelpStyle.Render(helpLine(DefaultKeyMap.Select, DefaultKeyMap.Refresh, DefaultKeyMap.Quit))
		return s
	case sendingFiles:
		return fmt.Sprintf("\n%s Sending files to %s...", m.sender.spinner.View(), style.HighlightFontStyle.Render(m.sender.device))
	case transferComplete:
		return fmt.Sprintf("\n%s\n%s\n\n%s", style.SuccessStyle.Render(m.sender.result.Title), m.sender.result.Message, m.finishedHelp())
	case transferFailed:
		return fmt.Sprintf("\n%s\n%s\n\n%s", style.ErrorStyle.Render(m.sender.result.Title), m.sender.result.Message, m.finishedHelp())
	default:
		return "Internal error: unknown sender state"
	}
}

func (m *model) finishedHelp() string {
	if m.sender.picked {
		return "Press Enter to send more files."
	}
	return "Press Enter to exit."
}

func renderNotification(n notify.Notification) string {
	text := n.Title
	if n.Message != "" {
		text += ": " + n.Message
	}
	if n.Error {
		return style.ErrorStyle.Render(text)
	}
	return style.SuccessStyle.Render(text)
}
