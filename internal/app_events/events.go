package appevents

import (
	"github.com/rescp17/taildropMenu/pkg/notify"
)

// AppEvent is a marker interface for requests the TUI makes of the extension session.
// It uses an unexported method so that only types embedding Event satisfy it.
type AppEvent interface {
	isAppEvent()
}

// Event can be embedded in other event types to satisfy the AppEvent interface.
type Event struct{}

func (Event) isAppEvent() {}

// AppUIMessage is a marker interface for messages sent from the session side to the TUI.
type AppUIMessage interface {
	isUIMessage()
}

// UIMessage can be embedded in other types to implement the AppUIMessage interface.
type UIMessage struct{}

func (UIMessage) isUIMessage() {}

// --- App Events (from TUI to App) ---

// QuitEvent asks the host to cancel what can be cancelled and exit.
type QuitEvent struct {
	Event
}

// --- UI Messages (from App to TUI) ---

type AppErrorMsg struct {
	UIMessage
	Err error
}

// NotificationMsg carries a notification delivered by the coordinator or the
// session: a transfer result, a rejection or a device listing problem.
type NotificationMsg struct {
	UIMessage
	Notification notify.Notification
}

// IsTransferResult reports whether the notification ends a transfer.
func (m NotificationMsg) IsTransferResult() bool {
	return m.Notification.Type == notify.TypeTransferResult
}

var (
	_ AppEvent     = QuitEvent{}
	_ AppUIMessage = AppErrorMsg{}
	_ AppUIMessage = NotificationMsg{}
)
