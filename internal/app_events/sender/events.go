package sender

import (
	appevents "github.com/rescp17/taildropMenu/internal/app_events"
	"github.com/rescp17/taildropMenu/pkg/extension"
)

// --- App Events (from TUI to App) ---

// DeviceActivatedEvent is sent when the user picks a device row.
type DeviceActivatedEvent struct {
	appevents.Event
	Item extension.MenuItem
}

// RefreshDevicesEvent asks for a fresh device list, bypassing the cache.
type RefreshDevicesEvent struct {
	appevents.Event
}

var (
	_ appevents.AppEvent = DeviceActivatedEvent{}
	_ appevents.AppEvent = RefreshDevicesEvent{}
)

// --- UI Messages (from App to TUI) ---

// MenuLoadedMsg carries the "Taildrop Send" entry built for the current selection.
type MenuLoadedMsg struct {
	appevents.UIMessage
	Menu extension.MenuItem
}

// SendStartedMsg reports the outcome of a device activation. Err is set when
// the request was refused or the selection held nothing to send.
type SendStartedMsg struct {
	appevents.UIMessage
	Device string
	Err    error
}

var (
	_ appevents.AppUIMessage = MenuLoadedMsg{}
	_ appevents.AppUIMessage = SendStartedMsg{}
)
