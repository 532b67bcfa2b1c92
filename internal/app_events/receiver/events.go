package receiver

import (
	appevents "github.com/rescp17/taildropMenu/internal/app_events"
)

// --- UI to App Events ---

// ChangeDirectoryEvent asks to receive into another directory, replacing the
// receive in progress.
type ChangeDirectoryEvent struct {
	appevents.Event
	Dir string
}

var _ appevents.AppEvent = ChangeDirectoryEvent{}

// --- App to UI Messages ---

// ReceiveStartedMsg reports whether a receive into Dir was started.
type ReceiveStartedMsg struct {
	appevents.UIMessage
	Dir string
	Err error
}

var _ appevents.AppUIMessage = ReceiveStartedMsg{}
