package notify

import (
	"context"
	"errors"
)

var ErrChannelFull = errors.New("notification channel is full")

// Channel forwards notifications to a UI loop. It never blocks: when the
// buffer is full the notification is dropped and ErrChannelFull returned.
type Channel struct {
	ch chan Notification
}

func NewChannel(size int) *Channel {
	if size < 1 {
		size = 1
	}
	return &Channel{ch: make(chan Notification, size)}
}

func (c *Channel) Notify(ctx context.Context, n Notification) error {
	select {
	case c.ch <- n:
		return nil
	default:
		return ErrChannelFull
	}
}

// C is the receive side, read by the UI.
func (c *Channel) C() <-chan Notification {
	return c.ch
}
