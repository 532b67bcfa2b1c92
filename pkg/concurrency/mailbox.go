package concurrency

import (
	"errors"
	"sync/atomic"
)

var ErrMailboxUsed = errors.New("mailbox already received its message")

// Mailbox is a single-slot handoff between one producer and one consumer.
// It accepts exactly one message and never blocks either side.
type Mailbox[T any] struct {
	ch     chan T
	posted atomic.Bool
}

func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{ch: make(chan T, 1)}
}

// Post stores v. Only the first call succeeds.
func (m *Mailbox[T]) Post(v T) error {
	if !m.posted.CompareAndSwap(false, true) {
		return ErrMailboxUsed
	}
	m.ch <- v
	return nil
}

// TryTake returns the message if one is waiting, without blocking.
func (m *Mailbox[T]) TryTake() (T, bool) {
	select {
	case v := <-m.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Posted reports whether a message was ever posted, taken or not.
func (m *Mailbox[T]) Posted() bool {
	return m.posted.Load()
}
