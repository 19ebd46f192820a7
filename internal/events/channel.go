package events

import "github.com/waabox/clubinho/internal/domain"

// ToastRequested is sent on a Channel for every published toast.
type ToastRequested struct {
	Toast domain.Toast
}

// APIErrorObserved is sent on a Channel for every classified API error.
type APIErrorObserved struct {
	Error domain.ClassifiedError
}

// Channel forwards notifications onto a buffered Go channel so an event loop
// (the terminal console) can receive them as messages. When the buffer is full
// the notification is dropped rather than stalling the request goroutine.
type Channel struct {
	ch chan any
}

// NewChannel creates a Channel with the given buffer size.
func NewChannel(size int) *Channel {
	if size <= 0 {
		size = 16
	}
	return &Channel{ch: make(chan any, size)}
}

// C returns the receive side. Values are ToastRequested or APIErrorObserved.
func (c *Channel) C() <-chan any {
	return c.ch
}

func (c *Channel) OnToast(t domain.Toast) {
	c.send(ToastRequested{Toast: t})
}

func (c *Channel) OnAPIError(e domain.ClassifiedError) {
	c.send(APIErrorObserved{Error: e})
}

func (c *Channel) send(v any) {
	select {
	case c.ch <- v:
	default:
	}
}
