package mailbox

import (
	"fmt"
	"time"

	"github.com/BirdseyeSoftware/distributed-process-platform/sysmsg"
)

// ErrDisposed is delivered to a FutureMailbox's handler once the mailbox has
// been disposed and no further message will ever arrive.
var ErrDisposed = fmt.Errorf("future mailbox is disposed")

// FutureMailbox is a small buffered channel mailbox for the ad-hoc actors
// registry.Await spins up to rendezvous with a reply. It never runs link or
// monitor bookkeeping of its own: Link and Monitor requests sent to it are
// dropped, and every other system message is handed straight to the
// caller's handler rather than through a SystemMessageHandler.
type FutureMailbox struct {
	m    chan interface{}
	done chan struct{}
}

// NewFutureMailbox returns a FutureMailbox able to hold a couple of
// in-flight notifications (e.g. a ProcessDown racing a late reply) without
// blocking the sender.
func NewFutureMailbox() *FutureMailbox {
	return &FutureMailbox{
		m:    make(chan interface{}, 4),
		done: make(chan struct{}),
	}
}

func (f *FutureMailbox) SetSystemMessageHandler(SystemMessageHandler) {}

func (f *FutureMailbox) SendUserMessage(message interface{}) {
	select {
	case <-f.done:
	case f.m <- message:
	}
}

func (f *FutureMailbox) SendSystemMessage(message interface{}) {
	switch message.(type) {
	case sysmsg.Monitor, sysmsg.Link:
		return
	}
	f.SendUserMessage(message)
}

func (f *FutureMailbox) Receive(handler MessageHandler) {
	select {
	case msg := <-f.m:
		handler(msg)
	case <-f.done:
		handler(ErrDisposed)
	}
}

func (f *FutureMailbox) ReceiveWithTimeout(d time.Duration, handler MessageHandler) {
	select {
	case msg := <-f.m:
		handler(msg)
	case <-time.After(d):
		handler(sysmsg.Timeout{Duration: d})
	case <-f.done:
		handler(ErrDisposed)
	}
}

func (f *FutureMailbox) Dispose() {
	select {
	case <-f.done:
	default:
		close(f.done)
	}
}
