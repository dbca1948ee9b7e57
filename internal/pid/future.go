package pid

import (
	"github.com/rs/xid"

	"github.com/BirdseyeSoftware/distributed-process-platform/internal/mailbox"
)

// futurePID backs the short-lived actors registry.Await spins up to
// rendezvous with a reply. It satisfies the same PID interface as a regular
// process so it can be monitored and sent to exactly like any other.
type futurePID struct {
	id        string
	mailbox   *mailbox.FutureMailbox
	shutdown  func()
	actorType func(int32)
}

// NewFuturePID returns a PID backed by a FutureMailbox.
func NewFuturePID() PID {
	return &futurePID{
		id:      xid.New().String(),
		mailbox: mailbox.NewFutureMailbox(),
	}
}

func (f *futurePID) ID() string {
	return f.id
}

func (f *futurePID) Mailbox() mailbox.Mailbox {
	return f.mailbox
}

func (f *futurePID) ShutdownFn() func() {
	return f.shutdown
}

func (f *futurePID) SetShutdownFn(shutdown func()) {
	f.shutdown = shutdown
}

func (f *futurePID) SetActorTypeFn(fn func(int32)) {
	f.actorType = fn
}

func (f *futurePID) ActorTypeFn() func(int32) {
	return f.actorType
}
