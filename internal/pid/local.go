package pid

import (
	"github.com/rs/xid"

	"github.com/BirdseyeSoftware/distributed-process-platform/internal/mailbox"
)

type localPID struct {
	id        string
	m         mailbox.Mailbox
	shutdown  func()
	actorType func(int32)
}

// NewPID wraps an already-constructed mailbox in a locally-addressable
// PID, minting a fresh process id.
func NewPID(m mailbox.Mailbox) PID {
	return &localPID{
		id: xid.New().String(),
		m:  m,
	}
}

func (p *localPID) ID() string {
	return p.id
}

func (p *localPID) Mailbox() mailbox.Mailbox {
	return p.m
}

func (p *localPID) ShutdownFn() func() {
	return p.shutdown
}

func (p *localPID) SetShutdownFn(shutdown func()) {
	p.shutdown = shutdown
}

func (p *localPID) SetActorTypeFn(fn func(int32)) {
	p.actorType = fn
}

func (p *localPID) ActorTypeFn() func(int32) {
	return p.actorType
}
