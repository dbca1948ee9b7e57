package pid

import (
	"github.com/BirdseyeSoftware/distributed-process-platform/internal/mailbox"
)

// PID is the internal identity behind every actor: its mailbox, its
// shutdown hook (installed by internal/context, invoked by a supervisor
// forcing termination) and its actor-type tag (worker vs supervisor, used
// when deciding whether a crash must also tear down children).
type PID interface {
	ID() string
	Mailbox() mailbox.Mailbox

	// ShutdownFn returns the function that cancels the actor's context.
	// Used by a supervisor forcing a child to terminate.
	ShutdownFn() func()
	SetShutdownFn(fn func())

	// ActorTypeFn/SetActorTypeFn record whether this PID belongs to a plain
	// worker or a supervisor; default is worker.
	SetActorTypeFn(fn func(int32))
	ActorTypeFn() func(int32)
}

// ProtectedPID is the only handle ever handed out to callers outside the
// actor that owns a PID. It narrows the rich internal PID interface down to
// what a remote caller should be able to do: look up the identity, send to
// it, and (if it holds the right capability) dispose or shut it down.
type ProtectedPID struct {
	pid PID
}

// NewProtectedPID wraps a PID for external use.
func NewProtectedPID(p PID) *ProtectedPID {
	return &ProtectedPID{pid: p}
}

// ExtractPID unwraps a ProtectedPID. Only code inside this module tree
// should ever need the raw PID back.
func ExtractPID(p *ProtectedPID) PID {
	return p.pid
}

// ID returns the process's opaque identity string.
func (p *ProtectedPID) ID() string {
	return p.pid.ID()
}

// SendUserMessage enqueues message on the wrapped process's mailbox.
func (p *ProtectedPID) SendUserMessage(message interface{}) {
	p.pid.Mailbox().SendUserMessage(message)
}

// SendSystemMessage enqueues a priority control message.
func (p *ProtectedPID) SendSystemMessage(message interface{}) {
	p.pid.Mailbox().SendSystemMessage(message)
}

// Dispose closes the process's mailbox so it can no longer accept messages.
func (p *ProtectedPID) Dispose() {
	p.pid.Mailbox().Dispose()
}

// Shutdown forces the process to terminate by canceling its context.
func (p *ProtectedPID) Shutdown() {
	if fn := p.pid.ShutdownFn(); fn != nil {
		fn()
	}
}
