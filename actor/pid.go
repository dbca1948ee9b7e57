package actor

import (
	"github.com/BirdseyeSoftware/distributed-process-platform/internal/pid"
)

// PID is the public handle every actor gets back from Spawn. It wraps the
// runtime's internal identity; the alias keeps call sites from having to
// import internal/pid themselves.
type PID = pid.ProtectedPID

// UserPID is the minimal capability a process needs to be sent to.
type UserPID interface {
	ID() string
	SendUserMessage(message interface{})
	SendSystemMessage(message interface{})
}

// ClosablePID additionally allows disposing of the target's mailbox.
type ClosablePID interface {
	UserPID
	Dispose()
}

// CancelablePID additionally allows forcing the target to terminate.
type CancelablePID interface {
	UserPID
	Shutdown()
}
