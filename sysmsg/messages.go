package sysmsg

import (
	"time"
)

// Exit is delivered to linked actors when a peer terminates or is shut down
// by its supervisor. Linked actors that don't trap exit propagate it by
// panicking with the same value.
type Exit struct {
	// Who is the actor that terminated.
	Who interface{}
	// Parent is the actor that made "Who" terminate, if any.
	Parent interface{}
	// Reason behind the termination.
	Reason Reason
	// Relation is always Linked; kept for symmetry with the wire shape
	// monitors used to share with links before the two were split.
	Relation Relation
}

func (Exit) systemMessage() {}

// ProcessDown is delivered to a monitor when the monitored process
// terminates. Unlike Exit it is strictly one-way: the recipient never
// propagates it, it only observes.
type ProcessDown struct {
	// Who is the process that terminated.
	Who interface{}
	// Reason behind the termination.
	Reason Reason
}

func (ProcessDown) systemMessage() {}

// Shutdown is a command sent by a supervisor asking a child to terminate.
type Shutdown struct {
	// Parent is the commanding supervisor.
	Parent interface{}
	// Shutdown carries the child's configured shutdown value.
	Shutdown int32
}

func (Shutdown) systemMessage() {}

// Monitor requests that the recipient start (or, if Revert, stop) notifying
// Parent with a ProcessDown message when the recipient terminates.
type Monitor struct {
	Parent interface{}
	// Revert is true when asking to be demonitored.
	Revert bool
}

func (Monitor) systemMessage() {}

// Link requests a bidirectional exit-propagation relationship with To.
type Link struct {
	To interface{}
	// Revert is true when asking to be unlinked.
	Revert bool
}

func (Link) systemMessage() {}

// Timeout is synthesized by a mailbox's ReceiveWithTimeout when no message
// arrives before the deadline.
type Timeout struct {
	Duration time.Duration
}

func (Timeout) systemMessage() {}
