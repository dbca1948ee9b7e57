package mailbox

import "time"

const (
	defaultUserMailboxCap = 256
)

const (
	mailboxProcessing int32 = iota
	mailboxIdle
)

// MessageHandler processes a single mailbox message. Returning false stops
// the receive loop.
type MessageHandler func(message interface{}) (loop bool)

// SystemMessageHandler lets an actor hook into system-message dispatch
// without the mailbox package importing the actor package.
type SystemMessageHandler interface {
	// HandleSystemMessage applies any bookkeeping side effect the message
	// carries (link/monitor table updates, shutdown panics, ...) and
	// reports whether the (possibly rewritten) message should also be
	// handed to the actor's own MessageHandler.
	HandleSystemMessage(message interface{}) (passToUser bool, msg interface{})
}

// Mailbox is the per-actor inbound queue. Every implementation guarantees
// that messages sent via SendSystemMessage are observed by Receive ahead of
// any already-queued SendUserMessage traffic — this is what lets a
// ProcessDown signal overtake backlogged client requests.
type Mailbox interface {
	SendUserMessage(message interface{})
	SendSystemMessage(message interface{})
	Receive(handler MessageHandler)
	ReceiveWithTimeout(d time.Duration, handler MessageHandler)
	SetSystemMessageHandler(h SystemMessageHandler)
	Dispose()
}
