package registry

import (
	"github.com/BirdseyeSoftware/distributed-process-platform/actor"
	"github.com/BirdseyeSoftware/distributed-process-platform/sysmsg"
)

// EventKind enumerates the five event constructors the source can emit
// against a key.
type EventKind int

const (
	EventRegistered EventKind = iota
	EventUnregistered
	EventLeaseExpired
	EventOwnerDied
	EventOwnerChanged
)

// Mask is a bitset of the four subscribable event categories. A nil
// *Mask on a subscription means "every category".
type Mask uint8

const (
	OnRegistered Mask = 1 << iota
	OnUnregistered
	OnOwnershipChange
	OnLeaseExpiry
)

// maskFor is the total function folding the five event constructors into
// the four mask categories; OwnerDied and OwnerChanged both fold to
// OnOwnershipChange.
func maskFor(kind EventKind) Mask {
	switch kind {
	case EventRegistered:
		return OnRegistered
	case EventUnregistered:
		return OnUnregistered
	case EventLeaseExpired:
		return OnLeaseExpiry
	case EventOwnerDied, EventOwnerChanged:
		return OnOwnershipChange
	default:
		panic("registry: unhandled event kind in maskFor")
	}
}

// KeyUpdateEvent describes a single change to a key's registration state.
type KeyUpdateEvent struct {
	Kind EventKind
	// Owner is set for EventRegistered.
	Owner *actor.PID
	// PrevOwner/NewOwner are set for EventOwnerChanged; this registry
	// never currently produces OwnerChanged (no ownership-transfer verb
	// exists), but the constructor is modeled for completeness per §3.
	PrevOwner *actor.PID
	NewOwner  *actor.PID
	// Reason is set for EventOwnerDied.
	Reason sysmsg.Reason
}

func registeredEvent(owner *actor.PID) KeyUpdateEvent {
	return KeyUpdateEvent{Kind: EventRegistered, Owner: owner}
}

func unregisteredEvent() KeyUpdateEvent {
	return KeyUpdateEvent{Kind: EventUnregistered}
}

func ownerDiedEvent(reason sysmsg.Reason) KeyUpdateEvent {
	return KeyUpdateEvent{Kind: EventOwnerDied, Reason: reason}
}
