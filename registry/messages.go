package registry

import (
	"github.com/BirdseyeSoftware/distributed-process-platform/actor"
)

// RegisterResult is the outcome of a register call.
type RegisterResult int

const (
	RegisteredOk RegisterResult = iota
	AlreadyRegistered
)

func (r RegisterResult) String() string {
	if r == AlreadyRegistered {
		return "AlreadyRegistered"
	}
	return "RegisteredOk"
}

// UnregisterResult is the outcome of an unregister call.
type UnregisterResult int

const (
	UnregisterOk UnregisterResult = iota
	UnregisterInvalidKey
	UnregisterKeyNotFound
)

func (r UnregisterResult) String() string {
	switch r {
	case UnregisterInvalidKey:
		return "UnregisterInvalidKey"
	case UnregisterKeyNotFound:
		return "UnregisterKeyNotFound"
	default:
		return "UnregisterOk"
	}
}

// registerKeyReq is the RegisterKeyReq wire message.
type registerKeyReq[K Keyable] struct {
	key   Key[K]
	reply *actor.PID
}

type registerKeyReply struct {
	result RegisterResult
}

// unregisterKeyReq is the UnregisterKeyReq wire message.
type unregisterKeyReq[K Keyable] struct {
	key   Key[K]
	reply *actor.PID
}

type unregisterKeyReply struct {
	result UnregisterResult
}

// lookupKeyReq is the LookupKeyReq wire message.
type lookupKeyReq[K Keyable] struct {
	key   Key[K]
	reply *actor.PID
}

type lookupKeyReply struct {
	owner *actor.PID
	found bool
}

// regNamesReq is the RegNamesReq wire message.
type regNamesReq[K Keyable] struct {
	owner *actor.PID
	reply *actor.PID
}

type regNamesReply[K Keyable] struct {
	keys []K
}

// monitorReq is the MonitorReq wire message.
type monitorReq[K Keyable] struct {
	key    Key[K]
	caller *actor.PID
	mask   *Mask
	reply  *actor.PID
}

type monitorReply struct {
	ref MonitorRef
}

// queryVariant distinguishes what a QueryDirect cast wants a snapshot of.
type queryVariant int

const (
	snapshotNames queryVariant = iota
	snapshotProperties
)

// queryDirect is the (ProcessId, QueryDirect) cast.
type queryDirect struct {
	sender  *actor.PID
	variant queryVariant
}

// namesSnapshot is the SnapshotMap reply to a snapshotNames query.
type namesSnapshot[K Keyable] struct {
	names map[K]*actor.PID
}

// notification is the fan-out RegistryKeyMonitorNotification message.
type notification[K Keyable] struct {
	key   K
	ref   MonitorRef
	event KeyUpdateEvent
}
