package registry

import (
	"log"

	"github.com/BirdseyeSoftware/distributed-process-platform/actor"
	"github.com/BirdseyeSoftware/distributed-process-platform/sysmsg"
)

// Registry is a handle to a running registry actor. It is itself
// Addressable, so it can be passed anywhere a registry address is
// expected without unwrapping its PID.
type Registry[K Keyable] struct {
	pid *actor.PID
}

// Start spawns a registry actor and returns a handle to it. Spawning an
// actor in this runtime cannot itself fail short of the process being out
// of goroutines, so unlike the host runtime contract's "fatal if spawn
// fails" clause, Start has no error return; a caller that needs the
// liveness guarantee should supervise the returned PID (see the
// supervisor package).
func Start[K Keyable]() *Registry[K] {
	p := actor.Spawn(loop[K])
	return &Registry[K]{pid: p}
}

// PID returns the registry's address.
func (r *Registry[K]) PID() *actor.PID {
	return r.pid
}

// Resolve satisfies Addressable.
func (r *Registry[K]) Resolve() (*actor.PID, bool) {
	return r.pid, r.pid != nil
}

func loop[K Keyable](act *actor.Actor) {
	st := newState[K]()
	act.Receive(func(message interface{}) bool {
		dispatch(act, st, message)
		return true
	})
}

func dispatch[K Keyable](act *actor.Actor, st *state[K], message interface{}) {
	switch msg := message.(type) {
	case sysmsg.ProcessDown:
		reapDeath(act, st, msg)
	case registerKeyReq[K]:
		handleRegister(act, st, msg)
	case unregisterKeyReq[K]:
		handleUnregister(act, st, msg)
	case lookupKeyReq[K]:
		handleLookup(st, msg)
	case regNamesReq[K]:
		handleRegNames(st, msg)
	case monitorReq[K]:
		handleMonitor(act, st, msg)
	case queryDirect:
		handleQueryDirect(st, msg)
	default:
		// anything unrecognised is left unhandled, per §7: callers observe
		// this as a call timeout. Precondition violations on recognised
		// requests are dropped the same way, inside their handlers.
		log.Printf("registry: dropping unrecognised message %T", msg)
	}
}

// handleRegister implements §4.D register.
func handleRegister[K Keyable](act *actor.Actor, st *state[K], req registerKeyReq[K]) {
	if req.key.Kind != Alias || req.key.Scope == nil {
		// precondition violation; left unhandled.
		return
	}
	owner := req.key.Scope
	id := req.key.Identity

	existing, present := st.names[id]
	switch {
	case !present:
		st.ensureRegistered(act, owner)
		st.names[id] = owner
		notify(st, id, registeredEvent(owner))
		reply(req.reply, registerKeyReply{result: RegisteredOk})
	case existing.ID() == owner.ID():
		reply(req.reply, registerKeyReply{result: RegisteredOk})
	default:
		reply(req.reply, registerKeyReply{result: AlreadyRegistered})
	}
}

// handleUnregister implements §4.D unregister.
func handleUnregister[K Keyable](act *actor.Actor, st *state[K], req unregisterKeyReq[K]) {
	if req.key.Kind != Alias || req.key.Scope == nil {
		return
	}
	owner := req.key.Scope
	id := req.key.Identity

	existing, present := st.names[id]
	switch {
	case !present:
		reply(req.reply, unregisterKeyReply{result: UnregisterKeyNotFound})
	case existing.ID() != owner.ID():
		reply(req.reply, unregisterKeyReply{result: UnregisterInvalidKey})
	default:
		notify(st, id, unregisteredEvent())
		delete(st.names, id)
		delete(st.monitors, id)
		reply(req.reply, unregisterKeyReply{result: UnregisterOk})
	}
	_ = act
}

// handleLookup implements §4.D lookup.
func handleLookup[K Keyable](st *state[K], req lookupKeyReq[K]) {
	if req.key.Kind != Alias {
		return
	}
	owner, found := st.names[req.key.Identity]
	reply(req.reply, lookupKeyReply{owner: owner, found: found})
}

// handleRegNames implements §4.D "registered names for p".
func handleRegNames[K Keyable](st *state[K], req regNamesReq[K]) {
	var keys []K
	for k, owner := range st.names {
		if owner.ID() == req.owner.ID() {
			keys = append(keys, k)
		}
	}
	reply(req.reply, regNamesReply[K]{keys: keys})
}

// handleMonitor implements §4.E monitor.
func handleMonitor[K Keyable](act *actor.Actor, st *state[K], req monitorReq[K]) {
	id := req.key.Identity
	counter := st.nextCounter()
	ref := MonitorRef{Subscriber: req.caller, Counter: counter}
	kref := kmRef{ref: ref, mask: req.mask}

	st.ensureListening(act, req.caller)

	if kref.wants(EventRegistered) {
		switch req.key.Kind {
		case Alias:
			if owner, ok := st.names[id]; ok {
				deliver(id, kref, registeredEvent(owner))
			}
		case Property:
			// Property replay is deliberately a no-op: the source's fallback to
			// the registry's own pid when scope is None is almost certainly
			// wrong, and property storage itself is deferred (see §9).
		}
	}

	st.monitors[id] = append(st.monitors[id], kref)
	reply(req.reply, monitorReply{ref: ref})
}

// handleQueryDirect implements the (ProcessId, QueryDirect) cast.
func handleQueryDirect[K Keyable](st *state[K], q queryDirect) {
	switch q.variant {
	case snapshotNames:
		snap := make(map[K]*actor.PID, len(st.names))
		for k, v := range st.names {
			snap[k] = v
		}
		actor.Send(q.sender, namesSnapshot[K]{names: snap})
	case snapshotProperties:
		// properties storage is deferred (§6); this path currently yields a
		// fatal error, preserved verbatim rather than silently "fixed".
		panic("registry: properties snapshot requested but property storage is not implemented")
	}
}

// reapDeath implements §4.F.
func reapDeath[K Keyable](act *actor.Actor, st *state[K], down sysmsg.ProcessDown) {
	dead, ok := down.Who.(*actor.PID)
	if !ok {
		log.Printf("registry: ProcessDown with non-PID Who, ignoring: %v", down.Who)
		return
	}
	deadID := dead.ID()

	// 1. subscriber cleanup, strictly before owner cleanup is computed.
	if _, wasListening := st.listeningPids[deadID]; wasListening {
		delete(st.listeningPids, deadID)
		for key, refs := range st.monitors {
			kept := refs[:0]
			for _, r := range refs {
				if r.ref.Subscriber.ID() != deadID {
					kept = append(kept, r)
				}
			}
			if len(kept) == 0 {
				delete(st.monitors, key)
			} else {
				st.monitors[key] = kept
			}
		}
	}

	// 2. owner cleanup.
	if _, wasRegistered := st.registeredPids[deadID]; !wasRegistered {
		return
	}
	delete(st.registeredPids, deadID)

	var diedNames []K
	for k, owner := range st.names {
		if owner.ID() == deadID {
			diedNames = append(diedNames, k)
		}
	}

	for _, k := range diedNames {
		for _, kref := range st.monitors[k] {
			switch {
			case kref.wants(EventOwnerDied):
				deliver(k, kref, ownerDiedEvent(down.Reason))
			case kref.wants(EventUnregistered):
				deliver(k, kref, unregisteredEvent())
			}
		}
		delete(st.names, k)
	}

	_ = act
}

func notify[K Keyable](st *state[K], id K, event KeyUpdateEvent) {
	for _, kref := range st.monitors[id] {
		if kref.wants(event.Kind) {
			deliver(id, kref, event)
		}
	}
}

func deliver[K Keyable](id K, kref kmRef, event KeyUpdateEvent) {
	actor.Send(kref.ref.Subscriber, notification[K]{key: id, ref: kref.ref, event: event})
}

func reply(to *actor.PID, message interface{}) {
	if to == nil {
		return
	}
	actor.Send(to, message)
}
