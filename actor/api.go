package actor

import (
	"github.com/BirdseyeSoftware/distributed-process-platform/internal/context"
	"github.com/BirdseyeSoftware/distributed-process-platform/internal/mailbox"
	"github.com/BirdseyeSoftware/distributed-process-platform/internal/pid"
)

// Send delivers message to target's regular mailbox.
func Send(target UserPID, message interface{}) {
	target.SendUserMessage(message)
}

// Spawn starts fn in its own goroutine and returns its address.
func Spawn(fn Func, args ...interface{}) *PID {
	act := createActor(args...)
	spawn(fn, act)
	return act.Self()
}

func spawnLink(fn Func, to *PID, args ...interface{}) *PID {
	act := createActor(args...)
	act.connectedActors.link(to)
	spawn(fn, act)
	return act.Self()
}

func spawnMonitor(fn Func, by *PID, args ...interface{}) *PID {
	act := createActor(args...)
	act.connectedActors.monitoredBy(by)
	spawn(fn, act)
	return act.Self()
}

// SpawnSupervisor starts fn tagged as a SupervisorActor: if its own body
// panics, its still-linked children are shut down before the panic
// propagates, rather than merely notified.
func SpawnSupervisor(fn Func, args ...interface{}) *PID {
	act := createActor(args...)
	act.setActorType(SupervisorActor)
	spawn(fn, act)
	return act.Self()
}

// spawnSupervised spawns fn tagged as a SupervisorActor if isSupervisor,
// and records supervisor as the peer that must not be torn down if this
// actor's own crash cascades to its linked children.
func spawnSupervised(fn Func, supervisor UserPID, isSupervisor bool, args ...interface{}) *PID {
	act := createActor(args...)
	act.SetSupervisor(supervisor)
	if isSupervisor {
		act.setActorType(SupervisorActor)
	}
	spawn(fn, act)
	return act.Self()
}

func createActor(args ...interface{}) *Actor {
	m := mailbox.NewPriorityMailbox()
	rawPID := pid.NewPID(m)
	ctx := context.NewContext(rawPID, args)
	act := newActor(ctx, rawPID)
	m.SetSystemMessageHandler(&systemHandler{actor: act})
	return act
}

func spawn(fn Func, act *Actor) {
	go func() {
		defer act.handleTermination()
		fn(act)
	}()
}
