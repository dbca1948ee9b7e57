package actor

import (
	"fmt"
	"sync/atomic"

	"github.com/BirdseyeSoftware/distributed-process-platform/internal/context"
	"github.com/BirdseyeSoftware/distributed-process-platform/internal/pid"
	"github.com/BirdseyeSoftware/distributed-process-platform/sysmsg"
)

const (
	trapExitNo int32 = iota
	trapExitYes
)

const (
	// WorkerActor is the default actor type; SupervisorActor marks an actor
	// whose crash must also pull down the children it was supervising.
	WorkerActor int32 = iota
	SupervisorActor
)

// Func is the body a spawned actor runs. It returns when the actor is done;
// any panic propagating out of it is treated as an abnormal exit.
type Func func(actor *Actor)

// Actor is the per-process state every running actor carries: its mailbox
// context, link/monitor bookkeeping, and exit-trapping flag.
type Actor struct {
	*context.Context
	trapExit        int32
	connectedActors *connectedActorsController
	self            *PID
	aType           int32
	supervisedBy    UserPID
}

func newActor(ctx *context.Context, rawPID pid.PID) *Actor {
	a := &Actor{
		Context:         ctx,
		trapExit:        trapExitNo,
		connectedActors: newConnectedActorsController(),
		self:            pid.NewProtectedPID(rawPID),
		aType:           WorkerActor,
	}
	rawPID.SetActorTypeFn(a.setActorType)
	return a
}

// SetSupervisor must only be called once, right after spawning by a
// supervisor, so handleTermination knows which linked peer not to shut down
// when cascading a supervisor's own crash.
func (a *Actor) SetSupervisor(p UserPID) {
	a.supervisedBy = p
}

func (a *Actor) supervisor() UserPID {
	return a.supervisedBy
}

func (a *Actor) setActorType(t int32) {
	atomic.StoreInt32(&a.aType, t)
}

func (a *Actor) actorType() int32 {
	return atomic.LoadInt32(&a.aType)
}

func (a *Actor) trapExited() bool {
	return atomic.LoadInt32(&a.trapExit) == trapExitYes
}

// Monitor asks target to notify this actor with a sysmsg.ProcessDown when
// it terminates.
func (a *Actor) Monitor(target *PID) {
	target.SendSystemMessage(sysmsg.Monitor{Parent: a.self})
}

// Demonitor cancels a previous Monitor call.
func (a *Actor) Demonitor(target *PID) {
	target.SendSystemMessage(sysmsg.Monitor{Parent: a.self, Revert: true})
}

// Link establishes a bidirectional exit-propagation relationship with
// target: if either side terminates abnormally, the other receives a
// sysmsg.Exit.
func (a *Actor) Link(target *PID) {
	target.SendSystemMessage(sysmsg.Link{To: a.self})
	a.connectedActors.link(target)
}

// Unlink tears down a previously established Link.
func (a *Actor) Unlink(target *PID) {
	target.SendSystemMessage(sysmsg.Link{To: a.self, Revert: true})
	a.connectedActors.unlink(target)
}

// SpawnLink spawns fn already linked to this actor.
func (a *Actor) SpawnLink(fn Func, args ...interface{}) *PID {
	child := spawnLink(fn, a.self, args...)
	a.connectedActors.link(child)
	return child
}

// SpawnMonitor spawns fn already monitored by this actor.
func (a *Actor) SpawnMonitor(fn Func, args ...interface{}) *PID {
	return spawnMonitor(fn, a.self, args...)
}

// SpawnSupervisorLink spawns fn as a nested SupervisorActor, linked to and
// supervised by this actor — the one-level-deep building block a
// supervision tree's intermediate nodes use to spawn child supervisors.
func (a *Actor) SpawnSupervisorLink(fn Func, args ...interface{}) *PID {
	child := spawnSupervised(fn, a.self, true, args...)
	a.connectedActors.link(child)
	return child
}

// TrapExit switches whether a linked peer's abnormal exit is delivered as
// an observable sysmsg.Exit message (true) or propagated as a panic that
// kills this actor too (false, the default).
func (a *Actor) TrapExit(trapExit bool) {
	trap := trapExitNo
	if trapExit {
		trap = trapExitYes
	}
	atomic.StoreInt32(&a.trapExit, trap)
}

// Self returns this actor's own address.
func (a *Actor) Self() *PID {
	return a.self
}

// handleTermination is deferred by every spawned goroutine. It disposes the
// mailbox and turns whatever panic (if any) unwound the actor body into
// Exit/ProcessDown notifications for linked and monitoring processes.
func (a *Actor) handleTermination() {
	a.self.Dispose()

	switch r := recover().(type) {
	case sysmsg.Exit:
		a.notifyLinkedActors(r, false)
		a.notifyMonitors(r)
	case sysmsg.Shutdown:
		exit := sysmsg.Exit{
			Who:    a.self,
			Parent: r.Parent,
			Reason: sysmsg.Reason{Type: sysmsg.ReasonKilled, Details: "shutdown cmd received from supervisor"},
		}
		a.notifyLinkedActors(exit, false)
		a.notifyMonitors(exit)
	default:
		if r != nil {
			exit := sysmsg.Exit{
				Who:    a.self,
				Reason: sysmsg.Reason{Type: sysmsg.ReasonException, Details: formatPanic(r)},
			}
			shutdownChildren := a.actorType() == SupervisorActor
			a.notifyLinkedActors(exit, shutdownChildren)
			a.notifyMonitors(exit)
			return
		}
		normal := sysmsg.Exit{
			Who:    a.self,
			Reason: sysmsg.Reason{Type: sysmsg.ReasonNormal},
		}
		a.notifyLinkedActors(normal, false)
		a.notifyMonitors(normal)
	}
}

func (a *Actor) notifyMonitors(exit sysmsg.Exit) {
	down := sysmsg.ProcessDown{Who: exit.Who, Reason: exit.Reason}
	a.connectedActors.notifyMonitors(down)
}

func (a *Actor) notifyLinkedActors(exit sysmsg.Exit, shutdownChildren bool) {
	exit.Relation = sysmsg.Linked
	a.connectedActors.notifyLinked(exit, shutdownChildren, a.supervisor())
}

func formatPanic(r interface{}) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(r)
}
