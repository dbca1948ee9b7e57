package actor

import (
	"log"

	"github.com/BirdseyeSoftware/distributed-process-platform/sysmsg"
)

type systemHandler struct {
	actor *Actor
}

// HandleSystemMessage is called by the mailbox receiver for every system
// message ahead of any queued user message.
func (sysHandler *systemHandler) HandleSystemMessage(message interface{}) (bool, interface{}) {
	switch msg := message.(type) {
	case sysmsg.ProcessDown:
		// monitors are purely observational; always pass through.
		return true, msg
	case sysmsg.Exit:
		if sysHandler.actor.trapExited() {
			return true, msg
		}
		switch msg.Reason.Type {
		case sysmsg.ReasonKilled, sysmsg.ReasonException:
			panic(sysmsg.Exit{
				Who:      sysHandler.actor.Self(),
				Parent:   msg.Who,
				Reason:   msg.Reason,
				Relation: sysmsg.Linked,
			})
		}
		return true, msg
	case sysmsg.Shutdown:
		if sysHandler.actor.trapExited() {
			return true, msg
		}
		panic(sysmsg.Exit{
			Who:    sysHandler.actor.Self(),
			Parent: msg.Parent,
			Reason: sysmsg.Reason{
				Type:    sysmsg.ReasonKilled,
				Details: "shutdown cmd received from supervisor",
			},
			Relation: sysmsg.Linked,
		})
	case sysmsg.Monitor:
		parent, ok := msg.Parent.(UserPID)
		if !ok {
			log.Println("actor: monitor request with non-UserPID parent, ignoring")
			return false, nil
		}
		if msg.Revert {
			sysHandler.actor.connectedActors.demoniteredBy(parent)
		} else {
			sysHandler.actor.connectedActors.monitoredBy(parent)
		}
	case sysmsg.Link:
		to, ok := msg.To.(UserPID)
		if !ok {
			log.Println("actor: link request with non-UserPID peer, ignoring")
			return false, nil
		}
		if msg.Revert {
			sysHandler.actor.connectedActors.unlink(to)
		} else {
			sysHandler.actor.connectedActors.link(to)
		}
	default:
		log.Println("actor: unknown system message", msg)
	}
	return false, nil
}

// CheckUnhandledShutdown, when deferred, turns a canceled actor context
// (PID.Shutdown) that the body never reacted to into a Killed exit panic,
// unless exits are trapped; a panic already in flight is re-raised. spawn
// does not defer it, so an actor body that ignores Done() keeps running
// after PID.Shutdown.
func (sysHandler *systemHandler) CheckUnhandledShutdown() {
	select {
	case <-sysHandler.actor.Done():
		if r := recover(); r != nil {
			panic(r)
		} else if sysHandler.actor.trapExited() {
			return
		}
		panic(sysmsg.Exit{
			Who: sysHandler.actor.Self(),
			Reason: sysmsg.Reason{
				Type:    sysmsg.ReasonKilled,
				Details: "shutdown cmd received from supervisor",
			},
			Relation: sysmsg.Linked,
		})
	default:
	}
}
