package actor

import "github.com/BirdseyeSoftware/distributed-process-platform/sysmsg"

type connectedActorsRepository map[string]UserPID

// connectedActorsController tracks the two independent relationships an
// actor can have with its peers: bidirectional links and one-way monitors.
type connectedActorsController struct {
	*linkedActors
	*monitorActors
}

func newConnectedActorsController() *connectedActorsController {
	return &connectedActorsController{
		linkedActors:  &linkedActors{repo: connectedActorsRepository{}},
		monitorActors: &monitorActors{repo: connectedActorsRepository{}},
	}
}

func (actors *connectedActorsController) notifyLinked(exit sysmsg.Exit, shutdownChildren bool, supervisor UserPID) {
	actors.linkedActors.notify(exit, shutdownChildren, supervisor)
}

func (actors *connectedActorsController) notifyMonitors(down sysmsg.ProcessDown) {
	actors.monitorActors.notify(down)
}

/////////////

type linkedActors struct {
	// actors that are linked to me. two way communication.
	repo connectedActorsRepository
}

func (links *linkedActors) link(pid UserPID) {
	links.repo[pid.ID()] = pid
}

func (links *linkedActors) unlink(pid UserPID) {
	delete(links.repo, pid.ID())
}

func (links *linkedActors) notify(exit sysmsg.Exit, shutdownChildren bool, supervisor UserPID) {
	exit.Relation = sysmsg.Linked
	for _, linked := range links.repo {
		linked.SendSystemMessage(exit)
		// a supervisor's own crash must not shut down the supervisor that
		// spawned it.
		if shutdownChildren && (supervisor == nil || linked.ID() != supervisor.ID()) {
			if closable, ok := linked.(CancelablePID); ok {
				closable.Shutdown()
			}
		}
	}
}

///////////////////////

type monitorActors struct {
	// actors that are monitoring me. one way communication.
	repo connectedActorsRepository
}

func (monitors *monitorActors) monitoredBy(pid UserPID) {
	monitors.repo[pid.ID()] = pid
}

func (monitors *monitorActors) demoniteredBy(pid UserPID) {
	delete(monitors.repo, pid.ID())
}

func (monitors *monitorActors) notify(down sysmsg.ProcessDown) {
	for _, monitor := range monitors.repo {
		monitor.SendSystemMessage(down)
	}
}
