package supervisor

import (
	"fmt"
	"log"
	"time"

	"github.com/BirdseyeSoftware/distributed-process-platform/actor"
	"github.com/BirdseyeSoftware/distributed-process-platform/sysmsg"
)

type initMsg struct {
	reply *actor.PID
}

type ackMsg struct {
	children map[string]*actor.PID
}

// childRecord is the supervisor's bookkeeping for one running or
// recently-dead child.
type childRecord struct {
	id       string
	pid      *actor.PID
	restarts []time.Time
	dead     bool
}

type supervisorState struct {
	specs   childSpecMap
	order   []string
	options Options
	byName  map[string]*childRecord
	byPID   map[string]*childRecord
}

// Start spawns a supervisor actor that brings up every child spec under
// the configured strategy, and blocks until the initial set has started.
// The returned PID can itself be supervised by wrapping it in a ChildSpec
// one level up. The children map holds each child's address at the moment
// Start returned, keyed by its ChildSpec id; it goes stale the moment any
// child restarts, so long-lived callers should re-derive the current
// address from the supervisor rather than caching this map.
func Start(options Options, specs ...ChildSpec) (supervisorPID *actor.PID, children map[string]*actor.PID, err error) {
	specsMap, order, err := specsToMap(specs)
	if err != nil {
		return nil, nil, err
	}
	if err := options.checkOptions(); err != nil {
		return nil, nil, err
	}

	supPID := actor.SpawnSupervisor(run, specsMap, order, options)

	future := actor.NewFutureActor()
	defer future.Dispose()
	future.Send(supPID, initMsg{reply: future.Self()})
	resp, err := future.Recv()
	if err != nil {
		return nil, nil, fmt.Errorf("supervisor: %s failed to start: %w", options.Name, err)
	}
	ack, ok := resp.(ackMsg)
	if !ok {
		return nil, nil, fmt.Errorf("supervisor: %s got an unexpected start reply %T", options.Name, resp)
	}
	return supPID, ack.children, nil
}

func run(sup *actor.Actor) {
	// linked children's abnormal exits arrive as observable sysmsg.Exit
	// values instead of panicking this actor too.
	sup.TrapExit(true)

	specs := sup.Args()[0].(childSpecMap)
	order := sup.Args()[1].([]string)
	options := sup.Args()[2].(Options)

	st := &supervisorState{
		specs:   specs,
		order:   order,
		options: options,
		byName:  make(map[string]*childRecord, len(order)),
		byPID:   make(map[string]*childRecord, len(order)),
	}

	spawnChild := func(name string) {
		spec := specs[name]
		var child *actor.PID
		if spec.ChildType == TypeSupervisor {
			child = sup.SpawnSupervisorLink(spec.Start.ActorFunc, spec.Start.Args...)
		} else {
			child = sup.SpawnLink(spec.Start.ActorFunc, spec.Start.Args...)
		}
		rec := &childRecord{id: name, pid: child}
		st.byName[name] = rec
		st.byPID[child.ID()] = rec
	}

	shutdownChild := func(rec *childRecord) {
		if rec.dead {
			return
		}
		rec.dead = true
		delete(st.byPID, rec.pid.ID())
		spec := specs[rec.id]
		rec.pid.SendSystemMessage(sysmsg.Shutdown{Parent: sup.Self(), Shutdown: spec.Shutdown})
		rec.pid.Shutdown()
	}

	markDead := func(rec *childRecord) {
		rec.dead = true
		delete(st.byPID, rec.pid.ID())
	}

	// withinRestartIntensity prunes restarts older than the configured
	// period and reports whether one more restart still fits the budget.
	withinRestartIntensity := func(rec *childRecord) bool {
		now := time.Now()
		cutoff := now.Add(-time.Duration(st.options.Period) * time.Second)
		kept := rec.restarts[:0]
		for _, t := range rec.restarts {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		rec.restarts = append(kept, now)
		return len(rec.restarts) <= st.options.MaxRestarts
	}

	var maxRestartsReached func()
	maxRestartsReached = func() {
		for _, rec := range st.byName {
			shutdownChild(rec)
		}
		panic(sysmsg.Exit{
			Who:    sup.Self(),
			Reason: sysmsg.Reason{Type: sysmsg.ReasonSupervisorMaxRestarts, Details: st.options.Name},
		})
	}

	restartChild := func(name string) {
		rec := st.byName[name]
		if !withinRestartIntensity(rec) {
			maxRestartsReached()
			return
		}
		spawnChild(name)
	}

	handleOneForAll := func(failed string) {
		for _, name := range st.order {
			rec := st.byName[name]
			if name == failed {
				markDead(rec)
				continue
			}
			shutdownChild(rec)
		}
		for _, name := range st.order {
			restartChild(name)
		}
	}

	handleRestForOne := func(failed string) {
		idx := 0
		for i, name := range st.order {
			if name == failed {
				idx = i
				break
			}
		}
		rest := st.order[idx:]
		for _, name := range rest {
			rec := st.byName[name]
			if name == failed {
				markDead(rec)
				continue
			}
			shutdownChild(rec)
		}
		for _, name := range rest {
			restartChild(name)
		}
	}

	handleChildExit := func(name string, reason sysmsg.Reason) {
		rec := st.byName[name]
		if rec == nil || rec.dead {
			// already reaped by a cascading shutdown we ourselves issued.
			return
		}
		spec := specs[name]
		markDead(rec)

		shouldRestart := spec.Restart == RestartAlways ||
			(spec.Restart == RestartTransient && reason.Type != sysmsg.ReasonNormal)
		if !shouldRestart {
			return
		}
		switch st.options.Strategy {
		case OneForOneStrategy:
			restartChild(name)
		case OneForAllStrategy:
			handleOneForAll(name)
		case RestForOneStrategy:
			handleRestForOne(name)
		}
	}

	for _, name := range order {
		spawnChild(name)
	}

	sup.Receive(func(message interface{}) bool {
		switch msg := message.(type) {
		case initMsg:
			children := make(map[string]*actor.PID, len(st.byName))
			for name, rec := range st.byName {
				children[name] = rec.pid
			}
			actor.Send(msg.reply, ackMsg{children: children})
		case sysmsg.Exit:
			who, ok := msg.Who.(*actor.PID)
			if !ok {
				log.Println("supervisor: exit notice from a non-local source, ignoring")
				return true
			}
			rec, found := st.byPID[who.ID()]
			if !found {
				// a race with a shutdown we just issued ourselves, or an
				// exit we've already reaped through a cascading restart.
				return true
			}
			handleChildExit(rec.id, msg.Reason)
		default:
			log.Println("supervisor: unexpected message", msg)
		}
		return true
	})
}
