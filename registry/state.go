package registry

import (
	"github.com/BirdseyeSoftware/distributed-process-platform/actor"
)

// state holds every table §3 describes. It is owned exclusively by the
// registry actor's goroutine; nothing outside dispatch ever touches it.
type state[K Keyable] struct {
	names    map[K]*actor.PID
	monitors map[K][]kmRef

	registeredPids map[string]*actor.PID
	listeningPids  map[string]*actor.PID

	monitorIDCount uint64
}

func newState[K Keyable]() *state[K] {
	return &state[K]{
		names:          make(map[K]*actor.PID),
		monitors:       make(map[K][]kmRef),
		registeredPids: make(map[string]*actor.PID),
		listeningPids:  make(map[string]*actor.PID),
		monitorIDCount: 1,
	}
}

// ensureRegistered adds p to registeredPids and starts monitoring it, if
// this is the first key it owns.
func (s *state[K]) ensureRegistered(act *actor.Actor, p *actor.PID) {
	if _, ok := s.registeredPids[p.ID()]; ok {
		return
	}
	s.registeredPids[p.ID()] = p
	act.Monitor(p)
}

// ensureListening adds p to listeningPids and starts monitoring it, if it
// isn't already being watched.
func (s *state[K]) ensureListening(act *actor.Actor, p *actor.PID) {
	if _, ok := s.listeningPids[p.ID()]; ok {
		return
	}
	s.listeningPids[p.ID()] = p
	act.Monitor(p)
}

func (s *state[K]) nextCounter() uint64 {
	s.monitorIDCount++
	return s.monitorIDCount
}
