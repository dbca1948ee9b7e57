package registry

import "github.com/BirdseyeSoftware/distributed-process-platform/actor"

// Addressable is anything that can be resolved to a live process address:
// a bare PID wrapped with Of, or a Registry handle. Every verb in this
// package accepts an Addressable wherever it needs a registry address.
type Addressable interface {
	Resolve() (*actor.PID, bool)
}

// pidAddress lets a bare *actor.PID satisfy Addressable directly.
type pidAddress struct {
	pid *actor.PID
}

func (p pidAddress) Resolve() (*actor.PID, bool) {
	return p.pid, p.pid != nil
}

// Of wraps a PID as an Addressable.
func Of(pid *actor.PID) Addressable {
	return pidAddress{pid: pid}
}

func resolve(addr Addressable) (*actor.PID, bool) {
	if addr == nil {
		return nil, false
	}
	return addr.Resolve()
}
