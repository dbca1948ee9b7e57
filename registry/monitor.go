package registry

import (
	"github.com/BirdseyeSoftware/distributed-process-platform/actor"
)

// MonitorRef is the opaque handle returned by Monitor; it appears in every
// notification delivered against the subscription it names, letting a
// subscriber that watches several keys tell them apart.
type MonitorRef struct {
	Subscriber *actor.PID
	Counter    uint64
}

// Equal reports whether two refs name the same subscription. MonitorRef
// uniqueness (§8 invariant 7) rests on Counter alone being strictly
// increasing per registry instance.
func (r MonitorRef) Equal(other MonitorRef) bool {
	return r.Counter == other.Counter && r.Subscriber.ID() == other.Subscriber.ID()
}

// kmRef is the internal record stored per-key: a MonitorRef plus the
// event mask that filters which updates actually get delivered.
type kmRef struct {
	ref  MonitorRef
	mask *Mask
}

func (k kmRef) wants(kind EventKind) bool {
	if k.mask == nil {
		return true
	}
	return *k.mask&maskFor(kind) != 0
}
