package registry

import (
	"github.com/BirdseyeSoftware/distributed-process-platform/actor"
	"github.com/BirdseyeSoftware/distributed-process-platform/supervisor"
)

// ChildSpec wraps the registry's actor body as a supervisor.ChildSpec, for
// embedding in a supervisor.Start call. A restart hands back an empty
// registry and mints a fresh address — documented behavior, not a defect
// (§5) — so callers relying on continuity across restarts must resolve the
// current child PID from the supervisor rather than holding on to an
// address captured before the crash.
func ChildSpec[K Keyable](id string) supervisor.ChildSpec {
	return supervisor.NewChildSpec(id, loop[K]).SetRestart(supervisor.RestartAlways)
}

// StartSupervised spawns a registry actor as the sole child of a
// one-for-one supervisor and returns the supervisor's address alongside a
// handle to the registry's first incarnation. If the registry actor ever
// crashes and is restarted, this particular *Registry[K] handle is stale;
// a caller that must keep working across restarts needs to re-resolve the
// child from the supervisor (supervisor does not currently expose a
// live-lookup API beyond the map Start returns, which is itself a
// point-in-time snapshot).
func StartSupervised[K Keyable](id string) (*actor.PID, *Registry[K], error) {
	supPID, children, err := supervisor.Start(
		supervisor.NewOptions(supervisor.OneForOneStrategy, 3, 5).SetName(id),
		ChildSpec[K](id),
	)
	if err != nil {
		return nil, nil, err
	}
	return supPID, &Registry[K]{pid: children[id]}, nil
}
