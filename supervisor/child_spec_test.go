package supervisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BirdseyeSoftware/distributed-process-platform/actor"
)

func noop(act *actor.Actor) {}

func TestNewChildSpecDefaults(t *testing.T) {
	spec := NewChildSpec("worker", noop)
	assert.Equal(t, "worker", spec.Id)
	assert.Equal(t, RestartTransient, spec.Restart)
	assert.Equal(t, ShutdownKill, spec.Shutdown)
	assert.Equal(t, TypeWorker, spec.ChildType)

	spec = spec.SetRestart(RestartAlways).SetShutdown(500).SetChildType(TypeSupervisor)
	assert.Equal(t, RestartAlways, spec.Restart)
	assert.Equal(t, int32(500), spec.Shutdown)
	assert.Equal(t, TypeSupervisor, spec.ChildType)
}

func TestSpecsToMapPreservesOrder(t *testing.T) {
	specs := []ChildSpec{
		NewChildSpec("a", noop),
		NewChildSpec("b", noop),
		NewChildSpec("c", noop),
	}
	specsMap, order, err := specsToMap(specs)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Len(t, specsMap, 3)
}

func TestSpecsToMapRejectsEmptyList(t *testing.T) {
	_, _, err := specsToMap(nil)
	assert.Error(t, err)
}

func TestSpecsToMapRejectsDuplicateIds(t *testing.T) {
	_, _, err := specsToMap([]ChildSpec{
		NewChildSpec("a", noop),
		NewChildSpec("a", noop),
	})
	assert.Error(t, err)
}

func TestSpecsToMapRejectsMissingActorFunc(t *testing.T) {
	_, _, err := specsToMap([]ChildSpec{{Id: "a", Restart: RestartTransient, Shutdown: ShutdownKill}})
	assert.Error(t, err)
}

func TestSpecsToMapRejectsInvalidRestart(t *testing.T) {
	spec := NewChildSpec("a", noop)
	spec.Restart = 99
	_, _, err := specsToMap([]ChildSpec{spec})
	assert.Error(t, err)
}
