package actor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BirdseyeSoftware/distributed-process-platform/actor"
	"github.com/BirdseyeSoftware/distributed-process-platform/sysmsg"
)

func echo(act *actor.Actor) {
	replyTo := act.Args()[0].(*actor.PID)
	act.Receive(func(message interface{}) bool {
		actor.Send(replyTo, message)
		return false
	})
}

func TestSendReceiveRoundTrip(t *testing.T) {
	future := actor.NewFutureActor()
	defer future.Dispose()

	target := actor.Spawn(echo, future.Self())
	actor.Send(target, "ping")

	reply, err := future.RecvWithTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "ping", reply)
}

func TestSpawnMonitorObservesNormalExit(t *testing.T) {
	parent, terminate := actor.NewParentActor()
	defer terminate()

	child := parent.SpawnMonitor(func(act *actor.Actor) {})
	_ = child

	var down sysmsg.ProcessDown
	parent.ReceiveWithTimeout(time.Second, func(message interface{}) bool {
		var ok bool
		down, ok = message.(sysmsg.ProcessDown)
		require.True(t, ok)
		return false
	})
	assert.Equal(t, sysmsg.ReasonNormal, down.Reason.Type)
}

func TestSpawnMonitorObservesPanicAsException(t *testing.T) {
	parent, terminate := actor.NewParentActor()
	defer terminate()

	target := parent.SpawnMonitor(func(act *actor.Actor) {
		act.Receive(func(message interface{}) bool {
			panic("kaboom")
		})
	})
	actor.Send(target, "go")

	var down sysmsg.ProcessDown
	parent.ReceiveWithTimeout(time.Second, func(message interface{}) bool {
		var ok bool
		down, ok = message.(sysmsg.ProcessDown)
		require.True(t, ok)
		return false
	})
	assert.Equal(t, sysmsg.ReasonException, down.Reason.Type)
	assert.Contains(t, down.Reason.Details, "kaboom")
}

// A linked peer's abnormal exit cascades as a panic to an actor that
// doesn't trap it, which the harness observes as its own ProcessDown
// (surfaced by FutureActor as a *ProcessDownError).
func TestLinkPropagatesExitByDefault(t *testing.T) {
	bomb := actor.Spawn(func(act *actor.Actor) {
		act.Receive(func(message interface{}) bool {
			panic("linked failure")
		})
	})

	linked := actor.Spawn(func(act *actor.Actor) {
		target := act.Args()[0].(*actor.PID)
		act.Link(target)
		act.Receive(func(message interface{}) bool {
			return true
		})
	}, bomb)

	monitor := actor.NewFutureActor()
	defer monitor.Dispose()
	monitor.Monitor(linked)

	actor.Send(bomb, "die")

	_, err := monitor.RecvWithTimeout(time.Second)
	require.ErrorIs(t, err, actor.ErrProcessDown)
	var down *actor.ProcessDownError
	require.ErrorAs(t, err, &down)
	assert.Equal(t, sysmsg.ReasonException, down.Reason.Type)
}

// TrapExit(true) turns a linked peer's crash into an observable message
// instead of a cascading panic.
func TestTrapExitObservesLinkedCrash(t *testing.T) {
	future := actor.NewFutureActor()
	defer future.Dispose()

	bomb := actor.Spawn(func(act *actor.Actor) {
		act.Receive(func(message interface{}) bool {
			panic("boom")
		})
	})

	survivor := actor.Spawn(func(act *actor.Actor) {
		replyTo := act.Args()[0].(*actor.PID)
		target := act.Args()[1].(*actor.PID)
		act.TrapExit(true)
		act.Link(target)
		act.Receive(func(message interface{}) bool {
			if exit, ok := message.(sysmsg.Exit); ok {
				actor.Send(replyTo, exit)
				return false
			}
			return true
		})
	}, future.Self(), bomb)

	_ = survivor
	actor.Send(bomb, "go")

	reply, err := future.RecvWithTimeout(time.Second)
	require.NoError(t, err)
	exit, ok := reply.(sysmsg.Exit)
	require.True(t, ok)
	assert.Equal(t, sysmsg.ReasonException, exit.Reason.Type)
}

func TestFutureActorRecvWithTimeoutTimesOut(t *testing.T) {
	future := actor.NewFutureActor()
	defer future.Dispose()

	_, err := future.RecvWithTimeout(20 * time.Millisecond)
	assert.ErrorIs(t, err, actor.ErrTimeout)
}

func TestFutureActorObservesProcessDownWithReason(t *testing.T) {
	future := actor.NewFutureActor()
	defer future.Dispose()

	target := actor.Spawn(func(act *actor.Actor) {
		act.Receive(func(message interface{}) bool {
			panic("target crashed")
		})
	})
	future.Send(target, "trigger")

	_, err := future.RecvWithTimeout(time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, actor.ErrProcessDown)

	var downErr *actor.ProcessDownError
	require.ErrorAs(t, err, &downErr)
	assert.Equal(t, sysmsg.ReasonException, downErr.Reason.Type)
}
