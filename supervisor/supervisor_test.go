package supervisor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BirdseyeSoftware/distributed-process-platform/actor"
	"github.com/BirdseyeSoftware/distributed-process-platform/supervisor"
	"github.com/BirdseyeSoftware/distributed-process-platform/sysmsg"
)

// incarnationReporter is the body every test child in this file shares: it
// announces its own (fresh, per-restart) address to reportTo the moment it
// starts, then waits to be told to die.
func incarnationReporter(act *actor.Actor) {
	reportTo := act.Args()[0].(*actor.PID)
	actor.Send(reportTo, act.Self())
	act.Receive(func(message interface{}) bool {
		if message == "die" {
			panic("incarnation told to die")
		}
		return true
	})
}

func recvIncarnation(t *testing.T, reporter *actor.FutureActor) *actor.PID {
	t.Helper()
	msg, err := reporter.RecvWithTimeout(time.Second)
	require.NoError(t, err)
	pid, ok := msg.(*actor.PID)
	require.Truef(t, ok, "expected *actor.PID, got %T", msg)
	return pid
}

func TestOneForOneRestartsOnlyTheFailedChild(t *testing.T) {
	reporterA := actor.NewFutureActor()
	defer reporterA.Dispose()
	reporterB := actor.NewFutureActor()
	defer reporterB.Dispose()

	options := supervisor.NewOptions(supervisor.OneForOneStrategy, 3, 5).SetName("one-for-one")
	_, children, err := supervisor.Start(options,
		supervisor.NewChildSpec("a", incarnationReporter, reporterA.Self()).SetRestart(supervisor.RestartAlways),
		supervisor.NewChildSpec("b", incarnationReporter, reporterB.Self()).SetRestart(supervisor.RestartAlways),
	)
	require.NoError(t, err)

	firstA := recvIncarnation(t, reporterA)
	firstB := recvIncarnation(t, reporterB)
	assert.Equal(t, firstA.ID(), children["a"].ID())
	assert.Equal(t, firstB.ID(), children["b"].ID())

	actor.Send(children["a"], "die")

	secondA := recvIncarnation(t, reporterA)
	assert.NotEqual(t, firstA.ID(), secondA.ID())

	// b was never touched: no second report should show up for it.
	_, err = reporterB.RecvWithTimeout(50 * time.Millisecond)
	assert.ErrorIs(t, err, actor.ErrTimeout)
}

func TestRestartNeverChildIsNotRestarted(t *testing.T) {
	reporter := actor.NewFutureActor()
	defer reporter.Dispose()

	options := supervisor.NewOptions(supervisor.OneForOneStrategy, 3, 5).SetName("restart-never")
	_, children, err := supervisor.Start(options,
		supervisor.NewChildSpec("a", incarnationReporter, reporter.Self()).SetRestart(supervisor.RestartNever),
	)
	require.NoError(t, err)

	recvIncarnation(t, reporter)
	actor.Send(children["a"], "die")

	_, err = reporter.RecvWithTimeout(50 * time.Millisecond)
	assert.ErrorIs(t, err, actor.ErrTimeout)
}

func TestOneForAllRestartsEverySibling(t *testing.T) {
	reporterA := actor.NewFutureActor()
	defer reporterA.Dispose()
	reporterB := actor.NewFutureActor()
	defer reporterB.Dispose()

	options := supervisor.NewOptions(supervisor.OneForAllStrategy, 3, 5).SetName("one-for-all")
	_, children, err := supervisor.Start(options,
		supervisor.NewChildSpec("a", incarnationReporter, reporterA.Self()).SetRestart(supervisor.RestartAlways),
		supervisor.NewChildSpec("b", incarnationReporter, reporterB.Self()).SetRestart(supervisor.RestartAlways),
	)
	require.NoError(t, err)

	firstA := recvIncarnation(t, reporterA)
	firstB := recvIncarnation(t, reporterB)

	actor.Send(children["a"], "die")

	secondA := recvIncarnation(t, reporterA)
	secondB := recvIncarnation(t, reporterB)
	assert.NotEqual(t, firstA.ID(), secondA.ID())
	assert.NotEqual(t, firstB.ID(), secondB.ID())
}

func TestRestForOneRestartsOnlyLaterSiblings(t *testing.T) {
	reporterA := actor.NewFutureActor()
	defer reporterA.Dispose()
	reporterB := actor.NewFutureActor()
	defer reporterB.Dispose()
	reporterC := actor.NewFutureActor()
	defer reporterC.Dispose()

	options := supervisor.NewOptions(supervisor.RestForOneStrategy, 3, 5).SetName("rest-for-one")
	_, children, err := supervisor.Start(options,
		supervisor.NewChildSpec("a", incarnationReporter, reporterA.Self()).SetRestart(supervisor.RestartAlways),
		supervisor.NewChildSpec("b", incarnationReporter, reporterB.Self()).SetRestart(supervisor.RestartAlways),
		supervisor.NewChildSpec("c", incarnationReporter, reporterC.Self()).SetRestart(supervisor.RestartAlways),
	)
	require.NoError(t, err)

	recvIncarnation(t, reporterA)
	firstB := recvIncarnation(t, reporterB)
	firstC := recvIncarnation(t, reporterC)

	actor.Send(children["b"], "die")

	secondB := recvIncarnation(t, reporterB)
	secondC := recvIncarnation(t, reporterC)
	assert.NotEqual(t, firstB.ID(), secondB.ID())
	assert.NotEqual(t, firstC.ID(), secondC.ID())

	// a precedes the failed child in spec order and must be untouched.
	_, err = reporterA.RecvWithTimeout(50 * time.Millisecond)
	assert.ErrorIs(t, err, actor.ErrTimeout)
}

// Once a child outruns the configured restart intensity, the supervisor
// itself gives up and terminates with ReasonSupervisorMaxRestarts.
func TestMaxRestartsEscalates(t *testing.T) {
	reporter := actor.NewFutureActor()
	defer reporter.Dispose()

	options := supervisor.NewOptions(supervisor.OneForOneStrategy, 1, 5).SetName("max-restarts")
	supPID, children, err := supervisor.Start(options,
		supervisor.NewChildSpec("a", incarnationReporter, reporter.Self()).SetRestart(supervisor.RestartAlways),
	)
	require.NoError(t, err)

	watcher := actor.NewFutureActor()
	defer watcher.Dispose()
	watcher.Monitor(supPID)

	recvIncarnation(t, reporter) // initial incarnation
	actor.Send(children["a"], "die")

	second := recvIncarnation(t, reporter) // restart #1, still within budget
	actor.Send(second, "die")

	_, err = watcher.RecvWithTimeout(2 * time.Second)
	require.ErrorIs(t, err, actor.ErrProcessDown)
	var down *actor.ProcessDownError
	require.ErrorAs(t, err, &down)
	assert.Equal(t, sysmsg.ReasonSupervisorMaxRestarts, down.Reason.Type)
}
