package registry

import (
	"errors"
	"fmt"
	"time"

	"github.com/BirdseyeSoftware/distributed-process-platform/actor"
	"github.com/BirdseyeSoftware/distributed-process-platform/sysmsg"
)

// AwaitOutcome is the tagged result Await/AwaitTimeout settle with.
type AwaitOutcome int

const (
	OutcomeRegisteredName AwaitOutcome = iota
	OutcomeServerUnreachable
	OutcomeAwaitTimeout
)

// AwaitResult carries the outcome of Await/AwaitTimeout plus whichever
// payload that outcome defines.
type AwaitResult[K Keyable] struct {
	Outcome AwaitOutcome
	// Owner and Key are set for OutcomeRegisteredName.
	Owner *actor.PID
	Key   K
	// Reason is set for OutcomeServerUnreachable.
	Reason sysmsg.Reason
}

// Await blocks until k becomes registered on reg, or the registry itself
// becomes unreachable. It never times out; see AwaitTimeout for a bounded
// variant.
func Await[K Keyable](reg Addressable, k K) (AwaitResult[K], error) {
	return awaitImpl[K](reg, k, 0, false)
}

// AwaitTimeout is Await bounded by delay.
func AwaitTimeout[K Keyable](reg Addressable, k K, delay time.Duration) (AwaitResult[K], error) {
	return awaitImpl[K](reg, k, delay, true)
}

func awaitImpl[K Keyable](reg Addressable, k K, delay time.Duration, bounded bool) (AwaitResult[K], error) {
	var zero AwaitResult[K]
	target, ok := resolve(reg)
	if !ok {
		return zero, fmt.Errorf("registry: address could not be resolved")
	}

	// The same FutureActor identity doubles as both the registry's own
	// liveness monitor target (step 2) and the key-subscription caller
	// (step 3) — no separate identity is needed.
	future := actor.NewFutureActor()
	defer future.Dispose()
	future.Monitor(target)

	onRegistered := OnRegistered
	self := future.Self()
	actor.Send(target, monitorReq[K]{
		key:    NewAliasKey[K](k, nil),
		caller: self,
		mask:   &onRegistered,
		reply:  self,
	})

	// This mailbox exists only for this call, so the first notification[K]
	// for k it ever sees is ours: either the replay (if k was already
	// registered when monitorReq was processed) or the live registration.
	// The monitorReply itself — carrying the MonitorRef — may arrive
	// before or after that replay, since both are sent to the same
	// recipient from the same handler invocation; it carries no
	// information this loop needs, so it's simply skipped over.
	for {
		var (
			msg interface{}
			err error
		)
		if bounded {
			msg, err = future.RecvWithTimeout(delay)
		} else {
			msg, err = future.Recv()
		}
		if err != nil {
			if errors.Is(err, actor.ErrTimeout) {
				return AwaitResult[K]{Outcome: OutcomeAwaitTimeout}, nil
			}
			if errors.Is(err, actor.ErrProcessDown) {
				result := AwaitResult[K]{Outcome: OutcomeServerUnreachable}
				var downErr *actor.ProcessDownError
				if errors.As(err, &downErr) {
					result.Reason = downErr.Reason
				}
				return result, nil
			}
			return zero, err
		}

		note, ok := msg.(notification[K])
		if !ok {
			continue
		}
		if note.key != k || note.event.Kind != EventRegistered {
			continue
		}
		return AwaitResult[K]{Outcome: OutcomeRegisteredName, Owner: note.event.Owner, Key: k}, nil
	}
}
