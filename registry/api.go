package registry

import (
	"fmt"
	"time"

	"github.com/BirdseyeSoftware/distributed-process-platform/actor"
)

const defaultCallTimeout = 5 * time.Second

// call performs a request/reply round trip against reg using a throwaway
// FutureActor as the rendezvous point, and asserts the reply payload to T.
// build receives the resolved target and the reply address and returns the
// request message to send.
func call[T any](reg Addressable, build func(target, replyTo *actor.PID) interface{}) (T, error) {
	var zero T
	target, ok := resolve(reg)
	if !ok {
		return zero, fmt.Errorf("registry: address could not be resolved")
	}

	future := actor.NewFutureActor()
	defer future.Dispose()
	future.Monitor(target)
	actor.Send(target, build(target, future.Self()))

	resp, err := future.RecvWithTimeout(defaultCallTimeout)
	if err != nil {
		return zero, err
	}
	typed, ok := resp.(T)
	if !ok {
		return zero, fmt.Errorf("registry: unexpected reply type %T", resp)
	}
	return typed, nil
}

// RegisterName registers k for the explicit owner pid.
func RegisterName[K Keyable](reg Addressable, k K, owner *actor.PID) (RegisterResult, error) {
	resp, err := call[registerKeyReply](reg, func(_, replyTo *actor.PID) interface{} {
		return registerKeyReq[K]{key: NewAliasKey(k, owner), reply: replyTo}
	})
	if err != nil {
		return RegisteredOk, err
	}
	return resp.result, nil
}

// AddName registers k with caller as the owner — the self-registration
// shorthand most callers reach for.
func AddName[K Keyable](reg Addressable, k K, caller *actor.PID) (RegisterResult, error) {
	return RegisterName[K](reg, k, caller)
}

// UnregisterName releases k, provided caller is its current owner.
func UnregisterName[K Keyable](reg Addressable, k K, caller *actor.PID) (UnregisterResult, error) {
	resp, err := call[unregisterKeyReply](reg, func(_, replyTo *actor.PID) interface{} {
		return unregisterKeyReq[K]{key: NewAliasKey(k, caller), reply: replyTo}
	})
	if err != nil {
		return UnregisterKeyNotFound, err
	}
	return resp.result, nil
}

// LookupName returns the current owner of k, if any.
func LookupName[K Keyable](reg Addressable, k K) (*actor.PID, bool, error) {
	resp, err := call[lookupKeyReply](reg, func(_, replyTo *actor.PID) interface{} {
		return lookupKeyReq[K]{key: NewAliasKey[K](k, nil), reply: replyTo}
	})
	if err != nil {
		return nil, false, err
	}
	return resp.owner, resp.found, nil
}

// RegisteredNames lists every key currently owned by pid.
func RegisteredNames[K Keyable](reg Addressable, pid *actor.PID) ([]K, error) {
	resp, err := call[regNamesReply[K]](reg, func(_, replyTo *actor.PID) interface{} {
		return regNamesReq[K]{owner: pid, reply: replyTo}
	})
	if err != nil {
		return nil, err
	}
	return resp.keys, nil
}

// FoldNames takes a consistent point-in-time snapshot of the name table
// and folds it locally with f, starting from seed.
func FoldNames[K Keyable, A any](reg Addressable, seed A, f func(acc A, key K, owner *actor.PID) A) (A, error) {
	snap, err := call[namesSnapshot[K]](reg, func(_, replyTo *actor.PID) interface{} {
		return queryDirect{sender: replyTo, variant: snapshotNames}
	})
	if err != nil {
		var zero A
		return zero, err
	}

	acc := seed
	for k, owner := range snap.names {
		acc = f(acc, k, owner)
	}
	return acc, nil
}

// Monitor subscribes caller to every update on k, optionally filtered by
// mask (nil means "every category").
func Monitor[K Keyable](reg Addressable, k K, caller *actor.PID, mask *Mask) (MonitorRef, error) {
	resp, err := call[monitorReply](reg, func(_, replyTo *actor.PID) interface{} {
		return monitorReq[K]{
			key:    NewAliasKey[K](k, nil),
			caller: caller,
			mask:   mask,
			reply:  replyTo,
		}
	})
	if err != nil {
		return MonitorRef{}, err
	}
	return resp.ref, nil
}

// MonitorName subscribes caller to every update on k without filtering.
func MonitorName[K Keyable](reg Addressable, k K, caller *actor.PID) (MonitorRef, error) {
	return Monitor[K](reg, k, caller, nil)
}
