package actor

import (
	"errors"
	"time"

	"github.com/BirdseyeSoftware/distributed-process-platform/internal/mailbox"
	"github.com/BirdseyeSoftware/distributed-process-platform/internal/pid"
	"github.com/BirdseyeSoftware/distributed-process-platform/sysmsg"
)

// ErrProcessDown is the sentinel FutureActor.Recv errors against; test
// with errors.Is since the actual error is a *ProcessDownError carrying
// the termination reason.
var ErrProcessDown = errors.New("target actor terminated before sending a response")

// ErrTimeout is returned by FutureActor.RecvWithTimeout when no reply or
// termination notice arrives before the deadline.
var ErrTimeout = errors.New("timeout waiting for response")

// ProcessDownError wraps ErrProcessDown with the reason the monitored
// target actually terminated with.
type ProcessDownError struct {
	Reason sysmsg.Reason
}

func (e *ProcessDownError) Error() string {
	return ErrProcessDown.Error() + ": " + e.Reason.String()
}

func (e *ProcessDownError) Is(target error) bool {
	return target == ErrProcessDown
}

// FutureActor is a throwaway process used to rendezvous with a single
// reply: spawn one, send a request that carries its address, then Recv.
type FutureActor struct {
	pid pid.PID
}

// NewFutureActor returns a FutureActor ready to be addressed and to wait
// for a reply.
func NewFutureActor() *FutureActor {
	return &FutureActor{pid: pid.NewFuturePID()}
}

// Self returns the address other actors should send the reply to.
func (f *FutureActor) Self() *PID {
	return pid.NewProtectedPID(f.pid)
}

// Monitor starts watching target; if it terminates before replying, Recv
// returns ErrProcessDown instead of blocking forever.
func (f *FutureActor) Monitor(target *PID) {
	target.SendSystemMessage(sysmsg.Monitor{Parent: f.Self()})
}

// Send monitors target and forwards message to it in one step — the usual
// way to issue a request awaiting a single reply.
func (f *FutureActor) Send(target *PID, message interface{}) {
	f.Monitor(target)
	Send(target, message)
}

// Recv blocks until a reply, a ProcessDown from a monitored target, or
// mailbox disposal.
func (f *FutureActor) Recv() (response interface{}, err error) {
	f.pid.Mailbox().Receive(func(message interface{}) (loop bool) {
		switch {
		case message == mailbox.ErrDisposed:
			err = mailbox.ErrDisposed
		default:
			switch msg := message.(type) {
			case sysmsg.ProcessDown:
				err = &ProcessDownError{Reason: msg.Reason}
			default:
				response = msg
			}
		}
		return false
	})
	return
}

// RecvWithTimeout is Recv bounded by duration.
func (f *FutureActor) RecvWithTimeout(duration time.Duration) (response interface{}, err error) {
	f.pid.Mailbox().ReceiveWithTimeout(duration, func(message interface{}) (loop bool) {
		switch {
		case message == mailbox.ErrDisposed:
			err = mailbox.ErrDisposed
		default:
			switch msg := message.(type) {
			case sysmsg.ProcessDown:
				err = &ProcessDownError{Reason: msg.Reason}
			case sysmsg.Timeout:
				err = ErrTimeout
			default:
				response = msg
			}
		}
		return false
	})
	return
}

// Dispose releases the future's mailbox once the rendezvous is over.
func (f *FutureActor) Dispose() {
	f.pid.Mailbox().Dispose()
}
