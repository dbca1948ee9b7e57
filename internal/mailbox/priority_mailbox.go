package mailbox

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/Workiva/go-datastructures/queue"
	mpsc "github.com/t3rm1n4l/go-mpscqueue"

	"github.com/BirdseyeSoftware/distributed-process-platform/sysmsg"
)

// priorityMailbox is a dual-queue Mailbox: system messages ride an
// unbounded MPSC queue, user messages a bounded ring buffer. Receive always
// drains every pending system message before looking at the ring buffer
// again, even mid-drain — so a ProcessDown signal that arrives behind a
// backlog of client requests still overtakes them before the next one is
// handed to the actor.
type priorityMailbox struct {
	userMailbox *queue.RingBuffer
	sysMailbox  *mpsc.MPSCQueue
	handler     SystemMessageHandler
	done        chan struct{}
	status      int32
	signal      chan struct{}
}

// NewPriorityMailbox returns the default Mailbox implementation used by
// every spawned actor.
func NewPriorityMailbox() Mailbox {
	return &priorityMailbox{
		userMailbox: queue.NewRingBuffer(defaultUserMailboxCap),
		sysMailbox:  mpsc.New(),
		done:        make(chan struct{}),
		status:      mailboxIdle,
		signal:      make(chan struct{}, 1),
	}
}

func (m *priorityMailbox) SetSystemMessageHandler(h SystemMessageHandler) {
	m.handler = h
}

func (m *priorityMailbox) SendUserMessage(message interface{}) {
	select {
	case <-m.done:
		return
	default:
	}
	if err := m.userMailbox.Put(message); err != nil {
		log.Println("mailbox: dropping user message, put failed:", err)
		return
	}
	m.wake()
}

func (m *priorityMailbox) SendSystemMessage(message interface{}) {
	select {
	case <-m.done:
		return
	default:
	}
	m.sysMailbox.Push(message)
	m.wake()
}

func (m *priorityMailbox) wake() {
	if atomic.CompareAndSwapInt32(&m.status, mailboxIdle, mailboxProcessing) {
		select {
		case m.signal <- struct{}{}:
		case <-m.done:
		}
	}
}

// setIdle marks the mailbox idle and re-arms the signal if messages are
// still queued (left behind by a handler that stopped the loop, or pushed
// while the receiver was still marked as processing).
func (m *priorityMailbox) setIdle() {
	atomic.StoreInt32(&m.status, mailboxIdle)
	if m.sysMailbox.Size() != 0 || m.userMailbox.Len() != 0 {
		m.wake()
	}
}

// drainOne pops and dispatches the next highest-priority message. It
// reports whether a message was delivered and whether the handler asked to
// keep looping.
func (m *priorityMailbox) drainOne(handler MessageHandler) (delivered, keepOn bool) {
	if m.sysMailbox.Size() != 0 {
		raw := m.sysMailbox.Pop()
		pass, msg := m.handler.HandleSystemMessage(raw)
		if !pass {
			return true, true
		}
		return true, handler(msg)
	}
	if m.userMailbox.Len() != 0 {
		msg, err := m.userMailbox.Get()
		if err != nil {
			log.Println("mailbox: get failed:", err)
			return true, true
		}
		return true, handler(msg)
	}
	return false, true
}

func (m *priorityMailbox) Receive(handler MessageHandler) {
listen:
	select {
	case <-m.done:
		return
	case <-m.signal:
		for {
			delivered, keepOn := m.drainOne(handler)
			if !keepOn {
				m.setIdle()
				return
			}
			if !delivered {
				break
			}
		}
		m.setIdle()
		goto listen
	}
}

func (m *priorityMailbox) ReceiveWithTimeout(d time.Duration, handler MessageHandler) {
	timer := time.NewTimer(d)
	defer timer.Stop()
listen:
	select {
	case <-m.done:
		return
	case <-m.signal:
		for {
			delivered, keepOn := m.drainOne(handler)
			if !keepOn {
				m.setIdle()
				return
			}
			if !delivered {
				break
			}
			resetTimer(timer, d)
		}
		m.setIdle()
		resetTimer(timer, d)
		goto listen
	case <-timer.C:
		if !handler(sysmsg.Timeout{Duration: d}) {
			return
		}
		resetTimer(timer, d)
		goto listen
	}
}

func (m *priorityMailbox) Dispose() {
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

func resetTimer(timer *time.Timer, d time.Duration) {
	timer.Stop()
	timer.Reset(d)
}
