package mailbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BirdseyeSoftware/distributed-process-platform/sysmsg"
)

type passthroughHandler struct{}

func (passthroughHandler) HandleSystemMessage(message interface{}) (bool, interface{}) {
	return true, message
}

func TestPriorityMailboxDeliversSystemMessagesBeforeQueuedUser(t *testing.T) {
	m := NewPriorityMailbox().(*priorityMailbox)
	m.SetSystemMessageHandler(passthroughHandler{})

	m.SendUserMessage("user-1")
	m.SendUserMessage("user-2")
	m.SendSystemMessage("system-1")

	var received []interface{}
	for i := 0; i < 3; i++ {
		m.ReceiveWithTimeout(time.Second, func(message interface{}) bool {
			received = append(received, message)
			return false
		})
	}

	require.Len(t, received, 3)
	assert.Equal(t, "system-1", received[0])
	assert.Equal(t, "user-1", received[1])
	assert.Equal(t, "user-2", received[2])
}

func TestPriorityMailboxReceiveWithTimeoutSynthesizesTimeout(t *testing.T) {
	m := NewPriorityMailbox().(*priorityMailbox)
	m.SetSystemMessageHandler(passthroughHandler{})

	done := make(chan interface{}, 1)
	go m.ReceiveWithTimeout(20*time.Millisecond, func(message interface{}) bool {
		done <- message
		return false
	})

	select {
	case msg := <-done:
		timeout, ok := msg.(sysmsg.Timeout)
		require.True(t, ok)
		assert.Equal(t, 20*time.Millisecond, timeout.Duration)
	case <-time.After(time.Second):
		t.Fatal("ReceiveWithTimeout never fired")
	}
}

func TestPriorityMailboxDisposeStopsReceive(t *testing.T) {
	m := NewPriorityMailbox().(*priorityMailbox)
	m.SetSystemMessageHandler(passthroughHandler{})
	m.Dispose()

	done := make(chan struct{})
	go func() {
		m.Receive(func(message interface{}) bool { return true })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Receive did not return after Dispose")
	}
}
