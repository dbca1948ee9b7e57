package pid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BirdseyeSoftware/distributed-process-platform/internal/mailbox"
)

func TestLocalPIDSatisfiesInterface(t *testing.T) {
	m := mailbox.NewPriorityMailbox()
	p := NewPID(m)

	assert.NotEmpty(t, p.ID())
	assert.Same(t, m, p.Mailbox())

	assert.Nil(t, p.ShutdownFn())
	called := false
	p.SetShutdownFn(func() { called = true })
	p.ShutdownFn()()
	assert.True(t, called)

	assert.Nil(t, p.ActorTypeFn())
	var gotType int32 = -1
	p.SetActorTypeFn(func(t int32) { gotType = t })
	p.ActorTypeFn()(7)
	assert.Equal(t, int32(7), gotType)
}

func TestLocalPIDIdentityIsUniquePerInstance(t *testing.T) {
	a := NewPID(mailbox.NewPriorityMailbox())
	b := NewPID(mailbox.NewPriorityMailbox())
	assert.NotEqual(t, a.ID(), b.ID())
}

// futurePID must satisfy the full PID interface on its own, not merely
// delegate to an embedded type that happens to also implement it.
func TestFuturePIDSatisfiesInterface(t *testing.T) {
	f := NewFuturePID()

	assert.NotEmpty(t, f.ID())
	require.NotNil(t, f.Mailbox())

	assert.Nil(t, f.ShutdownFn())
	called := false
	f.SetShutdownFn(func() { called = true })
	f.ShutdownFn()()
	assert.True(t, called)

	assert.Nil(t, f.ActorTypeFn())
	var gotType int32 = -1
	f.SetActorTypeFn(func(t int32) { gotType = t })
	f.ActorTypeFn()(3)
	assert.Equal(t, int32(3), gotType)
}

func TestFuturePIDIdentityIsUniquePerInstance(t *testing.T) {
	a := NewFuturePID()
	b := NewFuturePID()
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestProtectedPIDDelegatesToWrappedPID(t *testing.T) {
	raw := NewPID(mailbox.NewPriorityMailbox())
	protected := NewProtectedPID(raw)

	assert.Equal(t, raw.ID(), protected.ID())
	assert.Same(t, raw, ExtractPID(protected))

	shutdownCalled := false
	raw.SetShutdownFn(func() { shutdownCalled = true })
	protected.Shutdown()
	assert.True(t, shutdownCalled)
}

// Shutdown is a no-op, not a panic, when nothing installed a shutdown hook.
func TestProtectedPIDShutdownWithoutHookIsNoop(t *testing.T) {
	raw := NewPID(mailbox.NewPriorityMailbox())
	protected := NewProtectedPID(raw)
	assert.NotPanics(t, func() { protected.Shutdown() })
}
