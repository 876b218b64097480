package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessions(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sessions := NewSessions(time.Minute)
	sessions.now = func() time.Time { return now }

	assert.Equal(t, StepIdle, sessions.Get(42).Step)

	sessions.Await(42, StepAwaitingDelivery, "o-1")
	got := sessions.Get(42)
	assert.Equal(t, StepAwaitingDelivery, got.Step)
	assert.Equal(t, "o-1", got.OrderID)
	assert.Equal(t, StepIdle, sessions.Get(43).Step)

	sessions.Await(42, StepAwaitingCharge, "o-1")
	got = sessions.Get(42)
	assert.Equal(t, StepAwaitingCharge, got.Step)
	assert.Empty(t, got.OrderID)

	sessions.Clear(42)
	assert.Equal(t, StepIdle, sessions.Get(42).Step)
}

func TestSessions_Expire(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sessions := NewSessions(time.Minute)
	sessions.now = func() time.Time { return now }

	sessions.Await(42, StepAwaitingBlock, "")
	now = now.Add(59 * time.Second)
	assert.Equal(t, StepAwaitingBlock, sessions.Get(42).Step)

	now = now.Add(time.Second)
	assert.Equal(t, StepIdle, sessions.Get(42).Step)
	assert.Empty(t, sessions.state)
}

func TestNewSessions_DefaultTTL(t *testing.T) {
	assert.Equal(t, defaultSessionTTL, NewSessions(0).ttl)
}
