package chat

import (
	"sync"
	"time"
)

const defaultSessionTTL = 10 * time.Minute

// Step is where an operator conversation currently stands.
type Step string

const (
	StepIdle             Step = "idle"
	StepAwaitingDelivery Step = "awaiting_delivery"
	StepAwaitingBulkAdd  Step = "awaiting_bulk_add"
	StepAwaitingCharge   Step = "awaiting_charge"
	StepAwaitingBlock    Step = "awaiting_block"
)

type Session struct {
	Step    Step
	OrderID string

	expiresAt time.Time
}

// Sessions keeps one conversation per operator. A session that has not been
// touched for ttl reads as idle.
type Sessions struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	state map[int64]Session
}

func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Sessions{
		ttl:   ttl,
		now:   time.Now,
		state: make(map[int64]Session),
	}
}

func (s *Sessions) Get(userID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.state[userID]
	if !ok {
		return Session{Step: StepIdle}
	}
	if !s.now().Before(session.expiresAt) {
		delete(s.state, userID)
		return Session{Step: StepIdle}
	}
	return session
}

// Await moves the conversation to step. orderID is only kept for
// StepAwaitingDelivery.
func (s *Sessions) Await(userID int64, step Step, orderID string) {
	if step == StepIdle {
		s.Clear(userID)
		return
	}
	if step != StepAwaitingDelivery {
		orderID = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[userID] = Session{Step: step, OrderID: orderID, expiresAt: s.now().Add(s.ttl)}
}

func (s *Sessions) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.state, userID)
}
