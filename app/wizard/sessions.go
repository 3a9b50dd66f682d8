package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/apextradecapital/SONATUR/app/models"

	"github.com/google/uuid"
)

// ErrSessionNotFound covers unknown and expired tokens alike.
var ErrSessionNotFound = errors.New("wizard session not found")

// Session is one applicant's in-progress wizard. Sessions live in memory
// only; restarting the process resets every applicant to the first step,
// which matches the portal's reload semantics.
type Session struct {
	Token     string
	State     State
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Manager owns all live sessions. All access goes through the mutex since
// Fiber handlers run concurrently.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create starts a fresh session at the first step.
func (m *Manager) Create(now time.Time) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked(now)

	s := &Session{
		Token:     uuid.NewString(),
		State:     State{Step: StepConditions},
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.sessions[s.Token] = s
	return s
}

// Get returns a snapshot of the session state.
func (m *Manager) Get(token string, now time.Time) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok || m.expired(s, now) {
		return State{}, ErrSessionNotFound
	}
	return s.State.clone(), nil
}

// Dispatch applies an event to the session under the lock and returns the
// resulting state snapshot.
func (m *Manager) Dispatch(token string, ev Event, cfg *models.SystemSettings, now time.Time) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok || m.expired(s, now) {
		return State{}, ErrSessionNotFound
	}

	next, err := Apply(s.State, ev, cfg, now)
	if err != nil {
		return s.State.clone(), err
	}
	s.State = next
	s.UpdatedAt = now
	return next.clone(), nil
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	return m.ttl > 0 && now.Sub(s.UpdatedAt) > m.ttl
}

func (m *Manager) pruneLocked(now time.Time) {
	for token, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, token)
		}
	}
}
