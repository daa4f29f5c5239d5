// Package session tracks games played through the API: each session holds
// the current encoded position and the positions that led to it.
package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lgbarn/position-engine-go/internal/engine"
	"github.com/lgbarn/position-engine-go/internal/errors"
	"github.com/lgbarn/position-engine-go/internal/oracle"
	"github.com/lgbarn/position-engine-go/internal/service"
)

// Session is a snapshot of one game.
type Session struct {
	ID       string        `json:"id"`
	Position string        `json:"position"`
	History  []string      `json:"history"` // Encoded positions, oldest first, excluding Position
	Moves    []string      `json:"moves"`
	Score    float64       `json:"score"`
	Status   oracle.Status `json:"status"`
	Created  time.Time     `json:"created"`
	Updated  time.Time     `json:"updated"`
}

// clone returns a deep copy so callers never share slices with the manager.
func (s *Session) clone() *Session {
	c := *s
	c.History = append(make([]string, 0, len(s.History)), s.History...)
	c.Moves = append(make([]string, 0, len(s.Moves)), s.Moves...)
	return &c
}

// Store persists sessions. Load returns an error wrapping
// errors.ErrSessionNotFound for unknown IDs.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Session, error)
}

// Manager creates and updates sessions. It is safe for concurrent use.
type Manager struct {
	svc   *service.Service
	store Store
	log   zerolog.Logger
	now   func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a manager. store may be nil, in which case sessions
// live only in memory.
func NewManager(svc *service.Service, store Store, log zerolog.Logger) *Manager {
	return &Manager{
		svc:      svc,
		store:    store,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session from the given encoding, or the standard
// starting position if it is empty.
func (m *Manager) Create(ctx context.Context, encoded string) (*Session, error) {
	if encoded == "" {
		encoded = engine.InitialFEN
	}
	ev, err := m.svc.Evaluate(ctx, encoded)
	if err != nil {
		return nil, err
	}

	now := m.now()
	s := &Session{
		ID:       uuid.NewString(),
		Position: ev.Position,
		History:  []string{},
		Moves:    []string{},
		Score:    ev.Score,
		Status:   ev.Status,
		Created:  now,
		Updated:  now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.persist(ctx, s); err != nil {
		return nil, err
	}
	m.sessions[s.ID] = s

	m.log.Info().Str("session", s.ID).Str("position", s.Position).Msg("session created")
	return s.clone(), nil
}

// Get returns a snapshot of the session.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s.clone(), nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.clone(), nil
}

// Play applies a move to the session's current position. On any error the
// session is unchanged.
func (m *Manager) Play(ctx context.Context, id, from, to string) (*Session, service.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(ctx, id)
	if err != nil {
		return nil, service.Result{}, err
	}

	res, err := m.svc.Play(ctx, s.Position, from, to)
	if err != nil {
		return nil, service.Result{}, err
	}

	next := s.clone()
	next.History = append(next.History, s.Position)
	next.Moves = append(next.Moves, res.Move)
	next.Position = res.Position
	next.Score = res.Score
	next.Status = res.Status
	next.Updated = m.now()

	if err := m.persist(ctx, next); err != nil {
		return nil, service.Result{}, err
	}
	m.sessions[id] = next

	m.log.Debug().Str("session", id).Str("move", res.Move).Int("ply", len(next.Moves)).Msg("session move")
	return next.clone(), res, nil
}

// Undo restores the position before the last move. It is a no-op on a
// session with no moves.
func (m *Manager) Undo(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(s.History) == 0 {
		return s.clone(), nil
	}

	prev := s.clone()
	last := len(prev.History) - 1
	prev.Position = prev.History[last]
	prev.History = prev.History[:last]
	prev.Moves = prev.Moves[:len(prev.Moves)-1]

	ev, err := m.svc.Evaluate(ctx, prev.Position)
	if err != nil {
		return nil, err
	}
	prev.Score = ev.Score
	prev.Status = ev.Status
	prev.Updated = m.now()

	if err := m.persist(ctx, prev); err != nil {
		return nil, err
	}
	m.sessions[id] = prev
	return prev.clone(), nil
}

// Delete removes the session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.lookup(ctx, id); err != nil {
		return err
	}
	if m.store != nil {
		if err := m.store.Delete(ctx, id); err != nil {
			return errors.Wrapf(err, "delete session %s", id)
		}
	}
	delete(m.sessions, id)
	m.log.Info().Str("session", id).Msg("session deleted")
	return nil
}

// List returns every session, most recently updated first.
func (m *Manager) List(ctx context.Context) ([]*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byID := make(map[string]*Session, len(m.sessions))
	if m.store != nil {
		stored, err := m.store.List(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "list sessions")
		}
		for _, s := range stored {
			byID[s.ID] = s
		}
	}
	for id, s := range m.sessions {
		byID[id] = s
	}

	out := make([]*Session, 0, len(byID))
	for _, s := range byID {
		out = append(out, s.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Updated.Equal(out[j].Updated) {
			return out[i].Updated.After(out[j].Updated)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// lookup finds a session in memory or the store. Callers hold m.mu for
// writing.
func (m *Manager) lookup(ctx context.Context, id string) (*Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	if m.store == nil {
		return nil, errors.Wrapf(errors.ErrSessionNotFound, "session %s", id)
	}
	s, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	m.sessions[id] = s
	return s, nil
}

// persist writes through to the store, if any.
func (m *Manager) persist(ctx context.Context, s *Session) error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Save(ctx, s); err != nil {
		return errors.Wrapf(err, "save session %s", s.ID)
	}
	return nil
}
