package calculator

import (
	"context"
	"sync"
	"time"

	"statcalc/domain/core"
	domainStats "statcalc/domain/stats"
	"statcalc/internal"
	"statcalc/internal/engine"
)

// Store keeps live calculators by session ID for the HTTP surfaces. Sessions
// live in memory only and expire after sitting idle.
type Store struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*session
	eng      *engine.Engine
	opts     Options
	logger   *internal.Logger
	now      func() core.Timestamp
}

type session struct {
	calc     *Calculator
	lastUsed core.Timestamp
}

// NewStore creates an empty store that builds calculators with opts.
func NewStore(eng *engine.Engine, opts Options, logger *internal.Logger) *Store {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Store{
		sessions: make(map[core.SessionID]*session),
		eng:      eng,
		opts:     opts,
		logger:   logger.With("Calculator"),
		now:      core.Now,
	}
}

// Defaults returns the options new calculators are built with.
func (s *Store) Defaults() Options {
	return s.opts
}

// Create starts a new calculator session for kind.
func (s *Store) Create(kind domainStats.Kind) (*Calculator, error) {
	c, err := New(s.eng, kind, s.opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[c.ID()] = &session{calc: c, lastUsed: s.now()}
	count := len(s.sessions)
	s.mu.Unlock()

	s.logger.Debug("created %s session %s (%d live)", kind, c.ID(), count)
	return c, nil
}

// Get returns the calculator for id and marks the session as used.
func (s *Store) Get(id core.SessionID) (*Calculator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, core.NewNotFoundError(core.SessionResource, id.String())
	}
	sess.lastUsed = s.now()
	return sess.calc, nil
}

// Delete ends a session.
func (s *Store) Delete(id core.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return core.NewNotFoundError(core.SessionResource, id.String())
	}
	delete(s.sessions, id)
	s.logger.Debug("deleted session %s", id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than maxIdle and returns how many
// were removed.
func (s *Store) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("expired %d idle sessions (%d live)", removed, len(s.sessions))
	}
	return removed
}

// RunJanitor sweeps idle sessions every interval until ctx is cancelled.
func (s *Store) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep(maxIdle)
		}
	}
}
