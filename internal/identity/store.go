package identity

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"github.com/sirupsen/logrus"
)

// Loader produces the canonical player list.
type Loader func() ([]model.Player, error)

// Snapshot is one immutable generation of the player directory.
type Snapshot struct {
	Directory *Directory
	Matcher   *Matcher
	LoadedAt  time.Time
}

// NewSnapshot indexes players into a ready-to-use snapshot.
func NewSnapshot(players []model.Player, loadedAt time.Time) *Snapshot {
	dir := NewDirectory(players)
	return &Snapshot{Directory: dir, Matcher: NewMatcher(dir), LoadedAt: loadedAt}
}

// Store hands out the current directory snapshot and reloads it when it
// ages past the TTL. Readers never wait on a reload in progress.
type Store struct {
	load   Loader
	ttl    time.Duration
	logger *logrus.Logger
	now    func() time.Time

	mu      sync.Mutex // serializes reloads
	current atomic.Pointer[Snapshot]
}

// NewStore creates an empty store; the first Snapshot call loads it.
func NewStore(load Loader, ttl time.Duration, logger *logrus.Logger) *Store {
	return &Store{load: load, ttl: ttl, logger: logger, now: time.Now}
}

// Snapshot returns the current directory, reloading it if stale. A failed
// reload keeps serving the last good snapshot; an error is returned only
// when nothing has ever loaded.
func (s *Store) Snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap != nil && (s.ttl <= 0 || s.now().Sub(snap.LoadedAt) < s.ttl) {
		return snap, nil
	}

	if snap != nil {
		// Someone else is already reloading; keep using what we have.
		if !s.mu.TryLock() {
			return snap, nil
		}
		defer s.mu.Unlock()
		if err := s.reloadLocked(); err != nil {
			s.logger.WithError(err).WithField("loaded_at", snap.LoadedAt).Warn("Player directory reload failed, keeping previous snapshot")
		}
		return s.current.Load(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}
	if err := s.reloadLocked(); err != nil {
		return nil, err
	}
	return s.current.Load(), nil
}

// Refresh forces a reload.
func (s *Store) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

func (s *Store) reloadLocked() error {
	players, err := s.load()
	if err != nil {
		return fmt.Errorf("failed to load player directory: %w", err)
	}
	snap := NewSnapshot(players, s.now())
	s.current.Store(snap)
	s.logger.WithField("players", snap.Directory.Len()).Info("Player directory loaded")
	return nil
}
