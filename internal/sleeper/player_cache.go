package sleeper

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultPlayerTTL = 24 * time.Hour
	playerCacheFile  = "players_nfl.json"
)

type playerCacheEnvelope struct {
	FetchedAt time.Time         `json:"fetched_at"`
	Players   map[string]Player `json:"players"`
}

// PlayerCache keeps the full player directory on disk so the multi-megabyte
// /players/nfl endpoint is fetched at most once per TTL.
type PlayerCache struct {
	client Client
	dir    string
	ttl    time.Duration
	logger *logrus.Logger
	now    func() time.Time
}

// NewPlayerCache creates a cache rooted at dir. An empty dir disables disk storage.
func NewPlayerCache(client Client, dir string, ttl time.Duration, logger *logrus.Logger) *PlayerCache {
	if ttl <= 0 {
		ttl = DefaultPlayerTTL
	}
	return &PlayerCache{
		client: client,
		dir:    dir,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

func (c *PlayerCache) path() string {
	return filepath.Join(c.dir, playerCacheFile)
}

// Players returns the player directory and whether it came from disk.
// A stale disk copy is served when the API cannot be reached.
func (c *PlayerCache) Players() (map[string]Player, bool, error) {
	cached, err := c.read()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		c.logger.WithError(err).Warn("Ignoring unreadable player cache")
	}
	if cached != nil && c.now().Sub(cached.FetchedAt) < c.ttl {
		return cached.Players, true, nil
	}

	players, fetchErr := c.client.GetAllPlayers()
	if fetchErr != nil {
		if cached != nil {
			c.logger.WithError(fetchErr).WithField("fetched_at", cached.FetchedAt).Warn("Serving stale player cache")
			return cached.Players, true, nil
		}
		return nil, false, fetchErr
	}

	if err := c.write(players); err != nil {
		c.logger.WithError(err).Warn("Failed to write player cache")
	}
	return players, false, nil
}

func (c *PlayerCache) read() (*playerCacheEnvelope, error) {
	if c.dir == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(c.path())
	if err != nil {
		return nil, err
	}
	var env playerCacheEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse player cache: %w", err)
	}
	return &env, nil
}

func (c *PlayerCache) write(players map[string]Player) error {
	if c.dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	data, err := json.Marshal(playerCacheEnvelope{FetchedAt: c.now(), Players: players})
	if err != nil {
		return fmt.Errorf("failed to marshal player cache: %w", err)
	}
	tmp := c.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write player cache: %w", err)
	}
	return os.Rename(tmp, c.path())
}
