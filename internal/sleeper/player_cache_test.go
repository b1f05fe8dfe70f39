package sleeper

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
)

// stubPlayerClient only answers GetAllPlayers.
type stubPlayerClient struct {
	Client
	calls   int
	players map[string]Player
	err     error
}

func (s *stubPlayerClient) GetAllPlayers() (map[string]Player, error) {
	s.calls++
	return s.players, s.err
}

func TestPlayerCache_Players(t *testing.T) {
	logger, _ := test.NewNullLogger()
	dir := t.TempDir()
	stub := &stubPlayerClient{players: map[string]Player{"1": {PlayerID: "1", FullName: "A Player", Position: "RB"}}}

	now := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	cache := NewPlayerCache(stub, dir, time.Hour, logger)
	cache.now = func() time.Time { return now }

	players, hit, err := cache.Players()
	if err != nil || hit || len(players) != 1 {
		t.Fatalf("Expected fresh fetch, got hit=%v err=%v len=%d", hit, err, len(players))
	}

	_, hit, err = cache.Players()
	if err != nil || !hit {
		t.Fatalf("Expected disk hit within ttl, got hit=%v err=%v", hit, err)
	}
	if stub.calls != 1 {
		t.Errorf("Expected 1 API call, got %d", stub.calls)
	}

	// Expired cache plus failing API serves the stale copy.
	now = now.Add(2 * time.Hour)
	stub.err = errors.New("unreachable")
	players, hit, err = cache.Players()
	if err != nil || !hit || len(players) != 1 {
		t.Fatalf("Expected stale fallback, got hit=%v err=%v len=%d", hit, err, len(players))
	}
}

func TestPlayerCache_NoDiskCopy(t *testing.T) {
	logger, _ := test.NewNullLogger()
	stub := &stubPlayerClient{err: errors.New("unreachable")}
	cache := NewPlayerCache(stub, "", 0, logger)

	if _, _, err := cache.Players(); err == nil {
		t.Error("Expected error with no cache and failing API")
	}
}
