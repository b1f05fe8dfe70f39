package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/identity"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/rankings"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/storage"
)

// ErrNoCustomStore is returned by upload operations when no database is configured.
var ErrNoCustomStore = errors.New("custom rankings storage is not configured")

// RankingsReport lists loaded tables.
type RankingsReport struct {
	Tables   []rankings.TableInfo `json:"tables"`
	LoadedAt string               `json:"loaded_at,omitempty"`
}

// ListRankings describes the current rankings snapshot.
func (s *Service) ListRankings() RankingsReport {
	snap := s.rankings.Snapshot()
	report := RankingsReport{Tables: snap.Tables()}
	if !snap.LoadedAt.IsZero() {
		report.LoadedAt = snap.LoadedAt.UTC().Format(time.RFC3339)
	}
	return report
}

// RefreshRankings reloads every ranking source.
func (s *Service) RefreshRankings(ctx context.Context) (RankingsReport, error) {
	if _, err := s.rankings.Refresh(ctx); err != nil {
		return RankingsReport{}, err
	}
	return s.ListRankings(), nil
}

// ImportRequest uploads a ranking sheet.
type ImportRequest struct {
	Name string
	// Format is a "scoring_lineup" key; empty stores an unkeyed table that
	// is selected by id only.
	Format string
	// HTML selects the cheat-sheet table parser instead of CSV.
	HTML bool
	Body io.Reader
}

// ImportReport describes a stored upload.
type ImportReport struct {
	Ranking  storage.CustomRanking `json:"ranking"`
	Rejected int                   `json:"rejected_rows"`
}

// ImportRanking parses and stores a custom ranking, then refreshes the
// repository so the table is immediately selectable.
func (s *Service) ImportRanking(ctx context.Context, req ImportRequest) (ImportReport, error) {
	if s.custom == nil {
		return ImportReport{}, ErrNoCustomStore
	}
	key, _, err := parseFormat(req.Format)
	if err != nil {
		return ImportReport{}, err
	}

	parse := rankings.ParseCSV
	if req.HTML {
		parse = rankings.ParseHTML
	}
	entries, rejected, err := parse(req.Body)
	if err != nil {
		return ImportReport{}, err
	}

	saved, err := s.custom.Save(ctx, req.Name, key, entries)
	if err != nil {
		return ImportReport{}, err
	}
	if _, err := s.rankings.Refresh(ctx); err != nil {
		return ImportReport{}, fmt.Errorf("ranking saved but reload failed: %w", err)
	}
	return ImportReport{Ranking: saved, Rejected: rejected}, nil
}

// CustomRankings lists stored uploads.
func (s *Service) CustomRankings(ctx context.Context) ([]storage.CustomRanking, error) {
	if s.custom == nil {
		return []storage.CustomRanking{}, nil
	}
	return s.custom.List(ctx)
}

// DeleteRanking removes an upload by table id ("custom-3") or numeric id.
func (s *Service) DeleteRanking(ctx context.Context, tableID string) error {
	if s.custom == nil {
		return ErrNoCustomStore
	}
	id, ok := storage.ParseTableID(tableID)
	if !ok {
		id, ok = storage.ParseTableID(storage.CustomTablePrefix + strings.TrimSpace(tableID))
	}
	if !ok {
		return &model.ValidationError{Field: "table_id", Reason: fmt.Sprintf("%q is not a custom ranking", tableID)}
	}
	if err := s.custom.Delete(ctx, id); err != nil {
		return err
	}
	if _, err := s.rankings.Refresh(ctx); err != nil {
		return fmt.Errorf("ranking deleted but reload failed: %w", err)
	}
	return nil
}

// MatchRequest looks up a ranking name or a player id.
type MatchRequest struct {
	Name     string
	Position string
	Team     string
	// PlayerID switches to the reverse lookup: the player's entry in the
	// selected ranking table.
	PlayerID string
	Format   string
	TableID  string
}

// MatchReport is the identity answer.
type MatchReport struct {
	Resolution identity.Resolution `json:"resolution"`
	Player     *model.Player       `json:"player,omitempty"`
	Variants   []string            `json:"variants,omitempty"`
	Entry      *model.RankedEntry  `json:"entry,omitempty"`
	Table      string              `json:"table,omitempty"`
}

// MatchName resolves a free-text name to a Sleeper player, or finds a
// player's ranking entry.
func (s *Service) MatchName(req MatchRequest) (MatchReport, error) {
	if req.Name == "" && req.PlayerID == "" {
		return MatchReport{}, &model.ValidationError{Field: "name", Reason: "name or player_id is required"}
	}
	if s.players == nil {
		return MatchReport{}, errors.New("player directory is not configured")
	}
	snap, err := s.players.Snapshot()
	if err != nil {
		return MatchReport{}, err
	}

	var report MatchReport
	if req.PlayerID != "" {
		key, hasKey, err := parseFormat(req.Format)
		if err != nil {
			return MatchReport{}, err
		}
		if !hasKey {
			key = s.defaults.Format
		}
		table, _, ok := s.rankings.Snapshot().Select(req.TableID, key)
		report.Resolution = identity.Resolution{Method: identity.MethodNone}
		if ok {
			report.Table = table.ID
			if e, _, found := snap.Matcher.FindEntry(table.Entries, req.PlayerID); found {
				report.Entry = &e
				report.Resolution = identity.Resolution{PlayerID: req.PlayerID, Method: snap.Matcher.Resolve(e).Method}
			}
		}
		if p, found := snap.Directory.Player(req.PlayerID); found {
			report.Player = &p
			report.Variants = identity.NameVariants(p)
		}
		return report, nil
	}

	pos, _ := model.ParsePosition(req.Position)
	report.Resolution = snap.Matcher.Resolve(model.RankedEntry{Name: req.Name, Position: pos, Team: req.Team})
	if report.Resolution.Resolved() {
		if p, found := snap.Directory.Player(report.Resolution.PlayerID); found {
			report.Player = &p
			report.Variants = identity.NameVariants(p)
		}
	}
	return report, nil
}
