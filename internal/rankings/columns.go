package rankings

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

// columnAliases lists the header spellings accepted for each field.
var columnAliases = map[string][]string{
	"name":          {"name", "player", "player name", "player_name", "full_name"},
	"position":      {"position", "pos"},
	"team":          {"team", "tm", "nfl_team"},
	"rank":          {"rank", "overall_rank", "overall rank", "overall", "ranking", "rk"},
	"tier":          {"tier", "tiers"},
	"bye":           {"bye", "bye_week", "bye week", "byeweek"},
	"position_rank": {"position rank", "position_rank", "pos_rank", "pos rank"},
	"points":        {"fpts", "points", "projected_points", "proj", "projection"},
}

// columns holds the index of every recognised header, -1 when absent.
type columns struct {
	name, position, team, rank, tier, bye, positionRank, points int
}

// mapColumns resolves header names to indices. Name and position are
// required.
func mapColumns(header []string) (columns, error) {
	col := func(field string) int {
		for _, alias := range columnAliases[field] {
			for i, h := range header {
				if strings.EqualFold(strings.TrimSpace(h), alias) {
					return i
				}
			}
		}
		return -1
	}

	c := columns{
		name:         col("name"),
		position:     col("position"),
		team:         col("team"),
		rank:         col("rank"),
		tier:         col("tier"),
		bye:          col("bye"),
		positionRank: col("position_rank"),
		points:       col("points"),
	}
	if c.name < 0 {
		return c, &model.ValidationError{Field: "header", Reason: "no player name column"}
	}
	if c.position < 0 {
		return c, &model.ValidationError{Field: "header", Reason: "no position column"}
	}
	return c, nil
}

// entry builds one ranked entry from a record. Rows without a name or a
// known position are rejected.
func (c columns) entry(record []string) (model.RankedEntry, bool) {
	cell := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := cell(c.name)
	if name == "" {
		return model.RankedEntry{}, false
	}

	// Cheat sheets often fold the position rank into the position, e.g. "WR12".
	rawPos := strings.TrimRight(cell(c.position), "0123456789")
	pos, ok := model.ParsePosition(rawPos)
	if !ok {
		return model.RankedEntry{}, false
	}

	e := model.RankedEntry{
		Name:         name,
		Position:     pos,
		Team:         strings.ToUpper(cell(c.team)),
		OverallRank:  parseInt(cell(c.rank)),
		Tier:         parseInt(cell(c.tier)),
		ByeWeek:      parseInt(cell(c.bye)),
		PositionRank: parseInt(cell(c.positionRank)),
	}
	if e.PositionRank == 0 {
		e.PositionRank = parseInt(strings.TrimPrefix(cell(c.position), rawPos))
	}
	if pts, err := strconv.ParseFloat(cell(c.points), 64); err == nil && pts > 0 {
		e.ProjectedPoints = pts
	}
	return e, true
}

// parseInt reads whole numbers written as "12" or "12.0". Anything else,
// including non-positive values, reads as 0.
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return int(f)
	}
	return 0
}

// fromRecords is the single column-mapping step every source goes through.
// It returns the entries and the number of rejected rows.
func fromRecords(header []string, rows [][]string) ([]model.RankedEntry, int, error) {
	c, err := mapColumns(header)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]model.RankedEntry, 0, len(rows))
	rejected := 0
	for _, row := range rows {
		e, ok := c.entry(row)
		if !ok {
			rejected++
			continue
		}
		entries = append(entries, e)
	}
	return finalize(entries), rejected, nil
}

// TierForRank maps an overall rank to a tier when the source has none.
func TierForRank(rank int) int {
	switch {
	case rank <= 0:
		return 0
	case rank <= 12:
		return 1
	case rank <= 24:
		return 2
	case rank <= 36:
		return 3
	case rank <= 60:
		return 4
	}
	return 5
}

// finalize sorts entries by overall rank, unranked last, and fills in
// missing tiers and position ranks.
func finalize(entries []model.RankedEntry) []model.RankedEntry {
	out := make([]model.RankedEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return rankLess(out[i], out[j])
	})

	seen := make(map[model.Position]int)
	for i := range out {
		seen[out[i].Position]++
		if out[i].Tier == 0 {
			out[i].Tier = TierForRank(out[i].OverallRank)
		}
		if out[i].PositionRank == 0 {
			out[i].PositionRank = seen[out[i].Position]
		}
	}
	return out
}

func rankLess(a, b model.RankedEntry) bool {
	switch {
	case a.HasRank() && b.HasRank():
		return a.OverallRank < b.OverallRank
	case a.HasRank():
		return true
	}
	return false
}

// ParseFormatKey reads a format key such as "half_ppr_superflex" or a
// ranking file name such as "FantasyPros_Rankings_PPR_Standard.csv".
func ParseFormatKey(raw string) (model.FormatKey, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if dot := strings.LastIndex(s, "."); dot > 0 {
		s = s[:dot]
	}
	s = strings.TrimPrefix(s, "fantasypros_rankings_")
	s = strings.ReplaceAll(s, "-", "_")

	for _, lineup := range []model.LineupFormat{model.LineupSuperflex, model.LineupStandard} {
		rest, found := strings.CutSuffix(s, "_"+string(lineup))
		if !found {
			continue
		}
		if scoring, ok := model.ParseScoringFormat(rest); ok {
			return model.FormatKey{Scoring: scoring, Lineup: lineup}, nil
		}
	}
	return model.FormatKey{}, &model.ValidationError{Field: "format", Reason: fmt.Sprintf("unrecognised format %q", raw)}
}
