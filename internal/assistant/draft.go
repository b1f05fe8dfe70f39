package assistant

import (
	"fmt"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/availability"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/draftboard"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/identity"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/league"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/rankings"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/sleeper"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/vbd"
	"github.com/sirupsen/logrus"
)

// ProfileReport is a classified league.
type ProfileReport struct {
	LeagueID   string              `json:"league_id"`
	LeagueName string              `json:"league_name,omitempty"`
	Season     string              `json:"season,omitempty"`
	Teams      int                 `json:"teams,omitempty"`
	Profile    model.LeagueProfile `json:"profile"`
	Degradation
}

// Profile classifies a league, applying any configured override.
func (s *Service) Profile(leagueID string) (ProfileReport, error) {
	if leagueID == "" {
		return ProfileReport{}, &model.ValidationError{Field: "league_id", Reason: "is required"}
	}

	report := ProfileReport{LeagueID: leagueID, Degradation: Degradation{Notes: []string{}}}
	lg, err := s.client.GetLeague(leagueID)
	if err != nil {
		s.logger.WithError(err).WithField("league_id", leagueID).Warn("League unavailable, using fallback profile")
		report.note("league settings unavailable")
		report.Profile = s.leagues.ApplyOverride(leagueID, s.classifier.Classify(nil, nil))
		return report, nil
	}

	report.LeagueName = lg.Name
	report.Season = lg.Season
	report.Teams = lg.TotalRosters
	report.Profile = s.classifier.Classify(lg, nil)
	if league.NeedsRosters(lg, report.Profile) {
		rosters, err := s.client.GetLeagueRosters(leagueID)
		if err != nil {
			s.logger.WithError(err).WithField("league_id", leagueID).Warn("Rosters unavailable, classifying from settings only")
			report.note("league rosters unavailable")
		} else {
			report.Profile = s.classifier.Classify(lg, rosters)
		}
	}
	report.Profile = s.leagues.ApplyOverride(leagueID, report.Profile)
	return report, nil
}

// Unavailable resolves the players that can no longer be drafted.
func (s *Service) Unavailable(draftID, leagueID string) (availability.Result, error) {
	res, err := s.resolver.Resolve(draftID, leagueID)
	if err != nil {
		return availability.Result{}, err
	}
	res.Profile = s.leagues.ApplyOverride(res.LeagueID, res.Profile)
	return res, nil
}

// AvailableRequest selects and filters the best available players.
type AvailableRequest struct {
	DraftID  string
	LeagueID string
	// Format overrides the league's ranking format, e.g. "ppr_standard".
	Format       string
	TableID      string
	Position     string
	Limit        int
	NameContains string
	Team         string
	Tier         int
	ByeWeek      int
	MinRank      int
	MaxRank      int
}

// filter turns the request's position and attribute filters into a
// rankings filter. Exclusion and table selection are filled in later.
func (r AvailableRequest) filter(limit int) rankings.Filter {
	return rankings.Filter{
		Query:        rankings.Query{Position: r.Position, Limit: limit},
		NameContains: r.NameContains,
		Team:         r.Team,
		Tier:         r.Tier,
		ByeWeek:      r.ByeWeek,
		MinRank:      r.MinRank,
		MaxRank:      r.MaxRank,
	}
}

// AvailableReport lists undrafted players from the selected ranking table.
type AvailableReport struct {
	DraftID          string               `json:"draft_id"`
	LeagueID         string               `json:"league_id,omitempty"`
	Profile          model.LeagueProfile  `json:"profile"`
	Format           model.FormatKey      `json:"format"`
	Table            string               `json:"table"`
	FormatMatched    bool                 `json:"format_matched"`
	UnavailableCount int                  `json:"unavailable_count"`
	Players          []rankings.Available `json:"players"`
	Degradation
}

type availableState struct {
	resolved availability.Result
	matcher  *identity.Matcher
	report   AvailableReport
}

// available resolves the draft and searches the selected table with f.
// An empty f returns the whole available pool.
func (s *Service) available(req AvailableRequest, f rankings.Filter) (availableState, error) {
	override, hasOverride, err := parseFormat(req.Format)
	if err != nil {
		return availableState{}, err
	}
	resolved, err := s.Unavailable(req.DraftID, req.LeagueID)
	if err != nil {
		return availableState{}, err
	}

	st := availableState{resolved: resolved}
	r := &st.report
	r.DraftID = resolved.DraftID
	r.LeagueID = resolved.LeagueID
	r.Profile = resolved.Profile
	r.UnavailableCount = len(resolved.UnavailableIDs)
	r.Notes = []string{}
	r.merge(resolved.Degraded, resolved.Notes)

	r.Format = resolved.Profile.Key()
	if resolved.League == nil {
		// Nothing was classified; start from the configured default format.
		p := resolved.Profile
		p.Scoring, p.Lineup = s.defaults.Format.Scoring, s.defaults.Format.Lineup
		r.Format = s.leagues.ApplyOverride(resolved.LeagueID, p).Key()
	}
	if hasOverride {
		r.Format = override
	}

	f.Exclude = resolved.Unavailable
	f.Format = r.Format
	f.TableID = req.TableID
	if f.TableID == "" {
		f.TableID = s.leagues.PreferredTable(resolved.LeagueID)
	}

	st.matcher = s.matcher(&r.Degradation)
	found := s.rankings.Search(st.matcher, f)
	r.Table = found.Table.ID
	r.FormatMatched = found.FormatMatched
	r.Players = found.Players
	if found.Table.ID == "" {
		r.Notes = append(r.Notes, "no ranking tables loaded")
	} else if !found.FormatMatched {
		r.Notes = append(r.Notes, fmt.Sprintf("no %s rankings loaded; using %s", r.Format, found.Table.ID))
	}
	return st, nil
}

// BestAvailable lists undrafted players in ranking order.
func (s *Service) BestAvailable(req AvailableRequest) (AvailableReport, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = s.defaults.Limit
	}
	st, err := s.available(req, req.filter(limit))
	if err != nil {
		return AvailableReport{}, err
	}
	return st.report, nil
}

// ValueReport is the VBD view of the available pool.
type ValueReport struct {
	DraftID          string                     `json:"draft_id"`
	LeagueID         string                     `json:"league_id,omitempty"`
	Format           model.FormatKey            `json:"format"`
	Table            string                     `json:"table"`
	LeagueSize       int                        `json:"league_size"`
	Players          []vbd.Result               `json:"players"`
	Baselines        map[model.Position]float64 `json:"baselines"`
	ReplacementIndex map[model.Position]int     `json:"replacement_index"`
	Skipped          int                        `json:"skipped"`
	Degradation
}

// Values computes value over replacement for every available player. The
// baselines always use the whole pool: the position and attribute filters
// and Limit only trim the returned list, and a negative Limit returns
// everything that passes the filters.
func (s *Service) Values(req AvailableRequest) (ValueReport, error) {
	st, err := s.available(req, rankings.Filter{})
	if err != nil {
		return ValueReport{}, err
	}
	return s.values(st, req.filter(0), req.Limit)
}

func (s *Service) values(st availableState, f rankings.Filter, limit int) (ValueReport, error) {
	candidates := make([]vbd.Candidate, 0, len(st.report.Players))
	for _, p := range st.report.Players {
		candidates = append(candidates, vbd.Candidate{Entry: p.RankedEntry, PlayerID: p.PlayerID})
	}

	size := s.leagueSize(st.resolved)
	out, err := vbd.Compute(candidates, st.report.Format.Lineup, size)
	if err != nil {
		return ValueReport{}, fmt.Errorf("failed to compute values: %w", err)
	}

	players := make([]vbd.Result, 0, len(out.Players))
	for _, p := range out.Players {
		if f.Matches(resultEntry(p)) {
			players = append(players, p)
		}
	}
	if limit == 0 {
		limit = s.defaults.Limit
	}
	if limit > 0 && len(players) > limit {
		players = players[:limit]
	}

	return ValueReport{
		DraftID:          st.report.DraftID,
		LeagueID:         st.report.LeagueID,
		Format:           st.report.Format,
		Table:            st.report.Table,
		LeagueSize:       size,
		Players:          players,
		Baselines:        out.Baselines,
		ReplacementIndex: out.ReplacementIndex,
		Skipped:          out.Skipped,
		Degradation:      st.report.Degradation,
	}, nil
}

// resultEntry rebuilds the ranking attributes a filter looks at.
func resultEntry(r vbd.Result) model.RankedEntry {
	return model.RankedEntry{
		Name:         r.Name,
		Position:     r.Position,
		Team:         r.Team,
		OverallRank:  r.OverallRank,
		PositionRank: r.PositionRank,
		Tier:         r.Tier,
		ByeWeek:      r.ByeWeek,
	}
}

func (s *Service) leagueSize(res availability.Result) int {
	switch {
	case res.Draft != nil && res.Draft.Settings.Teams > 0:
		return res.Draft.Settings.Teams
	case res.League != nil && res.League.TotalRosters > 0:
		return res.League.TotalRosters
	case res.League != nil && res.League.Settings.NumTeams > 0:
		return res.League.Settings.NumTeams
	}
	return s.defaults.LeagueSize
}

// TeamReport is one team's reconstructed roster.
type TeamReport struct {
	Name string `json:"name"`
	draftboard.TeamRosterView
}

// NeedsReport is the board state of a draft.
type NeedsReport struct {
	DraftID  string              `json:"draft_id"`
	LeagueID string              `json:"league_id,omitempty"`
	Topology model.DraftTopology `json:"topology"`
	Teams    []TeamReport        `json:"teams"`
	Summary  draftboard.Summary  `json:"summary"`
	// NextPick is the pick on the clock, 0 once the board is full or when
	// the picks could not be fetched.
	NextPick   int         `json:"next_pick"`
	OnTheClock *model.Seat `json:"on_the_clock,omitempty"`
	Degradation
}

// TeamNeeds replays the draft and reports every team, or only teamIndex
// when it is not negative. leagueID is optional and only sizes the board
// when the draft itself is unavailable.
func (s *Service) TeamNeeds(draftID, leagueID string, teamIndex int) (NeedsReport, error) {
	if draftID == "" {
		return NeedsReport{}, &model.ValidationError{Field: "draft_id", Reason: "is required"}
	}

	d := Degradation{Notes: []string{}}
	draft, _ := s.draft(draftID, leagueID, &d)
	picks, picksOK := s.picks(draftID, &d)

	report, err := s.needs(draft, picks, teamIndex)
	if err != nil {
		return NeedsReport{}, err
	}
	if !picksOK {
		report.NextPick = 0
		report.OnTheClock = nil
	}
	report.Degradation = d
	return report, nil
}

// draft fetches a draft. When Sleeper cannot serve it, a snake board sized
// from the league settings, or else from the defaults, stands in and false
// is returned.
func (s *Service) draft(draftID, leagueID string, d *Degradation) (*sleeper.Draft, bool) {
	draft, err := s.client.GetDraft(draftID)
	if err == nil {
		return draft, true
	}
	s.logger.WithError(err).WithField("draft_id", draftID).Warn("Draft unavailable, sizing the board from fallbacks")

	fallback := &sleeper.Draft{
		DraftID:  draftID,
		LeagueID: leagueID,
		Settings: sleeper.DraftSettings{Teams: s.defaults.LeagueSize, Rounds: s.defaults.Rounds},
	}
	if leagueID != "" {
		lg, err := s.client.GetLeague(leagueID)
		if err == nil {
			switch {
			case lg.TotalRosters > 0:
				fallback.Settings.Teams = lg.TotalRosters
			case lg.Settings.NumTeams > 0:
				fallback.Settings.Teams = lg.Settings.NumTeams
			}
			if lg.Settings.DraftRounds > 0 {
				fallback.Settings.Rounds = lg.Settings.DraftRounds
			}
			d.note("draft settings unavailable; board sized from league settings")
			return fallback, false
		}
		s.logger.WithError(err).WithField("league_id", leagueID).Warn("League unavailable, sizing the board from defaults")
	}
	d.note("draft settings unavailable; board sized from defaults")
	return fallback, false
}

// picks fetches the pick list, reporting an empty board when it cannot.
func (s *Service) picks(draftID string, d *Degradation) ([]model.Pick, bool) {
	raw, err := s.client.GetDraftPicks(draftID)
	if err != nil {
		s.logger.WithError(err).WithField("draft_id", draftID).Warn("Draft picks unavailable, analyzing an empty board")
		d.note("draft picks unavailable; board shows no picks")
		return []model.Pick{}, false
	}
	picks, rejected := sleeper.ToPicks(raw)
	if rejected > 0 {
		s.logger.WithFields(logrus.Fields{"draft_id": draftID, "rejected": rejected}).Debug("Skipped incomplete picks")
	}
	return picks, true
}

func (s *Service) needs(draft *sleeper.Draft, picks []model.Pick, teamIndex int) (NeedsReport, error) {
	topology, err := sleeper.ToTopology(draft)
	if err != nil {
		return NeedsReport{}, err
	}
	if teamIndex >= topology.TeamCount {
		return NeedsReport{}, &model.ValidationError{Field: "team_index", Reason: fmt.Sprintf("must be below %d", topology.TeamCount)}
	}

	views, err := draftboard.Analyze(picks, topology)
	if err != nil {
		return NeedsReport{}, err
	}

	report := NeedsReport{
		DraftID:  draft.DraftID,
		LeagueID: draft.LeagueID,
		Topology: topology,
		Teams:    []TeamReport{},
		Summary:  draftboard.Summarize(views),
	}
	name := s.teamNamer(draft)
	for i := 0; i < topology.TeamCount; i++ {
		if teamIndex >= 0 && i != teamIndex {
			continue
		}
		report.Teams = append(report.Teams, TeamReport{
			Name:           name(i),
			TeamRosterView: views[i],
		})
	}

	next := len(picks) + 1
	if seat, err := draftboard.SeatOf(next, topology); err == nil && seat.Round <= topology.RoundCount {
		report.NextPick = next
		report.OnTheClock = &seat
	}
	return report, nil
}

// teamNamer labels draft slots from the league config, then from the
// Sleeper display names of the users in the draft order.
func (s *Service) teamNamer(draft *sleeper.Draft) func(int) string {
	configured := s.leagues.GetLeagueSettings(draft.LeagueID).TeamNames
	slots := make(map[int]string)
	if len(configured) == 0 && draft.LeagueID != "" && len(draft.DraftOrder) > 0 {
		users, err := s.client.GetLeagueUsers(draft.LeagueID)
		if err != nil {
			s.logger.WithError(err).WithField("league_id", draft.LeagueID).Debug("League users unavailable, using generic team names")
		}
		for _, u := range users {
			if slot, ok := draft.DraftOrder[u.UserID]; ok && slot > 0 {
				slots[slot-1] = u.DisplayName
			}
		}
	}
	return func(teamIndex int) string {
		if name, ok := slots[teamIndex]; ok && name != "" {
			return name
		}
		return s.leagues.TeamName(draft.LeagueID, teamIndex)
	}
}

// RecommendRequest asks for picks suited to one team.
type RecommendRequest struct {
	AvailableRequest
	// TeamIndex selects the team; nil means the team on the clock.
	TeamIndex *int
}

// RecommendReport ranks available players for a team's needs.
type RecommendReport struct {
	DraftID         string               `json:"draft_id"`
	Format          model.FormatKey      `json:"format"`
	Team            *TeamReport          `json:"team,omitempty"`
	Recommendations []vbd.Recommendation `json:"recommendations"`
	Degradation
}

// Recommendations weighs value over replacement by the team's needs. The
// position and attribute filters narrow the candidates after VBD, so the
// baselines still come from the whole pool.
func (s *Service) Recommendations(req RecommendRequest) (RecommendReport, error) {
	st, err := s.available(req.AvailableRequest, rankings.Filter{})
	if err != nil {
		return RecommendReport{}, err
	}
	values, err := s.values(st, req.filter(0), -1)
	if err != nil {
		return RecommendReport{}, err
	}

	report := RecommendReport{
		DraftID:     st.report.DraftID,
		Format:      st.report.Format,
		Degradation: values.Degradation,
	}

	var needs model.Needs
	if st.resolved.Draft == nil {
		report.note("draft settings unavailable; team needs not applied")
	} else {
		team := -1
		if req.TeamIndex != nil {
			team = *req.TeamIndex
		}
		board, err := s.needs(st.resolved.Draft, st.resolved.Picks, team)
		switch {
		case err != nil:
			return RecommendReport{}, err
		case team < 0 && board.OnTheClock == nil:
			report.note("draft is complete; team needs not applied")
		case team < 0:
			report.Team = &board.Teams[board.OnTheClock.TeamIndex]
		default:
			report.Team = &board.Teams[0]
		}
		if report.Team != nil {
			needs = report.Team.Needs
		}
	}

	report.Recommendations = vbd.Recommend(values.Players, needs, req.Limit)
	return report, nil
}

// SeatRequest locates a pick on the board. With a DraftID the topology
// comes from the draft and a zero PickNumber means the next pick. Teams,
// Rounds and LeagueID size the board when the draft cannot be fetched.
type SeatRequest struct {
	DraftID    string
	LeagueID   string
	PickNumber int
	Teams      int
	Rounds     int
	DraftType  string
}

// SeatReport places one pick.
type SeatReport struct {
	PickNumber int                 `json:"pick_number"`
	Seat       model.Seat          `json:"seat"`
	TeamName   string              `json:"team_name"`
	Topology   model.DraftTopology `json:"topology"`
	// TeamPicks lists every pick number the team owns.
	TeamPicks []int `json:"team_picks"`
	Degradation
}

// Seat maps a pick number to its team and round.
func (s *Service) Seat(req SeatRequest) (SeatReport, error) {
	topology := model.DraftTopology{TeamCount: req.Teams, RoundCount: req.Rounds, Type: sleeper.DraftType(req.DraftType)}
	name := func(teamIndex int) string { return s.leagues.TeamName(req.LeagueID, teamIndex) }
	pick := req.PickNumber
	d := Degradation{Notes: []string{}}

	if req.DraftID != "" {
		draft, fetched := s.draft(req.DraftID, req.LeagueID, &d)
		if !fetched {
			if req.Teams > 0 {
				draft.Settings.Teams = req.Teams
			}
			if req.Rounds > 0 {
				draft.Settings.Rounds = req.Rounds
			}
			draft.Type = req.DraftType
		}
		var err error
		if topology, err = sleeper.ToTopology(draft); err != nil {
			return SeatReport{}, err
		}
		name = s.teamNamer(draft)
		if pick == 0 {
			picks, _ := s.picks(req.DraftID, &d)
			pick = len(picks) + 1
		}
	}

	seat, err := draftboard.SeatOf(pick, topology)
	if err != nil {
		return SeatReport{}, err
	}
	teamPicks, err := draftboard.PicksForTeam(seat.TeamIndex, topology)
	if err != nil {
		return SeatReport{}, err
	}
	return SeatReport{
		PickNumber:  pick,
		Seat:        seat,
		TeamName:    name(seat.TeamIndex),
		Topology:    topology,
		TeamPicks:   teamPicks,
		Degradation: d,
	}, nil
}
