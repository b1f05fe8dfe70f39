// Package availability works out which players can no longer be drafted.
package availability

import (
	"sort"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/league"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/sleeper"
	"github.com/sirupsen/logrus"
)

// Result is the unavailable set for one draft.
type Result struct {
	DraftID  string `json:"draft_id"`
	LeagueID string `json:"league_id,omitempty"`
	// Unavailable is the union of drafted and rostered ids.
	Unavailable    map[string]struct{} `json:"-"`
	UnavailableIDs []string            `json:"unavailable_ids"`
	DraftedCount   int                 `json:"drafted_count"`
	RosteredCount  int                 `json:"rostered_count"`
	Profile        model.LeagueProfile `json:"profile"`
	// Degraded is set when an upstream call failed. A failed league or
	// roster fetch falls back to drafted players only and not dynasty; other
	// failures keep whatever the remaining steps found.
	Degraded bool     `json:"degraded"`
	Notes    []string `json:"notes"`

	// Fetched inputs, kept so callers can reuse them without another round trip.
	Draft   *sleeper.Draft   `json:"-"`
	League  *sleeper.League  `json:"-"`
	Picks   []model.Pick     `json:"-"`
	Rosters []sleeper.Roster `json:"-"`
}

// Resolver gathers drafted and rostered players for a draft.
type Resolver struct {
	client     sleeper.Client
	classifier *league.Classifier
	logger     *logrus.Logger
}

// NewResolver creates a new resolver
func NewResolver(client sleeper.Client, classifier *league.Classifier, logger *logrus.Logger) *Resolver {
	return &Resolver{client: client, classifier: classifier, logger: logger}
}

// Resolve never fails because of the upstream source: any failed fetch is
// logged, noted on the result and answered with the best partial set the
// other steps produced. The only error is a missing draft id.
func (r *Resolver) Resolve(draftID, leagueID string) (Result, error) {
	if draftID == "" {
		return Result{}, &model.ValidationError{Field: "draft_id", Reason: "is required"}
	}

	log := r.logger.WithField("draft_id", draftID)
	res := Result{
		DraftID:     draftID,
		LeagueID:    leagueID,
		Unavailable: make(map[string]struct{}),
		Profile:     league.Fallback(),
		Notes:       []string{},
	}
	degrade := func(err error, note string) {
		log.WithError(err).WithField("step", note).Warn("Unavailability lookup degraded")
		res.Degraded = true
		res.Notes = append(res.Notes, note)
	}

	picks, err := r.client.GetDraftPicks(draftID)
	if err != nil {
		degrade(err, "draft picks unavailable")
	}
	for _, p := range picks {
		id := p.PlayerID
		if id == "" {
			id = p.Metadata.PlayerID
		}
		if id != "" {
			res.Unavailable[id] = struct{}{}
		}
	}
	res.DraftedCount = len(res.Unavailable)
	res.Picks, _ = sleeper.ToPicks(picks)

	draft, err := r.client.GetDraft(draftID)
	if err != nil {
		degrade(err, "draft settings unavailable")
	} else {
		res.Draft = draft
		if res.LeagueID == "" {
			res.LeagueID = draft.LeagueID
		}
	}

	if res.LeagueID == "" {
		res.Notes = append(res.Notes, "no league linked to draft; drafted players only")
		res.finish()
		return res, nil
	}
	log = log.WithField("league_id", res.LeagueID)

	lg, err := r.client.GetLeague(res.LeagueID)
	if err != nil {
		degrade(err, "league settings unavailable")
		res.finish()
		return res, nil
	}
	res.League = lg
	res.Profile = r.classifier.Classify(lg, nil)

	if league.NeedsRosters(lg, res.Profile) {
		rosters, err := r.client.GetLeagueRosters(res.LeagueID)
		if err != nil {
			degrade(err, "league rosters unavailable")
			res.Profile.IsDynastyOrKeeper = false
		} else {
			res.Rosters = rosters
			res.Profile = r.classifier.Classify(lg, rosters)
		}
	}

	if res.Profile.IsDynastyOrKeeper {
		rostered := make(map[string]struct{})
		for _, roster := range res.Rosters {
			for _, list := range [][]string{roster.Players, roster.Taxi, roster.Reserve} {
				for _, id := range list {
					if id == "" {
						continue
					}
					rostered[id] = struct{}{}
					res.Unavailable[id] = struct{}{}
				}
			}
		}
		res.RosteredCount = len(rostered)
	}

	res.finish()
	log.WithFields(logrus.Fields{
		"drafted":     res.DraftedCount,
		"rostered":    res.RosteredCount,
		"unavailable": len(res.UnavailableIDs),
		"dynasty":     res.Profile.IsDynastyOrKeeper,
		"degraded":    res.Degraded,
	}).Info("Resolved unavailable players")
	return res, nil
}

// finish fills the sorted id list.
func (res *Result) finish() {
	res.UnavailableIDs = make([]string, 0, len(res.Unavailable))
	for id := range res.Unavailable {
		res.UnavailableIDs = append(res.UnavailableIDs, id)
	}
	sort.Strings(res.UnavailableIDs)
}
