package sleeper

import "time"

// League represents a Sleeper fantasy league
type League struct {
	LeagueID         string             `json:"league_id"`
	Name             string             `json:"name"`
	Status           string             `json:"status"`
	Sport            string             `json:"sport"`
	Season           string             `json:"season"`
	Settings         LeagueSettings     `json:"settings"`
	ScoringSettings  map[string]float64 `json:"scoring_settings"`
	RosterPositions  []string           `json:"roster_positions"`
	TotalRosters     int                `json:"total_rosters"`
	DraftID          string             `json:"draft_id"`
	PreviousLeagueID string             `json:"previous_league_id"`
	Avatar           string             `json:"avatar"`
}

// LeagueSettings contains the league configuration fields the draft engine reads
type LeagueSettings struct {
	// Type is 0 for redraft, 1 for keeper and 2 for dynasty.
	Type         int `json:"type"`
	NumTeams     int `json:"num_teams"`
	MaxKeepers   int `json:"max_keepers"`
	TaxiSlots    int `json:"taxi_slots"`
	DraftRounds  int `json:"draft_rounds"`
	ReserveSlots int `json:"reserve_slots"`
	BenchLock    int `json:"bench_lock"`
}

// User represents a Sleeper user
type User struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

// Roster represents a team's roster
type Roster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
	Starters []string `json:"starters"`
	Reserve  []string `json:"reserve"`
	Taxi     []string `json:"taxi"`
	Keepers  []string `json:"keepers"`
}

// Player represents an NFL player
type Player struct {
	PlayerID         string   `json:"player_id"`
	FullName         string   `json:"full_name"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Position         string   `json:"position"`
	Team             string   `json:"team"`
	Status           string   `json:"status"`
	InjuryStatus     string   `json:"injury_status"`
	FantasyPositions []string `json:"fantasy_positions"`
	Age              int      `json:"age"`
	YearsExp         int      `json:"years_exp"`
	SearchRank       int      `json:"search_rank"`
}

// Draft represents a Sleeper draft
type Draft struct {
	DraftID    string         `json:"draft_id"`
	LeagueID   string         `json:"league_id"`
	Type       string         `json:"type"`
	Status     string         `json:"status"`
	Season     string         `json:"season"`
	StartTime  int64          `json:"start_time"`
	Settings   DraftSettings  `json:"settings"`
	DraftOrder map[string]int `json:"draft_order"`
	Metadata   DraftMetadata  `json:"metadata"`
}

// DraftSettings contains the board dimensions of a draft
type DraftSettings struct {
	Teams     int `json:"teams"`
	Rounds    int `json:"rounds"`
	PickTimer int `json:"pick_timer"`
}

// DraftMetadata contains display information about a draft
type DraftMetadata struct {
	Name        string `json:"name"`
	ScoringType string `json:"scoring_type"`
	Description string `json:"description"`
}

// DraftPick represents a single selection made in a draft
type DraftPick struct {
	PickNo    int               `json:"pick_no"`
	Round     int               `json:"round"`
	RosterID  int               `json:"roster_id"`
	PlayerID  string            `json:"player_id"`
	PickedBy  string            `json:"picked_by"`
	DraftSlot int               `json:"draft_slot"`
	DraftID   string            `json:"draft_id"`
	IsKeeper  *bool             `json:"is_keeper"`
	PickedAt  int64             `json:"picked_at,omitempty"`
	Metadata  DraftPickMetadata `json:"metadata"`
}

// DraftPickMetadata carries the player details Sleeper embeds in each pick
type DraftPickMetadata struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
	PlayerID  string `json:"player_id"`
}

// APIResponse represents the standard response format for our tools
type APIResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Summary  string      `json:"summary"`
	Error    string      `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata contains response metadata
type Metadata struct {
	Timestamp    time.Time `json:"timestamp"`
	Source       string    `json:"source"`
	CacheHit     bool      `json:"cache_hit"`
	APICallsUsed int       `json:"api_calls_used"`
	LeagueID     string    `json:"league_id,omitempty"`
	DraftID      string    `json:"draft_id,omitempty"`
	FallbackMode bool      `json:"fallback_mode"`
	Notes        []string  `json:"notes,omitempty"`
}

// SleeperError represents an error from the Sleeper API
type SleeperError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
	LeagueID   string `json:"league_id,omitempty"`
}

func (e *SleeperError) Error() string {
	return e.Message
}
