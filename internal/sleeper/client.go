package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	BaseURL        = "https://api.sleeper.app/v1"
	DefaultTimeout = 10 * time.Second

	// Sleeper asks callers to stay under 1000 requests per minute.
	DefaultRequestsPerSecond = 10
	DefaultBurst             = 5
)

// Client defines the interface for interacting with the Sleeper API
type Client interface {
	// User methods
	GetUser(usernameOrID string) (*User, error)
	GetUserLeagues(userID, sport, season string) ([]League, error)

	// League methods
	GetLeague(leagueID string) (*League, error)
	GetLeagueUsers(leagueID string) ([]User, error)
	GetLeagueRosters(leagueID string) ([]Roster, error)
	GetLeagueDrafts(leagueID string) ([]Draft, error)

	// Draft methods
	GetDraft(draftID string) (*Draft, error)
	GetDraftPicks(draftID string) ([]DraftPick, error)

	// Player methods
	GetAllPlayers() (map[string]Player, error)
}

// Options configures an HTTPClient
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// DefaultOptions returns the options used by NewHTTPClient
func DefaultOptions() Options {
	return Options{
		BaseURL:           BaseURL,
		Timeout:           DefaultTimeout,
		RequestsPerSecond: DefaultRequestsPerSecond,
		Burst:             DefaultBurst,
	}
}

// HTTPClient implements the Client interface using HTTP requests
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewHTTPClient creates a new HTTP client for the Sleeper API
func NewHTTPClient(logger *logrus.Logger) Client {
	return NewHTTPClientWithOptions(DefaultOptions(), logger)
}

// NewHTTPClientWithOptions creates a client against a custom base URL and request rate
func NewHTTPClientWithOptions(opts Options, logger *logrus.Logger) *HTTPClient {
	if opts.BaseURL == "" {
		opts.BaseURL = BaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &HTTPClient{
		baseURL: opts.BaseURL,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// makeRequest performs an HTTP GET request to the Sleeper API
func (c *HTTPClient) makeRequest(endpoint string, result interface{}) error {
	url := fmt.Sprintf("%s%s", c.baseURL, endpoint)

	if c.limiter != nil {
		if err := c.limiter.Wait(context.Background()); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}
	}

	c.logger.WithField("url", url).Debug("Making API request")

	resp, err := c.httpClient.Get(url)
	if err != nil {
		c.logger.WithError(err).Error("HTTP request failed")
		return &SleeperError{
			Type:    "network_error",
			Message: fmt.Sprintf("http request failed: %v", err),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.WithError(err).Error("Failed to read response body")
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"response":    string(body),
		}).Error("API request failed")

		return &SleeperError{
			Type:       "api_error",
			Message:    fmt.Sprintf("API request failed with status %d: %s", resp.StatusCode, string(body)),
			StatusCode: resp.StatusCode,
		}
	}

	if err := json.Unmarshal(body, result); err != nil {
		c.logger.WithError(err).WithField("endpoint", endpoint).Error("Failed to unmarshal response")
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	c.logger.Debug("API request completed successfully")
	return nil
}

// GetUser retrieves a user by username or user ID
func (c *HTTPClient) GetUser(usernameOrID string) (*User, error) {
	endpoint := fmt.Sprintf("/user/%s", usernameOrID)
	var user User

	if err := c.makeRequest(endpoint, &user); err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", usernameOrID, err)
	}

	return &user, nil
}

// GetUserLeagues retrieves all leagues for a user in a given sport and season
func (c *HTTPClient) GetUserLeagues(userID, sport, season string) ([]League, error) {
	endpoint := fmt.Sprintf("/user/%s/leagues/%s/%s", userID, sport, season)
	var leagues []League

	if err := c.makeRequest(endpoint, &leagues); err != nil {
		return nil, fmt.Errorf("failed to get leagues for user %s: %w", userID, err)
	}

	return leagues, nil
}

// GetLeague retrieves comprehensive league information
func (c *HTTPClient) GetLeague(leagueID string) (*League, error) {
	endpoint := fmt.Sprintf("/league/%s", leagueID)
	var league *League

	if err := c.makeRequest(endpoint, &league); err != nil {
		return nil, fmt.Errorf("failed to get league %s: %w", leagueID, err)
	}
	// Sleeper answers unknown ids with 200 and a null body.
	if league == nil {
		return nil, &SleeperError{Type: "not_found", Message: fmt.Sprintf("league %s not found", leagueID), LeagueID: leagueID}
	}

	return league, nil
}

// GetLeagueUsers retrieves all users in a league
func (c *HTTPClient) GetLeagueUsers(leagueID string) ([]User, error) {
	endpoint := fmt.Sprintf("/league/%s/users", leagueID)
	var users []User

	if err := c.makeRequest(endpoint, &users); err != nil {
		return nil, fmt.Errorf("failed to get users for league %s: %w", leagueID, err)
	}

	return users, nil
}

// GetLeagueRosters retrieves all rosters in a league
func (c *HTTPClient) GetLeagueRosters(leagueID string) ([]Roster, error) {
	endpoint := fmt.Sprintf("/league/%s/rosters", leagueID)
	var rosters []Roster

	if err := c.makeRequest(endpoint, &rosters); err != nil {
		return nil, fmt.Errorf("failed to get rosters for league %s: %w", leagueID, err)
	}

	return rosters, nil
}

// GetLeagueDrafts retrieves every draft attached to a league
func (c *HTTPClient) GetLeagueDrafts(leagueID string) ([]Draft, error) {
	endpoint := fmt.Sprintf("/league/%s/drafts", leagueID)
	var drafts []Draft

	if err := c.makeRequest(endpoint, &drafts); err != nil {
		return nil, fmt.Errorf("failed to get drafts for league %s: %w", leagueID, err)
	}

	return drafts, nil
}

// GetDraft retrieves draft metadata and settings
func (c *HTTPClient) GetDraft(draftID string) (*Draft, error) {
	endpoint := fmt.Sprintf("/draft/%s", draftID)
	var draft *Draft

	if err := c.makeRequest(endpoint, &draft); err != nil {
		return nil, fmt.Errorf("failed to get draft %s: %w", draftID, err)
	}
	if draft == nil {
		return nil, &SleeperError{Type: "not_found", Message: fmt.Sprintf("draft %s not found", draftID)}
	}

	return draft, nil
}

// GetDraftPicks retrieves every pick made so far in a draft
func (c *HTTPClient) GetDraftPicks(draftID string) ([]DraftPick, error) {
	endpoint := fmt.Sprintf("/draft/%s/picks", draftID)
	var picks []DraftPick

	if err := c.makeRequest(endpoint, &picks); err != nil {
		return nil, fmt.Errorf("failed to get picks for draft %s: %w", draftID, err)
	}

	return picks, nil
}

// GetAllPlayers retrieves all NFL players (use sparingly)
func (c *HTTPClient) GetAllPlayers() (map[string]Player, error) {
	endpoint := "/players/nfl"
	var players map[string]Player

	if err := c.makeRequest(endpoint, &players); err != nil {
		return nil, fmt.Errorf("failed to get all players: %w", err)
	}

	return players, nil
}
