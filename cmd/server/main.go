package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/assistant"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/config"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/mcp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	configFlag         = "config"
	leagueSettingsFlag = "league-settings"
	rankingsDirFlag    = "rankings-dir"
	outputFlag         = "output"
	verboseFlag        = "verbose"
)

var build string
var semanticVersion = "v1.0.0" + build

func poolFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "draft", Aliases: []string{"d"}, Usage: "Sleeper draft ID", Required: true},
		&cli.StringFlag{Name: "league", Aliases: []string{"l"}, Usage: "Sleeper league ID (defaults to the draft's league)"},
		&cli.StringFlag{Name: "format", Usage: "Ranking format override, e.g. ppr_standard"},
		&cli.StringFlag{Name: "table", Usage: "Ranking table ID"},
		&cli.StringFlag{Name: "position", Aliases: []string{"p"}, Usage: "Only this position"},
		&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Maximum players to list"},
		&cli.StringFlag{Name: "name", Usage: "Only names containing this text"},
		&cli.StringFlag{Name: "team", Usage: "Only this NFL team"},
		&cli.IntFlag{Name: "tier", Usage: "Only this tier"},
		&cli.IntFlag{Name: "bye", Usage: "Only this bye week"},
	}
}

func poolRequest(cCtx *cli.Context) assistant.AvailableRequest {
	return assistant.AvailableRequest{
		DraftID:      cCtx.String("draft"),
		LeagueID:     cCtx.String("league"),
		Format:       cCtx.String("format"),
		TableID:      cCtx.String("table"),
		Position:     cCtx.String("position"),
		Limit:        cCtx.Int("limit"),
		NameContains: cCtx.String("name"),
		Team:         cCtx.String("team"),
		Tier:         cCtx.Int("tier"),
		ByeWeek:      cCtx.Int("bye"),
	}
}

func output(cCtx *cli.Context, v interface{}) error {
	return writeOutput(cCtx.App.Writer, cCtx.String(outputFlag), v)
}

func serveAction(cCtx *cli.Context, a *app) error {
	a.watchRankings(cCtx.Context)

	mcpServer := mcp.NewDraftMCPServer(a.service, a.logger)
	if mcpServer == nil {
		return fmt.Errorf("failed to create MCP server")
	}

	a.logger.WithFields(logrus.Fields{
		"rankings_dir": a.cfg.Rankings.Dir,
		"tables":       a.repo.Snapshot().Len(),
	}).Info("Starting Sleeper Draft Assistant MCP server...")

	if err := server.ServeStdio(mcpServer); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "sleeper-draft-assistant",
		Usage:   "Draft advice for Sleeper fantasy football drafts, as an MCP server or from the command line",
		Version: semanticVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: configFlag, Aliases: []string{"c"}, Usage: "Path to the TOML settings file", EnvVars: []string{"DRAFT_ASSISTANT_CONFIG"}},
			&cli.StringFlag{Name: leagueSettingsFlag, Usage: "Path to the per-league overrides JSON file"},
			&cli.StringFlag{Name: rankingsDirFlag, Usage: "Directory of ranking sheets (overrides the config file)"},
			&cli.StringFlag{Name: outputFlag, Aliases: []string{"o"}, Value: "json", Usage: "Output format: json or yaml"},
			&cli.BoolFlag{Name: verboseFlag, Aliases: []string{"v"}, Usage: "Debug logging"},
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the draft tools over MCP on stdio",
				Action: withApp(serveAction),
			},
			{
				Name:  "profile",
				Usage: "Classify a league's scoring, lineup and keeper format",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "league", Aliases: []string{"l"}, Usage: "Sleeper league ID", Required: true},
				},
				Action: withApp(func(cCtx *cli.Context, a *app) error {
					report, err := a.service.Profile(cCtx.String("league"))
					if err != nil {
						return err
					}
					return output(cCtx, report)
				}),
			},
			{
				Name:  "unavailable",
				Usage: "List drafted and rostered player IDs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "draft", Aliases: []string{"d"}, Usage: "Sleeper draft ID", Required: true},
					&cli.StringFlag{Name: "league", Aliases: []string{"l"}, Usage: "Sleeper league ID"},
				},
				Action: withApp(func(cCtx *cli.Context, a *app) error {
					res, err := a.service.Unavailable(cCtx.String("draft"), cCtx.String("league"))
					if err != nil {
						return err
					}
					return output(cCtx, res)
				}),
			},
			{
				Name:  "available",
				Usage: "Best available players in ranking order",
				Flags: poolFlags(),
				Action: withApp(func(cCtx *cli.Context, a *app) error {
					report, err := a.service.BestAvailable(poolRequest(cCtx))
					if err != nil {
						return err
					}
					return output(cCtx, report)
				}),
			},
			{
				Name:  "value",
				Usage: "Available players ranked by value over replacement",
				Flags: poolFlags(),
				Action: withApp(func(cCtx *cli.Context, a *app) error {
					report, err := a.service.Values(poolRequest(cCtx))
					if err != nil {
						return err
					}
					return output(cCtx, report)
				}),
			},
			{
				Name:  "recommend",
				Usage: "Pick recommendations for a team",
				Flags: append(poolFlags(),
					&cli.IntFlag{Name: "slot", Usage: "Zero-based draft slot (defaults to the team on the clock)", Value: -1},
				),
				Action: withApp(func(cCtx *cli.Context, a *app) error {
					req := assistant.RecommendRequest{AvailableRequest: poolRequest(cCtx)}
					if slot := cCtx.Int("slot"); slot >= 0 {
						req.TeamIndex = &slot
					}
					report, err := a.service.Recommendations(req)
					if err != nil {
						return err
					}
					return output(cCtx, report)
				}),
			},
			{
				Name:  "needs",
				Usage: "Reconstructed rosters and positional needs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "draft", Aliases: []string{"d"}, Usage: "Sleeper draft ID", Required: true},
					&cli.StringFlag{Name: "league", Aliases: []string{"l"}, Usage: "Sleeper league ID (sizes the board if the draft cannot be fetched)"},
					&cli.IntFlag{Name: "slot", Usage: "Zero-based draft slot (defaults to all teams)", Value: -1},
				},
				Action: withApp(func(cCtx *cli.Context, a *app) error {
					report, err := a.service.TeamNeeds(cCtx.String("draft"), cCtx.String("league"), cCtx.Int("slot"))
					if err != nil {
						return err
					}
					return output(cCtx, report)
				}),
			},
			{
				Name:  "seat",
				Usage: "Team and round that own a pick",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "draft", Aliases: []string{"d"}, Usage: "Sleeper draft ID"},
					&cli.StringFlag{Name: "league", Aliases: []string{"l"}, Usage: "Sleeper league ID"},
					&cli.IntFlag{Name: "pick", Usage: "Overall pick number"},
					&cli.IntFlag{Name: "teams", Usage: "Teams in the draft"},
					&cli.IntFlag{Name: "rounds", Usage: "Rounds in the draft"},
					&cli.StringFlag{Name: "type", Value: "snake", Usage: "snake or linear"},
				},
				Action: withApp(func(cCtx *cli.Context, a *app) error {
					report, err := a.service.Seat(assistant.SeatRequest{
						DraftID:    cCtx.String("draft"),
						LeagueID:   cCtx.String("league"),
						PickNumber: cCtx.Int("pick"),
						Teams:      cCtx.Int("teams"),
						Rounds:     cCtx.Int("rounds"),
						DraftType:  cCtx.String("type"),
					})
					if err != nil {
						return err
					}
					return output(cCtx, report)
				}),
			},
			{
				Name:  "match",
				Usage: "Resolve a ranking name to a Sleeper player",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "position", Aliases: []string{"p"}, Usage: "Position hint"},
					&cli.StringFlag{Name: "team", Usage: "NFL team hint"},
					&cli.StringFlag{Name: "player-id", Usage: "Reverse lookup by Sleeper player ID"},
				},
				ArgsUsage: "NAME",
				Action: withApp(func(cCtx *cli.Context, a *app) error {
					report, err := a.service.MatchName(assistant.MatchRequest{
						Name:     cCtx.Args().First(),
						Position: cCtx.String("position"),
						Team:     cCtx.String("team"),
						PlayerID: cCtx.String("player-id"),
					})
					if err != nil {
						return err
					}
					return output(cCtx, report)
				}),
			},
			{
				Name:  "leagues",
				Usage: "A user's leagues and drafts for a season",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "Sleeper username", Required: true},
					&cli.StringFlag{Name: "season", Aliases: []string{"s"}, Usage: "Season year", Required: true},
				},
				Action: withApp(func(cCtx *cli.Context, a *app) error {
					report, err := a.service.Leagues(cCtx.String("user"), cCtx.String("season"))
					if err != nil {
						return err
					}
					return output(cCtx, report)
				}),
			},
			rankingsCommand(),
			{
				Name:      "init-config",
				Usage:     "Write the default settings file",
				ArgsUsage: "PATH",
				Action: func(cCtx *cli.Context) error {
					path := cCtx.Args().First()
					if path == "" {
						path = config.DefaultConfigPaths[0]
					}
					if _, err := os.Stat(path); err == nil {
						return fmt.Errorf("%s already exists", path)
					}
					return config.DefaultConfig().Save(path)
				},
			},
		},
	}
}

func rankingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "rankings",
		Usage: "Manage ranking tables",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List loaded ranking tables",
				Action: withApp(func(cCtx *cli.Context, a *app) error {
					return output(cCtx, a.service.ListRankings())
				}),
			},
			{
				Name:      "import",
				Usage:     "Store a custom ranking sheet",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Unique ranking name", Required: true},
					&cli.StringFlag{Name: "format", Usage: "Format key, e.g. ppr_superflex"},
					&cli.BoolFlag{Name: "html", Usage: "FILE is an HTML table rather than CSV"},
				},
				Action: withApp(func(cCtx *cli.Context, a *app) error {
					path := cCtx.Args().First()
					if path == "" {
						return fmt.Errorf("a ranking file is required")
					}
					f, err := os.Open(path)
					if err != nil {
						return fmt.Errorf("failed to open ranking file: %w", err)
					}
					defer f.Close()

					report, err := a.service.ImportRanking(cCtx.Context, assistant.ImportRequest{
						Name:   cCtx.String("name"),
						Format: cCtx.String("format"),
						HTML:   cCtx.Bool("html"),
						Body:   f,
					})
					if err != nil {
						return err
					}
					return output(cCtx, report)
				}),
			},
			{
				Name:      "delete",
				Usage:     "Delete a custom ranking",
				ArgsUsage: "TABLE_ID",
				Action: withApp(func(cCtx *cli.Context, a *app) error {
					id := cCtx.Args().First()
					if id == "" {
						return fmt.Errorf("a table id is required")
					}
					if err := a.service.DeleteRanking(cCtx.Context, id); err != nil {
						return err
					}
					return output(cCtx, map[string]string{"deleted": id})
				}),
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
