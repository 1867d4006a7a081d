package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/pkg/logger"
)

// seasonsFile is the import document: player season rows plus the champion of
// each season.
type seasonsFile struct {
	Seasons   []model.PlayerSeason `json:"seasons"`
	Champions []champion           `json:"champions"`
}

type champion struct {
	Season string `json:"season"`
	TeamID string `json:"team_id"`
}

func newImportCmd(gf *globalFlags) *cobra.Command {
	var champions []string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load player seasons and champions into the stats database",
		Long: `Upsert player season rows from a JSON document into the SQLite stats database.

The document has the form:
  {"seasons": [{"player_id": "...", "team_id": "...", "season": "...", ...}],
   "champions": [{"season": "2023-24", "team_id": "FLA"}]}

Champions can also be given on the command line as season=team.

Examples:
  cupline import seasons.json --db ./cupline.db
  cupline import seasons.json --champion 2023-24=FLA`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := gf.setup(ctx, cmd)
			if err != nil {
				return err
			}

			doc, err := readSeasonsFile(args[0])
			if err != nil {
				return err
			}
			for _, c := range champions {
				season, team, ok := strings.Cut(c, "=")
				if !ok || season == "" || team == "" {
					return fmt.Errorf("invalid --champion %q, want season=team", c)
				}
				doc.Champions = append(doc.Champions, champion{Season: season, TeamID: team})
			}

			stats, err := openStats(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = stats.Close() }()

			if err := stats.UpsertPlayerSeasons(ctx, doc.Seasons); err != nil {
				return err
			}
			for _, c := range doc.Champions {
				if err := stats.SetChampion(ctx, c.Season, c.TeamID); err != nil {
					return err
				}
			}

			logger.Named("import").Info(ctx, "stats imported",
				logger.String("db", cfg.StatsDBPath),
				logger.Int("seasons", len(doc.Seasons)),
				logger.Int("champions", len(doc.Champions)),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d player seasons and %d champions into %s\n",
				len(doc.Seasons), len(doc.Champions), cfg.StatsDBPath)
			return err
		},
	}
	cmd.Flags().StringArrayVar(&champions, "champion", nil, "Record a champion as season=team (repeatable)")
	return cmd
}

func readSeasonsFile(path string) (seasonsFile, error) {
	var doc seasonsFile
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}
