package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/cupline/internal/adapters/report"
	service "github.com/okian/cupline/internal/app"
	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/types"
)

func newEvaluateCmd(gf *globalFlags) *cobra.Command {
	var (
		team     string
		season   string
		input    string
		explain  bool
		weakOnly bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Rank a roster's players by how far they trail their role benchmark",
		Long: `Score every qualified player of a roster against the benchmark for their role
and print them worst first, followed by the tier counts and the players that
were excluded.

The roster is read from the stats database by team and season, or from a JSON
file of player rows with --input.

Examples:
  # Stored roster
  cupline evaluate --team TOR --season 2023-24

  # Ad-hoc roster with explanations
  cupline evaluate --input roster.json --explain

  # Critical and high tiers only, as JSON
  cupline evaluate --team TOR --season 2023-24 --weak-links -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" && (team == "" || season == "") {
				return fmt.Errorf("%w: --team and --season are required without --input", service.ErrInvalidRequest)
			}
			ctx := cmd.Context()
			cfg, err := gf.setup(ctx, cmd)
			if err != nil {
				return err
			}
			opts, err := gf.reportOptions(explain)
			if err != nil {
				return err
			}

			var rep *types.RosterReport
			if input != "" {
				players, err := readRosterFile(input)
				if err != nil {
					return err
				}
				svc, _, err := newService(cfg, nil)
				if err != nil {
					return err
				}
				if err := svc.LoadBenchmarks(ctx); err != nil {
					return err
				}
				rep, err = svc.EvaluatePlayers(ctx, team, season, players)
				if err != nil {
					return err
				}
			} else {
				stats, err := openStats(ctx, cfg)
				if err != nil {
					return err
				}
				defer func() { _ = stats.Close() }()

				svc, _, err := newService(cfg, stats)
				if err != nil {
					return err
				}
				if err := svc.LoadBenchmarks(ctx); err != nil {
					return err
				}
				rep, err = svc.TeamWeaknesses(ctx, team, season)
				if err != nil {
					return err
				}
			}

			if weakOnly {
				rep.Scores = rep.WeakLinks()
			}
			return report.WriteRoster(cmd.OutOrStdout(), rep, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&team, "team", "", "Team identifier")
	f.StringVar(&season, "season", "", "Season identifier, e.g. 2023-24")
	f.StringVarP(&input, "input", "i", "", "JSON file with player rows to evaluate instead of a stored roster")
	f.BoolVar(&explain, "explain", false, "Include the explanation column")
	f.BoolVar(&weakOnly, "weak-links", false, "Only list critical and high severity players")
	return cmd
}

// rosterFile accepts either a bare array of player rows or an object with a
// players field.
type rosterFile struct {
	Players []model.PlayerSeason `json:"players"`
}

func readRosterFile(path string) ([]model.PlayerSeason, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var players []model.PlayerSeason
	if err := json.Unmarshal(data, &players); err == nil {
		return players, nil
	}
	var doc rosterFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", service.ErrInvalidRequest, path, err)
	}
	return doc.Players, nil
}
