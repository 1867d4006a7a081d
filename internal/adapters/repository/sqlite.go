package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/okian/cupline/internal/domain/benchmark"
	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/pkg/logger"
)

const sqliteDriver = "sqlite"

var schemaStatements = []string{ //nolint:gochecknoglobals // static DDL
	`CREATE TABLE IF NOT EXISTS player_seasons (
		player_id       TEXT    NOT NULL,
		season          TEXT    NOT NULL,
		team_id         TEXT    NOT NULL,
		name            TEXT    NOT NULL DEFAULT '',
		position        TEXT    NOT NULL,
		games_played    INTEGER NOT NULL,
		goals           INTEGER NOT NULL,
		assists         INTEGER NOT NULL,
		ice_time        REAL    NOT NULL,
		corsi_for_pct   REAL,
		fenwick_for_pct REAL,
		salary_millions REAL,
		age             REAL,
		PRIMARY KEY (player_id, season, team_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_player_seasons_team_season
		ON player_seasons (team_id, season)`,
	`CREATE TABLE IF NOT EXISTS championships (
		season  TEXT PRIMARY KEY,
		team_id TEXT NOT NULL
	)`,
}

const upsertPlayerSeasonQuery = `
	INSERT INTO player_seasons (
		player_id, season, team_id, name, position, games_played, goals, assists,
		ice_time, corsi_for_pct, fenwick_for_pct, salary_millions, age
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (player_id, season, team_id) DO UPDATE SET
		name = excluded.name,
		position = excluded.position,
		games_played = excluded.games_played,
		goals = excluded.goals,
		assists = excluded.assists,
		ice_time = excluded.ice_time,
		corsi_for_pct = excluded.corsi_for_pct,
		fenwick_for_pct = excluded.fenwick_for_pct,
		salary_millions = excluded.salary_millions,
		age = excluded.age`

const selectPlayerSeasonColumns = `
	SELECT player_id, season, team_id, name, position, games_played, goals, assists,
		ice_time, corsi_for_pct, fenwick_for_pct, salary_millions, age
	FROM player_seasons`

// SQLiteSource reads raw player seasons and the championship corpus from a
// SQLite database. It is the persistence collaborator behind roster
// evaluation and benchmark builds.
type SQLiteSource struct {
	db     *sql.DB
	path   string
	logger logger.Logger
}

// OpenSQLite opens (creating if needed) the database at path and ensures the schema exists.
func OpenSQLite(ctx context.Context, path string, opts ...SQLiteOption) (*SQLiteSource, error) {
	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// Single connection avoids "database is locked" under concurrent writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	s := &SQLiteSource{
		db:     db,
		path:   path,
		logger: logger.Get().Named("sqlite-source"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates tables and indexes that do not exist yet.
func (s *SQLiteSource) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", s.path, err)
		}
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// UpsertPlayerSeasons inserts or replaces rows in one transaction.
func (s *SQLiteSource) UpsertPlayerSeasons(ctx context.Context, rows []model.PlayerSeason) (err error) {
	for i := range rows {
		if rows[i].PlayerID == "" || rows[i].Season == "" || rows[i].TeamID == "" {
			return fmt.Errorf("%w: row %d needs player_id, season and team_id", ErrInvalidPlayerSeason, i)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsertPlayerSeasonQuery)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range rows {
		r := &rows[i]
		if _, err = stmt.ExecContext(ctx,
			r.PlayerID, r.Season, r.TeamID, r.Name, r.Position,
			r.GamesPlayed, r.Goals, r.Assists, r.IceTime,
			metricArg(r.CorsiForPct), metricArg(r.FenwickForPct),
			metricArg(r.SalaryMillions), metricArg(r.Age),
		); err != nil {
			return fmt.Errorf("upsert %s/%s: %w", r.PlayerID, r.Season, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug(ctx, "player seasons upserted", logger.Int("rows", len(rows)))
	return nil
}

// SetChampion records teamID as the champion of season.
func (s *SQLiteSource) SetChampion(ctx context.Context, season, teamID string) error {
	if season == "" || teamID == "" {
		return fmt.Errorf("%w: champion needs season and team_id", ErrInvalidPlayerSeason)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO championships (season, team_id) VALUES (?, ?)
		 ON CONFLICT (season) DO UPDATE SET team_id = excluded.team_id`,
		season, teamID)
	if err != nil {
		return fmt.Errorf("set champion %s: %w", season, err)
	}
	return nil
}

// Roster returns every player season recorded for team in season. It returns
// ErrRosterNotFound when the pair has no rows.
func (s *SQLiteSource) Roster(ctx context.Context, teamID, season string) ([]model.PlayerSeason, error) {
	rows, err := s.queryPlayerSeasons(ctx,
		selectPlayerSeasonColumns+` WHERE team_id = ? AND season = ? ORDER BY player_id`,
		strings.TrimSpace(teamID), strings.TrimSpace(season))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrRosterNotFound, teamID, season)
	}
	return rows, nil
}

// ChampionRosters returns the full roster of every recorded champion, oldest season first.
func (s *SQLiteSource) ChampionRosters(ctx context.Context) ([]benchmark.Roster, error) {
	rows, err := s.queryPlayerSeasons(ctx,
		`SELECT ps.player_id, ps.season, ps.team_id, ps.name, ps.position, ps.games_played,
			ps.goals, ps.assists, ps.ice_time, ps.corsi_for_pct, ps.fenwick_for_pct,
			ps.salary_millions, ps.age
		FROM player_seasons ps
		JOIN championships c ON c.season = ps.season AND c.team_id = ps.team_id
		ORDER BY ps.season, ps.player_id`)
	if err != nil {
		return nil, err
	}

	var out []benchmark.Roster
	for i := range rows {
		p := rows[i]
		if n := len(out); n == 0 || out[n-1].Season != p.Season {
			out = append(out, benchmark.Roster{Season: p.Season, TeamID: p.TeamID})
		}
		out[len(out)-1].Players = append(out[len(out)-1].Players, p)
	}
	s.logger.Debug(ctx, "champion rosters loaded",
		logger.Int("rosters", len(out)),
		logger.Int("players", len(rows)),
	)
	return out, nil
}

func (s *SQLiteSource) queryPlayerSeasons(ctx context.Context, query string, args ...any) ([]model.PlayerSeason, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query player seasons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.PlayerSeason
	for rows.Next() {
		var (
			p                           model.PlayerSeason
			corsi, fenwick, salary, age sql.NullFloat64
		)
		if err := rows.Scan(
			&p.PlayerID, &p.Season, &p.TeamID, &p.Name, &p.Position,
			&p.GamesPlayed, &p.Goals, &p.Assists, &p.IceTime,
			&corsi, &fenwick, &salary, &age,
		); err != nil {
			return nil, fmt.Errorf("scan player season: %w", err)
		}
		p.CorsiForPct = metricFrom(corsi)
		p.FenwickForPct = metricFrom(fenwick)
		p.SalaryMillions = metricFrom(salary)
		p.Age = metricFrom(age)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate player seasons: %w", err)
	}
	return out, nil
}

func metricArg(m model.Metric) any {
	if v, ok := m.Value(); ok {
		return v
	}
	return nil
}

func metricFrom(n sql.NullFloat64) model.Metric {
	if !n.Valid {
		return model.None()
	}
	return model.Some(n.Float64)
}
