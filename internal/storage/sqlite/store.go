// Package sqlite provides the SQLite-backed league data cache.
// Fetched CSV exports are imported once and served from disk across
// restarts.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/questline/internal/features/league"
)

// Store implements league.Store on SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL keeps reads cheap while an import transaction runs.
	dsn := path + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS league_matches (
		league TEXT NOT NULL,
		seq INTEGER NOT NULL,
		match_date TEXT NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		home_goals INTEGER NOT NULL,
		away_goals INTEGER NOT NULL,
		home_shots INTEGER NOT NULL,
		away_shots INTEGER NOT NULL,
		home_corners INTEGER NOT NULL,
		away_corners INTEGER NOT NULL,
		home_yellow INTEGER NOT NULL,
		away_yellow INTEGER NOT NULL,
		home_red INTEGER NOT NULL,
		away_red INTEGER NOT NULL,
		referee TEXT NOT NULL,
		PRIMARY KEY (league, seq)
	);

	CREATE TABLE IF NOT EXISTS league_analysis (
		league TEXT NOT NULL,
		seq INTEGER NOT NULL,
		team_id TEXT NOT NULL,
		title TEXT NOT NULL,
		history_json TEXT NOT NULL,
		PRIMARY KEY (league, seq)
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// ReplaceMatches swaps a league's result rows in one transaction.
func (s *Store) ReplaceMatches(ctx context.Context, leagueKey string, matches []league.Match) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM league_matches WHERE league = ?`, leagueKey); err != nil {
		return fmt.Errorf("clear matches: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO league_matches (
			league, seq, match_date, home_team, away_team,
			home_goals, away_goals, home_shots, away_shots,
			home_corners, away_corners, home_yellow, away_yellow,
			home_red, away_red, referee
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare match insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, m := range matches {
		_, err := stmt.ExecContext(ctx,
			leagueKey, i, m.Date, m.HomeTeam, m.AwayTeam,
			m.HomeGoals, m.AwayGoals, m.HomeShots, m.AwayShots,
			m.HomeCorners, m.AwayCorners, m.HomeYellow, m.AwayYellow,
			m.HomeRed, m.AwayRed, m.Referee,
		)
		if err != nil {
			return fmt.Errorf("insert match %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// Matches returns a league's result rows in import order.
func (s *Store) Matches(ctx context.Context, leagueKey string) ([]league.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT match_date, home_team, away_team,
		       home_goals, away_goals, home_shots, away_shots,
		       home_corners, away_corners, home_yellow, away_yellow,
		       home_red, away_red, referee
		FROM league_matches WHERE league = ? ORDER BY seq`, leagueKey)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []league.Match
	for rows.Next() {
		var m league.Match
		if err := rows.Scan(
			&m.Date, &m.HomeTeam, &m.AwayTeam,
			&m.HomeGoals, &m.AwayGoals, &m.HomeShots, &m.AwayShots,
			&m.HomeCorners, &m.AwayCorners, &m.HomeYellow, &m.AwayYellow,
			&m.HomeRed, &m.AwayRed, &m.Referee,
		); err != nil {
			return nil, fmt.Errorf("scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return matches, nil
}

// ReplaceAnalysis swaps a league's season histories in one
// transaction. Match histories are stored as JSON documents.
func (s *Store) ReplaceAnalysis(ctx context.Context, leagueKey string, teams []league.TeamSeason) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM league_analysis WHERE league = ?`, leagueKey); err != nil {
		return fmt.Errorf("clear analysis: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO league_analysis (league, seq, team_id, title, history_json)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare analysis insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, team := range teams {
		history, err := json.Marshal(team.Matches)
		if err != nil {
			return fmt.Errorf("marshal history for %s: %w", team.Title, err)
		}
		if _, err := stmt.ExecContext(ctx, leagueKey, i, team.ID, team.Title, string(history)); err != nil {
			return fmt.Errorf("insert analysis %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// Analysis returns a league's season histories in import order.
func (s *Store) Analysis(ctx context.Context, leagueKey string) ([]league.TeamSeason, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT team_id, title, history_json
		FROM league_analysis WHERE league = ? ORDER BY seq`, leagueKey)
	if err != nil {
		return nil, fmt.Errorf("query analysis: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var teams []league.TeamSeason
	for rows.Next() {
		var team league.TeamSeason
		var history string
		if err := rows.Scan(&team.ID, &team.Title, &history); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		if err := json.Unmarshal([]byte(history), &team.Matches); err != nil {
			return nil, fmt.Errorf("unmarshal history for %s: %w", team.Title, err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analysis: %w", err)
	}
	return teams, nil
}
