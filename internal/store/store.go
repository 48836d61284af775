// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/jazzquiz/internal/model"
	"github.com/verte-zerg/jazzquiz/internal/scoring"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for sessions and the player profile.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			uuid TEXT NOT NULL UNIQUE,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			cadence_types TEXT NOT NULL,
			questions INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			hints_used INTEGER NOT NULL,
			xp_earned INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_key_stats (
			session_id INTEGER NOT NULL,
			key_name TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			PRIMARY KEY (session_id, key_name)
		);`,
		`CREATE TABLE IF NOT EXISTS profile (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			total_xp INTEGER NOT NULL,
			questions INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			streak_current INTEGER NOT NULL,
			streak_best INTEGER NOT NULL,
			streak_last_day TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS profile_keys (
			key_name TEXT PRIMARY KEY,
			attempts INTEGER NOT NULL,
			correct INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_session_key_stats_key ON session_key_stats(key_name);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and its per-key stats.
func (s *Store) InsertSession(ctx context.Context, stats model.SessionStats, keys []model.KeyStats) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (uuid, started_at, ended_at, mode, difficulty, cadence_types, questions, correct, incorrect, hints_used, xp_earned, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.UUID,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.Mode,
		stats.Difficulty,
		stats.CadenceTypes,
		stats.Questions,
		stats.Correct,
		stats.Incorrect,
		stats.HintsUsed,
		stats.XPEarned,
		stats.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(keys) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO session_key_stats (session_id, key_name, correct, incorrect)
			 VALUES (?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, ks := range keys {
			if _, err = stmt.ExecContext(ctx, id, ks.Key, ks.Correct, ks.Incorrect); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetWeakKeys aggregates key stats over the most recent sessions.
func (s *Store) GetWeakKeys(ctx context.Context, window int, mode string) ([]model.KeyAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_sessions AS (
		SELECT id FROM sessions
		WHERE (? = '' OR mode = ?)
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT ks.key_name, SUM(ks.correct) AS correct, SUM(ks.incorrect) AS incorrect
	FROM session_key_stats ks
	JOIN recent_sessions r ON r.id = ks.session_id
	GROUP BY ks.key_name`

	rows, err := s.db.QueryContext(ctx, query, mode, mode, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	return scanKeyAggregates(rows)
}

// ListSessions returns session aggregates filtered by stats config, oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, cfg.Mode)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, mode, correct, incorrect, xp_earned, duration_ms
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.Mode, &agg.Correct, &agg.Incorrect, &agg.XPEarned, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListKeyAggregatesForSessions aggregates per-key stats across sessions.
func (s *Store) ListKeyAggregatesForSessions(ctx context.Context, sessionIDs []int64) ([]model.KeyAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders, args := idArgs(sessionIDs)
	query := fmt.Sprintf(`SELECT key_name, SUM(correct) AS correct, SUM(incorrect) AS incorrect
		FROM session_key_stats
		WHERE session_id IN (%s)
		GROUP BY key_name`, placeholders)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	return scanKeyAggregates(rows)
}

// ListKeyStatsForSessions returns per-session stats for selected keys.
func (s *Store) ListKeyStatsForSessions(ctx context.Context, sessionIDs []int64, keys []string) (map[int64]map[string]model.KeyAggregate, error) {
	if len(sessionIDs) == 0 || len(keys) == 0 {
		return map[int64]map[string]model.KeyAggregate{}, nil
	}
	idPlaceholders, args := idArgs(sessionIDs)
	keyPlaceholders := make([]string, len(keys))
	for i, k := range keys {
		keyPlaceholders[i] = "?"
		args = append(args, k)
	}

	query := fmt.Sprintf(`SELECT session_id, key_name, correct, incorrect
		FROM session_key_stats
		WHERE session_id IN (%s) AND key_name IN (%s)`, idPlaceholders, strings.Join(keyPlaceholders, ","))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := map[int64]map[string]model.KeyAggregate{}
	for rows.Next() {
		var sessionID int64
		var agg model.KeyAggregate
		if err := rows.Scan(&sessionID, &agg.Key, &agg.Correct, &agg.Incorrect); err != nil {
			return nil, err
		}
		if _, ok := result[sessionID]; !ok {
			result[sessionID] = map[string]model.KeyAggregate{}
		}
		result[sessionID][agg.Key] = agg
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// LoadProfile returns the stored player profile, or an empty one.
func (s *Store) LoadProfile(ctx context.Context) (scoring.Profile, error) {
	var p scoring.Profile
	var lastDay string
	err := s.db.QueryRowContext(ctx,
		`SELECT total_xp, questions, correct, streak_current, streak_best, streak_last_day
		 FROM profile WHERE id = 1`).
		Scan(&p.Level.TotalXP, &p.Stats.Questions, &p.Stats.Correct, &p.Streak.Current, &p.Streak.Best, &lastDay)
	if errors.Is(err, sql.ErrNoRows) {
		return scoring.Profile{}, nil
	}
	if err != nil {
		return scoring.Profile{}, err
	}
	if lastDay != "" {
		parsed, err := time.Parse(time.RFC3339, lastDay)
		if err != nil {
			return scoring.Profile{}, fmt.Errorf("invalid streak day %q: %w", lastDay, err)
		}
		p.Streak.LastDay = parsed
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key_name, attempts, correct FROM profile_keys`)
	if err != nil {
		return scoring.Profile{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	p.Stats.PerKey = map[string]scoring.KeyRecord{}
	for rows.Next() {
		var key string
		var rec scoring.KeyRecord
		if err := rows.Scan(&key, &rec.Attempts, &rec.Correct); err != nil {
			return scoring.Profile{}, err
		}
		p.Stats.PerKey[key] = rec
	}
	if err := rows.Err(); err != nil {
		return scoring.Profile{}, err
	}
	return p, nil
}

// SaveProfile replaces the stored player profile.
func (s *Store) SaveProfile(ctx context.Context, p scoring.Profile) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	lastDay := ""
	if !p.Streak.LastDay.IsZero() {
		lastDay = p.Streak.LastDay.Format(time.RFC3339)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO profile (id, total_xp, questions, correct, streak_current, streak_best, streak_last_day)
		 VALUES (1, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			total_xp = excluded.total_xp,
			questions = excluded.questions,
			correct = excluded.correct,
			streak_current = excluded.streak_current,
			streak_best = excluded.streak_best,
			streak_last_day = excluded.streak_last_day`,
		p.Level.TotalXP, p.Stats.Questions, p.Stats.Correct, p.Streak.Current, p.Streak.Best, lastDay,
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM profile_keys`); err != nil {
		return err
	}
	for key, rec := range p.Stats.PerKey {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO profile_keys (key_name, attempts, correct) VALUES (?, ?, ?)`,
			key, rec.Attempts, rec.Correct,
		); err != nil {
			return err
		}
	}
	err = tx.Commit()
	return err
}

func idArgs(ids []int64) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	return strings.Join(placeholders, ","), args
}

func scanKeyAggregates(rows *sql.Rows) ([]model.KeyAggregate, error) {
	var result []model.KeyAggregate
	for rows.Next() {
		var agg model.KeyAggregate
		if err := rows.Scan(&agg.Key, &agg.Correct, &agg.Incorrect); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
