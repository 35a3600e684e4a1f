// Package store persists match results and reads the job catalog.
//
// It is transport-agnostic: used by the matching service and by any future
// transport layer. All SQL lives here.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobmate/matching-service/internal/model"
)

// maxPersistedMatches bounds the number of rows kept per user per run.
const maxPersistedMatches = 50

// Store wraps the PostgreSQL pool.
type Store struct {
	pool *pgxpool.Pool
}

// New returns a configured Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// MatchWithJob is a persisted match joined with the catalog fields clients
// display alongside the score.
type MatchWithJob struct {
	model.PersistedMatch
	Title     string `json:"title"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	Remote    bool   `json:"remote"`
	SalaryMin *int   `json:"salaryMin,omitempty"`
	SalaryMax *int   `json:"salaryMax,omitempty"`
	URL       string `json:"url,omitempty"`
}

// SaveMatches replaces the user's entire persisted match set with results
// (capped at maxPersistedMatches rows) in a single transaction.
// Replace-not-merge: on any failure the transaction rolls back and the
// previous set stays intact — a half-written result set is never visible.
//
// Concurrent SaveMatches calls for the same user must be serialized by the
// caller; calls for different users do not contend.
func (s *Store) SaveMatches(ctx context.Context, userID string, results []model.MatchResult) error {
	if len(results) > maxPersistedMatches {
		results = results[:maxPersistedMatches]
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("saveMatches begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM matches WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("saveMatches delete: %w", err)
	}

	batch := &pgx.Batch{}
	for _, r := range results {
		batch.Queue(
			`INSERT INTO matches (user_id, job_id, score) VALUES ($1, $2, $3)`,
			userID, r.JobID, r.Score,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("saveMatches insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("saveMatches commit: %w", err)
	}
	return nil
}

// GetMatches returns the user's persisted matches with score >= minScore,
// ordered score descending, at most limit rows (limit <= 0 means no limit).
func (s *Store) GetMatches(ctx context.Context, userID string, minScore float64, limit int) ([]MatchWithJob, error) {
	query := `
		SELECT m.user_id, m.job_id, m.score,
		       j.title, j.company, COALESCE(j.location, ''), j.remote,
		       j.salary_min, j.salary_max, COALESCE(j.url, '')
		FROM matches m
		JOIN jobs j ON j.id = m.job_id
		WHERE m.user_id = $1 AND m.score >= $2
		ORDER BY m.score DESC, m.job_id ASC`

	var (
		rows pgx.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.pool.Query(ctx, query+` LIMIT $3`, userID, minScore, limit)
	} else {
		rows, err = s.pool.Query(ctx, query, userID, minScore)
	}
	if err != nil {
		return nil, fmt.Errorf("getMatches query: %w", err)
	}
	defer rows.Close()

	matches := make([]MatchWithJob, 0)
	for rows.Next() {
		var m MatchWithJob
		if err := rows.Scan(
			&m.UserID, &m.JobID, &m.Score,
			&m.Title, &m.Company, &m.Location, &m.Remote,
			&m.SalaryMin, &m.SalaryMax, &m.URL,
		); err != nil {
			return nil, fmt.Errorf("getMatches scan: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Stats computes the aggregate view over a user's persisted matches —
// a derived read, no separate storage. Bucket edges: <20, 20–40, 40–60,
// 60–80, 80+.
func (s *Store) Stats(ctx context.Context, userID string) (*model.MatchStats, error) {
	var (
		stats                  model.MatchStats
		b0, b20, b40, b60, b80 int
	)
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COALESCE(ROUND(AVG(score)::numeric, 2), 0),
		        COALESCE(MAX(score), 0),
		        COUNT(*) FILTER (WHERE score < 20),
		        COUNT(*) FILTER (WHERE score >= 20 AND score < 40),
		        COUNT(*) FILTER (WHERE score >= 40 AND score < 60),
		        COUNT(*) FILTER (WHERE score >= 60 AND score < 80),
		        COUNT(*) FILTER (WHERE score >= 80)
		 FROM matches
		 WHERE user_id = $1`,
		userID,
	).Scan(
		&stats.TotalMatches, &stats.AverageScore, &stats.TopScore,
		&b0, &b20, &b40, &b60, &b80,
	)
	if err != nil {
		return nil, fmt.Errorf("stats query: %w", err)
	}

	stats.Distribution = map[string]int{
		"<20":   b0,
		"20-40": b20,
		"40-60": b40,
		"60-80": b60,
		"80+":   b80,
	}
	return &stats, nil
}
