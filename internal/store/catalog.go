package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"jobmate/matching-service/internal/model"
)

// ErrUserNotFound is returned when the given user id has no row.
var ErrUserNotFound = fmt.Errorf("user not found")

// LoadJobs fetches the full job catalog. The catalog is owned by the
// discovery pipeline; this service only reads it.
func (s *Store) LoadJobs(ctx context.Context) ([]model.JobRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, company, COALESCE(location, ''), description,
		        COALESCE(required_skills, ''), remote, salary_min, salary_max,
		        COALESCE(url, ''), created_at
		 FROM jobs`,
	)
	if err != nil {
		return nil, fmt.Errorf("loadJobs query: %w", err)
	}
	defer rows.Close()

	var jobs []model.JobRecord
	for rows.Next() {
		var j model.JobRecord
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Company, &j.Location, &j.Description,
			&j.RequiredSkills, &j.Remote, &j.SalaryMin, &j.SalaryMax,
			&j.URL, &j.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("loadJobs scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// LoadUserSkills fetches the user's raw skill strings (resume-derived and
// profile-derived sources combined). Normalization happens in the caller.
func (s *Store) LoadUserSkills(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name FROM user_skills WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("loadUserSkills query: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("loadUserSkills scan: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// LoadUserContext fetches the non-skill user signals the scorer consults.
func (s *Store) LoadUserContext(ctx context.Context, userID string) (model.UserContext, error) {
	uc := model.UserContext{UserID: userID}
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(location, '') FROM users WHERE id = $1`, userID,
	).Scan(&uc.Location)
	if err == pgx.ErrNoRows {
		return uc, ErrUserNotFound
	}
	if err != nil {
		return uc, fmt.Errorf("loadUserContext query: %w", err)
	}
	return uc, nil
}

// LoadVocabulary fetches the canonical skill vocabulary used by the
// description-scan fallback of the scoring engine.
func (s *Store) LoadVocabulary(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM skill_vocabulary`)
	if err != nil {
		return nil, fmt.Errorf("loadVocabulary query: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("loadVocabulary scan: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// LoadActiveUserIDs fetches every active user, for batch re-matching.
func (s *Store) LoadActiveUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT id FROM users WHERE is_active = true`)
	if err != nil {
		return nil, fmt.Errorf("loadActiveUserIDs query: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("loadActiveUserIDs scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
