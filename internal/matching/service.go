// Package matching contains the business logic of the matching service:
// compute fresh matches, persist them, keep the per-user cache warm, and
// expose cache invalidation to data-change events.
//
// It is transport-agnostic — used by the HTTP handlers (httpapi package)
// and the batch scheduler.
package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"jobmate/matching-service/internal/cache"
	"jobmate/matching-service/internal/model"
	"jobmate/matching-service/internal/scoring"
	"jobmate/matching-service/internal/skills"
	"jobmate/matching-service/internal/store"
)

// cachedMatchCount is the externally-visible slice size held in the cache.
const cachedMatchCount = 20

// jobScoreConcurrency bounds concurrent job scoring within one user's pass.
const jobScoreConcurrency = 8

// Storage is the persistence surface the service needs. *store.Store
// satisfies it; tests substitute an in-memory implementation.
type Storage interface {
	SaveMatches(ctx context.Context, userID string, results []model.MatchResult) error
	GetMatches(ctx context.Context, userID string, minScore float64, limit int) ([]store.MatchWithJob, error)
	Stats(ctx context.Context, userID string) (*model.MatchStats, error)
	LoadJobs(ctx context.Context) ([]model.JobRecord, error)
	LoadUserSkills(ctx context.Context, userID string) ([]string, error)
	LoadUserContext(ctx context.Context, userID string) (model.UserContext, error)
	LoadVocabulary(ctx context.Context) ([]string, error)
	LoadActiveUserIDs(ctx context.Context) ([]string, error)
}

// Service encapsulates the matching workflow.
type Service struct {
	db          Storage
	cache       cache.Cache
	cacheTTL    time.Duration
	concurrency int // parallel user passes during batch matching

	// userLocks serializes SaveMatches per user. The delete+insert replace
	// is a critical section scoped to one user_id; different users do not
	// contend.
	userLocks sync.Map // userID → *sync.Mutex
}

// NewService returns a configured Service. batchConcurrency must be >= 1.
func NewService(db Storage, c cache.Cache, cacheTTL time.Duration, batchConcurrency int) *Service {
	if batchConcurrency < 1 {
		batchConcurrency = 1
	}
	return &Service{db: db, cache: c, cacheTTL: cacheTTL, concurrency: batchConcurrency}
}

// ─── Fresh matching ──────────────────────────────────────────────────────────

// MatchUser scores the full job catalog for one user, persists the top
// matches (replacing the previous set) and repopulates the user's cache
// entry. Returns the full ranked list, best first.
//
// A user with no skills, or an empty catalog, yields an empty list and no
// error — "nothing to score" is not a failure. A persistence failure is
// fatal: the previous persisted set stays intact and the error surfaces.
func (s *Service) MatchUser(ctx context.Context, userID string) ([]model.MatchResult, error) {
	userCtx, err := s.db.LoadUserContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	rawSkills, err := s.db.LoadUserSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	userSkills := skills.NormalizeSet(rawSkills)
	if len(userSkills) == 0 {
		slog.Info("user has no skills, nothing to score", "userId", userID)
		return []model.MatchResult{}, nil
	}

	jobs, err := s.db.LoadJobs(ctx)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		slog.Info("job catalog is empty, nothing to score", "userId", userID)
		return []model.MatchResult{}, nil
	}

	vocabulary, err := s.db.LoadVocabulary(ctx)
	if err != nil {
		// The vocabulary only feeds the description-scan fallback; score
		// without it rather than failing the whole run.
		slog.Warn("skill vocabulary unavailable, fallback scan disabled", "err", err)
		vocabulary = nil
	}

	results := s.scoreAll(ctx, scoring.NewEngine(vocabulary), userSkills, jobs, userCtx)

	// Persist top matches — serialized per user, atomic replace.
	mu := s.userLock(userID)
	mu.Lock()
	err = s.db.SaveMatches(ctx, userID, results)
	mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("persist matches for user %s: %w", userID, err)
	}

	s.populateCache(ctx, userID, results)

	slog.Info("matching complete", "userId", userID, "jobsScored", len(jobs), "matches", len(results))
	return results, nil
}

// scoreAll scores every job concurrently and returns the non-zero results
// sorted by score descending, ties broken by job ID ascending so the
// ordering is deterministic.
func (s *Service) scoreAll(
	ctx context.Context,
	engine *scoring.Engine,
	userSkills map[string]bool,
	jobs []model.JobRecord,
	userCtx model.UserContext,
) []model.MatchResult {
	scored := make([]model.MatchResult, len(jobs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(jobScoreConcurrency)
	for i := range jobs {
		i := i
		g.Go(func() error {
			scored[i] = engine.Score(userSkills, jobs[i], userCtx)
			return nil
		})
	}
	_ = g.Wait() // scoring never returns an error

	results := make([]model.MatchResult, 0, len(scored))
	for _, r := range scored {
		if r.Score > 0 {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].JobID < results[j].JobID
	})
	return results
}

// CachedMatches returns the externally-facing top slice for a user: the
// cached entry when fresh, otherwise the result of a full MatchUser run.
func (s *Service) CachedMatches(ctx context.Context, userID string) ([]model.MatchResult, error) {
	key := cache.UserMatchesKey(userID)

	if data, ok := s.cache.Get(ctx, key); ok {
		var cached []model.MatchResult
		if err := json.Unmarshal(data, &cached); err == nil {
			slog.Debug("cache hit", "userId", userID)
			return cached, nil
		}
		// Corrupt entry — drop it and recompute.
		s.cache.Delete(ctx, key)
	}

	results, err := s.MatchUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return topSlice(results), nil
}

// populateCache stores the top slice under the user's key. Best-effort: a
// failed write only costs the next reader a recompute.
func (s *Service) populateCache(ctx context.Context, userID string, results []model.MatchResult) {
	data, err := json.Marshal(topSlice(results))
	if err != nil {
		slog.Warn("marshal matches for cache failed", "userId", userID, "err", err)
		return
	}
	if !s.cache.Set(ctx, cache.UserMatchesKey(userID), data, s.cacheTTL) {
		slog.Warn("cache populate failed", "userId", userID)
	}
}

func topSlice(results []model.MatchResult) []model.MatchResult {
	if len(results) > cachedMatchCount {
		return results[:cachedMatchCount]
	}
	return results
}

func (s *Service) userLock(userID string) *sync.Mutex {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// ─── Reads ───────────────────────────────────────────────────────────────────

// Matches returns the user's persisted matches filtered by minimum score.
func (s *Service) Matches(ctx context.Context, userID string, minScore float64, limit int) ([]store.MatchWithJob, error) {
	return s.db.GetMatches(ctx, userID, minScore, limit)
}

// Stats returns the aggregate statistics over the user's persisted matches.
func (s *Service) Stats(ctx context.Context, userID string) (*model.MatchStats, error) {
	return s.db.Stats(ctx, userID)
}

// ─── Invalidation ────────────────────────────────────────────────────────────

// Invalidate drops the user's cached match slice. Called when the user's
// skill set changes (resume reparsed, profile source disconnected).
func (s *Service) Invalidate(ctx context.Context, userID string) bool {
	return s.cache.Delete(ctx, cache.UserMatchesKey(userID))
}

// InvalidateAll drops every cached match slice. Called when the job catalog
// changes (new jobs ingested by the discovery service).
func (s *Service) InvalidateAll(ctx context.Context) int {
	return s.cache.DeletePrefix(ctx, cache.UserMatchesPrefix)
}
