package matching

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// BatchSummary reports the outcome of one batch matching cycle.
type BatchSummary struct {
	TotalUsers  int       `json:"totalUsers"`
	Succeeded   int       `json:"succeeded"`
	Empty       int       `json:"empty"` // users with no skills or nothing matching
	Failed      int       `json:"failed"`
	ProcessedAt time.Time `json:"processedAt"`
}

// MatchAllUsers runs a full matching pass for every active user. User
// passes are independent and run in parallel, bounded by the configured
// batch concurrency. Per-user failures are logged and counted, never fatal
// to the cycle.
func (s *Service) MatchAllUsers(ctx context.Context) (*BatchSummary, error) {
	userIDs, err := s.db.LoadActiveUserIDs(ctx)
	if err != nil {
		return nil, err
	}

	var succeeded, empty, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			results, err := s.MatchUser(gctx, userID)
			switch {
			case err != nil:
				slog.Error("batch matching failed for user", "userId", userID, "err", err)
				failed.Add(1)
			case len(results) == 0:
				empty.Add(1)
			default:
				succeeded.Add(1)
			}
			return nil // per-user errors never cancel the batch
		})
	}
	_ = g.Wait()

	summary := &BatchSummary{
		TotalUsers:  len(userIDs),
		Succeeded:   int(succeeded.Load()),
		Empty:       int(empty.Load()),
		Failed:      int(failed.Load()),
		ProcessedAt: time.Now().UTC(),
	}
	slog.Info("batch matching cycle complete",
		"totalUsers", summary.TotalUsers,
		"succeeded", summary.Succeeded,
		"empty", summary.Empty,
		"failed", summary.Failed,
	)
	return summary, nil
}
