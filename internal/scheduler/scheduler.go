// Package scheduler wires up the cron job that periodically re-runs batch
// matching for all active users, so persisted matches track catalog changes
// even for users who never hit the compute endpoint.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"jobmate/matching-service/internal/matching"
)

// Scheduler wraps robfig/cron and manages the batch matching loop.
type Scheduler struct {
	cron *cron.Cron
	svc  *matching.Service
	spec string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(svc *matching.Service, intervalHours int) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLogger(cron.DefaultLogger)),
		svc:  svc,
		spec: fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one batch
// immediately so persisted matches exist without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runBatch(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.runBatch(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// runBatch executes one full matching cycle.
func (s *Scheduler) runBatch(ctx context.Context) {
	log.Println("[scheduler] Batch matching cycle started")

	summary, err := s.svc.MatchAllUsers(ctx)
	if err != nil {
		log.Printf("[scheduler] MatchAllUsers error: %v", err)
		return
	}

	log.Printf("[scheduler] Batch cycle done — users=%d succeeded=%d empty=%d failed=%d",
		summary.TotalUsers, summary.Succeeded, summary.Empty, summary.Failed)
}
