// jobmate-matching-service
//
// Skill matching and scoring engine. For each user it scores every job in
// the catalog against the user's normalized skill set, persists the top
// matches (full replace per run) and caches the externally-facing slice.
//
// Exposes a REST API used by the Gateway:
//   - GET  /matches/compute          — cached-or-fresh ranked matches
//   - GET  /matches                  — persisted matches with min_score filter
//   - GET  /matches/stats            — aggregate statistics
//   - POST /matches/invalidate       — user skill set changed
//   - POST /internal/invalidate-all — job catalog changed (discovery hook)
//
// A cron loop re-runs batch matching for all active users every
// MATCH_INTERVAL_HOURS hours.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobmate/matching-service/internal/cache"
	"jobmate/matching-service/internal/config"
	"jobmate/matching-service/internal/db"
	"jobmate/matching-service/internal/httpapi"
	"jobmate/matching-service/internal/matching"
	"jobmate/matching-service/internal/scheduler"
	"jobmate/matching-service/internal/store"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[matching-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[matching-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[matching-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[matching-service] PostgreSQL connected ✓")

	// ── Redis (best-effort: the service runs degraded without it) ───────────
	var matchCache cache.Cache = cache.Noop{}
	log.Println("[matching-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Printf("[matching-service] Redis unavailable, caching disabled: %v", err)
	} else {
		defer rdb.Close()
		matchCache = cache.NewRedis(rdb)
		log.Println("[matching-service] Redis connected ✓")
	}

	// ── Services ─────────────────────────────────────────────────────────────
	matchStore := store.New(pool)
	svc := matching.NewService(
		matchStore,
		matchCache,
		time.Duration(cfg.CacheTTLHours)*time.Hour,
		cfg.BatchConcurrency,
	)

	// ── Scheduler ────────────────────────────────────────────────────────────
	sched := scheduler.New(svc, cfg.MatchIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[matching-service] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	h := httpapi.NewHandler(svc)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // compute runs can score the full catalog
	}

	go func() {
		log.Printf("[matching-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[matching-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[matching-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[matching-service] Shutdown error: %v", err)
	}
	log.Println("[matching-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "matching-service",
		"version": version,
	})
}
