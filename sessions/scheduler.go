// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sessions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/danielhkuo/univote/metrics"
	"github.com/danielhkuo/univote/voteform"
)

// ResultsLoader fetches the current tallies in display order
type ResultsLoader func(ctx context.Context) ([]voteform.Tally, error)

type SchedulerConfig struct {
	SessionTTL      time.Duration
	SweepSchedule   string
	ResultsSchedule string
}

// Scheduler runs session expiry and results refresh on cron schedules
type Scheduler struct {
	cron    *cron.Cron
	store   *Store
	ttl     time.Duration
	load    ResultsLoader
	metrics *metrics.Metrics
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewScheduler registers both jobs. A nil loader disables the results
// refresh.
func NewScheduler(store *Store, cfg SchedulerConfig, load ResultsLoader, m *metrics.Metrics) (*Scheduler, error) {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		cron:    cron.New(),
		store:   store,
		ttl:     cfg.SessionTTL,
		load:    load,
		metrics: m,
		ctx:     ctx,
		cancel:  cancel,
	}

	if _, err := s.cron.AddFunc(cfg.SweepSchedule, s.SweepExpired); err != nil {
		cancel()
		return nil, fmt.Errorf("scheduling session sweep: %w", err)
	}

	if load != nil {
		_, err := s.cron.AddFunc(cfg.ResultsSchedule, func() {
			if err := s.RefreshResults(s.ctx); err != nil {
				slog.Error("results refresh failed", "error", err)
			}
		})
		if err != nil {
			cancel()
			return nil, fmt.Errorf("scheduling results refresh: %w", err)
		}
	}

	return s, nil
}

func (s *Scheduler) Start() {
	slog.Info("Starting scheduler", "jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish
func (s *Scheduler) Stop() {
	slog.Info("Stopping scheduler")
	s.cancel()
	<-s.cron.Stop().Done()
}

// SweepExpired removes idle form sessions
func (s *Scheduler) SweepExpired() {
	if removed := s.store.Sweep(s.ttl); removed > 0 {
		slog.Info("expired form sessions", "count", removed, "remaining", s.store.Len())
	}
}

// RefreshResults reloads tallies and pushes them into every open form
func (s *Scheduler) RefreshResults(ctx context.Context) error {
	if s.load == nil {
		return nil
	}
	start := time.Now()
	defer s.metrics.ObserveResultsRefresh(start)

	tallies, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("loading tallies: %w", err)
	}

	if missing := s.store.BroadcastResults(tallies); len(missing) > 0 {
		slog.Warn("missing tally entries", "solutions", missing)
		s.metrics.AddMissingTallyEntries(len(missing))
	}
	slog.Debug("results refreshed", "solutions", len(tallies), "sessions", s.store.Len())
	return nil
}
