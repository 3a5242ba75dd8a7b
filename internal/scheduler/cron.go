package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hvaillant/cinewatch/internal/services/fileindex"
	"github.com/hvaillant/cinewatch/internal/services/tmdb"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler keeps the catalog and file-index caches warm so interactive
// requests rarely pay the upstream round trip.
type Scheduler struct {
	cron    *cron.Cron
	files   *fileindex.Client
	catalog *tmdb.Client
	logger  *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(files *fileindex.Client, catalog *tmdb.Client, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		files:   files,
		catalog: catalog,
		logger:  logger,
	}
}

// Start registers the cache-warming jobs and starts the cron loop. The
// file-index list is refreshed every 5 minutes; catalog home-page lists
// hourly, matching their upstream cache lifetime.
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	_, err := s.cron.AddFunc("*/5 * * * *", func() {
		s.refreshFileIndex()
	})
	if err != nil {
		return fmt.Errorf("failed to add file-index refresh job: %w", err)
	}

	_, err = s.cron.AddFunc("@hourly", func() {
		s.warmCatalog()
	})
	if err != nil {
		return fmt.Errorf("failed to add catalog warm job: %w", err)
	}

	s.cron.Start()

	// Prime the caches once at startup so the first requests are warm too.
	go func() {
		s.refreshFileIndex()
		s.warmCatalog()
	}()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshFileIndex() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	files, err := s.files.Refresh(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("File index refresh failed")
		return
	}
	s.logger.WithField("count", len(files)).Debug("File index refreshed")
}

func (s *Scheduler) warmCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.catalog.Trending(ctx, "all", 1); err != nil {
		s.logger.WithError(err).Warn("Trending warm-up failed")
	}
	if _, err := s.catalog.TopRatedCombined(ctx, 10); err != nil {
		s.logger.WithError(err).Warn("Top rated warm-up failed")
	}
}
