package service

import (
	"context"
	"log"
	"sync"
	"time"

	"pantrypal-api/internal/repository"
)

// PurgeConfig holds configuration for the expired-item purge scheduler.
type PurgeConfig struct {
	// RetainExpired is how long an item is kept after its expiration day
	// before it becomes eligible for purging. Default: 30 days.
	RetainExpired time.Duration

	// PurgeInterval is how often the purge runs. Default: 24 hours.
	PurgeInterval time.Duration
}

// PurgeScheduler periodically removes pantry items that expired long ago.
// Items inside the retention window stay visible so users can still see
// what went bad.
type PurgeScheduler struct {
	repo      repository.PantryRepository
	config    PurgeConfig
	ticker    *time.Ticker
	stopCh    chan struct{}
	stopOnce  sync.Once
	isRunning bool
	mu        sync.Mutex
}

// NewPurgeScheduler creates a new purge scheduler.
func NewPurgeScheduler(repo repository.PantryRepository, config PurgeConfig) *PurgeScheduler {
	if config.RetainExpired == 0 {
		config.RetainExpired = 30 * 24 * time.Hour
	}
	if config.PurgeInterval == 0 {
		config.PurgeInterval = 24 * time.Hour
	}

	return &PurgeScheduler{
		repo:   repo,
		config: config,
		stopCh: make(chan struct{}),
	}
}

// Start begins the purge scheduler.
func (s *PurgeScheduler) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.ticker = time.NewTicker(s.config.PurgeInterval)
	s.mu.Unlock()

	log.Printf("[PurgeScheduler] Started - Interval: %v, Retention: %v",
		s.config.PurgeInterval, s.config.RetainExpired)

	// Run an initial purge shortly after startup
	go func() {
		time.Sleep(1 * time.Minute)
		s.runPurge()
	}()

	go s.run()
}

// run is the main purge loop.
func (s *PurgeScheduler) run() {
	for {
		select {
		case <-s.ticker.C:
			s.runPurge()
		case <-s.stopCh:
			log.Printf("[PurgeScheduler] Stopped")
			return
		}
	}
}

// runPurge performs the actual purge.
func (s *PurgeScheduler) runPurge() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-s.config.RetainExpired)
	log.Printf("[PurgeScheduler] Purging items expired before %s", cutoff.Format("2006-01-02"))

	purged, err := s.repo.PurgeExpired(ctx, cutoff)
	if err != nil {
		log.Printf("[PurgeScheduler] Error during purge: %v", err)
		return
	}

	if purged > 0 {
		log.Printf("[PurgeScheduler] Purged %d long-expired items", purged)
	} else {
		log.Printf("[PurgeScheduler] Nothing to purge")
	}
}

// Stop stops the purge scheduler.
func (s *PurgeScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopCh)
		s.isRunning = false
	})
}

// RunNow triggers an immediate purge and reports how many items were removed.
func (s *PurgeScheduler) RunNow() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	return s.repo.PurgeExpired(ctx, time.Now().Add(-s.config.RetainExpired))
}
