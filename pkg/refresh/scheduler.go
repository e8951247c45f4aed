package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/ankigrid/ankigrid/internal/config"
	"github.com/ankigrid/ankigrid/internal/event_bus"
	"github.com/ankigrid/ankigrid/pkg/review"
	"github.com/ankigrid/ankigrid/pkg/widget"
	log "github.com/sirupsen/logrus"
)

// Scheduler periodically records today's completion verdict for every
// configured widget scope, so history rows exist for days on which no image
// was ever requested. It listens for status recorded events to avoid
// re-aggregating scopes an image request already refreshed within the
// interval.
type Scheduler struct {
	widgetService widget.Service
	reviewService review.Service
	defaults      config.Widget
	interval      time.Duration

	mu            sync.Mutex
	lastRefreshed map[int64]time.Time

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewScheduler(widgetService widget.Service, reviewService review.Service, eventBus *event_bus.EventBus, cfg config.Application) *Scheduler {
	scheduler := &Scheduler{
		widgetService: widgetService,
		reviewService: reviewService,
		defaults:      cfg.Widget,
		interval:      cfg.Refresh.Interval,
		lastRefreshed: make(map[int64]time.Time),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	event_bus.SubscribeTyped[event_bus.StatusRecorded](
		eventBus,
		review.EventStatusRecorded,
		func(e event_bus.EventT[event_bus.StatusRecorded]) error {
			scheduler.markRefreshed(e.Data.DeckID)
			return nil
		},
	)
	return scheduler
}

// Start launches the periodic refresh loop. It returns immediately.
func (s *Scheduler) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		log.Infof("Refresh scheduler started with interval %s", s.interval)
		for {
			select {
			case <-ticker.C:
				if err := s.refreshScopes(context.Background(), false); err != nil {
					log.Warnf("Scheduled refresh failed: %v", err)
				}
			case <-s.stop:
				log.Info("Refresh scheduler stopped")
				return
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
}

// RefreshAll runs one aggregation per distinct (scope, day-start hour) pair
// across all widget configurations, plus the all-decks default scope, even
// for scopes refreshed recently. A failing scope does not stop the remaining
// ones.
func (s *Scheduler) RefreshAll(ctx context.Context) error {
	return s.refreshScopes(ctx, true)
}

func (s *Scheduler) refreshScopes(ctx context.Context, force bool) error {
	type scopeKey struct {
		storageID    int64
		dayStartHour int
	}
	seen := make(map[scopeKey]bool)

	configs, err := s.widgetService.GetAll(ctx)
	if err != nil {
		log.Errorf("Failed to list widget configurations: %v", err)
		configs = nil
	}

	refresh := func(scope review.DeckScope, dayStartHour int) {
		key := scopeKey{scope.StorageID(), dayStartHour}
		if seen[key] {
			return
		}
		seen[key] = true

		if !force && !s.isStale(scope.StorageID()) {
			log.Debugf("Skipping refresh for deck=%s, recently aggregated", scope)
			return
		}

		// daysToShow 1 is enough: the point is persisting today's verdict.
		if _, err := s.reviewService.GetReviewData(ctx, 1, scope, dayStartHour); err != nil {
			log.Warnf("Refresh failed for deck=%s: %v", scope, err)
		}
	}

	refresh(review.AllDecks(), s.defaults.DayStartHour)
	for _, cfg := range configs {
		refresh(cfg.Scope(), cfg.DayStartHour)
	}

	log.Debugf("Refreshed %d scopes", len(seen))
	return nil
}

func (s *Scheduler) markRefreshed(storageID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRefreshed[storageID] = time.Now()
}

func (s *Scheduler) isStale(storageID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.lastRefreshed[storageID]
	return !ok || time.Since(last) >= s.interval
}
