package review

import (
	"context"
	"fmt"

	"github.com/ankigrid/ankigrid/internal/event_bus"
	"github.com/ankigrid/ankigrid/internal/utils"
	"github.com/ankigrid/ankigrid/pkg/anki"
	log "github.com/sirupsen/logrus"
)

// EventStatusRecorded is published after each aggregation run.
const EventStatusRecorded event_bus.EventType = "review.status.recorded"

type Service interface {
	// GetReviewData returns exactly daysToShow day statuses ordered from the
	// current logical day backwards, merging today's live verdict with
	// persisted history.
	GetReviewData(ctx context.Context, daysToShow int, scope DeckScope, dayStartHour int) ([]DayStatus, error)
	ClearHistory(ctx context.Context) error
}

type ServiceImpl struct {
	client   anki.Client
	repo     Repository
	clock    utils.Clock
	eventBus *event_bus.EventBus
}

func NewService(client anki.Client, repo Repository, clock utils.Clock, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		client:   client,
		repo:     repo,
		clock:    clock,
		eventBus: eventBus,
	}
}

func (s *ServiceImpl) GetReviewData(ctx context.Context, daysToShow int, scope DeckScope, dayStartHour int) ([]DayStatus, error) {
	if daysToShow < 1 {
		return nil, fmt.Errorf("daysToShow must be at least 1, got %d", daysToShow)
	}
	if dayStartHour < 0 || dayStartHour > 23 {
		return nil, fmt.Errorf("dayStartHour must be between 0 and 23, got %d", dayStartHour)
	}

	now := s.clock.Now()
	today := LogicalToday(now, dayStartHour)
	log.Debugf("Getting review data for %d days (deck=%s), today is %s", daysToShow, scope, today.Format(dateFormat))

	// Live check for today. An unreachable source degrades to incomplete,
	// it never fails the aggregation.
	evaluation := Evaluation{}
	decks, err := s.client.GetDecks(ctx)
	if err != nil {
		log.Warnf("Unable to fetch live deck counts, treating today as incomplete: %v", err)
	} else {
		evaluation = EvaluateCompletion(decks, scope)
	}

	// The upsert happens before the range read so the fresh today row is
	// visible in it. A write failure is non-fatal: the in-memory verdict
	// still feeds the returned sequence.
	err = s.repo.Upsert(ctx, DailyProgress{Date: today, Scope: scope, Completed: evaluation.Complete})
	if err != nil {
		log.Errorf("Failed to save progress for %s (deck=%s): %v", today.Format(dateFormat), scope, err)
	}

	startDate := today.AddDate(0, 0, -(daysToShow - 1))
	history, err := s.repo.ReadRange(ctx, startDate, today, scope)
	if err != nil {
		log.Errorf("Failed to load history, treating window as empty: %v", err)
		history = nil
	}
	historyByDate := make(map[string]DailyProgress, len(history))
	for _, record := range history {
		historyByDate[record.Date.Format(dateFormat)] = record
	}

	days := make([]DayStatus, 0, daysToShow)
	for i := 0; i < daysToShow; i++ {
		date := today.AddDate(0, 0, -i)

		// Today uses the live verdict, not the persisted read, so a
		// concurrent writer cannot feed a stale value back. A day with no
		// record counts as incomplete.
		completed := false
		if i == 0 {
			completed = evaluation.Complete
		} else if record, ok := historyByDate[date.Format(dateFormat)]; ok {
			completed = record.Completed
		}

		reviewCount := 0
		if completed {
			reviewCount = 1
		}
		days = append(days, DayStatus{Date: date, Completed: completed, ReviewCount: reviewCount})
	}

	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, EventStatusRecorded, event_bus.StatusRecorded{
		Date:         today,
		DeckID:       scope.StorageID(),
		Completed:    evaluation.Complete,
		TotalPending: evaluation.TotalPending,
	})); err != nil {
		log.Warnf("Failed to publish status recorded event: %v", err)
	}

	return days, nil
}

func (s *ServiceImpl) ClearHistory(ctx context.Context) error {
	log.Info("Clearing all daily progress history")
	return s.repo.ClearAll(ctx)
}
