// internal/service/statistics.go
package service

import (
	"context"
	"time"

	"bayou-blog/internal/database"
	"bayou-blog/internal/messages"
	"bayou-blog/internal/models"
	"bayou-blog/internal/utils"
)

// StatisticsService buckets comment counters by UTC calendar date.
type StatisticsService struct {
	store database.Store
	now   func() time.Time
}

func NewStatisticsService(store database.Store) *StatisticsService {
	return &StatisticsService{store: store, now: time.Now}
}

// WithClock replaces the time source. Used by tests to pin the date bucket.
func (s *StatisticsService) WithClock(now func() time.Time) *StatisticsService {
	s.now = now
	return s
}

func (s *StatisticsService) today() string {
	return s.now().UTC().Format(models.DateLayout)
}

// BumpCreated increments today's created-comments counter.
func (s *StatisticsService) BumpCreated(ctx context.Context) error {
	return s.store.IncrementDailyCounter(ctx, s.today(), database.CounterCreated)
}

// BumpBlocked increments today's blocked-comments counter.
func (s *StatisticsService) BumpBlocked(ctx context.Context) error {
	return s.store.IncrementDailyCounter(ctx, s.today(), database.CounterBlocked)
}

// Range returns the daily records inside the inclusive date range,
// ascending. Dates must be YYYY-MM-DD.
func (s *StatisticsService) Range(ctx context.Context, dateFrom, dateTo string) ([]models.DailyStatistic, error) {
	for _, date := range []string{dateFrom, dateTo} {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return nil, utils.NewAppError(utils.ErrInvalidInput, messages.InvalidDateRange, err)
		}
	}
	return s.store.StatisticsRange(ctx, dateFrom, dateTo)
}
