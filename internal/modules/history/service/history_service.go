package service

import (
	"context"
	"fmt"
	"time"

	"pomo/internal/modules/history/domain"
	historyout "pomo/internal/modules/history/port/out"
	"pomo/internal/platform/clock"
	apperrors "pomo/internal/platform/errors"
	"pomo/internal/platform/id"
)

const DefaultListLimit = 20

type HistoryService struct {
	clock clock.Clock
	idGen id.Generator
	store historyout.IntervalStore
}

func NewHistoryService(clock clock.Clock, idGen id.Generator, store historyout.IntervalStore) *HistoryService {
	return &HistoryService{clock: clock, idGen: idGen, store: store}
}

func (s *HistoryService) Record(ctx context.Context, interval domain.Interval) (domain.Interval, error) {
	interval.ID = s.idGen.New()
	if interval.EndedAt.IsZero() {
		interval.EndedAt = s.clock.Now()
	}
	interval.EndedAt = interval.EndedAt.UTC()
	if err := interval.Validate(); err != nil {
		return domain.Interval{}, err
	}
	if err := s.store.Append(ctx, interval); err != nil {
		return domain.Interval{}, err
	}
	return interval, nil
}

func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.Interval, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", apperrors.ErrInvalidInput)
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	return s.store.Recent(ctx, limit)
}

// Summary reports the given calendar day; a zero day means today.
func (s *HistoryService) Summary(ctx context.Context, day time.Time) (domain.Summary, error) {
	if day.IsZero() {
		day = s.clock.Now().Local()
	}
	start := domain.StartOfDay(day)
	intervals, err := s.store.Between(ctx, start, start.AddDate(0, 0, 1))
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(day, intervals), nil
}
