package out

import (
	"context"
	"time"

	"pomo/internal/modules/history/domain"
)

type IntervalStore interface {
	Append(ctx context.Context, interval domain.Interval) error
	// Recent returns at most limit intervals, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Interval, error)
	// Between returns the intervals with from <= EndedAt < to.
	Between(ctx context.Context, from, to time.Time) ([]domain.Interval, error)
	Close() error
}
