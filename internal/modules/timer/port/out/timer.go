package out

import (
	"context"

	"pomo/internal/modules/timer/domain"
	"pomo/internal/modules/timer/dto"
)

// AlarmNotifier plays the end-of-interval sound for the mode that just ended.
type AlarmNotifier interface {
	IntervalCompleted(ctx context.Context, ended domain.Mode) error
}

// IntervalRecorder persists finished intervals.
type IntervalRecorder interface {
	Record(ctx context.Context, record dto.IntervalRecord) error
}
