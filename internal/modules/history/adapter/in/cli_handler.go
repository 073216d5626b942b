package in

import (
	"context"
	"fmt"
	"strings"
	"time"

	historydto "pomo/internal/modules/history/dto"
	historyin "pomo/internal/modules/history/port/in"
	apperrors "pomo/internal/platform/errors"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, limit int) ([]historydto.IntervalOutput, error) {
	return h.usecase.List(ctx, limit)
}

// Stats accepts an empty day for today, or YYYY-MM-DD in local time.
func (h CLIHandler) Stats(ctx context.Context, day string) (historydto.SummaryOutput, error) {
	var parsed time.Time
	if strings.TrimSpace(day) != "" {
		var err error
		parsed, err = time.ParseInLocation("2006-01-02", strings.TrimSpace(day), time.Local)
		if err != nil {
			return historydto.SummaryOutput{}, fmt.Errorf("%w: day must be YYYY-MM-DD", apperrors.ErrInvalidInput)
		}
	}
	return h.usecase.Summary(ctx, parsed)
}
