package in

import (
	"context"

	timerdto "pomo/internal/modules/timer/dto"
	timerin "pomo/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

type RunInput struct {
	Mode string
	// Cycles stops the run after that many completed work intervals; zero
	// runs until ctx is cancelled.
	Cycles int
}

// Run drives the timer without a UI. Every snapshot is handed to onState; an
// interval that ends without auto-start is started again so the run keeps
// going through breaks.
func (h CLIHandler) Run(ctx context.Context, input RunInput, onState func(timerdto.StateOutput)) (timerdto.StateOutput, error) {
	if input.Mode != "" {
		if _, err := h.usecase.SetMode(ctx, input.Mode); err != nil {
			return timerdto.StateOutput{}, err
		}
	}
	initial, err := h.usecase.State(ctx)
	if err != nil {
		return timerdto.StateOutput{}, err
	}
	target := initial.CompletedWorkCycles + input.Cycles

	updates, cancel := h.usecase.Subscribe(ctx)
	defer cancel()
	last := initial
	for {
		select {
		case <-ctx.Done():
			return h.usecase.Pause(context.Background())
		case state, ok := <-updates:
			if !ok {
				return last, nil
			}
			last = state
			if onState != nil {
				onState(state)
			}
			if input.Cycles > 0 && state.CompletedWorkCycles >= target {
				return h.usecase.Pause(ctx)
			}
			if !state.Running {
				if _, err := h.usecase.Start(ctx); err != nil {
					return last, err
				}
			}
		}
	}
}

func (h CLIHandler) State(ctx context.Context) (timerdto.StateOutput, error) {
	return h.usecase.State(ctx)
}
