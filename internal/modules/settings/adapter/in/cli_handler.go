package in

import (
	"context"

	settingsdto "pomo/internal/modules/settings/dto"
	settingsin "pomo/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]settingsdto.EntryOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, key string) (string, error) {
	return h.usecase.Value(ctx, key)
}

func (h CLIHandler) Set(ctx context.Context, key, value string) (string, error) {
	if _, err := h.usecase.Set(ctx, key, value); err != nil {
		return "", err
	}
	return h.usecase.Value(ctx, key)
}

func (h CLIHandler) Keys() []string {
	return h.usecase.Keys()
}

func (h CLIHandler) Path() string {
	return h.usecase.Path()
}
