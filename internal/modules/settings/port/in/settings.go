package in

import (
	"context"

	"pomo/internal/modules/settings/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.SettingsOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.SettingsOutput, error)
	Set(ctx context.Context, key, value string) (dto.SettingsOutput, error)
	Value(ctx context.Context, key string) (string, error)
	List(ctx context.Context) ([]dto.EntryOutput, error)
	Keys() []string
	Reload(ctx context.Context) error
	Watch(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan dto.SettingsOutput, func())
	Path() string
}
