package out

import (
	"context"

	"pomo/internal/modules/settings/domain"
)

type Store interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
	Path() string
}

// Watcher calls onChange after the backing file was edited externally. It
// returns once watching is set up and stops when ctx is done.
type Watcher interface {
	Watch(ctx context.Context, onChange func()) error
}
