package out

import (
	"context"

	"pomo/internal/modules/media/domain"
)

// Player opens playback handles. A freshly acquired handle is paused.
type Player interface {
	Acquire(ctx context.Context, source domain.Source) (Handle, error)
}

type Handle interface {
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	SetVolume(ctx context.Context, percent int) error
	Close() error
}

// AlarmPlayer plays a sound file once without blocking until it ends.
type AlarmPlayer interface {
	PlayOnce(ctx context.Context, location string) error
}
