package out

import (
	"context"

	"github.com/rs/zerolog"

	"pomo/internal/modules/media/domain"
	mediaout "pomo/internal/modules/media/port/out"
	xlog "pomo/internal/platform/log"
)

// SilentPlayer accepts every command and only logs it. It backs --no-audio.
type SilentPlayer struct {
	logger zerolog.Logger
}

func NewSilentPlayer() *SilentPlayer {
	return &SilentPlayer{logger: xlog.WithComponent("media.silent")}
}

var (
	_ mediaout.Player      = (*SilentPlayer)(nil)
	_ mediaout.AlarmPlayer = (*SilentPlayer)(nil)
)

func (p *SilentPlayer) Acquire(_ context.Context, source domain.Source) (mediaout.Handle, error) {
	p.logger.Debug().Str("event", "silent.acquire").Str("location", source.Location).Msg("acquire")
	return &silentHandle{logger: p.logger.With().Str("location", source.Location).Logger()}, nil
}

func (p *SilentPlayer) PlayOnce(_ context.Context, location string) error {
	p.logger.Debug().Str("event", "silent.alarm").Str("location", location).Msg("alarm")
	return nil
}

type silentHandle struct {
	logger zerolog.Logger
}

func (h *silentHandle) Play(context.Context) error {
	h.logger.Debug().Str("event", "silent.play").Msg("play")
	return nil
}

func (h *silentHandle) Pause(context.Context) error {
	h.logger.Debug().Str("event", "silent.pause").Msg("pause")
	return nil
}

func (h *silentHandle) SetVolume(_ context.Context, percent int) error {
	h.logger.Debug().Str("event", "silent.volume").Int("volume", percent).Msg("volume")
	return nil
}

func (h *silentHandle) Close() error {
	h.logger.Debug().Str("event", "silent.close").Msg("close")
	return nil
}
