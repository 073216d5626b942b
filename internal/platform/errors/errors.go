package apperrors

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrUnknownKey            = errors.New("unknown settings key")
	ErrInvalidMediaReference = errors.New("invalid media reference")
	ErrPlaybackUnavailable   = errors.New("playback unavailable")
	ErrPlaybackRejected      = errors.New("playback rejected")
)
