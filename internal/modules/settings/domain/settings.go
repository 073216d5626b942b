package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	apperrors "pomo/internal/platform/errors"
)

const (
	MinMinutes    = 1
	MaxMinutes    = 999
	DefaultVolume = 50
	DefaultAlarm  = "alarm/bell.mp3"
	DefaultTheme  = "light"
)

type MediaKind string

const (
	MediaLocal MediaKind = "local"
	MediaVideo MediaKind = "video"
)

func ParseMediaKind(raw string) (MediaKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "local", "default", "file":
		return MediaLocal, nil
	case "video", "youtube":
		return MediaVideo, nil
	}
	return "", fmt.Errorf("%w: unknown media kind %q", apperrors.ErrInvalidInput, raw)
}

// Music is the persisted media configuration of one media class. An empty
// local reference means the bundled track for that class.
type Music struct {
	Kind      MediaKind
	Reference string
	Volume    int
}

type Settings struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
	FocusMusic        Music
	BreakMusic        Music
	WorkAlarm         string
	ShortBreakAlarm   string
	LongBreakAlarm    string
	Theme             string
	AutoStartBreaks   bool
	AutoStartWork     bool
}

// ThemeNames lists the palettes the UI knows how to draw.
var ThemeNames = []string{"light", "dark", "dracula", "nord", "coffee", "forest", "synthwave", "retro"}

func Defaults() Settings {
	return Settings{
		WorkMinutes:       25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		LongBreakInterval: 4,
		FocusMusic:        Music{Kind: MediaLocal, Volume: DefaultVolume},
		BreakMusic:        Music{Kind: MediaLocal, Volume: DefaultVolume},
		WorkAlarm:         DefaultAlarm,
		ShortBreakAlarm:   DefaultAlarm,
		LongBreakAlarm:    DefaultAlarm,
		Theme:             DefaultTheme,
	}
}

// Normalize clamps every field into its valid range.
func (s Settings) Normalize() Settings {
	s.WorkMinutes = clamp(s.WorkMinutes, MinMinutes, MaxMinutes)
	s.ShortBreakMinutes = clamp(s.ShortBreakMinutes, MinMinutes, MaxMinutes)
	s.LongBreakMinutes = clamp(s.LongBreakMinutes, MinMinutes, MaxMinutes)
	s.LongBreakInterval = clamp(s.LongBreakInterval, MinMinutes, MaxMinutes)
	s.FocusMusic = s.FocusMusic.normalize()
	s.BreakMusic = s.BreakMusic.normalize()
	if strings.TrimSpace(s.WorkAlarm) == "" {
		s.WorkAlarm = DefaultAlarm
	}
	if strings.TrimSpace(s.ShortBreakAlarm) == "" {
		s.ShortBreakAlarm = DefaultAlarm
	}
	if strings.TrimSpace(s.LongBreakAlarm) == "" {
		s.LongBreakAlarm = DefaultAlarm
	}
	if !IsTheme(s.Theme) {
		s.Theme = DefaultTheme
	}
	return s
}

func (m Music) normalize() Music {
	if m.Kind != MediaVideo {
		m.Kind = MediaLocal
	}
	m.Reference = strings.TrimSpace(m.Reference)
	m.Volume = ClampVolume(m.Volume)
	return m
}

func IsTheme(name string) bool {
	for _, t := range ThemeNames {
		if t == name {
			return true
		}
	}
	return false
}

func ClampVolume(v int) int {
	return clamp(v, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ─── key/value access ────────────────────────────────────────────────────────

const (
	KeyWorkMinutes       = "workMinutes"
	KeyShortBreakMinutes = "shortBreakMinutes"
	KeyLongBreakMinutes  = "longBreakMinutes"
	KeyLongBreakInterval = "longBreakInterval"
	KeyFocusMusic        = "focusMusic"
	KeyBreakMusic        = "breakMusic"
	KeyWorkAlarm         = "workAlarm"
	KeyShortBreakAlarm   = "shortBreakAlarm"
	KeyLongBreakAlarm    = "longBreakAlarm"
	KeyTheme             = "theme"
	KeyAutoStartBreaks   = "autoStartBreaks"
	KeyAutoStartWork     = "autoStartWork"
)

// Keys returns every settable key, including the music sub-keys.
func Keys() []string {
	keys := []string{
		KeyWorkMinutes, KeyShortBreakMinutes, KeyLongBreakMinutes, KeyLongBreakInterval,
		KeyWorkAlarm, KeyShortBreakAlarm, KeyLongBreakAlarm,
		KeyTheme, KeyAutoStartBreaks, KeyAutoStartWork,
	}
	for _, music := range []string{KeyFocusMusic, KeyBreakMusic} {
		keys = append(keys, music+".kind", music+".reference", music+".volume")
	}
	sort.Strings(keys)
	return keys
}

func (s Settings) Value(key string) (string, error) {
	switch key {
	case KeyWorkMinutes:
		return strconv.Itoa(s.WorkMinutes), nil
	case KeyShortBreakMinutes:
		return strconv.Itoa(s.ShortBreakMinutes), nil
	case KeyLongBreakMinutes:
		return strconv.Itoa(s.LongBreakMinutes), nil
	case KeyLongBreakInterval:
		return strconv.Itoa(s.LongBreakInterval), nil
	case KeyWorkAlarm:
		return s.WorkAlarm, nil
	case KeyShortBreakAlarm:
		return s.ShortBreakAlarm, nil
	case KeyLongBreakAlarm:
		return s.LongBreakAlarm, nil
	case KeyTheme:
		return s.Theme, nil
	case KeyAutoStartBreaks:
		return strconv.FormatBool(s.AutoStartBreaks), nil
	case KeyAutoStartWork:
		return strconv.FormatBool(s.AutoStartWork), nil
	case KeyFocusMusic:
		return s.FocusMusic.String(), nil
	case KeyBreakMusic:
		return s.BreakMusic.String(), nil
	}
	music, field, ok := s.musicField(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnknownKey, key)
	}
	switch field {
	case "kind":
		return string(music.Kind), nil
	case "reference":
		return music.Reference, nil
	default:
		return strconv.Itoa(music.Volume), nil
	}
}

// Set parses value for key and stores the normalized result.
func (s *Settings) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case KeyWorkMinutes, KeyShortBreakMinutes, KeyLongBreakMinutes, KeyLongBreakInterval:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", apperrors.ErrInvalidInput, key)
		}
		n = clamp(n, MinMinutes, MaxMinutes)
		switch key {
		case KeyWorkMinutes:
			s.WorkMinutes = n
		case KeyShortBreakMinutes:
			s.ShortBreakMinutes = n
		case KeyLongBreakMinutes:
			s.LongBreakMinutes = n
		default:
			s.LongBreakInterval = n
		}
		return nil
	case KeyWorkAlarm, KeyShortBreakAlarm, KeyLongBreakAlarm:
		if value == "" {
			value = DefaultAlarm
		}
		switch key {
		case KeyWorkAlarm:
			s.WorkAlarm = value
		case KeyShortBreakAlarm:
			s.ShortBreakAlarm = value
		default:
			s.LongBreakAlarm = value
		}
		return nil
	case KeyTheme:
		if !IsTheme(value) {
			return fmt.Errorf("%w: unknown theme %q", apperrors.ErrInvalidInput, value)
		}
		s.Theme = value
		return nil
	case KeyAutoStartBreaks, KeyAutoStartWork:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", apperrors.ErrInvalidInput, key)
		}
		if key == KeyAutoStartBreaks {
			s.AutoStartBreaks = b
		} else {
			s.AutoStartWork = b
		}
		return nil
	}

	music, field, ok := s.musicField(key)
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownKey, key)
	}
	switch field {
	case "kind":
		kind, err := ParseMediaKind(value)
		if err != nil {
			return err
		}
		music.Kind = kind
	case "reference":
		music.Reference = value
	default:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", apperrors.ErrInvalidInput, key)
		}
		music.Volume = ClampVolume(n)
	}
	return nil
}

func (s *Settings) musicField(key string) (*Music, string, bool) {
	prefix, field, found := strings.Cut(key, ".")
	if !found {
		return nil, "", false
	}
	if field != "kind" && field != "reference" && field != "volume" {
		return nil, "", false
	}
	switch prefix {
	case KeyFocusMusic:
		return &s.FocusMusic, field, true
	case KeyBreakMusic:
		return &s.BreakMusic, field, true
	}
	return nil, "", false
}

func (m Music) String() string {
	ref := m.Reference
	if ref == "" {
		ref = "(bundled)"
	}
	return fmt.Sprintf("kind=%s reference=%s volume=%d", m.Kind, ref, m.Volume)
}
