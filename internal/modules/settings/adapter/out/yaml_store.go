package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"pomo/internal/modules/settings/domain"
	settingsout "pomo/internal/modules/settings/port/out"
	"pomo/internal/platform/fsutil"
	xlog "pomo/internal/platform/log"
)

// yamlMusic and yamlSettings use pointers so a missing key falls back to its
// default instead of the zero value.
type yamlMusic struct {
	Kind      *string `yaml:"kind,omitempty"`
	Reference *string `yaml:"reference,omitempty"`
	Volume    *int    `yaml:"volume,omitempty"`
}

type yamlSettings struct {
	WorkMinutes       *int       `yaml:"workMinutes,omitempty"`
	ShortBreakMinutes *int       `yaml:"shortBreakMinutes,omitempty"`
	LongBreakMinutes  *int       `yaml:"longBreakMinutes,omitempty"`
	LongBreakInterval *int       `yaml:"longBreakInterval,omitempty"`
	FocusMusic        *yamlMusic `yaml:"focusMusic,omitempty"`
	BreakMusic        *yamlMusic `yaml:"breakMusic,omitempty"`
	WorkAlarm         *string    `yaml:"workAlarm,omitempty"`
	ShortBreakAlarm   *string    `yaml:"shortBreakAlarm,omitempty"`
	LongBreakAlarm    *string    `yaml:"longBreakAlarm,omitempty"`
	Theme             *string    `yaml:"theme,omitempty"`
	AutoStartBreaks   *bool      `yaml:"autoStartBreaks,omitempty"`
	AutoStartWork     *bool      `yaml:"autoStartWork,omitempty"`
}

type YAMLStore struct {
	path   string
	logger zerolog.Logger
}

func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path, logger: xlog.WithComponent("settings.store")}
}

var _ settingsout.Store = (*YAMLStore)(nil)

func (s *YAMLStore) Path() string {
	return s.path
}

// Load returns defaults when the file does not exist yet. Each key is decoded
// on its own; an entry of the wrong type keeps its default. Only a document
// that is not valid YAML fails the load.
func (s *YAMLStore) Load(_ context.Context) (domain.Settings, error) {
	settings := domain.Defaults()
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return domain.Settings{}, fmt.Errorf("read settings: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return domain.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	raw := s.decode(&doc)
	raw.apply(&settings)
	return settings.Normalize(), nil
}

func (s *YAMLStore) Save(_ context.Context, settings domain.Settings) error {
	payload, err := yaml.Marshal(fromDomain(settings.Normalize()))
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (s *YAMLStore) decode(doc *yaml.Node) yamlSettings {
	var raw yamlSettings
	root := doc
	if root.Kind == 0 {
		return raw
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return raw
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		s.invalid("", root, errors.New("settings file is not a mapping"))
		return raw
	}
	fields := map[string]func(*yaml.Node) error{
		domain.KeyWorkMinutes:       func(n *yaml.Node) error { return decodeField(n, &raw.WorkMinutes) },
		domain.KeyShortBreakMinutes: func(n *yaml.Node) error { return decodeField(n, &raw.ShortBreakMinutes) },
		domain.KeyLongBreakMinutes:  func(n *yaml.Node) error { return decodeField(n, &raw.LongBreakMinutes) },
		domain.KeyLongBreakInterval: func(n *yaml.Node) error { return decodeField(n, &raw.LongBreakInterval) },
		domain.KeyWorkAlarm:         func(n *yaml.Node) error { return decodeField(n, &raw.WorkAlarm) },
		domain.KeyShortBreakAlarm:   func(n *yaml.Node) error { return decodeField(n, &raw.ShortBreakAlarm) },
		domain.KeyLongBreakAlarm:    func(n *yaml.Node) error { return decodeField(n, &raw.LongBreakAlarm) },
		domain.KeyTheme:             func(n *yaml.Node) error { return decodeField(n, &raw.Theme) },
		domain.KeyAutoStartBreaks:   func(n *yaml.Node) error { return decodeField(n, &raw.AutoStartBreaks) },
		domain.KeyAutoStartWork:     func(n *yaml.Node) error { return decodeField(n, &raw.AutoStartWork) },
		domain.KeyFocusMusic:        func(n *yaml.Node) error { raw.FocusMusic = s.decodeMusic(domain.KeyFocusMusic, n); return nil },
		domain.KeyBreakMusic:        func(n *yaml.Node) error { raw.BreakMusic = s.decodeMusic(domain.KeyBreakMusic, n); return nil },
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		decode, ok := fields[key]
		if !ok {
			s.logger.Debug().Str("event", "settings.unknown_entry").Str("key", key).Msg("ignoring unknown settings key")
			continue
		}
		if isNull(value) {
			continue
		}
		if err := decode(value); err != nil {
			s.invalid(key, value, err)
		}
	}
	return raw
}

func (s *YAMLStore) decodeMusic(key string, node *yaml.Node) *yamlMusic {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		s.invalid(key, node, errors.New("expected a mapping"))
		return nil
	}
	music := &yamlMusic{}
	fields := map[string]func(*yaml.Node) error{
		"kind":      func(n *yaml.Node) error { return decodeField(n, &music.Kind) },
		"reference": func(n *yaml.Node) error { return decodeField(n, &music.Reference) },
		"volume":    func(n *yaml.Node) error { return decodeField(n, &music.Volume) },
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		field, value := node.Content[i].Value, node.Content[i+1]
		decode, ok := fields[field]
		if !ok || isNull(value) {
			continue
		}
		if err := decode(value); err != nil {
			s.invalid(key+"."+field, value, err)
		}
	}
	return music
}

func (s *YAMLStore) invalid(key string, node *yaml.Node, err error) {
	s.logger.Warn().Err(err).
		Str("event", "settings.invalid_entry").
		Str("key", key).
		Int("line", node.Line).
		Msg("invalid settings entry, keeping default")
}

// decodeField only assigns dst when node decodes cleanly.
func decodeField[T any](node *yaml.Node, dst **T) error {
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*dst = &v
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func (y yamlSettings) apply(s *domain.Settings) {
	setInt(&s.WorkMinutes, y.WorkMinutes)
	setInt(&s.ShortBreakMinutes, y.ShortBreakMinutes)
	setInt(&s.LongBreakMinutes, y.LongBreakMinutes)
	setInt(&s.LongBreakInterval, y.LongBreakInterval)
	y.FocusMusic.apply(&s.FocusMusic)
	y.BreakMusic.apply(&s.BreakMusic)
	setString(&s.WorkAlarm, y.WorkAlarm)
	setString(&s.ShortBreakAlarm, y.ShortBreakAlarm)
	setString(&s.LongBreakAlarm, y.LongBreakAlarm)
	setString(&s.Theme, y.Theme)
	if y.AutoStartBreaks != nil {
		s.AutoStartBreaks = *y.AutoStartBreaks
	}
	if y.AutoStartWork != nil {
		s.AutoStartWork = *y.AutoStartWork
	}
}

func (y *yamlMusic) apply(m *domain.Music) {
	if y == nil {
		return
	}
	if y.Kind != nil {
		if kind, err := domain.ParseMediaKind(*y.Kind); err == nil {
			m.Kind = kind
		}
	}
	setString(&m.Reference, y.Reference)
	setInt(&m.Volume, y.Volume)
}

func fromDomain(s domain.Settings) yamlSettings {
	return yamlSettings{
		WorkMinutes:       ptr(s.WorkMinutes),
		ShortBreakMinutes: ptr(s.ShortBreakMinutes),
		LongBreakMinutes:  ptr(s.LongBreakMinutes),
		LongBreakInterval: ptr(s.LongBreakInterval),
		FocusMusic:        musicFromDomain(s.FocusMusic),
		BreakMusic:        musicFromDomain(s.BreakMusic),
		WorkAlarm:         ptr(s.WorkAlarm),
		ShortBreakAlarm:   ptr(s.ShortBreakAlarm),
		LongBreakAlarm:    ptr(s.LongBreakAlarm),
		Theme:             ptr(s.Theme),
		AutoStartBreaks:   ptr(s.AutoStartBreaks),
		AutoStartWork:     ptr(s.AutoStartWork),
	}
}

func musicFromDomain(m domain.Music) *yamlMusic {
	out := &yamlMusic{Kind: ptr(string(m.Kind)), Volume: ptr(m.Volume)}
	if m.Reference != "" {
		out.Reference = ptr(m.Reference)
	}
	return out
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func ptr[T any](v T) *T {
	return &v
}
