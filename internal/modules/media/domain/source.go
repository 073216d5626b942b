package domain

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	apperrors "pomo/internal/platform/errors"
)

// Class groups modes that share one piece of background media.
type Class string

const (
	ClassFocus Class = "focus"
	ClassBreak Class = "break"
)

// ClassFor maps a timer mode name to its media class. Both break modes share
// the break class.
func ClassFor(mode string) Class {
	if mode == "shortBreak" || mode == "longBreak" {
		return ClassBreak
	}
	return ClassFocus
}

type Kind string

const (
	KindLocal Kind = "local"
	KindVideo Kind = "video"
)

// Config is the configured media of one class.
type Config struct {
	Kind      Kind
	Reference string
	Volume    int
}

const (
	FocusTrack = "lofi.mp3"
	BreakTrack = "nature.mp3"
)

func DefaultTrack(class Class) string {
	if class == ClassBreak {
		return BreakTrack
	}
	return FocusTrack
}

// Source is a resolved, playable media location.
type Source struct {
	Class    Class
	Kind     Kind
	Location string
	VideoID  string
	Fallback bool
}

// Key identifies the media behind a handle. Two sources with the same key can
// share one handle.
func (s Source) Key() string {
	return string(s.Class) + "|" + string(s.Kind) + "|" + s.Location
}

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,64}$`)

// VideoID extracts the id from youtu.be/<id> and youtube.com/...?v=<id>
// links. Embed and shorts paths are accepted as well.
func VideoID(reference string) (string, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return "", fmt.Errorf("%w: empty video reference", apperrors.ErrInvalidMediaReference)
	}
	if !strings.Contains(ref, "://") {
		ref = "https://" + ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidMediaReference, err)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		id = u.Query().Get("v")
		if id == "" {
			for _, prefix := range []string{"/embed/", "/shorts/", "/live/"} {
				if rest, ok := strings.CutPrefix(u.Path, prefix); ok {
					id = strings.Trim(rest, "/")
					break
				}
			}
		}
	default:
		return "", fmt.Errorf("%w: unsupported video host %q", apperrors.ErrInvalidMediaReference, u.Hostname())
	}
	if !videoIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: no video id in %q", apperrors.ErrInvalidMediaReference, reference)
	}
	return id, nil
}

func VideoURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// Resolve turns a class configuration into a playable source. Relative local
// references are resolved against assetsDir; an empty local reference is the
// class's bundled track.
func Resolve(class Class, cfg Config, assetsDir string) (Source, error) {
	switch cfg.Kind {
	case KindVideo:
		id, err := VideoID(cfg.Reference)
		if err != nil {
			return Source{}, err
		}
		return Source{Class: class, Kind: KindVideo, Location: VideoURL(id), VideoID: id}, nil
	default:
		ref := strings.TrimSpace(cfg.Reference)
		if ref == "" {
			return Fallback(class, assetsDir), nil
		}
		return Source{Class: class, Kind: KindLocal, Location: ResolvePath(ref, assetsDir)}, nil
	}
}

// Fallback is the bundled local track of a class.
func Fallback(class Class, assetsDir string) Source {
	return Source{
		Class:    class,
		Kind:     KindLocal,
		Location: filepath.Join(assetsDir, DefaultTrack(class)),
		Fallback: true,
	}
}

func ResolvePath(ref, assetsDir string) string {
	ref = strings.TrimSpace(ref)
	if filepath.IsAbs(ref) || assetsDir == "" {
		return ref
	}
	return filepath.Join(assetsDir, filepath.FromSlash(ref))
}

func ClampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
