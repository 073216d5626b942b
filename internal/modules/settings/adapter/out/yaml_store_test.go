package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomo/internal/modules/settings/adapter/out"
	"pomo/internal/modules/settings/domain"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	store := out.NewYAMLStore(filepath.Join(t.TempDir(), "settings.yaml"))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Defaults(), got)
}

func TestLoadFillsMissingKeysAndClamps(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "workMinutes: 0\nlongBreakMinutes: 2000\ntheme: dracula\nfocusMusic:\n  kind: youtube\n  reference: https://youtu.be/xyz\n  volume: 120\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := out.NewYAMLStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got.WorkMinutes)
	assert.Equal(t, 5, got.ShortBreakMinutes)
	assert.Equal(t, 999, got.LongBreakMinutes)
	assert.Equal(t, 4, got.LongBreakInterval)
	assert.Equal(t, "dracula", got.Theme)
	assert.Equal(t, domain.Music{Kind: domain.MediaVideo, Reference: "https://youtu.be/xyz", Volume: 100}, got.FocusMusic)
	assert.Equal(t, domain.Music{Kind: domain.MediaLocal, Volume: domain.DefaultVolume}, got.BreakMusic)
}

func TestLoadKeepsDefaultsForMistypedEntries(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "workMinutes: fifty\nshortBreakMinutes: 7\ntheme: dark\nautoStartWork: maybe\nbreakMusic:\n  kind: video\n  reference: https://youtu.be/jfKfPfyJRdk\n  volume: loud\nfocusMusic: [1, 2]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := out.NewYAMLStore(path).Load(context.Background())
	require.NoError(t, err)
	defaults := domain.Defaults()
	assert.Equal(t, defaults.WorkMinutes, got.WorkMinutes)
	assert.Equal(t, 7, got.ShortBreakMinutes)
	assert.Equal(t, "dark", got.Theme)
	assert.Equal(t, defaults.AutoStartWork, got.AutoStartWork)
	assert.Equal(t, domain.Music{Kind: domain.MediaVideo, Reference: "https://youtu.be/jfKfPfyJRdk", Volume: domain.DefaultVolume}, got.BreakMusic)
	assert.Equal(t, defaults.FocusMusic, got.FocusMusic)
}

func TestLoadEmptyFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workMinutes:\n"), 0o644))

	got, err := out.NewYAMLStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Defaults(), got)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workMinutes: [oops\n"), 0o644))

	_, err := out.NewYAMLStore(path).Load(context.Background())
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	store := out.NewYAMLStore(path)

	want := domain.Defaults()
	want.WorkMinutes = 50
	want.BreakMusic = domain.Music{Kind: domain.MediaLocal, Reference: "rain.mp3", Volume: 30}
	want.AutoStartWork = true
	want.Theme = "forest"

	require.NoError(t, store.Save(context.Background(), want))
	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "workMinutes: 50")
	assert.Contains(t, string(raw), "autoStartWork: true")
}

func TestWatcherReportsExternalEdits(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	watcher := out.NewFileWatcher(path).WithDebounce(20 * time.Millisecond)
	require.NoError(t, watcher.Watch(ctx, func() { changed <- struct{}{} }))

	require.NoError(t, out.NewYAMLStore(path).Save(ctx, domain.Defaults()))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not report the saved file")
	}
}
