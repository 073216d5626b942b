package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pomo/internal/modules/media/domain"
	mediaout "pomo/internal/modules/media/port/out"
	"pomo/internal/modules/media/service"
	apperrors "pomo/internal/platform/errors"
)

type fakePlayer struct {
	mu         sync.Mutex
	events     []string
	handles    []*fakeHandle
	failAcq    map[string]bool
	rejectPlay bool
	rejectAt   map[string]bool
	alarms     []string
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{failAcq: map[string]bool{}, rejectAt: map[string]bool{}}
}

func (p *fakePlayer) Acquire(_ context.Context, source domain.Source) (mediaout.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failAcq[source.Location] {
		p.events = append(p.events, "acquire-failed "+source.Location)
		return nil, errors.New("cannot open " + source.Location)
	}
	p.events = append(p.events, "acquire "+source.Location)
	h := &fakeHandle{player: p, location: source.Location}
	p.handles = append(p.handles, h)
	return h, nil
}

func (p *fakePlayer) PlayOnce(_ context.Context, location string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alarms = append(p.alarms, location)
	return nil
}

func (p *fakePlayer) playingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, h := range p.handles {
		if h.playing && !h.closed {
			n++
		}
	}
	return n
}

func (p *fakePlayer) log() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type fakeHandle struct {
	player   *fakePlayer
	location string
	playing  bool
	closed   bool
	volume   int
}

// Handle methods are called with the service mutex held; record through the
// player lock so playingCount can be read from the test goroutine.
func (h *fakeHandle) Play(context.Context) error {
	h.player.mu.Lock()
	defer h.player.mu.Unlock()
	if h.player.rejectPlay || h.player.rejectAt[h.location] {
		h.player.events = append(h.player.events, "play-rejected "+h.location)
		return errors.New("autoplay blocked")
	}
	for _, other := range h.player.handles {
		if other != h && other.playing && !other.closed {
			panic("two sources playing at once")
		}
	}
	h.playing = true
	h.player.events = append(h.player.events, "play "+h.location)
	return nil
}

func (h *fakeHandle) Pause(context.Context) error {
	h.player.mu.Lock()
	defer h.player.mu.Unlock()
	h.playing = false
	h.player.events = append(h.player.events, "pause "+h.location)
	return nil
}

func (h *fakeHandle) SetVolume(_ context.Context, percent int) error {
	h.player.mu.Lock()
	defer h.player.mu.Unlock()
	h.volume = percent
	return nil
}

func (h *fakeHandle) Close() error {
	h.player.mu.Lock()
	defer h.player.mu.Unlock()
	h.closed = true
	h.player.events = append(h.player.events, "close "+h.location)
	return nil
}

const assets = "/assets"

func state(seq uint64, mode string, running bool) service.State {
	return service.State{
		Seq:     seq,
		Mode:    mode,
		Running: running,
		Focus:   domain.Config{Kind: domain.KindLocal, Volume: 50},
		Break:   domain.Config{Kind: domain.KindLocal, Volume: 30},
	}
}

func TestPausedTimerAcquiresNothing(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	svc := service.NewSyncService(player, player, assets)

	status, err := svc.OnStateChange(context.Background(), state(1, "work", false))
	if err != nil {
		t.Fatalf("state change: %v", err)
	}
	if len(player.log()) != 0 || status.Playing {
		t.Fatalf("expected lazy acquisition, got %v", player.log())
	}
}

func TestRunningPlaysFocusTrack(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	svc := service.NewSyncService(player, player, assets)

	status, err := svc.OnStateChange(context.Background(), state(1, "work", true))
	if err != nil {
		t.Fatalf("state change: %v", err)
	}
	if !status.Playing || status.Source.Location != "/assets/lofi.mp3" || status.Volume != 50 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if player.handles[0].volume != 50 {
		t.Fatalf("volume not applied: %d", player.handles[0].volume)
	}

	// Later ticks reuse the handle.
	if _, err := svc.OnStateChange(context.Background(), state(2, "work", true)); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(player.handles) != 1 {
		t.Fatalf("expected one handle, got %d", len(player.handles))
	}
}

func TestModeSwitchPausesOldBeforeStartingNew(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	svc := service.NewSyncService(player, player, assets)
	ctx := context.Background()

	if _, err := svc.OnStateChange(ctx, state(1, "work", true)); err != nil {
		t.Fatalf("work: %v", err)
	}
	if _, err := svc.OnStateChange(ctx, state(2, "shortBreak", true)); err != nil {
		t.Fatalf("break: %v", err)
	}
	want := []string{
		"acquire /assets/lofi.mp3",
		"play /assets/lofi.mp3",
		"pause /assets/lofi.mp3",
		"close /assets/lofi.mp3",
		"acquire /assets/nature.mp3",
		"play /assets/nature.mp3",
	}
	got := player.log()
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: want %q, got %q (all %v)", i, want[i], got[i], got)
		}
	}
	if player.playingCount() != 1 {
		t.Fatalf("expected exactly one playing source")
	}
	if player.handles[1].volume != 30 {
		t.Fatalf("break volume not applied: %d", player.handles[1].volume)
	}
}

func TestBreakModesShareHandle(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	svc := service.NewSyncService(player, player, assets)
	ctx := context.Background()

	_, _ = svc.OnStateChange(ctx, state(1, "shortBreak", true))
	_, _ = svc.OnStateChange(ctx, state(2, "longBreak", true))
	if len(player.handles) != 1 {
		t.Fatalf("break modes should share a handle, got %d", len(player.handles))
	}
}

func TestPauseStopsPlayback(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	svc := service.NewSyncService(player, player, assets)
	ctx := context.Background()

	_, _ = svc.OnStateChange(ctx, state(1, "work", true))
	status, err := svc.OnStateChange(ctx, state(2, "work", false))
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if status.Playing || player.playingCount() != 0 {
		t.Fatalf("expected silence after pause")
	}
}

func TestStaleSnapshotIsDropped(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	svc := service.NewSyncService(player, player, assets)
	ctx := context.Background()

	_, _ = svc.OnStateChange(ctx, state(5, "work", false))
	status, err := svc.OnStateChange(ctx, state(4, "work", true))
	if err != nil {
		t.Fatalf("stale: %v", err)
	}
	if status.Playing || len(player.log()) != 0 {
		t.Fatalf("stale snapshot must not start playback: %v", player.log())
	}
}

func TestInvalidVideoFallsBackToBundledTrack(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	svc := service.NewSyncService(player, player, assets)

	in := state(1, "work", true)
	in.Focus = domain.Config{Kind: domain.KindVideo, Reference: "https://example.com/nope", Volume: 50}
	status, err := svc.OnStateChange(context.Background(), in)
	if !errors.Is(err, apperrors.ErrInvalidMediaReference) {
		t.Fatalf("expected invalid reference to be reported, got %v", err)
	}
	if !status.Playing || status.Source.Location != "/assets/lofi.mp3" || !status.Source.Fallback {
		t.Fatalf("expected fallback playback, got %+v", status)
	}
}

func TestAcquireFailureRetriesWithBundledTrack(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	player.failAcq["/music/broken.mp3"] = true
	svc := service.NewSyncService(player, player, assets)

	in := state(1, "work", true)
	in.Focus = domain.Config{Kind: domain.KindLocal, Reference: "/music/broken.mp3", Volume: 50}
	status, err := svc.OnStateChange(context.Background(), in)
	if err != nil {
		t.Fatalf("fallback should succeed: %v", err)
	}
	if status.Source.Location != "/assets/lofi.mp3" || !status.Playing {
		t.Fatalf("unexpected status: %+v", status)
	}

	// The next tick for the same configuration keeps the fallback handle.
	in.Seq = 2
	if _, err := svc.OnStateChange(context.Background(), in); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(player.handles) != 1 {
		t.Fatalf("fallback handle should be reused, got %d handles", len(player.handles))
	}
}

func TestAcquireFailureWithoutFallbackIsUnavailable(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	player.failAcq["/music/broken.mp3"] = true
	player.failAcq["/assets/lofi.mp3"] = true
	svc := service.NewSyncService(player, player, assets)

	in := state(1, "work", true)
	in.Focus = domain.Config{Kind: domain.KindLocal, Reference: "/music/broken.mp3", Volume: 50}
	status, err := svc.OnStateChange(context.Background(), in)
	if !errors.Is(err, apperrors.ErrPlaybackUnavailable) {
		t.Fatalf("expected playback unavailable, got %v", err)
	}
	if status.Playing || player.playingCount() != 0 {
		t.Fatalf("nothing should play")
	}
}

func TestRejectedPlayLeavesSourcePaused(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	player.rejectPlay = true
	svc := service.NewSyncService(player, player, assets)

	status, err := svc.OnStateChange(context.Background(), state(1, "work", true))
	if !errors.Is(err, apperrors.ErrPlaybackRejected) {
		t.Fatalf("expected playback rejected, got %v", err)
	}
	if status.Playing {
		t.Fatalf("rejected source must be reported paused")
	}
	got := player.log()
	if got[len(got)-1] != "pause /assets/lofi.mp3" {
		t.Fatalf("expected explicit pause after rejection, got %v", got)
	}

	player.mu.Lock()
	player.rejectPlay = false
	player.mu.Unlock()
	status, err = svc.OnStateChange(context.Background(), state(2, "work", true))
	if err != nil || !status.Playing {
		t.Fatalf("next start should retry playback: %+v %v", status, err)
	}
}

func TestRejectedVideoSwitchesToBundledTrack(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	video := "https://www.youtube.com/watch?v=deadbeef123"
	player.rejectAt[video] = true
	svc := service.NewSyncService(player, player, assets)

	in := state(1, "work", true)
	in.Focus = domain.Config{Kind: domain.KindVideo, Reference: "https://youtu.be/deadbeef123", Volume: 40}
	status, err := svc.OnStateChange(context.Background(), in)
	if !errors.Is(err, apperrors.ErrPlaybackRejected) {
		t.Fatalf("expected the rejected play to be reported, got %v", err)
	}
	if !status.Playing || status.Source.Location != "/assets/lofi.mp3" || !status.Source.Fallback {
		t.Fatalf("expected bundled track to play, got %+v", status)
	}

	for seq := uint64(2); seq <= 3; seq++ {
		in.Seq = seq
		status, err = svc.OnStateChange(context.Background(), in)
		if err != nil || !status.Playing {
			t.Fatalf("tick %d: %+v %v", seq, status, err)
		}
	}
	want := []string{
		"acquire " + video,
		"play-rejected " + video,
		"pause " + video,
		"close " + video,
		"acquire /assets/lofi.mp3",
		"play /assets/lofi.mp3",
	}
	if diff := cmp.Diff(want, player.log()); diff != "" {
		t.Fatalf("unexpected player events (-want +got):\n%s", diff)
	}
	if player.handles[1].volume != 40 {
		t.Fatalf("fallback should use the class volume, got %d", player.handles[1].volume)
	}
}

func TestRejectedBundledTrackIsNotReplaced(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	player.rejectAt["/assets/lofi.mp3"] = true
	svc := service.NewSyncService(player, player, assets)

	for seq := uint64(1); seq <= 2; seq++ {
		if _, err := svc.OnStateChange(context.Background(), state(seq, "work", true)); !errors.Is(err, apperrors.ErrPlaybackRejected) {
			t.Fatalf("expected playback rejected, got %v", err)
		}
	}
	if len(player.handles) != 1 {
		t.Fatalf("bundled track must keep its handle, got %d handles", len(player.handles))
	}
}

func TestMuteAndUnmute(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	svc := service.NewSyncService(player, player, assets)
	ctx := context.Background()

	_, _ = svc.OnStateChange(ctx, state(1, "work", true))
	status, err := svc.ToggleMute(ctx)
	if err != nil {
		t.Fatalf("mute: %v", err)
	}
	if !status.Muted || status.Playing || player.playingCount() != 0 {
		t.Fatalf("mute should pause: %+v", status)
	}

	// Ticks while muted keep it silent.
	status, _ = svc.OnStateChange(ctx, state(2, "work", true))
	if status.Playing {
		t.Fatalf("muted tick must not play")
	}

	status, err = svc.ToggleMute(ctx)
	if err != nil {
		t.Fatalf("unmute: %v", err)
	}
	if status.Muted || !status.Playing {
		t.Fatalf("unmute should resume: %+v", status)
	}
}

func TestSetVolumeAppliesToLiveHandleAndSticks(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	svc := service.NewSyncService(player, player, assets)
	ctx := context.Background()

	_, _ = svc.OnStateChange(ctx, state(1, "work", true))
	status, err := svc.SetVolume(ctx, 120)
	if err != nil {
		t.Fatalf("volume: %v", err)
	}
	if status.Volume != 100 || player.handles[0].volume != 100 {
		t.Fatalf("volume not clamped and applied: %+v", status)
	}
	status, _ = svc.OnStateChange(ctx, state(2, "work", true))
	if status.Volume != 100 {
		t.Fatalf("volume override lost on tick: %d", status.Volume)
	}
}

func TestCloseReleasesHandle(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	svc := service.NewSyncService(player, player, assets)
	ctx := context.Background()

	_, _ = svc.OnStateChange(ctx, state(1, "work", true))
	if err := svc.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !player.handles[0].closed || player.playingCount() != 0 {
		t.Fatalf("handle should be paused and closed")
	}
	status, _ := svc.OnStateChange(ctx, state(2, "work", true))
	if status.Playing {
		t.Fatalf("closed service must ignore snapshots")
	}
}

func TestPlayAlarmResolvesAgainstAssets(t *testing.T) {
	t.Parallel()
	player := newFakePlayer()
	svc := service.NewSyncService(player, player, assets)
	if err := svc.PlayAlarm(context.Background(), "alarm/bell.mp3"); err != nil {
		t.Fatalf("alarm: %v", err)
	}
	if len(player.alarms) != 1 || player.alarms[0] != "/assets/alarm/bell.mp3" {
		t.Fatalf("unexpected alarms: %v", player.alarms)
	}
}
