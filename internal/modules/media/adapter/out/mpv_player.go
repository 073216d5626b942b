package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"pomo/internal/modules/media/domain"
	mediaout "pomo/internal/modules/media/port/out"
	apperrors "pomo/internal/platform/errors"
	xlog "pomo/internal/platform/log"
)

const (
	defaultStartTimeout = 5 * time.Second
	stopTimeout         = 2 * time.Second
)

// MPVPlayer runs one mpv process per handle and drives it over its IPC
// socket. Alarms are fire-and-forget mpv processes.
type MPVPlayer struct {
	binary       string
	socketDir    string
	startTimeout time.Duration
	logger       zerolog.Logger
	counter      atomic.Uint64
}

func NewMPVPlayer(binary, socketDir string) *MPVPlayer {
	if binary == "" {
		binary = "mpv"
	}
	return &MPVPlayer{
		binary:       binary,
		socketDir:    socketDir,
		startTimeout: defaultStartTimeout,
		logger:       xlog.WithComponent("media.mpv"),
	}
}

var (
	_ mediaout.Player      = (*MPVPlayer)(nil)
	_ mediaout.AlarmPlayer = (*MPVPlayer)(nil)
)

func (p *MPVPlayer) Acquire(ctx context.Context, source domain.Source) (mediaout.Handle, error) {
	if err := checkLocal(source.Kind, source.Location); err != nil {
		return nil, err
	}
	binary, err := exec.LookPath(p.binary)
	if err != nil {
		return nil, fmt.Errorf("find mpv: %w", err)
	}
	if err := os.MkdirAll(p.socketDir, 0o700); err != nil {
		return nil, fmt.Errorf("create socket dir: %w", err)
	}
	socket := filepath.Join(p.socketDir, fmt.Sprintf("mpv-%d-%d.sock", os.Getpid(), p.counter.Add(1)))
	if err := os.Remove(socket); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove stale mpv socket: %w", err)
	}

	cmd := exec.Command(binary,
		"--no-video",
		"--no-terminal",
		"--pause",
		"--loop-file=inf",
		"--input-ipc-server="+socket,
		source.Location,
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mpv: %w", err)
	}
	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	client, err := p.waitForSocket(ctx, socket, exited)
	if err != nil {
		_ = cmd.Process.Kill()
		<-exited
		_ = os.Remove(socket)
		return nil, err
	}
	p.logger.Debug().Str("event", "mpv.started").Int("pid", cmd.Process.Pid).Str("location", source.Location).Msg("mpv started")
	return &mpvHandle{client: client, cmd: cmd, exited: exited, socket: socket, logger: p.logger}, nil
}

func (p *MPVPlayer) waitForSocket(ctx context.Context, socket string, exited <-chan struct{}) (*IPCClient, error) {
	ctx, cancel := context.WithTimeout(ctx, p.startTimeout)
	defer cancel()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		client, err := DialIPC(ctx, socket)
		if err == nil {
			return client, nil
		}
		select {
		case <-exited:
			return nil, errors.New("mpv exited before its ipc socket came up")
		case <-ctx.Done():
			return nil, fmt.Errorf("connect mpv ipc: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

func (p *MPVPlayer) PlayOnce(_ context.Context, location string) error {
	if err := checkLocal(domain.KindLocal, location); err != nil {
		return err
	}
	cmd := exec.Command(p.binary, "--no-video", "--no-terminal", "--really-quiet", location)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mpv alarm: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func checkLocal(kind domain.Kind, location string) error {
	if kind != domain.KindLocal {
		return nil
	}
	if _, err := os.Stat(location); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: media file %s", apperrors.ErrNotFound, location)
		}
		return fmt.Errorf("media file: %w", err)
	}
	return nil
}

type mpvHandle struct {
	client *IPCClient
	cmd    *exec.Cmd
	exited <-chan struct{}
	socket string
	logger zerolog.Logger
	closed atomic.Bool
}

func (h *mpvHandle) Play(ctx context.Context) error {
	_, err := h.client.Call(ctx, "set_property", "pause", false)
	return err
}

func (h *mpvHandle) Pause(ctx context.Context) error {
	_, err := h.client.Call(ctx, "set_property", "pause", true)
	return err
}

func (h *mpvHandle) SetVolume(ctx context.Context, percent int) error {
	_, err := h.client.Call(ctx, "set_property", "volume", domain.ClampVolume(percent))
	return err
}

// Close asks mpv to quit and kills it if it does not exit in time.
func (h *mpvHandle) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	_, quitErr := h.client.Call(ctx, "quit")
	_ = h.client.Close()

	select {
	case <-h.exited:
	case <-ctx.Done():
		_ = h.cmd.Process.Kill()
		<-h.exited
	}
	_ = os.Remove(h.socket)
	if quitErr != nil {
		h.logger.Debug().Err(quitErr).Str("event", "mpv.quit_failed").Msg("mpv did not acknowledge quit")
	}
	return nil
}
