package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomo/internal/modules/settings/domain"
	"pomo/internal/modules/settings/service"
)

type memoryStore struct {
	settings domain.Settings
	saves    int
	loadErr  error
}

func (m *memoryStore) Load(context.Context) (domain.Settings, error) {
	if m.loadErr != nil {
		return domain.Settings{}, m.loadErr
	}
	return m.settings, nil
}

func (m *memoryStore) Save(_ context.Context, s domain.Settings) error {
	m.settings = s
	m.saves++
	return nil
}

func (m *memoryStore) Path() string { return "memory" }

func TestUpdatePersistsAndNotifies(t *testing.T) {
	t.Parallel()
	store := &memoryStore{settings: domain.Defaults()}
	svc := service.NewSettingsService(store, nil)
	ch, cancel := svc.Subscribe()
	defer cancel()

	updated, err := svc.Update(context.Background(), func(s *domain.Settings) error {
		s.WorkMinutes = 1500
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 999, updated.WorkMinutes)
	assert.Equal(t, 1, store.saves)

	got := <-ch
	assert.Equal(t, 999, got.WorkMinutes)
}

func TestUpdateWithoutChangeSkipsSave(t *testing.T) {
	t.Parallel()
	store := &memoryStore{settings: domain.Defaults()}
	svc := service.NewSettingsService(store, nil)

	_, err := svc.Update(context.Background(), func(*domain.Settings) error { return nil })
	require.NoError(t, err)
	assert.Zero(t, store.saves)
}

func TestUpdateErrorKeepsCurrent(t *testing.T) {
	t.Parallel()
	store := &memoryStore{settings: domain.Defaults()}
	svc := service.NewSettingsService(store, nil)

	_, err := svc.Update(context.Background(), func(s *domain.Settings) error {
		s.WorkMinutes = 3
		return errors.New("boom")
	})
	require.Error(t, err)
	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, current.WorkMinutes)
}

func TestReloadNotifiesOnlyOnChange(t *testing.T) {
	t.Parallel()
	store := &memoryStore{settings: domain.Defaults()}
	svc := service.NewSettingsService(store, nil)
	_, err := svc.Current(context.Background())
	require.NoError(t, err)

	ch, cancel := svc.Subscribe()
	defer cancel()

	changed, err := svc.Reload(context.Background())
	require.NoError(t, err)
	assert.False(t, changed)
	select {
	case s := <-ch:
		t.Fatalf("unexpected notification: %+v", s)
	default:
	}

	store.settings.Theme = "nord"
	changed, err = svc.Reload(context.Background())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "nord", (<-ch).Theme)
}

func TestReloadFailureKeepsPrevious(t *testing.T) {
	t.Parallel()
	store := &memoryStore{settings: domain.Defaults()}
	svc := service.NewSettingsService(store, nil)
	_, err := svc.Current(context.Background())
	require.NoError(t, err)

	store.loadErr = errors.New("disk gone")
	_, err = svc.Reload(context.Background())
	require.Error(t, err)

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Defaults(), current)
}
