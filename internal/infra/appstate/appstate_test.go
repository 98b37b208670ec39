package appstate_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillcoder/hamonitor/internal/infra/appstate"
	"github.com/skillcoder/hamonitor/internal/infra/pinger"
	"github.com/skillcoder/hamonitor/internal/infra/shutdown/mocks"
)

type fakeRegistry struct {
	mu    sync.Mutex
	names []string
	stats map[string]*pinger.Statistics
}

func (r *fakeRegistry) Register(p pinger.Pinger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.names = append(r.names, p.Name())

	return nil
}

func (r *fakeRegistry) GetAllStats() map[string]*pinger.Statistics {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.stats
}

func (r *fakeRegistry) set(name string, ready, healthy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stats == nil {
		r.stats = make(map[string]*pinger.Statistics)
	}

	r.stats[name] = &pinger.Statistics{Name: name, IsReady: ready, IsHealthy: healthy}
}

type namedPinger string

func (p namedPinger) Name() string               { return string(p) }
func (p namedPinger) Ping(context.Context) error { return nil }

func newState(t *testing.T, registry *fakeRegistry) *appstate.AppState {
	t.Helper()

	return appstate.New(slog.Default(), time.Now(), filepath.Join(t.TempDir(), "terminating"), make(chan os.Signal, 1), registry)
}

func TestAppState_StateTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		giveSteps []func(*appstate.AppState, context.Context) error
		wantState appstate.State
		wantErr   error
	}{
		{
			name: "init to starting",
			giveSteps: []func(*appstate.AppState, context.Context) error{
				(*appstate.AppState).SetStarting,
			},
			wantState: appstate.StateStarting,
		},
		{
			name: "starting to running",
			giveSteps: []func(*appstate.AppState, context.Context) error{
				(*appstate.AppState).SetStarting,
				(*appstate.AppState).SetRunning,
			},
			wantState: appstate.StateRunning,
		},
		{
			name: "running to terminating",
			giveSteps: []func(*appstate.AppState, context.Context) error{
				(*appstate.AppState).SetStarting,
				(*appstate.AppState).SetRunning,
				(*appstate.AppState).SetTerminating,
			},
			wantState: appstate.StateTerminating,
		},
		{
			name: "init to running is rejected",
			giveSteps: []func(*appstate.AppState, context.Context) error{
				(*appstate.AppState).SetRunning,
			},
			wantState: appstate.StateInit,
			wantErr:   appstate.ErrInvalidStateTransition,
		},
		{
			name: "starting twice is rejected",
			giveSteps: []func(*appstate.AppState, context.Context) error{
				(*appstate.AppState).SetStarting,
				(*appstate.AppState).SetStarting,
			},
			wantState: appstate.StateStarting,
			wantErr:   appstate.ErrInvalidStateTransition,
		},
		{
			name: "terminated cannot change",
			giveSteps: []func(*appstate.AppState, context.Context) error{
				(*appstate.AppState).SetStarting,
				(*appstate.AppState).Shutdown,
				(*appstate.AppState).SetTerminating,
			},
			wantState: appstate.StateTerminated,
			wantErr:   appstate.ErrAlreadyTerminated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newState(t, &fakeRegistry{})

			var err error
			for _, step := range tt.giveSteps {
				err = step(s, t.Context())
			}

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			require.Equal(t, tt.wantState, s.GetState())
		})
	}
}

func TestAppState_HealthAndReadiness(t *testing.T) {
	t.Parallel()

	registry := &fakeRegistry{}
	s := newState(t, registry)

	require.NoError(t, s.RegisterPinger(namedPinger("monitor")))
	require.Equal(t, []string{"monitor"}, registry.names)

	require.False(t, s.IsHealthy())
	require.False(t, s.IsReady())

	require.NoError(t, s.SetStarting(t.Context()))
	require.False(t, s.IsHealthy())
	require.False(t, s.IsReady())

	require.NoError(t, s.SetRunning(t.Context()))
	require.True(t, s.IsHealthy())
	require.True(t, s.IsReady())

	registry.set("monitor", true, false)
	require.False(t, s.IsHealthy())
	require.True(t, s.IsReady())

	registry.set("monitor", false, true)
	require.True(t, s.IsHealthy())
	require.False(t, s.IsReady())

	registry.set("monitor", true, true)
	require.NoError(t, s.SetTerminating(t.Context()))
	require.False(t, s.IsHealthy())
	require.False(t, s.IsReady())
}

func TestAppState_GetUptime(t *testing.T) {
	t.Parallel()

	startTime := time.Now().Add(-time.Minute)
	s := appstate.New(slog.Default(), startTime, "", make(chan os.Signal, 1), &fakeRegistry{})

	require.Equal(t, startTime, s.GetStartTime())
	require.GreaterOrEqual(t, s.GetUptime(), time.Minute)
}

func TestAppState_Shutdown(t *testing.T) {
	t.Parallel()

	errStuck := errors.New("stuck")

	var order []string

	first := mocks.NewMockShutdowner(t)
	first.EXPECT().Name().Return("monitor").Once()
	first.EXPECT().Shutdown(mock.Anything).RunAndReturn(func(context.Context) error {
		order = append(order, "monitor")

		return errStuck
	}).Once()

	second := mocks.NewMockShutdowner(t)
	second.EXPECT().Name().Return("http-server").Once()
	second.EXPECT().Shutdown(mock.Anything).RunAndReturn(func(context.Context) error {
		order = append(order, "http-server")

		return nil
	}).Once()

	s := newState(t, &fakeRegistry{})
	s.RegisterShutdowner(first)
	s.RegisterShutdowner(second)

	require.NoError(t, s.SetStarting(t.Context()))
	require.NoError(t, s.SetRunning(t.Context()))

	err := s.Shutdown(t.Context())
	require.ErrorIs(t, err, errStuck)
	require.Equal(t, appstate.StateTerminated, s.GetState())
	require.Equal(t, []string{"http-server", "monitor"}, order)

	// a second shutdown is a no-op
	require.NoError(t, s.Shutdown(t.Context()))
}
