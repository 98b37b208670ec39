package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/hamonitor/internal/httpserver"
	"github.com/skillcoder/hamonitor/internal/infra/appstate"
	"github.com/skillcoder/hamonitor/internal/infra/pinger"
	"github.com/skillcoder/hamonitor/internal/logic/monitor"
)

type fakeAppState struct {
	state   appstate.State
	healthy bool
	ready   bool
	stats   map[string]*pinger.Statistics
}

func (f *fakeAppState) GetState() appstate.State                   { return f.state }
func (f *fakeAppState) IsHealthy() bool                            { return f.healthy }
func (f *fakeAppState) IsReady() bool                              { return f.ready }
func (f *fakeAppState) GetUptime() time.Duration                   { return 90 * time.Second }
func (f *fakeAppState) GetStartTime() time.Time                    { return time.Unix(1_700_000_000, 0).UTC() }
func (f *fakeAppState) GetAllStats() map[string]*pinger.Statistics { return f.stats }

type fakeTargets struct {
	snapshot map[string]monitor.Status
}

func (f *fakeTargets) GetStatusSnapshot() map[string]monitor.Status { return f.snapshot }
func (f *fakeTargets) Hosts() []monitor.HostStatus                  { return nil }

func (f *fakeTargets) Host(name string) (monitor.HostStatus, error) {
	return monitor.HostStatus{}, errors.New("backend unavailable: " + name)
}

func newStore(t *testing.T) *monitor.Store {
	t.Helper()

	store, err := monitor.NewStore([]monitor.Host{
		{Name: "db01", Address: "10.0.0.5"},
		{
			Name:    "app01",
			Address: "10.0.0.7",
			Applications: []monitor.Application{
				{Name: "web", Port: 8080, Path: "/health"},
			},
		},
	}, monitor.Defaults{})
	require.NoError(t, err)

	store.Seed(time.Now())

	return store
}

func serve(t *testing.T, handler http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequestWithContext(t.Context(), method, path, http.NoBody)
	for k, v := range header {
		req.Header[k] = v
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestServer_Probes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		giveApp  *fakeAppState
		givePath string
		wantCode int
	}{
		{
			name:     "healthy",
			giveApp:  &fakeAppState{healthy: true},
			givePath: "/-/healthz",
			wantCode: http.StatusOK,
		},
		{
			name:     "unhealthy",
			giveApp:  &fakeAppState{},
			givePath: "/-/healthz",
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name:     "ready",
			giveApp:  &fakeAppState{ready: true},
			givePath: "/-/readyz",
			wantCode: http.StatusOK,
		},
		{
			name:     "not ready",
			giveApp:  &fakeAppState{healthy: true},
			givePath: "/-/readyz",
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httpserver.New(slog.Default(), tt.giveApp, newStore(t), "", nil)

			rec := serve(t, srv.Handler(), http.MethodGet, tt.givePath, nil)
			require.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestServer_Status(t *testing.T) {
	t.Parallel()

	app := &fakeAppState{
		state: appstate.StateRunning,
		stats: map[string]*pinger.Statistics{
			"monitor": {
				IsReady:           false,
				IsHealthy:         false,
				LastError:         monitor.ErrHostTaskStale,
				ErrorCount:        2,
				ConsecutiveErrors: 2,
			},
			"http-server": {
				IsReady:      true,
				IsHealthy:    true,
				SuccessCount: 5,
				LatencyAvg:   time.Millisecond,
				LatencyMax:   3 * time.Millisecond,
			},
		},
	}

	srv := httpserver.New(slog.Default(), app, newStore(t), "", nil)

	rec := serve(t, srv.Handler(), http.MethodGet, "/-/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got struct {
		State      string  `json:"state"`
		Uptime     string  `json:"uptime"`
		UptimeSec  float64 `json:"uptimeSeconds"`
		Components map[string]struct {
			Ready             bool   `json:"ready"`
			Healthy           bool   `json:"healthy"`
			LastError         string `json:"lastError"`
			SuccessCount      int    `json:"successCount"`
			ConsecutiveErrors int    `json:"consecutiveErrors"`
			LatencyMax        string `json:"latencyMax"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	require.Equal(t, "running", got.State)
	require.Equal(t, "1m30s", got.Uptime)
	require.InDelta(t, 90.0, got.UptimeSec, 0.001)
	require.Len(t, got.Components, 2)
	require.False(t, got.Components["monitor"].Healthy)
	require.Equal(t, monitor.ErrHostTaskStale.Error(), got.Components["monitor"].LastError)
	require.Equal(t, 2, got.Components["monitor"].ConsecutiveErrors)
	require.True(t, got.Components["http-server"].Ready)
	require.Equal(t, 5, got.Components["http-server"].SuccessCount)
	require.Equal(t, "3ms", got.Components["http-server"].LatencyMax)
}

func TestServer_Targets(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(slog.Default(), &fakeAppState{}, newStore(t), "", []string{"https://grafana.lan"})
	handler := srv.Handler()

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, handler, http.MethodGet, "/-/targets", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var hosts []monitor.HostStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hosts))
		require.Len(t, hosts, 2)
		require.Equal(t, "app01", hosts[0].Name)
		require.Equal(t, monitor.StatusUp, hosts[0].Status)
		require.Len(t, hosts[0].Applications, 1)
		require.Equal(t, "app01/web", hosts[0].Applications[0].ID)
		require.Equal(t, "http://10.0.0.7:8080/health", hosts[0].Applications[0].Address)
	})

	t.Run("one host", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, handler, http.MethodGet, "/-/targets/db01", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var host monitor.HostStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &host))
		require.Equal(t, "db01", host.Name)
		require.Equal(t, "10.0.0.5", host.Address)
	})

	t.Run("unknown host", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, handler, http.MethodGet, "/-/targets/db99", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "db99")
	})

	t.Run("snapshot", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, handler, http.MethodGet, "/-/snapshot", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var snapshot map[string]monitor.Status
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
		require.Equal(t, map[string]monitor.Status{
			"db01":      monitor.StatusUp,
			"app01":     monitor.StatusUp,
			"app01/web": monitor.StatusUp,
		}, snapshot)
	})

	t.Run("cors allowed origin", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, handler, http.MethodGet, "/-/targets", http.Header{
			"Origin": []string{"https://grafana.lan"},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "https://grafana.lan", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("cors other origin", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, handler, http.MethodGet, "/-/targets", http.Header{
			"Origin": []string{"https://evil.example"},
		})
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestServer_DownAndErrors(t *testing.T) {
	t.Parallel()

	targets := &fakeTargets{snapshot: map[string]monitor.Status{
		"db01":      monitor.StatusDown,
		"app01":     monitor.StatusUp,
		"app01/web": monitor.StatusDown,
	}}

	srv := httpserver.New(slog.Default(), &fakeAppState{}, targets, "", nil)
	handler := srv.Handler()

	rec := serve(t, handler, http.MethodGet, "/-/down", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `["app01/web","db01"]`, rec.Body.String())

	rec = serve(t, handler, http.MethodGet, "/-/targets/app01", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	empty := httpserver.New(slog.Default(), &fakeAppState{}, &fakeTargets{}, "", nil)

	rec = serve(t, empty.Handler(), http.MethodGet, "/-/down", nil)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestServer_Lifecycle(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(slog.Default(), &fakeAppState{ready: true}, newStore(t), "0", nil)
	require.Equal(t, "http-server", srv.Name())
	require.ErrorIs(t, srv.Ping(t.Context()), httpserver.ErrNotReady)

	ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
	defer cancel()

	require.NoError(t, srv.Start(ctx))

	select {
	case <-srv.Ready():
	case <-time.After(time.Second):
		t.Fatal("server did not become ready")
	}

	require.NoError(t, srv.Ping(t.Context()))
	require.NoError(t, srv.Shutdown(ctx))
	require.NoError(t, srv.Shutdown(ctx), "second shutdown is a no-op")
}

func TestMetricsServer_Lifecycle(t *testing.T) {
	t.Parallel()

	srv := httpserver.NewMetricsServer(slog.Default(), "0")
	require.Equal(t, "metrics-server", srv.Name())
	require.False(t, srv.PingerCritical())
	require.ErrorIs(t, srv.Ping(t.Context()), httpserver.ErrNotReady)

	require.NoError(t, srv.Start(t.Context()))

	<-srv.Ready()

	require.NoError(t, srv.Ping(t.Context()))
	require.NoError(t, srv.Shutdown(t.Context()))
}
