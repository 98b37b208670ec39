package notify_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/hamonitor/internal/adapters/outbound/notify"
)

func TestSlack_Send(t *testing.T) {
	t.Parallel()

	t.Run("posts channel and text", func(t *testing.T) {
		t.Parallel()

		var got map[string]string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			_ = json.NewDecoder(r.Body).Decode(&got)

			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(server.Close)

		s := notify.NewSlack(slog.Default(), notify.Config{SlackWebhookURL: server.URL})

		err := s.Send(t.Context(), "#ops", "db01 (10.0.0.5) is down.")
		require.NoError(t, err)
		require.Equal(t, "#ops", got["channel"])
		require.Equal(t, "db01 (10.0.0.5) is down.", got["text"])
	})

	t.Run("non-2xx returns error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(server.Close)

		s := notify.NewSlack(slog.Default(), notify.Config{SlackWebhookURL: server.URL})

		err := s.Send(t.Context(), "", "x")
		require.ErrorIs(t, err, notify.ErrNon2xxResponse)
	})

	t.Run("unreachable webhook returns error", func(t *testing.T) {
		t.Parallel()

		s := notify.NewSlack(slog.Default(), notify.Config{
			SlackWebhookURL: "http://127.0.0.1:1/hook",
			Timeout:         time.Second,
		})

		require.Error(t, s.Send(t.Context(), "", "x"))
	})

	t.Run("empty webhook returns error", func(t *testing.T) {
		t.Parallel()

		s := notify.NewSlack(slog.Default(), notify.Config{})

		require.ErrorIs(t, s.Send(t.Context(), "", "x"), notify.ErrWebhookNotConfigured)
	})

	t.Run("rate limit waits respect context", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(server.Close)

		s := notify.NewSlack(slog.Default(), notify.Config{
			SlackWebhookURL: server.URL,
			RateLimit:       time.Hour,
			Burst:           1,
		})

		require.NoError(t, s.Send(t.Context(), "", "first"))

		ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
		defer cancel()

		require.Error(t, s.Send(ctx, "", "second"))
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("rate limit wait is bounded by timeout", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(server.Close)

		s := notify.NewSlack(slog.Default(), notify.Config{
			SlackWebhookURL: server.URL,
			Timeout:         100 * time.Millisecond,
			RateLimit:       time.Hour,
			Burst:           1,
		})

		require.NoError(t, s.Send(t.Context(), "", "first"))

		start := time.Now()

		require.Error(t, s.Send(t.Context(), "", "second"))
		require.Less(t, time.Since(start), time.Second)
		require.Equal(t, int32(1), calls.Load())
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	logger := slog.Default()

	_, isLog := notify.New(logger, notify.Config{}).(*notify.Log)
	require.True(t, isLog)

	_, isSlack := notify.New(logger, notify.Config{SlackWebhookURL: "http://example.invalid"}).(*notify.Slack)
	require.True(t, isSlack)

	require.NoError(t, notify.NewLog(logger).Send(t.Context(), "@ops", "hello"))
}
