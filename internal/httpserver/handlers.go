package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skillcoder/hamonitor/internal/logic/monitor"
)

type componentStatus struct {
	Ready             bool      `json:"ready"`
	Healthy           bool      `json:"healthy"`
	LastRun           time.Time `json:"lastRun,omitzero"`
	LastSuccess       time.Time `json:"lastSuccess,omitzero"`
	LastError         string    `json:"lastError,omitempty"`
	SuccessCount      int       `json:"successCount"`
	ErrorCount        int       `json:"errorCount"`
	ConsecutiveErrors int       `json:"consecutiveErrors"`
	LatencyAvg        string    `json:"latencyAvg"`
	LatencyMax        string    `json:"latencyMax"`
}

type statusResponse struct {
	State      string                     `json:"state"`
	Uptime     string                     `json:"uptime"`
	StartTime  time.Time                  `json:"startTime"`
	UptimeSec  float64                    `json:"uptimeSeconds"`
	Components map[string]componentStatus `json:"components"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if !s.appState.IsHealthy() {
		s.logger.DebugContext(r.Context(), "health check failed", "traceID", middleware.GetReqID(r.Context()))
		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if !s.appState.IsReady() {
		s.logger.DebugContext(r.Context(), "readiness check failed", "traceID", middleware.GetReqID(r.Context()))
		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	uptime := s.appState.GetUptime()
	stats := s.appState.GetAllStats()

	response := statusResponse{
		State:      string(s.appState.GetState()),
		Uptime:     uptime.Round(time.Second).String(),
		StartTime:  s.appState.GetStartTime(),
		UptimeSec:  uptime.Seconds(),
		Components: make(map[string]componentStatus, len(stats)),
	}

	for name, st := range stats {
		cs := componentStatus{
			Ready:             st.IsReady,
			Healthy:           st.IsHealthy,
			LastRun:           st.LastRun,
			LastSuccess:       st.LastSuccess,
			SuccessCount:      st.SuccessCount,
			ErrorCount:        st.ErrorCount,
			ConsecutiveErrors: st.ConsecutiveErrors,
			LatencyAvg:        st.LatencyAvg.String(),
			LatencyMax:        st.LatencyMax.String(),
		}

		if st.LastError != nil {
			cs.LastError = st.LastError.Error()
		}

		response.Components[name] = cs
	}

	s.writeJSON(w, r, http.StatusOK, response)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.targets.GetStatusSnapshot())
}

func (s *Server) handleTargets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.targets.Hosts())
}

func (s *Server) handleTarget(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "host")

	host, err := s.targets.Host(name)
	if errors.Is(err, monitor.ErrHostNotFound) {
		s.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "host not found: " + name})

		return
	}

	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to get host", "host", name, "reason", err)
		s.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal error"})

		return
	}

	s.writeJSON(w, r, http.StatusOK, host)
}

// handleDown lists the ids of targets whose confirmed status is down.
func (s *Server) handleDown(w http.ResponseWriter, r *http.Request) {
	snapshot := s.targets.GetStatusSnapshot()

	down := make([]string, 0)

	for id, status := range snapshot {
		if status == monitor.StatusDown {
			down = append(down, id)
		}
	}

	slices.Sort(down)

	s.writeJSON(w, r, http.StatusOK, down)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to encode response",
			"path", r.URL.Path,
			"reason", err,
		)
	}
}
