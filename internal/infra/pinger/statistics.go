package pinger

import (
	"slices"
	"sync"
	"time"
)

// latencyWindow is the number of most recent successful pings used for latency figures.
const latencyWindow = 32

// Statistics is a point-in-time view of one pinger.
type Statistics struct {
	Name              string
	IsReady           bool
	IsHealthy         bool
	LastRun           time.Time
	LastSuccess       time.Time
	LastError         error
	SuccessCount      int
	ErrorCount        int
	ConsecutiveErrors int
	LatencyAvg        time.Duration
	LatencyMax        time.Duration
}

type stats struct {
	mu                sync.RWMutex
	lastRun           time.Time
	lastSuccess       time.Time
	lastError         error
	successCount      int
	errorCount        int
	consecutiveErrors int
	latencies         []time.Duration
	next              int
}

func (s *stats) record(now time.Time, latency time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRun = now
	s.lastError = err

	if err != nil {
		s.errorCount++
		s.consecutiveErrors++

		return
	}

	s.successCount++
	s.consecutiveErrors = 0
	s.lastSuccess = now

	if len(s.latencies) < latencyWindow {
		s.latencies = append(s.latencies, latency)

		return
	}

	s.latencies[s.next] = latency
	s.next = (s.next + 1) % latencyWindow
}

func (s *stats) snapshot(e *entry) *Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// A pinger that has never run counts as failing until its first success.
	failing := s.lastError != nil || s.lastRun.IsZero()

	st := &Statistics{
		Name:              e.pinger.Name(),
		IsReady:           !e.readyCritical || !failing,
		IsHealthy:         !e.healthCritical || !failing,
		LastRun:           s.lastRun,
		LastSuccess:       s.lastSuccess,
		LastError:         s.lastError,
		SuccessCount:      s.successCount,
		ErrorCount:        s.errorCount,
		ConsecutiveErrors: s.consecutiveErrors,
	}

	if len(s.latencies) > 0 {
		var sum time.Duration
		for _, l := range s.latencies {
			sum += l
		}

		st.LatencyAvg = sum / time.Duration(len(s.latencies))
		st.LatencyMax = slices.Max(s.latencies)
	}

	return st
}
