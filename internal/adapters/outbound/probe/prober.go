package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/skillcoder/hamonitor/internal/logic/monitor"
)

const (
	defaultPingTimeout = 5 * time.Second
	defaultHTTPTimeout = 10 * time.Second

	// maxDrainBytes bounds how much of a response body is read before closing it.
	maxDrainBytes = 4 << 10
)

// execCommand is a variable to allow mocking in tests
var execCommand = exec.CommandContext

// Config tunes the prober.
type Config struct {
	PingTimeout time.Duration
	HTTPTimeout time.Duration
	// InsecureSkipVerify disables TLS certificate verification for application probes.
	InsecureSkipVerify bool
}

type prober struct {
	logger      *slog.Logger
	pingTimeout time.Duration
	client      *http.Client
	goos        string
}

// New creates a prober that pings hosts with the system ping command and
// checks applications with an HTTP GET.
func New(logger *slog.Logger, cfg Config) monitor.Prober {
	if cfg.PingTimeout <= 0 {
		cfg.PingTimeout = defaultPingTimeout
	}

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}

	if cfg.InsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for application probes")
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // G402: opt-in for self-signed internal endpoints
	}

	return &prober{
		logger:      logger,
		pingTimeout: cfg.PingTimeout,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.HTTPTimeout,
		},
		goos: runtime.GOOS,
	}
}

var _ monitor.Prober = (*prober)(nil)

// ProbeHost sends a single ICMP echo to address.
func (p *prober) ProbeHost(ctx context.Context, address string) bool {
	ctx, cancel := context.WithTimeout(ctx, p.pingTimeout)
	defer cancel()

	name, args := pingArgs(p.goos, address)

	cmd := execCommand(ctx, name, args...)

	start := time.Now()

	err := cmd.Run()
	if err != nil {
		p.logger.InfoContext(ctx, "ping failed",
			"address", address,
			"latency", time.Since(start),
			"reason", err,
		)

		return false
	}

	p.logger.InfoContext(ctx, "ping succeeded", "address", address, "latency", time.Since(start))

	return true
}

// ProbeApplication issues a GET to url and succeeds only on status 200.
func (p *prober) ProbeApplication(ctx context.Context, url string) bool {
	err := p.fetch(ctx, url)
	if err != nil {
		p.logger.InfoContext(ctx, "application check failed", "url", url, "reason", err)

		return false
	}

	p.logger.InfoContext(ctx, "application responds with 200 status code", "url", url)

	return true
}

func (p *prober) fetch(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}

	defer func() {
		_, _ = io.CopyN(io.Discard, resp.Body, maxDrainBytes)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}

func pingArgs(goos, address string) (string, []string) {
	if goos == "windows" {
		return "ping", []string{"-n", "1", address}
	}

	return "ping", []string{"-c", "1", address}
}
