package config

import "time"

// Env key constants. All monitor configuration env vars use HAMONITOR_ prefix;
// duration values support explicit units (e.g. 5m, 40s, 2h).

// Log level: debug, info, warn, error.
const envKeyLogLevel = "HAMONITOR_LOG_LEVEL"

// Log format: json or text.
const envKeyLogFormat = "HAMONITOR_LOG_FORMAT"

// Optional log file path. When set, logs are written to a rotated file instead of stdout.
const envKeyLogFile = "HAMONITOR_LOG_FILE"

// Port for health, readiness and targets HTTP server.
const envKeyHTTPPort = "HAMONITOR_HTTP_PORT"

// Port for Prometheus metrics (GET /metrics).
const envKeyMetricsPort = "HAMONITOR_METRICS_PORT"

// Path to the YAML file with monitored hosts and applications.
const envKeyHostsFile = "HAMONITOR_HOSTS_FILE"

// Recipient passed to the notifier with every alert (Slack channel or user).
const envKeyNotifyRecipient = "HAMONITOR_NOTIFY_RECIPIENT"

// Slack incoming webhook URL. Alerts are only logged when unset.
const envKeySlackWebhookURL = "HAMONITOR_SLACK_WEBHOOK_URL"

// Skip TLS certificate verification for application probes (true/false).
const envKeyTLSInsecureSkipVerify = "HAMONITOR_TLS_INSECURE_SKIP_VERIFY"

// Comma separated origins allowed to read the targets endpoints from a browser.
const envKeyCORSAllowedOrigins = "HAMONITOR_CORS_ALLOWED_ORIGINS"

// File whose presence after startup triggers a graceful termination.
const envKeyTerminationFile = "HAMONITOR_TERMINATION_FILE"

// Pinger check interval. Units: s, m, h (e.g. 10s, 1m).
const (
	envKeyPingerInterval = "HAMONITOR_PINGER_INTERVAL"
	envMinPingerInterval = time.Second
)

// Re-probe period inside a debounce window. Units: s, m (e.g. 10s).
const (
	envKeyRecheckInterval = "HAMONITOR_RECHECK_INTERVAL"
	envMinRecheckInterval = 100 * time.Millisecond
)

// Timeout of a single ping. Units: s (e.g. 5s).
const (
	envKeyPingTimeout = "HAMONITOR_PING_TIMEOUT"
	envMinPingTimeout = 100 * time.Millisecond
)

// Timeout of a single application GET. Units: s (e.g. 10s).
const (
	envKeyHTTPTimeout = "HAMONITOR_HTTP_TIMEOUT"
	envMinHTTPTimeout = 100 * time.Millisecond
)

// Minimum spacing between notifier deliveries once the burst is spent. Units: ms, s.
const (
	envKeyNotifyRateLimit = "HAMONITOR_NOTIFY_RATE_LIMIT"
	envMinNotifyRateLimit = 10 * time.Millisecond
)

// Upper bound of one notification, rate limiter wait included. Units: s (e.g. 10s).
const (
	envKeyNotifyTimeout = "HAMONITOR_NOTIFY_TIMEOUT"
	envMinNotifyTimeout = 100 * time.Millisecond
)
