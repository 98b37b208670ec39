package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/skillcoder/hamonitor/internal/logic/monitor"
)

const (
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultHTTPPort        = "8080"
	defaultMetricsPort     = "9090"
	defaultHostsFile       = "hosts.yaml"
	defaultPingerInterval  = 10 * time.Second
	defaultPingTimeout     = 5 * time.Second
	defaultHTTPTimeout     = 10 * time.Second
	defaultNotifyRateLimit = time.Second
	defaultNotifyTimeout   = 10 * time.Second
)

type Config struct {
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`
	LogFile   string

	HTTPPort           string `validate:"required,numeric"`
	MetricsPort        string `validate:"required,numeric"`
	CORSAllowedOrigins []string

	PingerInterval time.Duration

	HostsFile string `validate:"required"`
	Hosts     []monitor.Host
	Defaults  monitor.Defaults

	NotifyRecipient string
	SlackWebhookURL string `validate:"omitempty,url"`
	NotifyRateLimit time.Duration
	NotifyTimeout   time.Duration

	RecheckInterval    time.Duration
	PingTimeout        time.Duration
	HTTPTimeout        time.Duration
	InsecureSkipVerify bool

	TerminationFile string
}

var _validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the process settings from the environment and the hosts file they point to.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:        getEnvOrDefault(envKeyLogLevel, defaultLogLevel),
		LogFormat:       getEnvOrDefault(envKeyLogFormat, defaultLogFormat),
		LogFile:         os.Getenv(envKeyLogFile),
		HTTPPort:        getEnvOrDefault(envKeyHTTPPort, defaultHTTPPort),
		MetricsPort:     getEnvOrDefault(envKeyMetricsPort, defaultMetricsPort),
		HostsFile:       getEnvOrDefault(envKeyHostsFile, defaultHostsFile),
		NotifyRecipient: os.Getenv(envKeyNotifyRecipient),
		SlackWebhookURL: os.Getenv(envKeySlackWebhookURL),
		TerminationFile: os.Getenv(envKeyTerminationFile),
	}

	cfg.CORSAllowedOrigins = parseListEnv(envKeyCORSAllowedOrigins, []string{"*"})

	var errs error

	durations := []struct {
		dst *time.Duration
		key string
		def time.Duration
		min time.Duration
	}{
		{&cfg.PingerInterval, envKeyPingerInterval, defaultPingerInterval, envMinPingerInterval},
		{&cfg.RecheckInterval, envKeyRecheckInterval, monitor.DefaultRecheckInterval, envMinRecheckInterval},
		{&cfg.PingTimeout, envKeyPingTimeout, defaultPingTimeout, envMinPingTimeout},
		{&cfg.HTTPTimeout, envKeyHTTPTimeout, defaultHTTPTimeout, envMinHTTPTimeout},
		{&cfg.NotifyRateLimit, envKeyNotifyRateLimit, defaultNotifyRateLimit, envMinNotifyRateLimit},
		{&cfg.NotifyTimeout, envKeyNotifyTimeout, defaultNotifyTimeout, envMinNotifyTimeout},
	}

	for _, d := range durations {
		value, err := parseDurationEnv(d.key, d.def, d.min)
		if err != nil {
			errs = errors.Join(errs, err)

			continue
		}

		*d.dst = value
	}

	skip, err := parseBoolEnv(envKeyTLSInsecureSkipVerify)
	if err != nil {
		errs = errors.Join(errs, err)
	}

	cfg.InsecureSkipVerify = skip

	if errs != nil {
		return nil, errs
	}

	err = _validate.Struct(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEnv, err)
	}

	cfg.Hosts, cfg.Defaults, err = LoadHosts(cfg.HostsFile)
	if err != nil {
		return nil, fmt.Errorf("load hosts: %w", err)
	}

	return cfg, nil
}

// ProbeTimeout is the longest a single probe of any kind can take.
func (c *Config) ProbeTimeout() time.Duration {
	return max(c.PingTimeout, c.HTTPTimeout)
}

func parseDurationEnv(key string, def, minimum time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	if value < minimum {
		return 0, fmt.Errorf("parse %s: %w: %s < %s", key, ErrDurationTooSmall, value, minimum)
	}

	return value, nil
}

func parseBoolEnv(key string) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}

	return value, nil
}

func parseListEnv(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}

	var items []string

	for item := range strings.SplitSeq(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return def
	}

	return items
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}
