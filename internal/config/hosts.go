package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skillcoder/hamonitor/internal/infra/cronparser"
	"github.com/skillcoder/hamonitor/internal/logic/monitor"
)

// hostsFile mirrors the YAML layout:
//
//	defaults:
//	  pollInterval: 10m
//	  delay: 30s
//	hosts:
//	  db01:
//	    address: 10.0.0.5
//	    applications:
//	      web: {port: 8080, path: /health}
type hostsFile struct {
	Defaults defaultsSpec        `yaml:"defaults"`
	Hosts    map[string]hostSpec `yaml:"hosts" validate:"required,min=1,dive"`
}

type defaultsSpec struct {
	PollInterval *time.Duration `yaml:"pollInterval"`
	Delay        *time.Duration `yaml:"delay"`
}

type hostSpec struct {
	Address      string                     `yaml:"address" validate:"required,hostname_rfc1123|ip"`
	PollInterval *time.Duration             `yaml:"pollInterval"`
	Schedule     string                     `yaml:"schedule"`
	TZ           string                     `yaml:"tz" validate:"omitempty,timezone"`
	Delay        *time.Duration             `yaml:"delay"`
	Applications map[string]applicationSpec `yaml:"applications" validate:"omitempty,dive"`
}

type applicationSpec struct {
	Scheme string         `yaml:"scheme" validate:"omitempty,oneof=http https"`
	Port   int            `yaml:"port" validate:"omitempty,min=1,max=65535"`
	Path   string         `yaml:"path" validate:"omitempty,startswith=/"`
	Delay  *time.Duration `yaml:"delay"`
}

// LoadHosts reads and validates the hosts file at path.
func LoadHosts(path string) ([]monitor.Host, monitor.Defaults, error) {
	if path == "" {
		return nil, monitor.Defaults{}, ErrHostsFileRequired
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, monitor.Defaults{}, fmt.Errorf("read hosts file: %w", err)
	}

	return ParseHosts(data)
}

// ParseHosts decodes a hosts document, validates it and converts it to monitor hosts.
// Unknown keys are rejected so that typos do not silently fall back to defaults.
func ParseHosts(data []byte) ([]monitor.Host, monitor.Defaults, error) {
	var file hostsFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	err := decoder.Decode(&file)
	if err != nil {
		return nil, monitor.Defaults{}, fmt.Errorf("%w: decode: %w", ErrInvalidHostsFile, err)
	}

	err = _validate.Struct(&file)
	if err != nil {
		return nil, monitor.Defaults{}, fmt.Errorf("%w: %w", ErrInvalidHostsFile, err)
	}

	err = file.check()
	if err != nil {
		return nil, monitor.Defaults{}, fmt.Errorf("%w: %w", ErrInvalidHostsFile, err)
	}

	return file.hosts(), file.defaults(), nil
}

// check runs the semantic validation the struct tags cannot express.
func (f *hostsFile) check() error {
	var errs error

	errs = errors.Join(errs,
		checkPositive("defaults.pollInterval", f.Defaults.PollInterval),
		checkNonNegative("defaults.delay", f.Defaults.Delay),
	)

	parser := cronparser.New()

	for name, h := range f.Hosts {
		errs = errors.Join(errs,
			checkPositive(name+".pollInterval", h.PollInterval),
			checkNonNegative(name+".delay", h.Delay),
		)

		if h.Schedule != "" {
			if h.PollInterval != nil {
				errs = errors.Join(errs, fmt.Errorf("%s: %w", name, ErrScheduleConflict))
			}

			err := parser.Validate(h.Schedule, h.TZ)
			if err != nil {
				errs = errors.Join(errs, fmt.Errorf("%s: %w: %w", name, ErrInvalidSchedule, err))
			}
		}

		for appName, app := range h.Applications {
			errs = errors.Join(errs, checkNonNegative(name+"/"+appName+".delay", app.Delay))
		}
	}

	return errs
}

func (f *hostsFile) defaults() monitor.Defaults {
	d := monitor.Defaults{
		PollInterval: monitor.DefaultPollInterval,
		Delay:        monitor.DefaultDelay,
	}

	if f.Defaults.PollInterval != nil {
		d.PollInterval = *f.Defaults.PollInterval
	}

	if f.Defaults.Delay != nil {
		d.Delay = *f.Defaults.Delay
	}

	return d
}

func (f *hostsFile) hosts() []monitor.Host {
	hosts := make([]monitor.Host, 0, len(f.Hosts))

	for name, h := range f.Hosts {
		host := monitor.Host{
			Name:     name,
			Address:  h.Address,
			Schedule: h.Schedule,
			TZ:       h.TZ,
			Delay:    h.Delay,
		}

		if h.PollInterval != nil {
			host.PollInterval = *h.PollInterval
		}

		for appName, app := range h.Applications {
			host.Applications = append(host.Applications, monitor.Application{
				Name:   appName,
				Scheme: app.Scheme,
				Port:   app.Port,
				Path:   app.Path,
				Delay:  app.Delay,
			})
		}

		hosts = append(hosts, host)
	}

	return hosts
}

func checkPositive(field string, d *time.Duration) error {
	if d != nil && *d <= 0 {
		return fmt.Errorf("%s: %w: must be positive, got %s", field, ErrInvalidDuration, *d)
	}

	return nil
}

func checkNonNegative(field string, d *time.Duration) error {
	if d != nil && *d < 0 {
		return fmt.Errorf("%s: %w: must not be negative, got %s", field, ErrInvalidDuration, *d)
	}

	return nil
}
