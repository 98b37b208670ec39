package cronparser

import (
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // host schedules may name any IANA zone

	cron "github.com/netresearch/go-cron"
)

var _parser = cron.MustNewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// Parser computes next cron occurrences for host check schedules.
// Parsed schedules are cached by their full spec since every host task
// asks for its next fire time once per cycle.
type Parser struct {
	cache sync.Map // full spec -> cron.Schedule
}

// New creates a new cron parser.
func New() *Parser {
	return &Parser{}
}

// NextAfter returns the next occurrence of spec strictly after `after`.
// tz is applied unless spec carries its own CRON_TZ=/TZ= prefix; UTC otherwise.
func (p *Parser) NextAfter(
	spec,
	tz string,
	after time.Time,
) (time.Time, error) {
	schedule, err := p.parse(spec, tz)
	if err != nil {
		return time.Time{}, err
	}

	next := schedule.Next(after)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q", ErrNoOccurrence, spec)
	}

	return next, nil
}

// Validate reports whether spec and tz form a usable schedule that still fires.
func (p *Parser) Validate(spec, tz string) error {
	_, err := p.NextAfter(spec, tz, time.Now())

	return err
}

func (p *Parser) parse(spec, tz string) (cron.Schedule, error) {
	fullSpec := buildSpec(strings.TrimSpace(spec), tz)

	if cached, ok := p.cache.Load(fullSpec); ok {
		schedule, _ := cached.(cron.Schedule)

		return schedule, nil
	}

	schedule, err := _parser.Parse(fullSpec)
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	p.cache.Store(fullSpec, schedule)

	return schedule, nil
}

func buildSpec(spec, tz string) string {
	if strings.HasPrefix(spec, "CRON_TZ=") || strings.HasPrefix(spec, "TZ=") {
		return spec
	}

	if tz == "" {
		tz = "UTC"
	}

	return "CRON_TZ=" + tz + " " + spec
}
