package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Task is one unit of periodic work.
type Task func(ctx context.Context) error

// Periodic runs a task immediately and then on every interval until the
// context is cancelled. Task errors are logged and do not stop the loop.
type Periodic struct {
	name     string
	interval time.Duration
	task     Task
}

func NewPeriodic(name string, interval time.Duration, task Task) *Periodic {
	if interval <= 0 {
		panic("worker: interval must be greater than 0")
	}
	return &Periodic{name: name, interval: interval, task: task}
}

func (p *Periodic) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logger := log.With().Str("worker", p.name).Logger()
	logger.Info().Dur("interval", p.interval).Msg("starting worker")

	for {
		if err := p.task(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("worker run failed")
		}

		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down worker")
			return
		case <-ticker.C:
		}
	}
}

// Retry calls fn up to attempts times, sleeping delay between failures.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}
