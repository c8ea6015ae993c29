package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/registry"
)

// RecordSource is the read side of the birthday store.
// Each call must return a consistent snapshot.
type RecordSource interface {
	Load() ([]registry.BirthdayRecord, error)
	LoadUnitSubscriptions() ([]string, error)
}

// Checker runs the daily match against the stored records. It is the single
// entry point for both the scheduled and the on-demand check.
type Checker struct {
	Store       RecordSource
	Clock       Clock
	FormatTitle TitleFormatter
}

// RunOnce matches a fresh snapshot of the store against today and units.
func (c *Checker) RunOnce(today time.Time, units []string) (Summary, error) {
	if c.Store == nil {
		return Summary{}, errors.New(config.ErrStoreRead)
	}
	records, err := c.Store.Load()
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}
	return Match(records, today, units, c.FormatTitle), nil
}

// Check runs the match for the clock's current day using the stored unit
// subscriptions.
func (c *Checker) Check(ctx context.Context) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	if c.Store == nil {
		return Summary{}, errors.New(config.ErrStoreRead)
	}

	start := time.Now()
	units, err := c.Store.LoadUnitSubscriptions()
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}

	clock := c.Clock
	if clock == nil {
		clock = RealClock{}
	}

	s, err := c.RunOnce(clock.Now(), units)
	if err != nil {
		return Summary{}, err
	}

	slog.InfoContext(ctx, config.MsgCheckDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyToday, s.Count,
		config.LogKeyUnits, units,
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return s, nil
}
