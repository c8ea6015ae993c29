// Package scheduler runs the daily birthday check on a cron schedule.
//
// A single worker goroutine executes the job, so runs never overlap. Cron
// ticks and manual triggers are coalesced: while a run is pending, further
// triggers fold into it, and a manual trigger makes the pending run manual.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-scoutalert/internal/config"
)

// Job is the unit of work. manual is true for runs requested through
// TriggerNow.
type Job func(ctx context.Context, manual bool)

// Scheduler owns the cron instance and the worker loop.
type Scheduler struct {
	job      Job
	cron     *cron.Cron
	triggers chan struct{}

	// pendingManual is set when any trigger folded into the pending run
	// was manual.
	pendingMu     sync.Mutex
	pendingManual bool

	mu    sync.Mutex
	spec  string
	entry cron.EntryID
}

// Option customises a Scheduler.
type Option func(*options)

type options struct {
	location *time.Location
}

// WithLocation evaluates the schedule in loc instead of the local zone.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.location = loc
	}
}

// ValidateSpec reports whether spec is a standard 5-field cron expression
// (descriptors such as @daily and @every are accepted too).
func ValidateSpec(spec string) error {
	if _, err := cron.ParseStandard(strings.TrimSpace(spec)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCronSpec, err)
	}
	return nil
}

// New returns a stopped scheduler running job on spec.
func New(spec string, job Job, opts ...Option) (*Scheduler, error) {
	o := options{location: time.Local}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Scheduler{
		job:      job,
		triggers: make(chan struct{}, config.ChannelBufferSize),
		cron: cron.New(
			cron.WithLocation(o.location),
			cron.WithLogger(cronLogger{}),
		),
	}
	if err := s.Reschedule(spec); err != nil {
		return nil, err
	}
	return s, nil
}

// Spec returns the active schedule.
func (s *Scheduler) Spec() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

// Next returns the next scheduled run, zero while the scheduler is stopped.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	id := s.entry
	s.mu.Unlock()
	return s.cron.Entry(id).Next
}

// Reschedule replaces the active schedule. On error the previous schedule
// stays in place.
func (s *Scheduler) Reschedule(spec string) error {
	spec = strings.TrimSpace(spec)
	if err := ValidateSpec(spec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entry != 0 && spec == s.spec {
		return nil
	}

	id, err := s.cron.AddFunc(spec, func() { s.enqueue(false) })
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCronSpec, err)
	}
	if s.entry != 0 {
		s.cron.Remove(s.entry)
		slog.Info(config.MsgReschedule,
			config.LogKeyComponent, config.CompScheduler,
			config.LogKeyOld, s.spec,
			config.LogKeyNew, spec)
	}
	s.entry = id
	s.spec = spec
	return nil
}

// TriggerNow requests an immediate manual run.
func (s *Scheduler) TriggerNow() {
	s.enqueue(true)
}

func (s *Scheduler) enqueue(manual bool) {
	s.pendingMu.Lock()
	s.pendingManual = s.pendingManual || manual
	s.pendingMu.Unlock()

	select {
	case s.triggers <- struct{}{}:
	default:
		slog.Debug(config.MsgTriggerPending,
			config.LogKeyComponent, config.CompScheduler,
			config.LogKeyManual, manual)
	}
}

// Start runs the job once, then on every tick and manual trigger until ctx
// is cancelled. It blocks; callers run it in a goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompScheduler)
	log.Info(config.MsgWorkerStart, config.LogKeySchedule, s.Spec())

	s.cron.Start()
	defer func() {
		<-s.cron.Stop().Done()
	}()

	s.job(ctx, false)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return
		case <-s.triggers:
			if ctx.Err() != nil {
				log.Info(config.MsgWorkerStop)
				return
			}
			s.job(ctx, s.takeManual())
		}
	}
}

// takeManual reports whether the run being started was requested manually
// and clears the flag for the next one.
func (s *Scheduler) takeManual() bool {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	manual := s.pendingManual
	s.pendingManual = false
	return manual
}

// cronLogger forwards cron's internal messages to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug(msg, append([]any{config.LogKeyComponent, config.CompScheduler}, keysAndValues...)...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error(msg, append([]any{config.LogKeyComponent, config.CompScheduler, config.LogKeyError, err}, keysAndValues...)...)
}
