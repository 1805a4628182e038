// Package scheduler fires a job once a day at a local wall-clock time.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pratish444/QuoteVault/internal/common"
	"github.com/pratish444/QuoteVault/internal/logging"
	"github.com/pratish444/QuoteVault/internal/timex"
)

// Job is run at each trigger.
type Job func(ctx context.Context)

// Timer is the part of *time.Timer the scheduler uses.
type Timer interface {
	Stop() bool
}

// AfterFunc starts a timer that calls f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func systemAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Daily runs a Job at the next HH:MM and re-arms itself for the following
// day after every run. It is safe for concurrent use.
type Daily struct {
	job   Job
	clock timex.Clock
	after AfterFunc
	log   logging.Logger

	mu           sync.Mutex
	ctx          context.Context
	timer        Timer
	next         time.Time
	hour, minute int
	gen          int
}

type Option func(*Daily)

func WithClock(c timex.Clock) Option { return func(d *Daily) { d.clock = c } }

func WithAfterFunc(f AfterFunc) Option { return func(d *Daily) { d.after = f } }

func WithLogger(l logging.Logger) Option { return func(d *Daily) { d.log = l } }

func NewDaily(job Job, opts ...Option) *Daily {
	d := &Daily{
		job:   job,
		clock: timex.SystemClock{},
		after: systemAfterFunc,
		log:   logging.Nop(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Arm schedules the job at hour:minute local time, replacing any previous
// arming. ctx is passed to every run; the trigger stops when it is done.
func (d *Daily) Arm(ctx context.Context, hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("%w: trigger time %02d:%02d", common.ErrInvalidInput, hour, minute)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.ctx = ctx
	d.hour, d.minute = hour, minute
	d.scheduleLocked(d.clock.Now())
	d.log.Info(ctx, "daily trigger armed", "next_run", d.next.Format(time.RFC3339))
	return nil
}

// Cancel disarms the trigger. It is a no-op when not armed.
func (d *Daily) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// Armed reports whether a run is scheduled.
func (d *Daily) Armed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// NextRun returns the scheduled run time, or the zero time when disarmed.
func (d *Daily) NextRun() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.next
}

func (d *Daily) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = nil
	d.next = time.Time{}
	d.gen++
}

// scheduleLocked arms the timer for the first HH:MM strictly after base.
func (d *Daily) scheduleLocked(base time.Time) {
	now := d.clock.Now()
	d.next = NextAt(base, d.hour, d.minute)
	gen := d.gen
	d.timer = d.after(d.next.Sub(now), func() { d.fire(gen) })
}

func (d *Daily) fire(gen int) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	ctx, scheduled := d.ctx, d.next
	d.mu.Unlock()

	if ctx.Err() != nil {
		d.Cancel()
		return
	}

	d.log.Debug(ctx, "daily trigger fired", "scheduled", scheduled.Format(time.RFC3339))
	d.job(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen || ctx.Err() != nil {
		return
	}
	base := d.clock.Now()
	if base.Before(scheduled) {
		base = scheduled
	}
	d.scheduleLocked(base)
}

// NextAt returns the first hour:minute in t's location strictly after t.
func NextAt(t time.Time, hour, minute int) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
	if !next.After(t) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
