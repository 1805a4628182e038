package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratish444/QuoteVault/internal/common"
	"github.com/pratish444/QuoteVault/internal/timex"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

type fakeTimers struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (f *fakeTimers) after(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTimer{d: d, f: fn}
	f.timers = append(f.timers, t)
	return t
}

func (f *fakeTimers) last() *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.timers[len(f.timers)-1]
}

func setup(t *testing.T, at time.Time) (*Daily, *fakeTimers, *timex.FixedClock, *int) {
	t.Helper()
	timers := &fakeTimers{}
	clock := timex.NewFixedClock(at)
	runs := 0
	d := NewDaily(func(context.Context) { runs++ }, WithClock(clock), WithAfterFunc(timers.after))
	return d, timers, clock, &runs
}

var morning = time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC)

func TestNextAt(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		h, m int
		want time.Time
	}{
		{"later today", morning, 8, 0, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"already passed", morning, 7, 0, time.Date(2024, 3, 2, 7, 0, 0, 0, time.UTC)},
		{"exactly now", morning, 7, 30, time.Date(2024, 3, 2, 7, 30, 0, 0, time.UTC)},
		{"month end", time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC), 6, 15, time.Date(2024, 3, 1, 6, 15, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextAt(tt.now, tt.h, tt.m))
		})
	}
}

func TestDaily_ArmSchedulesNextRun(t *testing.T) {
	d, timers, _, _ := setup(t, morning)

	require.NoError(t, d.Arm(context.Background(), 8, 0))
	assert.True(t, d.Armed())
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), d.NextRun())
	assert.Equal(t, 30*time.Minute, timers.last().d)
}

func TestDaily_ArmRejectsInvalidTime(t *testing.T) {
	d, _, _, _ := setup(t, morning)
	assert.ErrorIs(t, d.Arm(context.Background(), 24, 0), common.ErrInvalidInput)
	assert.ErrorIs(t, d.Arm(context.Background(), 8, -1), common.ErrInvalidInput)
	assert.False(t, d.Armed())
}

func TestDaily_FireRunsAndRearms(t *testing.T) {
	d, timers, clock, runs := setup(t, morning)
	require.NoError(t, d.Arm(context.Background(), 8, 0))

	clock.Set(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	timers.last().f()

	assert.Equal(t, 1, *runs)
	assert.Equal(t, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), d.NextRun())
	assert.Equal(t, 24*time.Hour, timers.last().d)
}

func TestDaily_EarlyFireStillAdvancesDay(t *testing.T) {
	d, timers, _, runs := setup(t, morning)
	require.NoError(t, d.Arm(context.Background(), 8, 0))

	timers.last().f()
	assert.Equal(t, 1, *runs)
	assert.Equal(t, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), d.NextRun())
}

func TestDaily_RearmReplaces(t *testing.T) {
	d, timers, _, runs := setup(t, morning)
	require.NoError(t, d.Arm(context.Background(), 8, 0))
	first := timers.last()

	require.NoError(t, d.Arm(context.Background(), 21, 30))
	assert.True(t, first.stopped)
	assert.Equal(t, time.Date(2024, 3, 1, 21, 30, 0, 0, time.UTC), d.NextRun())

	// a stale timer that slipped past Stop does nothing
	first.f()
	assert.Equal(t, 0, *runs)
}

func TestDaily_Cancel(t *testing.T) {
	d, timers, _, runs := setup(t, morning)
	require.NoError(t, d.Arm(context.Background(), 8, 0))
	tm := timers.last()

	d.Cancel()
	d.Cancel()
	assert.False(t, d.Armed())
	assert.True(t, d.NextRun().IsZero())
	assert.True(t, tm.stopped)

	tm.f()
	assert.Equal(t, 0, *runs)
}

func TestDaily_DoneContextDisarms(t *testing.T) {
	d, timers, _, runs := setup(t, morning)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.Arm(ctx, 8, 0))

	cancel()
	timers.last().f()
	assert.Equal(t, 0, *runs)
	assert.False(t, d.Armed())
}

func TestDaily_RealTimer(t *testing.T) {
	now := time.Now()
	fired := make(chan struct{}, 1)
	// the clock sits just before the next minute so the real timer fires fast
	target := now.Truncate(time.Minute).Add(time.Minute)
	clock := timex.NewFixedClock(target.Add(-20 * time.Millisecond))
	d := NewDaily(func(context.Context) {
		select {
		case fired <- struct{}{}:
		default:
		}
	}, WithClock(clock))

	require.NoError(t, d.Arm(context.Background(), target.Hour(), target.Minute()))
	defer d.Cancel()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
}
