// Package clock provides time sources which pace the odometry integration loop.
//
// FixedStep integrates every tick with the nominal tick period regardless of
// scheduling jitter. Measured integrates with the wall clock time elapsed
// since the previous tick. Manual is driven explicitly and is meant for tests
// and offline simulation.
package clock

import (
	"context"
	"math"
	"sync"
	"time"

	odometry "github.com/milosgajdos/go-odometry"
)

func checkPeriod(period time.Duration) error {
	if period <= 0 {
		return odometry.NewConfigError("tick period", period.Seconds(), "must be positive")
	}

	return nil
}

// FixedStep ticks periodically and reports the nominal tick period as the step length
type FixedStep struct {
	ticker *time.Ticker
	// dt is the nominal step length in seconds
	dt float64
}

// NewFixedStep creates new FixedStep time source ticking every period and returns it.
// It returns error if period is not positive.
func NewFixedStep(period time.Duration) (*FixedStep, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	return &FixedStep{
		ticker: time.NewTicker(period),
		dt:     period.Seconds(),
	}, nil
}

// NewFixedRate creates new FixedStep time source ticking rate times per second and returns it.
// Steps are exactly 1/rate seconds long even though the ticker period is rounded to nanoseconds.
// It returns error if rate is not positive and finite.
func NewFixedRate(rate float64) (*FixedStep, error) {
	if !(rate > 0) || math.IsInf(rate, 1) {
		return nil, odometry.NewConfigError("tick rate", rate, "must be positive and finite")
	}

	period := time.Duration(float64(time.Second) / rate)
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	return &FixedStep{
		ticker: time.NewTicker(period),
		dt:     1 / rate,
	}, nil
}

// Next waits for the next tick.
// It returns error if ctx is done before the tick arrives.
func (f *FixedStep) Next(ctx context.Context) (time.Time, float64, error) {
	select {
	case <-ctx.Done():
		return time.Time{}, 0, ctx.Err()
	case ts := <-f.ticker.C:
		return ts, f.dt, nil
	}
}

// Stop stops the underlying ticker
func (f *FixedStep) Stop() {
	f.ticker.Stop()
}

// Measured ticks periodically and reports the time elapsed since the previous tick as the step length
type Measured struct {
	period time.Duration
	ticker *time.Ticker
	last   time.Time
}

// NewMeasured creates new Measured time source ticking every period and returns it.
// It returns error if period is not positive.
func NewMeasured(period time.Duration) (*Measured, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	return &Measured{
		period: period,
		ticker: time.NewTicker(period),
		last:   time.Now(),
	}, nil
}

// Next waits for the next tick.
// It returns error if ctx is done before the tick arrives.
func (m *Measured) Next(ctx context.Context) (time.Time, float64, error) {
	select {
	case <-ctx.Done():
		return time.Time{}, 0, ctx.Err()
	case ts := <-m.ticker.C:
		dt := ts.Sub(m.last).Seconds()
		m.last = ts
		// ticks delivered out of order by a stalled receiver still advance time
		if dt <= 0 {
			dt = m.period.Seconds()
		}
		return ts, dt, nil
	}
}

// Stop stops the underlying ticker
func (m *Measured) Stop() {
	m.ticker.Stop()
}

// Manual is a deterministic time source advanced by explicit Tick calls
type Manual struct {
	period time.Duration
	ticks  chan struct{}

	mu  sync.Mutex
	now time.Time
}

// NewManual creates new Manual time source starting at start and advancing by period on every tick.
// It returns error if period is not positive.
func NewManual(start time.Time, period time.Duration) (*Manual, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	return &Manual{
		period: period,
		ticks:  make(chan struct{}),
		now:    start,
	}, nil
}

// Tick releases one pending Next call.
// It blocks until Next receives the tick or ctx is done.
func (m *Manual) Tick(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case m.ticks <- struct{}{}:
		return nil
	}
}

// Next waits for the next Tick call and returns the advanced time.
// It returns error if ctx is done before the tick arrives.
func (m *Manual) Next(ctx context.Context) (time.Time, float64, error) {
	select {
	case <-ctx.Done():
		return time.Time{}, 0, ctx.Err()
	case <-m.ticks:
		m.mu.Lock()
		defer m.mu.Unlock()
		m.now = m.now.Add(m.period)
		return m.now, m.period.Seconds(), nil
	}
}

// Now returns the time of the last delivered tick
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// Stop does nothing: Manual holds no resources
func (m *Manual) Stop() {}
