package sink

import (
	"sync"
	"sync/atomic"

	odometry "github.com/milosgajdos/go-odometry"
	"github.com/milosgajdos/go-odometry/estimate"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Func is an adapter which allows to use ordinary functions as pose sinks
type Func func(*estimate.PoseEstimate)

// Publish calls f(e)
func (f Func) Publish(e *estimate.PoseEstimate) {
	f(e)
}

// Discard drops all estimates
var Discard odometry.PoseSink = Func(func(*estimate.PoseEstimate) {})

// Tee publishes estimates to all of its sinks in order
type Tee []odometry.PoseSink

// Publish publishes e to all sinks
func (t Tee) Publish(e *estimate.PoseEstimate) {
	for _, s := range t {
		s.Publish(e)
	}
}

// WrapHeading wraps estimate heading into [-Pi, Pi] before passing it on to next.
// The estimator keeps integrating the unwrapped heading.
func WrapHeading(next odometry.PoseSink) odometry.PoseSink {
	return Func(func(e *estimate.PoseEstimate) {
		next.Publish(e.WithWrappedHeading())
	})
}

// Channel is a buffered pose sink.
// Publish never blocks: estimates are dropped when the buffer is full.
type Channel struct {
	c       chan *estimate.PoseEstimate
	dropped atomic.Uint64
}

// NewChannel creates new Channel sink with buffer of size n and returns it.
func NewChannel(n int) *Channel {
	if n < 0 {
		n = 0
	}

	return &Channel{
		c: make(chan *estimate.PoseEstimate, n),
	}
}

// Publish queues e or drops it if the buffer is full
func (c *Channel) Publish(e *estimate.PoseEstimate) {
	select {
	case c.c <- e:
	default:
		c.dropped.Add(1)
	}
}

// C returns the channel estimates are delivered on
func (c *Channel) C() <-chan *estimate.PoseEstimate {
	return c.c
}

// Dropped returns the number of dropped estimates
func (c *Channel) Dropped() uint64 {
	return c.dropped.Load()
}

// Close closes the estimate channel.
// Publish must not be called after Close.
func (c *Channel) Close() {
	close(c.c)
}

// Recorder records all published estimates
type Recorder struct {
	mu  sync.RWMutex
	est []*estimate.PoseEstimate
}

// NewRecorder creates new Recorder and returns it
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Publish records e
func (r *Recorder) Publish(e *estimate.PoseEstimate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.est = append(r.est, e)
}

// Len returns the number of recorded estimates
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.est)
}

// Estimates returns recorded estimates
func (r *Recorder) Estimates() []*estimate.PoseEstimate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	est := make([]*estimate.PoseEstimate, len(r.est))
	copy(est, r.est)

	return est
}

// Last returns the last recorded estimate or nil if nothing has been recorded
func (r *Recorder) Last() *estimate.PoseEstimate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.est) == 0 {
		return nil
	}

	return r.est[len(r.est)-1]
}

// Trajectory returns recorded positions as a matrix with x in the first and y in the second column.
// It returns nil if nothing has been recorded.
func (r *Recorder) Trajectory() *mat.Dense {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.est) == 0 {
		return nil
	}

	m := mat.NewDense(len(r.est), 2, nil)
	for i, e := range r.est {
		p := e.Pose()
		m.SetRow(i, []float64{p.X, p.Y})
	}

	return m
}

// Logger logs published estimates
type Logger struct {
	log   logrus.FieldLogger
	level logrus.Level
}

// NewLogger creates new Logger sink which logs estimates with l at the given level
func NewLogger(l logrus.FieldLogger, level logrus.Level) *Logger {
	return &Logger{
		log:   l,
		level: level,
	}
}

// Publish logs e
func (l *Logger) Publish(e *estimate.PoseEstimate) {
	p := e.Pose()
	cov := e.Cov()

	entry := l.log.WithFields(logrus.Fields{
		"x":       p.X,
		"y":       p.Y,
		"theta":   p.Theta,
		"linear":  e.LinearVelocity(),
		"angular": e.AngularVelocity(),
		"var_x":   cov.At(0, 0),
		"var_y":   cov.At(1, 1),
		"var_th":  cov.At(2, 2),
		"stale":   e.Stale(),
	})

	entry.Log(l.level, "pose")
}
