package estimator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	odometry "github.com/milosgajdos/go-odometry"
	"github.com/milosgajdos/go-odometry/estimate"
	"github.com/milosgajdos/go-odometry/kalman"
	"github.com/milosgajdos/go-odometry/kalman/ekf"
	"github.com/milosgajdos/go-odometry/model"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// State is estimator state
type State int

const (
	// Idle means no step has been taken yet
	Idle State = iota
	// Running means at least one step has been taken
	Running
)

// String implements the Stringer interface.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures Estimator
type Option func(*Estimator)

// WithLogger sets the logger used by Run
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Estimator) {
		e.log = l
	}
}

// WithPose sets initial pose
func WithPose(p estimate.Pose) Option {
	return func(e *Estimator) {
		e.pose = p
	}
}

// WithPropagator sets covariance propagator.
// A propagator which reports its geometry must be built for the estimator geometry.
func WithPropagator(p kalman.Propagator) Option {
	return func(e *Estimator) {
		e.prop = p
	}
}

// geometer is implemented by propagators which know the robot geometry
type geometer interface {
	Geometry() model.Geometry
}

// Estimator is differential drive dead reckoning pose estimator.
//
// Pose and covariance are owned by the goroutine calling Step (or Run):
// Estimator methods must not be called concurrently.
// Only the wheel speed source is shared with producers.
type Estimator struct {
	// src provides wheel speeds
	src odometry.WheelSpeedSource
	// sink receives pose estimates
	sink odometry.PoseSink
	// m is robot kinematic model
	m *model.DiffDrive
	// prop propagates pose covariance
	prop kalman.Propagator
	// pose is estimated pose
	pose estimate.Pose
	// cov is estimated pose covariance
	cov *mat.SymDense
	// state is estimator state
	state State
	// steps counts integration steps
	steps uint64
	// log is Run logger
	log logrus.FieldLogger
}

// New creates new Estimator and returns it.
// It accepts the following parameters:
// - g:    robot geometry
// - src:  wheel speed source
// - sink: pose estimate sink
// It returns error if either of the following conditions is met:
// - g is not valid
// - src or sink is nil
// - the propagator reports geometry different from g
func New(g model.Geometry, src odometry.WheelSpeedSource, sink odometry.PoseSink, opts ...Option) (*Estimator, error) {
	m, err := model.NewDiffDrive(g)
	if err != nil {
		return nil, err
	}

	if src == nil {
		return nil, errors.New("invalid wheel speed source: nil")
	}

	if sink == nil {
		return nil, errors.New("invalid pose sink: nil")
	}

	e := &Estimator{
		src:  src,
		sink: sink,
		m:    m,
		cov:  mat.NewSymDense(3, nil),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.prop == nil {
		p, err := ekf.New(g)
		if err != nil {
			return nil, err
		}
		e.prop = p
	}

	if gp, ok := e.prop.(geometer); ok && gp.Geometry() != g {
		return nil, fmt.Errorf("propagator geometry %v does not match robot geometry %v", gp.Geometry(), g)
	}

	if e.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		e.log = l
	}

	return e, nil
}

// Step advances pose and covariance by one integration step of dt seconds
// and publishes the resulting estimate to the sink.
// Covariance and position are propagated along the heading held before the step.
// It returns *odometry.ConfigError and leaves the estimator untouched if dt is not positive.
func (e *Estimator) Step(ts time.Time, dt float64) (*estimate.PoseEstimate, error) {
	if !(dt > 0) {
		return nil, odometry.NewConfigError("step period", dt, "must be positive")
	}

	speeds := e.src.Snapshot()
	stale := !e.src.Received()

	dist, heading := e.m.Forward(speeds)

	cov, _, err := e.prop.Propagate(e.cov, e.pose.Theta, speeds, dist, dt)
	if err != nil {
		return nil, fmt.Errorf("covariance propagation failed: %w", err)
	}

	est, err := estimate.New(ts, model.Integrate(e.pose, dist, heading, dt), cov, estimate.Twist{
		Linear:  dist,
		Angular: heading,
	}, stale)
	if err != nil {
		return nil, err
	}

	e.cov = cov
	e.pose = est.Pose()
	e.state = Running
	e.steps++

	e.sink.Publish(est)

	return est, nil
}

// Run steps the estimator every time ts ticks until ctx is cancelled.
// A step in progress is always completed before Run returns.
// It returns nil when ctx is cancelled or error if either the time source or a step fails.
func (e *Estimator) Run(ctx context.Context, ts odometry.TimeSource) error {
	defer ts.Stop()

	e.log.WithField("pose", e.pose).Info("odometry started")

	warned := false
	for {
		now, dt, err := ts.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				e.log.WithField("steps", e.steps).Info("odometry stopped")
				return nil
			}
			return fmt.Errorf("time source failed: %w", err)
		}

		est, err := e.Step(now, dt)
		if err != nil {
			return err
		}

		if est.Stale() && !warned {
			e.log.Warn("no wheel speed received: integrating zero speeds")
			warned = true
		}
	}
}

// Reset resets pose to p and covariance to zero.
// Estimator returns to Idle state.
func (e *Estimator) Reset(p estimate.Pose) {
	e.pose = p
	e.cov = mat.NewSymDense(3, nil)
	e.state = Idle
	e.steps = 0
}

// Pose returns current pose
func (e *Estimator) Pose() estimate.Pose {
	return e.pose
}

// Cov returns current pose covariance
func (e *Estimator) Cov() mat.Symmetric {
	cov := mat.NewSymDense(e.cov.SymmetricDim(), nil)
	cov.CopySym(e.cov)

	return cov
}

// State returns estimator state
func (e *Estimator) State() State {
	return e.state
}

// Steps returns the number of steps taken
func (e *Estimator) Steps() uint64 {
	return e.steps
}

// Model returns kinematic model of the robot
func (e *Estimator) Model() *model.DiffDrive {
	return e.m
}
