package odometry

import (
	"context"
	"time"

	"github.com/milosgajdos/go-odometry/estimate"
	"github.com/milosgajdos/go-odometry/wheel"
	"gonum.org/v1/gonum/mat"
)

// WheelSpeedSource provides the latest wheel angular speeds
type WheelSpeedSource interface {
	// Snapshot returns the latest left and right wheel speeds
	Snapshot() wheel.Speeds
	// Received reports whether any wheel speed sample has been received
	Received() bool
}

// PoseSink consumes pose estimates.
// Publish must not block the caller for longer than it takes to hand the estimate off.
type PoseSink interface {
	// Publish hands the estimate over to the sink
	Publish(*estimate.PoseEstimate)
}

// TimeSource paces the integration loop
type TimeSource interface {
	// Next blocks until the next step is due.
	// It returns the step timestamp and the integration period in seconds.
	Next(ctx context.Context) (time.Time, float64, error)
	// Stop releases any resources held by the time source
	Stop()
}

// Noise is wheel speed noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
	// Reset resets the noise
	Reset() error
}
