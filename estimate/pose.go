package estimate

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Pose is planar robot pose
type Pose struct {
	// X is x position in meters
	X float64
	// Y is y position in meters
	Y float64
	// Theta is heading in radians. It is not wrapped.
	Theta float64
}

// PoseFromVec creates Pose from the first three elements of v.
// It panics if v has fewer than three elements.
func PoseFromVec(v mat.Vector) Pose {
	return Pose{
		X:     v.AtVec(0),
		Y:     v.AtVec(1),
		Theta: v.AtVec(2),
	}
}

// Vec returns pose as a vector [x, y, theta]
func (p Pose) Vec() *mat.VecDense {
	return mat.NewVecDense(3, []float64{p.X, p.Y, p.Theta})
}

// Twist is robot velocity
type Twist struct {
	// Linear is linear velocity in m/s
	Linear float64
	// Angular is angular velocity in rad/s
	Angular float64
}

// PoseEstimate is the pose estimate produced by one integration step.
// It is never modified once created.
type PoseEstimate struct {
	// ts is estimate timestamp
	ts time.Time
	// pose is estimated pose
	pose Pose
	// cov is estimated pose covariance
	cov *mat.SymDense
	// twist is robot velocity during the step
	twist Twist
	// stale is set when the estimate was computed without any wheel speed input
	stale bool
}

// New creates new PoseEstimate and returns it.
// If cov is nil, the estimate covariance is zero.
// It returns error if cov is not a 3x3 matrix.
func New(ts time.Time, pose Pose, cov mat.Symmetric, twist Twist, stale bool) (*PoseEstimate, error) {
	c := mat.NewSymDense(3, nil)
	if cov != nil {
		if n := cov.SymmetricDim(); n != 3 {
			return nil, fmt.Errorf("invalid covariance dimensions: [%d x %d]", n, n)
		}
		c.CopySym(cov)
	}

	return &PoseEstimate{
		ts:    ts,
		pose:  pose,
		cov:   c,
		twist: twist,
		stale: stale,
	}, nil
}

// Timestamp returns estimate timestamp
func (e *PoseEstimate) Timestamp() time.Time {
	return e.ts
}

// Pose returns estimated pose
func (e *PoseEstimate) Pose() Pose {
	return e.pose
}

// Val returns estimated pose as a vector [x, y, theta]
func (e *PoseEstimate) Val() mat.Vector {
	return e.pose.Vec()
}

// Cov returns pose covariance estimate
func (e *PoseEstimate) Cov() mat.Symmetric {
	cov := mat.NewSymDense(e.cov.SymmetricDim(), nil)
	cov.CopySym(e.cov)

	return cov
}

// Twist returns robot velocity
func (e *PoseEstimate) Twist() Twist {
	return e.twist
}

// LinearVelocity returns robot linear velocity
func (e *PoseEstimate) LinearVelocity() float64 {
	return e.twist.Linear
}

// AngularVelocity returns robot angular velocity
func (e *PoseEstimate) AngularVelocity() float64 {
	return e.twist.Angular
}

// Stale reports whether no wheel speed had been received when the estimate was computed
func (e *PoseEstimate) Stale() bool {
	return e.stale
}

// WithWrappedHeading returns a copy of the estimate with heading wrapped into [-Pi, Pi].
func (e *PoseEstimate) WithWrappedHeading() *PoseEstimate {
	pose := e.pose
	pose.Theta = WrapAngle(pose.Theta)

	return &PoseEstimate{
		ts:    e.ts,
		pose:  pose,
		cov:   e.cov,
		twist: e.twist,
		stale: e.stale,
	}
}

// String implements the Stringer interface.
func (e *PoseEstimate) String() string {
	return fmt.Sprintf("PoseEstimate{\nPose=%+v\nTwist=%+v\nCov=%v\n}",
		e.pose, e.twist, mat.Formatted(e.cov, mat.Prefix("    "), mat.Squeeze()))
}

// WrapAngle wraps angle a into [-Pi, Pi]
func WrapAngle(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}
