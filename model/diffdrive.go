package model

import (
	"fmt"
	"math"

	"github.com/milosgajdos/go-odometry/estimate"
	"github.com/milosgajdos/go-odometry/wheel"
	"gonum.org/v1/gonum/mat"
)

// Forward maps wheel speeds to linear and angular speed of the robot.
//
//  dist    = r/2 * (right + left)
//  heading = r/l * (right - left)
//
// Both values are rates: callers scale them by the step duration.
// NaN and Inf speeds propagate into the result.
func Forward(s wheel.Speeds, g Geometry) (dist, heading float64) {
	r, l := g.WheelRadius, g.WheelSeparation

	dist = 0.5 * r * (s.Right + s.Left)
	heading = (r / l) * (s.Right - s.Left)

	return dist, heading
}

// Integrate advances pose p by one step of length dt given linear speed dist and angular speed heading.
// Position is advanced along the heading p had before the step.
func Integrate(p estimate.Pose, dist, heading, dt float64) estimate.Pose {
	return estimate.Pose{
		X:     p.X + dist*math.Cos(p.Theta)*dt,
		Y:     p.Y + dist*math.Sin(p.Theta)*dt,
		Theta: p.Theta + heading*dt,
	}
}

// DiffDrive is a kinematic model of a differential drive robot
type DiffDrive struct {
	g Geometry
}

// NewDiffDrive creates new DiffDrive model and returns it.
// It returns error if g is not valid.
func NewDiffDrive(g Geometry) (*DiffDrive, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	return &DiffDrive{g: g}, nil
}

// Geometry returns model geometry
func (d *DiffDrive) Geometry() Geometry {
	return d.g
}

// Forward returns linear and angular speed of the robot given wheel speeds s
func (d *DiffDrive) Forward(s wheel.Speeds) (float64, float64) {
	return Forward(s, d.g)
}

// Propagate propagates pose x = [x, y, theta] by dt given wheel speeds u = [left, right].
// It returns error if either x or u have invalid dimensions.
func (d *DiffDrive) Propagate(x, u mat.Vector, dt float64) (mat.Vector, error) {
	nx, nu := d.Dims()
	if u == nil || u.Len() != nu {
		return nil, fmt.Errorf("invalid input vector")
	}

	if x == nil || x.Len() != nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	dist, heading := d.Forward(wheel.Speeds{Left: u.AtVec(0), Right: u.AtVec(1)})
	p := Integrate(estimate.PoseFromVec(x), dist, heading, dt)

	return p.Vec(), nil
}

// Dims returns state and input vector dimensions
func (d *DiffDrive) Dims() (nx, nu int) {
	return 3, 2
}
