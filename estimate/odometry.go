package estimate

import "math"

// Quaternion is orientation quaternion
type Quaternion struct {
	X, Y, Z, W float64
}

// QuaternionFromYaw returns quaternion of a planar rotation by yaw radians
func QuaternionFromYaw(yaw float64) Quaternion {
	return Quaternion{
		Z: math.Sin(yaw / 2),
		W: math.Cos(yaw / 2),
	}
}

// Orientation returns estimated heading as a quaternion
func (e *PoseEstimate) Orientation() Quaternion {
	return QuaternionFromYaw(e.pose.Theta)
}

// odomIdx maps planar covariance elements (x, y, yaw) to the row-major
// 6x6 (x, y, z, roll, pitch, yaw) pose covariance layout.
var odomIdx = [3]int{0, 1, 5}

// OdometryCovariance returns pose covariance in the row-major 6x6
// (x, y, z, roll, pitch, yaw) layout used by odometry messages.
// Elements not estimated by the planar model are zero.
func (e *PoseEstimate) OdometryCovariance() [36]float64 {
	var out [36]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[odomIdx[i]*6+odomIdx[j]] = e.cov.At(i, j)
		}
	}

	return out
}
