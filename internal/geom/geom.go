// Package geom provides the pose types and the alliance mirror transform
// used by the field layout. Positions are meters in the field frame (origin
// at the blue alliance near corner, X along the field length, Z up);
// orientations are radians internally and degrees at authoring boundaries.
package geom

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/fieldlayout/internal/units"
)

// Pose2 is a planar pose: position plus heading. Heading is radians,
// counter-clockwise from +X.
type Pose2 struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading_rad"`
}

// NewPose2 builds a Pose2 from meters and radians.
func NewPose2(x, y, heading float64) Pose2 {
	return Pose2{X: x, Y: y, Heading: heading}
}

// Pose2FromDegrees builds a Pose2 from meters and a heading in degrees.
func Pose2FromDegrees(x, y, headingDeg float64) Pose2 {
	return Pose2{X: x, Y: y, Heading: units.DegreesToRadians(headingDeg)}
}

// HeadingDegrees returns the heading in degrees for authoring round-trips.
func (p Pose2) HeadingDegrees() float64 {
	return units.RadiansToDegrees(p.Heading)
}

// Pose3 is a full spatial pose. Position is an r3 vector in meters; the
// orientation is a unit quaternion.
type Pose3 struct {
	Pos r3.Vec
	Rot quat.Number
}

// NewPose3 builds a Pose3 from meters and ZYX Euler angles in radians.
func NewPose3(x, y, z, roll, pitch, yaw float64) Pose3 {
	return Pose3{
		Pos: r3.Vec{X: x, Y: y, Z: z},
		Rot: QuatFromEuler(roll, pitch, yaw),
	}
}

// Pose3FromDegrees builds a Pose3 from meters and Euler angles in degrees.
func Pose3FromDegrees(x, y, z, rollDeg, pitchDeg, yawDeg float64) Pose3 {
	return NewPose3(x, y, z,
		units.DegreesToRadians(rollDeg),
		units.DegreesToRadians(pitchDeg),
		units.DegreesToRadians(yawDeg))
}

// Translation returns the position vector.
func (p Pose3) Translation() r3.Vec { return p.Pos }

// Roll returns the rotation about +X in radians.
func (p Pose3) Roll() float64 {
	q := p.Rot
	return math.Atan2(2*(q.Real*q.Imag+q.Jmag*q.Kmag), 1-2*(q.Imag*q.Imag+q.Jmag*q.Jmag))
}

// Pitch returns the rotation about +Y in radians.
func (p Pose3) Pitch() float64 {
	q := p.Rot
	s := 2 * (q.Real*q.Jmag - q.Kmag*q.Imag)
	// Clamp to guard the asin domain at gimbal lock.
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return math.Asin(s)
}

// Yaw returns the rotation about +Z in radians.
func (p Pose3) Yaw() float64 {
	q := p.Rot
	return math.Atan2(2*(q.Real*q.Kmag+q.Imag*q.Jmag), 1-2*(q.Jmag*q.Jmag+q.Kmag*q.Kmag))
}

// Pose2 projects the pose onto the floor, keeping only yaw.
func (p Pose3) Pose2() Pose2 {
	return Pose2{X: p.Pos.X, Y: p.Pos.Y, Heading: p.Yaw()}
}

// QuatFromEuler converts intrinsic ZYX Euler angles (radians) to a unit
// quaternion.
func QuatFromEuler(roll, pitch, yaw float64) quat.Number {
	cr, sr := math.Cos(roll/2), math.Sin(roll/2)
	cp, sp := math.Cos(pitch/2), math.Sin(pitch/2)
	cy, sy := math.Cos(yaw/2), math.Sin(yaw/2)
	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}

// NormalizeAngle wraps an angle in radians to (-pi, pi].
func NormalizeAngle(rad float64) float64 {
	wrapped := math.Mod(rad, 2*math.Pi)
	if wrapped > math.Pi {
		wrapped -= 2 * math.Pi
	} else if wrapped <= -math.Pi {
		wrapped += 2 * math.Pi
	}
	return wrapped
}

// MirrorPose2 reflects a pose across the field's mid-plane (x = length/2):
// x' = length - x, y' = y, and the heading's X component is negated so that
// a pose facing down-field on blue faces down-field on red. The transform is
// its own inverse.
func MirrorPose2(p Pose2, fieldLength float64) Pose2 {
	return Pose2{
		X:       fieldLength - p.X,
		Y:       p.Y,
		Heading: NormalizeAngle(math.Pi - p.Heading),
	}
}

// MirrorPose3 is MirrorPose2 lifted to a spatial pose: elevation and pitch
// are preserved, roll is negated along with the heading's X component.
func MirrorPose3(p Pose3, fieldLength float64) Pose3 {
	return NewPose3(
		fieldLength-p.Pos.X,
		p.Pos.Y,
		p.Pos.Z,
		NormalizeAngle(-p.Roll()),
		p.Pitch(),
		NormalizeAngle(math.Pi-p.Yaw()),
	)
}

// PlanarDistance returns the floor-plane distance between two poses.
func PlanarDistance(a, b Pose2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Distance returns the Euclidean distance between two spatial poses.
func Distance(a, b Pose3) float64 {
	return r3.Norm(r3.Sub(a.Pos, b.Pos))
}
