package geom

import (
	"math"
	"testing"
)

const fieldLength = 16.540988 // 651.22in

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMirrorPose2Origin(t *testing.T) {
	got := MirrorPose2(NewPose2(0, 0, 0), fieldLength)
	if !almostEqual(got.X, fieldLength, 1e-12) || !almostEqual(got.Y, 0, 1e-12) {
		t.Errorf("mirrored origin position = (%f, %f), want (%f, 0)", got.X, got.Y, fieldLength)
	}
	if !almostEqual(got.HeadingDegrees(), 180, 1e-9) {
		t.Errorf("mirrored origin heading = %f deg, want 180", got.HeadingDegrees())
	}
}

func TestMirrorPose2Involution(t *testing.T) {
	poses := []Pose2{
		NewPose2(0, 0, 0),
		Pose2FromDegrees(3.711194, 4.034536, 180),
		Pose2FromDegrees(16.533348, 7.187438, 180),
		Pose2FromDegrees(1.2, 2.4, -90),
		Pose2FromDegrees(8.27, 4.03, 45),
		Pose2FromDegrees(15.9, 0.1, 359),
	}
	for _, p := range poses {
		got := MirrorPose2(MirrorPose2(p, fieldLength), fieldLength)
		if !almostEqual(got.X, p.X, 1e-9) || !almostEqual(got.Y, p.Y, 1e-9) {
			t.Errorf("double mirror of %+v moved to %+v", p, got)
		}
		if !almostEqual(NormalizeAngle(got.Heading-p.Heading), 0, 1e-9) {
			t.Errorf("double mirror of %+v rotated to heading %f", p, got.Heading)
		}
	}
}

func TestMirrorPose2HeadingReflection(t *testing.T) {
	tests := []struct {
		name       string
		headingDeg float64
		wantDeg    float64
	}{
		{"down-field", 0, 180},
		{"up-field", 180, 0},
		{"toward far wall", 90, 90},
		{"toward near wall", -90, -90},
		{"diagonal", 45, 135},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MirrorPose2(Pose2FromDegrees(1, 1, tt.headingDeg), fieldLength)
			if !almostEqual(NormalizeAngle(got.Heading-degToRad(tt.wantDeg)), 0, 1e-9) {
				t.Errorf("mirror heading of %f deg = %f deg, want %f", tt.headingDeg, got.HeadingDegrees(), tt.wantDeg)
			}
		})
	}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func TestMirrorPose3(t *testing.T) {
	p := Pose3FromDegrees(4.647446, 4.424426, 1.12395, 0, 0, 90)
	got := MirrorPose3(p, fieldLength)

	if !almostEqual(got.Pos.X, fieldLength-p.Pos.X, 1e-9) {
		t.Errorf("mirrored X = %f, want %f", got.Pos.X, fieldLength-p.Pos.X)
	}
	if !almostEqual(got.Pos.Y, p.Pos.Y, 1e-12) || !almostEqual(got.Pos.Z, p.Pos.Z, 1e-12) {
		t.Errorf("mirror moved Y or Z: %+v", got.Pos)
	}
	if !almostEqual(got.Yaw(), math.Pi/2, 1e-9) {
		t.Errorf("mirrored yaw = %f, want pi/2", got.Yaw())
	}

	back := MirrorPose3(got, fieldLength)
	if Distance(back, p) > 1e-9 {
		t.Errorf("double mirror moved position by %f", Distance(back, p))
	}
	if !almostEqual(NormalizeAngle(back.Yaw()-p.Yaw()), 0, 1e-9) {
		t.Errorf("double mirror changed yaw: %f vs %f", back.Yaw(), p.Yaw())
	}
}

func TestEulerQuaternionRoundTrip(t *testing.T) {
	tests := []struct {
		name             string
		roll, pitch, yaw float64
	}{
		{"identity", 0, 0, 0},
		{"yaw only", 0, 0, math.Pi / 2},
		{"yaw 180", 0, 0, math.Pi},
		{"negative yaw", 0, 0, -math.Pi / 3},
		{"roll and pitch", 0.2, -0.4, 1.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPose3(0, 0, 0, tt.roll, tt.pitch, tt.yaw)
			if !almostEqual(p.Roll(), tt.roll, 1e-9) {
				t.Errorf("roll = %f, want %f", p.Roll(), tt.roll)
			}
			if !almostEqual(p.Pitch(), tt.pitch, 1e-9) {
				t.Errorf("pitch = %f, want %f", p.Pitch(), tt.pitch)
			}
			if !almostEqual(NormalizeAngle(p.Yaw()-tt.yaw), 0, 1e-9) {
				t.Errorf("yaw = %f, want %f", p.Yaw(), tt.yaw)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{4 * math.Pi, 0},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); !almostEqual(got, tt.want, 1e-12) {
			t.Errorf("NormalizeAngle(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestPose3FloorProjection(t *testing.T) {
	p := Pose3FromDegrees(1.5, 2.5, 0.5525, 0, 0, 270)
	flat := p.Pose2()
	if flat.X != 1.5 || flat.Y != 2.5 {
		t.Errorf("projection position = (%f, %f)", flat.X, flat.Y)
	}
	if !almostEqual(NormalizeAngle(flat.Heading-degToRad(-90)), 0, 1e-9) {
		t.Errorf("projection heading = %f deg, want -90", flat.HeadingDegrees())
	}
}

func TestDistances(t *testing.T) {
	a := NewPose3(0, 0, 0, 0, 0, 0)
	b := NewPose3(3, 4, 12, 0, 0, 0)
	if !almostEqual(Distance(a, b), 13, 1e-12) {
		t.Errorf("Distance = %f, want 13", Distance(a, b))
	}
	if !almostEqual(PlanarDistance(a.Pose2(), b.Pose2()), 5, 1e-12) {
		t.Errorf("PlanarDistance = %f, want 5", PlanarDistance(a.Pose2(), b.Pose2()))
	}
}
