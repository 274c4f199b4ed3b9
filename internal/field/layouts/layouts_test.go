package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/fieldlayout/internal/field"
	"github.com/banshee-data/fieldlayout/internal/geom"
)

func TestNamesIncludesDefault(t *testing.T) {
	t.Parallel()

	names := Names()
	assert.Contains(t, names, Default)
}

func TestLoadUnknownLayout(t *testing.T) {
	t.Parallel()

	_, err := Load("charged-up-2023")
	assert.True(t, field.IsNotFound(err))
}

func TestLoadDefaultLayout(t *testing.T) {
	t.Parallel()

	layout, err := Load(Default)
	require.NoError(t, err)

	assert.Equal(t, "rebuilt-2026", layout.Name())
	assert.Equal(t, 2026, layout.Season())
	assert.InDelta(t, 16.540988, layout.Length(), 1e-5)
	assert.InDelta(t, 8.069326, layout.Width(), 1e-5)
	assert.InDelta(t, 0.0508, layout.TapeWidth(), 1e-9)
	assert.InDelta(t, 0.206375, layout.FiducialSize(), 1e-9)
	assert.Equal(t, 32, layout.FiducialCount())

	// IDs are unique and contiguous in [1, 32].
	all := layout.AllFiducials()
	require.Len(t, all, 32)
	for i, f := range all {
		assert.Equal(t, i+1, f.ID)
	}
}

func TestDefaultLayoutKnownPoses(t *testing.T) {
	t.Parallel()

	layout := MustLoad(Default)

	// Tag 4 sits on the red hub ring facing up-field.
	pose, err := layout.FiducialPose(4)
	require.NoError(t, err)
	assert.InDelta(t, 445.35*0.0254, pose.Pos.X, 1e-9)
	assert.InDelta(t, 158.84*0.0254, pose.Pos.Y, 1e-9)
	assert.InDelta(t, 44.25*0.0254, pose.Pos.Z, 1e-9)
	assert.InDelta(t, 180.0, pose.Pose2().HeadingDegrees(), 1e-9)

	blue, err := layout.ElementPose("Hub", field.Blue, "front score")
	require.NoError(t, err)
	assert.InDelta(t, 146.11*0.0254, blue.X, 1e-9)
	assert.InDelta(t, 4.034536, blue.Y, 1e-5)

	// The red front score pose is the mirror of blue: the original manual
	// lists it at x = 505.11 in facing 0 degrees.
	red, err := layout.ElementPose("Hub", field.Red, "front score")
	require.NoError(t, err)
	assert.InDelta(t, 505.11*0.0254, red.X, 1e-6)
	assert.InDelta(t, blue.Y, red.Y, 1e-9)
	assert.InDelta(t, 0.0, red.HeadingDegrees(), 1e-9)
}

func TestDefaultLayoutElements(t *testing.T) {
	t.Parallel()

	layout := MustLoad(Default)

	names := make([]string, 0)
	for _, e := range layout.AllElements() {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, names,
		[]string{"Hub", "Trench", "Outpost", "Tower", "Depot", "Bump", "Starting Zone"})

	clearance, err := layout.ElementDimension("Trench", "clearance height")
	require.NoError(t, err)
	assert.InDelta(t, 22.25*0.0254, clearance, 1e-9)

	bump, err := layout.Element("Bump")
	require.NoError(t, err)
	assert.InDelta(t, 15.0, bump.Angles["ramp angle"], 1e-9)

	gp := layout.GamePiece()
	require.NotNil(t, gp)
	assert.Equal(t, "Fuel", gp.Name)
}

func TestDefaultLayoutNearestFiducial(t *testing.T) {
	t.Parallel()

	layout := MustLoad(Default)

	// A probe at the blue tower should find one of the tower tags; tag 31
	// (y = 147.47in) and tag 32 (y = 164.47in) are equidistant from the
	// midpoint, so the lower ID wins.
	probe := geom.NewPose2(0.32*0.0254, (147.47+164.47)/2*0.0254, 0)
	f, err := layout.NearestFiducial(probe)
	require.NoError(t, err)
	assert.Equal(t, 31, f.ID)
}
