package field

import (
	"fmt"
	"math"
	"sort"

	"github.com/banshee-data/fieldlayout/internal/geom"
	"github.com/banshee-data/fieldlayout/internal/units"
)

// mirrorToleranceMeters bounds the position error allowed when a spec
// carries explicit red-side poses for cross-checking against the mirror
// transform.
const mirrorToleranceMeters = 1e-6

// mirrorToleranceRadians bounds the corresponding heading error.
const mirrorToleranceRadians = 1e-6

// Build validates a layout spec and constructs the immutable Layout.
// Construction is atomic: any violation returns a ValidationError and no
// layout. Violations covered: non-positive field dimensions, negative
// lengths, duplicate element names or pose labels, duplicate fiducial IDs,
// IDs outside [1, FiducialCount], a fiducial set that does not cover the
// declared count, fiducials or red cross-check poses referencing nothing,
// and red poses that disagree with the mirror transform.
func Build(spec *LayoutSpec) (*Layout, error) {
	if spec == nil {
		return nil, validationErrorf("spec", "spec is nil")
	}
	if spec.FieldLengthIn <= 0 {
		return nil, validationErrorf("field", "field length must be positive, got %v in", spec.FieldLengthIn)
	}
	if spec.FieldWidthIn <= 0 {
		return nil, validationErrorf("field", "field width must be positive, got %v in", spec.FieldWidthIn)
	}
	if spec.TapeWidthIn < 0 {
		return nil, validationErrorf("field", "tape width must be non-negative, got %v in", spec.TapeWidthIn)
	}
	if spec.FiducialSizeIn < 0 {
		return nil, validationErrorf("field", "fiducial size must be non-negative, got %v in", spec.FiducialSizeIn)
	}
	if spec.FiducialCount < 0 {
		return nil, validationErrorf("field", "fiducial count must be non-negative, got %d", spec.FiducialCount)
	}

	l := &Layout{
		name:          spec.Name,
		season:        spec.Season,
		length:        units.InchesToMeters(spec.FieldLengthIn),
		width:         units.InchesToMeters(spec.FieldWidthIn),
		tapeWidth:     units.InchesToMeters(spec.TapeWidthIn),
		fiducialSize:  units.InchesToMeters(spec.FiducialSizeIn),
		fiducialCount: spec.FiducialCount,
		fiducials:     make(map[int]Fiducial, len(spec.Fiducials)),
		elements:      make(map[string]Element, len(spec.Elements)),
	}

	if spec.GamePiece != nil {
		if spec.GamePiece.DiameterIn < 0 {
			return nil, validationErrorf("game piece", "diameter must be non-negative, got %v in", spec.GamePiece.DiameterIn)
		}
		l.gamePiece = &GamePiece{
			Name:      spec.GamePiece.Name,
			Diameter:  units.InchesToMeters(spec.GamePiece.DiameterIn),
			WeightLbs: spec.GamePiece.WeightLbs,
		}
	}

	for _, es := range spec.Elements {
		e, err := buildElement(es, l.length)
		if err != nil {
			return nil, err
		}
		if _, exists := l.elements[e.Name]; exists {
			return nil, validationErrorf(fmt.Sprintf("element %q", e.Name), "duplicate element name")
		}
		l.elements[e.Name] = e
	}
	l.elementNames = sortedKeys(l.elements)

	for _, fs := range spec.Fiducials {
		subject := fmt.Sprintf("fiducial %d", fs.ID)
		if fs.ID < 1 || fs.ID > spec.FiducialCount {
			return nil, validationErrorf(subject, "id outside declared range [1, %d]", spec.FiducialCount)
		}
		if _, exists := l.fiducials[fs.ID]; exists {
			return nil, validationErrorf(subject, "duplicate id")
		}
		if fs.ZIn < 0 {
			return nil, validationErrorf(subject, "mounting height must be non-negative, got %v in", fs.ZIn)
		}
		if fs.Element != "" {
			if _, ok := l.elements[fs.Element]; !ok {
				return nil, validationErrorf(subject, "references unknown element %q", fs.Element)
			}
		}
		l.fiducials[fs.ID] = Fiducial{
			ID: fs.ID,
			Pose: geom.Pose3FromDegrees(
				units.InchesToMeters(fs.XIn),
				units.InchesToMeters(fs.YIn),
				units.InchesToMeters(fs.ZIn),
				0, 0, fs.YawDeg),
			Element: fs.Element,
		}
	}

	// Uniqueness plus the range check above makes a full set contiguous,
	// so only the count can still be wrong.
	if len(l.fiducials) != spec.FiducialCount {
		return nil, validationErrorf("fiducials",
			"spec declares %d fiducials but defines %d", spec.FiducialCount, len(l.fiducials))
	}

	// Element fiducial references can only be checked once the fiducial
	// set is complete.
	for _, name := range l.elementNames {
		for _, id := range l.elements[name].Fiducials {
			if _, ok := l.fiducials[id]; !ok {
				return nil, validationErrorf(fmt.Sprintf("element %q", name), "references unknown fiducial %d", id)
			}
		}
	}

	l.fiducialIDs = make([]int, 0, len(l.fiducials))
	for id := range l.fiducials {
		l.fiducialIDs = append(l.fiducialIDs, id)
	}
	sort.Ints(l.fiducialIDs)

	return l, nil
}

func buildElement(es ElementSpec, fieldLength float64) (Element, error) {
	subject := fmt.Sprintf("element %q", es.Name)
	if es.Name == "" {
		return Element{}, validationErrorf("element", "element name must not be empty")
	}
	if es.FiducialHeightIn < 0 {
		return Element{}, validationErrorf(subject, "fiducial height must be non-negative, got %v in", es.FiducialHeightIn)
	}

	e := Element{
		Name:           es.Name,
		FiducialHeight: units.InchesToMeters(es.FiducialHeightIn),
	}
	if len(es.Dimensions) > 0 {
		e.Dimensions = make(map[string]float64, len(es.Dimensions))
		for label, inches := range es.Dimensions {
			if inches < 0 {
				return Element{}, validationErrorf(subject, "dimension %q must be non-negative, got %v in", label, inches)
			}
			e.Dimensions[label] = units.InchesToMeters(inches)
		}
	}
	if len(es.Angles) > 0 {
		e.Angles = make(map[string]float64, len(es.Angles))
		for label, deg := range es.Angles {
			e.Angles[label] = deg
		}
	}
	if len(es.Poses) > 0 {
		e.Poses = make(map[string]geom.Pose2, len(es.Poses))
		for _, ps := range es.Poses {
			if _, exists := e.Poses[ps.Label]; exists {
				return Element{}, validationErrorf(subject, "duplicate pose label %q", ps.Label)
			}
			e.Poses[ps.Label] = geom.Pose2FromDegrees(
				units.InchesToMeters(ps.XIn),
				units.InchesToMeters(ps.YIn),
				ps.HeadingDeg)
		}
	}
	if len(es.Fiducials) > 0 {
		e.Fiducials = append([]int(nil), es.Fiducials...)
	}

	// Red-side poses are never stored; when a spec carries them they are
	// verified against the mirror of the canonical blue pose and dropped.
	for _, rp := range es.RedPoses {
		blue, ok := e.Poses[rp.Label]
		if !ok {
			return Element{}, validationErrorf(subject, "red pose %q is missing its blue mirror pose", rp.Label)
		}
		want := geom.MirrorPose2(blue, fieldLength)
		got := geom.Pose2FromDegrees(
			units.InchesToMeters(rp.XIn),
			units.InchesToMeters(rp.YIn),
			rp.HeadingDeg)
		if math.Abs(got.X-want.X) > mirrorToleranceMeters ||
			math.Abs(got.Y-want.Y) > mirrorToleranceMeters {
			return Element{}, validationErrorf(subject,
				"red pose %q at (%.6f, %.6f) disagrees with mirror of blue pose (%.6f, %.6f)",
				rp.Label, got.X, got.Y, want.X, want.Y)
		}
		if math.Abs(geom.NormalizeAngle(got.Heading-want.Heading)) > mirrorToleranceRadians {
			return Element{}, validationErrorf(subject,
				"red pose %q heading %.4f deg disagrees with mirrored heading %.4f deg",
				rp.Label, got.HeadingDegrees(), want.HeadingDegrees())
		}
	}

	return e, nil
}
