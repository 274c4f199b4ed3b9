package field

import (
	"sort"
	"strconv"

	"github.com/banshee-data/fieldlayout/internal/geom"
)

// Fiducial is one validated marker with its pose in meters.
type Fiducial struct {
	ID      int        `json:"id"`
	Pose    geom.Pose3 `json:"-"`
	Element string     `json:"element,omitempty"`
}

// GamePiece is the season's game piece with converted dimensions.
type GamePiece struct {
	Name      string  `json:"name"`
	Diameter  float64 `json:"diameter"`
	WeightLbs float64 `json:"weight_lbs"`
}

// Element is one named field structure. Dimensions are meters, Angles
// degrees; Poses holds the canonical blue-side reference poses.
type Element struct {
	Name           string                `json:"name"`
	Dimensions     map[string]float64    `json:"dimensions,omitempty"`
	Angles         map[string]float64    `json:"angles_deg,omitempty"`
	Poses          map[string]geom.Pose2 `json:"poses,omitempty"`
	FiducialHeight float64               `json:"fiducial_height,omitempty"`
	Fiducials      []int                 `json:"fiducials,omitempty"`
}

func (e Element) clone() Element {
	out := Element{
		Name:           e.Name,
		FiducialHeight: e.FiducialHeight,
	}
	if e.Dimensions != nil {
		out.Dimensions = make(map[string]float64, len(e.Dimensions))
		for k, v := range e.Dimensions {
			out.Dimensions[k] = v
		}
	}
	if e.Angles != nil {
		out.Angles = make(map[string]float64, len(e.Angles))
		for k, v := range e.Angles {
			out.Angles[k] = v
		}
	}
	if e.Poses != nil {
		out.Poses = make(map[string]geom.Pose2, len(e.Poses))
		for k, v := range e.Poses {
			out.Poses[k] = v
		}
	}
	if e.Fiducials != nil {
		out.Fiducials = append([]int(nil), e.Fiducials...)
	}
	return out
}

// Layout is the validated, immutable aggregate. It is built once by Build
// and safe for any number of concurrent readers; no method mutates it.
type Layout struct {
	name          string
	season        int
	length        float64
	width         float64
	tapeWidth     float64
	fiducialSize  float64
	fiducialCount int
	gamePiece     *GamePiece

	fiducials    map[int]Fiducial
	fiducialIDs  []int
	elements     map[string]Element
	elementNames []string
}

// Name returns the layout name (e.g. "rebuilt-2026").
func (l *Layout) Name() string { return l.name }

// Season returns the season year the layout describes.
func (l *Layout) Season() int { return l.season }

// Length returns the field length in meters (the mirrored axis).
func (l *Layout) Length() float64 { return l.length }

// Width returns the field width in meters.
func (l *Layout) Width() float64 { return l.width }

// TapeWidth returns the boundary tape width in meters.
func (l *Layout) TapeWidth() float64 { return l.tapeWidth }

// FiducialSize returns the printed marker edge length in meters.
func (l *Layout) FiducialSize() float64 { return l.fiducialSize }

// FiducialCount returns the declared number of fiducials.
func (l *Layout) FiducialCount() int { return l.fiducialCount }

// GamePiece returns the season's game piece, or nil if the spec declared
// none.
func (l *Layout) GamePiece() *GamePiece {
	if l.gamePiece == nil {
		return nil
	}
	gp := *l.gamePiece
	return &gp
}

// Fiducial returns the fiducial with the given ID.
func (l *Layout) Fiducial(id int) (Fiducial, error) {
	f, ok := l.fiducials[id]
	if !ok {
		return Fiducial{}, &NotFoundError{Kind: "fiducial", Key: strconv.Itoa(id)}
	}
	return f, nil
}

// FiducialPose returns the exact stored pose of the fiducial with the
// given ID. An unknown ID is an error, never a zero pose.
func (l *Layout) FiducialPose(id int) (geom.Pose3, error) {
	f, err := l.Fiducial(id)
	if err != nil {
		return geom.Pose3{}, err
	}
	return f.Pose, nil
}

// Element returns a copy of the named element.
func (l *Layout) Element(name string) (Element, error) {
	e, ok := l.elements[name]
	if !ok {
		return Element{}, &NotFoundError{Kind: "element", Key: name}
	}
	return e.clone(), nil
}

// ElementPose returns the labeled reference pose of an element, mirrored
// to the requested alliance. Red poses are always computed from the
// canonical blue pose, so the two sides cannot drift apart.
func (l *Layout) ElementPose(name string, alliance Alliance, label string) (geom.Pose2, error) {
	e, ok := l.elements[name]
	if !ok {
		return geom.Pose2{}, &NotFoundError{Kind: "element", Key: name}
	}
	p, ok := e.Poses[label]
	if !ok {
		return geom.Pose2{}, &NotFoundError{Kind: "pose label", Key: name + "/" + label}
	}
	switch alliance {
	case Blue:
		return p, nil
	case Red:
		return geom.MirrorPose2(p, l.length), nil
	default:
		return geom.Pose2{}, &NotFoundError{Kind: "alliance", Key: string(alliance)}
	}
}

// ElementDimension returns one labeled scalar dimension of an element, in
// meters.
func (l *Layout) ElementDimension(name, label string) (float64, error) {
	e, ok := l.elements[name]
	if !ok {
		return 0, &NotFoundError{Kind: "element", Key: name}
	}
	d, ok := e.Dimensions[label]
	if !ok {
		return 0, &NotFoundError{Kind: "dimension", Key: name + "/" + label}
	}
	return d, nil
}

// Mirror reflects a planar pose to the opposite alliance.
func (l *Layout) Mirror(p geom.Pose2) geom.Pose2 {
	return geom.MirrorPose2(p, l.length)
}

// Mirror3 reflects a spatial pose to the opposite alliance.
func (l *Layout) Mirror3(p geom.Pose3) geom.Pose3 {
	return geom.MirrorPose3(p, l.length)
}

// NearestFiducial returns the fiducial closest to the probe pose by planar
// distance. Ties break to the lowest ID. The set is small, so a linear
// scan is fine. Returns a NotFoundError only when the layout has no
// fiducials at all.
func (l *Layout) NearestFiducial(p geom.Pose2) (Fiducial, error) {
	if len(l.fiducialIDs) == 0 {
		return Fiducial{}, &NotFoundError{Kind: "fiducial", Key: "any"}
	}
	var best Fiducial
	bestDist := -1.0
	// fiducialIDs is sorted ascending, so a strict < keeps the lowest ID
	// on ties.
	for _, id := range l.fiducialIDs {
		f := l.fiducials[id]
		d := geom.PlanarDistance(p, f.Pose.Pose2())
		if bestDist < 0 || d < bestDist {
			best = f
			bestDist = d
		}
	}
	return best, nil
}

// AllFiducials returns every fiducial in ascending ID order. The slice is
// a copy; callers cannot mutate the layout through it.
func (l *Layout) AllFiducials() []Fiducial {
	out := make([]Fiducial, 0, len(l.fiducialIDs))
	for _, id := range l.fiducialIDs {
		out = append(out, l.fiducials[id])
	}
	return out
}

// AllElements returns a copy of every element, sorted by name.
func (l *Layout) AllElements() []Element {
	out := make([]Element, 0, len(l.elementNames))
	for _, name := range l.elementNames {
		out = append(out, l.elements[name].clone())
	}
	return out
}

func sortedKeys(m map[string]Element) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
