package monitor

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/fieldlayout/internal/field"
)

// FieldPlotter renders a built layout to an image file: the field
// perimeter, every fiducial, and the element reference poses on both
// alliance sides. Useful for sanity-checking a new season spec before any
// robot code consumes it.
type FieldPlotter struct {
	layout *field.Layout
}

// NewFieldPlotter creates a plotter for the given layout.
func NewFieldPlotter(layout *field.Layout) *FieldPlotter {
	return &FieldPlotter{layout: layout}
}

// Save renders the field map to the given file. The format follows the
// file extension (.png, .svg, .pdf).
func (fp *FieldPlotter) Save(path string) error {
	l := fp.layout

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Field layout %s (%d)", l.Name(), l.Season())
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	// Perimeter rectangle, closed back to the origin.
	perimeter := plotter.XYs{
		{X: 0, Y: 0},
		{X: l.Length(), Y: 0},
		{X: l.Length(), Y: l.Width()},
		{X: 0, Y: l.Width()},
		{X: 0, Y: 0},
	}
	border, err := plotter.NewLine(perimeter)
	if err != nil {
		return fmt.Errorf("failed to build perimeter line: %w", err)
	}
	border.Width = vg.Points(1)
	p.Add(border)

	tags := make(plotter.XYs, 0, l.FiducialCount())
	for _, f := range l.AllFiducials() {
		t := f.Pose.Translation()
		tags = append(tags, plotter.XY{X: t.X, Y: t.Y})
	}
	tagScatter, err := plotter.NewScatter(tags)
	if err != nil {
		return fmt.Errorf("failed to build fiducial scatter: %w", err)
	}
	tagScatter.GlyphStyle.Radius = vg.Points(3)
	tagScatter.GlyphStyle.Color = color.RGBA{R: 0xd6, G: 0x28, B: 0x28, A: 0xff}
	p.Add(tagScatter)
	p.Legend.Add("fiducials", tagScatter)

	var bluePts, redPts plotter.XYs
	for _, e := range l.AllElements() {
		for _, blue := range e.Poses {
			red := l.Mirror(blue)
			bluePts = append(bluePts, plotter.XY{X: blue.X, Y: blue.Y})
			redPts = append(redPts, plotter.XY{X: red.X, Y: red.Y})
		}
	}
	if len(bluePts) > 0 {
		blueScatter, err := plotter.NewScatter(bluePts)
		if err != nil {
			return fmt.Errorf("failed to build blue pose scatter: %w", err)
		}
		blueScatter.GlyphStyle.Radius = vg.Points(2)
		blueScatter.GlyphStyle.Color = color.RGBA{R: 0x1f, G: 0x4e, B: 0xb8, A: 0xff}
		p.Add(blueScatter)
		p.Legend.Add("blue poses", blueScatter)

		redScatter, err := plotter.NewScatter(redPts)
		if err != nil {
			return fmt.Errorf("failed to build red pose scatter: %w", err)
		}
		redScatter.GlyphStyle.Radius = vg.Points(2)
		redScatter.GlyphStyle.Color = color.RGBA{R: 0xb8, G: 0x3a, B: 0x1f, A: 0xff}
		p.Add(redScatter)
		p.Legend.Add("red poses", redScatter)
	}

	// Keep the aspect ratio of the real field.
	width := 12 * vg.Inch
	height := vg.Length(float64(width) * l.Width() / l.Length())
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save field map: %w", err)
	}
	return nil
}
