package monitor

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/fieldlayout/internal/httputil"
)

// handleFieldMap renders a quick scatter plot (HTML) of the fiducial set and
// element reference poses using go-echarts. This is a debugging-only
// endpoint to eyeball the layout without external tooling. Fiducials are
// colored by mounting height.
func (ws *WebServer) handleFieldMap(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	l := ws.layout

	fiducials := l.AllFiducials()
	tags := make([]opts.ScatterData, 0, len(fiducials))
	maxZ := 0.0
	for _, f := range fiducials {
		t := f.Pose.Translation()
		if t.Z > maxZ {
			maxZ = t.Z
		}
		tags = append(tags, opts.ScatterData{
			Name:  fmt.Sprintf("tag %d (%s)", f.ID, f.Element),
			Value: []interface{}{t.X, t.Y, t.Z},
		})
	}
	if maxZ == 0 {
		maxZ = 1
	}

	refs := make([]opts.ScatterData, 0)
	for _, e := range l.AllElements() {
		for label, blue := range e.Poses {
			red := l.Mirror(blue)
			refs = append(refs,
				opts.ScatterData{Name: fmt.Sprintf("%s %s (blue)", e.Name, label), Symbol: "diamond", Value: []interface{}{blue.X, blue.Y, 0.0}},
				opts.ScatterData{Name: fmt.Sprintf("%s %s (red)", e.Name, label), Symbol: "diamond", Value: []interface{}{red.X, red.Y, 0.0}},
			)
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Field Layout", Theme: "dark", Width: "1200px", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Field Layout",
			Subtitle: fmt.Sprintf("layout=%s fiducials=%d field=%.3fm x %.3fm", l.Name(), len(fiducials), l.Length(), l.Width()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: l.Length() * 1.02, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: l.Width() * 1.02, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxZ),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#31688e", "#35b779", "#fde725"}},
		}),
	)

	scatter.AddSeries("fiducials", tags, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	scatter.AddSeries("element poses", refs, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
