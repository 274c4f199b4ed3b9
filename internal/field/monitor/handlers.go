package monitor

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/banshee-data/fieldlayout/internal/field"
	"github.com/banshee-data/fieldlayout/internal/geom"
	"github.com/banshee-data/fieldlayout/internal/httputil"
	"github.com/banshee-data/fieldlayout/internal/version"
)

// poseJSON is the wire form of a planar pose: meters plus a degree
// heading for readability.
type poseJSON struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	HeadingDeg float64 `json:"heading_deg"`
}

func toPoseJSON(p geom.Pose2) poseJSON {
	return poseJSON{X: p.X, Y: p.Y, HeadingDeg: p.HeadingDegrees()}
}

// fiducialJSON is the wire form of a fiducial.
type fiducialJSON struct {
	ID      int     `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	YawDeg  float64 `json:"yaw_deg"`
	Element string  `json:"element,omitempty"`
}

func toFiducialJSON(f field.Fiducial) fiducialJSON {
	t := f.Pose.Translation()
	return fiducialJSON{
		ID:      f.ID,
		X:       t.X,
		Y:       t.Y,
		Z:       t.Z,
		YawDeg:  f.Pose.Pose2().HeadingDegrees(),
		Element: f.Element,
	}
}

// writeLookupError maps layout lookup failures onto HTTP statuses.
func writeLookupError(w http.ResponseWriter, err error) {
	if field.IsNotFound(err) {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.InternalServerError(w, err.Error())
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return false
	}
	return true
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	httputil.WriteJSONOK(w, map[string]string{
		"status":   "ok",
		"version":  version.Version,
		"git_sha":  version.GitSHA,
		"instance": ws.instanceID,
		"layout":   ws.layout.Name(),
	})
}

func (ws *WebServer) handleField(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	l := ws.layout
	resp := map[string]interface{}{
		"name":           l.Name(),
		"season":         l.Season(),
		"length":         l.Length(),
		"width":          l.Width(),
		"tape_width":     l.TapeWidth(),
		"fiducial_size":  l.FiducialSize(),
		"fiducial_count": l.FiducialCount(),
	}
	if gp := l.GamePiece(); gp != nil {
		resp["game_piece"] = gp
	}
	httputil.WriteJSONOK(w, resp)
}

func (ws *WebServer) handleFiducials(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	all := ws.layout.AllFiducials()
	out := make([]fiducialJSON, 0, len(all))
	for _, f := range all {
		out = append(out, toFiducialJSON(f))
	}
	httputil.WriteJSONOK(w, out)
}

func (ws *WebServer) handleFiducial(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		httputil.BadRequest(w, "id must be an integer")
		return
	}
	f, err := ws.layout.Fiducial(id)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	httputil.WriteJSONOK(w, toFiducialJSON(f))
}

func (ws *WebServer) handleElements(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	httputil.WriteJSONOK(w, ws.layout.AllElements())
}

func (ws *WebServer) handleElementPose(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	q := r.URL.Query()
	name := q.Get("name")
	if name == "" {
		httputil.BadRequest(w, "name is required")
		return
	}
	label := q.Get("label")
	if label == "" {
		httputil.BadRequest(w, "label is required")
		return
	}
	alliance := field.Blue
	if s := q.Get("alliance"); s != "" {
		var err error
		alliance, err = field.ParseAlliance(s)
		if err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
	}
	pose, err := ws.layout.ElementPose(name, alliance, label)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	httputil.WriteJSONOK(w, toPoseJSON(pose))
}

func (ws *WebServer) handleMirror(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	p, err := parseProbePose(r, true)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.WriteJSONOK(w, toPoseJSON(ws.layout.Mirror(p)))
}

func (ws *WebServer) handleNearest(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	p, err := parseProbePose(r, false)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	f, err := ws.layout.NearestFiducial(p)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	httputil.WriteJSONOK(w, toFiducialJSON(f))
}

// parseProbePose reads x/y (meters) and optionally heading_deg query
// params.
func parseProbePose(r *http.Request, withHeading bool) (geom.Pose2, error) {
	q := r.URL.Query()
	x, err := strconv.ParseFloat(q.Get("x"), 64)
	if err != nil {
		return geom.Pose2{}, fmt.Errorf("x must be a number")
	}
	y, err := strconv.ParseFloat(q.Get("y"), 64)
	if err != nil {
		return geom.Pose2{}, fmt.Errorf("y must be a number")
	}
	headingDeg := 0.0
	if withHeading {
		if s := q.Get("heading_deg"); s != "" {
			headingDeg, err = strconv.ParseFloat(s, 64)
			if err != nil {
				return geom.Pose2{}, fmt.Errorf("heading_deg must be a number")
			}
		}
	}
	return geom.Pose2FromDegrees(x, y, headingDeg), nil
}
