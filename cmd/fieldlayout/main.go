// Command fieldlayout builds a season field layout from an embedded or
// external spec, validates it, and serves or exports it: a JSON dump for
// other tooling, a rendered field map, or the HTTP inspection API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/banshee-data/fieldlayout/internal/field"
	"github.com/banshee-data/fieldlayout/internal/field/layouts"
	"github.com/banshee-data/fieldlayout/internal/field/monitor"
	"github.com/banshee-data/fieldlayout/internal/units"
	"github.com/banshee-data/fieldlayout/internal/version"
)

var (
	layoutName  = flag.String("layout", layouts.Default, "Embedded layout to load")
	specFile    = flag.String("spec", "", "External layout spec JSON file (overrides -layout)")
	listen      = flag.String("listen", "", "Serve the layout inspection API on this address (e.g. :8080)")
	dump        = flag.Bool("dump", false, "Print the built layout as JSON and exit")
	dumpUnits   = flag.String("units", units.Meters, "Length units for -dump output")
	plotFile    = flag.String("plot", "", "Write a field map image (.png/.svg/.pdf) and exit")
	listNames   = flag.Bool("list", false, "List embedded layouts and exit")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("fieldlayout %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}
	if *listNames {
		fmt.Println(strings.Join(layouts.Names(), "\n"))
		return
	}
	if !units.IsValid(*dumpUnits) {
		log.Fatalf("invalid units %q (valid: %s)", *dumpUnits, units.ValidUnitsString())
	}

	layout, err := loadLayout()
	if err != nil {
		// A malformed spec is a startup-fatal condition here; callers
		// embedding the library can handle the ValidationError instead.
		log.Fatalf("failed to build layout: %v", err)
	}
	log.Printf("built layout %s: %d fiducials, %d elements, field %.3fm x %.3fm",
		layout.Name(), layout.FiducialCount(), len(layout.AllElements()), layout.Length(), layout.Width())

	if *dump {
		if err := dumpLayout(layout, *dumpUnits); err != nil {
			log.Fatalf("failed to dump layout: %v", err)
		}
		return
	}
	if *plotFile != "" {
		if err := monitor.NewFieldPlotter(layout).Save(*plotFile); err != nil {
			log.Fatalf("failed to render field map: %v", err)
		}
		log.Printf("wrote field map to %s", *plotFile)
		return
	}
	if *listen == "" {
		// Validation-only run.
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ws := monitor.NewWebServer(monitor.WebServerConfig{Address: *listen, Layout: layout})
	if err := ws.Start(ctx); err != nil {
		log.Fatalf("layout server error: %v", err)
	}
}

func loadLayout() (*field.Layout, error) {
	if *specFile != "" {
		spec, err := field.LoadSpecFile(*specFile)
		if err != nil {
			return nil, err
		}
		return field.Build(spec)
	}
	return layouts.Load(*layoutName)
}

// dumpFiducial mirrors the monitor wire format, with selectable units.
type dumpFiducial struct {
	ID      int     `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	YawDeg  float64 `json:"yaw_deg"`
	Element string  `json:"element,omitempty"`
}

func dumpLayout(layout *field.Layout, lengthUnits string) error {
	fiducials := make([]dumpFiducial, 0, layout.FiducialCount())
	for _, f := range layout.AllFiducials() {
		t := f.Pose.Translation()
		fiducials = append(fiducials, dumpFiducial{
			ID:      f.ID,
			X:       units.ConvertLength(t.X, lengthUnits),
			Y:       units.ConvertLength(t.Y, lengthUnits),
			Z:       units.ConvertLength(t.Z, lengthUnits),
			YawDeg:  f.Pose.Pose2().HeadingDegrees(),
			Element: f.Element,
		})
	}

	elements := layout.AllElements()
	for i := range elements {
		e := &elements[i]
		for label, v := range e.Dimensions {
			e.Dimensions[label] = units.ConvertLength(v, lengthUnits)
		}
		for label, p := range e.Poses {
			p.X = units.ConvertLength(p.X, lengthUnits)
			p.Y = units.ConvertLength(p.Y, lengthUnits)
			e.Poses[label] = p
		}
		e.FiducialHeight = units.ConvertLength(e.FiducialHeight, lengthUnits)
	}

	out := map[string]interface{}{
		"name":      layout.Name(),
		"season":    layout.Season(),
		"units":     lengthUnits,
		"length":    units.ConvertLength(layout.Length(), lengthUnits),
		"width":     units.ConvertLength(layout.Width(), lengthUnits),
		"fiducials": fiducials,
		"elements":  elements,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
