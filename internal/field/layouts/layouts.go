// Package layouts holds the embedded season layout specs. Each season is
// one JSON document in the spec format of the field package; swapping
// seasons is a data change, not a code change.
package layouts

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/banshee-data/fieldlayout/internal/field"
)

//go:embed *.json
var specFiles embed.FS

// Default is the layout for the current season.
const Default = "rebuilt-2026"

// Names lists the embedded layout names, sorted.
func Names() []string {
	entries, err := fs.ReadDir(specFiles, ".")
	if err != nil {
		// The embedded FS is part of the binary; a read failure is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded layout specs unreadable: %v", err))
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// Load builds the named embedded layout.
func Load(name string) (*field.Layout, error) {
	data, err := specFiles.ReadFile(name + ".json")
	if err != nil {
		return nil, &field.NotFoundError{Kind: "layout", Key: name}
	}
	spec, err := field.ParseSpec(data)
	if err != nil {
		return nil, fmt.Errorf("embedded layout %q: %w", name, err)
	}
	layout, err := field.Build(spec)
	if err != nil {
		return nil, fmt.Errorf("embedded layout %q: %w", name, err)
	}
	return layout, nil
}

// MustLoad is Load for process startup, where a broken embedded spec is
// fatal.
func MustLoad(name string) *field.Layout {
	layout, err := Load(name)
	if err != nil {
		panic(err)
	}
	return layout
}
