package monitor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/fieldlayout/internal/field/layouts"
)

func TestFieldPlotterSave(t *testing.T) {
	layout, err := layouts.Load(layouts.Default)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "field.png")
	require.NoError(t, NewFieldPlotter(layout).Save(out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestFieldPlotterBadPath(t *testing.T) {
	layout, err := layouts.Load(layouts.Default)
	require.NoError(t, err)

	err = NewFieldPlotter(layout).Save(filepath.Join(t.TempDir(), "missing", "field.png"))
	assert.Error(t, err)
}
