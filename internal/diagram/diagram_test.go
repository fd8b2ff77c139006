package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() TubeDiagramData {
	return TubeDiagramData{
		InnerDiam:         74.0,
		OuterDiam:         80.3,
		Thickness:         3.15,
		SafetyMargin:      0.05,
		DiamOverThickness: 25.0,
		Converged:         true,
	}
}

func TestDrawASCIITubeSection(t *testing.T) {
	out := DrawASCIITubeSection(sampleData())

	assert.Contains(t, out, "TUBE CROSS-SECTION")
	assert.Contains(t, out, "Outer diameter: 80.300 mm")
	assert.Contains(t, out, "Inner diameter: 74.000 mm")
	assert.Contains(t, out, "D/t = 25.00")
	assert.Contains(t, out, "█", "wall must be drawn")

	// A thin-walled tube leaves a hollow interior on the middle row.
	middle := strings.Split(out, "\n")[3+10]
	assert.Contains(t, middle, "█ ")
}

func TestExportTubeDiagram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "section.png")

	require.NoError(t, ExportTubeDiagram(sampleData(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportTubeDiagramRejectsUnknownFormat(t *testing.T) {
	err := ExportTubeDiagram(sampleData(), filepath.Join(t.TempDir(), "section.bmp"))
	assert.Error(t, err)
}
