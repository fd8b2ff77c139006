package diagram

import (
	"fmt"
	"math"
	"strings"
)

// TubeDiagramData holds data for drawing a sized tube cross-section
type TubeDiagramData struct {
	// Dimensions (mm)
	InnerDiam float64
	OuterDiam float64
	Thickness float64

	// Results
	SafetyMargin      float64
	DiamOverThickness float64
	Converged         bool
}

// DrawASCIITubeSection creates an ASCII representation of the tube
// cross-section, drawn to scale
func DrawASCIITubeSection(data TubeDiagramData) string {
	var sb strings.Builder

	// Character cells are roughly twice as tall as wide, so the grid uses
	// two columns per row step to keep the circles round.
	const rows = 21
	cols := rows * 2

	outerR := data.OuterDiam / 2
	innerR := data.InnerDiam / 2

	sb.WriteString("\n")
	sb.WriteString("  TUBE CROSS-SECTION\n")
	sb.WriteString("  ──────────────────\n")

	for i := 0; i < rows; i++ {
		sb.WriteString("  ")
		// Map the grid cell to section coordinates in mm.
		y := (float64(i)/float64(rows-1) - 0.5) * data.OuterDiam
		for j := 0; j < cols; j++ {
			x := (float64(j)/float64(cols-1) - 0.5) * data.OuterDiam
			r := math.Hypot(x, y)
			switch {
			case r <= outerR && r >= innerR:
				sb.WriteString("█")
			case r < innerR:
				sb.WriteString(" ")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Outer diameter: %.3f mm\n", data.OuterDiam))
	sb.WriteString(fmt.Sprintf("  Inner diameter: %.3f mm\n", data.InnerDiam))
	sb.WriteString(fmt.Sprintf("  Wall thickness: %.3f mm  (D/t = %.2f)\n", data.Thickness, data.DiamOverThickness))

	return sb.String()
}
