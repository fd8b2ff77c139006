package diagram

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ExportTubeDiagram exports the tube cross-section to an image file.
// Supported formats follow the file extension: png, svg, pdf.
func ExportTubeDiagram(data TubeDiagramData, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".svg", ".pdf":
	default:
		return fmt.Errorf("unsupported diagram format %q (use png, svg or pdf)", ext)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Tube Section  D=%.3f mm  t=%.3f mm", data.OuterDiam, data.Thickness)
	p.X.Label.Text = "mm"
	p.Y.Label.Text = "mm"

	outer, err := plotter.NewLine(circlePoints(data.OuterDiam / 2))
	if err != nil {
		return err
	}
	outer.LineStyle.Width = vg.Points(2)
	outer.LineStyle.Color = color.Black
	p.Add(outer)

	inner, err := plotter.NewLine(circlePoints(data.InnerDiam / 2))
	if err != nil {
		return err
	}
	inner.LineStyle.Width = vg.Points(2)
	inner.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	p.Add(inner)

	// Horizontal centerline through the section
	centerline, err := plotter.NewLine(plotter.XYs{
		{X: -0.6 * data.OuterDiam, Y: 0},
		{X: 0.6 * data.OuterDiam, Y: 0},
	})
	if err != nil {
		return err
	}
	centerline.LineStyle.Color = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	centerline.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(centerline)

	// Keep the aspect ratio square so circles render as circles.
	half := 0.65 * data.OuterDiam
	p.X.Min, p.X.Max = -half, half
	p.Y.Min, p.Y.Max = -half, half

	return p.Save(5*vg.Inch, 5*vg.Inch, filename)
}

// circlePoints samples a circle of the given radius centred at the origin
func circlePoints(radius float64) plotter.XYs {
	const segments = 128
	pts := make(plotter.XYs, segments+1)
	for i := 0; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / segments
		pts[i] = plotter.XY{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}
	return pts
}
