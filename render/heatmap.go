package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cachelab/cachelab/analysis"
)

// corrGrid adapts a correlation matrix to plotter.GridXYZ with the first
// feature in the top row.
type corrGrid struct {
	m *analysis.CorrelationMatrix
}

func (g corrGrid) Dims() (c, r int)   { return len(g.m.Labels), len(g.m.Labels) }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }
func (g corrGrid) Z(c, r int) float64 { return g.m.At(len(g.m.Labels)-1-r, c) }

// Correlation draws an annotated coolwarm heatmap of the matrix.
func (r *FileRenderer) Correlation(m *analysis.CorrelationMatrix) (string, error) {
	n := len(m.Labels)
	if n == 0 {
		return "", fmt.Errorf("correlation matrix is empty")
	}
	p := plot.New()
	p.Title.Text = "Feature Correlation Matrix"

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(-1)
	cmap.SetMax(1)
	grid := corrGrid{m: m}
	hm := plotter.NewHeatMap(grid, cmap.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = gray
	p.Add(hm)

	var xys plotter.XYs
	var texts []string
	for c := 0; c < n; c++ {
		for row := 0; row < n; row++ {
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(row)})
			v := grid.Z(c, row)
			if math.IsNaN(v) {
				texts = append(texts, "nan")
			} else {
				texts = append(texts, fmt.Sprintf("%.2f", v))
			}
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return "", fmt.Errorf("annotating heatmap: %w", err)
	}
	p.Add(labels)

	xTicks := make([]plot.Tick, n)
	yTicks := make([]plot.Tick, n)
	for i, name := range m.Labels {
		xTicks[i] = plot.Tick{Value: float64(i), Label: name}
		yTicks[i] = plot.Tick{Value: float64(n - 1 - i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.X.Tick.Label.Rotation = math.Pi / 4

	return r.save(p, "correlation", 12*vg.Inch, 10*vg.Inch)
}
