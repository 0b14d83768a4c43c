package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cachelab/cachelab/analysis"
)

// radarRings are the radii of the concentric guide circles.
var radarRings = []float64{0.25, 0.5, 0.75, 1}

// NormalizeProfile scales each feature by the larger absolute mean of the two
// groups so features of different magnitude share one radial axis in [0,1].
// Features where both means are zero map to 0.
func NormalizeProfile(p *analysis.ClassProfile) (hit, miss []float64) {
	hit = make([]float64, len(p.Features))
	miss = make([]float64, len(p.Features))
	for i := range p.Features {
		m := math.Max(math.Abs(p.Hit[i]), math.Abs(p.Miss[i]))
		if m == 0 {
			continue
		}
		hit[i] = math.Abs(p.Hit[i]) / m
		miss[i] = math.Abs(p.Miss[i]) / m
	}
	return hit, miss
}

// polar converts closed radius/angle sequences to Cartesian points.
func polar(radii, angles []float64) plotter.XYs {
	xys := make(plotter.XYs, len(radii))
	for i := range radii {
		xys[i] = plotter.XY{X: radii[i] * math.Cos(angles[i]), Y: radii[i] * math.Sin(angles[i])}
	}
	return xys
}

// Radar draws the hit and miss mean profiles as two closed, filled polygons
// on a circular chart with one spoke per feature.
func (r *FileRenderer) Radar(profile *analysis.ClassProfile) (string, error) {
	n := len(profile.Features)
	if n < 3 {
		return "", fmt.Errorf("radar chart needs at least 3 features, got %d", n)
	}
	angles := analysis.RadarAngles(n)
	hit, miss := NormalizeProfile(profile)

	p := plot.New()
	p.Title.Text = "Radar Chart of Cache Performance Features for Hits vs. Misses"
	p.HideAxes()
	p.X.Min, p.X.Max = -1.4, 1.4
	p.Y.Min, p.Y.Max = -1.4, 1.4

	for _, ring := range radarRings {
		circle := make([]float64, 73)
		ringAngles := make([]float64, 73)
		for i := range circle {
			circle[i] = ring
			ringAngles[i] = float64(i) / 72 * 2 * math.Pi
		}
		line, err := plotter.NewLine(polar(circle, ringAngles))
		if err != nil {
			return "", err
		}
		line.Color = color.Gray{Y: 200}
		p.Add(line)
	}

	tips := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		spoke, err := plotter.NewLine(polar([]float64{0, 1}, []float64{angles[i], angles[i]}))
		if err != nil {
			return "", err
		}
		spoke.Color = color.Gray{Y: 200}
		p.Add(spoke)
		tips[i] = plotter.XY{X: 1.15 * math.Cos(angles[i]), Y: 1.15 * math.Sin(angles[i])}
	}
	names, err := plotter.NewLabels(plotter.XYLabels{XYs: tips, Labels: profile.Features})
	if err != nil {
		return "", fmt.Errorf("labelling radar axes: %w", err)
	}
	for i := range names.TextStyle {
		names.TextStyle[i].Color = gray
		names.TextStyle[i].Font.Size = vg.Points(8)
	}
	p.Add(names)

	for _, series := range []struct {
		name   string
		values []float64
		stroke color.Color
		fill   color.Color
	}{
		{"Hit", hit, blue, color.NRGBA{B: 255, A: 26}},
		{"Miss", miss, red, color.NRGBA{R: 255, A: 26}},
	} {
		xys := polar(analysis.ClosePolygon(series.values), angles)
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return "", fmt.Errorf("building %s polygon: %w", series.name, err)
		}
		poly.Color = series.fill
		poly.LineStyle.Color = series.stroke
		poly.LineStyle.Width = vg.Points(1)
		p.Add(poly)
		p.Legend.Add(series.name, poly)
	}
	p.Legend.Top = true

	return r.save(p, "radar", 8*vg.Inch, 8*vg.Inch)
}
