package render

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cachelab/cachelab/analysis"
)

// ClassBalance draws one bar per label value, most frequent first.
func (r *FileRenderer) ClassBalance(counts []analysis.ClassCount) (string, error) {
	if len(counts) == 0 {
		return "", fmt.Errorf("no class counts to draw")
	}
	p := plot.New()
	p.Title.Text = "Cache Hit vs. Miss Distribution"
	p.X.Label.Text = "Hit/Miss"
	p.Y.Label.Text = "Count"
	p.Y.Min = 0

	colors := []color.Color{skyBlue, salmon}
	names := make([]string, len(counts))
	for i, c := range counts {
		bar, err := plotter.NewBarChart(plotter.Values{float64(c.Count)}, vg.Points(40))
		if err != nil {
			return "", fmt.Errorf("building bar for class %d: %w", c.Label, err)
		}
		bar.XMin = float64(i)
		bar.Color = colors[i%len(colors)]
		bar.LineStyle.Width = 0
		p.Add(bar)
		names[i] = strconv.Itoa(c.Label)
	}
	p.NominalX(names...)

	return r.save(p, "class_balance", 6*vg.Inch, 4.5*vg.Inch)
}
