package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cachelab/cachelab/analysis"
)

// ROC draws a model's ROC curve against the chance diagonal.
func (r *FileRenderer) ROC(res *analysis.Result) (string, error) {
	if len(res.ROC) == 0 {
		return "", fmt.Errorf("%s has no ROC curve", res.Model)
	}
	p := plot.New()
	p.Title.Text = "Receiver Operating Characteristic (ROC) Curve - " + res.Model
	p.X.Label.Text = "False Positive Rate"
	p.Y.Label.Text = "True Positive Rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1.05

	xys := make(plotter.XYs, len(res.ROC))
	for i, pt := range res.ROC {
		xys[i] = plotter.XY{X: pt.FPR, Y: pt.TPR}
	}
	curve, err := plotter.NewLine(xys)
	if err != nil {
		return "", fmt.Errorf("building ROC line: %w", err)
	}
	curve.Color = blue
	curve.Width = vg.Points(1.5)

	chance, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return "", fmt.Errorf("building chance line: %w", err)
	}
	chance.Color = gray
	chance.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(plotter.NewGrid(), chance, curve)
	p.Legend.Add(fmt.Sprintf("ROC curve (AUC = %.2f)", res.AUC), curve)

	return r.save(p, "roc_"+slug(res.Model), 6*vg.Inch, 5*vg.Inch)
}
