// Package render draws the analysis figures with gonum/plot and writes them
// to files. It implements analysis.Renderer.
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/cachelab/cachelab/analysis"
)

var (
	skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	salmon  = color.RGBA{R: 250, G: 128, B: 114, A: 255}
	blue    = color.RGBA{B: 255, A: 255}
	red     = color.RGBA{R: 255, A: 255}
	gray    = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// FileRenderer saves each figure as <Dir>/<name>.<Format>.
type FileRenderer struct {
	Dir    string
	Format string
}

var _ analysis.Renderer = (*FileRenderer)(nil)

// NewFileRenderer creates dir if needed. format is any extension gonum/plot
// can save (png, svg, pdf, ...).
func NewFileRenderer(dir, format string) (*FileRenderer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating plot directory: %w", err)
	}
	return &FileRenderer{Dir: dir, Format: strings.TrimPrefix(format, ".")}, nil
}

func (r *FileRenderer) save(p *plot.Plot, name string, w, h vg.Length) (string, error) {
	path := filepath.Join(r.Dir, name+"."+r.Format)
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	return path, nil
}

// slug turns a display name into a file-name fragment.
func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '_' || r == '/':
			b.WriteRune('_')
		}
	}
	return b.String()
}
