package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Default column names emitted by the simulator's access-logging replacement hook.
const (
	DefaultLabelColumn      = "Hit/Miss"
	DefaultAccessTypeColumn = "Access Type"
)

// Label values for the binary outcome column.
const (
	LabelMiss = 0
	LabelHit  = 1
)

// LoadOptions controls how a dataset file is decoded.
type LoadOptions struct {
	// LabelColumn names the binary 0/1 outcome column.
	LabelColumn string
	// CategoricalColumns are label-encoded instead of parsed as numbers.
	CategoricalColumns []string
	// Comma is the field delimiter; 0 means ','.
	Comma rune
}

// DefaultLoadOptions returns options matching the simulator's CSV output.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		LabelColumn:        DefaultLabelColumn,
		CategoricalColumns: []string{DefaultAccessTypeColumn},
	}
}

// Dataset is an in-memory cache-access table.
// X holds one row per access and one column per feature (label excluded),
// in header order. Categorical features are stored as their integer codes.
type Dataset struct {
	Features []string
	Label    string
	X        *mat.Dense
	Y        []int
	Encoders map[string]*LabelEncoder
}

// Rows returns the number of access records.
func (d *Dataset) Rows() int {
	return len(d.Y)
}

// Partition is a feature matrix with its aligned labels.
type Partition struct {
	X *mat.Dense
	Y []int
}

// Rows returns the number of rows in the partition.
func (p Partition) Rows() int {
	return len(p.Y)
}

// Subset copies the given rows, in the given order, into a new Partition.
func (d *Dataset) Subset(rows []int) Partition {
	return selectRows(d.X, d.Y, rows)
}

func selectRows(src *mat.Dense, labels []int, rows []int) Partition {
	if len(rows) == 0 {
		return Partition{X: &mat.Dense{}, Y: []int{}}
	}
	_, c := src.Dims()
	x := mat.NewDense(len(rows), c, nil)
	y := make([]int, len(rows))
	for i, r := range rows {
		x.SetRow(i, src.RawRowView(r))
		y[i] = labels[r]
	}
	return Partition{X: x, Y: y}
}

// LoadDataset reads a delimited file whose first row is the header.
// Missing files, a missing label column, non-numeric feature cells and
// labels other than 0/1 all abort the load.
func LoadDataset(path string, opts LoadOptions) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer func() { _ = file.Close() }()

	ds, err := ReadDataset(file, opts)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	logrus.Debugf("loaded %d rows x %d features from %s", ds.Rows(), len(ds.Features), path)
	return ds, nil
}

// ReadDataset decodes a dataset from r. See LoadDataset.
func ReadDataset(r io.Reader, opts LoadOptions) (*Dataset, error) {
	if opts.LabelColumn == "" {
		opts.LabelColumn = DefaultLabelColumn
	}
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty dataset")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	labelIdx := -1
	for i, name := range header {
		if name == opts.LabelColumn {
			labelIdx = i
		}
	}
	if labelIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, opts.LabelColumn)
	}

	categorical := make(map[string]bool, len(opts.CategoricalColumns))
	for _, name := range opts.CategoricalColumns {
		found := false
		for _, h := range header {
			if h == name {
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		categorical[name] = true
	}

	var features []string
	var featureIdx []int
	for i, name := range header {
		if i == labelIdx {
			continue
		}
		features = append(features, name)
		featureIdx = append(featureIdx, i)
	}

	var records [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", len(records)+2, err)
		}
		records = append(records, row)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset has a header but no rows")
	}

	ds := &Dataset{
		Features: features,
		Label:    opts.LabelColumn,
		X:        mat.NewDense(len(records), len(features), nil),
		Y:        make([]int, len(records)),
		Encoders: make(map[string]*LabelEncoder),
	}

	for j, col := range featureIdx {
		name := header[col]
		if !categorical[name] {
			continue
		}
		values := make([]string, len(records))
		for i, row := range records {
			values[i] = strings.TrimSpace(row[col])
		}
		enc := NewLabelEncoder()
		codes, err := enc.FitTransform(values)
		if err != nil {
			return nil, fmt.Errorf("encoding column %q: %w", name, err)
		}
		for i, code := range codes {
			ds.X.Set(i, j, float64(code))
		}
		ds.Encoders[name] = enc
	}

	for i, row := range records {
		line := i + 2 // 1-based, after header
		for j, col := range featureIdx {
			if categorical[header[col]] {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", line, header[col], err)
			}
			ds.X.Set(i, j, v)
		}
		label, err := strconv.ParseFloat(strings.TrimSpace(row[labelIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d column %q: %w", line, opts.LabelColumn, err)
		}
		switch label {
		case LabelMiss, LabelHit:
			ds.Y[i] = int(label)
		default:
			return nil, fmt.Errorf("row %d column %q: label must be 0 or 1, got %v", line, opts.LabelColumn, label)
		}
	}
	return ds, nil
}
