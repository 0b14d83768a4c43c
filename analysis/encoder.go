package analysis

import "fmt"

// LabelEncoder maps string categories to small non-negative integer codes.
// Codes are assigned 0..n-1 in first-seen order during Fit and carry no
// meaning beyond identity: equal inputs always receive equal codes.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder returns an unfitted encoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{}
}

// Fit learns the category set from values. Fitted encoders are frozen.
func (e *LabelEncoder) Fit(values []string) error {
	if e.index != nil {
		return ErrAlreadyFitted
	}
	e.index = make(map[string]int)
	for _, v := range values {
		if _, ok := e.index[v]; ok {
			continue
		}
		e.index[v] = len(e.classes)
		e.classes = append(e.classes, v)
	}
	return nil
}

// Transform encodes values with the fitted mapping.
// A category not seen during Fit is an error.
func (e *LabelEncoder) Transform(values []string) ([]int, error) {
	if e.index == nil {
		return nil, ErrNotFitted
	}
	codes := make([]int, len(values))
	for i, v := range values {
		code, ok := e.index[v]
		if !ok {
			return nil, fmt.Errorf("unseen category %q at position %d", v, i)
		}
		codes[i] = code
	}
	return codes, nil
}

// FitTransform fits the encoder on values and encodes them.
func (e *LabelEncoder) FitTransform(values []string) ([]int, error) {
	if err := e.Fit(values); err != nil {
		return nil, err
	}
	return e.Transform(values)
}

// Classes returns the known categories indexed by code.
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}
