package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelEncoder_EqualCategories_GetEqualCodes(t *testing.T) {
	// GIVEN repeated access types
	values := []string{"WRITE", "READ", "WRITE", "PREFETCH", "READ"}

	// WHEN fitted and transformed
	enc := NewLabelEncoder()
	codes, err := enc.FitTransform(values)
	require.NoError(t, err)

	// THEN codes are non-negative, first-seen ordered, and stable per category
	assert.Equal(t, []int{0, 1, 0, 2, 1}, codes)
	assert.Equal(t, []string{"WRITE", "READ", "PREFETCH"}, enc.Classes())
	for _, c := range codes {
		assert.GreaterOrEqual(t, c, 0)
	}
}

func TestLabelEncoder_TransformBeforeFit_ReturnsErrNotFitted(t *testing.T) {
	_, err := NewLabelEncoder().Transform([]string{"READ"})
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestLabelEncoder_SecondFit_ReturnsErrAlreadyFitted(t *testing.T) {
	enc := NewLabelEncoder()
	require.NoError(t, enc.Fit([]string{"READ"}))
	assert.ErrorIs(t, enc.Fit([]string{"WRITE"}), ErrAlreadyFitted)
}

func TestLabelEncoder_UnseenCategory_ReturnsError(t *testing.T) {
	enc := NewLabelEncoder()
	require.NoError(t, enc.Fit([]string{"READ", "WRITE"}))
	_, err := enc.Transform([]string{"READ", "TRANSLATION"})
	assert.ErrorContains(t, err, "TRANSLATION")
}
