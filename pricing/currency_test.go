package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEuros(t *testing.T) {
	for _, tc := range []struct {
		cents int64
		want  string
	}{
		{0, "€0.00"},
		{5, "€0.05"},
		{99, "€0.99"},
		{100, "€1.00"},
		{15600, "€156.00"},
		{15640, "€156.40"},
		{1234567, "€12345.67"},
		{-250, "-€2.50"},
	} {
		assert.Equal(t, tc.want, FormatEuros(tc.cents))
	}
}

func TestFormatEurosIsStable(t *testing.T) {
	// Formatting is a pure function of the cent amount; calling it twice on
	// the same value yields the same string.
	assert.Equal(t, FormatEuros(15640), FormatEuros(15640))
}
