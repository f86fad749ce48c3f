package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorical(t *testing.T) {
	lookup := map[string]string{"m1": "#ff0000", "m2": "#00ff00"}
	assert.Equal(t, "#ff0000", Categorical("m1", lookup, "#999999"))
	assert.Equal(t, "#999999", Categorical("unknown", lookup, "#999999"))
}

func TestQuantitativeEndpoints(t *testing.T) {
	palette := []string{"#000000", "#ffffff"}

	low, err := Quantitative(0, [2]float64{0, 10}, palette)
	require.NoError(t, err)
	assert.Equal(t, "#000000", low)

	high, err := Quantitative(10, [2]float64{0, 10}, palette)
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", high)

	mid, err := Quantitative(5, [2]float64{0, 10}, palette)
	require.NoError(t, err)
	assert.Equal(t, "#7f7f7f", mid, "floor-truncated, not rounded, midpoint")
}

func TestQuantitativeClampsOutOfDomain(t *testing.T) {
	palette := []string{"#000000", "#ffffff"}
	below, err := Quantitative(-100, [2]float64{0, 10}, palette)
	require.NoError(t, err)
	assert.Equal(t, "#000000", below)

	above, err := Quantitative(1000, [2]float64{0, 10}, palette)
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", above)
}

func TestQuantitativeDegenerateDomainUsesMidpoint(t *testing.T) {
	palette := []string{"#000000", "#ffffff"}
	mid, err := Quantitative(3, [2]float64{5, 5}, palette)
	require.NoError(t, err)
	assert.Equal(t, "#7f7f7f", mid)
}

func TestQuantitativeMultiStopPalette(t *testing.T) {
	palette := []string{"#000000", "#ff0000", "#ffffff"}
	mid, err := Quantitative(5, [2]float64{0, 10}, palette)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", mid)
}
