package preprocess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/churn/datasets"
)

func frame(t *testing.T, tenure []float64, contract []string) *datasets.Frame {
	f, err := datasets.NewFrame(
		datasets.NumericColumn("tenure", tenure...),
		datasets.TextColumn("Contract", contract...),
	)
	require.NoError(t, err)
	return f
}

func TestScalerFrozenStatistics(t *testing.T) {
	f := frame(t, []float64{1, 2, 3, 4}, []string{"a", "b", "a", "c"})
	s, err := FitScaler(f, []string{"tenure"})
	require.NoError(t, err)
	require.Len(t, s.Stats, 1)
	assert.InDelta(t, 2.5, s.Stats[0].Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), s.Stats[0].Std, 1e-12)

	// new data is scaled with the fitted statistics, not its own
	g := frame(t, []float64{100}, []string{"a"})
	rows := [][]float64{{0}}
	require.NoError(t, s.Apply(g, rows, 0))
	assert.InDelta(t, (100-2.5)/math.Sqrt(1.25), rows[0][0], 1e-9)
}

func TestScalerConstantColumn(t *testing.T) {
	f := frame(t, []float64{5, 5, 5}, []string{"a", "a", "a"})
	s, err := FitScaler(f, []string{"tenure"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Stats[0].Std)
}

func TestNewScalerRejectsBadStats(t *testing.T) {
	_, err := NewScaler([]Stat{{Name: "x", Mean: 0, Std: 0}})
	assert.Error(t, err)
	_, err = NewScaler([]Stat{{Name: "x", Mean: math.NaN(), Std: 1}})
	assert.Error(t, err)
	_, err = NewScaler([]Stat{{Name: "x", Std: 1}, {Name: "x", Std: 1}})
	assert.Error(t, err)
}

func TestOneHotIgnoresUnknown(t *testing.T) {
	f := frame(t, []float64{1, 2, 3}, []string{"Two year", "Month-to-month", "One year"})
	o, err := FitOneHot(f, []string{"Contract"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Month-to-month", "One year", "Two year"}, o.Columns[0].Values)
	assert.Equal(t, 3, o.Width())

	g := frame(t, []float64{1, 1}, []string{"One year", "Ten years"})
	rows := [][]float64{{9, 9, 9}, {9, 9, 9}}
	unknown, err := o.Apply(g, rows, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, unknown)
	assert.Equal(t, []float64{0, 1, 0}, rows[0])
	assert.Equal(t, []float64{0, 0, 0}, rows[1])
}

func TestColumnTransformer(t *testing.T) {
	f := frame(t, []float64{1, 3}, []string{"b", "a"})
	c, err := Fit(f, []string{"tenure"}, []string{"Contract"})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Width())
	assert.Equal(t, []string{"tenure", "Contract=a", "Contract=b"}, c.FeatureNames())

	rows, unknown, err := c.Transform(f)
	require.NoError(t, err)
	assert.Zero(t, unknown)
	assert.Equal(t, [][]float64{{-1, 0, 1}, {1, 1, 0}}, rows)
}

func TestColumnTransformerDrift(t *testing.T) {
	f := frame(t, []float64{1, 3}, []string{"b", "a"})
	c, err := Fit(f, []string{"tenure"}, []string{"Contract"})
	require.NoError(t, err)

	swapped, err := datasets.NewFrame(
		datasets.TextColumn("Contract", "a"),
		datasets.NumericColumn("tenure", 1),
	)
	require.NoError(t, err)
	_, _, err = c.Transform(swapped)
	assert.ErrorIs(t, err, ErrColumns)

	missing, err := datasets.NewFrame(datasets.NumericColumn("tenure", 1))
	require.NoError(t, err)
	_, _, err = c.Transform(missing)
	assert.ErrorIs(t, err, ErrColumns)

	wrongKind, err := datasets.NewFrame(
		datasets.NumericColumn("tenure", 1),
		datasets.NumericColumn("Contract", 1),
	)
	require.NoError(t, err)
	_, _, err = c.Transform(wrongKind)
	assert.ErrorIs(t, err, ErrColumns)

	_, err = Fit(f, []string{"tenure"}, nil)
	assert.ErrorIs(t, err, ErrColumns)
}
