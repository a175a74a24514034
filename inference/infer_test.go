package inference

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/churn/datasets"
	"github.com/neurlang/churn/datasets/telco"
)

type fixed struct {
	p     float64
	err   error
	width int
}

func (m *fixed) PredictProba(f *datasets.Frame) ([]float64, error) {
	m.width = f.Width()
	if m.err != nil {
		return nil, m.err
	}
	return []float64{m.p}, nil
}

func TestVerdictBoundary(t *testing.T) {
	half := Verdict(0.5)
	assert.False(t, half.High)
	assert.Equal(t, "Low Churn Risk: 50.00%", half.Message)
	assert.Equal(t, "Focus on customer engagement and upselling opportunities.", half.Advice)
	assert.Equal(t, 50, half.Progress)

	above := Verdict(0.5001)
	assert.True(t, above.High)
	assert.Equal(t, "High Churn Risk: 50.01%", above.Message)
	assert.Equal(t, "Offer loyalty discounts, better contracts, or proactive support.", above.Advice)

	assert.Equal(t, 73, Verdict(0.7391).Progress)
	assert.Equal(t, 0, Verdict(0.009).Progress)
	assert.Equal(t, 100, Verdict(1).Progress)
}

func TestPredict(t *testing.T) {
	m := &fixed{p: 0.8123}
	r, err := Predict(m, telco.DefaultProfile())
	require.NoError(t, err)
	assert.True(t, r.High)
	assert.Equal(t, "High Churn Risk: 81.23%", r.Message)
	assert.Equal(t, 81, r.Progress)
	_, err = uuid.Parse(r.RequestID)
	assert.NoError(t, err)
	assert.Equal(t, len(telco.CategoricalFeatures())+len(telco.NumericalFeatures()), m.width)

	again, err := Predict(m, telco.DefaultProfile())
	require.NoError(t, err)
	assert.NotEqual(t, r.RequestID, again.RequestID)
}

func TestPredictRejectsInvalidProfile(t *testing.T) {
	m := &fixed{p: 0.1}
	profile := telco.DefaultProfile()
	profile.Tenure = 73
	_, err := Predict(m, profile)
	assert.ErrorIs(t, err, telco.ErrProfile)
	assert.Zero(t, m.width, "model must not be called")
}

func TestPredictModelError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Predict(&fixed{err: boom}, telco.DefaultProfile())
	assert.ErrorIs(t, err, boom)
}
