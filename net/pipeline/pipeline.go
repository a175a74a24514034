// Package pipeline implements the fitted preprocessing plus classifier pipeline and its
// on disk artifact.
package pipeline

import "fmt"
import "log/slog"

import "github.com/neurlang/churn/boost"
import "github.com/neurlang/churn/datasets"
import "github.com/neurlang/churn/preprocess"

// Pipeline chains the column transformer and the booster
type Pipeline struct {
	Columns *preprocess.ColumnTransformer
	Model   *boost.Booster
}

// Fit fits the column transformer on features, then trains the booster on the
// transformed rows.
func Fit(features *datasets.Frame, labels []float64, numeric, categorical []string, h boost.HyperParameters) (*Pipeline, error) {
	if features.Len() != len(labels) {
		return nil, fmt.Errorf("pipeline: %d rows but %d labels", features.Len(), len(labels))
	}
	columns, err := preprocess.Fit(features, numeric, categorical)
	if err != nil {
		return nil, err
	}
	rows, _, err := columns.Transform(features)
	if err != nil {
		return nil, err
	}
	model, err := h.Training(rows, labels)
	if err != nil {
		return nil, err
	}
	return &Pipeline{Columns: columns, Model: model}, nil
}

// PredictProba returns the probability of churn for every row of the frame.
// The frame must have the columns the pipeline was fit on, in the same order.
func (p *Pipeline) PredictProba(f *datasets.Frame) ([]float64, error) {
	rows, unknown, err := p.Columns.Transform(f)
	if err != nil {
		return nil, err
	}
	if unknown > 0 {
		slog.Debug("values outside the training vocabulary encoded as zeros", "count", unknown)
	}
	var out = make([]float64, len(rows))
	for r, x := range rows {
		out[r] = p.Model.PredictProba(x)
	}
	return out, nil
}

// Importance pairs every output feature name with its share of the training gain
type Importance struct {
	Feature string
	Share   float64
}

// Importances lists the share of the training gain per feature, in feature order.
func (p *Pipeline) Importances() []Importance {
	names := p.Columns.FeatureNames()
	var total float64
	for _, g := range p.Model.Gain {
		total += g
	}
	var out = make([]Importance, len(names))
	for i, name := range names {
		out[i].Feature = name
		if total > 0 && i < len(p.Model.Gain) {
			out[i].Share = p.Model.Gain[i] / total
		}
	}
	return out
}
