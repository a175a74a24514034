// Package inference implements the prediction stage of the churn classifier
package inference

import "fmt"

import "github.com/google/uuid"

import "github.com/neurlang/churn/datasets"
import "github.com/neurlang/churn/datasets/telco"

// Threshold is the probability above which a customer is at high churn risk
const Threshold = 0.5

// Model is anything that scores feature frames
type Model interface {
	PredictProba(f *datasets.Frame) ([]float64, error)
}

// Result is a scored profile
type Result struct {
	RequestID   string  `json:"request_id"`
	Probability float64 `json:"probability"`
	Progress    int     `json:"progress"`
	High        bool    `json:"high_risk"`
	Message     string  `json:"message"`
	Advice      string  `json:"advice"`
}

// Verdict fills the progress, risk and messages of a result from its probability
func Verdict(p float64) (r Result) {
	r.Probability = p
	r.Progress = int(p * 100)
	r.High = p > Threshold
	if r.High {
		r.Message = fmt.Sprintf("High Churn Risk: %.2f%%", p*100)
		r.Advice = "Offer loyalty discounts, better contracts, or proactive support."
	} else {
		r.Message = fmt.Sprintf("Low Churn Risk: %.2f%%", p*100)
		r.Advice = "Focus on customer engagement and upselling opportunities."
	}
	return
}

// Predict validates the profile and scores it with the model.
func Predict(m Model, profile telco.Profile) (Result, error) {
	if err := profile.Validate(); err != nil {
		return Result{}, err
	}
	frame, err := profile.Frame()
	if err != nil {
		return Result{}, err
	}
	probs, err := m.PredictProba(frame)
	if err != nil {
		return Result{}, err
	}
	if len(probs) != 1 {
		return Result{}, fmt.Errorf("inference: model returned %d probabilities for one row", len(probs))
	}
	r := Verdict(probs[0])
	r.RequestID = uuid.NewString()
	return r, nil
}
