package trainer

import "math"
import "sync/atomic"

import "github.com/neurlang/churn/boost"
import "github.com/neurlang/churn/datasets"
import "github.com/neurlang/churn/parallel"

// sampleSize calculates the statistically sufficient sample size
// for a given dataset size N and significance level (0–100).
func sampleSize(N int, significance byte) int {
	if N <= 0 {
		return 0
	}

	// Convert significance level to Z-score
	z := zScoreFromAlpha(100 - significance)

	// Assume worst-case proportion p = 0.5 for max variability
	p := 0.5
	e := float64(100-significance) * 0.01

	numerator := math.Pow(z, 2) * p * (1 - p)
	denominator := math.Pow(e, 2)

	// Initial sample size without population correction
	ss := numerator / denominator

	// Apply finite population correction
	correctedSS := ss * float64(N) / (float64(N) - 1 + ss)

	if int(correctedSS) > N {
		return N
	}
	if correctedSS < 1 {
		return 1
	}

	return int(correctedSS)
}

// zScoreFromAlpha returns the Z-score for a given alpha level
// Common: 90% => 1.645, 95% => 1.96, 99% => 2.576
func zScoreFromAlpha(alpha byte) float64 {
	switch {
	case alpha <= 1:
		return 2.576 // 99% confidence
	case alpha <= 5:
		return 1.96 // 95% confidence
	case alpha <= 10:
		return 1.645 // 90% confidence
	default:
		return 1.96 // default fallback
	}
}

// Evaluation is the fit quality measured on a sample of the training rows
type Evaluation struct {
	Sampled  int
	Accuracy float64
	LogLoss  float64

	// Fingerprint hashes the sampled probabilities quantized to 16 bits, equal runs
	// produce equal fingerprints.
	Fingerprint [32]byte
}

// Scorer is the part of the pipeline evaluation needs
type Scorer interface {
	PredictProba(f *datasets.Frame) ([]float64, error)
}

// Evaluate scores an evenly spaced sample of the rows, sized by sampleSize.
func Evaluate(m Scorer, features *datasets.Frame, labels []float64, significance byte) (Evaluation, error) {
	var n = features.Len()
	var l = sampleSize(n, significance)
	if l == 0 {
		return Evaluation{}, nil
	}
	var picked = make([]bool, n)
	for i := 0; i < l; i++ {
		picked[i*n/l] = true
	}
	var y = make([]float64, 0, l)
	for r, ok := range picked {
		if ok {
			y = append(y, labels[r])
		}
	}
	probs, err := m.PredictProba(features.Filter(func(r int) bool { return picked[r] }))
	if err != nil {
		return Evaluation{}, err
	}

	var success atomic.Int64
	hsh := parallel.NewUint16Hasher(len(probs))
	parallel.ForEach(len(probs), parallel.Limit(0), func(i int) {
		if (probs[i] > 0.5) == (y[i] == 1) {
			success.Add(1)
		}
		hsh.MustPutUint16(i, uint16(math.Round(probs[i]*math.MaxUint16)))
	})
	return Evaluation{
		Sampled:     len(probs),
		Accuracy:    float64(success.Load()) / float64(len(probs)),
		LogLoss:     boost.LogLoss(probs, y),
		Fingerprint: hsh.Sum(),
	}, nil
}
