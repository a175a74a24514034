package boost

import "encoding/json"
import "errors"
import "fmt"
import "log/slog"
import "math"

import "github.com/neurlang/churn/hash"

// ErrData is returned for training data the booster cannot learn from.
var ErrData = errors.New("boost: invalid training data")

// Booster is a trained ensemble. The probability of the positive class is the logistic
// function of Base plus the sum of all tree outputs.
type Booster struct {
	Features int     `json:"features"`
	Base     float64 `json:"base"`
	Trees    []Tree  `json:"trees"`

	// Gain is the total loss reduction contributed by each feature while training
	Gain []float64 `json:"gain"`
}

// Sigmoid is the logistic function
func Sigmoid(m float64) float64 {
	if m >= 0 {
		return 1 / (1 + math.Exp(-m))
	}
	e := math.Exp(m)
	return e / (1 + e)
}

// LogLoss is the mean binary cross entropy of probabilities p against labels y.
func LogLoss(p, y []float64) float64 {
	const eps = 1e-15
	if len(p) == 0 {
		return 0
	}
	var sum float64
	for i := range p {
		q := math.Min(math.Max(p[i], eps), 1-eps)
		sum -= y[i]*math.Log(q) + (1-y[i])*math.Log(1-q)
	}
	return sum / float64(len(p))
}

// Training fits a booster on the dense rows x with 0/1 labels y.
func (h *HyperParameters) Training(x [][]float64, y []float64) (*Booster, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrData)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d rows but %d labels", ErrData, len(x), len(y))
	}
	var features = len(x[0])
	if features == 0 {
		return nil, fmt.Errorf("%w: no features", ErrData)
	}
	for r := range x {
		if len(x[r]) != features {
			return nil, fmt.Errorf("%w: row %d has %d features, want %d", ErrData, r, len(x[r]), features)
		}
		for f, v := range x[r] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: row %d feature %d is not finite", ErrData, r, f)
			}
		}
		if y[r] != 0 && y[r] != 1 {
			return nil, fmt.Errorf("%w: label %v at row %d is not 0 or 1", ErrData, y[r], r)
		}
	}

	b := &Booster{
		Features: features,
		Base:     math.Log(h.BaseScore / (1 - h.BaseScore)),
		Trees:    make([]Tree, 0, h.Rounds),
		Gain:     make([]float64, features),
	}
	g := newGrower(h, x)
	var margin = make([]float64, len(x))
	var prob = make([]float64, len(x))
	for r := range margin {
		margin[r] = b.Base
	}

	for round := 0; round < h.Rounds; round++ {
		for r := range margin {
			p := Sigmoid(margin[r])
			g.grad[r] = p - y[r]
			g.hess[r] = math.Max(p*(1-p), 1e-16)
		}
		tree := g.grow(func(r int) bool {
			return hash.Keep(uint32(r), uint32(round), h.Seed, h.Subsample)
		}, b.Gain)
		b.Trees = append(b.Trees, tree)
		for r := range margin {
			margin[r] += tree.Predict(x[r])
		}

		if h.Printer > 0 && (round+1)%h.Printer == 0 {
			for r := range margin {
				prob[r] = Sigmoid(margin[r])
			}
			slog.Debug("boosting round", "round", round+1, "logloss", LogLoss(prob, y), "leaves", tree.Leaves())
		}
	}
	return b, nil
}

// Margin returns the raw additive score of x
func (b *Booster) Margin(x []float64) float64 {
	var m = b.Base
	for _, t := range b.Trees {
		m += t.Predict(x)
	}
	return m
}

// PredictProba returns the probability of the positive class for x.
func (b *Booster) PredictProba(x []float64) float64 {
	return Sigmoid(b.Margin(x))
}

// Validate checks the ensemble structure
func (b *Booster) Validate() error {
	if b.Features <= 0 {
		return fmt.Errorf("boost: %d features", b.Features)
	}
	if math.IsNaN(b.Base) || math.IsInf(b.Base, 0) {
		return fmt.Errorf("boost: base margin %v is not finite", b.Base)
	}
	if len(b.Trees) == 0 {
		return errors.New("boost: no trees")
	}
	for i, t := range b.Trees {
		if err := t.validate(b.Features); err != nil {
			return fmt.Errorf("boost: tree %d: %w", i, err)
		}
	}
	if b.Gain != nil && len(b.Gain) != b.Features {
		return fmt.Errorf("boost: %d gains for %d features", len(b.Gain), b.Features)
	}
	return nil
}

// MarshalBinary encodes the ensemble
func (b *Booster) MarshalBinary() ([]byte, error) {
	return json.Marshal(b)
}

// UnmarshalBinary decodes and validates an ensemble
func (b *Booster) UnmarshalBinary(data []byte) error {
	var decoded Booster
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("boost: decode: %w", err)
	}
	if err := decoded.Validate(); err != nil {
		return err
	}
	*b = decoded
	return nil
}
