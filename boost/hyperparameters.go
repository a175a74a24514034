package boost

import "errors"
import "fmt"

// HyperParameters configure the boosting. Defaults mirror the usual gradient boosting
// defaults for binary log loss.
type HyperParameters struct {
	Rounds       int     // number of boosting rounds, one tree each
	MaxDepth     int     // maximum depth of a tree
	LearningRate float64 // shrinkage applied to every leaf weight

	Lambda         float64 // L2 regularisation on leaf weights
	Gamma          float64 // minimum loss reduction required to split
	MinChildWeight float64 // minimum hessian sum in each child of a split

	Subsample float64 // fraction of rows drawn for each round, 1 keeps all
	BaseScore float64 // initial probability of the positive class
	Seed      uint32  // salt of the row sampling

	Threads int // goroutines for the split search, 0 means parallel.Threads()

	Printer int // log the training loss every this many rounds, 0 disables
}

// Defaults returns the default hyper parameters
func Defaults() HyperParameters {
	return HyperParameters{
		Rounds:         100,
		MaxDepth:       6,
		LearningRate:   0.3,
		Lambda:         1,
		Gamma:          0,
		MinChildWeight: 1,
		Subsample:      1,
		BaseScore:      0.5,
		Seed:           42,
	}
}

// Validate reports the first invalid hyper parameter
func (h *HyperParameters) Validate() error {
	switch {
	case h.Rounds < 1:
		return fmt.Errorf("boost: rounds %d < 1", h.Rounds)
	case h.MaxDepth < 1:
		return fmt.Errorf("boost: max depth %d < 1", h.MaxDepth)
	case !(h.LearningRate > 0 && h.LearningRate <= 1):
		return fmt.Errorf("boost: learning rate %v outside (0, 1]", h.LearningRate)
	case h.Lambda < 0:
		return fmt.Errorf("boost: lambda %v < 0", h.Lambda)
	case h.Gamma < 0:
		return fmt.Errorf("boost: gamma %v < 0", h.Gamma)
	case h.MinChildWeight < 0:
		return fmt.Errorf("boost: min child weight %v < 0", h.MinChildWeight)
	case !(h.Subsample > 0 && h.Subsample <= 1):
		return fmt.Errorf("boost: subsample %v outside (0, 1]", h.Subsample)
	case !(h.BaseScore > 0 && h.BaseScore < 1):
		return errors.New("boost: base score must be strictly between 0 and 1")
	}
	return nil
}
