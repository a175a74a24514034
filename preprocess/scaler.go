// Package preprocess implements the column transformations applied in front of the
// classifier: standardization of numeric columns and indicator encoding of text columns.
package preprocess

import "errors"
import "fmt"
import "math"

import "github.com/neurlang/churn/datasets"

// ErrColumns is returned when a frame does not have the columns a transformation was fit on.
var ErrColumns = errors.New("preprocess: input columns do not match")

// Stat holds the frozen statistics of one numeric column
type Stat struct {
	Name string  `json:"name"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Scaler standardizes numeric columns to zero mean and unit variance.
type Scaler struct {
	Stats []Stat
}

// FitScaler computes the mean and population standard deviation of each named column.
// A constant column gets a deviation of 1 so it maps to zero.
func FitScaler(f *datasets.Frame, names []string) (*Scaler, error) {
	s := &Scaler{Stats: make([]Stat, len(names))}
	for i, name := range names {
		values, err := f.Numeric(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrColumns, err)
		}
		var mean, m2 float64
		for n, v := range values {
			// Welford
			d := v - mean
			mean += d / float64(n+1)
			m2 += d * (v - mean)
		}
		var std float64
		if len(values) > 0 {
			std = math.Sqrt(m2 / float64(len(values)))
		}
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.Stats[i] = Stat{Name: name, Mean: mean, Std: std}
	}
	return s, nil
}

// NewScaler rebuilds a Scaler from stored statistics.
func NewScaler(stats []Stat) (*Scaler, error) {
	var seen = make(map[string]struct{}, len(stats))
	for _, st := range stats {
		if st.Name == "" {
			return nil, errors.New("preprocess: numeric column without a name")
		}
		if _, dup := seen[st.Name]; dup {
			return nil, fmt.Errorf("preprocess: numeric column %q duplicated", st.Name)
		}
		seen[st.Name] = struct{}{}
		if math.IsNaN(st.Mean) || math.IsInf(st.Mean, 0) {
			return nil, fmt.Errorf("preprocess: numeric column %q: mean %v is not finite", st.Name, st.Mean)
		}
		if !(st.Std > 0) || math.IsInf(st.Std, 0) {
			return nil, fmt.Errorf("preprocess: numeric column %q: deviation %v is not positive", st.Name, st.Std)
		}
	}
	return &Scaler{Stats: stats}, nil
}

// Width is the number of output features
func (s *Scaler) Width() int {
	return len(s.Stats)
}

// Apply writes the standardized columns into rows starting at offset.
func (s *Scaler) Apply(f *datasets.Frame, rows [][]float64, offset int) error {
	for i, st := range s.Stats {
		values, err := f.Numeric(st.Name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrColumns, err)
		}
		for r, v := range values {
			rows[r][offset+i] = (v - st.Mean) / st.Std
		}
	}
	return nil
}
