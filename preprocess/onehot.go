package preprocess

import "errors"
import "fmt"
import "sort"

import "github.com/neurlang/churn/datasets"

// Vocabulary is the sorted set of values a text column had at fit time
type Vocabulary struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// OneHot expands text columns into indicator columns. Values outside the vocabulary
// produce an all zero block.
type OneHot struct {
	Columns []Vocabulary

	index []map[string]int
}

// FitOneHot collects the vocabulary of each named column.
func FitOneHot(f *datasets.Frame, names []string) (*OneHot, error) {
	var columns = make([]Vocabulary, len(names))
	for i, name := range names {
		values, err := f.Text(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrColumns, err)
		}
		var set = make(map[string]struct{})
		for _, v := range values {
			set[v] = struct{}{}
		}
		var vocab = make([]string, 0, len(set))
		for v := range set {
			vocab = append(vocab, v)
		}
		sort.Strings(vocab)
		columns[i] = Vocabulary{Name: name, Values: vocab}
	}
	return NewOneHot(columns)
}

// NewOneHot rebuilds an encoder from stored vocabularies.
func NewOneHot(columns []Vocabulary) (*OneHot, error) {
	o := &OneHot{Columns: columns, index: make([]map[string]int, len(columns))}
	var seen = make(map[string]struct{}, len(columns))
	for i, c := range columns {
		if c.Name == "" {
			return nil, errors.New("preprocess: categorical column without a name")
		}
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("preprocess: categorical column %q duplicated", c.Name)
		}
		seen[c.Name] = struct{}{}
		o.index[i] = make(map[string]int, len(c.Values))
		for j, v := range c.Values {
			if _, dup := o.index[i][v]; dup {
				return nil, fmt.Errorf("preprocess: categorical column %q: value %q duplicated", c.Name, v)
			}
			o.index[i][v] = j
		}
	}
	return o, nil
}

// Width is the number of output features
func (o *OneHot) Width() (n int) {
	for _, c := range o.Columns {
		n += len(c.Values)
	}
	return
}

// Apply writes the indicator columns into rows starting at offset. It returns the number
// of values that were not in the vocabulary.
func (o *OneHot) Apply(f *datasets.Frame, rows [][]float64, offset int) (unknown int, err error) {
	for i, c := range o.Columns {
		values, err := f.Text(c.Name)
		if err != nil {
			return unknown, fmt.Errorf("%w: %v", ErrColumns, err)
		}
		for r, v := range values {
			block := rows[r][offset : offset+len(c.Values)]
			for j := range block {
				block[j] = 0
			}
			if j, ok := o.index[i][v]; ok {
				block[j] = 1
			} else {
				unknown++
			}
		}
		offset += len(c.Values)
	}
	return unknown, nil
}
