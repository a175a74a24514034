package preprocess

import "fmt"

import "github.com/neurlang/churn/datasets"

// ColumnTransformer standardizes the numeric columns and encodes the text columns,
// in that order, into one dense feature vector per row.
type ColumnTransformer struct {
	// Inputs is the column order the transformer was fit on
	Inputs []string

	Scaler *Scaler
	OneHot *OneHot
}

// Fit fits both transformations on the frame. Every column of the frame must be either
// numeric or categorical.
func Fit(f *datasets.Frame, numeric, categorical []string) (*ColumnTransformer, error) {
	if len(numeric)+len(categorical) != f.Width() {
		return nil, fmt.Errorf("%w: frame has %d columns, %d numeric and %d categorical declared",
			ErrColumns, f.Width(), len(numeric), len(categorical))
	}
	scaler, err := FitScaler(f, numeric)
	if err != nil {
		return nil, err
	}
	onehot, err := FitOneHot(f, categorical)
	if err != nil {
		return nil, err
	}
	return &ColumnTransformer{
		Inputs: f.Names(),
		Scaler: scaler,
		OneHot: onehot,
	}, nil
}

// Width is the length of the produced feature vectors
func (c *ColumnTransformer) Width() int {
	return c.Scaler.Width() + c.OneHot.Width()
}

// FeatureNames names every output feature, "column" for numeric ones and
// "column=value" for indicators.
func (c *ColumnTransformer) FeatureNames() []string {
	var names = make([]string, 0, c.Width())
	for _, st := range c.Scaler.Stats {
		names = append(names, st.Name)
	}
	for _, v := range c.OneHot.Columns {
		for _, value := range v.Values {
			names = append(names, v.Name+"="+value)
		}
	}
	return names
}

// Check verifies that the frame has exactly the fitted columns in the fitted order.
func (c *ColumnTransformer) Check(f *datasets.Frame) error {
	names := f.Names()
	if len(names) != len(c.Inputs) {
		return fmt.Errorf("%w: got %d columns %q, want %d %q", ErrColumns, len(names), names, len(c.Inputs), c.Inputs)
	}
	for i := range names {
		if names[i] != c.Inputs[i] {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrColumns, i, names[i], c.Inputs[i])
		}
	}
	return nil
}

// Transform produces the feature matrix. The second result counts text values that
// were not seen while fitting.
func (c *ColumnTransformer) Transform(f *datasets.Frame) ([][]float64, int, error) {
	if err := c.Check(f); err != nil {
		return nil, 0, err
	}
	var width = c.Width()
	var backing = make([]float64, f.Len()*width)
	var rows = make([][]float64, f.Len())
	for r := range rows {
		rows[r] = backing[r*width : (r+1)*width : (r+1)*width]
	}
	if err := c.Scaler.Apply(f, rows, 0); err != nil {
		return nil, 0, err
	}
	unknown, err := c.OneHot.Apply(f, rows, c.Scaler.Width())
	if err != nil {
		return nil, 0, err
	}
	return rows, unknown, nil
}
