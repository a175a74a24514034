// Package datasets implements the columnar Frame shared by cleaning, preprocessing,
// exploration and inference.
package datasets

import "errors"
import "fmt"
import "sort"

// ErrColumn is returned when a column is missing, duplicated or of the wrong kind.
var ErrColumn = errors.New("datasets: column")

// Kind is the storage kind of a column
type Kind byte

const (
	// Numeric columns hold float64 values
	Numeric Kind = iota
	// Text columns hold string values
	Text
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Text:
		return "text"
	}
	return fmt.Sprintf("kind(%d)", byte(k))
}

// Column is one named column. Only the slice matching Kind is populated.
type Column struct {
	Name string
	Kind Kind
	Num  []float64
	Str  []string
}

// NumericColumn makes a numeric column
func NumericColumn(name string, values ...float64) Column {
	return Column{Name: name, Kind: Numeric, Num: values}
}

// TextColumn makes a text column
func TextColumn(name string, values ...string) Column {
	return Column{Name: name, Kind: Text, Str: values}
}

// Len returns the number of values in the column
func (c Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Num)
	}
	return len(c.Str)
}

// Frame is an immutable ordered set of equally long columns.
type Frame struct {
	columns []Column
	index   map[string]int
	rows    int
}

// NewFrame validates the columns and builds a Frame. Column names must be unique and all
// columns must have the same length.
func NewFrame(columns ...Column) (*Frame, error) {
	f := &Frame{
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, dup := f.index[c.Name]; dup {
			return nil, fmt.Errorf("%w %q: duplicated", ErrColumn, c.Name)
		}
		if c.Kind != Numeric && c.Kind != Text {
			return nil, fmt.Errorf("%w %q: unknown kind %s", ErrColumn, c.Name, c.Kind)
		}
		if i == 0 {
			f.rows = c.Len()
		} else if c.Len() != f.rows {
			return nil, fmt.Errorf("%w %q: has %d rows, want %d", ErrColumn, c.Name, c.Len(), f.rows)
		}
		f.index[c.Name] = i
	}
	return f, nil
}

// Len returns the number of rows
func (f *Frame) Len() int {
	return f.rows
}

// Width returns the number of columns
func (f *Frame) Width() int {
	return len(f.columns)
}

// At returns the n-th column
func (f *Frame) At(n int) Column {
	return f.columns[n]
}

// Names returns the column names in order
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name
func (f *Frame) Column(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return Column{}, false
	}
	return f.columns[i], true
}

// Numeric looks up a numeric column by name
func (f *Frame) Numeric(name string) ([]float64, error) {
	c, ok := f.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w %q: missing", ErrColumn, name)
	}
	if c.Kind != Numeric {
		return nil, fmt.Errorf("%w %q: is %s, want %s", ErrColumn, name, c.Kind, Numeric)
	}
	return c.Num, nil
}

// Text looks up a text column by name
func (f *Frame) Text(name string) ([]string, error) {
	c, ok := f.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w %q: missing", ErrColumn, name)
	}
	if c.Kind != Text {
		return nil, fmt.Errorf("%w %q: is %s, want %s", ErrColumn, name, c.Kind, Text)
	}
	return c.Str, nil
}

// Drop returns a Frame without the named columns. Unknown names are ignored.
func (f *Frame) Drop(names ...string) *Frame {
	var skip = make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[n] = struct{}{}
	}
	var kept []Column
	for _, c := range f.columns {
		if _, ok := skip[c.Name]; !ok {
			kept = append(kept, c)
		}
	}
	out, _ := NewFrame(kept...)
	if len(kept) == 0 {
		out.rows = f.rows
	}
	return out
}

// Replace returns a Frame where the column with the same name is swapped for c.
func (f *Frame) Replace(c Column) (*Frame, error) {
	i, ok := f.index[c.Name]
	if !ok {
		return nil, fmt.Errorf("%w %q: missing", ErrColumn, c.Name)
	}
	columns := make([]Column, len(f.columns))
	copy(columns, f.columns)
	columns[i] = c
	return NewFrame(columns...)
}

// Filter returns a Frame holding only the rows for which keep reports true.
func (f *Frame) Filter(keep func(row int) bool) *Frame {
	var rows []int
	for r := 0; r < f.rows; r++ {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	columns := make([]Column, len(f.columns))
	for i, c := range f.columns {
		out := Column{Name: c.Name, Kind: c.Kind}
		switch c.Kind {
		case Numeric:
			out.Num = make([]float64, len(rows))
			for j, r := range rows {
				out.Num[j] = c.Num[r]
			}
		case Text:
			out.Str = make([]string, len(rows))
			for j, r := range rows {
				out.Str[j] = c.Str[r]
			}
		}
		columns[i] = out
	}
	out, _ := NewFrame(columns...)
	out.rows = len(rows)
	return out
}

// Mean returns the arithmetic mean of a numeric column, zero for an empty Frame.
func (f *Frame) Mean(name string) (float64, error) {
	values, err := f.Numeric(name)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// Group is the number of rows sharing one value pair
type Group struct {
	By    string
	Of    string
	Count int
}

// GroupCount counts rows per (by, of) value pair of two text columns. Only pairs
// present in the data are returned, sorted by by then of.
func (f *Frame) GroupCount(by, of string) ([]Group, error) {
	a, err := f.Text(by)
	if err != nil {
		return nil, err
	}
	b, err := f.Text(of)
	if err != nil {
		return nil, err
	}
	var counts = make(map[[2]string]int)
	for r := range a {
		counts[[2]string{a[r], b[r]}]++
	}
	groups := make([]Group, 0, len(counts))
	for k, n := range counts {
		groups = append(groups, Group{By: k[0], Of: k[1], Count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].By != groups[j].By {
			return groups[i].By < groups[j].By
		}
		return groups[i].Of < groups[j].Of
	})
	return groups, nil
}
