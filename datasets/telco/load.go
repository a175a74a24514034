package telco

import "encoding/csv"
import "errors"
import "fmt"
import "io"
import "math"
import "os"
import "strconv"
import "strings"

import "github.com/neurlang/churn/datasets"

// ErrSchema is returned when the file does not match the declared Schema.
var ErrSchema = errors.New("telco: schema mismatch")

// Load reads the dataset at path. A missing file yields an error matching fs.ErrNotExist.
func Load(path string) (*datasets.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("telco: open dataset: %w", err)
	}
	defer file.Close()
	frame, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("telco: read %s: %w", path, err)
	}
	return frame, nil
}

// Read parses CSV data against Schema. Columns come out in schema order; columns the
// schema does not declare are ignored.
func Read(r io.Reader) (*datasets.Frame, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrSchema)
	}
	if err != nil {
		return nil, err
	}
	var position = make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		position[strings.TrimSpace(name)] = i
	}
	var columns = make([]datasets.Column, len(Schema))
	var at = make([]int, len(Schema))
	for i, f := range Schema {
		p, ok := position[f.Name]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrSchema, f.Name)
		}
		at[i] = p
		columns[i] = datasets.Column{Name: f.Name, Kind: f.Role.Raw()}
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, f := range Schema {
			value := record[at[i]]
			if f.Role.Raw() == datasets.Numeric {
				num, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d column %q: %q is not numeric", ErrSchema, line, f.Name, value)
				}
				if math.IsNaN(num) || math.IsInf(num, 0) {
					return nil, fmt.Errorf("%w: line %d column %q: %q is not finite", ErrSchema, line, f.Name, value)
				}
				columns[i].Num = append(columns[i].Num, num)
			} else {
				columns[i].Str = append(columns[i].Str, value)
			}
		}
	}
	return datasets.NewFrame(columns...)
}

// Write writes the schema columns of frame as CSV, in schema order.
func Write(w io.Writer, frame *datasets.Frame) error {
	cw := csv.NewWriter(w)
	var header = make([]string, len(Schema))
	var columns = make([]datasets.Column, len(Schema))
	for i, f := range Schema {
		c, ok := frame.Column(f.Name)
		if !ok {
			return fmt.Errorf("%w: missing column %q", ErrSchema, f.Name)
		}
		header[i] = f.Name
		columns[i] = c
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	var record = make([]string, len(Schema))
	for r := 0; r < frame.Len(); r++ {
		for i, c := range columns {
			if c.Kind == datasets.Numeric {
				record[i] = strconv.FormatFloat(c.Num[r], 'f', -1, 64)
			} else {
				record[i] = c.Str[r]
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
