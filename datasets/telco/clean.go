package telco

import "fmt"
import "strings"

import "github.com/shopspring/decimal"

import "github.com/neurlang/churn/datasets"

// Report describes what Clean did to the raw rows
type Report struct {
	Rows        int // rows read
	DroppedRows int // rows excluded because TotalCharges did not parse

	// Coerced counts, per Flag or Label column, values that were neither "Yes" nor "No"
	// and were therefore taken as 0.
	Coerced map[string]int
}

// Coercions sums Coerced over all columns
func (r Report) Coercions() (n int) {
	for _, v := range r.Coerced {
		n += v
	}
	return
}

// ParseMoney parses an amount the way TotalCharges is parsed. Surrounding spaces are
// ignored; a blank or non-numeric value reports false.
func ParseMoney(value string) (float64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// Clean turns the raw frame into model features and 0/1 labels.
//
// Rows whose TotalCharges does not parse are dropped, the identifier is dropped and the
// Flag and Label fields become 1 for "Yes" and 0 otherwise.
func Clean(raw *datasets.Frame) (features *datasets.Frame, labels []float64, report Report, err error) {
	report.Rows = raw.Len()
	report.Coerced = make(map[string]int)

	totals, err := raw.Text(TotalCharges)
	if err != nil {
		return nil, nil, report, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	var parsed = make([]float64, len(totals))
	var ok = make([]bool, len(totals))
	for r, v := range totals {
		parsed[r], ok[r] = ParseMoney(v)
		if !ok[r] {
			report.DroppedRows++
		}
	}
	var amounts = make([]float64, 0, len(totals)-report.DroppedRows)
	for r := range parsed {
		if ok[r] {
			amounts = append(amounts, parsed[r])
		}
	}

	frame := raw.Filter(func(r int) bool { return ok[r] })
	frame, err = frame.Replace(datasets.NumericColumn(TotalCharges, amounts...))
	if err != nil {
		return nil, nil, report, err
	}
	frame = frame.Drop(CustomerID)

	for _, f := range Schema {
		if f.Role != Flag && f.Role != Label {
			continue
		}
		values, err := frame.Text(f.Name)
		if err != nil {
			return nil, nil, report, fmt.Errorf("%w: %v", ErrSchema, err)
		}
		var binary = make([]float64, len(values))
		for r, v := range values {
			binary[r] = Binary(v)
			if v != "Yes" && v != "No" {
				report.Coerced[f.Name]++
			}
		}
		if frame, err = frame.Replace(datasets.NumericColumn(f.Name, binary...)); err != nil {
			return nil, nil, report, err
		}
	}

	labels, err = frame.Numeric(Churn)
	if err != nil {
		return nil, nil, report, err
	}
	return frame.Drop(Churn), labels, report, nil
}
