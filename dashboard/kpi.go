package dashboard

import "errors"
import "fmt"

import "github.com/shopspring/decimal"

import "github.com/neurlang/churn/datasets"
import "github.com/neurlang/churn/datasets/telco"

// ErrEmpty is returned when the dataset has no rows to aggregate
var ErrEmpty = errors.New("dashboard: dataset has no rows")

// KPI is one headline figure
type KPI struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// KPIs are the headline figures over the full raw dataset
type KPIs struct {
	ChurnRate   KPI `json:"churn_rate"`
	MonthlyBill KPI `json:"avg_monthly_charges"`
	Tenure      KPI `json:"avg_tenure"`
}

// Cards lists the figures in display order
func (k KPIs) Cards() []KPI {
	return []KPI{k.ChurnRate, k.MonthlyBill, k.Tenure}
}

// ComputeKPIs aggregates the raw rows: the percentage of churned customers, the mean
// monthly charge and the mean tenure in months.
func ComputeKPIs(raw *datasets.Frame) (k KPIs, err error) {
	churn, err := raw.Text(telco.Churn)
	if err != nil {
		return k, err
	}
	if len(churn) == 0 {
		return k, ErrEmpty
	}
	var yes int
	for _, v := range churn {
		if v == "Yes" {
			yes++
		}
	}
	rate := 100 * float64(yes) / float64(len(churn))
	k.ChurnRate = KPI{Label: "Overall Churn Rate", Value: rate, Display: fmt.Sprintf("%.2f%%", rate)}

	monthly, err := raw.Numeric(telco.MonthlyCharges)
	if err != nil {
		return k, err
	}
	var sum decimal.Decimal
	for _, v := range monthly {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(monthly))))
	k.MonthlyBill = KPI{Label: "Avg. Monthly Bill", Value: mean.InexactFloat64(), Display: "$" + mean.StringFixed(2)}

	tenure, err := raw.Mean(telco.Tenure)
	if err != nil {
		return k, err
	}
	k.Tenure = KPI{Label: "Avg. Tenure", Value: tenure, Display: fmt.Sprintf("%.1f mo.", tenure)}
	return k, nil
}
