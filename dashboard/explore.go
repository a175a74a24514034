package dashboard

import "errors"
import "fmt"

import "github.com/neurlang/churn/datasets"
import "github.com/neurlang/churn/datasets/telco"

// Features are the columns the exploration chart can break churn down by
var Features = []string{telco.Contract, telco.InternetService, telco.Gender, telco.PaymentMethod, telco.TechSupport}

// ErrFeature is returned for an exploration feature outside Features
var ErrFeature = errors.New("dashboard: unknown exploration feature")

// series colors by churn outcome
var colors = map[string]string{
	"No":  "#4a90e2",
	"Yes": "#e74c3c",
}

const otherColor = "#95a5a6"

// Bar is the number of customers with one feature value and one churn outcome
type Bar struct {
	Value string `json:"value"`
	Churn string `json:"churn"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// Chart is a grouped bar chart of customer counts by feature value and churn outcome.
// Only pairs present in the data have a bar.
type Chart struct {
	Feature    string   `json:"feature"`
	Title      string   `json:"title"`
	XAxis      string   `json:"x_axis"`
	YAxis      string   `json:"y_axis"`
	Categories []string `json:"categories"`
	Series     []string `json:"series"`
	Bars       []Bar    `json:"bars"`
}

func known(feature string) bool {
	for _, f := range Features {
		if f == feature {
			return true
		}
	}
	return false
}

// Explore counts the raw rows of every (feature value, churn outcome) pair.
func Explore(raw *datasets.Frame, feature string) (*Chart, error) {
	if !known(feature) {
		return nil, fmt.Errorf("%w %q", ErrFeature, feature)
	}
	groups, err := raw.GroupCount(feature, telco.Churn)
	if err != nil {
		return nil, err
	}
	c := &Chart{
		Feature: feature,
		Title:   "Churn Distribution by " + feature,
		XAxis:   feature,
		YAxis:   "Number of Customers",
		Bars:    make([]Bar, 0, len(groups)),
	}
	var series = make(map[string]bool)
	for _, g := range groups {
		if n := len(c.Categories); n == 0 || c.Categories[n-1] != g.By {
			c.Categories = append(c.Categories, g.By)
		}
		series[g.Of] = true
		color, ok := colors[g.Of]
		if !ok {
			color = otherColor
		}
		c.Bars = append(c.Bars, Bar{Value: g.By, Churn: g.Of, Count: g.Count, Color: color})
	}
	for _, s := range []string{"No", "Yes"} {
		if series[s] {
			c.Series = append(c.Series, s)
			delete(series, s)
		}
	}
	// outcomes other than Yes and No come last, in group order
	for _, g := range groups {
		if series[g.Of] {
			c.Series = append(c.Series, g.Of)
			delete(series, g.Of)
		}
	}
	return c, nil
}
