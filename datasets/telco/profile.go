package telco

import "errors"
import "fmt"
import "math"
import "strconv"

import "github.com/neurlang/churn/datasets"

// ErrProfile is returned when a profile value falls outside its declared choices or range.
var ErrProfile = errors.New("telco: invalid profile")

// Choice is a selector with a fixed set of options, the first is the default
type Choice struct {
	Field   string   `json:"field"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// Range is a numeric input with declared bounds
type Range struct {
	Field   string  `json:"field"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
}

var serviceOptions = []string{"Yes", "No", "No internet service"}

// Choices are the selectors of the prediction form
var Choices = []Choice{
	{Gender, "Gender", []string{"Male", "Female"}},
	{Contract, "Contract", []string{"Month-to-month", "One year", "Two year"}},
	{InternetService, "Internet Service", []string{"DSL", "Fiber optic", "No"}},
	{PaymentMethod, "Payment Method", []string{"Electronic check", "Mailed check", "Bank transfer (automatic)", "Credit card (automatic)"}},
	{Partner, "Has a partner?", []string{"Yes", "No"}},
	{Dependents, "Has dependents?", []string{"Yes", "No"}},
	{SeniorCitizen, "Senior Citizen?", []string{"0", "1"}},
	{TechSupport, "Tech Support", serviceOptions},
	{OnlineSecurity, "Online Security", serviceOptions},
}

// Ranges are the numeric inputs of the prediction form
var Ranges = []Range{
	{Tenure, "Tenure (months)", 0, 72, 24, 1},
	{MonthlyCharges, "Monthly Charges ($)", 0, 200, 50, 0.01},
	{TotalCharges, "Total Charges ($)", 0, 10000, 1000, 0.01},
}

// Profile is a hypothetical customer entered on the prediction form.
type Profile struct {
	Gender          string  `json:"gender"`
	Contract        string  `json:"Contract"`
	InternetService string  `json:"InternetService"`
	PaymentMethod   string  `json:"PaymentMethod"`
	Partner         string  `json:"Partner"`
	Dependents      string  `json:"Dependents"`
	SeniorCitizen   int     `json:"SeniorCitizen"`
	TechSupport     string  `json:"TechSupport"`
	OnlineSecurity  string  `json:"OnlineSecurity"`
	Tenure          int     `json:"tenure"`
	MonthlyCharges  float64 `json:"MonthlyCharges"`
	TotalCharges    float64 `json:"TotalCharges"`
}

// DefaultProfile has every field at its declared default
func DefaultProfile() (p Profile) {
	for _, c := range Choices {
		_ = p.Set(c.Field, c.Options[0])
	}
	for _, r := range Ranges {
		_ = p.Set(r.Field, strconv.FormatFloat(r.Default, 'f', -1, 64))
	}
	return
}

// Set assigns a field from its textual form value.
func (p *Profile) Set(field, value string) error {
	switch field {
	case Gender:
		p.Gender = value
	case Contract:
		p.Contract = value
	case InternetService:
		p.InternetService = value
	case PaymentMethod:
		p.PaymentMethod = value
	case Partner:
		p.Partner = value
	case Dependents:
		p.Dependents = value
	case TechSupport:
		p.TechSupport = value
	case OnlineSecurity:
		p.OnlineSecurity = value
	case SeniorCitizen, Tenure:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %q is not an integer", ErrProfile, field, value)
		}
		if field == Tenure {
			p.Tenure = n
		} else {
			p.SeniorCitizen = n
		}
	case MonthlyCharges, TotalCharges:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Errorf("%w: %s: %q is not a number", ErrProfile, field, value)
		}
		if field == MonthlyCharges {
			p.MonthlyCharges = n
		} else {
			p.TotalCharges = n
		}
	default:
		return fmt.Errorf("%w: unknown field %q", ErrProfile, field)
	}
	return nil
}

// Get returns the textual form value of a field
func (p Profile) Get(field string) string {
	switch field {
	case Gender:
		return p.Gender
	case Contract:
		return p.Contract
	case InternetService:
		return p.InternetService
	case PaymentMethod:
		return p.PaymentMethod
	case Partner:
		return p.Partner
	case Dependents:
		return p.Dependents
	case TechSupport:
		return p.TechSupport
	case OnlineSecurity:
		return p.OnlineSecurity
	case SeniorCitizen:
		return strconv.Itoa(p.SeniorCitizen)
	case Tenure:
		return strconv.Itoa(p.Tenure)
	case MonthlyCharges:
		return strconv.FormatFloat(p.MonthlyCharges, 'f', -1, 64)
	case TotalCharges:
		return strconv.FormatFloat(p.TotalCharges, 'f', -1, 64)
	}
	return ""
}

func (p Profile) number(field string) float64 {
	switch field {
	case Tenure:
		return float64(p.Tenure)
	case MonthlyCharges:
		return p.MonthlyCharges
	case TotalCharges:
		return p.TotalCharges
	}
	return 0
}

// Validate checks the profile against Choices and Ranges.
func (p Profile) Validate() error {
	for _, c := range Choices {
		v := p.Get(c.Field)
		var found bool
		for _, o := range c.Options {
			if o == v {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s: %q is not one of %q", ErrProfile, c.Field, v, c.Options)
		}
	}
	for _, r := range Ranges {
		v := p.number(r.Field)
		if !(v >= r.Min && v <= r.Max) {
			return fmt.Errorf("%w: %s: %v is outside [%v, %v]", ErrProfile, r.Field, v, r.Min, r.Max)
		}
	}
	return nil
}

// Frame builds the one row feature frame the pipeline expects. Fields the form does not
// expose are fixed: phone service and paperless billing on, add-on services off.
func (p Profile) Frame() (*datasets.Frame, error) {
	return datasets.NewFrame(
		datasets.TextColumn(Gender, p.Gender),
		datasets.NumericColumn(SeniorCitizen, float64(p.SeniorCitizen)),
		datasets.NumericColumn(Partner, Binary(p.Partner)),
		datasets.NumericColumn(Dependents, Binary(p.Dependents)),
		datasets.NumericColumn(Tenure, float64(p.Tenure)),
		datasets.NumericColumn(PhoneService, 1),
		datasets.TextColumn(MultipleLines, "No"),
		datasets.TextColumn(InternetService, p.InternetService),
		datasets.TextColumn(OnlineSecurity, p.OnlineSecurity),
		datasets.TextColumn(OnlineBackup, "No"),
		datasets.TextColumn(DeviceProtection, "No"),
		datasets.TextColumn(TechSupport, p.TechSupport),
		datasets.TextColumn(StreamingTV, "No"),
		datasets.TextColumn(StreamingMovies, "No"),
		datasets.TextColumn(Contract, p.Contract),
		datasets.NumericColumn(PaperlessBilling, 1),
		datasets.TextColumn(PaymentMethod, p.PaymentMethod),
		datasets.NumericColumn(MonthlyCharges, p.MonthlyCharges),
		datasets.NumericColumn(TotalCharges, p.TotalCharges),
	)
}
