// Package telco implements the Telco customer churn dataset: its declared schema, the
// CSV loader, the cleaning step feeding the trainer and the prediction profile.
package telco

import "github.com/neurlang/churn/datasets"

// Field names of the Telco customer churn CSV
const (
	CustomerID       = "customerID"
	Gender           = "gender"
	SeniorCitizen    = "SeniorCitizen"
	Partner          = "Partner"
	Dependents       = "Dependents"
	Tenure           = "tenure"
	PhoneService     = "PhoneService"
	MultipleLines    = "MultipleLines"
	InternetService  = "InternetService"
	OnlineSecurity   = "OnlineSecurity"
	OnlineBackup     = "OnlineBackup"
	DeviceProtection = "DeviceProtection"
	TechSupport      = "TechSupport"
	StreamingTV      = "StreamingTV"
	StreamingMovies  = "StreamingMovies"
	Contract         = "Contract"
	PaperlessBilling = "PaperlessBilling"
	PaymentMethod    = "PaymentMethod"
	MonthlyCharges   = "MonthlyCharges"
	TotalCharges     = "TotalCharges"
	Churn            = "Churn"
)

// Role is the semantic type of a field
type Role byte

const (
	// Identifier is unique per row and not predictive
	Identifier Role = iota
	// Categorical is free text expanded into indicator columns
	Categorical
	// Numeric is a number stored as a number in the file
	Numeric
	// Flag is a Yes/No text converted to 1/0
	Flag
	// Money is an amount stored as text, unparseable rows are dropped
	Money
	// Label is the Yes/No outcome
	Label
)

// Raw reports the kind a field of this role has in the file.
func (r Role) Raw() datasets.Kind {
	if r == Numeric {
		return datasets.Numeric
	}
	return datasets.Text
}

// Cleaned reports the kind a field of this role has after Clean.
func (r Role) Cleaned() datasets.Kind {
	if r == Identifier || r == Categorical {
		return datasets.Text
	}
	return datasets.Numeric
}

// Field is one declared column
type Field struct {
	Name string
	Role Role
}

// Schema is the declared, ordered schema of the dataset.
var Schema = []Field{
	{CustomerID, Identifier},
	{Gender, Categorical},
	{SeniorCitizen, Numeric},
	{Partner, Flag},
	{Dependents, Flag},
	{Tenure, Numeric},
	{PhoneService, Flag},
	{MultipleLines, Categorical},
	{InternetService, Categorical},
	{OnlineSecurity, Categorical},
	{OnlineBackup, Categorical},
	{DeviceProtection, Categorical},
	{TechSupport, Categorical},
	{StreamingTV, Categorical},
	{StreamingMovies, Categorical},
	{Contract, Categorical},
	{PaperlessBilling, Flag},
	{PaymentMethod, Categorical},
	{MonthlyCharges, Numeric},
	{TotalCharges, Money},
	{Churn, Label},
}

// NumericalFeatures are the standardized inputs of the model, in schema order.
func NumericalFeatures() (names []string) {
	for _, f := range Schema {
		switch f.Role {
		case Numeric, Flag, Money:
			names = append(names, f.Name)
		}
	}
	return
}

// CategoricalFeatures are the one-hot encoded inputs of the model, in schema order.
func CategoricalFeatures() (names []string) {
	for _, f := range Schema {
		if f.Role == Categorical {
			names = append(names, f.Name)
		}
	}
	return
}

// Binary converts a Yes/No value, anything but the exact "Yes" is 0.
func Binary(value string) float64 {
	if value == "Yes" {
		return 1
	}
	return 0
}
