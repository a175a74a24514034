package telco

import "fmt"
import "math"
import "math/rand"
import "os"

import "github.com/neurlang/churn/datasets"

// Synthetic generates a raw frame shaped like the Telco file with exactly churned rows
// labeled "Yes". The first blanks non churned rows (in shuffled order) get tenure 0 and a
// blank TotalCharges, like new customers in the real file.
func Synthetic(rows, churned, blanks int, seed int64) *datasets.Frame {
	if churned > rows {
		churned = rows
	}
	if blanks > rows-churned {
		blanks = rows - churned
	}
	rng := rand.New(rand.NewSource(seed))

	var outcome = make([]byte, rows)
	perm := rng.Perm(rows)
	for i, r := range perm {
		switch {
		case i < churned:
			outcome[r] = 'y'
		case i < churned+blanks:
			outcome[r] = 'b'
		default:
			outcome[r] = 'n'
		}
	}

	pick := func(options ...string) string {
		return options[rng.Intn(len(options))]
	}
	yesNo := func(p float64) string {
		if rng.Float64() < p {
			return "Yes"
		}
		return "No"
	}
	var text = make(map[string][]string)
	var num = make(map[string][]float64)
	for r := 0; r < rows; r++ {
		churn := outcome[r] == 'y'

		internet := pick("DSL", "Fiber optic", "No")
		contract := pick("Month-to-month", "One year", "Two year")
		payment := pick("Electronic check", "Mailed check", "Bank transfer (automatic)", "Credit card (automatic)")
		tenure := 1 + rng.Intn(72)
		if churn {
			if rng.Float64() < 0.7 {
				internet = "Fiber optic"
			}
			if rng.Float64() < 0.8 {
				contract = "Month-to-month"
			}
			if rng.Float64() < 0.6 {
				payment = "Electronic check"
			}
			tenure = 1 + rng.Intn(24)
		}
		if outcome[r] == 'b' {
			tenure = 0
		}
		phone := yesNo(0.9)
		lines := "No phone service"
		if phone == "Yes" {
			lines = yesNo(0.4)
		}
		service := func() string {
			if internet == "No" {
				return "No internet service"
			}
			return yesNo(0.4)
		}
		monthly := 20 + 20*rng.Float64()
		switch internet {
		case "DSL":
			monthly += 30
		case "Fiber optic":
			monthly += 50
		}
		monthly = math.Round(monthly*100) / 100
		total := " "
		if outcome[r] != 'b' {
			total = fmt.Sprintf("%.2f", monthly*float64(tenure))
		}
		senior := 0.0
		if rng.Intn(5) == 0 {
			senior = 1
		}
		label := "No"
		if churn {
			label = "Yes"
		}

		text[CustomerID] = append(text[CustomerID], fmt.Sprintf("%04d-SYNTH", r))
		text[Gender] = append(text[Gender], pick("Male", "Female"))
		num[SeniorCitizen] = append(num[SeniorCitizen], senior)
		text[Partner] = append(text[Partner], yesNo(0.5))
		text[Dependents] = append(text[Dependents], yesNo(0.3))
		num[Tenure] = append(num[Tenure], float64(tenure))
		text[PhoneService] = append(text[PhoneService], phone)
		text[MultipleLines] = append(text[MultipleLines], lines)
		text[InternetService] = append(text[InternetService], internet)
		text[OnlineSecurity] = append(text[OnlineSecurity], service())
		text[OnlineBackup] = append(text[OnlineBackup], service())
		text[DeviceProtection] = append(text[DeviceProtection], service())
		text[TechSupport] = append(text[TechSupport], service())
		text[StreamingTV] = append(text[StreamingTV], service())
		text[StreamingMovies] = append(text[StreamingMovies], service())
		text[Contract] = append(text[Contract], contract)
		text[PaperlessBilling] = append(text[PaperlessBilling], yesNo(0.6))
		text[PaymentMethod] = append(text[PaymentMethod], payment)
		num[MonthlyCharges] = append(num[MonthlyCharges], monthly)
		text[TotalCharges] = append(text[TotalCharges], total)
		text[Churn] = append(text[Churn], label)
	}

	var columns = make([]datasets.Column, len(Schema))
	for i, f := range Schema {
		if f.Role.Raw() == datasets.Numeric {
			columns[i] = datasets.NumericColumn(f.Name, num[f.Name]...)
		} else {
			columns[i] = datasets.TextColumn(f.Name, text[f.Name]...)
		}
	}
	frame, err := datasets.NewFrame(columns...)
	if err != nil {
		panic(err.Error())
	}
	return frame
}

// WriteSynthetic writes a synthetic dataset of rows customers to path. About a quarter
// of them churn, in line with the real file, and one in two hundred has a blank total.
func WriteSynthetic(path string, rows int, seed int64) error {
	if rows <= 0 {
		return fmt.Errorf("telco: synthetic dataset needs at least one row, got %d", rows)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("telco: create dataset: %w", err)
	}
	if err := Write(file, Synthetic(rows, rows*265/1000, rows/200, seed)); err != nil {
		file.Close()
		return fmt.Errorf("telco: write %s: %w", path, err)
	}
	return file.Close()
}
