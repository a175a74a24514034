package telco

import (
	"bytes"
	"io/fs"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/churn/datasets"
)

const header = "customerID,gender,SeniorCitizen,Partner,Dependents,tenure,PhoneService,MultipleLines," +
	"InternetService,OnlineSecurity,OnlineBackup,DeviceProtection,TechSupport,StreamingTV,StreamingMovies," +
	"Contract,PaperlessBilling,PaymentMethod,MonthlyCharges,TotalCharges,Churn\n"

func row(id, partner, total, churn string) string {
	return id + ",Female,0," + partner + ",No,12,Yes,No,DSL,No,Yes,No,No,No,No,Month-to-month,Yes,Electronic check,29.85," + total + "," + churn + "\n"
}

func TestReadSchemaOrder(t *testing.T) {
	frame, err := Read(strings.NewReader(header + row("A", "Yes", "29.85", "No")))
	require.NoError(t, err)
	require.Equal(t, 1, frame.Len())

	var want []string
	for _, f := range Schema {
		want = append(want, f.Name)
	}
	assert.Equal(t, want, frame.Names())

	tenure, err := frame.Numeric(Tenure)
	require.NoError(t, err)
	assert.Equal(t, []float64{12}, tenure)

	totals, err := frame.Text(TotalCharges)
	require.NoError(t, err)
	assert.Equal(t, []string{"29.85"}, totals)
}

func TestReadMissingColumn(t *testing.T) {
	broken := strings.Replace(header, ",Contract", ",Kontrakt", 1)
	_, err := Read(strings.NewReader(broken + row("A", "Yes", "1", "No")))
	require.ErrorIs(t, err, ErrSchema)
	assert.Contains(t, err.Error(), "Contract")
}

func TestReadNonNumeric(t *testing.T) {
	bad := strings.Replace(row("A", "Yes", "1", "No"), ",12,", ",twelve,", 1)
	_, err := Read(strings.NewReader(header + bad))
	require.ErrorIs(t, err, ErrSchema)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), Tenure)
}

func TestReadNonFinite(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-inf", "+Infinity"} {
		bad := strings.Replace(row("A", "Yes", "1", "No"), ",29.85,", ","+v+",", 1)
		_, err := Read(strings.NewReader(header + row("B", "No", "2", "No") + bad))
		require.ErrorIs(t, err, ErrSchema, v)
		assert.Contains(t, err.Error(), "line 3", v)
		assert.Contains(t, err.Error(), MonthlyCharges, v)
	}
	bad := strings.Replace(row("A", "Yes", "1", "No"), ",12,", ",NaN,", 1)
	_, err := Read(strings.NewReader(header + bad))
	require.ErrorIs(t, err, ErrSchema)
	assert.Contains(t, err.Error(), Tenure)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCleanDropsUnparseableTotals(t *testing.T) {
	data := header +
		row("A", "Yes", "29.85", "No") +
		row("B", "No", " ", "Yes") +
		row("C", "No", "1889.5", "No") +
		row("D", "Yes", "n/a", "Yes") +
		row("E", "No", "", "No") +
		row("F", "No", " 108.15 ", "Yes")
	raw, err := Read(strings.NewReader(data))
	require.NoError(t, err)

	features, labels, report, err := Clean(raw)
	require.NoError(t, err)

	assert.Equal(t, 6, report.Rows)
	assert.Equal(t, 3, report.DroppedRows)
	assert.Equal(t, raw.Len()-3, features.Len())
	assert.Equal(t, []float64{0, 0, 1}, labels)

	totals, err := features.Numeric(TotalCharges)
	require.NoError(t, err)
	assert.Equal(t, []float64{29.85, 1889.5, 108.15}, totals)

	_, ok := features.Column(CustomerID)
	assert.False(t, ok, "identifier must be dropped")
	_, ok = features.Column(Churn)
	assert.False(t, ok, "label must not be a feature")
}

func TestCleanBinaryRule(t *testing.T) {
	data := header +
		row("A", "Yes", "1", "Yes") +
		row("B", "No", "1", "No") +
		row("C", "maybe", "1", "No") +
		row("D", "yes", "1", "unknown")
	raw, err := Read(strings.NewReader(data))
	require.NoError(t, err)

	features, labels, report, err := Clean(raw)
	require.NoError(t, err)

	partner, err := features.Numeric(Partner)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 0}, partner)
	assert.Equal(t, []float64{1, 0, 0, 0}, labels)

	assert.Equal(t, 2, report.Coerced[Partner])
	assert.Equal(t, 1, report.Coerced[Churn])
	assert.Equal(t, 3, report.Coercions())
}

func TestCleanColumnRoles(t *testing.T) {
	features, _, _, err := Clean(Synthetic(20, 5, 2, 1))
	require.NoError(t, err)

	assert.Equal(t, []string{SeniorCitizen, Partner, Dependents, Tenure, PhoneService, PaperlessBilling, MonthlyCharges, TotalCharges}, NumericalFeatures())
	for _, name := range NumericalFeatures() {
		c, ok := features.Column(name)
		require.True(t, ok, name)
		assert.Equal(t, datasets.Numeric, c.Kind, name)
	}
	for _, name := range CategoricalFeatures() {
		c, ok := features.Column(name)
		require.True(t, ok, name)
		assert.Equal(t, datasets.Text, c.Kind, name)
	}
	assert.Equal(t, len(NumericalFeatures())+len(CategoricalFeatures()), features.Width())
}

func TestSyntheticChurnCount(t *testing.T) {
	raw := Synthetic(100, 30, 4, 7)
	require.Equal(t, 100, raw.Len())

	churn, err := raw.Text(Churn)
	require.NoError(t, err)
	var yes int
	for _, v := range churn {
		if v == "Yes" {
			yes++
		}
	}
	assert.Equal(t, 30, yes)

	_, _, report, err := Clean(raw)
	require.NoError(t, err)
	assert.Equal(t, 4, report.DroppedRows)
}

func TestWriteReadRoundTrip(t *testing.T) {
	raw := Synthetic(50, 10, 3, 3)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, raw))

	again, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, raw.Len(), again.Len())
	for i := 0; i < raw.Width(); i++ {
		assert.Equal(t, raw.At(i), again.At(i))
	}
}

func TestWriteSynthetic(t *testing.T) {
	name := filepath.Join(t.TempDir(), "synthetic.csv")
	require.NoError(t, WriteSynthetic(name, 1000, 42))

	raw, err := Load(name)
	require.NoError(t, err)
	require.Equal(t, 1000, raw.Len())
	features, labels, report, err := Clean(raw)
	require.NoError(t, err)
	assert.Equal(t, 5, report.DroppedRows)
	assert.Equal(t, 995, features.Len())
	var churned int
	for _, l := range labels {
		if l == 1 {
			churned++
		}
	}
	assert.Equal(t, 265, churned)

	assert.Error(t, WriteSynthetic(filepath.Join(t.TempDir(), "empty.csv"), 0, 1))
	assert.Error(t, WriteSynthetic(filepath.Join(t.TempDir(), "absent", "x.csv"), 10, 1))
}

func TestProfile(t *testing.T) {
	p := DefaultProfile()
	require.NoError(t, p.Validate())
	assert.Equal(t, "Male", p.Gender)
	assert.Equal(t, 24, p.Tenure)
	assert.Equal(t, 50.0, p.MonthlyCharges)
	assert.Equal(t, 1000.0, p.TotalCharges)

	bad := p
	bad.Contract = "Three year"
	assert.ErrorIs(t, bad.Validate(), ErrProfile)

	bad = p
	bad.Tenure = 73
	assert.ErrorIs(t, bad.Validate(), ErrProfile)

	bad = p
	bad.MonthlyCharges = math.NaN()
	assert.ErrorIs(t, bad.Validate(), ErrProfile)

	bad = p
	bad.TotalCharges = math.Inf(1)
	assert.ErrorIs(t, bad.Validate(), ErrProfile)

	assert.ErrorIs(t, p.Set(Tenure, "abc"), ErrProfile)
	assert.ErrorIs(t, p.Set("Colour", "red"), ErrProfile)
	assert.ErrorIs(t, p.Set(MonthlyCharges, "NaN"), ErrProfile)
	assert.ErrorIs(t, p.Set(TotalCharges, "-Inf"), ErrProfile)
	assert.Equal(t, 50.0, p.MonthlyCharges)
}

func TestProfileFrameMatchesCleanedColumns(t *testing.T) {
	features, _, _, err := Clean(Synthetic(10, 3, 0, 1))
	require.NoError(t, err)

	frame, err := DefaultProfile().Frame()
	require.NoError(t, err)
	require.Equal(t, 1, frame.Len())
	assert.Equal(t, features.Names(), frame.Names())
	for i := 0; i < frame.Width(); i++ {
		assert.Equal(t, features.At(i).Kind, frame.At(i).Kind, frame.At(i).Name)
	}
}
