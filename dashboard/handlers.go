package dashboard

import "encoding/json"
import "errors"
import "net/http"
import "strconv"

import "github.com/neurlang/churn/datasets/telco"
import "github.com/neurlang/churn/inference"

type option struct {
	Value    string
	Selected bool
}

type formField struct {
	Field   string
	Label   string
	Slider  bool
	Options []option
	Min     string
	Max     string
	Step    string
	Value   string
}

type pageData struct {
	Feature  string
	Features []option
	Chart    svgChart
	KPIs     KPIs
	Form     []formField
	Result   *inference.Result
	Error    string
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// form lists the prediction widgets holding the values of p
func form(p telco.Profile) (fields []formField) {
	for _, c := range telco.Choices {
		f := formField{Field: c.Field, Label: c.Label}
		for _, o := range c.Options {
			f.Options = append(f.Options, option{Value: o, Selected: o == p.Get(c.Field)})
		}
		fields = append(fields, f)
	}
	for _, r := range telco.Ranges {
		fields = append(fields, formField{
			Field:  r.Field,
			Label:  r.Label,
			Slider: r.Field == telco.Tenure,
			Min:    format(r.Min),
			Max:    format(r.Max),
			Step:   format(r.Step),
			Value:  p.Get(r.Field),
		})
	}
	return
}

// view assembles the page for one exploration feature and the current form values.
func (a *App) view(feature string, p telco.Profile) (*pageData, error) {
	chart, err := Explore(a.raw, feature)
	if err != nil {
		return nil, err
	}
	a.metrics.explore.WithLabelValues(feature).Inc()
	kpis, err := ComputeKPIs(a.raw)
	if err != nil {
		return nil, err
	}
	data := &pageData{
		Feature: feature,
		Chart:   layout(chart),
		KPIs:    kpis,
		Form:    form(p),
	}
	for _, f := range Features {
		data.Features = append(data.Features, option{Value: f, Selected: f == feature})
	}
	return data, nil
}

func feature(r *http.Request) string {
	if f := r.FormValue("feature"); f != "" {
		return f
	}
	return telco.Contract
}

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	data, err := a.view(feature(r), telco.DefaultProfile())
	if errors.Is(err, ErrFeature) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		a.log.Error("build page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	a.render(w, http.StatusOK, "index", data)
}

// predict scores a profile and records the outcome
func (a *App) predict(p telco.Profile) (inference.Result, error) {
	res, err := inference.Predict(a.model, p)
	if err != nil {
		return res, err
	}
	a.metrics.predicted(res.Probability, res.High)
	a.log.Info("prediction", "request_id", res.RequestID, "probability", res.Probability, "high_risk", res.High)
	return res, nil
}

func (a *App) predictForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	profile := telco.DefaultProfile()
	var invalid error
	for _, f := range form(profile) {
		if v := r.PostForm.Get(f.Field); v != "" {
			if err := profile.Set(f.Field, v); err != nil && invalid == nil {
				invalid = err
			}
		}
	}
	var res inference.Result
	if invalid == nil {
		res, invalid = a.predict(profile)
	}
	if invalid != nil && !errors.Is(invalid, telco.ErrProfile) {
		a.log.Error("predict", "error", invalid)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data, err := a.view(feature(r), profile)
	if errors.Is(err, ErrFeature) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		a.log.Error("build page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if invalid != nil {
		data.Error = invalid.Error()
		a.render(w, http.StatusBadRequest, "index", data)
		return
	}
	data.Result = &res
	a.render(w, http.StatusOK, "index", data)
}

func (a *App) apiExplore(w http.ResponseWriter, r *http.Request) {
	f := feature(r)
	chart, err := Explore(a.raw, f)
	if errors.Is(err, ErrFeature) {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, err)
		return
	}
	a.metrics.explore.WithLabelValues(f).Inc()
	a.writeJSON(w, http.StatusOK, chart)
}

func (a *App) apiKPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := ComputeKPIs(a.raw)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, err)
		return
	}
	a.writeJSON(w, http.StatusOK, kpis)
}

// apiPredict scores a JSON profile. Omitted fields take their defaults.
func (a *App) apiPredict(w http.ResponseWriter, r *http.Request) {
	profile := telco.DefaultProfile()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&profile); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := a.predict(profile)
	if errors.Is(err, telco.ErrProfile) {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		a.log.Error("predict", "error", err)
		a.writeError(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}
	a.writeJSON(w, http.StatusOK, res)
}

type schema struct {
	Features []string       `json:"features"`
	Choices  []telco.Choice `json:"choices"`
	Ranges   []telco.Range  `json:"ranges"`
}

func (a *App) apiSchema(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, schema{Features: Features, Choices: telco.Choices, Ranges: telco.Ranges})
}
