// Package dashboard serves the churn exploration chart, the headline figures and the
// prediction form over HTTP.
package dashboard

import "bytes"
import "embed"
import "encoding/json"
import "fmt"
import "html/template"
import "log/slog"
import "net/http"
import "strings"
import "time"

import "github.com/gorilla/mux"
import "github.com/prometheus/client_golang/prometheus"
import "github.com/prometheus/client_golang/prometheus/promhttp"

import "github.com/neurlang/churn/datasets"
import "github.com/neurlang/churn/datasets/telco"
import "github.com/neurlang/churn/inference"

//go:embed templates/*.html
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/*.html"))

// App holds the dataset and the model for the lifetime of the server. It is not
// modified after construction.
type App struct {
	raw   *datasets.Frame
	model inference.Model
	log   *slog.Logger

	// err is why the dashboard cannot serve, nil when it can
	err error

	registry *prometheus.Registry
	metrics  *metrics
}

// New builds a dashboard over the raw dataset and a loaded model.
func New(raw *datasets.Frame, model inference.Model, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	if raw.Len() == 0 {
		return nil, ErrEmpty
	}
	if _, err := raw.Numeric(telco.MonthlyCharges); err != nil {
		return nil, err
	}
	if _, err := raw.Numeric(telco.Tenure); err != nil {
		return nil, err
	}
	for _, name := range append([]string{telco.Churn}, Features...) {
		if _, err := raw.Text(name); err != nil {
			return nil, err
		}
	}
	a := &App{raw: raw, model: model, log: log, registry: prometheus.NewRegistry()}
	a.metrics = newMetrics(a.registry)
	return a, nil
}

// NewUnavailable builds a dashboard answering every page with an error panel.
func NewUnavailable(err error) *App {
	a := &App{log: slog.Default(), err: err, registry: prometheus.NewRegistry()}
	a.metrics = newMetrics(a.registry)
	return a
}

// Handler routes the dashboard pages and API
func (a *App) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(a.logRequests)

	router.HandleFunc("/healthz", a.healthz).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	if a.err != nil {
		router.PathPrefix("/").HandlerFunc(a.unavailable)
		return router
	}

	router.HandleFunc("/", a.index).Methods(http.MethodGet)
	router.HandleFunc("/predict", a.predictForm).Methods(http.MethodPost)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/explore", a.apiExplore).Methods(http.MethodGet)
	api.HandleFunc("/kpis", a.apiKPIs).Methods(http.MethodGet)
	api.HandleFunc("/predict", a.apiPredict).Methods(http.MethodPost)
	api.HandleFunc("/schema", a.apiSchema).Methods(http.MethodGet)
	return router
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (a *App) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		a.log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Error("encode response", "error", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, status int, err error) {
	a.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// render executes a template fully before writing, so a failing template is a 500
// rather than a truncated page.
func (a *App) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, name, data); err != nil {
		a.log.Error("render page", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if a.err != nil {
		a.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": a.err.Error()})
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) unavailable(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		a.writeError(w, http.StatusServiceUnavailable, a.err)
		return
	}
	a.render(w, http.StatusServiceUnavailable, "unavailable", struct{ Error string }{fmt.Sprint(a.err)})
}
