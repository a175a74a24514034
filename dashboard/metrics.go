package dashboard

import "github.com/prometheus/client_golang/prometheus"
import "github.com/prometheus/client_golang/prometheus/collectors"

type metrics struct {
	predictions *prometheus.CounterVec
	explore     *prometheus.CounterVec
	probability prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "churn_predictions_total",
			Help: "Predictions served, by risk verdict.",
		}, []string{"verdict"}),
		explore: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "churn_explore_requests_total",
			Help: "Exploration charts served, by feature.",
		}, []string{"feature"}),
		probability: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "churn_prediction_probability",
			Help:    "Predicted churn probabilities.",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 9),
		}),
	}
	reg.MustRegister(
		m.predictions,
		m.explore,
		m.probability,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) predicted(p float64, high bool) {
	verdict := "low"
	if high {
		verdict = "high"
	}
	m.predictions.WithLabelValues(verdict).Inc()
	m.probability.Observe(p)
}
