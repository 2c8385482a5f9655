package jwtinspect

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/jwtinspect/core/analyzer"
	"github.com/dmitrymomot/jwtinspect/pkg/jwt"
)

// Metrics counts what the engine was asked to do.
type Metrics struct {
	analyses      *prometheus.CounterVec
	generations   *prometheus.CounterVec
	historyErrors *prometheus.CounterVec
}

// NewMetrics registers the collectors under namespace with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jwt",
			Name:      "analyses_total",
			Help:      "Analyzed tokens by structure and signature outcome.",
		}, []string{"structure", "signature"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jwt",
			Name:      "generations_total",
			Help:      "Token generation attempts by algorithm and result.",
		}, []string{"algorithm", "result"}),
		historyErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "errors_total",
			Help:      "Failed history operations.",
		}, []string{"operation"}),
	}
	for _, c := range []prometheus.Collector{m.analyses, m.generations, m.historyErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	// Expose zero-valued series for every algorithm before the first request.
	for _, alg := range jwt.Algorithms() {
		m.generations.WithLabelValues(alg.String(), "ok")
		m.generations.WithLabelValues(alg.String(), "error")
	}
	return m, nil
}

func (m *Metrics) observeAnalysis(res analyzer.Result) {
	structure := "invalid"
	if res.StructurallyValid() {
		structure = "valid"
	}
	m.analyses.WithLabelValues(structure, res.Signature.String()).Inc()
}

func (m *Metrics) observeGeneration(alg string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	if _, perr := jwt.ParseAlgorithm(alg); perr != nil {
		alg = "unsupported"
	}
	m.generations.WithLabelValues(alg, result).Inc()
}

func (m *Metrics) historyFailed(op string) {
	m.historyErrors.WithLabelValues(op).Inc()
}
