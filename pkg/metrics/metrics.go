package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa las métricas Prometheus de importación y verificación del catálogo.
type Metrics struct {
	DefinitionsImported    *prometheus.CounterVec
	ImportFailures         *prometheus.CounterVec
	ImportDuration         *prometheus.HistogramVec
	VerificationMismatches *prometheus.CounterVec
}

// New crea y registra las métricas en reg. Con reg nil se usa el registro global.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		DefinitionsImported: f.NewCounterVec(prometheus.CounterOpts{
			Name: "taxonomy_definitions_imported_total",
			Help: "Total de definiciones persistidas por tipo de entidad",
		}, []string{"kind"}),
		ImportFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "taxonomy_import_failures_total",
			Help: "Importaciones abortadas por tipo de entidad y motivo",
		}, []string{"kind", "reason"}),
		ImportDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taxonomy_import_duration_seconds",
			Help:    "Duración de cada lote de importación",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		VerificationMismatches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "taxonomy_verification_mismatches_total",
			Help: "Diferencias encontradas entre definiciones y registros almacenados",
		}, []string{"kind"}),
	}
}

// ObserveImport registra un lote importado con éxito.
func (m *Metrics) ObserveImport(kind string, records int, d time.Duration) {
	m.DefinitionsImported.WithLabelValues(kind).Add(float64(records))
	m.ImportDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// IncrementImportFailures registra un lote abortado.
func (m *Metrics) IncrementImportFailures(kind, reason string) {
	m.ImportFailures.WithLabelValues(kind, reason).Inc()
}

// AddVerificationMismatches suma diferencias detectadas por la verificación.
func (m *Metrics) AddVerificationMismatches(kind string, n int) {
	if n > 0 {
		m.VerificationMismatches.WithLabelValues(kind).Add(float64(n))
	}
}
