package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus counters of the document API.
type Metrics struct {
	DocumentLoads *prometheus.CounterVec
	Validations   *prometheus.CounterVec
	ShareLinks    prometheus.Counter
	PDFRenders    prometheus.Counter
}

// NewMetrics registers the counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DocumentLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_document_loads_total",
			Help: "Document loads by source carrier (url, storage, default).",
		}, []string{"source"}),
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_document_validations_total",
			Help: "Edit cycles by validation outcome.",
		}, []string{"result"}),
		ShareLinks: factory.NewCounter(prometheus.CounterOpts{
			Name: "invoice_share_links_total",
			Help: "Share link parameters generated.",
		}),
		PDFRenders: factory.NewCounter(prometheus.CounterOpts{
			Name: "invoice_pdf_renders_total",
			Help: "PDF documents rendered.",
		}),
	}
}
