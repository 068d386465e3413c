package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so several collectors can coexist in
// one process (tests build one each).
type Collector struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration prometheus.Histogram
	documents       *prometheus.CounterVec
	renderDuration  prometheus.Histogram
	inFlight        prometheus.Gauge
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payslip_http_requests_total",
			Help: "HTTP requests by status code",
		}, []string{"status"}),
		requestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "payslip_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}),
		documents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payslip_documents_total",
			Help: "Payslip generations by outcome",
		}, []string{"outcome"}),
		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "payslip_generation_duration_seconds",
			Help:    "Time from request to saved document",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "payslip_generations_in_progress",
			Help: "Payslip generations currently running",
		}),
	}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.WithLabelValues(strconv.Itoa(status)).Inc()
	c.requestDuration.Observe(duration.Seconds())
}

func (c *Collector) ObserveDocument(outcome string, duration time.Duration) {
	c.documents.WithLabelValues(outcome).Inc()
	c.renderDuration.Observe(duration.Seconds())
}

// Begin and End bracket one generation; together they satisfy
// payslip.Indicator.
func (c *Collector) Begin() { c.inFlight.Inc() }
func (c *Collector) End()   { c.inFlight.Dec() }

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
