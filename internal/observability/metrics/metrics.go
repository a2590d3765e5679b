package metrics

import "github.com/prometheus/client_golang/prometheus"

// DispatchMetrics exposes counters/histograms for function-call dispatch.
type DispatchMetrics struct {
	dispatchTotal   *prometheus.CounterVec
	dispatchLatency *prometheus.HistogramVec
	upstreamTotal   *prometheus.CounterVec
}

func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	m := &DispatchMetrics{
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "consult",
			Subsystem: "dispatch",
			Name:      "function_calls_total",
			Help:      "Total dispatched agent function calls",
		}, []string{"function", "status"}),
		dispatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "consult",
			Subsystem: "dispatch",
			Name:      "function_call_latency_seconds",
			Help:      "Latency of agent function call handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"function"}),
		upstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "consult",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total calls to the scheduling API",
		}, []string{"operation", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.dispatchTotal, m.dispatchLatency, m.upstreamTotal)
	return m
}

func (m *DispatchMetrics) ObserveDispatch(function, status string, seconds float64) {
	if m == nil {
		return
	}
	m.dispatchTotal.WithLabelValues(function, status).Inc()
	m.dispatchLatency.WithLabelValues(function).Observe(seconds)
}

func (m *DispatchMetrics) ObserveUpstream(operation, status string) {
	if m == nil {
		return
	}
	m.upstreamTotal.WithLabelValues(operation, status).Inc()
}
