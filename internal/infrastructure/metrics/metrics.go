package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "agricredit"

// Metrics groups the lifecycle counters. Usecases accept a nil *Metrics.
type Metrics struct {
	LoanTransitions *prometheus.CounterVec
	ReceiptStatus   *prometheus.CounterVec
	ReceiptsCreated prometheus.Counter
	OTPIssued       prometheus.Counter
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LoanTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loan_transitions_total",
			Help:      "Loans entering each status.",
		}, []string{"status"}),
		ReceiptStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_status_updates_total",
			Help:      "Warehouse receipt status updates by target status.",
		}, []string{"status"}),
		ReceiptsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipts_created_total",
			Help:      "Warehouse receipts issued.",
		}),
		OTPIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_issued_total",
			Help:      "One-time codes issued on login.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	if reg != nil {
		reg.MustRegister(m.LoanTransitions, m.ReceiptStatus, m.ReceiptsCreated, m.OTPIssued, m.HTTPRequests, m.HTTPDuration)
	}
	return m
}

func (m *Metrics) LoanEntered(status string) {
	if m == nil {
		return
	}
	m.LoanTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) ReceiptCreated() {
	if m == nil {
		return
	}
	m.ReceiptsCreated.Inc()
}

func (m *Metrics) ReceiptStatusSet(status string) {
	if m == nil {
		return
	}
	m.ReceiptStatus.WithLabelValues(status).Inc()
}

func (m *Metrics) OTPSent() {
	if m == nil {
		return
	}
	m.OTPIssued.Inc()
}
