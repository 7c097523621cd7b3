// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface handlers and middleware use.
type Recorder interface {
	RecordHTTPStatus(statusCode int)
	RecordSignup(role string)
	RecordLogin(success bool)
	RecordClaimCreated(amount float64)
	RecordClaimStatus(status string)
}

// Collector is the Prometheus-backed Recorder implementation.
type Collector struct {
	httpStatus    *prometheus.CounterVec
	signups       *prometheus.CounterVec
	loginSuccess  prometheus.Counter
	loginFail     prometheus.Counter
	claimsCreated prometheus.Counter
	claimAmount   prometheus.Histogram
	claimStatus   *prometheus.CounterVec
}

// NewCollector registers the service metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "healthchain_http_status_total",
			Help: "Responses by HTTP status code.",
		}, []string{"status_code"}),
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "healthchain_signups_total",
			Help: "Registered users by role.",
		}, []string{"role"}),
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "healthchain_login_success_total",
			Help: "Successful logins.",
		}),
		loginFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "healthchain_login_fail_total",
			Help: "Rejected logins.",
		}),
		claimsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "healthchain_claims_created_total",
			Help: "Claims submitted.",
		}),
		claimAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "healthchain_claim_amount_idr",
			Help: "Submitted claim amounts in IDR.",
			// Claims run from outpatient visits to long inpatient stays.
			Buckets: prometheus.ExponentialBuckets(100_000, 4, 8),
		}),
		claimStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "healthchain_claim_status_total",
			Help: "Reviewer decisions by resulting status.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.signups,
		c.loginSuccess,
		c.loginFail,
		c.claimsCreated,
		c.claimAmount,
		c.claimStatus,
	)

	return c
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordSignup(role string) {
	c.signups.WithLabelValues(role).Inc()
}

func (c *Collector) RecordLogin(success bool) {
	if success {
		c.loginSuccess.Inc()
		return
	}
	c.loginFail.Inc()
}

func (c *Collector) RecordClaimCreated(amount float64) {
	c.claimsCreated.Inc()
	c.claimAmount.Observe(amount)
}

func (c *Collector) RecordClaimStatus(status string) {
	c.claimStatus.WithLabelValues(status).Inc()
}

var _ Recorder = (*Collector)(nil)

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
