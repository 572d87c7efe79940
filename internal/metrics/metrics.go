// Package metrics holds the Prometheus collectors of the auth service.
//
// Collectors are registered on a dedicated registry so that tests can build
// as many instances as they need without colliding on the global one.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultDenied  = "denied"
	ResultAllowed = "allowed"

	StageRequest = "request"
	StageConsume = "consume"
)

// Recorder receives domain outcomes from the service layer.
type Recorder interface {
	Registration(result string)
	Login(result string)
	PasswordReset(stage, result string)
	AuthorizationDecision(result string)
}

// Metrics contains the collectors of the auth service.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RegistrationsTotal  *prometheus.CounterVec
	LoginsTotal         *prometheus.CounterVec
	PasswordResetsTotal *prometheus.CounterVec
	AuthorizationsTotal *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "auth_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RegistrationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Total number of registration attempts by result",
		}, []string{"result"}),
		LoginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts by result",
		}, []string{"result"}),
		PasswordResetsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_password_resets_total",
			Help: "Total number of password reset operations by stage and result",
		}, []string{"stage", "result"}),
		AuthorizationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_authorization_decisions_total",
			Help: "Total number of role authorization decisions by result",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RegistrationsTotal,
		m.LoginsTotal,
		m.PasswordResetsTotal,
		m.AuthorizationsTotal,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records one served request. route is the matched
// route pattern, never the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) Registration(result string) {
	m.RegistrationsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) Login(result string) {
	m.LoginsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) PasswordReset(stage, result string) {
	m.PasswordResetsTotal.WithLabelValues(stage, result).Inc()
}

func (m *Metrics) AuthorizationDecision(result string) {
	m.AuthorizationsTotal.WithLabelValues(result).Inc()
}

// Nop returns a Recorder that drops every observation.
func Nop() Recorder {
	return nopRecorder{}
}

type nopRecorder struct{}

func (nopRecorder) Registration(string)          {}
func (nopRecorder) Login(string)                 {}
func (nopRecorder) PasswordReset(string, string) {}
func (nopRecorder) AuthorizationDecision(string) {}

// Result maps an error to ResultSuccess or ResultFailure.
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
