// Package metrics exposes Prometheus collectors for the bot.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bankroll"

// Registry holds all application metrics
type Registry struct {
	registry *prometheus.Registry

	Commands      *prometheus.CounterVec
	Errors        *prometheus.CounterVec
	Plays         *prometheus.CounterVec
	RateLimited   prometheus.Counter
	Records       prometheus.Gauge
	CurrencyTotal prometheus.Gauge
}

// NewRegistry creates the collectors and registers them on a private registry
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands handled, by command and subcommand",
		}, []string{"command", "subcommand"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Errors sent to the error reporter, by context",
		}, []string{"context"}),
		Plays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "games",
			Name:      "plays_total",
			Help:      "Wager rounds settled, by game and outcome",
		}, []string{"game", "outcome"}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "games",
			Name:      "rate_limited_total",
			Help:      "Wager rounds refused by the per-user rate limiter",
		}),
		Records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "economy",
			Name:      "records",
			Help:      "Number of stored currency records",
		}),
		CurrencyTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "economy",
			Name:      "currency_total",
			Help:      "Sum of every user's balance",
		}),
	}

	r.registry.MustRegister(
		r.Commands,
		r.Errors,
		r.Plays,
		r.RateLimited,
		r.Records,
		r.CurrencyTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// MarkCommand counts one handled command
func (r *Registry) MarkCommand(command, subcommand string) {
	r.Commands.WithLabelValues(command, subcommand).Inc()
}

// MarkError counts one reported error
func (r *Registry) MarkError(context string) {
	r.Errors.WithLabelValues(context).Inc()
}

// MarkPlay counts one settled wager round
func (r *Registry) MarkPlay(game, outcome string) {
	r.Plays.WithLabelValues(game, outcome).Inc()
}

// SetEconomy updates the economy gauges
func (r *Registry) SetEconomy(records, total int64) {
	r.Records.Set(float64(records))
	r.CurrencyTotal.Set(float64(total))
}

// Handler returns an HTTP handler for the /metrics endpoint
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
