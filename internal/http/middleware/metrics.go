package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
	BotLaunches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_launches_total",
			Help: "Total bot positions opened",
		},
	)
	BotStops = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_stops_total",
			Help: "Total bot positions settled",
		},
	)
	Deposits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "deposits_total",
			Help: "Total deposit webhooks credited",
		},
	)
	Withdrawals = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "withdrawals_total",
			Help: "Total withdrawal requests accepted",
		},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(BotLaunches)
	prometheus.MustRegister(BotStops)
	prometheus.MustRegister(Deposits)
	prometheus.MustRegister(Withdrawals)
}
