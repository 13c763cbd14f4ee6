package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scanner_fetch_attempts_total",
		Help: "Total appdetails fetch attempts by outcome",
	}, []string{"outcome"})

	fetchRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scanner_fetch_retries_total",
		Help: "Total number of retried appdetails fetches",
	})

	fetchExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scanner_fetch_exhausted_total",
		Help: "Total number of appdetails fetches dropped after exhausting retries",
	})
)
