package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	remoteFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quotevault",
			Subsystem: "sync",
			Name:      "remote_failures_total",
			Help:      "Remote calls that failed, by operation.",
		},
		[]string{"op"},
	)

	pulledQuotesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "quotevault",
			Subsystem: "sync",
			Name:      "pulled_quotes_total",
			Help:      "Quotes written to the local store by bulk pulls.",
		},
	)

	dailyResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quotevault",
			Name:      "daily_resolutions_total",
			Help:      "Quote-of-the-day resolutions, by source.",
		},
		[]string{"source"},
	)
)
