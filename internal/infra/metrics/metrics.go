package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckinsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gym_checkins_total",
		Help: "Check-in attempts by result.",
	}, []string{"result"})

	SweepRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gym_sweep_runs_total",
		Help: "Completed daily membership sweeps.",
	})

	SweepMembersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gym_sweep_members_total",
		Help: "Members processed by the daily sweep, by outcome.",
	}, []string{"outcome"})

	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gym_sweep_duration_seconds",
		Help:    "Duration of the daily membership sweep.",
		Buckets: prometheus.DefBuckets,
	})
)
