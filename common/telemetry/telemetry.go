package telemetry

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unistat/admissions/common/logger"
)

// Telemetry holds observability components
type Telemetry struct {
	log         *logger.Logger
	pprofAddr   string
	metricsAddr string

	// AllocationRuns counts completed allocation runs by outcome ("ok", "error")
	AllocationRuns *prometheus.CounterVec

	// AllocationDuration observes wall time of full allocation runs
	AllocationDuration prometheus.Histogram

	// ApplicantsProcessed reports the applicant count seen by the last run
	ApplicantsProcessed prometheus.Gauge

	// SeatsFilled reports filled seats per program after the last run
	SeatsFilled *prometheus.GaugeVec

	// ImportsTotal counts import requests by outcome
	ImportsTotal *prometheus.CounterVec
}

// New creates telemetry components and registers allocation metrics
func New(pprofPort, metricsPort int, log *logger.Logger) *Telemetry {
	return &Telemetry{
		log:         log,
		pprofAddr:   fmt.Sprintf("localhost:%d", pprofPort),
		metricsAddr: fmt.Sprintf(":%d", metricsPort),

		AllocationRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_allocation_runs_total",
			Help: "Completed allocation runs by outcome.",
		}, []string{"outcome"}),

		AllocationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "admissions_allocation_duration_seconds",
			Help:    "Duration of full allocation runs.",
			Buckets: prometheus.DefBuckets,
		}),

		ApplicantsProcessed: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "admissions_applicants_processed",
			Help: "Applicants fetched by the most recent allocation run.",
		}),

		SeatsFilled: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "admissions_seats_filled",
			Help: "Seats filled per program after the most recent allocation run.",
		}, []string{"program"}),

		ImportsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_imports_total",
			Help: "Import requests by outcome.",
		}, []string{"outcome"}),
	}
}

// Start starts pprof and metrics endpoints
func (t *Telemetry) Start(enablePprof, enableMetrics bool) {
	if enablePprof {
		go func() {
			t.log.Info("pprof server starting", "addr", t.pprofAddr)
			if err := http.ListenAndServe(t.pprofAddr, nil); err != nil {
				t.log.Error("pprof server error", "error", err)
			}
		}()
	}

	if enableMetrics {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			t.log.Info("metrics server starting", "addr", t.metricsAddr)
			if err := http.ListenAndServe(t.metricsAddr, mux); err != nil {
				t.log.Error("metrics server error", "error", err)
			}
		}()
	}
}
