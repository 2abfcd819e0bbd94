package core

import (
	"log"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ironsight_tick_duration_seconds",
		Help:    "Wall-clock duration of one simulation tick.",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
	})

	playersConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ironsight_players_connected",
		Help: "Number of currently connected players.",
	})

	inputsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ironsight_inputs_rejected_total",
		Help: "Input messages dropped before reaching the simulation.",
	}, []string{"reason"})
)

func observeTickDuration(d time.Duration) {
	tickDuration.Observe(d.Seconds())
}

func setPlayerGauge(n int) {
	playersConnected.Set(float64(n))
}

func countInputRejected(reason string) {
	inputsRejected.WithLabelValues(reason).Inc()
}

// StartDebugServer exposes metrics, a health endpoint, and pprof on addr. Runs
// in a background goroutine.
func StartDebugServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	go func() {
		log.Printf("[metrics] debug server listening on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("[metrics] debug server stopped: %v", err)
		}
	}()
}
