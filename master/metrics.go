package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var serversRegistered = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "ironsight_master_servers_registered",
	Help: "Number of game servers currently registered.",
})

func setServersGauge(n int) {
	serversRegistered.Set(float64(n))
}
