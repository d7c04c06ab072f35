package models

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	modelsIndexCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "models_index_count",
		Help: "The number of stored indexes.",
	})

	modelsIndexCountTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "models_index_count_total",
		Help: "The total number of stored indexes.",
	})
)

func instrumentIncreaseIndexGauge() {
	modelsIndexCount.Inc()
	modelsIndexCountTotal.Inc()
}

func instrumentDecreaseIndexGauge() {
	modelsIndexCount.Dec()
}
