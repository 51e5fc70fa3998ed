package service

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	inferenceSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "depthmap",
		Name:      "inference_seconds",
		Help:      "Wall time of a single engine call.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	})
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depthmap",
		Name:      "requests_total",
		Help:      "Depth requests by endpoint and status code.",
	}, []string{"endpoint", "code"})
)

func observeInference(d time.Duration) {
	inferenceSeconds.Observe(d.Seconds())
}

func countRequest(endpoint string, code int) {
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
}
