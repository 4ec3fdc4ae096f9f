package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_saver_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	NotionRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_saver_notion_requests_total",
			Help: "Total number of requests sent to the Notion API by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	NotionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "job_saver_notion_request_duration_seconds",
			Help:    "Duration of Notion API requests in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)
	DispatchedRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_saver_dispatched_requests_total",
			Help: "Total number of requests handled by the router by kind and result.",
		},
		[]string{"kind", "result"},
	)
	SetupPromptsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "job_saver_setup_prompts_total",
			Help: "Total number of times the user was sent back to credential setup.",
		},
	)
)

func init() {
	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(NotionRequestsCounter)
	prometheus.MustRegister(NotionRequestDuration)
	prometheus.MustRegister(DispatchedRequestsCounter)
	prometheus.MustRegister(SetupPromptsCounter)
}

func StartMetricsServer(address string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(address, mux))
	}()
	log.Infof("metrics available at %s/metrics", address)
}
