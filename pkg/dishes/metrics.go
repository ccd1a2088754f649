package dishes

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	candidateDishes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plats_candidate_dishes",
			Help:    "Number of dishes matched before sampling",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50, 100},
		},
		[]string{"operation"},
	)

	pipelineFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plats_pipeline_failures_total",
			Help: "Number of failed dish pipeline runs by error code",
		},
		[]string{"operation", "code"},
	)
)

const (
	opGetPlats  = "get_plats"
	opRecommend = "recommend"
)
