package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	jobTriage = "job_triage"

	statusChangesTotal   = "status_changes_total"
	jobQueriesTotal      = "processed_job_queries_total"
	jobQueryResultsTotal = "processed_job_query_results"

	// Labels
	statusLabel = "status"
	sortLabel   = "sort_by"
	resultLabel = "result"
)

var statusChangesTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: jobTriage,
		Name:      statusChangesTotal,
		Help:      "number of job status changes partitioned by the new status",
	},
	[]string{statusLabel},
)

var jobQueriesTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: jobTriage,
		Name:      jobQueriesTotal,
		Help:      "number of processed job queries partitioned by sort key and result",
	},
	[]string{sortLabel, resultLabel},
)

var jobQueryResultsMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: jobTriage,
		Name:      jobQueryResultsTotal,
		Help:      "number of matching processed jobs per query before pagination",
		Buckets:   []float64{0, 1, 10, 50, 100, 500, 1000, 5000},
	},
)

func IncreaseStatusChangesMetric(status string) {
	statusChangesTotalMetric.With(prometheus.Labels{statusLabel: status}).Inc()
}

// ObserveJobQuery records one processed job query. result is "ok" or an error class.
func ObserveJobQuery(sortBy, result string, total int64) {
	jobQueriesTotalMetric.With(prometheus.Labels{sortLabel: sortBy, resultLabel: result}).Inc()
	if result == "ok" {
		jobQueryResultsMetric.Observe(float64(total))
	}
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(statusChangesTotalMetric)
	prometheus.MustRegister(jobQueriesTotalMetric)
	prometheus.MustRegister(jobQueryResultsMetric)
}
