// Package metrics defines Prometheus metrics for lexigraph.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ConvertRecords = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lexigraph_convert_records_total",
			Help: "Input rows successfully converted",
		},
	)

	ConvertRowsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lexigraph_convert_rows_skipped_total",
			Help: "Malformed input rows skipped",
		},
	)

	ConvertNodes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lexigraph_convert_nodes_total",
			Help: "Distinct node declarations emitted",
		},
	)

	ConvertEdges = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lexigraph_convert_edges_total",
			Help: "Edge statements emitted",
		},
	)

	ConvertBatches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lexigraph_convert_batches_total",
			Help: "Statement batches flushed to the sink",
		},
	)

	ConvertBytesWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lexigraph_convert_bytes_written_total",
			Help: "Compressed bytes written to the sink",
		},
	)

	ExpandCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lexigraph_expand_calls_total",
			Help: "One-hop expansion calls against the graph store",
		},
		[]string{"direction"},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lexigraph_query_duration_seconds",
			Help:    "Query operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(
		ConvertRecords, ConvertRowsSkipped, ConvertNodes, ConvertEdges,
		ConvertBatches, ConvertBytesWritten,
		ExpandCalls, QueryDuration,
	)
}
