package exchange

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var metrics = []prometheus.Collector{
	importsTotal,
	importedRecords,
	chunkFailures,
}

// RegisterPrometheusMetrics registers the import metrics with the
// default registry. A collector that is already registered is fine,
// tests register more than once.
func RegisterPrometheusMetrics() error {
	for _, c := range metrics {
		err := prometheus.Register(c)

		var registered prometheus.AlreadyRegisteredError
		if err != nil && !errors.As(err, &registered) {
			return err
		}
	}

	return nil
}

var importsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "payback_imports_total",
		Help: "How many imports were run, partitioned by result.",
	},
	[]string{"result"},
)

var importedRecords = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "payback_imported_records_total",
		Help: "How many records imports added to the local store, partitioned by record type.",
	},
	[]string{"type"},
)

var chunkFailures = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "payback_import_chunk_failures_total",
		Help: "How many bulk submission chunks failed.",
	},
)
