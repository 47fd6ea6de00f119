package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	inputScriptsTable        = "utxo_input_scripts"
	inputScriptsHeightsTable = "utxo_input_scripts_heights"
)

// repositoryTables maps repository operations to the table they touch.
var repositoryTables = map[string]string{
	"insert_input_scripts":     inputScriptsTable,
	"input_scripts_by_txid":    inputScriptsTable,
	"insert_processed_heights": inputScriptsHeightsTable,
	"max_processed_height":     inputScriptsHeightsTable,
	"unprocessed_heights":      inputScriptsHeightsTable,
}

var (
	inputScriptsRepositoryOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "input_scripts_repository",
		Name:      "operations_total",
		Help:      "Count of input scripts repository operations by table.",
	}, []string{"table", "operation", "coin", "network", "status"})
	inputScriptsRepositoryOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "input_scripts_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of input scripts repository operations by table.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"table", "operation", "coin", "network", "status"})
)

// ClickhouseRepository tracks metrics for the input scripts tables.
type ClickhouseRepository struct{}

func NewClickhouseRepository() *ClickhouseRepository {
	return &ClickhouseRepository{}
}

// Observe records duration and status of a repository operation, labelled
// with the table it reads or writes.
func (m ClickhouseRepository) Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time) {
	table, ok := repositoryTables[operation]
	if !ok {
		table = "unknown"
	}
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}

	labels := []string{table, operation, string(coin), string(network), statusOf(err)}
	inputScriptsRepositoryOperationsTotal.WithLabelValues(labels...).Inc()
	inputScriptsRepositoryOperationDuration.WithLabelValues(labels...).Observe(time.Since(started).Seconds())
}
