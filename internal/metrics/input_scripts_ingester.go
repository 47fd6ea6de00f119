package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingesterFetchHeightsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "innerscripts_ingester",
		Name:      "fetch_heights_total",
		Help:      "Count of attempts to fetch unprocessed block heights.",
	}, []string{"coin", "network", "status"})

	ingesterFetchHeightsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "innerscripts_ingester",
		Name:      "fetch_heights_duration_seconds",
		Help:      "Duration of fetching unprocessed block heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ingesterProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "innerscripts_ingester",
		Name:      "process_batch_total",
		Help:      "Count of processed batches.",
	}, []string{"coin", "network", "status"})

	ingesterProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "innerscripts_ingester",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a batch of heights.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
	}, []string{"coin", "network", "status"})

	ingesterProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "innerscripts_ingester",
		Name:      "process_batch_size",
		Help:      "Number of heights processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"coin", "network"})

	ingesterProcessHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "innerscripts_ingester",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of processing a single height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ingesterLastProcessedHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "innerscripts_ingester",
		Name:      "last_processed_height",
		Help:      "Most recent height whose input scripts were handed to the writer.",
	}, []string{"coin", "network"})
)

// InputScriptsIngester tracks metrics for the input-scripts ingester pipeline.
type InputScriptsIngester struct {
	coin    model.Coin
	network model.Network
}

func NewInputScriptsIngester(coin model.Coin, network model.Network) *InputScriptsIngester {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &InputScriptsIngester{coin: coin, network: network}
}

func (m InputScriptsIngester) ObserveFetchHeights(err error, started time.Time) {
	status := statusOf(err)
	ingesterFetchHeightsTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	ingesterFetchHeightsDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}

func (m InputScriptsIngester) ObserveProcessBatch(err error, heights int, started time.Time) {
	status := statusOf(err)
	ingesterProcessBatchTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	ingesterProcessBatchDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
	ingesterProcessBatchSize.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(heights))
}

// ObserveProcessHeight records processing of a single height. Successful
// heights also move the last-processed gauge.
func (m InputScriptsIngester) ObserveProcessHeight(err error, height uint64, started time.Time) {
	status := statusOf(err)
	ingesterProcessHeightDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		ingesterLastProcessedHeight.WithLabelValues(string(m.coin), string(m.network)).Set(float64(height))
	}
}
