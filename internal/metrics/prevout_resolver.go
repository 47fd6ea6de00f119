package metrics

import (
	"strconv"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prevTxFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "prevout_resolver",
		Name:      "prev_tx_fetch_total",
		Help:      "Count of previous-transaction lookups, retries included.",
	}, []string{"coin", "network", "status"})

	prevTxFetchAttempts = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "prevout_resolver",
		Name:      "prev_tx_fetch_attempts",
		Help:      "Attempts spent per previous-transaction lookup.",
		Buckets:   []float64{1, 2, 3, 5, 8},
	}, []string{"coin", "network", "status"})

	prevTxFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "prevout_resolver",
		Name:      "prev_tx_fetch_duration_seconds",
		Help:      "Duration of previous-transaction lookups, retries included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	wrappedInputsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "prevout_resolver",
		Name:      "wrapped_inputs_total",
		Help:      "Count of wrapped inputs by prevout type and which inner scripts were found.",
	}, []string{"coin", "network", "prevout_type", "redeem_script", "witness_script"})
)

// PrevoutResolver tracks previous-output lookups and inner-script outcomes.
type PrevoutResolver struct {
	coin    model.Coin
	network model.Network
}

func NewPrevoutResolver(coin model.Coin, network model.Network) *PrevoutResolver {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &PrevoutResolver{coin: coin, network: network}
}

func (m PrevoutResolver) ObservePrevTxFetch(err error, attempts uint, started time.Time) {
	status := statusOf(err)
	prevTxFetchTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	prevTxFetchAttempts.WithLabelValues(string(m.coin), string(m.network), status).Observe(float64(attempts))
	prevTxFetchDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}

func (m PrevoutResolver) ObserveWrappedInput(prevoutType string, hasRedeemScript, hasWitnessScript bool) {
	wrappedInputsTotal.WithLabelValues(
		string(m.coin),
		string(m.network),
		prevoutType,
		strconv.FormatBool(hasRedeemScript),
		strconv.FormatBool(hasWitnessScript),
	).Inc()
}
