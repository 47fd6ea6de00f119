package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
)

const maxProcessedHeightQuery = `
SELECT max(height) AS max_height, count() AS processed
FROM utxo_input_scripts_heights
WHERE coin = ? AND network = ?`

// MaxProcessedHeight returns the highest processed height for a coin/network.
// The boolean is false when nothing has been processed yet.
func (r *Repository) MaxProcessedHeight(ctx context.Context, coin model.Coin, network model.Network) (height uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_processed_height", coin, network, err, start)
	}()

	rows, err := r.conn.Query(ctx, maxProcessedHeightQuery, string(coin), string(network))
	if err != nil {
		return 0, false, fmt.Errorf("query max processed height: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			height, ok = 0, false
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		err = fmt.Errorf("max processed height not found")
		return 0, false, err
	}

	var processed uint64
	if err = rows.Scan(&height, &processed); err != nil {
		return 0, false, fmt.Errorf("scan max processed height: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate max processed height: %w", err)
	}

	return height, processed > 0, nil
}
