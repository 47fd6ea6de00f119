package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
)

const unprocessedHeightsQuery = `
SELECT number AS height
FROM numbers(?, ?)
WHERE height NOT IN (
	SELECT height
	FROM utxo_input_scripts_heights
	WHERE coin = ? AND network = ? AND height BETWEEN ? AND ?
)
ORDER BY height
LIMIT ?`

// UnprocessedHeights returns up to limit heights in [from, to] that have no
// processed-height record, lowest first.
func (r *Repository) UnprocessedHeights(ctx context.Context, coin model.Coin, network model.Network, from, to, limit uint64) (heights []uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("unprocessed_heights", coin, network, err, start)
	}()

	if limit == 0 || from > to {
		return nil, nil
	}

	rows, err := r.conn.Query(ctx, unprocessedHeightsQuery, from, to-from+1, string(coin), string(network), from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("query unprocessed heights: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			heights = nil
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var height uint64
		if err = rows.Scan(&height); err != nil {
			return nil, fmt.Errorf("scan unprocessed height: %w", err)
		}
		heights = append(heights, height)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unprocessed heights: %w", err)
	}

	return heights, nil
}
