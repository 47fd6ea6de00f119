package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
)

const insertProcessedHeightsQuery = `
INSERT INTO utxo_input_scripts_heights (
	coin,
	network,
	height,
	hash,
	input_count
) VALUES`

// InsertProcessedHeights marks heights whose input scripts have been stored.
func (r *Repository) InsertProcessedHeights(ctx context.Context, heights []model.ProcessedHeight) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_processed_heights", firstCoin(heights), firstNetwork(heights), err, start)
	}()

	if len(heights) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertProcessedHeightsQuery)
	if err != nil {
		return fmt.Errorf("prepare processed heights batch: %w", err)
	}

	for _, h := range heights {
		if err = batch.Append(
			string(h.Coin),
			string(h.Network),
			h.Height,
			h.Hash,
			h.Inputs,
		); err != nil {
			return fmt.Errorf("append processed height: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert processed heights: %w", err)
	}
	return nil
}
