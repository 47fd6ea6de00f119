package ingester

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
)

// heightFetcher picks the lowest heights between startHeight and the
// confirmed tip that have no processed-height record and are not in flight.
type heightFetcher struct {
	repository    ClickhouseRepository
	source        BlockSource
	coin          model.Coin
	network       model.Network
	startHeight   uint64
	confirmations uint64
	limit         uint64
	inflight      *inflight
}

func (f *heightFetcher) Fetch(ctx context.Context) ([]uint64, error) {
	tip, err := f.source.LatestHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest height: %w", err)
	}
	if tip < f.confirmations {
		return nil, nil
	}
	confirmed := tip - f.confirmations
	if confirmed < f.startHeight {
		return nil, nil
	}

	queued := uint64(f.inflight.Size())
	heights, err := f.repository.UnprocessedHeights(ctx, f.coin, f.network, f.startHeight, confirmed, f.limit+queued)
	if err != nil {
		return nil, fmt.Errorf("unprocessed heights: %w", err)
	}

	heights = f.inflight.Filter(heights)
	if uint64(len(heights)) > f.limit {
		heights = heights[:f.limit]
	}
	return heights, nil
}
