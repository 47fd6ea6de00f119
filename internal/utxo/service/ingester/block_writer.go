package ingester

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/pkg/batcher"
	"go.uber.org/zap"
)

type blockWriter struct {
	repo         ClickhouseRepository
	logger       *zap.Logger
	blockBatcher *batcher.Batcher[model.InsertBlock]
	inflight     *inflight
}

func newBlockWriter(repo ClickhouseRepository, inflight *inflight, logger *zap.Logger) *blockWriter {
	w := &blockWriter{
		repo:     repo,
		logger:   logger,
		inflight: inflight,
	}

	w.blockBatcher = batcher.New[model.InsertBlock](
		logger.Named("blockBatcher"),
		w.flush,
		blockBatcherCapacity,
		blockBatcherFlushInterval,
		blockBatcherFlushRPS,
	)
	return w
}

func (w *blockWriter) Start(ctx context.Context) {
	w.blockBatcher.Start(ctx)
}

func (w *blockWriter) Stop() {
	w.blockBatcher.Stop()
}

func (w *blockWriter) WriteBlock(ctx context.Context, b model.InsertBlock) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.inflight.Add(b.Height.Height)
	if err := w.blockBatcher.Add(ctx, b); err != nil {
		w.inflight.Remove(b.Height.Height)
		return err
	}
	return nil
}

// flush stores the rows before the processed-height records so a failed flush
// leaves its heights unprocessed. Flushed heights leave the in-flight set
// either way.
func (w *blockWriter) flush(ctx context.Context, insertBlocks []model.InsertBlock) error {
	heights := make([]model.ProcessedHeight, 0, len(insertBlocks))
	rows := make([]model.InputScripts, 0, len(insertBlocks))
	defer func() {
		for _, h := range heights {
			w.inflight.Remove(h.Height)
		}
	}()

	for _, block := range insertBlocks {
		heights = append(heights, block.Height)
		rows = append(rows, block.InputScripts...)
		if len(rows) >= inputScriptsFlushThreshold {
			if err := w.repo.InsertInputScripts(ctx, rows); err != nil {
				return err
			}
			w.logger.Debug("InsertInputScripts", zap.Int("count", len(rows)))
			rows = make([]model.InputScripts, 0, len(rows))
		}
	}

	if len(rows) > 0 {
		if err := w.repo.InsertInputScripts(ctx, rows); err != nil {
			return err
		}
	}

	return w.repo.InsertProcessedHeights(ctx, heights)
}
