package ingester

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/pkg/workerpool"
	"go.uber.org/zap"
)

type blockProcessor struct {
	workerCount int
	source      BlockSource
	blockWriter BlockWriter
	metrics     IngesterMetrics
	logger      *zap.Logger
}

func (p *blockProcessor) Process(ctx context.Context, heights []uint64) error {
	return workerpool.Process(ctx, p.workerCount, heights, p.processHeight, nil)
}

func (p *blockProcessor) processHeight(ctx context.Context, height uint64) (err error) {
	started := time.Now()
	defer func() {
		p.observeHeight(err, height, started)
	}()

	block, err := p.source.FetchBlock(ctx, height)
	if err != nil {
		p.logger.Error("fetch block failed", zap.Uint64("height", height), zap.Error(err))
		return fmt.Errorf("fetch block height %d: %w", height, err)
	}

	if err = p.blockWriter.WriteBlock(ctx, *block); err != nil {
		p.logger.Error("write block failed", zap.Uint64("height", height), zap.Error(err))
		return fmt.Errorf("write block height %d: %w", height, err)
	}

	p.logger.Debug("block queued",
		zap.Uint64("height", height),
		zap.Int("input_scripts", len(block.InputScripts)),
	)
	return nil
}

func (p *blockProcessor) observeHeight(err error, height uint64, started time.Time) {
	if p.metrics == nil {
		return
	}
	p.metrics.ObserveProcessHeight(err, height, started)
}
