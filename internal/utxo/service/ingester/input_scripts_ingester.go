// Package ingester resolves the inner scripts of every wrapped input on a
// chain and stores them.
package ingester

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
	"go.uber.org/zap"
)

// Options tunes the ingester. Zero values fall back to defaults.
type Options struct {
	StartHeight   uint64
	Confirmations uint64
	WorkerCount   int
	HeightLimit   uint64
}

type InputScriptsIngesterService struct {
	logger                 *zap.Logger
	repo                   ClickhouseRepository
	coin                   model.Coin
	network                model.Network
	metrics                IngesterMetrics
	sleep                  func(context.Context, time.Duration) error
	backoff                clock.Backoff
	idleSleepDuration      time.Duration
	postBatchSleepDuration time.Duration
	heightFetcher          HeightFetcher
	blockProcessor         BlockProcessor
	blockWriter            BlockWriter
}

func NewInputScriptsIngesterService(
	repo ClickhouseRepository,
	source BlockSource,
	metrics IngesterMetrics,
	coin model.Coin,
	network model.Network,
	opts Options,
	logger *zap.Logger,
) (*InputScriptsIngesterService, error) {
	if repo == nil {
		return nil, errors.New("input scripts repository is required")
	}
	if source == nil {
		return nil, errors.New("block source is required")
	}
	if metrics == nil {
		return nil, errors.New("input scripts ingester metrics is required")
	}
	if opts.WorkerCount <= 0 {
		opts.WorkerCount = defaultWorkerCount
	}
	if opts.HeightLimit == 0 {
		opts.HeightLimit = defaultHeightLimit
	}

	logger = logger.With(
		zap.String("coin", string(coin)),
		zap.String("network", string(network)),
	)

	queued := newInflight()
	bw := newBlockWriter(repo, queued, logger)

	return &InputScriptsIngesterService{
		logger:                 logger,
		repo:                   repo,
		coin:                   coin,
		network:                network,
		metrics:                metrics,
		sleep:                  clock.SleepWithContext,
		backoff:                clock.Backoff{Base: backoffSleepDuration, Max: maxBackoffSleepDuration},
		idleSleepDuration:      idleSleepDuration,
		postBatchSleepDuration: postBatchSleepDuration,
		heightFetcher: &heightFetcher{
			repository:    repo,
			source:        source,
			coin:          coin,
			network:       network,
			startHeight:   opts.StartHeight,
			confirmations: opts.Confirmations,
			limit:         opts.HeightLimit,
			inflight:      queued,
		},
		blockWriter: bw,
		blockProcessor: &blockProcessor{
			workerCount: opts.WorkerCount,
			source:      source,
			blockWriter: bw,
			metrics:     metrics,
			logger:      logger.Named("blockProcessor"),
		},
	}, nil
}

func (s *InputScriptsIngesterService) Run(ctx context.Context) error {
	s.logProgress(ctx)

	s.blockWriter.Start(ctx)
	defer s.blockWriter.Stop()

	failures := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := s.run(ctx)
		if err == nil {
			failures = 0
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		delay := s.backoff.Delay(failures)
		failures++
		s.logger.Warn("run iteration failed, backing off",
			zap.Error(err),
			zap.Int("consecutive_failures", failures),
			zap.Duration("sleep", delay),
		)
		if sleepErr := s.sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
	}
}

func (s *InputScriptsIngesterService) run(ctx context.Context) error {
	started := time.Now()
	heights, err := s.heightFetcher.Fetch(ctx)
	s.metrics.ObserveFetchHeights(err, started)
	if err != nil {
		s.logger.Error("fetch unprocessed heights failed", zap.Error(err))
		return err
	}

	if len(heights) == 0 {
		s.logger.Info("caught up; going idle", zap.Duration("sleep", s.idleSleepDuration))
		return s.sleep(ctx, s.idleSleepDuration)
	}

	s.logger.Info("processing batch",
		zap.Int("height_count", len(heights)),
		zap.Uint64("from", heights[0]),
		zap.Uint64("to", heights[len(heights)-1]),
	)
	started = time.Now()
	if err := s.blockProcessor.Process(ctx, heights); err != nil {
		s.metrics.ObserveProcessBatch(err, len(heights), started)
		s.logger.Error("process batch failed", zap.Int("height_count", len(heights)), zap.Error(err))
		return err
	}
	s.metrics.ObserveProcessBatch(nil, len(heights), started)

	return s.sleep(ctx, s.postBatchSleepDuration)
}

func (s *InputScriptsIngesterService) logProgress(ctx context.Context) {
	height, ok, err := s.repo.MaxProcessedHeight(ctx, s.coin, s.network)
	switch {
	case err != nil:
		s.logger.Warn("read processed height failed", zap.Error(err))
	case !ok:
		s.logger.Info("no processed heights yet")
	default:
		s.logger.Info("resuming", zap.Uint64("max_processed_height", height))
	}
}
