// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// DefaultShutdownTimeout bounds the final flush once the run context is done.
const DefaultShutdownTimeout = 30 * time.Second

// Batcher buffers items and flushes them either by size or interval. Items
// still queued when it stops are flushed once more before Stop returns.
type Batcher[T any] struct {
	flushCallback   func(context.Context, []T) error
	itemsCh         chan T
	flushSize       int
	flushInterval   time.Duration
	shutdownTimeout time.Duration
	rl              ratelimit.Limiter
	logger          *zap.Logger

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// New constructs a Batcher.
func New[T any](logger *zap.Logger, flushCallback func(context.Context, []T) error, flushSize int, flushInterval time.Duration, rps int) *Batcher[T] {
	return &Batcher[T]{
		logger:          logger,
		flushCallback:   flushCallback,
		itemsCh:         make(chan T, flushSize*2),
		flushSize:       flushSize,
		flushInterval:   flushInterval,
		shutdownTimeout: DefaultShutdownTimeout,
		rl:              ratelimit.New(rps),
		stop:            make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop stops the background flushing loop. It is safe to call more than once.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() {
		close(b.stop)
	})
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return context.Canceled
	case b.itemsCh <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.flushSize)

	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}

		b.rl.Take()
		err := b.flushCallback(ctx, buf)
		if err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	for {
		select {
		case <-ctx.Done():
			b.drain(ctx, &buf, flush)
			return

		case <-b.stop:
			b.drain(ctx, &buf, flush)
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.flushSize {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)
		}
	}
}

// drain flushes whatever is buffered or queued on a context detached from the
// run context, so a canceled run still persists accepted items.
func (b *Batcher[T]) drain(ctx context.Context, buf *[]T, flush func(context.Context)) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.shutdownTimeout)
	defer cancel()

	for {
		select {
		case item := <-b.itemsCh:
			*buf = append(*buf, item)
			if len(*buf) >= b.flushSize {
				flush(shutdownCtx)
			}
		default:
			flush(shutdownCtx)
			return
		}
	}
}
