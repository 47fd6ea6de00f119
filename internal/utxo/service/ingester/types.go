package ingester

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	HeightFetcher interface {
		Fetch(ctx context.Context) ([]uint64, error)
	}
	BlockProcessor interface {
		Process(ctx context.Context, heights []uint64) error
	}
	BlockWriter interface {
		Start(ctx context.Context)
		Stop()
		WriteBlock(ctx context.Context, b model.InsertBlock) error
	}
	IngesterMetrics interface {
		ObserveFetchHeights(err error, started time.Time)
		ObserveProcessBatch(err error, heights int, started time.Time)
		ObserveProcessHeight(err error, height uint64, started time.Time)
	}

	BlockSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchBlock(ctx context.Context, height uint64) (*model.InsertBlock, error)
	}
	ClickhouseRepository interface {
		UnprocessedHeights(ctx context.Context, coin model.Coin, network model.Network, from, to, limit uint64) ([]uint64, error)
		MaxProcessedHeight(ctx context.Context, coin model.Coin, network model.Network) (uint64, bool, error)
		InsertInputScripts(ctx context.Context, rows []model.InputScripts) error
		InsertProcessedHeights(ctx context.Context, heights []model.ProcessedHeight) error
	}
)
