package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/metrics"
	rpcclient2 "github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/service/ingester"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	ClickhouseDSN    string        `long:"clickhouse-dsn" env:"INNERSCRIPTS_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	Coin             string        `long:"coin" env:"INNERSCRIPTS_COIN" description:"coin ticker (BTC, LTC, RVN)" required:"true"`
	Network          string        `long:"network" env:"INNERSCRIPTS_NETWORK" description:"network name" default:"mainnet"`
	RPCURL           string        `long:"rpc-url" env:"INNERSCRIPTS_RPC_URL" description:"node RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser          string        `long:"rpc-user" env:"INNERSCRIPTS_RPC_USER" description:"node RPC username"`
	RPCPassword      string        `long:"rpc-password" env:"INNERSCRIPTS_RPC_PASSWORD" description:"node RPC password"`
	RPCRPS           int           `long:"rpc-rps" env:"INNERSCRIPTS_RPC_RPS" description:"max node requests per second (0 = unlimited)" default:"200"`
	Workers          int           `long:"workers" env:"INNERSCRIPTS_WORKERS" description:"blocks processed concurrently" default:"8"`
	PrevTxWorkers    int           `long:"prev-tx-workers" env:"INNERSCRIPTS_PREV_TX_WORKERS" description:"previous transactions fetched concurrently per block" default:"16"`
	PrevTxAttempts   uint          `long:"prev-tx-attempts" env:"INNERSCRIPTS_PREV_TX_ATTEMPTS" description:"attempts per previous transaction fetch" default:"3"`
	PrevTxRetryDelay time.Duration `long:"prev-tx-retry-delay" env:"INNERSCRIPTS_PREV_TX_RETRY_DELAY" description:"base delay between previous transaction fetch attempts" default:"500ms"`
	StartHeight      uint64        `long:"start-height" env:"INNERSCRIPTS_START_HEIGHT" description:"lowest height to ingest" default:"0"`
	Confirmations    uint64        `long:"confirmations" env:"INNERSCRIPTS_CONFIRMATIONS" description:"blocks kept behind the tip" default:"6"`
	HeightLimit      uint64        `long:"height-limit" env:"INNERSCRIPTS_HEIGHT_LIMIT" description:"heights fetched per iteration" default:"500"`
	MetricsAddr      string        `long:"metrics-addr" env:"INNERSCRIPTS_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("input scripts ingester failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	coin, err := model.ParseCoin(cfg.Coin)
	if err != nil {
		return err
	}
	network, err := model.ParseNetwork(cfg.Network)
	if err != nil {
		return err
	}

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("close repository", zap.Error(err))
		}
	}()

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init utxo rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	rpc := rpcclient2.NewObservedClient(rpcClient, metrics.NewRPCClient(coin, network), cfg.RPCRPS)

	resolverMetrics := metrics.NewPrevoutResolver(coin, network)
	source := bitcoin.NewBlockSource(
		rpc,
		bitcoin.NewPrevoutResolver(rpc, resolverMetrics, cfg.PrevTxWorkers, cfg.PrevTxAttempts, cfg.PrevTxRetryDelay),
		bitcoin.NewInputConverter(coin, network, resolverMetrics),
		coin,
		network,
	)

	svc, err := ingester.NewInputScriptsIngesterService(
		repo,
		source,
		metrics.NewInputScriptsIngester(coin, network),
		coin,
		network,
		ingester.Options{
			StartHeight:   cfg.StartHeight,
			Confirmations: cfg.Confirmations,
			WorkerCount:   cfg.Workers,
			HeightLimit:   cfg.HeightLimit,
		},
		logger,
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
