package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	Tx          string `long:"tx" env:"INSPECTOR_TX" description:"raw transaction hex" required:"true"`
	Input       int    `long:"input" env:"INSPECTOR_INPUT" description:"input index to inspect" default:"0"`
	Prevout     string `long:"prevout" env:"INSPECTOR_PREVOUT" description:"locking script hex of the spent output" required:"true"`
	Network     string `long:"network" env:"INSPECTOR_NETWORK" description:"network name" default:"mainnet"`
	Model       string `long:"model" env:"INSPECTOR_MODEL" description:"transaction model" default:"base" choice:"base" choice:"confidential"`
	BlindingKey string `long:"blinding-key" env:"INSPECTOR_BLINDING_KEY" description:"blinding public key hex for confidential prevout addresses"`
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "failed to parse flags: %v\n", err)
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	network, err := model.ParseNetwork(cfg.Network)
	if err != nil {
		logger.Fatal("invalid network", zap.Error(err))
	}

	rep, err := inspect(cfg.Model, cfg.Tx, cfg.Input, cfg.Prevout, cfg.BlindingKey, network)
	if err != nil {
		logger.Fatal("inspect input failed", zap.String("model", cfg.Model), zap.Int("input", cfg.Input), zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		logger.Fatal("write report failed", zap.Error(err))
	}
}
