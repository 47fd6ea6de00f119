// Package model defines domain models for inner-script ingestion.
package model

import (
	"fmt"
	"strings"
)

type Coin string
type Network string

var (
	BTC Coin = "BTC"
	LTC Coin = "LTC"
	RVN Coin = "RVN"
)

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
	Signet  Network = "signet"
)

// ParseCoin normalizes a ticker, ignoring case.
func ParseCoin(value string) (Coin, error) {
	switch Coin(strings.ToUpper(strings.TrimSpace(value))) {
	case BTC:
		return BTC, nil
	case LTC:
		return LTC, nil
	case RVN:
		return RVN, nil
	default:
		return "", fmt.Errorf("unsupported coin %q", value)
	}
}

// ParseNetwork normalizes a user supplied network name, accepting the usual aliases.
func ParseNetwork(value string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "main", "mainnet", "bitcoin":
		return Mainnet, nil
	case "test", "testnet", "testnet3":
		return Testnet, nil
	case "regtest":
		return Regtest, nil
	case "signet":
		return Signet, nil
	default:
		return "", fmt.Errorf("unsupported network %q", value)
	}
}
