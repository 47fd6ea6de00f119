package bitcoin

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	RPCClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlock(blockHash *chainhash.Hash) (*wire.MsgBlock, error)
		GetRawTransaction(txHash *chainhash.Hash) (*btcutil.Tx, error)
	}
	ResolverMetrics interface {
		ObservePrevTxFetch(err error, attempts uint, started time.Time)
		ObserveWrappedInput(prevoutType string, hasRedeemScript, hasWitnessScript bool)
	}
)
