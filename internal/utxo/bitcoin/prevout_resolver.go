package bitcoin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/pkg/workerpool"
	"github.com/scylladb/go-set/strset"
)

var errEmptyTransaction = errors.New("node returned no transaction")

// PrevoutResolver finds the outputs spent by the inputs of a block.
type PrevoutResolver struct {
	rpc         RPCClient
	metrics     ResolverMetrics
	workerCount int
	attempts    uint
	delay       time.Duration
}

// NewPrevoutResolver builds a resolver that fetches up to workerCount previous
// transactions at once, trying each fetch at most attempts times.
func NewPrevoutResolver(rpc RPCClient, metrics ResolverMetrics, workerCount int, attempts uint, delay time.Duration) *PrevoutResolver {
	if attempts == 0 {
		attempts = 1
	}
	return &PrevoutResolver{
		rpc:         rpc,
		metrics:     metrics,
		workerCount: workerCount,
		attempts:    attempts,
		delay:       delay,
	}
}

// Resolve returns the spent output of every non-coinbase input in block, keyed
// by outpoint. Outputs created earlier in the same block are taken from the block.
func (r *PrevoutResolver) Resolve(ctx context.Context, block *wire.MsgBlock) (map[wire.OutPoint]*wire.TxOut, error) {
	known := make(map[chainhash.Hash]*wire.MsgTx, len(block.Transactions))
	for _, tx := range block.Transactions {
		known[tx.TxHash()] = tx
	}

	missing := strset.New()
	for _, tx := range block.Transactions {
		if blockchain.IsCoinBaseTx(tx) {
			continue
		}
		for _, in := range tx.TxIn {
			if _, inBlock := known[in.PreviousOutPoint.Hash]; inBlock {
				continue
			}
			missing.Add(in.PreviousOutPoint.Hash.String())
		}
	}

	txids := missing.List()
	fetched, err := workerpool.Map(ctx, r.workerCount, txids, r.fetch)
	if err != nil {
		return nil, err
	}
	for i, tx := range fetched {
		hash, err := chainhash.NewHashFromStr(txids[i])
		if err != nil {
			return nil, fmt.Errorf("parse txid %s: %w", txids[i], err)
		}
		known[*hash] = tx
	}

	prevouts := make(map[wire.OutPoint]*wire.TxOut)
	for _, tx := range block.Transactions {
		if blockchain.IsCoinBaseTx(tx) {
			continue
		}
		for _, in := range tx.TxIn {
			outpoint := in.PreviousOutPoint
			prevTx, ok := known[outpoint.Hash]
			if !ok {
				return nil, fmt.Errorf("prev tx %s not resolved", outpoint.Hash)
			}
			if int(outpoint.Index) >= len(prevTx.TxOut) {
				return nil, fmt.Errorf("input references missing vout %d in tx %s", outpoint.Index, outpoint.Hash)
			}
			prevouts[outpoint] = prevTx.TxOut[outpoint.Index]
		}
	}

	return prevouts, nil
}

func (r *PrevoutResolver) fetch(ctx context.Context, txid string) (msg *wire.MsgTx, err error) {
	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return nil, fmt.Errorf("parse txid %s: %w", txid, err)
	}

	started := time.Now()
	var attempts uint
	defer func() {
		if r.metrics != nil {
			r.metrics.ObservePrevTxFetch(err, attempts, started)
		}
	}()

	err = retry.Do(
		func() error {
			attempts++
			tx, fetchErr := r.rpc.GetRawTransaction(hash)
			if fetchErr != nil {
				return fetchErr
			}
			if tx == nil {
				return errEmptyTransaction
			}
			msg = tx.MsgTx()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("get raw transaction %s: %w", txid, err)
	}
	return msg, nil
}
