// Package bitcoin reads blocks from a Bitcoin-family node and extracts the
// inner scripts of their wrapped spends.
package bitcoin

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/pkg/safe"
)

// BlockSource implements the ingester source for Bitcoin-family nodes.
type BlockSource struct {
	rpc       RPCClient
	resolver  *PrevoutResolver
	converter *InputConverter
	coin      model.Coin
	network   model.Network
}

// NewBlockSource creates a BlockSource.
func NewBlockSource(rpc RPCClient, resolver *PrevoutResolver, converter *InputConverter, coin model.Coin, network model.Network) *BlockSource {
	return &BlockSource{
		rpc:       rpc,
		resolver:  resolver,
		converter: converter,
		coin:      coin,
		network:   network,
	}
}

// LatestHeight returns the latest block height available from the node.
func (s *BlockSource) LatestHeight(_ context.Context) (uint64, error) {
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// FetchBlock loads the block at height and renders the inner scripts of every
// input that spends a P2SH or P2WSH output.
func (s *BlockSource) FetchBlock(ctx context.Context, height uint64) (*model.InsertBlock, error) {
	rpcHeight, err := safe.Int64(height)
	if err != nil {
		return nil, fmt.Errorf("block height exceeds rpc limit: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash, err := s.rpc.GetBlockHash(rpcHeight)
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	block, err := s.rpc.GetBlock(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}

	prevouts, err := s.resolver.Resolve(ctx, block)
	if err != nil {
		return nil, fmt.Errorf("resolve prevouts for block %d: %w", height, err)
	}

	rows := make([]model.InputScripts, 0)
	var inputCount uint32
	for _, tx := range block.Transactions {
		if blockchain.IsCoinBaseTx(tx) {
			continue
		}
		txid := tx.TxHash().String()
		for idx, in := range tx.TxIn {
			index, err := safe.Uint32(idx)
			if err != nil {
				return nil, fmt.Errorf("tx %s input index overflow: %w", txid, err)
			}
			inputCount++

			row, ok := s.converter.Convert(height, txid, index, in, prevouts[in.PreviousOutPoint])
			if !ok {
				continue
			}
			rows = append(rows, row)
		}
	}

	return &model.InsertBlock{
		Height: model.ProcessedHeight{
			Coin:    s.coin,
			Network: s.network,
			Height:  height,
			Hash:    hash.String(),
			Inputs:  inputCount,
		},
		InputScripts: rows,
	}, nil
}
