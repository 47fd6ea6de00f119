package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
)

const insertInputScriptsQuery = `
INSERT INTO utxo_input_scripts (
	coin,
	network,
	block_height,
	txid,
	input_index,
	prev_txid,
	prev_vout,
	prevout_script_type,
	prevout_address,
	script_sig_asm,
	has_redeem_script,
	redeem_script_hex,
	redeem_script_asm,
	redeem_script_type,
	has_witness_script,
	witness_script_hex,
	witness_script_asm
) VALUES`

// InsertInputScripts stores resolved input scripts in ClickHouse.
func (r *Repository) InsertInputScripts(ctx context.Context, rows []model.InputScripts) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_input_scripts", firstCoin(rows), firstNetwork(rows), err, start)
	}()

	if len(rows) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertInputScriptsQuery)
	if err != nil {
		return fmt.Errorf("prepare input scripts batch: %w", err)
	}

	for _, row := range rows {
		if err = batch.Append(
			string(row.Coin),
			string(row.Network),
			row.BlockHeight,
			row.TxID,
			row.Index,
			row.PrevTxID,
			row.PrevVout,
			row.PrevoutScriptType,
			row.PrevoutAddress,
			row.ScriptSigAsm,
			row.HasRedeemScript,
			row.RedeemScriptHex,
			row.RedeemScriptAsm,
			row.RedeemScriptType,
			row.HasWitnessScript,
			row.WitnessScriptHex,
			row.WitnessScriptAsm,
		); err != nil {
			return fmt.Errorf("append input scripts: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert input scripts: %w", err)
	}
	return nil
}

func firstCoin[T any](items []T) model.Coin {
	if len(items) == 0 {
		return ""
	}

	switch v := any(items[0]).(type) {
	case model.InputScripts:
		return v.Coin
	case model.ProcessedHeight:
		return v.Coin
	default:
		return ""
	}
}

func firstNetwork[T any](items []T) model.Network {
	if len(items) == 0 {
		return ""
	}

	switch v := any(items[0]).(type) {
	case model.InputScripts:
		return v.Network
	case model.ProcessedHeight:
		return v.Network
	default:
		return ""
	}
}
