package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
)

const inputScriptsByTxIDQuery = `
SELECT
	block_height,
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
FROM utxo_input_scripts FINAL
WHERE coin = ? AND network = ? AND txid = ?
ORDER BY input_index ASC`

// InputScriptsByTxID returns the stored wrapped inputs of one transaction.
func (r *Repository) InputScriptsByTxID(ctx context.Context, coin model.Coin, network model.Network, txid string) (result []model.InputScripts, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("input_scripts_by_txid", coin, network, err, start)
	}()

	rows, err := r.conn.Query(ctx, inputScriptsByTxIDQuery, string(coin), string(network), txid)
	if err != nil {
		return nil, fmt.Errorf("query input scripts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			result = nil
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		row := model.InputScripts{Coin: coin, Network: network, TxID: txid}
		if err = rows.Scan(
			&row.BlockHeight,
			&row.Index,
			&row.PrevTxID,
			&row.PrevVout,
			&row.PrevoutScriptType,
			&row.PrevoutAddress,
			&row.ScriptSigAsm,
			&row.HasRedeemScript,
			&row.RedeemScriptHex,
			&row.RedeemScriptAsm,
			&row.RedeemScriptType,
			&row.HasWitnessScript,
			&row.WitnessScriptHex,
			&row.WitnessScriptAsm,
		); err != nil {
			return nil, fmt.Errorf("scan input scripts: %w", err)
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate input scripts: %w", err)
	}

	return result, nil
}
