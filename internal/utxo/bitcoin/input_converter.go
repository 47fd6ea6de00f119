package bitcoin

import (
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/script"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
)

// InputConverter turns a wrapped spend into its stored form.
type InputConverter struct {
	coin    model.Coin
	network model.Network
	metrics ResolverMetrics
}

// NewInputConverter creates an InputConverter for one chain.
func NewInputConverter(coin model.Coin, network model.Network, metrics ResolverMetrics) *InputConverter {
	return &InputConverter{coin: coin, network: network, metrics: metrics}
}

// Convert renders the inner scripts of in. It reports false when prevout is
// neither P2SH nor P2WSH.
func (c *InputConverter) Convert(height uint64, txid string, index uint32, in *wire.TxIn, prevout *wire.TxOut) (model.InputScripts, bool) {
	txIn := script.NewWireTxIn(in)
	txOut := script.NewWireTxOut(prevout)

	pkScript := txOut.PkScript()
	class := script.ClassOf(pkScript)
	if class != script.ClassP2SH && class != script.ClassP2WSH {
		return model.InputScripts{}, false
	}

	row := model.InputScripts{
		Coin:              c.coin,
		Network:           c.network,
		BlockHeight:       height,
		TxID:              txid,
		Index:             index,
		PrevTxID:          in.PreviousOutPoint.Hash.String(),
		PrevVout:          in.PreviousOutPoint.Index,
		PrevoutScriptType: class.String(),
		ScriptSigAsm:      script.Asm(txIn.SignatureScript()),
	}
	row.PrevoutAddress, _ = script.Address(pkScript, c.network)

	inner := script.InnerScriptsOf(txIn, txOut)
	if inner.RedeemScript != nil {
		redeem := script.Render(inner.RedeemScript, c.network)
		row.HasRedeemScript = true
		row.RedeemScriptHex = redeem.Hex
		row.RedeemScriptAsm = redeem.Asm
		row.RedeemScriptType = redeem.Type
	}
	if inner.WitnessScript != nil {
		witness := script.Render(inner.WitnessScript, c.network)
		row.HasWitnessScript = true
		row.WitnessScriptHex = witness.Hex
		row.WitnessScriptAsm = witness.Asm
	}

	if c.metrics != nil {
		c.metrics.ObserveWrappedInput(row.PrevoutScriptType, row.HasRedeemScript, row.HasWitnessScript)
	}
	return row, true
}
