package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/script"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/script/confidential"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
	"github.com/vulpemventures/go-elements/transaction"
)

type report struct {
	TxID         string           `json:"txid"`
	Input        int              `json:"input"`
	PrevTxID     string           `json:"prev_txid"`
	PrevVout     uint32           `json:"prev_vout"`
	Prevout      script.Rendering `json:"prevout"`
	ScriptSigAsm string           `json:"script_sig_asm"`
	script.InnerRendering
}

func inspect(txModel, txHex string, index int, prevoutHex, blindingKeyHex string, network model.Network) (report, error) {
	txHex = strings.TrimSpace(txHex)
	pkScript, err := hex.DecodeString(strings.TrimSpace(prevoutHex))
	if err != nil {
		return report{}, fmt.Errorf("decode prevout hex: %w", err)
	}
	blindingKey, err := hex.DecodeString(strings.TrimSpace(blindingKeyHex))
	if err != nil {
		return report{}, fmt.Errorf("decode blinding key hex: %w", err)
	}

	switch txModel {
	case "base":
		raw, err := hex.DecodeString(txHex)
		if err != nil {
			return report{}, fmt.Errorf("decode tx hex: %w", err)
		}
		return inspectBase(raw, index, pkScript, network)
	case "confidential":
		return inspectConfidential(txHex, index, pkScript, blindingKey, network)
	default:
		return report{}, fmt.Errorf("unsupported model %q", txModel)
	}
}

func inspectBase(raw []byte, index int, pkScript []byte, network model.Network) (report, error) {
	var tx wire.MsgTx
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return report{}, fmt.Errorf("deserialize tx: %w", err)
	}
	if index < 0 || index >= len(tx.TxIn) {
		return report{}, fmt.Errorf("input %d out of range, tx has %d inputs", index, len(tx.TxIn))
	}
	txIn := tx.TxIn[index]

	rep := render(script.NewWireTxIn(txIn), script.NewWireTxOut(&wire.TxOut{PkScript: pkScript}), network)
	rep.TxID = tx.TxHash().String()
	rep.Input = index
	rep.PrevTxID = txIn.PreviousOutPoint.Hash.String()
	rep.PrevVout = txIn.PreviousOutPoint.Index
	return rep, nil
}

func inspectConfidential(txHex string, index int, pkScript, blindingKey []byte, network model.Network) (report, error) {
	tx, err := transaction.NewTxFromHex(txHex)
	if err != nil {
		return report{}, fmt.Errorf("deserialize confidential tx: %w", err)
	}
	if index < 0 || index >= len(tx.Inputs) {
		return report{}, fmt.Errorf("input %d out of range, tx has %d inputs", index, len(tx.Inputs))
	}
	txIn := tx.Inputs[index]

	prevHash, err := chainhash.NewHash(txIn.Hash)
	if err != nil {
		return report{}, fmt.Errorf("input %d prev hash: %w", index, err)
	}

	out := confidential.NewTxOut(&transaction.TxOutput{Script: pkScript}).WithBlindingKey(blindingKey)
	rep := render(confidential.NewTxIn(txIn), out, network)
	rep.TxID = tx.TxHash().String()
	rep.Input = index
	rep.PrevTxID = prevHash.String()
	rep.PrevVout = txIn.Index
	return rep, nil
}

func render(in script.TxIn, prevout script.TxOut, network model.Network) report {
	return report{
		Prevout:        script.Render(prevout.PkScript(), network),
		ScriptSigAsm:   script.Asm(in.SignatureScript()),
		InnerRendering: script.RenderInner(script.InnerScriptsOf(in, prevout), network),
	}
}
