package bitcoin

import (
	"bytes"
	"math"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

func mustScript(t *testing.T, b *txscript.ScriptBuilder) []byte {
	t.Helper()
	s, err := b.Script()
	if err != nil {
		t.Fatalf("build script: %v", err)
	}
	return s
}

func p2pkhPkScript(t *testing.T, fill byte) []byte {
	return mustScript(t, txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(bytes.Repeat([]byte{fill}, 20)).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG))
}

func p2shPkScript(t *testing.T, fill byte) []byte {
	return mustScript(t, txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).
		AddData(bytes.Repeat([]byte{fill}, 20)).
		AddOp(txscript.OP_EQUAL))
}

func p2wshPkScript(t *testing.T, fill byte) []byte {
	return mustScript(t, txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(bytes.Repeat([]byte{fill}, 32)))
}

// multisigScript is a 1-of-1 bare multisig used as a redeem or witness script.
func multisigScript(t *testing.T) []byte {
	pubKey := append([]byte{0x02}, bytes.Repeat([]byte{0x11}, 32)...)
	return mustScript(t, txscript.NewScriptBuilder().
		AddOp(txscript.OP_1).
		AddData(pubKey).
		AddOp(txscript.OP_1).
		AddOp(txscript.OP_CHECKMULTISIG))
}

func pushes(t *testing.T, items ...[]byte) []byte {
	b := txscript.NewScriptBuilder()
	for _, item := range items {
		b.AddData(item)
	}
	return mustScript(t, b)
}

func coinbaseTx(outputs ...*wire.TxOut) *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{}, math.MaxUint32), []byte{0x51}, nil))
	for _, out := range outputs {
		tx.AddTxOut(out)
	}
	return tx
}

func spendTx(ins []*wire.TxIn, outputs ...*wire.TxOut) *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	for _, in := range ins {
		tx.AddTxIn(in)
	}
	for _, out := range outputs {
		tx.AddTxOut(out)
	}
	return tx
}

func spend(prev *wire.MsgTx, vout uint32, sigScript []byte, witness wire.TxWitness) *wire.TxIn {
	hash := prev.TxHash()
	return wire.NewTxIn(wire.NewOutPoint(&hash, vout), sigScript, witness)
}
