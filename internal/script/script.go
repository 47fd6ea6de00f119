package script

import (
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
)

type (
	// Script is the capability set shared by every supported script model.
	Script interface {
		Bytes() []byte
		IsPayToPubKeyHash() bool
		IsPayToScriptHash() bool
		IsPayToWitnessScriptHash() bool
		Instructions() []Instruction
	}

	// TxIn is a spending input of any supported transaction model.
	TxIn interface {
		SignatureScript() Script
		// WitnessStack returns the witness items, outermost last.
		WitnessStack() [][]byte
		// NewScript wraps raw bytes in a script of the input's own model.
		NewScript(b []byte) Script
	}

	// TxOut is an output of any supported transaction model.
	TxOut interface {
		PkScript() Script
	}

	// AddressEncoder is implemented by script models that render addresses
	// with their own rules instead of the legacy Base58Check templates.
	AddressEncoder interface {
		EncodeAddress(network model.Network) (string, bool)
	}
)

// Base is a script of the base (Bitcoin wire) model.
type Base []byte

func (s Base) Bytes() []byte { return s }
func (s Base) IsPayToPubKeyHash() bool { return IsP2PKH(s) }
func (s Base) IsPayToScriptHash() bool { return IsP2SH(s) }
func (s Base) IsPayToWitnessScriptHash() bool { return IsP2WSH(s) }
func (s Base) Instructions() []Instruction { return Decode(s) }

// WireTxIn adapts a btcd wire input to TxIn.
type WireTxIn struct {
	in *wire.TxIn
}

// NewWireTxIn wraps in; a nil input behaves as one with no scripts.
func NewWireTxIn(in *wire.TxIn) WireTxIn {
	return WireTxIn{in: in}
}

func (t WireTxIn) SignatureScript() Script {
	if t.in == nil {
		return Base(nil)
	}
	return Base(t.in.SignatureScript)
}

func (t WireTxIn) WitnessStack() [][]byte {
	if t.in == nil {
		return nil
	}
	return t.in.Witness
}

func (WireTxIn) NewScript(b []byte) Script {
	return Base(b)
}

// WireTxOut adapts a btcd wire output to TxOut.
type WireTxOut struct {
	out *wire.TxOut
}

// NewWireTxOut wraps out; a nil output behaves as one with an empty script.
func NewWireTxOut(out *wire.TxOut) WireTxOut {
	return WireTxOut{out: out}
}

func (t WireTxOut) PkScript() Script {
	if t.out == nil {
		return Base(nil)
	}
	return Base(t.out.PkScript)
}
