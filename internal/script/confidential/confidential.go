// Package confidential adapts Elements (confidential-asset) transactions to the
// script package contracts. Confidential amounts, assets and proofs are never
// inspected; only scripts and the script witness are used.
package confidential

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/script"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
	"github.com/vulpemventures/go-elements/address"
	"github.com/vulpemventures/go-elements/network"
	"github.com/vulpemventures/go-elements/payment"
	"github.com/vulpemventures/go-elements/transaction"
)

// ParamsFor returns the Elements address parameter set used on network.
func ParamsFor(net model.Network) (*network.Network, bool) {
	switch net {
	case model.Mainnet:
		return &network.Liquid, true
	case model.Testnet:
		return &network.Testnet, true
	case model.Regtest:
		return &network.Regtest, true
	default:
		return nil, false
	}
}

// Script is a script of the Elements model. When a blinding public key is
// attached its address is rendered in confidential form.
type Script struct {
	raw         []byte
	blindingKey []byte
}

// NewScript wraps raw script bytes.
func NewScript(b []byte) Script {
	return Script{raw: b}
}

// WithBlindingKey returns a copy of s that renders confidential addresses.
func (s Script) WithBlindingKey(pubKey []byte) Script {
	s.blindingKey = pubKey
	return s
}

func (s Script) Bytes() []byte { return s.raw }
func (s Script) IsPayToPubKeyHash() bool { return script.IsP2PKH(s.raw) }
func (s Script) IsPayToScriptHash() bool { return script.IsP2SH(s.raw) }
func (s Script) IsPayToWitnessScriptHash() bool { return script.IsP2WSH(s.raw) }
func (s Script) Instructions() []script.Instruction { return script.Decode(s.raw) }

// EncodeAddress renders the address with go-elements rules: Elements version
// bytes for legacy outputs, segwit v0 programs, and the confidential form of
// each when a blinding key is attached.
func (s Script) EncodeAddress(net model.Network) (string, bool) {
	params, ok := ParamsFor(net)
	if !ok {
		return "", false
	}
	kind, ok := scriptType(s.raw)
	if !ok {
		return "", false
	}

	var blindingKey *btcec.PublicKey
	if len(s.blindingKey) > 0 {
		key, err := btcec.ParsePubKey(s.blindingKey)
		if err != nil {
			return "", false
		}
		blindingKey = key
	}

	p, err := payment.FromScript(s.raw, params, blindingKey)
	if err != nil {
		return "", false
	}

	addr, err := encodePayment(p, kind, blindingKey != nil)
	if err != nil || addr == "" {
		return "", false
	}
	return addr, true
}

// scriptType maps the output patterns go-elements can encode to its script
// type. Anything else, including truncated scripts, has no address.
func scriptType(b []byte) (int, bool) {
	switch {
	case script.IsP2PKH(b):
		return address.P2PkhScript, true
	case script.IsP2SH(b):
		return address.P2ShScript, true
	case script.IsP2WSH(b):
		return address.P2WshScript, true
	case isP2WPKH(b):
		return address.P2WpkhScript, true
	default:
		return 0, false
	}
}

func isP2WPKH(b []byte) bool {
	return len(b) == 22 && b[0] == txscript.OP_0 && b[1] == txscript.OP_DATA_20
}

func encodePayment(p *payment.Payment, kind int, blinded bool) (string, error) {
	switch kind {
	case address.P2PkhScript:
		if blinded {
			return p.ConfidentialPubKeyHash()
		}
		return p.PubKeyHash()
	case address.P2ShScript:
		if blinded {
			return p.ConfidentialScriptHash()
		}
		return p.ScriptHash()
	case address.P2WpkhScript:
		if blinded {
			return p.ConfidentialWitnessPubKeyHash()
		}
		return p.WitnessPubKeyHash()
	case address.P2WshScript:
		if blinded {
			return p.ConfidentialWitnessScriptHash()
		}
		return p.WitnessScriptHash()
	default:
		return "", fmt.Errorf("unsupported script type %d", kind)
	}
}

// TxIn adapts an Elements input to script.TxIn.
type TxIn struct {
	in *transaction.TxInput
}

// NewTxIn wraps in; a nil input behaves as one with no scripts.
func NewTxIn(in *transaction.TxInput) TxIn {
	return TxIn{in: in}
}

func (t TxIn) SignatureScript() script.Script {
	if t.in == nil {
		return NewScript(nil)
	}
	return NewScript(t.in.Script)
}

// WitnessStack returns the script witness; the peg-in witness is ignored.
func (t TxIn) WitnessStack() [][]byte {
	if t.in == nil {
		return nil
	}
	return t.in.Witness
}

func (TxIn) NewScript(b []byte) script.Script {
	return NewScript(b)
}

// TxOut adapts an Elements output to script.TxOut.
type TxOut struct {
	out         *transaction.TxOutput
	blindingKey []byte
}

// NewTxOut wraps out; a nil output behaves as one with an empty script.
func NewTxOut(out *transaction.TxOutput) TxOut {
	return TxOut{out: out}
}

// WithBlindingKey attaches the blinding public key used for the output's address.
func (t TxOut) WithBlindingKey(pubKey []byte) TxOut {
	t.blindingKey = pubKey
	return t
}

func (t TxOut) PkScript() script.Script {
	if t.out == nil {
		return NewScript(nil)
	}
	return NewScript(t.out.Script).WithBlindingKey(t.blindingKey)
}
