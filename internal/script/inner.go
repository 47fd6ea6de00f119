package script

import "bytes"

// InnerScripts holds the scripts revealed by a wrapped spend. A nil field means
// the spend does not carry that script.
type InnerScripts struct {
	RedeemScript  Script
	WitnessScript Script
}

// InnerScriptsOf returns the redeem script of a P2SH spend and the witness
// script of a P2WSH or P2SH-P2WSH spend. Only one level of P2SH is unwrapped.
func InnerScriptsOf(in TxIn, prevout TxOut) InnerScripts {
	var inner InnerScripts

	pkScript := prevout.PkScript()
	if pkScript.IsPayToScriptHash() {
		inner.RedeemScript = redeemScript(in)
	}

	wrapsWitness := pkScript.IsPayToWitnessScriptHash() ||
		(inner.RedeemScript != nil && inner.RedeemScript.IsPayToWitnessScriptHash())
	if wrapsWitness {
		if stack := in.WitnessStack(); len(stack) > 0 {
			inner.WitnessScript = in.NewScript(bytes.Clone(stack[len(stack)-1]))
		}
	}

	return inner
}

// redeemScript returns the payload of the final push of the signature script,
// or nil when the script ends in an opcode, a decode failure or is empty.
func redeemScript(in TxIn) Script {
	last, ok := lastInstruction(in.SignatureScript())
	if !ok || !last.IsPush() {
		return nil
	}
	return in.NewScript(bytes.Clone(last.Data))
}
