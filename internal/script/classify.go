// Package script classifies, unwraps and renders spending-condition scripts.
//
// Every function in this package is pure: inputs are treated as read-only and
// unknown or malformed scripts produce empty results instead of errors.
package script

import "github.com/btcsuite/btcd/txscript"

// Class identifies one of the locking script templates the package recognizes.
type Class int

const (
	// ClassOther is any script that matches none of the known templates.
	ClassOther Class = iota
	// ClassP2PKH is OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG.
	ClassP2PKH
	// ClassP2SH is OP_HASH160 <20 bytes> OP_EQUAL.
	ClassP2SH
	// ClassP2WSH is OP_0 <32 bytes>.
	ClassP2WSH
)

func (c Class) String() string {
	switch c {
	case ClassP2PKH:
		return "p2pkh"
	case ClassP2SH:
		return "p2sh"
	case ClassP2WSH:
		return "p2wsh"
	default:
		return "other"
	}
}

// IsP2PKH reports whether b is exactly the 25-byte pay-to-pubkey-hash template.
func IsP2PKH(b []byte) bool {
	return txscript.IsPayToPubKeyHash(b)
}

// IsP2SH reports whether b is exactly the 23-byte pay-to-script-hash template.
func IsP2SH(b []byte) bool {
	return txscript.IsPayToScriptHash(b)
}

// IsP2WSH reports whether b is a version 0 witness program with a 32-byte script hash.
func IsP2WSH(b []byte) bool {
	return txscript.IsPayToWitnessScriptHash(b)
}

// Classify returns the template class of the raw script bytes.
func Classify(b []byte) Class {
	switch {
	case IsP2PKH(b):
		return ClassP2PKH
	case IsP2SH(b):
		return ClassP2SH
	case IsP2WSH(b):
		return ClassP2WSH
	default:
		return ClassOther
	}
}

// ClassOf classifies a script of any model.
func ClassOf(s Script) Class {
	switch {
	case s.IsPayToPubKeyHash():
		return ClassP2PKH
	case s.IsPayToScriptHash():
		return ClassP2SH
	case s.IsPayToWitnessScriptHash():
		return ClassP2WSH
	default:
		return ClassOther
	}
}
