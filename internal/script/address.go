package script

import (
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
)

// VersionByteFor returns the legacy address version byte for a template on a
// network. This chain uses 16 for mainnet P2PKH, not Bitcoin's 0.
func VersionByteFor(network model.Network, class Class) (byte, bool) {
	switch network {
	case model.Mainnet:
		switch class {
		case ClassP2PKH:
			return 16, true
		case ClassP2SH:
			return 5, true
		}
	case model.Testnet, model.Regtest, model.Signet:
		switch class {
		case ClassP2PKH:
			return 111, true
		case ClassP2SH:
			return 196, true
		}
	}
	return 0, false
}

// Address renders the destination of a locking script for network. Scripts
// implementing AddressEncoder use their own rules; others are limited to the
// P2PKH and P2SH templates.
func Address(s Script, network model.Network) (string, bool) {
	if enc, ok := s.(AddressEncoder); ok {
		return enc.EncodeAddress(network)
	}
	return LegacyAddress(s.Bytes(), network)
}

// LegacyAddress Base58Check-encodes the hash committed to by a P2PKH or P2SH script.
func LegacyAddress(b []byte, network model.Network) (string, bool) {
	class := Classify(b)

	var hash []byte
	switch class {
	case ClassP2PKH:
		hash = b[3:23]
	case ClassP2SH:
		hash = b[2:22]
	default:
		return "", false
	}

	version, ok := VersionByteFor(network, class)
	if !ok {
		return "", false
	}
	return base58.CheckEncode(hash, version), true
}
