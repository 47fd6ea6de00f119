package script

import (
	"encoding/hex"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
)

// Rendering is the human-readable form of a single script.
type Rendering struct {
	Hex     string `json:"hex"`
	Type    string `json:"type"`
	Asm     string `json:"asm"`
	Address string `json:"address,omitempty"`
}

// InnerRendering is the rendered form of InnerScripts.
type InnerRendering struct {
	RedeemScript  *Rendering `json:"redeem_script,omitempty"`
	WitnessScript *Rendering `json:"witness_script,omitempty"`
}

// Render describes s for display on network.
func Render(s Script, network model.Network) Rendering {
	addr, _ := Address(s, network)
	return Rendering{
		Hex:     hex.EncodeToString(s.Bytes()),
		Type:    ClassOf(s).String(),
		Asm:     Asm(s),
		Address: addr,
	}
}

// RenderInner renders whichever inner scripts are present.
func RenderInner(inner InnerScripts, network model.Network) InnerRendering {
	var out InnerRendering
	if inner.RedeemScript != nil {
		r := Render(inner.RedeemScript, network)
		out.RedeemScript = &r
	}
	if inner.WitnessScript != nil {
		r := Render(inner.WitnessScript, network)
		out.WitnessScript = &r
	}
	return out
}
