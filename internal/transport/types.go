package transport

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/script"
	"github.com/goodnatureofminers/blockinsight7000-innerscripts/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	InputScriptsRepository interface {
		InputScriptsByTxID(ctx context.Context, coin model.Coin, network model.Network, txid string) ([]model.InputScripts, error)
		MaxProcessedHeight(ctx context.Context, coin model.Coin, network model.Network) (uint64, bool, error)
	}
)

type innerScriptsRequest struct {
	Network       string   `json:"network"`
	Model         string   `json:"model"`
	ScriptSig     string   `json:"script_sig"`
	Witness       []string `json:"witness"`
	PrevoutScript string   `json:"prevout_script"`
	BlindingKey   string   `json:"blinding_key"`
}

type innerScriptsResponse struct {
	Prevout script.Rendering `json:"prevout"`
	script.InnerRendering
}

type inputScriptsResponse struct {
	TxID   string            `json:"txid"`
	Inputs []inputScriptsRow `json:"inputs"`
}

type inputScriptsRow struct {
	Index             uint32 `json:"index"`
	BlockHeight       uint64 `json:"block_height"`
	PrevTxID          string `json:"prev_txid"`
	PrevVout          uint32 `json:"prev_vout"`
	PrevoutScriptType string `json:"prevout_script_type"`
	PrevoutAddress    string `json:"prevout_address,omitempty"`
	ScriptSigAsm      string `json:"script_sig_asm"`

	RedeemScript  *storedScript `json:"redeem_script,omitempty"`
	WitnessScript *storedScript `json:"witness_script,omitempty"`
}

type storedScript struct {
	Hex  string `json:"hex"`
	Asm  string `json:"asm"`
	Type string `json:"type,omitempty"`
}

type progressResponse struct {
	Coin      model.Coin    `json:"coin"`
	Network   model.Network `json:"network"`
	Height    uint64        `json:"height"`
	HasHeight bool          `json:"has_height"`
}

func newInputScriptsRow(in model.InputScripts) inputScriptsRow {
	row := inputScriptsRow{
		Index:             in.Index,
		BlockHeight:       in.BlockHeight,
		PrevTxID:          in.PrevTxID,
		PrevVout:          in.PrevVout,
		PrevoutScriptType: in.PrevoutScriptType,
		PrevoutAddress:    in.PrevoutAddress,
		ScriptSigAsm:      in.ScriptSigAsm,
	}
	if in.HasRedeemScript {
		row.RedeemScript = &storedScript{Hex: in.RedeemScriptHex, Asm: in.RedeemScriptAsm, Type: in.RedeemScriptType}
	}
	if in.HasWitnessScript {
		row.WitnessScript = &storedScript{Hex: in.WitnessScriptHex, Asm: in.WitnessScriptAsm}
	}
	return row
}
