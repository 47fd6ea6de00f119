package model

// InputScripts is the rendered spending conditions of one wrapped input.
// Redeem* and Witness* fields are only meaningful when the matching Has* flag is set.
type InputScripts struct {
	Coin        Coin
	Network     Network
	BlockHeight uint64
	TxID        string
	Index       uint32
	PrevTxID    string
	PrevVout    uint32

	PrevoutScriptType string
	PrevoutAddress    string
	ScriptSigAsm      string

	HasRedeemScript  bool
	RedeemScriptHex  string
	RedeemScriptAsm  string
	RedeemScriptType string

	HasWitnessScript bool
	WitnessScriptHex string
	WitnessScriptAsm string
}

// ProcessedHeight marks a block whose inputs have been fully resolved.
type ProcessedHeight struct {
	Coin    Coin
	Network Network
	Height  uint64
	Hash    string
	Inputs  uint32
}

// InsertBlock groups a processed block with the input scripts found in it.
type InsertBlock struct {
	Height       ProcessedHeight
	InputScripts []InputScripts
}
