package script

import "github.com/btcsuite/btcd/txscript"

// Instruction is a single decoded script element. Exactly one of the following holds:
// Err is set (the element could not be decoded), the opcode is a data push
// and Data carries its payload, or the opcode is a plain operation.
type Instruction struct {
	Opcode byte
	Data   []byte
	Err    error
}

// IsPush reports whether the instruction is a successfully decoded data push.
// OP_0 counts as a push of zero bytes.
func (i Instruction) IsPush() bool {
	return i.Err == nil && i.Opcode <= txscript.OP_PUSHDATA4
}

// Decode tokenizes b in order. A malformed trailing element is reported as a
// final Instruction with Err set; everything decoded before it is kept.
func Decode(b []byte) []Instruction {
	const scriptVersion = 0

	var instructions []Instruction
	tokenizer := txscript.MakeScriptTokenizer(scriptVersion, b)
	for tokenizer.Next() {
		instructions = append(instructions, Instruction{
			Opcode: tokenizer.Opcode(),
			Data:   tokenizer.Data(),
		})
	}
	if err := tokenizer.Err(); err != nil {
		instructions = append(instructions, Instruction{Err: err})
	}
	return instructions
}

func lastInstruction(s Script) (Instruction, bool) {
	instructions := s.Instructions()
	if len(instructions) == 0 {
		return Instruction{}, false
	}
	return instructions[len(instructions)-1], true
}
