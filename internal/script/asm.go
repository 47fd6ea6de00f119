package script

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/txscript"
)

const invalidToken = "[error]"

// opcodeNames maps every opcode byte to its canonical mnemonic.
var opcodeNames = func() [256]string {
	aliases := map[string]struct{}{
		"OP_FALSE": {},
		"OP_TRUE":  {},
		"OP_NOP2":  {},
		"OP_NOP3":  {},
	}

	var names [256]string
	for name, op := range txscript.OpcodeByName {
		if _, alias := aliases[name]; alias {
			continue
		}
		names[op] = name
	}
	for op, name := range names {
		if name == "" {
			names[op] = fmt.Sprintf("OP_UNKNOWN%d", op)
		}
	}
	return names
}()

// OpcodeName returns the mnemonic of op.
func OpcodeName(op byte) string {
	return opcodeNames[op]
}

// Asm disassembles s into space separated tokens: the hex payload for pushes,
// the mnemonic for other opcodes and "[error]" for an undecodable tail.
func Asm(s Script) string {
	instructions := s.Instructions()
	tokens := make([]string, 0, len(instructions))
	for _, instruction := range instructions {
		tokens = append(tokens, asmToken(instruction))
	}
	return strings.Join(tokens, " ")
}

func asmToken(instruction Instruction) string {
	switch {
	case instruction.Err != nil:
		return invalidToken
	case instruction.IsPush() && len(instruction.Data) > 0:
		return hex.EncodeToString(instruction.Data)
	default:
		// Empty pushes (OP_0, zero-length OP_PUSHDATA*) have no payload to show.
		return opcodeNames[instruction.Opcode]
	}
}
