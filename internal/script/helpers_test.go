package script

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func filled(n int, b byte) []byte {
	return bytes.Repeat([]byte{b}, n)
}

func p2pkhScript(hash []byte) []byte {
	s := []byte{0x76, 0xa9, 0x14}
	s = append(s, hash...)
	return append(s, 0x88, 0xac)
}

func p2shScript(hash []byte) []byte {
	s := []byte{0xa9, 0x14}
	s = append(s, hash...)
	return append(s, 0x87)
}

func p2wshScript(hash []byte) []byte {
	return append([]byte{0x00, 0x20}, hash...)
}

// directPush encodes data with a single OP_DATA_N opcode; len(data) must be 1..75.
func directPush(data []byte) []byte {
	return append([]byte{byte(len(data))}, data...)
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decode hex %q: %v", s, err)
	}
	return b
}
