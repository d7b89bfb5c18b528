package asm

import "fmt"

// OpCode is the 4-bit operation code used in the machine encoding.
type OpCode uint8

const (
	OpADD  OpCode = 0b0000
	OpSUB  OpCode = 0b0001
	OpSLT  OpCode = 0b0010
	OpLI   OpCode = 0b0011
	OpLW   OpCode = 0b0100
	OpSW   OpCode = 0b0101
	OpBEQ  OpCode = 0b0110
	OpBNE  OpCode = 0b0111
	OpPUSH OpCode = 0b1000
	OpPOP  OpCode = 0b1001
	OpJ    OpCode = 0b1010
	OpJAL  OpCode = 0b1011
	OpJR   OpCode = 0b1100
	OpNOP  OpCode = 0b1101
)

var opcodeNames = [...]string{
	OpADD:  "add",
	OpSUB:  "sub",
	OpSLT:  "slt",
	OpLI:   "li",
	OpLW:   "lw",
	OpSW:   "sw",
	OpBEQ:  "beq",
	OpBNE:  "bne",
	OpPUSH: "push",
	OpPOP:  "pop",
	OpJ:    "j",
	OpJAL:  "jal",
	OpJR:   "jr",
	OpNOP:  "nop",
}

// String returns the source mnemonic for the opcode.
func (op OpCode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("OpCode(%d)", uint8(op))
}
