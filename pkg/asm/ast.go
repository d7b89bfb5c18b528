package asm

import (
	"fmt"
	"strconv"
)

// Register is one of the four machine registers. It is a closed enumeration;
// the lexer never produces a REGISTER token outside this set.
type Register uint8

const (
	D0 Register = iota
	D1
	D2
	D3
)

func (r Register) String() string { return fmt.Sprintf("D%d", uint8(r)) }

// Program is the root of the syntax tree: one required code section and an
// optional data section. The tree is built once by the parser and never
// mutated afterwards.
type Program struct {
	Data *DataSection // nil when the source has no .data section
	Code *CodeSection
}

// DataSection is the ordered list of declarations under ".data".
type DataSection struct {
	Decls []DataDecl
}

// DataDecl is one "label: .word, value" line. The value is always a literal
// integer; label references are not allowed in data declarations.
type DataDecl struct {
	Label string
	Value int64
	Line  int
}

// CodeSection is the ordered, non-empty list of statements under ".code".
type CodeSection struct {
	Statements []Statement
}

// Statement is one instruction with an optional label. Whether the label sat
// on its own line or inline before the instruction is not recorded; the two
// forms parse identically. Label uniqueness is not checked here.
type Statement struct {
	Label string // "" when unlabeled
	Instr Instruction
	Line  int
}

// Instruction is implemented by the four instruction shapes. The shape and
// the operator together fix the operand arity, so a well-typed tree can never
// hold a malformed instruction.
type Instruction interface {
	instrNode()
	Op() OpCode
	String() string
}

// RType is a three-register instruction: add, sub, slt.
type RType struct {
	Opcode OpCode
	Dst    Register
	Src1   Register
	Src2   Register
}

func (*RType) instrNode() {}
func (i *RType) Op() OpCode { return i.Opcode }
func (i *RType) String() string {
	return fmt.Sprintf("%s %s, %s, %s", i.Opcode, i.Dst, i.Src1, i.Src2)
}

// IType is a register-plus-value instruction (li, lw, sw, beq, bne) or a
// single-register instruction (push, pop), in which case Val is nil.
type IType struct {
	Opcode OpCode
	Reg    Register
	Val    Value
}

func (*IType) instrNode() {}
func (i *IType) Op() OpCode { return i.Opcode }
func (i *IType) String() string {
	if i.Val == nil {
		return fmt.Sprintf("%s %s", i.Opcode, i.Reg)
	}
	return fmt.Sprintf("%s %s, %s", i.Opcode, i.Reg, i.Val)
}

// JType is a jump: j and jal carry a target value, jr carries none.
type JType struct {
	Opcode OpCode
	Target Value // nil for jr
}

func (*JType) instrNode() {}
func (i *JType) Op() OpCode { return i.Opcode }
func (i *JType) String() string {
	if i.Target == nil {
		return i.Opcode.String()
	}
	return fmt.Sprintf("%s %s", i.Opcode, i.Target)
}

// PType is nop.
type PType struct {
	Opcode OpCode
}

func (*PType) instrNode() {}
func (i *PType) Op() OpCode { return i.Opcode }
func (i *PType) String() string { return i.Opcode.String() }

// Value is an instruction operand that is either a label reference, resolved
// to an address by a later pass, or an already-normalized integer literal.
type Value interface {
	valueNode()
	String() string
}

// Identifier is a named reference to a label.
type Identifier struct {
	Name string
	Line int
}

func (*Identifier) valueNode() {}
func (v *Identifier) String() string { return v.Name }

// Immediate is a literal signed integer. The source base (decimal, octal,
// hex) is not retained.
type Immediate struct {
	Value int64
}

func (*Immediate) valueNode() {}
func (v *Immediate) String() string { return strconv.FormatInt(v.Value, 10) }
