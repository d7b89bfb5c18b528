package asm

import "fmt"

// Machine words are 11 bits: a 4-bit opcode followed by operand fields whose
// layout depends on the instruction shape. Every resolved operand value must
// fit the architectural range 0..31.
const (
	wordMask   = 0b11111111111
	operandMin = 0
	operandMax = 31
)

// Word is one encoded 11-bit machine word.
type Word uint16

// Bits renders the word as the 11-digit binary string the toolchain emits.
func (w Word) Bits() string { return fmt.Sprintf("%011b", uint16(w)) }

// Image is the result of assembling a parsed program: the encoded words (code
// first, then data), a source map from word index to source line, and any
// non-fatal warnings.
type Image struct {
	Words    []Word
	Lines    []int // source line of the statement or declaration per word
	Warnings []string
}

// UnknownLabelError reports a label reference that no statement or data
// declaration defines. Closest carries a did-you-mean suggestion when a
// plausibly similar label exists.
type UnknownLabelError struct {
	Name    string
	Line    int
	Closest string
}

func (e *UnknownLabelError) Error() string {
	if e.Closest != "" {
		return fmt.Sprintf("line %d: unknown label %q, did you mean %q?", e.Line, e.Name, e.Closest)
	}
	return fmt.Sprintf("line %d: unknown label %q", e.Line, e.Name)
}

// DuplicateLabelError reports a label defined more than once across the code
// and data sections.
type DuplicateLabelError struct {
	Name string
	Line int
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("line %d: duplicate label %q", e.Line, e.Name)
}

// ImmediateRangeError reports a resolved operand value outside 0..31.
type ImmediateRangeError struct {
	Value int64
	Line  int
}

func (e *ImmediateRangeError) Error() string {
	return fmt.Sprintf("line %d: immediate %d out of range (must be %d..%d)",
		e.Line, e.Value, operandMin, operandMax)
}

// Assemble resolves labels and encodes prog into machine words. The program
// tree is read-only input; Assemble never mutates it. Unused data labels are
// reported as warnings on the returned Image, mirroring the parser's
// all-or-nothing contract for errors: a nil error means every word encoded.
func Assemble(prog *Program) (*Image, error) {
	st, err := buildSymbolTable(prog)
	if err != nil {
		return nil, err
	}

	enc := &encoder{symtab: st, used: make(map[string]bool)}
	img := &Image{}

	for _, stmt := range prog.Code.Statements {
		word, err := enc.encodeStatement(stmt)
		if err != nil {
			return nil, err
		}
		img.Words = append(img.Words, word)
		img.Lines = append(img.Lines, stmt.Line)
	}

	if prog.Data != nil {
		for _, decl := range prog.Data.Decls {
			if decl.Value < operandMin || decl.Value > operandMax {
				return nil, &ImmediateRangeError{Value: decl.Value, Line: decl.Line}
			}
			img.Words = append(img.Words, Word(decl.Value)&wordMask)
			img.Lines = append(img.Lines, decl.Line)
		}
		for _, decl := range prog.Data.Decls {
			if !enc.used[decl.Label] {
				img.Warnings = append(img.Warnings, fmt.Sprintf("unused data %q", decl.Label))
			}
		}
	}
	return img, nil
}

// encoder holds the per-run resolution state.
type encoder struct {
	symtab *symbolTable
	used   map[string]bool // labels referenced by at least one instruction
}

// encodeStatement packs one statement into its 11-bit word.
//
//	R-type: [4 op | 2 dst | 3 src1 | 2 src2]
//	I-type: [4 op | 2 reg | 5 imm]
//	J-type: [4 op | 7 addr]
//	nop:    [4 op | 7 zero]
func (e *encoder) encodeStatement(stmt Statement) (Word, error) {
	op := uint16(stmt.Instr.Op())
	switch instr := stmt.Instr.(type) {
	case *RType:
		return Word(op<<7|uint16(instr.Dst)<<5|uint16(instr.Src1)<<2|uint16(instr.Src2)) & wordMask, nil
	case *IType:
		imm := uint16(0)
		if instr.Val != nil {
			v, err := e.resolve(instr.Val, stmt.Line)
			if err != nil {
				return 0, err
			}
			imm = v
		}
		return Word(op<<7|uint16(instr.Reg)<<5|imm) & wordMask, nil
	case *JType:
		addr := uint16(0)
		if instr.Target != nil {
			v, err := e.resolve(instr.Target, stmt.Line)
			if err != nil {
				return 0, err
			}
			addr = v
		}
		return Word(op<<7|addr) & wordMask, nil
	case *PType:
		return Word(op<<7) & wordMask, nil
	default:
		return 0, fmt.Errorf("line %d: unencodable instruction %T", stmt.Line, stmt.Instr)
	}
}

// resolve turns a value operand into its numeric form: immediates pass
// through, identifiers resolve through the symbol table. Either way the
// result must fit the architectural operand range.
func (e *encoder) resolve(val Value, line int) (uint16, error) {
	var n int64
	switch v := val.(type) {
	case *Immediate:
		n = v.Value
	case *Identifier:
		addr, ok := e.symtab.lookup(v.Name)
		if !ok {
			return 0, &UnknownLabelError{Name: v.Name, Line: v.Line, Closest: e.symtab.closest(v.Name)}
		}
		e.used[v.Name] = true
		n = int64(addr)
	default:
		return 0, fmt.Errorf("line %d: unencodable value %T", line, val)
	}
	if n < operandMin || n > operandMax {
		return 0, &ImmediateRangeError{Value: n, Line: line}
	}
	return uint16(n), nil
}
