package asm

import "fmt"

// ParseErrorKind classifies parse failures so callers can branch without
// string matching.
type ParseErrorKind int

const (
	// ErrUnexpectedToken is the catch-all for structural mismatches: a
	// missing colon after a label, a missing comma in a data declaration, a
	// duplicate section, or a .word value that is not an immediate.
	ErrUnexpectedToken ParseErrorKind = iota

	// ErrMissingCodeSection means the source contains no .code block at all.
	ErrMissingCodeSection

	// ErrUnterminatedStatement means an instruction was not followed by a
	// newline before the input ended.
	ErrUnterminatedStatement

	// ErrBadOperands means an instruction's operands do not match its
	// operator's fixed arity and kinds.
	ErrBadOperands
)

// ParseError describes the first point at which the token stream stopped
// matching the grammar. Parsing is all-or-nothing: no partial tree
// accompanies a ParseError.
type ParseError struct {
	Kind     ParseErrorKind
	Expected string // human-readable description of the expected construct
	Found    Token
	Op       string // operator mnemonic; set only for ErrBadOperands
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrMissingCodeSection:
		return "missing .code section"
	case ErrUnterminatedStatement:
		return fmt.Sprintf("line %d:%d: unterminated statement: expected %s, found %s",
			e.Found.Line, e.Found.Col, e.Expected, e.Found)
	case ErrBadOperands:
		return fmt.Sprintf("line %d:%d: bad operands for '%s': expected %s, found %s",
			e.Found.Line, e.Found.Col, e.Op, e.Expected, e.Found)
	default:
		return fmt.Sprintf("line %d:%d: expected %s, found %s",
			e.Found.Line, e.Found.Col, e.Expected, e.Found)
	}
}

// operand-shape descriptions, used in ErrBadOperands messages.
const (
	shapeRRR      = "register ',' register ',' register"
	shapeRegValue = "register ',' value"
	shapeRegOnly  = "register"
	shapeValue    = "label or immediate"
)

// Parser consumes the flat token slice produced by the Lexer and builds a
// Program.
//
// Grammar:
//
//	program      = NEWLINE* (data_section code_section | code_section data_section?) EOF
//	data_section = ".data" NEWLINE+ data_decl+
//	data_decl    = IDENTIFIER ":" ".word" "," NUMBER NEWLINE+
//	code_section = ".code" NEWLINE+ statement+
//	statement    = (IDENTIFIER ":" NEWLINE*)? instruction NEWLINE+
//	instruction  = r_type | i_type | j_type | p_type
//	r_type       = ("add"|"sub"|"slt") REGISTER "," REGISTER "," REGISTER
//	i_type       = ("li"|"lw"|"sw"|"beq"|"bne") REGISTER "," value
//	             | ("push"|"pop") REGISTER
//	j_type       = ("j"|"jal") value | "jr"
//	p_type       = "nop"
//	value        = IDENTIFIER | NUMBER
//
// One token of lookahead suffices everywhere: instructions are keyword-first
// and the lexer already separates identifiers from numbers.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser wraps an already-lexed token slice. Most callers want Parse,
// which lexes and parses in one step.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse is the sole text-to-tree entry point: it lexes src and parses the
// token stream into a Program. The returned error is a *LexError or a
// *ParseError; no partial tree is returned on failure.
func Parse(src string) (*Program, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Program()
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches tt, otherwise fails with
// ErrUnexpectedToken.
func (p *Parser) expect(tt TokenType, expected string) (Token, error) {
	tok := p.advance()
	if tok.Type != tt {
		return tok, &ParseError{Expected: expected, Found: tok}
	}
	return tok, nil
}

// skipNewlines consumes zero or more NEWLINE tokens.
func (p *Parser) skipNewlines() {
	for p.peek().Type == NEWLINE {
		p.advance()
	}
}

// expectNewlines consumes one or more NEWLINE tokens.
func (p *Parser) expectNewlines(expected string) error {
	if _, err := p.expect(NEWLINE, expected); err != nil {
		return err
	}
	p.skipNewlines()
	return nil
}

// Program parses the whole token stream. The code section is required; the
// data section is optional and may precede or follow it, each at most once.
func (p *Parser) Program() (*Program, error) {
	if !p.hasCodeSection() {
		return nil, &ParseError{Kind: ErrMissingCodeSection, Expected: "a .code section", Found: p.lastToken()}
	}

	prog := &Program{}
	p.skipNewlines()
	for p.peek().Type != EOF {
		switch tok := p.peek(); tok.Type {
		case DATA:
			if prog.Data != nil {
				return nil, &ParseError{Expected: "at most one .data section", Found: tok}
			}
			data, err := p.dataSection()
			if err != nil {
				return nil, err
			}
			prog.Data = data
		case CODE:
			if prog.Code != nil {
				return nil, &ParseError{Expected: "at most one .code section", Found: tok}
			}
			code, err := p.codeSection()
			if err != nil {
				return nil, err
			}
			prog.Code = code
		default:
			return nil, &ParseError{Expected: "a .data or .code section", Found: tok}
		}
		p.skipNewlines()
	}
	return prog, nil
}

// hasCodeSection scans the remaining tokens for a .code directive.
func (p *Parser) hasCodeSection() bool {
	for _, tok := range p.tokens[p.pos:] {
		if tok.Type == CODE {
			return true
		}
	}
	return false
}

// lastToken returns the final token of the stream (normally EOF), used to
// position stream-wide errors.
func (p *Parser) lastToken() Token {
	if len(p.tokens) == 0 {
		return Token{Type: EOF}
	}
	return p.tokens[len(p.tokens)-1]
}

// dataSection parses ".data" NEWLINE+ data_decl+. The section ends at the
// .code directive or at end of input.
func (p *Parser) dataSection() (*DataSection, error) {
	p.advance() // .data
	if err := p.expectNewlines("a newline after '.data'"); err != nil {
		return nil, err
	}

	section := &DataSection{}
	for p.peek().Type == IDENTIFIER {
		decl, err := p.dataDecl()
		if err != nil {
			return nil, err
		}
		section.Decls = append(section.Decls, decl)
	}
	if len(section.Decls) == 0 {
		return nil, &ParseError{Expected: "a data declaration", Found: p.peek()}
	}
	return section, nil
}

// dataDecl parses one "label ':' '.word' ',' immediate" line. The value must
// be a literal integer; a label reference here is rejected.
func (p *Parser) dataDecl() (DataDecl, error) {
	label := p.advance() // IDENTIFIER, checked by caller
	if _, err := p.expect(COLON, fmt.Sprintf("':' after label %q", label.Lexeme)); err != nil {
		return DataDecl{}, err
	}
	if _, err := p.expect(WORD, "'.word' after ':'"); err != nil {
		return DataDecl{}, err
	}
	if _, err := p.expect(COMMA, "',' after '.word'"); err != nil {
		return DataDecl{}, err
	}
	value, err := p.expect(NUMBER, "an immediate value (labels are not allowed in data declarations)")
	if err != nil {
		return DataDecl{}, err
	}
	if err := p.expectNewlines("a newline after the data declaration"); err != nil {
		return DataDecl{}, err
	}
	return DataDecl{Label: label.Lexeme, Value: value.Value, Line: label.Line}, nil
}

// codeSection parses ".code" NEWLINE+ statement+. The section is non-empty
// and ends at the .data directive or at end of input.
func (p *Parser) codeSection() (*CodeSection, error) {
	p.advance() // .code
	if err := p.expectNewlines("a newline after '.code'"); err != nil {
		return nil, err
	}

	section := &CodeSection{}
	for {
		tt := p.peek().Type
		if tt == DATA || tt == EOF {
			break
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		section.Statements = append(section.Statements, stmt)
	}
	if len(section.Statements) == 0 {
		return nil, &ParseError{Expected: "at least one statement", Found: p.peek()}
	}
	return section, nil
}

// statement parses an optionally labeled instruction. A label may sit on its
// own line or inline before the instruction; both forms produce the same
// Statement. The instruction must be terminated by at least one newline.
func (p *Parser) statement() (Statement, error) {
	first := p.peek()
	label := ""
	if first.Type == IDENTIFIER {
		p.advance()
		if _, err := p.expect(COLON, fmt.Sprintf("':' after label %q", first.Lexeme)); err != nil {
			return Statement{}, err
		}
		p.skipNewlines()
		label = first.Lexeme
	}

	instr, err := p.instruction()
	if err != nil {
		return Statement{}, err
	}

	switch tok := p.peek(); tok.Type {
	case NEWLINE:
		p.skipNewlines()
	case EOF:
		return Statement{}, &ParseError{
			Kind:     ErrUnterminatedStatement,
			Expected: "a newline after the instruction",
			Found:    tok,
		}
	default:
		return Statement{}, &ParseError{
			Kind:     ErrBadOperands,
			Expected: "no further operands",
			Found:    tok,
			Op:       instr.Op().String(),
		}
	}
	return Statement{Label: label, Instr: instr, Line: first.Line}, nil
}

// instruction dispatches on the leading keyword and matches the operand list
// against that operator's fixed shape.
func (p *Parser) instruction() (Instruction, error) {
	tok := p.advance()
	switch tok.Type {
	case ADD, SUB, SLT:
		return p.rType(tok)
	case LI, LW, SW, BEQ, BNE:
		return p.iType(tok)
	case PUSH, POP:
		reg, err := p.register(tok, shapeRegOnly)
		if err != nil {
			return nil, err
		}
		return &IType{Opcode: opcodeFor(tok.Type), Reg: reg}, nil
	case J, JAL:
		target, err := p.value(tok, shapeValue)
		if err != nil {
			return nil, err
		}
		return &JType{Opcode: opcodeFor(tok.Type), Target: target}, nil
	case JR:
		return &JType{Opcode: OpJR}, nil
	case NOP:
		return &PType{Opcode: OpNOP}, nil
	default:
		return nil, &ParseError{Expected: "an instruction", Found: tok}
	}
}

// rType parses "reg ',' reg ',' reg" for add, sub and slt.
func (p *Parser) rType(op Token) (Instruction, error) {
	dst, err := p.register(op, shapeRRR)
	if err != nil {
		return nil, err
	}
	if err := p.comma(op, shapeRRR); err != nil {
		return nil, err
	}
	src1, err := p.register(op, shapeRRR)
	if err != nil {
		return nil, err
	}
	if err := p.comma(op, shapeRRR); err != nil {
		return nil, err
	}
	src2, err := p.register(op, shapeRRR)
	if err != nil {
		return nil, err
	}
	return &RType{Opcode: opcodeFor(op.Type), Dst: dst, Src1: src1, Src2: src2}, nil
}

// iType parses "reg ',' value" for li, lw, sw, beq and bne.
func (p *Parser) iType(op Token) (Instruction, error) {
	reg, err := p.register(op, shapeRegValue)
	if err != nil {
		return nil, err
	}
	if err := p.comma(op, shapeRegValue); err != nil {
		return nil, err
	}
	val, err := p.value(op, shapeRegValue)
	if err != nil {
		return nil, err
	}
	return &IType{Opcode: opcodeFor(op.Type), Reg: reg, Val: val}, nil
}

// register consumes one REGISTER operand or fails with ErrBadOperands.
func (p *Parser) register(op Token, shape string) (Register, error) {
	tok := p.advance()
	if tok.Type != REGISTER {
		return 0, &ParseError{Kind: ErrBadOperands, Expected: shape, Found: tok, Op: op.Lexeme}
	}
	return registerNames[tok.Lexeme], nil
}

// comma consumes one operand separator or fails with ErrBadOperands.
func (p *Parser) comma(op Token, shape string) error {
	tok := p.advance()
	if tok.Type != COMMA {
		return &ParseError{Kind: ErrBadOperands, Expected: shape, Found: tok, Op: op.Lexeme}
	}
	return nil
}

// value consumes one identifier-or-immediate operand or fails with
// ErrBadOperands.
func (p *Parser) value(op Token, shape string) (Value, error) {
	switch tok := p.advance(); tok.Type {
	case IDENTIFIER:
		return &Identifier{Name: tok.Lexeme, Line: tok.Line}, nil
	case NUMBER:
		return &Immediate{Value: tok.Value}, nil
	default:
		return nil, &ParseError{Kind: ErrBadOperands, Expected: shape, Found: tok, Op: op.Lexeme}
	}
}

// opcodeByToken maps instruction keyword tokens to their opcode.
var opcodeByToken = map[TokenType]OpCode{
	ADD:  OpADD,
	SUB:  OpSUB,
	SLT:  OpSLT,
	LI:   OpLI,
	LW:   OpLW,
	SW:   OpSW,
	BEQ:  OpBEQ,
	BNE:  OpBNE,
	PUSH: OpPUSH,
	POP:  OpPOP,
	J:    OpJ,
	JAL:  OpJAL,
	JR:   OpJR,
	NOP:  OpNOP,
}

func opcodeFor(tt TokenType) OpCode { return opcodeByToken[tt] }
