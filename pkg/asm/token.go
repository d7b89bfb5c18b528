package asm

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF     TokenType = iota // sentinel: end of input
	NEWLINE                  // statement terminator; significant, unlike spaces/tabs

	// Literals
	IDENTIFIER // label name or label reference
	NUMBER     // integer literal, already normalized from its source base
	REGISTER   // D0..D3

	// Instruction keywords
	ADD
	SUB
	SLT
	LI
	LW
	SW
	BEQ
	BNE
	PUSH
	POP
	J
	JAL
	JR
	NOP

	// Section and data directives
	DATA // .data
	CODE // .code
	WORD // .word

	// Punctuation
	COLON // :
	COMMA // ,
)

// tokenNames is indexed by TokenType; String falls back for out-of-range values.
var tokenNames = [...]string{
	EOF:        "EOF",
	NEWLINE:    "NEWLINE",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	REGISTER:   "REGISTER",
	ADD:        "ADD",
	SUB:        "SUB",
	SLT:        "SLT",
	LI:         "LI",
	LW:         "LW",
	SW:         "SW",
	BEQ:        "BEQ",
	BNE:        "BNE",
	PUSH:       "PUSH",
	POP:        "POP",
	J:          "J",
	JAL:        "JAL",
	JR:         "JR",
	NOP:        "NOP",
	DATA:       "DATA",
	CODE:       "CODE",
	WORD:       "WORD",
	COLON:      "COLON",
	COMMA:      "COMMA",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Value  int64  // normalized integer value; meaningful only for NUMBER
	Line   int    // 1-based source line
	Col    int    // 1-based column of the first character
	Offset int    // 0-based rune offset into the source
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case NEWLINE:
		return "end of line"
	}
	return fmt.Sprintf("%s (%q)", t.Type, t.Lexeme)
}
