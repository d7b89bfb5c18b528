package asm

import (
	"reflect"
	"testing"
)

// stripPos zeroes the column and offset of every token so expected values in
// the tables below stay readable. Line numbers are kept.
func stripPos(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, tok := range tokens {
		tok.Col = 0
		tok.Offset = 0
		out[i] = tok
	}
	return out
}

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
		wantErr  bool
	}{
		{
			name:  "Empty",
			input: "",
			expected: []Token{
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Instruction With Registers",
			input: "add D0, D1, D2\n",
			expected: []Token{
				{Type: ADD, Lexeme: "add", Line: 1},
				{Type: REGISTER, Lexeme: "D0", Line: 1},
				{Type: COMMA, Lexeme: ",", Line: 1},
				{Type: REGISTER, Lexeme: "D1", Line: 1},
				{Type: COMMA, Lexeme: ",", Line: 1},
				{Type: REGISTER, Lexeme: "D2", Line: 1},
				{Type: NEWLINE, Lexeme: "\n", Line: 1},
				{Type: EOF, Lexeme: "", Line: 2},
			},
		},
		{
			name:  "Keyword Priority Needs Exact Match",
			input: "addx jx _pop d0",
			expected: []Token{
				{Type: IDENTIFIER, Lexeme: "addx", Line: 1},
				{Type: IDENTIFIER, Lexeme: "jx", Line: 1},
				{Type: IDENTIFIER, Lexeme: "_pop", Line: 1},
				{Type: IDENTIFIER, Lexeme: "d0", Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "All Keywords",
			input: "add sub slt li lw sw beq bne push pop j jal jr nop",
			expected: []Token{
				{Type: ADD, Lexeme: "add", Line: 1},
				{Type: SUB, Lexeme: "sub", Line: 1},
				{Type: SLT, Lexeme: "slt", Line: 1},
				{Type: LI, Lexeme: "li", Line: 1},
				{Type: LW, Lexeme: "lw", Line: 1},
				{Type: SW, Lexeme: "sw", Line: 1},
				{Type: BEQ, Lexeme: "beq", Line: 1},
				{Type: BNE, Lexeme: "bne", Line: 1},
				{Type: PUSH, Lexeme: "push", Line: 1},
				{Type: POP, Lexeme: "pop", Line: 1},
				{Type: J, Lexeme: "j", Line: 1},
				{Type: JAL, Lexeme: "jal", Line: 1},
				{Type: JR, Lexeme: "jr", Line: 1},
				{Type: NOP, Lexeme: "nop", Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Directives",
			input: ".data .code .word",
			expected: []Token{
				{Type: DATA, Lexeme: ".data", Line: 1},
				{Type: CODE, Lexeme: ".code", Line: 1},
				{Type: WORD, Lexeme: ".word", Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Numbers In Three Bases",
			input: "16 0x10 0o20 0xFf",
			expected: []Token{
				{Type: NUMBER, Lexeme: "16", Value: 16, Line: 1},
				{Type: NUMBER, Lexeme: "0x10", Value: 16, Line: 1},
				{Type: NUMBER, Lexeme: "0o20", Value: 16, Line: 1},
				{Type: NUMBER, Lexeme: "0xFf", Value: 255, Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Negative Numbers",
			input: "-5 -0x1 -0o7",
			expected: []Token{
				{Type: NUMBER, Lexeme: "-5", Value: -5, Line: 1},
				{Type: NUMBER, Lexeme: "-0x1", Value: -1, Line: 1},
				{Type: NUMBER, Lexeme: "-0o7", Value: -7, Line: 1},
				{Type: EOF, Lexeme: "", Line: 1},
			},
		},
		{
			name:  "Comments Are Never Emitted",
			input: "nop # shell\nnop // line\nnop /* block */ nop\n",
			expected: []Token{
				{Type: NOP, Lexeme: "nop", Line: 1},
				{Type: NEWLINE, Lexeme: "\n", Line: 1},
				{Type: NOP, Lexeme: "nop", Line: 2},
				{Type: NEWLINE, Lexeme: "\n", Line: 2},
				{Type: NOP, Lexeme: "nop", Line: 3},
				{Type: NOP, Lexeme: "nop", Line: 3},
				{Type: NEWLINE, Lexeme: "\n", Line: 3},
				{Type: EOF, Lexeme: "", Line: 4},
			},
		},
		{
			name:  "Block Comment Spanning Lines",
			input: "nop /* a\nb\nc */ nop\n",
			expected: []Token{
				{Type: NOP, Lexeme: "nop", Line: 1},
				{Type: NOP, Lexeme: "nop", Line: 3},
				{Type: NEWLINE, Lexeme: "\n", Line: 3},
				{Type: EOF, Lexeme: "", Line: 4},
			},
		},
		{
			name:  "Label And Colon",
			input: "loop: j loop\n",
			expected: []Token{
				{Type: IDENTIFIER, Lexeme: "loop", Line: 1},
				{Type: COLON, Lexeme: ":", Line: 1},
				{Type: J, Lexeme: "j", Line: 1},
				{Type: IDENTIFIER, Lexeme: "loop", Line: 1},
				{Type: NEWLINE, Lexeme: "\n", Line: 1},
				{Type: EOF, Lexeme: "", Line: 2},
			},
		},
		{
			name:    "Unknown Directive",
			input:   ".org 5\n",
			wantErr: true,
		},
		{
			name:    "Unexpected Character",
			input:   "nop @\n",
			wantErr: true,
		},
		{
			name:    "Bare Minus",
			input:   "li D0, -\n",
			wantErr: true,
		},
		{
			name:    "Hex Prefix Without Digits",
			input:   "0x\n",
			wantErr: true,
		},
		{
			name:    "Octal With Bad Digit",
			input:   "0o9\n",
			wantErr: true,
		},
		{
			name:    "Unterminated Block Comment",
			input:   "nop /* open",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Lex(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Lex(%q) succeeded, want error", tt.input)
				}
				if _, ok := err.(*LexError); !ok {
					t.Fatalf("Lex(%q) error = %T, want *LexError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lex(%q) failed: %v", tt.input, err)
			}
			if got := stripPos(tokens); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Lex(%q) =\n%v\nwant\n%v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLexErrorPosition(t *testing.T) {
	_, err := Lex("nop\n  @")
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("error = %T, want *LexError", err)
	}
	if lexErr.Line != 2 || lexErr.Col != 3 {
		t.Errorf("error at %d:%d, want 2:3", lexErr.Line, lexErr.Col)
	}
	if lexErr.Char != '@' {
		t.Errorf("Char = %q, want '@'", lexErr.Char)
	}
	if lexErr.Offset != 6 {
		t.Errorf("Offset = %d, want 6", lexErr.Offset)
	}
}

func TestLexTokenOffsets(t *testing.T) {
	tokens, err := Lex("nop\nj end\n")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	// nop NL j end NL EOF
	wantOffsets := []int{0, 3, 4, 6, 9, 10}
	if len(tokens) != len(wantOffsets) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(wantOffsets))
	}
	for i, want := range wantOffsets {
		if tokens[i].Offset != want {
			t.Errorf("token %d (%s) offset = %d, want %d", i, tokens[i], tokens[i].Offset, want)
		}
	}
}
