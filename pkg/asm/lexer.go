package asm

import (
	"fmt"
	"strconv"
	"unicode"
)

// keywords maps reserved source text to its TokenType. An identifier that
// matches one of these is always classified as the keyword, never as
// IDENTIFIER.
var keywords = map[string]TokenType{
	"add":  ADD,
	"sub":  SUB,
	"slt":  SLT,
	"li":   LI,
	"lw":   LW,
	"sw":   SW,
	"beq":  BEQ,
	"bne":  BNE,
	"push": PUSH,
	"pop":  POP,
	"j":    J,
	"jal":  JAL,
	"jr":   JR,
	"nop":  NOP,
}

// directives maps the dot-prefixed reserved words to their TokenType.
var directives = map[string]TokenType{
	".data": DATA,
	".code": CODE,
	".word": WORD,
}

// registerNames maps the four register spellings (case-sensitive) to their
// register number. No other register names exist.
var registerNames = map[string]Register{
	"D0": D0,
	"D1": D1,
	"D2": D2,
	"D3": D3,
}

// LexError reports a character sequence that matches no token rule.
type LexError struct {
	Offset int    // 0-based rune offset of the offending character
	Line   int    // 1-based source line
	Col    int    // 1-based column
	Char   rune   // the character that could not be matched (0 at EOF)
	Msg    string // human-readable description
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line
	col  int // current 1-based column
}

// NewLexer returns a Lexer positioned at the start of src. A Lexer is
// single-use; create a fresh one to rescan.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) errorf(msg string, args ...any) *LexError {
	return &LexError{
		Offset: l.pos,
		Line:   l.line,
		Col:    l.col,
		Char:   l.peek(),
		Msg:    fmt.Sprintf(msg, args...),
	}
}

// skipBlank discards spaces, tabs and carriage returns. Newlines are
// significant and never skipped here.
func (l *Lexer) skipBlank() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		default:
			return
		}
	}
}

// skipLineComment discards everything up to (but not including) end-of-line,
// so the terminating newline is still emitted as a token. The comment opener
// must already have been consumed.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

// skipBlockComment discards everything up to and including the closing "*/".
// The opening "/*" must already have been consumed.
func (l *Lexer) skipBlockComment() *LexError {
	startLine := l.line
	for l.pos < len(l.src) {
		if l.peek() == '*' && l.peek2() == '/' {
			l.advance() // *
			l.advance() // /
			return nil
		}
		l.advance()
	}
	return l.errorf("unterminated block comment (opened on line %d)", startLine)
}

// scanIdent collects an identifier, then reclassifies it as a register or
// keyword when the full lexeme matches one exactly.
func (l *Lexer) scanIdent() Token {
	tok := l.markStart()
	start := l.pos
	for l.pos < len(l.src) {
		r := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		l.advance()
	}
	tok.Lexeme = string(l.src[start:l.pos])
	tok.Type = IDENTIFIER
	if _, ok := registerNames[tok.Lexeme]; ok {
		tok.Type = REGISTER
	} else if kw, ok := keywords[tok.Lexeme]; ok {
		tok.Type = kw
	}
	return tok
}

// scanDirective collects "." plus a word and requires it to be one of the
// three known directives.
func (l *Lexer) scanDirective() (Token, *LexError) {
	tok := l.markStart()
	start := l.pos
	l.advance() // .
	for l.pos < len(l.src) {
		r := l.peek()
		if !unicode.IsLetter(r) {
			break
		}
		l.advance()
	}
	tok.Lexeme = string(l.src[start:l.pos])
	tt, ok := directives[tok.Lexeme]
	if !ok {
		return Token{}, &LexError{
			Offset: tok.Offset,
			Line:   tok.Line,
			Col:    tok.Col,
			Char:   '.',
			Msg:    fmt.Sprintf("unknown directive %q", tok.Lexeme),
		}
	}
	tok.Type = tt
	return tok, nil
}

// scanNumber collects a numeric literal in one of the three bases and
// normalizes it to a signed integer value. The optional leading '-' must
// already have been consumed when neg is true.
func (l *Lexer) scanNumber(neg bool) (Token, *LexError) {
	tok := l.markStart()
	start := l.pos
	base := 10
	digits := isDecDigit

	if l.peek() == '0' && (l.peek2() == 'x' || l.peek2() == 'o') {
		switch l.peek2() {
		case 'x':
			base, digits = 16, isHexDigit
		case 'o':
			base, digits = 8, isOctDigit
		}
		l.advance() // 0
		l.advance() // x or o
	}

	digitsStart := l.pos
	for l.pos < len(l.src) && digits(l.peek()) {
		l.advance()
	}
	if l.pos == digitsStart {
		return Token{}, l.errorf("malformed number literal")
	}

	value, err := strconv.ParseInt(string(l.src[digitsStart:l.pos]), base, 64)
	if err != nil {
		return Token{}, l.errorf("number literal out of range")
	}
	if neg {
		value = -value
		tok.Col--
		tok.Offset--
	}

	tok.Type = NUMBER
	tok.Value = value
	tok.Lexeme = string(l.src[start:l.pos])
	if neg {
		tok.Lexeme = "-" + tok.Lexeme
	}
	return tok, nil
}

// markStart captures the position of the token about to be scanned.
func (l *Lexer) markStart() Token {
	return Token{Line: l.line, Col: l.col, Offset: l.pos}
}

// nextToken skips insignificant whitespace and all three comment styles, then
// returns the next token.
func (l *Lexer) nextToken() (Token, *LexError) {
	for {
		l.skipBlank()
		if l.peek() == '#' {
			l.skipLineComment()
			continue
		}
		if l.peek() == '/' && l.peek2() == '/' {
			l.advance()
			l.advance()
			l.skipLineComment()
			continue
		}
		if l.peek() == '/' && l.peek2() == '*' {
			l.advance()
			l.advance()
			if err := l.skipBlockComment(); err != nil {
				return Token{}, err
			}
			continue
		}
		break
	}

	if l.pos >= len(l.src) {
		return Token{Type: EOF, Line: l.line, Col: l.col, Offset: l.pos}, nil
	}

	ch := l.peek()

	if unicode.IsLetter(ch) || ch == '_' {
		return l.scanIdent(), nil
	}
	if isDecDigit(ch) {
		return l.scanNumber(false)
	}
	if ch == '-' {
		if !isDecDigit(l.peek2()) {
			return Token{}, l.errorf("unexpected character %q", ch)
		}
		l.advance() // -
		return l.scanNumber(true)
	}
	if ch == '.' {
		return l.scanDirective()
	}

	tok := l.markStart()
	l.advance()
	switch ch {
	case '\n':
		tok.Type = NEWLINE
		tok.Lexeme = "\n"
		return tok, nil
	case ':':
		tok.Type = COLON
		tok.Lexeme = ":"
		return tok, nil
	case ',':
		tok.Type = COMMA
		tok.Lexeme = ","
		return tok, nil
	default:
		return Token{}, &LexError{
			Offset: tok.Offset,
			Line:   tok.Line,
			Col:    tok.Col,
			Char:   ch,
			Msg:    fmt.Sprintf("unexpected character %q", ch),
		}
	}
}

// Lex tokenizes src and returns all tokens including the final EOF token.
// It returns a non-nil error on the first character sequence that matches no
// token rule.
func Lex(src string) ([]Token, error) {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

func isDecDigit(r rune) bool { return r >= '0' && r <= '9' }
func isOctDigit(r rune) bool { return r >= '0' && r <= '7' }

func isHexDigit(r rune) bool {
	return isDecDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
