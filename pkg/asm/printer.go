package asm

import (
	"fmt"
	"strings"
)

// Render emits canonical source text for a parsed program: the code section
// first, labels inline, decimal immediates, one statement or declaration per
// line. Parsing the rendered text yields a tree structurally equal to the
// one rendered, which makes Render the anchor for round-trip tests and the
// REPL echo.
func Render(prog *Program) string {
	var b strings.Builder

	b.WriteString(".code\n")
	for _, stmt := range prog.Code.Statements {
		if stmt.Label != "" {
			b.WriteString(stmt.Label)
			b.WriteString(": ")
		}
		b.WriteString(stmt.Instr.String())
		b.WriteByte('\n')
	}

	if prog.Data != nil {
		b.WriteString(".data\n")
		for _, decl := range prog.Data.Decls {
			fmt.Fprintf(&b, "%s: .word, %d\n", decl.Label, decl.Value)
		}
	}
	return b.String()
}
