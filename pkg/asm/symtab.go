package asm

import (
	"github.com/agnivade/levenshtein"
)

// symbolTable maps labels to their resolved addresses. Code labels resolve to
// statement indices; data labels resolve to slots placed after the last
// statement, matching the memory layout the encoder emits.
type symbolTable struct {
	labels map[string]int
}

// buildSymbolTable numbers the statements and data declarations of prog and
// records every label. Label uniqueness is enforced here, not in the parser.
func buildSymbolTable(prog *Program) (*symbolTable, error) {
	st := &symbolTable{labels: make(map[string]int)}

	for i, stmt := range prog.Code.Statements {
		if stmt.Label == "" {
			continue
		}
		if _, exists := st.labels[stmt.Label]; exists {
			return nil, &DuplicateLabelError{Name: stmt.Label, Line: stmt.Line}
		}
		st.labels[stmt.Label] = i
	}

	// Data lives after the code in memory, so data addresses are offset by
	// the statement count.
	base := len(prog.Code.Statements)
	if prog.Data != nil {
		for i, decl := range prog.Data.Decls {
			if _, exists := st.labels[decl.Label]; exists {
				return nil, &DuplicateLabelError{Name: decl.Label, Line: decl.Line}
			}
			st.labels[decl.Label] = base + i
		}
	}
	return st, nil
}

// lookup returns the address a label resolves to.
func (st *symbolTable) lookup(name string) (int, bool) {
	addr, ok := st.labels[name]
	return addr, ok
}

// closest returns the known label nearest to name by edit distance, for
// did-you-mean suggestions. It returns "" when nothing is plausibly close.
func (st *symbolTable) closest(name string) string {
	best := ""
	bestDist := 0
	for label := range st.labels {
		d := levenshtein.ComputeDistance(name, label)
		if best == "" || d < bestDist {
			best, bestDist = label, d
		}
	}
	// A suggestion further away than half the name is noise.
	if best == "" || bestDist > (len(name)+1)/2+1 {
		return ""
	}
	return best
}
