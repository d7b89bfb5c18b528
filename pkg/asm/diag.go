package asm

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	boldLoc   = color.New(color.Bold)
	errorTag  = color.New(color.FgRed)
	warnTag   = color.New(color.FgYellow)
	underline = color.New(color.Bold, color.FgRed)
)

// FormatError renders err as a one-error diagnostic: a "file:line:col:
// error: message" header followed by the offending source line with a caret
// and underline. Errors without a position (for example a missing .code
// section) render as a bare header. Unrecognized errors pass through with
// their own message.
func FormatError(name, src string, err error) string {
	switch e := err.(type) {
	case *LexError:
		return snippet(name, src, e.Msg, e.Line, e.Col, 1)
	case *ParseError:
		if e.Kind == ErrMissingCodeSection {
			return header(name, e.Error())
		}
		width := len(e.Found.Lexeme)
		if width == 0 {
			width = 1
		}
		return snippet(name, src, parseErrorMessage(e), e.Found.Line, e.Found.Col, width)
	case *UnknownLabelError:
		msg := fmt.Sprintf("unknown label %q", e.Name)
		if e.Closest != "" {
			msg += fmt.Sprintf(", did you mean %q?", e.Closest)
		}
		return snippet(name, src, msg, e.Line, 1, 1)
	case *DuplicateLabelError:
		return snippet(name, src, fmt.Sprintf("duplicate label %q", e.Name), e.Line, 1, 1)
	case *ImmediateRangeError:
		return snippet(name, src, "immediate out of range", e.Line, 1, 1)
	default:
		return header(name, err.Error())
	}
}

// FormatWarning renders a position-less warning, such as an unused data
// declaration.
func FormatWarning(name, msg string) string {
	return fmt.Sprintf("%s: %s %s", boldLoc.Sprint(name), warnTag.Sprint("warning:"), msg)
}

// parseErrorMessage phrases a positioned parse error, adding a comma or
// colon hint when a separator was likely forgotten.
func parseErrorMessage(e *ParseError) string {
	switch e.Kind {
	case ErrUnterminatedStatement:
		return fmt.Sprintf("unterminated statement: expected %s", e.Expected)
	case ErrBadOperands:
		return fmt.Sprintf("bad operands for '%s': expected %s, found %s", e.Op, e.Expected, e.Found)
	default:
		msg := fmt.Sprintf("unexpected token %s", e.Found)
		switch {
		case strings.Contains(e.Expected, "','"):
			msg += ", did you forget a comma?"
		case strings.Contains(e.Expected, "':'"):
			msg += ", did you forget a colon?"
		default:
			msg += fmt.Sprintf(", expected %s", e.Expected)
		}
		return msg
	}
}

func header(name, msg string) string {
	return fmt.Sprintf("%s: %s %s", boldLoc.Sprint(name), errorTag.Sprint("error:"), msg)
}

// snippet renders the header plus the offending source line with a caret at
// col and a tilde underline spanning width characters.
func snippet(name, src, msg string, line, col, width int) string {
	loc := boldLoc.Sprintf("%s:%d:%d", name, line, col)
	out := fmt.Sprintf("%s: %s %s", loc, errorTag.Sprint("error:"), msg)

	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return out
	}
	// Tabs become single spaces so the caret column stays aligned.
	context := strings.ReplaceAll(lines[line-1], "\t", " ")
	if col < 1 {
		col = 1
	}
	if col > len(context)+1 {
		col = len(context) + 1
	}
	if width < 1 {
		width = 1
	}

	gutter := fmt.Sprintf("%d", line)
	pointer := strings.Repeat(" ", col-1) + underline.Sprint("^"+strings.Repeat("~", width-1))
	out += fmt.Sprintf("\n    %s | %s", gutter, context)
	out += fmt.Sprintf("\n    %s | %s", strings.Repeat(" ", len(gutter)), pointer)
	return out
}
