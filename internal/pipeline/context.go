package pipeline

import (
	"strings"

	"github.com/google/uuid"

	"github.com/quadlang/quadc/internal/ast"
	"github.com/quadlang/quadc/internal/diagnostics"
	"github.com/quadlang/quadc/internal/ir"
	"github.com/quadlang/quadc/internal/symbols"
	"github.com/quadlang/quadc/internal/token"
)

// Context holds all the data passed between pipeline stages. Each stage
// reads the outputs of earlier stages and writes only its own.
type Context struct {
	SourceCode  string
	SourceLines []string
	FilePath    string // Path to the source file (if any)
	RunID       uuid.UUID

	Tokens      []token.Token // full token stream, FILE_END terminated
	Cursor      TokenCursor
	Root        *ast.Compound
	GlobalScope *symbols.Scope
	IR          []ir.Quadruple

	Errors []*diagnostics.Diagnostic
}

// NewContext creates and initializes a new Context for one compilation run.
func NewContext(source string) *Context {
	return &Context{
		SourceCode:  source,
		SourceLines: splitLines(source),
		RunID:       uuid.New(),
		Errors:      []*diagnostics.Diagnostic{},
	}
}

func splitLines(source string) []string {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Line returns the 1-indexed source line, or "" when out of range.
func (c *Context) Line(n int) string {
	if n < 1 || n > len(c.SourceLines) {
		return ""
	}
	return c.SourceLines[n-1]
}

// Report records a diagnostic, stamping it with the file name and the
// offending source line so every stage renders errors the same way.
func (c *Context) Report(d *diagnostics.Diagnostic) {
	if d.File == "" {
		d.File = c.FilePath
	}
	if d.SourceLine == "" {
		d.SourceLine = c.Line(d.Token.Line)
	}
	c.Errors = append(c.Errors, d)
}

// Failed reports whether any stage has recorded an error.
func (c *Context) Failed() bool {
	return len(c.Errors) > 0
}
