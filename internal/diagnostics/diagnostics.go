package diagnostics

import (
	"fmt"
	"strings"

	"github.com/quadlang/quadc/internal/token"
)

// Phase represents the processing phase where an error occurred
type Phase string

const (
	PhaseLexer     Phase = "lexer"
	PhaseParser    Phase = "parser"
	PhaseAnalyzer  Phase = "analyzer"
	PhaseGenerator Phase = "generator"
)

type ErrorCode string

const (
	// Lexer Errors
	ErrL001 ErrorCode = "L001" // Unknown lexeme (reserved; reported by the parser on first encounter)

	// Parser Errors
	ErrP001 ErrorCode = "P001" // Unexpected token
	ErrP002 ErrorCode = "P002" // Token stream missing

	// Analyzer Errors
	ErrA001 ErrorCode = "A001" // Symbol not found
	ErrA004 ErrorCode = "A004" // Symbol redefinition

	// Internal invariant violations ("should never happen")
	ErrX001 ErrorCode = "X001"
)

var errorTemplates = map[ErrorCode]string{
	ErrL001: "unknown lexeme '%s'",
	ErrP001: "unexpected token '%s', expected '%s'",
	ErrP002: "%s",
	ErrA001: "undeclared identifier '%s'",
	ErrA004: "redefinition of '%s'",
	ErrX001: "internal error: %s",
}

const snippetSeparator = "\t|\t"

// Diagnostic is a positioned, coded compiler error. Error() yields the
// one-line form; Render() appends the offending source line with a caret
// under the lexeme.
type Diagnostic struct {
	Code       ErrorCode
	Phase      Phase
	Args       []interface{}
	Token      token.Token
	File       string
	SourceLine string
}

func (d *Diagnostic) Error() string {
	template, ok := errorTemplates[d.Code]
	if !ok {
		return fmt.Sprintf("unknown error code: %s", d.Code)
	}

	message := fmt.Sprintf(template, d.Args...)

	file := d.File
	if file == "" {
		file = "<source>"
	}

	if d.Token.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", file, d.Token.Line, d.Token.Column, message)
	}
	return fmt.Sprintf("%s: %s", file, message)
}

// Render formats the diagnostic with its source snippet:
//
//	<source>:1:16: unexpected token ';', expected ')'
//		|	{ int a; if (a ; }
//		|	               ^
func (d *Diagnostic) Render() string {
	var sb strings.Builder
	sb.WriteString(d.Error())
	if d.SourceLine == "" {
		return sb.String()
	}

	sb.WriteByte('\n')
	sb.WriteString(snippetSeparator)
	sb.WriteString(d.SourceLine)
	sb.WriteByte('\n')
	sb.WriteString(snippetSeparator)

	pad := d.Token.Column - 1
	if pad < 0 {
		pad = 0
	}
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString("^")
	if n := len(d.Token.Lexeme); n > 1 {
		sb.WriteString(strings.Repeat("~", n-1))
	}
	return sb.String()
}

// NewError creates a diagnostic with just code and token
func NewError(code ErrorCode, tok token.Token, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Code:  code,
		Token: tok,
		Args:  args,
	}
}

// NewPhaseError creates a diagnostic with phase information
func NewPhaseError(phase Phase, code ErrorCode, tok token.Token, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Code:  code,
		Phase: phase,
		Token: tok,
		Args:  args,
	}
}

// WithSource attaches the offending source line for snippet rendering.
func (d *Diagnostic) WithSource(line string) *Diagnostic {
	d.SourceLine = line
	return d
}

// WithFile attaches the source file name used in the location prefix.
func (d *Diagnostic) WithFile(file string) *Diagnostic {
	d.File = file
	return d
}
