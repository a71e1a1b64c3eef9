package parser_test

import (
	"strings"
	"testing"

	"github.com/quadlang/quadc/internal/diagnostics"
	"github.com/quadlang/quadc/internal/lexer"
	"github.com/quadlang/quadc/internal/parser"
	"github.com/quadlang/quadc/internal/pipeline"
	"github.com/quadlang/quadc/internal/prettyprinter"
)

func parseSource(t *testing.T, source string) *pipeline.Context {
	t.Helper()
	ctx := pipeline.NewContext(source)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	return ctx
}

func parseTree(t *testing.T, source string) string {
	t.Helper()
	ctx := parseSource(t, source)
	if ctx.Failed() {
		var messages []string
		for _, err := range ctx.Errors {
			messages = append(messages, err.Error())
		}
		t.Fatalf("parsing failed with errors:\n%s", strings.Join(messages, "\n"))
	}
	printer := prettyprinter.NewTreePrinter()
	printer.Print(ctx.Root)
	return printer.String()
}

func TestParser(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{
			"declarations_and_assignment",
			"{ int a; int b = 2; a = b + 3; }",
			`Compound
  Declare: int a
  DeclareAssign: int b =
    Integer: 2
  Assign: a =
    BinaryOp: +
      Identifier: b
      Integer: 3
`,
		},
		{
			"precedence_product_over_sum",
			"{ int a; a = 1 + 2 * 3; }",
			`Compound
  Declare: int a
  Assign: a =
    BinaryOp: +
      Integer: 1
      BinaryOp: *
        Integer: 2
        Integer: 3
`,
		},
		{
			"left_associative_fold",
			"{ int a; a = 1 - 2 - 3; }",
			`Compound
  Declare: int a
  Assign: a =
    BinaryOp: -
      BinaryOp: -
        Integer: 1
        Integer: 2
      Integer: 3
`,
		},
		{
			"parentheses_override",
			"{ int a; a = (1 + 2) * 3; }",
			`Compound
  Declare: int a
  Assign: a =
    BinaryOp: *
      BinaryOp: +
        Integer: 1
        Integer: 2
      Integer: 3
`,
		},
		{
			"unary_operators",
			"{ int a; a = -1 + +2; }",
			`Compound
  Declare: int a
  Assign: a =
    BinaryOp: +
      Unary: -
        Integer: 1
      Unary: +
        Integer: 2
`,
		},
		{
			"condition_precedence",
			"{ if (1 + 2 < 3 && 4 == 5 || 6 > 7) ; }",
			`Compound
  If
    Arm
      Condition: ||
        Condition: &&
          Condition: <
            BinaryOp: +
              Integer: 1
              Integer: 2
            Integer: 3
          Condition: ==
            Integer: 4
            Integer: 5
        Condition: >
          Integer: 6
          Integer: 7
      <no body>
`,
		},
		{
			"if_else_if_chain",
			"{ int x; if (x == 1) x = 2; else if (x == 3) x = 4; else x = 5; }",
			`Compound
  Declare: int x
  If
    Arm
      Condition: ==
        Identifier: x
        Integer: 1
      Assign: x =
        Integer: 2
    Arm
      Condition: ==
        Identifier: x
        Integer: 3
      Assign: x =
        Integer: 4
    Else
      Assign: x =
        Integer: 5
`,
		},
		{
			"empty_bodies",
			"{ if (1 < 2) ; while (1 < 2) ; }",
			`Compound
  If
    Arm
      Condition: <
        Integer: 1
        Integer: 2
      <no body>
  While
    Condition: <
      Integer: 1
      Integer: 2
    <no body>
`,
		},
		{
			"braced_bodies_are_compound",
			"{ int i; while (i < 3) { i = i + 1; } }",
			`Compound
  Declare: int i
  While
    Condition: <
      Identifier: i
      Integer: 3
    Compound
      Assign: i =
        BinaryOp: +
          Identifier: i
          Integer: 1
`,
		},
		{
			"do_while",
			"{ int i; do { i = i + 1; } while (i < 3); }",
			`Compound
  Declare: int i
  DoWhile
    Compound
      Assign: i =
        BinaryOp: +
          Identifier: i
          Integer: 1
    Condition: <
      Identifier: i
      Integer: 3
`,
		},
		{
			"free_block_and_empty_statement",
			"{ { } ; }",
			`Compound
  Block
  Empty
`,
		},
		{
			"return_statement",
			"{ int b; return b; }",
			`Compound
  Declare: int b
  Return
    Identifier: b
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseTree(t, tc.input); got != tc.expect {
				t.Errorf("tree mismatch:\n--- got\n%s\n--- want\n%s", got, tc.expect)
			}
		})
	}
}

func TestParserErrors(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		wantLexeme string
	}{
		{"missing_semicolon", "{ int a }", "}"},
		{"missing_close_paren", "{ if (1 < 2 ; }", ";"},
		{"missing_condition", "{ while () ; }", ")"},
		{"garbage_token", "{ int 1a; }", "1a"},
		{"missing_root_braces", "int a;", "int"},
		{"trailing_tokens", "{ } }", "}"},
		{"unterminated_program", "{ int a;", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := parseSource(t, tc.input)
			if !ctx.Failed() {
				t.Fatal("expected a parse error")
			}
			if ctx.Root != nil {
				t.Error("failed parse still produced a tree")
			}
			diag := ctx.Errors[0]
			if diag.Code != diagnostics.ErrP001 {
				t.Errorf("code = %s, want %s", diag.Code, diagnostics.ErrP001)
			}
			if diag.Token.Lexeme != tc.wantLexeme {
				t.Errorf("offending lexeme = %q, want %q", diag.Token.Lexeme, tc.wantLexeme)
			}
		})
	}
}

func TestParserFailFast(t *testing.T) {
	ctx := parseSource(t, "{ int ; int ; }")
	if len(ctx.Errors) != 1 {
		t.Fatalf("got %d errors, want exactly 1 (first error is fatal)", len(ctx.Errors))
	}
}

func TestNodeParents(t *testing.T) {
	ctx := parseSource(t, "{ int a; if (a == 1) { a = 2; } else a = 3; }")
	if ctx.Failed() {
		t.Fatal("parse failed")
	}

	root := ctx.Root
	if root.Parent() != nil {
		t.Error("root has a parent")
	}
	for _, statement := range root.Statements {
		if statement.Parent() != root {
			t.Errorf("statement %T not parented to root", statement)
		}
	}
}

func TestNodeIdentitiesAreUnique(t *testing.T) {
	ctx := parseSource(t, "{ int a; a = a + a; { int a; } }")
	if ctx.Failed() {
		t.Fatal("parse failed")
	}

	seen := map[int]bool{}
	var walk func(nodes ...interface{ ID() int })
	walk = func(nodes ...interface{ ID() int }) {
		for _, n := range nodes {
			if seen[n.ID()] {
				t.Fatalf("duplicate node identity %d", n.ID())
			}
			seen[n.ID()] = true
		}
	}
	walk(ctx.Root)
	for _, statement := range ctx.Root.Statements {
		walk(statement)
	}
}
