package ir_test

import (
	"strings"
	"testing"

	"github.com/quadlang/quadc/internal/analyzer"
	"github.com/quadlang/quadc/internal/ast"
	"github.com/quadlang/quadc/internal/ir"
	"github.com/quadlang/quadc/internal/lexer"
	"github.com/quadlang/quadc/internal/parser"
	"github.com/quadlang/quadc/internal/pipeline"
)

func analyzedRoot(t *testing.T, source string) *ast.Compound {
	t.Helper()
	ctx := pipeline.NewContext(source)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if ctx.Failed() {
		t.Fatalf("parse failed: %s", ctx.Errors[0].Error())
	}
	if err := analyzer.New().Analyze(ctx.Root); err != nil {
		t.Fatalf("analysis failed: %s", err.Error())
	}
	return ctx.Root
}

func generate(t *testing.T, source string) []ir.Quadruple {
	t.Helper()
	return ir.NewGenerator().Generate(analyzedRoot(t, source))
}

func TestGenerate(t *testing.T) {
	testCases := []struct {
		name   string
		source string
		want   []string
	}{
		{
			"declare_and_add",
			"{ int a; int b; a = 2; b = a + 3; return b; }",
			[]string{
				"a = 2;",
				"_t0 = a + 3;",
				"b = _t0;",
				"Return b;",
			},
		},
		{
			"if_false_branch_skip",
			"{ int x; x = 1; if (x == 0) { x = 5; } return x; }",
			[]string{
				"x = 1;",
				"_t0 = x == 0;",
				"IfFalse _t0 Goto L0;",
				"x = 5;",
				"Label L0:",
				"Return x;",
			},
		},
		{
			"while_loop",
			"{ int i; i = 0; while (i < 3) { i = i + 1; } return i; }",
			[]string{
				"i = 0;",
				"Label L0:",
				"_t0 = i < 3;",
				"IfFalse _t0 Goto L1;",
				"_t1 = i + 1;",
				"i = _t1;",
				"Goto L0;",
				"Label L1:",
				"Return i;",
			},
		},
		{
			"do_while_loop",
			"{ int i; i = 0; do { i = i + 1; } while (i < 3); return i; }",
			[]string{
				"i = 0;",
				"Label L0:",
				"_t0 = i + 1;",
				"i = _t0;",
				"_t1 = i < 3;",
				"If _t1 Goto L0;",
				"Return i;",
			},
		},
		{
			"if_else_chain",
			"{ int x; x = 1; if (x == 0) x = 2; else if (x == 1) x = 3; else x = 4; return x; }",
			[]string{
				"x = 1;",
				"_t0 = x == 0;",
				"IfFalse _t0 Goto L0;",
				"x = 2;",
				"Label L0:",
				"_t1 = x == 1;",
				"IfFalse _t1 Goto L1;",
				"x = 3;",
				"Label L1:",
				"x = 4;",
				"Return x;",
			},
		},
		{
			"unary_and_precedence",
			"{ int a; a = -1 + 2 * 3; return a; }",
			[]string{
				"_t0 = - 1;",
				"_t1 = 2 * 3;",
				"_t2 = _t0 + _t1;",
				"a = _t2;",
				"Return a;",
			},
		},
		{
			"declare_assign",
			"{ int a = 1 + 2; return a; }",
			[]string{
				"_t0 = 1 + 2;",
				"a = _t0;",
				"Return a;",
			},
		},
		{
			"logical_condition_no_short_circuit",
			"{ int a; a = 1; if (a == 1 && a < 5) { a = 2; } }",
			[]string{
				"a = 1;",
				"_t0 = a == 1;",
				"_t1 = a < 5;",
				"_t2 = _t0 && _t1;",
				"IfFalse _t2 Goto L0;",
				"a = 2;",
				"Label L0:",
			},
		},
		{
			"empty_bodies_emit_no_instructions",
			"{ int x; x = 0; if (x == 0) ; while (x == 1) ; }",
			[]string{
				"x = 0;",
				"_t0 = x == 0;",
				"IfFalse _t0 Goto L0;",
				"Label L0:",
				"Label L1:",
				"_t1 = x == 1;",
				"IfFalse _t1 Goto L2;",
				"Goto L1;",
				"Label L2:",
			},
		},
		{
			"plain_declare_emits_nothing",
			"{ int a; int b; }",
			nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			quads := generate(t, tc.source)
			got := strings.TrimSuffix(ir.Render(quads), "\n")
			want := strings.Join(tc.want, "\n")
			if got != want {
				t.Errorf("IR mismatch:\n--- got\n%s\n--- want\n%s", got, want)
			}
		})
	}
}

func TestCountersAreContiguous(t *testing.T) {
	quads := generate(t, "{ int i; i = 0; while (i < 3) { if (i == 1) { i = i + 2; } } return i; }")

	temps := map[string]bool{}
	labels := map[string]bool{}
	for _, q := range quads {
		for _, op := range []*ir.Operand{q.Src1, q.Src2, q.Dest} {
			if op == nil {
				continue
			}
			switch op.Kind {
			case ir.Temporary:
				temps[op.Name] = true
			case ir.Label:
				labels[op.Name] = true
			}
		}
	}

	for i := 0; i < len(temps); i++ {
		name := "_t" + string(rune('0'+i))
		if !temps[name] {
			t.Errorf("temporaries are not a contiguous prefix: missing %s in %v", name, temps)
		}
	}
	for i := 0; i < len(labels); i++ {
		name := "L" + string(rune('0'+i))
		if !labels[name] {
			t.Errorf("labels are not a contiguous prefix: missing %s in %v", name, labels)
		}
	}
}

func TestBranchTargetsExist(t *testing.T) {
	quads := generate(t, "{ int i; i = 0; while (i < 5) { if (i == 2) { i = i + 2; } else i = i + 1; } do { i = i - 1; } while (i > 0); return i; }")

	defined := map[string]bool{}
	for _, q := range quads {
		if q.Op == ir.OpLabel {
			defined[q.Dest.Name] = true
		}
	}
	for _, q := range quads {
		switch q.Op {
		case ir.OpIf, ir.OpIfFalse, ir.OpGoto:
			if !defined[q.Dest.Name] {
				t.Errorf("%s targets undefined label %s", q.Op, q.Dest.Name)
			}
		}
	}
}

func TestIdentifierOperandsCarryOffsets(t *testing.T) {
	quads := generate(t, "{ int a; a = 2; }")
	if len(quads) != 1 {
		t.Fatalf("got %d instructions, want 1", len(quads))
	}
	dest := quads[0].Dest
	if dest.Kind != ir.Ident || dest.Address != "-4" {
		t.Errorf("dest = kind %s address %q, want IDENTIFIER @-4", dest.Kind, dest.Address)
	}
	if src := quads[0].Src1; src.Kind != ir.IntLiteral || src.Name != "2" {
		t.Errorf("src = kind %s name %q, want INT_LITERAL 2", src.Kind, src.Name)
	}
}

func TestRegenerationIsIdentical(t *testing.T) {
	root := analyzedRoot(t, "{ int i; i = 0; while (i < 3) { i = i + 1; } return i; }")
	gen := ir.NewGenerator()

	first := ir.Render(gen.Generate(root))
	second := ir.Render(gen.Generate(root))
	if first != second {
		t.Errorf("re-run produced different IR:\n--- first\n%s\n--- second\n%s", first, second)
	}
}

func TestObserverContract(t *testing.T) {
	root := analyzedRoot(t, "{ int a; a = 1; }")
	gen := ir.NewGenerator()

	gen.Run()
	if len(gen.Instructions()) != 0 {
		t.Error("unarmed Run generated instructions")
	}

	gen.Update(root)
	gen.SetToRun()
	gen.Run()
	if gen.ShouldRun() {
		t.Error("Run did not disarm the generator")
	}
	if len(gen.Instructions()) != 1 {
		t.Errorf("got %d instructions, want 1", len(gen.Instructions()))
	}
}

func TestRenderProgramHeader(t *testing.T) {
	quads := generate(t, "{ int a; a = 1; }")
	out := ir.RenderProgram(quads)
	if !strings.HasPrefix(out, "main:\n") {
		t.Errorf("program listing does not start with main: header:\n%s", out)
	}
}
