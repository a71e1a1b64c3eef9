package analyzer

import (
	"fmt"
	"strconv"

	"github.com/quadlang/quadc/internal/ast"
	"github.com/quadlang/quadc/internal/config"
	"github.com/quadlang/quadc/internal/diagnostics"
	"github.com/quadlang/quadc/internal/symbols"
)

// Analyzer performs the semantic pass: a single pre-order walk that
// builds the scope tree, allocates stack slots for declarations, and
// resolves every identifier use, writing offsets back into the tree.
// The pass is fail-fast: the first error ends it and no scope tree is
// surfaced.
type Analyzer struct {
	global  *symbols.Scope
	current *symbols.Scope

	// addressOffset is the running stack offset; every declaration moves
	// it down one word.
	addressOffset int

	failState bool
	err       *diagnostics.Diagnostic

	root      *ast.Compound
	shouldRun bool
}

func New() *Analyzer {
	return &Analyzer{}
}

// Success reports whether the last run completed without errors.
func (a *Analyzer) Success() bool {
	return !a.failState
}

// Err returns the diagnostic that stopped the last run, if any.
func (a *Analyzer) Err() *diagnostics.Diagnostic {
	return a.err
}

// GlobalScope returns the scope tree of the last successful run.
func (a *Analyzer) GlobalScope() *symbols.Scope {
	if a.failState {
		return nil
	}
	return a.global
}

// Driver re-run contract: a driver updates the analyzer with a new root
// and marks it to run; Run is a no-op otherwise.

func (a *Analyzer) ShouldRun() bool        { return a.shouldRun }
func (a *Analyzer) SetToRun()              { a.shouldRun = true }
func (a *Analyzer) Update(n *ast.Compound) { a.root = n }

func (a *Analyzer) Run() {
	if !a.shouldRun || a.root == nil {
		return
	}
	a.Analyze(a.root)
	a.shouldRun = false
}

// Analyze resets the analyzer state and walks root. It returns the first
// semantic error, or nil.
func (a *Analyzer) Analyze(root *ast.Compound) *diagnostics.Diagnostic {
	a.failState = false
	a.err = nil
	a.addressOffset = 0

	a.global = symbols.NewScope(config.GlobalScopeName, 1, nil)
	for _, name := range config.BuiltinTypeNames {
		a.global.Define(symbols.NewBuiltInType(name))
	}
	a.current = a.global

	if err := a.visitStatement(root); err != nil {
		a.failState = true
		a.err = err
		return err
	}
	return nil
}

// enterScope creates a child scope tagged from the node identity, records
// it as a symbol in the parent, and makes it current. The returned
// restore function pops back to the parent on success and failure paths
// alike.
func (a *Analyzer) enterScope(n ast.Node, tag string) func() {
	name := ast.HexID(n, tag)
	a.current.Define(symbols.NewNestedScope(name))

	nested := symbols.NewScope(name, a.current.Level()+1, a.current)
	parent := a.current
	a.current = nested
	return func() { a.current = parent }
}

func (a *Analyzer) visitStatement(n ast.Statement) *diagnostics.Diagnostic {
	switch n := n.(type) {
	case *ast.Compound:
		for _, statement := range n.Statements {
			if err := a.visitStatement(statement); err != nil {
				return err
			}
		}
		return nil
	case *ast.StatementBlock:
		leave := a.enterScope(n, config.TagBlock)
		defer leave()
		for _, statement := range n.Statements {
			if err := a.visitStatement(statement); err != nil {
				return err
			}
		}
		return nil
	case *ast.Declare:
		return a.declare(n)
	case *ast.DeclareAssign:
		if err := a.declare(n.Decl); err != nil {
			return err
		}
		return a.visitExpression(n.Expr)
	case *ast.Assign:
		if err := a.resolve(n.Ident); err != nil {
			return err
		}
		return a.visitExpression(n.Expr)
	case *ast.Return:
		return a.visitExpression(n.Expr)
	case *ast.IfStatement:
		return a.visitIfStatement(n)
	case *ast.While:
		if err := a.visitExpression(n.Condition); err != nil {
			return err
		}
		leave := a.enterScope(n, config.TagWhile)
		defer leave()
		return a.visitBody(n.Body)
	case *ast.DoWhile:
		if err := a.visitDoWhileBody(n); err != nil {
			return err
		}
		// Identifiers in the condition belong to the enclosing scope.
		return a.visitExpression(n.Condition)
	case *ast.Empty:
		return nil
	default:
		panic(fmt.Sprintf("analyzer: reached unhandled statement %T", n))
	}
}

func (a *Analyzer) visitIfStatement(n *ast.IfStatement) *diagnostics.Diagnostic {
	for _, arm := range n.Ifs {
		// Identifiers in the condition belong to the enclosing scope.
		if err := a.visitExpression(arm.Condition); err != nil {
			return err
		}
		if err := a.visitIfBody(arm); err != nil {
			return err
		}
	}

	leave := a.enterScope(n, config.TagElse)
	defer leave()
	return a.visitBody(n.ElseBody)
}

func (a *Analyzer) visitIfBody(arm *ast.If) *diagnostics.Diagnostic {
	leave := a.enterScope(arm, config.TagIf)
	defer leave()
	return a.visitBody(arm.Body)
}

func (a *Analyzer) visitDoWhileBody(n *ast.DoWhile) *diagnostics.Diagnostic {
	leave := a.enterScope(n, config.TagDo)
	defer leave()
	return a.visitBody(n.Body)
}

func (a *Analyzer) visitBody(body ast.Statement) *diagnostics.Diagnostic {
	if body == nil {
		return nil
	}
	return a.visitStatement(body)
}

func (a *Analyzer) visitExpression(n ast.Expression) *diagnostics.Diagnostic {
	switch n := n.(type) {
	case *ast.Integer:
		return nil
	case *ast.Identifier:
		return a.resolve(n)
	case *ast.UnaryOp:
		return a.visitExpression(n.Expr)
	case *ast.BinaryOp:
		if err := a.visitExpression(n.Left); err != nil {
			return err
		}
		return a.visitExpression(n.Right)
	case *ast.Condition:
		if err := a.visitExpression(n.Left); err != nil {
			return err
		}
		return a.visitExpression(n.Right)
	default:
		panic(fmt.Sprintf("analyzer: reached unhandled expression %T", n))
	}
}

// declare allocates a stack slot for the declared variable and binds it
// in the current scope.
func (a *Analyzer) declare(n *ast.Declare) *diagnostics.Diagnostic {
	typeSymbol := a.current.Lookup(n.Type.Lexeme)

	a.addressOffset -= config.WordSize
	offset := strconv.Itoa(a.addressOffset)
	n.Ident.Offset = offset

	variable := symbols.NewVariable(n.Ident.Name(), typeSymbol, offset)
	if !a.current.Define(variable) {
		tok := n.Ident.Token
		return diagnostics.NewPhaseError(diagnostics.PhaseAnalyzer, diagnostics.ErrA004, tok, tok.Lexeme)
	}
	return nil
}

// resolve looks the identifier up through the scope chain and copies the
// symbol's offset into the node.
func (a *Analyzer) resolve(n *ast.Identifier) *diagnostics.Diagnostic {
	sym := a.current.Lookup(n.Name())
	if sym == nil {
		tok := n.Token
		return diagnostics.NewPhaseError(diagnostics.PhaseAnalyzer, diagnostics.ErrA001, tok, tok.Lexeme)
	}
	n.Offset = sym.Offset
	return nil
}
