package ir

import (
	"fmt"
	"strconv"

	"github.com/quadlang/quadc/internal/ast"
	"github.com/quadlang/quadc/internal/config"
)

// Generator lowers an analysed AST into a flat quadruple list. Temporary
// and label counters are explicit generator state, reset at the start of
// every run, so two runs over the same tree produce identical IR.
type Generator struct {
	instructions []Quadruple
	tempCount    int
	labelCount   int

	root      *ast.Compound
	shouldRun bool
}

func NewGenerator() *Generator {
	return &Generator{}
}

// Reset clears the instruction list and both counters.
func (g *Generator) Reset() {
	g.instructions = nil
	g.tempCount = 0
	g.labelCount = 0
}

// Instructions returns the IR of the last run. The slice is frozen once
// the run completes.
func (g *Generator) Instructions() []Quadruple {
	return g.instructions
}

// Generate resets the generator and lowers root.
func (g *Generator) Generate(root *ast.Compound) []Quadruple {
	g.Reset()
	if root != nil {
		g.emitStatement(root)
	}
	return g.instructions
}

// Driver re-run contract: the generator runs only when its input changed.

func (g *Generator) ShouldRun() bool        { return g.shouldRun }
func (g *Generator) SetToRun()              { g.shouldRun = true }
func (g *Generator) Update(n *ast.Compound) { g.root = n }

func (g *Generator) Run() {
	if !g.shouldRun || g.root == nil {
		return
	}
	g.Generate(g.root)
	g.shouldRun = false
}

func (g *Generator) newTemporary() *Operand {
	op := &Operand{Kind: Temporary, Name: config.TempPrefix + strconv.Itoa(g.tempCount)}
	g.tempCount++
	return op
}

func (g *Generator) newLabel() *Operand {
	op := &Operand{Kind: Label, Name: config.LabelPrefix + strconv.Itoa(g.labelCount)}
	g.labelCount++
	return op
}

func (g *Generator) emit(q Quadruple) Quadruple {
	g.instructions = append(g.instructions, q)
	return q
}

// fetch lowers an expression and returns the quadruple whose Dest is the
// operand the caller should consume. Leaves return a synthetic quadruple
// with only Dest set; nothing is appended for them.
func (g *Generator) fetch(n ast.Expression) Quadruple {
	switch n := n.(type) {
	case *ast.Integer:
		return Quadruple{Dest: &Operand{Kind: IntLiteral, Name: strconv.Itoa(n.Value)}}
	case *ast.Identifier:
		return Quadruple{Dest: &Operand{Kind: Ident, Name: n.Name(), Address: n.Offset}}
	case *ast.UnaryOp:
		expr := g.fetch(n.Expr)
		return g.emit(Quadruple{Op: n.Op.Lexeme, Src1: expr.Dest, Dest: g.newTemporary()})
	case *ast.BinaryOp:
		left := g.fetch(n.Left)
		right := g.fetch(n.Right)
		return g.emit(Quadruple{Op: n.Op.Lexeme, Src1: left.Dest, Src2: right.Dest, Dest: g.newTemporary()})
	case *ast.Condition:
		// Relational and logical conditions lower through the binary path:
		// their operator produces a temporary that drives the enclosing
		// branch. No short-circuit for && / ||.
		left := g.fetch(n.Left)
		right := g.fetch(n.Right)
		return g.emit(Quadruple{Op: n.Op.Lexeme, Src1: left.Dest, Src2: right.Dest, Dest: g.newTemporary()})
	default:
		panic(fmt.Sprintf("ir: generator reached unhandled expression %T", n))
	}
}

func (g *Generator) emitStatement(n ast.Statement) {
	switch n := n.(type) {
	case *ast.Compound:
		for _, statement := range n.Statements {
			g.emitStatement(statement)
		}
	case *ast.StatementBlock:
		for _, statement := range n.Statements {
			g.emitStatement(statement)
		}
	case *ast.Declare:
		// Storage was laid out by the semantic pass; a plain declaration
		// emits nothing.
	case *ast.DeclareAssign:
		expr := g.fetch(n.Expr)
		ident := g.fetch(n.Decl.Ident)
		g.emit(Quadruple{Op: OpAssign, Src1: expr.Dest, Dest: ident.Dest})
	case *ast.Assign:
		expr := g.fetch(n.Expr)
		ident := g.fetch(n.Ident)
		g.emit(Quadruple{Op: OpAssign, Src1: expr.Dest, Dest: ident.Dest})
	case *ast.Return:
		expr := g.fetch(n.Expr)
		g.emit(Quadruple{Op: OpReturn, Dest: expr.Dest})
	case *ast.If:
		g.emitIf(n)
	case *ast.IfStatement:
		for _, arm := range n.Ifs {
			g.emitIf(arm)
		}
		if n.ElseBody != nil {
			g.emitStatement(n.ElseBody)
		}
	case *ast.While:
		top := g.newLabel()
		g.emit(Quadruple{Op: OpLabel, Dest: top})
		end := g.newLabel()
		cond := g.fetch(n.Condition)
		g.emit(Quadruple{Op: OpIfFalse, Src1: cond.Dest, Dest: end})
		if n.Body != nil {
			g.emitStatement(n.Body)
		}
		g.emit(Quadruple{Op: OpGoto, Dest: top})
		g.emit(Quadruple{Op: OpLabel, Dest: end})
	case *ast.DoWhile:
		top := g.newLabel()
		g.emit(Quadruple{Op: OpLabel, Dest: top})
		if n.Body != nil {
			g.emitStatement(n.Body)
		}
		cond := g.fetch(n.Condition)
		g.emit(Quadruple{Op: OpIf, Src1: cond.Dest, Dest: top})
	case *ast.Empty:
		// nothing
	default:
		panic(fmt.Sprintf("ir: generator reached unhandled statement %T", n))
	}
}

func (g *Generator) emitIf(n *ast.If) {
	end := g.newLabel()
	cond := g.fetch(n.Condition)
	g.emit(Quadruple{Op: OpIfFalse, Src1: cond.Dest, Dest: end})
	if n.Body != nil {
		g.emitStatement(n.Body)
	}
	g.emit(Quadruple{Op: OpLabel, Dest: end})
}
