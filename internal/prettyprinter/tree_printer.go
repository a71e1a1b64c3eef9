package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/quadlang/quadc/internal/ast"
)

// --- Tree Printer (Output looks like a tree structure) ---

type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

// Print renders the statement tree rooted at n into the printer.
func (p *TreePrinter) Print(n ast.Statement) {
	p.printStatement(n)
}

func (p *TreePrinter) write(s string) {
	p.buf.WriteString(strings.Repeat("  ", p.indent))
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

func (p *TreePrinter) nested(f func()) {
	p.indent++
	f()
	p.indent--
}

func (p *TreePrinter) printStatement(n ast.Statement) {
	switch n := n.(type) {
	case *ast.Compound:
		p.write("Compound")
		p.nested(func() {
			for _, statement := range n.Statements {
				p.printStatement(statement)
			}
		})
	case *ast.StatementBlock:
		p.write("Block")
		p.nested(func() {
			for _, statement := range n.Statements {
				p.printStatement(statement)
			}
		})
	case *ast.Declare:
		p.write("Declare: " + n.Type.Lexeme + " " + n.Ident.Name())
	case *ast.DeclareAssign:
		p.write("DeclareAssign: " + n.Decl.Type.Lexeme + " " + n.Decl.Ident.Name() + " =")
		p.nested(func() { p.printExpression(n.Expr) })
	case *ast.Assign:
		p.write("Assign: " + n.Ident.Name() + " =")
		p.nested(func() { p.printExpression(n.Expr) })
	case *ast.Return:
		p.write("Return")
		p.nested(func() { p.printExpression(n.Expr) })
	case *ast.IfStatement:
		p.write("If")
		p.nested(func() {
			for _, arm := range n.Ifs {
				p.write("Arm")
				p.nested(func() {
					p.printExpression(arm.Condition)
					p.printBody(arm.Body)
				})
			}
			if n.ElseBody != nil {
				p.write("Else")
				p.nested(func() { p.printStatement(n.ElseBody) })
			}
		})
	case *ast.While:
		p.write("While")
		p.nested(func() {
			p.printExpression(n.Condition)
			p.printBody(n.Body)
		})
	case *ast.DoWhile:
		p.write("DoWhile")
		p.nested(func() {
			p.printBody(n.Body)
			p.printExpression(n.Condition)
		})
	case *ast.Empty:
		p.write("Empty")
	default:
		p.write(fmt.Sprintf("<unknown statement %T>", n))
	}
}

func (p *TreePrinter) printBody(body ast.Statement) {
	if body == nil {
		p.write("<no body>")
		return
	}
	p.printStatement(body)
}

func (p *TreePrinter) printExpression(n ast.Expression) {
	switch n := n.(type) {
	case *ast.Integer:
		p.write("Integer: " + n.Token.Lexeme)
	case *ast.Identifier:
		if n.Offset != "" {
			p.write("Identifier: " + n.Name() + " @" + n.Offset)
		} else {
			p.write("Identifier: " + n.Name())
		}
	case *ast.UnaryOp:
		p.write("Unary: " + n.Op.Lexeme)
		p.nested(func() { p.printExpression(n.Expr) })
	case *ast.BinaryOp:
		p.write("BinaryOp: " + n.Op.Lexeme)
		p.nested(func() {
			p.printExpression(n.Left)
			p.printExpression(n.Right)
		})
	case *ast.Condition:
		p.write("Condition: " + n.Op.Lexeme)
		p.nested(func() {
			p.printExpression(n.Left)
			p.printExpression(n.Right)
		})
	default:
		p.write(fmt.Sprintf("<unknown expression %T>", n))
	}
}
