package prettyprinter

import (
	"bytes"
	"fmt"

	"github.com/quadlang/quadc/internal/ast"
)

// --- Chart Printer (JSON-ish sidecar consumed by the AST chart page) ---
//
// Every node appears as
//
//	id = {
//		parent: pid,
//		text: { name: "..." }
//	};
//
// and the file closes with a simple_chart_config list of all ids. Node
// ids combine a tag with the node identity, so reruns over the same tree
// produce the same chart apart from the optional run header line.

type ChartPrinter struct {
	buf    bytes.Buffer
	config []string
}

func NewChartPrinter() *ChartPrinter {
	return &ChartPrinter{}
}

func (p *ChartPrinter) String() string {
	return p.buf.String()
}

// Print renders the chart for the tree rooted at root. The runID tags the
// file with the compilation run that produced it.
func (p *ChartPrinter) Print(root *ast.Compound, runID string) {
	if root == nil {
		return
	}

	if runID != "" {
		fmt.Fprintf(&p.buf, "// run %s\n\n", runID)
	}
	p.buf.WriteString("config = {\n\tcontainer: \"#AST\"\n};\n\n")
	p.config = append(p.config, "config")

	// The root is the parent of all other nodes and has none itself.
	rootID := ast.HexID(root, "ROOT")
	fmt.Fprintf(&p.buf, "%s = {\n\ttext: { name: \"ROOT\" }\n};\n\n", rootID)
	p.config = append(p.config, rootID)

	for _, statement := range root.Statements {
		p.printStatement(statement, rootID)
	}

	p.buf.WriteString("simple_chart_config = [\n    ")
	for i, id := range p.config {
		if i != 0 {
			p.buf.WriteString(", ")
		}
		p.buf.WriteString(id)
	}
	p.buf.WriteString("\n];")
}

func (p *ChartPrinter) emit(n ast.Node, tag, parentID, name string) string {
	nodeID := ast.HexID(n, tag)
	fmt.Fprintf(&p.buf, "%s = {\n\tparent: %s,\n\ttext: { name: \"%s\" }\n};\n\n", nodeID, parentID, name)
	p.config = append(p.config, nodeID)
	return nodeID
}

func (p *ChartPrinter) printStatement(n ast.Statement, parentID string) {
	switch n := n.(type) {
	case *ast.Compound:
		// Compounds are never charted; their children attach to the
		// compound's parent.
		for _, statement := range n.Statements {
			p.printStatement(statement, parentID)
		}
	case *ast.StatementBlock:
		for _, statement := range n.Statements {
			p.printStatement(statement, parentID)
		}
	case *ast.Declare:
		id := p.emit(n, "DECL", parentID, n.Type.Lexeme)
		p.printExpression(n.Ident, id)
	case *ast.DeclareAssign:
		id := p.emit(n, "DECL_ASSIGN", parentID, n.Op.Lexeme)
		p.printStatement(n.Decl, id)
		p.printExpression(n.Expr, id)
	case *ast.Assign:
		id := p.emit(n, "ASSIGN", parentID, n.Op.Lexeme)
		p.printExpression(n.Ident, id)
		p.printExpression(n.Expr, id)
	case *ast.Return:
		id := p.emit(n, "RETURN", parentID, "RETURN")
		p.printExpression(n.Expr, id)
	case *ast.IfStatement:
		id := p.emit(n, "_IF_", parentID, "_IF_")
		for _, arm := range n.Ifs {
			armID := p.emit(arm, "IF", id, "IF")
			p.printExpression(arm.Condition, armID)
			if arm.Body != nil {
				p.printStatement(arm.Body, armID)
			}
		}
		if n.ElseBody != nil {
			p.printStatement(n.ElseBody, id)
		}
	case *ast.While:
		id := p.emit(n, "WHILE", parentID, "WHILE")
		p.printExpression(n.Condition, id)
		if n.Body != nil {
			p.printStatement(n.Body, id)
		}
	case *ast.DoWhile:
		id := p.emit(n, "DO", parentID, "DO")
		if n.Body != nil {
			p.printStatement(n.Body, id)
		}
		p.printExpression(n.Condition, id)
	case *ast.Empty:
		// not charted
	default:
		panic(fmt.Sprintf("prettyprinter: chart reached unhandled statement %T", n))
	}
}

func (p *ChartPrinter) printExpression(n ast.Expression, parentID string) {
	switch n := n.(type) {
	case *ast.Integer:
		p.emit(n, "INT", parentID, n.Token.Lexeme)
	case *ast.Identifier:
		p.emit(n, "ID", parentID, n.Name())
	case *ast.UnaryOp:
		id := p.emit(n, "UNARY", parentID, n.Op.Lexeme)
		p.printExpression(n.Expr, id)
	case *ast.BinaryOp:
		id := p.emit(n, "BINOP", parentID, n.Op.Lexeme)
		p.printExpression(n.Left, id)
		p.printExpression(n.Right, id)
	case *ast.Condition:
		id := p.emit(n, "COND", parentID, n.Op.Lexeme)
		p.printExpression(n.Left, id)
		p.printExpression(n.Right, id)
	default:
		panic(fmt.Sprintf("prettyprinter: chart reached unhandled expression %T", n))
	}
}
