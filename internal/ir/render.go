package ir

import (
	"strings"

	"github.com/quadlang/quadc/internal/config"
)

// Render formats quadruples in the textual inspection form:
//
//	dest = src1 op src2;
//	dest = op src1;
//	dest = src1;
//	IfFalse x Goto L0;
//	If x Goto L0;
//	Goto L0;
//	Label L0:
//	Return x;
func Render(instructions []Quadruple) string {
	var sb strings.Builder
	for _, instr := range instructions {
		sb.WriteString(renderOne(instr))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderProgram renders the instruction list under the main: header.
func RenderProgram(instructions []Quadruple) string {
	return config.EntryLabel + "\n" + Render(instructions)
}

func renderOne(instr Quadruple) string {
	// A second source operand means a full three-address instruction.
	if instr.Src2 != nil {
		return instr.Dest.Name + " = " + instr.Src1.Name + " " + instr.Op + " " + instr.Src2.Name + ";"
	}
	switch instr.Op {
	case OpAssign:
		return instr.Dest.Name + " = " + instr.Src1.Name + ";"
	case OpIfFalse, OpIf:
		return instr.Op + " " + instr.Src1.Name + " Goto " + instr.Dest.Name + ";"
	case OpLabel:
		return "Label " + instr.Dest.Name + ":"
	case OpGoto:
		return instr.Op + " " + instr.Dest.Name + ";"
	case OpReturn:
		return instr.Op + " " + instr.Dest.Name + ";"
	default:
		// Unary instruction
		return instr.Dest.Name + " = " + instr.Op + " " + instr.Src1.Name + ";"
	}
}
