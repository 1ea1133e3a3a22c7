package ast

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder logs every hook invocation so traversal order can be asserted.
type recorder struct {
	DefaultVisitor
	events []string
	order  VisitOrder
	failOn string
}

func nodeName(n Node) string {
	switch n := n.(type) {
	case *Program:
		return "Program"
	case *StatementList:
		return "StatementList"
	case *Assignment:
		return "Assignment"
	case *Print:
		return "Print"
	case *UnaryExpr:
		return "Unary"
	case *BinaryExpr:
		return "Binary"
	case *Number:
		return "Number(" + n.Lexeme + ")"
	case *Variable:
		return "Variable(" + n.Name + ")"
	}
	return "?"
}

func (r *recorder) log(hook string, n Node) error {
	event := hook + " " + nodeName(n)
	r.events = append(r.events, event)
	if r.failOn != "" && event == r.failOn {
		return Errorf("forced failure on %s", event)
	}
	return nil
}

func (r *recorder) PreVisit(n Node) error        { return r.log("pre", n) }
func (r *recorder) Visit(n Node) error           { return r.log("visit", n) }
func (r *recorder) PostVisit(n Node) error       { return r.log("post", n) }
func (r *recorder) BetweenChildren(n Node) error { return r.log("between", n) }

func (r *recorder) ChildVisitOrder(Node) VisitOrder { return r.order }

// a = 1 + 2;
func sampleProgram() *Program {
	assignment := &Assignment{
		Pos:    At(1, 1),
		Target: &Variable{Pos: At(1, 1), Name: "a"},
		Value: &BinaryExpr{
			Pos: At(1, 7),
			Lhs: &Number{Pos: At(1, 5), Lexeme: "1"},
			Op:  Plus,
			Rhs: &Number{Pos: At(1, 9), Lexeme: "2"},
		},
	}
	list := &StatementList{Pos: At(1, 1)}
	list.Append(assignment)
	return &Program{Pos: At(1, 1), Statements: list}
}

func TestVisitorOrder_Normal(t *testing.T) {
	r := &recorder{}
	require.NoError(t, sampleProgram().Accept(r))

	require.Equal(t, []string{
		"pre Program", "visit Program",
		"pre StatementList", "visit StatementList",
		"pre Assignment", "visit Assignment",
		"pre Variable(a)", "visit Variable(a)", "post Variable(a)",
		"between Assignment",
		"pre Binary", "visit Binary",
		"pre Number(1)", "visit Number(1)", "post Number(1)",
		"between Binary",
		"pre Number(2)", "visit Number(2)", "post Number(2)",
		"post Binary",
		"post Assignment",
		"post StatementList",
		"post Program",
	}, r.events)
}

func TestVisitorOrder_Reversed(t *testing.T) {
	r := &recorder{order: Reversed}
	require.NoError(t, sampleProgram().Accept(r))

	require.Equal(t, []string{
		"pre Program", "visit Program",
		"pre StatementList", "visit StatementList",
		"pre Assignment", "visit Assignment",
		"pre Binary", "visit Binary",
		"pre Number(2)", "visit Number(2)", "post Number(2)",
		"between Binary",
		"pre Number(1)", "visit Number(1)", "post Number(1)",
		"post Binary",
		"between Assignment",
		"pre Variable(a)", "visit Variable(a)", "post Variable(a)",
		"post Assignment",
		"post StatementList",
		"post Program",
	}, r.events)
}

func TestVisitorOrder_BetweenFiresPerStatement(t *testing.T) {
	list := &StatementList{Pos: At(1, 1)}
	for i := 0; i < 3; i++ {
		list.Append(&Print{
			Pos:   At(i+1, 1),
			Value: &Number{Pos: At(i+1, 7), Lexeme: fmt.Sprint(i)},
		})
	}
	program := &Program{Pos: At(1, 1), Statements: list}

	r := &recorder{}
	require.NoError(t, program.Accept(r))

	between := 0
	for _, e := range r.events {
		if e == "between StatementList" {
			between++
		}
	}
	require.Equal(t, 2, between)
}

func TestVisitorError_AbortsTraversal(t *testing.T) {
	r := &recorder{failOn: "visit Number(1)"}
	err := sampleProgram().Accept(r)

	require.Error(t, err)
	var nodeErr *NodeError
	require.ErrorAs(t, err, &nodeErr)

	// Nothing after the failing hook was visited.
	require.Equal(t, "visit Number(1)", r.events[len(r.events)-1])
}

func TestVisitorLeafHasNoChildStep(t *testing.T) {
	n := &Number{Pos: At(1, 1), Lexeme: "7"}
	r := &recorder{}
	require.NoError(t, n.Accept(r))

	require.Equal(t, []string{"pre Number(7)", "visit Number(7)", "post Number(7)"}, r.events)
}
