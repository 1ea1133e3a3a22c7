package symtab_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ceelang/cee/pkg/compiler/ast"
	"github.com/ceelang/cee/pkg/compiler/lexer"
	"github.com/ceelang/cee/pkg/compiler/parser"
	"github.com/ceelang/cee/pkg/compiler/symtab"
)

func build(t *testing.T, source string) (*symtab.SymbolTable, error) {
	t.Helper()
	p := parser.NewParser(lexer.NewScanner([]byte(source)))
	program, err := p.Parse()
	require.NoError(t, err)

	table := symtab.New()
	return table, symtab.NewBuilder().Build(program, table)
}

func TestBuilder_DeclaresTargets(t *testing.T) {
	table, err := build(t, "a = 1;\nb = a + 2;\nc = a * b;\n")

	require.NoError(t, err)
	require.Equal(t, 3, table.Size())
	require.Equal(t, 0, table.LookUp("a").MemoryIndex)
	require.Equal(t, 1, table.LookUp("b").MemoryIndex)
	require.Equal(t, 2, table.LookUp("c").MemoryIndex)
}

func TestBuilder_RecordsDeclarationPosition(t *testing.T) {
	table, err := build(t, "a = 1;\n  b = a;\n")

	require.NoError(t, err)
	b := table.LookUp("b")
	require.Equal(t, 2, b.Line)
	require.Equal(t, 3, b.Column)
}

func TestBuilder_UndeclaredUse(t *testing.T) {
	_, err := build(t, "a = b;")

	require.Error(t, err)
	require.Equal(t, `Invalid use of variable at 1:5; "b" has not yet been declared`, err.Error())
}

func TestBuilder_UndeclaredUseInPrint(t *testing.T) {
	_, err := build(t, "print x;")

	require.Error(t, err)
	require.Equal(t, `Invalid use of variable at 1:7; "x" has not yet been declared`, err.Error())
}

func TestBuilder_SelfAssignmentTrap(t *testing.T) {
	// The right-hand side is resolved before the target is inserted, so the
	// first mention of "a" is an undeclared use, never a redefinition.
	_, err := build(t, "a = a;")

	require.Error(t, err)
	require.Equal(t, `Invalid use of variable at 1:5; "a" has not yet been declared`, err.Error())
}

func TestBuilder_SelfAssignmentAfterDeclaration(t *testing.T) {
	// Once declared, "a = a;" is a plain redefinition.
	_, err := build(t, "a = 1; a = a;")

	require.Error(t, err)
	require.Equal(t, `Redefinition of variable at 1:8; "a" was already declared at 1:1`, err.Error())
}

func TestBuilder_Redefinition(t *testing.T) {
	_, err := build(t, "a = 1; a = 2;")

	require.Error(t, err)
	require.Equal(t, `Redefinition of variable at 1:8; "a" was already declared at 1:1`, err.Error())
}

func TestBuilder_UseBeforeTextualDeclaration(t *testing.T) {
	_, err := build(t, "a = 1;\nb = c;\nc = 2;\n")

	require.Error(t, err)
	require.Equal(t, `Invalid use of variable at 2:5; "c" has not yet been declared`, err.Error())
}

func TestBuilder_ErrorIsNodeError(t *testing.T) {
	_, err := build(t, "a = a;")

	var nodeErr *ast.NodeError
	require.ErrorAs(t, err, &nodeErr)
}

func TestBuilder_ClearsTableBeforeBuilding(t *testing.T) {
	p := parser.NewParser(lexer.NewScanner([]byte("a = 1;")))
	program, err := p.Parse()
	require.NoError(t, err)

	table := symtab.New()
	table.Insert("stale", 9, 9)

	require.NoError(t, symtab.NewBuilder().Build(program, table))
	require.Nil(t, table.LookUp("stale"))
	require.Equal(t, 0, table.LookUp("a").MemoryIndex)
}
