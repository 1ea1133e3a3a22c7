package symtab

import "github.com/ceelang/cee/pkg/compiler/ast"

// Builder populates a symbol table from a program tree in a single
// traversal, checking that every variable is declared before use and
// declared at most once.
//
// The builder tracks whether the traversal is currently on the right-hand
// side of an assignment. The target of an assignment is inserted only after
// its value expression has been fully visited, so "a = a;" resolves the
// right-hand "a" against the table before the left-hand "a" exists and is
// reported as an undeclared use.
type Builder struct {
	ast.DefaultVisitor
	table   *SymbolTable
	rhsMode bool
}

// NewBuilder creates a symbol table builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build clears table and fills it from the program. On error the table
// contents are unspecified and the caller must discard them.
func (b *Builder) Build(program *ast.Program, table *SymbolTable) error {
	b.table = table
	b.table.Clear()
	b.rhsMode = true
	return program.Accept(b)
}

func (b *Builder) PreVisit(n ast.Node) error {
	if _, ok := n.(*ast.Assignment); ok {
		b.rhsMode = false
	}
	return nil
}

func (b *Builder) BetweenChildren(n ast.Node) error {
	if _, ok := n.(*ast.Assignment); ok {
		b.rhsMode = true
	}
	return nil
}

func (b *Builder) Visit(n ast.Node) error {
	variable, ok := n.(*ast.Variable)
	if !ok || !b.rhsMode {
		return nil
	}
	if b.table.LookUp(variable.Name) == nil {
		return ast.Errorf("Invalid use of variable at %d:%d; %q has not yet been declared",
			variable.Line(), variable.Column(), variable.Name)
	}
	return nil
}

func (b *Builder) PostVisit(n ast.Node) error {
	assignment, ok := n.(*ast.Assignment)
	if !ok {
		return nil
	}
	target := assignment.Target
	if !b.table.Insert(target.Name, target.Line(), target.Column()) {
		record := b.table.LookUp(target.Name)
		return ast.Errorf("Redefinition of variable at %d:%d; %q was already declared at %d:%d",
			assignment.Line(), assignment.Column(), target.Name, record.Line, record.Column)
	}
	return nil
}
