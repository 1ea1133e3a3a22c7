package ast

import "strings"

// Printer renders a program back to source form. Expressions are fully
// parenthesized so the rendering shows the tree structure unambiguously.
type Printer struct {
	DefaultVisitor
	buf strings.Builder
}

// NewPrinter creates a source printer.
func NewPrinter() *Printer {
	return &Printer{}
}

// Render walks the tree and returns the rendered source.
func (p *Printer) Render(root Node) (string, error) {
	p.buf.Reset()
	if err := root.Accept(p); err != nil {
		return "", err
	}
	return p.buf.String(), nil
}

func (p *Printer) PreVisit(n Node) error {
	switch n := n.(type) {
	case *Print:
		p.buf.WriteString("print ")
	case *UnaryExpr:
		p.buf.WriteString("(")
		p.buf.WriteString(n.Op.String())
	case *BinaryExpr:
		p.buf.WriteString("(")
	}
	return nil
}

func (p *Printer) Visit(n Node) error {
	switch n := n.(type) {
	case *Number:
		p.buf.WriteString(n.Lexeme)
	case *Variable:
		p.buf.WriteString(n.Name)
	}
	return nil
}

func (p *Printer) BetweenChildren(n Node) error {
	switch n := n.(type) {
	case *Assignment:
		p.buf.WriteString(" = ")
	case *BinaryExpr:
		p.buf.WriteString(" ")
		p.buf.WriteString(n.Op.String())
		p.buf.WriteString(" ")
	}
	return nil
}

func (p *Printer) PostVisit(n Node) error {
	switch n.(type) {
	case *Assignment, *Print:
		p.buf.WriteString(";\n")
	case *UnaryExpr, *BinaryExpr:
		p.buf.WriteString(")")
	}
	return nil
}
