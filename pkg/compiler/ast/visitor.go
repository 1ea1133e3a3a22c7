package ast

// VisitOrder selects the order in which a node's children are traversed.
type VisitOrder int

const (
	// Normal visits children in the order they appear in the node.
	Normal VisitOrder = iota

	// Reversed visits children in the opposite order.
	Reversed
)

// Visitor is the external-iteration protocol over the tree. Accept on a node
// invokes PreVisit, then Visit, then the children in the order reported by
// ChildVisitOrder (firing BetweenChildren after each child except the last),
// and finally PostVisit. Leaf nodes have no child step. ChildVisitOrder and
// BetweenChildren are consulted only for nodes with more than one child.
//
// Any hook may return an error; the traversal stops immediately and the
// error propagates to the caller of Accept.
type Visitor interface {
	PreVisit(n Node) error
	Visit(n Node) error
	PostVisit(n Node) error
	BetweenChildren(n Node) error
	ChildVisitOrder(n Node) VisitOrder
}

// DefaultVisitor implements every hook as a no-op so that passes only need
// to override the hooks they care about.
type DefaultVisitor struct{}

func (DefaultVisitor) PreVisit(Node) error             { return nil }
func (DefaultVisitor) Visit(Node) error                { return nil }
func (DefaultVisitor) PostVisit(Node) error            { return nil }
func (DefaultVisitor) BetweenChildren(Node) error      { return nil }
func (DefaultVisitor) ChildVisitOrder(Node) VisitOrder { return Normal }

// Accept implements the traversal contract for the root node.
func (p *Program) Accept(v Visitor) error {
	if err := v.PreVisit(p); err != nil {
		return err
	}
	if err := v.Visit(p); err != nil {
		return err
	}
	if err := p.Statements.Accept(v); err != nil {
		return err
	}
	return v.PostVisit(p)
}

func (l *StatementList) Accept(v Visitor) error {
	if err := v.PreVisit(l); err != nil {
		return err
	}
	if err := v.Visit(l); err != nil {
		return err
	}
	children := make([]Node, len(l.Statements))
	for i, s := range l.Statements {
		children[i] = s
	}
	if err := acceptChildren(v, l, children); err != nil {
		return err
	}
	return v.PostVisit(l)
}

func (a *Assignment) Accept(v Visitor) error {
	if err := v.PreVisit(a); err != nil {
		return err
	}
	if err := v.Visit(a); err != nil {
		return err
	}
	if err := acceptChildren(v, a, []Node{a.Target, a.Value}); err != nil {
		return err
	}
	return v.PostVisit(a)
}

func (p *Print) Accept(v Visitor) error {
	if err := v.PreVisit(p); err != nil {
		return err
	}
	if err := v.Visit(p); err != nil {
		return err
	}
	if err := p.Value.Accept(v); err != nil {
		return err
	}
	return v.PostVisit(p)
}

func (u *UnaryExpr) Accept(v Visitor) error {
	if err := v.PreVisit(u); err != nil {
		return err
	}
	if err := v.Visit(u); err != nil {
		return err
	}
	if err := u.Operand.Accept(v); err != nil {
		return err
	}
	return v.PostVisit(u)
}

func (b *BinaryExpr) Accept(v Visitor) error {
	if err := v.PreVisit(b); err != nil {
		return err
	}
	if err := v.Visit(b); err != nil {
		return err
	}
	if err := acceptChildren(v, b, []Node{b.Lhs, b.Rhs}); err != nil {
		return err
	}
	return v.PostVisit(b)
}

func (n *Number) Accept(v Visitor) error {
	if err := v.PreVisit(n); err != nil {
		return err
	}
	if err := v.Visit(n); err != nil {
		return err
	}
	return v.PostVisit(n)
}

func (vr *Variable) Accept(v Visitor) error {
	if err := v.PreVisit(vr); err != nil {
		return err
	}
	if err := v.Visit(vr); err != nil {
		return err
	}
	return v.PostVisit(vr)
}

func acceptChildren(v Visitor, parent Node, children []Node) error {
	if len(children) > 1 && v.ChildVisitOrder(parent) == Reversed {
		reversed := make([]Node, len(children))
		for i, c := range children {
			reversed[len(children)-1-i] = c
		}
		children = reversed
	}
	for i, c := range children {
		if i > 0 {
			if err := v.BetweenChildren(parent); err != nil {
				return err
			}
		}
		if err := c.Accept(v); err != nil {
			return err
		}
	}
	return nil
}
