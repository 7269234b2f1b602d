package pgquery

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with the visitor w, followed by a call of w.VisitEnd(node).
type Visitor interface {
	Visit(n *Node) (w Visitor, err error)
	VisitEnd(n *Node) error
}

// Walk traverses a tree in depth-first order: It starts by calling
// v.Visit(node); node must not be nil. If the visitor w returned by
// v.Visit(node) is not nil, Walk is invoked recursively with visitor
// w for each of the non-nil child nodes of node, in field order and
// through nested lists, followed by a call of w.VisitEnd(node).
func Walk(v Visitor, n *Node) error {
	return walk(v, n)
}

// WalkList walks each node of a statement list in order.
func WalkList(v Visitor, stmts []*Node) error {
	for _, n := range stmts {
		if n == nil {
			continue
		}
		if err := walk(v, n); err != nil {
			return err
		}
	}
	return nil
}

func walk(v Visitor, n *Node) (err error) {
	// Visit the node itself
	if v, err = v.Visit(n); err != nil {
		return err
	} else if v == nil {
		return nil
	}

	// Visit node's children.
	for _, f := range n.Fields {
		if err := walkValue(v, f.Value); err != nil {
			return err
		}
	}

	// Revisit original node after its children have been processed.
	return v.VisitEnd(n)
}

func walkValue(v Visitor, x Value) error {
	switch x := x.(type) {
	case *Node:
		if x != nil {
			return walk(v, x)
		}
	case List:
		for _, e := range x {
			if err := walkValue(v, e); err != nil {
				return err
			}
		}
	}
	return nil
}

// VisitFunc represents a function type that implements Visitor.
// Only executes on node entry.
type VisitFunc func(*Node) error

// Visit executes fn. Walk visits node children if fn returns no error.
func (fn VisitFunc) Visit(node *Node) (Visitor, error) {
	if err := fn(node); err != nil {
		return nil, err
	}
	return fn, nil
}

// VisitEnd is a no-op.
func (fn VisitFunc) VisitEnd(node *Node) error { return nil }

// VisitEndFunc represents a function type that implements Visitor.
// Only executes on node exit.
type VisitEndFunc func(*Node) error

// Visit is a no-op.
func (fn VisitEndFunc) Visit(node *Node) (Visitor, error) { return fn, nil }

// VisitEnd executes fn.
func (fn VisitEndFunc) VisitEnd(node *Node) error { return fn(node) }

type inspector func(*Node) bool

func (f inspector) Visit(node *Node) (Visitor, error) {
	if f(node) {
		return f, nil
	}
	return nil, nil
}

func (f inspector) VisitEnd(node *Node) error { return nil }

// Inspect traverses n in depth-first order. Children of a node are skipped
// when f returns false for it.
func Inspect(n *Node, f func(*Node) bool) {
	_ = Walk(inspector(f), n)
}
