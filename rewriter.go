package pgquery

// locationRewriter converts the location fields of a tree from byte
// offsets to character offsets.
// A node reachable through two parents is translated once.
type locationRewriter struct {
	m    *locationMap
	seen map[*Node]struct{}
}

func newLocationRewriter(m *locationMap) *locationRewriter {
	return &locationRewriter{m: m, seen: make(map[*Node]struct{})}
}

// Rewrite translates every location in stmts in place.
func (rw *locationRewriter) Rewrite(stmts []*Node) {
	if rw.m.chars == nil {
		// ASCII input: offsets already count characters.
		return
	}
	_ = WalkList(rw, stmts)
}

func (rw *locationRewriter) Visit(n *Node) (w Visitor, err error) {
	if _, ok := rw.seen[n]; ok {
		return nil, nil
	}
	rw.seen[n] = struct{}{}
	for i := range n.Fields {
		f := &n.Fields[i]
		if f.Name != LocationField {
			continue
		}
		if loc, ok := f.Value.(Integer); ok {
			f.Value = Integer(rw.m.charOffset(int(loc)))
		}
	}
	return rw, nil
}

func (rw *locationRewriter) VisitEnd(n *Node) error {
	return nil
}
