package pgquery

import (
	"strings"
)

// statementKinds are the kinds that start a new scope for table
// extraction.
var statementKinds = map[NodeKind]bool{
	SelectStmt:         true,
	InsertStmt:         true,
	UpdateStmt:         true,
	DeleteStmt:         true,
	CopyStmt:           true,
	TransactionStmt:    true,
	CreateStmt:         true,
	CreateTableAsStmt:  true,
	IndexStmt:          true,
	CreateSchemaStmt:   true,
	ViewStmt:           true,
	CreateTrigStmt:     true,
	RuleStmt:           true,
	CreateFunctionStmt: true,
	AlterTableStmt:     true,
	RenameStmt:         true,
	AlterOwnerStmt:     true,
	DropStmt:           true,
	GrantStmt:          true,
	GrantRoleStmt:      true,
	TruncateStmt:       true,
	VacuumStmt:         true,
	CheckPointStmt:     true,
	VariableSetStmt:    true,
	VariableShowStmt:   true,
	LockStmt:           true,
	ExplainStmt:        true,
	RefreshMatViewStmt: true,
}

// IsStatement returns true if kind is a statement kind.
func IsStatement(kind NodeKind) bool {
	return statementKinds[kind]
}

// ExtractTables returns the qualified names of the tables referenced by
// stmts. Each statement contributes, in order:
//
//  1. its own relations: the target of INSERT, UPDATE, DELETE, COPY,
//     CREATE TABLE [AS], SELECT INTO, CREATE INDEX, CREATE VIEW, CREATE
//     RULE, CREATE TRIGGER, ALTER TABLE, RENAME, VACUUM and REFRESH, the
//     lists of TRUNCATE, LOCK and GRANT ON TABLE, the names of DROP TABLE
//     and the owning table of DROP RULE and DROP TRIGGER;
//  2. the relations of its FROM or USING clause, left to right, with join
//     trees flattened depth-first;
//  3. the tables of nested statements in the order they are found: CTE
//     bodies first, then subqueries, set operation arms, view and rule
//     bodies and wrapped statements in field order, along with the tables
//     named by foreign keys, LIKE clauses and INHERITS.
//
// Names are joined with "." from the catalog, schema and relation names
// present. Duplicates are kept. Unknown kinds contribute nothing.
func ExtractTables(stmts []*Node) []string {
	e := &tableExtractor{names: []string{}}
	for _, stmt := range stmts {
		if stmt != nil {
			e.statement(stmt)
		}
	}
	return e.names
}

// DistinctTables returns names without repeats, keeping the first
// occurrence of each.
func DistinctTables(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// QualifiedName returns the dotted name of a RANGEVAR.
func QualifiedName(rv *Node) string {
	parts := make([]string, 0, 3)
	for _, field := range []string{CatalognameField, SchemanameField, RelnameField} {
		if s := rv.Text(field); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ".")
}

type tableExtractor struct {
	names []string
}

func (e *tableExtractor) relation(rv *Node) {
	if rv == nil || rv.Kind != RangeVar {
		return
	}
	e.names = append(e.names, QualifiedName(rv))
}

func (e *tableExtractor) relations(l List) {
	for _, v := range l {
		if rv, ok := v.(*Node); ok {
			e.relation(rv)
		}
	}
}

// fromItem emits the relations of one FROM clause item.
func (e *tableExtractor) fromItem(v Value) {
	n, ok := v.(*Node)
	if !ok || n == nil {
		return
	}
	switch n.Kind {
	case RangeVar:
		e.relation(n)
	case JoinExpr:
		e.fromItem(n.Get(LeftArgField))
		e.fromItem(n.Get(RightArgField))
	}
}

func (e *tableExtractor) fromList(l List) {
	for _, v := range l {
		e.fromItem(v)
	}
}

// tableLike returns true for the object types whose names are tables.
func tableLike(typ int) bool {
	switch ObjectType(typ) {
	case ObjectTable, ObjectView, ObjectMatView, ObjectForeignTable:
		return true
	}
	return false
}

func (e *tableExtractor) statement(n *Node) {
	switch n.Kind {
	case SelectStmt:
		if into := n.Node("intoClause"); into != nil {
			e.relation(into.Node("rel"))
		}
		e.fromList(n.List(FromClauseField))
		e.withClause(n)
		e.nested(n, WithClauseField)
		return

	case InsertStmt, DeleteStmt, UpdateStmt:
		e.relation(n.Node(RelationField))
		e.fromList(n.List(FromClauseField))
		e.fromList(n.List("usingClause"))
		e.withClause(n)
		e.nested(n, WithClauseField)
		return

	case CopyStmt, IndexStmt, RuleStmt, VacuumStmt, RefreshMatViewStmt:
		e.relation(n.Node(RelationField))

	case CreateTrigStmt:
		e.relation(n.Node(RelationField))
		e.relation(n.Node("constrrel"))

	case CreateStmt:
		e.relation(n.Node(RelationField))
		e.nestedValue(n.Get("tableElts"))
		e.relations(n.List("inhRelations"))
		return

	case CreateTableAsStmt:
		if into := n.Node("into"); into != nil {
			e.relation(into.Node("rel"))
		}

	case ViewStmt:
		e.relation(n.Node("view"))

	case AlterTableStmt:
		if kind, _ := n.Int("relkind"); tableLike(kind) {
			e.relation(n.Node(RelationField))
		}

	case RenameStmt:
		renameType, _ := n.Int("renameType")
		relType, _ := n.Int("relationType")
		switch ObjectType(renameType) {
		case ObjectTrigger, ObjectRule:
			e.relation(n.Node(RelationField))
		default:
			if tableLike(renameType) || tableLike(relType) {
				e.relation(n.Node(RelationField))
			}
		}

	case DropStmt:
		typ, _ := n.Int(RemoveTypeField)
		for _, v := range n.List(ObjectsField) {
			l, ok := v.(List)
			if !ok {
				continue
			}
			parts := nameStrings(l)
			switch ObjectType(typ) {
			case ObjectTable, ObjectForeignTable:
				e.names = append(e.names, strings.Join(parts, "."))
			case ObjectRule, ObjectTrigger:
				if len(parts) > 1 {
					e.names = append(e.names, strings.Join(parts[:len(parts)-1], "."))
				}
			}
		}
		return

	case GrantStmt:
		targ, _ := n.Int("targtype")
		obj, _ := n.Int("objtype")
		if targ == AclTargetObject && GrantObjectType(obj) == AclObjectRelation {
			e.relations(n.List(ObjectsField))
		}
		return

	case LockStmt, TruncateStmt:
		e.relations(n.List(RelationsField))
		return
	}
	e.nested(n)
}

// withClause extracts the tables of the CTE bodies of n.
func (e *tableExtractor) withClause(n *Node) {
	with := n.Node(WithClauseField)
	for _, v := range with.List("ctes") {
		if cte, ok := v.(*Node); ok {
			e.nestedValue(cte.Get("ctequery"))
		}
	}
}

// nested extracts the tables of the statements nested in the fields of n,
// except those named in skip.
func (e *tableExtractor) nested(n *Node, skip ...string) {
fields:
	for _, f := range n.Fields {
		for _, s := range skip {
			if f.Name == s {
				continue fields
			}
		}
		e.nestedValue(f.Value)
	}
}

func (e *tableExtractor) nestedValue(v Value) {
	_ = walkValue(e, v)
}

// Visit stops at nested statements, which are extracted as a whole.
func (e *tableExtractor) Visit(n *Node) (Visitor, error) {
	if IsStatement(n.Kind) {
		e.statement(n)
		return nil, nil
	}
	switch n.Kind {
	case Constraint:
		e.relation(n.Node("pktable"))
	case TableLikeClause:
		e.relation(n.Node(RelationField))
	}
	return e, nil
}

func (e *tableExtractor) VisitEnd(n *Node) error { return nil }
