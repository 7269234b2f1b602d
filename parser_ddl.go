package pgquery

// columnDefFields is the field order of a COLUMNDEF node.
var columnDefFields = []string{
	"colname", "typeName", "is_local", "raw_default", "collClause", "constraints", LocationField,
}

// constraintFields is the field order of a CONSTRAINT node.
var constraintFields = []string{
	"contype", "conname", "deferrable", "initdeferred", LocationField,
	"is_no_inherit", "raw_expr", "cooked_expr", "keys", "exclusions",
	"options", "indexname", "indexspace", "access_method", "where_clause",
	"pktable", "fk_attrs", "pk_attrs", "fk_matchtype", "fk_upd_action",
	"fk_del_action", "old_conpfeqop", "skip_validation", "initially_valid",
}

// parseCreateStatement parses the CREATE statements. OR REPLACE and the
// persistence prefix are only accepted before the objects that take them.
func (p *Parser) parseCreateStatement() (_ *Node, err error) {
	assert(p.peek() == CREATE)
	p.lex()
	replace := p.acceptSeq(OR, REPLACE)

	start := p.i
	persistence, err := p.parseOptTemp()
	if err != nil {
		return nil, err
	}
	temp := p.i > start

	switch tok := p.peek(); {
	case tok == TABLE && !replace:
		return p.parseCreateTableStatement(persistence)
	case tok == VIEW || tok == RECURSIVE:
		if persistence == RelPersistenceUnlogged {
			return nil, p.errorf(p.at(start), "views cannot be unlogged because they do not have storage")
		}
		return p.parseCreateViewStatement(replace, persistence)
	case tok == MATERIALIZED && !replace && persistence != RelPersistenceTemp:
		return p.parseCreateMatViewStatement(persistence)
	case temp:
	case (tok == UNIQUE || tok == INDEX) && !replace:
		return p.parseCreateIndexStatement()
	case tok == SCHEMA && !replace:
		return p.parseCreateSchemaStatement()
	case (tok == TRIGGER || tok == CONSTRAINT) && !replace:
		return p.parseCreateTriggerStatement()
	case tok == RULE:
		return p.parseCreateRuleStatement(replace)
	case tok == FUNCTION:
		return p.parseCreateFunctionStatement(replace)
	}
	return nil, p.errorUnexpected()
}

// parseCreateTableStatement parses CREATE TABLE with a column list, a
// typed table (OF type) or a table created from a query (AS).
func (p *Parser) parseCreateTableStatement(persistence string) (_ *Node, err error) {
	assert(p.peek() == TABLE)
	p.lex()

	ifNotExists := p.parseIfNotExists()
	rel, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	rel.setField("relpersistence", Text(persistence))

	stmt := NewNode(CreateStmt).Set(RelationField, rel)
	switch {
	case p.peek() == LP && !p.columnListAhead():
		elts, err := p.parseTableElementList()
		if err != nil {
			return nil, err
		}
		stmt.Set("tableElts", elts)
		if p.acceptSeq(INHERITS, LP) {
			parents, err := p.parseQualifiedNameList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RP); err != nil {
				return nil, err
			}
			stmt.Set("inhRelations", parents)
		}
	case p.peek() == OF:
		p.lex()
		x := p.next()
		parts, err := p.parseAnyName()
		if err != nil {
			return nil, err
		}
		stmt.Set("ofTypename", newTypeName(names(parts...), nil, x.Pos.Offset))
	default:
		return p.parseCreateTableAs(rel, ifNotExists)
	}

	options, err := p.parseOptWith()
	if err != nil {
		return nil, err
	}
	oncommit, err := p.parseOnCommitOption()
	if err != nil {
		return nil, err
	}
	tablespace, err := p.parseOptTableSpace()
	if err != nil {
		return nil, err
	}
	return stmt.
		Set("options", options).
		SetInt("oncommit", oncommit).
		Set("tablespacename", Text(tablespace)).
		Set("if_not_exists", Boolean(ifNotExists)), nil
}

// columnListAhead reports whether a parenthesized name list follows,
// which starts the column names of CREATE TABLE ... AS.
func (p *Parser) columnListAhead() bool {
	m := p.mark()
	defer p.reset(m)
	_, err := p.parseColumnList()
	return err == nil
}

// parseCreateTableAs parses the rest of CREATE TABLE name [(cols)] AS query.
func (p *Parser) parseCreateTableAs(rel *Node, ifNotExists bool) (_ *Node, err error) {
	cols, err := p.parseOptColumnList()
	if err != nil {
		return nil, err
	}
	options, err := p.parseOptWith()
	if err != nil {
		return nil, err
	}
	oncommit, err := p.parseOnCommitOption()
	if err != nil {
		return nil, err
	}
	tablespace, err := p.parseOptTableSpace()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(AS); err != nil {
		return nil, err
	}
	query, err := p.parseSelectStatement()
	if err != nil {
		return nil, err
	}
	withData := p.parseOptWithData()

	into := NewNode(IntoClause).
		Set("rel", rel).
		Set("colNames", cols).
		Set("options", options).
		SetInt("onCommit", oncommit).
		Set("tableSpaceName", Text(tablespace)).
		Set("skipData", Boolean(!withData))
	return NewNode(CreateTableAsStmt).
		Set(QueryField, query).
		Set("into", into).
		SetInt("relkind", int(ObjectTable)).
		Set("if_not_exists", Boolean(ifNotExists)), nil
}

// parseOptWithData parses WITH [NO] DATA. Data is loaded by default.
func (p *Parser) parseOptWithData() bool {
	if p.acceptSeq(WITH, NO, DATA) {
		return false
	}
	p.acceptSeq(WITH, DATA)
	return true
}

// parseTableElementList parses the parenthesized columns, constraints and
// LIKE clauses of CREATE TABLE. The list may be empty.
func (p *Parser) parseTableElementList() (_ List, err error) {
	if _, err := p.expect(LP); err != nil {
		return nil, err
	}
	var elts List
	if p.accept(RP) {
		return nil, nil
	}
	for {
		elt, err := p.parseTableElement()
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
		if !p.accept(COMMA) {
			break
		}
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return elts, nil
}

func (p *Parser) parseTableElement() (*Node, error) {
	switch p.peek() {
	case LIKE:
		return p.parseTableLikeClause()
	case CONSTRAINT, CHECK, UNIQUE, PRIMARY, FOREIGN:
		return p.parseTableConstraint()
	}
	return p.parseColumnDef()
}

// Options of LIKE in CREATE TABLE.
const (
	createTableLikeDefaults    = 1 << 0
	createTableLikeConstraints = 1 << 1
	createTableLikeIndexes     = 1 << 2
	createTableLikeStorage     = 1 << 3
	createTableLikeComments    = 1 << 4
	createTableLikeAll         = 0x7FFFFFFF
)

// parseTableLikeClause parses LIKE table {INCLUDING|EXCLUDING option}.
func (p *Parser) parseTableLikeClause() (_ *Node, err error) {
	assert(p.peek() == LIKE)
	p.lex()
	rel, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}

	options := 0
	for p.peek() == INCLUDING || p.peek() == EXCLUDING {
		including := p.lex().Tok == INCLUDING
		var bit int
		switch p.lex().Tok {
		case DEFAULTS:
			bit = createTableLikeDefaults
		case CONSTRAINTS:
			bit = createTableLikeConstraints
		case INDEXES:
			bit = createTableLikeIndexes
		case STORAGE:
			bit = createTableLikeStorage
		case COMMENTS:
			bit = createTableLikeComments
		case ALL:
			bit = createTableLikeAll
		default:
			p.unlex()
			return nil, p.errorUnexpected()
		}
		if including {
			options |= bit
		} else {
			options &^= bit
		}
	}
	return NewNode(TableLikeClause).Set(RelationField, rel).setNonZero("options", options), nil
}

// parseColumnDef parses a column name, its type and its constraints.
func (p *Parser) parseColumnDef() (_ *Node, err error) {
	x := p.next()
	name, err := p.parseColId()
	if err != nil {
		return nil, err
	}
	typ, err := p.parseTypename()
	if err != nil {
		return nil, err
	}
	coll, constraints, err := p.parseColQualList()
	if err != nil {
		return nil, err
	}
	return NewNode(ColumnDef).
		Set("colname", Text(name)).
		Set("typeName", typ).
		Set("is_local", Boolean(true)).
		Set("collClause", coll).
		Set("constraints", constraints).
		SetLocation(x.Pos.Offset), nil
}

// parseColQualList parses the constraints and collation following a
// column type.
func (p *Parser) parseColQualList() (coll *Node, constraints List, err error) {
	for {
		x := p.next()
		switch x.Tok {
		case COLLATE:
			if coll != nil {
				return nil, nil, p.errorf(x, "multiple COLLATE clauses not allowed")
			}
			if coll, err = p.parseCollateClause(); err != nil {
				return nil, nil, err
			}
		case CONSTRAINT, NOT, NULL, UNIQUE, PRIMARY, CHECK, DEFAULT, REFERENCES, DEFERRABLE, INITIALLY:
			c, err := p.parseColConstraint()
			if err != nil {
				return nil, nil, err
			}
			constraints = append(constraints, c)
		default:
			return coll, constraints, nil
		}
	}
}

// parseCollateClause parses COLLATE name.
func (p *Parser) parseCollateClause() (_ *Node, err error) {
	x, err := p.expect(COLLATE)
	if err != nil {
		return nil, err
	}
	name, err := p.parseAnyName()
	if err != nil {
		return nil, err
	}
	return NewNode(CollateClause).Set("collname", names(name...)).SetLocation(x.Pos.Offset), nil
}

func newConstraint(typ ConstrType, loc int) *Node {
	return NewNode(Constraint).SetInt("contype", int(typ)).SetLocation(loc)
}

func setConstraintField(c *Node, name string, v Value) {
	c.setOrdered(constraintFields, name, v)
}

// parseColConstraint parses a column constraint with an optional name.
func (p *Parser) parseColConstraint() (_ *Node, err error) {
	x := p.next()
	var name string
	if p.accept(CONSTRAINT) {
		if name, err = p.parseColId(); err != nil {
			return nil, err
		}
		switch p.peek() {
		case DEFERRABLE, INITIALLY:
			return nil, p.errorUnexpected()
		case NOT:
			if p.peekN(1) == DEFERRABLE {
				return nil, p.errorUnexpected()
			}
		}
	}

	c, err := p.parseColConstraintElem()
	if err != nil {
		return nil, err
	}
	if name != "" {
		setConstraintField(c, "conname", Text(name))
		c.setField(LocationField, Integer(x.Pos.Offset))
	}
	return c, nil
}

// parseColConstraintElem parses one constraint of a column definition,
// including the DEFERRABLE and INITIALLY attributes, which stand as
// constraints of their own.
func (p *Parser) parseColConstraintElem() (_ *Node, err error) {
	x := p.lex()
	loc := x.Pos.Offset

	switch x.Tok {
	case NOT:
		switch {
		case p.accept(NULL):
			return newConstraint(ConstrNotNull, loc), nil
		case p.accept(DEFERRABLE):
			return newConstraint(ConstrAttrNotDeferrable, loc), nil
		}
		return nil, p.errorUnexpected()
	case NULL:
		return newConstraint(ConstrNull, loc), nil
	case DEFERRABLE:
		return newConstraint(ConstrAttrDeferrable, loc), nil
	case INITIALLY:
		switch {
		case p.accept(DEFERRED):
			return newConstraint(ConstrAttrDeferred, loc), nil
		case p.accept(IMMEDIATE):
			return newConstraint(ConstrAttrImmediate, loc), nil
		}
		return nil, p.errorUnexpected()
	case UNIQUE:
		return p.parseIndexConstraintTail(newConstraint(ConstrUnique, loc), false)
	case PRIMARY:
		if _, err := p.expect(KEY); err != nil {
			return nil, err
		}
		return p.parseIndexConstraintTail(newConstraint(ConstrPrimary, loc), false)
	case CHECK:
		c := newConstraint(ConstrCheck, loc)
		expr, err := p.parseCheckExpr()
		if err != nil {
			return nil, err
		}
		setConstraintField(c, "is_no_inherit", Boolean(p.acceptSeq(NO, INHERIT)))
		setConstraintField(c, "raw_expr", expr)
		setConstraintField(c, "initially_valid", Boolean(true))
		return c, nil
	case DEFAULT:
		expr, err := p.parseBExpr()
		if err != nil {
			return nil, err
		}
		c := newConstraint(ConstrDefault, loc)
		setConstraintField(c, "raw_expr", expr)
		return c, nil
	case REFERENCES:
		c := newConstraint(ConstrForeign, loc)
		if err := p.parseReferencesTail(c); err != nil {
			return nil, err
		}
		setConstraintField(c, "initially_valid", Boolean(true))
		return c, nil
	}
	p.unlex()
	return nil, p.errorUnexpected()
}

// parseBExpr parses an expression that stops before the boolean and
// predicate operators, as used in column defaults.
func (p *Parser) parseBExpr() (*Node, error) {
	return p.parseBinaryExpr(EQ.Precedence())
}

// parseCheckExpr parses the parenthesized expression of a CHECK.
func (p *Parser) parseCheckExpr() (_ *Node, err error) {
	if _, err := p.expect(LP); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseIndexConstraintTail parses the options of a UNIQUE or PRIMARY KEY
// constraint. Table constraints name their key columns.
func (p *Parser) parseIndexConstraintTail(c *Node, table bool) (_ *Node, err error) {
	if table {
		if p.acceptSeq(USING, INDEX) {
			name, err := p.parseColId()
			if err != nil {
				return nil, err
			}
			setConstraintField(c, "indexname", Text(name))
			return c, nil
		}
		keys, err := p.parseColumnList()
		if err != nil {
			return nil, err
		}
		setConstraintField(c, "keys", keys)
	}

	if p.peek() == WITH && p.peekN(1) == LP {
		p.lex()
		options, err := p.parseRelOptions()
		if err != nil {
			return nil, err
		}
		setConstraintField(c, "options", options)
	}
	if p.acceptSeq(USING, INDEX, TABLESPACE) {
		space, err := p.parseColId()
		if err != nil {
			return nil, err
		}
		setConstraintField(c, "indexspace", Text(space))
	}
	return c, nil
}

// parseReferencesTail parses the referenced table, columns, match type and
// actions of a foreign key, after REFERENCES.
func (p *Parser) parseReferencesTail(c *Node) (err error) {
	pktable, err := p.parseQualifiedName()
	if err != nil {
		return err
	}
	pkattrs, err := p.parseOptColumnList()
	if err != nil {
		return err
	}

	match := FKMatchSimple
	if x := p.next(); x.Tok == MATCH {
		p.lex()
		switch p.lex().Tok {
		case FULL:
			match = FKMatchFull
		case SIMPLE:
		case PARTIAL:
			return p.errorf(x, "MATCH PARTIAL not yet implemented")
		default:
			p.unlex()
			return p.errorUnexpected()
		}
	}

	onUpdate, onDelete := FKActionNoAction, FKActionNoAction
	var seenUpdate, seenDelete bool
	for p.accept(ON) {
		switch x := p.lex(); {
		case x.Tok == UPDATE && !seenUpdate:
			seenUpdate = true
			if onUpdate, err = p.parseKeyAction(); err != nil {
				return err
			}
		case x.Tok == DELETE && !seenDelete:
			seenDelete = true
			if onDelete, err = p.parseKeyAction(); err != nil {
				return err
			}
		default:
			return p.errorAt(x)
		}
	}

	setConstraintField(c, "pktable", pktable)
	setConstraintField(c, "pk_attrs", pkattrs)
	setConstraintField(c, "fk_matchtype", Text(match))
	setConstraintField(c, "fk_upd_action", Text(onUpdate))
	setConstraintField(c, "fk_del_action", Text(onDelete))
	return nil
}

// parseKeyAction parses the action of ON UPDATE or ON DELETE.
func (p *Parser) parseKeyAction() (string, error) {
	switch {
	case p.acceptSeq(NO, ACTION):
		return FKActionNoAction, nil
	case p.accept(RESTRICT):
		return FKActionRestrict, nil
	case p.accept(CASCADE):
		return FKActionCascade, nil
	case p.acceptSeq(SET, NULL):
		return FKActionSetNull, nil
	case p.acceptSeq(SET, DEFAULT):
		return FKActionSetDefault, nil
	}
	return "", p.errorUnexpected()
}

// parseTableConstraint parses a table constraint with an optional name.
func (p *Parser) parseTableConstraint() (_ *Node, err error) {
	x := p.next()
	var name string
	if p.accept(CONSTRAINT) {
		if name, err = p.parseColId(); err != nil {
			return nil, err
		}
	}

	var c *Node
	switch elem := p.lex(); elem.Tok {
	case CHECK:
		c = newConstraint(ConstrCheck, x.Pos.Offset)
		expr, err := p.parseCheckExpr()
		if err != nil {
			return nil, err
		}
		setConstraintField(c, "raw_expr", expr)
	case UNIQUE:
		c = newConstraint(ConstrUnique, x.Pos.Offset)
		if _, err := p.parseIndexConstraintTail(c, true); err != nil {
			return nil, err
		}
	case PRIMARY:
		if _, err := p.expect(KEY); err != nil {
			return nil, err
		}
		c = newConstraint(ConstrPrimary, x.Pos.Offset)
		if _, err := p.parseIndexConstraintTail(c, true); err != nil {
			return nil, err
		}
	case FOREIGN:
		if _, err := p.expect(KEY); err != nil {
			return nil, err
		}
		c = newConstraint(ConstrForeign, x.Pos.Offset)
		fkattrs, err := p.parseColumnList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(REFERENCES); err != nil {
			return nil, err
		}
		if err := p.parseReferencesTail(c); err != nil {
			return nil, err
		}
		setConstraintField(c, "fk_attrs", fkattrs)
	default:
		p.unlex()
		return nil, p.errorUnexpected()
	}
	setConstraintField(c, "conname", Text(name))

	attrs, err := p.parseConstraintAttributes()
	if err != nil {
		return nil, err
	}
	if err := p.applyConstraintAttributes(c, attrs); err != nil {
		return nil, err
	}
	return c, nil
}

// constraintAttrs holds the attributes that may follow a table constraint.
type constraintAttrs struct {
	deferrable   bool
	notDeferable bool
	initDeferred bool
	initImmed    bool
	notValid     bool
	noInherit    bool
	pos          Lexeme
}

// parseConstraintAttributes parses [NOT] DEFERRABLE, INITIALLY
// DEFERRED|IMMEDIATE, NOT VALID and NO INHERIT in any order.
func (p *Parser) parseConstraintAttributes() (attrs constraintAttrs, err error) {
	attrs.pos = p.next()
	for {
		x := p.next()
		switch {
		case p.accept(DEFERRABLE):
			attrs.deferrable = true
		case p.acceptSeq(NOT, DEFERRABLE):
			attrs.notDeferable = true
		case p.acceptSeq(INITIALLY, DEFERRED):
			attrs.initDeferred = true
		case p.acceptSeq(INITIALLY, IMMEDIATE):
			attrs.initImmed = true
		case p.acceptSeq(NOT, VALID):
			attrs.notValid = true
		case p.acceptSeq(NO, INHERIT):
			attrs.noInherit = true
		default:
			return attrs, nil
		}
		if (attrs.deferrable && attrs.notDeferable) || (attrs.initDeferred && attrs.initImmed) {
			return attrs, p.errorf(x, "conflicting constraint properties")
		}
		if attrs.initDeferred && attrs.notDeferable {
			return attrs, p.errorf(x, "constraint declared INITIALLY DEFERRED must be DEFERRABLE")
		}
	}
}

// applyConstraintAttributes stores attrs on c, rejecting the ones its
// constraint type does not take.
func (p *Parser) applyConstraintAttributes(c *Node, attrs constraintAttrs) error {
	typ, _ := c.Int("contype")
	label := map[ConstrType]string{
		ConstrCheck:   "CHECK",
		ConstrUnique:  "UNIQUE",
		ConstrPrimary: "PRIMARY KEY",
		ConstrForeign: "FOREIGN KEY",
	}[ConstrType(typ)]

	if attrs.deferrable || attrs.initDeferred {
		if ConstrType(typ) == ConstrCheck {
			return p.errorf(attrs.pos, "%s constraints cannot be marked DEFERRABLE", label)
		}
		setConstraintField(c, "deferrable", Boolean(true))
		setConstraintField(c, "initdeferred", Boolean(attrs.initDeferred))
	}
	if attrs.notValid {
		if ConstrType(typ) != ConstrCheck && ConstrType(typ) != ConstrForeign {
			return p.errorf(attrs.pos, "%s constraints cannot be marked NOT VALID", label)
		}
		setConstraintField(c, "skip_validation", Boolean(true))
	}
	if attrs.noInherit {
		if ConstrType(typ) != ConstrCheck {
			return p.errorf(attrs.pos, "%s constraints cannot be marked NO INHERIT", label)
		}
		setConstraintField(c, "is_no_inherit", Boolean(true))
	}
	if ConstrType(typ) == ConstrCheck || ConstrType(typ) == ConstrForeign {
		setConstraintField(c, "initially_valid", Boolean(!attrs.notValid))
	}
	return nil
}

// parseOptWith parses WITH (options), WITH OIDS or WITHOUT OIDS.
func (p *Parser) parseOptWith() (List, error) {
	switch {
	case p.acceptSeq(WITH, OIDS):
		return List{newDefElem("oids", IntegerLit(1))}, nil
	case p.acceptSeq(WITHOUT, OIDS):
		return List{newDefElem("oids", IntegerLit(0))}, nil
	case p.peek() == WITH && p.peekN(1) == LP:
		p.lex()
		return p.parseRelOptions()
	}
	return nil, nil
}

// parseOnCommitOption parses ON COMMIT DROP|DELETE ROWS|PRESERVE ROWS.
func (p *Parser) parseOnCommitOption() (int, error) {
	if !p.acceptSeq(ON, COMMIT) {
		return OnCommitNoop, nil
	}
	switch {
	case p.accept(DROP):
		return OnCommitDrop, nil
	case p.acceptSeq(DELETE, ROWS):
		return OnCommitDeleteRows, nil
	case p.acceptSeq(PRESERVE, ROWS):
		return OnCommitPreserveRows, nil
	}
	return 0, p.errorUnexpected()
}

// parseOptTableSpace parses TABLESPACE name.
func (p *Parser) parseOptTableSpace() (string, error) {
	if !p.accept(TABLESPACE) {
		return "", nil
	}
	return p.parseColId()
}

// parseRelOptions parses (name [= value], ...). A name may carry a
// namespace: ns.name.
func (p *Parser) parseRelOptions() (_ List, err error) {
	if _, err := p.expect(LP); err != nil {
		return nil, err
	}
	var options List
	for {
		name, err := p.parseColLabel()
		if err != nil {
			return nil, err
		}
		var namespace string
		if p.accept(DOT) {
			namespace = name
			if name, err = p.parseColLabel(); err != nil {
				return nil, err
			}
		}
		var arg Value
		if p.accept(EQ) {
			if arg, err = p.parseDefArg(); err != nil {
				return nil, err
			}
		}
		options = append(options, NewNode(DefElem).
			Set("defnamespace", Text(namespace)).
			Set("defname", Text(name)).
			Set("arg", arg).
			SetInt("defaction", 0))
		if !p.accept(COMMA) {
			break
		}
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return options, nil
}

// parseDefArg parses the value of a definition option: a number, a
// string, a reserved word, an operator or a type name.
func (p *Parser) parseDefArg() (Value, error) {
	x := p.next()
	switch {
	case x.Tok == SCONST:
		p.lex()
		return StringLit(x.Lit), nil
	case x.Tok == ICONST || x.Tok == FCONST:
		return p.parseNumericOnly()
	case (x.Tok == PLUS || x.Tok == MINUS) && (p.peekN(1) == ICONST || p.peekN(1) == FCONST):
		return p.parseNumericOnly()
	case x.Tok.IsOperator():
		p.lex()
		return names(x.Lit), nil
	case x.Tok.Category() == ReservedKeyword:
		p.lex()
		return StringLit(x.Lit), nil
	}
	return p.parseFuncType()
}

// parseCreateIndexStatement parses CREATE [UNIQUE] INDEX.
func (p *Parser) parseCreateIndexStatement() (_ *Node, err error) {
	unique := p.accept(UNIQUE)
	if _, err := p.expect(INDEX); err != nil {
		return nil, err
	}
	concurrent := p.accept(CONCURRENTLY)
	ifNotExists := p.parseIfNotExists()

	var name string
	if ifNotExists || p.peek() != ON {
		if name, err = p.parseColId(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(ON); err != nil {
		return nil, err
	}
	rel, err := p.parseRelationExpr()
	if err != nil {
		return nil, err
	}

	method := "btree"
	if p.accept(USING) {
		if method, err = p.parseColId(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(LP); err != nil {
		return nil, err
	}
	var params List
	for {
		elem, err := p.parseIndexElem()
		if err != nil {
			return nil, err
		}
		params = append(params, elem)
		if !p.accept(COMMA) {
			break
		}
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}

	var options List
	if p.peek() == WITH && p.peekN(1) == LP {
		p.lex()
		if options, err = p.parseRelOptions(); err != nil {
			return nil, err
		}
	}
	tablespace, err := p.parseOptTableSpace()
	if err != nil {
		return nil, err
	}
	var where *Node
	if p.accept(WHERE) {
		if where, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}

	return NewNode(IndexStmt).
		Set("idxname", Text(name)).
		Set(RelationField, rel).
		Set("accessMethod", Text(method)).
		Set("tableSpace", Text(tablespace)).
		Set("indexParams", params).
		Set("options", options).
		Set(WhereClauseField, where).
		Set("unique", Boolean(unique)).
		Set("concurrent", Boolean(concurrent)).
		Set("if_not_exists", Boolean(ifNotExists)), nil
}

// parseIndexElem parses a column, function call or parenthesized
// expression of an index, with its collation, operator class and order.
func (p *Parser) parseIndexElem() (_ *Node, err error) {
	elem := NewNode(IndexElem)
	switch tok := p.peek(); {
	case tok == LP:
		p.lex()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
		elem.Set("expr", expr)
	case isColId(tok) && p.peekN(1) != LP && p.peekN(1) != DOT:
		elem.Set("name", Text(p.lex().Lit))
	default:
		expr, err := p.parsePrimaryExpr()
		if err != nil {
			return nil, err
		}
		elem.Set("expr", expr)
	}

	if p.peek() == COLLATE {
		p.lex()
		coll, err := p.parseAnyName()
		if err != nil {
			return nil, err
		}
		elem.Set("collation", names(coll...))
	}

	opclassAhead := isColId(p.peek()) && !(p.peek() == NULLS && (p.peekN(1) == FIRST || p.peekN(1) == LAST))
	if p.accept(USING) || opclassAhead {
		opclass, err := p.parseAnyName()
		if err != nil {
			return nil, err
		}
		elem.Set("opclass", names(opclass...))
	}

	dir := SortByDefault
	switch {
	case p.accept(ASC):
		dir = SortByAsc
	case p.accept(DESC):
		dir = SortByDesc
	}
	nulls := SortByNullsDefault
	switch {
	case p.acceptSeq(NULLS, FIRST):
		nulls = SortByNullsFirst
	case p.acceptSeq(NULLS, LAST):
		nulls = SortByNullsLast
	}
	return elem.SetInt("ordering", dir).SetInt("nulls_ordering", nulls), nil
}

// parseCreateSchemaStatement parses CREATE SCHEMA with its optional
// owner and the objects created inside it.
func (p *Parser) parseCreateSchemaStatement() (_ *Node, err error) {
	assert(p.peek() == SCHEMA)
	p.lex()
	ifNotExists := p.parseIfNotExists()

	var name, authid string
	if p.peek() != AUTHORIZATION {
		if name, err = p.parseColId(); err != nil {
			return nil, err
		}
	}
	if p.accept(AUTHORIZATION) {
		if authid, err = p.parseNonReservedWord(); err != nil {
			return nil, err
		}
	} else if name == "" {
		return nil, p.errorUnexpected()
	}

	var elts List
	for {
		x := p.next()
		var elt *Node
		switch x.Tok {
		case CREATE:
			elt, err = p.parseCreateStatement()
		case GRANT:
			elt, err = p.parseGrantStatement()
		default:
			return NewNode(CreateSchemaStmt).
				Set(SchemanameField, Text(name)).
				Set("authid", Text(authid)).
				Set("schemaElts", elts).
				Set("if_not_exists", Boolean(ifNotExists)), nil
		}
		if err != nil {
			return nil, err
		}
		if ifNotExists {
			return nil, p.errorf(x, "CREATE SCHEMA IF NOT EXISTS cannot include schema elements")
		}
		elts = append(elts, elt)
	}
}

// parseCreateViewStatement parses CREATE [RECURSIVE] VIEW. A recursive
// view is stored as a recursive WITH query over the view's columns.
func (p *Parser) parseCreateViewStatement(replace bool, persistence string) (_ *Node, err error) {
	recursive := p.accept(RECURSIVE)
	if _, err := p.expect(VIEW); err != nil {
		return nil, err
	}
	view, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	view.setField("relpersistence", Text(persistence))

	var aliases List
	if recursive {
		aliases, err = p.parseColumnList()
	} else {
		aliases, err = p.parseOptColumnList()
	}
	if err != nil {
		return nil, err
	}

	var options List
	if p.peek() == WITH && p.peekN(1) == LP {
		p.lex()
		if options, err = p.parseRelOptions(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(AS); err != nil {
		return nil, err
	}
	query, err := p.parseSelectStatement()
	if err != nil {
		return nil, err
	}

	check := NoCheckOption
	x := p.next()
	switch {
	case p.acceptSeq(WITH, CHECK, OPTION), p.acceptSeq(WITH, CASCADED, CHECK, OPTION):
		check = CascadedCheckOption
	case p.acceptSeq(WITH, LOCAL, CHECK, OPTION):
		check = LocalCheckOption
	}
	if recursive {
		if check != NoCheckOption {
			return nil, p.errorf(x, "WITH CHECK OPTION not supported on recursive views")
		}
		query = recursiveViewSelect(view.Text(RelnameField), aliases, query)
	}

	return NewNode(ViewStmt).
		Set("view", view).
		Set("aliases", aliases).
		Set(QueryField, query).
		Set("replace", Boolean(replace)).
		Set("options", options).
		SetInt("withCheckOption", check), nil
}

// recursiveViewSelect returns
//
//	WITH RECURSIVE name (cols) AS (query) SELECT cols FROM name
func recursiveViewSelect(name string, cols List, query *Node) *Node {
	cte := NewNode(CommonTableExpr).
		Set("ctename", Text(name)).
		Set("aliascolnames", cols).
		Set("ctequery", query)
	with := NewNode(WithClause).Set("ctes", List{cte}).Set("recursive", Boolean(true))

	var targets List
	for _, col := range cols {
		ref := NewNode(ColumnRef).Set("fields", List{col})
		targets = append(targets, NewNode(ResTarget).Set("val", ref))
	}
	from := newRangeVar([]string{name}, InhDefault, RelPersistencePermanent, nil, -1)

	stmt := newSelect()
	setSelectField(stmt, TargetListField, targets)
	setSelectField(stmt, FromClauseField, List{from})
	setSelectField(stmt, WithClauseField, with)
	return stmt
}

// parseCreateMatViewStatement parses CREATE [UNLOGGED] MATERIALIZED VIEW.
func (p *Parser) parseCreateMatViewStatement(persistence string) (_ *Node, err error) {
	if err := p.expectSeq(MATERIALIZED, VIEW); err != nil {
		return nil, err
	}
	ifNotExists := p.parseIfNotExists()
	rel, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	rel.setField("relpersistence", Text(persistence))

	cols, err := p.parseOptColumnList()
	if err != nil {
		return nil, err
	}
	var options List
	if p.peek() == WITH && p.peekN(1) == LP {
		p.lex()
		if options, err = p.parseRelOptions(); err != nil {
			return nil, err
		}
	}
	tablespace, err := p.parseOptTableSpace()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(AS); err != nil {
		return nil, err
	}
	query, err := p.parseSelectStatement()
	if err != nil {
		return nil, err
	}
	withData := p.parseOptWithData()

	into := NewNode(IntoClause).
		Set("rel", rel).
		Set("colNames", cols).
		Set("options", options).
		SetInt("onCommit", OnCommitNoop).
		Set("tableSpaceName", Text(tablespace)).
		Set("skipData", Boolean(!withData))
	return NewNode(CreateTableAsStmt).
		Set(QueryField, query).
		Set("into", into).
		SetInt("relkind", int(ObjectMatView)).
		Set("if_not_exists", Boolean(ifNotExists)), nil
}
