package pgquery

// selectFields is the field order of a SELECT node.
var selectFields = []string{
	"distinctClause", "intoClause", TargetListField, FromClauseField,
	WhereClauseField, "groupClause", "havingClause", "windowClause",
	ValuesListsField, SortClauseField, "limitOffset", "limitCount",
	"lockingClause", WithClauseField, "op", "all", LeftArgField, RightArgField,
}

func newSelect() *Node {
	return NewNode(SelectStmt).SetInt("op", SetOpNone)
}

func setSelectField(n *Node, name string, v Value) {
	n.setOrdered(selectFields, name, v)
}

// parseSelectStatement parses a query with its ORDER BY, LIMIT, locking
// and WITH clauses. It also accepts a parenthesized query.
func (p *Parser) parseSelectStatement() (_ *Node, err error) {
	var with *Node
	withPos := p.next()
	if p.peek() == WITH {
		if with, err = p.parseWithClause(); err != nil {
			return nil, err
		}
	}

	stmt, err := p.parseSetExpr(1)
	if err != nil {
		return nil, err
	}

	var sort List
	sortPos := p.next()
	if p.acceptSeq(ORDER, BY) {
		if sort, err = p.parseSortList(); err != nil {
			return nil, err
		}
	}

	var offset, limit *Node
	var locking List
	var offsetPos, limitPos, lockingPos Lexeme
	for {
		x := p.next()
		switch x.Tok {
		case LIMIT:
			if limit != nil {
				return nil, p.errorf(x, "multiple LIMIT clauses not allowed")
			}
			if limit, err = p.parseLimitClause(); err != nil {
				return nil, err
			}
			limitPos = x
			continue
		case FETCH:
			if limit != nil {
				return nil, p.errorf(x, "multiple LIMIT clauses not allowed")
			}
			if limit, err = p.parseFetchClause(); err != nil {
				return nil, err
			}
			limitPos = x
			continue
		case OFFSET:
			if offset != nil {
				return nil, p.errorf(x, "multiple OFFSET clauses not allowed")
			}
			p.lex()
			if offset, err = p.parseExpr(); err != nil {
				return nil, err
			}
			if !p.accept(ROW) {
				p.accept(ROWS)
			}
			offsetPos = x
			continue
		case FOR:
			if p.acceptSeq(FOR, READ, ONLY) {
				continue
			}
			lc, err := p.parseLockingClause()
			if err != nil {
				return nil, err
			}
			locking = append(locking, lc)
			lockingPos = x
			continue
		}
		break
	}

	if err := p.insertSelectOptions(stmt, sort, sortPos, locking, lockingPos, offset, offsetPos, limit, limitPos, with, withPos); err != nil {
		return nil, err
	}
	return stmt, nil
}

// insertSelectOptions attaches the trailing clauses to stmt. A clause may
// not be given both inside and outside parentheses.
func (p *Parser) insertSelectOptions(stmt *Node, sort List, sortPos Lexeme, locking List, lockingPos Lexeme,
	offset *Node, offsetPos Lexeme, limit *Node, limitPos Lexeme, with *Node, withPos Lexeme) error {
	type option struct {
		name string
		v    Value
		pos  Lexeme
		msg  string
	}
	options := []option{
		{SortClauseField, sort, sortPos, "multiple ORDER BY clauses not allowed"},
		{"lockingClause", locking, lockingPos, ""},
		{"limitOffset", offset, offsetPos, "multiple OFFSET clauses not allowed"},
		{"limitCount", limit, limitPos, "multiple LIMIT clauses not allowed"},
		{WithClauseField, with, withPos, "multiple WITH clauses not allowed"},
	}
	for _, o := range options {
		if absent(o.v) {
			continue
		}
		if o.name == "lockingClause" {
			setSelectField(stmt, o.name, append(stmt.List(o.name), o.v.(List)...))
			continue
		}
		if stmt.Has(o.name) {
			return p.errorf(o.pos, "%s", o.msg)
		}
		setSelectField(stmt, o.name, o.v)
	}
	return nil
}

// parseSelectWithParens parses a parenthesized query.
func (p *Parser) parseSelectWithParens() (_ *Node, err error) {
	if _, err := p.expect(LP); err != nil {
		return nil, err
	}
	stmt, err := p.parseSelectStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseSetExpr parses queries joined by UNION, INTERSECT and EXCEPT.
// INTERSECT binds tighter than UNION and EXCEPT.
func (p *Parser) parseSetExpr(prec1 int) (_ *Node, err error) {
	x, err := p.parseSelectPrimary()
	if err != nil {
		return nil, err
	}
	for {
		var op, prec int
		switch p.peek() {
		case UNION:
			op, prec = SetOpUnion, 1
		case EXCEPT:
			op, prec = SetOpExcept, 1
		case INTERSECT:
			op, prec = SetOpIntersect, 2
		default:
			return x, nil
		}
		if prec < prec1 {
			return x, nil
		}
		p.lex()
		all := p.accept(ALL)
		if !all {
			p.accept(DISTINCT)
		}
		y, err := p.parseSetExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		n := NewNode(SelectStmt)
		setSelectField(n, "op", Integer(op))
		setSelectField(n, "all", Boolean(all))
		setSelectField(n, LeftArgField, x)
		setSelectField(n, RightArgField, y)
		x = n
	}
}

// parseSelectPrimary parses a simple SELECT, VALUES, TABLE or a
// parenthesized query.
func (p *Parser) parseSelectPrimary() (*Node, error) {
	switch p.peek() {
	case LP:
		return p.parseSelectWithParens()
	case SELECT:
		return p.parseSimpleSelect()
	case VALUES:
		return p.parseValuesClause()
	case TABLE:
		p.lex()
		rel, err := p.parseRelationExpr()
		if err != nil {
			return nil, err
		}
		star := NewNode(ColumnRef).Set("fields", List{NewNode(AStar)})
		n := newSelect()
		setSelectField(n, TargetListField, List{NewNode(ResTarget).Set("val", star)})
		setSelectField(n, FromClauseField, List{rel})
		return n, nil
	}
	return nil, p.errorUnexpected()
}

// targetListEnd returns true if tok ends an empty target list.
func targetListEnd(tok Token) bool {
	switch tok {
	case FROM, WHERE, GROUP, HAVING, WINDOW, INTO, UNION, INTERSECT, EXCEPT,
		ORDER, LIMIT, OFFSET, FETCH, FOR, RP, SEMI, EOF:
		return true
	}
	return false
}

func (p *Parser) parseSimpleSelect() (_ *Node, err error) {
	assert(p.peek() == SELECT)
	p.lex()

	n := newSelect()

	switch p.peek() {
	case DISTINCT:
		p.lex()
		distinct := List{(*Node)(nil)}
		if p.acceptSeq(ON) {
			if distinct, err = p.parseParenExprList(); err != nil {
				return nil, err
			}
		}
		setSelectField(n, "distinctClause", distinct)
		targets, err := p.parseTargetList()
		if err != nil {
			return nil, err
		}
		setSelectField(n, TargetListField, targets)
	default:
		p.accept(ALL)
		if !targetListEnd(p.peek()) {
			targets, err := p.parseTargetList()
			if err != nil {
				return nil, err
			}
			setSelectField(n, TargetListField, targets)
		}
	}

	if p.accept(INTO) {
		into, err := p.parseIntoTarget()
		if err != nil {
			return nil, err
		}
		setSelectField(n, "intoClause", into)
	}

	if p.accept(FROM) {
		from, err := p.parseFromList()
		if err != nil {
			return nil, err
		}
		setSelectField(n, FromClauseField, from)
	}

	if p.accept(WHERE) {
		where, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		setSelectField(n, WhereClauseField, where)
	}

	if p.acceptSeq(GROUP, BY) {
		group, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		setSelectField(n, "groupClause", group)
	}

	if p.accept(HAVING) {
		having, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		setSelectField(n, "havingClause", having)
	}

	if p.accept(WINDOW) {
		var windows List
		for {
			name, err := p.parseColId()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(AS); err != nil {
				return nil, err
			}
			w, err := p.parseWindowSpecification(name)
			if err != nil {
				return nil, err
			}
			windows = append(windows, w)
			if !p.accept(COMMA) {
				break
			}
		}
		setSelectField(n, "windowClause", windows)
	}
	return n, nil
}

// parseIntoTarget parses the table of SELECT ... INTO.
func (p *Parser) parseIntoTarget() (_ *Node, err error) {
	persistence, err := p.parseOptTemp()
	if err != nil {
		return nil, err
	}
	p.accept(TABLE)
	rel, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	rel.setField("relpersistence", Text(persistence))
	return NewNode(IntoClause).Set("rel", rel).SetInt("onCommit", OnCommitNoop), nil
}

// parseOptTemp parses the optional persistence of a new table. GLOBAL is
// accepted with a warning.
func (p *Parser) parseOptTemp() (string, error) {
	switch x := p.next(); x.Tok {
	case TEMPORARY, TEMP:
		p.lex()
		return RelPersistenceTemp, nil
	case LOCAL, GLOBAL:
		if t := p.peekN(1); t != TEMPORARY && t != TEMP {
			return "", p.errorAt(p.at(p.i + 1))
		}
		p.i += 2
		if x.Tok == GLOBAL {
			p.warn(x.Pos.Offset, "GLOBAL is deprecated in temporary table creation")
		}
		return RelPersistenceTemp, nil
	case UNLOGGED:
		p.lex()
		return RelPersistenceUnlogged, nil
	}
	return RelPersistencePermanent, nil
}

// parseTargetList parses the output columns of a SELECT or RETURNING.
func (p *Parser) parseTargetList() (_ List, err error) {
	var l List
	for {
		target, err := p.parseTarget()
		if err != nil {
			return nil, err
		}
		l = append(l, target)
		if !p.accept(COMMA) {
			return l, nil
		}
	}
}

func (p *Parser) parseTarget() (_ *Node, err error) {
	x := p.next()
	loc := x.Pos.Offset
	if x.Tok == STAR {
		p.lex()
		star := NewNode(ColumnRef).Set("fields", List{NewNode(AStar)}).SetLocation(loc)
		return NewNode(ResTarget).Set("val", star).SetLocation(loc), nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var name string
	switch {
	case p.accept(AS):
		if name, err = p.parseColLabel(); err != nil {
			return nil, err
		}
	case p.peek() == IDENT:
		name = p.lex().Lit
	}
	return NewNode(ResTarget).Set("name", Text(name)).Set("val", expr).SetLocation(loc), nil
}

// parseValuesClause parses VALUES (row), ... into a SELECT.
func (p *Parser) parseValuesClause() (_ *Node, err error) {
	assert(p.peek() == VALUES)
	p.lex()

	var lists List
	for {
		row, err := p.parseValuesRow()
		if err != nil {
			return nil, err
		}
		lists = append(lists, row)
		if !p.accept(COMMA) {
			break
		}
	}
	n := newSelect()
	setSelectField(n, ValuesListsField, lists)
	return n, nil
}

// parseValuesRow parses a parenthesized list of expressions or DEFAULT.
func (p *Parser) parseValuesRow() (_ List, err error) {
	if _, err := p.expect(LP); err != nil {
		return nil, err
	}
	var row List
	for {
		v, err := p.parseExprOrDefault()
		if err != nil {
			return nil, err
		}
		row = append(row, v)
		if !p.accept(COMMA) {
			break
		}
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return row, nil
}

func (p *Parser) parseExprOrDefault() (*Node, error) {
	if x := p.next(); x.Tok == DEFAULT {
		p.lex()
		return NewNode(SetToDefault).SetLocation(x.Pos.Offset), nil
	}
	return p.parseExpr()
}

// parseLimitClause parses LIMIT count or LIMIT ALL.
func (p *Parser) parseLimitClause() (_ *Node, err error) {
	p.lex()
	if x := p.next(); x.Tok == ALL {
		p.lex()
		return newAConst(NullLit{}, x.Pos.Offset), nil
	}
	limit, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if x := p.next(); x.Tok == COMMA {
		return nil, p.errorf(x, "LIMIT #,# syntax is not supported")
	}
	return limit, nil
}

// parseFetchClause parses FETCH FIRST|NEXT [count] ROW|ROWS ONLY.
func (p *Parser) parseFetchClause() (_ *Node, err error) {
	p.lex()
	if !p.accept(FIRST) {
		if _, err := p.expect(NEXT); err != nil {
			return nil, err
		}
	}
	var count *Node
	switch p.peek() {
	case ROW, ROWS:
		count = newIntConst(1, -1)
	default:
		if count, err = p.parseBinaryExpr(UnaryPrec); err != nil {
			return nil, err
		}
	}
	if !p.accept(ROW) {
		if _, err := p.expect(ROWS); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(ONLY); err != nil {
		return nil, err
	}
	return count, nil
}

// parseLockingClause parses FOR UPDATE|NO KEY UPDATE|SHARE|KEY SHARE
// [OF tables] [NOWAIT].
func (p *Parser) parseLockingClause() (_ *Node, err error) {
	p.lex()
	var strength int
	switch {
	case p.accept(UPDATE):
		strength = LCSForUpdate
	case p.acceptSeq(NO, KEY, UPDATE):
		strength = LCSForNoKeyUpdate
	case p.accept(SHARE):
		strength = LCSForShare
	case p.acceptSeq(KEY, SHARE):
		strength = LCSForKeyShare
	default:
		return nil, p.errorUnexpected()
	}
	var rels List
	if p.accept(OF) {
		if rels, err = p.parseQualifiedNameList(); err != nil {
			return nil, err
		}
	}
	nowait := p.accept(NOWAIT)
	return NewNode(LockingClause).
		Set("lockedRels", rels).
		SetInt("strength", strength).
		Set("noWait", Boolean(nowait)), nil
}

// parseWithClause parses WITH [RECURSIVE] name [(cols)] AS (query), ...
func (p *Parser) parseWithClause() (_ *Node, err error) {
	assert(p.peek() == WITH)
	p.lex()
	recursive := p.accept(RECURSIVE)

	var ctes List
	for {
		x := p.next()
		name, err := p.parseColId()
		if err != nil {
			return nil, err
		}
		cols, err := p.parseOptColumnList()
		if err != nil {
			return nil, err
		}
		if err := p.expectSeq(AS, LP); err != nil {
			return nil, err
		}
		query, err := p.parsePreparableStatement()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
		ctes = append(ctes, NewNode(CommonTableExpr).
			Set("ctename", Text(name)).
			Set("aliascolnames", cols).
			Set("ctequery", query).
			SetLocation(x.Pos.Offset))
		if !p.accept(COMMA) {
			break
		}
	}
	return NewNode(WithClause).Set("ctes", ctes).Set("recursive", Boolean(recursive)), nil
}

// parsePreparableStatement parses a query or a data-modifying statement.
func (p *Parser) parsePreparableStatement() (*Node, error) {
	switch p.peek() {
	case INSERT:
		return p.parseInsertStatement(nil)
	case UPDATE:
		return p.parseUpdateStatement(nil)
	case DELETE:
		return p.parseDeleteStatement(nil)
	case WITH:
		return p.parseWithStatement()
	}
	return p.parseSelectStatement()
}

// parseFromList parses the comma separated items of a FROM clause.
func (p *Parser) parseFromList() (_ List, err error) {
	var l List
	for {
		ref, err := p.parseTableRef()
		if err != nil {
			return nil, err
		}
		l = append(l, ref)
		if !p.accept(COMMA) {
			return l, nil
		}
	}
}

// joinAhead returns true if the next lexemes start a join.
func (p *Parser) joinAhead() bool {
	switch p.peek() {
	case JOIN, INNER, LEFT, RIGHT, FULL, CROSS, NATURAL:
		return true
	}
	return false
}

// parseTableRef parses a FROM item with any joins that follow it.
func (p *Parser) parseTableRef() (_ *Node, err error) {
	x, err := p.parseTableRefPrimary()
	if err != nil {
		return nil, err
	}
	for p.joinAhead() {
		if x, err = p.parseJoin(x); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// parseJoin parses one join with left as its left side.
func (p *Parser) parseJoin(left *Node) (_ *Node, err error) {
	if p.acceptSeq(CROSS, JOIN) {
		right, err := p.parseTableRefPrimary()
		if err != nil {
			return nil, err
		}
		return newJoinExpr(JoinInner, false, left, right, nil, nil), nil
	}

	natural := p.accept(NATURAL)
	jointype := JoinInner
	switch {
	case p.accept(INNER):
	case p.accept(LEFT):
		jointype = JoinLeft
		p.accept(OUTER)
	case p.accept(RIGHT):
		jointype = JoinRight
		p.accept(OUTER)
	case p.accept(FULL):
		jointype = JoinFull
		p.accept(OUTER)
	}
	if _, err := p.expect(JOIN); err != nil {
		return nil, err
	}

	right, err := p.parseTableRefPrimary()
	if err != nil {
		return nil, err
	}
	if natural {
		return newJoinExpr(jointype, true, left, right, nil, nil), nil
	}
	for p.joinAhead() {
		if right, err = p.parseJoin(right); err != nil {
			return nil, err
		}
	}

	switch p.peek() {
	case USING:
		p.lex()
		cols, err := p.parseColumnList()
		if err != nil {
			return nil, err
		}
		return newJoinExpr(jointype, false, left, right, cols, nil), nil
	case ON:
		p.lex()
		quals, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return newJoinExpr(jointype, false, left, right, nil, quals), nil
	}
	return nil, p.errorUnexpected()
}

func newJoinExpr(jointype int, natural bool, left, right *Node, using List, quals *Node) *Node {
	return NewNode(JoinExpr).
		SetInt("jointype", jointype).
		Set("isNatural", Boolean(natural)).
		Set(LeftArgField, left).
		Set(RightArgField, right).
		Set("usingClause", using).
		Set("quals", quals)
}

// funcAhead returns true if the next lexemes are a possibly qualified
// name followed by an opening parenthesis.
func (p *Parser) funcAhead() bool {
	if !isColLabel(p.peek()) {
		return false
	}
	i := 1
	for p.peekN(i) == DOT && isColLabel(p.peekN(i+1)) {
		i += 2
	}
	return p.peekN(i) == LP
}

// parseTableRefPrimary parses a relation, a function, a subquery or a
// parenthesized join, with its alias.
func (p *Parser) parseTableRefPrimary() (_ *Node, err error) {
	lateral := p.accept(LATERAL)
	x := p.next()

	if x.Tok == LP {
		if sub, ok, subErr := p.trySubselect(); ok {
			alias, err := p.parseOptAliasClause()
			if err != nil {
				return nil, err
			}
			if alias == nil {
				return nil, p.errorf(x, "subquery in FROM must have an alias")
			}
			return NewNode(RangeSubselect).
				Set("lateral", Boolean(lateral)).
				Set(SubselectField, sub).
				Set("alias", alias), nil
		} else if subErr != nil {
			defer func() { err = laterError(err, subErr) }()
		}
		if lateral {
			return nil, p.errorUnexpected()
		}

		p.lex()
		join, err := p.parseTableRef()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
		if join.Kind != JoinExpr {
			return nil, p.errorAt(p.at(p.i - 1))
		}
		alias, err := p.parseOptAliasClause()
		if err != nil {
			return nil, err
		}
		join.Set("alias", alias)
		return join, nil
	}

	if p.funcAhead() {
		return p.parseRangeFunction(lateral)
	}
	if lateral {
		return nil, p.errorUnexpected()
	}

	rel, err := p.parseRelationExpr()
	if err != nil {
		return nil, err
	}
	alias, err := p.parseOptAliasClause()
	if err != nil {
		return nil, err
	}
	if alias != nil {
		setAlias(rel, alias)
	}
	return rel, nil
}

// parseRangeFunction parses a function call used as a FROM item.
func (p *Parser) parseRangeFunction(lateral bool) (_ *Node, err error) {
	fn, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	ordinality := p.acceptSeq(WITH, ORDINALITY)
	alias, err := p.parseOptAliasClause()
	if err != nil {
		return nil, err
	}
	return NewNode(RangeFunction).
		Set("lateral", Boolean(lateral)).
		Set("ordinality", Boolean(ordinality)).
		Set("functions", List{List{fn, (*Node)(nil)}}).
		Set("alias", alias), nil
}

// parseOptAliasClause parses [AS] name [(columns)].
func (p *Parser) parseOptAliasClause() (_ *Node, err error) {
	if !p.accept(AS) && !isColId(p.peek()) {
		return nil, nil
	}
	name, err := p.parseColId()
	if err != nil {
		return nil, err
	}
	cols, err := p.parseOptColumnList()
	if err != nil {
		return nil, err
	}
	return NewNode(Alias).Set("aliasname", Text(name)).Set("colnames", cols), nil
}

// parseReturningClause parses an optional RETURNING target list.
func (p *Parser) parseReturningClause() (List, error) {
	if !p.accept(RETURNING) {
		return nil, nil
	}
	return p.parseTargetList()
}
