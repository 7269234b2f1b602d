package pgquery

import (
	"strings"
)

func newTransactionStmt(kind TransactionStmtKind, options List, gid string) *Node {
	return NewNode(TransactionStmt).
		SetInt("kind", int(kind)).
		Set("options", options).
		Set("gid", Text(gid))
}

// parseTransactionStatement parses BEGIN, START TRANSACTION, COMMIT, END,
// ROLLBACK, ABORT, SAVEPOINT, RELEASE and the two-phase commit forms.
func (p *Parser) parseTransactionStatement() (_ *Node, err error) {
	switch x := p.lex(); x.Tok {
	case BEGIN:
		p.parseOptTransaction()
		modes, err := p.parseTransactionModeList(false)
		if err != nil {
			return nil, err
		}
		return newTransactionStmt(TransBegin, modes, ""), nil

	case START:
		if _, err := p.expect(TRANSACTION); err != nil {
			return nil, err
		}
		modes, err := p.parseTransactionModeList(false)
		if err != nil {
			return nil, err
		}
		return newTransactionStmt(TransStart, modes, ""), nil

	case COMMIT, END:
		if x.Tok == COMMIT && p.accept(PREPARED) {
			gid, err := p.parseSconst()
			if err != nil {
				return nil, err
			}
			return newTransactionStmt(TransCommitPrepared, nil, gid), nil
		}
		p.parseOptTransaction()
		return newTransactionStmt(TransCommit, nil, ""), nil

	case ROLLBACK, ABORT:
		if x.Tok == ROLLBACK && p.accept(PREPARED) {
			gid, err := p.parseSconst()
			if err != nil {
				return nil, err
			}
			return newTransactionStmt(TransRollbackPrepared, nil, gid), nil
		}
		p.parseOptTransaction()
		if x.Tok == ROLLBACK && p.accept(TO) {
			p.accept(SAVEPOINT)
			return p.parseSavepointName(TransRollbackTo)
		}
		return newTransactionStmt(TransRollback, nil, ""), nil

	case SAVEPOINT:
		return p.parseSavepointName(TransSavepoint)

	case RELEASE:
		p.accept(SAVEPOINT)
		return p.parseSavepointName(TransRelease)

	case PREPARE:
		if _, err := p.expect(TRANSACTION); err != nil {
			return nil, err
		}
		gid, err := p.parseSconst()
		if err != nil {
			return nil, err
		}
		return newTransactionStmt(TransPrepare, nil, gid), nil
	}
	p.unlex()
	return nil, p.errorUnexpected()
}

// parseOptTransaction parses an optional WORK or TRANSACTION noise word.
func (p *Parser) parseOptTransaction() {
	if !p.accept(WORK) {
		p.accept(TRANSACTION)
	}
}

func (p *Parser) parseSavepointName(kind TransactionStmtKind) (_ *Node, err error) {
	name, err := p.parseColId()
	if err != nil {
		return nil, err
	}
	return newTransactionStmt(kind, List{newDefElem("savepoint_name", StringLit(name))}, ""), nil
}

// parseTransactionModeList parses transaction modes separated by commas or
// blanks. An empty list is allowed unless required is set.
func (p *Parser) parseTransactionModeList(required bool) (_ List, err error) {
	var modes List
	for {
		x := p.next()
		var mode *Node
		switch {
		case p.acceptSeq(ISOLATION, LEVEL):
			lvl := p.next()
			var level string
			switch {
			case p.acceptSeq(READ, UNCOMMITTED):
				level = "read uncommitted"
			case p.acceptSeq(READ, COMMITTED):
				level = "read committed"
			case p.acceptSeq(REPEATABLE, READ):
				level = "repeatable read"
			case p.accept(SERIALIZABLE):
				level = "serializable"
			default:
				return nil, p.errorUnexpected()
			}
			mode = newDefElem("transaction_isolation", newStringConst(level, lvl.Pos.Offset))
		case p.acceptSeq(READ, ONLY):
			mode = newDefElem("transaction_read_only", newIntConst(1, x.Pos.Offset))
		case p.acceptSeq(READ, WRITE):
			mode = newDefElem("transaction_read_only", newIntConst(0, x.Pos.Offset))
		case p.accept(DEFERRABLE):
			mode = newDefElem("transaction_deferrable", newIntConst(1, x.Pos.Offset))
		case p.acceptSeq(NOT, DEFERRABLE):
			mode = newDefElem("transaction_deferrable", newIntConst(0, x.Pos.Offset))
		default:
			if required && len(modes) == 0 || len(modes) > 0 && p.at(p.i-1).Tok == COMMA {
				return nil, p.errorUnexpected()
			}
			return modes, nil
		}
		modes = append(modes, mode)
		p.accept(COMMA)
	}
}

// parseSetStatement parses SET [SESSION|LOCAL] and its special forms.
func (p *Parser) parseSetStatement() (_ *Node, err error) {
	assert(p.peek() == SET)
	p.lex()

	local := false
	switch {
	case p.accept(LOCAL):
		local = true
	case p.peek() == SESSION && p.peekN(1) != AUTHORIZATION && p.peekN(1) != CHARACTERISTICS:
		p.lex()
	}

	stmt, err := p.parseSetRest()
	if err != nil {
		return nil, err
	}
	return stmt.Set("is_local", Boolean(local)), nil
}

func newVariableSetStmt(kind VariableSetKind, name string, args List) *Node {
	return NewNode(VariableSetStmt).
		SetInt("kind", int(kind)).
		Set("name", Text(name)).
		Set("args", args)
}

// parseSetRest parses what follows SET [SESSION|LOCAL].
func (p *Parser) parseSetRest() (_ *Node, err error) {
	switch x := p.next(); {
	case p.acceptSeq(TRANSACTION, SNAPSHOT):
		s, err := p.expect(SCONST)
		if err != nil {
			return nil, err
		}
		return newVariableSetStmt(VarSetMulti, "TRANSACTION SNAPSHOT", List{newStringConst(s.Lit, s.Pos.Offset)}), nil

	case p.accept(TRANSACTION):
		modes, err := p.parseTransactionModeList(true)
		if err != nil {
			return nil, err
		}
		return newVariableSetStmt(VarSetMulti, "TRANSACTION", modes), nil

	case p.acceptSeq(SESSION, CHARACTERISTICS, AS, TRANSACTION):
		modes, err := p.parseTransactionModeList(true)
		if err != nil {
			return nil, err
		}
		return newVariableSetStmt(VarSetMulti, "SESSION CHARACTERISTICS", modes), nil

	case p.acceptSeq(TIME, ZONE):
		return p.parseZoneValue()

	case p.accept(CATALOG):
		if _, err := p.parseSconst(); err != nil {
			return nil, err
		}
		return nil, p.errorf(x, "current database cannot be changed")

	case p.accept(SCHEMA):
		s, err := p.expect(SCONST)
		if err != nil {
			return nil, err
		}
		return newVariableSetStmt(VarSetValue, "search_path", List{newStringConst(s.Lit, s.Pos.Offset)}), nil

	case p.accept(NAMES):
		if s := p.next(); s.Tok == SCONST {
			p.lex()
			return newVariableSetStmt(VarSetValue, "client_encoding", List{newStringConst(s.Lit, s.Pos.Offset)}), nil
		}
		p.accept(DEFAULT)
		return newVariableSetStmt(VarSetDefault, "client_encoding", nil), nil

	case p.accept(ROLE):
		return p.parseSetWord("role")

	case p.acceptSeq(SESSION, AUTHORIZATION):
		if p.accept(DEFAULT) {
			return newVariableSetStmt(VarSetDefault, "session_authorization", nil), nil
		}
		return p.parseSetWord("session_authorization")
	}

	name, err := p.parseVarName()
	if err != nil {
		return nil, err
	}
	if p.acceptSeq(FROM, CURRENT) {
		return newVariableSetStmt(VarSetCurrent, name, nil), nil
	}
	if !p.accept(TO) {
		if _, err := p.expect(EQ); err != nil {
			return nil, err
		}
	}
	if p.accept(DEFAULT) {
		return newVariableSetStmt(VarSetDefault, name, nil), nil
	}
	var args List
	for {
		v, err := p.parseVarValue()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		if !p.accept(COMMA) {
			break
		}
	}
	return newVariableSetStmt(VarSetValue, name, args), nil
}

// parseSetWord parses a non-reserved word or string constant as the single
// value of the named variable.
func (p *Parser) parseSetWord(name string) (_ *Node, err error) {
	x := p.next()
	var s string
	if x.Tok == SCONST {
		s = p.lex().Lit
	} else if s, err = p.parseNonReservedWord(); err != nil {
		return nil, err
	}
	return newVariableSetStmt(VarSetValue, name, List{newStringConst(s, x.Pos.Offset)}), nil
}

// parseVarName parses a dotted configuration variable name.
func (p *Parser) parseVarName() (string, error) {
	parts := make([]string, 0, 2)
	for {
		part, err := p.parseColId()
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
		if !p.accept(DOT) {
			return strings.Join(parts, "."), nil
		}
	}
}

// parseVarValue parses a numeric constant or a boolean or string value.
func (p *Parser) parseVarValue() (*Node, error) {
	x := p.next()
	switch x.Tok {
	case ICONST, FCONST, PLUS, MINUS:
		v, err := p.parseNumericOnly()
		if err != nil {
			return nil, err
		}
		return newAConst(v, x.Pos.Offset), nil
	}
	s, err := p.parseBooleanOrString()
	if err != nil {
		return nil, err
	}
	return newStringConst(s, x.Pos.Offset), nil
}

// parseZoneValue parses the value of SET TIME ZONE.
func (p *Parser) parseZoneValue() (_ *Node, err error) {
	x := p.next()
	var v *Node
	switch {
	case x.Tok == DEFAULT || x.Tok == LOCAL:
		p.lex()
		return newVariableSetStmt(VarSetDefault, "timezone", nil), nil
	case x.Tok == SCONST || x.Tok == IDENT:
		p.lex()
		v = newStringConst(x.Lit, x.Pos.Offset)
	case x.Tok == INTERVAL:
		if v, err = p.parseIntervalConst(); err != nil {
			return nil, err
		}
	default:
		n, err := p.parseNumericOnly()
		if err != nil {
			return nil, err
		}
		v = newAConst(n, x.Pos.Offset)
	}
	return newVariableSetStmt(VarSetValue, "timezone", List{v}), nil
}

// parseResetStatement parses RESET name and RESET ALL.
func (p *Parser) parseResetStatement() (_ *Node, err error) {
	assert(p.peek() == RESET)
	p.lex()

	if p.accept(ALL) {
		return newVariableSetStmt(VarResetAll, "", nil), nil
	}
	name, err := p.parseSpecialVarName()
	if err != nil {
		return nil, err
	}
	return newVariableSetStmt(VarReset, name, nil), nil
}

// parseSpecialVarName parses a variable name as RESET and SHOW accept it,
// including the multi-word names.
func (p *Parser) parseSpecialVarName() (string, error) {
	switch {
	case p.acceptSeq(TIME, ZONE):
		return "timezone", nil
	case p.acceptSeq(TRANSACTION, ISOLATION, LEVEL):
		return "transaction_isolation", nil
	case p.acceptSeq(SESSION, AUTHORIZATION):
		return "session_authorization", nil
	}
	return p.parseVarName()
}

// parseShowStatement parses SHOW name and SHOW ALL.
func (p *Parser) parseShowStatement() (_ *Node, err error) {
	assert(p.peek() == SHOW)
	p.lex()

	name := "all"
	if !p.accept(ALL) {
		if name, err = p.parseSpecialVarName(); err != nil {
			return nil, err
		}
	}
	return NewNode(VariableShowStmt).Set("name", Text(name)), nil
}

// lockModes lists the lock levels by their keyword sequences.
var lockModes = []struct {
	toks []Token
	mode LockMode
}{
	{[]Token{ACCESS, SHARE}, AccessShareLock},
	{[]Token{ROW, SHARE}, RowShareLock},
	{[]Token{ROW, EXCLUSIVE}, RowExclusiveLock},
	{[]Token{SHARE, UPDATE, EXCLUSIVE}, ShareUpdateExclusiveLock},
	{[]Token{SHARE, ROW, EXCLUSIVE}, ShareRowExclusiveLock},
	{[]Token{SHARE}, ShareLock},
	{[]Token{EXCLUSIVE}, ExclusiveLock},
	{[]Token{ACCESS, EXCLUSIVE}, AccessExclusiveLock},
}

// parseLockStatement parses LOCK [TABLE] relations [IN mode MODE] [NOWAIT].
func (p *Parser) parseLockStatement() (_ *Node, err error) {
	assert(p.peek() == LOCK)
	p.lex()

	p.accept(TABLE)
	rels, err := p.parseRelationExprList()
	if err != nil {
		return nil, err
	}
	mode := AccessExclusiveLock
	if p.accept(IN) {
		found := false
		for _, m := range lockModes {
			if p.acceptSeq(m.toks...) {
				mode, found = m.mode, true
				break
			}
		}
		if !found {
			return nil, p.errorUnexpected()
		}
		if _, err := p.expect(MODE); err != nil {
			return nil, err
		}
	}
	return NewNode(LockStmt).
		Set(RelationsField, rels).
		SetInt("mode", int(mode)).
		Set("nowait", Boolean(p.accept(NOWAIT))), nil
}

// parseTruncateStatement parses TRUNCATE [TABLE] relations
// [RESTART|CONTINUE IDENTITY] [CASCADE|RESTRICT].
func (p *Parser) parseTruncateStatement() (_ *Node, err error) {
	assert(p.peek() == TRUNCATE)
	p.lex()

	p.accept(TABLE)
	rels, err := p.parseRelationExprList()
	if err != nil {
		return nil, err
	}
	restart := false
	if p.acceptSeq(RESTART, IDENTITY) {
		restart = true
	} else {
		p.acceptSeq(CONTINUE, IDENTITY)
	}
	return NewNode(TruncateStmt).
		Set(RelationsField, rels).
		Set("restart_seqs", Boolean(restart)).
		SetInt("behavior", p.parseOptDropBehavior()), nil
}

// newVacuumStmt returns a VACUUM node. The freeze ages are 0 with FREEZE
// and -1 otherwise.
func newVacuumStmt(options int, rel *Node, cols List) *Node {
	age := -1
	if options&VacOptFreeze != 0 {
		age = 0
	}
	return NewNode(VacuumStmt).
		SetInt("options", options).
		setNonZero("freeze_min_age", age).
		setNonZero("freeze_table_age", age).
		Set(RelationField, rel).
		Set("va_cols", cols).
		setNonZero("multixact_freeze_min_age", age).
		setNonZero("multixact_freeze_table_age", age)
}

// parseVacuumStatement parses VACUUM with its legacy keyword options or a
// parenthesized option list, optionally followed by ANALYZE.
func (p *Parser) parseVacuumStatement() (_ *Node, err error) {
	assert(p.peek() == VACUUM)
	p.lex()

	options := VacOptVacuum
	if p.accept(LP) {
		for {
			switch p.lex().Tok {
			case ANALYZE, ANALYSE:
				options |= VacOptAnalyze
			case VERBOSE:
				options |= VacOptVerbose
			case FREEZE:
				options |= VacOptFreeze
			case FULL:
				options |= VacOptFull
			default:
				p.unlex()
				return nil, p.errorUnexpected()
			}
			if !p.accept(COMMA) {
				break
			}
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
		rel, cols, err := p.parseVacuumTarget()
		if err != nil {
			return nil, err
		}
		if cols != nil {
			options |= VacOptAnalyze
		}
		return newVacuumStmt(options, rel, cols), nil
	}

	if p.accept(FULL) {
		options |= VacOptFull
	}
	if p.accept(FREEZE) {
		options |= VacOptFreeze
	}
	if p.accept(VERBOSE) {
		options |= VacOptVerbose
	}
	if tok := p.peek(); tok == ANALYZE || tok == ANALYSE {
		analyze, err := p.parseAnalyzeStatement()
		if err != nil {
			return nil, err
		}
		opts, _ := analyze.Int("options")
		return newVacuumStmt(options|opts, analyze.Node(RelationField), analyze.List("va_cols")), nil
	}

	var rel *Node
	if isColId(p.peek()) {
		if rel, err = p.parseQualifiedName(); err != nil {
			return nil, err
		}
	}
	return newVacuumStmt(options, rel, nil), nil
}

// parseVacuumTarget parses an optional relation with an optional column
// list.
func (p *Parser) parseVacuumTarget() (rel *Node, cols List, err error) {
	if !isColId(p.peek()) {
		return nil, nil, nil
	}
	if rel, err = p.parseQualifiedName(); err != nil {
		return nil, nil, err
	}
	if cols, err = p.parseOptColumnList(); err != nil {
		return nil, nil, err
	}
	return rel, cols, nil
}

// parseAnalyzeStatement parses ANALYZE [VERBOSE] [table [(columns)]].
func (p *Parser) parseAnalyzeStatement() (_ *Node, err error) {
	assert(p.peek() == ANALYZE || p.peek() == ANALYSE)
	p.lex()

	options := VacOptAnalyze
	if p.accept(VERBOSE) {
		options |= VacOptVerbose
	}
	rel, cols, err := p.parseVacuumTarget()
	if err != nil {
		return nil, err
	}
	return newVacuumStmt(options, rel, cols), nil
}

// parseExplainStatement parses EXPLAIN with legacy or parenthesized options.
func (p *Parser) parseExplainStatement() (_ *Node, err error) {
	assert(p.peek() == EXPLAIN)
	p.lex()

	var options List
	switch tok := p.peek(); {
	case tok == ANALYZE || tok == ANALYSE:
		p.lex()
		options = append(options, newDefElem("analyze", nil))
		if p.accept(VERBOSE) {
			options = append(options, newDefElem("verbose", nil))
		}
	case tok == VERBOSE:
		p.lex()
		options = append(options, newDefElem("verbose", nil))
	case tok == LP && !p.selectAhead():
		if options, err = p.parseGenericOptionList(); err != nil {
			return nil, err
		}
		for _, opt := range options {
			if n := opt.(*Node); n.Text("defname") == "analyse" {
				n.setField("defname", Text("analyze"))
			}
		}
	}

	query, err := p.parseExplainableStatement()
	if err != nil {
		return nil, err
	}
	return NewNode(ExplainStmt).Set(QueryField, query).Set("options", options), nil
}

// parseExplainableStatement parses the statements EXPLAIN accepts.
func (p *Parser) parseExplainableStatement() (*Node, error) {
	switch p.peek() {
	case CREATE:
		i := p.i
		stmt, err := p.parseCreateStatement()
		if err != nil {
			return nil, err
		}
		if stmt.Kind != CreateTableAsStmt {
			return nil, p.errorAt(p.at(i + 1))
		}
		return stmt, nil
	case REFRESH:
		return p.parseRefreshStatement()
	}
	return p.parsePreparableStatement()
}

// parseRefreshStatement parses REFRESH MATERIALIZED VIEW [CONCURRENTLY]
// name [WITH [NO] DATA].
func (p *Parser) parseRefreshStatement() (_ *Node, err error) {
	assert(p.peek() == REFRESH)
	p.lex()

	if err := p.expectSeq(MATERIALIZED, VIEW); err != nil {
		return nil, err
	}
	concurrent := p.accept(CONCURRENTLY)
	rel, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	return NewNode(RefreshMatViewStmt).
		Set("concurrent", Boolean(concurrent)).
		Set("skipData", Boolean(!p.parseOptWithData())).
		Set(RelationField, rel), nil
}

// parseGrantStatement parses GRANT and REVOKE of privileges on objects and
// of role memberships.
func (p *Parser) parseGrantStatement() (_ *Node, err error) {
	isGrant := p.lex().Tok == GRANT

	grantOption, adminOption := false, false
	if !isGrant {
		switch {
		case p.acceptSeq(GRANT, OPTION, FOR):
			grantOption = true
		case p.acceptSeq(ADMIN, OPTION, FOR):
			adminOption = true
		}
	}

	privs, all, err := p.parsePrivileges()
	if err != nil {
		return nil, err
	}
	if p.peek() != ON {
		if all || grantOption {
			return nil, p.errorUnexpected()
		}
		return p.parseGrantRole(isGrant, adminOption, privs)
	}
	if adminOption {
		return nil, p.errorUnexpected()
	}
	p.lex()

	targtype, objtype, objects, err := p.parsePrivilegeTarget()
	if err != nil {
		return nil, err
	}
	dir := TO
	if !isGrant {
		dir = FROM
	}
	if _, err := p.expect(dir); err != nil {
		return nil, err
	}
	grantees, err := p.parseGranteeList()
	if err != nil {
		return nil, err
	}
	behavior := DropRestrict
	if isGrant {
		grantOption = p.acceptSeq(WITH, GRANT, OPTION)
	} else {
		behavior = p.parseOptDropBehavior()
	}

	return NewNode(GrantStmt).
		Set("is_grant", Boolean(isGrant)).
		SetInt("targtype", targtype).
		SetInt("objtype", int(objtype)).
		Set(ObjectsField, objects).
		Set("privileges", privs).
		Set("grantees", grantees).
		Set("grant_option", Boolean(grantOption)).
		SetInt("behavior", behavior), nil
}

// parsePrivileges parses ALL [PRIVILEGES] [(columns)] or a privilege list.
// all is set for the ALL forms.
func (p *Parser) parsePrivileges() (privs List, all bool, err error) {
	if p.accept(ALL) {
		p.accept(PRIVILEGES)
		cols, err := p.parseOptColumnList()
		if err != nil {
			return nil, false, err
		}
		if cols != nil {
			return List{NewNode(AccessPriv).Set("cols", cols)}, true, nil
		}
		return nil, true, nil
	}

	for {
		x := p.next()
		var name string
		switch {
		case x.Tok == SELECT || x.Tok == REFERENCES || x.Tok == CREATE:
			name = p.lex().Lit
		default:
			if name, err = p.parseColId(); err != nil {
				return nil, false, err
			}
		}
		cols, err := p.parseOptColumnList()
		if err != nil {
			return nil, false, err
		}
		privs = append(privs, NewNode(AccessPriv).Set("priv_name", Text(name)).Set("cols", cols))
		if !p.accept(COMMA) {
			return privs, false, nil
		}
	}
}

// parsePrivilegeTarget parses the object list after ON.
func (p *Parser) parsePrivilegeTarget() (targtype int, objtype GrantObjectType, objects List, err error) {
	targtype = AclTargetObject
	switch {
	case p.accept(TABLE):
		objtype = AclObjectRelation
		objects, err = p.parseQualifiedNameList()
	case p.accept(SEQUENCE):
		objtype = AclObjectSequence
		objects, err = p.parseQualifiedNameList()
	case p.acceptSeq(FOREIGN, DATA, WRAPPER):
		objtype = AclObjectFDW
		objects, err = p.parseNameList()
	case p.acceptSeq(FOREIGN, SERVER):
		objtype = AclObjectForeignServer
		objects, err = p.parseNameList()
	case p.accept(FUNCTION):
		objtype = AclObjectFunction
		for {
			name, args, err := p.parseFunctionWithArgTypes()
			if err != nil {
				return 0, 0, nil, err
			}
			objects = append(objects, NewNode(FuncWithArgs).Set("funcname", name).Set("funcargs", args))
			if !p.accept(COMMA) {
				break
			}
		}
	case p.accept(DATABASE):
		objtype = AclObjectDatabase
		objects, err = p.parseNameList()
	case p.accept(DOMAIN):
		objtype = AclObjectDomain
		objects, err = p.parseAnyNameList()
	case p.accept(LANGUAGE):
		objtype = AclObjectLanguage
		objects, err = p.parseNameList()
	case p.acceptSeq(LARGE, OBJECT):
		objtype = AclObjectLargeObject
		for {
			v, err := p.parseNumericOnly()
			if err != nil {
				return 0, 0, nil, err
			}
			objects = append(objects, v)
			if !p.accept(COMMA) {
				break
			}
		}
	case p.accept(SCHEMA):
		objtype = AclObjectNamespace
		objects, err = p.parseNameList()
	case p.accept(TABLESPACE):
		objtype = AclObjectTablespace
		objects, err = p.parseNameList()
	case p.accept(TYPE):
		objtype = AclObjectType
		objects, err = p.parseAnyNameList()
	case p.peek() == ALL:
		targtype = AclTargetAllInSchema
		switch {
		case p.acceptSeq(ALL, TABLES, IN, SCHEMA):
			objtype = AclObjectRelation
		case p.acceptSeq(ALL, SEQUENCES, IN, SCHEMA):
			objtype = AclObjectSequence
		case p.acceptSeq(ALL, FUNCTIONS, IN, SCHEMA):
			objtype = AclObjectFunction
		default:
			p.lex()
			return 0, 0, nil, p.errorUnexpected()
		}
		objects, err = p.parseNameList()
	default:
		objtype = AclObjectRelation
		objects, err = p.parseQualifiedNameList()
	}
	if err != nil {
		return 0, 0, nil, err
	}
	return targtype, objtype, objects, nil
}

// parseGranteeList parses [GROUP] role, ... as PRIVGRANTEE nodes. PUBLIC
// has no role name.
func (p *Parser) parseGranteeList() (_ List, err error) {
	var l List
	for {
		p.accept(GROUP)
		name, err := p.parseNonReservedWord()
		if err != nil {
			return nil, err
		}
		if name == "public" {
			name = ""
		}
		l = append(l, NewNode(PrivGrantee).Set("rolname", Text(name)))
		if !p.accept(COMMA) {
			return l, nil
		}
	}
}

// parseGrantRole parses the rest of GRANT roles TO members and REVOKE
// roles FROM members.
func (p *Parser) parseGrantRole(isGrant, adminOption bool, roles List) (_ *Node, err error) {
	for _, r := range roles {
		if r.(*Node).Has("cols") {
			return nil, p.errorUnexpected()
		}
	}
	dir := TO
	if !isGrant {
		dir = FROM
	}
	if _, err := p.expect(dir); err != nil {
		return nil, err
	}
	members, err := p.parseNameList()
	if err != nil {
		return nil, err
	}
	if isGrant {
		adminOption = p.acceptSeq(WITH, ADMIN, OPTION)
	}
	var grantor string
	if p.acceptSeq(GRANTED, BY) {
		if grantor, err = p.parseNonReservedWord(); err != nil {
			return nil, err
		}
	}
	behavior := DropRestrict
	if !isGrant {
		behavior = p.parseOptDropBehavior()
	}
	return NewNode(GrantRoleStmt).
		Set("granted_roles", roles).
		Set("grantee_roles", members).
		Set("is_grant", Boolean(isGrant)).
		Set("admin_opt", Boolean(adminOption)).
		Set("grantor", Text(grantor)).
		SetInt("behavior", behavior), nil
}
