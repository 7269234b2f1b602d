package pgquery

// parseCreateFunctionStatement parses CREATE [OR REPLACE] FUNCTION.
func (p *Parser) parseCreateFunctionStatement(replace bool) (_ *Node, err error) {
	assert(p.peek() == FUNCTION)
	p.lex()

	name, err := p.parseFuncName()
	if err != nil {
		return nil, err
	}
	params, err := p.parseFuncArgs(true)
	if err != nil {
		return nil, err
	}

	var returnType *Node
	if p.peek() == RETURNS && p.peekN(1) != NULL {
		p.lex()
		if x := p.next(); x.Tok == TABLE {
			p.lex()
			cols, err := p.parseTableFuncColumns()
			if err != nil {
				return nil, err
			}
			params = append(params, cols...)
			returnType = tableFuncTypeName(cols, x.Pos.Offset)
		} else if returnType, err = p.parseFuncType(); err != nil {
			return nil, err
		}
	}

	options, err := p.parseCreateFuncOptions()
	if err != nil {
		return nil, err
	}
	var with List
	if p.peek() == WITH && p.peekN(1) == LP {
		p.lex()
		if with, err = p.parseRelOptions(); err != nil {
			return nil, err
		}
	}

	return NewNode(CreateFunctionStmt).
		Set("replace", Boolean(replace)).
		Set("funcname", name).
		Set("parameters", params).
		Set("returnType", returnType).
		Set("options", options).
		Set(WithClauseField, with), nil
}

// parseFuncArgs parses a parenthesized, possibly empty parameter list.
// Defaults are only allowed in CREATE FUNCTION.
func (p *Parser) parseFuncArgs(defaults bool) (_ List, err error) {
	if _, err := p.expect(LP); err != nil {
		return nil, err
	}
	if p.accept(RP) {
		return nil, nil
	}
	var params List
	for {
		param, err := p.parseFunctionParameter(defaults)
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.accept(COMMA) {
			break
		}
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return params, nil
}

// parseFunctionParameter parses [mode] [name] [mode] type [DEFAULT expr].
func (p *Parser) parseFunctionParameter(defaults bool) (_ *Node, err error) {
	mode, hasMode := p.parseArgClass()

	var name string
	if p.paramNameAhead() {
		name = p.lex().Lit
		if !hasMode {
			mode, _ = p.parseArgClass()
		}
	}
	typ, err := p.parseFuncType()
	if err != nil {
		return nil, err
	}

	var def *Node
	if defaults && (p.accept(DEFAULT) || p.accept(EQ)) {
		if def, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	return NewNode(FunctionParameter).
		Set("name", Text(name)).
		Set("argType", typ).
		SetInt("mode", mode).
		Set("defexpr", def), nil
}

// parseArgClass parses IN, OUT, INOUT, IN OUT or VARIADIC.
func (p *Parser) parseArgClass() (mode int, ok bool) {
	switch p.peek() {
	case IN:
		p.lex()
		if p.accept(OUT) {
			return FuncParamInOut, true
		}
		return FuncParamIn, true
	case OUT:
		p.lex()
		return FuncParamOut, true
	case INOUT:
		p.lex()
		return FuncParamInOut, true
	case VARIADIC:
		p.lex()
		return FuncParamVariadic, true
	}
	return FuncParamIn, false
}

// paramNameAhead reports whether the next word names a parameter rather
// than starting its type.
func (p *Parser) paramNameAhead() bool {
	if !isTypeFunctionName(p.peek()) {
		return false
	}
	switch next := p.peekN(1); next {
	case IN, OUT, INOUT, VARIADIC:
		return true
	default:
		return isTypeStart(next)
	}
}

// parseTableFuncColumns parses the (name type, ...) of RETURNS TABLE.
func (p *Parser) parseTableFuncColumns() (_ List, err error) {
	if _, err := p.expect(LP); err != nil {
		return nil, err
	}
	var cols List
	for {
		name, err := p.parseNonReservedWord()
		if err != nil {
			return nil, err
		}
		typ, err := p.parseFuncType()
		if err != nil {
			return nil, err
		}
		cols = append(cols, NewNode(FunctionParameter).
			Set("name", Text(name)).
			Set("argType", typ).
			SetInt("mode", FuncParamTable))
		if !p.accept(COMMA) {
			break
		}
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return cols, nil
}

// tableFuncTypeName returns the result type of RETURNS TABLE: a set of the
// single column's type, or a set of records.
func tableFuncTypeName(cols List, loc int) *Node {
	var typ *Node
	if len(cols) == 1 {
		typ = cols[0].(*Node).Node("argType").Clone()
	} else {
		typ = systemTypeName("record", nil, -1)
	}
	typ.insertAfter("names", "setof", Boolean(true))
	if !typ.setField(LocationField, Integer(loc)) {
		typ.SetLocation(loc)
	}
	return typ
}

// parseCreateFuncOptions parses the body and attributes of a function.
// At least one is required.
func (p *Parser) parseCreateFuncOptions() (_ List, err error) {
	var options List
	for {
		x := p.next()
		var opt *Node
		switch {
		case p.accept(AS):
			body, err := p.parseSconst()
			if err != nil {
				return nil, err
			}
			as := List{StringLit(body)}
			if p.accept(COMMA) {
				symbol, err := p.parseSconst()
				if err != nil {
					return nil, err
				}
				as = append(as, StringLit(symbol))
			}
			opt = newDefElem("as", as)
		case p.accept(LANGUAGE):
			var lang string
			if p.peek() == SCONST {
				lang = p.lex().Lit
			} else if lang, err = p.parseNonReservedWord(); err != nil {
				return nil, err
			}
			opt = newDefElem("language", StringLit(lang))
		case p.accept(WINDOW):
			opt = newDefElem("window", IntegerLit(1))
		case p.acceptSeq(CALLED, ON, NULL, INPUT):
			opt = newDefElem("strict", IntegerLit(0))
		case p.acceptSeq(RETURNS, NULL, ON, NULL, INPUT), p.accept(STRICT):
			opt = newDefElem("strict", IntegerLit(1))
		case x.Tok == IMMUTABLE || x.Tok == STABLE || x.Tok == VOLATILE:
			p.lex()
			opt = newDefElem("volatility", StringLit(x.Lit))
		case p.acceptSeq(EXTERNAL, SECURITY, DEFINER), p.acceptSeq(SECURITY, DEFINER):
			opt = newDefElem("security", IntegerLit(1))
		case p.acceptSeq(EXTERNAL, SECURITY, INVOKER), p.acceptSeq(SECURITY, INVOKER):
			opt = newDefElem("security", IntegerLit(0))
		case p.accept(LEAKPROOF):
			opt = newDefElem("leakproof", IntegerLit(1))
		case p.acceptSeq(NOT, LEAKPROOF):
			opt = newDefElem("leakproof", IntegerLit(0))
		case p.accept(COST):
			n, err := p.parseNumericOnly()
			if err != nil {
				return nil, err
			}
			opt = newDefElem("cost", n)
		case p.accept(ROWS):
			n, err := p.parseNumericOnly()
			if err != nil {
				return nil, err
			}
			opt = newDefElem("rows", n)
		default:
			if len(options) == 0 {
				return nil, p.errorUnexpected()
			}
			return options, nil
		}
		options = append(options, opt)
	}
}

// parseFunctionWithArgTypes parses name(args) as used to refer to an
// existing function and returns the name and the input argument types.
func (p *Parser) parseFunctionWithArgTypes() (name, argTypes List, err error) {
	if name, err = p.parseFuncName(); err != nil {
		return nil, nil, err
	}
	params, err := p.parseFuncArgs(false)
	if err != nil {
		return nil, nil, err
	}
	return name, extractArgTypes(params), nil
}

// extractArgTypes returns the types of the parameters that are not
// output-only.
func extractArgTypes(params List) List {
	var types List
	for _, v := range params {
		param := v.(*Node)
		if mode, _ := param.Int("mode"); mode == FuncParamOut {
			continue
		}
		types = append(types, param.Node("argType"))
	}
	return types
}

// parseCreateTriggerStatement parses CREATE [CONSTRAINT] TRIGGER.
func (p *Parser) parseCreateTriggerStatement() (_ *Node, err error) {
	isConstraint := p.accept(CONSTRAINT)
	if _, err := p.expect(TRIGGER); err != nil {
		return nil, err
	}
	name, err := p.parseColId()
	if err != nil {
		return nil, err
	}

	timing := 0
	switch {
	case isConstraint:
		if _, err := p.expect(AFTER); err != nil {
			return nil, err
		}
	case p.accept(BEFORE):
		timing = TriggerTypeBefore
	case p.accept(AFTER):
	case p.acceptSeq(INSTEAD, OF):
		timing = TriggerTypeInstead
	default:
		return nil, p.errorUnexpected()
	}

	events, columns, err := p.parseTriggerEvents()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ON); err != nil {
		return nil, err
	}
	rel, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}

	var constrrel *Node
	var attrs constraintAttrs
	if isConstraint {
		if p.accept(FROM) {
			if constrrel, err = p.parseQualifiedName(); err != nil {
				return nil, err
			}
		}
		if attrs, err = p.parseConstraintAttributes(); err != nil {
			return nil, err
		}
		if attrs.notValid {
			return nil, p.errorf(attrs.pos, "TRIGGER constraints cannot be marked NOT VALID")
		}
		if attrs.noInherit {
			return nil, p.errorf(attrs.pos, "TRIGGER constraints cannot be marked NO INHERIT")
		}
	}

	row := false
	if p.accept(FOR) {
		p.accept(EACH)
		switch {
		case p.accept(ROW):
			row = true
		case p.accept(STATEMENT):
		default:
			return nil, p.errorUnexpected()
		}
	}
	if isConstraint && !row {
		return nil, p.errorUnexpected()
	}

	var when *Node
	if p.accept(WHEN) {
		if when, err = p.parseCheckExpr(); err != nil {
			return nil, err
		}
	}

	if err := p.expectSeq(EXECUTE, PROCEDURE); err != nil {
		return nil, err
	}
	funcname, err := p.parseFuncName()
	if err != nil {
		return nil, err
	}
	args, err := p.parseTriggerFuncArgs()
	if err != nil {
		return nil, err
	}

	return NewNode(CreateTrigStmt).
		Set("trigname", Text(name)).
		Set(RelationField, rel).
		Set("funcname", funcname).
		Set("args", args).
		Set("row", Boolean(row)).
		setNonZero("timing", timing).
		setNonZero("events", events).
		Set("columns", columns).
		Set("whenClause", when).
		Set("isconstraint", Boolean(isConstraint)).
		Set("deferrable", Boolean(attrs.deferrable || attrs.initDeferred)).
		Set("initdeferred", Boolean(attrs.initDeferred)).
		Set("constrrel", constrrel), nil
}

// parseTriggerEvents parses event [OR event ...]. UPDATE may name columns.
func (p *Parser) parseTriggerEvents() (events int, columns List, err error) {
	for {
		x := p.lex()
		var bit int
		switch x.Tok {
		case INSERT:
			bit = TriggerTypeInsert
		case DELETE:
			bit = TriggerTypeDelete
		case TRUNCATE:
			bit = TriggerTypeTruncate
		case UPDATE:
			bit = TriggerTypeUpdate
			if p.accept(OF) {
				cols, err := p.parseNameList()
				if err != nil {
					return 0, nil, err
				}
				columns = append(columns, cols...)
			}
		default:
			p.unlex()
			return 0, nil, p.errorUnexpected()
		}
		if events&bit != 0 {
			return 0, nil, p.errorf(x, "duplicate trigger events specified")
		}
		events |= bit
		if !p.accept(OR) {
			return events, columns, nil
		}
	}
}

// parseTriggerFuncArgs parses the parenthesized arguments of a trigger
// function. Each argument is kept as a string.
func (p *Parser) parseTriggerFuncArgs() (_ List, err error) {
	if _, err := p.expect(LP); err != nil {
		return nil, err
	}
	var args List
	for p.peek() != RP {
		x := p.next()
		switch {
		case x.Tok == ICONST || x.Tok == FCONST || x.Tok == SCONST:
			p.lex()
			args = append(args, StringLit(x.Lit))
		case isColLabel(x.Tok):
			p.lex()
			args = append(args, StringLit(x.Lit))
		default:
			return nil, p.errorUnexpected()
		}
		if !p.accept(COMMA) {
			break
		}
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return args, nil
}

// parseCreateRuleStatement parses CREATE [OR REPLACE] RULE name AS ON
// event TO table [WHERE cond] DO [ALSO|INSTEAD] actions.
func (p *Parser) parseCreateRuleStatement(replace bool) (_ *Node, err error) {
	assert(p.peek() == RULE)
	p.lex()
	name, err := p.parseColId()
	if err != nil {
		return nil, err
	}
	if err := p.expectSeq(AS, ON); err != nil {
		return nil, err
	}

	var event CmdType
	switch p.lex().Tok {
	case SELECT:
		event = CmdSelect
	case UPDATE:
		event = CmdUpdate
	case DELETE:
		event = CmdDelete
	case INSERT:
		event = CmdInsert
	default:
		p.unlex()
		return nil, p.errorUnexpected()
	}

	if _, err := p.expect(TO); err != nil {
		return nil, err
	}
	rel, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	var where *Node
	if p.accept(WHERE) {
		if where, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(DO); err != nil {
		return nil, err
	}
	instead := p.accept(INSTEAD)
	if !instead {
		p.accept(ALSO)
	}

	actions, err := p.parseRuleActions()
	if err != nil {
		return nil, err
	}

	return NewNode(RuleStmt).
		Set(RelationField, rel).
		Set("rulename", Text(name)).
		Set(WhereClauseField, where).
		SetInt("event", int(event)).
		Set("instead", Boolean(instead)).
		Set("actions", actions).
		Set("replace", Boolean(replace)), nil
}

// parseRuleActions parses NOTHING, one statement or a parenthesized list
// of statements separated by semicolons.
func (p *Parser) parseRuleActions() (_ List, err error) {
	if p.accept(NOTHING) {
		return nil, nil
	}
	if p.peek() != LP || p.selectAhead() {
		stmt, err := p.parseRuleAction()
		if err != nil {
			return nil, err
		}
		return List{stmt}, nil
	}

	p.lex()
	var actions List
	for {
		if p.peek() != SEMI && p.peek() != RP {
			stmt, err := p.parseRuleAction()
			if err != nil {
				return nil, err
			}
			actions = append(actions, stmt)
		}
		if !p.accept(SEMI) {
			break
		}
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return actions, nil
}

func (p *Parser) parseRuleAction() (*Node, error) {
	switch p.peek() {
	case SELECT, VALUES, TABLE, LP, WITH, INSERT, UPDATE, DELETE:
		return p.parsePreparableStatement()
	}
	return nil, p.errorUnexpected()
}
