package pgquery

func (p *Parser) parseInsertStatement(with *Node) (_ *Node, err error) {
	assert(p.peek() == INSERT)
	p.lex()

	if _, err := p.expect(INTO); err != nil {
		return nil, err
	}
	rel, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}

	var cols List
	var sel *Node
	switch {
	case p.acceptSeq(DEFAULT, VALUES):
	case p.peek() == LP && !p.selectAhead():
		p.lex()
		for {
			x := p.next()
			name, err := p.parseColId()
			if err != nil {
				return nil, err
			}
			ind, err := p.parseIndirectionList()
			if err != nil {
				return nil, err
			}
			cols = append(cols, NewNode(ResTarget).
				Set("name", Text(name)).
				Set("indirection", ind).
				SetLocation(x.Pos.Offset))
			if !p.accept(COMMA) {
				break
			}
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
		if sel, err = p.parseSelectStatement(); err != nil {
			return nil, err
		}
	default:
		if sel, err = p.parseSelectStatement(); err != nil {
			return nil, err
		}
	}

	returning, err := p.parseReturningClause()
	if err != nil {
		return nil, err
	}

	return NewNode(InsertStmt).
		Set(RelationField, rel).
		Set("cols", cols).
		Set("selectStmt", sel).
		Set(ReturningField, returning).
		Set(WithClauseField, with), nil
}

func (p *Parser) parseUpdateStatement(with *Node) (_ *Node, err error) {
	assert(p.peek() == UPDATE)
	p.lex()

	rel, err := p.parseRelationExprOptAlias(SET)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SET); err != nil {
		return nil, err
	}

	var targets List
	for {
		items, err := p.parseSetClause()
		if err != nil {
			return nil, err
		}
		targets = append(targets, items...)
		if !p.accept(COMMA) {
			break
		}
	}

	var from List
	if p.accept(FROM) {
		if from, err = p.parseFromList(); err != nil {
			return nil, err
		}
	}
	var where *Node
	if p.accept(WHERE) {
		if where, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	returning, err := p.parseReturningClause()
	if err != nil {
		return nil, err
	}

	return NewNode(UpdateStmt).
		Set(RelationField, rel).
		Set(TargetListField, targets).
		Set(WhereClauseField, where).
		Set(FromClauseField, from).
		Set(ReturningField, returning).
		Set(WithClauseField, with), nil
}

// parseSetClause parses col = value or (col, ...) = (value, ...). The
// second form yields one target per column.
func (p *Parser) parseSetClause() (_ List, err error) {
	if lp := p.next(); lp.Tok == LP {
		p.lex()
		var targets List
		for {
			t, err := p.parseSetTarget()
			if err != nil {
				return nil, err
			}
			targets = append(targets, t)
			if !p.accept(COMMA) {
				break
			}
		}
		if err := p.expectSeq(RP, EQ); err != nil {
			return nil, err
		}
		vals, err := p.parseValuesRow()
		if err != nil {
			return nil, err
		}
		if len(vals) != len(targets) {
			return nil, p.errorf(lp, "number of columns does not match number of values")
		}
		for i, t := range targets {
			t.(*Node).insertBefore(LocationField, "val", vals[i])
		}
		return targets, nil
	}

	t, err := p.parseSetTarget()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EQ); err != nil {
		return nil, err
	}
	v, err := p.parseExprOrDefault()
	if err != nil {
		return nil, err
	}
	t.insertBefore(LocationField, "val", v)
	return List{t}, nil
}

// parseSetTarget parses a column with optional subscripts or fields.
func (p *Parser) parseSetTarget() (_ *Node, err error) {
	x := p.next()
	name, err := p.parseColId()
	if err != nil {
		return nil, err
	}
	ind, err := p.parseIndirectionList()
	if err != nil {
		return nil, err
	}
	return NewNode(ResTarget).
		Set("name", Text(name)).
		Set("indirection", ind).
		SetLocation(x.Pos.Offset), nil
}

func (p *Parser) parseDeleteStatement(with *Node) (_ *Node, err error) {
	assert(p.peek() == DELETE)
	p.lex()

	if _, err := p.expect(FROM); err != nil {
		return nil, err
	}
	rel, err := p.parseRelationExprOptAlias()
	if err != nil {
		return nil, err
	}

	var using List
	if p.accept(USING) {
		if using, err = p.parseFromList(); err != nil {
			return nil, err
		}
	}
	var where *Node
	if p.accept(WHERE) {
		if where, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	returning, err := p.parseReturningClause()
	if err != nil {
		return nil, err
	}

	return NewNode(DeleteStmt).
		Set(RelationField, rel).
		Set("usingClause", using).
		Set(WhereClauseField, where).
		Set(ReturningField, returning).
		Set(WithClauseField, with), nil
}

// parseCopyStatement parses COPY table [(cols)] FROM|TO file [options]
// and COPY (query) TO file [options].
func (p *Parser) parseCopyStatement() (_ *Node, err error) {
	assert(p.peek() == COPY)
	p.lex()

	var options List
	if x := p.next(); x.Tok == BINARY {
		p.lex()
		p.warnCopyOption(x)
		options = append(options, newDefElem("format", StringLit("binary")))
	}

	var rel, query *Node
	var attlist List
	isFrom := false
	if p.peek() == LP {
		if query, err = p.parseSelectWithParens(); err != nil {
			return nil, err
		}
		if _, err := p.expect(TO); err != nil {
			return nil, err
		}
	} else {
		if rel, err = p.parseQualifiedName(); err != nil {
			return nil, err
		}
		if attlist, err = p.parseOptColumnList(); err != nil {
			return nil, err
		}
		if x := p.next(); x.Tok == WITH && p.peekN(1) == OIDS {
			p.i += 2
			p.warnCopyOption(x)
			options = append(options, newDefElem("oids", IntegerLit(1)))
		}
		switch p.peek() {
		case FROM:
			isFrom = true
		case TO:
		default:
			return nil, p.errorUnexpected()
		}
		p.lex()
	}

	isProgram := p.accept(PROGRAM)
	var filename string
	switch x := p.next(); x.Tok {
	case SCONST:
		p.lex()
		filename = x.Lit
	case STDIN, STDOUT:
		p.lex()
	default:
		return nil, p.errorUnexpected()
	}

	if x := p.next(); x.Tok == USING || x.Tok == DELIMITERS {
		p.accept(USING)
		if _, err := p.expect(DELIMITERS); err != nil {
			return nil, err
		}
		s, err := p.parseSconst()
		if err != nil {
			return nil, err
		}
		p.warnCopyOption(x)
		options = append(options, newDefElem("delimiter", StringLit(s)))
	}

	p.accept(WITH)
	if p.peek() == LP {
		generic, err := p.parseGenericOptionList()
		if err != nil {
			return nil, err
		}
		options = append(options, generic...)
	} else {
		legacy, err := p.parseLegacyCopyOptions()
		if err != nil {
			return nil, err
		}
		options = append(options, legacy...)
	}

	return NewNode(CopyStmt).
		Set(RelationField, rel).
		Set(QueryField, query).
		Set("attlist", attlist).
		Set("is_from", Boolean(isFrom)).
		Set("is_program", Boolean(isProgram)).
		Set("filename", Text(filename)).
		Set("options", options), nil
}

func newDefElem(name string, arg Value) *Node {
	return NewNode(DefElem).Set("defname", Text(name)).Set("arg", arg).SetInt("defaction", 0)
}

// warnCopyOption records the use of the unparenthesized option syntax.
func (p *Parser) warnCopyOption(x Lexeme) {
	p.warn(x.Pos.Offset, "COPY option syntax without parentheses is deprecated")
}

// parseLegacyCopyOptions parses the unparenthesized COPY options.
func (p *Parser) parseLegacyCopyOptions() (_ List, err error) {
	var options List
	for {
		x := p.next()
		var opt *Node
		switch x.Tok {
		case BINARY:
			p.lex()
			opt = newDefElem("format", StringLit("binary"))
		case OIDS:
			p.lex()
			opt = newDefElem("oids", IntegerLit(1))
		case FREEZE:
			p.lex()
			opt = newDefElem("freeze", IntegerLit(1))
		case CSV:
			p.lex()
			opt = newDefElem("format", StringLit("csv"))
		case HEADER:
			p.lex()
			opt = newDefElem("header", IntegerLit(1))
		case DELIMITER, NULL, QUOTE, ESCAPE, ENCODING:
			p.lex()
			if x.Tok != ENCODING {
				p.accept(AS)
			}
			s, err := p.parseSconst()
			if err != nil {
				return nil, err
			}
			opt = newDefElem(x.Lit, StringLit(s))
		case FORCE:
			p.lex()
			name := "force_quote"
			switch {
			case p.accept(QUOTE):
			case p.acceptSeq(NOT, NULL):
				name = "force_not_null"
			case p.accept(NULL):
				name = "force_null"
			default:
				return nil, p.errorUnexpected()
			}
			if name == "force_quote" && p.accept(STAR) {
				opt = newDefElem(name, NewNode(AStar))
				break
			}
			cols, err := p.parseNameList()
			if err != nil {
				return nil, err
			}
			opt = newDefElem(name, cols)
		default:
			return options, nil
		}
		p.warnCopyOption(x)
		options = append(options, opt)
	}
}

// parseGenericOptionList parses (name [value], ...) as used by COPY and
// EXPLAIN. Values are strings, numbers, * or parenthesized lists.
func (p *Parser) parseGenericOptionList() (_ List, err error) {
	if _, err := p.expect(LP); err != nil {
		return nil, err
	}
	var options List
	for {
		name, err := p.parseColLabel()
		if err != nil {
			return nil, err
		}
		var arg Value
		x := p.next()
		switch {
		case x.Tok == COMMA || x.Tok == RP:
		case x.Tok == SCONST:
			p.lex()
			arg = StringLit(x.Lit)
		case x.Tok == ICONST || x.Tok == FCONST || x.Tok == PLUS || x.Tok == MINUS:
			if arg, err = p.parseNumericOnly(); err != nil {
				return nil, err
			}
		case x.Tok == STAR:
			p.lex()
			arg = NewNode(AStar)
		case x.Tok == LP:
			p.lex()
			var l List
			for {
				v, err := p.parseBooleanOrString()
				if err != nil {
					return nil, err
				}
				l = append(l, StringLit(v))
				if !p.accept(COMMA) {
					break
				}
			}
			if _, err := p.expect(RP); err != nil {
				return nil, err
			}
			arg = l
		default:
			v, err := p.parseBooleanOrString()
			if err != nil {
				return nil, err
			}
			arg = StringLit(v)
		}
		options = append(options, newDefElem(name, arg))
		if !p.accept(COMMA) {
			break
		}
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return options, nil
}

// parseBooleanOrString parses TRUE, FALSE, ON, a non-reserved word or a
// string constant and returns its text.
func (p *Parser) parseBooleanOrString() (string, error) {
	x := p.next()
	switch x.Tok {
	case TRUE, FALSE, ON, SCONST:
		p.lex()
		return x.Lit, nil
	}
	return p.parseNonReservedWord()
}
