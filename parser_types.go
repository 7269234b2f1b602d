package pgquery

// Interval field masks used as type modifiers of INTERVAL.
const (
	intervalMonth     = 1 << 1
	intervalYear      = 1 << 2
	intervalDay       = 1 << 3
	intervalHour      = 1 << 10
	intervalMinute    = 1 << 11
	intervalSecond    = 1 << 12
	intervalFullRange = 0x7FFF
)

// newTypeName builds a TYPENAME from name parts.
func newTypeName(parts List, typmods List, loc int) *Node {
	return NewNode(TypeName).
		Set("names", parts).
		Set("typmods", typmods).
		SetInt("typemod", -1).
		SetLocation(loc)
}

// systemTypeName builds a TYPENAME for a pg_catalog type.
func systemTypeName(name string, typmods List, loc int) *Node {
	return newTypeName(names("pg_catalog", name), typmods, loc)
}

// isTypeStart returns true if tok can begin a type name.
func isTypeStart(tok Token) bool {
	if isTypeFunctionName(tok) {
		return true
	}
	switch tok {
	case SETOF, INT, INTEGER, SMALLINT, BIGINT, REAL, FLOAT, DOUBLE, DECIMAL, DEC,
		NUMERIC, BOOLEAN, BIT, CHAR, CHARACTER, NCHAR, NATIONAL, VARCHAR,
		TIMESTAMP, TIME, INTERVAL:
		return true
	}
	return false
}

// parseTypename parses a type with an optional SETOF prefix and array
// bounds.
func (p *Parser) parseTypename() (_ *Node, err error) {
	setof := p.accept(SETOF)
	typ, err := p.parseSimpleTypename()
	if err != nil {
		return nil, err
	}

	var bounds List
	switch p.peek() {
	case ARRAY:
		p.lex()
		if p.accept(LBRACKET) {
			n, err := p.parseIconst()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RBRACKET); err != nil {
				return nil, err
			}
			bounds = List{IntegerLit(n)}
		} else {
			bounds = List{IntegerLit(-1)}
		}
	case LBRACKET:
		for p.accept(LBRACKET) {
			n := int64(-1)
			if p.peek() == ICONST {
				n, _ = p.parseIconst()
			}
			if _, err := p.expect(RBRACKET); err != nil {
				return nil, err
			}
			bounds = append(bounds, IntegerLit(n))
		}
	}

	if setof {
		typ.insertAfter("names", "setof", Boolean(true))
	}
	if len(bounds) > 0 {
		typ.insertBefore(LocationField, "arrayBounds", bounds)
	}
	return typ, nil
}

// parseSimpleTypename parses a type without SETOF or array bounds.
func (p *Parser) parseSimpleTypename() (_ *Node, err error) {
	start := p.next()
	loc := start.Pos.Offset

	switch start.Tok {
	case INT, INTEGER:
		p.lex()
		return systemTypeName("int4", nil, loc), nil
	case SMALLINT:
		p.lex()
		return systemTypeName("int2", nil, loc), nil
	case BIGINT:
		p.lex()
		return systemTypeName("int8", nil, loc), nil
	case REAL:
		p.lex()
		return systemTypeName("float4", nil, loc), nil
	case BOOLEAN:
		p.lex()
		return systemTypeName("bool", nil, loc), nil
	case FLOAT:
		p.lex()
		if !p.accept(LP) {
			return systemTypeName("float8", nil, loc), nil
		}
		x := p.next()
		prec, err := p.parseIconst()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
		switch {
		case prec < 1:
			return nil, p.errorf(x, "precision for type float must be at least 1 bit")
		case prec <= 24:
			return systemTypeName("float4", nil, loc), nil
		case prec <= 53:
			return systemTypeName("float8", nil, loc), nil
		}
		return nil, p.errorf(x, "precision for type float must be less than 54 bits")
	case DOUBLE:
		if p.peekN(1) != PRECISION {
			break
		}
		p.i += 2
		return systemTypeName("float8", nil, loc), nil
	case DECIMAL, DEC, NUMERIC:
		p.lex()
		typmods, err := p.parseOptTypeModifiers()
		if err != nil {
			return nil, err
		}
		return systemTypeName("numeric", typmods, loc), nil
	case BIT:
		p.lex()
		name := "bit"
		if p.accept(VARYING) {
			name = "varbit"
		}
		typmods, err := p.parseOptTypeModifiers()
		if err != nil {
			return nil, err
		}
		if typmods == nil && name == "bit" {
			typmods = List{newIntConst(1, -1)}
		}
		return systemTypeName(name, typmods, loc), nil
	case CHARACTER, CHAR, NCHAR, VARCHAR, NATIONAL:
		return p.parseCharacterType()
	case TIMESTAMP, TIME:
		p.lex()
		var typmods List
		if p.accept(LP) {
			x := p.next()
			n, err := p.parseIconst()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RP); err != nil {
				return nil, err
			}
			typmods = List{newIntConst(n, x.Pos.Offset)}
		}
		name := start.Lit
		if p.acceptSeq(WITH, TIME, ZONE) {
			name += "tz"
		} else {
			p.acceptSeq(WITHOUT, TIME, ZONE)
		}
		return systemTypeName(name, typmods, loc), nil
	case INTERVAL:
		p.lex()
		if p.accept(LP) {
			x := p.next()
			n, err := p.parseIconst()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RP); err != nil {
				return nil, err
			}
			typmods := List{newIntConst(intervalFullRange, -1), newIntConst(n, x.Pos.Offset)}
			return systemTypeName("interval", typmods, loc), nil
		}
		typmods, err := p.parseOptInterval()
		if err != nil {
			return nil, err
		}
		return systemTypeName("interval", typmods, loc), nil
	}

	return p.parseGenericType()
}

// parseGenericType parses a user-defined or unlisted built-in type name
// with optional modifiers, or a column type reference: name%TYPE.
func (p *Parser) parseGenericType() (_ *Node, err error) {
	loc := p.next().Pos.Offset
	if !isTypeFunctionName(p.peek()) {
		return nil, p.errorUnexpected()
	}
	parts := []string{p.lex().Lit}
	for p.peek() == DOT {
		p.lex()
		label, err := p.parseColLabel()
		if err != nil {
			return nil, err
		}
		parts = append(parts, label)
	}

	if p.peek() == PERCENT && p.peekN(1) == TYPE {
		p.i += 2
		return NewNode(TypeName).
			Set("names", names(parts...)).
			Set("pct_type", Boolean(true)).
			SetInt("typemod", -1).
			SetLocation(loc), nil
	}

	typmods, err := p.parseOptTypeModifiers()
	if err != nil {
		return nil, err
	}
	return newTypeName(names(parts...), typmods, loc), nil
}

// parseOptTypeModifiers parses an optional parenthesized expression list.
func (p *Parser) parseOptTypeModifiers() (List, error) {
	if p.peek() != LP {
		return nil, nil
	}
	p.lex()
	l, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return l, nil
}

// parseCharacterType parses the character types. CHARACTER without a
// length has length 1.
func (p *Parser) parseCharacterType() (_ *Node, err error) {
	loc := p.next().Pos.Offset
	varying := false
	switch p.lex().Tok {
	case VARCHAR:
		varying = true
	case NATIONAL:
		if !p.accept(CHARACTER) && !p.accept(CHAR) {
			return nil, p.errorUnexpected()
		}
		varying = p.accept(VARYING)
	default:
		varying = p.accept(VARYING)
	}

	var typmods List
	if p.accept(LP) {
		x := p.next()
		n, err := p.parseIconst()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
		typmods = List{newIntConst(n, x.Pos.Offset)}
	}
	if p.acceptSeq(CHARACTER, SET) {
		if _, err := p.parseColId(); err != nil {
			return nil, err
		}
	}

	if varying {
		return systemTypeName("varchar", typmods, loc), nil
	}
	if typmods == nil {
		typmods = List{newIntConst(1, -1)}
	}
	return systemTypeName("bpchar", typmods, loc), nil
}

// parseOptInterval parses the optional field restriction of an interval:
// YEAR, YEAR TO MONTH, DAY TO SECOND(p) and so on.
func (p *Parser) parseOptInterval() (_ List, err error) {
	mask := func(tok Token) int {
		switch tok {
		case YEAR:
			return intervalYear
		case MONTH:
			return intervalMonth
		case DAY:
			return intervalDay
		case HOUR:
			return intervalHour
		case MINUTE:
			return intervalMinute
		case SECOND:
			return intervalSecond
		}
		return 0
	}

	first := p.next()
	m := mask(first.Tok)
	if m == 0 {
		return nil, nil
	}
	p.lex()

	if p.peek() == TO && intervalRanges[first.Tok] != nil {
		p.lex()
		last := p.next()
		if !intervalRanges[first.Tok][last.Tok] {
			return nil, p.errorUnexpected()
		}
		p.lex()
		m = rangeMask(m, mask(last.Tok))
		first = last
	}

	typmods := List{newIntConst(int64(m), first.Pos.Offset)}
	if first.Tok == SECOND && p.accept(LP) {
		x := p.next()
		n, err := p.parseIconst()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
		typmods = append(typmods, newIntConst(n, x.Pos.Offset))
	}
	return typmods, nil
}

// intervalRanges lists the valid "first TO last" interval restrictions.
var intervalRanges = map[Token]map[Token]bool{
	YEAR:   {MONTH: true},
	DAY:    {HOUR: true, MINUTE: true, SECOND: true},
	HOUR:   {MINUTE: true, SECOND: true},
	MINUTE: {SECOND: true},
}

// rangeMask returns the mask covering every field from first to last.
func rangeMask(first, last int) int {
	order := []int{intervalYear, intervalMonth, intervalDay, intervalHour, intervalMinute, intervalSecond}
	m, in := 0, false
	for _, f := range order {
		if f == first {
			in = true
		}
		if in {
			m |= f
		}
		if f == last {
			break
		}
	}
	return m
}

// parseFuncType parses a function argument or result type.
func (p *Parser) parseFuncType() (*Node, error) {
	return p.parseTypename()
}

// insertAfter stores a field right after the named field.
func (n *Node) insertAfter(after, name string, v Value) {
	for i, f := range n.Fields {
		if f.Name == after {
			n.Fields = append(n.Fields, Field{})
			copy(n.Fields[i+2:], n.Fields[i+1:])
			n.Fields[i+1] = Field{Name: name, Value: v}
			return
		}
	}
	n.Set(name, v)
}
