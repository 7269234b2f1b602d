package pgquery

import (
	"strconv"
	"strings"
)

func parseInt(lit string) int64 {
	v, _ := strconv.ParseInt(lit, 10, 64)
	return v
}

func newAConst(v Value, loc int) *Node {
	return NewNode(AConst).Set("val", v).SetLocation(loc)
}

func newIntConst(v int64, loc int) *Node {
	return newAConst(IntegerLit(v), loc)
}

func newStringConst(s string, loc int) *Node {
	return newAConst(StringLit(s), loc)
}

// newBoolConst builds 't'::pg_catalog.bool or 'f'::pg_catalog.bool.
func newBoolConst(v bool, loc int) *Node {
	s := "f"
	if v {
		s = "t"
	}
	return newTypeCast(newStringConst(s, loc), systemTypeName("bool", nil, -1), -1)
}

func newTypeCast(arg, typ *Node, loc int) *Node {
	return NewNode(TypeCast).Set("arg", arg).Set("typeName", typ).SetLocation(loc)
}

// newAExpr builds an AEXPR. name may be nil for AND, OR and NOT.
func newAExpr(kind AExprKind, name List, lexpr, rexpr Value, loc int) *Node {
	return NewNode(AExpr).
		SetInt("kind", int(kind)).
		Set("name", name).
		Set("lexpr", lexpr).
		Set("rexpr", rexpr).
		SetLocation(loc)
}

func newOpExpr(op string, lexpr, rexpr *Node, loc int) *Node {
	return newAExpr(AExprOp, names(op), lexpr, rexpr, loc)
}

func newNotExpr(arg *Node, loc int) *Node {
	return newAExpr(AExprNot, nil, nil, arg, loc)
}

func newFuncCall(name List, args List, loc int) *Node {
	return NewNode(FuncCall).Set("funcname", name).Set("args", args).SetLocation(loc)
}

func newSubLink(typ SubLinkType, testexpr *Node, operName List, subselect *Node, loc int) *Node {
	return NewNode(SubLink).
		SetInt("subLinkType", int(typ)).
		Set("testexpr", testexpr).
		Set("operName", operName).
		Set("subselect", subselect).
		SetLocation(loc)
}

// ParseExpr parses a single value expression.
func ParseExpr(text string) (_ *Node, err error) {
	lexemes, warnings := tokenize(text)
	p := &Parser{src: text, lexemes: lexemes, warnings: warnings}
	expr, err := p.parseExpr()
	if err == nil && p.peek() != EOF {
		err = p.errorUnexpected()
	}
	m := newLocationMap(text)
	if err != nil {
		if e, ok := err.(*ParseError); ok {
			m.translateError(e)
		}
		return nil, err
	}
	newLocationRewriter(m).Rewrite([]*Node{expr})
	return expr, nil
}

func (p *Parser) parseExpr() (*Node, error) {
	return p.parseBinaryExpr(LowestPrec + 1)
}

// parseExprList parses a comma separated list of expressions.
func (p *Parser) parseExprList() (_ List, err error) {
	var l List
	for {
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		l = append(l, x)
		if !p.accept(COMMA) {
			return l, nil
		}
	}
}

// parseParenExprList parses a parenthesized, non-empty expression list.
func (p *Parser) parseParenExprList() (_ List, err error) {
	if _, err := p.expect(LP); err != nil {
		return nil, err
	}
	l, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return l, nil
}

// binaryPrec returns the precedence of the next lexeme as an infix or
// postfix operator, or LowestPrec if it cannot continue an expression.
func (p *Parser) binaryPrec() int {
	switch tok := p.peek(); tok {
	case NOT:
		switch p.peekN(1) {
		case IN, LIKE, ILIKE, SIMILAR, BETWEEN:
			return BETWEEN.Precedence()
		}
		return LowestPrec
	case AT:
		if p.peekN(1) == TIME {
			return AT.Precedence()
		}
		return LowestPrec
	case OPERATOR:
		if p.peekN(1) == LP {
			return OP.Precedence()
		}
		return LowestPrec
	case ESCAPE:
		return LowestPrec
	default:
		return tok.Precedence()
	}
}

// nonAssociative returns true for precedence levels whose operators may
// not be chained without parentheses.
func nonAssociative(prec int) bool {
	switch prec {
	case IS.Precedence(), EQ.Precedence(), BETWEEN.Precedence():
		return true
	}
	return false
}

func (p *Parser) parseBinaryExpr(prec1 int) (expr *Node, err error) {
	x, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		prec := p.binaryPrec()
		if prec == LowestPrec || prec < prec1 {
			return x, nil
		}
		if x, err = p.parseBinaryTail(x, prec); err != nil {
			return nil, err
		}
		if nonAssociative(prec) && p.binaryPrec() == prec {
			return nil, p.errorUnexpected()
		}
	}
}

func (p *Parser) parseUnaryExpr() (_ *Node, err error) {
	x := p.next()
	loc := x.Pos.Offset

	switch x.Tok {
	case NOT:
		p.lex()
		operand, err := p.parseBinaryExpr(NOT.Precedence() + 1)
		if err != nil {
			return nil, err
		}
		return newNotExpr(operand, loc), nil
	case MINUS:
		p.lex()
		operand, err := p.parseBinaryExpr(UnaryPrec + 1)
		if err != nil {
			return nil, err
		}
		return negate(operand, loc), nil
	case PLUS:
		p.lex()
		operand, err := p.parseBinaryExpr(UnaryPrec + 1)
		if err != nil {
			return nil, err
		}
		return newOpExpr("+", nil, operand, loc), nil
	case OP:
		p.lex()
		operand, err := p.parseBinaryExpr(OP.Precedence() + 1)
		if err != nil {
			return nil, err
		}
		return newOpExpr(x.Lit, nil, operand, loc), nil
	case OPERATOR:
		if p.peekN(1) != LP {
			break
		}
		p.lex()
		name, err := p.parseOperatorName()
		if err != nil {
			return nil, err
		}
		operand, err := p.parseBinaryExpr(OP.Precedence() + 1)
		if err != nil {
			return nil, err
		}
		return newAExpr(AExprOp, name, nil, operand, loc), nil
	}
	return p.parsePrimaryExpr()
}

// negate folds a minus sign into a numeric constant, or wraps x in a
// unary minus.
func negate(x *Node, loc int) *Node {
	if x.Kind == AConst {
		switch v := x.Get("val").(type) {
		case IntegerLit:
			x.setField("val", -v)
			x.setField(LocationField, Integer(loc))
			return x
		case FloatLit:
			if strings.HasPrefix(string(v), "-") {
				x.setField("val", v[1:])
			} else {
				x.setField("val", "-"+v)
			}
			x.setField(LocationField, Integer(loc))
			return x
		}
	}
	return newOpExpr("-", nil, x, loc)
}

// parseOperatorName parses OPERATOR(name) after the OPERATOR keyword.
func (p *Parser) parseOperatorName() (_ List, err error) {
	if _, err := p.expect(LP); err != nil {
		return nil, err
	}
	var parts []string
	for isColId(p.peek()) && p.peekN(1) == DOT {
		parts = append(parts, p.lex().Lit)
		p.lex()
	}
	op := p.lex()
	if !op.Tok.IsOperator() {
		p.unlex()
		return nil, p.errorUnexpected()
	}
	parts = append(parts, op.Lit)
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return names(parts...), nil
}

func (p *Parser) parseBinaryTail(x *Node, prec int) (_ *Node, err error) {
	op := p.lex()
	loc := op.Pos.Offset

	switch op.Tok {
	case AND, OR:
		y, err := p.parseBinaryExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		kind := AExprAnd
		if op.Tok == OR {
			kind = AExprOr
		}
		return newAExpr(kind, nil, x, y, loc), nil
	case IS:
		return p.parseIsTail(x, loc)
	case ISNULL:
		return newNullTest(x, IsNull, loc), nil
	case NOTNULL:
		return newNullTest(x, IsNotNull, loc), nil
	case NOT:
		pred := p.lex()
		return p.parsePredicateTail(x, pred, true, loc)
	case IN, LIKE, ILIKE, SIMILAR, BETWEEN:
		return p.parsePredicateTail(x, op, false, loc)
	case TYPECAST:
		typ, err := p.parseTypename()
		if err != nil {
			return nil, err
		}
		return newTypeCast(x, typ, loc), nil
	case COLLATE:
		name, err := p.parseAnyName()
		if err != nil {
			return nil, err
		}
		return NewNode(CollateClause).
			Set("arg", x).
			Set("collname", names(name...)).
			SetLocation(loc), nil
	case AT:
		if err := p.expectSeq(TIME, ZONE); err != nil {
			return nil, err
		}
		zone, err := p.parseBinaryExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		return newFuncCall(names("pg_catalog", "timezone"), List{zone, x}, loc), nil
	case OPERATOR:
		name, err := p.parseOperatorName()
		if err != nil {
			return nil, err
		}
		return p.parseOpTail(x, name, prec, loc)
	}
	assert(op.Tok.IsOperator())
	return p.parseOpTail(x, names(op.Lit), prec, loc)
}

// parseOpTail parses the right operand of a binary operator, including the
// op ANY|SOME|ALL (array or subquery) forms.
func (p *Parser) parseOpTail(x *Node, name List, prec int, loc int) (_ *Node, err error) {
	switch p.peek() {
	case ANY, SOME, ALL:
		if p.peekN(1) != LP {
			break
		}
		all := p.lex().Tok == ALL
		if sub, ok, subErr := p.trySubselect(); ok {
			typ := AnySubLink
			if all {
				typ = AllSubLink
			}
			return newSubLink(typ, x, name, sub, loc), nil
		} else if subErr != nil {
			defer func() { err = laterError(err, subErr) }()
		}
		p.lex()
		y, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
		kind := AExprOpAny
		if all {
			kind = AExprOpAll
		}
		return newAExpr(kind, name, x, y, loc), nil
	}

	y, err := p.parseBinaryExpr(prec + 1)
	if err != nil {
		return nil, err
	}
	return newAExpr(AExprOp, name, x, y, loc), nil
}

func newNullTest(arg *Node, typ int, loc int) *Node {
	return NewNode(NullTest).Set("arg", arg).SetInt("nulltesttype", typ).SetLocation(loc)
}

// parseIsTail parses what follows IS: [NOT] NULL, TRUE, FALSE, UNKNOWN,
// DISTINCT FROM and OF (types).
func (p *Parser) parseIsTail(x *Node, loc int) (_ *Node, err error) {
	not := p.accept(NOT)
	switch p.lex().Tok {
	case NULL:
		if not {
			return newNullTest(x, IsNotNull, loc), nil
		}
		return newNullTest(x, IsNull, loc), nil
	case TRUE:
		return newBooleanTest(x, IsTrue, not, loc), nil
	case FALSE:
		return newBooleanTest(x, IsFalse, not, loc), nil
	case UNKNOWN:
		return newBooleanTest(x, IsUnknown, not, loc), nil
	case DISTINCT:
		if _, err := p.expect(FROM); err != nil {
			return nil, err
		}
		y, err := p.parseBinaryExpr(IS.Precedence() + 1)
		if err != nil {
			return nil, err
		}
		e := newAExpr(AExprDistinct, names("="), x, y, loc)
		if not {
			return newNotExpr(e, loc), nil
		}
		return e, nil
	case OF:
		if _, err := p.expect(LP); err != nil {
			return nil, err
		}
		var types List
		for {
			typ, err := p.parseTypename()
			if err != nil {
				return nil, err
			}
			types = append(types, typ)
			if !p.accept(COMMA) {
				break
			}
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
		op := "="
		if not {
			op = "<>"
		}
		return newAExpr(AExprOf, names(op), x, types, loc), nil
	}
	p.unlex()
	return nil, p.errorUnexpected()
}

// newBooleanTest builds a BOOLEANTEST. The negated test types follow their
// positive forms.
func newBooleanTest(arg *Node, typ int, not bool, loc int) *Node {
	if not {
		typ++
	}
	return NewNode(BooleanTest).Set("arg", arg).SetInt("booltesttype", typ).SetLocation(loc)
}

// parsePredicateTail parses IN, LIKE, ILIKE, SIMILAR TO and BETWEEN after
// pred. loc is the position of NOT for the negated forms.
func (p *Parser) parsePredicateTail(x *Node, pred Lexeme, not bool, loc int) (_ *Node, err error) {
	switch pred.Tok {
	case IN:
		return p.parseInTail(x, pred, not, loc)
	case LIKE, ILIKE:
		op := "~~"
		if pred.Tok == ILIKE {
			op = "~~*"
		}
		if not {
			op = "!" + op
		}
		y, err := p.parseBinaryExpr(ESCAPE.Precedence())
		if err != nil {
			return nil, err
		}
		if p.accept(ESCAPE) {
			esc, err := p.parseBinaryExpr(ESCAPE.Precedence())
			if err != nil {
				return nil, err
			}
			y = newFuncCall(names("pg_catalog", "like_escape"), List{y, esc}, loc)
		}
		return newOpExpr(op, x, y, loc), nil
	case SIMILAR:
		if _, err := p.expect(TO); err != nil {
			return nil, err
		}
		y, err := p.parseBinaryExpr(ESCAPE.Precedence())
		if err != nil {
			return nil, err
		}
		esc := newAConst(NullLit{}, -1)
		if p.accept(ESCAPE) {
			if esc, err = p.parseBinaryExpr(ESCAPE.Precedence()); err != nil {
				return nil, err
			}
		}
		op := "~"
		if not {
			op = "!~"
		}
		fc := newFuncCall(names("pg_catalog", "similar_escape"), List{y, esc}, loc)
		return newOpExpr(op, x, fc, loc), nil
	case BETWEEN:
		return p.parseBetweenTail(x, not, loc)
	}
	p.unlex()
	return nil, p.errorUnexpected()
}

func (p *Parser) parseInTail(x *Node, in Lexeme, not bool, loc int) (_ *Node, err error) {
	if sub, ok, subErr := p.trySubselect(); ok {
		link := newSubLink(AnySubLink, x, names("="), sub, in.Pos.Offset)
		if not {
			return newNotExpr(link, loc), nil
		}
		return link, nil
	} else if subErr != nil {
		defer func() { err = laterError(err, subErr) }()
	}

	l, err := p.parseParenExprList()
	if err != nil {
		return nil, err
	}
	op := "="
	if not {
		op = "<>"
	}
	return newAExpr(AExprIn, names(op), x, l, loc), nil
}

// parseBetweenTail expands x [NOT] BETWEEN [SYMMETRIC] a AND b into
// comparisons joined by AND and OR.
func (p *Parser) parseBetweenTail(x *Node, not bool, loc int) (_ *Node, err error) {
	symmetric := p.accept(SYMMETRIC)
	if !symmetric {
		p.accept(ASYMMETRIC)
	}
	lo, err := p.parseBinaryExpr(BETWEEN.Precedence() + 1)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(AND); err != nil {
		return nil, err
	}
	hi, err := p.parseBinaryExpr(BETWEEN.Precedence() + 1)
	if err != nil {
		return nil, err
	}

	between := func(x, lo, hi *Node) *Node {
		if not {
			return newAExpr(AExprOr, nil, newOpExpr("<", x, lo, loc), newOpExpr(">", x.Clone(), hi, loc), loc)
		}
		return newAExpr(AExprAnd, nil, newOpExpr(">=", x, lo, loc), newOpExpr("<=", x.Clone(), hi, loc), loc)
	}
	if !symmetric {
		return between(x, lo, hi), nil
	}

	kind := AExprOr
	if not {
		kind = AExprAnd
	}
	return newAExpr(kind, nil,
		between(x, lo, hi),
		between(x.Clone(), hi.Clone(), lo.Clone()),
		loc), nil
}

// trySubselect parses a parenthesized query when one starts at the next
// lexeme. When the query does not parse, the state is restored and the
// error is returned for comparison with other alternatives.
func (p *Parser) trySubselect() (_ *Node, ok bool, err error) {
	if !p.selectAhead() {
		return nil, false, nil
	}
	m := p.mark()
	sub, err := p.parseSelectWithParens()
	if err != nil {
		p.reset(m)
		return nil, false, err
	}
	return sub, true, nil
}

// selectAhead returns true if the next lexemes are one or more opening
// parentheses followed by the start of a query.
func (p *Parser) selectAhead() bool {
	i := 0
	for p.peekN(i) == LP {
		i++
	}
	if i == 0 {
		return false
	}
	switch p.peekN(i) {
	case SELECT, VALUES, WITH, TABLE:
		return true
	}
	return false
}

// laterError returns whichever error occurred further into the input.
func laterError(a, b error) error {
	if a == nil {
		return nil
	}
	ea, ok1 := a.(*ParseError)
	eb, ok2 := b.(*ParseError)
	if ok1 && ok2 && eb.Location > ea.Location {
		return b
	}
	return a
}

// parsePrimaryExpr parses constants, column references, parameters,
// function calls, parenthesized expressions and the keyword-led forms.
func (p *Parser) parsePrimaryExpr() (_ *Node, err error) {
	x := p.next()
	loc := x.Pos.Offset

	switch x.Tok {
	case ICONST:
		p.lex()
		return newIntConst(parseInt(x.Lit), loc), nil
	case FCONST:
		p.lex()
		return newAConst(FloatLit(x.Lit), loc), nil
	case SCONST:
		p.lex()
		return newStringConst(x.Lit, loc), nil
	case BCONST:
		p.lex()
		return newAConst(BitStringLit(x.Lit), loc), nil
	case TRUE, FALSE:
		p.lex()
		return newBoolConst(x.Tok == TRUE, loc), nil
	case NULL:
		p.lex()
		return newAConst(NullLit{}, loc), nil
	case PARAM:
		p.lex()
		return p.parseOptIndirection(NewNode(ParamRef).SetLocation(loc))
	case LP:
		return p.parseParenExpr()
	case CASE:
		return p.parseCaseExpr()
	case EXISTS:
		p.lex()
		sub, err := p.parseSelectWithParens()
		if err != nil {
			return nil, err
		}
		return newSubLink(ExistsSubLink, nil, nil, sub, loc), nil
	case ARRAY:
		p.lex()
		if p.peek() == LBRACKET {
			arr, err := p.parseArrayExpr()
			if err != nil {
				return nil, err
			}
			arr.setField(LocationField, Integer(loc))
			return arr, nil
		}
		sub, err := p.parseSelectWithParens()
		if err != nil {
			return nil, err
		}
		return newSubLink(ArraySubLink, nil, nil, sub, loc), nil
	case ROW:
		if p.peekN(1) != LP {
			break
		}
		p.i += 2
		var args List
		if p.peek() != RP {
			if args, err = p.parseExprList(); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
		return newRowExpr(args, 0, loc), nil
	case CAST:
		p.lex()
		if _, err := p.expect(LP); err != nil {
			return nil, err
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(AS); err != nil {
			return nil, err
		}
		typ, err := p.parseTypename()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
		return newTypeCast(arg, typ, loc), nil
	case EXTRACT, SUBSTRING, POSITION, TRIM, OVERLAY, COALESCE, GREATEST, LEAST, NULLIF:
		if p.peekN(1) == LP {
			return p.parseSpecialFunc()
		}
	case CURRENT_DATE, CURRENT_TIME, CURRENT_TIMESTAMP, LOCALTIME, LOCALTIMESTAMP,
		CURRENT_ROLE, CURRENT_USER, SESSION_USER, USER, CURRENT_CATALOG, CURRENT_SCHEMA:
		return p.parseValueFunc()
	case INTERVAL:
		return p.parseIntervalConst()
	case INT, INTEGER, SMALLINT, BIGINT, REAL, FLOAT, DECIMAL, DEC, NUMERIC,
		BOOLEAN, BIT, CHAR, CHARACTER, NCHAR, NATIONAL, VARCHAR, TIMESTAMP, TIME:
		return p.parseTypedConst()
	case DOUBLE:
		if p.peekN(1) == PRECISION {
			return p.parseTypedConst()
		}
	}

	if isColId(x.Tok) || isTypeFunctionName(x.Tok) {
		return p.parseNameExpr()
	}
	return nil, p.errorUnexpected()
}

// parseTypedConst parses a constant with a leading type: type 'literal'.
func (p *Parser) parseTypedConst() (_ *Node, err error) {
	typ, err := p.parseSimpleTypename()
	if err != nil {
		return nil, err
	}
	x, err := p.expect(SCONST)
	if err != nil {
		return nil, err
	}
	return newTypeCast(newStringConst(x.Lit, x.Pos.Offset), typ, -1), nil
}

// parseIntervalConst parses INTERVAL 'literal' [fields] and
// INTERVAL(p) 'literal'.
func (p *Parser) parseIntervalConst() (_ *Node, err error) {
	loc := p.lex().Pos.Offset
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
		typmods = List{newIntConst(intervalFullRange, -1), newIntConst(n, x.Pos.Offset)}
	}
	s, err := p.expect(SCONST)
	if err != nil {
		return nil, err
	}
	if typmods == nil {
		if typmods, err = p.parseOptInterval(); err != nil {
			return nil, err
		}
	}
	typ := systemTypeName("interval", typmods, loc)
	return newTypeCast(newStringConst(s.Lit, s.Pos.Offset), typ, -1), nil
}

// parseNameExpr parses the expressions led by a name: column references,
// function calls and generic typed constants.
func (p *Parser) parseNameExpr() (_ *Node, err error) {
	first := p.lex()
	loc := first.Pos.Offset

	if isTypeFunctionName(first.Tok) {
		switch p.peek() {
		case LP:
			return p.parseFuncCall(names(first.Lit), loc)
		case SCONST:
			s := p.lex()
			typ := newTypeName(names(first.Lit), nil, loc)
			return newTypeCast(newStringConst(s.Lit, s.Pos.Offset), typ, -1), nil
		}
	}
	if !isColId(first.Tok) {
		return nil, p.errorAt(first)
	}

	fields := List{StringLit(first.Lit)}
	star := false
	for p.peek() == DOT {
		p.lex()
		if x := p.next(); x.Tok == STAR {
			p.lex()
			fields = append(fields, NewNode(AStar))
			star = true
			break
		}
		label, err := p.parseColLabel()
		if err != nil {
			return nil, err
		}
		fields = append(fields, StringLit(label))
	}

	if !star && len(fields) > 1 {
		switch p.peek() {
		case LP:
			return p.parseFuncCall(fields, loc)
		case SCONST:
			s := p.lex()
			typ := newTypeName(fields, nil, loc)
			return newTypeCast(newStringConst(s.Lit, s.Pos.Offset), typ, -1), nil
		}
	}

	ref := NewNode(ColumnRef).Set("fields", fields).SetLocation(loc)
	if star {
		return ref, nil
	}
	return p.parseOptIndirection(ref)
}

// parseOptIndirection parses trailing subscripts and field selections.
func (p *Parser) parseOptIndirection(arg *Node) (_ *Node, err error) {
	ind, err := p.parseIndirectionList()
	if err != nil {
		return nil, err
	}
	if len(ind) == 0 {
		return arg, nil
	}
	return NewNode(AIndirection).Set("arg", arg).Set("indirection", ind), nil
}

// parseIndirectionList parses [subscript], [lower:upper], .field and .*
// items.
func (p *Parser) parseIndirectionList() (_ List, err error) {
	var ind List
	for {
		switch p.peek() {
		case LBRACKET:
			p.lex()
			lower, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			indices := NewNode(AIndices)
			if p.accept(COLON) {
				upper, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				indices.Set("lidx", lower).Set("uidx", upper)
			} else {
				indices.Set("uidx", lower)
			}
			if _, err := p.expect(RBRACKET); err != nil {
				return nil, err
			}
			ind = append(ind, indices)
		case DOT:
			p.lex()
			if p.accept(STAR) {
				ind = append(ind, NewNode(AStar))
				continue
			}
			label, err := p.parseColLabel()
			if err != nil {
				return nil, err
			}
			ind = append(ind, StringLit(label))
		default:
			return ind, nil
		}
	}
}

// parseParenExpr parses a scalar subquery, a parenthesized expression or
// an implicit row constructor.
func (p *Parser) parseParenExpr() (_ *Node, err error) {
	loc := p.next().Pos.Offset
	if sub, ok, subErr := p.trySubselect(); ok {
		return p.parseOptIndirection(newSubLink(ExprSubLink, nil, nil, sub, loc))
	} else if subErr != nil {
		defer func() { err = laterError(err, subErr) }()
	}

	p.lex()
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.accept(COMMA) {
		rest, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
		return newRowExpr(append(List{x}, rest...), 2, loc), nil
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return p.parseOptIndirection(x)
}

// newRowExpr builds a ROW. format is 0 for ROW(...) and 2 for (a, b).
func newRowExpr(args List, format int, loc int) *Node {
	return NewNode(RowExpr).Set("args", args).SetInt("row_format", format).SetLocation(loc)
}

// parseArrayExpr parses [elements] where elements are expressions or
// nested bracketed lists.
func (p *Parser) parseArrayExpr() (_ *Node, err error) {
	lb, err := p.expect(LBRACKET)
	if err != nil {
		return nil, err
	}
	var elems List
	switch p.peek() {
	case RBRACKET:
	case LBRACKET:
		for {
			sub, err := p.parseArrayExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, sub)
			if !p.accept(COMMA) {
				break
			}
		}
	default:
		if elems, err = p.parseExprList(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(RBRACKET); err != nil {
		return nil, err
	}
	return NewNode(AArrayExpr).Set("elements", elems).SetLocation(lb.Pos.Offset), nil
}

func (p *Parser) parseCaseExpr() (_ *Node, err error) {
	loc := p.lex().Pos.Offset

	var arg *Node
	if p.peek() != WHEN {
		if arg, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}

	var whens List
	for p.peek() == WHEN {
		wloc := p.lex().Pos.Offset
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(THEN); err != nil {
			return nil, err
		}
		result, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		whens = append(whens, NewNode(CaseWhen).Set("expr", cond).Set("result", result).SetLocation(wloc))
	}
	if len(whens) == 0 {
		return nil, p.errorUnexpected()
	}

	var def *Node
	if p.accept(ELSE) {
		if def, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(END); err != nil {
		return nil, err
	}
	return NewNode(CaseExpr).
		Set("arg", arg).
		Set("args", whens).
		Set("defresult", def).
		SetLocation(loc), nil
}

// parseValueFunc parses the niladic datetime and user functions.
func (p *Parser) parseValueFunc() (_ *Node, err error) {
	x := p.lex()
	loc := x.Pos.Offset

	// 'now'::text::type[(precision)]
	nowCast := func(typ string) (*Node, error) {
		var typmods List
		if p.accept(LP) {
			n := p.next()
			v, err := p.parseIconst()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RP); err != nil {
				return nil, err
			}
			typmods = List{newIntConst(v, n.Pos.Offset)}
		}
		now := newTypeCast(newStringConst("now", loc), systemTypeName("text", nil, -1), -1)
		return newTypeCast(now, systemTypeName(typ, typmods, -1), -1), nil
	}

	switch x.Tok {
	case CURRENT_DATE:
		return nowCast("date")
	case CURRENT_TIME:
		return nowCast("timetz")
	case CURRENT_TIMESTAMP:
		if p.peek() == LP {
			return nowCast("timestamptz")
		}
		return newFuncCall(names("pg_catalog", "now"), nil, loc), nil
	case LOCALTIME:
		return nowCast("time")
	case LOCALTIMESTAMP:
		return nowCast("timestamp")
	case CURRENT_ROLE, CURRENT_USER, USER:
		return newFuncCall(names("pg_catalog", "current_user"), nil, loc), nil
	case SESSION_USER:
		return newFuncCall(names("pg_catalog", "session_user"), nil, loc), nil
	case CURRENT_CATALOG:
		return newFuncCall(names("pg_catalog", "current_database"), nil, loc), nil
	default:
		return newFuncCall(names("pg_catalog", "current_schema"), nil, loc), nil
	}
}

// parseSpecialFunc parses the functions with keyword syntax inside their
// argument list, and COALESCE, GREATEST, LEAST and NULLIF.
func (p *Parser) parseSpecialFunc() (_ *Node, err error) {
	x := p.lex()
	loc := x.Pos.Offset
	p.lex() // (

	var args List
	switch x.Tok {
	case EXTRACT:
		if p.peek() != RP {
			f := p.next()
			switch f.Tok {
			case SCONST, IDENT, YEAR, MONTH, DAY, HOUR, MINUTE, SECOND:
				p.lex()
			default:
				return nil, p.errorUnexpected()
			}
			if _, err := p.expect(FROM); err != nil {
				return nil, err
			}
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = List{newStringConst(f.Lit, f.Pos.Offset), e}
		}
		return p.finishSpecialFunc(newFuncCall(names("pg_catalog", "date_part"), args, loc))
	case OVERLAY:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(PLACING); err != nil {
			return nil, err
		}
		placing, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(FROM); err != nil {
			return nil, err
		}
		from, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = List{e, placing, from}
		if p.accept(FOR) {
			n, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, n)
		}
		return p.finishSpecialFunc(newFuncCall(names("pg_catalog", "overlay"), args, loc))
	case POSITION:
		if p.peek() != RP {
			sub, err := p.parseBinaryExpr(IN.Precedence() + 1)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(IN); err != nil {
				return nil, err
			}
			s, err := p.parseBinaryExpr(IN.Precedence() + 1)
			if err != nil {
				return nil, err
			}
			args = List{s, sub}
		}
		return p.finishSpecialFunc(newFuncCall(names("pg_catalog", "position"), args, loc))
	case SUBSTRING:
		if p.peek() != RP {
			if args, err = p.parseSubstrList(); err != nil {
				return nil, err
			}
		}
		return p.finishSpecialFunc(newFuncCall(names("pg_catalog", "substring"), args, loc))
	case TRIM:
		name := "btrim"
		switch {
		case p.accept(LEADING):
			name = "ltrim"
		case p.accept(TRAILING):
			name = "rtrim"
		default:
			p.accept(BOTH)
		}
		if args, err = p.parseTrimList(); err != nil {
			return nil, err
		}
		return p.finishSpecialFunc(newFuncCall(names("pg_catalog", name), args, loc))
	case NULLIF:
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COMMA); err != nil {
			return nil, err
		}
		b, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return p.finishSpecialFunc(newAExpr(AExprNullIf, names("="), a, b, loc))
	}

	if args, err = p.parseExprList(); err != nil {
		return nil, err
	}
	switch x.Tok {
	case COALESCE:
		return p.finishSpecialFunc(NewNode(CoalesceExpr).Set("args", args).SetLocation(loc))
	case GREATEST:
		return p.finishSpecialFunc(NewNode(MinMaxExpr).SetInt("op", IsGreatest).Set("args", args).SetLocation(loc))
	default:
		return p.finishSpecialFunc(NewNode(MinMaxExpr).SetInt("op", IsLeast).Set("args", args).SetLocation(loc))
	}
}

func (p *Parser) finishSpecialFunc(n *Node) (*Node, error) {
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return n, nil
}

// parseSubstrList parses the arguments of SUBSTRING in either the SQL
// FROM/FOR form or as a plain list.
func (p *Parser) parseSubstrList() (_ List, err error) {
	s, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	switch p.peek() {
	case FROM:
		p.lex()
		from, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.accept(FOR) {
			n, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return List{s, from, n}, nil
		}
		return List{s, from}, nil
	case FOR:
		p.lex()
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.accept(FROM) {
			from, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return List{s, from, n}, nil
		}
		return List{s, newIntConst(1, -1), n}, nil
	case COMMA:
		p.lex()
		rest, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		return append(List{s}, rest...), nil
	}
	return List{s}, nil
}

// parseTrimList parses [chars] FROM string, FROM string or a plain list.
// The string comes first in the result.
func (p *Parser) parseTrimList() (_ List, err error) {
	if p.accept(FROM) {
		return p.parseExprList()
	}
	chars, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.accept(FROM) {
		l, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		return append(l, chars), nil
	}
	if p.accept(COMMA) {
		rest, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		return append(List{chars}, rest...), nil
	}
	return List{chars}, nil
}

// parseFuncCall parses the argument list and trailing clauses of a call
// to name.
func (p *Parser) parseFuncCall(name List, loc int) (_ *Node, err error) {
	if _, err := p.expect(LP); err != nil {
		return nil, err
	}

	var (
		args     List
		order    List
		star     bool
		distinct bool
		variadic bool
	)
	switch {
	case p.accept(STAR):
		star = true
	case p.peek() == RP:
	default:
		if p.accept(DISTINCT) {
			distinct = true
		} else {
			p.accept(ALL)
		}
		for {
			if p.accept(VARIADIC) {
				variadic = true
			}
			arg, err := p.parseFuncArg()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if variadic || !p.accept(COMMA) {
				break
			}
		}
		if p.acceptSeq(ORDER, BY) {
			if order, err = p.parseSortList(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}

	withinGroup := false
	if p.acceptSeq(WITHIN, GROUP) {
		if err := p.expectSeq(LP, ORDER, BY); err != nil {
			return nil, err
		}
		if order, err = p.parseSortList(); err != nil {
			return nil, err
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
		withinGroup = true
	}

	var filter *Node
	if p.acceptSeq(FILTER, LP) {
		if _, err := p.expect(WHERE); err != nil {
			return nil, err
		}
		if filter, err = p.parseExpr(); err != nil {
			return nil, err
		}
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
	}

	var over *Node
	if p.peek() == OVER {
		if over, err = p.parseOverClause(); err != nil {
			return nil, err
		}
	}

	return NewNode(FuncCall).
		Set("funcname", name).
		Set("args", args).
		Set("agg_order", order).
		Set("agg_filter", filter).
		Set("agg_within_group", Boolean(withinGroup)).
		Set("agg_star", Boolean(star)).
		Set("agg_distinct", Boolean(distinct)).
		Set("func_variadic", Boolean(variadic)).
		Set("over", over).
		SetLocation(loc), nil
}

// parseFuncArg parses an argument, which may be named: name := value or
// name => value.
func (p *Parser) parseFuncArg() (*Node, error) {
	x := p.next()
	if isTypeFunctionName(x.Tok) {
		if tok := p.peekN(1); tok == COLON_EQUALS || tok == EQUALS_GT {
			p.i += 2
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return NewNode(NamedArgExpr).
				Set("arg", arg).
				Set("name", Text(x.Lit)).
				SetInt("argnumber", -1).
				SetLocation(x.Pos.Offset), nil
		}
	}
	return p.parseExpr()
}

// parseOverClause parses OVER name or OVER (window specification).
func (p *Parser) parseOverClause() (_ *Node, err error) {
	p.lex()
	if x := p.next(); x.Tok != LP {
		name, err := p.parseColId()
		if err != nil {
			return nil, err
		}
		return NewNode(WindowDef).
			Set("name", Text(name)).
			SetInt("frameOptions", FrameOptionDefaults).
			SetLocation(x.Pos.Offset), nil
	}
	return p.parseWindowSpecification("")
}

// parseWindowSpecification parses a parenthesized window definition.
func (p *Parser) parseWindowSpecification(name string) (_ *Node, err error) {
	lp, err := p.expect(LP)
	if err != nil {
		return nil, err
	}

	var refname string
	switch tok := p.peek(); tok {
	case PARTITION, RANGE, ROWS:
	default:
		if isColId(tok) {
			refname = p.lex().Lit
		}
	}

	var partition, order List
	if p.acceptSeq(PARTITION, BY) {
		if partition, err = p.parseExprList(); err != nil {
			return nil, err
		}
	}
	if p.acceptSeq(ORDER, BY) {
		if order, err = p.parseSortList(); err != nil {
			return nil, err
		}
	}

	options := FrameOptionDefaults
	var start, end *Node
	if tok := p.peek(); tok == RANGE || tok == ROWS {
		p.lex()
		options = FrameOptionNonDefault | FrameOptionRange
		if tok == ROWS {
			options = FrameOptionNonDefault | FrameOptionRows
		}
		extent, s, e, err := p.parseFrameExtent()
		if err != nil {
			return nil, err
		}
		options |= extent
		start, end = s, e
	}

	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return NewNode(WindowDef).
		Set("name", Text(name)).
		Set("refname", Text(refname)).
		Set("partitionClause", partition).
		Set("orderClause", order).
		SetInt("frameOptions", options).
		Set("startOffset", start).
		Set("endOffset", end).
		SetLocation(lp.Pos.Offset), nil
}

// parseFrameExtent parses a frame bound or BETWEEN bound AND bound and
// returns its option bits and offsets.
func (p *Parser) parseFrameExtent() (options int, start, end *Node, err error) {
	if !p.accept(BETWEEN) {
		x := p.next()
		bound, offset, err := p.parseFrameBound()
		if err != nil {
			return 0, nil, nil, err
		}
		switch bound {
		case FrameOptionStartUnboundedFollowing:
			return 0, nil, nil, p.errorf(x, "frame start cannot be UNBOUNDED FOLLOWING")
		case FrameOptionStartValueFollowing:
			return 0, nil, nil, p.errorf(x, "frame starting from following row cannot end with current row")
		}
		return bound | FrameOptionEndCurrentRow, offset, nil, nil
	}

	x := p.next()
	first, start, err := p.parseFrameBound()
	if err != nil {
		return 0, nil, nil, err
	}
	if first == FrameOptionStartUnboundedFollowing {
		return 0, nil, nil, p.errorf(x, "frame start cannot be UNBOUNDED FOLLOWING")
	}
	if _, err := p.expect(AND); err != nil {
		return 0, nil, nil, err
	}
	y := p.next()
	second, end, err := p.parseFrameBound()
	if err != nil {
		return 0, nil, nil, err
	}
	if second == FrameOptionStartUnboundedPreceding {
		return 0, nil, nil, p.errorf(y, "frame end cannot be UNBOUNDED PRECEDING")
	}
	return FrameOptionBetween | first | second<<1, start, end, nil
}

// parseFrameBound parses one frame bound and returns its start bit.
func (p *Parser) parseFrameBound() (bound int, offset *Node, err error) {
	switch {
	case p.acceptSeq(UNBOUNDED, PRECEDING):
		return FrameOptionStartUnboundedPreceding, nil, nil
	case p.acceptSeq(UNBOUNDED, FOLLOWING):
		return FrameOptionStartUnboundedFollowing, nil, nil
	case p.acceptSeq(CURRENT, ROW):
		return FrameOptionStartCurrentRow, nil, nil
	}
	if offset, err = p.parseExpr(); err != nil {
		return 0, nil, err
	}
	switch p.peek() {
	case PRECEDING:
		p.lex()
		return FrameOptionStartValuePreceding, offset, nil
	case FOLLOWING:
		p.lex()
		return FrameOptionStartValueFollowing, offset, nil
	}
	return 0, nil, p.errorUnexpected()
}

// parseSortList parses the items of an ORDER BY clause.
func (p *Parser) parseSortList() (_ List, err error) {
	var l List
	for {
		item, err := p.parseSortBy()
		if err != nil {
			return nil, err
		}
		l = append(l, item)
		if !p.accept(COMMA) {
			return l, nil
		}
	}
}

func (p *Parser) parseSortBy() (_ *Node, err error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	dir, loc := SortByDefault, -1
	var useOp List
	switch p.peek() {
	case ASC:
		p.lex()
		dir = SortByAsc
	case DESC:
		p.lex()
		dir = SortByDesc
	case USING:
		loc = p.lex().Pos.Offset
		dir = SortByUsing
		if p.peek() == OPERATOR {
			p.lex()
			if useOp, err = p.parseOperatorName(); err != nil {
				return nil, err
			}
		} else {
			op := p.lex()
			if !op.Tok.IsOperator() {
				p.unlex()
				return nil, p.errorUnexpected()
			}
			useOp = names(op.Lit)
		}
	}

	nulls := SortByNullsDefault
	if p.accept(NULLS) {
		switch p.peek() {
		case FIRST:
			nulls = SortByNullsFirst
		case LAST:
			nulls = SortByNullsLast
		default:
			return nil, p.errorUnexpected()
		}
		p.lex()
	}

	return NewNode(SortBy).
		Set("node", expr).
		SetInt("sortby_dir", dir).
		SetInt("sortby_nulls", nulls).
		Set("useOp", useOp).
		SetLocation(loc), nil
}
