package pgquery

import (
	"fmt"
	"strings"
)

// ParseResult is the outcome of a successful parse.
type ParseResult struct {
	Query      string
	Statements []*Node
	Warnings   []Warning
}

// JSON returns the tree in pg_query's JSON form.
func (r *ParseResult) JSON() []byte {
	return MarshalStatements(r.Statements)
}

// Tables returns the names of the tables referenced by the statements, in
// the order ExtractTables documents. Duplicates are kept.
func (r *ParseResult) Tables() []string {
	return ExtractTables(r.Statements)
}

// Parse parses text into a list of statement trees. Node locations in the
// result are 0-based character offsets into text.
//
// Lexical and syntax errors are returned as *ParseError.
func Parse(text string) (result *ParseResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, &ParseError{Message: fmt.Sprintf("internal parser error: %v", r)}
		}
	}()

	lexemes, warnings := tokenize(text)
	p := &Parser{src: text, lexemes: lexemes, warnings: warnings}
	stmts, err := p.parseStatementList()

	m := newLocationMap(text)
	if err != nil {
		if e, ok := err.(*ParseError); ok {
			m.translateError(e)
		}
		return nil, err
	}
	newLocationRewriter(m).Rewrite(stmts)
	return &ParseResult{
		Query:      text,
		Statements: stmts,
		Warnings:   m.translateWarnings(p.warnings),
	}, nil
}

// MustParse parses text. Panic on error.
func MustParse(text string) *ParseResult {
	result, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return result
}

// Parser is a recursive-descent parser over the lexemes of one input.
type Parser struct {
	src      string
	lexemes  []Lexeme // always ends with EOF or ILLEGAL
	i        int      // index of the next lexeme
	warnings []Warning
}

func (p *Parser) parseStatementList() (stmts []*Node, err error) {
	for {
		switch p.peek() {
		case SEMI:
			p.lex()
			continue
		case EOF:
			return stmts, nil
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)

		// Read trailing semicolon or end of input.
		if tok := p.peek(); tok != SEMI && tok != EOF {
			return nil, p.errorUnexpected()
		}
	}
}

// parseStatement parses all statement types.
func (p *Parser) parseStatement() (*Node, error) {
	switch p.peek() {
	case SELECT, VALUES, TABLE, LP:
		return p.parseSelectStatement()
	case WITH:
		return p.parseWithStatement()
	case INSERT:
		return p.parseInsertStatement(nil)
	case UPDATE:
		return p.parseUpdateStatement(nil)
	case DELETE:
		return p.parseDeleteStatement(nil)
	case COPY:
		return p.parseCopyStatement()
	case BEGIN, START, COMMIT, END, ROLLBACK, ABORT, SAVEPOINT, RELEASE, PREPARE:
		return p.parseTransactionStatement()
	case CREATE:
		return p.parseCreateStatement()
	case ALTER:
		return p.parseAlterStatement()
	case DROP:
		return p.parseDropStatement()
	case GRANT, REVOKE:
		return p.parseGrantStatement()
	case TRUNCATE:
		return p.parseTruncateStatement()
	case VACUUM:
		return p.parseVacuumStatement()
	case ANALYZE, ANALYSE:
		return p.parseAnalyzeStatement()
	case CHECKPOINT:
		p.lex()
		return NewNode(CheckPointStmt), nil
	case SET:
		return p.parseSetStatement()
	case RESET:
		return p.parseResetStatement()
	case SHOW:
		return p.parseShowStatement()
	case LOCK:
		return p.parseLockStatement()
	case EXPLAIN:
		return p.parseExplainStatement()
	case REFRESH:
		return p.parseRefreshStatement()
	default:
		return nil, p.errorUnexpected()
	}
}

// parseWithStatement parses a statement led by a WITH clause.
func (p *Parser) parseWithStatement() (_ *Node, err error) {
	m := p.mark()
	with, err := p.parseWithClause()
	if err != nil {
		return nil, err
	}
	switch p.peek() {
	case INSERT:
		return p.parseInsertStatement(with)
	case UPDATE:
		return p.parseUpdateStatement(with)
	case DELETE:
		return p.parseDeleteStatement(with)
	}
	p.reset(m)
	return p.parseSelectStatement()
}

// lex returns the next lexeme and advances past it.
func (p *Parser) lex() Lexeme {
	x := p.at(p.i)
	p.i++
	return x
}

// unlex moves back one lexeme.
func (p *Parser) unlex() {
	assert(p.i > 0)
	p.i--
}

// peek returns the token of the next lexeme without advancing.
func (p *Parser) peek() Token {
	return p.at(p.i).Tok
}

// peekN returns the token n lexemes ahead of the next one.
func (p *Parser) peekN(n int) Token {
	return p.at(p.i + n).Tok
}

// next returns the next lexeme without advancing.
func (p *Parser) next() Lexeme {
	return p.at(p.i)
}

func (p *Parser) at(i int) Lexeme {
	if i >= len(p.lexemes) {
		return p.lexemes[len(p.lexemes)-1]
	}
	return p.lexemes[i]
}

// accept consumes the next lexeme if it is tok.
func (p *Parser) accept(tok Token) bool {
	if p.peek() != tok {
		return false
	}
	p.lex()
	return true
}

// acceptSeq consumes toks if they are the next lexemes.
func (p *Parser) acceptSeq(toks ...Token) bool {
	for i, tok := range toks {
		if p.peekN(i) != tok {
			return false
		}
	}
	p.i += len(toks)
	return true
}

// expect consumes the next lexeme, which must be tok.
func (p *Parser) expect(tok Token) (Lexeme, error) {
	if p.peek() != tok {
		return Lexeme{}, p.errorUnexpected()
	}
	return p.lex(), nil
}

// expectSeq consumes toks, which must be the next lexemes.
func (p *Parser) expectSeq(toks ...Token) error {
	for _, tok := range toks {
		if _, err := p.expect(tok); err != nil {
			return err
		}
	}
	return nil
}

type mark struct {
	i        int
	warnings int
}

// mark records the parser state for a later reset.
func (p *Parser) mark() mark {
	return mark{i: p.i, warnings: len(p.warnings)}
}

// reset restores the state saved by mark.
func (p *Parser) reset(m mark) {
	p.i = m.i
	p.warnings = p.warnings[:m.warnings]
}

// raw returns the input text of x.
func (p *Parser) raw(x Lexeme) string {
	return p.src[x.Pos.Offset:x.End]
}

// warn records a warning at the given byte offset.
func (p *Parser) warn(offset int, msg string) {
	p.warnings = append(p.warnings, Warning{Message: msg, Location: offset})
}

// errorUnexpected returns a syntax error at the next lexeme.
func (p *Parser) errorUnexpected() error {
	return p.errorAt(p.next())
}

// errorAt returns the error PostgreSQL reports for x: a lexical error for
// an ILLEGAL lexeme and a syntax error otherwise.
func (p *Parser) errorAt(x Lexeme) error {
	switch x.Tok {
	case ILLEGAL:
		return p.errorf(x, "%s at or near %s", x.Err, quoteFragment(fragment(x.Lit)))
	case EOF:
		return p.errorf(x, "syntax error at end of input")
	default:
		return p.errorf(x, "syntax error at or near %s", quoteFragment(p.raw(x)))
	}
}

// errorf returns a ParseError located at x. The location is a byte offset
// until Parse translates it.
func (p *Parser) errorf(x Lexeme, format string, args ...interface{}) error {
	return &ParseError{
		Message:  fmt.Sprintf(format, args...),
		Location: x.Pos.Offset,
		Line:     x.Pos.Line,
		Column:   x.Pos.Column,
	}
}

func quoteFragment(s string) string {
	return `"` + s + `"`
}

// parseColId parses an identifier or an unreserved or column-name keyword.
func (p *Parser) parseColId() (string, error) {
	if !isColId(p.peek()) {
		return "", p.errorUnexpected()
	}
	return p.lex().Lit, nil
}

// parseColLabel parses an identifier or any keyword.
func (p *Parser) parseColLabel() (string, error) {
	if !isColLabel(p.peek()) {
		return "", p.errorUnexpected()
	}
	return p.lex().Lit, nil
}

// parseNonReservedWord parses an identifier or a non-reserved keyword.
func (p *Parser) parseNonReservedWord() (string, error) {
	tok := p.peek()
	if !isColId(tok) && !isTypeFunctionName(tok) {
		return "", p.errorUnexpected()
	}
	return p.lex().Lit, nil
}

// parseSconst parses a string constant.
func (p *Parser) parseSconst() (string, error) {
	x, err := p.expect(SCONST)
	if err != nil {
		return "", err
	}
	return x.Lit, nil
}

// parseAnyName parses a possibly qualified name: ColId { . ColLabel }.
func (p *Parser) parseAnyName() (_ []string, err error) {
	first, err := p.parseColId()
	if err != nil {
		return nil, err
	}
	parts := []string{first}
	for p.peek() == DOT {
		p.lex()
		label, err := p.parseColLabel()
		if err != nil {
			return nil, err
		}
		parts = append(parts, label)
	}
	return parts, nil
}

// parseAnyNameList parses a comma separated list of any_name, each as a
// list of string values.
func (p *Parser) parseAnyNameList() (_ List, err error) {
	var l List
	for {
		parts, err := p.parseAnyName()
		if err != nil {
			return nil, err
		}
		l = append(l, names(parts...))
		if !p.accept(COMMA) {
			return l, nil
		}
	}
}

// parseNameList parses a comma separated list of ColIds as string values.
func (p *Parser) parseNameList() (_ List, err error) {
	var l List
	for {
		name, err := p.parseColId()
		if err != nil {
			return nil, err
		}
		l = append(l, StringLit(name))
		if !p.accept(COMMA) {
			return l, nil
		}
	}
}

// parseColumnList parses a parenthesized name list.
func (p *Parser) parseColumnList() (_ List, err error) {
	if _, err := p.expect(LP); err != nil {
		return nil, err
	}
	l, err := p.parseNameList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RP); err != nil {
		return nil, err
	}
	return l, nil
}

// parseOptColumnList parses an optional parenthesized name list.
func (p *Parser) parseOptColumnList() (List, error) {
	if p.peek() != LP {
		return nil, nil
	}
	return p.parseColumnList()
}

// parseFuncName parses a function name: a type/function name or a
// qualified name.
func (p *Parser) parseFuncName() (_ List, err error) {
	tok := p.peek()
	if !isTypeFunctionName(tok) && !(isColId(tok) && p.peekN(1) == DOT) {
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
	return names(parts...), nil
}

// parseQualifiedName parses a relation name into a RANGEVAR.
func (p *Parser) parseQualifiedName() (_ *Node, err error) {
	pos := p.next().Pos.Offset
	parts, err := p.parseAnyName()
	if err != nil {
		return nil, err
	}
	if len(parts) > 3 {
		return nil, p.errorf(p.at(p.i-1), "improper qualified name (too many dotted names): %s", strings.Join(parts, "."))
	}
	return newRangeVar(parts, InhDefault, RelPersistencePermanent, nil, pos), nil
}

// parseQualifiedNameList parses a comma separated list of relation names.
func (p *Parser) parseQualifiedNameList() (_ List, err error) {
	var l List
	for {
		rv, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		l = append(l, rv)
		if !p.accept(COMMA) {
			return l, nil
		}
	}
}

// parseRelationExpr parses a relation name with its inheritance marker:
// name, name *, ONLY name or ONLY (name).
func (p *Parser) parseRelationExpr() (_ *Node, err error) {
	if !p.accept(ONLY) {
		rv, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		if p.accept(STAR) {
			rv.setField("inhOpt", Integer(InhYes))
		}
		return rv, nil
	}

	paren := p.accept(LP)
	rv, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if paren {
		if _, err := p.expect(RP); err != nil {
			return nil, err
		}
	}
	rv.setField("inhOpt", Integer(InhNo))
	return rv, nil
}

// parseRelationExprList parses a comma separated list of relation_expr.
func (p *Parser) parseRelationExprList() (_ List, err error) {
	var l List
	for {
		rv, err := p.parseRelationExpr()
		if err != nil {
			return nil, err
		}
		l = append(l, rv)
		if !p.accept(COMMA) {
			return l, nil
		}
	}
}

// parseRelationExprOptAlias parses the target of UPDATE and DELETE. The
// alias may not be a word in stop.
func (p *Parser) parseRelationExprOptAlias(stop ...Token) (_ *Node, err error) {
	rv, err := p.parseRelationExpr()
	if err != nil {
		return nil, err
	}
	explicit := p.accept(AS)
	tok := p.peek()
	if !explicit {
		for _, s := range stop {
			if tok == s {
				return rv, nil
			}
		}
		if !isColId(tok) {
			return rv, nil
		}
	}
	name, err := p.parseColId()
	if err != nil {
		return nil, err
	}
	setAlias(rv, NewNode(Alias).Set("aliasname", Text(name)))
	return rv, nil
}

// newRangeVar builds a RANGEVAR from one to three name parts.
func newRangeVar(parts []string, inh int, persistence string, alias *Node, loc int) *Node {
	n := NewNode(RangeVar)
	switch len(parts) {
	case 3:
		n.Set(CatalognameField, Text(parts[0]))
		n.Set(SchemanameField, Text(parts[1]))
	case 2:
		n.Set(SchemanameField, Text(parts[0]))
	}
	n.Set(RelnameField, Text(parts[len(parts)-1]))
	n.SetInt("inhOpt", inh)
	n.Set("relpersistence", Text(persistence))
	n.Set("alias", alias)
	n.SetLocation(loc)
	return n
}

// setAlias stores alias on a RANGEVAR or other aliased node, ahead of its
// location.
func setAlias(n, alias *Node) {
	if n.setField("alias", alias) {
		return
	}
	n.insertBefore(LocationField, "alias", alias)
}

// insertBefore stores a field ahead of the named field, or appends it when
// that field is absent.
func (n *Node) insertBefore(before, name string, v Value) {
	for i, f := range n.Fields {
		if f.Name == before {
			n.Fields = append(n.Fields, Field{})
			copy(n.Fields[i+1:], n.Fields[i:])
			n.Fields[i] = Field{Name: name, Value: v}
			return
		}
	}
	n.Set(name, v)
}

// parseOptDropBehavior parses an optional CASCADE or RESTRICT.
func (p *Parser) parseOptDropBehavior() int {
	if p.accept(CASCADE) {
		return DropCascade
	}
	p.accept(RESTRICT)
	return DropRestrict
}

// parseIfExists parses an optional IF EXISTS.
func (p *Parser) parseIfExists() bool {
	return p.acceptSeq(IF, EXISTS)
}

// parseIfNotExists parses an optional IF NOT EXISTS.
func (p *Parser) parseIfNotExists() bool {
	return p.acceptSeq(IF, NOT, EXISTS)
}

// parseIconst parses an integer constant.
func (p *Parser) parseIconst() (int64, error) {
	x, err := p.expect(ICONST)
	if err != nil {
		return 0, err
	}
	return parseInt(x.Lit), nil
}

// parseNumericOnly parses a signed numeric constant as a value node.
func (p *Parser) parseNumericOnly() (Value, error) {
	neg := false
	if p.accept(MINUS) {
		neg = true
	} else {
		p.accept(PLUS)
	}
	x := p.lex()
	switch x.Tok {
	case ICONST:
		v := parseInt(x.Lit)
		if neg {
			v = -v
		}
		return IntegerLit(v), nil
	case FCONST:
		if neg {
			return FloatLit("-" + x.Lit), nil
		}
		return FloatLit(x.Lit), nil
	}
	p.unlex()
	return nil, p.errorUnexpected()
}
