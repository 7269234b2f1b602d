package pgquery

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// NameDataLen is the maximum length of an identifier in bytes, including
// the terminating byte PostgreSQL reserves for it.
const NameDataLen = 64

// Lexer converts PostgreSQL text into lexemes. A Lexer never fails:
// malformed input produces an ILLEGAL lexeme that carries the message.
type Lexer struct {
	src string
	buf bytes.Buffer

	ch   rune
	pos  Pos // position of ch
	off  int // byte offset of the next unread rune
	line int
	col  int
	full bool

	warnings []Warning
}

// NewLexer returns a new Lexer reading from text.
func NewLexer(text string) *Lexer {
	return &Lexer{src: text, line: 1, col: 1}
}

// Warnings returns the diagnostics collected while lexing.
func (l *Lexer) Warnings() []Warning {
	return l.warnings
}

// Lex returns the next lexeme. At end of input it returns EOF repeatedly.
func (l *Lexer) Lex() Lexeme {
	for {
		ch := l.peek()
		switch {
		case ch == -1:
			l.read()
			return l.lexeme(EOF, l.pos, "")
		case isSpace(ch):
			l.read()
			continue
		case ch == '-' && l.hasPrefix("--"):
			l.skipLineComment()
			continue
		case ch == '/' && l.hasPrefix("/*"):
			if lx, ok := l.skipBlockComment(); !ok {
				return lx
			}
			continue
		case isDigit(ch):
			return l.lexNumber()
		case ch == '.':
			if next := l.peekByte(1); next >= '0' && next <= '9' {
				return l.lexNumber()
			}
		case ch == 'b' || ch == 'B' || ch == 'x' || ch == 'X':
			if l.peekByte(1) == '\'' {
				return l.lexBitString()
			}
			return l.lexUnquotedIdent()
		case ch == 'e' || ch == 'E' || ch == 'n' || ch == 'N':
			if l.peekByte(1) == '\'' {
				return l.lexString()
			}
			return l.lexUnquotedIdent()
		case (ch == 'u' || ch == 'U') && l.peekByte(1) == '&' && (l.peekByte(2) == '\'' || l.peekByte(2) == '"'):
			return l.lexUnicode()
		case isIdentStart(ch):
			return l.lexUnquotedIdent()
		case ch == '"':
			return l.lexQuotedIdent()
		case ch == '\'':
			return l.lexString()
		case ch == '$':
			return l.lexDollar()
		case ch == '?' && !isOpChar(rune(l.peekByte(1))):
			_, pos := l.read()
			return l.lexeme(PARAM, pos, "?")
		}

		switch ch, pos := l.read(); ch {
		case ';':
			return l.lexeme(SEMI, pos, ";")
		case '(':
			return l.lexeme(LP, pos, "(")
		case ')':
			return l.lexeme(RP, pos, ")")
		case '[':
			return l.lexeme(LBRACKET, pos, "[")
		case ']':
			return l.lexeme(RBRACKET, pos, "]")
		case ',':
			return l.lexeme(COMMA, pos, ",")
		case '.':
			if l.peek() == '.' {
				l.read()
				return l.lexeme(DOT_DOT, pos, "..")
			}
			return l.lexeme(DOT, pos, ".")
		case ':':
			switch l.peek() {
			case ':':
				l.read()
				return l.lexeme(TYPECAST, pos, "::")
			case '=':
				l.read()
				return l.lexeme(COLON_EQUALS, pos, ":=")
			}
			return l.lexeme(COLON, pos, ":")
		default:
			if isOpChar(ch) {
				l.unread()
				return l.lexOperator()
			}
			return Lexeme{Tok: ILLEGAL, Lit: string(ch), Pos: pos, End: l.offset(), Err: "syntax error"}
		}
	}
}

// lexeme builds a lexeme spanning from pos to the current offset.
func (l *Lexer) lexeme(tok Token, pos Pos, lit string) Lexeme {
	return Lexeme{Tok: tok, Lit: lit, Pos: pos, End: l.offset()}
}

// illegal builds an ILLEGAL lexeme spanning from pos to the end of input,
// since every lexical error consumes the rest of the text.
func (l *Lexer) illegal(pos Pos, msg string) Lexeme {
	for ch, _ := l.read(); ch != -1; ch, _ = l.read() {
	}
	return Lexeme{Tok: ILLEGAL, Lit: l.src[pos.Offset:], Pos: pos, End: len(l.src), Err: msg}
}

func (l *Lexer) lexUnquotedIdent() Lexeme {
	assert(isIdentStart(l.peek()))
	pos := l.nextPos()

	l.buf.Reset()
	for ch, _ := l.read(); isIdentCont(ch); ch, _ = l.read() {
		l.buf.WriteRune(ch)
	}
	l.unread()

	ident := downcaseIdentifier(l.buf.String())
	if tok := Lookup(ident); tok != IDENT {
		return l.lexeme(tok, pos, ident)
	}
	return l.lexeme(IDENT, pos, l.truncateIdentifier(ident, pos))
}

func (l *Lexer) lexQuotedIdent() Lexeme {
	ch, pos := l.read()
	assert(ch == '"')

	l.buf.Reset()
	for {
		ch, _ := l.read()
		if ch == -1 {
			return l.illegal(pos, "unterminated quoted identifier")
		} else if ch == '"' {
			if l.peek() == '"' { // escaped quote
				l.read()
				l.buf.WriteRune('"')
				continue
			}
			break
		}
		l.buf.WriteRune(ch)
	}

	if l.buf.Len() == 0 {
		return Lexeme{Tok: ILLEGAL, Lit: `""`, Pos: pos, End: l.offset(), Err: "zero-length delimited identifier"}
	}
	return l.lexeme(IDENT, pos, l.truncateIdentifier(l.buf.String(), pos))
}

// lexString reads a quoted string with an optional E or N prefix.
// Literals separated only by whitespace that includes a newline are
// concatenated.
func (l *Lexer) lexString() Lexeme {
	pos := l.nextPos()
	extended := false
	if ch := l.peek(); ch != '\'' {
		l.read()
		extended = ch == 'e' || ch == 'E'
	}
	ch, _ := l.read()
	assert(ch == '\'')

	l.buf.Reset()
	for {
		ch, _ := l.read()
		switch {
		case ch == -1:
			return l.illegal(pos, "unterminated quoted string")
		case ch == '\'':
			if l.peek() == '\'' { // escaped quote
				l.read()
				l.buf.WriteRune('\'')
				continue
			}
			if l.continueString() {
				continue
			}
			return l.lexeme(SCONST, pos, l.buf.String())
		case ch == '\\' && extended:
			if err := l.readEscape(); err != "" {
				return l.illegal(pos, err)
			}
		default:
			l.buf.WriteRune(ch)
		}
	}
}

// lexUnicode reads U&'...' strings and U&"..." identifiers, decoding
// their escapes with the default backslash or a UESCAPE character.
func (l *Lexer) lexUnicode() Lexeme {
	pos := l.nextPos()
	l.read() // U
	l.read() // &
	quote, _ := l.read()

	l.buf.Reset()
	for {
		ch, _ := l.read()
		if ch == -1 {
			if quote == '"' {
				return l.illegal(pos, "unterminated quoted identifier")
			}
			return l.illegal(pos, "unterminated quoted string")
		} else if ch == quote {
			if l.peek() == quote {
				l.read()
				l.buf.WriteRune(quote)
				continue
			}
			if quote == '\'' && l.continueString() {
				continue
			}
			break
		}
		l.buf.WriteRune(ch)
	}
	raw := l.buf.String()
	if quote == '"' && raw == "" {
		return Lexeme{Tok: ILLEGAL, Lit: l.src[pos.Offset:l.offset()], Pos: pos, End: l.offset(), Err: "zero-length delimited identifier"}
	}

	escape, msg := l.readUEscape()
	if msg == "" {
		raw, msg = decodeUnicodeEscapes(raw, escape)
	}
	if msg != "" {
		return l.illegal(pos, msg)
	}
	if quote == '"' {
		return l.lexeme(IDENT, pos, l.truncateIdentifier(raw, pos))
	}
	return l.lexeme(SCONST, pos, raw)
}

// readUEscape consumes an optional UESCAPE 'c' clause and returns the
// escape character.
func (l *Lexer) readUEscape() (byte, string) {
	i := l.skipBlank(l.offset())
	const kw = "uescape"
	if len(l.src)-i < len(kw) || !strings.EqualFold(l.src[i:i+len(kw)], kw) {
		return '\\', ""
	}
	if j := i + len(kw); j < len(l.src) && isIdentCont(rune(l.src[j])) {
		return '\\', ""
	}

	i = l.skipBlank(i + len(kw))
	if i+2 >= len(l.src) || l.src[i] != '\'' || l.src[i+2] != '\'' {
		return 0, "invalid Unicode escape character"
	}
	c := l.src[i+1]
	if c >= utf8.RuneSelf || isHex(rune(c)) || isSpace(rune(c)) || c == '+' || c == '\'' || c == '"' {
		return 0, "invalid Unicode escape character"
	}
	l.skipTo(i + 3)
	return c, ""
}

// skipBlank returns the offset of the first byte at or after i that is
// not whitespace or part of a comment.
func (l *Lexer) skipBlank(i int) int {
	for i < len(l.src) {
		switch rest := l.src[i:]; {
		case isSpace(rune(rest[0])):
			i++
		case strings.HasPrefix(rest, "--"):
			n := strings.IndexByte(rest, '\n')
			if n < 0 {
				return len(l.src)
			}
			i += n + 1
		case strings.HasPrefix(rest, "/*"):
			n := strings.Index(rest[2:], "*/")
			if n < 0 {
				return i
			}
			i += n + 4
		default:
			return i
		}
	}
	return i
}

// decodeUnicodeEscapes replaces escXXXX and esc+XXXXXX sequences in s
// with the code points they name. A doubled esc stands for itself.
func decodeUnicodeEscapes(s string, esc byte) (string, string) {
	var b strings.Builder
	var high rune
	for i := 0; i < len(s); {
		if s[i] != esc {
			if high != 0 {
				return "", "invalid Unicode surrogate pair"
			}
			b.WriteByte(s[i])
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == esc {
			if high != 0 {
				return "", "invalid Unicode surrogate pair"
			}
			b.WriteByte(esc)
			i += 2
			continue
		}

		var digits string
		switch {
		case i+5 <= len(s) && allHex(s[i+1:i+5]):
			digits, i = s[i+1:i+5], i+5
		case i+8 <= len(s) && s[i+1] == '+' && allHex(s[i+2:i+8]):
			digits, i = s[i+2:i+8], i+8
		default:
			return "", "invalid Unicode escape"
		}
		v, _ := strconv.ParseUint(digits, 16, 32)
		r := rune(v)

		switch {
		case high != 0:
			if r < 0xDC00 || r > 0xDFFF {
				return "", "invalid Unicode surrogate pair"
			}
			b.WriteRune(utf16.DecodeRune(high, r))
			high = 0
		case r >= 0xD800 && r <= 0xDBFF:
			high = r
		case r >= 0xDC00 && r <= 0xDFFF:
			return "", "invalid Unicode surrogate pair"
		case r == 0 || r > utf8.MaxRune:
			return "", "invalid Unicode escape value"
		default:
			b.WriteRune(r)
		}
	}
	if high != 0 {
		return "", "invalid Unicode surrogate pair"
	}
	return b.String(), ""
}

func allHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isHex(rune(s[i])) {
			return false
		}
	}
	return true
}

// continueString consumes whitespace up to the opening quote of a
// continuation literal and reports whether one was found.
func (l *Lexer) continueString() bool {
	i, newline := l.offset(), false
	for i < len(l.src) {
		switch c := l.src[i]; {
		case c == '\n' || c == '\r':
			newline = true
			i++
		case c == ' ' || c == '\t' || c == '\f' || c == '\v':
			i++
		case c == '-' && strings.HasPrefix(l.src[i:], "--"):
			for i < len(l.src) && l.src[i] != '\n' {
				i++
			}
		case c == '\'' && newline:
			l.skipTo(i + 1)
			return true
		default:
			return false
		}
	}
	return false
}

// readEscape decodes one backslash escape of an E'' literal.
func (l *Lexer) readEscape() string {
	ch, _ := l.read()
	switch ch {
	case -1:
		return "unterminated quoted string"
	case 'b':
		l.buf.WriteByte('\b')
	case 'f':
		l.buf.WriteByte('\f')
	case 'n':
		l.buf.WriteByte('\n')
	case 'r':
		l.buf.WriteByte('\r')
	case 't':
		l.buf.WriteByte('\t')
	case 'x':
		var digits []rune
		for len(digits) < 2 && isHex(l.peek()) {
			c, _ := l.read()
			digits = append(digits, c)
		}
		if len(digits) == 0 {
			l.buf.WriteRune('x')
			return ""
		}
		v, _ := strconv.ParseUint(string(digits), 16, 8)
		l.buf.WriteByte(byte(v))
	case 'u', 'U':
		n := 4
		if ch == 'U' {
			n = 8
		}
		var digits []rune
		for len(digits) < n && isHex(l.peek()) {
			c, _ := l.read()
			digits = append(digits, c)
		}
		if len(digits) != n {
			return "invalid Unicode escape"
		}
		v, _ := strconv.ParseUint(string(digits), 16, 32)
		l.buf.WriteRune(rune(v))
	default:
		if ch >= '0' && ch <= '7' {
			digits := []rune{ch}
			for len(digits) < 3 && l.peek() >= '0' && l.peek() <= '7' {
				c, _ := l.read()
				digits = append(digits, c)
			}
			v, _ := strconv.ParseUint(string(digits), 8, 16)
			l.buf.WriteByte(byte(v))
			return ""
		}
		l.buf.WriteRune(ch)
	}
	return ""
}

// lexBitString reads B'0101' and X'EFFF'. The literal keeps a lower-case
// marker followed by the digits as written.
func (l *Lexer) lexBitString() Lexeme {
	start, pos := l.read()
	quote, _ := l.read()
	assert(quote == '\'')

	marker, msg := 'b', "unterminated bit string literal"
	if start == 'x' || start == 'X' {
		marker, msg = 'x', "unterminated hexadecimal string literal"
	}

	l.buf.Reset()
	l.buf.WriteRune(marker)
	for {
		ch, _ := l.read()
		if ch == -1 {
			return l.illegal(pos, msg)
		} else if ch == '\'' {
			if l.continueString() {
				continue
			}
			return l.lexeme(BCONST, pos, l.buf.String())
		}
		l.buf.WriteRune(ch)
	}
}

// lexDollar reads $1 parameters and $tag$...$tag$ strings.
func (l *Lexer) lexDollar() Lexeme {
	ch, pos := l.read()
	assert(ch == '$')

	if isDigit(l.peek()) {
		l.buf.Reset()
		l.buf.WriteRune('$')
		for isDigit(l.peek()) {
			ch, _ := l.read()
			l.buf.WriteRune(ch)
		}
		return l.lexeme(PARAM, pos, l.buf.String())
	}

	// Read the opening delimiter.
	l.buf.Reset()
	l.buf.WriteRune('$')
	if ch := l.peek(); ch != '$' && !isIdentStart(ch) {
		return Lexeme{Tok: ILLEGAL, Lit: "$", Pos: pos, End: l.offset(), Err: "syntax error"}
	}
	for {
		ch, _ := l.read()
		if ch == '$' {
			l.buf.WriteRune('$')
			break
		} else if !isIdentCont(ch) {
			return l.illegal(pos, "unterminated dollar-quoted string")
		}
		l.buf.WriteRune(ch)
	}
	delim := l.buf.String()

	body := l.offset()
	end := strings.Index(l.src[body:], delim)
	if end < 0 {
		return l.illegal(pos, "unterminated dollar-quoted string")
	}
	l.skipTo(body + end + len(delim))
	return l.lexeme(SCONST, pos, l.src[body:body+end])
}

func (l *Lexer) lexNumber() Lexeme {
	pos := l.nextPos()
	tok := ICONST

	l.buf.Reset()
	for isDigit(l.peek()) {
		ch, _ := l.read()
		l.buf.WriteRune(ch)
	}

	// A trailing ".." belongs to a range, as in 1..5.
	if l.peek() == '.' && !l.hasPrefix("..") {
		tok = FCONST
		ch, _ := l.read()
		l.buf.WriteRune(ch)
		for isDigit(l.peek()) {
			ch, _ := l.read()
			l.buf.WriteRune(ch)
		}
	}

	// Read exponent with optional +/- sign.
	if ch := l.peek(); ch == 'e' || ch == 'E' {
		rest := l.src[l.offset()+1:]
		if rest != "" && (isDigit(rune(rest[0])) || ((rest[0] == '+' || rest[0] == '-') && len(rest) > 1 && isDigit(rune(rest[1])))) {
			tok = FCONST
			ch, _ := l.read()
			l.buf.WriteRune(ch)
			if l.peek() == '+' || l.peek() == '-' {
				ch, _ := l.read()
				l.buf.WriteRune(ch)
			}
			for isDigit(l.peek()) {
				ch, _ := l.read()
				l.buf.WriteRune(ch)
			}
		}
	}

	lit := l.buf.String()
	if tok == ICONST {
		if _, err := strconv.ParseInt(lit, 10, 32); err != nil {
			// Integers that overflow are kept verbatim as numerics.
			tok = FCONST
		}
	}
	return l.lexeme(tok, pos, lit)
}

// lexOperator reads the longest run of operator characters, applying the
// PostgreSQL rules about embedded comments and trailing signs.
func (l *Lexer) lexOperator() Lexeme {
	pos := l.nextPos()
	start := l.offset()

	end := start
	for end < len(l.src) && isOpChar(rune(l.src[end])) {
		if end > start && (strings.HasPrefix(l.src[end:], "--") || strings.HasPrefix(l.src[end:], "/*")) {
			break
		}
		end++
	}
	op := l.src[start:end]

	// Trailing + and - are only allowed when the operator contains one of
	// the characters that cannot start a SQL-standard operator.
	if len(op) > 1 && (op[len(op)-1] == '+' || op[len(op)-1] == '-') && !strings.ContainsAny(op, "~!@#^&|`?%") {
		for len(op) > 1 && (op[len(op)-1] == '+' || op[len(op)-1] == '-') {
			op = op[:len(op)-1]
		}
	}
	// A trailing ? that ends the run is a positional parameter, as in a=?.
	if len(op) > 1 && op[len(op)-1] == '?' && start+len(op) == end {
		op = op[:len(op)-1]
	}
	l.skipTo(start + len(op))

	switch op {
	case "=":
		return l.lexeme(EQ, pos, op)
	case "<>", "!=":
		return l.lexeme(NE, pos, "<>")
	case "<":
		return l.lexeme(LT, pos, op)
	case "<=":
		return l.lexeme(LE, pos, op)
	case ">":
		return l.lexeme(GT, pos, op)
	case ">=":
		return l.lexeme(GE, pos, op)
	case "+":
		return l.lexeme(PLUS, pos, op)
	case "-":
		return l.lexeme(MINUS, pos, op)
	case "*":
		return l.lexeme(STAR, pos, op)
	case "/":
		return l.lexeme(SLASH, pos, op)
	case "%":
		return l.lexeme(PERCENT, pos, op)
	case "^":
		return l.lexeme(CARET, pos, op)
	case "=>":
		return l.lexeme(EQUALS_GT, pos, op)
	case "?":
		return l.lexeme(PARAM, pos, op)
	}
	return l.lexeme(OP, pos, op)
}

func (l *Lexer) skipLineComment() {
	for ch, _ := l.read(); ch != '\n' && ch != -1; ch, _ = l.read() {
	}
}

// skipBlockComment skips a possibly nested /* */ comment. It returns an
// ILLEGAL lexeme and false when the comment is not terminated.
func (l *Lexer) skipBlockComment() (Lexeme, bool) {
	_, pos := l.read()
	l.read()

	depth := 1
	for depth > 0 {
		ch, _ := l.read()
		switch {
		case ch == -1:
			return l.illegal(pos, "unterminated /* comment"), false
		case ch == '/' && l.peek() == '*':
			l.read()
			depth++
		case ch == '*' && l.peek() == '/':
			l.read()
			depth--
		}
	}
	return Lexeme{}, true
}

// truncateIdentifier shortens identifiers longer than NameDataLen-1 bytes
// on a character boundary and records a warning.
func (l *Lexer) truncateIdentifier(ident string, pos Pos) string {
	if len(ident) < NameDataLen {
		return ident
	}
	n := NameDataLen - 1
	for n > 0 && !utf8.RuneStart(ident[n]) {
		n--
	}
	l.warnings = append(l.warnings, Warning{
		Message:  fmt.Sprintf("identifier %q will be truncated to %q", ident, ident[:n]),
		Location: pos.Offset,
	})
	return ident[:n]
}

func (l *Lexer) read() (rune, Pos) {
	if l.full {
		l.full = false
		return l.ch, l.pos
	}

	if l.off >= len(l.src) {
		l.ch = -1
		l.pos = Pos{Offset: len(l.src), Line: l.line, Column: l.col}
		return l.ch, l.pos
	}

	ch, size := utf8.DecodeRuneInString(l.src[l.off:])
	l.ch, l.pos = ch, Pos{Offset: l.off, Line: l.line, Column: l.col}
	l.off += size
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return l.ch, l.pos
}

func (l *Lexer) peek() rune {
	if !l.full {
		l.read()
		l.unread()
	}
	return l.ch
}

func (l *Lexer) unread() {
	assert(!l.full)
	l.full = true
}

// offset returns the byte offset of the next rune to be read.
func (l *Lexer) offset() int {
	if l.full {
		return l.pos.Offset
	}
	return l.off
}

// nextPos returns the position of the next rune to be read.
func (l *Lexer) nextPos() Pos {
	l.peek()
	return l.pos
}

// peekByte returns the byte n bytes past the next unread rune, or 0.
func (l *Lexer) peekByte(n int) byte {
	if i := l.offset() + n; i < len(l.src) {
		return l.src[i]
	}
	return 0
}

func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.src[l.offset():], s)
}

// skipTo reads runes until the byte offset reaches off.
func (l *Lexer) skipTo(off int) {
	for l.offset() < off {
		if ch, _ := l.read(); ch == -1 {
			return
		}
	}
}

// downcaseIdentifier folds ASCII letters to lower case. Other bytes are
// left alone, as PostgreSQL does for multi-byte encodings.
func downcaseIdentifier(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isHex(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch rune) bool {
	return isAlpha(ch) || ch == '_' || ch >= 0x80
}

func isIdentCont(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '$'
}

func isOpChar(ch rune) bool {
	return strings.ContainsRune("~!@#^&|`?+-*/%<>=", ch)
}
