package pgquery

// Lexeme is a single token read from the input.
type Lexeme struct {
	Tok Token
	Lit string // decoded text: folded name, string contents, operator
	Pos Pos    // position of the first byte
	End int    // byte offset just past the lexeme
	Err string // lexical error message, set for ILLEGAL only
}

// LexemeKind is the coarse classification of a lexeme.
type LexemeKind int

const (
	KindIllegal LexemeKind = iota
	KindEOF
	KindKeyword
	KindIdentifier
	KindInteger
	KindFloat
	KindString
	KindBitString
	KindOperator
	KindPunctuation
	KindParam
)

var lexemeKinds = [...]string{
	KindIllegal:     "illegal",
	KindEOF:         "eof",
	KindKeyword:     "keyword",
	KindIdentifier:  "identifier",
	KindInteger:     "integer",
	KindFloat:       "float",
	KindString:      "string",
	KindBitString:   "bitstring",
	KindOperator:    "operator",
	KindPunctuation: "punctuation",
	KindParam:       "param",
}

func (k LexemeKind) String() string {
	if k >= 0 && int(k) < len(lexemeKinds) {
		return lexemeKinds[k]
	}
	return "unknown"
}

// Kind classifies the lexeme.
func (x Lexeme) Kind() LexemeKind {
	switch {
	case x.Tok == ILLEGAL:
		return KindIllegal
	case x.Tok == EOF:
		return KindEOF
	case x.Tok.IsKeyword():
		return KindKeyword
	case x.Tok.IsOperator():
		return KindOperator
	}
	switch x.Tok {
	case IDENT:
		return KindIdentifier
	case ICONST:
		return KindInteger
	case FCONST:
		return KindFloat
	case SCONST:
		return KindString
	case BCONST:
		return KindBitString
	case PARAM:
		return KindParam
	}
	return KindPunctuation
}

// Tokenize returns every lexeme of text up to and including EOF. Lexing
// stops at the first ILLEGAL lexeme, which is returned last.
func Tokenize(text string) []Lexeme {
	lexemes, _ := tokenize(text)
	return lexemes
}

func tokenize(text string) ([]Lexeme, []Warning) {
	l := NewLexer(text)
	var lexemes []Lexeme
	for {
		x := l.Lex()
		lexemes = append(lexemes, x)
		if x.Tok == EOF || x.Tok == ILLEGAL {
			return lexemes, l.Warnings()
		}
	}
}
