package pgquery_test

import (
	"testing"

	"github.com/sqltree/pgquery"
)

func TestPos_String(t *testing.T) {
	if got, want := (pgquery.Pos{}).String(), `-`; got != want {
		t.Fatalf("String()=%q, want %q", got, want)
	}
	if got, want := (pgquery.Pos{Offset: 10, Line: 2, Column: 4}).String(), `2:4`; got != want {
		t.Fatalf("String()=%q, want %q", got, want)
	}
}

func TestToken_String(t *testing.T) {
	for tok, want := range map[pgquery.Token]string{
		pgquery.SELECT:   "SELECT",
		pgquery.IDENT:    "IDENT",
		pgquery.NE:       "<>",
		pgquery.TYPECAST: "::",
	} {
		if got := tok.String(); got != want {
			t.Fatalf("String()=%q, want %q", got, want)
		}
	}
	if got, want := pgquery.Token(-1).String(), "token(-1)"; got != want {
		t.Fatalf("String()=%q, want %q", got, want)
	}
}

func TestLookup(t *testing.T) {
	if tok := pgquery.Lookup("select"); tok != pgquery.SELECT {
		t.Fatalf("Lookup(select)=%s", tok)
	}
	if tok := pgquery.Lookup("Select"); tok != pgquery.SELECT {
		t.Fatalf("Lookup(Select)=%s", tok)
	}
	if tok := pgquery.Lookup("my_table"); tok != pgquery.IDENT {
		t.Fatalf("Lookup(my_table)=%s", tok)
	}
}

func TestToken_Category(t *testing.T) {
	for tok, want := range map[pgquery.Token]pgquery.KeywordCategory{
		pgquery.SELECT: pgquery.ReservedKeyword,
		pgquery.ABORT:  pgquery.UnreservedKeyword,
		pgquery.BIGINT: pgquery.ColNameKeyword,
		pgquery.LEFT:   pgquery.TypeFuncNameKeyword,
		pgquery.IDENT:  pgquery.NotKeyword,
		pgquery.PLUS:   pgquery.NotKeyword,
	} {
		if got := tok.Category(); got != want {
			t.Fatalf("%s.Category()=%d, want %d", tok, got, want)
		}
	}
}

func TestToken_Precedence(t *testing.T) {
	if pgquery.AND.Precedence() <= pgquery.OR.Precedence() {
		t.Fatal("AND must bind tighter than OR")
	}
	if pgquery.STAR.Precedence() <= pgquery.PLUS.Precedence() {
		t.Fatal("* must bind tighter than +")
	}
	if pgquery.EQ.Precedence() >= pgquery.OP.Precedence() {
		t.Fatal("generic operators must bind tighter than comparisons")
	}
	if got := pgquery.COMMA.Precedence(); got != pgquery.LowestPrec {
		t.Fatalf("COMMA.Precedence()=%d, want %d", got, pgquery.LowestPrec)
	}
}
