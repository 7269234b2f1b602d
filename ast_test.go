package pgquery_test

import (
	"encoding/json"
	"testing"

	"github.com/go-test/deep"
	"github.com/sqltree/pgquery"
)

func TestNode_Set(t *testing.T) {
	t.Run("DropsAbsentValues", func(t *testing.T) {
		n := pgquery.NewNode(pgquery.RangeVar).
			Set("alias", (*pgquery.Node)(nil)).
			Set("schemaname", pgquery.Text("")).
			Set("relname", pgquery.Text("t")).
			Set("cols", pgquery.List{}).
			Set("missing_ok", pgquery.Boolean(false)).
			SetInt("inhOpt", 0).
			SetLocation(-1)
		AssertNodeJSON(t, n, `{"RANGEVAR":{"relname":"t","inhOpt":0}}`)
	})

	t.Run("KeepsOrder", func(t *testing.T) {
		n := pgquery.NewNode(pgquery.DefElem).
			Set("defname", pgquery.Text("oids")).
			Set("arg", pgquery.IntegerLit(1)).
			SetInt("defaction", 0)
		AssertNodeJSON(t, n, `{"DEFELEM":{"defname":"oids","arg":{"Integer":{"ival":1}},"defaction":0}}`)
	})

	t.Run("EmptyNode", func(t *testing.T) {
		AssertNodeJSON(t, pgquery.NewNode(pgquery.CheckPointStmt), `{"CHECKPOINT":{}}`)
	})
}

func TestNode_Accessors(t *testing.T) {
	rel := pgquery.NewNode(pgquery.RangeVar).Set("relname", pgquery.Text("t")).SetLocation(5)
	n := pgquery.NewNode(pgquery.CopyStmt).
		Set(pgquery.RelationField, rel).
		Set("attlist", pgquery.List{pgquery.StringLit("id")}).
		Set("is_from", pgquery.Boolean(true))

	if got := n.Node(pgquery.RelationField); got != rel {
		t.Fatalf("Node()=%v, want %v", got, rel)
	}
	if got := n.Node(pgquery.RelationField).Text(pgquery.RelnameField); got != "t" {
		t.Fatalf("Text()=%q, want t", got)
	}
	if loc, ok := rel.Location(); !ok || loc != 5 {
		t.Fatalf("Location()=%d,%v, want 5,true", loc, ok)
	}
	if !n.Bool("is_from") {
		t.Fatal("Bool(is_from)=false")
	}
	if n.Has("filename") {
		t.Fatal("Has(filename)=true")
	}
	if n := len(n.List("attlist")); n != 1 {
		t.Fatalf("len(List())=%d, want 1", n)
	}

	var missing *pgquery.Node
	if missing.Get("x") != nil || missing.Node("x") != nil {
		t.Fatal("nil node returned a value")
	}
}

func TestNode_Clone(t *testing.T) {
	orig := pgquery.MustParse(`SELECT a FROM t WHERE b = 1`).Statements[0]
	clone := orig.Clone()
	if diff := deep.Equal(orig, clone); diff != nil {
		t.Fatalf("clone differs: %v", diff)
	}

	clone.Node(pgquery.WhereClauseField).Fields = nil
	if len(orig.Node(pgquery.WhereClauseField).Fields) == 0 {
		t.Fatal("Clone() shares nodes with the original")
	}
	if (*pgquery.Node)(nil).Clone() != nil {
		t.Fatal("Clone() of nil must be nil")
	}
}

func TestNode_MarshalJSON(t *testing.T) {
	t.Run("Literals", func(t *testing.T) {
		l := pgquery.List{
			pgquery.IntegerLit(-3),
			pgquery.FloatLit("1.5e10"),
			pgquery.StringLit("it's \"quoted\""),
			pgquery.BitStringLit("b01"),
			pgquery.NullLit{},
		}
		buf, err := json.Marshal(l)
		if err != nil {
			t.Fatal(err)
		}
		const want = `[{"Integer":{"ival":-3}},{"Float":{"str":"1.5e10"}},{"String":{"str":"it's \"quoted\""}},{"BitString":{"str":"b01"}},{"Null":{}}]`
		if string(buf) != want {
			t.Fatalf("Marshal()=%s, want %s", buf, want)
		}
	})

	t.Run("NestedLists", func(t *testing.T) {
		n := pgquery.NewNode(pgquery.DropStmt).
			Set(pgquery.ObjectsField, pgquery.List{pgquery.List{pgquery.StringLit("a"), pgquery.StringLit("b")}}).
			SetInt(pgquery.RemoveTypeField, int(pgquery.ObjectTable))
		AssertNodeJSON(t, n, `{"DROP":{"objects":[[{"String":{"str":"a"}},{"String":{"str":"b"}}]],"removeType":26}}`)
	})

	t.Run("NilListElement", func(t *testing.T) {
		n := pgquery.NewNode(pgquery.DropStmt).Set("arguments", pgquery.List{(*pgquery.Node)(nil)})
		AssertNodeJSON(t, n, `{"DROP":{"arguments":[null]}}`)
	})

	t.Run("String", func(t *testing.T) {
		n := pgquery.NewNode(pgquery.VariableShowStmt).Set("name", pgquery.Text("work_mem"))
		if got, want := n.String(), `{"SHOW":{"name":"work_mem"}}`; got != want {
			t.Fatalf("String()=%s, want %s", got, want)
		}
	})
}

func TestMarshalStatements(t *testing.T) {
	if got := string(pgquery.MarshalStatements(nil)); got != `[]` {
		t.Fatalf("MarshalStatements(nil)=%s, want []", got)
	}
	stmts := []*pgquery.Node{pgquery.NewNode(pgquery.CheckPointStmt), pgquery.NewNode(pgquery.CheckPointStmt)}
	if got, want := string(pgquery.MarshalStatements(stmts)), `[{"CHECKPOINT":{}},{"CHECKPOINT":{}}]`; got != want {
		t.Fatalf("MarshalStatements()=%s, want %s", got, want)
	}
}

// AssertNodeJSON asserts the exact JSON form of n, field order included.
func AssertNodeJSON(tb testing.TB, n *pgquery.Node, want string) {
	tb.Helper()
	buf, err := json.Marshal(n)
	if err != nil {
		tb.Fatal(err)
	} else if string(buf) != want {
		tb.Fatalf("Marshal()=%s, want %s", buf, want)
	}
}
