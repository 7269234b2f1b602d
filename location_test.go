package pgquery_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-test/deep"
	"github.com/sqltree/pgquery"
	"golang.org/x/sync/errgroup"
)

func TestParse_Locations(t *testing.T) {
	t.Run("MultiByteBeforeNode", func(t *testing.T) {
		result := ParseOrFail(t, `SELECT 'ü', 1`)
		targets := result.Statements[0].List(pgquery.TargetListField)
		var got []int
		for _, v := range targets {
			target := v.(*pgquery.Node)
			loc, _ := target.Location()
			valLoc, _ := target.Node("val").Location()
			got = append(got, loc, valLoc)
		}
		if diff := deep.Equal(got, []int{7, 7, 12, 12}); diff != nil {
			t.Fatalf("mismatch:\n%s", strings.Join(diff, "\n"))
		}
	})

	t.Run("MultiByteIdentifier", func(t *testing.T) {
		AssertParseJSON(t, `SELECT * FROM über, t`, `[{"SELECT":{
			"targetList":[{"RESTARGET":{"val":{"COLUMNREF":{"fields":[{"A_STAR":{}}],"location":7}},"location":7}}],
			"fromClause":[
				{"RANGEVAR":{"relname":"über","inhOpt":2,"relpersistence":"p","location":14}},
				{"RANGEVAR":{"relname":"t","inhOpt":2,"relpersistence":"p","location":20}}],
			"op":0}}]`)
	})

	t.Run("MultiByteBeforeError", func(t *testing.T) {
		err := AssertParseError(t, `SELECT 'ü', 'ERR`, `unterminated quoted string at or near "'ERR"`)
		if err.Location != 13 {
			t.Fatalf("Location=%d, want 13", err.Location)
		} else if err.Column != 13 {
			t.Fatalf("Column=%d, want 13", err.Column)
		}
	})

	t.Run("ErrorAtEndOfInput", func(t *testing.T) {
		err := AssertParseError(t, `SELECT 'ü' FROM`, `syntax error at end of input`)
		if err.Location != 16 {
			t.Fatalf("Location=%d, want 16", err.Location)
		}
	})

	t.Run("ParseExpr", func(t *testing.T) {
		AssertParseExpr(t, `'日本' || x`, `{"AEXPR":{
			"kind":0,
			"name":[{"String":{"str":"||"}}],
			"lexpr":{"A_CONST":{"val":{"String":{"str":"日本"}},"location":0}},
			"rexpr":{"COLUMNREF":{"fields":[{"String":{"str":"x"}}],"location":8}},
			"location":5}}`)
	})
}

func TestParse_LocationsInRange(t *testing.T) {
	queries := []string{
		`SELECT 1`,
		`SELECT memory_total_bytes, (memory_swap_total_bytes - memory_swap_free_bytes) AS swap, date_part($0, s.collected_at) AS collected_at FROM snapshots s JOIN system_snapshots ON (snapshot_id = s.id) WHERE s.database_id = $0 AND s.collected_at BETWEEN $0 AND $0 ORDER BY collected_at`,
		`ALTER TABLE test ADD PRIMARY KEY (gid)`,
		`SET statement_timeout=0`,
		`COPY test (id) TO stdout`,
		`drop table abc.test123 cascade`,
		`VACUUM my_table`,
		`EXPLAIN DELETE FROM test`,
		`CREATE TEMP TABLE test AS SELECT 1`,
		`LOCK TABLE public.schema_migrations IN ACCESS SHARE MODE`,
		`CREATE TABLE test (a int4) WITH OIDS`,
		`CREATE TABLE t (a int REFERENCES u (id), b varchar(10)[] NOT NULL DEFAULT 'ü')`,
		`CREATE INDEX testidx ON test USING gist (a)`,
		`CREATE VIEW myview AS SELECT * FROM mytab`,
		`CREATE RULE r AS ON INSERT TO t DO ALSO INSERT INTO log VALUES (1)`,
		`DROP TRIGGER IF EXISTS mytrigger ON mytable RESTRICT`,
		`GRANT INSERT, UPDATE ON mytable TO myuser`,
		`TRUNCATE bigtable, fattable RESTART IDENTITY`,
		`INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'ÿ')`,
		`UPDATE t SET a = u.b FROM u WHERE u.id = t.id`,
		`DELETE FROM ONLY t USING u WHERE u.id = t.id`,
		`WITH a AS (SELECT * FROM x WHERE x.y = ? AND x.z = 1) SELECT * FROM a`,
		`SELECT * FROM a JOIN (b JOIN c USING (id)) ON a.id = b.id`,
		`SELECT (SELECT max(v) FROM u), '日本' || x FROM t WHERE id IN (SELECT id FROM u) AND y IS NOT NULL`,
		`SELECT CASE WHEN a=? THEN U&'d\0061t' ELSE 'ü' END, a::text FROM über`,
		`SELECT 1; SELECT 'é'; CHECKPOINT`,
	}
	for _, q := range queries {
		n := utf8.RuneCountInString(q)
		result := ParseOrFail(t, q)
		for _, stmt := range result.Statements {
			pgquery.Inspect(stmt, func(node *pgquery.Node) bool {
				if loc, ok := node.Location(); ok && (loc < 0 || loc >= n) {
					t.Errorf("Parse(%q): %s location %d outside [0,%d)", q, node.Kind, loc, n)
				}
				return true
			})
		}
	}
}

func TestParse_WarningLocations(t *testing.T) {
	t.Run("Sorted", func(t *testing.T) {
		long := strings.Repeat("a", 70)
		result := ParseOrFail(t, `CREATE GLOBAL TEMP TABLE `+long+` (a int)`)
		var got []int
		for _, w := range result.Warnings {
			got = append(got, w.Location)
		}
		if diff := deep.Equal(got, []int{8, 26}); diff != nil {
			t.Fatalf("mismatch:\n%s", strings.Join(diff, "\n"))
		}
	})

	t.Run("TruncatedOnCharacterBoundary", func(t *testing.T) {
		ident := strings.Repeat("表", 30)
		result := ParseOrFail(t, `SELECT 'ü', `+ident)
		if len(result.Warnings) != 1 {
			t.Fatalf("len(Warnings)=%d, want 1", len(result.Warnings))
		} else if w := result.Warnings[0]; w.Location != 13 {
			t.Fatalf("Location=%d, want 13", w.Location)
		}
		target := result.Statements[0].List(pgquery.TargetListField)[1].(*pgquery.Node)
		fields := target.Node("val").List("fields")
		if got, want := string(fields[0].(pgquery.StringLit)), strings.Repeat("表", 21); got != want {
			t.Fatalf("identifier=%q, want %q", got, want)
		}
	})
}

func TestParse_Concurrent(t *testing.T) {
	queries := []string{
		`SELECT * FROM a JOIN b ON a.id = b.id`,
		`INSERT INTO t (x) VALUES ('ü')`,
		`CREATE TABLE t (a int REFERENCES u (id))`,
		`WITH a AS (SELECT * FROM x) SELECT * FROM a`,
	}
	want := make([]string, len(queries))
	for i, q := range queries {
		want[i] = string(ParseOrFail(t, q).JSON())
	}

	var g errgroup.Group
	for n := 0; n < 8; n++ {
		for i, q := range queries {
			g.Go(func() error {
				result, err := pgquery.Parse(q)
				if err != nil {
					return err
				}
				if got := string(result.JSON()); got != want[i] {
					t.Errorf("Parse(%q)=%s, want %s", q, got, want[i])
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
