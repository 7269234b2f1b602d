package pgquery_test

import (
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/sqltree/pgquery"
)

func TestExtractTables(t *testing.T) {
	t.Run("Joins", func(t *testing.T) {
		AssertTables(t, `SELECT * FROM worker w JOIN event_worker ew ON ew.worker_id = w."id" JOIN sys_event se ON se."id" = ew."event"`,
			[]string{"worker", "event_worker", "sys_event"})
		AssertTables(t, `SELECT * FROM table1 t1
                 LEFT JOIN table2 t2 ON t2.id = t1.id
                 INNER JOIN table3 t3 ON t3.id = t2.id
                 CROSS JOIN table4 t4`,
			[]string{"table1", "table2", "table3", "table4"})
		AssertTables(t, `SELECT * FROM a, b JOIN c ON true`, []string{"a", "b", "c"})
		AssertTables(t, `SELECT * FROM a JOIN (b JOIN c USING (id)) ON a.id = b.id`, []string{"a", "b", "c"})
	})

	t.Run("Qualified", func(t *testing.T) {
		AssertTables(t, `SELECT * FROM public.t, db.s.u`, []string{"public.t", "db.s.u"})
		AssertTables(t, `CREATE TABLE main.T1 (C1 TEXT PRIMARY KEY, C2 INTEGER)`, []string{"main.t1"})
		AssertTables(t, `SELECT * FROM "MixedCase"`, []string{"MixedCase"})
	})

	t.Run("Duplicates", func(t *testing.T) {
		AssertTables(t, `SELECT * FROM t, t`, []string{"t", "t"})
		AssertTables(t, `SELECT * FROM a; SELECT * FROM b`, []string{"a", "b"})
	})

	t.Run("Subqueries", func(t *testing.T) {
		AssertTables(t, `SELECT * FROM (SELECT * FROM x) s, y`, []string{"y", "x"})
		AssertTables(t, `SELECT * FROM t WHERE id IN (SELECT id FROM u)`, []string{"t", "u"})
		AssertTables(t, `SELECT (SELECT max(v) FROM u) FROM t`, []string{"t", "u"})
		AssertTables(t, `SELECT * FROM a UNION SELECT * FROM b`, []string{"a", "b"})
	})

	t.Run("CommonTableExpressions", func(t *testing.T) {
		AssertTables(t, `WITH a AS (SELECT * FROM x) SELECT * FROM a`, []string{"a", "x"})
		AssertTables(t, `WITH a AS (SELECT * FROM x), b AS (SELECT * FROM y) SELECT * FROM b WHERE EXISTS (SELECT 1 FROM z)`,
			[]string{"b", "x", "y", "z"})
		AssertTables(t, `WITH d AS (DELETE FROM old RETURNING *) INSERT INTO archive SELECT * FROM d`,
			[]string{"archive", "old", "d"})
	})

	t.Run("Update", func(t *testing.T) {
		AssertTables(t, `UPDATE asynq_tasks
SET state='active',
    pending_since=NULL,
    affinity_timeout=server_affinity,
    deadline=iif(task_deadline=0, task_timeout+1687276020, task_deadline)
WHERE asynq_tasks.state='pending'
  AND (task_uuid,
       ndx,
       pndx,
       task_msg,
       task_timeout,
       task_deadline)=
    (SELECT task_uuid,
            ndx,
            pndx,
            task_msg,
            task_timeout,
            task_deadline
     FROM asynq_tasks)
`, []string{"asynq_tasks", "asynq_tasks"})
		AssertTables(t, `UPDATE table1 SET col1 = 'value' WHERE (col1, col2) = ('a', 'b')`, []string{"table1"})
	})

	t.Run("SelectInto", func(t *testing.T) {
		AssertTables(t, `SELECT * INTO new_t FROM t`, []string{"new_t", "t"})
	})

	t.Run("CreateTable", func(t *testing.T) {
		AssertTables(t, `CREATE TABLE t (a int REFERENCES u (id))`, []string{"t", "u"})
		AssertTables(t, `CREATE TABLE t (a int, FOREIGN KEY (a) REFERENCES s.u)`, []string{"t", "s.u"})
		AssertTables(t, `CREATE TABLE t (LIKE u INCLUDING ALL)`, []string{"t", "u"})
		AssertTables(t, `CREATE TABLE t (a int) INHERITS (p1, p2)`, []string{"t", "p1", "p2"})
		AssertTables(t, `CREATE TABLE t AS SELECT * FROM u`, []string{"t", "u"})
	})

	t.Run("Rule", func(t *testing.T) {
		AssertTables(t, `CREATE RULE r AS ON INSERT TO t DO ALSO INSERT INTO log VALUES (1)`, []string{"t", "log"})
	})

	t.Run("Alter", func(t *testing.T) {
		AssertTables(t, `ALTER TABLE t ADD CONSTRAINT fk FOREIGN KEY (a) REFERENCES u (id)`, []string{"t", "u"})
		AssertTables(t, `ALTER VIEW v RENAME TO w`, []string{"v"})
		AssertTables(t, `ALTER SEQUENCE s OWNER TO joe`, []string{})
		AssertTables(t, `ALTER TRIGGER tr ON t RENAME TO tr2`, []string{"t"})
	})

	t.Run("Drop", func(t *testing.T) {
		AssertTables(t, `DROP TABLE IF EXISTS a, s.b`, []string{"a", "s.b"})
		AssertTables(t, `DROP FOREIGN TABLE f`, []string{"f"})
		AssertTables(t, `DROP FUNCTION f(int)`, []string{})
		AssertTables(t, `DROP MATERIALIZED VIEW mv`, []string{})
	})

	t.Run("Grant", func(t *testing.T) {
		AssertTables(t, `GRANT SELECT ON TABLE a, b TO joe`, []string{"a", "b"})
		AssertTables(t, `GRANT EXECUTE ON FUNCTION f(int) TO joe`, []string{})
		AssertTables(t, `GRANT USAGE ON SCHEMA s TO joe`, []string{})
	})

	t.Run("Utility", func(t *testing.T) {
		AssertTables(t, `BEGIN`, []string{})
		AssertTables(t, `EXPLAIN SELECT * FROM t`, []string{"t"})
		AssertTables(t, `VACUUM`, []string{})
		AssertTables(t, `COPY (SELECT * FROM t) TO stdout`, []string{"t"})
	})
}

func TestExtractTables_Nil(t *testing.T) {
	if got := pgquery.ExtractTables(nil); got == nil || len(got) != 0 {
		t.Fatalf("ExtractTables(nil)=%#v, want empty", got)
	}
	if got := pgquery.ExtractTables([]*pgquery.Node{nil}); len(got) != 0 {
		t.Fatalf("ExtractTables()=%#v, want empty", got)
	}
}

func TestDistinctTables(t *testing.T) {
	got := pgquery.DistinctTables([]string{"b", "a", "b", "c", "a"})
	if diff := deep.Equal(got, []string{"b", "a", "c"}); diff != nil {
		t.Fatalf("mismatch:\n%s", strings.Join(diff, "\n"))
	}
	if got := pgquery.DistinctTables(nil); got == nil || len(got) != 0 {
		t.Fatalf("DistinctTables(nil)=%#v, want empty", got)
	}
}

func TestQualifiedName(t *testing.T) {
	rv := pgquery.NewNode(pgquery.RangeVar).
		Set(pgquery.CatalognameField, pgquery.Text("db")).
		Set(pgquery.SchemanameField, pgquery.Text("s")).
		Set(pgquery.RelnameField, pgquery.Text("t"))
	if got, want := pgquery.QualifiedName(rv), "db.s.t"; got != want {
		t.Fatalf("QualifiedName()=%q, want %q", got, want)
	}
}

func TestIsStatement(t *testing.T) {
	if !pgquery.IsStatement(pgquery.SelectStmt) || !pgquery.IsStatement(pgquery.GrantRoleStmt) {
		t.Fatal("expected statement kinds")
	}
	if pgquery.IsStatement(pgquery.RangeVar) || pgquery.IsStatement(pgquery.SubLink) {
		t.Fatal("unexpected statement kind")
	}
}
