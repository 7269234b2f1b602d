package pgquery_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/sqltree/pgquery"
)

func init() {
	// Parse trees nest deeper than the default comparison limit.
	deep.MaxDepth = 64
}

func TestParse(t *testing.T) {
	t.Run("Simple", func(t *testing.T) {
		result := ParseOrFail(t, `SELECT 1`)
		const want = `[{"SELECT":{"targetList":[{"RESTARGET":{"val":{"A_CONST":{"val":{"Integer":{"ival":1}},"location":7}},"location":7}}],"op":0}}]`
		if got := string(result.JSON()); got != want {
			t.Fatalf("JSON()=%s, want %s", got, want)
		}
		AssertTables(t, `SELECT 1`, []string{})
	})

	t.Run("RealQuery", func(t *testing.T) {
		AssertTables(t, `SELECT memory_total_bytes, memory_free_bytes, memory_pagecache_bytes, memory_buffers_bytes, memory_applications_bytes, (memory_swap_total_bytes - memory_swap_free_bytes) AS swap, date_part($0, s.collected_at) AS collected_at FROM snapshots s JOIN system_snapshots ON (snapshot_id = s.id) WHERE s.database_id = $0 AND s.collected_at BETWEEN $0 AND $0 ORDER BY collected_at`,
			[]string{"snapshots", "system_snapshots"})
	})

	t.Run("Empty", func(t *testing.T) {
		for _, s := range []string{``, `-- nothing`, `/* nothing */`, `;;`} {
			result := ParseOrFail(t, s)
			if len(result.Statements) != 0 {
				t.Fatalf("Parse(%q) returned %d statements", s, len(result.Statements))
			} else if got := string(result.JSON()); got != `[]` {
				t.Fatalf("JSON()=%s, want []", got)
			} else if len(result.Warnings) != 0 {
				t.Fatalf("unexpected warnings: %v", result.Warnings)
			}
			AssertTables(t, s, []string{})
		}
	})

	t.Run("Constants", func(t *testing.T) {
		AssertParseTarget(t, `SELECT .1`, `{"A_CONST":{"val":{"Float":{"str":".1"}},"location":7}}`)
		AssertParseTarget(t, `SELECT 1.`, `{"A_CONST":{"val":{"Float":{"str":"1."}},"location":7}}`)
		AssertParseTarget(t, `SELECT B'0101'`, `{"A_CONST":{"val":{"BitString":{"str":"b0101"}},"location":7}}`)
		AssertParseTarget(t, `SELECT X'EFFF'`, `{"A_CONST":{"val":{"BitString":{"str":"xEFFF"}},"location":7}}`)
		AssertParseTarget(t, `SELECT 'abc'`, `{"A_CONST":{"val":{"String":{"str":"abc"}},"location":7}}`)
		AssertParseTarget(t, `SELECT NULL`, `{"A_CONST":{"val":{"Null":{}},"location":7}}`)
	})

	t.Run("AlterTable", func(t *testing.T) {
		AssertParseJSON(t, `ALTER TABLE test ADD PRIMARY KEY (gid)`, `[{"ALTER TABLE":{
			"relation":{"RANGEVAR":{"relname":"test","inhOpt":2,"relpersistence":"p","location":12}},
			"cmds":[{"ALTER TABLE CMD":{
				"subtype":14,
				"def":{"CONSTRAINT":{"contype":4,"location":21,"keys":[{"String":{"str":"gid"}}]}},
				"behavior":0}}],
			"relkind":26}}]`)
		AssertTables(t, `ALTER TABLE test ADD PRIMARY KEY (gid)`, []string{"test"})
	})

	t.Run("Set", func(t *testing.T) {
		AssertParseJSON(t, `SET statement_timeout=0`, `[{"SET":{
			"kind":0,
			"name":"statement_timeout",
			"args":[{"A_CONST":{"val":{"Integer":{"ival":0}},"location":22}}]}}]`)
		AssertTables(t, `SET statement_timeout=0`, []string{})
	})

	t.Run("Show", func(t *testing.T) {
		AssertParseJSON(t, `SHOW work_mem`, `[{"SHOW":{"name":"work_mem"}}]`)
	})

	t.Run("Copy", func(t *testing.T) {
		AssertParseJSON(t, `COPY test (id) TO stdout`, `[{"COPY":{
			"relation":{"RANGEVAR":{"relname":"test","inhOpt":2,"relpersistence":"p","location":5}},
			"attlist":[{"String":{"str":"id"}}]}}]`)
		AssertTables(t, `COPY test (id) TO stdout`, []string{"test"})
	})

	t.Run("DropTable", func(t *testing.T) {
		AssertParseJSON(t, `drop table abc.test123 cascade`, `[{"DROP":{
			"objects":[[{"String":{"str":"abc"}},{"String":{"str":"test123"}}]],
			"removeType":26,
			"behavior":1}}]`)
		AssertTables(t, `drop table abc.test123 cascade`, []string{"abc.test123"})
	})

	t.Run("Commit", func(t *testing.T) {
		AssertParseJSON(t, `COMMIT`, `[{"TRANSACTION":{"kind":2}}]`)
	})

	t.Run("Checkpoint", func(t *testing.T) {
		AssertParseJSON(t, `CHECKPOINT`, `[{"CHECKPOINT":{}}]`)
	})

	t.Run("Vacuum", func(t *testing.T) {
		AssertParseJSON(t, `VACUUM my_table`, `[{"VACUUM":{
			"options":1,
			"freeze_min_age":-1,
			"freeze_table_age":-1,
			"relation":{"RANGEVAR":{"relname":"my_table","inhOpt":2,"relpersistence":"p","location":7}},
			"multixact_freeze_min_age":-1,
			"multixact_freeze_table_age":-1}}]`)
		AssertTables(t, `VACUUM my_table`, []string{"my_table"})
	})

	t.Run("Explain", func(t *testing.T) {
		AssertParseJSON(t, `EXPLAIN DELETE FROM test`, `[{"EXPLAIN":{"query":{"DELETE FROM":{
			"relation":{"RANGEVAR":{"relname":"test","inhOpt":2,"relpersistence":"p","location":20}}}}}}]`)
		AssertTables(t, `EXPLAIN DELETE FROM test`, []string{"test"})
	})

	t.Run("CreateTableAs", func(t *testing.T) {
		AssertParseJSON(t, `CREATE TEMP TABLE test AS SELECT 1`, `[{"CREATE TABLE AS":{
			"query":{"SELECT":{
				"targetList":[{"RESTARGET":{"val":{"A_CONST":{"val":{"Integer":{"ival":1}},"location":33}},"location":33}}],
				"op":0}},
			"into":{"INTOCLAUSE":{
				"rel":{"RANGEVAR":{"relname":"test","inhOpt":2,"relpersistence":"t","location":18}},
				"onCommit":0}},
			"relkind":26}}]`)
		AssertTables(t, `CREATE TEMP TABLE test AS SELECT 1`, []string{"test"})
	})

	t.Run("Lock", func(t *testing.T) {
		AssertParseJSON(t, `LOCK TABLE public.schema_migrations IN ACCESS SHARE MODE`, `[{"LOCK":{
			"relations":[{"RANGEVAR":{"schemaname":"public","relname":"schema_migrations","inhOpt":2,"relpersistence":"p","location":11}}],
			"mode":1}}]`)
		AssertTables(t, `LOCK TABLE public.schema_migrations IN ACCESS SHARE MODE`, []string{"public.schema_migrations"})
	})

	t.Run("CreateTable", func(t *testing.T) {
		AssertParseJSON(t, `CREATE TABLE test (a int4)`, `[{"CREATESTMT":{
			"relation":{"RANGEVAR":{"relname":"test","inhOpt":2,"relpersistence":"p","location":13}},
			"tableElts":[{"COLUMNDEF":{
				"colname":"a",
				"typeName":{"TYPENAME":{"names":[{"String":{"str":"int4"}}],"typemod":-1,"location":21}},
				"is_local":true,
				"location":19}}],
			"oncommit":0}}]`)
		AssertTables(t, `CREATE TABLE test (a int4)`, []string{"test"})
	})

	t.Run("CreateTableWithOids", func(t *testing.T) {
		AssertParseJSON(t, `CREATE TABLE test (a int4) WITH OIDS`, `[{"CREATESTMT":{
			"relation":{"RANGEVAR":{"relname":"test","inhOpt":2,"relpersistence":"p","location":13}},
			"tableElts":[{"COLUMNDEF":{
				"colname":"a",
				"typeName":{"TYPENAME":{"names":[{"String":{"str":"int4"}}],"typemod":-1,"location":21}},
				"is_local":true,
				"location":19}}],
			"options":[{"DEFELEM":{"defname":"oids","arg":{"Integer":{"ival":1}},"defaction":0}}],
			"oncommit":0}}]`)
	})

	t.Run("CreateIndex", func(t *testing.T) {
		AssertParseJSON(t, `CREATE INDEX testidx ON test USING gist (a)`, `[{"INDEXSTMT":{
			"idxname":"testidx",
			"relation":{"RANGEVAR":{"relname":"test","inhOpt":2,"relpersistence":"p","location":24}},
			"accessMethod":"gist",
			"indexParams":[{"INDEXELEM":{"name":"a","ordering":0,"nulls_ordering":0}}]}}]`)
		AssertTables(t, `CREATE INDEX testidx ON test USING gist (a)`, []string{"test"})
	})

	t.Run("CreateSchema", func(t *testing.T) {
		AssertParseJSON(t, `CREATE SCHEMA IF NOT EXISTS test AUTHORIZATION joe`, `[{"CREATE SCHEMA":{
			"schemaname":"test",
			"authid":"joe",
			"if_not_exists":true}}]`)
		AssertTables(t, `CREATE SCHEMA IF NOT EXISTS test AUTHORIZATION joe`, []string{})
	})

	t.Run("CreateView", func(t *testing.T) {
		AssertParseJSON(t, `CREATE VIEW myview AS SELECT * FROM mytab`, `[{"VIEWSTMT":{
			"view":{"RANGEVAR":{"relname":"myview","inhOpt":2,"relpersistence":"p","location":12}},
			"query":{"SELECT":{
				"targetList":[{"RESTARGET":{"val":{"COLUMNREF":{"fields":[{"A_STAR":{}}],"location":29}},"location":29}}],
				"fromClause":[{"RANGEVAR":{"relname":"mytab","inhOpt":2,"relpersistence":"p","location":36}}],
				"op":0}},
			"withCheckOption":0}}]`)
		AssertTables(t, `CREATE VIEW myview AS SELECT * FROM mytab`, []string{"myview", "mytab"})
	})

	t.Run("RefreshMaterializedView", func(t *testing.T) {
		AssertParseJSON(t, `REFRESH MATERIALIZED VIEW myview`, `[{"REFRESHMATVIEWSTMT":{
			"relation":{"RANGEVAR":{"relname":"myview","inhOpt":2,"relpersistence":"p","location":26}}}}]`)
		AssertTables(t, `REFRESH MATERIALIZED VIEW myview`, []string{"myview"})
	})

	t.Run("CreateRule", func(t *testing.T) {
		const s = "CREATE RULE shoe_ins_protect AS ON INSERT TO shoe\n                           DO INSTEAD NOTHING"
		AssertParseJSON(t, s, `[{"RULESTMT":{
			"relation":{"RANGEVAR":{"relname":"shoe","inhOpt":2,"relpersistence":"p","location":45}},
			"rulename":"shoe_ins_protect",
			"event":3,
			"instead":true}}]`)
		AssertTables(t, s, []string{"shoe"})
	})

	t.Run("CreateTrigger", func(t *testing.T) {
		const s = "CREATE TRIGGER check_update\n" +
			"                           BEFORE UPDATE ON accounts\n" +
			"                           FOR EACH ROW\n" +
			"                           EXECUTE PROCEDURE check_account_update()"
		AssertParseJSON(t, s, `[{"CREATETRIGSTMT":{
			"trigname":"check_update",
			"relation":{"RANGEVAR":{"relname":"accounts","inhOpt":2,"relpersistence":"p","location":72}},
			"funcname":[{"String":{"str":"check_account_update"}}],
			"row":true,
			"timing":2,
			"events":16}}]`)
		AssertTables(t, s, []string{"accounts"})
	})

	t.Run("DropSchema", func(t *testing.T) {
		AssertParseJSON(t, `DROP SCHEMA myschema`, `[{"DROP":{"objects":[[{"String":{"str":"myschema"}}]],"removeType":24,"behavior":0}}]`)
		AssertTables(t, `DROP SCHEMA myschema`, []string{})
	})

	t.Run("DropView", func(t *testing.T) {
		AssertParseJSON(t, `DROP VIEW myview, myview2`, `[{"DROP":{
			"objects":[[{"String":{"str":"myview"}}],[{"String":{"str":"myview2"}}]],
			"removeType":34,
			"behavior":0}}]`)
		AssertTables(t, `DROP VIEW myview, myview2`, []string{})
	})

	t.Run("DropIndex", func(t *testing.T) {
		AssertParseJSON(t, `DROP INDEX CONCURRENTLY myindex`, `[{"DROP":{
			"objects":[[{"String":{"str":"myindex"}}]],
			"removeType":15,
			"behavior":0,
			"concurrent":true}}]`)
		AssertTables(t, `DROP INDEX CONCURRENTLY myindex`, []string{})
	})

	t.Run("DropRule", func(t *testing.T) {
		AssertParseJSON(t, `DROP RULE myrule ON mytable CASCADE`, `[{"DROP":{
			"objects":[[{"String":{"str":"mytable"}},{"String":{"str":"myrule"}}]],
			"removeType":23,
			"behavior":1}}]`)
		AssertTables(t, `DROP RULE myrule ON mytable CASCADE`, []string{"mytable"})
	})

	t.Run("DropTrigger", func(t *testing.T) {
		AssertParseJSON(t, `DROP TRIGGER IF EXISTS mytrigger ON mytable RESTRICT`, `[{"DROP":{
			"objects":[[{"String":{"str":"mytable"}},{"String":{"str":"mytrigger"}}]],
			"removeType":28,
			"behavior":0,
			"missing_ok":true}}]`)
		AssertTables(t, `DROP TRIGGER IF EXISTS mytrigger ON mytable RESTRICT`, []string{"mytable"})
	})

	t.Run("Grant", func(t *testing.T) {
		AssertParseJSON(t, `GRANT INSERT, UPDATE ON mytable TO myuser`, `[{"GRANTSTMT":{
			"is_grant":true,
			"targtype":0,
			"objtype":1,
			"objects":[{"RANGEVAR":{"relname":"mytable","inhOpt":2,"relpersistence":"p","location":24}}],
			"privileges":[{"ACCESSPRIV":{"priv_name":"insert"}},{"ACCESSPRIV":{"priv_name":"update"}}],
			"grantees":[{"PRIVGRANTEE":{"rolname":"myuser"}}],
			"behavior":0}}]`)
		AssertTables(t, `GRANT INSERT, UPDATE ON mytable TO myuser`, []string{"mytable"})
	})

	t.Run("RevokeRole", func(t *testing.T) {
		AssertParseJSON(t, `REVOKE admins FROM joe`, `[{"GRANTROLESTMT":{
			"granted_roles":[{"ACCESSPRIV":{"priv_name":"admins"}}],
			"grantee_roles":[{"String":{"str":"joe"}}],
			"behavior":0}}]`)
		AssertTables(t, `REVOKE admins FROM joe`, []string{})
	})

	t.Run("Truncate", func(t *testing.T) {
		AssertParseJSON(t, `TRUNCATE bigtable, fattable RESTART IDENTITY`, `[{"TRUNCATE":{
			"relations":[
				{"RANGEVAR":{"relname":"bigtable","inhOpt":2,"relpersistence":"p","location":9}},
				{"RANGEVAR":{"relname":"fattable","inhOpt":2,"relpersistence":"p","location":19}}],
			"restart_seqs":true,
			"behavior":0}}]`)
		AssertTables(t, `TRUNCATE bigtable, fattable RESTART IDENTITY`, []string{"bigtable", "fattable"})
	})

	t.Run("With", func(t *testing.T) {
		const s = `WITH a AS (SELECT * FROM x WHERE x.y = ? AND x.z = 1) SELECT * FROM a`
		AssertParseJSON(t, s, `[{"SELECT":{
			"targetList":[{"RESTARGET":{"val":{"COLUMNREF":{"fields":[{"A_STAR":{}}],"location":61}},"location":61}}],
			"fromClause":[{"RANGEVAR":{"relname":"a","inhOpt":2,"relpersistence":"p","location":68}}],
			"withClause":{"WITHCLAUSE":{"ctes":[{"COMMONTABLEEXPR":{
				"ctename":"a",
				"ctequery":{"SELECT":{
					"targetList":[{"RESTARGET":{"val":{"COLUMNREF":{"fields":[{"A_STAR":{}}],"location":18}},"location":18}}],
					"fromClause":[{"RANGEVAR":{"relname":"x","inhOpt":2,"relpersistence":"p","location":25}}],
					"whereClause":{"AEXPR":{
						"kind":1,
						"lexpr":{"AEXPR":{
							"kind":0,
							"name":[{"String":{"str":"="}}],
							"lexpr":{"COLUMNREF":{"fields":[{"String":{"str":"x"}},{"String":{"str":"y"}}],"location":33}},
							"rexpr":{"PARAMREF":{"location":39}},
							"location":37}},
						"rexpr":{"AEXPR":{
							"kind":0,
							"name":[{"String":{"str":"="}}],
							"lexpr":{"COLUMNREF":{"fields":[{"String":{"str":"x"}},{"String":{"str":"z"}}],"location":45}},
							"rexpr":{"A_CONST":{"val":{"Integer":{"ival":1}},"location":51}},
							"location":49}},
						"location":41}},
					"op":0}},
				"location":5}}]}},
			"op":0}}]`)
		AssertTables(t, s, []string{"a", "x"})
	})

	t.Run("CreateFunction", func(t *testing.T) {
		const body = "\nDECLARE\n        local_thing_id BIGINT := 0;\nBEGIN\n        SELECT thing_id INTO local_thing_id FROM thing_map\n        WHERE\n                thing_map_field = parameter_thing\n        ORDER BY 1 LIMIT 1;\n\n        IF NOT FOUND THEN\n                local_thing_id = 0;\n        END IF;\n        RETURN local_thing_id;\nEND;\n"
		s := "CREATE OR REPLACE FUNCTION thing(parameter_thing text)\n  RETURNS bigint AS\n$BODY$" + body + "$BODY$\n  LANGUAGE plpgsql STABLE"
		bodyJSON, _ := json.Marshal(body)
		AssertParseJSON(t, s, `[{"CREATEFUNCTIONSTMT":{
			"replace":true,
			"funcname":[{"String":{"str":"thing"}}],
			"parameters":[{"FUNCTIONPARAMETER":{
				"name":"parameter_thing",
				"argType":{"TYPENAME":{"names":[{"String":{"str":"text"}}],"typemod":-1,"location":49}},
				"mode":105}}],
			"returnType":{"TYPENAME":{"names":[{"String":{"str":"pg_catalog"}},{"String":{"str":"int8"}}],"typemod":-1,"location":65}},
			"options":[
				{"DEFELEM":{"defname":"as","arg":[{"String":{"str":`+string(bodyJSON)+`}}],"defaction":0}},
				{"DEFELEM":{"defname":"language","arg":{"String":{"str":"plpgsql"}},"defaction":0}},
				{"DEFELEM":{"defname":"volatility","arg":{"String":{"str":"stable"}},"defaction":0}}]}}]`)
		AssertTables(t, s, []string{})
	})

	t.Run("CreateTableFunction", func(t *testing.T) {
		const s = "CREATE FUNCTION getfoo(int) RETURNS TABLE (f1 int) AS '\n    SELECT * FROM foo WHERE fooid = $1;\n' LANGUAGE SQL"
		AssertParseJSON(t, s, `[{"CREATEFUNCTIONSTMT":{
			"funcname":[{"String":{"str":"getfoo"}}],
			"parameters":[
				{"FUNCTIONPARAMETER":{
					"argType":{"TYPENAME":{"names":[{"String":{"str":"pg_catalog"}},{"String":{"str":"int4"}}],"typemod":-1,"location":23}},
					"mode":105}},
				{"FUNCTIONPARAMETER":{
					"name":"f1",
					"argType":{"TYPENAME":{"names":[{"String":{"str":"pg_catalog"}},{"String":{"str":"int4"}}],"typemod":-1,"location":46}},
					"mode":116}}],
			"returnType":{"TYPENAME":{"names":[{"String":{"str":"pg_catalog"}},{"String":{"str":"int4"}}],"setof":true,"typemod":-1,"location":36}},
			"options":[
				{"DEFELEM":{"defname":"as","arg":[{"String":{"str":"\n    SELECT * FROM foo WHERE fooid = $1;\n"}}],"defaction":0}},
				{"DEFELEM":{"defname":"language","arg":{"String":{"str":"sql"}},"defaction":0}}]}}]`)
		AssertTables(t, s, []string{})
	})

	t.Run("Insert", func(t *testing.T) {
		AssertParseJSON(t, `INSERT INTO t (a, b) VALUES (1, 'x')`, `[{"INSERT INTO":{
			"relation":{"RANGEVAR":{"relname":"t","inhOpt":2,"relpersistence":"p","location":12}},
			"cols":[
				{"RESTARGET":{"name":"a","location":15}},
				{"RESTARGET":{"name":"b","location":18}}],
			"selectStmt":{"SELECT":{
				"valuesLists":[[
					{"A_CONST":{"val":{"Integer":{"ival":1}},"location":29}},
					{"A_CONST":{"val":{"String":{"str":"x"}},"location":32}}]],
				"op":0}}}}]`)
		AssertTables(t, `INSERT INTO t SELECT * FROM u`, []string{"t", "u"})
	})

	t.Run("Update", func(t *testing.T) {
		AssertParseJSON(t, `UPDATE t SET a = 1`, `[{"UPDATE":{
			"relation":{"RANGEVAR":{"relname":"t","inhOpt":2,"relpersistence":"p","location":7}},
			"targetList":[{"RESTARGET":{"name":"a","val":{"A_CONST":{"val":{"Integer":{"ival":1}},"location":17}},"location":13}}]}}]`)
		AssertTables(t, `UPDATE t SET a = u.b FROM u WHERE u.id = t.id`, []string{"t", "u"})
	})

	t.Run("Delete", func(t *testing.T) {
		AssertTables(t, `DELETE FROM ONLY t USING u WHERE u.id = t.id`, []string{"t", "u"})
		stmt := ParseStatementOrFail(t, `DELETE FROM ONLY t`)
		if inh, _ := stmt.Node("relation").Int("inhOpt"); inh != pgquery.InhNo {
			t.Fatalf("inhOpt=%d, want %d", inh, pgquery.InhNo)
		}
	})

	t.Run("MultipleStatements", func(t *testing.T) {
		result := ParseOrFail(t, `SELECT 1; SELECT 2;`)
		if n := len(result.Statements); n != 2 {
			t.Fatalf("len(Statements)=%d, want 2", n)
		}
		AssertParseTarget(t, `SELECT 1; SELECT 2`, `{"A_CONST":{"val":{"Integer":{"ival":1}},"location":7}}`)
	})
}

func TestParse_Transaction(t *testing.T) {
	for _, tt := range []struct {
		s    string
		kind pgquery.TransactionStmtKind
	}{
		{`BEGIN`, pgquery.TransBegin},
		{`BEGIN WORK`, pgquery.TransBegin},
		{`START TRANSACTION`, pgquery.TransStart},
		{`END`, pgquery.TransCommit},
		{`ROLLBACK`, pgquery.TransRollback},
		{`ABORT`, pgquery.TransRollback},
		{`SAVEPOINT sp`, pgquery.TransSavepoint},
		{`RELEASE SAVEPOINT sp`, pgquery.TransRelease},
		{`ROLLBACK TO SAVEPOINT sp`, pgquery.TransRollbackTo},
		{`PREPARE TRANSACTION 'tx'`, pgquery.TransPrepare},
		{`COMMIT PREPARED 'tx'`, pgquery.TransCommitPrepared},
		{`ROLLBACK PREPARED 'tx'`, pgquery.TransRollbackPrepared},
	} {
		t.Run(tt.s, func(t *testing.T) {
			stmt := ParseStatementOrFail(t, tt.s)
			if stmt.Kind != pgquery.TransactionStmt {
				t.Fatalf("Kind=%s, want %s", stmt.Kind, pgquery.TransactionStmt)
			} else if kind, _ := stmt.Int("kind"); kind != int(tt.kind) {
				t.Fatalf("kind=%d, want %d", kind, tt.kind)
			}
		})
	}

	t.Run("Gid", func(t *testing.T) {
		if gid := ParseStatementOrFail(t, `COMMIT PREPARED 'tx'`).Text("gid"); gid != "tx" {
			t.Fatalf("gid=%q, want tx", gid)
		}
	})
}

func TestParse_Variables(t *testing.T) {
	t.Run("SetDefault", func(t *testing.T) {
		stmt := ParseStatementOrFail(t, `SET search_path TO DEFAULT`)
		if kind, _ := stmt.Int("kind"); kind != int(pgquery.VarSetDefault) {
			t.Fatalf("kind=%d, want %d", kind, pgquery.VarSetDefault)
		} else if name := stmt.Text("name"); name != "search_path" {
			t.Fatalf("name=%q", name)
		}
	})

	t.Run("SetLocal", func(t *testing.T) {
		stmt := ParseStatementOrFail(t, `SET LOCAL work_mem = '64MB'`)
		if !stmt.Bool("is_local") {
			t.Fatal("expected is_local")
		}
	})

	t.Run("SetTimeZone", func(t *testing.T) {
		if name := ParseStatementOrFail(t, `SET TIME ZONE 'UTC'`).Text("name"); name != "timezone" {
			t.Fatalf("name=%q, want timezone", name)
		}
	})

	t.Run("SetSchema", func(t *testing.T) {
		if name := ParseStatementOrFail(t, `SET SCHEMA 'public'`).Text("name"); name != "search_path" {
			t.Fatalf("name=%q, want search_path", name)
		}
	})

	t.Run("SetCatalog", func(t *testing.T) {
		AssertParseError(t, `SET CATALOG 'x'`, "current database cannot be changed")
	})

	t.Run("ResetAll", func(t *testing.T) {
		if kind, _ := ParseStatementOrFail(t, `RESET ALL`).Int("kind"); kind != int(pgquery.VarResetAll) {
			t.Fatalf("kind=%d, want %d", kind, pgquery.VarResetAll)
		}
	})

	t.Run("ShowAll", func(t *testing.T) {
		AssertParseJSON(t, `SHOW ALL`, `[{"SHOW":{"name":"all"}}]`)
	})
}

func TestParse_Utility(t *testing.T) {
	t.Run("LockDefaultMode", func(t *testing.T) {
		stmt := ParseStatementOrFail(t, `LOCK t1, t2 NOWAIT`)
		if mode, _ := stmt.Int("mode"); mode != int(pgquery.AccessExclusiveLock) {
			t.Fatalf("mode=%d, want %d", mode, pgquery.AccessExclusiveLock)
		} else if !stmt.Bool("nowait") {
			t.Fatal("expected nowait")
		}
		AssertTables(t, `LOCK t1, t2 NOWAIT`, []string{"t1", "t2"})
	})

	t.Run("VacuumFull", func(t *testing.T) {
		stmt := ParseStatementOrFail(t, `VACUUM FULL FREEZE t`)
		want := pgquery.VacOptVacuum | pgquery.VacOptFull | pgquery.VacOptFreeze
		if opts, _ := stmt.Int("options"); opts != want {
			t.Fatalf("options=%d, want %d", opts, want)
		} else if stmt.Has("freeze_min_age") {
			t.Fatal("FREEZE leaves freeze_min_age at zero")
		}
	})

	t.Run("Analyze", func(t *testing.T) {
		stmt := ParseStatementOrFail(t, `ANALYZE t (a, b)`)
		if opts, _ := stmt.Int("options"); opts != pgquery.VacOptAnalyze {
			t.Fatalf("options=%d, want %d", opts, pgquery.VacOptAnalyze)
		}
		AssertTables(t, `ANALYZE t (a, b)`, []string{"t"})
	})

	t.Run("ExplainAnalyze", func(t *testing.T) {
		stmt := ParseStatementOrFail(t, `EXPLAIN ANALYZE SELECT * FROM t`)
		if stmt.Kind != pgquery.ExplainStmt {
			t.Fatalf("Kind=%s", stmt.Kind)
		} else if n := len(stmt.List("options")); n != 1 {
			t.Fatalf("len(options)=%d, want 1", n)
		}
		AssertTables(t, `EXPLAIN ANALYZE SELECT * FROM t`, []string{"t"})
	})

	t.Run("ExplainCreateTable", func(t *testing.T) {
		AssertParseError(t, `EXPLAIN CREATE TABLE t (a int)`, `syntax error at or near "TABLE"`)
	})

	t.Run("RefreshConcurrently", func(t *testing.T) {
		stmt := ParseStatementOrFail(t, `REFRESH MATERIALIZED VIEW CONCURRENTLY mv WITH NO DATA`)
		if !stmt.Bool("concurrent") || !stmt.Bool("skipData") {
			t.Fatalf("unexpected flags: %s", stmt)
		}
	})

	t.Run("GrantAllInSchema", func(t *testing.T) {
		const s = `GRANT SELECT ON ALL TABLES IN SCHEMA public TO PUBLIC`
		stmt := ParseStatementOrFail(t, s)
		if targ, _ := stmt.Int("targtype"); targ != pgquery.AclTargetAllInSchema {
			t.Fatalf("targtype=%d, want %d", targ, pgquery.AclTargetAllInSchema)
		}
		AssertTables(t, s, []string{})
	})

	t.Run("RevokeCascade", func(t *testing.T) {
		stmt := ParseStatementOrFail(t, `REVOKE ALL ON t FROM joe CASCADE`)
		if stmt.Bool("is_grant") {
			t.Fatal("unexpected is_grant")
		} else if behavior, _ := stmt.Int("behavior"); behavior != pgquery.DropCascade {
			t.Fatalf("behavior=%d, want %d", behavior, pgquery.DropCascade)
		}
	})
}

func TestParse_Alter(t *testing.T) {
	for _, tt := range []struct {
		s       string
		subtype pgquery.AlterTableType
	}{
		{`ALTER TABLE t ADD COLUMN c int`, pgquery.ATAddColumn},
		{`ALTER TABLE t ADD c int`, pgquery.ATAddColumn},
		{`ALTER TABLE t DROP COLUMN c`, pgquery.ATDropColumn},
		{`ALTER TABLE t ALTER COLUMN c SET DEFAULT 0`, pgquery.ATColumnDefault},
		{`ALTER TABLE t ALTER c DROP NOT NULL`, pgquery.ATDropNotNull},
		{`ALTER TABLE t ALTER c SET NOT NULL`, pgquery.ATSetNotNull},
		{`ALTER TABLE t ALTER c TYPE bigint`, pgquery.ATAlterColumnType},
		{`ALTER TABLE t DROP CONSTRAINT t_pkey`, pgquery.ATDropConstraint},
		{`ALTER TABLE t OWNER TO joe`, pgquery.ATChangeOwner},
		{`ALTER TABLE t SET TABLESPACE fast`, pgquery.ATSetTableSpace},
	} {
		t.Run(tt.s, func(t *testing.T) {
			stmt := ParseStatementOrFail(t, tt.s)
			cmds := stmt.List("cmds")
			if len(cmds) != 1 {
				t.Fatalf("len(cmds)=%d, want 1", len(cmds))
			}
			if subtype, _ := cmds[0].(*pgquery.Node).Int("subtype"); subtype != int(tt.subtype) {
				t.Fatalf("subtype=%d, want %d", subtype, tt.subtype)
			}
			AssertTables(t, tt.s, []string{"t"})
		})
	}

	t.Run("RenameTable", func(t *testing.T) {
		stmt := ParseStatementOrFail(t, `ALTER TABLE t RENAME TO u`)
		if stmt.Kind != pgquery.RenameStmt {
			t.Fatalf("Kind=%s", stmt.Kind)
		} else if name := stmt.Text("newname"); name != "u" {
			t.Fatalf("newname=%q", name)
		}
		AssertTables(t, `ALTER TABLE t RENAME TO u`, []string{"t"})
	})

	t.Run("RenameColumn", func(t *testing.T) {
		stmt := ParseStatementOrFail(t, `ALTER TABLE t RENAME COLUMN a TO b`)
		if typ, _ := stmt.Int("renameType"); typ != int(pgquery.ObjectColumn) {
			t.Fatalf("renameType=%d, want %d", typ, pgquery.ObjectColumn)
		} else if sub := stmt.Text("subname"); sub != "a" {
			t.Fatalf("subname=%q", sub)
		}
	})

	t.Run("AlterIndex", func(t *testing.T) {
		AssertTables(t, `ALTER INDEX i RENAME TO j`, []string{})
	})

	t.Run("MultipleCommands", func(t *testing.T) {
		stmt := ParseStatementOrFail(t, `ALTER TABLE IF EXISTS t ADD c int, DROP d CASCADE`)
		if n := len(stmt.List("cmds")); n != 2 {
			t.Fatalf("len(cmds)=%d, want 2", n)
		} else if !stmt.Bool("missing_ok") {
			t.Fatal("expected missing_ok")
		}
	})
}

func TestParse_Errors(t *testing.T) {
	t.Run("UnterminatedString", func(t *testing.T) {
		err := AssertParseError(t, `SELECT 'ERR`, `unterminated quoted string at or near "'ERR"`)
		if err.Location != 8 {
			t.Fatalf("Location=%d, want 8", err.Location)
		} else if err.Line != 1 || err.Column != 8 {
			t.Fatalf("Line:Column=%d:%d, want 1:8", err.Line, err.Column)
		}
	})

	t.Run("UnexpectedToken", func(t *testing.T) {
		err := AssertParseError(t, `SELEC 1`, `syntax error at or near "SELEC"`)
		if err.Location != 1 {
			t.Fatalf("Location=%d, want 1", err.Location)
		}
	})

	t.Run("TrailingToken", func(t *testing.T) {
		err := AssertParseError(t, `SELECT 1 2`, `syntax error at or near "2"`)
		if err.Location != 10 {
			t.Fatalf("Location=%d, want 10", err.Location)
		}
	})

	t.Run("EndOfInput", func(t *testing.T) {
		err := AssertParseError(t, `SELECT * FROM`, `syntax error at end of input`)
		if err.Location != 14 {
			t.Fatalf("Location=%d, want 14", err.Location)
		}
	})

	t.Run("SecondLine", func(t *testing.T) {
		err := AssertParseError(t, "SELECT 1;\nSELEC 2", `syntax error at or near "SELEC"`)
		if err.Line != 2 || err.Column != 1 {
			t.Fatalf("Line:Column=%d:%d, want 2:1", err.Line, err.Column)
		} else if err.Location != 11 {
			t.Fatalf("Location=%d, want 11", err.Location)
		}
	})

	t.Run("ViewUnlogged", func(t *testing.T) {
		AssertParseError(t, `CREATE UNLOGGED VIEW v AS SELECT 1`, "views cannot be unlogged because they do not have storage")
	})
}

func TestParse_Warnings(t *testing.T) {
	t.Run("GlobalTemp", func(t *testing.T) {
		result := ParseOrFail(t, `CREATE GLOBAL TEMP TABLE t (a int)`)
		want := []pgquery.Warning{{Message: "GLOBAL is deprecated in temporary table creation", Location: 8}}
		if diff := deep.Equal(result.Warnings, want); diff != nil {
			t.Fatalf("mismatch:\n%s", strings.Join(diff, "\n"))
		}
	})

	t.Run("TruncatedIdentifier", func(t *testing.T) {
		long := strings.Repeat("a", 70)
		result := ParseOrFail(t, `SELECT `+long)
		if len(result.Warnings) != 1 {
			t.Fatalf("len(Warnings)=%d, want 1", len(result.Warnings))
		} else if w := result.Warnings[0]; w.Location != 8 {
			t.Fatalf("Location=%d, want 8", w.Location)
		}
		AssertParseTarget(t, `SELECT `+long, `{"COLUMNREF":{"fields":[{"String":{"str":"`+long[:63]+`"}}],"location":7}}`)
	})

	t.Run("None", func(t *testing.T) {
		if result := ParseOrFail(t, `SELECT * FROM t`); result.Warnings != nil {
			t.Fatalf("unexpected warnings: %v", result.Warnings)
		}
	})
}

func TestParseExpr(t *testing.T) {
	t.Run("Operator", func(t *testing.T) {
		AssertParseExpr(t, `a + 1`, `{"AEXPR":{
			"kind":0,
			"name":[{"String":{"str":"+"}}],
			"lexpr":{"COLUMNREF":{"fields":[{"String":{"str":"a"}}],"location":0}},
			"rexpr":{"A_CONST":{"val":{"Integer":{"ival":1}},"location":4}},
			"location":2}}`)
	})

	t.Run("IsNull", func(t *testing.T) {
		AssertParseExpr(t, `a IS NOT NULL`, `{"NULLTEST":{
			"arg":{"COLUMNREF":{"fields":[{"String":{"str":"a"}}],"location":0}},
			"nulltesttype":1,
			"location":2}}`)
	})

	t.Run("Param", func(t *testing.T) {
		AssertParseExpr(t, `$1`, `{"PARAMREF":{"location":0}}`)
	})

	t.Run("ParamAfterOperator", func(t *testing.T) {
		AssertParseExpr(t, `a=?`, `{"AEXPR":{
			"kind":0,
			"name":[{"String":{"str":"="}}],
			"lexpr":{"COLUMNREF":{"fields":[{"String":{"str":"a"}}],"location":0}},
			"rexpr":{"PARAMREF":{"location":2}},
			"location":1}}`)
		AssertParseExpr(t, `a<>?`, `{"AEXPR":{
			"kind":0,
			"name":[{"String":{"str":"<>"}}],
			"lexpr":{"COLUMNREF":{"fields":[{"String":{"str":"a"}}],"location":0}},
			"rexpr":{"PARAMREF":{"location":3}},
			"location":1}}`)
		AssertParseJSON(t, `SELECT * FROM t WHERE a=? AND b>=?`, `[{"SELECT":{
			"targetList":[{"RESTARGET":{"val":{"COLUMNREF":{"fields":[{"A_STAR":{}}],"location":7}},"location":7}}],
			"fromClause":[{"RANGEVAR":{"relname":"t","inhOpt":2,"relpersistence":"p","location":14}}],
			"whereClause":{"AEXPR":{
				"kind":1,
				"lexpr":{"AEXPR":{
					"kind":0,
					"name":[{"String":{"str":"="}}],
					"lexpr":{"COLUMNREF":{"fields":[{"String":{"str":"a"}}],"location":22}},
					"rexpr":{"PARAMREF":{"location":24}},
					"location":23}},
				"rexpr":{"AEXPR":{
					"kind":0,
					"name":[{"String":{"str":">="}}],
					"lexpr":{"COLUMNREF":{"fields":[{"String":{"str":"b"}}],"location":30}},
					"rexpr":{"PARAMREF":{"location":33}},
					"location":31}},
				"location":26}},
			"op":0}}]`)
	})

	t.Run("UnicodeEscapeString", func(t *testing.T) {
		AssertParseExpr(t, `U&'d\0061t' || U&"c\0061"`, `{"AEXPR":{
			"kind":0,
			"name":[{"String":{"str":"||"}}],
			"lexpr":{"A_CONST":{"val":{"String":{"str":"dat"}},"location":0}},
			"rexpr":{"COLUMNREF":{"fields":[{"String":{"str":"ca"}}],"location":15}},
			"location":12}}`)
	})

	t.Run("Trailing", func(t *testing.T) {
		if _, err := pgquery.ParseExpr(`a b`); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestParseError_Error(t *testing.T) {
	err := &pgquery.ParseError{Message: "syntax error at end of input", Location: 9}
	if got, want := err.Error(), "syntax error at end of input"; got != want {
		t.Fatalf("Error()=%q, want %q", got, want)
	}
}

func TestMustParse(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic")
		}
	}()
	pgquery.MustParse(`SELECT 'ERR`)
}

// ParseOrFail parses s and fails the test on error.
func ParseOrFail(tb testing.TB, s string) *pgquery.ParseResult {
	tb.Helper()
	result, err := pgquery.Parse(s)
	if err != nil {
		tb.Fatalf("Parse(%q): %s", s, err)
	}
	return result
}

// ParseStatementOrFail parses s and returns its only statement.
func ParseStatementOrFail(tb testing.TB, s string) *pgquery.Node {
	tb.Helper()
	result := ParseOrFail(tb, s)
	if len(result.Statements) != 1 {
		tb.Fatalf("Parse(%q) returned %d statements, want 1", s, len(result.Statements))
	}
	return result.Statements[0]
}

// AssertParseJSON parses s and compares its JSON tree to want.
func AssertParseJSON(tb testing.TB, s string, want string) {
	tb.Helper()
	result := ParseOrFail(tb, s)
	AssertJSONEqual(tb, result.JSON(), want)
}

// AssertParseTarget compares the value of the first target of the first
// statement of s to want.
func AssertParseTarget(tb testing.TB, s string, want string) {
	tb.Helper()
	stmt := ParseOrFail(tb, s).Statements[0]
	targets := stmt.List(pgquery.TargetListField)
	if len(targets) == 0 {
		tb.Fatalf("Parse(%q) has no targets", s)
	}
	val := targets[0].(*pgquery.Node).Node("val")
	buf, err := json.Marshal(val)
	if err != nil {
		tb.Fatal(err)
	}
	AssertJSONEqual(tb, buf, want)
}

// AssertParseExpr parses s as an expression and compares it to want.
func AssertParseExpr(tb testing.TB, s string, want string) {
	tb.Helper()
	expr, err := pgquery.ParseExpr(s)
	if err != nil {
		tb.Fatalf("ParseExpr(%q): %s", s, err)
	}
	buf, err := json.Marshal(expr)
	if err != nil {
		tb.Fatal(err)
	}
	AssertJSONEqual(tb, buf, want)
}

// AssertParseError parses s and checks the error message. It returns the
// error for further checks.
func AssertParseError(tb testing.TB, s string, want string) *pgquery.ParseError {
	tb.Helper()
	_, err := pgquery.Parse(s)
	var e *pgquery.ParseError
	if !errors.As(err, &e) {
		tb.Fatalf("Parse(%q)=%v, want *ParseError", s, err)
	} else if e.Message != want {
		tb.Fatalf("Parse(%q)=%q, want %q", s, e.Message, want)
	}
	return e
}

// AssertTables parses s and compares the extracted table names to want.
func AssertTables(tb testing.TB, s string, want []string) {
	tb.Helper()
	got := ParseOrFail(tb, s).Tables()
	if got == nil {
		tb.Fatalf("Tables(%q) returned nil", s)
	}
	if diff := deep.Equal(got, want); diff != nil {
		tb.Fatalf("mismatch:\n%s", strings.Join(diff, "\n"))
	}
}

// AssertJSONEqual compares two JSON documents by value.
func AssertJSONEqual(tb testing.TB, got []byte, want string) {
	tb.Helper()
	var g, w any
	if err := json.Unmarshal(got, &g); err != nil {
		tb.Fatalf("invalid JSON %s: %s", got, err)
	}
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		tb.Fatalf("invalid expected JSON: %s", err)
	}
	if diff := deep.Equal(g, w); diff != nil {
		tb.Fatalf("mismatch:\n%s\ngot: %s", strings.Join(diff, "\n"), got)
	}
}
