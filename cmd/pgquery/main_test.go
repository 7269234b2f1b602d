package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sqltree/pgquery/internal/config"
	"github.com/sqltree/pgquery/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and stdin in an empty working
// directory, returning stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseCommand(t *testing.T) {
	t.Run("Stdin", func(t *testing.T) {
		out, _, err := execute(t, "SELECT 1", "parse", "-")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"SELECT":{
			"targetList":[{"RESTARGET":{"val":{"A_CONST":{"val":{"Integer":{"ival":1}},"location":7}},"location":7}}],
			"op":0}}]`, out)
	})

	t.Run("JSONOutput", func(t *testing.T) {
		out, _, err := execute(t, "CHECKPOINT", "parse", "-o", "json", "-")
		require.NoError(t, err)

		var got []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "-", got[0]["input"])
		assert.Equal(t, []any{map[string]any{"CHECKPOINT": map[string]any{}}}, got[0]["statements"])
	})

	t.Run("SyntaxError", func(t *testing.T) {
		out, _, err := execute(t, "SELECT * FROM", "parse", "-")
		require.ErrorIs(t, err, report.ErrFailed)
		assert.Equal(t, "error: syntax error at end of input (at 14)\n", out)
	})

	t.Run("NoInput", func(t *testing.T) {
		_, _, err := execute(t, "", "parse")
		assert.ErrorIs(t, err, report.ErrNoInput)
	})
}

func TestTablesCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.sql", "SELECT * FROM x JOIN y ON x.id = y.id JOIN x x2 ON true")
	b := writeFile(t, dir, "b.sql", "INSERT INTO z SELECT * FROM w")

	t.Run("InputOrder", func(t *testing.T) {
		out, _, err := execute(t, "", "tables", "-j", "2", a, b)
		require.NoError(t, err)
		assert.Equal(t, a+": x\n"+a+": y\n"+a+": x\n"+b+": z\n"+b+": w\n", out)
	})

	t.Run("Dedupe", func(t *testing.T) {
		out, _, err := execute(t, "", "tables", "--dedupe", a)
		require.NoError(t, err)
		assert.Equal(t, "x\ny\n", out)
	})

	t.Run("Table", func(t *testing.T) {
		out, _, err := execute(t, "", "tables", "-o", "table", b)
		require.NoError(t, err)
		assert.Contains(t, out, "(2 rows)")
	})

	t.Run("FailFast", func(t *testing.T) {
		bad := writeFile(t, dir, "bad.sql", "DROP")
		_, _, err := execute(t, "", "tables", "--fail-fast", "-j", "1", bad, a)
		require.Error(t, err)
		assert.Contains(t, err.Error(), bad+": syntax error")
	})
}

func TestTokensCommand(t *testing.T) {
	out, _, err := execute(t, "SELECT $1", "tokens", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "1:8\tparam\tPARAM\t")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "custom.yaml", "output: json\nlog:\n  level: debug\n")

	out, stderr, err := execute(t, "BEGIN", "--config", cfgPath, "parse", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "["))
	assert.Contains(t, out, `"TRANSACTION"`)
	assert.Contains(t, stderr, "using config file")
	assert.Contains(t, stderr, "input processed")
}

func TestInvalidConfig(t *testing.T) {
	_, _, err := execute(t, "", "parse", "-o", "xml", "-")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestGetConfig_Default(t *testing.T) {
	assert.Equal(t, config.Default(), GetConfig(context.Background()))
}
