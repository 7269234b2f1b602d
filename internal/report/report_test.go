package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sqltree/pgquery"
	"github.com/sqltree/pgquery/internal/config"
	"github.com/sqltree/pgquery/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	return config.WithLogger(context.Background(), testutil.NewTestLogger(t))
}

func TestReadInputs(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.sql")
	require.NoError(t, os.WriteFile(a, []byte("SELECT 1"), 0o600))

	t.Run("FilesAndStdin", func(t *testing.T) {
		inputs, err := ReadInputs([]string{a, StdinName}, strings.NewReader("CHECKPOINT"))
		require.NoError(t, err)
		assert.Equal(t, []Input{{Name: a, SQL: "SELECT 1"}, {Name: "-", SQL: "CHECKPOINT"}}, inputs)
	})

	t.Run("NoInput", func(t *testing.T) {
		_, err := ReadInputs(nil, strings.NewReader(""))
		assert.ErrorIs(t, err, ErrNoInput)
	})

	t.Run("StdinTwice", func(t *testing.T) {
		_, err := ReadInputs([]string{"-", "-"}, strings.NewReader(""))
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := ReadInputs([]string{filepath.Join(dir, "missing.sql")}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestRun_Order(t *testing.T) {
	var inputs []Input
	for i := range 20 {
		inputs = append(inputs, Input{Name: fmt.Sprintf("q%d", i), SQL: fmt.Sprintf("SELECT * FROM t%d", i)})
	}

	results, err := Run(testContext(t), inputs, Options{Task: TaskTables, Concurrency: 3})
	require.NoError(t, err)
	require.Len(t, results, len(inputs))
	for i, res := range results {
		assert.Equal(t, inputs[i].Name, res.Input.Name)
		assert.Equal(t, []string{fmt.Sprintf("t%d", i)}, res.Tables)
	}
}

func TestRun_Errors(t *testing.T) {
	inputs := []Input{
		{Name: "good", SQL: "SELECT 1"},
		{Name: "bad", SQL: "SELECT * FROM"},
	}

	t.Run("Recorded", func(t *testing.T) {
		results, err := Run(testContext(t), inputs, Options{Task: TaskParse, Concurrency: 2})
		require.NoError(t, err)
		assert.NoError(t, results[0].Err)
		require.Error(t, results[1].Err)
		assert.Equal(t, 1, Failed(results))

		var perr *pgquery.ParseError
		require.ErrorAs(t, results[1].Err, &perr)
		assert.Equal(t, 14, perr.Location)
	})

	t.Run("FailFast", func(t *testing.T) {
		_, err := Run(testContext(t), inputs, Options{Task: TaskParse, Concurrency: 1, FailFast: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad: ")

		var perr *pgquery.ParseError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(testContext(t))
		cancel()
		_, err := Run(ctx, inputs, Options{Task: TaskParse, Concurrency: 1})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRun_Dedupe(t *testing.T) {
	inputs := []Input{{Name: "q", SQL: "SELECT * FROM a, b, a"}}

	results, err := Run(testContext(t), inputs, Options{Task: TaskTables})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "a"}, results[0].Tables)

	results, err = Run(testContext(t), inputs, Options{Task: TaskTables, Dedupe: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, results[0].Tables)
}

func TestRun_Tokens(t *testing.T) {
	results, err := Run(testContext(t), []Input{
		{Name: "ok", SQL: "SELECT 1"},
		{Name: "bad", SQL: "SELECT 'x"},
	}, Options{Task: TaskTokens, Concurrency: 2})
	require.NoError(t, err)

	require.Len(t, results[0].Tokens, 3)
	assert.Equal(t, pgquery.EOF, results[0].Tokens[2].Tok)
	assert.Nil(t, results[0].Parse)

	var terr *TokenError
	require.ErrorAs(t, results[1].Err, &terr)
	assert.Equal(t, "unterminated quoted string at 1:8", terr.Error())
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Dedupe = true
	opts := OptionsFromConfig(TaskTables, cfg)
	assert.Equal(t, Options{Task: TaskTables, Concurrency: config.DefaultConcurrency, Dedupe: true}, opts)
}

func runAndRender(t *testing.T, format string, task Task, inputs ...Input) string {
	t.Helper()
	results, err := Run(testContext(t), inputs, Options{Task: task, Concurrency: 2})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, format).Render(task, results))
	return buf.String()
}

func TestRenderer_Text(t *testing.T) {
	t.Run("Parse", func(t *testing.T) {
		out := runAndRender(t, config.OutputText, TaskParse, Input{Name: "-", SQL: "CHECKPOINT"})
		assert.Equal(t, "[{\"CHECKPOINT\":{}}]\n", out)
	})

	t.Run("Warnings", func(t *testing.T) {
		out := runAndRender(t, config.OutputText, TaskParse, Input{Name: "-", SQL: "CREATE GLOBAL TEMP TABLE t (a int)"})
		assert.Contains(t, out, "warning: GLOBAL is deprecated in temporary table creation (at 8)\n")
	})

	t.Run("TablesWithNames", func(t *testing.T) {
		out := runAndRender(t, config.OutputText, TaskTables,
			Input{Name: "a.sql", SQL: "SELECT * FROM x JOIN y ON true"},
			Input{Name: "b.sql", SQL: "SELECT 'x"},
			Input{Name: "c.sql", SQL: "DELETE FROM z"},
		)
		assert.Equal(t, "a.sql: x\na.sql: y\nb.sql: error: unterminated quoted string at or near \"'x\" (at 8)\nc.sql: z\n", out)
	})

	t.Run("Tokens", func(t *testing.T) {
		out := runAndRender(t, config.OutputText, TaskTokens, Input{Name: "-", SQL: "SELECT a"})
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "1:1\tkeyword\tSELECT\t"))
		assert.Equal(t, "1:8\tidentifier\tIDENT\ta", lines[1])
	})
}

func TestRenderer_Table(t *testing.T) {
	out := runAndRender(t, config.OutputTable, TaskParse,
		Input{Name: "a.sql", SQL: "SELECT * FROM x; CHECKPOINT"},
		Input{Name: "b.sql", SQL: "SELEC"},
	)
	assert.Contains(t, out, "SELECT")
	assert.Contains(t, out, "CHECKPOINT")
	assert.Contains(t, out, `syntax error at or near "SELEC" (at 1)`)
	assert.Contains(t, out, "(3 rows)\n")

	empty := runAndRender(t, config.OutputTable, TaskTables, Input{Name: "-", SQL: "BEGIN"})
	assert.Equal(t, "(0 rows)\n", empty)
}

func TestRenderer_JSON(t *testing.T) {
	out := runAndRender(t, config.OutputJSON, TaskParse,
		Input{Name: "a.sql", SQL: "SELECT 1 <> 2"},
		Input{Name: "b.sql", SQL: "SELECT 'x"},
	)

	var got []struct {
		Input      string          `json:"input"`
		Statements json.RawMessage `json:"statements"`
		Tables     []string        `json:"tables"`
		Error      *struct {
			Message  string `json:"message"`
			Location int    `json:"location"`
			Line     int    `json:"line"`
			Column   int    `json:"column"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "a.sql", got[0].Input)
	assert.Nil(t, got[0].Error)
	assert.Contains(t, out, `"<>"`)
	want := pgquery.MustParse("SELECT 1 <> 2").JSON()
	assert.JSONEq(t, string(want), string(got[0].Statements))

	require.NotNil(t, got[1].Error)
	assert.Equal(t, "unterminated quoted string at or near \"'x\"", got[1].Error.Message)
	assert.Equal(t, 8, got[1].Error.Location)
	assert.Equal(t, 1, got[1].Error.Line)
	assert.Empty(t, got[1].Statements)
}

func TestDescribeError(t *testing.T) {
	assert.Equal(t, "boom", describeError(errors.New("boom")))
	assert.Equal(t, "x (at 3)", describeError(&pgquery.ParseError{Message: "x", Location: 3}))
}
