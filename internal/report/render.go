package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sqltree/pgquery"
	"github.com/sqltree/pgquery/internal/config"
)

// Renderer writes results in one of the config output formats.
type Renderer struct {
	w      io.Writer
	format string
}

// NewRenderer returns a Renderer writing format to w.
func NewRenderer(w io.Writer, format string) *Renderer {
	return &Renderer{w: w, format: format}
}

// Render writes results for task.
func (r *Renderer) Render(task Task, results []Result) error {
	switch r.format {
	case config.OutputJSON:
		return r.renderJSON(task, results)
	case config.OutputTable:
		r.renderTable(task, results)
		return nil
	default:
		r.renderText(task, results)
		return nil
	}
}

func (r *Renderer) renderText(task Task, results []Result) {
	named := len(results) > 1
	for _, res := range results {
		prefix := ""
		if named {
			prefix = res.Input.Name + ": "
		}
		if res.Err != nil {
			_, _ = fmt.Fprintf(r.w, "%serror: %s\n", prefix, describeError(res.Err))
			continue
		}

		switch task {
		case TaskTokens:
			for _, x := range res.Tokens {
				_, _ = fmt.Fprintf(r.w, "%s%s\t%s\t%s\t%s\n", prefix, x.Pos, x.Kind(), x.Tok, x.Lit)
			}
		case TaskTables:
			for _, name := range res.Tables {
				_, _ = fmt.Fprintf(r.w, "%s%s\n", prefix, name)
			}
		default:
			_, _ = fmt.Fprintf(r.w, "%s%s\n", prefix, res.Parse.JSON())
		}
		if res.Parse != nil {
			for _, w := range res.Parse.Warnings {
				_, _ = fmt.Fprintf(r.w, "%swarning: %s (at %d)\n", prefix, w.Message, w.Location)
			}
		}
	}
}

func (r *Renderer) renderTable(task Task, results []Result) {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)

	var rows int
	switch task {
	case TaskTokens:
		t.AppendHeader(table.Row{"Input", "Pos", "Kind", "Token", "Text"})
		for _, res := range results {
			if res.Err != nil {
				t.AppendRow(table.Row{res.Input.Name, "", "error", "", describeError(res.Err)})
				rows++
				continue
			}
			for _, x := range res.Tokens {
				t.AppendRow(table.Row{res.Input.Name, x.Pos.String(), x.Kind().String(), x.Tok.String(), x.Lit})
				rows++
			}
		}
	case TaskTables:
		t.AppendHeader(table.Row{"Input", "Table"})
		for _, res := range results {
			if res.Err != nil {
				t.AppendRow(table.Row{res.Input.Name, "error: " + describeError(res.Err)})
				rows++
				continue
			}
			for _, name := range res.Tables {
				t.AppendRow(table.Row{res.Input.Name, name})
				rows++
			}
		}
	default:
		t.AppendHeader(table.Row{"Input", "#", "Statement", "Tables"})
		for _, res := range results {
			if res.Err != nil {
				t.AppendRow(table.Row{res.Input.Name, "", "error", describeError(res.Err)})
				rows++
				continue
			}
			for i, stmt := range res.Parse.Statements {
				t.AppendRow(table.Row{res.Input.Name, i + 1, string(stmt.Kind), strings.Join(statementTables(stmt), ", ")})
				rows++
			}
		}
	}

	if rows == 0 {
		_, _ = fmt.Fprintln(r.w, "(0 rows)")
	} else {
		t.Render()
		_, _ = fmt.Fprintf(r.w, "(%d rows)\n", rows)
	}

	for _, res := range results {
		if res.Parse == nil {
			continue
		}
		for _, w := range res.Parse.Warnings {
			_, _ = fmt.Fprintf(r.w, "%s: warning: %s (at %d)\n", res.Input.Name, w.Message, w.Location)
		}
	}
}

func statementTables(stmt *pgquery.Node) []string {
	return pgquery.ExtractTables([]*pgquery.Node{stmt})
}

type jsonResult struct {
	Input      string          `json:"input"`
	Statements json.RawMessage `json:"statements,omitempty"`
	Tables     []string        `json:"tables,omitempty"`
	Tokens     []jsonToken     `json:"tokens,omitempty"`
	Warnings   []jsonWarning   `json:"warnings,omitempty"`
	Error      *jsonError      `json:"error,omitempty"`
}

type jsonToken struct {
	Token  string `json:"token"`
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonWarning struct {
	Message  string `json:"message"`
	Location int    `json:"location"`
}

type jsonError struct {
	Message  string `json:"message"`
	Location int    `json:"location,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

func (r *Renderer) renderJSON(task Task, results []Result) error {
	out := make([]jsonResult, len(results))
	for i, res := range results {
		jr := jsonResult{Input: res.Input.Name}
		if res.Err != nil {
			jr.Error = newJSONError(res.Err)
		}
		if res.Parse != nil {
			if task == TaskParse {
				jr.Statements = res.Parse.JSON()
			}
			jr.Tables = res.Tables
			if task == TaskTables && jr.Tables == nil {
				jr.Tables = []string{}
			}
			for _, w := range res.Parse.Warnings {
				jr.Warnings = append(jr.Warnings, jsonWarning{Message: w.Message, Location: w.Location})
			}
		}
		if task == TaskTokens && res.Err == nil {
			for _, x := range res.Tokens {
				jr.Tokens = append(jr.Tokens, jsonToken{
					Token:  x.Tok.String(),
					Kind:   x.Kind().String(),
					Text:   x.Lit,
					Line:   x.Pos.Line,
					Column: x.Pos.Column,
				})
			}
		}
		out[i] = jr
	}

	enc := json.NewEncoder(r.w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func newJSONError(err error) *jsonError {
	var perr *pgquery.ParseError
	if errors.As(err, &perr) {
		return &jsonError{Message: perr.Message, Location: perr.Location, Line: perr.Line, Column: perr.Column}
	}
	var terr *TokenError
	if errors.As(err, &terr) {
		return &jsonError{Message: terr.Lexeme.Err, Line: terr.Lexeme.Pos.Line, Column: terr.Lexeme.Pos.Column}
	}
	return &jsonError{Message: err.Error()}
}

// describeError appends the error cursor of a ParseError.
func describeError(err error) string {
	var perr *pgquery.ParseError
	if errors.As(err, &perr) && perr.Location > 0 {
		return perr.Message + " (at " + strconv.Itoa(perr.Location) + ")"
	}
	return err.Error()
}
