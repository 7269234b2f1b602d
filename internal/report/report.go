// Package report runs the parser over a set of inputs and renders the
// outcome for the command line.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sqltree/pgquery"
	"github.com/sqltree/pgquery/internal/config"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoInput is returned when no input files were named.
	ErrNoInput = errors.New("no input: pass one or more files, or - for stdin")

	// ErrFailed is wrapped by Run's caller when some inputs did not parse.
	ErrFailed = errors.New("failed to parse input")
)

// StdinName is the argument that selects standard input.
const StdinName = "-"

// Task selects what Run computes for each input.
type Task int

const (
	TaskParse Task = iota
	TaskTables
	TaskTokens
)

// Input is a named SQL text.
type Input struct {
	Name string
	SQL  string
}

// ReadInputs reads the named files in order. StdinName reads stdin, at
// most once.
func ReadInputs(names []string, stdin io.Reader) ([]Input, error) {
	if len(names) == 0 {
		return nil, ErrNoInput
	}
	inputs := make([]Input, 0, len(names))
	var stdinRead bool
	for _, name := range names {
		var buf []byte
		var err error
		if name == StdinName {
			if stdinRead {
				return nil, fmt.Errorf("stdin named more than once")
			}
			stdinRead = true
			buf, err = io.ReadAll(stdin)
		} else {
			buf, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		inputs = append(inputs, Input{Name: name, SQL: string(buf)})
	}
	return inputs, nil
}

// Options controls Run.
type Options struct {
	Task        Task
	Concurrency int
	FailFast    bool
	Dedupe      bool
}

// OptionsFromConfig builds Options for task from cfg.
func OptionsFromConfig(task Task, cfg *config.Config) Options {
	return Options{
		Task:        task,
		Concurrency: cfg.Concurrency,
		FailFast:    cfg.FailFast,
		Dedupe:      cfg.Dedupe,
	}
}

// Result is the outcome for one input.
type Result struct {
	Input Input

	Parse  *pgquery.ParseResult // TaskParse and TaskTables
	Tables []string             // TaskParse and TaskTables
	Tokens []pgquery.Lexeme     // TaskTokens
	Err    error
}

// Run processes inputs concurrently, at most opts.Concurrency at a time.
// Results are returned in input order. Per-input errors are recorded on
// the Result; with FailFast the first one also stops the run and is
// returned.
func Run(ctx context.Context, inputs []Input, opts Options) ([]Result, error) {
	logger := config.GetLogger(ctx)
	results := make([]Result, len(inputs))

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := process(in, opts)
			results[i] = res
			if res.Err != nil {
				logger.Warn("input failed", "input", in.Name, "error", res.Err)
				if opts.FailFast {
					return fmt.Errorf("%s: %w", in.Name, res.Err)
				}
				return nil
			}
			logger.Debug("input processed", "input", in.Name, "tables", len(res.Tables), "tokens", len(res.Tokens))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func process(in Input, opts Options) Result {
	res := Result{Input: in}
	if opts.Task == TaskTokens {
		res.Tokens = pgquery.Tokenize(in.SQL)
		if last := res.Tokens[len(res.Tokens)-1]; last.Tok == pgquery.ILLEGAL {
			res.Err = &TokenError{Lexeme: last}
		}
		return res
	}

	parsed, err := pgquery.Parse(in.SQL)
	if err != nil {
		res.Err = err
		return res
	}
	res.Parse = parsed
	res.Tables = parsed.Tables()
	if opts.Dedupe {
		res.Tables = pgquery.DistinctTables(res.Tables)
	}
	return res
}

// Failed returns the number of results carrying an error.
func Failed(results []Result) int {
	var n int
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// TokenError reports the illegal lexeme that stopped tokenizing.
type TokenError struct {
	Lexeme pgquery.Lexeme
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s at %s", e.Lexeme.Err, e.Lexeme.Pos)
}
