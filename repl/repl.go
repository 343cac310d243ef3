// Package repl implements the read-eval-print loop fixed by spec.md §6.3:
// a persistent environment, a pretty-printed output surface, and (as a
// non-core convenience) a persisted input history.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/midbel/monkey/env"
	"github.com/midbel/monkey/evaluator"
	"github.com/midbel/monkey/lexer"
	"github.com/midbel/monkey/object"
	"github.com/midbel/monkey/parser"
)

const prompt = ">> "

// Options configures a REPL session.
type Options struct {
	// HistoryPath, if non-empty, persists every accepted line and its
	// printed result to a bbolt database at this path.
	HistoryPath string
	// Color enables ANSI-colored error and value output.
	Color bool
}

// Start runs the loop until in is exhausted. Variable bindings persist
// for the lifetime of the session via a single shared Environment.
func Start(in io.Reader, out io.Writer, opts Options) error {
	var history *historyStore
	if opts.HistoryPath != "" {
		h, err := openHistory(opts.HistoryPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer h.Close()
		history = h
	}

	errColor := color.New(color.FgRed)
	okColor := color.New(color.FgGreen)
	if !opts.Color {
		errColor.DisableColor()
		okColor.DisableColor()
	}

	scope := evaluator.NewEnvironment()
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		result := evalLine(line, scope)
		printResult(out, errColor, okColor, result)

		if history != nil {
			history.Record(line, result.Inspect())
		}
	}
}

func evalLine(line string, scope env.Environment[object.Object]) object.Object {
	p := parser.New(lexer.New(line))
	program := p.Parse()
	if len(program.Errors) > 0 {
		return object.Newf(object.InvalidToken, "%s", program.Errors[0])
	}
	return evaluator.Eval(program, scope)
}

func printResult(out io.Writer, errColor, okColor *color.Color, result object.Object) {
	if object.IsError(result) {
		errColor.Fprintln(out, result.Inspect())
		return
	}
	okColor.Fprintln(out, result.Inspect())
}
