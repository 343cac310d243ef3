package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/midbel/monkey/evaluator"
	"github.com/midbel/monkey/lexer"
	"github.com/midbel/monkey/object"
	"github.com/midbel/monkey/parser"
	"github.com/midbel/monkey/repl"
)

func main() {
	history := flag.String("history", "", "persist REPL input/output to this bbolt file")
	noColor := flag.Bool("no-color", false, "disable colorized REPL output")
	replay := flag.Bool("replay", false, "print the history file's recorded sessions and exit")
	flag.Parse()

	if *replay {
		if err := replayHistory(*history); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if file := flag.Arg(0); file != "" {
		if err := runFile(file); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	opts := repl.Options{
		HistoryPath: *history,
		Color:       !*noColor && term.IsTerminal(int(os.Stdout.Fd())),
	}
	if err := repl.Start(os.Stdin, os.Stdout, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	p := parser.New(lexer.New(string(source)))
	program := p.Parse()
	if len(program.Errors) > 0 {
		for _, e := range program.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("%d parse error(s)", len(program.Errors))
	}

	scope := evaluator.NewEnvironment()
	result := evaluator.Eval(program, scope)
	if object.IsError(result) {
		return fmt.Errorf("%s", result.Inspect())
	}
	fmt.Println(result.Inspect())
	return nil
}

func replayHistory(path string) error {
	if path == "" {
		return fmt.Errorf("-replay requires -history")
	}
	entries, err := repl.Replay(path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s => %s\n", e[0], e[1])
	}
	return nil
}
