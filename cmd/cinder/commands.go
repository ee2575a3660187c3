package main

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"go.cinder.dev/internal/fixture"
	"go.cinder.dev/pkg"
)

func cmdLex(args []string, stdout, stderr io.Writer) int {
	fs, _ := newFlagSet("lex", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path, ok := fileArg(fs, stderr)
	if !ok {
		return 2
	}

	f, err := openSource(path)
	if err != nil {
		return fail(stderr, err)
	}
	defer f.Close()

	tokens, err := cinder.NewLexer(f, path).All()
	if err != nil {
		return fail(stderr, err)
	}

	for _, tok := range tokens {
		fmt.Fprintln(stdout, tok)
	}

	return 0
}

func cmdParse(args []string, stdout, stderr io.Writer) int {
	fs, _ := newFlagSet("parse", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path, ok := fileArg(fs, stderr)
	if !ok {
		return 2
	}

	unit, err := parseFile(path)
	if err != nil {
		return fail(stderr, err)
	}

	if err := cinder.PrintTree(stdout, unit); err != nil {
		return fail(stderr, err)
	}

	return 0
}

func cmdCheck(args []string, stdout, stderr io.Writer) int {
	fs, verbose := newFlagSet("check", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path, ok := fileArg(fs, stderr)
	if !ok {
		return 2
	}

	unit, err := parseFile(path)
	if err != nil {
		return fail(stderr, err)
	}

	interp := cinder.New(cinder.WithOutput(stdout), cinder.WithLogger(newLogger(*verbose, stderr)))
	if err := interp.Analyze(unit); err != nil {
		return fail(stderr, err)
	}

	fmt.Fprintf(stdout, "%s: ok\n", path)
	return 0
}

func cmdRun(args []string, stdout, stderr io.Writer) int {
	fs, verbose := newFlagSet("run", stderr)
	depth := fs.Int("depth", cinder.DefaultMaxCallDepth, "maximum nesting of function calls")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path, ok := fileArg(fs, stderr)
	if !ok {
		return 2
	}

	f, err := openSource(path)
	if err != nil {
		return fail(stderr, err)
	}
	defer f.Close()

	interp := cinder.New(
		cinder.WithOutput(stdout),
		cinder.WithLogger(newLogger(*verbose, stderr)),
		cinder.WithMaxCallDepth(*depth),
	)

	v, err := interp.Eval(f, path)
	if err != nil {
		return fail(stderr, err)
	}

	fmt.Fprintf(stdout, "Result: %s\n", v)
	return 0
}

func cmdTest(args []string, stdout, stderr io.Writer) int {
	fs, _ := newFlagSet("test", stderr)
	parallel := fs.Int("p", runtime.NumCPU(), "number of scenarios run at once")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	dir := "."
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}

	scenarios, err := fixture.Load(dir)
	if err != nil {
		return fail(stderr, err)
	}

	results, err := fixture.RunAll(context.Background(), scenarios, *parallel)
	if err != nil {
		return fail(stderr, err)
	}

	failed := 0
	for _, res := range results {
		if !res.Passed {
			failed++
		}
		fmt.Fprintln(stdout, res)
	}

	fmt.Fprintf(stdout, "%d passed, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		return 1
	}

	return 0
}
