package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"go.cinder.dev/pkg"
)

const appName = "cinder"

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "lex":
		os.Exit(cmdLex(args, os.Stdout, os.Stderr))
	case "parse":
		os.Exit(cmdParse(args, os.Stdout, os.Stderr))
	case "check":
		os.Exit(cmdCheck(args, os.Stdout, os.Stderr))
	case "run":
		os.Exit(cmdRun(args, os.Stdout, os.Stderr))
	case "test":
		os.Exit(cmdTest(args, os.Stdout, os.Stderr))
	case "repl":
		os.Exit(cmdRepl(args))
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  %[1]s lex <file>             Print the token stream.
  %[1]s parse <file>           Print the syntax tree.
  %[1]s check <file>           Parse and analyze without running.
  %[1]s run [-v] <file>        Run a program and print its value.
  %[1]s test [-p N] [dir]      Run YAML scenarios (default ".")
  %[1]s repl [-v]              Start the interactive loop.
`, appName)
}

// newFlagSet builds a subcommand flag set with the shared -v flag.
func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "log interpreter activity to stderr")

	return fs, verbose
}

func newLogger(verbose bool, stderr io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// fileArg returns the single positional argument of a subcommand.
func fileArg(fs *flag.FlagSet, stderr io.Writer) (string, bool) {
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "usage: %s %s <file>\n", appName, fs.Name())
		return "", false
	}

	return fs.Arg(0), true
}

func openSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}

	return f, nil
}

// parseFile reads and parses path into a UNIT node.
func parseFile(path string) (*cinder.Node, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return cinder.Parse(f, path)
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, err.Error())
	return 1
}
