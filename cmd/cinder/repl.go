package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"

	"go.cinder.dev/pkg"
)

const (
	historyFile = ".cinder_history"
	promptMain  = "cinder> "
	promptCont  = "......> "
)

// prompter is the part of *liner.State the read loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
}

func cmdRepl(args []string) int {
	fs, verbose := newFlagSet("repl", os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	interp := cinder.New(cinder.WithLogger(newLogger(*verbose, os.Stderr)))
	fmt.Println("cinder. Type :quit to exit.")

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}

		if code == "" {
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(code, ":") {
			if code == ":quit" {
				return 0
			}
			fmt.Println("unknown command. Type :quit to exit.")
			continue
		}

		evalLine(interp, code, os.Stdout, os.Stderr)
	}
}

// evalLine runs one complete entry and prints its value or error.
func evalLine(interp *cinder.Interpreter, code string, stdout, stderr io.Writer) {
	v, err := interp.Eval(strings.NewReader(code), "repl")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return
	}

	fmt.Fprintln(stdout, v)
}

// readByParseProbe reads lines until they form a program that either parses
// or fails for a reason other than running out of input. ok is false once
// the input is closed.
func readByParseProbe(p prompter, prompt, cont string) (code string, ok bool) {
	var b strings.Builder

	for {
		current := prompt
		if b.Len() > 0 {
			current = cont
		}

		line, err := p.Prompt(current)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := strings.TrimSpace(b.String())
		if src == "" || strings.HasPrefix(src, ":") {
			return src, true
		}

		_, err = cinder.Parse(strings.NewReader(src), "repl")
		if err != nil && cinder.IsIncomplete(err) {
			continue
		}

		return src, true
	}
}
