package cinder

import (
	"io"
	"log/slog"
	"os"
)

const DefaultMaxCallDepth = 10000

// Interpreter owns a global environment that persists across Execute calls.
type Interpreter struct {
	global   *Environment
	out      io.Writer
	logger   *slog.Logger
	maxDepth int
	depth    int
}

type Option func(*Interpreter)

// WithOutput redirects the output of the print intrinsics.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(i *Interpreter) {
		i.logger = l
	}
}

// WithMaxCallDepth bounds the nesting of user function calls.
func WithMaxCallDepth(n int) Option {
	return func(i *Interpreter) {
		i.maxDepth = n
	}
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global:   NewEnvironment(nil),
		out:      os.Stdout,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDepth: DefaultMaxCallDepth,
	}

	for _, opt := range opts {
		opt(i)
	}

	defineBuiltins(i.global)
	return i
}

func (i *Interpreter) Global() *Environment {
	return i.global
}

func (i *Interpreter) Output() io.Writer {
	return i.out
}

// Parse reads a whole program from reader.
func Parse(reader io.Reader, filename string) (*Node, error) {
	return NewParser(NewLexer(reader, filename)).Parse()
}

// Analyze checks unit against the names currently bound in the global
// environment.
func (i *Interpreter) Analyze(unit *Node) error {
	i.logger.Debug("analyze", slog.String("phase", "analyze"))

	return NewContextAnalyzer(i.global).Analyze(unit)
}

// Execute evaluates unit in the global environment and returns the value of
// its last statement.
func (i *Interpreter) Execute(unit *Node) (Value, error) {
	i.logger.Debug("execute", slog.String("phase", "execute"))

	i.depth = 0
	return i.evaluate(unit, i.global)
}

// Eval parses, analyzes and executes a program.
func (i *Interpreter) Eval(reader io.Reader, filename string) (Value, error) {
	unit, err := Parse(reader, filename)
	if err != nil {
		return Value{}, err
	}

	if err := i.Analyze(unit); err != nil {
		return Value{}, err
	}

	return i.Execute(unit)
}
