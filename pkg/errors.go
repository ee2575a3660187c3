package cinder

import (
	"errors"
	"fmt"
)

// Location identifies a position in a source file. Lines and columns are 1-based.
type Location struct {
	Filename string
	Line     int
	Col      int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Col)
}

// SyntaxError is raised by the lexer and the parser.
type SyntaxError struct {
	Loc Location
	Msg string

	// AtEOF is set when the error was caused by the input ending early.
	AtEOF bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

// SemanticError reports a name resolution failure.
type SemanticError struct {
	Loc Location
	Msg string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

// EvaluationError reports a failure while running a program: division by
// zero, arity or kind mismatches and redefinitions.
type EvaluationError struct {
	Loc Location
	Msg string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

// RuntimeError signals a broken internal invariant. It has no location.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string {
	return e.Msg
}

func syntaxErrorf(loc Location, format string, args ...interface{}) error {
	return &SyntaxError{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

func eofErrorf(loc Location, format string, args ...interface{}) error {
	return &SyntaxError{Loc: loc, Msg: fmt.Sprintf(format, args...), AtEOF: true}
}

func semanticErrorf(loc Location, format string, args ...interface{}) error {
	return &SemanticError{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

func evaluationErrorf(loc Location, format string, args ...interface{}) error {
	return &EvaluationError{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

func runtimeErrorf(format string, args ...interface{}) error {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...)}
}

// IsIncomplete reports whether err means the input ended in the middle of a
// construct, so more input could make it valid.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.AtEOF
}

// LocationOf returns the source location carried by err, if any.
func LocationOf(err error) (Location, bool) {
	var (
		syn  *SyntaxError
		sem  *SemanticError
		eval *EvaluationError
	)

	switch {
	case errors.As(err, &syn):
		return syn.Loc, true
	case errors.As(err, &sem):
		return sem.Loc, true
	case errors.As(err, &eval):
		return eval.Loc, true
	}

	return Location{}, false
}

// ErrorKind names the category of err ("SyntaxError", "SemanticError",
// "EvaluationError" or "RuntimeError"), or "" for foreign errors.
func ErrorKind(err error) string {
	var (
		syn  *SyntaxError
		sem  *SemanticError
		eval *EvaluationError
		rt   *RuntimeError
	)

	switch {
	case errors.As(err, &syn):
		return "SyntaxError"
	case errors.As(err, &sem):
		return "SemanticError"
	case errors.As(err, &eval):
		return "EvaluationError"
	case errors.As(err, &rt):
		return "RuntimeError"
	}

	return ""
}

// ErrorMessage returns the bare message of a cinder error, without location.
func ErrorMessage(err error) string {
	var (
		syn  *SyntaxError
		sem  *SemanticError
		eval *EvaluationError
		rt   *RuntimeError
	)

	switch {
	case errors.As(err, &syn):
		return syn.Msg
	case errors.As(err, &sem):
		return sem.Msg
	case errors.As(err, &eval):
		return eval.Msg
	case errors.As(err, &rt):
		return rt.Msg
	}

	return err.Error()
}
