package cinder

import (
	"fmt"
	"strconv"
)

type ValueKind int

const (
	ValueInt ValueKind = iota
	ValueFunction
	ValueIntrinsic
)

func (k ValueKind) String() string {
	switch k {
	case ValueInt:
		return "integer"
	case ValueFunction:
		return "function"
	case ValueIntrinsic:
		return "intrinsic function"
	}

	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// IntrinsicFunc implements a built-in function. Arguments are already
// evaluated; loc is the call site.
type IntrinsicFunc func(args []Value, loc Location, interp *Interpreter) (Value, error)

type Intrinsic struct {
	Name string
	Fn   IntrinsicFunc
}

// Function is a user-defined function closed over its defining environment.
// Body is borrowed from the AST that defined it.
type Function struct {
	Name   string
	Params []string
	Body   *Node
	Env    *Environment
}

// Value is a runtime value: an integer, a user function or an intrinsic.
// Values are copied freely; function values share their Function record.
type Value struct {
	Kind      ValueKind
	Int       int64
	Fn        *Function
	Intrinsic *Intrinsic
}

func IntValue(i int64) Value {
	return Value{Kind: ValueInt, Int: i}
}

func FunctionValue(fn *Function) Value {
	return Value{Kind: ValueFunction, Fn: fn}
}

func IntrinsicValue(in *Intrinsic) Value {
	return Value{Kind: ValueIntrinsic, Intrinsic: in}
}

func boolValue(b bool) Value {
	if b {
		return IntValue(1)
	}

	return IntValue(0)
}

func (v Value) IsInt() bool {
	return v.Kind == ValueInt
}

func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueFunction:
		return fmt.Sprintf("<function %s>", v.Fn.Name)
	case ValueIntrinsic:
		return "<intrinsic function>"
	}

	return fmt.Sprintf("<unknown value kind %d>", int(v.Kind))
}
