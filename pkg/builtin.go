package cinder

import (
	"fmt"
)

func defineBuiltins(env *Environment) {
	defineBuiltinFunc(env, "print", builtinPrint)
	defineBuiltinFunc(env, "println", builtinPrintln)
}

func defineBuiltinFunc(env *Environment, name string, fn IntrinsicFunc) {
	env.Define(name, IntrinsicValue(&Intrinsic{
		Name: name,
		Fn:   fn,
	}))
}

func builtinPrint(args []Value, loc Location, interp *Interpreter) (Value, error) {
	return writeValue(args, loc, interp, "print", "")
}

func builtinPrintln(args []Value, loc Location, interp *Interpreter) (Value, error) {
	return writeValue(args, loc, interp, "println", "\n")
}

func writeValue(args []Value, loc Location, interp *Interpreter, name, suffix string) (Value, error) {
	if len(args) != 1 {
		return Value{}, evaluationErrorf(loc, "Intrinsic function '%s' expects 1 argument, got %d.", name, len(args))
	}

	if _, err := fmt.Fprint(interp.Output(), args[0].String(), suffix); err != nil {
		return Value{}, runtimeErrorf("%s: %v", name, err)
	}

	return IntValue(0), nil
}
