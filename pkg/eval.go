package cinder

import (
	"log/slog"
)

type binaryOp struct {
	symbol string
	apply  func(lhs, rhs int64, loc Location) (Value, error)
}

var binaryOps = map[NodeKind]binaryOp{
	NodeAdd: {"+", func(a, b int64, _ Location) (Value, error) {
		return IntValue(a + b), nil
	}},
	NodeSub: {"-", func(a, b int64, _ Location) (Value, error) {
		return IntValue(a - b), nil
	}},
	NodeMultiply: {"*", func(a, b int64, _ Location) (Value, error) {
		return IntValue(a * b), nil
	}},
	NodeDivide: {"/", func(a, b int64, loc Location) (Value, error) {
		if b == 0 {
			return Value{}, evaluationErrorf(loc, "Division by zero.")
		}

		return IntValue(a / b), nil
	}},
	NodeLess: {"<", func(a, b int64, _ Location) (Value, error) {
		return boolValue(a < b), nil
	}},
	NodeLessEqual: {"<=", func(a, b int64, _ Location) (Value, error) {
		return boolValue(a <= b), nil
	}},
	NodeGreater: {">", func(a, b int64, _ Location) (Value, error) {
		return boolValue(a > b), nil
	}},
	NodeGreaterEqual: {">=", func(a, b int64, _ Location) (Value, error) {
		return boolValue(a >= b), nil
	}},
	NodeEqual: {"==", func(a, b int64, _ Location) (Value, error) {
		return boolValue(a == b), nil
	}},
	NodeNotEqual: {"!=", func(a, b int64, _ Location) (Value, error) {
		return boolValue(a != b), nil
	}},
}

func (i *Interpreter) evaluate(node *Node, env *Environment) (Value, error) {
	if node == nil {
		return Value{}, runtimeErrorf("Null node encountered during evaluation.")
	}

	if op, ok := binaryOps[node.Kind]; ok {
		return i.binary(node, op, env)
	}

	switch node.Kind {
	case NodeIntLiteral:
		return IntValue(parseInt(node.Str)), nil
	case NodeVarRef:
		v, ok := env.Lookup(node.Str)
		if !ok {
			return Value{}, runtimeErrorf("Undefined variable '%s' during execution.", node.Str)
		}

		return v, nil
	case NodeVarDef:
		name := node.Kid(0).Str
		if !env.Define(name, IntValue(0)) {
			return Value{}, evaluationErrorf(node.Loc, "Variable '%s' is already defined in this scope.", name)
		}

		return IntValue(0), nil
	case NodeAssign:
		return i.assign(node, env)
	case NodeLogicalAnd, NodeLogicalOr:
		return i.logical(node, env)
	case NodeStatement:
		return i.evaluate(node.Kid(0), env)
	case NodeUnit:
		return i.sequence(node, env)
	case NodeStatementList:
		return i.block(node, env)
	case NodeIf:
		return i.ifStmt(node, env)
	case NodeWhile:
		return i.whileStmt(node, env)
	case NodeFunction:
		return i.function(node, env)
	case NodeFnCall:
		return i.call(node, env)
	}

	return Value{}, runtimeErrorf("Unknown AST node type %s during evaluation.", node.Kind)
}

// parseInt converts decimal digits, wrapping on overflow.
func parseInt(digits string) int64 {
	var n int64
	for _, d := range digits {
		n = n*10 + int64(d-'0')
	}

	return n
}

func (i *Interpreter) integer(node *Node, env *Environment, what string) (int64, error) {
	v, err := i.evaluate(node, env)
	if err != nil {
		return 0, err
	}

	if !v.IsInt() {
		return 0, evaluationErrorf(node.Loc, "%s must be an integer, got %s.", what, v.Kind)
	}

	return v.Int, nil
}

func (i *Interpreter) binary(node *Node, op binaryOp, env *Environment) (Value, error) {
	lhs, err := i.integer(node.Kid(0), env, "Left operand of '"+op.symbol+"'")
	if err != nil {
		return Value{}, err
	}

	rhs, err := i.integer(node.Kid(1), env, "Right operand of '"+op.symbol+"'")
	if err != nil {
		return Value{}, err
	}

	return op.apply(lhs, rhs, node.Loc)
}

// logical short-circuits: && skips its right side when the left is 0, ||
// when the left is nonzero.
func (i *Interpreter) logical(node *Node, env *Environment) (Value, error) {
	symbol := "&&"
	if node.Kind == NodeLogicalOr {
		symbol = "||"
	}

	lhs, err := i.integer(node.Kid(0), env, "Left operand of '"+symbol+"'")
	if err != nil {
		return Value{}, err
	}

	if node.Kind == NodeLogicalAnd && lhs == 0 {
		return IntValue(0), nil
	}

	if node.Kind == NodeLogicalOr && lhs != 0 {
		return IntValue(1), nil
	}

	rhs, err := i.integer(node.Kid(1), env, "Right operand of '"+symbol+"'")
	if err != nil {
		return Value{}, err
	}

	return boolValue(rhs != 0), nil
}

func (i *Interpreter) assign(node *Node, env *Environment) (Value, error) {
	target := node.Kid(0)

	v, err := i.evaluate(node.Kid(1), env)
	if err != nil {
		return Value{}, err
	}

	if !env.Assign(target.Str, v) {
		return Value{}, semanticErrorf(target.Loc, "Assignment to undefined variable '%s'.", target.Str)
	}

	return v, nil
}

func (i *Interpreter) sequence(node *Node, env *Environment) (Value, error) {
	last := IntValue(0)
	for _, kid := range node.Kids {
		v, err := i.evaluate(kid, env)
		if err != nil {
			return Value{}, err
		}

		last = v
	}

	return last, nil
}

func (i *Interpreter) block(node *Node, env *Environment) (Value, error) {
	scope := NewEnvironment(env)

	i.logger.Debug("push scope", slog.Int("depth", scope.Depth()))
	defer i.logger.Debug("pop scope", slog.Int("depth", scope.Depth()))

	return i.sequence(node, scope)
}

func (i *Interpreter) ifStmt(node *Node, env *Environment) (Value, error) {
	cond, err := i.integer(node.Kid(0), env, "Condition of 'if'")
	if err != nil {
		return Value{}, err
	}

	var branch *Node
	if cond != 0 {
		branch = node.Kid(1)
	} else {
		branch = node.Kid(2)
	}

	if branch != nil {
		if _, err := i.evaluate(branch, env); err != nil {
			return Value{}, err
		}
	}

	return IntValue(0), nil
}

func (i *Interpreter) whileStmt(node *Node, env *Environment) (Value, error) {
	for {
		cond, err := i.integer(node.Kid(0), env, "Condition of 'while'")
		if err != nil {
			return Value{}, err
		}

		if cond == 0 {
			return IntValue(0), nil
		}

		// Each iteration gets a fresh scope from the body list
		if _, err := i.evaluate(node.Kid(1), env); err != nil {
			return Value{}, err
		}
	}
}

func (i *Interpreter) function(node *Node, env *Environment) (Value, error) {
	fn := &Function{
		Name: node.Kid(0).Str,
		Body: node.functionBody(),
		Env:  env,
	}

	if list := node.functionParams(); list != nil {
		for _, param := range list.Kids {
			fn.Params = append(fn.Params, param.Str)
		}
	}

	v := FunctionValue(fn)
	if !env.Define(fn.Name, v) {
		return Value{}, evaluationErrorf(node.Loc, "Function '%s' is already defined in this scope.", fn.Name)
	}

	return v, nil
}

func (i *Interpreter) call(node *Node, env *Environment) (Value, error) {
	name := node.Kid(0).Str

	callee, ok := env.Lookup(name)
	if !ok {
		return Value{}, runtimeErrorf("Undefined variable '%s' during execution.", name)
	}

	var argNodes []*Node
	if list := node.Kid(1); list != nil {
		argNodes = list.Kids
	}

	switch callee.Kind {
	case ValueIntrinsic:
		args, err := i.arguments(argNodes, env)
		if err != nil {
			return Value{}, err
		}

		return callee.Intrinsic.Fn(args, node.Loc, i)
	case ValueFunction:
		return i.callFunction(node, callee.Fn, argNodes, env)
	}

	return Value{}, evaluationErrorf(node.Loc, "'%s' is not a function.", name)
}

func (i *Interpreter) arguments(nodes []*Node, env *Environment) ([]Value, error) {
	args := make([]Value, 0, len(nodes))
	for _, n := range nodes {
		v, err := i.evaluate(n, env)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	return args, nil
}

// callFunction runs fn in a scope whose parent is the scope fn was defined
// in, not the caller's.
func (i *Interpreter) callFunction(node *Node, fn *Function, argNodes []*Node, env *Environment) (Value, error) {
	if len(argNodes) != len(fn.Params) {
		return Value{}, evaluationErrorf(node.Loc, "Function '%s' expects %d arguments, got %d.", fn.Name, len(fn.Params), len(argNodes))
	}

	if i.maxDepth > 0 && i.depth >= i.maxDepth {
		return Value{}, evaluationErrorf(node.Loc, "Maximum call depth exceeded.")
	}

	args, err := i.arguments(argNodes, env)
	if err != nil {
		return Value{}, err
	}

	frame := NewEnvironment(fn.Env)
	for idx, param := range fn.Params {
		if !frame.Define(param, args[idx]) {
			return Value{}, evaluationErrorf(node.Loc, "Duplicate parameter '%s' in function '%s'.", param, fn.Name)
		}
	}

	i.logger.Debug("function call",
		slog.String("function", fn.Name),
		slog.Int("argument-count", len(args)),
		slog.Int("call-depth", i.depth+1))

	i.depth++
	defer func() { i.depth-- }()

	return i.evaluate(fn.Body, frame)
}
