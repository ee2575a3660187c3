package cinder

// SemanticAnalyser checks a program without running it.
type SemanticAnalyser interface {
	Analyze(unit *Node) error
}

// ContextAnalyzer resolves every variable reference against the lexical
// scopes the evaluator will create, and rejects duplicate definitions
// within a scope. It does not check call arity or callee kinds.
type ContextAnalyzer struct {
	known *Environment
}

// NewContextAnalyzer returns an analyzer whose outermost scope holds the
// names bound in known (typically an interpreter's global environment).
func NewContextAnalyzer(known *Environment) *ContextAnalyzer {
	return &ContextAnalyzer{
		known: known,
	}
}

// Every binding in an analysis scope holds this placeholder.
var analysisSentinel = IntValue(0)

func (c *ContextAnalyzer) Analyze(unit *Node) error {
	scope := NewEnvironment(nil)
	if c.known != nil {
		for _, name := range c.known.Names() {
			scope.Define(name, analysisSentinel)
		}
	}

	return c.analyze(unit, scope)
}

func (c *ContextAnalyzer) analyze(node *Node, scope *Environment) error {
	switch node.Kind {
	case NodeVarDef:
		name := node.Kid(0).Str
		if !scope.Define(name, analysisSentinel) {
			return evaluationErrorf(node.Loc, "Variable '%s' is already defined in this scope.", name)
		}

		return nil
	case NodeVarRef:
		if _, ok := scope.Lookup(node.Str); !ok {
			return semanticErrorf(node.Loc, "Variable '%s' referenced before definition.", node.Str)
		}

		return nil
	case NodeStatementList:
		return c.analyzeKids(node, NewEnvironment(scope))
	case NodeFunction:
		return c.function(node, scope)
	default:
		return c.analyzeKids(node, scope)
	}
}

func (c *ContextAnalyzer) analyzeKids(node *Node, scope *Environment) error {
	for _, kid := range node.Kids {
		if err := c.analyze(kid, scope); err != nil {
			return err
		}
	}

	return nil
}

// function binds the name before the body is analyzed so recursive calls
// resolve. Parameters live in their own scope between the defining scope
// and the body's scope, as they do at call time.
func (c *ContextAnalyzer) function(node *Node, scope *Environment) error {
	name := node.Kid(0).Str
	if !scope.Define(name, analysisSentinel) {
		return evaluationErrorf(node.Loc, "Function '%s' is already defined in this scope.", name)
	}

	params := NewEnvironment(scope)
	if list := node.functionParams(); list != nil {
		for _, param := range list.Kids {
			if !params.Define(param.Str, analysisSentinel) {
				return evaluationErrorf(param.Loc, "Duplicate parameter '%s' in function '%s'.", param.Str, name)
			}
		}
	}

	return c.analyze(node.functionBody(), params)
}
