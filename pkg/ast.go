package cinder

import "fmt"

type NodeKind int

const (
	NodeUnit NodeKind = iota
	NodeStatement
	NodeStatementList
	NodeVarDef
	NodeVarRef
	NodeIntLiteral
	NodeAssign
	NodeAdd
	NodeSub
	NodeMultiply
	NodeDivide
	NodeLogicalAnd
	NodeLogicalOr
	NodeLess
	NodeLessEqual
	NodeGreater
	NodeGreaterEqual
	NodeEqual
	NodeNotEqual
	NodeIf
	NodeWhile
	NodeFunction
	NodeParameterList
	NodeFnCall
	NodeArgList
)

var nodeNames = map[NodeKind]string{
	NodeUnit:          "UNIT",
	NodeStatement:     "STATEMENT",
	NodeStatementList: "STATEMENT_LIST",
	NodeVarDef:        "VARDEF",
	NodeVarRef:        "VARREF",
	NodeIntLiteral:    "INT_LITERAL",
	NodeAssign:        "ASSIGN",
	NodeAdd:           "ADD",
	NodeSub:           "SUB",
	NodeMultiply:      "MULTIPLY",
	NodeDivide:        "DIVIDE",
	NodeLogicalAnd:    "LOGICAL_AND",
	NodeLogicalOr:     "LOGICAL_OR",
	NodeLess:          "LESS",
	NodeLessEqual:     "LESS_EQUAL",
	NodeGreater:       "GREATER",
	NodeGreaterEqual:  "GREATER_EQUAL",
	NodeEqual:         "EQUAL",
	NodeNotEqual:      "NOT_EQUAL",
	NodeIf:            "IF",
	NodeWhile:         "WHILE",
	NodeFunction:      "FUNCTION",
	NodeParameterList: "PARAMETER_LIST",
	NodeFnCall:        "FNCALL",
	NodeArgList:       "ARGLIST",
}

func (k NodeKind) String() string {
	if name, ok := nodeNames[k]; ok {
		return name
	}

	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is a single AST node. Str holds the payload of identifiers and
// literals. A node owns its children; nodes are never shared.
type Node struct {
	Kind NodeKind
	Str  string
	Loc  Location
	Kids []*Node
}

func NewNode(kind NodeKind, loc Location, kids ...*Node) *Node {
	return &Node{
		Kind: kind,
		Loc:  loc,
		Kids: kids,
	}
}

func newLeaf(kind NodeKind, tok Token) *Node {
	return &Node{
		Kind: kind,
		Str:  tok.Value,
		Loc:  tok.Loc,
	}
}

func (n *Node) Append(kid *Node) {
	n.Kids = append(n.Kids, kid)
}

// Kid returns the i-th child, or nil when there is none.
func (n *Node) Kid(i int) *Node {
	if i < 0 || i >= len(n.Kids) {
		return nil
	}

	return n.Kids[i]
}

func (n *Node) String() string {
	if n.Str != "" {
		return fmt.Sprintf("%s[%s]", n.Kind, n.Str)
	}

	return n.Kind.String()
}

// Function nodes are laid out as name, optional parameter list, body.

func (n *Node) functionParams() *Node {
	if len(n.Kids) == 3 {
		return n.Kids[1]
	}

	return nil
}

func (n *Node) functionBody() *Node {
	return n.Kids[len(n.Kids)-1]
}
