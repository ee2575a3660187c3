package cinder

// Grammar (Unit is the start symbol):
//
//	Unit     -> TStmt { TStmt }
//	TStmt    -> Func | Stmt
//	Func     -> "function" IDENT "(" [ PList ] ")" "{" SList "}"
//	Stmt     -> "var" IDENT ";"
//	          | "if" "(" A ")" "{" SList "}" [ "else" "{" SList "}" ]
//	          | "while" "(" A ")" "{" SList "}"
//	          | "{" SList "}"
//	          | A ";"
//	SList    -> { TStmt }
//	PList    -> IDENT { "," IDENT }
//	A        -> IDENT "=" A | L
//	L        -> R [ ( "||" | "&&" ) R ]
//	R        -> E [ ( "<" | "<=" | ">" | ">=" | "==" | "!=" ) E ]
//	E        -> T { ( "+" | "-" ) T }
//	T        -> F { ( "*" | "/" ) F }
//	F        -> INT | IDENT [ "(" [ ArgList ] ")" ] | "(" L ")"
//	ArgList  -> L { "," L }

var logicalOps = map[TokenType]NodeKind{
	TokenDoublePipe:      NodeLogicalOr,
	TokenDoubleAmpersand: NodeLogicalAnd,
}

var relationalOps = map[TokenType]NodeKind{
	TokenLess:         NodeLess,
	TokenLessEqual:    NodeLessEqual,
	TokenGreater:      NodeGreater,
	TokenGreaterEqual: NodeGreaterEqual,
	TokenDoubleEqual:  NodeEqual,
	TokenNotEqual:     NodeNotEqual,
}

var additiveOps = map[TokenType]NodeKind{
	TokenPlus:  NodeAdd,
	TokenMinus: NodeSub,
}

var multiplicativeOps = map[TokenType]NodeKind{
	TokenTimes:  NodeMultiply,
	TokenDivide: NodeDivide,
}

type SyntacticAnalyzer interface {
	Parse() (*Node, error)
}

type Parser struct {
	tokenizer Tokenizer
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
	}
}

// Parse consumes the whole token stream and returns a UNIT node.
func (p *Parser) Parse() (*Node, error) {
	return p.unit()
}

func (p *Parser) peek() (*Token, error) {
	return p.tokenizer.Peek(1)
}

func (p *Parser) next() (Token, error) {
	return p.tokenizer.Next()
}

func (p *Parser) check(typ TokenType) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}

	return tok != nil && tok.Typ == typ, nil
}

func (p *Parser) expect(typ TokenType) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return Token{}, err
	}

	if tok.Typ != typ {
		return Token{}, unexpected(tok)
	}

	return tok, nil
}

// require peeks at the next token, failing if the input has ended.
func (p *Parser) require(what string) (Token, error) {
	tok, err := p.peek()
	if err != nil {
		return Token{}, err
	}

	if tok == nil {
		return Token{}, eofErrorf(p.tokenizer.Location(), "Unexpected end of input looking for %s", what)
	}

	return *tok, nil
}

func unexpected(tok Token) error {
	return syntaxErrorf(tok.Loc, "Unexpected token '%s'", tok.Value)
}

func (p *Parser) unit() (*Node, error) {
	start, err := p.require("statement")
	if err != nil {
		return nil, err
	}

	unit := NewNode(NodeUnit, start.Loc)
	for {
		stmt, err := p.topLevelStmt()
		if err != nil {
			return nil, err
		}

		unit.Append(stmt)

		if tok, err := p.peek(); err != nil {
			return nil, err
		} else if tok == nil {
			return unit, nil
		}
	}
}

func (p *Parser) topLevelStmt() (*Node, error) {
	tok, err := p.require("statement")
	if err != nil {
		return nil, err
	}

	if tok.Typ == TokenFunction {
		return p.funcDecl()
	}

	return p.statement()
}

func (p *Parser) statement() (*Node, error) {
	tok, err := p.require("statement")
	if err != nil {
		return nil, err
	}

	var inner *Node
	switch tok.Typ {
	case TokenVar:
		inner, err = p.varDecl()
	case TokenIf:
		inner, err = p.ifStmt()
	case TokenWhile:
		inner, err = p.whileStmt()
	case TokenOpenCurly:
		inner, err = p.blockStmt()
	default:
		inner, err = p.assignment()
		if err == nil {
			_, err = p.expect(TokenSemicolon)
		}
	}

	if err != nil {
		return nil, err
	}

	return NewNode(NodeStatement, tok.Loc, inner), nil
}

func (p *Parser) varDecl() (*Node, error) {
	kw, err := p.expect(TokenVar)
	if err != nil {
		return nil, err
	}

	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return NewNode(NodeVarDef, kw.Loc, newLeaf(NodeVarRef, name)), nil
}

// condition parses "(" A ")".
func (p *Parser) condition() (*Node, error) {
	if _, err := p.expect(TokenOpenParentheses); err != nil {
		return nil, err
	}

	cond, err := p.assignment()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return cond, nil
}

func (p *Parser) ifStmt() (*Node, error) {
	kw, err := p.expect(TokenIf)
	if err != nil {
		return nil, err
	}

	cond, err := p.condition()
	if err != nil {
		return nil, err
	}

	then, err := p.blockStmt()
	if err != nil {
		return nil, err
	}

	node := NewNode(NodeIf, kw.Loc, cond, then)

	hasElse, err := p.check(TokenElse)
	if err != nil {
		return nil, err
	}

	if hasElse {
		p.next() // Skip else

		otherwise, err := p.blockStmt()
		if err != nil {
			return nil, err
		}

		node.Append(otherwise)
	}

	return node, nil
}

func (p *Parser) whileStmt() (*Node, error) {
	kw, err := p.expect(TokenWhile)
	if err != nil {
		return nil, err
	}

	cond, err := p.condition()
	if err != nil {
		return nil, err
	}

	body, err := p.blockStmt()
	if err != nil {
		return nil, err
	}

	return NewNode(NodeWhile, kw.Loc, cond, body), nil
}

// blockStmt parses "{" SList "}" into a STATEMENT_LIST.
func (p *Parser) blockStmt() (*Node, error) {
	open, err := p.expect(TokenOpenCurly)
	if err != nil {
		return nil, err
	}

	list := NewNode(NodeStatementList, open.Loc)
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if tok == nil || tok.Typ == TokenCloseCurly {
			break
		}

		stmt, err := p.topLevelStmt()
		if err != nil {
			return nil, err
		}

		list.Append(stmt)
	}

	if _, err := p.expect(TokenCloseCurly); err != nil {
		return nil, err
	}

	return list, nil
}

func (p *Parser) funcDecl() (*Node, error) {
	kw, err := p.expect(TokenFunction)
	if err != nil {
		return nil, err
	}

	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	node := NewNode(NodeFunction, kw.Loc, newLeaf(NodeVarRef, name))

	if _, err := p.expect(TokenOpenParentheses); err != nil {
		return nil, err
	}

	hasParams, err := p.check(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	if hasParams {
		params, err := p.paramList()
		if err != nil {
			return nil, err
		}

		node.Append(params)
	}

	if _, err := p.expect(TokenCloseParentheses); err != nil {
		return nil, err
	}

	body, err := p.blockStmt()
	if err != nil {
		return nil, err
	}

	node.Append(body)

	return node, nil
}

func (p *Parser) paramList() (*Node, error) {
	first, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	params := NewNode(NodeParameterList, first.Loc, newLeaf(NodeVarRef, first))
	for {
		more, err := p.check(TokenComma)
		if err != nil {
			return nil, err
		}

		if !more {
			return params, nil
		}

		p.next() // Skip the comma

		name, err := p.expect(TokenIdentifier)
		if err != nil {
			return nil, err
		}

		params.Append(newLeaf(NodeVarRef, name))
	}
}

// assignment parses A. Two tokens of lookahead tell "x = ..." apart from an
// expression starting with an identifier.
func (p *Parser) assignment() (*Node, error) {
	tok, err := p.require("assignment or expression")
	if err != nil {
		return nil, err
	}

	if tok.Typ == TokenIdentifier {
		second, err := p.tokenizer.Peek(2)
		if err != nil {
			return nil, err
		}

		if second != nil && second.Typ == TokenEqual {
			name, _ := p.next()
			op, _ := p.next()

			rhs, err := p.assignment()
			if err != nil {
				return nil, err
			}

			return NewNode(NodeAssign, op.Loc, newLeaf(NodeVarRef, name), rhs), nil
		}
	}

	return p.logicalExpr()
}

// binaryOnce parses operand [op operand] for the non-associative levels.
func (p *Parser) binaryOnce(ops map[TokenType]NodeKind, operand func() (*Node, error)) (*Node, error) {
	lhs, err := operand()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok == nil {
		return lhs, nil
	}

	kind, ok := ops[tok.Typ]
	if !ok {
		return lhs, nil
	}

	op, _ := p.next()

	rhs, err := operand()
	if err != nil {
		return nil, err
	}

	return NewNode(kind, op.Loc, lhs, rhs), nil
}

// binaryChain parses operand { op operand }, nesting to the left.
func (p *Parser) binaryChain(ops map[TokenType]NodeKind, operand func() (*Node, error)) (*Node, error) {
	lhs, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if tok == nil {
			return lhs, nil
		}

		kind, ok := ops[tok.Typ]
		if !ok {
			return lhs, nil
		}

		// Chained operands (for example 1 - 3 + 1) nest to the left
		op, _ := p.next()

		rhs, err := operand()
		if err != nil {
			return nil, err
		}

		lhs = NewNode(kind, op.Loc, lhs, rhs)
	}
}

func (p *Parser) logicalExpr() (*Node, error) {
	return p.binaryOnce(logicalOps, p.relationalExpr)
}

func (p *Parser) relationalExpr() (*Node, error) {
	return p.binaryOnce(relationalOps, p.additiveExpr)
}

func (p *Parser) additiveExpr() (*Node, error) {
	return p.binaryChain(additiveOps, p.multiplicativeExpr)
}

func (p *Parser) multiplicativeExpr() (*Node, error) {
	return p.binaryChain(multiplicativeOps, p.primary)
}

func (p *Parser) primary() (*Node, error) {
	tok, err := p.require("primary expression")
	if err != nil {
		return nil, err
	}

	switch tok.Typ {
	case TokenInteger:
		p.next()
		return newLeaf(NodeIntLiteral, tok), nil
	case TokenIdentifier:
		return p.identifier()
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	}

	return nil, unexpected(tok)
}

func (p *Parser) parenthesisedExpression() (*Node, error) {
	if _, err := p.expect(TokenOpenParentheses); err != nil {
		return nil, err
	}

	exp, err := p.logicalExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return exp, nil
}

func (p *Parser) identifier() (*Node, error) {
	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	isCall, err := p.check(TokenOpenParentheses)
	if err != nil {
		return nil, err
	}

	if !isCall {
		return newLeaf(NodeVarRef, name), nil
	}

	return p.funcCall(name)
}

func (p *Parser) funcCall(name Token) (*Node, error) {
	p.next() // Skip (

	call := NewNode(NodeFnCall, name.Loc, newLeaf(NodeVarRef, name))

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok != nil && canStartExpression(tok.Typ) {
		args, err := p.argList()
		if err != nil {
			return nil, err
		}

		call.Append(args)
	}

	if _, err := p.expect(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return call, nil
}

func (p *Parser) argList() (*Node, error) {
	first, err := p.logicalExpr()
	if err != nil {
		return nil, err
	}

	args := NewNode(NodeArgList, first.Loc, first)
	for {
		more, err := p.check(TokenComma)
		if err != nil {
			return nil, err
		}

		if !more {
			return args, nil
		}

		p.next() // Skip the comma

		arg, err := p.logicalExpr()
		if err != nil {
			return nil, err
		}

		args.Append(arg)
	}
}

func canStartExpression(typ TokenType) bool {
	return typ == TokenIdentifier || typ == TokenInteger || typ == TokenOpenParentheses
}
