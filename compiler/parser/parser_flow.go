package parser

import (
	"github.com/cascade-lang/cascade/compiler/lexer"
)

// blockBoundary is the stop set for header errors in block statements: the
// cursor halts in front of the brace so the body can still be parsed
var blockBoundary = []lexer.TokenType{lexer.TOKEN_LBRACE, lexer.TOKEN_RBRACE}

// parseControlStatement dispatches @if/@for/@each/@while. The statement
// parser for the body is inherited from the enclosing context; nil means a
// regular rule body.
func (p *Parser) parseControlStatement(parseStatement func() *Node) *Node {
	if parseStatement == nil {
		parseStatement = p.parseRuleSetDeclaration
	}
	if !p.peekType(lexer.TOKEN_AT_KEYWORD) {
		return nil
	}
	return p.tryInOrder(
		func() *Node { return p.parseIfStatement(parseStatement) },
		func() *Node { return p.parseForStatement(parseStatement) },
		func() *Node { return p.parseEachStatement(parseStatement) },
		func() *Node { return p.parseWhileStatement(parseStatement) },
	)
}

func (p *Parser) parseIfStatement(parseStatement func() *Node) *Node {
	if !p.peekKeyword("@if") {
		return nil
	}
	return p.parseIfClause(parseStatement)
}

// parseIfClause parses the condition and body of "@if" and also of the
// "if" that follows "@else", which is why the leading token is consumed
// without inspection
func (p *Parser) parseIfClause(parseStatement func() *Node) *Node {
	node := p.create(NodeIfStatement)
	p.consume()
	if !node.SetValue(p.parseExpr(false)) {
		p.markError(node, ErrExpressionExpected, nil, blockBoundary)
	}
	p.parseBody(node, parseStatement)
	if p.peekKeyword("@else") {
		p.consume()
		if p.peekIdent("if") {
			node.SetElse(p.parseIfClause(parseStatement))
		} else {
			elseNode := p.create(NodeElseStatement)
			p.parseBody(elseNode, parseStatement)
			node.SetElse(elseNode)
		}
	}
	return p.finish(node)
}

func (p *Parser) parseForStatement(parseStatement func() *Node) *Node {
	if !p.peekKeyword("@for") {
		return nil
	}
	node := p.create(NodeForStatement)
	p.consume()
	if !node.SetIdentifier(p.parseVariable()) {
		p.markError(node, ErrVariableNameExpected, nil, blockBoundary)
		return p.parseBody(node, parseStatement)
	}
	if !p.acceptIdent("from") {
		p.markError(node, ErrFromExpected, nil, blockBoundary)
		return p.parseBody(node, parseStatement)
	}
	if !node.AddChild(p.parseBinaryExpr()) {
		p.markError(node, ErrExpressionExpected, nil, blockBoundary)
		return p.parseBody(node, parseStatement)
	}
	if !p.acceptIdent("through") && !p.acceptIdent("to") {
		p.markError(node, ErrThroughOrToExpected, nil, blockBoundary)
		return p.parseBody(node, parseStatement)
	}
	if !node.AddChild(p.parseBinaryExpr()) {
		p.markError(node, ErrExpressionExpected, nil, blockBoundary)
	}
	return p.parseBody(node, parseStatement)
}

func (p *Parser) parseEachStatement(parseStatement func() *Node) *Node {
	if !p.peekKeyword("@each") {
		return nil
	}
	node := p.create(NodeEachStatement)
	p.consume()
	if !node.AddChild(p.parseVariable()) {
		p.markError(node, ErrVariableNameExpected, nil, blockBoundary)
		return p.parseBody(node, parseStatement)
	}
	for p.accept(lexer.TOKEN_COMMA) {
		if !node.AddChild(p.parseVariable()) {
			p.markError(node, ErrVariableNameExpected, nil, blockBoundary)
			return p.parseBody(node, parseStatement)
		}
	}
	if !p.acceptIdent("in") {
		p.markError(node, ErrInExpected, nil, blockBoundary)
		return p.parseBody(node, parseStatement)
	}
	if !node.SetValue(p.parseExpr(false)) {
		p.markError(node, ErrExpressionExpected, nil, blockBoundary)
	}
	return p.parseBody(node, parseStatement)
}

func (p *Parser) parseWhileStatement(parseStatement func() *Node) *Node {
	if !p.peekKeyword("@while") {
		return nil
	}
	node := p.create(NodeWhileStatement)
	p.consume()
	if !node.SetValue(p.parseExpr(false)) {
		p.markError(node, ErrExpressionExpected, nil, blockBoundary)
	}
	return p.parseBody(node, parseStatement)
}

// parseFunctionBodyDeclaration is the restricted statement set allowed
// inside "@function": variable declarations, @return, diagnostics and
// control flow recursing over the same set
func (p *Parser) parseFunctionBodyDeclaration() *Node {
	if p.peekType(lexer.TOKEN_AT_KEYWORD) {
		return p.tryInOrder(
			p.parseReturnStatement,
			p.parseWarnAndDebug,
			func() *Node { return p.parseControlStatement(p.parseFunctionBodyDeclaration) },
		)
	}
	return p.parseVariableDeclaration()
}
