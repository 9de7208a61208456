package parser

import (
	"github.com/cascade-lang/cascade/compiler/lexer"
)

// parseMixinDeclaration parses "@mixin name[(params)] { body }". A broken
// parameter list reports its error but never swallows the body; the cursor
// stops in front of the brace and the block is parsed normally.
func (p *Parser) parseMixinDeclaration() *Node {
	if !p.peekKeyword("@mixin") {
		return nil
	}
	node := p.create(NodeMixinDeclaration)
	p.consume()
	if !node.SetIdentifier(p.parseIdent()) {
		p.markError(node, ErrIdentifierExpected, nil, blockBoundary)
	}
	if p.accept(lexer.TOKEN_LPAREN) {
		p.parseParameterList(node)
		if !p.accept(lexer.TOKEN_RPAREN) {
			p.markError(node, ErrRightParenthesisExpected, nil, blockBoundary)
		}
	}
	return p.parseBody(node, p.parseRuleSetDeclaration)
}

// parseParameterList fills node with parameter declarations up to the
// closing parenthesis, which is left for the caller
func (p *Parser) parseParameterList(node *Node) {
	if p.peekType(lexer.TOKEN_RPAREN) || p.peekType(lexer.TOKEN_LBRACE) {
		return
	}
	for {
		if !node.AddChild(p.parseParameterDeclaration()) {
			p.markError(node, ErrVariableNameExpected, nil,
				[]lexer.TokenType{lexer.TOKEN_COMMA, lexer.TOKEN_RPAREN,
					lexer.TOKEN_LBRACE, lexer.TOKEN_RBRACE})
		}
		if !p.accept(lexer.TOKEN_COMMA) {
			break
		}
		if p.peekType(lexer.TOKEN_RPAREN) {
			break
		}
	}
}

// parseParameterDeclaration parses "$name", "$name...", or "$name: default"
func (p *Parser) parseParameterDeclaration() *Node {
	node := p.create(NodeFunctionParameter)
	if !node.SetIdentifier(p.parseVariable()) {
		return nil
	}
	p.accept(lexer.TOKEN_ELLIPSIS)
	if p.accept(lexer.TOKEN_COLON) {
		if !node.SetDefault(p.parseExpr(true)) {
			p.markError(node, ErrVariableValueExpected, nil,
				[]lexer.TokenType{lexer.TOKEN_COMMA, lexer.TOKEN_RPAREN})
		}
	}
	return p.finish(node)
}

// parseFunctionDeclaration parses "@function name(params) { body }". Unlike
// mixins the parameter parentheses are mandatory, and the body only admits
// the function statement set.
func (p *Parser) parseFunctionDeclaration() *Node {
	if !p.peekKeyword("@function") {
		return nil
	}
	node := p.create(NodeFunctionDeclaration)
	p.consume()
	if !node.SetIdentifier(p.parseIdent()) {
		p.markError(node, ErrIdentifierExpected, nil, blockBoundary)
	}
	if !p.accept(lexer.TOKEN_LPAREN) {
		p.markError(node, ErrLeftParenthesisExpected, nil, blockBoundary)
		return p.parseBody(node, p.parseFunctionBodyDeclaration)
	}
	p.parseParameterList(node)
	if !p.accept(lexer.TOKEN_RPAREN) {
		p.markError(node, ErrRightParenthesisExpected, nil, blockBoundary)
	}
	return p.parseBody(node, p.parseFunctionBodyDeclaration)
}

// parseMixinContent parses "@content" inside a mixin body, with optional
// arguments passed through to the content block
func (p *Parser) parseMixinContent() *Node {
	if !p.peekKeyword("@content") {
		return nil
	}
	node := p.create(NodeMixinContentReference)
	p.consume()
	if p.accept(lexer.TOKEN_LPAREN) {
		p.parseArgumentList(node)
		if !p.accept(lexer.TOKEN_RPAREN) {
			return p.finishWithError(node, ErrRightParenthesisExpected, nil, nil)
		}
	}
	return p.finish(node)
}

// parseArgumentList fills node with call arguments up to the closing
// parenthesis, which is left for the caller
func (p *Parser) parseArgumentList(node *Node) {
	if !node.AddChild(p.parseFunctionArgument()) {
		return
	}
	for p.accept(lexer.TOKEN_COMMA) {
		if p.peekType(lexer.TOKEN_RPAREN) {
			break
		}
		if !node.AddChild(p.parseFunctionArgument()) {
			p.markError(node, ErrExpressionExpected, nil, nil)
		}
	}
}

// parseMixinReference parses "@include name[(args)] [using (params)] [{…}]".
// A dot between two identifiers with no whitespace on either side makes the
// first a module qualifier.
func (p *Parser) parseMixinReference() *Node {
	if !p.peekKeyword("@include") {
		return nil
	}
	node := p.create(NodeMixinReference)
	p.consume()
	ident := p.parseIdent()
	if ident == nil {
		return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
	}
	if !p.hasWhitespace() && p.peekDelim(".") {
		module := &Node{Type: NodeModule, Offset: ident.Offset, Length: ident.Length,
			ColonOffset: -1, SemicolonOffset: -1}
		module.SetIdentifier(ident)
		node.AddChild(module)
		p.consume()
		if p.hasWhitespace() {
			return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
		}
		member := p.parseIdent()
		if member == nil {
			return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
		}
		node.SetIdentifier(member)
	} else {
		node.SetIdentifier(ident)
	}
	if p.accept(lexer.TOKEN_LPAREN) {
		p.parseArgumentList(node)
		if !p.accept(lexer.TOKEN_RPAREN) {
			p.markError(node, ErrRightParenthesisExpected, nil, blockBoundary)
		}
	}
	if p.peekIdent("using") || p.peekType(lexer.TOKEN_LBRACE) {
		node.SetContent(p.parseMixinContentDeclaration())
	}
	return p.finish(node)
}

// parseMixinContentDeclaration parses the trailing content block of an
// include, with optional "using ($params)" bindings
func (p *Parser) parseMixinContentDeclaration() *Node {
	node := p.create(NodeMixinContentDeclaration)
	if p.acceptIdent("using") {
		if !p.accept(lexer.TOKEN_LPAREN) {
			p.markError(node, ErrLeftParenthesisExpected, nil, blockBoundary)
			return p.parseBody(node, p.parseRuleSetDeclaration)
		}
		p.parseParameterList(node)
		if !p.accept(lexer.TOKEN_RPAREN) {
			p.markError(node, ErrRightParenthesisExpected, nil, blockBoundary)
		}
	}
	return p.parseBody(node, p.parseRuleSetDeclaration)
}
