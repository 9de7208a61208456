package parser

import (
	"github.com/cascade-lang/cascade/compiler/lexer"
)

// parseUse parses `@use "url" [as name|*] [with (config)];`. The statement
// owns its terminating semicolon; at end of input it may be omitted.
func (p *Parser) parseUse() *Node {
	if !p.peekKeyword("@use") {
		return nil
	}
	node := p.create(NodeUse)
	p.consume()
	if !node.AddChild(p.parseStringLiteral()) {
		return p.finishWithError(node, ErrStringLiteralExpected, nil, nil)
	}
	if !p.peekType(lexer.TOKEN_SEMICOLON) && !p.atEnd() {
		if !p.peekIdent("as") && !p.peekIdent("with") {
			return p.finishWithError(node, ErrUnknownKeyword, nil, nil)
		}
		if p.acceptIdent("as") {
			if !node.SetIdentifier(p.parseIdent()) && !p.acceptDelim("*") {
				return p.finishWithError(node, ErrIdentifierOrWildcardExpected, nil, nil)
			}
		}
		if p.acceptIdent("with") {
			if !p.accept(lexer.TOKEN_LPAREN) {
				return p.finishWithError(node, ErrLeftParenthesisExpected, nil, nil)
			}
			if !node.AddChild(p.parseModuleConfigDeclaration()) {
				return p.finishWithError(node, ErrVariableNameExpected, nil, nil)
			}
			for p.accept(lexer.TOKEN_COMMA) {
				if p.peekType(lexer.TOKEN_RPAREN) {
					break
				}
				if !node.AddChild(p.parseModuleConfigDeclaration()) {
					return p.finishWithError(node, ErrVariableNameExpected, nil, nil)
				}
			}
			if !p.accept(lexer.TOKEN_RPAREN) {
				return p.finishWithError(node, ErrRightParenthesisExpected, nil, nil)
			}
		}
	}
	if p.accept(lexer.TOKEN_SEMICOLON) {
		node.SemicolonOffset = p.previous().Start
	} else if !p.atEnd() {
		return p.finishWithError(node, ErrSemiColonExpected, nil, nil)
	}
	return p.finish(node)
}

// parseModuleConfigDeclaration parses "$name: value [!default]" inside a
// with(…) configuration list
func (p *Parser) parseModuleConfigDeclaration() *Node {
	node := p.create(NodeModuleConfiguration)
	if !node.SetIdentifier(p.parseVariable()) {
		return nil
	}
	if !p.accept(lexer.TOKEN_COLON) {
		return p.finishWithError(node, ErrColonExpected, nil,
			[]lexer.TokenType{lexer.TOKEN_COMMA, lexer.TOKEN_RPAREN})
	}
	if !node.SetValue(p.parseExpr(true)) {
		return p.finishWithError(node, ErrVariableValueExpected, nil,
			[]lexer.TokenType{lexer.TOKEN_COMMA, lexer.TOKEN_RPAREN})
	}
	if p.accept(lexer.TOKEN_BANG) {
		if p.hasWhitespace() || !p.acceptIdent("default") {
			return p.finishWithError(node, ErrUnknownKeyword, nil, nil)
		}
	}
	return p.finish(node)
}

// parseForward parses `@forward "url" [as prefix-*] [with (config) |
// hide/show members];`. The "as" prefix wildcard must sit directly against
// the identifier.
func (p *Parser) parseForward() *Node {
	if !p.peekKeyword("@forward") {
		return nil
	}
	node := p.create(NodeForward)
	p.consume()
	if !node.AddChild(p.parseStringLiteral()) {
		return p.finishWithError(node, ErrStringLiteralExpected, nil, nil)
	}
	if p.acceptIdent("as") {
		if !node.SetIdentifier(p.parseIdent()) {
			return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
		}
		if p.hasWhitespace() || !p.acceptDelim("*") {
			return p.finishWithError(node, ErrWildcardExpected, nil, nil)
		}
	}
	if p.acceptIdent("with") {
		if !p.accept(lexer.TOKEN_LPAREN) {
			return p.finishWithError(node, ErrLeftParenthesisExpected, nil, nil)
		}
		if !node.AddChild(p.parseModuleConfigDeclaration()) {
			return p.finishWithError(node, ErrVariableNameExpected, nil, nil)
		}
		for p.accept(lexer.TOKEN_COMMA) {
			if p.peekType(lexer.TOKEN_RPAREN) {
				break
			}
			if !node.AddChild(p.parseModuleConfigDeclaration()) {
				return p.finishWithError(node, ErrVariableNameExpected, nil, nil)
			}
		}
		if !p.accept(lexer.TOKEN_RPAREN) {
			return p.finishWithError(node, ErrRightParenthesisExpected, nil, nil)
		}
	} else if p.peekIdent("hide") || p.peekIdent("show") {
		if !node.AddChild(p.parseForwardVisibility()) {
			return p.finishWithError(node, ErrIdentifierOrVariableExpected, nil, nil)
		}
	}
	if p.accept(lexer.TOKEN_SEMICOLON) {
		node.SemicolonOffset = p.previous().Start
	} else if !p.atEnd() {
		return p.finishWithError(node, ErrSemiColonExpected, nil, nil)
	}
	return p.finish(node)
}

// parseForwardVisibility parses "hide"/"show" followed by member names.
// With no members the keyword stays consumed but no node is produced; the
// caller turns that into a diagnostic.
func (p *Parser) parseForwardVisibility() *Node {
	node := p.create(NodeForwardVisibility)
	if !node.SetIdentifier(p.parseIdent()) {
		return nil
	}
	hasMembers := false
	for node.AddChild(p.parseVariable()) || node.AddChild(p.parseIdent()) {
		hasMembers = true
		p.accept(lexer.TOKEN_COMMA)
	}
	if !hasMembers {
		return nil
	}
	return p.finish(node)
}
