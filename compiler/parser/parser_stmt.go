package parser

import (
	"github.com/cascade-lang/cascade/compiler/lexer"
)

// parseStylesheet is the entry production. It consumes the whole stream and
// always returns a stylesheet node, attaching error-carrying generic nodes
// for content no alternative matched.
func (p *Parser) parseStylesheet() *Node {
	node := p.create(NodeStylesheet)
	for {
		for p.accept(lexer.TOKEN_SEMICOLON) {
		}
		if p.atEnd() {
			break
		}
		stmt := p.parseStylesheetStatement()
		if stmt == nil {
			bad := p.create(NodeGeneric)
			if p.peekType(lexer.TOKEN_RBRACE) {
				// A stray closing brace is not a usable resync point at the
				// top level; eat it so the loop keeps making progress.
				p.markError(bad, ErrRulesetExpected, nil, nil)
				p.consume()
			} else {
				p.markError(bad, ErrRulesetExpected,
					[]lexer.TokenType{lexer.TOKEN_SEMICOLON, lexer.TOKEN_RBRACE}, nil)
			}
			node.AddChild(p.finish(bad))
			continue
		}
		node.AddChild(stmt)
		if p.needsSemicolonAfter(stmt) && !p.atEnd() && !p.accept(lexer.TOKEN_SEMICOLON) {
			p.markError(node, ErrSemiColonExpected,
				[]lexer.TokenType{lexer.TOKEN_SEMICOLON},
				[]lexer.TokenType{lexer.TOKEN_RBRACE})
		}
	}
	return p.finish(node)
}

// parseStylesheetStatement dispatches a top-level statement. Alternatives
// are tried in order; each either commits or backs out completely, so the
// next alternative always starts from an unconsumed cursor.
func (p *Parser) parseStylesheetStatement() *Node {
	if p.peekType(lexer.TOKEN_AT_KEYWORD) {
		return p.tryInOrder(
			p.parseWarnAndDebug,
			func() *Node { return p.parseControlStatement(nil) },
			p.parseMixinDeclaration,
			p.parseMixinContent,
			p.parseMixinReference,
			p.parseFunctionDeclaration,
			p.parseForward,
			p.parseUse,
			p.parseRuleset, // @at-root selectors
			p.parseStylesheetAtStatement,
		)
	}
	return p.tryInOrder(
		p.parseRuleset,
		p.parseVariableDeclaration,
	)
}

// parseRuleSetDeclaration dispatches a statement inside a rule body. The
// alternative list is wider than at the top level; a plain declaration comes
// last so invalid input still yields a declaration-shaped node carrying the
// error instead of dropping content.
func (p *Parser) parseRuleSetDeclaration() *Node {
	if p.peekType(lexer.TOKEN_AT_KEYWORD) {
		return p.tryInOrder(
			p.parseKeyframe,
			p.parseImport,
			func() *Node { return p.parseMedia(true) },
			p.parseFontFace,
			p.parseWarnAndDebug,
			func() *Node { return p.parseControlStatement(nil) },
			p.parseFunctionDeclaration,
			p.parseExtends,
			p.parseMixinReference,
			p.parseMixinContent,
			p.parseMixinDeclaration,
			p.parseRuleset,
			func() *Node { return p.parseSupports(true) },
			func() *Node { return p.parseLayer(true) },
			p.parsePropertyAtRule,
			p.parseUnknownAtRule,
		)
	}
	return p.tryInOrder(
		p.parseVariableDeclaration,
		p.tryParseRuleset,
		p.parseDeclaration,
	)
}

// parseRuleset parses selectors and a braced body of nested statements
func (p *Parser) parseRuleset() *Node {
	node := p.create(NodeRuleset)
	if !node.AddChild(p.parseSelector()) {
		return nil
	}
	for p.accept(lexer.TOKEN_COMMA) {
		if !node.AddChild(p.parseSelector()) {
			return p.finishWithError(node, ErrSelectorExpected,
				[]lexer.TokenType{lexer.TOKEN_RBRACE}, nil)
		}
	}
	return p.parseBody(node, p.parseRuleSetDeclaration)
}

// tryParseRuleset speculatively checks that a selector list is followed by
// an opening brace before committing to a ruleset. The lookahead leaves the
// cursor untouched on failure.
func (p *Parser) tryParseRuleset() *Node {
	pos := p.mark()
	if p.parseSelector() != nil {
		for p.accept(lexer.TOKEN_COMMA) {
			if p.parseSelector() == nil {
				break
			}
		}
		if p.peekType(lexer.TOKEN_LBRACE) {
			p.restore(pos)
			return p.parseRuleset()
		}
	}
	p.restore(pos)
	return nil
}

// parseVariableDeclaration parses "$name: value" with optional
// !default/!important/!global flags. The trailing semicolon is recorded for
// editor tooling but not required.
func (p *Parser) parseVariableDeclaration() *Node {
	if !p.peekType(lexer.TOKEN_VARIABLE) {
		return nil
	}
	node := p.create(NodeVariableDeclaration)
	node.SetIdentifier(p.parseVariable())
	if !p.accept(lexer.TOKEN_COLON) {
		return p.finishWithError(node, ErrColonExpected, nil, nil)
	}
	node.ColonOffset = p.previous().Start
	if !node.SetValue(p.parseExpr(false)) {
		return p.finishWithError(node, ErrVariableValueExpected, nil, nil)
	}
	for p.accept(lexer.TOKEN_BANG) {
		if !(p.acceptIdent("default") || p.acceptIdent("important") || p.acceptIdent("global")) {
			return p.finishWithError(node, ErrUnknownKeyword, nil, nil)
		}
	}
	if p.peekType(lexer.TOKEN_SEMICOLON) {
		node.SemicolonOffset = p.peek().Start
	}
	return p.finish(node)
}

// parseDeclaration parses "property: value", with SCSS extras: the property
// may contain interpolation, and the value may be followed by a nested
// property block ("font: 2px/3px { family: fantasy; }")
func (p *Parser) parseDeclaration() *Node {
	node := p.create(NodeDeclaration)
	if !node.SetProperty(p.parseProperty()) {
		return nil
	}
	if !p.accept(lexer.TOKEN_COLON) {
		return p.finishWithError(node, ErrColonExpected,
			[]lexer.TokenType{lexer.TOKEN_COLON},
			[]lexer.TokenType{lexer.TOKEN_SEMICOLON, lexer.TOKEN_RBRACE})
	}
	node.ColonOffset = p.previous().Start

	hasContent := false
	if node.SetValue(p.parseExpr(false)) {
		hasContent = true
		node.AddChild(p.parsePrio())
	}
	if p.peekType(lexer.TOKEN_LBRACE) {
		nested := p.create(NodeNestedProperties)
		node.AddChild(p.parseBody(nested, p.parseRuleSetDeclaration))
	} else if !hasContent {
		return p.finishWithError(node, ErrPropertyValueExpected, nil, nil)
	}
	if p.peekType(lexer.TOKEN_SEMICOLON) {
		node.SemicolonOffset = p.peek().Start
	}
	return p.finish(node)
}

// parseProperty parses a declaration property name: an identifier that may
// carry interpolation fragments, optionally prefixed by an IE star hack
func (p *Parser) parseProperty() *Node {
	pos := p.mark()
	node := p.create(NodeIdentifier)
	hack := p.acceptDelim("*") || p.acceptDelim("_")
	if hack && p.hasWhitespace() {
		p.restore(pos)
		return nil
	}
	if inner := p.parseIdent(); inner != nil {
		node.AddChild(inner)
		return p.finish(node)
	}
	p.restore(pos)
	return nil
}

// parseImport parses "@import" with one or more comma-separated URI or
// string targets and an optional trailing media query list. A missing
// target is an error without a recovery skip.
func (p *Parser) parseImport() *Node {
	if !p.peekKeyword("@import") {
		return nil
	}
	node := p.create(NodeImport)
	p.consume()
	if !node.AddChild(p.parseURILiteral()) && !node.AddChild(p.parseStringLiteral()) {
		return p.finishWithError(node, ErrURIOrStringExpected, nil, nil)
	}
	for p.accept(lexer.TOKEN_COMMA) {
		if !node.AddChild(p.parseURILiteral()) && !node.AddChild(p.parseStringLiteral()) {
			return p.finishWithError(node, ErrURIOrStringExpected, nil, nil)
		}
	}
	if !p.peekType(lexer.TOKEN_SEMICOLON) && !p.atEnd() {
		node.AddChild(p.parseMediaQueryList())
	}
	return p.finish(node)
}

// parseExtends parses "@extend selector[, selector…] [!optional]"
func (p *Parser) parseExtends() *Node {
	if !p.peekKeyword("@extend") {
		return nil
	}
	node := p.create(NodeExtendsReference)
	p.consume()
	if !node.AddChild(p.parseSimpleSelector()) {
		return p.finishWithError(node, ErrSelectorExpected, nil, nil)
	}
	for p.accept(lexer.TOKEN_COMMA) {
		node.AddChild(p.parseSimpleSelector())
	}
	if p.accept(lexer.TOKEN_BANG) {
		if !p.acceptIdent("optional") {
			return p.finishWithError(node, ErrUnknownKeyword, nil, nil)
		}
	}
	return p.finish(node)
}

// parseWarnAndDebug parses "@debug", "@warn" and "@error" statements; the
// expression is optional for all three
func (p *Parser) parseWarnAndDebug() *Node {
	if !p.peekKeyword("@debug") && !p.peekKeyword("@warn") && !p.peekKeyword("@error") {
		return nil
	}
	node := p.create(NodeDebug)
	p.consume()
	node.AddChild(p.parseExpr(false))
	return p.finish(node)
}

// parseReturnStatement parses "@return expr"; the expression is required
func (p *Parser) parseReturnStatement() *Node {
	if !p.peekKeyword("@return") {
		return nil
	}
	node := p.create(NodeReturnStatement)
	p.consume()
	if !node.AddChild(p.parseExpr(false)) {
		return p.finishWithError(node, ErrExpressionExpected, nil, nil)
	}
	return p.finish(node)
}
