package parser

import (
	"github.com/cascade-lang/cascade/compiler/lexer"
)

// parseVariable parses a "$name" token as a leaf node
func (p *Parser) parseVariable() *Node {
	if !p.peekType(lexer.TOKEN_VARIABLE) {
		return nil
	}
	node := p.create(NodeVariable)
	p.consume()
	return p.finish(node)
}

// parseInterpolation parses "#{ expr }". When no expression matches, the
// error is reported but the closing brace is still taken if present so the
// surrounding construct can continue.
func (p *Parser) parseInterpolation() *Node {
	if !p.peekType(lexer.TOKEN_INTERP_START) {
		return nil
	}
	node := p.create(NodeInterpolation)
	p.consume()
	if !node.AddChild(p.parseExpr(false)) && !node.AddChild(p.parseSelectorCombinator()) {
		p.markError(node, ErrExpressionExpected, nil, nil)
		if !p.accept(lexer.TOKEN_RBRACE) {
			return p.finishWithError(node, ErrRightCurlyExpected, nil, nil)
		}
		return p.finish(node)
	}
	if !p.accept(lexer.TOKEN_RBRACE) {
		return p.finishWithError(node, ErrRightCurlyExpected, nil, nil)
	}
	return p.finish(node)
}

// parseModuleMember parses "module.$var" or "module.fn(…)". The dot must
// have no whitespace on either side; when that fails this is not an error,
// the cursor backs out and the identifier is left for other productions.
func (p *Parser) parseModuleMember() *Node {
	pos := p.mark()
	node := p.create(NodeModule)
	if !node.SetIdentifier(p.parseIdent()) {
		return nil
	}
	if p.hasWhitespace() || !p.acceptDelim(".") || p.hasWhitespace() {
		p.restore(pos)
		return nil
	}
	if !node.AddChild(p.parseVariable()) && !node.AddChild(p.parseFunction()) {
		return p.finishWithError(node, ErrIdentifierOrVariableExpected, nil, nil)
	}
	return p.finish(node)
}

// parseIdent parses an identifier made of one or more adjacent fragments:
// plain ident tokens, interpolations, and (after the first fragment) bare
// number or hyphen continuations. A leading hyphen run is speculative; it is
// kept only when identifier content follows without whitespace, so "- 1"
// never gets swallowed into an identifier.
func (p *Parser) parseIdent() *Node {
	pos := p.mark()
	node := p.create(NodeIdentifier)

	hasMinus := false
	for p.peekDelim("-") {
		if hasMinus && p.hasWhitespace() {
			break
		}
		p.consume()
		hasMinus = true
	}
	if hasMinus && p.hasWhitespace() {
		p.restore(pos)
		return nil
	}

	hasContent := false
	for {
		if hasContent && p.hasWhitespace() {
			break
		}
		if p.accept(lexer.TOKEN_IDENT) {
			hasContent = true
		} else if itp := p.parseInterpolation(); itp != nil {
			node.AddChild(itp)
			hasContent = true
		} else if hasContent &&
			(p.accept(lexer.TOKEN_NUM) || p.accept(lexer.TOKEN_DIMENSION) || p.acceptDelim("-")) {
			// bare continuation fragments
		} else {
			break
		}
	}
	if !hasContent {
		p.restore(pos)
		return nil
	}
	return p.finish(node)
}

// parseSelectorCombinator parses the nesting selector "&" and greedily
// extends it with suffixes ("&-suffix-1") as long as no whitespace
// intervenes
func (p *Parser) parseSelectorCombinator() *Node {
	if !p.peekDelim("&") {
		return nil
	}
	node := p.create(NodeSelectorCombinator)
	p.consume()
	for !p.hasWhitespace() &&
		(p.acceptDelim("-") || p.accept(lexer.TOKEN_NUM) || p.accept(lexer.TOKEN_DIMENSION) ||
			node.AddChild(p.parseIdent()) || p.acceptDelim("&")) {
	}
	return p.finish(node)
}

// parsePlaceholder parses "%name" placeholder selectors and the
// "@at-root (with: …)" selector form
func (p *Parser) parsePlaceholder() *Node {
	if p.peekDelim("%") {
		node := p.create(NodeSelectorPlaceholder)
		p.consume()
		node.AddChild(p.parseIdent())
		return p.finish(node)
	}
	if p.peekKeyword("@at-root") {
		node := p.create(NodeSelectorPlaceholder)
		p.consume()
		if p.accept(lexer.TOKEN_LPAREN) {
			if !p.acceptIdent("with") && !p.acceptIdent("without") {
				return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
			}
			if !p.accept(lexer.TOKEN_COLON) {
				return p.finishWithError(node, ErrColonExpected, nil, nil)
			}
			if !node.AddChild(p.parseIdent()) {
				return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
			}
			if !p.accept(lexer.TOKEN_RPAREN) {
				return p.finishWithError(node, ErrRightParenthesisExpected, nil, nil)
			}
		}
		return p.finish(node)
	}
	return nil
}

// parseOperator parses an expression operator. The dialect's comparison and
// logical operators are layered in front of the base set.
func (p *Parser) parseOperator() *Node {
	t := p.peek().Type
	if t == lexer.TOKEN_EQUAL_EQUAL || t == lexer.TOKEN_BANG_EQUAL ||
		t == lexer.TOKEN_GREATER_EQUAL || t == lexer.TOKEN_LESS_EQUAL ||
		p.peekDelim(">") || p.peekDelim("<") ||
		p.peekIdent("and") || p.peekIdent("or") ||
		p.peekDelim("%") {
		node := p.create(NodeOperator)
		p.consume()
		return p.finish(node)
	}
	return p.parseCSSOperator()
}

// parseCSSOperator parses the base grammar's operator set
func (p *Parser) parseCSSOperator() *Node {
	if p.peekDelim("/") || p.peekDelim("*") || p.peekDelim("+") || p.peekDelim("-") {
		node := p.create(NodeOperator)
		p.consume()
		return p.finish(node)
	}
	return nil
}

// parseUnaryOperator parses "+", "-" and the dialect's "not"
func (p *Parser) parseUnaryOperator() *Node {
	if !p.peekDelim("+") && !p.peekDelim("-") && !p.peekIdent("not") {
		return nil
	}
	node := p.create(NodeOperator)
	p.consume()
	return p.finish(node)
}

// parseExpr parses one or more binary expressions separated by whitespace
// or commas (a value list). With stopOnComma the expression ends at the
// first comma, which argument and parameter grammars rely on.
func (p *Parser) parseExpr(stopOnComma bool) *Node {
	node := p.create(NodeExpression)
	if !node.AddChild(p.parseBinaryExpr()) {
		return nil
	}
	for {
		if p.peekType(lexer.TOKEN_COMMA) {
			if stopOnComma {
				break
			}
			p.consume()
		}
		if !node.AddChild(p.parseBinaryExpr()) {
			break
		}
	}
	return p.finish(node)
}

// parseBinaryExpr parses "term [operator term]…", left-folding chains
func (p *Parser) parseBinaryExpr() *Node {
	node := p.create(NodeBinaryExpression)
	if !node.SetLeft(p.parseTerm()) {
		return nil
	}
	if node.SetOperator(p.parseOperator()) {
		if !node.SetRight(p.parseTerm()) {
			return p.finishWithError(node, ErrTermExpected, nil, nil)
		}
	}
	p.finish(node)
	for {
		pos := p.mark()
		op := p.parseOperator()
		if op == nil {
			break
		}
		right := p.parseTerm()
		if right == nil {
			p.restore(pos)
			break
		}
		parent := &Node{Type: NodeBinaryExpression, Offset: node.Offset, ColonOffset: -1, SemicolonOffset: -1}
		parent.SetLeft(node)
		parent.SetOperator(op)
		parent.SetRight(right)
		node = p.finish(parent)
	}
	return node
}

// parseTerm parses an optional unary operator and a term expression
func (p *Parser) parseTerm() *Node {
	pos := p.mark()
	node := p.create(NodeTerm)
	node.SetOperator(p.parseUnaryOperator())
	if node.SetValue(p.parseTermExpression()) {
		return p.finish(node)
	}
	p.restore(pos)
	return nil
}

// parseTermExpression tries the dialect's term alternatives before the base
// grammar's literals
func (p *Parser) parseTermExpression() *Node {
	return p.tryInOrder(
		p.parseModuleMember,
		p.parseVariable,
		p.parseSelectorCombinator,
		p.parseURILiteral,
		p.parseFunction,
		p.parseParenthesizedExpr,
		p.parseIdent,
		p.parseStringLiteral,
		p.parseNumeric,
		p.parseHexColor,
	)
}

// parseParenthesizedExpr parses "( entries )" where each entry is a binary
// expression or a "key: value" pair, with optional comma separators. Used
// for both grouped expressions and SCSS lists/maps.
func (p *Parser) parseParenthesizedExpr() *Node {
	if !p.peekType(lexer.TOKEN_LPAREN) {
		return nil
	}
	node := p.create(NodeExpression)
	p.consume()
	for {
		entry := p.parseListEntry()
		if entry == nil {
			break
		}
		node.AddChild(entry)
		p.accept(lexer.TOKEN_COMMA)
	}
	if !p.accept(lexer.TOKEN_RPAREN) {
		return p.finishWithError(node, ErrRightParenthesisExpected, nil, nil)
	}
	return p.finish(node)
}

// parseListEntry parses a list element or map "key: value" entry
func (p *Parser) parseListEntry() *Node {
	node := p.create(NodeListEntry)
	first := p.parseBinaryExpr()
	if first == nil {
		return nil
	}
	if p.accept(lexer.TOKEN_COLON) {
		node.SetKey(first)
		if !node.SetValue(p.parseBinaryExpr()) {
			return p.finishWithError(node, ErrExpressionExpected, nil, nil)
		}
	} else {
		node.SetValue(first)
	}
	return p.finish(node)
}

// parseFunction parses "ident(args)". The parenthesis must follow the
// identifier without whitespace or the whole attempt backs out.
func (p *Parser) parseFunction() *Node {
	pos := p.mark()
	node := p.create(NodeFunction)
	if !node.SetIdentifier(p.parseIdent()) {
		return nil
	}
	if p.hasWhitespace() || !p.accept(lexer.TOKEN_LPAREN) {
		p.restore(pos)
		return nil
	}
	if node.AddChild(p.parseFunctionArgument()) {
		for p.accept(lexer.TOKEN_COMMA) {
			if p.peekType(lexer.TOKEN_RPAREN) {
				break
			}
			if !node.AddChild(p.parseFunctionArgument()) {
				p.markError(node, ErrExpressionExpected, nil, nil)
			}
		}
	}
	if !p.accept(lexer.TOKEN_RPAREN) {
		return p.finishWithError(node, ErrRightParenthesisExpected, nil, nil)
	}
	return p.finish(node)
}

// parseFunctionArgument parses "$name: expr", "$name..." (forwarding
// spread), or a bare expression optionally followed by !important or an
// ellipsis spread marker
func (p *Parser) parseFunctionArgument() *Node {
	node := p.create(NodeFunctionArgument)
	pos := p.mark()
	named := false
	if argVar := p.parseVariable(); argVar != nil {
		if p.accept(lexer.TOKEN_COLON) {
			node.SetIdentifier(argVar)
			named = true
		} else if p.accept(lexer.TOKEN_ELLIPSIS) {
			node.SetValue(argVar)
			return p.finish(node)
		} else {
			p.restore(pos)
		}
	}
	if node.SetValue(p.parseExpr(true)) {
		p.accept(lexer.TOKEN_ELLIPSIS)
		node.AddChild(p.parsePrio())
		return p.finish(node)
	}
	if prio := p.parsePrio(); prio != nil {
		node.SetValue(prio)
		return p.finish(node)
	}
	if named {
		// The name and colon are already committed; dropping them here
		// would lose consumed tokens without a trace
		return p.finishWithError(node, ErrExpressionExpected, nil, nil)
	}
	return nil
}

// parsePrio parses "!important"; speculative, so a lone "!" backs out
func (p *Parser) parsePrio() *Node {
	if !p.peekType(lexer.TOKEN_BANG) {
		return nil
	}
	pos := p.mark()
	node := p.create(NodeGeneric)
	p.consume()
	if p.acceptIdent("important") {
		return p.finish(node)
	}
	p.restore(pos)
	return nil
}

// Leaf literals

func (p *Parser) parseNumeric() *Node {
	t := p.peek().Type
	if t != lexer.TOKEN_NUM && t != lexer.TOKEN_PERCENTAGE && t != lexer.TOKEN_DIMENSION {
		return nil
	}
	node := p.create(NodeNumericValue)
	p.consume()
	return p.finish(node)
}

func (p *Parser) parseStringLiteral() *Node {
	if !p.peekType(lexer.TOKEN_STRING) && !p.peekType(lexer.TOKEN_BAD_STRING) {
		return nil
	}
	node := p.create(NodeStringLiteral)
	p.consume()
	return p.finish(node)
}

func (p *Parser) parseURILiteral() *Node {
	if !p.peekType(lexer.TOKEN_URI) && !p.peekType(lexer.TOKEN_BAD_URI) {
		return nil
	}
	node := p.create(NodeURILiteral)
	p.consume()
	return p.finish(node)
}

func (p *Parser) parseHexColor() *Node {
	if !p.peekType(lexer.TOKEN_HASH) {
		return nil
	}
	node := p.create(NodeHexColorValue)
	p.consume()
	return p.finish(node)
}
