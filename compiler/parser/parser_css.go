package parser

import (
	"strings"

	"github.com/cascade-lang/cascade/compiler/lexer"
)

// Selector grammar

// parseSelector parses a single complex selector: simple selectors and
// combinators up to a comma, brace or anything else it does not recognize
func (p *Parser) parseSelector() *Node {
	pos := p.mark()
	node := p.create(NodeSelector)
	hasContent := false
	for {
		if comb := p.parseCSSCombinator(); comb != nil {
			node.AddChild(comb)
			continue
		}
		if ss := p.parseSimpleSelector(); ss != nil {
			node.AddChild(ss)
			hasContent = true
			continue
		}
		break
	}
	if !hasContent {
		p.restore(pos)
		return nil
	}
	return p.finish(node)
}

func (p *Parser) parseCSSCombinator() *Node {
	if !p.peekDelim(">") && !p.peekDelim("+") && !p.peekDelim("~") {
		return nil
	}
	node := p.create(NodeOperator)
	p.consume()
	return p.finish(node)
}

// parseSimpleSelector parses a compound selector: an optional element name,
// "&" or placeholder, followed by adjacent class/id/attribute/pseudo and
// interpolation fragments
func (p *Parser) parseSimpleSelector() *Node {
	node := p.create(NodeSimpleSelector)
	count := 0
	if node.AddChild(p.parseElementName()) ||
		node.AddChild(p.parseSelectorCombinator()) ||
		node.AddChild(p.parsePlaceholder()) {
		count++
	}
	for (count == 0 || !p.hasWhitespace()) &&
		(node.AddChild(p.parseHash()) || node.AddChild(p.parseClass()) ||
			node.AddChild(p.parseAttrib()) || node.AddChild(p.parsePseudo()) ||
			node.AddChild(p.parseInterpolation())) {
		count++
	}
	if count == 0 {
		return nil
	}
	return p.finish(node)
}

// parseElementName parses a type selector or "*". An identifier immediately
// followed by an opening parenthesis is not an element name; backing out
// here lets mixin and function productions claim it.
func (p *Parser) parseElementName() *Node {
	pos := p.mark()
	var node *Node
	if p.peekDelim("*") {
		node = p.create(NodeIdentifier)
		p.consume()
		p.finish(node)
	} else {
		node = p.parseIdent()
	}
	if node != nil && !p.hasWhitespace() && p.peekType(lexer.TOKEN_LPAREN) {
		p.restore(pos)
		return nil
	}
	return node
}

func (p *Parser) parseHash() *Node {
	if !p.peekType(lexer.TOKEN_HASH) {
		return nil
	}
	node := p.create(NodeIdentifierSelector)
	p.consume()
	return p.finish(node)
}

func (p *Parser) parseClass() *Node {
	if !p.peekDelim(".") {
		return nil
	}
	node := p.create(NodeClassSelector)
	p.consume()
	if p.hasWhitespace() || !node.AddChild(p.parseIdent()) {
		return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
	}
	return p.finish(node)
}

func (p *Parser) parseAttrib() *Node {
	if !p.peekType(lexer.TOKEN_LBRACKET) {
		return nil
	}
	node := p.create(NodeAttributeSelector)
	p.consume()
	node.AddChild(p.parseIdent())
	if p.acceptDelim("~") || p.acceptDelim("|") || p.acceptDelim("^") ||
		p.acceptDelim("$") || p.acceptDelim("*") {
		p.acceptDelim("=")
		if !node.AddChild(p.parseStringLiteral()) && !node.AddChild(p.parseIdent()) {
			return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
		}
	} else if p.acceptDelim("=") {
		if !node.AddChild(p.parseStringLiteral()) && !node.AddChild(p.parseIdent()) {
			return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
		}
	}
	p.acceptIdent("i")
	p.acceptIdent("s")
	if !p.accept(lexer.TOKEN_RBRACKET) {
		return p.finishWithError(node, ErrRightBracketExpected, nil, nil)
	}
	return p.finish(node)
}

// parsePseudo parses ":name", "::name" and functional forms. The argument
// may be a selector list (":not(.a, .b)") or an expression (":nth-child(2n+1)").
func (p *Parser) parsePseudo() *Node {
	if !p.peekType(lexer.TOKEN_COLON) {
		return nil
	}
	pos := p.mark()
	node := p.create(NodePseudoSelector)
	p.consume()
	if p.hasWhitespace() {
		p.restore(pos)
		return nil
	}
	p.accept(lexer.TOKEN_COLON)
	if !node.AddChild(p.parseIdent()) {
		return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
	}
	if !p.hasWhitespace() && p.accept(lexer.TOKEN_LPAREN) {
		argPos := p.mark()
		var selectors []*Node
		if sel := p.parseSelector(); sel != nil {
			selectors = append(selectors, sel)
			for p.accept(lexer.TOKEN_COMMA) {
				sel = p.parseSelector()
				if sel == nil {
					break
				}
				selectors = append(selectors, sel)
			}
		}
		if len(selectors) > 0 && p.peekType(lexer.TOKEN_RPAREN) {
			for _, sel := range selectors {
				node.AddChild(sel)
			}
		} else {
			p.restore(argPos)
			node.AddChild(p.parseBinaryExpr())
		}
		if !p.accept(lexer.TOKEN_RPAREN) {
			return p.finishWithError(node, ErrRightParenthesisExpected, nil, nil)
		}
	}
	return p.finish(node)
}

// At-rules

// parseStylesheetAtStatement dispatches the at-rules that only appear at
// the top level plus the generic fallback
func (p *Parser) parseStylesheetAtStatement() *Node {
	return p.tryInOrder(
		p.parseImport,
		func() *Node { return p.parseMedia(false) },
		p.parsePage,
		p.parseFontFace,
		p.parseKeyframe,
		func() *Node { return p.parseSupports(false) },
		func() *Node { return p.parseLayer(false) },
		p.parsePropertyAtRule,
		p.parseCharset,
		p.parseUnknownAtRule,
	)
}

func (p *Parser) bodyStatement(isNested bool) func() *Node {
	if isNested {
		return p.parseRuleSetDeclaration
	}
	return p.parseStylesheetStatement
}

// parseMedia parses "@media querylist { … }". Within a rule body the block
// holds nested declarations, at the top level full statements.
func (p *Parser) parseMedia(isNested bool) *Node {
	if !p.peekKeyword("@media") {
		return nil
	}
	node := p.create(NodeMedia)
	p.consume()
	if !node.AddChild(p.parseMediaQueryList()) {
		return p.finishWithError(node, ErrMediaQueryExpected, nil, nil)
	}
	return p.parseBody(node, p.bodyStatement(isNested))
}

func (p *Parser) parseMediaQueryList() *Node {
	node := p.create(NodeMediaQueryList)
	if !node.AddChild(p.parseMediaQuery()) {
		return p.finishWithError(node, ErrMediaQueryExpected, nil, nil)
	}
	for p.accept(lexer.TOKEN_COMMA) {
		if !node.AddChild(p.parseMediaQuery()) {
			return p.finishWithError(node, ErrMediaQueryExpected, nil, nil)
		}
	}
	return p.finish(node)
}

// parseMediaQuery parses "[only|not] type [and condition]" or a bare
// condition. Identifiers may carry interpolation.
func (p *Parser) parseMediaQuery() *Node {
	node := p.create(NodeMediaQuery)
	pos := p.mark()
	if !p.peekType(lexer.TOKEN_LPAREN) {
		p.acceptIdent("only")
		p.acceptIdent("not")
		if node.AddChild(p.parseIdent()) || node.AddChild(p.parseVariable()) {
			if p.acceptIdent("and") {
				if !node.AddChild(p.parseMediaCondition()) {
					return p.finishWithError(node, ErrMediaQueryExpected, nil, nil)
				}
			}
			return p.finish(node)
		}
		p.restore(pos)
	}
	if !node.AddChild(p.parseMediaCondition()) {
		return nil
	}
	return p.finish(node)
}

// parseMediaCondition parses "[not] ( feature-or-condition ) [and|or …]…"
func (p *Parser) parseMediaCondition() *Node {
	pos := p.mark()
	node := p.create(NodeMediaCondition)
	p.acceptIdent("not")
	hasContent := false
	for {
		if !p.accept(lexer.TOKEN_LPAREN) {
			break
		}
		hasContent = true
		if !node.AddChild(p.parseMediaFeature()) && !node.AddChild(p.parseMediaCondition()) {
			p.markError(node, ErrConditionExpected, nil,
				[]lexer.TokenType{lexer.TOKEN_RPAREN})
		}
		if !p.accept(lexer.TOKEN_RPAREN) {
			return p.finishWithError(node, ErrRightParenthesisExpected, nil, nil)
		}
		if !p.acceptIdent("and") && !p.acceptIdent("or") {
			break
		}
	}
	if !hasContent {
		p.restore(pos)
		return nil
	}
	return p.finish(node)
}

// parseMediaFeature parses the inside of a feature parenthesis: a boolean
// feature name, "name: value", or the range forms with </<=/>/>= chains
func (p *Parser) parseMediaFeature() *Node {
	node := p.create(NodeMediaFeature)
	rangeOperator := func() bool {
		return p.accept(lexer.TOKEN_LESS_EQUAL) || p.accept(lexer.TOKEN_GREATER_EQUAL) ||
			p.acceptDelim("<") || p.acceptDelim(">")
	}
	if !node.AddChild(p.parseMediaFeatureValue()) {
		return nil
	}
	if p.accept(lexer.TOKEN_COLON) {
		if !node.AddChild(p.parseMediaFeatureValue()) {
			return p.finishWithError(node, ErrTermExpected, nil,
				[]lexer.TokenType{lexer.TOKEN_RPAREN})
		}
	} else if rangeOperator() {
		if !node.AddChild(p.parseMediaFeatureValue()) {
			return p.finishWithError(node, ErrTermExpected, nil,
				[]lexer.TokenType{lexer.TOKEN_RPAREN})
		}
		if rangeOperator() {
			if !node.AddChild(p.parseMediaFeatureValue()) {
				return p.finishWithError(node, ErrTermExpected, nil,
					[]lexer.TokenType{lexer.TOKEN_RPAREN})
			}
		}
	}
	return p.finish(node)
}

func (p *Parser) parseMediaFeatureValue() *Node {
	return p.tryInOrder(
		p.parseNumeric,
		p.parseModuleMember,
		p.parseFunction,
		p.parseIdent,
		p.parseVariable,
	)
}

// parseKeyframe matches "@keyframes" and vendor-prefixed variants by
// suffix, so "@-webkit-keyframes" lands here too
func (p *Parser) parseKeyframe() *Node {
	tok := p.peek()
	if tok.Type != lexer.TOKEN_AT_KEYWORD ||
		!strings.HasSuffix(strings.ToLower(tok.Lexeme), "keyframes") {
		return nil
	}
	node := p.create(NodeKeyframe)
	p.consume()
	if !node.SetIdentifier(p.parseIdent()) && !node.SetIdentifier(p.parseStringLiteral()) {
		return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
	}
	return p.parseBody(node, p.parseKeyframeStatement)
}

func (p *Parser) parseKeyframeStatement() *Node {
	if p.peekType(lexer.TOKEN_AT_KEYWORD) {
		return p.tryInOrder(
			p.parseWarnAndDebug,
			func() *Node { return p.parseControlStatement(p.parseKeyframeStatement) },
			p.parseMixinReference,
			p.parseMixinContent,
			p.parseFunctionDeclaration,
			p.parseUnknownAtRule,
		)
	}
	return p.tryInOrder(
		p.parseKeyframeSelector,
		p.parseVariableDeclaration,
	)
}

// parseKeyframeSelector parses "from", "to" or percentage offsets followed
// by a declaration body
func (p *Parser) parseKeyframeSelector() *Node {
	node := p.create(NodeKeyframeSelector)
	if !node.AddChild(p.parseIdent()) && !p.accept(lexer.TOKEN_PERCENTAGE) {
		return nil
	}
	for p.accept(lexer.TOKEN_COMMA) {
		if !node.AddChild(p.parseIdent()) && !p.accept(lexer.TOKEN_PERCENTAGE) {
			return p.finishWithError(node, ErrSelectorExpected, nil, nil)
		}
	}
	return p.parseBody(node, p.parseRuleSetDeclaration)
}

func (p *Parser) parseFontFace() *Node {
	if !p.peekKeyword("@font-face") {
		return nil
	}
	node := p.create(NodeFontFace)
	p.consume()
	return p.parseBody(node, p.parseRuleSetDeclaration)
}

// parseSupports parses "@supports condition { … }"
func (p *Parser) parseSupports(isNested bool) *Node {
	if !p.peekKeyword("@supports") {
		return nil
	}
	node := p.create(NodeSupports)
	p.consume()
	if !node.AddChild(p.parseSupportsCondition()) {
		p.markError(node, ErrConditionExpected, nil,
			[]lexer.TokenType{lexer.TOKEN_LBRACE})
	}
	return p.parseBody(node, p.bodyStatement(isNested))
}

func (p *Parser) parseSupportsCondition() *Node {
	if !p.peekIdent("not") && !p.peekType(lexer.TOKEN_LPAREN) {
		return nil
	}
	node := p.create(NodeSupportsCondition)
	if p.acceptIdent("not") {
		if !node.AddChild(p.parseSupportsConditionInParens()) {
			return p.finishWithError(node, ErrConditionExpected, nil, nil)
		}
	} else {
		if !node.AddChild(p.parseSupportsConditionInParens()) {
			return p.finishWithError(node, ErrConditionExpected, nil, nil)
		}
		for p.acceptIdent("and") || p.acceptIdent("or") {
			if !node.AddChild(p.parseSupportsConditionInParens()) {
				return p.finishWithError(node, ErrConditionExpected, nil, nil)
			}
		}
	}
	return p.finish(node)
}

// parseSupportsConditionInParens parses "( declaration )" or a nested
// condition. Unrecognized content inside the parentheses is skipped up to
// the balancing close so one exotic query does not poison the body.
func (p *Parser) parseSupportsConditionInParens() *Node {
	if !p.peekType(lexer.TOKEN_LPAREN) {
		return nil
	}
	node := p.create(NodeSupportsCondition)
	p.consume()
	if p.peekType(lexer.TOKEN_LPAREN) || p.peekIdent("not") {
		node.AddChild(p.parseSupportsCondition())
	} else if !node.AddChild(p.parseDeclaration()) {
		depth := 1
		for depth > 0 && !p.atEnd() {
			switch p.peek().Type {
			case lexer.TOKEN_LPAREN:
				depth++
			case lexer.TOKEN_RPAREN:
				depth--
				if depth == 0 {
					continue
				}
			}
			p.consume()
		}
	}
	if !p.accept(lexer.TOKEN_RPAREN) {
		return p.finishWithError(node, ErrRightParenthesisExpected, nil, nil)
	}
	return p.finish(node)
}

// parsePage parses "@page [selector[, selector…]] { … }"
func (p *Parser) parsePage() *Node {
	if !p.peekKeyword("@page") {
		return nil
	}
	node := p.create(NodePage)
	p.consume()
	if node.AddChild(p.parsePageSelector()) {
		for p.accept(lexer.TOKEN_COMMA) {
			if !node.AddChild(p.parsePageSelector()) {
				return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
			}
		}
	}
	return p.parseBody(node, p.parseRuleSetDeclaration)
}

func (p *Parser) parsePageSelector() *Node {
	if !p.peekType(lexer.TOKEN_IDENT) && !p.peekType(lexer.TOKEN_COLON) {
		return nil
	}
	node := p.create(NodeSimpleSelector)
	node.AddChild(p.parseIdent())
	node.AddChild(p.parsePseudo())
	return p.finish(node)
}

// parseLayer parses both the block form "@layer name { … }" and the
// statement form "@layer a, b;"
func (p *Parser) parseLayer(isNested bool) *Node {
	if !p.peekKeyword("@layer") {
		return nil
	}
	node := p.create(NodeLayer)
	p.consume()
	hasNames := node.AddChild(p.parseLayerName())
	for hasNames && p.accept(lexer.TOKEN_COMMA) {
		if !node.AddChild(p.parseLayerName()) {
			return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
		}
	}
	if p.peekType(lexer.TOKEN_LBRACE) {
		return p.parseBody(node, p.bodyStatement(isNested))
	}
	if !hasNames {
		return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
	}
	if p.peekType(lexer.TOKEN_SEMICOLON) {
		node.SemicolonOffset = p.peek().Start
	}
	return p.finish(node)
}

// parseLayerName parses dot-separated layer names; the dots bind tighter
// than whitespace
func (p *Parser) parseLayerName() *Node {
	node := p.create(NodeIdentifier)
	if !node.AddChild(p.parseIdent()) {
		return nil
	}
	for !p.hasWhitespace() && p.acceptDelim(".") {
		if p.hasWhitespace() || !node.AddChild(p.parseIdent()) {
			return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
		}
	}
	return p.finish(node)
}

// parsePropertyAtRule parses "@property --name { … }"
func (p *Parser) parsePropertyAtRule() *Node {
	if !p.peekKeyword("@property") {
		return nil
	}
	node := p.create(NodePropertyAtRule)
	p.consume()
	if !node.SetIdentifier(p.parseIdent()) {
		return p.finishWithError(node, ErrIdentifierExpected, nil, nil)
	}
	return p.parseBody(node, p.parseDeclaration)
}

func (p *Parser) parseCharset() *Node {
	if !p.peekKeyword("@charset") {
		return nil
	}
	node := p.create(NodeGeneric)
	p.consume()
	if !node.AddChild(p.parseStringLiteral()) {
		return p.finishWithError(node, ErrStringLiteralExpected, nil, nil)
	}
	if !p.accept(lexer.TOKEN_SEMICOLON) {
		return p.finishWithError(node, ErrSemiColonExpected, nil, nil)
	}
	return p.finish(node)
}

// parseUnknownAtRule consumes an unrecognized at-rule generically: the
// prelude up to a semicolon or block, then the block with balanced braces.
// Content is preserved as an opaque node instead of being dropped.
func (p *Parser) parseUnknownAtRule() *Node {
	if !p.peekType(lexer.TOKEN_AT_KEYWORD) {
		return nil
	}
	node := p.create(NodeUnknownAtRule)
	name := p.create(NodeIdentifier)
	p.consume()
	node.SetIdentifier(p.finish(name))

	depth := 0
	for {
		switch p.peek().Type {
		case lexer.TOKEN_EOF:
			if depth > 0 {
				return p.finishWithError(node, ErrRightCurlyExpected, nil, nil)
			}
			return p.finish(node)
		case lexer.TOKEN_SEMICOLON:
			if depth == 0 {
				// statement form; the terminator stays for the caller
				return p.finish(node)
			}
			p.consume()
		case lexer.TOKEN_LBRACE:
			depth++
			p.consume()
		case lexer.TOKEN_RBRACE:
			if depth == 0 {
				// stray brace belongs to the enclosing block
				return p.finish(node)
			}
			depth--
			p.consume()
			if depth == 0 {
				return p.finish(node)
			}
		default:
			p.consume()
		}
	}
}
