package parser

import (
	"github.com/cascade-lang/cascade/compiler/lexer"
)

// Parser transforms a token stream into an error-tolerant concrete syntax
// tree. It never panics and never throws: every production returns a node
// (possibly carrying diagnostics) or nil; nil always means "no match, cursor
// untouched". A top-level parse always yields a stylesheet node, however
// malformed the input.
type Parser struct {
	cursor
}

// New creates a new Parser from a token stream
func New(tokens []lexer.Token) *Parser {
	return &Parser{cursor: newCursor(tokens)}
}

// Parse parses the token stream and returns the stylesheet root node. The
// root is never nil; diagnostics hang off the nodes they belong to and can
// be gathered with CollectDiagnostics.
func (p *Parser) Parse() *Node {
	return p.parseStylesheet()
}

// create allocates an unfinished node anchored at the cursor's current offset
func (p *Parser) create(t NodeType) *Node {
	return &Node{
		Type:            t,
		Offset:          p.peek().Start,
		ColonOffset:     -1,
		SemicolonOffset: -1,
	}
}

// finish closes the node's range at the last consumed token
func (p *Parser) finish(n *Node) *Node {
	if end := p.prevEnd(); end > n.End() {
		n.Length = end - n.Offset
	}
	return n
}

// finishWithError attaches a diagnostic at the current token, optionally
// performs panic-mode recovery, and finishes the node. Recovery discards
// tokens until one in the resync set (which is consumed), one in the stop
// set (which is not), or end-of-input.
func (p *Parser) finishWithError(n *Node, kind ErrorKind, resync, stop []lexer.TokenType) *Node {
	p.markError(n, kind, resync, stop)
	return p.finish(n)
}

// markError attaches a diagnostic without finishing the node
func (p *Parser) markError(n *Node, kind ErrorKind, resync, stop []lexer.TokenType) {
	tok := p.peek()
	d := Diagnostic{
		Kind:    kind,
		Message: kind.Message(),
		Offset:  tok.Start,
		Length:  tok.End - tok.Start,
	}
	if resync != nil || stop != nil {
		skipStart := tok.Start
		if p.resyncTo(resync, stop) && p.prevEnd() > skipStart {
			d.SkipOffset = skipStart
			d.SkipLength = p.prevEnd() - skipStart
		}
	}
	n.Diagnostics = append(n.Diagnostics, d)
}

// resyncTo skips tokens until a synchronization point. Returns whether any
// token was discarded.
func (p *Parser) resyncTo(resync, stop []lexer.TokenType) bool {
	skipped := false
	for !p.atEnd() {
		t := p.peek().Type
		if inTokenSet(t, resync) {
			p.consume()
			return true
		}
		if inTokenSet(t, stop) {
			return skipped
		}
		p.consume()
		skipped = true
	}
	return skipped
}

func inTokenSet(t lexer.TokenType, set []lexer.TokenType) bool {
	for _, s := range set {
		if s == t {
			return true
		}
	}
	return false
}

// tryInOrder returns the first non-nil result of the given productions.
// Later alternatives are not attempted once one succeeds; each attempted
// production either fully backs out or fully commits.
func (p *Parser) tryInOrder(alternatives ...func() *Node) *Node {
	for _, alt := range alternatives {
		if n := alt(); n != nil {
			return n
		}
	}
	return nil
}

// parseBody parses "{ statements }" into node using the supplied statement
// production, with brace recovery on both ends
func (p *Parser) parseBody(node *Node, parseStatement func() *Node) *Node {
	if !p.accept(lexer.TOKEN_LBRACE) {
		return p.finishWithError(node, ErrLeftCurlyExpected,
			[]lexer.TokenType{lexer.TOKEN_RBRACE, lexer.TOKEN_SEMICOLON}, nil)
	}
	p.parseStatements(node, parseStatement)
	if !p.accept(lexer.TOKEN_RBRACE) {
		return p.finishWithError(node, ErrRightCurlyExpected,
			[]lexer.TokenType{lexer.TOKEN_RBRACE}, nil)
	}
	return p.finish(node)
}

// parseStatements runs the statement production until the closing brace or
// end-of-input, skipping past content no alternative matched so one bad
// statement cannot take the rest of the body with it
func (p *Parser) parseStatements(node *Node, parseStatement func() *Node) {
	for {
		for p.accept(lexer.TOKEN_SEMICOLON) {
		}
		if p.peekType(lexer.TOKEN_RBRACE) || p.atEnd() {
			return
		}
		stmt := parseStatement()
		if stmt == nil {
			bad := p.create(NodeGeneric)
			p.markError(bad, ErrStatementExpected,
				[]lexer.TokenType{lexer.TOKEN_SEMICOLON},
				[]lexer.TokenType{lexer.TOKEN_RBRACE})
			node.AddChild(p.finish(bad))
			continue
		}
		node.AddChild(stmt)
		if p.needsSemicolonAfter(stmt) && !p.peekType(lexer.TOKEN_RBRACE) && !p.atEnd() {
			if !p.accept(lexer.TOKEN_SEMICOLON) {
				p.markError(node, ErrSemiColonExpected,
					[]lexer.TokenType{lexer.TOKEN_SEMICOLON},
					[]lexer.TokenType{lexer.TOKEN_RBRACE})
			}
		}
	}
}

// needsSemicolonAfter reports whether a statement must be terminated before
// the next sibling can start. Block statements carry their own braces.
func (p *Parser) needsSemicolonAfter(n *Node) bool {
	switch n.Type {
	case NodeVariableDeclaration, NodeReturnStatement, NodeDebug,
		NodeExtendsReference, NodeImport:
		return true
	case NodeDeclaration:
		return n.FirstChildOfType(NodeNestedProperties) == nil
	case NodeMixinReference, NodeMixinContentReference:
		return n.Content == nil
	}
	return false
}
