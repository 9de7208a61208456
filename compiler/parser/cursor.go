package parser

import (
	"strings"

	"github.com/cascade-lang/cascade/compiler/lexer"
)

// cursor is a positioned read head over a token stream. End-of-input is a
// terminal token that stays peekable forever, so lookahead never runs off
// the stream. Marks are plain indices: restoring is O(1) and marks nest
// arbitrarily as long as they are released LIFO.
type cursor struct {
	tokens  []lexer.Token
	current int
}

func newCursor(tokens []lexer.Token) cursor {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.TOKEN_EOF {
		tokens = append(tokens, lexer.Token{Type: lexer.TOKEN_EOF})
	}
	return cursor{tokens: tokens}
}

// peek returns the current token without consuming it
func (c *cursor) peek() lexer.Token {
	return c.tokens[c.current]
}

// previous returns the last consumed token
func (c *cursor) previous() lexer.Token {
	if c.current == 0 {
		return c.tokens[0]
	}
	return c.tokens[c.current-1]
}

// prevEnd returns the end offset of the last consumed token, or 0 when
// nothing was consumed yet
func (c *cursor) prevEnd() int {
	if c.current == 0 {
		return 0
	}
	return c.tokens[c.current-1].End
}

// consume advances one token and returns it. At end-of-input the EOF token
// is returned without advancing.
func (c *cursor) consume() lexer.Token {
	tok := c.tokens[c.current]
	if tok.Type != lexer.TOKEN_EOF {
		c.current++
	}
	return tok
}

// atEnd checks if the cursor reached the end of the token stream
func (c *cursor) atEnd() bool {
	return c.peek().Type == lexer.TOKEN_EOF
}

// peekType checks the current token's type without consuming
func (c *cursor) peekType(t lexer.TokenType) bool {
	return c.peek().Type == t
}

// peekDelim checks for a single-character delimiter token with the given text
func (c *cursor) peekDelim(text string) bool {
	tok := c.peek()
	return tok.Type == lexer.TOKEN_DELIM && tok.Lexeme == text
}

// peekIdent checks for an identifier with the given text, case-insensitively
func (c *cursor) peekIdent(text string) bool {
	tok := c.peek()
	return tok.Type == lexer.TOKEN_IDENT && strings.EqualFold(tok.Lexeme, text)
}

// peekKeyword checks for an at-keyword such as "@mixin", case-insensitively
func (c *cursor) peekKeyword(text string) bool {
	tok := c.peek()
	return tok.Type == lexer.TOKEN_AT_KEYWORD && strings.EqualFold(tok.Lexeme, text)
}

// hasWhitespace reports whether whitespace or a comment ran immediately
// before the current token
func (c *cursor) hasWhitespace() bool {
	return c.peek().PrecededByWhitespace
}

// mark captures the cursor position for speculative parsing
func (c *cursor) mark() int {
	return c.current
}

// restore rewinds the cursor to a previously captured mark
func (c *cursor) restore(m int) {
	c.current = m
}

// accept consumes the current token if it has the given type
func (c *cursor) accept(t lexer.TokenType) bool {
	if c.peekType(t) {
		c.consume()
		return true
	}
	return false
}

// acceptDelim consumes the current token if it is the given delimiter
func (c *cursor) acceptDelim(text string) bool {
	if c.peekDelim(text) {
		c.consume()
		return true
	}
	return false
}

// acceptIdent consumes the current token if it is the given identifier
func (c *cursor) acceptIdent(text string) bool {
	if c.peekIdent(text) {
		c.consume()
		return true
	}
	return false
}

// acceptKeyword consumes the current token if it is the given at-keyword
func (c *cursor) acceptKeyword(text string) bool {
	if c.peekKeyword(text) {
		c.consume()
		return true
	}
	return false
}
