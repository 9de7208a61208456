package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes SCSS source code.
//
// Whitespace and comments are not emitted as tokens; instead the following
// token carries PrecededByWhitespace. Offsets are byte offsets into the
// original source so diagnostics can map straight back to editor ranges.
type Lexer struct {
	source      string
	start       int // Byte offset where the current token started
	current     int // Current byte offset
	line        int
	column      int
	startLine   int
	startColumn int
	file        string
	tokens      []Token
	errors      []LexError

	// True once whitespace or a comment was skipped since the last token
	pendingWhitespace bool
}

// New creates a new Lexer for the given source code
func New(source, file string) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
		column: 1,
		file:   file,
		tokens: make([]Token, 0, len(source)/8),
		errors: make([]LexError, 0),
	}
}

// ScanTokens scans all tokens from the source and returns them with any
// errors. The returned slice always ends with a TOKEN_EOF token.
func (l *Lexer) ScanTokens() ([]Token, []LexError) {
	for !l.isAtEnd() {
		l.start = l.current
		l.startLine = l.line
		l.startColumn = l.column
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Type:                 TOKEN_EOF,
		Line:                 l.line,
		Column:               l.column,
		Start:                l.current,
		End:                  l.current,
		PrecededByWhitespace: l.pendingWhitespace,
	})
	return l.tokens, l.errors
}

func (l *Lexer) scanToken() {
	c := l.advance()

	switch {
	case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f':
		l.pendingWhitespace = true
	case c == '/':
		if l.match('*') {
			l.blockComment()
		} else if l.match('/') {
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
			l.pendingWhitespace = true
		} else {
			l.addToken(TOKEN_DELIM)
		}
	case c == '{':
		l.addToken(TOKEN_LBRACE)
	case c == '}':
		l.addToken(TOKEN_RBRACE)
	case c == '(':
		l.addToken(TOKEN_LPAREN)
	case c == ')':
		l.addToken(TOKEN_RPAREN)
	case c == '[':
		l.addToken(TOKEN_LBRACKET)
	case c == ']':
		l.addToken(TOKEN_RBRACKET)
	case c == ',':
		l.addToken(TOKEN_COMMA)
	case c == ':':
		l.addToken(TOKEN_COLON)
	case c == ';':
		l.addToken(TOKEN_SEMICOLON)
	case c == '"' || c == '\'':
		l.scanString(c)
	case c == '#':
		if l.match('{') {
			l.addToken(TOKEN_INTERP_START)
		} else if isNameChar(l.peek()) {
			for isNameChar(l.peek()) {
				l.advance()
			}
			l.addToken(TOKEN_HASH)
		} else {
			l.addToken(TOKEN_DELIM)
		}
	case c == '$':
		if isNameStart(l.peek()) || l.peek() == '-' {
			for isNameChar(l.peek()) {
				l.advance()
			}
			l.addToken(TOKEN_VARIABLE)
		} else {
			l.addToken(TOKEN_DELIM)
		}
	case c == '@':
		if isNameStart(l.peek()) || l.peek() == '-' {
			for isNameChar(l.peek()) {
				l.advance()
			}
			l.addToken(TOKEN_AT_KEYWORD)
		} else {
			l.addToken(TOKEN_DELIM)
		}
	case c == '!':
		if l.match('=') {
			l.addToken(TOKEN_BANG_EQUAL)
		} else {
			l.addToken(TOKEN_BANG)
		}
	case c == '=':
		if l.match('=') {
			l.addToken(TOKEN_EQUAL_EQUAL)
		} else {
			l.addToken(TOKEN_DELIM)
		}
	case c == '>':
		if l.match('=') {
			l.addToken(TOKEN_GREATER_EQUAL)
		} else {
			l.addToken(TOKEN_DELIM)
		}
	case c == '<':
		if l.match('=') {
			l.addToken(TOKEN_LESS_EQUAL)
		} else {
			l.addToken(TOKEN_DELIM)
		}
	case c == '.':
		if isDigit(l.peek()) {
			l.scanNumber(true)
		} else if l.peek() == '.' && l.peekAt(1) == '.' {
			l.advance()
			l.advance()
			l.addToken(TOKEN_ELLIPSIS)
		} else {
			l.addToken(TOKEN_DELIM)
		}
	case isDigit(c):
		l.scanNumber(false)
	case c == '-':
		// A hyphen only opens an identifier when ident content follows
		// directly; "-5" stays delim+number so unary minus still works.
		if isNameStart(l.peek()) || l.peek() == '-' {
			l.scanIdent()
		} else {
			l.addToken(TOKEN_DELIM)
		}
	case isNameStart(c):
		l.scanIdent()
	default:
		l.addToken(TOKEN_DELIM)
	}
}

func (l *Lexer) blockComment() {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			l.pendingWhitespace = true
			return
		}
		l.advance()
	}
	l.addError("unterminated comment")
	l.pendingWhitespace = true
}

func (l *Lexer) scanString(quote rune) {
	for !l.isAtEnd() {
		c := l.peek()
		if c == quote {
			l.advance()
			l.addToken(TOKEN_STRING)
			return
		}
		if c == '\n' {
			l.addError("unterminated string")
			l.addToken(TOKEN_BAD_STRING)
			return
		}
		if c == '\\' {
			l.advance()
			if !l.isAtEnd() {
				l.advance()
			}
			continue
		}
		l.advance()
	}
	l.addError("unterminated string")
	l.addToken(TOKEN_BAD_STRING)
}

func (l *Lexer) scanNumber(sawDot bool) {
	for isDigit(l.peek()) {
		l.advance()
	}
	if !sawDot && l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}
	if l.peek() == '%' {
		l.advance()
		l.addToken(TOKEN_PERCENTAGE)
		return
	}
	if isNameStart(l.peek()) {
		for isNameChar(l.peek()) {
			l.advance()
		}
		l.addToken(TOKEN_DIMENSION)
		return
	}
	l.addToken(TOKEN_NUM)
}

func (l *Lexer) scanIdent() {
	for isNameChar(l.peek()) {
		l.advance()
	}
	lexeme := l.source[l.start:l.current]
	if strings.EqualFold(lexeme, "url") && l.peek() == '(' {
		l.scanURI()
		return
	}
	l.addToken(TOKEN_IDENT)
}

// scanURI consumes "(...)" after a url identifier as a single token. The
// content may be quoted or raw; raw content runs to the closing parenthesis.
func (l *Lexer) scanURI() {
	l.advance() // (
	for !l.isAtEnd() {
		c := l.peek()
		if c == ')' {
			l.advance()
			l.addToken(TOKEN_URI)
			return
		}
		if c == '\\' {
			l.advance()
			if !l.isAtEnd() {
				l.advance()
			}
			continue
		}
		l.advance()
	}
	l.addError("unterminated url()")
	l.addToken(TOKEN_BAD_URI)
}

// Low level helpers

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return r
}

// peekAt returns the rune n runes past the current position
func (l *Lexer) peekAt(n int) rune {
	pos := l.current
	for i := 0; i < n; i++ {
		if pos >= len(l.source) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(l.source[pos:])
		pos += size
	}
	if pos >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[pos:])
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.peek() != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) addToken(t TokenType) {
	l.tokens = append(l.tokens, Token{
		Type:                 t,
		Lexeme:               l.source[l.start:l.current],
		Line:                 l.startLine,
		Column:               l.startColumn,
		Start:                l.start,
		End:                  l.current,
		PrecededByWhitespace: l.pendingWhitespace,
	})
	l.pendingWhitespace = false
}

func (l *Lexer) addError(message string) {
	l.errors = append(l.errors, LexError{
		Message: message,
		Line:    l.startLine,
		Column:  l.startColumn,
		File:    l.file,
	})
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNameStart(r rune) bool {
	return r == '_' || r == '\\' || unicode.IsLetter(r) || r >= 0x80
}

func isNameChar(r rune) bool {
	return r == '-' || isDigit(r) || isNameStart(r)
}
