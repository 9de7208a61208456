package lexer

import "fmt"

// TokenType represents the type of token in an SCSS source file
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota

	// Identifiers and keywords
	TOKEN_IDENT      // color, -moz-box, --custom
	TOKEN_AT_KEYWORD // @media, @mixin (lexeme includes the @)

	// Literals
	TOKEN_STRING     // "..." or '...'
	TOKEN_BAD_STRING // unterminated string
	TOKEN_URI        // url(...) including the content
	TOKEN_BAD_URI    // unterminated url(
	TOKEN_HASH       // #fff, #id (lexeme includes the #)
	TOKEN_NUM        // 12, 4.5, .5
	TOKEN_PERCENTAGE // 50%
	TOKEN_DIMENSION  // 12px, 1.5em

	// Punctuation
	TOKEN_COLON     // :
	TOKEN_SEMICOLON // ;
	TOKEN_COMMA     // ,
	TOKEN_LBRACE    // {
	TOKEN_RBRACE    // }
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_LBRACKET  // [
	TOKEN_RBRACKET  // ]
	TOKEN_BANG      // !
	TOKEN_DELIM     // any other single character (., &, %, +, -, ...)

	// SCSS-specific tokens
	TOKEN_VARIABLE      // $name (lexeme includes the $)
	TOKEN_INTERP_START  // #{
	TOKEN_ELLIPSIS      // ...
	TOKEN_EQUAL_EQUAL   // ==
	TOKEN_BANG_EQUAL    // !=
	TOKEN_GREATER_EQUAL // >=
	TOKEN_LESS_EQUAL    // <=
)

// Token represents a single lexical token
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
	Start  int // Byte offset in source where token starts
	End    int // Byte offset in source where token ends (exclusive)

	// PrecededByWhitespace is true when whitespace or a comment ran
	// immediately before this token. The parser's whitespace-sensitivity
	// rules (module member dots, nesting selector suffixes, !default) all
	// key off this flag.
	PrecededByWhitespace bool
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_IDENT:
		return "IDENT"
	case TOKEN_AT_KEYWORD:
		return "AT_KEYWORD"
	case TOKEN_STRING:
		return "STRING"
	case TOKEN_BAD_STRING:
		return "BAD_STRING"
	case TOKEN_URI:
		return "URI"
	case TOKEN_BAD_URI:
		return "BAD_URI"
	case TOKEN_HASH:
		return "HASH"
	case TOKEN_NUM:
		return "NUM"
	case TOKEN_PERCENTAGE:
		return "PERCENTAGE"
	case TOKEN_DIMENSION:
		return "DIMENSION"
	case TOKEN_COLON:
		return "COLON"
	case TOKEN_SEMICOLON:
		return "SEMICOLON"
	case TOKEN_COMMA:
		return "COMMA"
	case TOKEN_LBRACE:
		return "LBRACE"
	case TOKEN_RBRACE:
		return "RBRACE"
	case TOKEN_LPAREN:
		return "LPAREN"
	case TOKEN_RPAREN:
		return "RPAREN"
	case TOKEN_LBRACKET:
		return "LBRACKET"
	case TOKEN_RBRACKET:
		return "RBRACKET"
	case TOKEN_BANG:
		return "BANG"
	case TOKEN_DELIM:
		return "DELIM"
	case TOKEN_VARIABLE:
		return "VARIABLE"
	case TOKEN_INTERP_START:
		return "INTERP_START"
	case TOKEN_ELLIPSIS:
		return "ELLIPSIS"
	case TOKEN_EQUAL_EQUAL:
		return "EQUAL_EQUAL"
	case TOKEN_BANG_EQUAL:
		return "BANG_EQUAL"
	case TOKEN_GREATER_EQUAL:
		return "GREATER_EQUAL"
	case TOKEN_LESS_EQUAL:
		return "LESS_EQUAL"
	default:
		return "UNKNOWN"
	}
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s(%s) [%d:%d]", t.Type, t.Lexeme, t.Line, t.Column)
}

// LexError represents a lexical analysis error
type LexError struct {
	Message string
	Line    int
	Column  int
	File    string
}

// Error implements the error interface
func (e LexError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}
