package parser

import "fmt"

// ErrorKind is the closed taxonomy of syntactic errors the parser reports
type ErrorKind int

const (
	ErrIdentifierExpected ErrorKind = iota
	ErrVariableNameExpected
	ErrVariableValueExpected
	ErrExpressionExpected
	ErrTermExpected
	ErrColonExpected
	ErrSemiColonExpected
	ErrLeftParenthesisExpected
	ErrRightParenthesisExpected
	ErrLeftCurlyExpected
	ErrRightCurlyExpected
	ErrRightBracketExpected
	ErrStringLiteralExpected
	ErrURIOrStringExpected
	ErrSelectorExpected
	ErrPropertyValueExpected
	ErrRulesetExpected
	ErrStatementExpected
	ErrMediaQueryExpected
	ErrConditionExpected
	ErrUnknownKeyword
	ErrWildcardExpected
	ErrIdentifierOrWildcardExpected
	ErrIdentifierOrVariableExpected

	// Dialect-only kinds
	ErrFromExpected
	ErrThroughOrToExpected
	ErrInExpected
)

// Message returns the human readable message for the error kind
func (k ErrorKind) Message() string {
	switch k {
	case ErrIdentifierExpected:
		return "identifier expected"
	case ErrVariableNameExpected:
		return "variable name expected"
	case ErrVariableValueExpected:
		return "variable value expected"
	case ErrExpressionExpected:
		return "expression expected"
	case ErrTermExpected:
		return "term expected"
	case ErrColonExpected:
		return "colon expected"
	case ErrSemiColonExpected:
		return "semi-colon expected"
	case ErrLeftParenthesisExpected:
		return "opening parenthesis expected"
	case ErrRightParenthesisExpected:
		return "closing parenthesis expected"
	case ErrLeftCurlyExpected:
		return "opening curly brace expected"
	case ErrRightCurlyExpected:
		return "closing curly brace expected"
	case ErrRightBracketExpected:
		return "closing bracket expected"
	case ErrStringLiteralExpected:
		return "string literal expected"
	case ErrURIOrStringExpected:
		return "uri or string expected"
	case ErrSelectorExpected:
		return "selector expected"
	case ErrPropertyValueExpected:
		return "property value expected"
	case ErrRulesetExpected:
		return "at-rule or selector expected"
	case ErrStatementExpected:
		return "statement expected"
	case ErrMediaQueryExpected:
		return "media query expected"
	case ErrConditionExpected:
		return "condition expected"
	case ErrUnknownKeyword:
		return "unknown keyword"
	case ErrWildcardExpected:
		return "wildcard expected"
	case ErrIdentifierOrWildcardExpected:
		return "identifier or wildcard expected"
	case ErrIdentifierOrVariableExpected:
		return "identifier or variable expected"
	case ErrFromExpected:
		return "'from' expected"
	case ErrThroughOrToExpected:
		return "'through' or 'to' expected"
	case ErrInExpected:
		return "'in' expected"
	default:
		return "syntax error"
	}
}

// Diagnostic is an error attached to a node. Offset/Length cover the
// offending token; SkipOffset/SkipLength cover tokens discarded by
// panic-mode recovery (zero when no recovery skip happened).
type Diagnostic struct {
	Kind    ErrorKind
	Message string
	Offset  int
	Length  int

	SkipOffset int
	SkipLength int
}

// Error implements the error interface
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s", d.Offset, d.Offset+d.Length, d.Message)
}
