package parser

import (
	"testing"
)

func TestExpr_ModuleMember(t *testing.T) {
	source := "a { width: math.$half; height: math.div(10, 2); }"
	root := parseSource(t, source)
	assertClean(t, root)

	decls := findNode(root, NodeRuleset).ChildrenOfType(NodeDeclaration)
	if len(decls) != 2 {
		t.Fatalf("Expected 2 declarations, got %d", len(decls))
	}

	varAccess := findNode(decls[0].Value, NodeModule)
	if varAccess == nil {
		t.Fatal("Expected a qualified variable access")
	}
	if nodeText(source, varAccess.Identifier) != "math" {
		t.Errorf("Expected module math, got %q", nodeText(source, varAccess.Identifier))
	}
	if varAccess.FirstChildOfType(NodeVariable) == nil {
		t.Error("Expected a variable member")
	}

	fnAccess := findNode(decls[1].Value, NodeModule)
	if fnAccess == nil {
		t.Fatal("Expected a qualified function call")
	}
	if findNode(fnAccess, NodeFunction) == nil {
		t.Error("Expected a function member")
	}
}

// TestExpr_ModuleMemberWhitespace checks that a spaced dot never forms a
// qualified access
func TestExpr_ModuleMemberWhitespace(t *testing.T) {
	source := "a { width: math . $half; }"
	root := parseSource(t, source)

	if findNode(root, NodeModule) != nil {
		t.Error("Expected no qualified access across whitespace")
	}
	decl := findNode(root, NodeDeclaration)
	if decl == nil || decl.Value == nil {
		t.Fatal("Expected a declaration with a value")
	}
	ident := findNode(decl.Value, NodeIdentifier)
	if ident == nil || nodeText(source, ident) != "math" {
		t.Error("Expected the value to hold the plain identifier math")
	}
	if len(CollectDiagnostics(root)) == 0 {
		t.Error("Expected diagnostics for the leftover tokens")
	}
}

func TestExpr_SelectorCombinatorSuffix(t *testing.T) {
	source := ".a { &-1 { color: red; } }"
	root := parseSource(t, source)
	assertClean(t, root)

	rulesets := []*Node{}
	root.Visit(func(n *Node) bool {
		if n.Type == NodeRuleset {
			rulesets = append(rulesets, n)
		}
		return true
	})
	if len(rulesets) != 2 {
		t.Fatalf("Expected 2 rulesets, got %d", len(rulesets))
	}
	comb := findNode(rulesets[1], NodeSelectorCombinator)
	if comb == nil {
		t.Fatal("Expected a nesting selector")
	}
	if nodeText(source, comb) != "&-1" {
		t.Errorf("Expected combinator to cover &-1, got %q", nodeText(source, comb))
	}
}

// TestExpr_CombinatorWhitespace checks that "& -1" does not extend the
// nesting selector
func TestExpr_CombinatorWhitespace(t *testing.T) {
	source := ".a { & -1 { color: red; } }"
	root := parseSource(t, source)

	root.Visit(func(n *Node) bool {
		if n.Type == NodeSelectorCombinator && nodeText(source, n) != "&" {
			t.Errorf("Combinator extended across whitespace: %q", nodeText(source, n))
		}
		return true
	})
	if len(CollectDiagnostics(root)) == 0 {
		t.Error("Expected diagnostics for the dangling -1")
	}
}

func TestExpr_IdentFragments(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"interp_suffix", "a { b: c#{$d}e; }", "c#{$d}e"},
		{"interp_prefix", "a { b: #{$d}-f; }", "#{$d}-f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseSource(t, tt.source)
			assertClean(t, root)
			decl := findNode(root, NodeDeclaration)
			ident := findNode(decl.Value, NodeIdentifier)
			if ident == nil {
				t.Fatal("Expected an identifier value")
			}
			if nodeText(tt.source, ident) != tt.want {
				t.Errorf("Expected identifier %q, got %q", tt.want, nodeText(tt.source, ident))
			}
		})
	}
}

// TestExpr_LeadingMinusInterpolation checks that a hyphen fuses with an
// adjacent interpolation into one identifier in property position
func TestExpr_LeadingMinusInterpolation(t *testing.T) {
	source := "a { -#{$d}: 1; }"
	root := parseSource(t, source)
	assertClean(t, root)

	decl := findNode(root, NodeDeclaration)
	if decl == nil {
		t.Fatal("Expected a declaration")
	}
	if nodeText(source, decl.Property) != "-#{$d}" {
		t.Errorf("Expected property -#{$d}, got %q", nodeText(source, decl.Property))
	}
}

// TestExpr_MinusSpaceNumber checks that "- 1" stays a subtraction rather
// than collapsing into an identifier
func TestExpr_MinusSpaceNumber(t *testing.T) {
	source := "a { b: $x - 1; }"
	root := parseSource(t, source)
	assertClean(t, root)

	bin := findNode(root, NodeBinaryExpression)
	if bin == nil || bin.Operator == nil {
		t.Fatal("Expected a binary expression with an operator")
	}
	if nodeText(source, bin.Operator) != "-" {
		t.Errorf("Expected minus operator, got %q", nodeText(source, bin.Operator))
	}
	if bin.Right == nil {
		t.Error("Expected a right operand")
	}
}

func TestExpr_ParenthesizedMap(t *testing.T) {
	source := "$m: (small: 10px, large: 20px);"
	root := parseSource(t, source)
	assertClean(t, root)

	decl := root.Children[0]
	entries := []*Node{}
	decl.Visit(func(n *Node) bool {
		if n.Type == NodeListEntry {
			entries = append(entries, n)
		}
		return true
	})
	if len(entries) != 2 {
		t.Fatalf("Expected 2 map entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Key == nil || e.Value == nil {
			t.Errorf("Entry %d: expected both key and value", i)
		}
	}
}

func TestExpr_ParenthesizedList(t *testing.T) {
	source := "$l: (1 2 3, 4 5 6);"
	root := parseSource(t, source)
	assertClean(t, root)

	entries := []*Node{}
	root.Visit(func(n *Node) bool {
		if n.Type == NodeListEntry {
			entries = append(entries, n)
		}
		return true
	})
	if len(entries) == 0 {
		t.Fatal("Expected list entries")
	}
	for i, e := range entries {
		if e.Key != nil {
			t.Errorf("Entry %d: expected no key in a plain list", i)
		}
	}
}

func TestExpr_Operators(t *testing.T) {
	tests := []struct {
		name   string
		source string
		op     string
	}{
		{"eq", "@if $a == $b { a: b; }", "=="},
		{"neq", "@if $a != $b { a: b; }", "!="},
		{"gte", "@if $a >= $b { a: b; }", ">="},
		{"lte", "@if $a <= $b { a: b; }", "<="},
		{"gt", "@if $a > $b { a: b; }", ">"},
		{"lt", "@if $a < $b { a: b; }", "<"},
		{"and", "@if $a and $b { a: b; }", "and"},
		{"or", "@if $a or $b { a: b; }", "or"},
		{"mod", "a { b: $x % 2; }", "%"},
		{"div", "a { b: $x / 2; }", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseSource(t, tt.source)
			assertClean(t, root)
			op := findNode(root, NodeOperator)
			if op == nil {
				t.Fatal("Expected an operator")
			}
			if nodeText(tt.source, op) != tt.op {
				t.Errorf("Expected operator %q, got %q", tt.op, nodeText(tt.source, op))
			}
		})
	}
}

func TestExpr_OperatorChain(t *testing.T) {
	source := "a { b: 1 + 2 + 3; }"
	root := parseSource(t, source)
	assertClean(t, root)

	decl := findNode(root, NodeDeclaration)
	outer := findNode(decl.Value, NodeBinaryExpression)
	if outer == nil {
		t.Fatal("Expected a binary expression")
	}
	if outer.Left == nil || outer.Left.Type != NodeBinaryExpression {
		t.Error("Expected the chain to fold left")
	}
}

func TestExpr_Interpolation(t *testing.T) {
	source := "a { b: #{$x + 1}; }"
	root := parseSource(t, source)
	assertClean(t, root)

	itp := findNode(root, NodeInterpolation)
	if itp == nil {
		t.Fatal("Expected an interpolation")
	}
	if findNode(itp, NodeBinaryExpression) == nil {
		t.Error("Expected an expression inside the interpolation")
	}
}

func TestExpr_InterpolationErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   ErrorKind
	}{
		{"empty", "a { b: #{}; }", ErrExpressionExpected},
		{"unclosed", "a { b: #{$x; }", ErrRightCurlyExpected},
		{"empty unclosed expression", "a { b: #{", ErrExpressionExpected},
		{"empty unclosed brace", "a { b: #{", ErrRightCurlyExpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseSource(t, tt.source)
			found := false
			for _, d := range CollectDiagnostics(root) {
				if d.Kind == tt.kind {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected %v diagnostic", tt.kind)
			}
		})
	}
}

func TestExpr_Literals(t *testing.T) {
	source := `a { b: url(x.png) "str" #fff 10px 50% 1.5; }`
	root := parseSource(t, source)
	assertClean(t, root)

	decl := findNode(root, NodeDeclaration)
	for _, want := range []NodeType{NodeURILiteral, NodeStringLiteral, NodeHexColorValue, NodeNumericValue} {
		if findNode(decl.Value, want) == nil {
			t.Errorf("Expected a %v in the value", want)
		}
	}
}

func TestExpr_FunctionCall(t *testing.T) {
	source := "a { b: rgba(0, 0, 0, $alpha: 0.5); }"
	root := parseSource(t, source)
	assertClean(t, root)

	fn := findNode(root, NodeFunction)
	if fn == nil {
		t.Fatal("Expected a function call")
	}
	if nodeText(source, fn.Identifier) != "rgba" {
		t.Errorf("Expected function rgba, got %q", nodeText(source, fn.Identifier))
	}
	args := fn.ChildrenOfType(NodeFunctionArgument)
	if len(args) != 4 {
		t.Fatalf("Expected 4 arguments, got %d", len(args))
	}
	if args[3].Identifier == nil {
		t.Error("Expected last argument to be named")
	}
}

// TestExpr_FunctionArgMissingValue checks that a named argument with no
// value keeps its consumed name in the tree and reports the missing
// expression instead of silently dropping the tokens
func TestExpr_FunctionArgMissingValue(t *testing.T) {
	source := "$y: f($x: );"
	root := parseSource(t, source)

	arg := findNode(root, NodeFunctionArgument)
	if arg == nil {
		t.Fatal("Expected a function argument node")
	}
	if arg.Identifier == nil || nodeText(source, arg.Identifier) != "$x" {
		t.Error("Expected the argument to keep its $x name")
	}
	found := false
	for _, d := range CollectDiagnostics(root) {
		if d.Kind == ErrExpressionExpected {
			found = true
		}
	}
	if !found {
		t.Error("Expected an expression-expected diagnostic for the missing value")
	}
}

// TestExpr_FunctionNeedsAdjacentParen checks that whitespace before the
// parenthesis turns the input into a plain identifier
func TestExpr_FunctionNeedsAdjacentParen(t *testing.T) {
	source := "a { b: foo (1); }"
	root := parseSource(t, source)
	assertClean(t, root)

	if findNode(root, NodeFunction) != nil {
		t.Error("Expected no function call across whitespace")
	}
}

func TestExpr_Important(t *testing.T) {
	source := "a { color: red !important; }"
	root := parseSource(t, source)
	assertClean(t, root)
}

func TestExpr_UnaryOperators(t *testing.T) {
	source := "a { b: -$x; c: not $y; }"
	root := parseSource(t, source)
	assertClean(t, root)

	terms := []*Node{}
	root.Visit(func(n *Node) bool {
		if n.Type == NodeTerm && n.Operator != nil {
			terms = append(terms, n)
		}
		return true
	})
	if len(terms) != 2 {
		t.Fatalf("Expected 2 unary terms, got %d", len(terms))
	}
}
