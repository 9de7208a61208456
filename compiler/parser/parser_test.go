package parser

import (
	"testing"

	"github.com/cascade-lang/cascade/compiler/lexer"
)

// Helper to parse source into a tree
func parseSource(t *testing.T, source string) *Node {
	t.Helper()
	l := lexer.New(source, "test.scss")
	tokens, lexErrors := l.ScanTokens()
	if len(lexErrors) > 0 {
		t.Fatalf("Lexer errors: %v", lexErrors)
	}
	root := New(tokens).Parse()
	if root == nil {
		t.Fatal("Parse returned nil root")
	}
	return root
}

// Helper to extract the text a node covers
func nodeText(source string, n *Node) string {
	return source[n.Offset : n.Offset+n.Length]
}

// Helper to find the first node of a type anywhere in the tree
func findNode(root *Node, t NodeType) *Node {
	var found *Node
	root.Visit(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Type == t {
			found = n
			return false
		}
		return true
	})
	return found
}

func assertClean(t *testing.T, root *Node) {
	t.Helper()
	if diags := CollectDiagnostics(root); len(diags) > 0 {
		t.Fatalf("Expected no diagnostics, got: %v", diags)
	}
}

func TestParser_VariableDeclaration(t *testing.T) {
	source := "$x: 1px;"
	root := parseSource(t, source)
	assertClean(t, root)

	if len(root.Children) != 1 {
		t.Fatalf("Expected 1 statement, got %d", len(root.Children))
	}
	decl := root.Children[0]
	if decl.Type != NodeVariableDeclaration {
		t.Fatalf("Expected VariableDeclaration, got %v", decl.Type)
	}
	if decl.Identifier == nil || nodeText(source, decl.Identifier) != "$x" {
		t.Errorf("Expected identifier $x, got %v", decl.Identifier)
	}
	num := findNode(decl.Value, NodeNumericValue)
	if num == nil {
		t.Fatal("Expected a numeric value in the declaration value")
	}
	if nodeText(source, num) != "1px" {
		t.Errorf("Expected value 1px, got %q", nodeText(source, num))
	}
}

func TestParser_IfElse(t *testing.T) {
	source := "@if $a == 1 { color: red; } @else { color: blue; }"
	root := parseSource(t, source)
	assertClean(t, root)

	ifStmt := findNode(root, NodeIfStatement)
	if ifStmt == nil {
		t.Fatal("Expected an if statement")
	}
	op := findNode(ifStmt.Value, NodeOperator)
	if op == nil || nodeText(source, op) != "==" {
		t.Error("Expected a comparison operator in the condition")
	}
	if ifStmt.Else == nil || ifStmt.Else.Type != NodeElseStatement {
		t.Fatal("Expected a populated else clause")
	}
	if findNode(ifStmt.Else, NodeDeclaration) == nil {
		t.Error("Expected a declaration inside the else body")
	}
}

func TestParser_Use(t *testing.T) {
	source := `@use "sass:math" as m;`
	root := parseSource(t, source)
	assertClean(t, root)

	use := findNode(root, NodeUse)
	if use == nil {
		t.Fatal("Expected a use node")
	}
	str := use.FirstChildOfType(NodeStringLiteral)
	if str == nil || nodeText(source, str) != `"sass:math"` {
		t.Error("Expected a string literal path child")
	}
	if use.Identifier == nil || nodeText(source, use.Identifier) != "m" {
		t.Error("Expected alias identifier m")
	}
}

func TestParser_QualifiedInclude(t *testing.T) {
	source := "@include foo.bar($x: 1, $y...);"
	root := parseSource(t, source)
	assertClean(t, root)

	ref := findNode(root, NodeMixinReference)
	if ref == nil {
		t.Fatal("Expected a mixin reference")
	}
	if ref.Identifier == nil || nodeText(source, ref.Identifier) != "bar" {
		t.Errorf("Expected identifier bar, got %q", nodeText(source, ref.Identifier))
	}
	module := ref.FirstChildOfType(NodeModule)
	if module == nil || nodeText(source, module.Identifier) != "foo" {
		t.Fatal("Expected a module child tagged foo")
	}
	args := ref.ChildrenOfType(NodeFunctionArgument)
	if len(args) != 2 {
		t.Fatalf("Expected 2 arguments, got %d", len(args))
	}
	if args[0].Identifier == nil || nodeText(source, args[0].Identifier) != "$x" {
		t.Error("Expected first argument to be named $x")
	}
	if args[1].Value == nil || args[1].Value.Type != NodeVariable {
		t.Error("Expected second argument to be a variable spread")
	}
	if nodeText(source, args[1]) != "$y..." {
		t.Errorf("Expected spread to cover $y..., got %q", nodeText(source, args[1]))
	}
}

func TestParser_IncludeUsingContent(t *testing.T) {
	source := "@include media($small) using ($width) { max-width: $width; }"
	root := parseSource(t, source)
	assertClean(t, root)

	ref := findNode(root, NodeMixinReference)
	if ref == nil {
		t.Fatal("Expected a mixin reference")
	}
	content := ref.Content
	if content == nil || content.Type != NodeMixinContentDeclaration {
		t.Fatal("Expected a content declaration on the include")
	}
	params := content.ChildrenOfType(NodeFunctionParameter)
	if len(params) != 1 || nodeText(source, params[0]) != "$width" {
		t.Fatalf("Expected one parameter $width, got %d", len(params))
	}
	if findNode(content, NodeDeclaration) == nil {
		t.Error("Expected a declaration inside the content body")
	}
}

func TestParser_NestedRulesets(t *testing.T) {
	source := ".a { .b { color: $c; } }"
	root := parseSource(t, source)
	assertClean(t, root)

	outer := findNode(root, NodeRuleset)
	if outer == nil {
		t.Fatal("Expected an outer ruleset")
	}
	inner := outer.FirstChildOfType(NodeRuleset)
	if inner == nil {
		t.Fatal("Expected a nested ruleset")
	}
	decl := findNode(inner, NodeDeclaration)
	if decl == nil {
		t.Fatal("Expected a declaration in the inner ruleset")
	}
	if findNode(decl.Value, NodeVariable) == nil {
		t.Error("Expected the declaration value to reference a variable")
	}
}

func TestParser_MixinDeclaration(t *testing.T) {
	source := "@mixin m($a: 1, $rest...) { @content; }"
	root := parseSource(t, source)
	assertClean(t, root)

	mixin := findNode(root, NodeMixinDeclaration)
	if mixin == nil {
		t.Fatal("Expected a mixin declaration")
	}
	params := mixin.ChildrenOfType(NodeFunctionParameter)
	if len(params) != 2 {
		t.Fatalf("Expected 2 parameters, got %d", len(params))
	}
	if params[0].Default == nil {
		t.Error("Expected first parameter to carry a default")
	}
	if nodeText(source, params[1]) != "$rest..." {
		t.Errorf("Expected variadic parameter $rest..., got %q", nodeText(source, params[1]))
	}
	if findNode(mixin, NodeMixinContentReference) == nil {
		t.Error("Expected a content reference in the body")
	}
}

// TestParser_Totality checks that every input, however broken, yields a
// stylesheet root
func TestParser_Totality(t *testing.T) {
	inputs := []string{
		"",
		";",
		"}",
		"}}}}",
		"@",
		"@;",
		"{",
		"a {",
		"a { color: }",
		"$",
		"$x",
		"$x:",
		"#{",
		"((((",
		"@mixin",
		"@include",
		"@use",
		"@if",
		"!@#$%^&*()",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			root := parseSource(t, input)
			if root.Type != NodeStylesheet {
				t.Fatalf("Expected stylesheet root, got %v", root.Type)
			}
		})
	}
}

// TestParser_RecoveryKeepsBody checks that a malformed mixin parameter list
// does not swallow the block that follows it
func TestParser_RecoveryKeepsBody(t *testing.T) {
	source := "@mixin a( { color: red; }"
	root := parseSource(t, source)

	mixin := findNode(root, NodeMixinDeclaration)
	if mixin == nil {
		t.Fatal("Expected a mixin declaration despite the broken parameter list")
	}
	if !mixin.IsErroneous(true) {
		t.Error("Expected a diagnostic on the mixin declaration")
	}
	decl := findNode(mixin, NodeDeclaration)
	if decl == nil {
		t.Fatal("Expected the body declaration to survive recovery")
	}
	if nodeText(source, decl.Property) != "color" {
		t.Errorf("Expected property color, got %q", nodeText(source, decl.Property))
	}
}

// TestParser_RecoveryResumesSiblings checks that one bad statement does not
// take the rest of the body with it
func TestParser_RecoveryResumesSiblings(t *testing.T) {
	source := ".a { ???; color: red; }"
	root := parseSource(t, source)

	if len(CollectDiagnostics(root)) == 0 {
		t.Fatal("Expected diagnostics for the bad statement")
	}
	decl := findNode(root, NodeDeclaration)
	if decl == nil {
		t.Fatal("Expected the following declaration to parse")
	}
	if nodeText(source, decl.Property) != "color" {
		t.Errorf("Expected property color, got %q", nodeText(source, decl.Property))
	}
}

func TestParser_MissingSemicolon(t *testing.T) {
	source := ".a { color: red color: blue; }"
	root := parseSource(t, source)

	diags := CollectDiagnostics(root)
	found := false
	for _, d := range diags {
		if d.Kind == ErrSemiColonExpected {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a semicolon-expected diagnostic, got %v", diags)
	}
}

func TestParser_DiagnosticPosition(t *testing.T) {
	source := "$x 1px;"
	root := parseSource(t, source)

	var colon *Diagnostic
	for _, d := range CollectDiagnostics(root) {
		if d.Kind == ErrColonExpected {
			colon = &d
			break
		}
	}
	if colon == nil {
		t.Fatal("Expected a colon-expected diagnostic")
	}
	if source[colon.Offset:colon.Offset+colon.Length] != "1px" {
		t.Errorf("Expected diagnostic at the offending token, got range [%d,%d)",
			colon.Offset, colon.Offset+colon.Length)
	}
}

func TestParser_ExtendAndPlaceholder(t *testing.T) {
	source := "%btn { color: red; } .a { @extend %btn !optional; }"
	root := parseSource(t, source)
	assertClean(t, root)

	placeholder := findNode(root, NodeSelectorPlaceholder)
	if placeholder == nil {
		t.Fatal("Expected a placeholder selector")
	}
	extend := findNode(root, NodeExtendsReference)
	if extend == nil {
		t.Fatal("Expected an extend reference")
	}
	if findNode(extend, NodeSelectorPlaceholder) == nil {
		t.Error("Expected the extend target to be a placeholder")
	}
}

func TestParser_NestedProperties(t *testing.T) {
	source := "a { font: 2px { family: fantasy; } }"
	root := parseSource(t, source)
	assertClean(t, root)

	decl := findNode(root, NodeDeclaration)
	if decl == nil {
		t.Fatal("Expected a declaration")
	}
	nested := decl.FirstChildOfType(NodeNestedProperties)
	if nested == nil {
		t.Fatal("Expected a nested property block")
	}
	if findNode(nested, NodeDeclaration) == nil {
		t.Error("Expected a declaration inside the nested block")
	}
}

func TestParser_FunctionDeclaration(t *testing.T) {
	source := "@function double($n) { @return $n * 2; }"
	root := parseSource(t, source)
	assertClean(t, root)

	fn := findNode(root, NodeFunctionDeclaration)
	if fn == nil {
		t.Fatal("Expected a function declaration")
	}
	ret := findNode(fn, NodeReturnStatement)
	if ret == nil {
		t.Fatal("Expected a return statement in the body")
	}
	if findNode(ret, NodeOperator) == nil {
		t.Error("Expected a multiplication in the return expression")
	}
}

func TestParser_ReturnRequiresExpression(t *testing.T) {
	source := "@function f() { @return; }"
	root := parseSource(t, source)

	diags := CollectDiagnostics(root)
	found := false
	for _, d := range diags {
		if d.Kind == ErrExpressionExpected {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected expression-expected for bare @return, got %v", diags)
	}
}

func TestParser_WarnDebugError(t *testing.T) {
	source := `@debug "here"; @warn $x; @error "bad";`
	root := parseSource(t, source)
	assertClean(t, root)

	if n := len(root.ChildrenOfType(NodeDebug)); n != 3 {
		t.Errorf("Expected 3 diagnostic statements, got %d", n)
	}
}

func TestParser_Media(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"type_and_feature", "@media screen and (min-width: 100px) { .a { color: red; } }"},
		{"only", "@media only print { .a { color: red; } }"},
		{"not", "@media not screen { .a { color: red; } }"},
		{"range", "@media (400px <= width <= 700px) { .a { color: red; } }"},
		{"nested_condition", "@media ((min-width: 100px) or (print)) { .a { color: red; } }"},
		{"interpolated", "@media #{$query} { .a { color: red; } }"},
		{"nested_in_ruleset", ".a { @media screen { color: red; } }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseSource(t, tt.source)
			assertClean(t, root)
			if findNode(root, NodeMedia) == nil {
				t.Fatal("Expected a media node")
			}
		})
	}
}

func TestParser_Keyframes(t *testing.T) {
	source := "@keyframes slide { from { left: 0; } 50% { left: 50px; } to { left: 100px; } }"
	root := parseSource(t, source)
	assertClean(t, root)

	kf := findNode(root, NodeKeyframe)
	if kf == nil {
		t.Fatal("Expected a keyframe node")
	}
	if nodeText(source, kf.Identifier) != "slide" {
		t.Errorf("Expected keyframe name slide, got %q", nodeText(source, kf.Identifier))
	}
	sels := kf.ChildrenOfType(NodeKeyframeSelector)
	if len(sels) != 3 {
		t.Fatalf("Expected 3 keyframe selectors, got %d", len(sels))
	}
}

func TestParser_Import(t *testing.T) {
	source := `@import "a", url(b.css) screen;`
	root := parseSource(t, source)
	assertClean(t, root)

	imp := findNode(root, NodeImport)
	if imp == nil {
		t.Fatal("Expected an import node")
	}
	if imp.FirstChildOfType(NodeStringLiteral) == nil ||
		imp.FirstChildOfType(NodeURILiteral) == nil {
		t.Error("Expected both string and uri import targets")
	}
}

func TestParser_SupportsAndLayer(t *testing.T) {
	source := `@supports (display: flex) and (not (display: inline-grid)) { .a { color: red; } }
@layer base, theme;
@layer base { .a { color: red; } }`
	root := parseSource(t, source)
	assertClean(t, root)

	if findNode(root, NodeSupports) == nil {
		t.Fatal("Expected a supports node")
	}
	layers := root.ChildrenOfType(NodeLayer)
	if len(layers) != 2 {
		t.Fatalf("Expected 2 layer nodes, got %d", len(layers))
	}
}

func TestParser_UnknownAtRule(t *testing.T) {
	source := "@font-feature-values Font { @styleset { nice: 12; } } .a { color: red; }"
	root := parseSource(t, source)
	assertClean(t, root)

	if findNode(root, NodeUnknownAtRule) == nil {
		t.Fatal("Expected the unknown at-rule to be preserved")
	}
	if findNode(root, NodeRuleset) == nil {
		t.Error("Expected the following ruleset to parse")
	}
}

func TestParser_SelectorForms(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"compound", "a.b#c { color: red; }"},
		{"attribute", `input[type="text"] { color: red; }`},
		{"pseudo", "a:hover { color: red; }"},
		{"pseudo_element", "p::first-line { color: red; }"},
		{"pseudo_function", "li:nth-child(2n+1) { color: red; }"},
		{"pseudo_not", ".a:not(.b, .c) { color: red; }"},
		{"combinators", "ul > li + li ~ span { color: red; }"},
		{"universal", "* { color: red; }"},
		{"grouped", "a, b, c { color: red; }"},
		{"interpolated", ".#{$name} { color: red; }"},
		{"nesting_suffix", ".a { &-side { color: red; } }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseSource(t, tt.source)
			assertClean(t, root)
			if findNode(root, NodeRuleset) == nil {
				t.Fatal("Expected a ruleset")
			}
		})
	}
}

func TestParser_VariableFlags(t *testing.T) {
	source := "$x: 1 !default; $y: 2 !global; $z: 3 ! default;"
	root := parseSource(t, source)
	assertClean(t, root)

	if n := len(root.ChildrenOfType(NodeVariableDeclaration)); n != 3 {
		t.Fatalf("Expected 3 variable declarations, got %d", n)
	}
}

func TestParser_VariableFlagUnknown(t *testing.T) {
	source := "$x: 1 !bogus;"
	root := parseSource(t, source)

	found := false
	for _, d := range CollectDiagnostics(root) {
		if d.Kind == ErrUnknownKeyword {
			found = true
		}
	}
	if !found {
		t.Error("Expected an unknown-keyword diagnostic for !bogus")
	}
}

func TestParser_InterpolatedProperty(t *testing.T) {
	source := "a { #{$side}-margin: 10px; }"
	root := parseSource(t, source)
	assertClean(t, root)

	decl := findNode(root, NodeDeclaration)
	if decl == nil {
		t.Fatal("Expected a declaration")
	}
	if findNode(decl.Property, NodeInterpolation) == nil {
		t.Error("Expected interpolation in the property name")
	}
}
