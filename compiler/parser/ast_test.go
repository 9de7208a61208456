package parser

import (
	"testing"
)

// TestAST_RangeContainment checks that every child range nests inside its
// parent across a representative input
func TestAST_RangeContainment(t *testing.T) {
	source := `@use "sass:math" as m;
$base: 10px !default;
@mixin pad($n: 1) { padding: $n * $base; }
.card {
  @include pad(2);
  &:hover { color: math.$accent; }
  @media screen and (min-width: 600px) { width: 50%; }
}`
	root := parseSource(t, source)
	assertClean(t, root)

	var check func(n *Node)
	check = func(n *Node) {
		for _, c := range n.Children {
			if c.Offset < n.Offset || c.End() > n.End() {
				t.Errorf("%v [%d,%d) escapes parent %v [%d,%d)",
					c.Type, c.Offset, c.End(), n.Type, n.Offset, n.End())
			}
			check(c)
		}
	}
	check(root)

	if root.Offset != 0 || root.End() != len(source) {
		t.Errorf("Expected root to cover the whole input, got [%d,%d)", root.Offset, root.End())
	}
}

func TestAST_AddChildNil(t *testing.T) {
	n := &Node{Type: NodeExpression}
	if n.AddChild(nil) {
		t.Error("Expected AddChild(nil) to report false")
	}
	if len(n.Children) != 0 {
		t.Error("Expected no children after AddChild(nil)")
	}
}

func TestAST_AddChildGrowsRange(t *testing.T) {
	parent := &Node{Type: NodeExpression, Offset: 10, Length: 2}
	child := &Node{Type: NodeIdentifier, Offset: 4, Length: 20}
	if !parent.AddChild(child) {
		t.Fatal("Expected AddChild to succeed")
	}
	if parent.Offset != 4 || parent.End() != 24 {
		t.Errorf("Expected parent range [4,24), got [%d,%d)", parent.Offset, parent.End())
	}
}

func TestAST_RoleSetters(t *testing.T) {
	parent := &Node{Type: NodeDeclaration}
	value := &Node{Type: NodeExpression, Offset: 3, Length: 5}

	if parent.SetValue(nil) {
		t.Error("Expected SetValue(nil) to report false")
	}
	if !parent.SetValue(value) {
		t.Fatal("Expected SetValue to succeed")
	}
	if parent.Value != value {
		t.Error("Expected the role field to point at the child")
	}
	if len(parent.Children) != 1 || parent.Children[0] != value {
		t.Error("Expected the role child to be owned via Children")
	}
}

func TestAST_ChildrenOfType(t *testing.T) {
	root := parseSource(t, "$a: 1; $b: 2; .c { color: red; }")
	decls := root.ChildrenOfType(NodeVariableDeclaration)
	if len(decls) != 2 {
		t.Errorf("Expected 2 variable declarations, got %d", len(decls))
	}
	if root.FirstChildOfType(NodeRuleset) == nil {
		t.Error("Expected to find the ruleset")
	}
}

func TestAST_IsErroneous(t *testing.T) {
	root := parseSource(t, ".a { color: ; }")
	if !root.IsErroneous(true) {
		t.Error("Expected the tree to be erroneous")
	}
	clean := parseSource(t, ".a { color: red; }")
	if clean.IsErroneous(true) {
		t.Error("Expected a clean tree")
	}
}

func TestAST_VisitPrune(t *testing.T) {
	root := parseSource(t, ".a { .b { color: red; } }")
	count := 0
	root.Visit(func(n *Node) bool {
		count++
		return n.Type != NodeRuleset // stop at the first ruleset
	})
	if count < 2 {
		t.Errorf("Expected the walk to reach the ruleset, visited %d nodes", count)
	}
	full := 0
	root.Visit(func(n *Node) bool {
		full++
		return true
	})
	if full <= count {
		t.Errorf("Expected pruning to skip nodes: pruned=%d full=%d", count, full)
	}
}
