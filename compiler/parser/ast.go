package parser

// NodeType tags a parse-tree node with its syntactic category
type NodeType int

const (
	NodeStylesheet NodeType = iota
	NodeRuleset
	NodeSelector
	NodeSimpleSelector
	NodeSelectorCombinator
	NodeSelectorPlaceholder
	NodeClassSelector
	NodeIdentifierSelector
	NodeAttributeSelector
	NodePseudoSelector
	NodeDeclaration
	NodeNestedProperties
	NodeVariableDeclaration
	NodeVariable
	NodeInterpolation
	NodeIdentifier
	NodeStringLiteral
	NodeURILiteral
	NodeNumericValue
	NodeHexColorValue
	NodeOperator
	NodeExpression
	NodeBinaryExpression
	NodeTerm
	NodeFunction
	NodeFunctionParameter
	NodeFunctionArgument
	NodeFunctionDeclaration
	NodeMixinDeclaration
	NodeMixinReference
	NodeMixinContentDeclaration
	NodeMixinContentReference
	NodeIfStatement
	NodeElseStatement
	NodeForStatement
	NodeEachStatement
	NodeWhileStatement
	NodeReturnStatement
	NodeDebug
	NodeExtendsReference
	NodeImport
	NodeUse
	NodeForward
	NodeForwardVisibility
	NodeModule
	NodeModuleConfiguration
	NodeListEntry
	NodeMedia
	NodeMediaQueryList
	NodeMediaQuery
	NodeMediaCondition
	NodeMediaFeature
	NodeKeyframe
	NodeKeyframeSelector
	NodeFontFace
	NodeSupports
	NodeSupportsCondition
	NodePage
	NodeLayer
	NodePropertyAtRule
	NodeUnknownAtRule
	NodeGeneric
)

// String returns a string representation of the node type
func (t NodeType) String() string {
	switch t {
	case NodeStylesheet:
		return "Stylesheet"
	case NodeRuleset:
		return "Ruleset"
	case NodeSelector:
		return "Selector"
	case NodeSimpleSelector:
		return "SimpleSelector"
	case NodeSelectorCombinator:
		return "SelectorCombinator"
	case NodeSelectorPlaceholder:
		return "SelectorPlaceholder"
	case NodeClassSelector:
		return "ClassSelector"
	case NodeIdentifierSelector:
		return "IdentifierSelector"
	case NodeAttributeSelector:
		return "AttributeSelector"
	case NodePseudoSelector:
		return "PseudoSelector"
	case NodeDeclaration:
		return "Declaration"
	case NodeNestedProperties:
		return "NestedProperties"
	case NodeVariableDeclaration:
		return "VariableDeclaration"
	case NodeVariable:
		return "Variable"
	case NodeInterpolation:
		return "Interpolation"
	case NodeIdentifier:
		return "Identifier"
	case NodeStringLiteral:
		return "StringLiteral"
	case NodeURILiteral:
		return "URILiteral"
	case NodeNumericValue:
		return "NumericValue"
	case NodeHexColorValue:
		return "HexColorValue"
	case NodeOperator:
		return "Operator"
	case NodeExpression:
		return "Expression"
	case NodeBinaryExpression:
		return "BinaryExpression"
	case NodeTerm:
		return "Term"
	case NodeFunction:
		return "Function"
	case NodeFunctionParameter:
		return "FunctionParameter"
	case NodeFunctionArgument:
		return "FunctionArgument"
	case NodeFunctionDeclaration:
		return "FunctionDeclaration"
	case NodeMixinDeclaration:
		return "MixinDeclaration"
	case NodeMixinReference:
		return "MixinReference"
	case NodeMixinContentDeclaration:
		return "MixinContentDeclaration"
	case NodeMixinContentReference:
		return "MixinContentReference"
	case NodeIfStatement:
		return "IfStatement"
	case NodeElseStatement:
		return "ElseStatement"
	case NodeForStatement:
		return "ForStatement"
	case NodeEachStatement:
		return "EachStatement"
	case NodeWhileStatement:
		return "WhileStatement"
	case NodeReturnStatement:
		return "ReturnStatement"
	case NodeDebug:
		return "Debug"
	case NodeExtendsReference:
		return "ExtendsReference"
	case NodeImport:
		return "Import"
	case NodeUse:
		return "Use"
	case NodeForward:
		return "Forward"
	case NodeForwardVisibility:
		return "ForwardVisibility"
	case NodeModule:
		return "Module"
	case NodeModuleConfiguration:
		return "ModuleConfiguration"
	case NodeListEntry:
		return "ListEntry"
	case NodeMedia:
		return "Media"
	case NodeMediaQueryList:
		return "MediaQueryList"
	case NodeMediaQuery:
		return "MediaQuery"
	case NodeMediaCondition:
		return "MediaCondition"
	case NodeMediaFeature:
		return "MediaFeature"
	case NodeKeyframe:
		return "Keyframe"
	case NodeKeyframeSelector:
		return "KeyframeSelector"
	case NodeFontFace:
		return "FontFace"
	case NodeSupports:
		return "Supports"
	case NodeSupportsCondition:
		return "SupportsCondition"
	case NodePage:
		return "Page"
	case NodeLayer:
		return "Layer"
	case NodePropertyAtRule:
		return "PropertyAtRule"
	case NodeUnknownAtRule:
		return "UnknownAtRule"
	case NodeGeneric:
		return "Generic"
	default:
		return "Unknown"
	}
}

// Node is a parse-tree element. It owns its Children exclusively; the named
// role fields (Identifier, Value, ...) are views into Children, never a
// second owner. A node with an empty Diagnostics list is clean; one with
// diagnostics is erroneous but still structurally complete and walkable.
type Node struct {
	Type   NodeType
	Offset int
	Length int

	Children    []*Node
	Diagnostics []Diagnostic

	// Named semantic roles. Each points at a member of Children.
	Property   *Node // declaration property
	Identifier *Node // name of a mixin/function/use/…, or variable of a declaration
	Value      *Node // declaration/parameter/argument value
	Key        *Node // list-entry key
	Default    *Node // parameter default value
	Else       *Node // chained else clause of an if statement
	Content    *Node // content declaration of a mixin reference
	Left       *Node // binary expression operands
	Right      *Node
	Operator   *Node

	// ColonOffset and SemicolonOffset record punctuation positions for
	// editor tooling. -1 when absent.
	ColonOffset     int
	SemicolonOffset int
}

// End returns the exclusive end offset of the node's range
func (n *Node) End() int {
	return n.Offset + n.Length
}

// AddChild appends a non-nil child and returns whether one was supplied.
// Passing nil is a no-op returning false, so callers can write
// node.AddChild(p.parseX()) as a combinator.
func (n *Node) AddChild(child *Node) bool {
	if child == nil {
		return false
	}
	n.Children = append(n.Children, child)
	n.encompass(child)
	return true
}

// encompass grows the node's range to cover the child's range
func (n *Node) encompass(child *Node) {
	if child.Offset < n.Offset {
		n.Length += n.Offset - child.Offset
		n.Offset = child.Offset
	}
	if child.End() > n.End() {
		n.Length = child.End() - n.Offset
	}
}

// hasDescendant reports whether c is already owned somewhere below n
func (n *Node) hasDescendant(c *Node) bool {
	for _, child := range n.Children {
		if child == c || child.hasDescendant(c) {
			return true
		}
	}
	return false
}

// attach records c in the given role slot, appending it as a child first
// unless it is already a descendant. Returns whether c was non-nil.
func (n *Node) attach(slot **Node, c *Node) bool {
	if c == nil {
		return false
	}
	if !n.hasDescendant(c) {
		n.AddChild(c)
	}
	*slot = c
	return true
}

// SetProperty records the property role of a declaration
func (n *Node) SetProperty(c *Node) bool { return n.attach(&n.Property, c) }

// SetIdentifier records the identifier role
func (n *Node) SetIdentifier(c *Node) bool { return n.attach(&n.Identifier, c) }

// SetValue records the value role
func (n *Node) SetValue(c *Node) bool { return n.attach(&n.Value, c) }

// SetKey records the key role of a list entry
func (n *Node) SetKey(c *Node) bool { return n.attach(&n.Key, c) }

// SetDefault records a parameter's default value
func (n *Node) SetDefault(c *Node) bool { return n.attach(&n.Default, c) }

// SetElse records the else clause of an if statement
func (n *Node) SetElse(c *Node) bool { return n.attach(&n.Else, c) }

// SetContent records the content declaration of a mixin reference
func (n *Node) SetContent(c *Node) bool { return n.attach(&n.Content, c) }

// SetLeft records the left operand of a binary expression
func (n *Node) SetLeft(c *Node) bool { return n.attach(&n.Left, c) }

// SetRight records the right operand of a binary expression
func (n *Node) SetRight(c *Node) bool { return n.attach(&n.Right, c) }

// SetOperator records the operator of a binary expression or term
func (n *Node) SetOperator(c *Node) bool { return n.attach(&n.Operator, c) }

// ChildrenOfType returns the children whose type tag matches t, in order
func (n *Node) ChildrenOfType(t NodeType) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildOfType returns the first child with the given type, or nil
func (n *Node) FirstChildOfType(t NodeType) *Node {
	for _, c := range n.Children {
		if c.Type == t {
			return c
		}
	}
	return nil
}

// IsErroneous reports whether the node or (optionally) any descendant
// carries a diagnostic
func (n *Node) IsErroneous(recursive bool) bool {
	if len(n.Diagnostics) > 0 {
		return true
	}
	if recursive {
		for _, c := range n.Children {
			if c.IsErroneous(true) {
				return true
			}
		}
	}
	return false
}

// Visit walks the subtree in depth-first pre-order. The visitor returns
// false to prune a subtree.
func (n *Node) Visit(visitor func(*Node) bool) {
	if !visitor(n) {
		return
	}
	for _, c := range n.Children {
		c.Visit(visitor)
	}
}

// CollectDiagnostics gathers the diagnostics of every node reachable from
// root, ordered by a left-to-right walk
func CollectDiagnostics(root *Node) []Diagnostic {
	var out []Diagnostic
	root.Visit(func(n *Node) bool {
		out = append(out, n.Diagnostics...)
		return true
	})
	return out
}
