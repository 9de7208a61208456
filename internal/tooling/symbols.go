package tooling

import (
	"strings"
	"sync"

	"github.com/cascade-lang/cascade/compiler/parser"
)

// SymbolIndex maintains a searchable index of all symbols across documents
type SymbolIndex struct {
	// symbols maps symbol name to all definitions
	symbols map[string][]*IndexedSymbol
	mutex   sync.RWMutex
}

// IndexedSymbol represents a symbol with its location
type IndexedSymbol struct {
	URI   string
	Range Range
	*Symbol
}

// NewSymbolIndex creates a new symbol index
func NewSymbolIndex() *SymbolIndex {
	return &SymbolIndex{
		symbols: make(map[string][]*IndexedSymbol),
	}
}

// Index adds symbols from a document to the index, replacing whatever the
// document contributed before
func (si *SymbolIndex) Index(uri string, symbols []*Symbol) {
	si.mutex.Lock()
	defer si.mutex.Unlock()

	si.removeDocumentLocked(uri)

	for _, sym := range symbols {
		indexed := &IndexedSymbol{
			URI:    uri,
			Range:  sym.Range,
			Symbol: sym,
		}

		si.symbols[sym.Name] = append(si.symbols[sym.Name], indexed)
	}
}

// RemoveDocument removes all symbols from a document
func (si *SymbolIndex) RemoveDocument(uri string) {
	si.mutex.Lock()
	defer si.mutex.Unlock()

	si.removeDocumentLocked(uri)
}

func (si *SymbolIndex) removeDocumentLocked(uri string) {
	for name, syms := range si.symbols {
		filtered := make([]*IndexedSymbol, 0, len(syms))
		for _, sym := range syms {
			if sym.URI != uri {
				filtered = append(filtered, sym)
			}
		}
		if len(filtered) > 0 {
			si.symbols[name] = filtered
		} else {
			delete(si.symbols, name)
		}
	}
}

// FindDefinition finds the definition of a symbol by name. Declarations win
// over style rules when both share a name.
func (si *SymbolIndex) FindDefinition(name string) *IndexedSymbol {
	si.mutex.RLock()
	defer si.mutex.RUnlock()

	syms, ok := si.symbols[name]
	if !ok || len(syms) == 0 {
		return nil
	}

	for _, sym := range syms {
		if sym.Kind != SymbolKindRuleset {
			return sym
		}
	}

	return syms[0]
}

// FindReferences finds all indexed occurrences of a symbol
func (si *SymbolIndex) FindReferences(name string) []Location {
	si.mutex.RLock()
	defer si.mutex.RUnlock()

	syms, ok := si.symbols[name]
	if !ok {
		return nil
	}

	locations := make([]Location, len(syms))
	for i, sym := range syms {
		locations[i] = Location{
			URI:   sym.URI,
			Range: sym.Range,
		}
	}

	return locations
}

// SearchSymbols searches for symbols matching a query across all documents.
// An empty query matches everything.
func (si *SymbolIndex) SearchSymbols(query string) []*IndexedSymbol {
	si.mutex.RLock()
	defer si.mutex.RUnlock()

	query = strings.ToLower(query)

	var matches []*IndexedSymbol
	for name, syms := range si.symbols {
		if query == "" || strings.Contains(strings.ToLower(name), query) {
			matches = append(matches, syms...)
		}
	}

	return matches
}

// extractSymbols walks a document's syntax tree and collects the named
// entities an outline view would show: variables, mixins, functions,
// placeholder selectors, style rules and loaded modules.
func extractSymbols(doc *Document) []*Symbol {
	symbols := make([]*Symbol, 0)
	collectSymbols(doc, doc.Tree, &symbols)
	return symbols
}

func collectSymbols(doc *Document, n *parser.Node, out *[]*Symbol) {
	switch n.Type {
	case parser.NodeVariableDeclaration:
		if name := doc.NodeText(n.Identifier); name != "" {
			*out = append(*out, &Symbol{
				Name:   name,
				Kind:   SymbolKindVariable,
				Range:  doc.nodeRange(n.Identifier),
				Detail: doc.NodeText(n.Value),
			})
		}

	case parser.NodeMixinDeclaration:
		if name := doc.NodeText(n.Identifier); name != "" {
			*out = append(*out, &Symbol{
				Name:   name,
				Kind:   SymbolKindMixin,
				Range:  doc.nodeRange(n.Identifier),
				Detail: parameterSignature(doc, n),
			})
		}

	case parser.NodeFunctionDeclaration:
		if name := doc.NodeText(n.Identifier); name != "" {
			*out = append(*out, &Symbol{
				Name:   name,
				Kind:   SymbolKindFunction,
				Range:  doc.nodeRange(n.Identifier),
				Detail: parameterSignature(doc, n),
			})
		}

	case parser.NodeRuleset:
		selectors := n.ChildrenOfType(parser.NodeSelector)
		parts := make([]string, 0, len(selectors))
		for _, sel := range selectors {
			parts = append(parts, doc.NodeText(sel))
		}
		if len(parts) > 0 {
			first := selectors[0]
			last := selectors[len(selectors)-1]
			*out = append(*out, &Symbol{
				Name: strings.Join(parts, ", "),
				Kind: SymbolKindRuleset,
				Range: Range{
					Start: doc.PositionAt(first.Offset),
					End:   doc.PositionAt(last.End()),
				},
			})
			// Placeholder selectors double as named definitions
			for _, sel := range selectors {
				sel.Visit(func(c *parser.Node) bool {
					if c.Type == parser.NodeSelectorPlaceholder {
						*out = append(*out, &Symbol{
							Name:  doc.NodeText(c),
							Kind:  SymbolKindPlaceholder,
							Range: doc.nodeRange(c),
						})
					}
					return true
				})
			}
		}

	case parser.NodeUse, parser.NodeForward:
		if name := moduleSymbolName(doc, n); name != "" {
			*out = append(*out, &Symbol{
				Name:   name,
				Kind:   SymbolKindModule,
				Range:  doc.nodeRange(n),
				Detail: doc.NodeText(n.FirstChildOfType(parser.NodeStringLiteral)),
			})
		}
	}

	for _, c := range n.Children {
		collectSymbols(doc, c, out)
	}
}

// moduleSymbolName prefers the "as" alias and falls back to the load path
func moduleSymbolName(doc *Document, n *parser.Node) string {
	if ident := doc.NodeText(n.Identifier); ident != "" {
		return ident
	}
	return strings.Trim(doc.NodeText(n.FirstChildOfType(parser.NodeStringLiteral)), `"'`)
}

// parameterSignature renders a mixin or function parameter list
func parameterSignature(doc *Document, n *parser.Node) string {
	params := n.ChildrenOfType(parser.NodeFunctionParameter)
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, doc.NodeText(p))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (d *Document) nodeRange(n *parser.Node) Range {
	if n == nil {
		return Range{}
	}
	return Range{
		Start: d.PositionAt(n.Offset),
		End:   d.PositionAt(n.End()),
	}
}

// findSymbolAtPosition returns the document symbol whose range covers pos
func findSymbolAtPosition(doc *Document, pos Position) *Symbol {
	for _, sym := range doc.Symbols {
		if positionInRange(pos, sym.Range) {
			return sym
		}
	}
	return nil
}

func positionInRange(pos Position, r Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character > r.End.Character {
		return false
	}
	return true
}

// nameAtPosition finds the name under a cursor position: a variable, an
// identifier or a placeholder selector. It returns "" when the position
// covers none.
func nameAtPosition(doc *Document, pos Position) string {
	offset := doc.OffsetAt(pos)

	var best *parser.Node
	doc.Tree.Visit(func(n *parser.Node) bool {
		if offset < n.Offset || offset > n.End() {
			return false
		}
		switch n.Type {
		case parser.NodeVariable, parser.NodeIdentifier, parser.NodeSelectorPlaceholder:
			if best == nil || n.Length <= best.Length {
				best = n
			}
		}
		return true
	})

	return doc.NodeText(best)
}
