// Package tooling provides a programmatic API for IDE integration via LSP.
// It maintains a cache of parsed documents and exposes diagnostics, symbols,
// hover and completion queries in a thread-safe manner.
package tooling

import (
	"fmt"
	"sync"

	"github.com/cascade-lang/cascade/compiler/lexer"
	"github.com/cascade-lang/cascade/compiler/parser"
)

// API provides thread-safe access to compiler functionality for IDE
// integration. It maintains document state and answers fast queries for
// LSP features.
type API struct {
	// Document cache stores parsed syntax trees per URI
	documents map[string]*Document
	docsMutex sync.RWMutex

	// Symbol index for fast lookups across documents
	symbolIndex *SymbolIndex

	// Configuration
	config *Config
}

// Config holds configuration for the tooling API
type Config struct {
	// CacheSize limits the number of documents cached in memory
	CacheSize int
}

// Document represents a cached document with its parsed syntax tree
type Document struct {
	// URI is the document identifier (typically a file path)
	URI string

	// Content is the raw source text
	Content string

	// Version tracks document changes (incremented on each update)
	Version int

	// Tree is the parsed syntax tree. It is never nil, however malformed
	// the input: the parser attaches errors to nodes instead of failing.
	Tree *parser.Node

	// LexErrors contains any scanner errors
	LexErrors []lexer.LexError

	// Diagnostics contains the syntax errors gathered from the tree
	Diagnostics []parser.Diagnostic

	// Symbols is a flattened list of all symbols in the document
	Symbols []*Symbol

	// lineOffsets caches the byte offset of every line start
	lineOffsets []int
}

// Position represents a position in a document (zero-based for LSP
// compatibility)
type Position struct {
	Line      int // Zero-based line number
	Character int // Zero-based character offset
}

// Range represents a range in a document
type Range struct {
	Start Position
	End   Position
}

// Location represents a source location with URI and range
type Location struct {
	URI   string
	Range Range
}

// Symbol represents a named entity in the source code
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Range Range

	// Detail provides additional information (signature, default value)
	Detail string
}

// SymbolKind categorizes symbols for IDE display
type SymbolKind int

const (
	// SymbolKindVariable represents a $variable declaration
	SymbolKindVariable SymbolKind = iota
	// SymbolKindMixin represents a mixin declaration
	SymbolKindMixin
	// SymbolKindFunction represents a function declaration
	SymbolKindFunction
	// SymbolKindPlaceholder represents a %placeholder selector
	SymbolKindPlaceholder
	// SymbolKindRuleset represents a style rule (its selector text)
	SymbolKindRuleset
	// SymbolKindModule represents a loaded module (@use / @forward)
	SymbolKindModule
)

// Hover represents hover information for a symbol
type Hover struct {
	// Contents is the hover text (markdown formatted)
	Contents string

	// Range is the range of the symbol
	Range Range
}

// Diagnostic represents a syntax error or warning
type Diagnostic struct {
	Range    Range
	Severity DiagnosticSeverity
	Code     string
	Message  string
	Source   string
}

// DiagnosticSeverity indicates the severity of a diagnostic
type DiagnosticSeverity int

const (
	// DiagnosticSeverityError represents an error diagnostic
	DiagnosticSeverityError DiagnosticSeverity = iota
	// DiagnosticSeverityWarning represents a warning diagnostic
	DiagnosticSeverityWarning
	// DiagnosticSeverityInfo represents an informational diagnostic
	DiagnosticSeverityInfo
	// DiagnosticSeverityHint represents a hint diagnostic
	DiagnosticSeverityHint
)

// NewAPI creates a new tooling API instance
func NewAPI() *API {
	return NewAPIWithConfig(&Config{
		CacheSize: 100,
	})
}

// NewAPIWithConfig creates a new tooling API with custom configuration
func NewAPIWithConfig(config *Config) *API {
	return &API{
		documents:   make(map[string]*Document),
		symbolIndex: NewSymbolIndex(),
		config:      config,
	}
}

// ParseFile parses a source file, caches it, and returns the document
func (a *API) ParseFile(uri, content string) (*Document, error) {
	doc := a.parseDocument(uri, content)
	doc.Version = 1

	a.docsMutex.Lock()
	a.documents[uri] = doc
	a.docsMutex.Unlock()

	a.symbolIndex.Index(uri, doc.Symbols)

	return doc, nil
}

// UpdateDocument updates an existing document with new content
func (a *API) UpdateDocument(uri, content string, version int) (*Document, error) {
	a.docsMutex.Lock()
	oldDoc, exists := a.documents[uri]
	if exists && oldDoc.Content == content {
		// Content unchanged, bump version and keep the cached tree
		oldDoc.Version = version
		a.docsMutex.Unlock()
		return oldDoc, nil
	}
	a.docsMutex.Unlock()

	doc := a.parseDocument(uri, content)
	doc.Version = version

	a.docsMutex.Lock()
	a.documents[uri] = doc
	a.docsMutex.Unlock()

	a.symbolIndex.Index(uri, doc.Symbols)

	return doc, nil
}

// parseDocument runs the scanner and parser over content and builds the
// derived document state. It acquires no locks.
func (a *API) parseDocument(uri, content string) *Document {
	l := lexer.New(content, uri)
	tokens, lexErrors := l.ScanTokens()

	p := parser.New(tokens)
	tree := p.Parse()

	doc := &Document{
		URI:         uri,
		Content:     content,
		Tree:        tree,
		LexErrors:   lexErrors,
		Diagnostics: parser.CollectDiagnostics(tree),
		lineOffsets: computeLineOffsets(content),
	}
	doc.Symbols = extractSymbols(doc)

	return doc
}

// GetDocument retrieves a cached document
func (a *API) GetDocument(uri string) (*Document, bool) {
	a.docsMutex.RLock()
	defer a.docsMutex.RUnlock()

	doc, exists := a.documents[uri]
	return doc, exists
}

// CloseDocument removes a document from the cache
func (a *API) CloseDocument(uri string) {
	a.docsMutex.Lock()
	delete(a.documents, uri)
	a.docsMutex.Unlock()

	a.symbolIndex.RemoveDocument(uri)
}

// GetDiagnostics returns diagnostics for a document, with offsets converted
// to line/character positions
func (a *API) GetDiagnostics(uri string) []Diagnostic {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil
	}

	diagnostics := make([]Diagnostic, 0, len(doc.Diagnostics)+len(doc.LexErrors))

	for _, err := range doc.LexErrors {
		pos := Position{Line: err.Line - 1, Character: err.Column - 1}
		diagnostics = append(diagnostics, Diagnostic{
			Range:    Range{Start: pos, End: Position{Line: pos.Line, Character: pos.Character + 1}},
			Severity: DiagnosticSeverityError,
			Code:     "scan_error",
			Message:  err.Message,
			Source:   "cascade",
		})
	}

	for _, d := range doc.Diagnostics {
		diagnostics = append(diagnostics, Diagnostic{
			Range: Range{
				Start: doc.PositionAt(d.Offset),
				End:   doc.PositionAt(d.Offset + d.Length),
			},
			Severity: DiagnosticSeverityError,
			Code:     "parse_error",
			Message:  d.Message,
			Source:   "cascade",
		})
	}

	return diagnostics
}

// GetDocumentSymbols returns all symbols in a document
func (a *API) GetDocumentSymbols(uri string) ([]*Symbol, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	return doc.Symbols, nil
}

// GetHover returns hover information for a position in a document.
// Returns (nil, nil) if no symbol is found at the position.
func (a *API) GetHover(uri string, pos Position) (*Hover, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	symbol := findSymbolAtPosition(doc, pos)
	if symbol == nil {
		return nil, nil //nolint:nilnil // nil hover is valid when no symbol at position
	}

	return buildHover(symbol), nil
}

// GetCompletions returns completion items for a position in a document
func (a *API) GetCompletions(uri string, pos Position) ([]CompletionItem, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	context := getCompletionContext(doc, pos)

	return a.buildCompletions(doc, context), nil
}

// GetDefinition returns the definition location of the name under a
// position. Returns (nil, nil) if nothing resolvable is found.
func (a *API) GetDefinition(uri string, pos Position) (*Location, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	name := nameAtPosition(doc, pos)
	if name == "" {
		return nil, nil //nolint:nilnil // nil location is valid when no name at position
	}

	defSymbol := a.symbolIndex.FindDefinition(name)
	if defSymbol == nil {
		return nil, nil //nolint:nilnil
	}

	return &Location{
		URI:   defSymbol.URI,
		Range: defSymbol.Range,
	}, nil
}

// GetReferences returns all indexed occurrences of the name under a position
func (a *API) GetReferences(uri string, pos Position) ([]Location, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	name := nameAtPosition(doc, pos)
	if name == "" {
		return []Location{}, nil
	}

	refs := a.symbolIndex.FindReferences(name)
	if refs == nil {
		return []Location{}, nil
	}

	return refs, nil
}

// GetWorkspaceSymbols searches for symbols matching a query across all
// cached documents
func (a *API) GetWorkspaceSymbols(query string) []*IndexedSymbol {
	return a.symbolIndex.SearchSymbols(query)
}

// PositionAt converts a byte offset into a zero-based line/character position
func (d *Document) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.Content) {
		offset = len(d.Content)
	}

	// Binary search for the line containing offset
	low, high := 0, len(d.lineOffsets)-1
	for low < high {
		mid := (low + high + 1) / 2
		if d.lineOffsets[mid] <= offset {
			low = mid
		} else {
			high = mid - 1
		}
	}

	return Position{Line: low, Character: offset - d.lineOffsets[low]}
}

// OffsetAt converts a zero-based line/character position into a byte offset
func (d *Document) OffsetAt(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(d.lineOffsets) {
		return len(d.Content)
	}

	offset := d.lineOffsets[pos.Line] + pos.Character
	lineEnd := len(d.Content)
	if pos.Line+1 < len(d.lineOffsets) {
		lineEnd = d.lineOffsets[pos.Line+1]
	}
	if offset > lineEnd {
		offset = lineEnd
	}
	return offset
}

// NodeText returns the source text covered by a node
func (d *Document) NodeText(n *parser.Node) string {
	if n == nil {
		return ""
	}
	start, end := n.Offset, n.End()
	if start < 0 || end > len(d.Content) || start > end {
		return ""
	}
	return d.Content[start:end]
}

func computeLineOffsets(content string) []int {
	offsets := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
