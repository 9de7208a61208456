package tooling

import (
	"strings"
)

// CompletionItem represents a completion suggestion
type CompletionItem struct {
	// Label is the text to display
	Label string

	// Kind categorizes the completion
	Kind CompletionKind

	// Detail provides additional information
	Detail string

	// InsertText is the text to insert (if different from label)
	InsertText string
}

// CompletionKind categorizes completion items
type CompletionKind int

const (
	// CompletionKindKeyword represents an at-rule keyword completion
	CompletionKindKeyword CompletionKind = iota
	// CompletionKindVariable represents a variable completion
	CompletionKindVariable
	// CompletionKindMixin represents a mixin completion
	CompletionKindMixin
	// CompletionKindFunction represents a function completion
	CompletionKindFunction
	// CompletionKindPlaceholder represents a placeholder selector completion
	CompletionKindPlaceholder
)

// CompletionContext describes what kind of completion the cursor position
// calls for
type CompletionContext struct {
	// AfterAt is true when the cursor follows an "@"
	AfterAt bool

	// AfterDollar is true when the cursor follows a "$"
	AfterDollar bool

	// InInclude is true when the current statement is an @include
	InInclude bool

	// InExtend is true when the current statement is an @extend
	InExtend bool
}

// atKeywords are the at-rule names offered after "@"
var atKeywords = []string{
	"use", "forward", "import", "mixin", "include", "function", "return",
	"extend", "if", "else", "for", "each", "while", "content", "media",
	"supports", "keyframes", "font-face", "page", "layer", "property",
	"charset", "warn", "debug", "error",
}

// getCompletionContext inspects the text left of the cursor
func getCompletionContext(doc *Document, pos Position) *CompletionContext {
	offset := doc.OffsetAt(pos)
	line := doc.Content[doc.lineOffsets[clampLine(doc, pos.Line)]:offset]

	context := &CompletionContext{}

	// Isolate the statement under the cursor from earlier ones on the line
	stmt := line
	if i := strings.LastIndexAny(stmt, "{};"); i >= 0 {
		stmt = stmt[i+1:]
	}
	trimmed := strings.TrimLeft(stmt, " \t")
	switch {
	case strings.HasSuffix(line, "@"):
		context.AfterAt = true
	case strings.HasSuffix(line, "$"):
		context.AfterDollar = true
	case strings.HasPrefix(trimmed, "@include"):
		context.InInclude = true
	case strings.HasPrefix(trimmed, "@extend"):
		context.InExtend = true
	}

	return context
}

func clampLine(doc *Document, line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(doc.lineOffsets) {
		return len(doc.lineOffsets) - 1
	}
	return line
}

// buildCompletions generates completion items for a context
func (a *API) buildCompletions(doc *Document, context *CompletionContext) []CompletionItem {
	switch {
	case context.AfterAt:
		return keywordCompletions()
	case context.AfterDollar:
		return symbolCompletions(doc, SymbolKindVariable, CompletionKindVariable, "$")
	case context.InInclude:
		return symbolCompletions(doc, SymbolKindMixin, CompletionKindMixin, "")
	case context.InExtend:
		return symbolCompletions(doc, SymbolKindPlaceholder, CompletionKindPlaceholder, "")
	}

	items := symbolCompletions(doc, SymbolKindVariable, CompletionKindVariable, "")
	items = append(items, symbolCompletions(doc, SymbolKindFunction, CompletionKindFunction, "")...)
	return items
}

func keywordCompletions() []CompletionItem {
	items := make([]CompletionItem, 0, len(atKeywords))
	for _, kw := range atKeywords {
		items = append(items, CompletionItem{
			Label: "@" + kw,
			Kind:  CompletionKindKeyword,
		})
	}
	return items
}

// symbolCompletions offers the document's symbols of one kind. strip is
// removed from the insert text when the trigger character is already typed.
func symbolCompletions(doc *Document, kind SymbolKind, ck CompletionKind, strip string) []CompletionItem {
	var items []CompletionItem
	seen := make(map[string]bool)

	for _, sym := range doc.Symbols {
		if sym.Kind != kind || seen[sym.Name] {
			continue
		}
		seen[sym.Name] = true

		item := CompletionItem{
			Label:  sym.Name,
			Kind:   ck,
			Detail: sym.Detail,
		}
		if strip != "" {
			item.InsertText = strings.TrimPrefix(sym.Name, strip)
		}
		items = append(items, item)
	}

	return items
}
