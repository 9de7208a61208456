package lsp

import (
	"testing"

	"github.com/cascade-lang/cascade/internal/tooling"
	"go.lsp.dev/protocol"
)

// Note: the request handlers themselves are exercised through the
// internal/tooling package, which carries the actual behavior. The jsonrpc2
// Request interface has unexported methods, so handlers are covered here
// only through their conversion helpers; integration testing happens with a
// real LSP client.

func TestConvertCompletionKind(t *testing.T) {
	tests := []struct {
		name     string
		input    tooling.CompletionKind
		expected protocol.CompletionItemKind
	}{
		{"Keyword", tooling.CompletionKindKeyword, protocol.CompletionItemKindKeyword},
		{"Variable", tooling.CompletionKindVariable, protocol.CompletionItemKindVariable},
		{"Mixin", tooling.CompletionKindMixin, protocol.CompletionItemKindFunction},
		{"Function", tooling.CompletionKindFunction, protocol.CompletionItemKindFunction},
		{"Placeholder", tooling.CompletionKindPlaceholder, protocol.CompletionItemKindClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := convertCompletionKind(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestConvertSymbolKind(t *testing.T) {
	tests := []struct {
		name     string
		input    tooling.SymbolKind
		expected protocol.SymbolKind
	}{
		{"Variable", tooling.SymbolKindVariable, protocol.SymbolKindVariable},
		{"Mixin", tooling.SymbolKindMixin, protocol.SymbolKindMethod},
		{"Function", tooling.SymbolKindFunction, protocol.SymbolKindFunction},
		{"Placeholder", tooling.SymbolKindPlaceholder, protocol.SymbolKindClass},
		{"Ruleset", tooling.SymbolKindRuleset, protocol.SymbolKindNamespace},
		{"Module", tooling.SymbolKindModule, protocol.SymbolKindModule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := convertSymbolKind(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestConvertRange(t *testing.T) {
	r := convertRange(tooling.Range{
		Start: tooling.Position{Line: 1, Character: 4},
		End:   tooling.Position{Line: 1, Character: 12},
	})

	if r.Start.Line != 1 || r.Start.Character != 4 {
		t.Errorf("Unexpected start position: %v", r.Start)
	}

	if r.End.Line != 1 || r.End.Character != 12 {
		t.Errorf("Unexpected end position: %v", r.End)
	}
}
