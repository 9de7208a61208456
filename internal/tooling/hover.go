package tooling

import (
	"fmt"
	"strings"
)

// buildHover creates hover information for a symbol
func buildHover(symbol *Symbol) *Hover {
	var content strings.Builder

	content.WriteString("```scss\n")

	switch symbol.Kind {
	case SymbolKindVariable:
		content.WriteString(symbol.Name)
		if symbol.Detail != "" {
			content.WriteString(fmt.Sprintf(": %s", symbol.Detail))
		}

	case SymbolKindMixin:
		content.WriteString(fmt.Sprintf("@mixin %s%s", symbol.Name, symbol.Detail))

	case SymbolKindFunction:
		content.WriteString(fmt.Sprintf("@function %s%s", symbol.Name, symbol.Detail))

	case SymbolKindPlaceholder:
		content.WriteString(symbol.Name)

	case SymbolKindRuleset:
		content.WriteString(symbol.Name)

	case SymbolKindModule:
		content.WriteString(fmt.Sprintf("@use %s", symbol.Detail))
		if symbol.Name != "" {
			content.WriteString(fmt.Sprintf(" as %s", symbol.Name))
		}
	}

	content.WriteString("\n```")

	return &Hover{
		Contents: content.String(),
		Range:    symbol.Range,
	}
}
