package lsp

import (
	"context"
	"encoding/json"

	"github.com/cascade-lang/cascade/internal/tooling"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// handleTextDocumentCompletion handles completion requests
func (s *Server) handleTextDocumentCompletion(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.CompletionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse completion params")
	}

	uri := string(params.TextDocument.URI)
	pos := tooling.Position{
		Line:      int(params.Position.Line),
		Character: int(params.Position.Character),
	}

	completions, err := s.api.GetCompletions(uri, pos)
	if err != nil {
		s.logger.Printf("Error getting completions: %v", err)
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to get completions")
	}

	items := make([]protocol.CompletionItem, 0, len(completions))
	for _, c := range completions {
		items = append(items, protocol.CompletionItem{
			Label:            c.Label,
			Kind:             convertCompletionKind(c.Kind),
			Detail:           c.Detail,
			InsertText:       c.InsertText,
			InsertTextFormat: protocol.InsertTextFormatPlainText,
		})
	}

	result := protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}

	return reply(ctx, result, nil)
}

// handleTextDocumentHover handles hover requests
func (s *Server) handleTextDocumentHover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.HoverParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse hover params")
	}

	uri := string(params.TextDocument.URI)
	pos := tooling.Position{
		Line:      int(params.Position.Line),
		Character: int(params.Position.Character),
	}

	hover, err := s.api.GetHover(uri, pos)
	if err != nil {
		s.logger.Printf("Error getting hover: %v", err)
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to get hover information")
	}

	if hover == nil {
		return reply(ctx, nil, nil)
	}

	hoverRange := convertRange(hover.Range)
	result := protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hover.Contents,
		},
		Range: &hoverRange,
	}

	return reply(ctx, result, nil)
}

// handleTextDocumentDefinition handles go-to-definition requests
func (s *Server) handleTextDocumentDefinition(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DefinitionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse definition params")
	}

	uri := string(params.TextDocument.URI)
	pos := tooling.Position{
		Line:      int(params.Position.Line),
		Character: int(params.Position.Character),
	}

	location, err := s.api.GetDefinition(uri, pos)
	if err != nil {
		s.logger.Printf("Error getting definition: %v", err)
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to get definition")
	}

	if location == nil {
		return reply(ctx, nil, nil)
	}

	result := protocol.Location{
		URI:   protocol.DocumentURI(location.URI),
		Range: convertRange(location.Range),
	}

	return reply(ctx, result, nil)
}

// handleTextDocumentReferences handles find references requests
func (s *Server) handleTextDocumentReferences(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.ReferenceParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse references params")
	}

	uri := string(params.TextDocument.URI)
	pos := tooling.Position{
		Line:      int(params.Position.Line),
		Character: int(params.Position.Character),
	}

	references, err := s.api.GetReferences(uri, pos)
	if err != nil {
		s.logger.Printf("Error getting references: %v", err)
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to get references")
	}

	locations := make([]protocol.Location, 0, len(references))
	for _, ref := range references {
		locations = append(locations, protocol.Location{
			URI:   protocol.DocumentURI(ref.URI),
			Range: convertRange(ref.Range),
		})
	}

	return reply(ctx, locations, nil)
}

// handleTextDocumentDocumentSymbol handles document symbol requests
func (s *Server) handleTextDocumentDocumentSymbol(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentSymbolParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse document symbol params")
	}

	uri := string(params.TextDocument.URI)

	symbols, err := s.api.GetDocumentSymbols(uri)
	if err != nil {
		s.logger.Printf("Error getting document symbols: %v", err)
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to get document symbols")
	}

	lspSymbols := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		r := convertRange(sym.Range)
		lspSymbols = append(lspSymbols, protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           convertSymbolKind(sym.Kind),
			Detail:         sym.Detail,
			Range:          r,
			SelectionRange: r,
		})
	}

	return reply(ctx, lspSymbols, nil)
}

// handleWorkspaceSymbol handles workspace symbol search requests
func (s *Server) handleWorkspaceSymbol(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.WorkspaceSymbolParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse workspace symbol params")
	}

	indexedSymbols := s.api.GetWorkspaceSymbols(params.Query)

	symbols := make([]protocol.SymbolInformation, 0, len(indexedSymbols))
	for _, indexed := range indexedSymbols {
		symbols = append(symbols, protocol.SymbolInformation{
			Name: indexed.Symbol.Name,
			Kind: convertSymbolKind(indexed.Symbol.Kind),
			Location: protocol.Location{
				URI:   protocol.DocumentURI(indexed.URI),
				Range: convertRange(indexed.Range),
			},
		})
	}

	return reply(ctx, symbols, nil)
}

// Helper functions to convert between tooling and LSP types

func convertRange(r tooling.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      uint32(r.Start.Line),
			Character: uint32(r.Start.Character),
		},
		End: protocol.Position{
			Line:      uint32(r.End.Line),
			Character: uint32(r.End.Character),
		},
	}
}

func convertCompletionKind(kind tooling.CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case tooling.CompletionKindKeyword:
		return protocol.CompletionItemKindKeyword
	case tooling.CompletionKindVariable:
		return protocol.CompletionItemKindVariable
	case tooling.CompletionKindMixin:
		return protocol.CompletionItemKindFunction
	case tooling.CompletionKindFunction:
		return protocol.CompletionItemKindFunction
	case tooling.CompletionKindPlaceholder:
		return protocol.CompletionItemKindClass
	default:
		return protocol.CompletionItemKindText
	}
}

func convertSymbolKind(kind tooling.SymbolKind) protocol.SymbolKind {
	switch kind {
	case tooling.SymbolKindVariable:
		return protocol.SymbolKindVariable
	case tooling.SymbolKindMixin:
		return protocol.SymbolKindMethod
	case tooling.SymbolKindFunction:
		return protocol.SymbolKindFunction
	case tooling.SymbolKindPlaceholder:
		return protocol.SymbolKindClass
	case tooling.SymbolKindRuleset:
		return protocol.SymbolKindNamespace
	case tooling.SymbolKindModule:
		return protocol.SymbolKindModule
	default:
		return protocol.SymbolKindObject
	}
}
