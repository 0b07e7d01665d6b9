package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/varwatch/varwatch/internal/analysis"
	"github.com/varwatch/varwatch/internal/config"
	"github.com/varwatch/varwatch/internal/errors"
	"github.com/varwatch/varwatch/internal/fasta"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cfg *config.Config) *Handlers {
	return &Handlers{cfg: cfg}
}

// AnalyzeRequest represents the arguments for analyze_sequences.
type AnalyzeRequest struct {
	Reference string `json:"reference"`
	Sample    string `json:"sample"`
}

// HandleAnalyze handles the analyze_sequences tool call.
func (h *Handlers) HandleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AnalyzeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := analysis.Analyze(h.cfg, analysis.Input{
		Reference: fasta.Parse(input.Reference),
		Sample:    fasta.Parse(input.Sample),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// decode unmarshals MCP request arguments into a typed struct.
// Avoids unsafe type assertions and handles JSON decoding safely.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	args := req.GetArguments()
	b, err := json.Marshal(args)
	if err != nil {
		return result, fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(b, &result); err != nil {
		return result, fmt.Errorf("unmarshal args: %w", err)
	}
	return result, nil
}

// Result helpers

// errorResult creates an MCP error result from any error. The payload
// matches the web API error body: {"error": "<message>"}, with IsError
// set so MCP clients recognize failures properly.
func errorResult(err error) *mcp.CallToolResult {
	var vErr *errors.VarwatchError
	if !stderrors.As(err, &vErr) {
		vErr = errors.NewComputation(err)
	}

	content, _ := json.Marshal(map[string]string{"error": vErr.Message})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
