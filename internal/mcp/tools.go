package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// analyzeToolDef describes the analyze_sequences tool.
var analyzeToolDef = mcp.NewTool("analyze_sequences",
	mcp.WithDescription("Compare a sample sequence against a reference: align the pair, extract variants (substitutions and indels at 1-based reference positions), and compute a 0-100 heuristic risk score. Inputs may be FASTA (first record wins) or raw sequence text."),
	mcp.WithString("reference",
		mcp.Required(),
		mcp.Description("Reference sequence, FASTA or raw text"),
	),
	mcp.WithString("sample",
		mcp.Required(),
		mcp.Description("Sample sequence to compare against the reference, FASTA or raw text"),
	),
)
