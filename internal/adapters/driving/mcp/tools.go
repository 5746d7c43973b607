package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
)

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"the natural-language query to resolve against the data-flow index"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of matches to return (default 10)"`
}

// QueryOutput is the output schema for the query tool.
type QueryOutput struct {
	Matches []MatchOutput `json:"matches"`
	Count   int           `json:"count"`
	Summary string        `json:"summary"`
}

// MatchOutput represents a single resolved data flow.
type MatchOutput struct {
	FlowID  string   `json:"flow_id"`
	Name    string   `json:"name"`
	Score   float64  `json:"score"`
	Reasons []string `json:"matched_reasons,omitempty"`
	Summary string   `json:"summary_text,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_flows",
		Description: "Resolve a natural-language query against the indexed data flows",
	}, s.handleQueryFlows)
}

// handleQueryFlows handles the query tool invocation.
func (s *Server) handleQueryFlows(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	result, err := s.ports.Query.Resolve(ctx, input.Query, domain.QueryOptions{Limit: limit})
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Matches: make([]MatchOutput, len(result.Matches)),
		Count:   len(result.Matches),
		Summary: result.Summary,
	}

	for i := range result.Matches {
		m := &result.Matches[i]
		reasons := make([]string, 0, len(m.Reasons))
		for _, reason := range m.Reasons {
			reasons = append(reasons, reason.Kind.String()+":"+reason.Label)
		}
		output.Matches[i] = MatchOutput{
			FlowID:  m.Flow.ID,
			Name:    m.Flow.Name,
			Score:   m.Score,
			Reasons: reasons,
			Summary: m.Summary,
		}
	}

	return nil, output, nil
}
