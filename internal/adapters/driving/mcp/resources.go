package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driving"
)

const (
	flowsResourceURI    = "flowatlas://flows"
	flowResourceURITmpl = "flowatlas://flows/{flowID}"
	systemsResourceURI  = "flowatlas://systems"
)

// registerResources registers catalog resources with the MCP server.
// Without a catalog port there is nothing to expose.
func (s *Server) registerResources() {
	if s.ports.Catalog == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         flowsResourceURI,
		Name:        "data-flows",
		Description: "All indexed data flows",
		MIMEType:    "application/json",
	}, s.handleFlowsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         systemsResourceURI,
		Name:        "systems",
		Description: "All systems known to the index",
		MIMEType:    "application/json",
	}, s.handleSystemsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: flowResourceURITmpl,
		Name:        "data-flow",
		Description: "A single data flow by ID",
		MIMEType:    "application/json",
	}, s.handleFlowResource)
}

type flowResource struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Trigger     string   `json:"trigger,omitempty"`
	SourceID    string   `json:"source_id"`
	TargetID    string   `json:"target_id"`
	FormatID    string   `json:"format_id,omitempty"`
	MethodIDs   []string `json:"method_ids,omitempty"`
}

type systemResource struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

func (s *Server) handleFlowsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	flows, err := s.ports.Catalog.ListFlows(ctx, driving.FlowFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing flows: %w", err)
	}

	resources := make([]flowResource, 0, len(flows))
	for _, f := range flows {
		resources = append(resources, flowResource{
			ID:          f.ID,
			Name:        f.Name,
			Description: f.Description,
			Trigger:     f.Trigger,
			SourceID:    f.SourceID,
			TargetID:    f.TargetID,
			FormatID:    f.FormatID,
			MethodIDs:   f.MethodIDs,
		})
	}

	return jsonResourceResult(req.Params.URI, resources)
}

func (s *Server) handleSystemsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	systems, err := s.ports.Catalog.ListSystems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing systems: %w", err)
	}

	resources := make([]systemResource, 0, len(systems))
	for _, sys := range systems {
		resources = append(resources, systemResource{
			ID:       sys.ID,
			Name:     sys.Name,
			Category: sys.Category,
		})
	}

	return jsonResourceResult(req.Params.URI, resources)
}

func (s *Server) handleFlowResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	flowID := strings.TrimPrefix(req.Params.URI, flowsResourceURI+"/")
	if flowID == "" || flowID == req.Params.URI {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	flow, err := s.ports.Catalog.GetFlow(ctx, flowID)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResourceResult(req.Params.URI, flowResource{
		ID:          flow.ID,
		Name:        flow.Name,
		Description: flow.Description,
		Trigger:     flow.Trigger,
		SourceID:    flow.SourceID,
		TargetID:    flow.TargetID,
		FormatID:    flow.FormatID,
		MethodIDs:   flow.MethodIDs,
	})
}

func jsonResourceResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
