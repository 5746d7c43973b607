package mcp

import (
	"context"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowatlas-labs/flowatlas-cli/internal/adapters/driven/index/memory"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/services"
)

type resourceHandler func(context.Context, *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error)

func readResource(ctx context.Context, h resourceHandler, uri string) (*sdk.ReadResourceResult, error) {
	return h(ctx, &sdk.ReadResourceRequest{
		Params: &sdk.ReadResourceParams{URI: uri},
	})
}

func newTestMCPServer(t *testing.T) *Server {
	t.Helper()

	dataset := &domain.Dataset{
		Systems: []domain.System{
			{ID: "sys-grid", Name: "GRID"},
			{ID: "sys-mira", Name: "MIRA"},
		},
		Flows: []domain.DataFlow{
			{ID: "F1", Name: "Nominierung", SourceID: "sys-mira", TargetID: "sys-grid"},
		},
	}
	snap, err := memory.Build(dataset, nil)
	require.NoError(t, err)
	holder := memory.NewHolder(snap)

	server, err := NewServer(&Ports{
		Query:   services.NewQueryService(holder, domain.DefaultScoring()),
		Catalog: services.NewCatalogService(holder),
	})
	require.NoError(t, err)
	return server
}

func TestPortsValidate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingQueryService)

	_, err := NewServer(&Ports{})
	assert.Error(t, err)
}

func TestHandleQueryFlows(t *testing.T) {
	s := newTestMCPServer(t)

	_, out, err := s.handleQueryFlows(context.Background(), nil, QueryInput{Query: "von MIRA nach GRID"})
	require.NoError(t, err)

	require.Equal(t, 1, out.Count)
	assert.Equal(t, "F1", out.Matches[0].FlowID)
	assert.Equal(t, "Nominierung", out.Matches[0].Name)
	assert.Greater(t, out.Matches[0].Score, 0.0)
	assert.NotEmpty(t, out.Matches[0].Reasons)
	assert.NotEmpty(t, out.Summary)
}

func TestHandleQueryFlows_NoMatches(t *testing.T) {
	s := newTestMCPServer(t)

	_, out, err := s.handleQueryFlows(context.Background(), nil, QueryInput{Query: "Wetterbericht"})
	require.NoError(t, err)

	assert.Zero(t, out.Count)
	assert.Empty(t, out.Matches)
}

func TestResourceHandlers(t *testing.T) {
	s := newTestMCPServer(t)
	ctx := context.Background()

	t.Run("flows list", func(t *testing.T) {
		res, err := readResource(ctx, s.handleFlowsResource, flowsResourceURI)
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		assert.Contains(t, res.Contents[0].Text, "F1")
		assert.Equal(t, "application/json", res.Contents[0].MIMEType)
	})

	t.Run("single flow", func(t *testing.T) {
		res, err := readResource(ctx, s.handleFlowResource, flowsResourceURI+"/F1")
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		assert.Contains(t, res.Contents[0].Text, "Nominierung")
	})

	t.Run("unknown flow", func(t *testing.T) {
		_, err := readResource(ctx, s.handleFlowResource, flowsResourceURI+"/F9")
		assert.Error(t, err)
	})

	t.Run("systems", func(t *testing.T) {
		res, err := readResource(ctx, s.handleSystemsResource, systemsResourceURI)
		require.NoError(t, err)
		assert.Contains(t, res.Contents[0].Text, "MIRA")
	})
}
