package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowatlas-labs/flowatlas-cli/internal/adapters/driven/index/memory"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/services"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()

	dataset := &domain.Dataset{
		Systems: []domain.System{
			{ID: "sys-grid", Name: "GRID"},
			{ID: "sys-mira", Name: "MIRA"},
		},
		Formats: []domain.DataFormat{{ID: "fmt-nomint", Name: "NOMINT"}},
		Methods: []domain.TransmissionMethod{{ID: "tm-as4", Name: "AS4"}},
		Flows: []domain.DataFlow{
			{
				ID: "F1", Name: "MIRA an GRID Nominierung",
				SourceID: "sys-mira", TargetID: "sys-grid",
				FormatID: "fmt-nomint", MethodIDs: []string{"tm-as4"},
			},
			{
				ID: "F2", Name: "GRID an MIRA Nominierung",
				SourceID: "sys-grid", TargetID: "sys-mira",
				FormatID: "fmt-nomint",
			},
		},
	}
	snap, err := memory.Build(dataset, nil)
	require.NoError(t, err)

	holder := memory.NewHolder(snap)
	return NewServer(
		services.NewQueryService(holder, domain.DefaultScoring()),
		services.NewCatalogService(holder),
		opts,
	)
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestListFlowsEndpoint(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := doRequest(t, s, http.MethodGet, "/api/data-flows", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var flows []flowDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &flows))
	require.Len(t, flows, 2)
	assert.Equal(t, "F1", flows[0].ID)
	assert.Equal(t, "MIRA", flows[0].SourceSystem)
	assert.Equal(t, "GRID", flows[0].TargetSystem)
	assert.Equal(t, "NOMINT", flows[0].Format)
	assert.Equal(t, []string{"AS4"}, flows[0].Methods)
}

func TestListFlowsEndpoint_Filtered(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := doRequest(t, s, http.MethodGet, "/api/data-flows?source_system=mira", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var flows []flowDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &flows))
	require.Len(t, flows, 1)
	assert.Equal(t, "F1", flows[0].ID)
}

func TestGetFlowEndpoint_NotFound(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := doRequest(t, s, http.MethodGet, "/api/data-flows/F9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSystemsEndpoint(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := doRequest(t, s, http.MethodGet, "/api/systems", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var names []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	assert.Equal(t, []string{"GRID", "MIRA"}, names)
}

func TestQueryEndpoint(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := doRequest(t, s, http.MethodPost, "/api/query", queryRequest{Query: "von MIRA nach GRID"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp queryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Matches)
	assert.Equal(t, "F1", resp.Matches[0].Flow.ID)
	assert.NotEmpty(t, resp.Summary)
	assert.NotEmpty(t, resp.Matches[0].Reasons)
}

func TestQueryEndpoint_BadBody(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryEndpoint_RateLimited(t *testing.T) {
	s := newTestServer(t, Options{RateLimit: 0.001, RateBurst: 1})

	first := doRequest(t, s, http.MethodPost, "/api/query", queryRequest{Query: "MIRA"})
	assert.Equal(t, http.StatusOK, first.Code)

	second := doRequest(t, s, http.MethodPost, "/api/query", queryRequest{Query: "MIRA"})
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := doRequest(t, s, http.MethodOptions, "/api/query", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServiceUnavailableWithoutSnapshot(t *testing.T) {
	holder := memory.NewHolder(nil)
	s := NewServer(
		services.NewQueryService(holder, domain.DefaultScoring()),
		services.NewCatalogService(holder),
		Options{},
	)

	rec := doRequest(t, s, http.MethodPost, "/api/query", queryRequest{Query: "MIRA"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
