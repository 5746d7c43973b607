package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowatlas-labs/flowatlas-cli/internal/adapters/driven/index/memory"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
)

func newTestQueryService(t *testing.T) *QueryService {
	t.Helper()
	return NewQueryService(memory.NewHolder(testSnapshot(t)), domain.DefaultScoring())
}

func TestResolve_DirectionalQueryPrefersMatchingOrientation(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Resolve(context.Background(), "von MIRA nach GRID", domain.QueryOptions{})
	require.NoError(t, err)

	require.NotEmpty(t, result.Matches)
	assert.Equal(t, "F1", result.Matches[0].Flow.ID)

	// The reverse flow still matches on its systems but must rank below.
	if len(result.Matches) > 1 {
		assert.Equal(t, "F2", result.Matches[1].Flow.ID)
		assert.Greater(t, result.Matches[0].Score, result.Matches[1].Score)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	svc := newTestQueryService(t)
	ctx := context.Background()

	first, err := svc.Resolve(ctx, "Nominierung zwischen MIRA und GRID", domain.QueryOptions{})
	require.NoError(t, err)
	second, err := svc.Resolve(ctx, "Nominierung zwischen MIRA und GRID", domain.QueryOptions{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolve_FuzzyToleratesMisspelledTerm(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Resolve(context.Background(), "Nominerung", domain.QueryOptions{})
	require.NoError(t, err)

	require.NotEmpty(t, result.Matches)
	for _, m := range result.Matches {
		assert.Contains(t, []string{"F1", "F2"}, m.Flow.ID)
		hasFuzzy := false
		for _, r := range m.Reasons {
			if r.Kind == domain.ReasonFuzzy {
				hasFuzzy = true
			}
		}
		assert.True(t, hasFuzzy, "match %s should carry a fuzzy reason", m.Flow.ID)
	}
}

func TestResolve_AliasRecognition(t *testing.T) {
	snap, err := memory.Build(testDataset(), map[string]string{"sap": "SAPsystem"})
	require.NoError(t, err)
	svc := NewQueryService(memory.NewHolder(snap), domain.DefaultScoring())

	result, err := svc.Resolve(context.Background(), "Rechnungen von SAP", domain.QueryOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"sys-sap"}, result.Entities.Systems)
	require.NotEmpty(t, result.Matches)
	assert.Equal(t, "F3", result.Matches[0].Flow.ID)
}

func TestResolve_EmptyQuery(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Resolve(context.Background(), "   ", domain.QueryOptions{})
	require.NoError(t, err)

	assert.Empty(t, result.Matches)
	assert.Empty(t, result.Related)
	assert.Equal(t, "The query was empty.", result.Summary)
}

func TestResolve_NoSnapshot(t *testing.T) {
	svc := NewQueryService(memory.NewHolder(nil), domain.DefaultScoring())

	_, err := svc.Resolve(context.Background(), "MIRA", domain.QueryOptions{})
	assert.ErrorIs(t, err, domain.ErrSnapshotUnavailable)
}

func TestResolve_PartialSystemNameMatches(t *testing.T) {
	svc := newTestQueryService(t)

	// "SAP" is not the full "SAPsystem" name and no alias is configured;
	// the containment rule must still surface the flow.
	result, err := svc.Resolve(context.Background(), "SAP", domain.QueryOptions{})
	require.NoError(t, err)

	require.NotEmpty(t, result.Matches)
	assert.Equal(t, "F3", result.Matches[0].Flow.ID)
	assert.Greater(t, result.Matches[0].Score, 0.0)
}

func TestResolve_NothingMatches(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Resolve(context.Background(), "Wetterbericht Zugspitze", domain.QueryOptions{})
	require.NoError(t, err)

	assert.Empty(t, result.Matches)
	assert.Equal(t, "No data flows match the query.", result.Summary)
}

func TestResolve_LimitApplies(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Resolve(context.Background(), "Nominierung", domain.QueryOptions{Limit: 1})
	require.NoError(t, err)

	assert.Len(t, result.Matches, 1)
}

func TestResolve_RelatedFlowsShareSystems(t *testing.T) {
	svc := newTestQueryService(t)

	result, err := svc.Resolve(context.Background(), "von MIRA nach GRID", domain.QueryOptions{Limit: 1})
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	require.NotEmpty(t, result.Related)
	assert.Equal(t, "F2", result.Related[0].ID)
}
