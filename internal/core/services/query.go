package services

import (
	"context"
	"strings"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driven"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driving"
	"github.com/flowatlas-labs/flowatlas-cli/internal/logger"
	"github.com/flowatlas-labs/flowatlas-cli/internal/textutil"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService resolves natural-language queries against the current
// index snapshot. Resolution is a pure function of (query text, snapshot):
// each call captures one snapshot, runs the stages in fixed sequence, and
// folds their score deltas into the final ranking. The service itself
// keeps no state between calls, so concurrent queries are independent.
type QueryService struct {
	provider driven.SnapshotProvider
	cfg      domain.ScoringConfig
}

// NewQueryService creates a new query service. The config must have been
// validated; callers that accept external configuration should call
// ScoringConfig.Validate first.
func NewQueryService(provider driven.SnapshotProvider, cfg domain.ScoringConfig) *QueryService {
	return &QueryService{provider: provider, cfg: cfg}
}

// Resolve turns free-text into a ranked set of matching data flows.
func (s *QueryService) Resolve(
	_ context.Context, text string, opts domain.QueryOptions,
) (*domain.QueryResult, error) {
	logger.Section("Query Resolution")
	logger.Debug("Query: %q", text)

	snap := s.provider.Current()
	if snap == nil {
		return nil, domain.ErrSnapshotUnavailable
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	relatedLimit := opts.RelatedLimit
	if relatedLimit <= 0 {
		relatedLimit = 10
	}

	result := &domain.QueryResult{
		Matches:  []domain.FlowMatch{},
		Warnings: snap.Diagnostics(),
	}

	text = strings.TrimSpace(text)
	if text == "" {
		logger.Debug("Empty query, returning no results")
		result.Summary = "The query was empty."
		return result, nil
	}

	ents := extractEntities(snap, text)
	logger.Info("Recognized entities: %d systems, %d formats, %d methods, %d interfaces, %d leftover terms, direction=%s",
		len(ents.Systems), len(ents.Formats), len(ents.Methods), len(ents.Interfaces),
		len(ents.Leftover), ents.Direction)
	result.Entities = ents

	terms := textutil.Terms(text)
	if ents.Empty() && len(ents.Leftover) == 0 && len(terms) == 0 {
		logger.Debug("Nothing recognizable in query, returning no results")
		result.Summary = "The query contained no recognizable terms."
		return result, nil
	}

	// Each stage returns an immutable delta; nothing is shared between
	// stages except the snapshot they all read.
	folded := foldDeltas(
		structuralDelta(snap, ents, s.cfg),
		fuzzyDelta(snap, ents.Leftover, s.cfg),
		fulltextDelta(snap, terms, s.cfg),
		patternDelta(snap, text, s.cfg),
	)
	logger.Debug("Scored %d candidate flows", len(folded))

	result.Matches = rankMatches(snap, folded, limit)
	result.Related = relatedFlows(snap, result.Matches, relatedLimit)
	result.Summary = renderResponse(snap, ents, result.Matches, result.Related)

	logger.Info("Resolution complete: %d direct matches, %d related flows",
		len(result.Matches), len(result.Related))

	return result, nil
}
